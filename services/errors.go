package services

import "errors"

var (
	// ErrNotFound is returned when a referenced entity is absent or not owned
	// by the caller. Ownership misses deliberately look identical to absence.
	ErrNotFound = errors.New("not found")
	// ErrMissingFields is returned when required request fields are absent.
	ErrMissingFields = errors.New("missing required fields")
	// ErrInvalidStayDates is returned for unparseable dates or a check-out
	// that is not strictly after the check-in.
	ErrInvalidStayDates = errors.New("invalid stay dates")
	// ErrInvalidTransition is returned when a status change violates the
	// reservation state machine.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrInvalidRateRange is returned when a rate period ends before it starts.
	ErrInvalidRateRange = errors.New("invalid rate date range")
	// ErrInvalidCredentials is returned on login with a wrong email or password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrEmailTaken is returned when registering an email that already exists.
	ErrEmailTaken = errors.New("email already registered")
	// ErrSessionNotFound is returned for an unknown or expired session token.
	ErrSessionNotFound = errors.New("session not found")
)
