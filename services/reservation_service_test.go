package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"hotel-reservation-backend/models"
)

func TestParseStayDates(t *testing.T) {
	t.Run("plain dates", func(t *testing.T) {
		ci, co, err := parseStayDates("2026-09-01", "2026-09-04")
		assert.NoError(t, err)
		assert.Equal(t, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), ci)
		assert.Equal(t, time.Date(2026, 9, 4, 0, 0, 0, 0, time.UTC), co)
	})

	t.Run("rfc3339 timestamps truncate to dates", func(t *testing.T) {
		ci, co, err := parseStayDates("2026-09-01T14:30:00Z", "2026-09-02T09:00:00Z")
		assert.NoError(t, err)
		assert.Equal(t, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), ci)
		assert.Equal(t, time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC), co)
	})

	t.Run("check-out equal to check-in rejected", func(t *testing.T) {
		_, _, err := parseStayDates("2026-09-01", "2026-09-01")
		assert.ErrorIs(t, err, ErrInvalidStayDates)
	})

	t.Run("check-out before check-in rejected", func(t *testing.T) {
		_, _, err := parseStayDates("2026-09-04", "2026-09-01")
		assert.ErrorIs(t, err, ErrInvalidStayDates)
	})

	t.Run("garbage input rejected", func(t *testing.T) {
		_, _, err := parseStayDates("next tuesday", "2026-09-01")
		assert.ErrorIs(t, err, ErrInvalidStayDates)

		_, _, err = parseStayDates("2026-09-01", "")
		assert.ErrorIs(t, err, ErrInvalidStayDates)
	})
}

func TestCancelGuard(t *testing.T) {
	tests := []struct {
		status  string
		wantErr bool
	}{
		{models.ReservationStatusPending, false},
		{models.ReservationStatusConfirmed, false},
		{models.ReservationStatusCancelled, true},
		{models.ReservationStatusCheckedIn, true},
		{models.ReservationStatusCheckedOut, true},
		{"BOGUS", true},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			err := cancelGuard(tt.status)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTransition)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTransitionGuard(t *testing.T) {
	tests := []struct {
		name    string
		from    string
		to      string
		wantErr bool
	}{
		{"pending to confirmed", models.ReservationStatusPending, models.ReservationStatusConfirmed, false},
		{"pending to checked in", models.ReservationStatusPending, models.ReservationStatusCheckedIn, false},
		{"confirmed to checked in", models.ReservationStatusConfirmed, models.ReservationStatusCheckedIn, false},
		{"checked in to checked out", models.ReservationStatusCheckedIn, models.ReservationStatusCheckedOut, false},
		{"confirmed to confirmed", models.ReservationStatusConfirmed, models.ReservationStatusConfirmed, true},
		{"cancelled to confirmed", models.ReservationStatusCancelled, models.ReservationStatusConfirmed, true},
		{"checked out to checked in", models.ReservationStatusCheckedOut, models.ReservationStatusCheckedIn, true},
		{"pending to checked out", models.ReservationStatusPending, models.ReservationStatusCheckedOut, true},
		{"anything to cancelled is not an admin edge", models.ReservationStatusPending, models.ReservationStatusCancelled, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := transitionGuard(tt.from, tt.to)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTransition)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
