package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hotel-reservation-backend/models"
)

type CreateReservationInput struct {
	RoomTypeID   uint
	CheckInDate  string
	CheckOutDate string
}

// ReservationSummary is a reservation joined with its room type name and the
// type's primary image, as shown in the guest area.
type ReservationSummary struct {
	ID           uint             `json:"id"`
	CheckInDate  string           `gorm:"column:check_in_date" json:"checkInDate"`
	CheckOutDate string           `gorm:"column:check_out_date" json:"checkOutDate"`
	Status       string           `json:"status"`
	TotalAmount  *decimal.Decimal `gorm:"column:total_amount" json:"totalAmount"`
	RoomType     string           `gorm:"column:room_type" json:"roomType"`
	Image        *string          `json:"image"`
}

// AdminReservationRow is the administrative listing: every reservation joined
// with its room type and the guest's name.
type AdminReservationRow struct {
	ID           uint   `json:"id"`
	RoomType     string `gorm:"column:room_type" json:"roomType"`
	CheckInDate  string `gorm:"column:check_in_date" json:"checkInDate"`
	CheckOutDate string `gorm:"column:check_out_date" json:"checkOutDate"`
	Status       string `json:"status"`
	GuestName    string `gorm:"column:guest_name" json:"guestName"`
}

// ReservationService is the reservation lifecycle engine: it turns a booking
// request into a persisted reservation bound to a concrete room and governs
// every later status transition.
type ReservationService interface {
	Create(ctx context.Context, p Principal, in CreateReservationInput) (*models.Reservation, error)
	Cancel(ctx context.Context, p Principal, reservationID uint) error
	ListForUser(ctx context.Context, p Principal) ([]ReservationSummary, error)
	GetForUser(ctx context.Context, p Principal, reservationID uint) (*ReservationSummary, error)
	ListAll(ctx context.Context) ([]AdminReservationRow, error)
	Confirm(ctx context.Context, reservationID uint) error
	CheckIn(ctx context.Context, reservationID uint) error
	CheckOut(ctx context.Context, reservationID uint) error
}

type reservationService struct {
	db        *gorm.DB
	allocator RoomAllocator
}

func NewReservationService(db *gorm.DB, allocator RoomAllocator) ReservationService {
	return &reservationService{db: db, allocator: allocator}
}

// parseStayDates accepts plain dates ("2006-01-02") or RFC3339 timestamps and
// enforces that check-out is strictly after check-in.
func parseStayDates(checkIn, checkOut string) (time.Time, time.Time, error) {
	ci, err := parseDate(checkIn)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: bad check-in date", ErrInvalidStayDates)
	}
	co, err := parseDate(checkOut)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: bad check-out date", ErrInvalidStayDates)
	}
	if !co.After(ci) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: check-out must be after check-in", ErrInvalidStayDates)
	}
	return ci, co, nil
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

// cancelGuard decides whether a guest-initiated cancellation is allowed from
// the given status.
func cancelGuard(status string) error {
	switch status {
	case models.ReservationStatusPending, models.ReservationStatusConfirmed:
		return nil
	case models.ReservationStatusCancelled:
		return fmt.Errorf("%w: reservation is already cancelled", ErrInvalidTransition)
	case models.ReservationStatusCheckedIn, models.ReservationStatusCheckedOut:
		return fmt.Errorf("%w: stay has already started or completed", ErrInvalidTransition)
	default:
		return fmt.Errorf("%w: unknown status %q", ErrInvalidTransition, status)
	}
}

// transitionGuard validates the admin-side edges of the status machine.
var allowedTransitions = map[string][]string{
	models.ReservationStatusConfirmed:  {models.ReservationStatusPending},
	models.ReservationStatusCheckedIn:  {models.ReservationStatusPending, models.ReservationStatusConfirmed},
	models.ReservationStatusCheckedOut: {models.ReservationStatusCheckedIn},
}

func transitionGuard(from, to string) error {
	for _, ok := range allowedTransitions[to] {
		if from == ok {
			return nil
		}
	}
	return fmt.Errorf("%w: cannot move %s to %s", ErrInvalidTransition, from, to)
}

func (s *reservationService) Create(ctx context.Context, p Principal, in CreateReservationInput) (*models.Reservation, error) {
	if in.RoomTypeID == 0 || in.CheckInDate == "" || in.CheckOutDate == "" {
		return nil, ErrMissingFields
	}

	ci, co, err := parseStayDates(in.CheckInDate, in.CheckOutDate)
	if err != nil {
		return nil, err
	}

	var roomType models.RoomType
	if err := s.db.WithContext(ctx).First(&roomType, in.RoomTypeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find room type: %w", err)
	}

	reservation := models.Reservation{
		UserID:       p.UserID,
		CheckInDate:  datatypes.Date(ci),
		CheckOutDate: datatypes.Date(co),
		Status:       models.ReservationStatusPending,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		room, err := s.allocator.Allocate(tx, in.RoomTypeID)
		if err != nil {
			return err
		}
		if err := tx.Create(&reservation).Error; err != nil {
			return fmt.Errorf("create reservation: %w", err)
		}
		link := models.ReservationRoom{ReservationID: reservation.ID, RoomID: room.ID}
		if err := tx.Create(&link).Error; err != nil {
			return fmt.Errorf("link reservation to room: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}

func (s *reservationService) Cancel(ctx context.Context, p Principal, reservationID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var reservation models.Reservation
		err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND user_id = ?", reservationID, p.UserID).
			First(&reservation).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("find reservation: %w", err)
		}

		if err := cancelGuard(reservation.Status); err != nil {
			return err
		}

		return tx.Model(&reservation).
			Update("status", models.ReservationStatusCancelled).Error
	})
}

// transition locks the row, checks the admin edge and writes the new status
// as one unit, so concurrent transitions cannot interleave.
func (s *reservationService) transition(ctx context.Context, reservationID uint, to string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var reservation models.Reservation
		err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&reservation, reservationID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("find reservation: %w", err)
		}

		if err := transitionGuard(reservation.Status, to); err != nil {
			return err
		}

		return tx.Model(&reservation).Update("status", to).Error
	})
}

func (s *reservationService) Confirm(ctx context.Context, reservationID uint) error {
	return s.transition(ctx, reservationID, models.ReservationStatusConfirmed)
}

func (s *reservationService) CheckIn(ctx context.Context, reservationID uint) error {
	return s.transition(ctx, reservationID, models.ReservationStatusCheckedIn)
}

func (s *reservationService) CheckOut(ctx context.Context, reservationID uint) error {
	return s.transition(ctx, reservationID, models.ReservationStatusCheckedOut)
}

const summarySelect = `reservations.id,
DATE_FORMAT(reservations.check_in_date, '%Y-%m-%d') AS check_in_date,
DATE_FORMAT(reservations.check_out_date, '%Y-%m-%d') AS check_out_date,
reservations.status,
reservations.total_amount,
room_types.name AS room_type`

func (s *reservationService) summaryQuery(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).
		Table("reservations").
		Select(summarySelect + ", room_type_images.image_url AS image").
		Joins("JOIN reservation_rooms ON reservation_rooms.reservation_id = reservations.id").
		Joins("JOIN rooms ON rooms.id = reservation_rooms.room_id").
		Joins("JOIN room_types ON room_types.id = rooms.room_type_id").
		Joins("LEFT JOIN room_type_images ON room_type_images.room_type_id = room_types.id AND room_type_images.is_primary = TRUE")
}

func (s *reservationService) ListForUser(ctx context.Context, p Principal) ([]ReservationSummary, error) {
	rows := []ReservationSummary{}
	err := s.summaryQuery(ctx).
		Where("reservations.user_id = ?", p.UserID).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	return rows, nil
}

func (s *reservationService) GetForUser(ctx context.Context, p Principal, reservationID uint) (*ReservationSummary, error) {
	var row ReservationSummary
	result := s.summaryQuery(ctx).
		Where("reservations.user_id = ? AND reservations.id = ?", p.UserID, reservationID).
		Limit(1).
		Scan(&row)
	if result.Error != nil {
		return nil, fmt.Errorf("get reservation: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return &row, nil
}

func (s *reservationService) ListAll(ctx context.Context) ([]AdminReservationRow, error) {
	rows := []AdminReservationRow{}
	err := s.db.WithContext(ctx).
		Table("reservations").
		Select(summarySelect + ", users.full_name AS guest_name").
		Joins("JOIN reservation_rooms ON reservation_rooms.reservation_id = reservations.id").
		Joins("JOIN rooms ON rooms.id = reservation_rooms.room_id").
		Joins("JOIN room_types ON room_types.id = rooms.room_type_id").
		Joins("JOIN users ON users.id = reservations.user_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list all reservations: %w", err)
	}
	return rows, nil
}
