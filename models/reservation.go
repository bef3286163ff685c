package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Reservation status values. A reservation starts PENDING and only moves
// forward: PENDING/CONFIRMED -> CANCELLED, or CONFIRMED -> CHECKED_IN ->
// CHECKED_OUT. CANCELLED and CHECKED_OUT are terminal.
const (
	ReservationStatusPending    = "PENDING"
	ReservationStatusConfirmed  = "CONFIRMED"
	ReservationStatusCheckedIn  = "CHECKED_IN"
	ReservationStatusCheckedOut = "CHECKED_OUT"
	ReservationStatusCancelled  = "CANCELLED"
)

type Reservation struct {
	ID           uint             `gorm:"primaryKey" json:"id"`
	UserID       uint             `gorm:"column:user_id;index" json:"userId"`
	CheckInDate  datatypes.Date   `gorm:"column:check_in_date" json:"checkInDate"`
	CheckOutDate datatypes.Date   `gorm:"column:check_out_date" json:"checkOutDate"`
	Status       string           `gorm:"size:20;default:PENDING;index" json:"status"`
	TotalAmount  *decimal.Decimal `gorm:"column:total_amount;type:decimal(12,2)" json:"totalAmount,omitempty"`
	CreatedAt    time.Time        `json:"createdAt"`

	User  User              `gorm:"foreignKey:UserID" json:"-"`
	Rooms []ReservationRoom `gorm:"foreignKey:ReservationID" json:"rooms,omitempty"`
}
