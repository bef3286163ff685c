package models

// ReservationRoom joins a reservation to the physical rooms it occupies.
// The schema allows several rooms per reservation; the booking flow currently
// attaches exactly one.
type ReservationRoom struct {
	ID            uint `gorm:"primaryKey" json:"id"`
	ReservationID uint `gorm:"column:reservation_id;index" json:"reservationId"`
	RoomID        uint `gorm:"column:room_id;index" json:"roomId"`

	Room Room `gorm:"foreignKey:RoomID" json:"room,omitempty"`
}
