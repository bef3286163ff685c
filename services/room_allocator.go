package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"hotel-reservation-backend/models"
)

// RoomAllocator picks the physical room a reservation is bound to. It runs
// inside the reservation transaction, so implementations receive the tx handle.
//
// The only implementation reuses the first room of the requested type, or
// provisions one when the type has no rooms yet. There is NO availability or
// overlap check anywhere: concurrent bookings for the same type land on the
// same room. The intended inventory model is unresolved, so the gap is kept
// behind this interface instead of being papered over.
type RoomAllocator interface {
	Allocate(tx *gorm.DB, roomTypeID uint) (*models.Room, error)
}

type firstAvailableAllocator struct{}

func NewFirstAvailableAllocator() RoomAllocator {
	return firstAvailableAllocator{}
}

func (firstAvailableAllocator) Allocate(tx *gorm.DB, roomTypeID uint) (*models.Room, error) {
	var room models.Room
	err := tx.Where("room_type_id = ?", roomTypeID).Order("id").First(&room).Error
	if err == nil {
		return &room, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("lookup rooms for type %d: %w", roomTypeID, err)
	}

	// No rooms for this type yet: provision one on demand with a
	// deterministic number. The sequence only moves past 1 when an earlier
	// provisioned room was deleted but its number lingers.
	for seq := 1; seq <= 5; seq++ {
		room = models.Room{
			RoomNumber: roomNumberFor(roomTypeID, seq),
			RoomTypeID: roomTypeID,
			IsActive:   true,
		}
		createErr := tx.Create(&room).Error
		if createErr == nil {
			return &room, nil
		}
		lc := strings.ToLower(createErr.Error())
		if strings.Contains(lc, "duplicate") || strings.Contains(lc, "unique") {
			continue
		}
		return nil, fmt.Errorf("provision room for type %d: %w", roomTypeID, createErr)
	}
	return nil, fmt.Errorf("provision room for type %d: number space exhausted", roomTypeID)
}

func roomNumberFor(roomTypeID uint, seq int) string {
	return fmt.Sprintf("RT-%d-%d", roomTypeID, seq)
}
