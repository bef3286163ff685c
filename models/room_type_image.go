package models

import "time"

// RoomTypeImage holds one catalog photo. At most one image per room type may
// have IsPrimary set; the swap is done transactionally in the service layer.
type RoomTypeImage struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	RoomTypeID uint      `gorm:"index;column:room_type_id" json:"roomTypeId"`
	ImageURL   string    `gorm:"column:image_url;type:text" json:"imageUrl"`
	IsPrimary  bool      `gorm:"column:is_primary;default:false" json:"isPrimary"`
	CreatedAt  time.Time `json:"createdAt"`
}
