package models

type Room struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	RoomNumber string `gorm:"column:room_number;uniqueIndex;size:20" json:"roomNumber"`
	RoomTypeID uint   `gorm:"column:room_type_id;index" json:"roomTypeId"`
	IsActive   bool   `gorm:"column:is_active;default:true" json:"isActive"`

	RoomType RoomType `gorm:"foreignKey:RoomTypeID" json:"-"`
}
