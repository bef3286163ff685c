package models

type RoomType struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:100" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	MaxGuests   int    `gorm:"column:max_guests" json:"maxGuests"`

	// One-To-Many: RoomType -> RoomTypeImages / Rooms
	Images []RoomTypeImage `gorm:"foreignKey:RoomTypeID" json:"images,omitempty"`
	Rooms  []Room          `gorm:"foreignKey:RoomTypeID" json:"-"`
}
