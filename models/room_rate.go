package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type RoomRate struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	RoomTypeID    uint            `gorm:"column:room_type_id;index" json:"roomTypeId"`
	PricePerNight decimal.Decimal `gorm:"column:price_per_night;type:decimal(10,2)" json:"pricePerNight"`
	StartDate     datatypes.Date  `gorm:"column:start_date" json:"startDate"`
	EndDate       datatypes.Date  `gorm:"column:end_date" json:"endDate"`
}
