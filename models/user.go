package models

import "time"

const (
	RoleAdmin = "ADMIN"
	RoleGuest = "GUEST"
)

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	FullName  string    `gorm:"size:150" json:"fullName"`
	Email     string    `gorm:"uniqueIndex;size:150" json:"email"`
	Password  string    `gorm:"size:255" json:"-"` // bcrypt hash, never returned in JSON
	Phone     string    `gorm:"size:30" json:"phone,omitempty"`
	Role      string    `gorm:"size:20;default:GUEST;index" json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}
