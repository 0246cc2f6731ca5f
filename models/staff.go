package models

import (
	"time"

	"gorm.io/gorm"
)

type Staff struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	HotelID  uint   `gorm:"index;column:hotel_id" json:"hotelId"`
	FullName string `gorm:"size:255" json:"full_name"`
	Username string `gorm:"uniqueIndex;size:150" json:"username"`
	Password string `gorm:"size:255" json:"-"` // store hashed password, never return in JSON
	Role     string `gorm:"size:64" json:"role"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
