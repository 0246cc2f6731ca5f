package models

import (
	"time"

	"gorm.io/gorm"
)

type RoomType struct {
	ID uint `gorm:"primaryKey" json:"id"`

	HotelID     uint    `gorm:"index;column:hotel_id" json:"hotelId"`
	TypeName    string  `json:"typeName"`
	Description string  `json:"description"`
	MaxGuests   uint    `json:"max_guests"`

	// Nightly rate. Monetary stay fields are derived from this, never
	// supplied by the caller.
	Price float64 `json:"price"`

	CreatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
