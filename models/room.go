package models

import (
	"time"

	"gorm.io/gorm"
)

type Room struct {
	gorm.Model

	HotelID uint `json:"hotelId" gorm:"column:hotel_id;uniqueIndex:idx_hotel_room_number"`

	// Nullable so a payload without a valid FK doesn't insert 0.
	RoomTypeID *uint  `json:"roomTypeId,omitempty" gorm:"column:room_type_id"`
	RoomNumber string `json:"roomNumber" gorm:"column:room_number;uniqueIndex:idx_hotel_room_number;type:varchar(50)"`

	// Occupancy status is written only by the stay lifecycle and the
	// housekeeping flow.
	Status        string     `json:"status" gorm:"size:32;default:available"`
	Floor         string     `json:"floor" gorm:"type:varchar(10)"`
	LastCleanedAt *time.Time `json:"lastCleanedAt,omitempty" gorm:"column:last_cleaned_at"`
	Note          string     `json:"note" gorm:"type:text"`

	RoomType RoomType `gorm:"foreignKey:RoomTypeID" json:"roomType,omitempty"`
}
