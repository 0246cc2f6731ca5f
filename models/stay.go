package models

import (
	"time"

	"gorm.io/gorm"
)

// Stay is a guest's reservation/occupancy record for one room over a date
// range. Never deleted; it only moves to a terminal status.
type Stay struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	HotelID uint `gorm:"index;column:hotel_id" json:"hotelId"`
	RoomID  uint `gorm:"index;column:room_id" json:"roomId"`

	GuestName    string `gorm:"size:255" json:"guestName"`
	PhoneNumber  string `gorm:"size:50" json:"phoneNumber"`
	EmailAddress string `gorm:"size:150" json:"emailAddress,omitempty"`
	Address      string `gorm:"type:text" json:"address,omitempty"`

	CheckInDate  time.Time `gorm:"column:check_in_date;index" json:"checkInDate"`
	CheckOutDate time.Time `gorm:"column:check_out_date;index" json:"checkOutDate"`

	Adults          int    `gorm:"default:1" json:"adults"`
	Children        int    `gorm:"default:0" json:"children"`
	SpecialRequests string `gorm:"type:text" json:"specialRequests,omitempty"`

	Type          string `gorm:"size:32;index" json:"type"`
	Status        string `gorm:"size:32;index" json:"status"`
	PaymentStatus string `gorm:"size:32;column:payment_status" json:"paymentStatus"`

	PaymentMethod string     `gorm:"size:64;column:payment_method" json:"paymentMethod,omitempty"`
	PaymentDate   *time.Time `gorm:"column:payment_date" json:"paymentDate,omitempty"`

	// Derived from the room type's rate once payment lands; not caller-supplied.
	TotalAmount float64 `gorm:"column:total_amount" json:"totalAmount"`
	PaidAmount  float64 `gorm:"column:paid_amount" json:"paidAmount"`

	Room Room `gorm:"foreignKey:RoomID;references:ID" json:"room,omitempty"`
}
