package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// OrderItem is a line item snapshot; UnitPrice is the price at order time.
type OrderItem struct {
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
}

type Order struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	HotelID uint  `gorm:"index;column:hotel_id" json:"hotelId"`
	RoomID  *uint `gorm:"index;column:room_id" json:"roomId,omitempty"`

	TableNumber string `gorm:"size:50;column:table_number" json:"tableNumber,omitempty"`
	OrderType   string `gorm:"size:32;column:order_type" json:"orderType"`

	Items datatypes.JSON `gorm:"column:items" json:"items"`

	Discount    float64 `json:"discount"`
	Tax         float64 `json:"tax"`
	TotalAmount float64 `gorm:"column:total_amount" json:"totalAmount"`

	Status        string `gorm:"size:32;index" json:"status"`
	PaymentMethod string `gorm:"size:64;column:payment_method" json:"paymentMethod,omitempty"`
}
