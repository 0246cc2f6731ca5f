package services

import (
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"hotelops-backend/models"
	"hotelops-backend/utils"
)

// OrderService runs the food/service-order lifecycle: the same forward-only
// idiom as stays, over the rank pending -> cancelled -> ready -> paid.
type OrderService struct {
	DB *gorm.DB

	locks *utils.KeyedMutex
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{DB: db, locks: utils.NewKeyedMutex()}
}

type CreateOrderInput struct {
	RoomID      *uint
	TableNumber string
	OrderType   string
	Items       []models.OrderItem
	Discount    float64
	Tax         float64
}

type EditOrderInput struct {
	Status        *string
	PaymentMethod *string
}

func (s *OrderService) Create(hotelID uint, in CreateOrderInput) (*models.Order, error) {
	if len(in.Items) == 0 {
		return nil, &ValidationError{Field: "items", Msg: "at least one line item is required"}
	}
	subtotal := 0.0
	for i, item := range in.Items {
		if item.Quantity <= 0 {
			return nil, &ValidationError{Field: "items", Msg: fmt.Sprintf("item %d has non-positive quantity", i)}
		}
		if item.UnitPrice < 0 {
			return nil, &ValidationError{Field: "items", Msg: fmt.Sprintf("item %d has negative price", i)}
		}
		subtotal += float64(item.Quantity) * item.UnitPrice
	}
	if in.Discount < 0 || in.Discount > subtotal {
		return nil, &ValidationError{Field: "discount", Msg: "discount out of range"}
	}

	itemsJSON, err := json.Marshal(in.Items)
	if err != nil {
		return nil, fmt.Errorf("failed to encode line items: %w", err)
	}

	order := models.Order{
		HotelID:     hotelID,
		RoomID:      in.RoomID,
		TableNumber: in.TableNumber,
		OrderType:   in.OrderType,
		Items:       datatypes.JSON(itemsJSON),
		Discount:    in.Discount,
		Tax:         in.Tax,
		TotalAmount: subtotal - in.Discount + in.Tax,
		Status:      models.OrderStatusPending,
	}

	if err := s.DB.Create(&order).Error; err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	return &order, nil
}

// Edit moves an order forward along the status rank. Marking an order paid
// requires a payment method, either already on record or supplied in the
// same update; missing one is a validation failure, not a lifecycle one.
func (s *OrderService) Edit(hotelID, orderID uint, in EditOrderInput) (*models.Order, error) {
	if in.Status != nil && !models.IsValidOrderStatus(*in.Status) {
		return nil, &ValidationError{Field: "status", Msg: fmt.Sprintf("unknown order status %q", *in.Status)}
	}

	unlock := s.locks.Lock(fmt.Sprintf("order:%d", orderID))
	defer unlock()

	var order models.Order
	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("hotel_id = ?", hotelID).First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to load order %d: %w", orderID, err)
		}

		updates := map[string]interface{}{}
		if in.PaymentMethod != nil {
			updates["payment_method"] = *in.PaymentMethod
		}
		if in.Status != nil && *in.Status != order.Status {
			if !models.CanTransitionOrderStatus(order.Status, *in.Status) {
				return &InvalidTransitionError{Current: order.Status, Requested: *in.Status}
			}
			if *in.Status == models.OrderStatusPaid && in.PaymentMethod == nil && order.PaymentMethod == "" {
				return &ValidationError{Field: "paymentMethod", Msg: "payment method is required to mark an order paid"}
			}
			updates["status"] = *in.Status
		}

		if len(updates) > 0 {
			if err := tx.Model(&order).Updates(updates).Error; err != nil {
				return fmt.Errorf("failed to update order %d: %w", orderID, err)
			}
		}
		var updated models.Order
		if err := tx.First(&updated, orderID).Error; err != nil {
			return fmt.Errorf("failed to reload order %d: %w", orderID, err)
		}
		order = updated
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return &order, nil
}

func (s *OrderService) GetByID(hotelID, orderID uint) (*models.Order, error) {
	var order models.Order
	err := s.DB.Where("hotel_id = ?", hotelID).First(&order, orderID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load order %d: %w", orderID, err)
	}
	return &order, nil
}
