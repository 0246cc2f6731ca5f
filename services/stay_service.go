package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"gorm.io/gorm"

	"hotelops-backend/models"
	"hotelops-backend/utils"
)

// StayService is the stay lifecycle engine. It owns stay status, payment
// status and the monetary snapshot, and is the only writer of room occupancy
// during check-in/check-out. Conflict check + create run under a per-room
// lock; edits run under a per-stay lock. Stay write and room side effect
// share one transaction so neither can land without the other.
type StayService struct {
	DB           *gorm.DB
	Rooms        *RoomService
	Availability *AvailabilityService
	Clock        utils.Clock

	locks *utils.KeyedMutex
}

func NewStayService(db *gorm.DB, rooms *RoomService, availability *AvailabilityService, clock utils.Clock) *StayService {
	return &StayService{
		DB:           db,
		Rooms:        rooms,
		Availability: availability,
		Clock:        clock,
		locks:        utils.NewKeyedMutex(),
	}
}

func roomLockKey(roomID uint) string { return fmt.Sprintf("room:%d", roomID) }
func stayLockKey(stayID uint) string { return fmt.Sprintf("stay:%d", stayID) }

type CreateStayInput struct {
	RoomID          uint
	GuestName       string
	PhoneNumber     string
	EmailAddress    string
	Address         string
	CheckInDate     time.Time
	CheckOutDate    time.Time
	Adults          int
	Children        int
	SpecialRequests string
	Type            string
	PaymentMethod   string
	PaymentDate     *time.Time
}

type EditStayInput struct {
	GuestName       *string
	PhoneNumber     *string
	EmailAddress    *string
	SpecialRequests *string
	Status          *string
	PaymentStatus   *string
	PaymentMethod   *string
}

// nightsBetween: at least one night, rounding partial days up.
func nightsBetween(checkIn, checkOut time.Time) int {
	n := int(math.Ceil(checkOut.Sub(checkIn).Hours() / 24))
	if n < 1 {
		n = 1
	}
	return n
}

func validateCreateStay(in *CreateStayInput) error {
	if in.RoomID == 0 {
		return &ValidationError{Field: "roomId", Msg: "room id is required"}
	}
	if in.GuestName == "" {
		return &ValidationError{Field: "guestName", Msg: "guest name is required"}
	}
	if in.PhoneNumber == "" {
		return &ValidationError{Field: "phoneNumber", Msg: "phone number is required"}
	}
	if !models.IsValidStayType(in.Type) {
		return &ValidationError{Field: "type", Msg: fmt.Sprintf("unknown stay type %q", in.Type)}
	}
	if !in.CheckOutDate.After(in.CheckInDate) {
		return &ValidationError{Field: "checkOutDate", Msg: "check-out must be after check-in"}
	}
	if in.Type == models.StayTypeReserved {
		if in.PaymentDate == nil {
			return &ValidationError{Field: "paymentDate", Msg: "payment date is required for a reservation"}
		}
		if !in.PaymentDate.Before(in.CheckInDate) {
			return &ValidationError{Field: "paymentDate", Msg: "payment date must be before check-in"}
		}
	}
	return nil
}

// CreateStay admits a new stay against the room's timeline. Fail-fast
// validation happens before any datastore access; room lookup, conflict
// check, stay insert and the walk-in occupancy side effect are one atomic
// unit under the room's lock.
func (s *StayService) CreateStay(ctx context.Context, hotelID uint, in CreateStayInput) (*models.Stay, error) {
	if in.Adults <= 0 {
		in.Adults = 1
	}
	if in.Children < 0 {
		in.Children = 0
	}
	if err := validateCreateStay(&in); err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(roomLockKey(in.RoomID))
	defer unlock()

	now := s.Clock.Now()
	var stay models.Stay
	roomTouched := false

	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		var room models.Room
		if err := tx.Preload("RoomType").
			Where("hotel_id = ?", hotelID).
			First(&room, in.RoomID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to load room %d: %w", in.RoomID, err)
		}

		if room.Status != models.RoomStatusAvailable {
			return &RoomUnavailableError{RoomID: room.ID, Status: room.Status}
		}

		conflict, err := s.Availability.HasConflict(tx, hotelID, in.RoomID, in.CheckInDate, in.CheckOutDate)
		if err != nil {
			return err
		}
		if conflict != nil {
			return &BookingConflictError{
				StayID:        conflict.ID,
				StayType:      conflict.Type,
				PaymentStatus: conflict.PaymentStatus,
				CheckInDate:   conflict.CheckInDate,
				CheckOutDate:  conflict.CheckOutDate,
			}
		}

		rate := room.RoomType.Price

		stay = models.Stay{
			HotelID:         hotelID,
			RoomID:          in.RoomID,
			GuestName:       in.GuestName,
			PhoneNumber:     in.PhoneNumber,
			EmailAddress:    in.EmailAddress,
			Address:         in.Address,
			CheckInDate:     in.CheckInDate,
			CheckOutDate:    in.CheckOutDate,
			Adults:          in.Adults,
			Children:        in.Children,
			SpecialRequests: in.SpecialRequests,
			Type:            in.Type,
			PaymentMethod:   in.PaymentMethod,
		}

		switch in.Type {
		case models.StayTypeWalkIn:
			stay.Status = models.StayStatusCheckedIn
			stay.PaymentStatus = models.PaymentStatusPaid
			stay.PaymentDate = &now
			stay.TotalAmount = rate
			stay.PaidAmount = rate
		case models.StayTypeBooked:
			stay.Status = models.StayStatusConfirmed
			stay.PaymentStatus = models.PaymentStatusPaid
			stay.PaymentDate = &now
			stay.TotalAmount = rate
			stay.PaidAmount = rate
		case models.StayTypeReserved:
			stay.Status = models.StayStatusConfirmed
			stay.PaymentStatus = models.PaymentStatusPending
			stay.PaymentDate = in.PaymentDate
		}

		if err := tx.Create(&stay).Error; err != nil {
			return fmt.Errorf("failed to create stay: %w", err)
		}

		// A walk-in guest takes the room immediately.
		if in.Type == models.StayTypeWalkIn {
			if err := tx.Model(&models.Room{}).
				Where("id = ? AND hotel_id = ?", in.RoomID, hotelID).
				Updates(map[string]interface{}{"status": models.RoomStatusOccupied}).Error; err != nil {
				return fmt.Errorf("failed to occupy room %d: %w", in.RoomID, err)
			}
			roomTouched = true
		}

		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	if roomTouched {
		s.Rooms.Cache.Invalidate(ctx, hotelID)
	}

	var created models.Stay
	if err := s.DB.Preload("Room.RoomType").First(&created, stay.ID).Error; err != nil {
		return nil, fmt.Errorf("failed to reload stay %d: %w", stay.ID, err)
	}
	return &created, nil
}

func validateEditStay(in *EditStayInput) error {
	if in.Status != nil && !models.IsValidStayStatus(*in.Status) {
		return &ValidationError{Field: "status", Msg: fmt.Sprintf("unknown stay status %q", *in.Status)}
	}
	if in.PaymentStatus != nil && !models.IsValidPaymentStatus(*in.PaymentStatus) {
		return &ValidationError{Field: "paymentStatus", Msg: fmt.Sprintf("unknown payment status %q", *in.PaymentStatus)}
	}
	return nil
}

// EditStay applies guest-field edits and status/payment transitions. A
// rejected transition mutates nothing. Transition to checked_in marks the
// room occupied; checked_out hands the room to housekeeping
// (marked_for_cleaning, never straight back to available).
func (s *StayService) EditStay(ctx context.Context, hotelID, stayID uint, in EditStayInput) (*models.Stay, error) {
	if err := validateEditStay(&in); err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(stayLockKey(stayID))
	defer unlock()

	var stay models.Stay
	roomTouched := false

	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("hotel_id = ?", hotelID).First(&stay, stayID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to load stay %d: %w", stayID, err)
		}

		if in.Status != nil && *in.Status != stay.Status {
			if !models.CanTransitionStayStatus(stay.Status, *in.Status) {
				return &InvalidTransitionError{Current: stay.Status, Requested: *in.Status}
			}
		}
		if in.PaymentStatus != nil && *in.PaymentStatus != stay.PaymentStatus {
			if !models.CanTransitionPaymentStatus(stay.PaymentStatus, *in.PaymentStatus) {
				return &InvalidPaymentTransitionError{Current: stay.PaymentStatus, Requested: *in.PaymentStatus}
			}
		}

		updates := map[string]interface{}{}
		if in.GuestName != nil {
			updates["guest_name"] = *in.GuestName
		}
		if in.PhoneNumber != nil {
			updates["phone_number"] = *in.PhoneNumber
		}
		if in.EmailAddress != nil {
			updates["email_address"] = *in.EmailAddress
		}
		if in.SpecialRequests != nil {
			updates["special_requests"] = *in.SpecialRequests
		}
		if in.PaymentMethod != nil {
			updates["payment_method"] = *in.PaymentMethod
		}
		if in.Status != nil {
			updates["status"] = *in.Status
		}
		if in.PaymentStatus != nil {
			updates["payment_status"] = *in.PaymentStatus
		}

		// Paying off a reservation derives the money snapshot from the
		// room's current rate; repeating paid -> refunded -> paid recomputes
		// the same numbers for unchanged dates and rate.
		becomesPaid := in.PaymentStatus != nil &&
			*in.PaymentStatus == models.PaymentStatusPaid &&
			stay.PaymentStatus != models.PaymentStatusPaid
		if becomesPaid && stay.Type == models.StayTypeReserved {
			var room models.Room
			if err := tx.Preload("RoomType").
				Where("hotel_id = ?", hotelID).
				First(&room, stay.RoomID).Error; err != nil {
				return fmt.Errorf("failed to load room %d for rate: %w", stay.RoomID, err)
			}
			nights := nightsBetween(stay.CheckInDate, stay.CheckOutDate)
			total := room.RoomType.Price * float64(nights)
			updates["total_amount"] = total
			updates["paid_amount"] = total
		}

		if len(updates) > 0 {
			if err := tx.Model(&stay).Updates(updates).Error; err != nil {
				return fmt.Errorf("failed to update stay %d: %w", stayID, err)
			}
		}

		if in.Status != nil {
			var roomStatus string
			switch *in.Status {
			case models.StayStatusCheckedIn:
				roomStatus = models.RoomStatusOccupied
			case models.StayStatusCheckedOut:
				roomStatus = models.RoomStatusMarkedForCleaning
			}
			if roomStatus != "" {
				if err := tx.Model(&models.Room{}).
					Where("id = ? AND hotel_id = ?", stay.RoomID, hotelID).
					Updates(map[string]interface{}{"status": roomStatus}).Error; err != nil {
					return fmt.Errorf("failed to update room %d status: %w", stay.RoomID, err)
				}
				roomTouched = true
			}
		}

		var updated models.Stay
		if err := tx.First(&updated, stayID).Error; err != nil {
			return fmt.Errorf("failed to reload stay %d: %w", stayID, err)
		}
		stay = updated
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	if roomTouched {
		s.Rooms.Cache.Invalidate(ctx, hotelID)
	}
	return &stay, nil
}

func (s *StayService) GetByID(hotelID, stayID uint) (*models.Stay, error) {
	var stay models.Stay
	err := s.DB.Preload("Room.RoomType").
		Where("hotel_id = ?", hotelID).
		First(&stay, stayID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load stay %d: %w", stayID, err)
	}
	return &stay, nil
}

func (s *StayService) List(hotelID uint) ([]models.Stay, error) {
	var stays []models.Stay
	if err := s.DB.Preload("Room").
		Where("hotel_id = ?", hotelID).
		Order("created_at DESC").
		Find(&stays).Error; err != nil {
		return nil, fmt.Errorf("failed to list stays: %w", err)
	}
	return stays, nil
}
