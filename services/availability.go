package services

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"hotelops-backend/models"
	"hotelops-backend/utils"
)

// AvailabilityService decides whether a candidate date range collides with a
// still-valid stay on the same room. Read-only; the stay engine runs it
// inside the per-room critical section so check and create are one unit.
type AvailabilityService struct {
	Clock utils.Clock
}

func NewAvailabilityService(clock utils.Clock) *AvailabilityService {
	return &AvailabilityService{Clock: clock}
}

// HasConflict returns the first blocking stay for [checkIn, checkOut) on the
// room, or nil. Ranges are half-open: checkout day == checkin day does not
// conflict. db may be a transaction handle.
func (s *AvailabilityService) HasConflict(db *gorm.DB, hotelID, roomID uint, checkIn, checkOut time.Time) (*models.Stay, error) {
	var candidates []models.Stay
	err := db.
		Where("hotel_id = ? AND room_id = ?", hotelID, roomID).
		Where("type IN ?", []string{models.StayTypeReserved, models.StayTypeBooked, models.StayTypeWalkIn}).
		Where("status IN ?", []string{models.StayStatusConfirmed, models.StayStatusCheckedIn}).
		Where("check_in_date < ? AND check_out_date > ?", checkOut, checkIn).
		Order("check_in_date").
		Find(&candidates).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query overlapping stays: %w", err)
	}

	now := s.Clock.Now()
	for i := range candidates {
		if s.stillValid(&candidates[i], now) {
			return &candidates[i], nil
		}
	}
	return nil, nil
}

// stillValid applies the per-type validity rules: a pending reservation
// blocks until its payment window lapses, a booked stay always blocks, a
// walk-in blocks only while the guest is in the room.
func (s *AvailabilityService) stillValid(stay *models.Stay, now time.Time) bool {
	switch stay.Type {
	case models.StayTypeReserved:
		if stay.PaymentStatus == models.PaymentStatusPaid {
			return true
		}
		return stay.PaymentDate != nil && !stay.PaymentDate.Before(now)
	case models.StayTypeBooked:
		return true
	case models.StayTypeWalkIn:
		return stay.Status == models.StayStatusCheckedIn
	}
	return false
}
