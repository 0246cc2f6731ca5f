package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"hotelops-backend/models"
)

// RoomService is the room directory: lookup by id, occupancy-status writes
// and bulk housekeeping completion. Every query is scoped to the caller's
// hotel.
type RoomService struct {
	DB    *gorm.DB
	Cache *RoomCache
}

func NewRoomService(db *gorm.DB, cache *RoomCache) *RoomService {
	return &RoomService{DB: db, Cache: cache}
}

func (s *RoomService) FindByID(hotelID, roomID uint) (models.Room, error) {
	var room models.Room
	err := s.DB.Preload("RoomType").
		Where("hotel_id = ?", hotelID).
		First(&room, roomID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return room, ErrNotFound
		}
		return room, fmt.Errorf("failed to load room %d: %w", roomID, err)
	}
	return room, nil
}

func (s *RoomService) List(ctx context.Context, hotelID uint) ([]models.Room, error) {
	var rooms []models.Room
	if s.Cache.Get(ctx, hotelID, &rooms) && len(rooms) > 0 {
		return rooms, nil
	}

	if err := s.DB.Preload("RoomType").
		Where("hotel_id = ?", hotelID).
		Order("room_number").
		Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}

	s.Cache.Set(ctx, hotelID, rooms)
	return rooms, nil
}

// UpdateStatus is the housekeeping/maintenance write path. Lifecycle side
// effects go through the stay engine's transaction instead.
func (s *RoomService) UpdateStatus(ctx context.Context, hotelID, roomID uint, status string) error {
	if !models.IsValidRoomStatus(status) {
		return &ValidationError{Field: "status", Msg: fmt.Sprintf("unknown room status %q", status)}
	}

	res := s.DB.Model(&models.Room{}).
		Where("id = ? AND hotel_id = ?", roomID, hotelID).
		Updates(map[string]interface{}{"status": status})
	if res.Error != nil {
		return fmt.Errorf("failed to update room %d status: %w", roomID, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}

	s.Cache.Invalidate(ctx, hotelID)
	return nil
}

// MarkManyAvailable flips cleaned rooms back to available and stamps
// last_cleaned_at. Used by housekeeping completion.
func (s *RoomService) MarkManyAvailable(ctx context.Context, hotelID uint, roomIDs []uint, cleanedAt time.Time) (int64, error) {
	if len(roomIDs) == 0 {
		return 0, &ValidationError{Field: "roomIds", Msg: "no room ids provided"}
	}

	res := s.DB.Model(&models.Room{}).
		Where("id IN ? AND hotel_id = ?", roomIDs, hotelID).
		Updates(map[string]interface{}{
			"status":          models.RoomStatusAvailable,
			"last_cleaned_at": cleanedAt,
		})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to mark rooms available: %w", res.Error)
	}

	s.Cache.Invalidate(ctx, hotelID)
	return res.RowsAffected, nil
}
