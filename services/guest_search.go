package services

import (
	"fmt"
	"strings"

	"github.com/schollz/closestmatch"
	"gorm.io/gorm"

	"hotelops-backend/models"
)

// GuestSearchService finds active stays by guest name with typo tolerance,
// for front-desk lookups.
type GuestSearchService struct {
	DB *gorm.DB
}

func NewGuestSearchService(db *gorm.DB) *GuestSearchService {
	return &GuestSearchService{DB: db}
}

func (s *GuestSearchService) SearchByGuestName(hotelID uint, query string, limit int) ([]models.Stay, error) {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil, &ValidationError{Field: "name", Msg: "search query is required"}
	}
	if limit <= 0 {
		limit = 5
	}

	var stays []models.Stay
	if err := s.DB.Preload("Room").
		Where("hotel_id = ?", hotelID).
		Where("status IN ?", []string{models.StayStatusConfirmed, models.StayStatusCheckedIn}).
		Find(&stays).Error; err != nil {
		return nil, fmt.Errorf("failed to load active stays: %w", err)
	}
	if len(stays) == 0 {
		return []models.Stay{}, nil
	}

	byName := make(map[string][]models.Stay, len(stays))
	names := make([]string, 0, len(stays))
	for _, stay := range stays {
		key := strings.ToLower(stay.GuestName)
		if _, seen := byName[key]; !seen {
			names = append(names, key)
		}
		byName[key] = append(byName[key], stay)
	}

	cm := closestmatch.New(names, []int{2, 3})
	matched := cm.ClosestN(query, limit)

	out := make([]models.Stay, 0, limit)
	for _, name := range matched {
		out = append(out, byName[name]...)
		if len(out) >= limit {
			out = out[:limit]
			break
		}
	}
	return out, nil
}
