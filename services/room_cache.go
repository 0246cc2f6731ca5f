package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RoomCache caches per-hotel room listings in redis. A nil client disables
// caching entirely, so the service layer never has to care whether redis is
// configured.
type RoomCache struct {
	RDB *redis.Client
	TTL time.Duration
}

func NewRoomCache(rdb *redis.Client) *RoomCache {
	return &RoomCache{RDB: rdb, TTL: 5 * time.Minute}
}

func roomsCacheKey(hotelID uint) string {
	return fmt.Sprintf("rooms:hotel:%d", hotelID)
}

// Get fills target from cache. Returns false on miss, disabled cache, or a
// stale/unreadable entry.
func (c *RoomCache) Get(ctx context.Context, hotelID uint, target interface{}) bool {
	if c == nil || c.RDB == nil {
		return false
	}
	cached, err := c.RDB.Get(ctx, roomsCacheKey(hotelID)).Result()
	if err != nil {
		return false
	}
	if err := json.Unmarshal([]byte(cached), target); err != nil {
		return false
	}
	return true
}

func (c *RoomCache) Set(ctx context.Context, hotelID uint, value interface{}) {
	if c == nil || c.RDB == nil {
		return
	}
	b, err := json.Marshal(value)
	if err != nil {
		return
	}
	_ = c.RDB.Set(ctx, roomsCacheKey(hotelID), b, c.TTL).Err()
}

// Invalidate drops the hotel's room listing; called after every occupancy
// write so readers never see a stale status.
func (c *RoomCache) Invalidate(ctx context.Context, hotelID uint) {
	if c == nil || c.RDB == nil {
		return
	}
	_ = c.RDB.Del(ctx, roomsCacheKey(hotelID)).Err()
}
