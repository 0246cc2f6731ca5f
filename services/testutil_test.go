package services

import (
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"hotelops-backend/models"
	"hotelops-backend/utils"
)

// fixedClock makes conflict/expiry checks deterministic.
type fixedClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fixedClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = t
}

func date(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return t
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// One shared in-memory database per test; cache=shared keeps gorm's
	// pooled connections on the same data.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Hotel{},
		&models.Staff{},
		&models.RoomType{},
		&models.Room{},
		&models.Stay{},
		&models.Order{},
	); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}
	return db
}

type fixture struct {
	db      *gorm.DB
	clock   *fixedClock
	stays   *StayService
	orders  *OrderService
	rooms   *RoomService
	hotelID uint
	roomID  uint
}

// newFixture seeds one hotel with room 101 (rate 100/night) and wires the
// service graph without redis.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := newTestDB(t)

	hotel := models.Hotel{Name: "Test Hotel"}
	if err := db.Create(&hotel).Error; err != nil {
		t.Fatalf("failed to seed hotel: %v", err)
	}
	roomType := models.RoomType{HotelID: hotel.ID, TypeName: "Standard", MaxGuests: 2, Price: 100}
	if err := db.Create(&roomType).Error; err != nil {
		t.Fatalf("failed to seed room type: %v", err)
	}
	room := models.Room{
		HotelID:    hotel.ID,
		RoomTypeID: &roomType.ID,
		RoomNumber: "101",
		Status:     models.RoomStatusAvailable,
	}
	if err := db.Create(&room).Error; err != nil {
		t.Fatalf("failed to seed room: %v", err)
	}

	clock := &fixedClock{t: date("2025-03-01")}
	roomService := NewRoomService(db, NewRoomCache(nil))
	stayService := NewStayService(db, roomService, NewAvailabilityService(clock), clock)

	return &fixture{
		db:      db,
		clock:   clock,
		stays:   stayService,
		orders:  NewOrderService(db),
		rooms:   roomService,
		hotelID: hotel.ID,
		roomID:  room.ID,
	}
}

func (f *fixture) roomStatus(t *testing.T) string {
	t.Helper()
	var room models.Room
	if err := f.db.First(&room, f.roomID).Error; err != nil {
		t.Fatalf("failed to load room: %v", err)
	}
	return room.Status
}

func strPtr(s string) *string { return &s }

var _ utils.Clock = (*fixedClock)(nil)
