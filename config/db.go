package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	gosql "github.com/go-sql-driver/mysql"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"hotelops-backend/models"
)

var DB *gorm.DB

func envOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

func baseMySQLConfig() *gosql.Config {
	cfg := gosql.NewConfig()
	cfg.Net = "tcp"
	cfg.ParseTime = true
	cfg.Loc = time.Local
	cfg.Params = map[string]string{"charset": "utf8mb4"}
	return cfg
}

func mysqlDSNFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("mysql url missing database name")
	}

	port := u.Port()
	if port == "" {
		port = "3306"
	}

	cfg := baseMySQLConfig()
	cfg.User = u.User.Username()
	cfg.Passwd, _ = u.User.Password()
	cfg.Addr = u.Hostname() + ":" + port
	cfg.DBName = dbName
	for key, values := range u.Query() {
		if len(values) > 0 {
			cfg.Params[key] = values[0]
		}
	}
	return cfg.FormatDSN(), nil
}

func resolveMySQLDSN() (string, error) {
	raw := strings.TrimSpace(os.Getenv("MYSQL_URL"))
	if raw == "" {
		raw = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	}

	if raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			return mysqlDSNFromURL(raw)
		}
		if _, err := gosql.ParseDSN(raw); err != nil {
			return "", fmt.Errorf("invalid mysql dsn: %w", err)
		}
		return raw, nil
	}

	cfg := baseMySQLConfig()
	cfg.User = envOrDefault("DB_USER", "root")
	cfg.Passwd = envOrDefault("DB_PASS", "")
	cfg.Addr = envOrDefault("DB_HOST", "127.0.0.1") + ":" + envOrDefault("DB_PORT", "3306")
	cfg.DBName = envOrDefault("DB_NAME", "hotelops_db")
	return cfg.FormatDSN(), nil
}

// SeedDatabase ensures a default hotel, room types, a handful of rooms and a
// front-desk login so a fresh install is usable.
func SeedDatabase() {
	var hotelCount int64
	DB.Model(&models.Hotel{}).Count(&hotelCount)
	if hotelCount == 0 {
		hotel := models.Hotel{Name: "Default Hotel"}
		if err := DB.Create(&hotel).Error; err != nil {
			log.Printf("warning: failed to seed default hotel: %v", err)
			return
		}
		log.Println("Default hotel seeded")
	}

	var hotel models.Hotel
	if err := DB.Order("id").First(&hotel).Error; err != nil {
		log.Printf("warning: no hotel available for seeding: %v", err)
		return
	}

	var rtCount int64
	DB.Model(&models.RoomType{}).Where("hotel_id = ?", hotel.ID).Count(&rtCount)
	if rtCount == 0 {
		roomTypes := []models.RoomType{
			{HotelID: hotel.ID, TypeName: "Standard", Description: "Standard Room", MaxGuests: 2, Price: 100},
			{HotelID: hotel.ID, TypeName: "Superior", Description: "Superior Room", MaxGuests: 3, Price: 150},
			{HotelID: hotel.ID, TypeName: "Deluxe", Description: "Deluxe Room", MaxGuests: 4, Price: 220},
		}
		DB.Create(&roomTypes)
		log.Println("RoomTypes seeded")

		var roomCount int64
		DB.Model(&models.Room{}).Where("hotel_id = ?", hotel.ID).Count(&roomCount)
		if roomCount == 0 {
			rooms := make([]models.Room, 0, 9)
			for floor := 1; floor <= 3; floor++ {
				for n := 1; n <= 3; n++ {
					rt := roomTypes[n-1]
					rooms = append(rooms, models.Room{
						HotelID:    hotel.ID,
						RoomTypeID: &rt.ID,
						RoomNumber: fmt.Sprintf("%d0%d", floor, n),
						Floor:      fmt.Sprintf("%d", floor),
						Status:     models.RoomStatusAvailable,
					})
				}
			}
			DB.Create(&rooms)
			log.Println("Rooms seeded")
		}
	}

	var staffCount int64
	DB.Model(&models.Staff{}).Count(&staffCount)
	if staffCount == 0 {
		hash, err := bcrypt.GenerateFromPassword([]byte(envOrDefault("SEED_STAFF_PASSWORD", "frontdesk123")), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("warning: failed to hash seed staff password: %v", err)
			return
		}
		staff := models.Staff{
			HotelID:  hotel.ID,
			FullName: "Front Desk",
			Username: "frontdesk@hotel.local",
			Password: string(hash),
			Role:     "receptionist",
		}
		if err := DB.Create(&staff).Error; err != nil {
			log.Printf("warning: failed to create seed staff: %v", err)
		} else {
			log.Println("Seed staff created")
		}
	}
}

func ConnectDatabase() error {
	dsn, err := resolveMySQLDSN()
	if err != nil {
		return err
	}

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logger.Warn,
			Colorful:      true,
		},
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: newLogger})
	if err != nil {
		return err
	}
	DB = db

	// AutoMigrate in parent->child order
	if err := DB.AutoMigrate(
		&models.Hotel{},
		&models.Staff{},
		&models.RoomType{},
		&models.Room{},
		&models.Stay{},
		&models.Order{},
	); err != nil {
		return err
	}

	SeedDatabase()
	return nil
}
