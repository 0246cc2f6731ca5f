package services

import (
	"errors"
	"time"

	"github.com/dgrijalva/jwt-go"
)

var ErrInvalidToken = errors.New("invalid_token")

// GenerateStaffToken signs an HS256 token carrying the staff member's id and
// hotel. The hotel claim is the tenant boundary: every business query is
// scoped by it, never by anything in a request body.
func GenerateStaffToken(staffID, hotelID uint, secret string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"staff_id": staffID,
		"hotel_id": hotelID,
		"exp":      time.Now().Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseStaffToken verifies the signature and expiry and returns the staff
// and hotel ids.
func ParseStaffToken(tokenString, secret string) (uint, uint, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return 0, 0, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, 0, ErrInvalidToken
	}
	staffID, okStaff := claims["staff_id"].(float64)
	hotelID, okHotel := claims["hotel_id"].(float64)
	if !okStaff || !okHotel {
		return 0, 0, ErrInvalidToken
	}
	return uint(staffID), uint(hotelID), nil
}
