package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"hotelops-backend/services"
	"hotelops-backend/utils"
)

// Auth verifies the bearer token and injects the caller's staff and hotel
// ids into the request context. Everything downstream scopes by hotelID.
func Auth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.JSONError(c, http.StatusUnauthorized, "missing authorization header")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		staffID, hotelID, err := services.ParseStaffToken(tokenString, secret)
		if err != nil {
			utils.JSONError(c, http.StatusUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}

		c.Set("staffID", staffID)
		c.Set("hotelID", hotelID)
		c.Next()
	}
}

// HotelID returns the tenant id the auth middleware stored on the context.
func HotelID(c *gin.Context) uint {
	if v, ok := c.Get("hotelID"); ok {
		if id, ok2 := v.(uint); ok2 {
			return id
		}
	}
	return 0
}
