package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"hotelops-backend/controllers"
	"hotelops-backend/middleware"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

func SetupRouter(
	ac *controllers.AuthController,
	sc *controllers.StayController,
	oc *controllers.OrderController,
	rc *controllers.RoomController,
	jwtSecret string,
) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Logger(), gin.Recovery())

	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		api.POST("/auth/login", ac.Login)

		protected := api.Group("", middleware.Auth(jwtSecret))
		{
			stays := protected.Group("/stays")
			{
				stays.GET("", sc.GetStays)
				stays.POST("", sc.CreateStay)

				// /search must come before /:id
				stays.GET("/search", sc.SearchStays)
				stays.GET("/:id", sc.GetStay)
				stays.PATCH("/:id", sc.UpdateStay)
			}

			orders := protected.Group("/orders")
			{
				orders.POST("", oc.CreateOrder)
				orders.GET("/:id", oc.GetOrder)
				orders.PATCH("/:id", oc.UpdateOrder)
			}

			rooms := protected.Group("/rooms")
			{
				rooms.GET("", rc.GetRooms)
				rooms.GET("/:id", rc.GetRoom)
				rooms.PATCH("/:id/status", rc.UpdateRoomStatus)
			}

			protected.POST("/housekeeping/complete", rc.CompleteHousekeeping)
		}
	}

	return r
}
