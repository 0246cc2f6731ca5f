package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"hotelops-backend/config"
	"hotelops-backend/controllers"
	"hotelops-backend/routes"
	"hotelops-backend/services"
	"hotelops-backend/utils"
)

func main() {
	// Load .env (optional)
	if err := godotenv.Load(); err != nil {
		log.Println(".env not found or couldn't load it; continuing with environment variables")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("ERROR: JWT_SECRET environment variable is not set.")
	}

	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("Database connect failed: %v", err)
	}
	db := config.DB
	if db == nil {
		log.Fatal("config.DB is nil after ConnectDatabase()")
	}
	log.Println("Database connection established and migrations applied.")

	rdb, err := config.ConnectRedis()
	if err != nil {
		log.Printf("warning: redis unavailable, room cache disabled: %v", err)
		rdb = nil
	}

	clock := utils.SystemClock{}

	// Initialize services
	roomCache := services.NewRoomCache(rdb)
	roomService := services.NewRoomService(db, roomCache)
	availability := services.NewAvailabilityService(clock)
	stayService := services.NewStayService(db, roomService, availability, clock)
	orderService := services.NewOrderService(db)
	guestSearch := services.NewGuestSearchService(db)

	// Initialize controllers
	authController := controllers.NewAuthController(db, jwtSecret)
	stayController := controllers.NewStayController(stayService, guestSearch)
	orderController := controllers.NewOrderController(orderService)
	roomController := controllers.NewRoomController(roomService, clock)

	router := routes.SetupRouter(authController, stayController, orderController, roomController, jwtSecret)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	addr := ":" + port

	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with timeout
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("Shutdown signal received, shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped gracefully")
}
