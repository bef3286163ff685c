package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"

	"hotel-reservation-backend/config"
	"hotel-reservation-backend/controllers"
	"hotel-reservation-backend/routes"
	"hotel-reservation-backend/services"
)

func main() {
	// Load .env (optional)
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  .env not found or couldn't load it; continuing with environment variables")
	}

	// Connect database (config.ConnectDatabase sets config.DB)
	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("❌ Database connect failed: %v", err)
	}
	db := config.DB
	if db == nil {
		log.Fatal("❌ config.DB is nil after ConnectDatabase()")
	}
	log.Println("✅ Database connection established and migrations applied.")

	// The reporting read-model runs raw SQL over the same pool.
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("❌ Cannot get raw sql.DB: %v", err)
	}
	reportDB := sqlx.NewDb(sqlDB, "mysql")

	// Redis backs the session store.
	redisClient, err := config.NewRedisClient()
	if err != nil {
		log.Fatalf("❌ Redis connect failed: %v", err)
	}

	sessionTTL := config.SessionTTL()
	sessions := services.NewRedisSessionStore(redisClient, sessionTTL)
	media := services.NewMediaStoreFromEnv()

	// Initialize services
	authService := services.NewAuthService(db, sessions)
	reservationService := services.NewReservationService(db, services.NewFirstAvailableAllocator())
	roomTypeService := services.NewRoomTypeService(db)
	analyticsService := services.NewAnalyticsService(reportDB)

	// Initialize controllers
	authController := controllers.NewAuthController(authService, sessionTTL)
	reservationController := controllers.NewReservationController(reservationService)
	roomTypeController := controllers.NewRoomTypeController(roomTypeService, media)
	analyticsController := controllers.NewAnalyticsController(analyticsService)
	uploadController := controllers.NewUploadController(media)

	// Build router
	router := routes.SetupRouter(
		authController,
		reservationController,
		roomTypeController,
		analyticsController,
		uploadController,
		sessions,
	)

	// Port from env (prefer), fallback to 8080
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	addr := ":" + port

	srv := &http.Server{
		Addr:    addr,
		Handler: router,
		// useful timeouts
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("🚀 Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ ListenAndServe(): %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with timeout
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("⚠️  Shutdown signal received, shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	if err := redisClient.Close(); err != nil {
		log.Printf("warning: redis close: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}
