package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"mylibrary/internal/adapters/http/middleware"
	"mylibrary/internal/adapters/http/routes"
	"mylibrary/internal/adapters/persistence/models"
	"mylibrary/internal/config"

	"github.com/gofiber/fiber/v2"

	_ "mylibrary/docs" // Swagger docs
)

// @title MyLibrary API
// @version 1.0
// @description Library lending backend: books, borrowers and loans with per-book availability control.

// @contact.name API Support
// @contact.email support@library.example.org

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:3000
// @BasePath /

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer config.CloseDatabase()

	// Auto migrate (creates tables if not exist)
	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("❌ Failed to auto migrate: %v", err)
	}
	log.Println("✅ Database migration completed")

	// Seed starter catalog
	if err := config.SeedLibraryData(db); err != nil {
		log.Printf("⚠️ Warning: Failed to seed library data: %v", err)
	}

	// Connect to redis for the read-side book cache (nil when disabled)
	rdb, err := config.ConnectRedis(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to connect to redis: %v", err)
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "MyLibrary API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes (pass db, redis and cfg for dependency injection)
	statsService := routes.Setup(app, db, rdb, cfg)

	// Start daily loan stats snapshot
	if err := statsService.Start(); err != nil {
		log.Fatalf("❌ Failed to start stats service: %v", err)
	}
	defer statsService.Stop()

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	log.Printf("🚀 Server starting on port %s [MODE: %s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("❌ Error during shutdown: %v", err)
	}
	log.Println("✅ Server stopped gracefully")
}
