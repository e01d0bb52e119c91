package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"sncs-coopledger/internal/adapters/http/middleware"
	"sncs-coopledger/internal/adapters/http/routes"
	"sncs-coopledger/internal/adapters/persistence/models"
	"sncs-coopledger/internal/adapters/persistence/repositories"
	"sncs-coopledger/internal/config"
	"sncs-coopledger/internal/core/services"

	"github.com/gofiber/fiber/v2"
)

// @title SNCS CoopLedger API
// @version 1.0
// @description Cooperative society ledger and interest computation API
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@sncs.co.in

// @host api.coopledger.sncs.co.in
// @BasePath /api/v1
// @schemes https

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

	// Seed the product rate catalog
	if err := config.SeedMasterData(db); err != nil {
		log.Printf("⚠️ Warning: Failed to seed master data: %v", err)
	}

	// Daily maturity sweep (08:30 by default)
	maturityService := services.NewMaturityService(
		repositories.NewGormAccountRepository(db), cfg.MaturityCron)
	if err := maturityService.Start(); err != nil {
		log.Fatalf("❌ Failed to start maturity sweep: %v", err)
	}
	defer maturityService.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "SNCS CoopLedger API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes
	routes.Setup(app, db)

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
