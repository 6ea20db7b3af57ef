package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"scrapseva/internal/adapters/http/middleware"
	"scrapseva/internal/adapters/http/routes"
	"scrapseva/internal/adapters/persistence/models"
	"scrapseva/internal/adapters/persistence/repositories"
	"scrapseva/internal/config"
	"scrapseva/internal/core/services"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/gofiber/fiber/v2"

	_ "scrapseva/docs" // Swagger docs
)

// @title ScrapSeva API
// @version 1.0
// @description Scrap donation and animal welfare platform API
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@scrapseva.org

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host api.scrapseva.org
// @BasePath /api/v1
// @schemes https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

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

	// Seed the bootstrap admin and starter shelters
	if err := config.SeedData(db); err != nil {
		log.Printf("⚠️ Warning: Failed to seed data: %v", err)
	}

	// AWS clients for email (SES) and OTP SMS (SNS)
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background())
	if err != nil {
		log.Printf("⚠️ Warning: AWS config not loaded, email and SMS disabled: %v", err)
	}
	emailService := services.NewEmailService(awsCfg)
	smsService := services.NewSMSService(awsCfg, os.Getenv("SNS_SMS_ENABLED") == "true")

	// Cron jobs: nightly token purge, morning pickup reminders
	deviceTokenRepo := repositories.NewDeviceTokenRepository(db)
	cronService := services.NewCronService(
		repositories.NewRefreshTokenRepository(db),
		repositories.NewResetTokenRepository(db),
		repositories.NewDonationRepository(db),
		services.NewNotificationService(cfg, deviceTokenRepo),
	)
	if err := cronService.Start(); err != nil {
		log.Fatalf("❌ Failed to start cron scheduler: %v", err)
	}
	defer cronService.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "ScrapSeva API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes (pass db and cfg for dependency injection)
	routes.Setup(app, db, cfg, emailService, smsService)

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
