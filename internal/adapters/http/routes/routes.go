package routes

import (
	"time"

	"scrapseva/internal/adapters/http/handlers"
	"scrapseva/internal/adapters/http/middleware"
	"scrapseva/internal/adapters/persistence/repositories"
	"scrapseva/internal/config"
	"scrapseva/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config, emailService *services.EmailService, smsService *services.SMSService) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)
	resetTokenRepo := repositories.NewResetTokenRepository(db)
	donationRepo := repositories.NewDonationRepository(db)
	gaudaanRepo := repositories.NewGaudaanRepository(db)
	taskRepo := repositories.NewTaskRepository(db)
	shelterRepo := repositories.NewShelterRepository(db)
	contactRepo := repositories.NewContactRepository(db)
	logoRepo := repositories.NewLogoRepository(db)
	deviceTokenRepo := repositories.NewDeviceTokenRepository(db)

	// Initialize services
	otpService := services.NewOTPService()
	notificationService := services.NewNotificationService(cfg, deviceTokenRepo)
	googleVerifier := services.NewGoogleVerifier(cfg.Google.ClientID)

	authService := services.NewAuthService(userRepo, refreshTokenRepo, resetTokenRepo, otpService, googleVerifier, emailService, cfg)
	userService := services.NewUserService(userRepo, refreshTokenRepo)
	donationService := services.NewDonationService(donationRepo, userRepo, notificationService)
	gaudaanService := services.NewGaudaanService(gaudaanRepo, userRepo, shelterRepo, notificationService)
	taskService := services.NewTaskService(taskRepo, userRepo, notificationService)
	shelterService := services.NewShelterService(shelterRepo)
	contactService := services.NewContactService(contactRepo, emailService)
	logoService := services.NewLogoService(logoRepo)
	dashboardService := services.NewDashboardService(db)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService, otpService, smsService, cfg)
	userHandler := handlers.NewUserHandler(userService, deviceTokenRepo, cfg)
	donationHandler := handlers.NewDonationHandler(donationService, cfg)
	gaudaanHandler := handlers.NewGaudaanHandler(gaudaanService)
	taskHandler := handlers.NewTaskHandler(taskService)
	adminHandler := handlers.NewAdminHandler(dashboardService, userService, shelterService, logoService, contactService, cfg)
	publicHandler := handlers.NewPublicHandler(contactService, logoService, shelterService)

	// Root and health check
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"service": "scrapseva-api", "docs": "/swagger/index.html"})
	})
	app.Get("/health", healthHandler.Check)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Uploaded files (profile images, donation photos, logos)
	app.Static(cfg.Upload.PublicPath, cfg.Upload.Dir)

	// API v1 group
	apiV1 := app.Group("/api/v1")

	setupPublicRoutes(apiV1, publicHandler)
	setupAuthRoutes(apiV1.Group("/auth"), authHandler, cfg)
	setupProfileRoutes(apiV1, userHandler, cfg)
	setupDonorRoutes(apiV1, donationHandler, gaudaanHandler, cfg)
	setupDealerRoutes(apiV1.Group("/dealer"), donationHandler, cfg)
	setupVolunteerRoutes(apiV1.Group("/volunteer"), gaudaanHandler, taskHandler, cfg)
	setupAdminRoutes(apiV1.Group("/admin"), adminHandler, donationHandler, gaudaanHandler, taskHandler, cfg)
}

// setupPublicRoutes configures the unauthenticated landing-page routes
func setupPublicRoutes(router fiber.Router, handler *handlers.PublicHandler) {
	router.Post("/contact", middleware.StrictRateLimiter(), handler.SubmitContact)
	router.Get("/logos", middleware.PublicCache(time.Hour), handler.ListLogos)
	router.Get("/shelters", middleware.PublicCache(10*time.Minute), handler.ListShelters)
}

// setupAuthRoutes configures authentication routes
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler, cfg *config.Config) {
	router.Use(middleware.NoCacheHeaders())

	// Public routes
	router.Post("/send-otp", middleware.StrictRateLimiter(), handler.SendOTP)
	router.Post("/verify-otp", middleware.AuthRateLimiter(), handler.VerifyOTP)
	router.Post("/signup", middleware.AuthRateLimiter(), handler.Signup)
	router.Post("/signin", middleware.AuthRateLimiter(), handler.Signin)
	router.Post("/google", middleware.AuthRateLimiter(), handler.GoogleSignin)
	router.Post("/refresh", handler.Refresh)
	router.Post("/logout", handler.Logout)
	router.Post("/forgot-password", middleware.StrictRateLimiter(), handler.ForgotPassword)
	router.Post("/reset-password", middleware.StrictRateLimiter(), handler.ResetPassword)
	router.Post("/reset-password/:token", middleware.StrictRateLimiter(), handler.ResetPassword)

	// Protected routes
	router.Get("/me", middleware.AuthMiddleware(cfg), handler.Me)
}

// setupProfileRoutes configures self-service profile routes
func setupProfileRoutes(router fiber.Router, handler *handlers.UserHandler, cfg *config.Config) {
	profile := router.Group("/profile")
	profile.Use(middleware.AuthMiddleware(cfg))
	profile.Get("/", handler.GetProfile)
	profile.Patch("/", handler.UpdateProfile)
	profile.Patch("/password", handler.ChangePassword)
	profile.Delete("/", handler.DeleteAccount)

	tokens := router.Group("/device-tokens")
	tokens.Use(middleware.AuthMiddleware(cfg))
	tokens.Post("/", handler.RegisterDeviceToken)
	tokens.Delete("/", handler.RemoveDeviceToken)

	// Mobile clients register push tokens under /notifications
	router.Post("/notifications/register", middleware.AuthMiddleware(cfg), handler.RegisterDeviceToken)
}

// setupDonorRoutes configures the donor-facing donation and gaudaan routes
func setupDonorRoutes(router fiber.Router, donationHandler *handlers.DonationHandler, gaudaanHandler *handlers.GaudaanHandler, cfg *config.Config) {
	donations := router.Group("/donations")
	donations.Use(middleware.AuthMiddleware(cfg))
	donations.Post("/", donationHandler.Create)
	donations.Get("/my", donationHandler.ListMine)
	donations.Get("/:id", donationHandler.GetDetail)
	donations.Patch("/:id/cancel", donationHandler.Cancel)

	gaudaan := router.Group("/gaudaan")
	gaudaan.Use(middleware.AuthMiddleware(cfg))
	gaudaan.Post("/", gaudaanHandler.Create)
	gaudaan.Get("/my", gaudaanHandler.ListMine)
	gaudaan.Get("/:id", gaudaanHandler.GetDetail)
}

// setupDealerRoutes configures the dealer pickup routes
func setupDealerRoutes(router fiber.Router, handler *handlers.DonationHandler, cfg *config.Config) {
	router.Use(middleware.AuthMiddleware(cfg))
	router.Use(middleware.DealerOnly())

	router.Get("/pickups", handler.ListAssigned)
	router.Get("/pickups/:id", handler.GetDetail)
	router.Patch("/pickups/:id/accept", handler.Accept)
	router.Patch("/pickups/:id/reject", handler.Decline)
	router.Patch("/pickups/:id/pickedup", handler.MarkPickedUp)
	router.Patch("/pickups/:id/donated", handler.MarkDonated)
	router.Get("/history", handler.ListHistory)
}

// setupVolunteerRoutes configures the volunteer routes
func setupVolunteerRoutes(router fiber.Router, gaudaanHandler *handlers.GaudaanHandler, taskHandler *handlers.TaskHandler, cfg *config.Config) {
	router.Use(middleware.AuthMiddleware(cfg))
	router.Use(middleware.VolunteerOnly())

	router.Get("/gaudaan", gaudaanHandler.ListAssigned)
	router.Get("/gaudaan/:id", gaudaanHandler.GetDetail)
	router.Patch("/gaudaan/:id/status", gaudaanHandler.UpdateStatus)
	router.Patch("/gaudaan/:id/release", gaudaanHandler.Release)
	router.Get("/tasks", taskHandler.ListMine)
	router.Patch("/tasks/:id/complete", taskHandler.Complete)
}

// setupAdminRoutes configures the admin routes
func setupAdminRoutes(
	router fiber.Router,
	adminHandler *handlers.AdminHandler,
	donationHandler *handlers.DonationHandler,
	gaudaanHandler *handlers.GaudaanHandler,
	taskHandler *handlers.TaskHandler,
	cfg *config.Config,
) {
	router.Use(middleware.AuthMiddleware(cfg))
	router.Use(middleware.AdminOnly())

	// Dashboard: the full bundle plus one endpoint per figure. The figures
	// live at the group root (the dashboard fires nine parallel calls); the
	// /dashboard/ prefix is kept for clients that group them.
	router.Get("/dashboard", adminHandler.Dashboard)
	for _, stat := range []string{
		"totalpickups", "totalscraped", "totaldonationValue",
		"activeUsers", "activeDealers", "activeVolunteers",
		"pendingDonation", "shelters", "logos",
	} {
		router.Get("/"+stat, adminHandler.Stat(stat))
		router.Get("/dashboard/"+stat, adminHandler.Stat(stat))
	}

	// Users, dealers, volunteers
	router.Get("/users", adminHandler.ListUsers)
	router.Get("/users/:id", adminHandler.GetUser)
	router.Patch("/users/:id", adminHandler.UpdateUser)
	router.Delete("/users/:id", adminHandler.DeleteUser)
	router.Get("/dealers", adminHandler.ListDealers)
	// The admin panel addresses a single dealer through /dealer/:id
	router.Get("/dealer/:id", adminHandler.GetUser)
	router.Patch("/dealer/:id", adminHandler.UpdateUser)
	router.Delete("/dealer/:id", adminHandler.DeleteUser)
	router.Get("/volunteers", adminHandler.ListVolunteers)

	// Shelters
	router.Get("/shelters", adminHandler.ListShelters)
	router.Get("/shelters/:id", adminHandler.GetShelter)
	router.Post("/shelters", adminHandler.CreateShelter)
	router.Patch("/shelters/:id", adminHandler.UpdateShelter)
	router.Delete("/shelters/:id", adminHandler.DeleteShelter)
	// Singular form used by the admin panel
	router.Get("/shelter/:id", adminHandler.GetShelter)
	router.Patch("/shelter/:id", adminHandler.UpdateShelter)
	router.Delete("/shelter/:id", adminHandler.DeleteShelter)

	// Partner logos
	router.Post("/logos", adminHandler.UploadLogo)
	router.Delete("/logos/:id", adminHandler.DeleteLogo)

	// Contact inbox
	router.Get("/contact-messages", adminHandler.ListContactMessages)

	// Donations
	router.Get("/donations", donationHandler.ListAll)
	router.Get("/donations/:id", donationHandler.GetDetail)
	// The admin panel calls donations "pickups", same as the dealer app
	router.Get("/pickups", donationHandler.ListAll)
	router.Get("/pickups/:id", donationHandler.GetDetail)
	router.Patch("/assigndealer/:id", donationHandler.AssignDealer)
	router.Patch("/donations/:id/reject", donationHandler.Reject)
	router.Patch("/donations/:id/donated", donationHandler.MarkDonated)
	router.Patch("/donations/:id/processed", donationHandler.MarkProcessed)
	router.Patch("/donations/:id/recycled", donationHandler.MarkRecycled)

	// Gaudaan
	router.Get("/gaudaans", gaudaanHandler.ListAll)
	router.Get("/gaudaans/:id", gaudaanHandler.GetDetail)
	router.Patch("/assignVolunteer/:id", gaudaanHandler.AssignVolunteer)
	router.Patch("/gaudaans/:id/reject", gaudaanHandler.Reject)
	// Unprefixed reject path used by the admin panel
	router.Patch("/reject/:id", gaudaanHandler.Reject)

	// Volunteer tasks
	router.Post("/tasks", taskHandler.Create)
	router.Get("/tasks", taskHandler.ListAll)
	router.Get("/tasks/:id", taskHandler.GetByID)
	router.Patch("/tasks/:id", taskHandler.Update)
	router.Patch("/tasks/:id/status", taskHandler.UpdateStatus)
	router.Delete("/tasks/:id", taskHandler.Delete)
}
