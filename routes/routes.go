package routes

import (
	"SmartHospital/cache"
	"SmartHospital/config"
	"SmartHospital/controllers"
	"SmartHospital/handlers"
	"SmartHospital/middlewares"
	"SmartHospital/repositories"
	"SmartHospital/services"
	"SmartHospital/utils"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRoutes initializes the routes and middleware for the server
func SetupRoutes(cache *cache.Cache, cfg *config.AppConfig, db *gorm.DB, tokens *utils.TokenMaker) http.Handler {
	// Set Gin to release mode
	gin.SetMode(gin.ReleaseMode)

	router := gin.Default()

	// Create and apply CORS middleware configuration
	corsConfig := &middlewares.CorsConfig{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           600,
	}
	router.Use(middlewares.CorsMiddleware(corsConfig))

	// Apply rate limiter middleware
	router.Use(middlewares.NewRateLimiterMiddleware(middlewares.RateLimiterConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		Burst:             cfg.RateLimitBurst,
	}))

	// Apply logging middleware
	router.Use(middlewares.LoggingMiddleware())

	// Repositories
	userRepo := repositories.NewUserRepository(db, cache)
	doctorRepo := repositories.NewDoctorRepository(db, cache)
	patientRepo := repositories.NewPatientRepository(db, cache)
	appointmentRepo := repositories.NewAppointmentRepository(db, cache)
	billRepo := repositories.NewBillRepository(db, cache)
	paymentRepo := repositories.NewPaymentRepository(db, cache)

	// Services
	identityService := services.NewIdentityService(userRepo, doctorRepo, patientRepo)
	notificationService := services.NewNotificationService()
	mailer := utils.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass)

	authService := services.NewAuthService(db, userRepo, doctorRepo, patientRepo, identityService, tokens, mailer, cache)
	appointmentService := services.NewAppointmentService(identityService, appointmentRepo, doctorRepo, patientRepo, notificationService)
	doctorService := services.NewDoctorService(doctorRepo, userRepo)
	patientService := services.NewPatientService(patientRepo, userRepo)
	billService := services.NewBillService(billRepo, appointmentRepo)
	paymentService := services.NewPaymentService(paymentRepo, billRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	appointmentHandler := handlers.NewAppointmentHandler(appointmentService)
	doctorHandler := handlers.NewDoctorHandler(doctorService)
	patientHandler := handlers.NewPatientHandler(patientService)
	billHandler := handlers.NewBillHandler(billService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	notificationHandler := handlers.NewNotificationHandler(notificationService, identityService)

	// Register routes
	authController := controllers.NewAuthController(authHandler, tokens)
	authController.RegisterRoutes(router)

	controllers.SetupAPIRoutes(
		router,
		tokens,
		appointmentHandler,
		doctorHandler,
		patientHandler,
		billHandler,
		paymentHandler,
		notificationHandler,
	)

	controllers.SetupRootRoute(router)

	return router
}
