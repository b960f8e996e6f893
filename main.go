package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"fieldops-server/config"
	"fieldops-server/database"
	"fieldops-server/jobs"
	"fieldops-server/middleware"
	"fieldops-server/routes"
	"fieldops-server/services"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Load configuration
	config.Load()

	// Initialize database
	if err := database.Initialize(); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}

	// Optionally seed demo data for local development
	if os.Getenv("SEED_DATA") == "true" {
		if err := seedDemoData(); err != nil {
			log.Printf("⚠️ Demo data seeding failed: %v", err)
		}
	}

	// Set Gin mode
	if config.AppConfig.Server.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create router
	router := gin.New()
	router.Use(gin.Recovery())

	// Disable automatic redirects for trailing slashes
	router.RedirectTrailingSlash = false
	router.RedirectFixedPath = false

	// Security headers (must be first)
	router.Use(middleware.SecurityHeadersMiddleware())

	// Input validation
	router.Use(middleware.InputValidationMiddleware())

	// Rate limiting
	router.Use(middleware.RateLimitMiddleware())

	// CORS
	router.Use(middleware.CORSMiddleware())

	// Request logging
	router.Use(middleware.Logger())

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Field Operations Server is running",
			"time":    time.Now().UTC(),
		})
	})

	// Notification engine wiring
	emailService := services.NewSMTPEmailService(config.AppConfig.SMTP)
	notificationService := services.NewNotificationService(
		database.GetDB(),
		emailService,
		config.AppConfig.Notification.UpcomingWindowDays,
		config.AppConfig.Notification.DefaultRecipient,
	)

	// API routes
	api := router.Group("/api/v1")
	{
		notifications := api.Group("/notifications")
		routes.RegisterNotificationRoutes(notifications, notificationService)
	}

	// Start the background scan job
	interval := time.Duration(config.AppConfig.Notification.CheckIntervalMinutes) * time.Minute
	notificationJob := jobs.NewNotificationJob(notificationService, interval)
	notificationJob.Start()
	defer notificationJob.Stop()

	// Get port from environment or use default
	port := config.AppConfig.Server.Port

	log.Printf("Server starting on port %s", port)
	if err := router.Run("0.0.0.0:" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
