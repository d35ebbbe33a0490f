package main

import (
	"log"
	"net/http"
	"os"

	"foodiego-api/config"
	"foodiego-api/handlers"
	"foodiego-api/notify"
	"foodiego-api/routes"
	"foodiego-api/security"

	"github.com/gin-gonic/gin"
)

func main() {
	// Set Gin mode
	mode := os.Getenv("GIN_MODE")
	if mode == "" {
		gin.SetMode(gin.DebugMode)
	}

	settings := config.Load()
	config.InitDB(settings.DBPath)

	// Without SMTP credentials, notifications are logged and dropped
	var notifier notify.Notifier = notify.Noop{}
	if settings.SMTPUser != "" {
		notifier = notify.NewMailer(settings.SMTPHost, settings.SMTPPort,
			settings.SMTPUser, settings.SMTPPass, settings.EmailFrom)
	}

	h := routes.Handlers{
		Auth: &handlers.AuthHandler{
			Guard:       security.NewLoginGuard(settings.MaxLoginFails, settings.LockoutDuration),
			PartnerCode: os.Getenv("PARTNER_CODE"),
		},
		Orders:   &handlers.OrderHandler{Notifier: notifier},
		Delivery: &handlers.DeliveryHandler{Notifier: notifier},
		Limiter:  security.NewRateLimiter(settings.RateLimit, settings.RateWindow),
	}

	// Create Gin router with default middleware (logger + recovery)
	r := gin.Default()

	// CORS middleware for frontend integration
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "FoodieGo API",
			"version": "1.0.0",
		})
	})

	// Welcome
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "🍔 Welcome to the FoodieGo API",
			"docs":    "/api/state-machine",
			"health":  "/health",
			"roles":   []string{"customer", "hotel", "driver"},
		})
	})

	// Register all routes
	routes.SetupRoutes(r, h)

	log.Printf("🚀 Server running on http://localhost:%s", settings.Port)
	if err := r.Run(":" + settings.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
