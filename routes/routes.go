package routes

import (
	"foodiego-api/handlers"
	"foodiego-api/middleware"
	"foodiego-api/models"
	"foodiego-api/security"

	"github.com/gin-gonic/gin"
)

// Handlers bundles the constructed handler sets main wires together.
type Handlers struct {
	Auth     *handlers.AuthHandler
	Orders   *handlers.OrderHandler
	Delivery *handlers.DeliveryHandler
	Limiter  *security.RateLimiter
}

func SetupRoutes(r *gin.Engine, h Handlers) {
	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		// Auth (rate limited per IP)
		public.POST("/auth/register", h.Limiter.Middleware(), h.Auth.Register)
		public.POST("/auth/login", h.Limiter.Middleware(), h.Auth.Login)

		// Hotels & menus (no auth needed)
		public.GET("/hotels", handlers.ListHotels)
		public.GET("/hotels/:id", handlers.GetHotel)
		public.GET("/hotels/:id/menu", handlers.GetHotelMenu)

		// Food browse
		public.GET("/foods", handlers.ListFoods)
		public.GET("/foods/:id", handlers.GetFood)

		// Promotions
		public.GET("/promotions", handlers.ListPromotions)
		public.POST("/promotions/validate", handlers.ValidatePromoCode)

		// Reviews
		public.GET("/reviews", handlers.GetReviews)

		// State machine info (great for docs/Postman)
		public.GET("/state-machine", handlers.GetStateMachineInfo)
	}

	// ── Authenticated routes (any role) ────────────────────────────
	auth := r.Group("/api")
	auth.Use(middleware.AuthRequired())
	{
		auth.GET("/auth/profile", h.Auth.GetProfile)
		auth.PUT("/auth/location", h.Auth.UpdateLocation)

		// Role-filtered order listing and detail
		auth.GET("/orders", h.Orders.ListOrders)
		auth.GET("/orders/:id", h.Orders.GetOrder)
		auth.DELETE("/orders/:id", h.Orders.DeleteOrder)

		// Customer ↔ driver chat (participant check in handler)
		auth.POST("/orders/:id/chat", handlers.SendChatMessage)
		auth.GET("/orders/:id/chat", handlers.GetChatMessages)

		auth.POST("/foods/:id/like", handlers.LikeFood)
	}

	// ── Customer routes ────────────────────────────────────────────
	customer := r.Group("/api")
	customer.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleCustomer))
	{
		customer.POST("/orders", h.Orders.CreateOrder)
		customer.PUT("/orders/:id/cancel", h.Orders.CancelOrder)
		customer.GET("/orders/:id/driver-location", h.Delivery.GetDriverLocation)
		customer.POST("/orders/:id/rate-driver", h.Delivery.RateDriver)

		customer.POST("/reviews", handlers.CreateReview)

		customer.POST("/bookings", handlers.CreateBooking)
		customer.GET("/bookings/my", handlers.GetMyBookings)
		customer.PUT("/bookings/:id/cancel", handlers.CancelBooking)
	}

	// ── Hotel routes ───────────────────────────────────────────────
	hotel := r.Group("/api")
	hotel.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleHotel))
	{
		hotel.PUT("/auth/hotel-settings", h.Auth.UpdateHotelSettings)

		// Menu management
		hotel.POST("/foods", handlers.AddFood)
		hotel.GET("/foods/my", handlers.GetMyFoods)
		hotel.PUT("/foods/:id", handlers.UpdateFood)
		hotel.DELETE("/foods/:id", handlers.DeleteFood)

		// Order management
		hotel.PUT("/orders/:id/status", h.Orders.UpdateOrderStatus)
		hotel.PUT("/orders/:id/payment", h.Orders.UpdatePaymentStatus)

		// Delivery dispatch
		hotel.GET("/orders/delivery/pending", h.Delivery.PendingDeliveryOrders)
		hotel.PUT("/orders/:id/assign-driver", h.Delivery.AssignDriver)

		// Promotions
		hotel.POST("/promotions", handlers.CreatePromotion)
		hotel.PUT("/promotions/:id", handlers.UpdatePromotion)
		hotel.DELETE("/promotions/:id", handlers.DeletePromotion)

		// Event bookings
		hotel.GET("/bookings/hotel", handlers.GetHotelBookings)
		hotel.PUT("/bookings/:id/respond", handlers.RespondToBooking)
	}

	// ── Driver routes ──────────────────────────────────────────────
	driver := r.Group("/api")
	driver.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleDriver))
	{
		driver.GET("/orders/delivery/available", h.Delivery.AvailableDeliveryOrders)
		driver.PUT("/orders/delivery/accept/:id", h.Delivery.AcceptDeliveryOrder)
		driver.PUT("/orders/delivery/location", h.Delivery.UpdateDriverLocation)
		driver.GET("/orders/delivery/earnings", h.Delivery.DriverEarnings)
		driver.GET("/orders/delivery/stats", h.Delivery.DriverStats)
		driver.PUT("/orders/:id/delivery", h.Delivery.UpdateDeliveryStatus)
	}
}
