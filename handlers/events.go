package handlers

import (
	"net/http"
	"time"

	"foodiego-api/config"
	"foodiego-api/middleware"
	"foodiego-api/models"

	"github.com/gin-gonic/gin"
)

type CreateBookingRequest struct {
	HotelID         uint      `json:"hotel_id" binding:"required"`
	EventType       string    `json:"event_type" binding:"required"`
	EventName       string    `json:"event_name" binding:"required"`
	EventDate       time.Time `json:"event_date" binding:"required"`
	EventTime       string    `json:"event_time" binding:"required"`
	GuestCount      int       `json:"guest_count" binding:"required,gt=0"`
	Venue           string    `json:"venue"`
	CustomLocation  string    `json:"custom_location"`
	Services        string    `json:"services"`
	FoodPreferences string    `json:"food_preferences"`
	SpecialRequests string    `json:"special_requests"`
	BudgetMin       float64   `json:"budget_min"`
	BudgetMax       float64   `json:"budget_max"`
	ContactPhone    string    `json:"contact_phone" binding:"required"`
	ContactEmail    string    `json:"contact_email"`
}

// CreateBooking files an event-catering request against a hotel
func CreateBooking(c *gin.Context) {
	user := middleware.GetUser(c)

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var hotel models.User
	if err := config.DB.Where("id = ? AND role = ?", req.HotelID, models.RoleHotel).First(&hotel).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Hotel not found"})
		return
	}
	if req.EventDate.Before(time.Now()) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Event date must be in the future"})
		return
	}

	booking := models.EventBooking{
		UserID:          user.ID,
		HotelID:         hotel.ID,
		EventType:       req.EventType,
		EventName:       req.EventName,
		EventDate:       req.EventDate,
		EventTime:       req.EventTime,
		GuestCount:      req.GuestCount,
		Venue:           req.Venue,
		CustomLocation:  req.CustomLocation,
		Services:        req.Services,
		FoodPreferences: req.FoodPreferences,
		SpecialRequests: req.SpecialRequests,
		BudgetMin:       req.BudgetMin,
		BudgetMax:       req.BudgetMax,
		ContactPhone:    req.ContactPhone,
		ContactEmail:    req.ContactEmail,
		Status:          models.BookingPending,
	}
	if err := config.DB.Create(&booking).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create booking"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Booking request sent", "booking": booking})
}

// GetMyBookings lists the customer's own event bookings
func GetMyBookings(c *gin.Context) {
	user := middleware.GetUser(c)
	var bookings []models.EventBooking
	config.DB.Preload("Hotel").Where("user_id = ?", user.ID).
		Order("event_date asc").Find(&bookings)
	c.JSON(http.StatusOK, gin.H{"count": len(bookings), "bookings": bookings})
}

// GetHotelBookings lists bookings filed against the caller's hotel
func GetHotelBookings(c *gin.Context) {
	hotel := middleware.GetUser(c)
	q := config.DB.Preload("User").Where("hotel_id = ?", hotel.ID)
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}
	var bookings []models.EventBooking
	q.Order("event_date asc").Find(&bookings)
	c.JSON(http.StatusOK, gin.H{"count": len(bookings), "bookings": bookings})
}

type BookingResponseRequest struct {
	Status          models.BookingStatus `json:"status" binding:"required,oneof=confirmed in_progress completed cancelled"`
	ResponseMessage string               `json:"response_message"`
	Quotation       float64              `json:"quotation"`
}

// RespondToBooking lets the hotel accept, quote, progress or decline a
// booking filed against it
func RespondToBooking(c *gin.Context) {
	hotel := middleware.GetUser(c)

	var booking models.EventBooking
	if err := config.DB.Where("id = ? AND hotel_id = ?", c.Param("id"), hotel.ID).First(&booking).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
		return
	}

	var req BookingResponseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := time.Now()
	update := map[string]interface{}{
		"status":       req.Status,
		"responded_at": now,
	}
	if req.ResponseMessage != "" {
		update["response_message"] = req.ResponseMessage
	}
	if req.Quotation > 0 {
		update["quotation"] = req.Quotation
	}
	config.DB.Model(&booking).Updates(update)

	c.JSON(http.StatusOK, gin.H{"message": "Booking updated", "booking": booking})
}

// CancelBooking lets the customer withdraw a booking that has not started
func CancelBooking(c *gin.Context) {
	user := middleware.GetUser(c)

	res := config.DB.Model(&models.EventBooking{}).
		Where("id = ? AND user_id = ? AND status IN ?", c.Param("id"), user.ID,
			[]models.BookingStatus{models.BookingPending, models.BookingConfirmed}).
		Update("status", models.BookingCancelled)
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found or cannot be cancelled"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Booking cancelled"})
}
