package handlers

import (
	"net/http"

	"foodiego-api/config"
	"foodiego-api/models"
	"foodiego-api/statemachine"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ListHotels returns hotels for customers to browse (public)
func ListHotels(c *gin.Context) {
	var hotels []models.User
	query := config.DB.Where("role = ? AND hotel_name <> ''", models.RoleHotel)

	if category := c.Query("category"); category != "" {
		query = query.Where("hotel_category = ?", category)
	}
	if open := c.Query("open"); open == "true" {
		query = query.Where("is_open = ?", true)
	}
	if search := c.Query("search"); search != "" {
		query = query.Where("hotel_name LIKE ? OR hotel_address LIKE ?", "%"+search+"%", "%"+search+"%")
	}

	query.Order("hotel_rating_sum desc").Find(&hotels)

	out := make([]gin.H, 0, len(hotels))
	for i := range hotels {
		h := &hotels[i]
		var foodCount int64
		config.DB.Model(&models.Food{}).Where("hotel_id = ? AND is_available = ?", h.ID, true).Count(&foodCount)
		out = append(out, gin.H{
			"id":                h.ID,
			"hotel_name":        h.HotelName,
			"hotel_address":     h.HotelAddress,
			"hotel_phone":       h.HotelPhone,
			"hotel_description": h.HotelDescription,
			"hotel_category":    h.HotelCategory,
			"hotel_rating":      h.HotelRating(),
			"total_ratings":     h.HotelRatingCount,
			"is_open":           h.IsOpen,
			"delivery_fee":      h.DeliveryFee,
			"min_order_amount":  h.MinOrderAmount,
			"delivery_radius":   h.DeliveryRadius,
			"food_count":        foodCount,
		})
	}

	c.JSON(http.StatusOK, gin.H{"count": len(out), "hotels": out})
}

// GetHotel returns a single hotel profile (public)
func GetHotel(c *gin.Context) {
	var hotel models.User
	if err := config.DB.
		Where("role = ?", models.RoleHotel).
		First(&hotel, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Hotel not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"hotel": gin.H{
			"id":                hotel.ID,
			"hotel_name":        hotel.HotelName,
			"hotel_address":     hotel.HotelAddress,
			"hotel_phone":       hotel.HotelPhone,
			"hotel_description": hotel.HotelDescription,
			"hotel_category":    hotel.HotelCategory,
			"hotel_rating":      hotel.HotelRating(),
			"total_ratings":     hotel.HotelRatingCount,
			"is_open":           hotel.IsOpen,
			"delivery_fee":      hotel.DeliveryFee,
			"min_order_amount":  hotel.MinOrderAmount,
		},
	})
}

// GetHotelMenu returns the menu for a specific hotel (public)
func GetHotelMenu(c *gin.Context) {
	hotelID := c.Param("id")
	var hotel models.User
	if err := config.DB.Where("role = ?", models.RoleHotel).First(&hotel, hotelID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Hotel not found"})
		return
	}

	var foods []models.Food
	query := config.DB.Where("hotel_id = ? AND is_available = ?", hotelID, true)
	if category := c.Query("category"); category != "" && category != "All" {
		query = query.Where("category = ?", category)
	}
	if isVeg := c.Query("is_vegetarian"); isVeg == "true" {
		query = query.Where("is_vegetarian = ?", true)
	}
	query.Order("is_featured desc, created_at desc").Find(&foods)

	c.JSON(http.StatusOK, gin.H{
		"hotel": hotel.HotelName,
		"count": len(foods),
		"menu":  foods,
	})
}

// ListFoods returns foods across hotels with filters (public)
func ListFoods(c *gin.Context) {
	var foods []models.Food
	query := config.DB.Model(&models.Food{})

	if hotelID := c.Query("hotel_id"); hotelID != "" {
		query = query.Where("hotel_id = ?", hotelID)
	}
	if category := c.Query("category"); category != "" && category != "All" {
		query = query.Where("category = ?", category)
	}
	if available := c.Query("available"); available != "" {
		query = query.Where("is_available = ?", available == "true")
	}
	if search := c.Query("search"); search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}

	query.Order("created_at desc").Find(&foods)
	c.JSON(http.StatusOK, gin.H{"count": len(foods), "foods": foods})
}

// GetFood returns a single food and bumps its view counter
func GetFood(c *gin.Context) {
	var food models.Food
	if err := config.DB.First(&food, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Food not found"})
		return
	}
	config.DB.Model(&food).UpdateColumn("view_count", gorm.Expr("view_count + 1"))
	c.JSON(http.StatusOK, gin.H{"food": food, "rating": food.Rating()})
}

// GetStateMachineInfo returns the full order state machine for informational purposes
func GetStateMachineInfo(c *gin.Context) {
	transitions := statemachine.GetAllTransitions()
	info := make([]gin.H, 0, len(transitions))
	for _, t := range transitions {
		info = append(info, gin.H{"from": t.From, "to": t.To, "actor": t.Actor})
	}
	c.JSON(http.StatusOK, gin.H{
		"state_machine":   info,
		"terminal_states": []string{string(models.StatusDelivered), string(models.StatusCancelled)},
		"description":     "Food Delivery Order Lifecycle State Machine",
	})
}
