package handlers

import (
	"net/http"

	"foodiego-api/config"
	"foodiego-api/middleware"
	"foodiego-api/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ── Menu management (hotel only) ────────────────────────────────────────────

type CreateFoodRequest struct {
	Name            string  `json:"name" binding:"required"`
	Description     string  `json:"description"`
	Price           float64 `json:"price" binding:"required,gt=0"`
	Category        string  `json:"category"`
	PreparationTime int     `json:"preparation_time"`
	IsVegetarian    bool    `json:"is_vegetarian"`
	IsSpicy         bool    `json:"is_spicy"`
	IsFeatured      bool    `json:"is_featured"`
}

// AddFood adds a new item to the hotel's menu. The hotel key is taken from
// the caller, never the payload.
func AddFood(c *gin.Context) {
	hotel := middleware.GetUser(c)

	var req CreateFoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	food := models.Food{
		HotelID:         hotel.ID,
		HotelName:       hotel.HotelName,
		Name:            req.Name,
		Description:     req.Description,
		Price:           req.Price,
		Category:        req.Category,
		PreparationTime: req.PreparationTime,
		IsVegetarian:    req.IsVegetarian,
		IsSpicy:         req.IsSpicy,
		IsFeatured:      req.IsFeatured,
		IsAvailable:     true,
	}
	if food.Category == "" {
		food.Category = "General"
	}
	if food.PreparationTime == 0 {
		food.PreparationTime = 20
	}
	if err := config.DB.Create(&food).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add food"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Food added", "food": food})
}

// GetMyFoods lists the caller hotel's own menu, including unavailable items
func GetMyFoods(c *gin.Context) {
	hotel := middleware.GetUser(c)
	var foods []models.Food
	query := config.DB.Where("hotel_id = ?", hotel.ID)
	if category := c.Query("category"); category != "" && category != "All" {
		query = query.Where("category = ?", category)
	}
	query.Order("created_at desc").Find(&foods)
	c.JSON(http.StatusOK, gin.H{"count": len(foods), "foods": foods})
}

// UpdateFood updates a menu item (only by the owning hotel). The tenant key
// is immutable.
func UpdateFood(c *gin.Context) {
	hotel := middleware.GetUser(c)
	foodID := c.Param("id")

	var food models.Food
	if err := config.DB.First(&food, foodID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Food not found"})
		return
	}
	if food.HotelID != hotel.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You don't own this food item"})
		return
	}

	var req map[string]interface{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	// Owner and aggregate fields are never writable through this endpoint
	for _, k := range []string{"hotel_id", "hotel_name", "rating_sum", "rating_count", "like_count", "view_count", "id"} {
		delete(req, k)
	}
	config.DB.Model(&food).Updates(req)
	c.JSON(http.StatusOK, gin.H{"message": "Food updated", "food": food})
}

// DeleteFood removes a menu item (only by the owning hotel)
func DeleteFood(c *gin.Context) {
	hotel := middleware.GetUser(c)
	foodID := c.Param("id")

	var food models.Food
	if err := config.DB.First(&food, foodID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Food not found"})
		return
	}
	if food.HotelID != hotel.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You don't own this food item"})
		return
	}
	config.DB.Delete(&food)
	c.JSON(http.StatusOK, gin.H{"message": "Food deleted"})
}

// LikeFood bumps a food's like counter (any authenticated user)
func LikeFood(c *gin.Context) {
	res := config.DB.Model(&models.Food{}).
		Where("id = ?", c.Param("id")).
		UpdateColumn("like_count", gorm.Expr("like_count + 1"))
	if res.Error != nil || res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Food not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Liked"})
}
