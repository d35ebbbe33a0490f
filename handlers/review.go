package handlers

import (
	"net/http"

	"foodiego-api/config"
	"foodiego-api/middleware"
	"foodiego-api/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CreateReviewRequest struct {
	FoodID  *uint  `json:"food_id"`
	HotelID *uint  `json:"hotel_id"`
	OrderID *uint  `json:"order_id"`
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

// CreateReview records a food or hotel review and folds the rating into the
// target's aggregate with atomic sum/count increments
func CreateReview(c *gin.Context) {
	user := middleware.GetUser(c)

	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.FoodID == nil && req.HotelID == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "food_id or hotel_id is required"})
		return
	}

	review := models.Review{
		UserID:  user.ID,
		FoodID:  req.FoodID,
		HotelID: req.HotelID,
		OrderID: req.OrderID,
		Rating:  req.Rating,
		Comment: req.Comment,
	}

	// A review tied to the caller's own delivered order counts as a
	// verified purchase
	if req.OrderID != nil {
		var count int64
		config.DB.Model(&models.Order{}).
			Where("id = ? AND user_id = ? AND status = ?", *req.OrderID, user.ID, models.StatusDelivered).
			Count(&count)
		review.IsVerifiedPurchase = count > 0
	}

	if err := config.DB.Create(&review).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create review"})
		return
	}

	if req.FoodID != nil {
		config.DB.Model(&models.Food{}).Where("id = ?", *req.FoodID).
			Updates(map[string]interface{}{
				"rating_sum":   gorm.Expr("rating_sum + ?", req.Rating),
				"rating_count": gorm.Expr("rating_count + 1"),
			})
	}
	if req.HotelID != nil {
		config.DB.Model(&models.User{}).
			Where("id = ? AND role = ?", *req.HotelID, models.RoleHotel).
			Updates(map[string]interface{}{
				"hotel_rating_sum":   gorm.Expr("hotel_rating_sum + ?", req.Rating),
				"hotel_rating_count": gorm.Expr("hotel_rating_count + 1"),
			})
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Review submitted", "review": review})
}

// GetReviews lists reviews filtered by food or hotel
func GetReviews(c *gin.Context) {
	q := config.DB.Model(&models.Review{}).Order("created_at desc")
	if foodID := c.Query("food_id"); foodID != "" {
		q = q.Where("food_id = ?", foodID)
	}
	if hotelID := c.Query("hotel_id"); hotelID != "" {
		q = q.Where("hotel_id = ?", hotelID)
	}

	var reviews []models.Review
	q.Find(&reviews)
	c.JSON(http.StatusOK, gin.H{"count": len(reviews), "reviews": reviews})
}
