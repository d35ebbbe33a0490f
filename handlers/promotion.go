package handlers

import (
	"net/http"
	"strings"
	"time"

	"foodiego-api/config"
	"foodiego-api/middleware"
	"foodiego-api/models"

	"github.com/gin-gonic/gin"
)

// ListPromotions returns promotions currently inside their validity window
func ListPromotions(c *gin.Context) {
	now := time.Now()
	var promos []models.Promotion
	q := config.DB.Where("is_active = ? AND start_date <= ? AND end_date >= ?", true, now, now)
	if hotelID := c.Query("hotel_id"); hotelID != "" {
		q = q.Where("hotel_id IN (0, ?)", hotelID)
	}
	q.Order("end_date asc").Find(&promos)
	c.JSON(http.StatusOK, gin.H{"count": len(promos), "promotions": promos})
}

type ValidatePromoRequest struct {
	Code        string  `json:"code" binding:"required"`
	OrderAmount float64 `json:"order_amount" binding:"required"`
	HotelID     uint    `json:"hotel_id"`
}

// ValidatePromoCode is the dry-run check clients call before checkout. It
// never increments the usage counter; redemption happens inside order
// creation.
func ValidatePromoCode(c *gin.Context) {
	var req ValidatePromoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "code and order_amount are required"})
		return
	}

	var promo models.Promotion
	err := config.DB.Where("UPPER(code) = UPPER(?) AND hotel_id IN (0, ?)",
		strings.TrimSpace(req.Code), req.HotelID).First(&promo).Error
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"valid": false, "error": "Invalid promo code"})
		return
	}

	if err := promo.Validate(req.OrderAmount, time.Now()); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"valid": false, "error": promoMessage(err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"valid":    true,
		"code":     promo.Code,
		"discount": promo.Discount(req.OrderAmount),
	})
}

type PromotionRequest struct {
	Code           string    `json:"code" binding:"required"`
	Description    string    `json:"description"`
	DiscountType   string    `json:"discount_type" binding:"required,oneof=percentage fixed"`
	DiscountValue  float64   `json:"discount_value" binding:"required,gt=0"`
	MinOrderAmount float64   `json:"min_order_amount"`
	MaxDiscount    float64   `json:"max_discount"`
	UsageLimit     int       `json:"usage_limit"`
	StartDate      time.Time `json:"start_date"`
	EndDate        time.Time `json:"end_date" binding:"required"`
}

// CreatePromotion registers a promo code scoped to the caller's hotel
func CreatePromotion(c *gin.Context) {
	hotel := middleware.GetUser(c)

	var req PromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	start := req.StartDate
	if start.IsZero() {
		start = time.Now()
	}

	promo := models.Promotion{
		Code:           strings.ToUpper(strings.TrimSpace(req.Code)),
		Description:    req.Description,
		DiscountType:   models.DiscountType(req.DiscountType),
		DiscountValue:  req.DiscountValue,
		MinOrderAmount: req.MinOrderAmount,
		MaxDiscount:    req.MaxDiscount,
		UsageLimit:     req.UsageLimit,
		StartDate:      start,
		EndDate:        req.EndDate,
		IsActive:       true,
		HotelID:        hotel.ID,
	}
	if err := config.DB.Create(&promo).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Promo code already exists for your hotel"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Promotion created", "promotion": promo})
}

// UpdatePromotion edits a promotion owned by the caller's hotel
func UpdatePromotion(c *gin.Context) {
	hotel := middleware.GetUser(c)

	var promo models.Promotion
	if err := config.DB.Where("id = ? AND hotel_id = ?", c.Param("id"), hotel.ID).First(&promo).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Promotion not found"})
		return
	}

	var update map[string]interface{}
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	// The code, owner and usage counter are not editable
	for _, k := range []string{"id", "code", "hotel_id", "used_count"} {
		delete(update, k)
	}

	if err := config.DB.Model(&promo).Updates(update).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update promotion"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Promotion updated", "promotion": promo})
}

// DeletePromotion removes a promotion owned by the caller's hotel
func DeletePromotion(c *gin.Context) {
	hotel := middleware.GetUser(c)

	res := config.DB.Where("id = ? AND hotel_id = ?", c.Param("id"), hotel.ID).Delete(&models.Promotion{})
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Promotion not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Promotion deleted"})
}
