package handlers

import (
	"net/http"

	"foodiego-api/config"
	"foodiego-api/middleware"
	"foodiego-api/models"

	"github.com/gin-gonic/gin"
)

type SendMessageRequest struct {
	Message string `json:"message" binding:"required"`
}

// chatParticipant reports whether the user may read or post on the order's
// thread: the ordering customer or the assigned driver.
func chatParticipant(order *models.Order, user *models.User) bool {
	if order.UserID == user.ID {
		return true
	}
	return order.Delivery.DriverID != nil && *order.Delivery.DriverID == user.ID
}

// SendChatMessage appends a message to the order's customer-driver thread
func SendChatMessage(c *gin.Context) {
	user := middleware.GetUser(c)

	var order models.Order
	if err := config.DB.First(&order, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if !chatParticipant(&order, user) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not a participant in this order"})
		return
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message is required"})
		return
	}

	senderRole := "user"
	if user.Role == models.RoleDriver {
		senderRole = "driver"
	}

	msg := models.ChatMessage{
		OrderID:    order.ID,
		SenderID:   user.ID,
		SenderRole: senderRole,
		Message:    req.Message,
	}
	if err := config.DB.Create(&msg).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send message"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": msg})
}

// GetChatMessages returns the order's thread oldest-first and marks the
// other side's messages as read
func GetChatMessages(c *gin.Context) {
	user := middleware.GetUser(c)

	var order models.Order
	if err := config.DB.First(&order, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if !chatParticipant(&order, user) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not a participant in this order"})
		return
	}

	var messages []models.ChatMessage
	config.DB.Where("order_id = ?", order.ID).Order("created_at asc").Find(&messages)

	config.DB.Model(&models.ChatMessage{}).
		Where("order_id = ? AND sender_id <> ? AND is_read = ?", order.ID, user.ID, false).
		Update("is_read", true)

	c.JSON(http.StatusOK, gin.H{"count": len(messages), "messages": messages})
}
