package handlers

import (
	"errors"
	"net/http"
	"time"

	"foodiego-api/config"
	"foodiego-api/middleware"
	"foodiego-api/models"
	"foodiego-api/notify"
	"foodiego-api/statemachine"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// OrderHandler owns the order lifecycle endpoints and the notification
// side effects they fire.
type OrderHandler struct {
	Notifier notify.Notifier
}

type OrderItemRequest struct {
	FoodID   uint    `json:"food_id" binding:"required"`
	Quantity int     `json:"quantity" binding:"required,min=1"`
	Price    float64 `json:"price"` // client snapshot; falls back to the live food price
}

type CreateOrderRequest struct {
	Items       []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
	Subtotal    float64            `json:"subtotal"`
	DeliveryFee float64            `json:"delivery_fee"`
	Tax         float64            `json:"tax"`
	Tip         float64            `json:"tip"`
	Discount    float64            `json:"discount"`
	TotalPrice  float64            `json:"total_price"`

	PaymentMethod string `json:"payment_method"`
	DeliveryType  string `json:"delivery_type"`

	Address   models.DeliveryAddress `json:"delivery_address"`
	Notes     string                 `json:"notes"`
	PromoCode string                 `json:"promo_code"`
}

// CreateOrder places a new order (customer only). Pricing fields are taken
// as submitted; missing subtotal/total are recomputed from the items. The
// order number comes from the persisted sequence and the promo redemption
// happens in the same transaction, so concurrent creates cannot collide on
// either.
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	customer := middleware.GetUser(c)

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Resolve each item against the live menu: canonical tenant key and name
	// are snapshotted at write time
	items := make([]models.OrderItem, 0, len(req.Items))
	var hotel models.User
	for _, reqItem := range req.Items {
		var food models.Food
		if err := config.DB.First(&food, reqItem.FoodID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Food not found"})
			return
		}
		if !food.IsAvailable {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Food '" + food.Name + "' is not available"})
			return
		}
		price := reqItem.Price
		if price == 0 {
			price = food.Price
		}
		if hotel.ID == 0 {
			if err := config.DB.Where("role = ?", models.RoleHotel).First(&hotel, food.HotelID).Error; err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Hotel not found for food '" + food.Name + "'"})
				return
			}
			if !hotel.IsOpen {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Hotel is currently closed"})
				return
			}
		} else if hotel.ID != food.HotelID {
			// Single-hotel carts: mixed-hotel semantics are undefined upstream
			c.JSON(http.StatusBadRequest, gin.H{"error": "All items must belong to the same hotel"})
			return
		}
		items = append(items, models.OrderItem{
			FoodID:    food.ID,
			Name:      food.Name,
			Price:     price,
			Quantity:  reqItem.Quantity,
			HotelID:   food.HotelID,
			HotelName: food.HotelName,
		})
	}

	deliveryFee := req.DeliveryFee
	if deliveryFee == 0 && req.DeliveryType != "pickup" {
		deliveryFee = hotel.DeliveryFee
	}

	subtotal := req.Subtotal
	if subtotal == 0 {
		for _, it := range items {
			subtotal += it.Price * float64(it.Quantity)
		}
	}

	order := models.Order{
		UserID:      customer.ID,
		Items:       items,
		Subtotal:    subtotal,
		DeliveryFee: deliveryFee,
		Tax:         req.Tax,
		Tip:         req.Tip,
		Discount:    req.Discount,
		TotalPrice:  req.TotalPrice,
		Status:      models.StatusPending,
		Notes:       req.Notes,
		PromoCode:   req.PromoCode,
		Address:     req.Address,
		Payment: models.Payment{
			Method: req.PaymentMethod,
			Status: models.PaymentPending,
		},
		Delivery: models.Delivery{
			Type:           req.DeliveryType,
			Fee:            deliveryFee,
			TrackingStatus: models.TrackingPending,
			EstimatedTime:  30,
		},
	}
	if order.Payment.Method == "" {
		order.Payment.Method = "cash"
	}
	if order.Delivery.Type == "" {
		order.Delivery.Type = "delivery"
	}
	if order.Address.FullAddress == "" {
		order.Address.FullAddress = customer.Address
		order.Address.Latitude = customer.Location.Latitude
		order.Address.Longitude = customer.Location.Longitude
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if req.PromoCode != "" {
			var promo models.Promotion
			if err := tx.Where("UPPER(code) = UPPER(?) AND hotel_id IN (0, ?)", req.PromoCode, hotel.ID).
				First(&promo).Error; err != nil {
				return models.ErrPromoInvalid
			}
			if err := promo.Validate(subtotal, time.Now()); err != nil {
				return err
			}
			if err := promo.Redeem(tx); err != nil {
				return err
			}
			if order.Discount == 0 {
				order.Discount = promo.Discount(subtotal)
			}
		}

		if order.TotalPrice == 0 {
			order.TotalPrice = order.Subtotal + order.DeliveryFee + order.Tax + order.Tip - order.Discount
		}

		number, err := models.NextOrderNumber(tx)
		if err != nil {
			return err
		}
		order.OrderNumber = number

		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		return tx.Create(&models.OrderStatusHistory{
			OrderID:   order.ID,
			ToStatus:  models.StatusPending,
			ChangedBy: customer.ID,
			Note:      "Order placed by customer",
		}).Error
	})
	if err != nil {
		switch {
		case errors.Is(err, models.ErrPromoInvalid), errors.Is(err, models.ErrPromoExpired), errors.Is(err, models.ErrPromoMinOrder):
			c.JSON(http.StatusBadRequest, gin.H{"error": promoMessage(err)})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to place order"})
		}
		return
	}

	// Best-effort confirmation, attributed to the hotel when resolvable
	notify.Async("order confirmation", func() error {
		return h.Notifier.OrderConfirmation(customer.Email, notify.OrderInfo{
			OrderNumber:  order.OrderNumber,
			CustomerName: customer.Name,
			HotelName:    hotel.HotelName,
			TotalPrice:   order.TotalPrice,
			Address:      order.Address.FullAddress,
		}, hotel.Email)
	})

	c.JSON(http.StatusCreated, gin.H{"message": "Order placed successfully", "order": order})
}

// ListOrders returns orders visible to the caller's role: customers see
// their own, hotels see orders containing their items, drivers see their
// assignments.
func (h *OrderHandler) ListOrders(c *gin.Context) {
	user := middleware.GetUser(c)

	var orders []models.Order
	query := config.DB.Preload("Items").Preload("User")

	switch user.Role {
	case models.RoleHotel:
		query = query.Where("id IN (?)",
			config.DB.Model(&models.OrderItem{}).Select("order_id").Where("hotel_id = ?", user.ID))
	case models.RoleDriver:
		query = query.Where("delivery_driver_id = ?", user.ID)
	default:
		query = query.Where("user_id = ?", user.ID)
	}

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	query.Order("created_at desc").Find(&orders)

	c.JSON(http.StatusOK, gin.H{"count": len(orders), "orders": orders})
}

// GetOrder returns one order, subject to the same role visibility as the list
func (h *OrderHandler) GetOrder(c *gin.Context) {
	user := middleware.GetUser(c)
	order, ok := h.visibleOrder(c, user, c.Param("id"))
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}

type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
	Note   string             `json:"note"`
}

// UpdateOrderStatus moves an order through the state machine (hotel only)
func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	hotel := middleware.GetUser(c)
	orderID := c.Param("id")

	var order models.Order
	if err := config.DB.Preload("User").First(&order, orderID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if !hotelOwnsOrder(order.ID, hotel.ID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "This order does not belong to your hotel"})
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := statemachine.CanTransition(order.Status, req.Status, "hotel"); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":             "Invalid state transition",
			"current_status":    order.Status,
			"requested":         req.Status,
			"reason":            err.Error(),
			"valid_next_states": statemachine.ValidTransitionsFrom(order.Status),
		})
		return
	}

	prevStatus := order.Status
	config.DB.Model(&order).Update("status", req.Status)
	config.DB.Create(&models.OrderStatusHistory{
		OrderID:    order.ID,
		FromStatus: prevStatus,
		ToStatus:   req.Status,
		ChangedBy:  hotel.ID,
		Note:       req.Note,
	})

	status := string(req.Status)
	customerEmail := order.User.Email
	info := notify.OrderInfo{
		OrderNumber: order.OrderNumber,
		HotelName:   hotel.HotelName,
		DriverName:  order.Delivery.DriverName,
		DriverPhone: order.Delivery.DriverPhone,
	}
	notify.Async("order status", func() error {
		return h.Notifier.OrderStatusChange(customerEmail, info, status, hotel.Email)
	})

	c.JSON(http.StatusOK, gin.H{
		"message":         "Order status updated",
		"order_id":        order.ID,
		"previous_status": prevStatus,
		"current_status":  req.Status,
	})
}

type UpdatePaymentRequest struct {
	Status        models.PaymentStatus `json:"status" binding:"required"`
	TransactionID string               `json:"transaction_id"`
}

// UpdatePaymentStatus updates the payment sub-record (hotel only)
func (h *OrderHandler) UpdatePaymentStatus(c *gin.Context) {
	hotel := middleware.GetUser(c)
	orderID := c.Param("id")

	var order models.Order
	if err := config.DB.First(&order, orderID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if !hotelOwnsOrder(order.ID, hotel.ID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "This order does not belong to your hotel"})
		return
	}

	var req UpdatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	update := map[string]interface{}{"payment_status": req.Status}
	if req.TransactionID != "" {
		update["payment_transaction_id"] = req.TransactionID
	}
	if req.Status == models.PaymentPaid {
		update["payment_paid_at"] = time.Now()
	}
	config.DB.Model(&order).Updates(update)

	c.JSON(http.StatusOK, gin.H{"message": "Payment updated", "order_id": order.ID, "payment_status": req.Status})
}

type CancelOrderRequest struct {
	Reason string `json:"reason"`
}

// CancelOrder cancels a pending/confirmed order (customer only). Anything
// already past confirmed reads as not found, matching the visibility filter.
func (h *OrderHandler) CancelOrder(c *gin.Context) {
	customer := middleware.GetUser(c)
	orderID := c.Param("id")

	var req CancelOrderRequest
	_ = c.ShouldBindJSON(&req)
	if req.Reason == "" {
		req.Reason = "Cancelled by user"
	}

	var order models.Order
	if err := config.DB.
		Where("id = ? AND user_id = ? AND status IN ?", orderID, customer.ID,
			[]models.OrderStatus{models.StatusPending, models.StatusConfirmed}).
		First(&order).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found or cannot be cancelled"})
		return
	}

	prevStatus := order.Status
	config.DB.Model(&order).Updates(map[string]interface{}{
		"status":        models.StatusCancelled,
		"cancel_reason": req.Reason,
	})
	config.DB.Create(&models.OrderStatusHistory{
		OrderID:    order.ID,
		FromStatus: prevStatus,
		ToStatus:   models.StatusCancelled,
		ChangedBy:  customer.ID,
		Note:       req.Reason,
	})

	c.JSON(http.StatusOK, gin.H{"message": "Order cancelled successfully", "order_id": order.ID})
}

// DeleteOrder hard-deletes an order. Hotels may delete orders containing
// their items; customers only their own orders in terminal states.
func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	user := middleware.GetUser(c)
	orderID := c.Param("id")

	var order models.Order
	var err error
	if user.Role == models.RoleHotel {
		err = config.DB.
			Where("id = ? AND id IN (?)", orderID,
				config.DB.Model(&models.OrderItem{}).Select("order_id").Where("hotel_id = ?", user.ID)).
			First(&order).Error
	} else {
		err = config.DB.
			Where("id = ? AND user_id = ? AND status IN ?", orderID, user.ID,
				[]models.OrderStatus{models.StatusDelivered, models.StatusCancelled}).
			First(&order).Error
	}
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found or cannot be deleted"})
		return
	}

	config.DB.Transaction(func(tx *gorm.DB) error {
		tx.Where("order_id = ?", order.ID).Delete(&models.OrderItem{})
		tx.Where("order_id = ?", order.ID).Delete(&models.ChatMessage{})
		tx.Where("order_id = ?", order.ID).Delete(&models.OrderStatusHistory{})
		return tx.Delete(&order).Error
	})

	c.JSON(http.StatusOK, gin.H{"message": "Order deleted"})
}

// visibleOrder loads an order and enforces role visibility, writing the 404
// itself when the order is missing or filtered out.
func (h *OrderHandler) visibleOrder(c *gin.Context, user *models.User, orderID string) (*models.Order, bool) {
	var order models.Order
	if err := config.DB.Preload("Items").Preload("StatusHistory").First(&order, orderID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return nil, false
	}
	switch user.Role {
	case models.RoleHotel:
		if !hotelOwnsOrder(order.ID, user.ID) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return nil, false
		}
	case models.RoleDriver:
		if order.Delivery.DriverID == nil || *order.Delivery.DriverID != user.ID {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return nil, false
		}
	default:
		if order.UserID != user.ID {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return nil, false
		}
	}
	return &order, true
}

// hotelOwnsOrder reports whether any line item carries the hotel's tenant key
func hotelOwnsOrder(orderID, hotelID uint) bool {
	var n int64
	config.DB.Model(&models.OrderItem{}).
		Where("order_id = ? AND hotel_id = ?", orderID, hotelID).
		Count(&n)
	return n > 0
}

func promoMessage(err error) string {
	switch {
	case errors.Is(err, models.ErrPromoExpired):
		return "Promo code expired"
	case errors.Is(err, models.ErrPromoMinOrder):
		return "Order amount below promo minimum"
	default:
		return "Invalid promo code"
	}
}
