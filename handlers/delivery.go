package handlers

import (
	"fmt"
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

// DeliveryHandler owns driver assignment, GPS tracking and earnings
// settlement.
type DeliveryHandler struct {
	Notifier notify.Notifier
}

const (
	earningsBase  = 30.0 // flat payout per delivery, ETB
	earningsPerKm = 5.0
)

// deliveryEarnings computes the flat payout for a completed delivery.
func deliveryEarnings(order *models.Order) float64 {
	return earningsBase + earningsPerKm*order.Delivery.Distance
}

var claimableStatuses = []models.OrderStatus{
	models.StatusReady, models.StatusConfirmed, models.StatusPreparing,
}

// PendingDeliveryOrders lists the hotel's unassigned delivery orders so a
// driver can be pushed onto them
func (h *DeliveryHandler) PendingDeliveryOrders(c *gin.Context) {
	hotel := middleware.GetUser(c)
	var orders []models.Order
	config.DB.Preload("Items").Preload("User").
		Where("id IN (?)",
			config.DB.Model(&models.OrderItem{}).Select("order_id").Where("hotel_id = ?", hotel.ID)).
		Where("delivery_type = ? AND delivery_driver_id IS NULL AND status IN ?", "delivery", claimableStatuses).
		Order("created_at desc").
		Find(&orders)
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "orders": orders})
}

// AvailableDeliveryOrders lists the unassigned pool a driver can claim from
func (h *DeliveryHandler) AvailableDeliveryOrders(c *gin.Context) {
	var orders []models.Order
	config.DB.Preload("Items").Preload("User").
		Where("delivery_type = ? AND delivery_driver_id IS NULL AND status IN ?", "delivery", claimableStatuses).
		Order("created_at desc").
		Find(&orders)
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "orders": orders})
}

// AcceptDeliveryOrder lets a driver claim an unassigned order. The claim is
// a single conditional update, so of two concurrent claims exactly one
// succeeds and the loser gets a conflict.
func (h *DeliveryHandler) AcceptDeliveryOrder(c *gin.Context) {
	driver := middleware.GetUser(c)
	orderID := c.Param("id")

	var order models.Order
	if err := config.DB.Preload("Items").First(&order, orderID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	// Pickup snapshot from the owning hotel's stored location
	pickup := models.GeoPoint{}
	var distance float64
	if len(order.Items) > 0 {
		var hotel models.User
		if err := config.DB.First(&hotel, order.Items[0].HotelID).Error; err == nil {
			pickup = models.GeoPoint{
				Latitude:  hotel.Location.Latitude,
				Longitude: hotel.Location.Longitude,
				Address:   hotel.HotelAddress,
			}
			if order.Address.Latitude != 0 || order.Address.Longitude != 0 {
				distance = models.HaversineKm(pickup, models.GeoPoint{
					Latitude:  order.Address.Latitude,
					Longitude: order.Address.Longitude,
				})
			}
		}
	}

	now := time.Now()
	update := map[string]interface{}{
		"delivery_driver_id":       driver.ID,
		"delivery_driver_name":     driver.Name,
		"delivery_driver_phone":    driver.Phone,
		"delivery_tracking_status": models.TrackingAssigned,
		"delivery_assigned_at":     now,
		"delivery_pick_latitude":   pickup.Latitude,
		"delivery_pick_longitude":  pickup.Longitude,
		"delivery_pick_address":    pickup.Address,
	}
	if distance > 0 {
		update["delivery_distance"] = distance
		update["delivery_estimated_time"] = models.EstimateETA(distance)
	}

	res := config.DB.Model(&models.Order{}).
		Where("id = ? AND delivery_driver_id IS NULL AND delivery_type = ? AND status IN ?",
			order.ID, "delivery", claimableStatuses).
		Updates(update)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to claim order"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Order already assigned to a driver"})
		return
	}

	config.DB.Preload("Items").First(&order, order.ID)
	c.JSON(http.StatusOK, gin.H{"message": "Order claimed", "order": order})
}

type AssignDriverRequest struct {
	DriverName  string `json:"driver_name"`
	DriverPhone string `json:"driver_phone"`
}

// AssignDriver pushes a named driver onto an order (hotel only). The driver
// is resolved among driver accounts by exact name, then phone, then
// case-insensitive name. Assignment dispatches the order.
func (h *DeliveryHandler) AssignDriver(c *gin.Context) {
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

	var req AssignDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil || (req.DriverName == "" && req.DriverPhone == "") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "driver_name or driver_phone is required"})
		return
	}

	driver, err := resolveDriver(req.DriverName, req.DriverPhone)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Driver not found"})
		return
	}

	if err := statemachine.CanTransition(order.Status, models.StatusOutForDelivery, "hotel"); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":          "Invalid state transition",
			"current_status": order.Status,
			"reason":         err.Error(),
		})
		return
	}

	now := time.Now()
	prevStatus := order.Status
	config.DB.Model(&order).Updates(map[string]interface{}{
		"delivery_driver_id":       driver.ID,
		"delivery_driver_name":     driver.Name,
		"delivery_driver_phone":    driver.Phone,
		"delivery_tracking_status": models.TrackingAssigned,
		"delivery_assigned_at":     now,
		"delivery_pick_latitude":   hotel.Location.Latitude,
		"delivery_pick_longitude":  hotel.Location.Longitude,
		"delivery_pick_address":    hotel.HotelAddress,
		"status":                   models.StatusOutForDelivery,
	})
	config.DB.Create(&models.OrderStatusHistory{
		OrderID:    order.ID,
		FromStatus: prevStatus,
		ToStatus:   models.StatusOutForDelivery,
		ChangedBy:  hotel.ID,
		Note:       "Driver " + driver.Name + " assigned by hotel",
	})

	info := notify.OrderInfo{
		OrderNumber:    order.OrderNumber,
		HotelName:      hotel.HotelName,
		DriverName:     driver.Name,
		DriverPhone:    driver.Phone,
		PickupAddress:  hotel.HotelAddress,
		DropoffAddress: order.Address.FullAddress,
		Payout:         deliveryEarnings(&order),
	}
	customerEmail := order.User.Email
	driverEmail := driver.Email
	notify.Async("delivery started", func() error {
		return h.Notifier.OrderStatusChange(customerEmail, info, string(models.StatusOutForDelivery), hotel.Email)
	})
	notify.Async("driver assignment", func() error {
		return h.Notifier.DriverAssignment(driverEmail, info)
	})

	c.JSON(http.StatusOK, gin.H{"message": "Driver assigned", "order_id": order.ID, "driver": driver.Name})
}

type UpdateDeliveryRequest struct {
	TrackingStatus models.TrackingStatus `json:"tracking_status" binding:"required"`
	Latitude       float64               `json:"latitude"`
	Longitude      float64               `json:"longitude"`
}

// UpdateDeliveryStatus advances the tracking progression (assigned driver
// only). Reaching delivered settles the trip exactly once: driver counters,
// earnings and wallet are credited atomically and the order goes terminal.
func (h *DeliveryHandler) UpdateDeliveryStatus(c *gin.Context) {
	driver := middleware.GetUser(c)
	orderID := c.Param("id")

	var order models.Order
	if err := config.DB.First(&order, orderID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if order.Delivery.DriverID == nil || *order.Delivery.DriverID != driver.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not the assigned driver for this order"})
		return
	}

	var req UpdateDeliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := statemachine.CanAdvanceTracking(order.Delivery.TrackingStatus, req.TrackingStatus); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":           "Invalid tracking transition",
			"current_status":  order.Delivery.TrackingStatus,
			"requested":       req.TrackingStatus,
			"reason":          err.Error(),
			"valid_next_step": statemachine.NextTracking(order.Delivery.TrackingStatus),
		})
		return
	}

	now := time.Now()
	update := map[string]interface{}{"delivery_tracking_status": req.TrackingStatus}
	if req.Latitude != 0 || req.Longitude != 0 {
		update["delivery_drv_latitude"] = req.Latitude
		update["delivery_drv_longitude"] = req.Longitude
		update["delivery_drv_updated_at"] = now
	}
	if req.TrackingStatus == models.TrackingPickedUp {
		update["delivery_picked_up_at"] = now
	}

	if req.TrackingStatus != models.TrackingDelivered {
		config.DB.Model(&order).Updates(update)
		config.DB.First(&order, order.ID)
		c.JSON(http.StatusOK, gin.H{"message": "Tracking updated", "order": order})
		return
	}

	// Settlement: the guard on the current tracking status makes the credit
	// exactly-once even under concurrent delivery calls
	update["delivery_delivered_at"] = now
	update["status"] = models.StatusDelivered

	earnings := deliveryEarnings(&order)
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Order{}).
			Where("id = ? AND delivery_tracking_status <> ?", order.ID, models.TrackingDelivered).
			Updates(update)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		if err := tx.Model(&models.User{}).Where("id = ?", driver.ID).
			Updates(map[string]interface{}{
				"stats_total_deliveries":  gorm.Expr("stats_total_deliveries + 1"),
				"stats_total_earnings":    gorm.Expr("stats_total_earnings + ?", earnings),
				"stats_today_deliveries":  gorm.Expr("stats_today_deliveries + 1"),
				"stats_today_earnings":    gorm.Expr("stats_today_earnings + ?", earnings),
				"stats_weekly_deliveries": gorm.Expr("stats_weekly_deliveries + 1"),
				"stats_weekly_earnings":   gorm.Expr("stats_weekly_earnings + ?", earnings),
				"stats_last_delivery_at":  now,
				"wallet_balance":          gorm.Expr("wallet_balance + ?", earnings),
			}).Error; err != nil {
			return err
		}

		if err := tx.Create(&models.WalletTransaction{
			UserID:      driver.ID,
			Kind:        "credit",
			Amount:      earnings,
			Description: fmt.Sprintf("Delivery %s", order.OrderNumber),
		}).Error; err != nil {
			return err
		}

		return tx.Create(&models.OrderStatusHistory{
			OrderID:    order.ID,
			FromStatus: order.Status,
			ToStatus:   models.StatusDelivered,
			ChangedBy:  driver.ID,
			Note:       "Order delivered to customer",
		}).Error
	})
	if err == gorm.ErrRecordNotFound {
		c.JSON(http.StatusConflict, gin.H{"error": "Order already delivered"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to settle delivery"})
		return
	}

	config.DB.First(&order, order.ID)
	c.JSON(http.StatusOK, gin.H{"message": "Order delivered successfully", "order": order, "earnings": earnings})
}

type DriverLocationRequest struct {
	Latitude  float64 `json:"latitude" binding:"required"`
	Longitude float64 `json:"longitude" binding:"required"`
	OrderID   uint    `json:"order_id"`
}

// UpdateDriverLocation stores the driver's live position, denormalized onto
// the order being delivered when one is named
func (h *DeliveryHandler) UpdateDriverLocation(c *gin.Context) {
	driver := middleware.GetUser(c)

	var req DriverLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := time.Now()
	config.DB.Model(driver).Updates(map[string]interface{}{
		"cur_latitude":   req.Latitude,
		"cur_longitude":  req.Longitude,
		"cur_updated_at": now,
	})

	if req.OrderID != 0 {
		config.DB.Model(&models.Order{}).
			Where("id = ? AND delivery_driver_id = ?", req.OrderID, driver.ID).
			Updates(map[string]interface{}{
				"delivery_drv_latitude":   req.Latitude,
				"delivery_drv_longitude":  req.Longitude,
				"delivery_drv_updated_at": now,
			})
	}

	c.JSON(http.StatusOK, gin.H{"message": "Location updated"})
}

// GetDriverLocation exposes driver/pickup/dropoff coordinates to the
// customer while the delivery is in flight; outside the active window it
// returns a null payload rather than stale data.
func (h *DeliveryHandler) GetDriverLocation(c *gin.Context) {
	var order models.Order
	if err := config.DB.First(&order, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	if !statemachine.ActiveTracking(order.Delivery.TrackingStatus) {
		c.JSON(http.StatusOK, gin.H{
			"data":    nil,
			"message": "Driver not yet assigned or delivery completed",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"driver_location": order.Delivery.DriverLocation,
			"pickup_location": order.Delivery.PickupLocation,
			"delivery_location": gin.H{
				"latitude":  order.Address.Latitude,
				"longitude": order.Address.Longitude,
				"address":   order.Address.FullAddress,
			},
			"tracking_status": order.Delivery.TrackingStatus,
			"estimated_time":  order.Delivery.EstimatedTime,
		},
	})
}

type RateDriverRequest struct {
	Rating int    `json:"rating" binding:"required,min=1,max=5"`
	Review string `json:"review"`
}

// RateDriver records the customer's post-delivery rating and folds it into
// the driver's aggregate with atomic sum/count increments
func (h *DeliveryHandler) RateDriver(c *gin.Context) {
	customer := middleware.GetUser(c)

	var order models.Order
	if err := config.DB.First(&order, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if order.UserID != customer.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized"})
		return
	}
	if order.Status != models.StatusDelivered {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Can only rate delivered orders"})
		return
	}

	var req RateDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	config.DB.Model(&order).Updates(map[string]interface{}{
		"delivery_driver_rating": req.Rating,
		"delivery_driver_review": req.Review,
	})

	if order.Delivery.DriverID != nil {
		config.DB.Model(&models.User{}).Where("id = ?", *order.Delivery.DriverID).
			Updates(map[string]interface{}{
				"stats_rating_sum":   gorm.Expr("stats_rating_sum + ?", req.Rating),
				"stats_rating_count": gorm.Expr("stats_rating_count + 1"),
			})
	}

	c.JSON(http.StatusOK, gin.H{"message": "Rating submitted"})
}

// DriverEarnings projects a driver's stats plus the 20 most recent wallet
// transactions, newest first
func (h *DeliveryHandler) DriverEarnings(c *gin.Context) {
	driver := middleware.GetUser(c)

	var transactions []models.WalletTransaction
	config.DB.Where("user_id = ?", driver.ID).
		Order("created_at desc").
		Limit(20).
		Find(&transactions)

	c.JSON(http.StatusOK, gin.H{
		"stats":               driver.Stats,
		"average_rating":      driver.Stats.AverageRating(),
		"wallet_balance":      driver.WalletBalance,
		"recent_transactions": transactions,
	})
}

// DriverStats summarizes a driver's delivery record. Today/week counts come
// from the order log so they survive counter drift.
func (h *DeliveryHandler) DriverStats(c *gin.Context) {
	driver := middleware.GetUser(c)

	todayStart := time.Now().Truncate(24 * time.Hour)
	weekStart := todayStart.AddDate(0, 0, -int(todayStart.Weekday()))

	var todayCount, weekCount int64
	config.DB.Model(&models.Order{}).
		Where("delivery_driver_id = ? AND status = ? AND delivery_delivered_at >= ?", driver.ID, models.StatusDelivered, todayStart).
		Count(&todayCount)
	config.DB.Model(&models.Order{}).
		Where("delivery_driver_id = ? AND status = ? AND delivery_delivered_at >= ?", driver.ID, models.StatusDelivered, weekStart).
		Count(&weekCount)

	c.JSON(http.StatusOK, gin.H{
		"name":              driver.Name,
		"total_deliveries":  driver.Stats.TotalDeliveries,
		"total_earnings":    driver.Stats.TotalEarnings,
		"today_deliveries":  todayCount,
		"weekly_deliveries": weekCount,
		"average_rating":    driver.Stats.AverageRating(),
		"total_ratings":     driver.Stats.RatingCount,
	})
}

// resolveDriver finds a driver account by exact name, then phone, then
// case-insensitive name.
func resolveDriver(name, phone string) (*models.User, error) {
	var driver models.User
	if name != "" {
		if err := config.DB.Where("role = ? AND name = ?", models.RoleDriver, name).First(&driver).Error; err == nil {
			return &driver, nil
		}
	}
	if phone != "" {
		if err := config.DB.Where("role = ? AND phone = ?", models.RoleDriver, phone).First(&driver).Error; err == nil {
			return &driver, nil
		}
	}
	if name != "" {
		if err := config.DB.Where("role = ? AND LOWER(name) = LOWER(?)", models.RoleDriver, name).First(&driver).Error; err == nil {
			return &driver, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}
