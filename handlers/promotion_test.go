package handlers_test

import (
	"net/http"
	"testing"
	"time"

	"foodiego-api/config"
	"foodiego-api/models"

	"github.com/stretchr/testify/require"
)

func TestPromoLifecycle(t *testing.T) {
	r := setupServer(t)
	hotelToken, hotelID := registerHotel(t, r, "Owner", "Blue Nile Kitchen", "owner@example.com")

	w := doJSON(t, r, http.MethodPost, "/api/promotions", hotelToken, map[string]interface{}{
		"code": "save10", "discount_type": "percentage", "discount_value": 10,
		"usage_limit": 5, "end_date": time.Now().Add(48 * time.Hour),
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	promo := parseBody(t, w)["promotion"].(map[string]interface{})
	require.Equal(t, "SAVE10", promo["code"]) // stored upper-cased

	// Same code twice for the same hotel conflicts
	w = doJSON(t, r, http.MethodPost, "/api/promotions", hotelToken, map[string]interface{}{
		"code": "SAVE10", "discount_type": "fixed", "discount_value": 50,
		"end_date": time.Now().Add(48 * time.Hour),
	})
	require.Equal(t, http.StatusConflict, w.Code)

	// The same code under another hotel is fine
	otherToken, _ := registerHotel(t, r, "B", "Hotel B", "b@example.com")
	w = doJSON(t, r, http.MethodPost, "/api/promotions", otherToken, map[string]interface{}{
		"code": "SAVE10", "discount_type": "fixed", "discount_value": 50,
		"end_date": time.Now().Add(48 * time.Hour),
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// Dry-run validation computes the discount without burning a use
	w = doJSON(t, r, http.MethodPost, "/api/promotions/validate", "", map[string]interface{}{
		"code": "save10", "order_amount": 250, "hotel_id": hotelID,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := parseBody(t, w)
	require.Equal(t, true, resp["valid"])
	require.InDelta(t, 25.0, resp["discount"].(float64), 1e-9)

	var stored models.Promotion
	require.NoError(t, config.DB.Where("code = ? AND hotel_id = ?", "SAVE10", hotelID).First(&stored).Error)
	require.Equal(t, 0, stored.UsedCount)

	w = doJSON(t, r, http.MethodPost, "/api/promotions/validate", "", map[string]interface{}{
		"code": "NOPE", "order_amount": 250,
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "Invalid promo code")
}

func TestOrderWithPromoCode(t *testing.T) {
	r := setupServer(t)
	hotelToken, hotelID := registerHotel(t, r, "Owner", "Blue Nile Kitchen", "owner@example.com")
	customerToken, _ := registerCustomer(t, r, "Abel", "abel@example.com")
	foodID := addFood(t, r, hotelToken, "Doro Wat", 125)

	w := doJSON(t, r, http.MethodPost, "/api/promotions", hotelToken, map[string]interface{}{
		"code": "SAVE10", "discount_type": "percentage", "discount_value": 10,
		"usage_limit": 1, "end_date": time.Now().Add(48 * time.Hour),
	})
	require.Equal(t, http.StatusCreated, w.Code)

	orderID := placeOrder(t, r, customerToken, map[string]interface{}{
		"items":      []map[string]interface{}{{"food_id": foodID, "quantity": 2}},
		"promo_code": "save10",
	})
	order := loadOrder(t, orderID)
	require.InDelta(t, 250, order.Subtotal, 1e-9)
	require.InDelta(t, 25, order.Discount, 1e-9)
	// subtotal + hotel delivery fee - discount
	require.InDelta(t, 250+50-25, order.TotalPrice, 1e-9)

	var stored models.Promotion
	require.NoError(t, config.DB.Where("code = ? AND hotel_id = ?", "SAVE10", hotelID).First(&stored).Error)
	require.Equal(t, 1, stored.UsedCount)

	// The limit is burned: the next order is rejected and not created
	w = doJSON(t, r, http.MethodPost, "/api/orders", customerToken, map[string]interface{}{
		"items":      []map[string]interface{}{{"food_id": foodID, "quantity": 1}},
		"promo_code": "SAVE10",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "Promo code expired")

	var n int64
	config.DB.Model(&models.Order{}).Count(&n)
	require.EqualValues(t, 1, n)
}

func TestOrderPromoMinimumAmount(t *testing.T) {
	r := setupServer(t)
	hotelToken, _ := registerHotel(t, r, "Owner", "Blue Nile Kitchen", "owner@example.com")
	customerToken, _ := registerCustomer(t, r, "Abel", "abel@example.com")
	foodID := addFood(t, r, hotelToken, "Sambusa", 40)

	w := doJSON(t, r, http.MethodPost, "/api/promotions", hotelToken, map[string]interface{}{
		"code": "BIG", "discount_type": "fixed", "discount_value": 30,
		"min_order_amount": 200, "end_date": time.Now().Add(48 * time.Hour),
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/orders", customerToken, map[string]interface{}{
		"items":      []map[string]interface{}{{"food_id": foodID, "quantity": 1}},
		"promo_code": "BIG",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "below promo minimum")
}
