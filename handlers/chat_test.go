package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"foodiego-api/config"
	"foodiego-api/models"

	"github.com/stretchr/testify/require"
)

func TestOrderChat(t *testing.T) {
	r := setupServer(t)
	hotelToken, _ := registerHotel(t, r, "Owner", "Blue Nile Kitchen", "owner@example.com")
	customerToken, _ := registerCustomer(t, r, "Abel", "abel@example.com")
	driverToken, _ := registerDriver(t, r, "Alem", "alem@example.com", "0911000000")
	strangerToken, _ := registerCustomer(t, r, "Sara", "sara@example.com")
	foodID := addFood(t, r, hotelToken, "Doro Wat", 125)

	orderID := placeOrder(t, r, customerToken, map[string]interface{}{
		"items": []map[string]interface{}{{"food_id": foodID, "quantity": 1}},
	})
	setOrderStatus(t, r, hotelToken, orderID, "confirmed", "preparing", "ready")
	w := doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/orders/delivery/accept/%d", orderID), driverToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	chatPath := fmt.Sprintf("/api/orders/%d/chat", orderID)

	w = doJSON(t, r, http.MethodPost, chatPath, customerToken,
		map[string]interface{}{"message": "Please call when you arrive"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodPost, chatPath, driverToken,
		map[string]interface{}{"message": "On my way"})
	require.Equal(t, http.StatusCreated, w.Code)
	msg := parseBody(t, w)["message"].(map[string]interface{})
	require.Equal(t, "driver", msg["sender_role"])

	// Non-participants can neither post nor read
	w = doJSON(t, r, http.MethodPost, chatPath, strangerToken,
		map[string]interface{}{"message": "hello?"})
	require.Equal(t, http.StatusForbidden, w.Code)
	w = doJSON(t, r, http.MethodGet, chatPath, strangerToken, nil)
	require.Equal(t, http.StatusForbidden, w.Code)

	// Reading as the customer returns the thread oldest-first and marks the
	// driver's message read
	w = doJSON(t, r, http.MethodGet, chatPath, customerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := parseBody(t, w)
	require.EqualValues(t, 2, resp["count"])
	messages := resp["messages"].([]interface{})
	first := messages[0].(map[string]interface{})
	require.Equal(t, "user", first["sender_role"])

	var unread int64
	config.DB.Model(&models.ChatMessage{}).
		Where("order_id = ? AND sender_role = ? AND is_read = ?", orderID, "driver", false).
		Count(&unread)
	require.EqualValues(t, 0, unread)

	// Empty messages are rejected
	w = doJSON(t, r, http.MethodPost, chatPath, customerToken, map[string]interface{}{"message": ""})
	require.Equal(t, http.StatusBadRequest, w.Code)
}
