package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"foodiego-api/config"
	"foodiego-api/handlers"
	"foodiego-api/models"
	"foodiego-api/notify"
	"foodiego-api/routes"
	"foodiego-api/security"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testPartnerCode = "partner123"

// setupServer wires a fresh in-memory database and a fully routed engine.
// The single-connection pool keeps every query on the same memory database.
func setupServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.WalletTransaction{},
		&models.Food{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderStatusHistory{},
		&models.ChatMessage{},
		&models.Promotion{},
		&models.Review{},
		&models.EventBooking{},
		&models.Counter{},
	))
	require.NoError(t, models.EnsureCounter(db, models.OrderNumberSeq))
	config.DB = db

	r := gin.New()
	routes.SetupRoutes(r, routes.Handlers{
		Auth: &handlers.AuthHandler{
			Guard:       security.NewLoginGuard(5, 15*time.Minute),
			PartnerCode: testPartnerCode,
		},
		Orders:   &handlers.OrderHandler{Notifier: notify.Noop{}},
		Delivery: &handlers.DeliveryHandler{Notifier: notify.Noop{}},
		Limiter:  security.NewRateLimiter(10000, time.Minute),
	})
	return r
}

// doJSON performs one request against the engine and returns the recorder.
func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func parseBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), "body: %s", w.Body.String())
	return out
}

// registerUser creates an account through the API and returns its token and id.
func registerUser(t *testing.T, r *gin.Engine, body map[string]interface{}) (string, uint) {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/auth/register", "", body)
	require.Equal(t, http.StatusCreated, w.Code, "register failed: %s", w.Body.String())
	resp := parseBody(t, w)
	token := resp["token"].(string)
	user := resp["user"].(map[string]interface{})
	return token, uint(user["id"].(float64))
}

func registerCustomer(t *testing.T, r *gin.Engine, name, email string) (string, uint) {
	return registerUser(t, r, map[string]interface{}{
		"name": name, "email": email, "password": "secret123",
		"address": "Bole Road 12", "latitude": 9.0054, "longitude": 38.7636,
	})
}

func registerHotel(t *testing.T, r *gin.Engine, name, hotelName, email string) (string, uint) {
	return registerUser(t, r, map[string]interface{}{
		"name": name, "email": email, "password": "secret123",
		"role": "hotel", "partner_code": testPartnerCode,
		"hotel_name": hotelName, "hotel_address": "Kazanchis",
		"latitude": 9.0150, "longitude": 38.7700,
	})
}

func registerDriver(t *testing.T, r *gin.Engine, name, email, phone string) (string, uint) {
	return registerUser(t, r, map[string]interface{}{
		"name": name, "email": email, "password": "secret123",
		"role": "driver", "partner_code": testPartnerCode, "phone": phone,
	})
}

// addFood creates a menu item for the hotel and returns its id.
func addFood(t *testing.T, r *gin.Engine, hotelToken, name string, price float64) uint {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/foods", hotelToken, map[string]interface{}{
		"name": name, "price": price, "category": "Main",
	})
	require.Equal(t, http.StatusCreated, w.Code, "add food failed: %s", w.Body.String())
	food := parseBody(t, w)["food"].(map[string]interface{})
	return uint(food["id"].(float64))
}

// placeOrder creates an order and returns its id.
func placeOrder(t *testing.T, r *gin.Engine, customerToken string, body map[string]interface{}) uint {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/orders", customerToken, body)
	require.Equal(t, http.StatusCreated, w.Code, "place order failed: %s", w.Body.String())
	order := parseBody(t, w)["order"].(map[string]interface{})
	return uint(order["id"].(float64))
}

// setOrderStatus walks the order through the given statuses as the hotel.
func setOrderStatus(t *testing.T, r *gin.Engine, hotelToken string, orderID uint, statuses ...string) {
	t.Helper()
	for _, s := range statuses {
		w := doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/orders/%d/status", orderID), hotelToken,
			map[string]interface{}{"status": s})
		require.Equal(t, http.StatusOK, w.Code, "status %s failed: %s", s, w.Body.String())
	}
}

func countHistory(orderID uint, n *int64) error {
	return config.DB.Model(&models.OrderStatusHistory{}).
		Where("order_id = ?", orderID).Count(n).Error
}

func loadOrder(t *testing.T, orderID uint) models.Order {
	t.Helper()
	var order models.Order
	require.NoError(t, config.DB.Preload("Items").First(&order, orderID).Error)
	return order
}
