package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	r := setupServer(t)

	registerCustomer(t, r, "Abel", "abel@example.com")

	// Duplicate email is rejected
	w := doJSON(t, r, http.MethodPost, "/api/auth/register", "", map[string]interface{}{
		"name": "Abel Again", "email": "abel@example.com", "password": "secret123",
	})
	require.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/auth/login", "", map[string]interface{}{
		"email": "abel@example.com", "password": "secret123",
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.NotEmpty(t, parseBody(t, w)["token"])

	w = doJSON(t, r, http.MethodPost, "/api/auth/login", "", map[string]interface{}{
		"email": "abel@example.com", "password": "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginLockout(t *testing.T) {
	r := setupServer(t)
	registerCustomer(t, r, "Abel", "abel@example.com")

	for i := 0; i < 5; i++ {
		w := doJSON(t, r, http.MethodPost, "/api/auth/login", "", map[string]interface{}{
			"email": "abel@example.com", "password": "wrong",
		})
		require.Equal(t, http.StatusUnauthorized, w.Code, "attempt %d", i+1)
	}

	// Locked out now, even with the correct password
	w := doJSON(t, r, http.MethodPost, "/api/auth/login", "", map[string]interface{}{
		"email": "abel@example.com", "password": "secret123",
	})
	require.Equal(t, http.StatusLocked, w.Code)

	// Other accounts are unaffected
	registerCustomer(t, r, "Sara", "sara@example.com")
	w = doJSON(t, r, http.MethodPost, "/api/auth/login", "", map[string]interface{}{
		"email": "sara@example.com", "password": "secret123",
	})
	require.Equal(t, http.StatusOK, w.Code)
}

func TestPartnerRegistrationRules(t *testing.T) {
	r := setupServer(t)

	// Hotel signup without the partner code is rejected
	w := doJSON(t, r, http.MethodPost, "/api/auth/register", "", map[string]interface{}{
		"name": "Owner", "email": "owner@example.com", "password": "secret123",
		"role": "hotel", "hotel_name": "Blue Nile Kitchen",
	})
	require.Equal(t, http.StatusForbidden, w.Code)

	// With the code but no hotel name
	w = doJSON(t, r, http.MethodPost, "/api/auth/register", "", map[string]interface{}{
		"name": "Owner", "email": "owner@example.com", "password": "secret123",
		"role": "hotel", "partner_code": testPartnerCode,
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	registerHotel(t, r, "Owner", "Blue Nile Kitchen", "owner@example.com")

	// Hotel display names are unique, case-insensitively
	w = doJSON(t, r, http.MethodPost, "/api/auth/register", "", map[string]interface{}{
		"name": "Rival", "email": "rival@example.com", "password": "secret123",
		"role": "hotel", "partner_code": testPartnerCode, "hotel_name": "BLUE NILE kitchen",
	})
	require.Equal(t, http.StatusConflict, w.Code)

	// Unknown roles are rejected outright
	w = doJSON(t, r, http.MethodPost, "/api/auth/register", "", map[string]interface{}{
		"name": "X", "email": "x@example.com", "password": "secret123", "role": "admin",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRoleGates(t *testing.T) {
	r := setupServer(t)
	customerToken, _ := registerCustomer(t, r, "Abel", "abel@example.com")

	// Customers cannot touch hotel menu management
	w := doJSON(t, r, http.MethodPost, "/api/foods", customerToken, map[string]interface{}{
		"name": "Shiro", "price": 120,
	})
	require.Equal(t, http.StatusForbidden, w.Code)

	// Anonymous callers cannot list orders
	w = doJSON(t, r, http.MethodGet, "/api/orders", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}
