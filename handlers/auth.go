package handlers

import (
	"net/http"
	"time"

	"foodiego-api/config"
	"foodiego-api/middleware"
	"foodiego-api/models"
	"foodiego-api/security"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// AuthHandler carries the injected login guard. Hotel and driver signups
// additionally require the partner registration code.
type AuthHandler struct {
	Guard       *security.LoginGuard
	PartnerCode string
}

type RegisterRequest struct {
	Name     string          `json:"name" binding:"required"`
	Email    string          `json:"email" binding:"required,email"`
	Password string          `json:"password" binding:"required,min=6"`
	Role     models.UserRole `json:"role"`
	Phone    string          `json:"phone"`
	Address  string          `json:"address"`

	// Partner registration (hotel / driver)
	PartnerCode      string `json:"partner_code"`
	HotelName        string `json:"hotel_name"`
	HotelAddress     string `json:"hotel_address"`
	HotelPhone       string `json:"hotel_phone"`
	HotelDescription string `json:"hotel_description"`
	HotelCategory    string `json:"hotel_category"`

	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register creates a new user account
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	role := req.Role
	if role == "" {
		role = models.RoleCustomer
	}
	switch role {
	case models.RoleCustomer:
	case models.RoleHotel, models.RoleDriver:
		if req.PartnerCode != h.PartnerCode {
			c.JSON(http.StatusForbidden, gin.H{"error": "Invalid registration code"})
			return
		}
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role. Must be: customer, hotel, or driver"})
		return
	}

	if role == models.RoleHotel {
		if req.HotelName == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Hotel name is required for hotel registration"})
			return
		}
		// Hotel display name must be unique among hotels, case-insensitively
		var existing models.User
		if err := config.DB.
			Where("role = ? AND LOWER(hotel_name) = LOWER(?)", models.RoleHotel, req.HotelName).
			First(&existing).Error; err == nil {
			c.JSON(http.StatusConflict, gin.H{"error": "Hotel name already registered. Please choose a different name."})
			return
		}
	}

	var existing models.User
	if result := config.DB.Where("email = ?", req.Email).First(&existing); result.Error == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	user := models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         role,
		Phone:        req.Phone,
		Address:      req.Address,
		IsActive:     true,
		IsOpen:       true,
		IsAvailable:  true,
		Location: models.GeoPoint{
			Latitude:  req.Latitude,
			Longitude: req.Longitude,
			Address:   req.Address,
		},
	}
	if role == models.RoleHotel {
		user.HotelName = req.HotelName
		user.HotelAddress = req.HotelAddress
		user.HotelPhone = req.HotelPhone
		if user.HotelPhone == "" {
			user.HotelPhone = req.Phone
		}
		user.HotelDescription = req.HotelDescription
		user.HotelCategory = req.HotelCategory
		if user.HotelCategory == "" {
			user.HotelCategory = "restaurant"
		}
	}

	if err := config.DB.Create(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	token, err := middleware.GenerateToken(&user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Account created successfully",
		"token":   token,
		"user":    userSummary(&user),
	})
}

// Login authenticates a user and returns a JWT. Repeated failures lock the
// email out for the guard's lockout window.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if h.Guard.IsLocked(req.Email) {
		c.JSON(http.StatusLocked, gin.H{"error": "Account temporarily locked. Please try again later."})
		return
	}

	var user models.User
	if err := config.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		h.Guard.RecordFailure(req.Email)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	if !user.IsActive {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Account is deactivated"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		h.Guard.RecordFailure(req.Email)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	h.Guard.Clear(req.Email)
	now := time.Now()
	config.DB.Model(&user).Update("last_login", now)

	token, err := middleware.GenerateToken(&user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   token,
		"user":    userSummary(&user),
	})
}

// GetProfile returns the authenticated user's profile
func (h *AuthHandler) GetProfile(c *gin.Context) {
	user := middleware.GetUser(c)
	c.JSON(http.StatusOK, gin.H{"user": user})
}

type UpdateLocationRequest struct {
	Latitude  float64 `json:"latitude" binding:"required"`
	Longitude float64 `json:"longitude" binding:"required"`
	Address   string  `json:"address"`
	City      string  `json:"city"`
}

// UpdateLocation stores the caller's location (drop-off default for
// customers)
func (h *AuthHandler) UpdateLocation(c *gin.Context) {
	user := middleware.GetUser(c)
	var req UpdateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	now := time.Now()
	config.DB.Model(user).Updates(map[string]interface{}{
		"loc_latitude":   req.Latitude,
		"loc_longitude":  req.Longitude,
		"loc_address":    req.Address,
		"loc_updated_at": now,
	})
	c.JSON(http.StatusOK, gin.H{"message": "Location updated"})
}

// UpdateHotelSettings updates the hotel profile (hotel only)
func (h *AuthHandler) UpdateHotelSettings(c *gin.Context) {
	user := middleware.GetUser(c)

	var req map[string]interface{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if name, ok := req["hotel_name"].(string); ok && name != "" {
		var existing models.User
		if err := config.DB.
			Where("role = ? AND LOWER(hotel_name) = LOWER(?) AND id <> ?", models.RoleHotel, name, user.ID).
			First(&existing).Error; err == nil {
			c.JSON(http.StatusConflict, gin.H{"error": "Hotel name already taken. Please choose a different name."})
			return
		}
	}

	// Only allow safe fields
	allowed := map[string]bool{
		"hotel_name": true, "hotel_address": true, "hotel_phone": true,
		"hotel_description": true, "hotel_category": true, "is_open": true,
		"delivery_fee": true, "min_order_amount": true, "delivery_radius": true,
	}
	update := map[string]interface{}{}
	for k, v := range req {
		if allowed[k] {
			update[k] = v
		}
	}
	config.DB.Model(user).Updates(update)
	c.JSON(http.StatusOK, gin.H{"message": "Hotel settings updated", "user": user})
}

func userSummary(u *models.User) gin.H {
	out := gin.H{
		"id":      u.ID,
		"name":    u.Name,
		"email":   u.Email,
		"phone":   u.Phone,
		"address": u.Address,
		"role":    u.Role,
	}
	if u.Role == models.RoleHotel {
		out["hotel_name"] = u.HotelName
		out["hotel_address"] = u.HotelAddress
		out["hotel_category"] = u.HotelCategory
		out["hotel_rating"] = u.HotelRating()
		out["is_open"] = u.IsOpen
		out["delivery_fee"] = u.DeliveryFee
	}
	if u.Role == models.RoleDriver {
		out["is_available"] = u.IsAvailable
		out["average_rating"] = u.Stats.AverageRating()
	}
	return out
}
