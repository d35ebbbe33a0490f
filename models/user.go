package models

import (
	"time"
)

// UserRole defines allowed roles in the system
type UserRole string

const (
	RoleCustomer UserRole = "customer"
	RoleHotel    UserRole = "hotel"
	RoleDriver   UserRole = "driver"
)

// GeoPoint is a latitude/longitude pair with the time it was recorded.
type GeoPoint struct {
	Latitude  float64    `json:"latitude"`
	Longitude float64    `json:"longitude"`
	Address   string     `json:"address,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// DeliveryStats accumulates a driver's lifetime and rolling counters.
// Sums and counts are incremented atomically; averages are derived on read.
type DeliveryStats struct {
	TotalDeliveries  int        `json:"total_deliveries" gorm:"default:0"`
	TotalEarnings    float64    `json:"total_earnings" gorm:"default:0"`
	TodayDeliveries  int        `json:"today_deliveries" gorm:"default:0"`
	TodayEarnings    float64    `json:"today_earnings" gorm:"default:0"`
	WeeklyDeliveries int        `json:"weekly_deliveries" gorm:"default:0"`
	WeeklyEarnings   float64    `json:"weekly_earnings" gorm:"default:0"`
	RatingSum        float64    `json:"rating_sum" gorm:"default:0"`
	RatingCount      int        `json:"rating_count" gorm:"default:0"`
	LastDeliveryAt   *time.Time `json:"last_delivery_at,omitempty"`
}

// AverageRating derives the driver's running average; new drivers start at 5.0.
func (s DeliveryStats) AverageRating() float64 {
	if s.RatingCount == 0 {
		return 5.0
	}
	return s.RatingSum / float64(s.RatingCount)
}

type User struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	Name         string     `json:"name" gorm:"not null"`
	Email        string     `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string     `json:"-" gorm:"not null"`
	Role         UserRole   `json:"role" gorm:"not null;default:'customer'"`
	Phone        string     `json:"phone"`
	Address      string     `json:"address"`
	IsActive     bool       `json:"is_active" gorm:"default:true"`
	LastLogin    *time.Time `json:"last_login,omitempty"`

	// Customer location (drop-off default)
	Location GeoPoint `json:"location" gorm:"embedded;embeddedPrefix:loc_"`

	// Hotel profile, only populated for role = hotel
	HotelName        string  `json:"hotel_name,omitempty"`
	HotelAddress     string  `json:"hotel_address,omitempty"`
	HotelPhone       string  `json:"hotel_phone,omitempty"`
	HotelDescription string  `json:"hotel_description,omitempty"`
	HotelCategory    string  `json:"hotel_category,omitempty" gorm:"default:'restaurant'"`
	HotelRatingSum   float64 `json:"hotel_rating_sum" gorm:"default:0"`
	HotelRatingCount int     `json:"hotel_rating_count" gorm:"default:0"`
	IsOpen           bool    `json:"is_open" gorm:"default:true"`
	DeliveryFee      float64 `json:"delivery_fee" gorm:"default:50"`
	MinOrderAmount   float64 `json:"min_order_amount" gorm:"default:0"`
	DeliveryRadius   float64 `json:"delivery_radius" gorm:"default:10"`

	// Driver fields, only populated for role = driver
	CurrentLocation GeoPoint      `json:"current_location" gorm:"embedded;embeddedPrefix:cur_"`
	IsAvailable     bool          `json:"is_available" gorm:"default:true"`
	Stats           DeliveryStats `json:"delivery_stats" gorm:"embedded;embeddedPrefix:stats_"`

	// Wallet
	WalletBalance      float64             `json:"wallet_balance" gorm:"default:0"`
	WalletTransactions []WalletTransaction `json:"wallet_transactions,omitempty" gorm:"foreignKey:UserID"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HotelRating derives the hotel's running average from its sum and count.
func (u User) HotelRating() float64 {
	if u.HotelRatingCount == 0 {
		return 0
	}
	return u.HotelRatingSum / float64(u.HotelRatingCount)
}

// WalletTransaction is one ledger entry in a user's wallet.
type WalletTransaction struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	UserID      uint      `json:"user_id" gorm:"index;not null"`
	Kind        string    `json:"type" gorm:"column:kind;not null"` // credit or debit
	Amount      float64   `json:"amount" gorm:"not null"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}
