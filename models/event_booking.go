package models

import "time"

// BookingStatus of an event booking
type BookingStatus string

const (
	BookingPending    BookingStatus = "pending"
	BookingConfirmed  BookingStatus = "confirmed"
	BookingInProgress BookingStatus = "in_progress"
	BookingCompleted  BookingStatus = "completed"
	BookingCancelled  BookingStatus = "cancelled"
)

// EventBooking lets a customer book a hotel for a catered event.
type EventBooking struct {
	ID      uint `json:"id" gorm:"primaryKey"`
	UserID  uint `json:"user_id" gorm:"index;not null"`
	User    User `json:"user,omitempty" gorm:"foreignKey:UserID"`
	HotelID uint `json:"hotel_id" gorm:"index;not null"`
	Hotel   User `json:"hotel,omitempty" gorm:"foreignKey:HotelID"`

	EventType  string    `json:"event_type" gorm:"not null"` // wedding, birthday, corporate...
	EventName  string    `json:"event_name" gorm:"not null"`
	EventDate  time.Time `json:"event_date" gorm:"not null;index"`
	EventTime  string    `json:"event_time" gorm:"not null"`
	GuestCount int       `json:"guest_count" gorm:"not null"`

	Venue           string `json:"venue" gorm:"default:'restaurant'"` // restaurant, outdoor, home_delivery, custom_location
	CustomLocation  string `json:"custom_location,omitempty"`
	Services        string `json:"services,omitempty"` // comma-separated: catering, decoration, cake...
	FoodPreferences string `json:"food_preferences" gorm:"default:'mixed'"`
	SpecialRequests string `json:"special_requests,omitempty"`

	BudgetMin    float64 `json:"budget_min"`
	BudgetMax    float64 `json:"budget_max"`
	ContactPhone string  `json:"contact_phone" gorm:"not null"`
	ContactEmail string  `json:"contact_email,omitempty"`

	Status BookingStatus `json:"status" gorm:"default:'pending';index"`

	// Hotel's response
	ResponseMessage string     `json:"response_message,omitempty"`
	Quotation       float64    `json:"quotation,omitempty"`
	RespondedAt     *time.Time `json:"responded_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
