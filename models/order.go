package models

import "time"

// OrderStatus represents the coarse lifecycle state of an order
type OrderStatus string

const (
	StatusPending        OrderStatus = "pending"
	StatusConfirmed      OrderStatus = "confirmed"
	StatusPreparing      OrderStatus = "preparing"
	StatusReady          OrderStatus = "ready"
	StatusOutForDelivery OrderStatus = "out_for_delivery"
	StatusDelivered      OrderStatus = "delivered"
	StatusCancelled      OrderStatus = "cancelled"
)

// TrackingStatus is the fine-grained delivery sub-state, distinct from
// the order's coarse status.
type TrackingStatus string

const (
	TrackingPending   TrackingStatus = "pending"
	TrackingAssigned  TrackingStatus = "assigned"
	TrackingPickedUp  TrackingStatus = "picked_up"
	TrackingOnTheWay  TrackingStatus = "on_the_way"
	TrackingArrived   TrackingStatus = "arrived"
	TrackingDelivered TrackingStatus = "delivered"
)

// PaymentStatus of the order's payment sub-record
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

// Payment bookkeeping for an order
type Payment struct {
	Method        string        `json:"method" gorm:"default:'cash'"` // cash, card, wallet
	Status        PaymentStatus `json:"status" gorm:"default:'pending'"`
	TransactionID string        `json:"transaction_id,omitempty"`
	CardLast4     string        `json:"card_last4,omitempty"`
	PaidAt        *time.Time    `json:"paid_at,omitempty"`
}

// Delivery is the assignment/tracking sub-record of an order
type Delivery struct {
	Type           string         `json:"type" gorm:"default:'delivery'"` // delivery or pickup
	Fee            float64        `json:"fee"`
	EstimatedTime  int            `json:"estimated_time" gorm:"default:30"` // minutes
	Distance       float64        `json:"distance"`                         // km
	DriverID       *uint          `json:"driver_id,omitempty"`
	DriverName     string         `json:"driver_name,omitempty"`
	DriverPhone    string         `json:"driver_phone,omitempty"`
	TrackingStatus TrackingStatus `json:"tracking_status" gorm:"default:'pending'"`
	DriverLocation GeoPoint       `json:"driver_location" gorm:"embedded;embeddedPrefix:drv_"`
	PickupLocation GeoPoint       `json:"pickup_location" gorm:"embedded;embeddedPrefix:pick_"`
	AssignedAt     *time.Time     `json:"assigned_at,omitempty"`
	PickedUpAt     *time.Time     `json:"picked_up_at,omitempty"`
	DeliveredAt    *time.Time     `json:"delivered_at,omitempty"`
	DriverRating   int            `json:"driver_rating,omitempty"`
	DriverReview   string         `json:"driver_review,omitempty"`
}

// DeliveryAddress is the customer's drop-off snapshot
type DeliveryAddress struct {
	Label        string  `json:"label" gorm:"default:'Home'"`
	FullAddress  string  `json:"full_address"`
	City         string  `json:"city,omitempty"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	Instructions string  `json:"instructions,omitempty"`
}

type Order struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	OrderNumber string `json:"order_number" gorm:"uniqueIndex"`
	UserID      uint   `json:"user_id" gorm:"index;not null"`
	User        User   `json:"user,omitempty" gorm:"foreignKey:UserID"`

	Items []OrderItem `json:"items" gorm:"foreignKey:OrderID"`

	// Pricing breakdown: total = subtotal + delivery fee + tax + tip - discount
	Subtotal    float64 `json:"subtotal"`
	DeliveryFee float64 `json:"delivery_fee"`
	Tax         float64 `json:"tax"`
	Tip         float64 `json:"tip"`
	Discount    float64 `json:"discount"`
	TotalPrice  float64 `json:"total_price"`

	Status OrderStatus `json:"status" gorm:"not null;default:'pending';index"`

	Payment  Payment         `json:"payment" gorm:"embedded;embeddedPrefix:payment_"`
	Delivery Delivery        `json:"delivery" gorm:"embedded;embeddedPrefix:delivery_"`
	Address  DeliveryAddress `json:"delivery_address" gorm:"embedded;embeddedPrefix:address_"`

	Notes        string `json:"notes"`
	PromoCode    string `json:"promo_code,omitempty"`
	CancelReason string `json:"cancel_reason,omitempty"`

	ChatMessages  []ChatMessage        `json:"chat_messages,omitempty" gorm:"foreignKey:OrderID"`
	StatusHistory []OrderStatusHistory `json:"status_history,omitempty" gorm:"foreignKey:OrderID"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OrderItem is a denormalized snapshot of a food at order time. HotelID is
// the canonical tenant key every hotel-scoped query filters on.
type OrderItem struct {
	ID        uint    `json:"id" gorm:"primaryKey"`
	OrderID   uint    `json:"order_id" gorm:"index;not null"`
	FoodID    uint    `json:"food_id"`
	Name      string  `json:"name" gorm:"not null"`
	Price     float64 `json:"price" gorm:"not null"`
	Quantity  int     `json:"quantity" gorm:"not null"`
	HotelID   uint    `json:"hotel_id" gorm:"index;not null"`
	HotelName string  `json:"hotel_name"`
}

// ChatMessage is one entry in the append-only customer↔driver thread
type ChatMessage struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	OrderID    uint      `json:"order_id" gorm:"index;not null"`
	SenderID   uint      `json:"sender_id" gorm:"not null"`
	SenderRole string    `json:"sender_role" gorm:"not null"` // user or driver
	Message    string    `json:"message" gorm:"not null"`
	IsRead     bool      `json:"is_read" gorm:"default:false"`
	CreatedAt  time.Time `json:"timestamp"`
}

// OrderStatusHistory tracks every status change for the audit trail
type OrderStatusHistory struct {
	ID         uint        `json:"id" gorm:"primaryKey"`
	OrderID    uint        `json:"order_id" gorm:"index;not null"`
	FromStatus OrderStatus `json:"from_status"`
	ToStatus   OrderStatus `json:"to_status" gorm:"not null"`
	ChangedBy  uint        `json:"changed_by"`
	Note       string      `json:"note"`
	CreatedAt  time.Time   `json:"created_at"`
}
