package models

import "time"

// Review rates a Food and/or a Hotel on a 1–5 scale.
type Review struct {
	ID      uint  `json:"id" gorm:"primaryKey"`
	UserID  uint  `json:"user_id" gorm:"index;not null"`
	User    User  `json:"user,omitempty" gorm:"foreignKey:UserID"`
	FoodID  *uint `json:"food_id,omitempty" gorm:"index"`
	HotelID *uint `json:"hotel_id,omitempty" gorm:"index"`
	OrderID *uint `json:"order_id,omitempty"`

	Rating  int    `json:"rating" gorm:"not null"`
	Comment string `json:"comment"`

	IsVerifiedPurchase bool `json:"is_verified_purchase" gorm:"default:false"`
	LikeCount          int  `json:"like_count" gorm:"default:0"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
