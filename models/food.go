package models

import "time"

// Food is a menu item belonging to exactly one hotel. HotelID is immutable
// after creation.
type Food struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	HotelID     uint    `json:"hotel_id" gorm:"index;not null"`
	Hotel       User    `json:"hotel,omitempty" gorm:"foreignKey:HotelID"`
	HotelName   string  `json:"hotel_name" gorm:"index"`
	Name        string  `json:"name" gorm:"not null"`
	Description string  `json:"description"`
	Price       float64 `json:"price" gorm:"not null"`
	Category    string  `json:"category" gorm:"default:'General'"`
	IsAvailable bool    `json:"is_available" gorm:"default:true"`

	// Engagement counters, bumped with atomic increments
	LikeCount int `json:"like_count" gorm:"default:0"`
	ViewCount int `json:"view_count" gorm:"default:0"`

	// Rating aggregate: sum and count are incremented atomically,
	// the average is derived on read
	RatingSum   float64 `json:"rating_sum" gorm:"default:0"`
	RatingCount int     `json:"rating_count" gorm:"default:0"`

	PreparationTime int  `json:"preparation_time" gorm:"default:20"` // minutes
	IsVegetarian    bool `json:"is_vegetarian" gorm:"default:false"`
	IsSpicy         bool `json:"is_spicy" gorm:"default:false"`
	IsFeatured      bool `json:"is_featured" gorm:"default:false"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Rating derives the running average for display.
func (f Food) Rating() float64 {
	if f.RatingCount == 0 {
		return 0
	}
	return f.RatingSum / float64(f.RatingCount)
}
