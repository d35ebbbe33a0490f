package models

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// DiscountType of a promotion
type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

// Promotion is a discount code scoped to one hotel. Code is unique per hotel.
type Promotion struct {
	ID             uint         `json:"id" gorm:"primaryKey"`
	Code           string       `json:"code" gorm:"uniqueIndex:idx_code_hotel;not null"`
	HotelID        uint         `json:"hotel_id" gorm:"uniqueIndex:idx_code_hotel"`
	Description    string       `json:"description" gorm:"not null"`
	DiscountType   DiscountType `json:"discount_type" gorm:"default:'percentage'"`
	DiscountValue  float64      `json:"discount_value" gorm:"not null"`
	MinOrderAmount float64      `json:"min_order_amount" gorm:"default:0"`
	MaxDiscount    float64      `json:"max_discount"` // 0 means no cap
	UsageLimit     int          `json:"usage_limit" gorm:"default:100"`
	UsedCount      int          `json:"used_count" gorm:"default:0"`
	StartDate      time.Time    `json:"start_date" gorm:"not null"`
	EndDate        time.Time    `json:"end_date" gorm:"not null"`
	IsActive       bool         `json:"is_active" gorm:"default:true"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

var (
	ErrPromoInvalid  = errors.New("invalid promo code")
	ErrPromoExpired  = errors.New("promo code expired")
	ErrPromoMinOrder = errors.New("order amount below promo minimum")
)

// Discount computes the discount this promotion yields for orderAmount,
// clamped to MaxDiscount when set. Callers must validate first.
func (p Promotion) Discount(orderAmount float64) float64 {
	var discount float64
	if p.DiscountType == DiscountPercentage {
		discount = orderAmount * p.DiscountValue / 100
	} else {
		discount = p.DiscountValue
	}
	if p.MaxDiscount > 0 && discount > p.MaxDiscount {
		discount = p.MaxDiscount
	}
	return discount
}

// Validate checks the code's constraints against an order amount at time now.
func (p Promotion) Validate(orderAmount float64, now time.Time) error {
	if !p.IsActive || now.Before(p.StartDate) || now.After(p.EndDate) {
		return ErrPromoInvalid
	}
	if p.UsedCount >= p.UsageLimit {
		return ErrPromoExpired
	}
	if orderAmount < p.MinOrderAmount {
		return ErrPromoMinOrder
	}
	return nil
}

// Redeem atomically increments the usage counter, enforcing the cap in the
// same statement so concurrent redemptions cannot overshoot the limit.
func (p *Promotion) Redeem(db *gorm.DB) error {
	res := db.Model(&Promotion{}).
		Where("id = ? AND used_count < usage_limit", p.ID).
		UpdateColumn("used_count", gorm.Expr("used_count + 1"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrPromoExpired
	}
	p.UsedCount++
	return nil
}
