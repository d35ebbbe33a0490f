package models

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Counter is a named persisted sequence. Order numbers are drawn from it with
// an atomic increment so concurrent creates can never collide.
type Counter struct {
	Name  string `gorm:"primaryKey"`
	Value int64  `gorm:"not null;default:0"`
}

// OrderNumberSeq is the sequence order numbers are drawn from.
const OrderNumberSeq = "order_number"

// EnsureCounter creates the named counter row if it does not exist yet.
func EnsureCounter(db *gorm.DB, name string) error {
	return db.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&Counter{Name: name, Value: 0}).Error
}

// NextOrderNumber increments the order-number sequence and formats the new
// value. Run it inside the order-create transaction so a failed create does
// not burn a number outside the caller's control.
func NextOrderNumber(tx *gorm.DB) (string, error) {
	res := tx.Model(&Counter{}).
		Where("name = ?", OrderNumberSeq).
		UpdateColumn("value", gorm.Expr("value + 1"))
	if res.Error != nil {
		return "", res.Error
	}
	if res.RowsAffected == 0 {
		return "", fmt.Errorf("counter %q not seeded", OrderNumberSeq)
	}
	var c Counter
	if err := tx.First(&c, "name = ?", OrderNumberSeq).Error; err != nil {
		return "", err
	}
	return fmt.Sprintf("ORD%06d", c.Value), nil
}
