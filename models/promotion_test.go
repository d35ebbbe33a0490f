package models

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Promotion{}, &Counter{}))
	return db
}

func activePromo() Promotion {
	return Promotion{
		Code:          "SAVE10",
		DiscountType:  DiscountPercentage,
		DiscountValue: 10,
		UsageLimit:    100,
		StartDate:     time.Now().Add(-time.Hour),
		EndDate:       time.Now().Add(24 * time.Hour),
		IsActive:      true,
	}
}

func TestPromotionValidate(t *testing.T) {
	now := time.Now()

	p := activePromo()
	require.NoError(t, p.Validate(500, now))

	expired := activePromo()
	expired.EndDate = now.Add(-time.Minute)
	require.ErrorIs(t, expired.Validate(500, now), ErrPromoInvalid)

	notStarted := activePromo()
	notStarted.StartDate = now.Add(time.Hour)
	require.ErrorIs(t, notStarted.Validate(500, now), ErrPromoInvalid)

	inactive := activePromo()
	inactive.IsActive = false
	require.ErrorIs(t, inactive.Validate(500, now), ErrPromoInvalid)

	usedUp := activePromo()
	usedUp.UsedCount = usedUp.UsageLimit
	require.ErrorIs(t, usedUp.Validate(500, now), ErrPromoExpired)

	minOrder := activePromo()
	minOrder.MinOrderAmount = 200
	require.ErrorIs(t, minOrder.Validate(150, now), ErrPromoMinOrder)
	require.NoError(t, minOrder.Validate(200, now))
}

func TestPromotionDiscount(t *testing.T) {
	p := activePromo() // 10%
	require.InDelta(t, 25.0, p.Discount(250), 1e-9)

	p.MaxDiscount = 20
	require.InDelta(t, 20.0, p.Discount(250), 1e-9)

	fixed := activePromo()
	fixed.DiscountType = DiscountFixed
	fixed.DiscountValue = 75
	require.InDelta(t, 75.0, fixed.Discount(250), 1e-9)
}

func TestPromotionRedeemEnforcesCap(t *testing.T) {
	db := testDB(t)

	p := activePromo()
	p.UsageLimit = 2
	require.NoError(t, db.Create(&p).Error)

	require.NoError(t, p.Redeem(db))
	require.NoError(t, p.Redeem(db))
	require.ErrorIs(t, p.Redeem(db), ErrPromoExpired)

	var stored Promotion
	require.NoError(t, db.First(&stored, p.ID).Error)
	require.Equal(t, 2, stored.UsedCount)
}

func TestNextOrderNumberSequence(t *testing.T) {
	db := testDB(t)
	require.NoError(t, EnsureCounter(db, OrderNumberSeq))
	// Seeding twice is a no-op
	require.NoError(t, EnsureCounter(db, OrderNumberSeq))

	n1, err := NextOrderNumber(db)
	require.NoError(t, err)
	require.Equal(t, "ORD000001", n1)

	n2, err := NextOrderNumber(db)
	require.NoError(t, err)
	require.Equal(t, "ORD000002", n2)
}

func TestHaversineKm(t *testing.T) {
	origin := GeoPoint{Latitude: 9.0054, Longitude: 38.7636}
	require.InDelta(t, 0, HaversineKm(origin, origin), 1e-9)

	// One degree of latitude is about 111 km
	north := GeoPoint{Latitude: 10.0054, Longitude: 38.7636}
	require.InDelta(t, 111.2, HaversineKm(origin, north), 0.5)
}

func TestEstimateETA(t *testing.T) {
	require.Equal(t, 30, EstimateETA(0))
	require.Equal(t, 22, EstimateETA(4))
	require.Equal(t, 14, EstimateETA(1.2))
}

func TestDerivedRatings(t *testing.T) {
	var s DeliveryStats
	require.InDelta(t, 5.0, s.AverageRating(), 1e-9)

	s.RatingSum = 13
	s.RatingCount = 3
	require.InDelta(t, 13.0/3.0, s.AverageRating(), 1e-9)
}
