package repository

import (
	"context"
	"testing"
	"time"

	"github.com/kluaihom/banana-market-backend/internal/model"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(
		&model.UserProfile{},
		&model.UserRole{},
		&model.FarmProfile{},
		&model.Product{},
		&model.ProductImage{},
		&model.Reservation{},
		&model.Order{},
		&model.Review{},
		&model.Cultivar{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func seedFarm(t *testing.T, db *gorm.DB, ownerUID string) *model.FarmProfile {
	t.Helper()
	farm := &model.FarmProfile{
		UserUID:  ownerUID,
		FarmName: "Suan Kluai Test",
	}
	if err := db.Create(farm).Error; err != nil {
		t.Fatalf("failed to seed farm: %v", err)
	}
	return farm
}

func seedProduct(t *testing.T, db *gorm.DB, farmID uint64, qty int64) *model.Product {
	t.Helper()
	p := &model.Product{
		FarmID:            farmID,
		Name:              "Kluai Nam Wa",
		ProductType:       model.ProductTypeFruit,
		PricePerUnit:      35,
		AvailableQuantity: qty,
		Unit:              "hand",
		HarvestDate:       time.Now(),
		IsActive:          true,
	}
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("failed to seed product: %v", err)
	}
	return p
}

func seedReservation(t *testing.T, db *gorm.DB, repo ReservationRepository, p *model.Product, buyerUID string, qty int64) *model.Reservation {
	t.Helper()
	res := &model.Reservation{
		BuyerUID:        buyerUID,
		ProductID:       p.ID,
		FarmID:          p.FarmID,
		Quantity:        qty,
		TotalPrice:      p.PricePerUnit * float64(qty),
		ReceiverName:    "Somchai",
		ReceiverPhone:   "0812345678",
		DeliveryAddress: "99 Moo 4, Kamphaeng Phet",
		Status:          model.ReservationStatusPending,
	}
	if err := repo.CreateWithStockDecrement(context.Background(), res); err != nil {
		t.Fatalf("failed to seed reservation: %v", err)
	}
	return res
}

func productQuantity(t *testing.T, db *gorm.DB, id uint64) int64 {
	t.Helper()
	var p model.Product
	if err := db.First(&p, id).Error; err != nil {
		t.Fatalf("failed to reload product: %v", err)
	}
	return p.AvailableQuantity
}
