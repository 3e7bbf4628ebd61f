package assignments

import (
	"context"
	"testing"
	"time"

	"github.com/altamira-labs/stocktrack-backend/pkg/db/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(&models.Invoice{}, &models.Item{}, &models.Assignment{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return conn
}

type testTxRunner struct {
	db *gorm.DB
}

func (r testTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

func seedItem(t *testing.T, conn *gorm.DB, available int, price float64) *models.Item {
	t.Helper()
	invoice := &models.Invoice{
		ID:            uuid.New(),
		InvoiceNumber: "INV-" + uuid.NewString()[:8],
		VendorName:    "Acme Supply",
		PurchaseDate:  time.Now().UTC(),
	}
	if err := conn.Create(invoice).Error; err != nil {
		t.Fatalf("seed invoice: %v", err)
	}
	item := &models.Item{
		ID:                uuid.New(),
		InvoiceID:         invoice.ID,
		Name:              "Laptop",
		Category:          "electronics",
		QuantityPurchased: available,
		QuantityAvailable: available,
		UnitPrice:         decimal.NewFromFloat(price),
	}
	if err := conn.Create(item).Error; err != nil {
		t.Fatalf("seed item: %v", err)
	}
	return item
}
