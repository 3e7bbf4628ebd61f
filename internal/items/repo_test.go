package items

import (
	"context"
	"testing"

	"github.com/altamira-labs/stocktrack-backend/pkg/db/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func seedItem(t *testing.T, repo Repository, purchased, available int) *models.Item {
	t.Helper()
	item := &models.Item{
		ID:                uuid.New(),
		InvoiceID:         uuid.New(),
		Name:              "Chair",
		Category:          "furniture",
		QuantityPurchased: purchased,
		QuantityAvailable: available,
		UnitPrice:         decimal.NewFromInt(120),
	}
	if err := repo.Create(context.Background(), item); err != nil {
		t.Fatalf("seed item: %v", err)
	}
	return item
}

func TestDecrementAvailableGuard(t *testing.T) {
	repo := NewRepository(newTestDB(t))
	ctx := context.Background()
	item := seedItem(t, repo, 10, 3)

	ok, err := repo.DecrementAvailable(ctx, item.ID, 5)
	if err != nil {
		t.Fatalf("DecrementAvailable: %v", err)
	}
	if ok {
		t.Fatal("expected guard to reject decrement past available stock")
	}

	reloaded, err := repo.FindByID(ctx, item.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if reloaded.QuantityAvailable != 3 {
		t.Fatalf("expected stock untouched at 3, got %d", reloaded.QuantityAvailable)
	}

	ok, err = repo.DecrementAvailable(ctx, item.ID, 3)
	if err != nil {
		t.Fatalf("DecrementAvailable: %v", err)
	}
	if !ok {
		t.Fatal("expected exact-quantity decrement to succeed")
	}

	reloaded, err = repo.FindByID(ctx, item.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if reloaded.QuantityAvailable != 0 {
		t.Fatalf("expected stock drained to 0, got %d", reloaded.QuantityAvailable)
	}
}

func TestListLowStockBoundaries(t *testing.T) {
	repo := NewRepository(newTestDB(t))
	ctx := context.Background()

	seedItem(t, repo, 10, 0) // out of stock, not low stock
	low := seedItem(t, repo, 10, 4)
	seedItem(t, repo, 10, 5) // at threshold, not low stock
	seedItem(t, repo, 10, 9)

	rows, err := repo.ListLowStock(ctx, LowStockThreshold)
	if err != nil {
		t.Fatalf("ListLowStock: %v", err)
	}
	if len(rows) != 1 || rows[0].ID != low.ID {
		t.Fatalf("expected exactly the low-stock item, got %+v", rows)
	}

	count, err := repo.CountLowStock(ctx, LowStockThreshold)
	if err != nil {
		t.Fatalf("CountLowStock: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected low-stock count 1, got %d", count)
	}
}

func TestTotalsAggregatesAllItems(t *testing.T) {
	repo := NewRepository(newTestDB(t))
	ctx := context.Background()

	seedItem(t, repo, 10, 3)
	seedItem(t, repo, 5, 5)

	totals, err := repo.Totals(ctx)
	if err != nil {
		t.Fatalf("Totals: %v", err)
	}
	if totals.Purchased != 15 || totals.Available != 8 {
		t.Fatalf("unexpected totals %+v", totals)
	}
}

func TestTotalsEmptyTable(t *testing.T) {
	repo := NewRepository(newTestDB(t))

	totals, err := repo.Totals(context.Background())
	if err != nil {
		t.Fatalf("Totals: %v", err)
	}
	if totals.Purchased != 0 || totals.Available != 0 {
		t.Fatalf("expected zero totals, got %+v", totals)
	}
}
