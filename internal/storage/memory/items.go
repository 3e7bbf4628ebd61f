package memory

import (
	"context"
	"sort"
	"time"

	"github.com/altamira-labs/stocktrack-backend/internal/items"
	"github.com/altamira-labs/stocktrack-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type itemRepo struct {
	store  *Store
	txHeld bool
}

// Items returns an item repository backed by this store.
func (s *Store) Items() items.Repository {
	return &itemRepo{store: s}
}

func (r *itemRepo) WithTx(tx *gorm.DB) items.Repository {
	return &itemRepo{store: r.store, txHeld: true}
}

func (r *itemRepo) Create(ctx context.Context, item *models.Item) error {
	unlock := r.store.lockWrite(r.txHeld)
	defer unlock()

	stampItem(item)
	r.store.items[item.ID] = *item
	return nil
}

func (r *itemRepo) CreateBatch(ctx context.Context, batch []*models.Item) error {
	unlock := r.store.lockWrite(r.txHeld)
	defer unlock()

	for _, item := range batch {
		stampItem(item)
		r.store.items[item.ID] = *item
	}
	return nil
}

func (r *itemRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	unlock := r.store.lockRead(r.txHeld)
	defer unlock()

	item, ok := r.store.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &item, nil
}

func (r *itemRepo) List(ctx context.Context) ([]models.Item, error) {
	unlock := r.store.lockRead(r.txHeld)
	defer unlock()

	return r.collect(func(models.Item) bool { return true }), nil
}

func (r *itemRepo) ListByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]models.Item, error) {
	unlock := r.store.lockRead(r.txHeld)
	defer unlock()

	return r.collect(func(item models.Item) bool { return item.InvoiceID == invoiceID }), nil
}

func (r *itemRepo) ListLowStock(ctx context.Context, threshold int) ([]models.Item, error) {
	unlock := r.store.lockRead(r.txHeld)
	defer unlock()

	rows := r.collect(func(item models.Item) bool {
		return item.QuantityAvailable > 0 && item.QuantityAvailable < threshold
	})
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].QuantityAvailable != rows[j].QuantityAvailable {
			return rows[i].QuantityAvailable < rows[j].QuantityAvailable
		}
		return rows[i].CreatedAt.After(rows[j].CreatedAt)
	})
	return rows, nil
}

func (r *itemRepo) ListOutOfStock(ctx context.Context) ([]models.Item, error) {
	unlock := r.store.lockRead(r.txHeld)
	defer unlock()

	return r.collect(func(item models.Item) bool { return item.QuantityAvailable == 0 }), nil
}

func (r *itemRepo) DecrementAvailable(ctx context.Context, id uuid.UUID, qty int) (bool, error) {
	unlock := r.store.lockWrite(r.txHeld)
	defer unlock()

	item, ok := r.store.items[id]
	if !ok || item.QuantityAvailable < qty {
		return false, nil
	}
	item.QuantityAvailable -= qty
	item.UpdatedAt = time.Now().UTC()
	r.store.items[id] = item
	return true, nil
}

func (r *itemRepo) Totals(ctx context.Context) (items.Totals, error) {
	unlock := r.store.lockRead(r.txHeld)
	defer unlock()

	var totals items.Totals
	for _, item := range r.store.items {
		totals.Purchased += int64(item.QuantityPurchased)
		totals.Available += int64(item.QuantityAvailable)
	}
	return totals, nil
}

func (r *itemRepo) CountLowStock(ctx context.Context, threshold int) (int64, error) {
	unlock := r.store.lockRead(r.txHeld)
	defer unlock()

	var count int64
	for _, item := range r.store.items {
		if item.QuantityAvailable > 0 && item.QuantityAvailable < threshold {
			count++
		}
	}
	return count, nil
}

// collect assumes the caller holds the store lock.
func (r *itemRepo) collect(keep func(models.Item) bool) []models.Item {
	rows := make([]models.Item, 0, len(r.store.items))
	for _, item := range r.store.items {
		if keep(item) {
			rows = append(rows, item)
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].CreatedAt.Equal(rows[j].CreatedAt) {
			return rows[i].CreatedAt.After(rows[j].CreatedAt)
		}
		return rows[i].ID.String() > rows[j].ID.String()
	})
	return rows
}

func stampItem(item *models.Item) {
	now := time.Now().UTC()
	if item.CreatedAt.IsZero() {
		item.CreatedAt = now
	}
	item.UpdatedAt = now
}
