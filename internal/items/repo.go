package items

import (
	"context"

	"github.com/altamira-labs/stocktrack-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LowStockThreshold marks an item as low stock when available stock is below
// it (but not zero; that is out-of-stock territory).
const LowStockThreshold = 5

// Totals aggregates purchased/available counts across all items.
type Totals struct {
	Purchased int64
	Available int64
}

// Repository exposes persistence helpers for items. Both the GORM and the
// in-memory backends satisfy it.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, item *models.Item) error
	CreateBatch(ctx context.Context, items []*models.Item) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Item, error)
	List(ctx context.Context) ([]models.Item, error)
	ListByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]models.Item, error)
	ListLowStock(ctx context.Context, threshold int) ([]models.Item, error)
	ListOutOfStock(ctx context.Context) ([]models.Item, error)
	// DecrementAvailable applies a guarded decrement and reports whether the
	// guard (quantity_available >= qty) held. It never drives stock negative.
	DecrementAvailable(ctx context.Context, id uuid.UUID, qty int) (bool, error)
	Totals(ctx context.Context) (Totals, error)
	CountLowStock(ctx context.Context, threshold int) (int64, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns an item repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repositoryImpl{db: tx}
}

func (r *repositoryImpl) Create(ctx context.Context, item *models.Item) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *repositoryImpl) CreateBatch(ctx context.Context, items []*models.Item) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(items).Error
}

func (r *repositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	var item models.Item
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *repositoryImpl) List(ctx context.Context) ([]models.Item, error) {
	var items []models.Item
	if err := r.db.WithContext(ctx).Order("created_at DESC, id DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repositoryImpl) ListByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]models.Item, error) {
	var items []models.Item
	if err := r.db.WithContext(ctx).
		Where("invoice_id = ?", invoiceID).
		Order("created_at DESC, id DESC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repositoryImpl) ListLowStock(ctx context.Context, threshold int) ([]models.Item, error) {
	var items []models.Item
	if err := r.db.WithContext(ctx).
		Where("quantity_available > 0 AND quantity_available < ?", threshold).
		Order("quantity_available ASC, created_at DESC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repositoryImpl) ListOutOfStock(ctx context.Context) ([]models.Item, error) {
	var items []models.Item
	if err := r.db.WithContext(ctx).
		Where("quantity_available = 0").
		Order("updated_at DESC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repositoryImpl) DecrementAvailable(ctx context.Context, id uuid.UUID, qty int) (bool, error) {
	res := r.db.WithContext(ctx).Exec(`
		UPDATE items
		SET quantity_available = quantity_available - ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND quantity_available >= ?
	`, qty, id, qty)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *repositoryImpl) Totals(ctx context.Context) (Totals, error) {
	var totals Totals
	err := r.db.WithContext(ctx).
		Model(&models.Item{}).
		Select("COALESCE(SUM(quantity_purchased), 0) AS purchased, COALESCE(SUM(quantity_available), 0) AS available").
		Scan(&totals).Error
	if err != nil {
		return Totals{}, err
	}
	return totals, nil
}

func (r *repositoryImpl) CountLowStock(ctx context.Context, threshold int) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Item{}).
		Where("quantity_available > 0 AND quantity_available < ?", threshold).
		Count(&count).Error
	return count, err
}
