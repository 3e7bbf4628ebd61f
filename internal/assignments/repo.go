package assignments

import (
	"context"
	"time"

	"github.com/altamira-labs/stocktrack-backend/pkg/db/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AssignmentWithItem joins an assignment row with the fields of its item that
// the dashboard and scan jobs care about.
type AssignmentWithItem struct {
	ID             uuid.UUID       `gorm:"column:id"`
	ItemID         uuid.UUID       `gorm:"column:item_id"`
	Quantity       int             `gorm:"column:quantity"`
	AssignedTo     string          `gorm:"column:assigned_to"`
	Reason         *string         `gorm:"column:reason"`
	AssignmentDate time.Time       `gorm:"column:assignment_date"`
	CreatedAt      time.Time       `gorm:"column:created_at"`
	ItemName       string          `gorm:"column:item_name"`
	ItemCategory   string          `gorm:"column:item_category"`
	UnitPrice      decimal.Decimal `gorm:"column:unit_price"`
}

// Repository exposes persistence helpers for assignments.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, assignment *models.Assignment) error
	List(ctx context.Context) ([]models.Assignment, error)
	Recent(ctx context.Context, limit int) ([]AssignmentWithItem, error)
	ListOlderThan(ctx context.Context, cutoff time.Time) ([]AssignmentWithItem, error)
	TotalAssigned(ctx context.Context) (int64, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns an assignment repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repositoryImpl{db: tx}
}

func (r *repositoryImpl) Create(ctx context.Context, assignment *models.Assignment) error {
	return r.db.WithContext(ctx).Create(assignment).Error
}

func (r *repositoryImpl) List(ctx context.Context) ([]models.Assignment, error) {
	var rows []models.Assignment
	if err := r.db.WithContext(ctx).
		Order("assignment_date DESC, created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

const joinedColumns = `assignments.id, assignments.item_id, assignments.quantity,
	assignments.assigned_to, assignments.reason, assignments.assignment_date,
	assignments.created_at, items.name AS item_name, items.category AS item_category,
	items.unit_price AS unit_price`

func (r *repositoryImpl) Recent(ctx context.Context, limit int) ([]AssignmentWithItem, error) {
	var rows []AssignmentWithItem
	err := r.db.WithContext(ctx).
		Table("assignments").
		Select(joinedColumns).
		Joins("JOIN items ON items.id = assignments.item_id").
		Order("assignments.created_at DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repositoryImpl) ListOlderThan(ctx context.Context, cutoff time.Time) ([]AssignmentWithItem, error) {
	var rows []AssignmentWithItem
	err := r.db.WithContext(ctx).
		Table("assignments").
		Select(joinedColumns).
		Joins("JOIN items ON items.id = assignments.item_id").
		Where("assignments.assignment_date <= ?", cutoff).
		Order("assignments.assignment_date ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repositoryImpl) TotalAssigned(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.Assignment{}).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&total).Error
	return total, err
}
