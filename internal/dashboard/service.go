package dashboard

import (
	"context"

	"github.com/altamira-labs/stocktrack-backend/internal/items"
	pkgerrors "github.com/altamira-labs/stocktrack-backend/pkg/errors"
)

// Metrics is the JSON shape of the dashboard summary. Totals count units, not
// distinct item rows: an item bought in bulk weighs by its quantity.
type Metrics struct {
	TotalItems     int64 `json:"totalItems"`
	AvailableItems int64 `json:"availableItems"`
	AssignedItems  int64 `json:"assignedItems"`
	LowStockItems  int64 `json:"lowStockItems"`
}

// Service exposes the dashboard summary.
type Service interface {
	Metrics(ctx context.Context) (*Metrics, error)
}

type itemStats interface {
	Totals(ctx context.Context) (items.Totals, error)
	CountLowStock(ctx context.Context, threshold int) (int64, error)
}

type assignmentStats interface {
	TotalAssigned(ctx context.Context) (int64, error)
}

type service struct {
	items       itemStats
	assignments assignmentStats
}

// NewService wires the dashboard service dependencies.
func NewService(itemRepo itemStats, assignmentRepo assignmentStats) (Service, error) {
	if itemRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "items repository required")
	}
	if assignmentRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "assignments repository required")
	}
	return &service{items: itemRepo, assignments: assignmentRepo}, nil
}

func (s *service) Metrics(ctx context.Context) (*Metrics, error) {
	totals, err := s.items.Totals(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "aggregate item totals")
	}
	lowStock, err := s.items.CountLowStock(ctx, items.LowStockThreshold)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count low stock items")
	}
	assigned, err := s.assignments.TotalAssigned(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "aggregate assignments")
	}

	return &Metrics{
		TotalItems:     totals.Purchased,
		AvailableItems: totals.Available,
		AssignedItems:  assigned,
		LowStockItems:  lowStock,
	}, nil
}
