package scanner

import (
	"context"
	"fmt"
	"time"

	"github.com/altamira-labs/stocktrack-backend/internal/items"
	"github.com/altamira-labs/stocktrack-backend/internal/notifications"
	"github.com/altamira-labs/stocktrack-backend/pkg/db/models"
	"github.com/altamira-labs/stocktrack-backend/pkg/enums"
	"github.com/altamira-labs/stocktrack-backend/pkg/logger"
	"go.uber.org/multierr"
)

const (
	lowStockWindow   = 24 * time.Hour
	urgentStockLevel = 2
)

type notificationPublisher interface {
	Publish(ctx context.Context, input notifications.PublishInput) (bool, error)
}

type lowStockLister interface {
	ListLowStock(ctx context.Context, threshold int) ([]models.Item, error)
}

// LowStockJobParams configure the low-stock check.
type LowStockJobParams struct {
	Logger        *logger.Logger
	Items         lowStockLister
	Notifications notificationPublisher
}

// NewLowStockJob constructs the low-stock scan job.
func NewLowStockJob(params LowStockJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Items == nil {
		return nil, fmt.Errorf("items repository required")
	}
	if params.Notifications == nil {
		return nil, fmt.Errorf("notifications service required")
	}
	return &lowStockJob{
		logg:          params.Logger,
		items:         params.Items,
		notifications: params.Notifications,
	}, nil
}

type lowStockJob struct {
	logg          *logger.Logger
	items         lowStockLister
	notifications notificationPublisher
}

func (j *lowStockJob) Name() string { return "low-stock" }

func (j *lowStockJob) Run(ctx context.Context) error {
	rows, err := j.items.ListLowStock(ctx, items.LowStockThreshold)
	if err != nil {
		return fmt.Errorf("query low stock items: %w", err)
	}

	var errs []error
	created := 0
	for _, item := range rows {
		priority := enums.NotificationPriorityHigh
		if item.QuantityAvailable <= urgentStockLevel {
			priority = enums.NotificationPriorityUrgent
		}
		emitted, err := j.notifications.Publish(ctx, notifications.PublishInput{
			Type:        enums.NotificationTypeLowStock,
			Title:       fmt.Sprintf("Low stock: %s", item.Name),
			Message:     fmt.Sprintf("%s has %d of %d units left", item.Name, item.QuantityAvailable, item.QuantityPurchased),
			Priority:    priority,
			RelatedID:   item.ID,
			DedupWindow: lowStockWindow,
		})
		if err != nil {
			errs = append(errs, fmt.Errorf("item %s: %w", item.ID, err))
			continue
		}
		if emitted {
			created++
		}
	}

	logCtx := j.logg.WithFields(ctx, map[string]any{
		"scanned": len(rows),
		"created": created,
	})
	j.logg.Info(logCtx, "low stock scan complete")
	return multierr.Combine(errs...)
}
