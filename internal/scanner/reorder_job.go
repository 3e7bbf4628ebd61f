package scanner

import (
	"context"
	"fmt"
	"time"

	"github.com/altamira-labs/stocktrack-backend/internal/notifications"
	"github.com/altamira-labs/stocktrack-backend/pkg/db/models"
	"github.com/altamira-labs/stocktrack-backend/pkg/enums"
	"github.com/altamira-labs/stocktrack-backend/pkg/logger"
	"go.uber.org/multierr"
)

const reorderWindow = 48 * time.Hour

type outOfStockLister interface {
	ListOutOfStock(ctx context.Context) ([]models.Item, error)
}

// ReorderJobParams configure the reorder-suggestion check.
type ReorderJobParams struct {
	Logger        *logger.Logger
	Items         outOfStockLister
	Notifications notificationPublisher
}

// NewReorderJob constructs the reorder-suggestion scan job.
func NewReorderJob(params ReorderJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Items == nil {
		return nil, fmt.Errorf("items repository required")
	}
	if params.Notifications == nil {
		return nil, fmt.Errorf("notifications service required")
	}
	return &reorderJob{
		logg:          params.Logger,
		items:         params.Items,
		notifications: params.Notifications,
	}, nil
}

type reorderJob struct {
	logg          *logger.Logger
	items         outOfStockLister
	notifications notificationPublisher
}

func (j *reorderJob) Name() string { return "reorder-suggestion" }

func (j *reorderJob) Run(ctx context.Context) error {
	rows, err := j.items.ListOutOfStock(ctx)
	if err != nil {
		return fmt.Errorf("query out-of-stock items: %w", err)
	}

	var errs []error
	created := 0
	for _, item := range rows {
		emitted, err := j.notifications.Publish(ctx, notifications.PublishInput{
			Type:        enums.NotificationTypeReorderSuggestion,
			Title:       fmt.Sprintf("Reorder suggestion: %s", item.Name),
			Message:     fmt.Sprintf("%s is out of stock; all %d purchased units are assigned", item.Name, item.QuantityPurchased),
			Priority:    enums.NotificationPriorityMedium,
			RelatedID:   item.ID,
			DedupWindow: reorderWindow,
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
	j.logg.Info(logCtx, "reorder scan complete")
	return multierr.Combine(errs...)
}
