package scanner

import (
	"context"
	"fmt"
	"time"

	"github.com/altamira-labs/stocktrack-backend/internal/notifications"
	"github.com/altamira-labs/stocktrack-backend/pkg/db/models"
	"github.com/altamira-labs/stocktrack-backend/pkg/enums"
	"github.com/altamira-labs/stocktrack-backend/pkg/logger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/multierr"
)

const approvalWindow = 24 * time.Hour

var (
	approvalFloor     = decimal.NewFromInt(1000)
	approvalHighFloor = decimal.NewFromInt(5000)
)

type invoiceLister interface {
	List(ctx context.Context) ([]models.Invoice, error)
}

type invoiceItemLister interface {
	ListByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]models.Item, error)
}

// InvoiceApprovalJobParams configure the high-value invoice check.
type InvoiceApprovalJobParams struct {
	Logger        *logger.Logger
	Invoices      invoiceLister
	Items         invoiceItemLister
	Notifications notificationPublisher
}

// NewInvoiceApprovalJob constructs the invoice-approval scan job.
func NewInvoiceApprovalJob(params InvoiceApprovalJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Invoices == nil {
		return nil, fmt.Errorf("invoices repository required")
	}
	if params.Items == nil {
		return nil, fmt.Errorf("items repository required")
	}
	if params.Notifications == nil {
		return nil, fmt.Errorf("notifications service required")
	}
	return &invoiceApprovalJob{
		logg:          params.Logger,
		invoices:      params.Invoices,
		items:         params.Items,
		notifications: params.Notifications,
	}, nil
}

type invoiceApprovalJob struct {
	logg          *logger.Logger
	invoices      invoiceLister
	items         invoiceItemLister
	notifications notificationPublisher
}

func (j *invoiceApprovalJob) Name() string { return "invoice-approval" }

func (j *invoiceApprovalJob) Run(ctx context.Context) error {
	rows, err := j.invoices.List(ctx)
	if err != nil {
		return fmt.Errorf("query invoices: %w", err)
	}

	var errs []error
	created := 0
	for _, invoice := range rows {
		total, err := j.invoiceTotal(ctx, invoice.ID)
		if err != nil {
			errs = append(errs, fmt.Errorf("invoice %s: %w", invoice.ID, err))
			continue
		}
		if !total.GreaterThan(approvalFloor) {
			continue
		}
		priority := enums.NotificationPriorityMedium
		if total.GreaterThan(approvalHighFloor) {
			priority = enums.NotificationPriorityHigh
		}
		emitted, err := j.notifications.Publish(ctx, notifications.PublishInput{
			Type:  enums.NotificationTypeInvoiceApproval,
			Title: fmt.Sprintf("High-value invoice: %s", invoice.InvoiceNumber),
			Message: fmt.Sprintf("Invoice %s from %s totals %s and may need approval",
				invoice.InvoiceNumber, invoice.VendorName, total.StringFixed(2)),
			Priority:    priority,
			RelatedID:   invoice.ID,
			DedupWindow: approvalWindow,
		})
		if err != nil {
			errs = append(errs, fmt.Errorf("invoice %s: %w", invoice.ID, err))
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
	j.logg.Info(logCtx, "invoice approval scan complete")
	return multierr.Combine(errs...)
}

func (j *invoiceApprovalJob) invoiceTotal(ctx context.Context, invoiceID uuid.UUID) (decimal.Decimal, error) {
	items, err := j.items.ListByInvoice(ctx, invoiceID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("load invoice items: %w", err)
	}
	total := decimal.Zero
	for _, item := range items {
		line := item.UnitPrice.Mul(decimal.NewFromInt(int64(item.QuantityPurchased)))
		total = total.Add(line)
	}
	return total, nil
}
