package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/altamira-labs/stocktrack-backend/internal/invoices"
	"github.com/altamira-labs/stocktrack-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type invoiceRepo struct {
	store  *Store
	txHeld bool
}

// Invoices returns an invoice repository backed by this store.
func (s *Store) Invoices() invoices.Repository {
	return &invoiceRepo{store: s}
}

func (r *invoiceRepo) WithTx(tx *gorm.DB) invoices.Repository {
	return &invoiceRepo{store: r.store, txHeld: true}
}

func (r *invoiceRepo) Create(ctx context.Context, invoice *models.Invoice) error {
	unlock := r.store.lockWrite(r.txHeld)
	defer unlock()

	for _, existing := range r.store.invoices {
		if existing.InvoiceNumber == invoice.InvoiceNumber {
			return fmt.Errorf("duplicate key value violates unique constraint %q", "uq_invoices_invoice_number")
		}
	}
	stampInvoice(invoice)
	r.store.invoices[invoice.ID] = *invoice
	return nil
}

func (r *invoiceRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Invoice, error) {
	unlock := r.store.lockRead(r.txHeld)
	defer unlock()

	invoice, ok := r.store.invoices[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &invoice, nil
}

func (r *invoiceRepo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	unlock := r.store.lockRead(r.txHeld)
	defer unlock()

	_, ok := r.store.invoices[id]
	return ok, nil
}

func (r *invoiceRepo) List(ctx context.Context) ([]models.Invoice, error) {
	unlock := r.store.lockRead(r.txHeld)
	defer unlock()

	rows := make([]models.Invoice, 0, len(r.store.invoices))
	for _, invoice := range r.store.invoices {
		rows = append(rows, invoice)
	}
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].PurchaseDate.Equal(rows[j].PurchaseDate) {
			return rows[i].PurchaseDate.After(rows[j].PurchaseDate)
		}
		return rows[i].CreatedAt.After(rows[j].CreatedAt)
	})
	return rows, nil
}

func stampInvoice(invoice *models.Invoice) {
	now := time.Now().UTC()
	if invoice.CreatedAt.IsZero() {
		invoice.CreatedAt = now
	}
	invoice.UpdatedAt = now
}
