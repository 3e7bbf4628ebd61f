package items

import (
	"context"
	"testing"

	"github.com/altamira-labs/stocktrack-backend/pkg/db/models"
	pkgerrors "github.com/altamira-labs/stocktrack-backend/pkg/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type fakeItemRepo struct {
	Repository
	created []*models.Item
	batch   [][]*models.Item
}

func (f *fakeItemRepo) Create(ctx context.Context, item *models.Item) error {
	f.created = append(f.created, item)
	return nil
}

func (f *fakeItemRepo) CreateBatch(ctx context.Context, items []*models.Item) error {
	f.batch = append(f.batch, items)
	return nil
}

type fakeInvoiceChecker struct {
	known map[uuid.UUID]bool
}

func (f *fakeInvoiceChecker) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	return f.known[id], nil
}

func newItemService(t *testing.T, repo Repository, invoices invoiceChecker) Service {
	t.Helper()
	svc, err := NewService(repo, invoices)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestCreateForcesAvailableToPurchased(t *testing.T) {
	invoiceID := uuid.New()
	repo := &fakeItemRepo{}
	svc := newItemService(t, repo, &fakeInvoiceChecker{known: map[uuid.UUID]bool{invoiceID: true}})

	dto, err := svc.Create(context.Background(), CreateItemInput{
		InvoiceID:         invoiceID,
		Name:              "Monitor",
		Category:          "electronics",
		QuantityPurchased: 12,
		UnitPrice:         decimal.NewFromFloat(249.99),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if dto.QuantityAvailable != 12 {
		t.Fatalf("expected available forced to purchased, got %d", dto.QuantityAvailable)
	}
	if len(repo.created) != 1 {
		t.Fatalf("expected one persisted item, got %d", len(repo.created))
	}
	if repo.created[0].QuantityAvailable != repo.created[0].QuantityPurchased {
		t.Fatal("persisted item must start with available == purchased")
	}
	if repo.created[0].ID == uuid.Nil {
		t.Fatal("expected item id assigned before persisting")
	}
}

func TestCreateRejectsMissingInvoice(t *testing.T) {
	repo := &fakeItemRepo{}
	svc := newItemService(t, repo, &fakeInvoiceChecker{known: map[uuid.UUID]bool{}})

	_, err := svc.Create(context.Background(), CreateItemInput{
		InvoiceID:         uuid.New(),
		Name:              "Desk",
		Category:          "furniture",
		QuantityPurchased: 2,
		UnitPrice:         decimal.NewFromInt(300),
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not-found error, got %v", err)
	}
	if len(repo.created) != 0 {
		t.Fatal("expected no item persisted")
	}
}

func TestCreateValidation(t *testing.T) {
	invoiceID := uuid.New()
	svc := newItemService(t, &fakeItemRepo{}, &fakeInvoiceChecker{known: map[uuid.UUID]bool{invoiceID: true}})

	cases := []struct {
		name  string
		input CreateItemInput
	}{
		{"blankName", CreateItemInput{InvoiceID: invoiceID, Name: "  ", Category: "c", QuantityPurchased: 1}},
		{"blankCategory", CreateItemInput{InvoiceID: invoiceID, Name: "n", Category: "", QuantityPurchased: 1}},
		{"negativeQuantity", CreateItemInput{InvoiceID: invoiceID, Name: "n", Category: "c", QuantityPurchased: -1}},
		{"negativePrice", CreateItemInput{InvoiceID: invoiceID, Name: "n", Category: "c", QuantityPurchased: 1, UnitPrice: decimal.NewFromInt(-5)}},
		{"nilInvoice", CreateItemInput{Name: "n", Category: "c", QuantityPurchased: 1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tc.input)
			typed := pkgerrors.As(err)
			if typed == nil || typed.Code() != pkgerrors.CodeValidation {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestCreateBatchRejectsEmptyAndPersistsAllOrNothing(t *testing.T) {
	invoiceID := uuid.New()
	repo := &fakeItemRepo{}
	svc := newItemService(t, repo, &fakeInvoiceChecker{known: map[uuid.UUID]bool{invoiceID: true}})

	if _, err := svc.CreateBatch(context.Background(), nil); err == nil {
		t.Fatal("expected error for empty batch")
	}

	_, err := svc.CreateBatch(context.Background(), []CreateItemInput{
		{InvoiceID: invoiceID, Name: "a", Category: "c", QuantityPurchased: 1},
		{InvoiceID: invoiceID, Name: "", Category: "c", QuantityPurchased: 1},
	})
	if err == nil {
		t.Fatal("expected validation error from second input")
	}
	if len(repo.batch) != 0 {
		t.Fatal("expected nothing persisted when any input is invalid")
	}

	dtos, err := svc.CreateBatch(context.Background(), []CreateItemInput{
		{InvoiceID: invoiceID, Name: "a", Category: "c", QuantityPurchased: 1},
		{InvoiceID: invoiceID, Name: "b", Category: "c", QuantityPurchased: 2},
	})
	if err != nil {
		t.Fatalf("CreateBatch: %v", err)
	}
	if len(dtos) != 2 || len(repo.batch) != 1 {
		t.Fatalf("expected one batch of two items, got %d dtos, %d batches", len(dtos), len(repo.batch))
	}
}
