package items

import (
	"context"
	"errors"
	"strings"

	"github.com/altamira-labs/stocktrack-backend/pkg/db/models"
	pkgerrors "github.com/altamira-labs/stocktrack-backend/pkg/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Service exposes item catalog operations.
type Service interface {
	Create(ctx context.Context, input CreateItemInput) (*ItemDTO, error)
	CreateBatch(ctx context.Context, inputs []CreateItemInput) ([]ItemDTO, error)
	List(ctx context.Context) ([]ItemDTO, error)
	ListByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]ItemDTO, error)
	ListLowStock(ctx context.Context) ([]ItemDTO, error)
}

// CreateItemInput holds the validated payload to create an item. Any
// client-supplied available quantity is ignored: stock always starts at the
// purchased quantity.
type CreateItemInput struct {
	InvoiceID         uuid.UUID
	Name              string
	Category          string
	QuantityPurchased int
	UnitPrice         decimal.Decimal
}

type invoiceChecker interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

type service struct {
	repo     Repository
	invoices invoiceChecker
}

// NewService wires the item service dependencies.
func NewService(repo Repository, invoices invoiceChecker) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "items repository required")
	}
	if invoices == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "invoice checker required")
	}
	return &service{repo: repo, invoices: invoices}, nil
}

func (s *service) Create(ctx context.Context, input CreateItemInput) (*ItemDTO, error) {
	item, err := s.buildItem(ctx, input)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create item")
	}
	dto := toDTO(*item)
	return &dto, nil
}

func (s *service) CreateBatch(ctx context.Context, inputs []CreateItemInput) ([]ItemDTO, error) {
	if len(inputs) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one item is required")
	}

	built := make([]*models.Item, 0, len(inputs))
	for _, input := range inputs {
		item, err := s.buildItem(ctx, input)
		if err != nil {
			return nil, err
		}
		built = append(built, item)
	}

	if err := s.repo.CreateBatch(ctx, built); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create items")
	}

	dtos := make([]ItemDTO, 0, len(built))
	for _, item := range built {
		dtos = append(dtos, toDTO(*item))
	}
	return dtos, nil
}

func (s *service) List(ctx context.Context) ([]ItemDTO, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list items")
	}
	return toDTOs(rows), nil
}

func (s *service) ListByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]ItemDTO, error) {
	if invoiceID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invoice id required")
	}
	rows, err := s.repo.ListByInvoice(ctx, invoiceID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list items by invoice")
	}
	return toDTOs(rows), nil
}

func (s *service) ListLowStock(ctx context.Context) ([]ItemDTO, error) {
	rows, err := s.repo.ListLowStock(ctx, LowStockThreshold)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list low stock items")
	}
	return toDTOs(rows), nil
}

func (s *service) buildItem(ctx context.Context, input CreateItemInput) (*models.Item, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item name is required")
	}
	category := strings.TrimSpace(input.Category)
	if category == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item category is required")
	}
	if input.QuantityPurchased < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantityPurchased cannot be negative")
	}
	if input.UnitPrice.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unitPrice cannot be negative")
	}
	if input.InvoiceID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invoiceId is required")
	}

	exists, err := s.invoices.Exists(ctx, input.InvoiceID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check invoice")
	}
	if !exists {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "invoice not found")
	}

	return &models.Item{
		ID:                uuid.New(),
		InvoiceID:         input.InvoiceID,
		Name:              name,
		Category:          category,
		QuantityPurchased: input.QuantityPurchased,
		QuantityAvailable: input.QuantityPurchased,
		UnitPrice:         input.UnitPrice,
	}, nil
}
