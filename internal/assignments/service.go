package assignments

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/altamira-labs/stocktrack-backend/internal/items"
	"github.com/altamira-labs/stocktrack-backend/pkg/db"
	"github.com/altamira-labs/stocktrack-backend/pkg/db/models"
	pkgerrors "github.com/altamira-labs/stocktrack-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RecentLimit caps the dashboard activity feed.
const RecentLimit = 5

// Service exposes assignment operations.
type Service interface {
	Create(ctx context.Context, input CreateAssignmentInput) (*AssignmentDTO, error)
	List(ctx context.Context) ([]AssignmentDTO, error)
	Recent(ctx context.Context) ([]RecentAssignmentDTO, error)
}

// CreateAssignmentInput holds the validated request payload.
type CreateAssignmentInput struct {
	ItemID         uuid.UUID
	Quantity       int
	AssignedTo     string
	Reason         *string
	AssignmentDate time.Time
}

type service struct {
	repo  Repository
	items items.Repository
	tx    db.TxRunner
}

// NewService wires the assignment service dependencies.
func NewService(repo Repository, itemRepo items.Repository, tx db.TxRunner) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "assignments repository required")
	}
	if itemRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "items repository required")
	}
	if tx == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "transaction runner required")
	}
	return &service{repo: repo, items: itemRepo, tx: tx}, nil
}

// Create records an assignment and decrements the item's available stock in
// one transaction. The decrement is guarded at the storage layer, so two
// concurrent requests can never drive stock negative; the loser of the race
// gets an insufficient-stock error.
func (s *service) Create(ctx context.Context, input CreateAssignmentInput) (*AssignmentDTO, error) {
	if input.ItemID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "itemId is required")
	}
	if input.Quantity <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}
	assignedTo := strings.TrimSpace(input.AssignedTo)
	if assignedTo == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "assignedTo is required")
	}

	assignmentDate := input.AssignmentDate
	if assignmentDate.IsZero() {
		assignmentDate = time.Now().UTC()
	}

	assignment := &models.Assignment{
		ID:             uuid.New(),
		ItemID:         input.ItemID,
		Quantity:       input.Quantity,
		AssignedTo:     assignedTo,
		Reason:         input.Reason,
		AssignmentDate: assignmentDate,
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		itemRepo := s.items.WithTx(tx)

		item, err := itemRepo.FindByID(ctx, input.ItemID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "item not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load item")
		}

		ok, err := itemRepo.DecrementAvailable(ctx, input.ItemID, input.Quantity)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decrement stock")
		}
		if !ok {
			return pkgerrors.New(pkgerrors.CodeInsufficientStock, "not enough stock available").
				WithDetails(map[string]any{
					"requested": input.Quantity,
					"available": item.QuantityAvailable,
				})
		}

		return s.repo.WithTx(tx).Create(ctx, assignment)
	})
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return nil, typed
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create assignment")
	}

	dto := toDTO(*assignment)
	return &dto, nil
}

func (s *service) List(ctx context.Context) ([]AssignmentDTO, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list assignments")
	}
	return toDTOs(rows), nil
}

func (s *service) Recent(ctx context.Context) ([]RecentAssignmentDTO, error) {
	rows, err := s.repo.Recent(ctx, RecentLimit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list recent assignments")
	}
	return toRecentDTOs(rows), nil
}
