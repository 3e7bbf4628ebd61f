package memory

import (
	"context"
	"sort"
	"time"

	"github.com/altamira-labs/stocktrack-backend/internal/assignments"
	"github.com/altamira-labs/stocktrack-backend/pkg/db/models"
	"gorm.io/gorm"
)

type assignmentRepo struct {
	store  *Store
	txHeld bool
}

// Assignments returns an assignment repository backed by this store.
func (s *Store) Assignments() assignments.Repository {
	return &assignmentRepo{store: s}
}

func (r *assignmentRepo) WithTx(tx *gorm.DB) assignments.Repository {
	return &assignmentRepo{store: r.store, txHeld: true}
}

func (r *assignmentRepo) Create(ctx context.Context, assignment *models.Assignment) error {
	unlock := r.store.lockWrite(r.txHeld)
	defer unlock()

	if assignment.CreatedAt.IsZero() {
		assignment.CreatedAt = time.Now().UTC()
	}
	r.store.assignments[assignment.ID] = *assignment
	return nil
}

func (r *assignmentRepo) List(ctx context.Context) ([]models.Assignment, error) {
	unlock := r.store.lockRead(r.txHeld)
	defer unlock()

	rows := make([]models.Assignment, 0, len(r.store.assignments))
	for _, assignment := range r.store.assignments {
		rows = append(rows, assignment)
	}
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].AssignmentDate.Equal(rows[j].AssignmentDate) {
			return rows[i].AssignmentDate.After(rows[j].AssignmentDate)
		}
		return rows[i].CreatedAt.After(rows[j].CreatedAt)
	})
	return rows, nil
}

func (r *assignmentRepo) Recent(ctx context.Context, limit int) ([]assignments.AssignmentWithItem, error) {
	unlock := r.store.lockRead(r.txHeld)
	defer unlock()

	rows := r.joined(func(models.Assignment) bool { return true })
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].CreatedAt.After(rows[j].CreatedAt)
	})
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

func (r *assignmentRepo) ListOlderThan(ctx context.Context, cutoff time.Time) ([]assignments.AssignmentWithItem, error) {
	unlock := r.store.lockRead(r.txHeld)
	defer unlock()

	rows := r.joined(func(assignment models.Assignment) bool {
		return !assignment.AssignmentDate.After(cutoff)
	})
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].AssignmentDate.Before(rows[j].AssignmentDate)
	})
	return rows, nil
}

func (r *assignmentRepo) TotalAssigned(ctx context.Context) (int64, error) {
	unlock := r.store.lockRead(r.txHeld)
	defer unlock()

	var total int64
	for _, assignment := range r.store.assignments {
		total += int64(assignment.Quantity)
	}
	return total, nil
}

// joined assumes the caller holds the store lock. Assignments whose item has
// vanished are skipped, mirroring the SQL inner join.
func (r *assignmentRepo) joined(keep func(models.Assignment) bool) []assignments.AssignmentWithItem {
	rows := make([]assignments.AssignmentWithItem, 0, len(r.store.assignments))
	for _, assignment := range r.store.assignments {
		if !keep(assignment) {
			continue
		}
		item, ok := r.store.items[assignment.ItemID]
		if !ok {
			continue
		}
		rows = append(rows, assignments.AssignmentWithItem{
			ID:             assignment.ID,
			ItemID:         assignment.ItemID,
			Quantity:       assignment.Quantity,
			AssignedTo:     assignment.AssignedTo,
			Reason:         assignment.Reason,
			AssignmentDate: assignment.AssignmentDate,
			CreatedAt:      assignment.CreatedAt,
			ItemName:       item.Name,
			ItemCategory:   item.Category,
			UnitPrice:      item.UnitPrice,
		})
	}
	return rows
}
