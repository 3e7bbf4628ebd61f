package memory

import (
	"context"
	"sync"

	"github.com/altamira-labs/stocktrack-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Store keeps the whole dataset in process memory behind one RWMutex. It backs
// local development and tests where Postgres is overkill; the repositories it
// hands out satisfy the same interfaces as the GORM ones.
type Store struct {
	mu            sync.RWMutex
	invoices      map[uuid.UUID]models.Invoice
	items         map[uuid.UUID]models.Item
	assignments   map[uuid.UUID]models.Assignment
	notifications map[uuid.UUID]models.Notification
}

// NewStore builds an empty in-memory store.
func NewStore() *Store {
	return &Store{
		invoices:      map[uuid.UUID]models.Invoice{},
		items:         map[uuid.UUID]models.Item{},
		assignments:   map[uuid.UUID]models.Assignment{},
		notifications: map[uuid.UUID]models.Notification{},
	}
}

// WithTx satisfies db.TxRunner. The store has no real transactions; it holds
// the write lock for the whole unit of work instead, which gives the same
// all-or-nothing observability because repositories called with a nil tx
// reuse the already-locked store.
func (s *Store) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.snapshotLocked()
	if err := fn(nil); err != nil {
		s.restoreLocked(snapshot)
		return err
	}
	return nil
}

type storeSnapshot struct {
	invoices      map[uuid.UUID]models.Invoice
	items         map[uuid.UUID]models.Item
	assignments   map[uuid.UUID]models.Assignment
	notifications map[uuid.UUID]models.Notification
}

func (s *Store) snapshotLocked() storeSnapshot {
	return storeSnapshot{
		invoices:      cloneMap(s.invoices),
		items:         cloneMap(s.items),
		assignments:   cloneMap(s.assignments),
		notifications: cloneMap(s.notifications),
	}
}

func (s *Store) restoreLocked(snapshot storeSnapshot) {
	s.invoices = snapshot.invoices
	s.items = snapshot.items
	s.assignments = snapshot.assignments
	s.notifications = snapshot.notifications
}

func cloneMap[V any](src map[uuid.UUID]V) map[uuid.UUID]V {
	dst := make(map[uuid.UUID]V, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

// The repositories below re-enter the store mutex except inside WithTx, where
// the lock is already held. txHeld tracks which mode a repository handle is
// in; handles returned by WithTx(nil) assume the caller holds the lock.

func (s *Store) lockRead(txHeld bool) func() {
	if txHeld {
		return func() {}
	}
	s.mu.RLock()
	return s.mu.RUnlock
}

func (s *Store) lockWrite(txHeld bool) func() {
	if txHeld {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}
