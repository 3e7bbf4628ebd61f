package memory

import (
	"context"
	"sort"
	"time"

	"github.com/altamira-labs/stocktrack-backend/internal/notifications"
	"github.com/altamira-labs/stocktrack-backend/pkg/db/models"
	"github.com/altamira-labs/stocktrack-backend/pkg/enums"
	"github.com/altamira-labs/stocktrack-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type notificationRepo struct {
	store  *Store
	txHeld bool
}

// Notifications returns a notification repository backed by this store.
func (s *Store) Notifications() notifications.Repository {
	return &notificationRepo{store: s}
}

func (r *notificationRepo) WithTx(tx *gorm.DB) notifications.Repository {
	return &notificationRepo{store: r.store, txHeld: true}
}

func (r *notificationRepo) Create(ctx context.Context, notification *models.Notification) error {
	unlock := r.store.lockWrite(r.txHeld)
	defer unlock()

	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = time.Now().UTC()
	}
	r.store.notifications[notification.ID] = *notification
	return nil
}

func (r *notificationRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Notification, error) {
	unlock := r.store.lockRead(r.txHeld)
	defer unlock()

	notification, ok := r.store.notifications[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &notification, nil
}

func (r *notificationRepo) List(ctx context.Context, filter notifications.ListFilter) ([]models.Notification, error) {
	unlock := r.store.lockRead(r.txHeld)
	defer unlock()

	rows := make([]models.Notification, 0, len(r.store.notifications))
	for _, notification := range r.store.notifications {
		if filter.UnreadOnly && notification.ReadAt != nil {
			continue
		}
		if filter.Cursor != nil && !beforeCursor(notification, filter.Cursor) {
			continue
		}
		rows = append(rows, notification)
	}
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].CreatedAt.Equal(rows[j].CreatedAt) {
			return rows[i].CreatedAt.After(rows[j].CreatedAt)
		}
		return rows[i].ID.String() > rows[j].ID.String()
	})

	limit := pagination.LimitWithBuffer(filter.Limit)
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

func (r *notificationRepo) MarkRead(ctx context.Context, id uuid.UUID, at time.Time) (bool, error) {
	unlock := r.store.lockWrite(r.txHeld)
	defer unlock()

	notification, ok := r.store.notifications[id]
	if !ok {
		return false, nil
	}
	if notification.ReadAt == nil {
		readAt := at
		notification.ReadAt = &readAt
		r.store.notifications[id] = notification
	}
	return true, nil
}

func (r *notificationRepo) MarkAllRead(ctx context.Context, at time.Time) (int64, error) {
	unlock := r.store.lockWrite(r.txHeld)
	defer unlock()

	var updated int64
	for id, notification := range r.store.notifications {
		if notification.ReadAt != nil {
			continue
		}
		readAt := at
		notification.ReadAt = &readAt
		r.store.notifications[id] = notification
		updated++
	}
	return updated, nil
}

func (r *notificationRepo) CountUnread(ctx context.Context) (int64, error) {
	unlock := r.store.lockRead(r.txHeld)
	defer unlock()

	var count int64
	for _, notification := range r.store.notifications {
		if notification.ReadAt == nil {
			count++
		}
	}
	return count, nil
}

func (r *notificationRepo) ExistsRecent(ctx context.Context, typ enums.NotificationType, relatedID uuid.UUID, since time.Time) (bool, error) {
	unlock := r.store.lockRead(r.txHeld)
	defer unlock()

	for _, notification := range r.store.notifications {
		if notification.Type != typ {
			continue
		}
		if notification.RelatedID == nil || *notification.RelatedID != relatedID {
			continue
		}
		if !notification.CreatedAt.Before(since) {
			return true, nil
		}
	}
	return false, nil
}

func beforeCursor(notification models.Notification, cursor *pagination.Cursor) bool {
	if notification.CreatedAt.Before(cursor.CreatedAt) {
		return true
	}
	if notification.CreatedAt.Equal(cursor.CreatedAt) {
		return notification.ID.String() < cursor.ID.String()
	}
	return false
}
