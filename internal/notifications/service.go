package notifications

import (
	"context"
	"strings"
	"time"

	"github.com/altamira-labs/stocktrack-backend/pkg/db/models"
	"github.com/altamira-labs/stocktrack-backend/pkg/enums"
	pkgerrors "github.com/altamira-labs/stocktrack-backend/pkg/errors"
	"github.com/altamira-labs/stocktrack-backend/pkg/pagination"
	"github.com/google/uuid"
)

// Service exposes notification operations for the API and the scan jobs.
type Service interface {
	List(ctx context.Context, params ListParams) (*Page, error)
	MarkRead(ctx context.Context, id uuid.UUID) error
	MarkAllRead(ctx context.Context) (int64, error)
	// Publish inserts a notification unless an equivalent one (same type and
	// related id) was already created inside the dedup window.
	Publish(ctx context.Context, input PublishInput) (bool, error)
}

// ListParams carries the query-string filters of the list endpoint.
type ListParams struct {
	UnreadOnly bool
	Cursor     string
	Limit      int
}

// PublishInput describes a notification a scan job wants to emit.
type PublishInput struct {
	Type        enums.NotificationType
	Title       string
	Message     string
	Priority    enums.NotificationPriority
	RelatedID   uuid.UUID
	DedupWindow time.Duration
}

type service struct {
	repo Repository
	now  func() time.Time
}

// NewService wires the notification service dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "notifications repository required")
	}
	return &service{repo: repo, now: time.Now}, nil
}

func (s *service) List(ctx context.Context, params ListParams) (*Page, error) {
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}

	limit := pagination.NormalizeLimit(params.Limit)
	rows, err := s.repo.List(ctx, ListFilter{
		UnreadOnly: params.UnreadOnly,
		Cursor:     cursor,
		Limit:      limit,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list notifications")
	}

	var nextCursor *string
	if len(rows) > limit {
		rows = rows[:limit]
		last := rows[len(rows)-1]
		encoded := pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
		nextCursor = &encoded
	}

	unread, err := s.repo.CountUnread(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count unread notifications")
	}

	return &Page{
		Notifications: toDTOs(rows),
		NextCursor:    nextCursor,
		UnreadCount:   unread,
	}, nil
}

func (s *service) MarkRead(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "notification id required")
	}
	found, err := s.repo.MarkRead(ctx, id, s.now().UTC())
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark notification read")
	}
	if !found {
		return pkgerrors.New(pkgerrors.CodeNotFound, "notification not found")
	}
	return nil
}

func (s *service) MarkAllRead(ctx context.Context) (int64, error) {
	updated, err := s.repo.MarkAllRead(ctx, s.now().UTC())
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark all notifications read")
	}
	return updated, nil
}

func (s *service) Publish(ctx context.Context, input PublishInput) (bool, error) {
	if !input.Type.IsValid() {
		return false, pkgerrors.New(pkgerrors.CodeValidation, "invalid notification type")
	}
	if !input.Priority.IsValid() {
		return false, pkgerrors.New(pkgerrors.CodeValidation, "invalid notification priority")
	}
	if strings.TrimSpace(input.Title) == "" || strings.TrimSpace(input.Message) == "" {
		return false, pkgerrors.New(pkgerrors.CodeValidation, "title and message are required")
	}
	if input.RelatedID == uuid.Nil {
		return false, pkgerrors.New(pkgerrors.CodeValidation, "related id required")
	}

	if input.DedupWindow > 0 {
		since := s.now().UTC().Add(-input.DedupWindow)
		exists, err := s.repo.ExistsRecent(ctx, input.Type, input.RelatedID, since)
		if err != nil {
			return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check notification dedup window")
		}
		if exists {
			return false, nil
		}
	}

	relatedID := input.RelatedID
	notification := &models.Notification{
		ID:        uuid.New(),
		Type:      input.Type,
		Title:     strings.TrimSpace(input.Title),
		Message:   strings.TrimSpace(input.Message),
		Priority:  input.Priority,
		RelatedID: &relatedID,
	}
	if err := s.repo.Create(ctx, notification); err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create notification")
	}
	return true, nil
}
