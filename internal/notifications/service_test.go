package notifications

import (
	"context"
	"testing"
	"time"

	"github.com/altamira-labs/stocktrack-backend/pkg/db/models"
	"github.com/altamira-labs/stocktrack-backend/pkg/enums"
	pkgerrors "github.com/altamira-labs/stocktrack-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(&models.Notification{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return conn
}

func newNotificationService(t *testing.T, conn *gorm.DB) Service {
	t.Helper()
	svc, err := NewService(NewRepository(conn))
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func seedNotification(t *testing.T, conn *gorm.DB, createdAt time.Time, read bool) *models.Notification {
	t.Helper()
	related := uuid.New()
	notification := &models.Notification{
		ID:        uuid.New(),
		Type:      enums.NotificationTypeLowStock,
		Title:     "Low stock",
		Message:   "Laptop is running low",
		Priority:  enums.NotificationPriorityHigh,
		RelatedID: &related,
		CreatedAt: createdAt,
	}
	if read {
		readAt := createdAt.Add(time.Minute)
		notification.ReadAt = &readAt
	}
	if err := conn.Create(notification).Error; err != nil {
		t.Fatalf("seed notification: %v", err)
	}
	return notification
}

func TestMarkReadIsMonotonic(t *testing.T) {
	conn := newTestDB(t)
	svc := newNotificationService(t, conn)
	row := seedNotification(t, conn, time.Now().UTC(), false)

	if err := svc.MarkRead(context.Background(), row.ID); err != nil {
		t.Fatalf("MarkRead: %v", err)
	}

	var reloaded models.Notification
	if err := conn.First(&reloaded, "id = ?", row.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.ReadAt == nil {
		t.Fatal("expected read_at stamped")
	}
	firstReadAt := *reloaded.ReadAt

	// A second mark is a silent no-op and must not move the timestamp.
	if err := svc.MarkRead(context.Background(), row.ID); err != nil {
		t.Fatalf("second MarkRead: %v", err)
	}
	if err := conn.First(&reloaded, "id = ?", row.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !reloaded.ReadAt.Equal(firstReadAt) {
		t.Fatalf("read_at moved from %v to %v", firstReadAt, *reloaded.ReadAt)
	}
}

func TestMarkReadUnknownID(t *testing.T) {
	conn := newTestDB(t)
	svc := newNotificationService(t, conn)

	err := svc.MarkRead(context.Background(), uuid.New())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not-found, got %v", err)
	}
}

func TestMarkAllRead(t *testing.T) {
	conn := newTestDB(t)
	svc := newNotificationService(t, conn)
	now := time.Now().UTC()
	seedNotification(t, conn, now, false)
	seedNotification(t, conn, now, false)
	seedNotification(t, conn, now, true)

	updated, err := svc.MarkAllRead(context.Background())
	if err != nil {
		t.Fatalf("MarkAllRead: %v", err)
	}
	if updated != 2 {
		t.Fatalf("expected 2 updated, got %d", updated)
	}

	// Re-running against a fully read table is a no-op.
	updated, err = svc.MarkAllRead(context.Background())
	if err != nil {
		t.Fatalf("MarkAllRead: %v", err)
	}
	if updated != 0 {
		t.Fatalf("expected 0 updated on second pass, got %d", updated)
	}
}

func TestListPaginatesAndCountsUnread(t *testing.T) {
	conn := newTestDB(t)
	svc := newNotificationService(t, conn)
	base := time.Now().UTC().Truncate(time.Second)
	for i := 0; i < 3; i++ {
		seedNotification(t, conn, base.Add(time.Duration(i)*time.Minute), i == 0)
	}

	page, err := svc.List(context.Background(), ListParams{Limit: 2})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(page.Notifications) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(page.Notifications))
	}
	if page.NextCursor == nil {
		t.Fatal("expected next cursor on first page")
	}
	if page.UnreadCount != 2 {
		t.Fatalf("expected 2 unread, got %d", page.UnreadCount)
	}
	// Newest first.
	if !page.Notifications[0].CreatedAt.After(page.Notifications[1].CreatedAt) {
		t.Fatal("expected newest-first ordering")
	}

	second, err := svc.List(context.Background(), ListParams{Limit: 2, Cursor: *page.NextCursor})
	if err != nil {
		t.Fatalf("List second page: %v", err)
	}
	if len(second.Notifications) != 1 {
		t.Fatalf("expected 1 row on second page, got %d", len(second.Notifications))
	}
	if second.NextCursor != nil {
		t.Fatal("expected no cursor on final page")
	}
}

func TestListUnreadOnly(t *testing.T) {
	conn := newTestDB(t)
	svc := newNotificationService(t, conn)
	now := time.Now().UTC()
	seedNotification(t, conn, now, true)
	unreadRow := seedNotification(t, conn, now.Add(time.Minute), false)

	page, err := svc.List(context.Background(), ListParams{UnreadOnly: true})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(page.Notifications) != 1 || page.Notifications[0].ID != unreadRow.ID {
		t.Fatalf("expected only the unread row, got %+v", page.Notifications)
	}
	if page.Notifications[0].IsRead {
		t.Fatal("unread row flagged as read")
	}
}

func TestListRejectsGarbageCursor(t *testing.T) {
	conn := newTestDB(t)
	svc := newNotificationService(t, conn)

	_, err := svc.List(context.Background(), ListParams{Cursor: "not-base64!!"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestPublishHonorsDedupWindow(t *testing.T) {
	conn := newTestDB(t)
	svc := newNotificationService(t, conn)
	related := uuid.New()

	input := PublishInput{
		Type:        enums.NotificationTypeLowStock,
		Title:       "Low stock",
		Message:     "Laptop has 2 left",
		Priority:    enums.NotificationPriorityUrgent,
		RelatedID:   related,
		DedupWindow: 24 * time.Hour,
	}

	created, err := svc.Publish(context.Background(), input)
	if err != nil || !created {
		t.Fatalf("expected first publish to create, got created=%v err=%v", created, err)
	}

	created, err = svc.Publish(context.Background(), input)
	if err != nil {
		t.Fatalf("second Publish: %v", err)
	}
	if created {
		t.Fatal("expected dedup window to suppress the second publish")
	}

	// A different related id is a separate dedup key.
	other := input
	other.RelatedID = uuid.New()
	created, err = svc.Publish(context.Background(), other)
	if err != nil || !created {
		t.Fatalf("expected publish for other related id, got created=%v err=%v", created, err)
	}

	var count int64
	if err := conn.Model(&models.Notification{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 notifications, got %d", count)
	}
}

func TestPublishValidation(t *testing.T) {
	conn := newTestDB(t)
	svc := newNotificationService(t, conn)

	cases := []PublishInput{
		{Type: "bogus", Title: "t", Message: "m", Priority: enums.NotificationPriorityLow, RelatedID: uuid.New()},
		{Type: enums.NotificationTypeLowStock, Title: "t", Message: "m", Priority: "whatever", RelatedID: uuid.New()},
		{Type: enums.NotificationTypeLowStock, Title: " ", Message: "m", Priority: enums.NotificationPriorityLow, RelatedID: uuid.New()},
		{Type: enums.NotificationTypeLowStock, Title: "t", Message: "m", Priority: enums.NotificationPriorityLow},
	}
	for _, input := range cases {
		_, err := svc.Publish(context.Background(), input)
		typed := pkgerrors.As(err)
		if typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("expected validation error for %+v, got %v", input, err)
		}
	}
}
