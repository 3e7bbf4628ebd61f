package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/altamira-labs/stocktrack-backend/pkg/enums"
)

// Notification stores alerts emitted by the stock scanner. RelatedID loosely
// references an item, assignment, or invoice depending on Type; dangling ids
// are tolerated.
type Notification struct {
	ID        uuid.UUID                  `gorm:"column:id;type:uuid;primaryKey"`
	Type      enums.NotificationType     `gorm:"column:type;not null;index:idx_notifications_type_related"`
	Title     string                     `gorm:"column:title;not null"`
	Message   string                     `gorm:"column:message;not null"`
	Priority  enums.NotificationPriority `gorm:"column:priority;not null"`
	RelatedID *uuid.UUID                 `gorm:"column:related_id;type:uuid;index:idx_notifications_type_related"`
	ReadAt    *time.Time                 `gorm:"column:read_at"`
	CreatedAt time.Time                  `gorm:"column:created_at;autoCreateTime"`
}

// IsRead reports the one-way read state.
func (n Notification) IsRead() bool {
	return n.ReadAt != nil
}
