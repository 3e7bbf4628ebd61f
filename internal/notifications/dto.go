package notifications

import (
	"time"

	"github.com/altamira-labs/stocktrack-backend/pkg/db/models"
	"github.com/altamira-labs/stocktrack-backend/pkg/enums"
	"github.com/google/uuid"
)

// NotificationDTO is the JSON shape returned by the notifications API.
type NotificationDTO struct {
	ID        uuid.UUID                  `json:"id"`
	Type      enums.NotificationType     `json:"type"`
	Title     string                     `json:"title"`
	Message   string                     `json:"message"`
	Priority  enums.NotificationPriority `json:"priority"`
	RelatedID *uuid.UUID                 `json:"relatedId,omitempty"`
	IsRead    bool                       `json:"isRead"`
	CreatedAt time.Time                  `json:"createdAt"`
}

// Page is a cursor-paged slice of notifications plus the unread badge count.
type Page struct {
	Notifications []NotificationDTO `json:"notifications"`
	NextCursor    *string           `json:"nextCursor,omitempty"`
	UnreadCount   int64             `json:"unreadCount"`
}

func toDTO(notification models.Notification) NotificationDTO {
	return NotificationDTO{
		ID:        notification.ID,
		Type:      notification.Type,
		Title:     notification.Title,
		Message:   notification.Message,
		Priority:  notification.Priority,
		RelatedID: notification.RelatedID,
		IsRead:    notification.IsRead(),
		CreatedAt: notification.CreatedAt,
	}
}

func toDTOs(rows []models.Notification) []NotificationDTO {
	dtos := make([]NotificationDTO, 0, len(rows))
	for _, row := range rows {
		dtos = append(dtos, toDTO(row))
	}
	return dtos
}
