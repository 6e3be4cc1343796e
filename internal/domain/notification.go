package domain

import (
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotificationUpload   NotificationType = "upload"
	NotificationShare    NotificationType = "share"
	NotificationAccess   NotificationType = "access"
	NotificationDownload NotificationType = "download"
	NotificationFavorite NotificationType = "favorite"
	NotificationReminder NotificationType = "reminder"
)

// Notification — типизированная запись уведомления вместо
// слабо-структурированного объекта
type Notification struct {
	ID        uuid.UUID        `json:"id"`
	OwnerID   string           `json:"owner_id"`
	Type      NotificationType `json:"type"`
	Message   string           `json:"message"`
	Read      bool             `json:"read"`
	CreatedAt time.Time        `json:"created_at"`
}
