package domain

import (
	"time"

	"github.com/google/uuid"
)

// EntityVersion — запись истории версий файла
type EntityVersion struct {
	ID         uuid.UUID `json:"id"`
	EntityUUID uuid.UUID `json:"entity_uuid"`
	Version    int       `json:"version"`
	SizeBytes  int64     `json:"size_bytes"`
	ContentRef string    `json:"content_ref,omitempty"`
	UserID     string    `json:"user_id"`
	UserEmail  string    `json:"user_email"`
	CreatedAt  time.Time `json:"created_at"`
}
