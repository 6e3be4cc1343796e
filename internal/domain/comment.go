package domain

import (
	"time"

	"github.com/google/uuid"
)

// Comment — комментарий к сущности. Replies заполняется при чтении,
// хранится плоский список с ParentID.
type Comment struct {
	ID         uuid.UUID  `json:"id"`
	EntityUUID uuid.UUID  `json:"entity_uuid"`
	ParentID   *uuid.UUID `json:"parent_id,omitempty"`
	UserID     string     `json:"user_id"`
	UserEmail  string     `json:"user_email"`
	Content    string     `json:"content"`
	CreatedAt  time.Time  `json:"created_at"`
	Replies    []Comment  `json:"replies,omitempty"`
}
