package repository

import (
	"sync"

	"github.com/google/uuid"

	"github.com/anirban1809/simplifile/internal/domain"
)

// NotificationRepository хранит уведомления по владельцам,
// новые записи добавляются в начало списка
type NotificationRepository struct {
	mu      sync.RWMutex
	byOwner map[string][]domain.Notification
}

func NewNotificationRepository() *NotificationRepository {
	return &NotificationRepository{
		byOwner: make(map[string][]domain.Notification),
	}
}

func (r *NotificationRepository) Add(n domain.Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byOwner[n.OwnerID] = append([]domain.Notification{n}, r.byOwner[n.OwnerID]...)
}

func (r *NotificationRepository) ByOwner(ownerID string) []domain.Notification {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]domain.Notification(nil), r.byOwner[ownerID]...)
}

func (r *NotificationRepository) MarkRead(ownerID string, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	list := r.byOwner[ownerID]
	for i := range list {
		if list[i].ID == id {
			list[i].Read = true
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *NotificationRepository) MarkAllRead(ownerID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	list := r.byOwner[ownerID]
	for i := range list {
		list[i].Read = true
	}
}

func (r *NotificationRepository) UnreadCount(ownerID string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, n := range r.byOwner[ownerID] {
		if !n.Read {
			count++
		}
	}
	return count
}
