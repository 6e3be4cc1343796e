package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/anirban1809/simplifile/internal/domain"
	"github.com/anirban1809/simplifile/internal/repository"
)

// NotificationService ведёт ленту уведомлений пользователя
type NotificationService struct {
	notificationRepo *repository.NotificationRepository
}

func NewNotificationService(notificationRepo *repository.NotificationRepository) *NotificationService {
	return &NotificationService{notificationRepo: notificationRepo}
}

// Notify записывает уведомление. Вызывается слоем мутаций,
// поэтому никогда не возвращает ошибку и не блокирует операцию.
func (s *NotificationService) Notify(ownerID string, ntype domain.NotificationType, message string) {
	s.notificationRepo.Add(domain.Notification{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Type:      ntype,
		Message:   message,
		CreatedAt: time.Now(),
	})
}

// List возвращает уведомления, новые первыми
func (s *NotificationService) List(ctx context.Context, ownerID string) []domain.Notification {
	return s.notificationRepo.ByOwner(ownerID)
}

func (s *NotificationService) UnreadCount(ctx context.Context, ownerID string) int {
	return s.notificationRepo.UnreadCount(ownerID)
}

func (s *NotificationService) MarkRead(ctx context.Context, ownerID string, id uuid.UUID) error {
	return s.notificationRepo.MarkRead(ownerID, id)
}

func (s *NotificationService) MarkAllRead(ctx context.Context, ownerID string) {
	s.notificationRepo.MarkAllRead(ownerID)
}
