package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/anirban1809/simplifile/internal/domain"
	"github.com/anirban1809/simplifile/internal/repository"
)

// ShareService выдаёт доступ к сущностям по email. Получатели на сущности
// дедуплицируются: повторный шаринг тому же адресу — no-op для списка,
// но фиксируется в журнале грантов.
type ShareService struct {
	entityRepo        *repository.EntityRepository
	shareRepo         *repository.ShareRepository
	permissionService *PermissionService
	notifications     *NotificationService
}

func NewShareService(
	entityRepo *repository.EntityRepository,
	shareRepo *repository.ShareRepository,
	permissionService *PermissionService,
	notifications *NotificationService,
) *ShareService {
	return &ShareService{
		entityRepo:        entityRepo,
		shareRepo:         shareRepo,
		permissionService: permissionService,
		notifications:     notifications,
	}
}

// Share выдаёт доступ получателю для каждой из перечисленных сущностей.
// Уже удалённые идентификаторы пропускаются, чтобы устаревшее выделение
// деградировало мягко. Возвращает число затронутых сущностей.
func (s *ShareService) Share(ctx context.Context, ids []uuid.UUID, recipient, userID string) (int, error) {
	recipient = strings.ToLower(strings.TrimSpace(recipient))
	if recipient == "" || !strings.Contains(recipient, "@") {
		return 0, fmt.Errorf("invalid recipient email %q: %w", recipient, domain.ErrInvalidName)
	}

	shared := 0
	for _, id := range ids {
		entity, err := s.entityRepo.Get(id)
		if err != nil {
			continue // устаревший идентификатор
		}
		if !s.permissionService.CanModify(entity, userID) {
			return shared, ErrAccessDenied
		}

		err = s.entityRepo.Update(id, func(e *domain.Entity) {
			e.IsShared = true
			if !containsFold(e.SharedWith, recipient) {
				e.SharedWith = append(e.SharedWith, recipient)
			}
			e.UpdatedAt = time.Now()
		})
		if err != nil {
			continue
		}

		s.shareRepo.Add(domain.ShareGrant{
			ID:         uuid.New(),
			EntityUUID: id,
			OwnerID:    userID,
			Recipient:  recipient,
			CreatedAt:  time.Now(),
		})
		s.notifications.Notify(userID, domain.NotificationShare,
			fmt.Sprintf("Shared %q with %s", entity.Name, recipient))
		shared++
	}

	return shared, nil
}

// SharedWith возвращает список получателей сущности
func (s *ShareService) SharedWith(ctx context.Context, id uuid.UUID) ([]string, error) {
	entity, err := s.entityRepo.Get(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get entity: %w", err)
	}
	return entity.SharedWith, nil
}

// SharedWithMe возвращает сущности, расшаренные на указанный email
func (s *ShareService) SharedWithMe(ctx context.Context, email string) []domain.SharedResource {
	email = strings.ToLower(strings.TrimSpace(email))

	var result []domain.SharedResource
	seen := make(map[uuid.UUID]bool)
	for _, grant := range s.shareRepo.ByRecipient(email) {
		if seen[grant.EntityUUID] {
			continue
		}
		seen[grant.EntityUUID] = true

		entity, err := s.entityRepo.Get(grant.EntityUUID)
		if err != nil {
			continue // сущность удалена после шаринга
		}
		g := grant
		result = append(result, domain.SharedResource{Grant: &g, Entity: entity})
	}
	return result
}

func containsFold(list []string, value string) bool {
	for _, item := range list {
		if strings.EqualFold(item, value) {
			return true
		}
	}
	return false
}
