package service

import (
	"context"
	"errors"
	"strings"

	"github.com/anirban1809/simplifile/internal/domain"
)

var ErrAccessDenied = errors.New("access denied")

// PermissionService проверяет права доступа к сущностям.
// Модель простая: владелец может всё, получатель шаринга — просматривать.
// Доступ к расшаренной папке распространяется на её содержимое.
type PermissionService struct {
	hierarchy *HierarchyService
}

func NewPermissionService(hierarchy *HierarchyService) *PermissionService {
	return &PermissionService{hierarchy: hierarchy}
}

func (s *PermissionService) CanModify(entity *domain.Entity, userID string) bool {
	return entity.OwnerID == userID
}

func (s *PermissionService) CanView(ctx context.Context, entity *domain.Entity, userID, userEmail string) bool {
	if entity.OwnerID == userID {
		return true
	}
	if sharedWith(entity, userEmail) {
		return true
	}

	// проверяем расшаренные родительские папки
	crumbs, err := s.hierarchy.Breadcrumbs(ctx, entity.UUID)
	if err != nil {
		return false
	}
	for _, crumb := range crumbs {
		ancestor, err := s.hierarchy.entityRepo.Get(crumb.UUID)
		if err != nil {
			continue
		}
		if sharedWith(ancestor, userEmail) {
			return true
		}
	}
	return false
}

func sharedWith(entity *domain.Entity, email string) bool {
	for _, recipient := range entity.SharedWith {
		if strings.EqualFold(recipient, email) {
			return true
		}
	}
	return false
}
