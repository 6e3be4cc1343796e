package service

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/anirban1809/simplifile/internal/domain"
	"github.com/anirban1809/simplifile/internal/repository"
)

// SelectionService отслеживает множество выделенных сущностей на пользователя.
// Выделение привязано к просматриваемой папке и сбрасывается при навигации
// (см. ViewService.Navigate). Пакетные действия всегда работают через
// ResolveBatch, а не по сырым идентификаторам: устаревшее выделение после
// удаления деградирует до пустого результата, а не до ошибки.
type SelectionService struct {
	mu         sync.Mutex
	entityRepo *repository.EntityRepository
	selected   map[string][]uuid.UUID
}

func NewSelectionService(entityRepo *repository.EntityRepository) *SelectionService {
	return &SelectionService{
		entityRepo: entityRepo,
		selected:   make(map[string][]uuid.UUID),
	}
}

// Toggle добавляет идентификатор в выделение или убирает его.
// Возвращает true, если после вызова сущность выделена.
func (s *SelectionService) Toggle(ctx context.Context, userID string, id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.selected[userID]
	for i, selected := range list {
		if selected == id {
			s.selected[userID] = append(list[:i], list[i+1:]...)
			return false
		}
	}
	s.selected[userID] = append(list, id)
	return true
}

func (s *SelectionService) Clear(ctx context.Context, userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.selected, userID)
}

// Selected возвращает выделенные идентификаторы в порядке выделения
func (s *SelectionService) Selected(ctx context.Context, userID string) []uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]uuid.UUID(nil), s.selected[userID]...)
}

// ResolveBatch возвращает сущности текущего выделения, отбрасывая
// идентификаторы, которые больше не разрешаются
func (s *SelectionService) ResolveBatch(ctx context.Context, userID string) []domain.Entity {
	ids := s.Selected(ctx, userID)

	result := make([]domain.Entity, 0, len(ids))
	for _, id := range ids {
		entity, err := s.entityRepo.Get(id)
		if err != nil {
			continue
		}
		result = append(result, *entity)
	}
	return result
}
