package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/anirban1809/simplifile/internal/domain"
	"github.com/anirban1809/simplifile/internal/repository"
)

// HierarchyService выводит дерево из плоской коллекции по ссылкам parent_id.
// Все методы — чистые функции над снимком хранилища, никакой мемоизации.
type HierarchyService struct {
	entityRepo *repository.EntityRepository
}

func NewHierarchyService(entityRepo *repository.EntityRepository) *HierarchyService {
	return &HierarchyService{entityRepo: entityRepo}
}

// ChildrenOf возвращает прямых потомков папки в порядке вставки.
// parentID == nil означает корень.
func (s *HierarchyService) ChildrenOf(ctx context.Context, parentID *uuid.UUID) []domain.Entity {
	return s.entityRepo.ByParent(parentID)
}

// NameOf возвращает имя папки для хлебных крошек
func (s *HierarchyService) NameOf(ctx context.Context, folderID uuid.UUID) (string, error) {
	entity, err := s.entityRepo.Get(folderID)
	if err != nil {
		return "", fmt.Errorf("failed to resolve folder name: %w", err)
	}
	return entity.Name, nil
}

// DescendantsOf возвращает всех транзитивных потомков папки обходом в ширину,
// предки раньше потомков. Сама папка в результат не входит. Цикл в иерархии —
// нарушение инварианта, обход не должен зависнуть: возвращаем ErrCorruptHierarchy.
func (s *HierarchyService) DescendantsOf(ctx context.Context, folderID uuid.UUID) ([]uuid.UUID, error) {
	children := s.childIndex()

	visited := map[uuid.UUID]bool{folderID: true}
	var result []uuid.UUID

	queue := append([]uuid.UUID(nil), children[folderID]...)
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]

		if visited[id] {
			return nil, fmt.Errorf("cycle reachable from folder %s: %w", folderID, domain.ErrCorruptHierarchy)
		}
		visited[id] = true
		result = append(result, id)
		queue = append(queue, children[id]...)
	}

	return result, nil
}

// IsDescendant проверяет, является ли id транзитивным потомком ancestorID
func (s *HierarchyService) IsDescendant(ctx context.Context, ancestorID, id uuid.UUID) (bool, error) {
	descendants, err := s.DescendantsOf(ctx, ancestorID)
	if err != nil {
		return false, err
	}
	for _, d := range descendants {
		if d == id {
			return true, nil
		}
	}
	return false, nil
}

// Breadcrumbs строит путь от корня до папки по ссылкам на родителя.
// Отсутствующий родитель не считается ошибкой: цепочка обрывается,
// папка трактуется как лежащая в корне.
func (s *HierarchyService) Breadcrumbs(ctx context.Context, folderID uuid.UUID) ([]domain.Breadcrumb, error) {
	var chain []domain.Breadcrumb
	visited := make(map[uuid.UUID]bool)

	current := &folderID
	for current != nil {
		if visited[*current] {
			return nil, fmt.Errorf("cycle in parent chain of %s: %w", folderID, domain.ErrCorruptHierarchy)
		}
		visited[*current] = true

		entity, err := s.entityRepo.Get(*current)
		if err != nil {
			break
		}
		chain = append(chain, domain.Breadcrumb{UUID: entity.UUID, Name: entity.Name})
		current = entity.ParentID
	}

	// разворачиваем: от корня к текущей папке
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain, nil
}

// childIndex строит индекс потомков по снимку коллекции
func (s *HierarchyService) childIndex() map[uuid.UUID][]uuid.UUID {
	index := make(map[uuid.UUID][]uuid.UUID)
	for _, e := range s.entityRepo.List() {
		if e.ParentID != nil {
			index[*e.ParentID] = append(index[*e.ParentID], e.UUID)
		}
	}
	return index
}
