package repository

import (
	"sync"

	"github.com/google/uuid"

	"github.com/anirban1809/simplifile/internal/domain"
)

// EntityRepository — единственный источник истины для плоской коллекции
// сущностей. Хранилище целиком в памяти: срез сохраняет порядок вставки,
// карта даёт доступ по идентификатору. Все операции синхронны и
// выполняются под мьютексом, поэтому ни одна мутация не пересекается
// с другой.
type EntityRepository struct {
	mu       sync.RWMutex
	order    []uuid.UUID
	entities map[uuid.UUID]*domain.Entity
}

func NewEntityRepository() *EntityRepository {
	return &EntityRepository{
		entities: make(map[uuid.UUID]*domain.Entity),
	}
}

// copyEntity возвращает копию, чтобы вызывающие не могли изменить
// внутреннее состояние мимо слоя мутаций
func copyEntity(e *domain.Entity) domain.Entity {
	c := *e
	if e.SharedWith != nil {
		c.SharedWith = append([]string(nil), e.SharedWith...)
	}
	if e.ParentID != nil {
		p := *e.ParentID
		c.ParentID = &p
	}
	return c
}

// List возвращает снимок всей коллекции в порядке вставки
func (r *EntityRepository) List() []domain.Entity {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Entity, 0, len(r.order))
	for _, id := range r.order {
		result = append(result, copyEntity(r.entities[id]))
	}
	return result
}

func (r *EntityRepository) Get(id uuid.UUID) (*domain.Entity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entities[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	c := copyEntity(e)
	return &c, nil
}

func (r *EntityRepository) Insert(e *domain.Entity) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c := copyEntity(e)
	r.entities[e.UUID] = &c
	r.order = append(r.order, e.UUID)
}

// Update применяет patch к сущности под блокировкой записи
func (r *EntityRepository) Update(id uuid.UUID, patch func(*domain.Entity)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entities[id]
	if !ok {
		return domain.ErrNotFound
	}
	patch(e)
	return nil
}

func (r *EntityRepository) Remove(id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.removeLocked(id)
}

// RemoveAll удаляет все перечисленные сущности за одну блокировку.
// Отсутствующие идентификаторы пропускаются: повторное удаление — no-op.
func (r *EntityRepository) RemoveAll(ids []uuid.UUID) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for _, id := range ids {
		if err := r.removeLocked(id); err == nil {
			removed++
		}
	}
	return removed
}

func (r *EntityRepository) removeLocked(id uuid.UUID) error {
	if _, ok := r.entities[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.entities, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// ByParent возвращает прямых потомков папки в порядке вставки.
// parentID == nil означает корень.
func (r *EntityRepository) ByParent(parentID *uuid.UUID) []domain.Entity {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []domain.Entity
	for _, id := range r.order {
		e := r.entities[id]
		if sameParent(e.ParentID, parentID) {
			result = append(result, copyEntity(e))
		}
	}
	return result
}

func (r *EntityRepository) ByOwner(ownerID string) []domain.Entity {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []domain.Entity
	for _, id := range r.order {
		e := r.entities[id]
		if e.OwnerID == ownerID {
			result = append(result, copyEntity(e))
		}
	}
	return result
}

func sameParent(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
