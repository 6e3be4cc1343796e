package repository

import (
	"sync"

	"github.com/google/uuid"

	"github.com/anirban1809/simplifile/internal/domain"
)

// CommentRepository хранит плоские списки комментариев по сущностям
type CommentRepository struct {
	mu       sync.RWMutex
	byEntity map[uuid.UUID][]domain.Comment
}

func NewCommentRepository() *CommentRepository {
	return &CommentRepository{
		byEntity: make(map[uuid.UUID][]domain.Comment),
	}
}

func (r *CommentRepository) Add(c domain.Comment) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byEntity[c.EntityUUID] = append(r.byEntity[c.EntityUUID], c)
}

func (r *CommentRepository) ByEntity(entityUUID uuid.UUID) []domain.Comment {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]domain.Comment(nil), r.byEntity[entityUUID]...)
}

func (r *CommentRepository) Get(entityUUID, commentID uuid.UUID) (*domain.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.byEntity[entityUUID] {
		if c.ID == commentID {
			found := c
			return &found, nil
		}
	}
	return nil, domain.ErrNotFound
}

// RemoveByEntities подчищает комментарии удалённых сущностей
func (r *CommentRepository) RemoveByEntities(ids []uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range ids {
		delete(r.byEntity, id)
	}
}
