package repository

import (
	"sync"

	"github.com/google/uuid"

	"github.com/anirban1809/simplifile/internal/domain"
)

// VersionRepository хранит историю версий файлов
type VersionRepository struct {
	mu       sync.RWMutex
	byEntity map[uuid.UUID][]domain.EntityVersion
}

func NewVersionRepository() *VersionRepository {
	return &VersionRepository{
		byEntity: make(map[uuid.UUID][]domain.EntityVersion),
	}
}

func (r *VersionRepository) Add(v domain.EntityVersion) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byEntity[v.EntityUUID] = append(r.byEntity[v.EntityUUID], v)
}

func (r *VersionRepository) ByEntity(entityUUID uuid.UUID) []domain.EntityVersion {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]domain.EntityVersion(nil), r.byEntity[entityUUID]...)
}

func (r *VersionRepository) Get(entityUUID uuid.UUID, version int) (*domain.EntityVersion, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, v := range r.byEntity[entityUUID] {
		if v.Version == version {
			found := v
			return &found, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *VersionRepository) RemoveByEntities(ids []uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range ids {
		delete(r.byEntity, id)
	}
}
