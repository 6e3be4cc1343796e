package repository

import (
	"sync"

	"github.com/google/uuid"

	"github.com/anirban1809/simplifile/internal/domain"
)

// ShareRepository хранит журнал выданных грантов доступа
type ShareRepository struct {
	mu     sync.RWMutex
	grants []domain.ShareGrant
}

func NewShareRepository() *ShareRepository {
	return &ShareRepository{}
}

func (r *ShareRepository) Add(grant domain.ShareGrant) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.grants = append(r.grants, grant)
}

func (r *ShareRepository) ByEntity(entityUUID uuid.UUID) []domain.ShareGrant {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []domain.ShareGrant
	for _, g := range r.grants {
		if g.EntityUUID == entityUUID {
			result = append(result, g)
		}
	}
	return result
}

func (r *ShareRepository) ByRecipient(recipient string) []domain.ShareGrant {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []domain.ShareGrant
	for _, g := range r.grants {
		if g.Recipient == recipient {
			result = append(result, g)
		}
	}
	return result
}

// RemoveByEntities подчищает гранты удалённых сущностей
func (r *ShareRepository) RemoveByEntities(ids []uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	victims := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		victims[id] = true
	}

	kept := r.grants[:0]
	for _, g := range r.grants {
		if !victims[g.EntityUUID] {
			kept = append(kept, g)
		}
	}
	r.grants = kept
}
