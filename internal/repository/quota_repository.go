package repository

import "sync"

// DefaultQuotaBytes — лимит по умолчанию, 5GB как в исходной конфигурации
const DefaultQuotaBytes = int64(5368709120)

// QuotaRepository хранит лимиты хранилища по владельцам.
// Фактическое использование вычисляется сервисом по снимку сущностей.
type QuotaRepository struct {
	mu           sync.RWMutex
	limits       map[string]int64
	defaultLimit int64
}

func NewQuotaRepository(defaultLimit int64) *QuotaRepository {
	if defaultLimit <= 0 {
		defaultLimit = DefaultQuotaBytes
	}
	return &QuotaRepository{
		limits:       make(map[string]int64),
		defaultLimit: defaultLimit,
	}
}

func (r *QuotaRepository) GetLimit(ownerID string) int64 {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if limit, ok := r.limits[ownerID]; ok {
		return limit
	}
	return r.defaultLimit
}

func (r *QuotaRepository) SetLimit(ownerID string, limit int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.limits[ownerID] = limit
}
