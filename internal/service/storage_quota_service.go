package service

import (
	"context"
	"fmt"

	"github.com/anirban1809/simplifile/internal/domain"
	"github.com/anirban1809/simplifile/internal/repository"
)

// StorageQuotaService считает использование хранилища по снимку сущностей.
// Лимит хранится отдельно, использование никогда не кэшируется.
type StorageQuotaService struct {
	entityRepo *repository.EntityRepository
	quotaRepo  *repository.QuotaRepository
}

func NewStorageQuotaService(entityRepo *repository.EntityRepository, quotaRepo *repository.QuotaRepository) *StorageQuotaService {
	return &StorageQuotaService{
		entityRepo: entityRepo,
		quotaRepo:  quotaRepo,
	}
}

func (s *StorageQuotaService) usedBytes(ownerID string) int64 {
	var used int64
	for _, e := range s.entityRepo.ByOwner(ownerID) {
		if !e.IsFolder {
			used += e.SizeBytes
		}
	}
	return used
}

func (s *StorageQuotaService) GetQuotaInfo(ctx context.Context, ownerID string) (*domain.QuotaInfo, error) {
	limit := s.quotaRepo.GetLimit(ownerID)
	used := s.usedBytes(ownerID)

	usagePercent := 0.0
	if limit > 0 {
		usagePercent = float64(used) / float64(limit) * 100
	}

	return &domain.QuotaInfo{
		TotalSpace:     limit,
		UsedSpace:      used,
		AvailableSpace: limit - used,
		UsagePercent:   usagePercent,
	}, nil
}

func (s *StorageQuotaService) CheckSpaceAvailable(ctx context.Context, ownerID string, requiredBytes int64) (bool, error) {
	limit := s.quotaRepo.GetLimit(ownerID)
	return s.usedBytes(ownerID)+requiredBytes <= limit, nil
}

func (s *StorageQuotaService) UpdateQuotaLimit(ctx context.Context, ownerID string, newLimit int64) error {
	if newLimit < 0 {
		return fmt.Errorf("new quota limit cannot be negative")
	}
	s.quotaRepo.SetLimit(ownerID, newLimit)
	return nil
}
