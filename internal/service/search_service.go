package service

import (
	"context"
	"strings"
	"time"

	"github.com/anirban1809/simplifile/internal/domain"
	"github.com/anirban1809/simplifile/internal/repository"
)

// SearchFilters — фильтры поиска: группы типов, диапазон даты изменения
// и диапазон размера. Нулевой MaxSize означает «без верхней границы».
type SearchFilters struct {
	Types          []string   `json:"types,omitempty"` // images, documents, archives
	ModifiedAfter  *time.Time `json:"modified_after,omitempty"`
	ModifiedBefore *time.Time `json:"modified_before,omitempty"`
	MinSize        int64      `json:"min_size,omitempty"`
	MaxSize        int64      `json:"max_size,omitempty"`
}

// SearchService ищет по имени и фильтрам среди сущностей пользователя
type SearchService struct {
	entityRepo *repository.EntityRepository
}

func NewSearchService(entityRepo *repository.EntityRepository) *SearchService {
	return &SearchService{entityRepo: entityRepo}
}

func (s *SearchService) Search(ctx context.Context, userID, query string, filters SearchFilters) []domain.Entity {
	query = strings.ToLower(strings.TrimSpace(query))

	result := []domain.Entity{}
	for _, e := range s.entityRepo.ByOwner(userID) {
		if query != "" && !strings.Contains(strings.ToLower(e.Name), query) {
			continue
		}
		if !matchesTypes(&e, filters.Types) {
			continue
		}
		if filters.ModifiedAfter != nil && e.UpdatedAt.Before(*filters.ModifiedAfter) {
			continue
		}
		if filters.ModifiedBefore != nil && e.UpdatedAt.After(*filters.ModifiedBefore) {
			continue
		}
		if e.SizeBytes < filters.MinSize {
			continue
		}
		if filters.MaxSize > 0 && e.SizeBytes > filters.MaxSize {
			continue
		}
		result = append(result, e)
	}
	return result
}

func matchesTypes(e *domain.Entity, types []string) bool {
	if len(types) == 0 {
		return true
	}
	for _, t := range types {
		switch strings.ToLower(t) {
		case "images":
			if strings.HasPrefix(e.MIMEType, "image/") {
				return true
			}
		case "documents":
			if strings.Contains(e.MIMEType, "pdf") ||
				strings.Contains(e.MIMEType, "msword") ||
				strings.Contains(e.MIMEType, "document") ||
				strings.HasPrefix(e.MIMEType, "text/") {
				return true
			}
		case "archives":
			if strings.Contains(e.MIMEType, "zip") ||
				strings.Contains(e.MIMEType, "archive") ||
				strings.Contains(e.MIMEType, "compressed") {
				return true
			}
		case "folders":
			if e.IsFolder {
				return true
			}
		}
	}
	return false
}
