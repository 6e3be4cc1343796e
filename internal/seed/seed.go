package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/anirban1809/simplifile/internal/domain"
	"github.com/anirban1809/simplifile/internal/repository"
)

// Seed — генератор демонстрационных данных: пять папок и пятнадцать файлов
// для указанного владельца. Пишет в хранилище напрямую — это внешний
// коллаборатор, фабрикующий начальное состояние, а не пользовательская мутация.
type Seed struct {
	entityRepo  *repository.EntityRepository
	versionRepo *repository.VersionRepository
}

func New(entityRepo *repository.EntityRepository, versionRepo *repository.VersionRepository) *Seed {
	return &Seed{
		entityRepo:  entityRepo,
		versionRepo: versionRepo,
	}
}

type fileKind struct {
	mimeType string
	ext      string
}

var fileKinds = []fileKind{
	{"image/jpeg", "jpg"},
	{"image/png", "png"},
	{"application/pdf", "pdf"},
	{"application/msword", "doc"},
	{"text/plain", "txt"},
}

var folderNames = []string{"Documents", "Images", "Projects", "Downloads", "Archive"}

// Generate наполняет хранилище примерами
func (s *Seed) Generate(ownerID, ownerEmail string) {
	now := time.Now()

	for i, name := range folderNames {
		folder := domain.Entity{
			UUID:       uuid.New(),
			Name:       name,
			MIMEType:   domain.MIMETypeFolder,
			OwnerID:    ownerID,
			IsFolder:   true,
			IsFavorite: i < 2,
			SharedWith: []string{},
			CreatedAt:  now.Add(-time.Duration(i) * 24 * time.Hour),
			UpdatedAt:  now.Add(-time.Duration(i) * 24 * time.Hour),
		}
		s.entityRepo.Insert(&folder)
	}

	for i := 1; i <= 15; i++ {
		kind := fileKinds[rand.Intn(len(fileKinds))]
		size := int64(rand.Intn(10000000)) // до 10MB
		daysAgo := rand.Intn(30)
		modified := now.Add(-time.Duration(daysAgo) * 24 * time.Hour)

		file := domain.Entity{
			UUID:           uuid.New(),
			Name:           fmt.Sprintf("Example File %d.%s", i, kind.ext),
			MIMEType:       kind.mimeType,
			SizeBytes:      size,
			OwnerID:        ownerID,
			IsFavorite:     rand.Float64() > 0.8,
			SharedWith:     []string{},
			CurrentVersion: 1,
			CreatedAt:      modified,
			UpdatedAt:      modified,
		}
		if rand.Float64() > 0.8 {
			file.IsShared = true
			file.SharedWith = []string{"user@example.com"}
		}

		s.entityRepo.Insert(&file)
		s.versionRepo.Add(domain.EntityVersion{
			ID:         uuid.New(),
			EntityUUID: file.UUID,
			Version:    1,
			SizeBytes:  size,
			UserID:     ownerID,
			UserEmail:  ownerEmail,
			CreatedAt:  modified,
		})
	}

	log.Printf("Seeded %d folders and 15 files for %s", len(folderNames), ownerID)
}
