package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/anirban1809/simplifile/internal/domain"
	"github.com/anirban1809/simplifile/internal/repository"
)

var ErrQuotaExceeded = errors.New("storage quota exceeded")

// EntityService — слой мутаций: вся запись в хранилище проходит только
// через него. Мьютекс гарантирует, что ни одна мутация не пересекается
// с другой и каждая выполняется до конца; именно это делает каскадное
// удаление атомарным с точки зрения вызывающего.
type EntityService struct {
	mu sync.Mutex

	entityRepo        *repository.EntityRepository
	versionRepo       *repository.VersionRepository
	commentRepo       *repository.CommentRepository
	shareRepo         *repository.ShareRepository
	hierarchy         *HierarchyService
	permissionService *PermissionService
	quotaService      *StorageQuotaService
	notifications     *NotificationService
}

func NewEntityService(
	entityRepo *repository.EntityRepository,
	versionRepo *repository.VersionRepository,
	commentRepo *repository.CommentRepository,
	shareRepo *repository.ShareRepository,
	hierarchy *HierarchyService,
	permissionService *PermissionService,
	quotaService *StorageQuotaService,
	notifications *NotificationService,
) *EntityService {
	return &EntityService{
		entityRepo:        entityRepo,
		versionRepo:       versionRepo,
		commentRepo:       commentRepo,
		shareRepo:         shareRepo,
		hierarchy:         hierarchy,
		permissionService: permissionService,
		quotaService:      quotaService,
		notifications:     notifications,
	}
}

// resolveParent проверяет, что целевая папка существует и является папкой.
// nil — корень, проверять нечего.
func (s *EntityService) resolveParent(parentID *uuid.UUID) (*domain.Entity, error) {
	if parentID == nil {
		return nil, nil
	}
	parent, err := s.entityRepo.Get(*parentID)
	if err != nil {
		return nil, fmt.Errorf("parent folder %s: %w", parentID, err)
	}
	if !parent.IsFolder {
		return nil, fmt.Errorf("parent %s is not a folder: %w", parentID, domain.ErrNotFound)
	}
	return parent, nil
}

// Ingest создаёт сущности для загруженных элементов. Байты не читаются:
// ContentRef — непрозрачный дескриптор от вызывающей стороны. Повторная
// загрузка файла с тем же именем в ту же папку создаёт новую версию.
func (s *EntityService) Ingest(ctx context.Context, uploads []domain.EntityUpload, parentID *uuid.UUID, userID, userEmail string) ([]domain.Entity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	parent, err := s.resolveParent(parentID)
	if err != nil {
		return nil, err
	}
	if parent != nil && !s.permissionService.CanModify(parent, userID) {
		return nil, ErrAccessDenied
	}

	// все проверки до первой вставки, чтобы пакет применялся целиком
	var totalBytes int64
	for _, upload := range uploads {
		if strings.TrimSpace(upload.Name) == "" {
			return nil, fmt.Errorf("upload name is empty: %w", domain.ErrInvalidName)
		}
		if upload.SizeBytes < 0 {
			return nil, fmt.Errorf("negative size for %q", upload.Name)
		}
		totalBytes += upload.SizeBytes
	}

	ok, err := s.quotaService.CheckSpaceAvailable(ctx, userID, totalBytes)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrQuotaExceeded
	}

	siblings := s.entityRepo.ByParent(parentID)

	result := make([]domain.Entity, 0, len(uploads))
	for _, upload := range uploads {
		name := strings.TrimSpace(upload.Name)
		modified := upload.LastModified
		if modified.IsZero() {
			modified = time.Now()
		}

		if existing := findFile(siblings, name, userID); existing != nil {
			updated, err := s.addVersion(existing.UUID, upload, userID, userEmail, modified)
			if err != nil {
				return nil, err
			}
			result = append(result, *updated)
			continue
		}

		entity := domain.Entity{
			UUID:           uuid.New(),
			Name:           name,
			MIMEType:       upload.MIMEType,
			SizeBytes:      upload.SizeBytes,
			OwnerID:        userID,
			ParentID:       parentID,
			ContentRef:     upload.ContentRef,
			SharedWith:     []string{},
			CurrentVersion: 1,
			CreatedAt:      modified,
			UpdatedAt:      modified,
		}
		s.entityRepo.Insert(&entity)
		s.versionRepo.Add(domain.EntityVersion{
			ID:         uuid.New(),
			EntityUUID: entity.UUID,
			Version:    1,
			SizeBytes:  upload.SizeBytes,
			ContentRef: upload.ContentRef,
			UserID:     userID,
			UserEmail:  userEmail,
			CreatedAt:  modified,
		})
		result = append(result, entity)
	}

	s.notifications.Notify(userID, domain.NotificationUpload,
		fmt.Sprintf("Uploaded %d file(s)", len(result)))

	return result, nil
}

func findFile(siblings []domain.Entity, name, ownerID string) *domain.Entity {
	for i := range siblings {
		e := &siblings[i]
		if !e.IsFolder && e.Name == name && e.OwnerID == ownerID {
			return e
		}
	}
	return nil
}

// addVersion записывает новую версию существующего файла
func (s *EntityService) addVersion(id uuid.UUID, upload domain.EntityUpload, userID, userEmail string, modified time.Time) (*domain.Entity, error) {
	var version int
	err := s.entityRepo.Update(id, func(e *domain.Entity) {
		e.CurrentVersion++
		e.SizeBytes = upload.SizeBytes
		e.ContentRef = upload.ContentRef
		e.MIMEType = upload.MIMEType
		e.UpdatedAt = modified
		version = e.CurrentVersion
	})
	if err != nil {
		return nil, err
	}

	s.versionRepo.Add(domain.EntityVersion{
		ID:         uuid.New(),
		EntityUUID: id,
		Version:    version,
		SizeBytes:  upload.SizeBytes,
		ContentRef: upload.ContentRef,
		UserID:     userID,
		UserEmail:  userEmail,
		CreatedAt:  modified,
	})

	return s.entityRepo.Get(id)
}

// CreateFolder создаёт папку. Имя обязательно после обрезки пробелов.
func (s *EntityService) CreateFolder(ctx context.Context, name string, parentID *uuid.UUID, userID string) (*domain.Entity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("folder name is empty: %w", domain.ErrInvalidName)
	}

	parent, err := s.resolveParent(parentID)
	if err != nil {
		return nil, err
	}
	if parent != nil && !s.permissionService.CanModify(parent, userID) {
		return nil, ErrAccessDenied
	}

	now := time.Now()
	folder := domain.Entity{
		UUID:       uuid.New(),
		Name:       name,
		MIMEType:   domain.MIMETypeFolder,
		SizeBytes:  0,
		OwnerID:    userID,
		ParentID:   parentID,
		IsFolder:   true,
		SharedWith: []string{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	s.entityRepo.Insert(&folder)

	return &folder, nil
}

// Rename обновляет имя сущности. Пустое имя отклоняется, состояние не меняется.
func (s *EntityService) Rename(ctx context.Context, id uuid.UUID, newName, userID string) (*domain.Entity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	newName = strings.TrimSpace(newName)
	if newName == "" {
		return nil, fmt.Errorf("new name is empty: %w", domain.ErrInvalidName)
	}

	entity, err := s.entityRepo.Get(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get entity: %w", err)
	}
	if !s.permissionService.CanModify(entity, userID) {
		return nil, ErrAccessDenied
	}

	err = s.entityRepo.Update(id, func(e *domain.Entity) {
		e.Name = newName
		e.UpdatedAt = time.Now()
	})
	if err != nil {
		return nil, err
	}
	return s.entityRepo.Get(id)
}

// Move перемещает сущность в другую папку. Перемещение папки в саму себя
// или в собственного потомка запрещено; все проверки выполняются до записи,
// при отказе хранилище остаётся нетронутым.
func (s *EntityService) Move(ctx context.Context, id uuid.UUID, newParentID *uuid.UUID, userID string) (*domain.Entity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entity, err := s.entityRepo.Get(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get entity: %w", err)
	}
	if !s.permissionService.CanModify(entity, userID) {
		return nil, ErrAccessDenied
	}

	newParent, err := s.resolveParent(newParentID)
	if err != nil {
		return nil, err
	}
	if newParent != nil && !s.permissionService.CanModify(newParent, userID) {
		return nil, ErrAccessDenied
	}

	if newParentID != nil {
		if *newParentID == id {
			return nil, fmt.Errorf("cannot move %s into itself: %w", id, domain.ErrCycleDetected)
		}
		if entity.IsFolder {
			inSubtree, err := s.hierarchy.IsDescendant(ctx, id, *newParentID)
			if err != nil {
				return nil, err
			}
			if inSubtree {
				return nil, fmt.Errorf("cannot move %s into its own subtree: %w", id, domain.ErrCycleDetected)
			}
		}
	}

	err = s.entityRepo.Update(id, func(e *domain.Entity) {
		e.ParentID = newParentID
		e.UpdatedAt = time.Now()
	})
	if err != nil {
		return nil, err
	}
	return s.entityRepo.Get(id)
}

// ToggleFavorite переключает флаг избранного
func (s *EntityService) ToggleFavorite(ctx context.Context, id uuid.UUID, userID string) (*domain.Entity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entity, err := s.entityRepo.Get(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get entity: %w", err)
	}
	if !s.permissionService.CanModify(entity, userID) {
		return nil, ErrAccessDenied
	}

	var favorite bool
	err = s.entityRepo.Update(id, func(e *domain.Entity) {
		e.IsFavorite = !e.IsFavorite
		favorite = e.IsFavorite
	})
	if err != nil {
		return nil, err
	}

	if favorite {
		s.notifications.Notify(userID, domain.NotificationFavorite,
			fmt.Sprintf("Added %q to favorites", entity.Name))
	}

	return s.entityRepo.Get(id)
}

// Delete удаляет сущности вместе со всеми транзитивными потомками папок.
// Полный набор жертв вычисляется и проверяется до первого удаления, поэтому
// пакет применяется целиком либо не применяется вовсе. Потомки удаляются
// раньше своих папок, чтобы не возникало висячих ссылок на родителя.
// Отсутствующие идентификаторы пропускаются.
func (s *EntityService) Delete(ctx context.Context, ids []uuid.UUID, userID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[uuid.UUID]bool)
	var victims []uuid.UUID

	for _, id := range ids {
		if seen[id] {
			continue
		}

		entity, err := s.entityRepo.Get(id)
		if err != nil {
			continue // уже удалена — no-op
		}
		if !s.permissionService.CanModify(entity, userID) {
			return 0, ErrAccessDenied
		}

		if entity.IsFolder {
			descendants, err := s.hierarchy.DescendantsOf(ctx, id)
			if err != nil {
				// повреждённая иерархия: прерываем до каких-либо изменений
				return 0, err
			}
			// потомки раньше предков
			for i := len(descendants) - 1; i >= 0; i-- {
				if !seen[descendants[i]] {
					seen[descendants[i]] = true
					victims = append(victims, descendants[i])
				}
			}
		}

		seen[id] = true
		victims = append(victims, id)
	}

	if len(victims) == 0 {
		return 0, nil
	}

	removed := s.entityRepo.RemoveAll(victims)
	s.versionRepo.RemoveByEntities(victims)
	s.commentRepo.RemoveByEntities(victims)
	s.shareRepo.RemoveByEntities(victims)

	log.Printf("Deleted %d entities (requested %d)", removed, len(ids))
	s.notifications.Notify(userID, domain.NotificationReminder,
		fmt.Sprintf("Deleted %d item(s)", removed))

	return removed, nil
}

// Download возвращает сущность вместе с дескриптором содержимого.
// Реальные байты остаются заботой внешнего коллаборатора.
func (s *EntityService) Download(ctx context.Context, id uuid.UUID, userID, userEmail string) (*domain.EntityDownload, error) {
	entity, err := s.entityRepo.Get(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get entity: %w", err)
	}
	if entity.IsFolder {
		return nil, fmt.Errorf("cannot download a folder")
	}
	if !s.permissionService.CanView(ctx, entity, userID, userEmail) {
		return nil, ErrAccessDenied
	}

	s.notifications.Notify(userID, domain.NotificationDownload,
		fmt.Sprintf("Downloading %q", entity.Name))

	return &domain.EntityDownload{Entity: entity, ContentRef: entity.ContentRef}, nil
}

// Versions возвращает историю версий файла
func (s *EntityService) Versions(ctx context.Context, id uuid.UUID, userID, userEmail string) ([]domain.EntityVersion, error) {
	entity, err := s.entityRepo.Get(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get entity: %w", err)
	}
	if !s.permissionService.CanView(ctx, entity, userID, userEmail) {
		return nil, ErrAccessDenied
	}
	return s.versionRepo.ByEntity(id), nil
}

// RevertVersion откатывает файл к указанной версии
func (s *EntityService) RevertVersion(ctx context.Context, id uuid.UUID, version int, userID string) (*domain.Entity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entity, err := s.entityRepo.Get(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get entity: %w", err)
	}
	if !s.permissionService.CanModify(entity, userID) {
		return nil, ErrAccessDenied
	}

	target, err := s.versionRepo.Get(id, version)
	if err != nil {
		return nil, fmt.Errorf("version %d of %s: %w", version, id, err)
	}

	err = s.entityRepo.Update(id, func(e *domain.Entity) {
		e.CurrentVersion = target.Version
		e.SizeBytes = target.SizeBytes
		e.ContentRef = target.ContentRef
		e.UpdatedAt = time.Now()
	})
	if err != nil {
		return nil, err
	}
	return s.entityRepo.Get(id)
}
