package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"

	"github.com/anirban1809/simplifile/internal/domain"
	"github.com/anirban1809/simplifile/internal/repository"
)

const DefaultPageSize = 20

// viewState — состояние просмотра одного пользователя
type viewState struct {
	currentFolder *uuid.UUID
	page          int
	mode          domain.ViewMode
}

// ViewService собирает производное представление текущей папки: список
// потомков, хлебные крошки и страницу пагинации. Переход в другую папку
// всегда сбрасывает страницу на первую и очищает выделение — устаревший
// номер страницы или выделение из прошлой папки сюда не протекают.
type ViewService struct {
	mu     sync.Mutex
	states map[string]*viewState

	entityRepo        *repository.EntityRepository
	hierarchy         *HierarchyService
	selection         *SelectionService
	permissionService *PermissionService
	pageSize          int
}

func NewViewService(
	entityRepo *repository.EntityRepository,
	hierarchy *HierarchyService,
	selection *SelectionService,
	permissionService *PermissionService,
	pageSize int,
) *ViewService {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &ViewService{
		states:            make(map[string]*viewState),
		entityRepo:        entityRepo,
		hierarchy:         hierarchy,
		selection:         selection,
		permissionService: permissionService,
		pageSize:          pageSize,
	}
}

// Paginate нарезает список на страницы. Номер страницы зажимается
// в [1, totalPages]; totalPages не бывает меньше 1 даже для пустого списка.
func Paginate(entities []domain.Entity, pageSize, page int) ([]domain.Entity, int, int) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	totalPages := (len(entities) + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(entities) {
		start = len(entities)
	}
	if end > len(entities) {
		end = len(entities)
	}

	return entities[start:end], page, totalPages
}

func (s *ViewService) state(userID string) *viewState {
	state, ok := s.states[userID]
	if !ok {
		state = &viewState{page: 1, mode: domain.ViewModeList}
		s.states[userID] = state
	}
	return state
}

// Navigate переводит пользователя в папку. Несуществующая папка трактуется
// как корень, а не как ошибка: хлебная крошка на удалённую папку не должна
// ронять представление.
func (s *ViewService) Navigate(ctx context.Context, userID, userEmail string, folderID *uuid.UUID) error {
	target := folderID
	if folderID != nil {
		folder, err := s.entityRepo.Get(*folderID)
		switch {
		case errors.Is(err, domain.ErrNotFound):
			log.Printf("Navigate: folder %s not found, falling back to root", folderID)
			target = nil
		case err != nil:
			return err
		case !folder.IsFolder:
			log.Printf("Navigate: %s is not a folder, falling back to root", folderID)
			target = nil
		case !s.permissionService.CanView(ctx, folder, userID, userEmail):
			return ErrAccessDenied
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.state(userID)
	state.currentFolder = target
	state.page = 1

	s.selection.Clear(ctx, userID)
	return nil
}

// SetPage устанавливает номер страницы; значение зажимается при чтении
func (s *ViewService) SetPage(ctx context.Context, userID string, page int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if page < 1 {
		page = 1
	}
	s.state(userID).page = page
}

func (s *ViewService) SetMode(ctx context.Context, userID string, mode domain.ViewMode) error {
	if mode != domain.ViewModeList && mode != domain.ViewModeGrid {
		return fmt.Errorf("unknown view mode %q", mode)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state(userID).mode = mode
	return nil
}

// CurrentFolder возвращает папку, которую пользователь просматривает
func (s *ViewService) CurrentFolder(ctx context.Context, userID string) *uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.state(userID).currentFolder
	if current == nil {
		return nil
	}
	id := *current
	return &id
}

// Content собирает содержимое текущей папки: потомков в порядке вставки,
// страницу пагинации и хлебные крошки. Всё пересчитывается по снимку
// хранилища на каждый вызов.
func (s *ViewService) Content(ctx context.Context, userID, userEmail string) (*domain.FolderContent, error) {
	s.mu.Lock()
	state := s.state(userID)
	current := state.currentFolder
	page := state.page
	mode := state.mode
	s.mu.Unlock()

	var folder *domain.Entity
	var crumbs []domain.Breadcrumb
	var children []domain.Entity

	if current == nil {
		crumbs = []domain.Breadcrumb{}
		for _, e := range s.entityRepo.ByParent(nil) {
			if e.OwnerID == userID || sharedWith(&e, userEmail) {
				children = append(children, e)
			}
		}
	} else {
		var err error
		folder, err = s.entityRepo.Get(*current)
		if errors.Is(err, domain.ErrNotFound) {
			// папку удалили, пока пользователь был в ней — мягко падаем в корень
			if navErr := s.Navigate(ctx, userID, userEmail, nil); navErr != nil {
				return nil, navErr
			}
			return s.Content(ctx, userID, userEmail)
		}
		if err != nil {
			return nil, err
		}

		crumbs, err = s.hierarchy.Breadcrumbs(ctx, *current)
		if err != nil {
			return nil, err
		}
		children = s.hierarchy.ChildrenOf(ctx, current)
	}

	items, clampedPage, totalPages := Paginate(children, s.pageSize, page)

	s.mu.Lock()
	s.state(userID).page = clampedPage
	s.mu.Unlock()

	return &domain.FolderContent{
		Folder:      folder,
		Breadcrumbs: crumbs,
		Entities:    items,
		Page:        clampedPage,
		TotalPages:  totalPages,
		TotalItems:  len(children),
		ViewMode:    mode,
	}, nil
}

// Structure возвращает все папки пользователя для дерева навигации
func (s *ViewService) Structure(ctx context.Context, userID string) []domain.Entity {
	var folders []domain.Entity
	for _, e := range s.entityRepo.ByOwner(userID) {
		if e.IsFolder {
			folders = append(folders, e)
		}
	}
	return folders
}

// Favorites возвращает избранные сущности пользователя
func (s *ViewService) Favorites(ctx context.Context, userID string) []domain.Entity {
	var favorites []domain.Entity
	for _, e := range s.entityRepo.ByOwner(userID) {
		if e.IsFavorite {
			favorites = append(favorites, e)
		}
	}
	return favorites
}
