package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/anirban1809/simplifile/internal/domain"
	"github.com/anirban1809/simplifile/internal/repository"
)

// CommentService управляет комментариями к сущностям.
// Автор берётся у коллаборатора идентичности, хранится плоский список,
// дерево ответов собирается при чтении.
type CommentService struct {
	entityRepo        *repository.EntityRepository
	commentRepo       *repository.CommentRepository
	permissionService *PermissionService
}

func NewCommentService(
	entityRepo *repository.EntityRepository,
	commentRepo *repository.CommentRepository,
	permissionService *PermissionService,
) *CommentService {
	return &CommentService{
		entityRepo:        entityRepo,
		commentRepo:       commentRepo,
		permissionService: permissionService,
	}
}

func (s *CommentService) Add(ctx context.Context, entityID uuid.UUID, parentID *uuid.UUID, content, userID, userEmail string) (*domain.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("comment content is empty: %w", domain.ErrInvalidName)
	}

	entity, err := s.entityRepo.Get(entityID)
	if err != nil {
		return nil, fmt.Errorf("failed to get entity: %w", err)
	}
	if !s.permissionService.CanView(ctx, entity, userID, userEmail) {
		return nil, ErrAccessDenied
	}

	if parentID != nil {
		if _, err := s.commentRepo.Get(entityID, *parentID); err != nil {
			return nil, fmt.Errorf("parent comment %s: %w", parentID, err)
		}
	}

	comment := domain.Comment{
		ID:         uuid.New(),
		EntityUUID: entityID,
		ParentID:   parentID,
		UserID:     userID,
		UserEmail:  userEmail,
		Content:    content,
		CreatedAt:  time.Now(),
	}
	s.commentRepo.Add(comment)

	return &comment, nil
}

// List возвращает комментарии сущности деревом: ответы вложены в родителей
func (s *CommentService) List(ctx context.Context, entityID uuid.UUID, userID, userEmail string) ([]domain.Comment, error) {
	entity, err := s.entityRepo.Get(entityID)
	if err != nil {
		return nil, fmt.Errorf("failed to get entity: %w", err)
	}
	if !s.permissionService.CanView(ctx, entity, userID, userEmail) {
		return nil, ErrAccessDenied
	}

	flat := s.commentRepo.ByEntity(entityID)

	byParent := make(map[uuid.UUID][]domain.Comment)
	var roots []domain.Comment
	for _, c := range flat {
		if c.ParentID == nil {
			roots = append(roots, c)
		} else {
			byParent[*c.ParentID] = append(byParent[*c.ParentID], c)
		}
	}

	var attach func(c *domain.Comment)
	attach = func(c *domain.Comment) {
		c.Replies = byParent[c.ID]
		for i := range c.Replies {
			attach(&c.Replies[i])
		}
	}
	for i := range roots {
		attach(&roots[i])
	}

	if roots == nil {
		roots = []domain.Comment{}
	}
	return roots, nil
}
