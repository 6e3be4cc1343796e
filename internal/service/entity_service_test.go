package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anirban1809/simplifile/internal/domain"
	"github.com/anirban1809/simplifile/internal/repository"
)

type testEnv struct {
	entityRepo       *repository.EntityRepository
	versionRepo      *repository.VersionRepository
	shareRepo        *repository.ShareRepository
	notificationRepo *repository.NotificationRepository

	entities      *EntityService
	hierarchy     *HierarchyService
	shares        *ShareService
	selection     *SelectionService
	view          *ViewService
	notifications *NotificationService
	quota         *StorageQuotaService
	search        *SearchService
	comments      *CommentService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	entityRepo := repository.NewEntityRepository()
	versionRepo := repository.NewVersionRepository()
	commentRepo := repository.NewCommentRepository()
	shareRepo := repository.NewShareRepository()
	notificationRepo := repository.NewNotificationRepository()
	quotaRepo := repository.NewQuotaRepository(repository.DefaultQuotaBytes)

	hierarchy := NewHierarchyService(entityRepo)
	permissions := NewPermissionService(hierarchy)
	quota := NewStorageQuotaService(entityRepo, quotaRepo)
	notifications := NewNotificationService(notificationRepo)
	entities := NewEntityService(entityRepo, versionRepo, commentRepo, shareRepo, hierarchy, permissions, quota, notifications)
	shares := NewShareService(entityRepo, shareRepo, permissions, notifications)
	selection := NewSelectionService(entityRepo)
	view := NewViewService(entityRepo, hierarchy, selection, permissions, 5)
	search := NewSearchService(entityRepo)
	comments := NewCommentService(entityRepo, commentRepo, permissions)

	return &testEnv{
		entityRepo:       entityRepo,
		versionRepo:      versionRepo,
		shareRepo:        shareRepo,
		notificationRepo: notificationRepo,
		entities:         entities,
		hierarchy:        hierarchy,
		shares:           shares,
		selection:        selection,
		view:             view,
		notifications:    notifications,
		quota:            quota,
		search:           search,
		comments:         comments,
	}
}

const testUser = "user-1"
const testEmail = "user1@example.com"

func (env *testEnv) mustFolder(t *testing.T, name string, parentID *uuid.UUID) *domain.Entity {
	t.Helper()
	folder, err := env.entities.CreateFolder(context.Background(), name, parentID, testUser)
	require.NoError(t, err)
	return folder
}

func (env *testEnv) mustFile(t *testing.T, name string, parentID *uuid.UUID) *domain.Entity {
	t.Helper()
	uploads := []domain.EntityUpload{{Name: name, MIMEType: "text/plain", SizeBytes: 100, ContentRef: "ref-" + name}}
	created, err := env.entities.Ingest(context.Background(), uploads, parentID, testUser, testEmail)
	require.NoError(t, err)
	require.Len(t, created, 1)
	return &created[0]
}

func TestIngestCreatesEntitiesWithUniqueIDs(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	uploads := []domain.EntityUpload{
		{Name: "a.txt", MIMEType: "text/plain", SizeBytes: 10},
		{Name: "b.txt", MIMEType: "text/plain", SizeBytes: 20},
	}
	created, err := env.entities.Ingest(ctx, uploads, nil, testUser, testEmail)
	require.NoError(t, err)
	require.Len(t, created, 2)

	assert.NotEqual(t, created[0].UUID, created[1].UUID)
	assert.Equal(t, 1, created[0].CurrentVersion)
	assert.Nil(t, created[0].ParentID)
	assert.Equal(t, testUser, created[0].OwnerID)
}

func TestIngestSameNameCreatesNewVersion(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	first := env.mustFile(t, "report.pdf", nil)

	uploads := []domain.EntityUpload{{Name: "report.pdf", MIMEType: "application/pdf", SizeBytes: 200, ContentRef: "ref-v2"}}
	created, err := env.entities.Ingest(ctx, uploads, nil, testUser, testEmail)
	require.NoError(t, err)
	require.Len(t, created, 1)

	assert.Equal(t, first.UUID, created[0].UUID)
	assert.Equal(t, 2, created[0].CurrentVersion)
	assert.Equal(t, int64(200), created[0].SizeBytes)

	versions, err := env.entities.Versions(ctx, first.UUID, testUser, testEmail)
	require.NoError(t, err)
	assert.Len(t, versions, 2)
}

func TestIngestRejectsEmptyName(t *testing.T) {
	env := newTestEnv(t)

	uploads := []domain.EntityUpload{
		{Name: "ok.txt", MIMEType: "text/plain", SizeBytes: 10},
		{Name: "   ", MIMEType: "text/plain", SizeBytes: 10},
	}
	_, err := env.entities.Ingest(context.Background(), uploads, nil, testUser, testEmail)
	require.ErrorIs(t, err, domain.ErrInvalidName)

	// пакет отклоняется целиком
	assert.Empty(t, env.entityRepo.List())
}

func TestIngestQuotaExceeded(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.quota.UpdateQuotaLimit(ctx, testUser, 50))

	uploads := []domain.EntityUpload{{Name: "big.bin", MIMEType: "application/octet-stream", SizeBytes: 100}}
	_, err := env.entities.Ingest(ctx, uploads, nil, testUser, testEmail)
	require.ErrorIs(t, err, ErrQuotaExceeded)
	assert.Empty(t, env.entityRepo.List())
}

func TestCreateFolderRejectsEmptyName(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.entities.CreateFolder(context.Background(), "   ", nil, testUser)
	require.ErrorIs(t, err, domain.ErrInvalidName)
	assert.Empty(t, env.entityRepo.List())
}

func TestRenameEmptyNameLeavesEntityUntouched(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	folder := env.mustFolder(t, "Documents", nil)

	_, err := env.entities.Rename(ctx, folder.UUID, "  ", testUser)
	require.ErrorIs(t, err, domain.ErrInvalidName)

	got, err := env.entityRepo.Get(folder.UUID)
	require.NoError(t, err)
	assert.Equal(t, "Documents", got.Name)
}

func TestRenameMissingEntity(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.entities.Rename(context.Background(), uuid.New(), "new", testUser)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMoveIntoOwnSubtreeFails(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	top := env.mustFolder(t, "top", nil)
	mid := env.mustFolder(t, "mid", &top.UUID)
	leaf := env.mustFolder(t, "leaf", &mid.UUID)

	_, err := env.entities.Move(ctx, top.UUID, &leaf.UUID, testUser)
	require.ErrorIs(t, err, domain.ErrCycleDetected)

	// неудачное перемещение не меняет хранилище
	got, err := env.entityRepo.Get(top.UUID)
	require.NoError(t, err)
	assert.Nil(t, got.ParentID)
}

func TestMoveIntoItselfFails(t *testing.T) {
	env := newTestEnv(t)

	folder := env.mustFolder(t, "self", nil)
	_, err := env.entities.Move(context.Background(), folder.UUID, &folder.UUID, testUser)
	require.ErrorIs(t, err, domain.ErrCycleDetected)
}

func TestMoveToRoot(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	parent := env.mustFolder(t, "parent", nil)
	file := env.mustFile(t, "a.txt", &parent.UUID)

	moved, err := env.entities.Move(ctx, file.UUID, nil, testUser)
	require.NoError(t, err)
	assert.Nil(t, moved.ParentID)
}

func TestDeleteFolderCascades(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	docs := env.mustFolder(t, "Documents", nil)
	sub := env.mustFolder(t, "Sub", &docs.UUID)
	env.mustFile(t, "a.txt", &docs.UUID)
	env.mustFile(t, "b.txt", &sub.UUID)
	keep := env.mustFile(t, "keep.txt", nil)

	removed, err := env.entities.Delete(ctx, []uuid.UUID{docs.UUID}, testUser)
	require.NoError(t, err)
	assert.Equal(t, 4, removed)

	remaining := env.entityRepo.List()
	require.Len(t, remaining, 1)
	assert.Equal(t, keep.UUID, remaining[0].UUID)
}

func TestDeleteMissingIDIsNoop(t *testing.T) {
	env := newTestEnv(t)

	removed, err := env.entities.Delete(context.Background(), []uuid.UUID{uuid.New()}, testUser)
	require.NoError(t, err)
	assert.Zero(t, removed)
}

func TestDeleteAbortsOnCorruptHierarchy(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	a := env.mustFolder(t, "a", nil)
	b := env.mustFolder(t, "b", &a.UUID)
	env.mustFile(t, "inside.txt", &a.UUID)

	// искусственно замыкаем цикл мимо слоя мутаций
	require.NoError(t, env.entityRepo.Update(a.UUID, func(e *domain.Entity) {
		e.ParentID = &b.UUID
	}))

	before := len(env.entityRepo.List())
	_, err := env.entities.Delete(ctx, []uuid.UUID{a.UUID}, testUser)
	require.ErrorIs(t, err, domain.ErrCorruptHierarchy)
	assert.Len(t, env.entityRepo.List(), before)
}

func TestDeleteForeignEntityDenied(t *testing.T) {
	env := newTestEnv(t)

	file := env.mustFile(t, "mine.txt", nil)
	_, err := env.entities.Delete(context.Background(), []uuid.UUID{file.UUID}, "intruder")
	require.ErrorIs(t, err, ErrAccessDenied)
}

func TestToggleFavorite(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	file := env.mustFile(t, "pic.jpg", nil)

	toggled, err := env.entities.ToggleFavorite(ctx, file.UUID, testUser)
	require.NoError(t, err)
	assert.True(t, toggled.IsFavorite)

	toggled, err = env.entities.ToggleFavorite(ctx, file.UUID, testUser)
	require.NoError(t, err)
	assert.False(t, toggled.IsFavorite)
}

func TestDownloadFolderFails(t *testing.T) {
	env := newTestEnv(t)

	folder := env.mustFolder(t, "Documents", nil)
	_, err := env.entities.Download(context.Background(), folder.UUID, testUser, testEmail)
	require.Error(t, err)
}

func TestRevertVersion(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	file := env.mustFile(t, "doc.txt", nil)
	uploads := []domain.EntityUpload{{Name: "doc.txt", MIMEType: "text/plain", SizeBytes: 999, ContentRef: "ref-v2", LastModified: time.Now()}}
	_, err := env.entities.Ingest(ctx, uploads, nil, testUser, testEmail)
	require.NoError(t, err)

	reverted, err := env.entities.RevertVersion(ctx, file.UUID, 1, testUser)
	require.NoError(t, err)
	assert.Equal(t, 1, reverted.CurrentVersion)
	assert.Equal(t, int64(100), reverted.SizeBytes)
}
