package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anirban1809/simplifile/internal/domain"
)

func TestDescendantsOfAncestorsBeforeDescendants(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	top := env.mustFolder(t, "top", nil)
	mid := env.mustFolder(t, "mid", &top.UUID)
	leaf := env.mustFile(t, "leaf.txt", &mid.UUID)
	sibling := env.mustFile(t, "sibling.txt", &top.UUID)

	descendants, err := env.hierarchy.DescendantsOf(ctx, top.UUID)
	require.NoError(t, err)
	require.Len(t, descendants, 3)

	pos := make(map[uuid.UUID]int)
	for i, id := range descendants {
		pos[id] = i
	}
	assert.Less(t, pos[mid.UUID], pos[leaf.UUID])
	assert.Contains(t, descendants, sibling.UUID)
	assert.NotContains(t, descendants, top.UUID)
}

func TestChildrenOfAfterFolderAndFileCreation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	docs := env.mustFolder(t, "Docs", nil)
	file := env.mustFile(t, "a.txt", &docs.UUID)

	children := env.hierarchy.ChildrenOf(ctx, &docs.UUID)
	require.Len(t, children, 1)
	assert.Equal(t, file.UUID, children[0].UUID)

	roots := env.hierarchy.ChildrenOf(ctx, nil)
	require.Len(t, roots, 1)
	assert.Equal(t, docs.UUID, roots[0].UUID)

	name, err := env.hierarchy.NameOf(ctx, docs.UUID)
	require.NoError(t, err)
	assert.Equal(t, "Docs", name)
}

func TestDescendantsOfDetectsCycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	a := env.mustFolder(t, "a", nil)
	b := env.mustFolder(t, "b", &a.UUID)

	require.NoError(t, env.entityRepo.Update(a.UUID, func(e *domain.Entity) {
		e.ParentID = &b.UUID
	}))

	_, err := env.hierarchy.DescendantsOf(ctx, a.UUID)
	require.ErrorIs(t, err, domain.ErrCorruptHierarchy)
}

func TestIsDescendant(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	top := env.mustFolder(t, "top", nil)
	mid := env.mustFolder(t, "mid", &top.UUID)
	other := env.mustFolder(t, "other", nil)

	is, err := env.hierarchy.IsDescendant(ctx, top.UUID, mid.UUID)
	require.NoError(t, err)
	assert.True(t, is)

	is, err = env.hierarchy.IsDescendant(ctx, top.UUID, other.UUID)
	require.NoError(t, err)
	assert.False(t, is)
}

func TestBreadcrumbsRootToFolder(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	top := env.mustFolder(t, "top", nil)
	mid := env.mustFolder(t, "mid", &top.UUID)
	leaf := env.mustFolder(t, "leaf", &mid.UUID)

	crumbs, err := env.hierarchy.Breadcrumbs(ctx, leaf.UUID)
	require.NoError(t, err)
	require.Len(t, crumbs, 3)
	assert.Equal(t, "top", crumbs[0].Name)
	assert.Equal(t, "mid", crumbs[1].Name)
	assert.Equal(t, "leaf", crumbs[2].Name)
}

func TestBreadcrumbsMissingParentTruncatesChain(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	ghost := uuid.New()
	folder := env.mustFolder(t, "orphan", nil)
	require.NoError(t, env.entityRepo.Update(folder.UUID, func(e *domain.Entity) {
		e.ParentID = &ghost
	}))

	crumbs, err := env.hierarchy.Breadcrumbs(ctx, folder.UUID)
	require.NoError(t, err)
	require.Len(t, crumbs, 1)
	assert.Equal(t, "orphan", crumbs[0].Name)
}
