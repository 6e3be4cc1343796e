package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anirban1809/simplifile/internal/domain"
)

func TestAddCommentAndListTree(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	file := env.mustFile(t, "a.txt", nil)

	root, err := env.comments.Add(ctx, file.UUID, nil, "first", testUser, testEmail)
	require.NoError(t, err)

	reply, err := env.comments.Add(ctx, file.UUID, &root.ID, "reply", testUser, testEmail)
	require.NoError(t, err)

	nested, err := env.comments.Add(ctx, file.UUID, &reply.ID, "nested", testUser, testEmail)
	require.NoError(t, err)

	tree, err := env.comments.List(ctx, file.UUID, testUser, testEmail)
	require.NoError(t, err)
	require.Len(t, tree, 1)
	require.Len(t, tree[0].Replies, 1)
	require.Len(t, tree[0].Replies[0].Replies, 1)
	assert.Equal(t, nested.ID, tree[0].Replies[0].Replies[0].ID)
}

func TestAddCommentRejectsEmptyContent(t *testing.T) {
	env := newTestEnv(t)

	file := env.mustFile(t, "a.txt", nil)
	_, err := env.comments.Add(context.Background(), file.UUID, nil, "   ", testUser, testEmail)
	require.ErrorIs(t, err, domain.ErrInvalidName)
}

func TestAddCommentMissingParent(t *testing.T) {
	env := newTestEnv(t)

	file := env.mustFile(t, "a.txt", nil)
	ghost := uuid.New()
	_, err := env.comments.Add(context.Background(), file.UUID, &ghost, "orphan", testUser, testEmail)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListCommentsEmptyIsNotNil(t *testing.T) {
	env := newTestEnv(t)

	file := env.mustFile(t, "a.txt", nil)
	tree, err := env.comments.List(context.Background(), file.UUID, testUser, testEmail)
	require.NoError(t, err)
	assert.NotNil(t, tree)
	assert.Empty(t, tree)
}

func TestCommentsRemovedWithEntity(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	file := env.mustFile(t, "a.txt", nil)
	_, err := env.comments.Add(ctx, file.UUID, nil, "doomed", testUser, testEmail)
	require.NoError(t, err)

	_, err = env.entities.Delete(ctx, []uuid.UUID{file.UUID}, testUser)
	require.NoError(t, err)

	_, err = env.comments.List(ctx, file.UUID, testUser, testEmail)
	require.ErrorIs(t, err, domain.ErrNotFound)
}
