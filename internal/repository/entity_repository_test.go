package repository

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anirban1809/simplifile/internal/domain"
)

func newEntity(name string, parentID *uuid.UUID) *domain.Entity {
	return &domain.Entity{
		UUID:       uuid.New(),
		Name:       name,
		MIMEType:   "text/plain",
		OwnerID:    "owner-1",
		ParentID:   parentID,
		SharedWith: []string{},
	}
}

func TestListPreservesInsertionOrder(t *testing.T) {
	repo := NewEntityRepository()

	repo.Insert(newEntity("first", nil))
	repo.Insert(newEntity("second", nil))
	repo.Insert(newEntity("third", nil))

	list := repo.List()
	require.Len(t, list, 3)
	assert.Equal(t, "first", list[0].Name)
	assert.Equal(t, "second", list[1].Name)
	assert.Equal(t, "third", list[2].Name)
}

func TestGetReturnsCopy(t *testing.T) {
	repo := NewEntityRepository()

	e := newEntity("original", nil)
	repo.Insert(e)

	got, err := repo.Get(e.UUID)
	require.NoError(t, err)
	got.Name = "mutated"
	got.SharedWith = append(got.SharedWith, "x@example.com")

	again, err := repo.Get(e.UUID)
	require.NoError(t, err)
	assert.Equal(t, "original", again.Name)
	assert.Empty(t, again.SharedWith)
}

func TestGetMissing(t *testing.T) {
	repo := NewEntityRepository()
	_, err := repo.Get(uuid.New())
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateAppliesPatch(t *testing.T) {
	repo := NewEntityRepository()

	e := newEntity("before", nil)
	repo.Insert(e)

	require.NoError(t, repo.Update(e.UUID, func(e *domain.Entity) {
		e.Name = "after"
	}))

	got, err := repo.Get(e.UUID)
	require.NoError(t, err)
	assert.Equal(t, "after", got.Name)
}

func TestRemoveAllSkipsMissing(t *testing.T) {
	repo := NewEntityRepository()

	a := newEntity("a", nil)
	b := newEntity("b", nil)
	repo.Insert(a)
	repo.Insert(b)

	removed := repo.RemoveAll([]uuid.UUID{a.UUID, uuid.New(), a.UUID})
	assert.Equal(t, 1, removed)
	assert.Len(t, repo.List(), 1)
}

func TestByParentRootAndFolder(t *testing.T) {
	repo := NewEntityRepository()

	folder := newEntity("folder", nil)
	folder.IsFolder = true
	folder.MIMEType = domain.MIMETypeFolder
	repo.Insert(folder)

	child := newEntity("child", &folder.UUID)
	repo.Insert(child)
	repo.Insert(newEntity("root-file", nil))

	children := repo.ByParent(&folder.UUID)
	require.Len(t, children, 1)
	assert.Equal(t, "child", children[0].Name)

	roots := repo.ByParent(nil)
	require.Len(t, roots, 2)
	assert.Equal(t, "folder", roots[0].Name)
	assert.Equal(t, "root-file", roots[1].Name)
}

func TestByOwner(t *testing.T) {
	repo := NewEntityRepository()

	mine := newEntity("mine", nil)
	repo.Insert(mine)

	other := newEntity("other", nil)
	other.OwnerID = "owner-2"
	repo.Insert(other)

	list := repo.ByOwner("owner-1")
	require.Len(t, list, 1)
	assert.Equal(t, "mine", list[0].Name)
}
