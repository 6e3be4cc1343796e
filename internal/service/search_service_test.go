package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/google/uuid"

	"github.com/anirban1809/simplifile/internal/domain"
)

func seedSearchEntities(t *testing.T, env *testEnv) {
	t.Helper()
	uploads := []domain.EntityUpload{
		{Name: "vacation.jpg", MIMEType: "image/jpeg", SizeBytes: 2000},
		{Name: "report.pdf", MIMEType: "application/pdf", SizeBytes: 500},
		{Name: "backup.zip", MIMEType: "application/zip", SizeBytes: 9000},
		{Name: "notes.txt", MIMEType: "text/plain", SizeBytes: 10},
	}
	_, err := env.entities.Ingest(context.Background(), uploads, nil, testUser, testEmail)
	require.NoError(t, err)
}

func TestSearchByName(t *testing.T) {
	env := newTestEnv(t)
	seedSearchEntities(t, env)

	results := env.search.Search(context.Background(), testUser, "REPORT", SearchFilters{})
	require.Len(t, results, 1)
	assert.Equal(t, "report.pdf", results[0].Name)
}

func TestSearchByTypeGroups(t *testing.T) {
	env := newTestEnv(t)
	seedSearchEntities(t, env)
	ctx := context.Background()

	images := env.search.Search(ctx, testUser, "", SearchFilters{Types: []string{"images"}})
	require.Len(t, images, 1)
	assert.Equal(t, "vacation.jpg", images[0].Name)

	documents := env.search.Search(ctx, testUser, "", SearchFilters{Types: []string{"documents"}})
	assert.Len(t, documents, 2) // pdf и text/plain

	archives := env.search.Search(ctx, testUser, "", SearchFilters{Types: []string{"archives"}})
	require.Len(t, archives, 1)
	assert.Equal(t, "backup.zip", archives[0].Name)
}

func TestSearchBySizeRange(t *testing.T) {
	env := newTestEnv(t)
	seedSearchEntities(t, env)

	results := env.search.Search(context.Background(), testUser, "", SearchFilters{MinSize: 1000, MaxSize: 5000})
	require.Len(t, results, 1)
	assert.Equal(t, "vacation.jpg", results[0].Name)
}

func TestSearchByModifiedRange(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	old := time.Now().Add(-48 * time.Hour)
	uploads := []domain.EntityUpload{
		{Name: "old.txt", MIMEType: "text/plain", SizeBytes: 10, LastModified: old},
		{Name: "fresh.txt", MIMEType: "text/plain", SizeBytes: 10},
	}
	_, err := env.entities.Ingest(ctx, uploads, nil, testUser, testEmail)
	require.NoError(t, err)

	cutoff := time.Now().Add(-24 * time.Hour)
	results := env.search.Search(ctx, testUser, "", SearchFilters{ModifiedAfter: &cutoff})
	require.Len(t, results, 1)
	assert.Equal(t, "fresh.txt", results[0].Name)
}

func TestSearchScopedToOwner(t *testing.T) {
	env := newTestEnv(t)
	seedSearchEntities(t, env)

	foreign := domain.Entity{
		UUID:     uuid.New(),
		Name:     "foreign-report.pdf",
		MIMEType: "application/pdf",
		OwnerID:  "someone-else",
	}
	env.entityRepo.Insert(&foreign)

	results := env.search.Search(context.Background(), testUser, "report", SearchFilters{})
	require.Len(t, results, 1)
	assert.Equal(t, "report.pdf", results[0].Name)
}
