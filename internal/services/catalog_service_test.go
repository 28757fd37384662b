package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ceyloncircuit/internal/models/db_models"
)

type fakeDestinationRepo struct {
	rows []db_models.Destination
}

func (f *fakeDestinationRepo) Create(_ context.Context, d *db_models.Destination) (uuid.UUID, error) {
	f.rows = append(f.rows, *d)
	return d.ID, nil
}

func (f *fakeDestinationRepo) Update(_ context.Context, d *db_models.Destination) error {
	for i, row := range f.rows {
		if row.ID == d.ID {
			f.rows[i] = *d
			return nil
		}
	}
	return nil
}

func (f *fakeDestinationRepo) Delete(_ context.Context, _ uuid.UUID) error {
	return nil
}

func (f *fakeDestinationRepo) GetByID(_ context.Context, id string) (*db_models.Destination, error) {
	for _, row := range f.rows {
		if row.ID.String() == id {
			found := row
			return &found, nil
		}
	}
	return nil, nil
}

func (f *fakeDestinationRepo) List(_ context.Context) ([]db_models.Destination, error) {
	return f.rows, nil
}

func TestCatalogFallbackWithoutRepositories(t *testing.T) {
	catalog := NewCatalogService(nil, nil)
	ctx := context.Background()

	dests := catalog.Destinations(ctx)
	require.Len(t, dests, 6)

	view, ok := catalog.DestinationByID(ctx, "galle-fort")
	require.True(t, ok)
	assert.Equal(t, "Galle Fort", view.Name)

	stay, ok := catalog.AccommodationByID(ctx, "colombo-city-hotel")
	require.True(t, ok)
	assert.Equal(t, "Colombo City Hotel", stay.Name)

	_, ok = catalog.DestinationByID(ctx, "atlantis")
	assert.False(t, ok)
}

func TestCatalogPrefersRepositoryRows(t *testing.T) {
	id := uuid.New()
	repo := &fakeDestinationRepo{rows: []db_models.Destination{{
		BaseModel: db_models.BaseModel{ID: id},
		Name:      "Knuckles Range",
		Category:  "Nature",
		District:  "Matale",
		Province:  "Central",
	}}}
	catalog := NewCatalogService(repo, nil)
	ctx := context.Background()

	dests := catalog.Destinations(ctx)
	require.Len(t, dests, 1)
	assert.Equal(t, "Knuckles Range", dests[0].Name)

	view, ok := catalog.DestinationByID(ctx, id.String())
	require.True(t, ok)
	assert.Equal(t, "Knuckles Range", view.Name)
}

func TestCatalogEmptyStoreServesFallback(t *testing.T) {
	catalog := NewCatalogService(&fakeDestinationRepo{}, nil)
	ctx := context.Background()

	dests := catalog.Destinations(ctx)
	assert.Len(t, dests, 6)

	// The store has no row for the slug, so the ByID lookup resolves it
	// against the fallback list.
	view, ok := catalog.DestinationByID(ctx, "ella")
	require.True(t, ok)
	assert.Equal(t, "Ella", view.Name)
}
