package repository

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testIdentity = StaticIdentity{
	Identity: Identity{ID: "user-1", Email: "user-1@test"},
	Present:  true,
}

func testCarFields() CarFields {
	return CarFields{
		Manufacturer: "Ford",
		Model:        "Focus",
		Year:         2020,
		Mileage:      15000,
		Condition:    "Used",
		Description:  "well kept",
		Price:        12000.0,
	}
}

func localImages(names ...string) []ImageHandle {
	handles := make([]ImageHandle, 0, len(names))
	for _, name := range names {
		handles = append(handles, LocalImage(name, bytes.NewReader([]byte(name)), int64(len(name))))
	}
	return handles
}

func TestCarRepositoryCreate(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	blobs := NewMemoryBlobs()
	repo := NewCarRepository(store, blobs, testIdentity)

	id, err := repo.Create(ctx, testCarFields(), localImages("a.jpg", "b.jpg", "c.jpg"))
	require.NoError(t, err)
	require.NotEmpty(t, id)

	car, found, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	require.True(t, found)

	assert.Equal(t, "Ford", car.Manufacturer)
	assert.Equal(t, "Focus", car.Model)
	assert.Equal(t, 2020, car.Year)
	assert.Equal(t, 15000, car.Mileage)
	assert.Equal(t, 12000.0, car.Price)
	assert.Equal(t, "user-1", car.OwnerID)
	assert.Greater(t, car.CreatedAt, int64(0))

	// one URL per input image, upload order preserved
	require.Len(t, car.ImageURLs, 3)
	assert.True(t, strings.HasSuffix(car.ImageURLs[0], "_0.jpg"))
	assert.True(t, strings.HasSuffix(car.ImageURLs[1], "_1.jpg"))
	assert.True(t, strings.HasSuffix(car.ImageURLs[2], "_2.jpg"))
	for _, url := range car.ImageURLs {
		assert.Contains(t, url, "car_images/user-1/")
		assert.True(t, blobs.Stored(url))
	}
}

func TestCarRepositoryCreateUnauthenticated(t *testing.T) {
	repo := NewCarRepository(NewMemoryStore(), NewMemoryBlobs(), StaticIdentity{})

	_, err := repo.Create(context.Background(), testCarFields(), localImages("a.jpg"))
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestCarRepositoryUpdateReconciliation(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	blobs := NewMemoryBlobs()
	repo := NewCarRepository(store, blobs, testIdentity)

	id, err := repo.Create(ctx, testCarFields(), localImages("a.jpg", "b.jpg", "c.jpg"))
	require.NoError(t, err)
	before, _, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	require.Len(t, before.ImageURLs, 3)

	fields := testCarFields()
	fields.Price = 11000.0
	handles := []ImageHandle{
		RemoteImage(before.ImageURLs[2]),
		LocalImage("new.jpg", bytes.NewReader([]byte("new")), 3),
	}
	ok, err := repo.Update(ctx, id, fields, handles)
	require.NoError(t, err)
	require.True(t, ok)

	after, _, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 11000.0, after.Price)

	// stored list is kept URLs followed by the fresh uploads
	require.Len(t, after.ImageURLs, 2)
	assert.Equal(t, before.ImageURLs[2], after.ImageURLs[0])
	assert.NotContains(t, before.ImageURLs, after.ImageURLs[1])
	assert.True(t, blobs.Stored(after.ImageURLs[1]))

	// every dropped URL got exactly one delete attempt
	assert.ElementsMatch(t, []string{before.ImageURLs[0], before.ImageURLs[1]}, blobs.Deleted())
	assert.False(t, blobs.Stored(before.ImageURLs[0]))
	assert.False(t, blobs.Stored(before.ImageURLs[1]))
}

func TestCarRepositoryUpdateSwallowsMissingBlob(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	blobs := NewMemoryBlobs()
	repo := NewCarRepository(store, blobs, testIdentity)

	id, err := repo.Create(ctx, testCarFields(), localImages("a.jpg", "b.jpg"))
	require.NoError(t, err)
	before, _, err := repo.GetByID(ctx, id)
	require.NoError(t, err)

	// the first image disappears behind the repository's back
	require.NoError(t, blobs.DeleteFile(ctx, before.ImageURLs[0]))

	ok, err := repo.Update(ctx, id, testCarFields(), []ImageHandle{RemoteImage(before.ImageURLs[1])})
	require.NoError(t, err)
	assert.True(t, ok)

	after, _, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []string{before.ImageURLs[1]}, after.ImageURLs)
}

func TestCarRepositoryUpdateMissingListing(t *testing.T) {
	repo := NewCarRepository(NewMemoryStore(), NewMemoryBlobs(), testIdentity)

	ok, err := repo.Update(context.Background(), "no-such-id", testCarFields(), nil)
	assert.False(t, ok)
	assert.ErrorIs(t, err, ErrNotFound)
}

type failingWrites struct {
	DocumentStore
}

func (f failingWrites) Update(context.Context, string, string, map[string]any) error {
	return errors.New("write refused")
}

func TestCarRepositoryUpdateWriteFailure(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	blobs := NewMemoryBlobs()
	repo := NewCarRepository(store, blobs, testIdentity)

	id, err := repo.Create(ctx, testCarFields(), localImages("a.jpg"))
	require.NoError(t, err)

	broken := NewCarRepository(failingWrites{store}, blobs, testIdentity)
	before, _, err := broken.GetByID(ctx, id)
	require.NoError(t, err)

	ok, err := broken.Update(ctx, id, testCarFields(), []ImageHandle{RemoteImage(before.ImageURLs[0])})
	assert.False(t, ok)
	assert.Error(t, err)
}

func TestCarRepositoryDelete(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	repo := NewCarRepository(store, NewMemoryBlobs(), testIdentity)

	id, err := repo.Create(ctx, testCarFields(), localImages("a.jpg"))
	require.NoError(t, err)

	cars, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, cars, 1)
	assert.Equal(t, id, cars[0].ID)

	require.NoError(t, repo.Delete(ctx, id))

	cars, err = repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, cars)

	// deleting a listing that is already gone is absorbed by the store
	assert.NoError(t, repo.Delete(ctx, id))
}
