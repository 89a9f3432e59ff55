package repository

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDealershipFields() DealershipFields {
	return DealershipFields{
		Name:        "Downtown Motors",
		Address:     "1 Main St",
		PhoneNumber: "555-0100",
		Email:       "sales@downtown.test",
	}
}

func newDealershipFixture(t *testing.T, isBusiness bool) (*DealershipRepository, *MemoryBlobs) {
	t.Helper()
	store := NewMemoryStore()
	blobs := NewMemoryBlobs()
	users := NewUserRepository(store)
	require.NoError(t, users.Create(context.Background(), "user-1", "user-1@test", "hash", isBusiness))
	return NewDealershipRepository(store, blobs, testIdentity, users), blobs
}

func TestDealershipCreateRequiresBusinessAccount(t *testing.T) {
	t.Run("flag false", func(t *testing.T) {
		repo, _ := newDealershipFixture(t, false)
		_, err := repo.Create(context.Background(), testDealershipFields(), nil)
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("no user record", func(t *testing.T) {
		store := NewMemoryStore()
		repo := NewDealershipRepository(store, NewMemoryBlobs(), testIdentity, NewUserRepository(store))
		_, err := repo.Create(context.Background(), testDealershipFields(), nil)
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("no identity", func(t *testing.T) {
		store := NewMemoryStore()
		repo := NewDealershipRepository(store, NewMemoryBlobs(), StaticIdentity{}, NewUserRepository(store))
		_, err := repo.Create(context.Background(), testDealershipFields(), nil)
		assert.ErrorIs(t, err, ErrUnauthenticated)
	})
}

func TestDealershipCreate(t *testing.T) {
	ctx := context.Background()
	repo, blobs := newDealershipFixture(t, true)

	images := []ImageHandle{LocalImage("front.jpg", bytes.NewReader([]byte("front")), 5)}
	id, err := repo.Create(ctx, testDealershipFields(), images)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	dealership, found, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Downtown Motors", dealership.Name)
	assert.Equal(t, "user-1", dealership.OwnerID)
	require.Len(t, dealership.ImageURLs, 1)
	assert.True(t, blobs.Stored(dealership.ImageURLs[0]))
}

func TestDealershipEditReconcilesImages(t *testing.T) {
	ctx := context.Background()
	repo, blobs := newDealershipFixture(t, true)

	images := []ImageHandle{
		LocalImage("front.jpg", bytes.NewReader([]byte("front")), 5),
		LocalImage("lot.jpg", bytes.NewReader([]byte("lot")), 3),
	}
	id, err := repo.Create(ctx, testDealershipFields(), images)
	require.NoError(t, err)
	before, _, err := repo.GetByID(ctx, id)
	require.NoError(t, err)

	fields := testDealershipFields()
	fields.Name = "Uptown Motors"
	handles := []ImageHandle{
		RemoteImage(before.ImageURLs[1]),
		LocalImage("sign.jpg", bytes.NewReader([]byte("sign")), 4),
	}
	require.NoError(t, repo.Edit(ctx, id, fields, handles))

	after, _, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Uptown Motors", after.Name)
	require.Len(t, after.ImageURLs, 2)
	assert.Equal(t, before.ImageURLs[1], after.ImageURLs[0])
	assert.ElementsMatch(t, []string{before.ImageURLs[0]}, blobs.Deleted())
}

func TestDealershipEditMissing(t *testing.T) {
	repo, _ := newDealershipFixture(t, true)
	err := repo.Edit(context.Background(), "no-such-id", testDealershipFields(), nil)
	assert.ErrorIs(t, err, ErrNotFound)
}
