package workflow

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carscout/src/repository"
)

func testDealershipInput() DealershipInput {
	return DealershipInput{
		Name:        "Downtown Motors",
		Address:     "1 Main St",
		PhoneNumber: "555-0100",
		Email:       "sales@downtown.test",
	}
}

func newDealershipWorkflow(t *testing.T, isBusiness bool) *DealershipWorkflow {
	t.Helper()
	store := repository.NewMemoryStore()
	blobs := repository.NewMemoryBlobs()
	users := repository.NewUserRepository(store)
	require.NoError(t, users.Create(context.Background(), "user-1", "user-1@test", "hash", isBusiness))
	repo := repository.NewDealershipRepository(store, blobs, testIdentity, users)
	return NewDealershipWorkflow(context.Background(), repo, testIdentity)
}

func TestDealershipWorkflowAdd(t *testing.T) {
	wf := newDealershipWorkflow(t, true)
	defer wf.Close()

	images := []repository.ImageHandle{
		repository.LocalImage("front.jpg", bytes.NewReader([]byte("front")), 5),
	}
	wf.Add(testDealershipInput(), images)

	status, ok := wf.LastStatus.Get()
	require.True(t, ok)
	require.True(t, status.Ok)
	require.NotEmpty(t, status.ID)

	wf.LoadAll()
	items, ok := wf.Items.Get()
	require.True(t, ok)
	require.Len(t, items, 1)
	assert.Equal(t, "Downtown Motors", items[0].Name)
	assert.Equal(t, "user-1", items[0].OwnerID)
}

func TestDealershipWorkflowAddUnauthorized(t *testing.T) {
	wf := newDealershipWorkflow(t, false)
	defer wf.Close()

	wf.Add(testDealershipInput(), nil)

	status, ok := wf.LastStatus.Get()
	require.True(t, ok)
	assert.False(t, status.Ok)
	assert.Equal(t, StatusUnauthorized, status.Kind)
}

func TestDealershipWorkflowAddValidation(t *testing.T) {
	wf := newDealershipWorkflow(t, true)
	defer wf.Close()

	in := testDealershipInput()
	in.PhoneNumber = ""
	wf.Add(in, nil)

	status, ok := wf.LastStatus.Get()
	require.True(t, ok)
	assert.Equal(t, StatusValidation, status.Kind)
	assert.Equal(t, "phone number is required", status.Message)
}

func TestDealershipWorkflowUpdateReloadsCurrent(t *testing.T) {
	wf := newDealershipWorkflow(t, true)
	defer wf.Close()

	wf.Add(testDealershipInput(), nil)
	status, _ := wf.LastStatus.Get()
	require.True(t, status.Ok)
	id := status.ID

	in := testDealershipInput()
	in.Name = "Uptown Motors"
	wf.Update(id, in, nil)

	status, _ = wf.LastStatus.Get()
	require.True(t, status.Ok)
	assert.Equal(t, "dealership updated", status.Info)

	current, ok := wf.Current.Get()
	require.True(t, ok)
	assert.Equal(t, "Uptown Motors", current.Name)
}

func TestDealershipWorkflowUpdateMissing(t *testing.T) {
	wf := newDealershipWorkflow(t, true)
	defer wf.Close()

	wf.Update("no-such-id", testDealershipInput(), nil)

	status, ok := wf.LastStatus.Get()
	require.True(t, ok)
	assert.Equal(t, StatusNotFound, status.Kind)
}

func TestDealershipWorkflowLoadOneMissing(t *testing.T) {
	wf := newDealershipWorkflow(t, true)
	defer wf.Close()

	wf.LoadOne("no-such-id")

	status, ok := wf.LastStatus.Get()
	require.True(t, ok)
	assert.Equal(t, StatusNotFound, status.Kind)
	_, ok = wf.Current.Get()
	assert.False(t, ok)
}
