package suggestions

import (
	"context"
	"testing"

	"item-catalog/core/database"
	"item-catalog/feature/items/merge"
	"item-catalog/feature/items/models"
	"item-catalog/feature/items/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupService(t *testing.T) (*Service, string) {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)

	st := store.New(db)
	ctx := context.Background()
	require.NoError(t, st.EnsureReady(ctx))

	item := merge.NewRecord(models.Observation{
		Name: "a rusty dagger", Keywords: "dagger rusty", Type: "weapon",
		Flags: []string{}, Stats: models.Stats{Weight: models.Int(3)},
	})
	require.NoError(t, st.Upsert(ctx, &item))

	svc := NewService(db, st, zap.NewNop())
	require.NoError(t, svc.EnsureReady(ctx))
	return svc, item.ID
}

func TestService_Create(t *testing.T) {
	svc, itemID := setupService(t)
	ctx := context.Background()

	sug, err := svc.Create(ctx, CreateRequest{ItemID: " " + itemID + " ", Note: "weight is 4", Proposer: "Alice", Reason: "checked twice"})
	require.NoError(t, err)
	assert.NotEmpty(t, sug.ID)
	assert.Equal(t, itemID, sug.ItemID)
	assert.Equal(t, "weight is 4\n\nReason: checked twice", sug.Note)
	assert.Equal(t, StatusPending, sug.Status)
	require.NotNil(t, sug.Proposer)
	assert.Equal(t, "Alice", *sug.Proposer)

	anon, err := svc.Create(ctx, CreateRequest{ItemID: itemID, Note: "it glows"})
	require.NoError(t, err)
	assert.Nil(t, anon.Proposer)
	assert.Equal(t, "it glows", anon.Note)

	list, err := svc.ListForItem(ctx, itemID)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	list, err = svc.ListForItem(ctx, "other")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestService_CreateValidation(t *testing.T) {
	svc, itemID := setupService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateRequest{ItemID: itemID, Note: "  "})
	assert.ErrorIs(t, err, ErrInvalidSuggestion)

	_, err = svc.Create(ctx, CreateRequest{Note: "orphan"})
	assert.ErrorIs(t, err, ErrInvalidSuggestion)

	_, err = svc.Create(ctx, CreateRequest{ItemID: "missing", Note: "orphan"})
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestService_SetStatus(t *testing.T) {
	svc, itemID := setupService(t)
	ctx := context.Background()

	sug, err := svc.Create(ctx, CreateRequest{ItemID: itemID, Note: "weight is 4"})
	require.NoError(t, err)

	updated, err := svc.SetStatus(ctx, sug.ID, StatusApproved)
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, updated.Status)

	pending, err := svc.ListForItem(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, pending)

	_, err = svc.SetStatus(ctx, sug.ID, "merged")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = svc.SetStatus(ctx, "missing", StatusRejected)
	assert.ErrorIs(t, err, ErrNotFound)
}
