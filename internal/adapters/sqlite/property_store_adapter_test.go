package sqlite

import (
	"context"
	"testing"

	"portfolio-service/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *SQLiteStorageAdapter {
	t.Helper()
	store, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSQLiteStore_InsertAssignsIDs(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	first, err := store.Insert(ctx, domain.PropertyInput{Address: "Oak", Type: "House", Bedrooms: domain.IntPtr(3), Occupied: "No"})
	require.NoError(t, err)
	second, err := store.Insert(ctx, domain.PropertyInput{Address: "Elm", Type: "Flat", Occupied: "Yes"})
	require.NoError(t, err)

	require.Len(t, first, 1)
	require.Len(t, second, 1)
	assert.Less(t, first[0].ID, second[0].ID)
	assert.Nil(t, second[0].Bedrooms)

	all, err := store.SelectAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{first[0].ID, second[0].ID}, []int64{all[0].ID, all[1].ID})
}

func TestSQLiteStore_UpdateWritesNulls(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	rows, err := store.Insert(ctx, domain.PropertyInput{Address: "Oak", Bedrooms: domain.IntPtr(3), Bathrooms: domain.FloatPtr(2)})
	require.NoError(t, err)
	id := rows[0].ID

	updated, err := store.Update(ctx, id, domain.PropertyInput{Address: "Oak Updated", Occupied: "Yes"})

	require.NoError(t, err)
	require.Len(t, updated, 1)
	assert.Equal(t, "Oak Updated", updated[0].Address)
	assert.Nil(t, updated[0].Bedrooms)
	assert.Nil(t, updated[0].Bathrooms)
	assert.Equal(t, domain.OccupiedYes, updated[0].Occupied)
}

func TestSQLiteStore_UpdateUnknownIDReturnsNoRows(t *testing.T) {
	store := openTestStore(t)

	rows, err := store.Update(context.Background(), 404, domain.PropertyInput{Address: "x"})

	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestSQLiteStore_Delete(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	rows, err := store.Insert(ctx, domain.PropertyInput{Address: "Oak"})
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, rows[0].ID))
	require.NoError(t, store.Delete(ctx, rows[0].ID))

	all, err := store.SelectAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}
