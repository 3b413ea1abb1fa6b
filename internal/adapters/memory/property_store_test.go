package memory

import (
	"context"
	"testing"

	"portfolio-service/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPropertyStore_Lifecycle(t *testing.T) {
	ctx := context.Background()
	s := NewPropertyStore(domain.Property{ID: 5, Address: "seed"})

	created, err := s.Insert(ctx, domain.PropertyInput{Address: "new"})
	require.NoError(t, err)
	assert.Equal(t, int64(6), created[0].ID)

	updated, err := s.Update(ctx, 5, domain.PropertyInput{Address: "seed updated"})
	require.NoError(t, err)
	assert.Equal(t, "seed updated", updated[0].Address)

	missing, err := s.Update(ctx, 99, domain.PropertyInput{})
	require.NoError(t, err)
	assert.Empty(t, missing)

	require.NoError(t, s.Delete(ctx, 6))
	all, err := s.SelectAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, int64(5), all[0].ID)
}

func TestPropertyStore_HonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewPropertyStore().SelectAll(ctx)

	assert.ErrorIs(t, err, context.Canceled)
}
