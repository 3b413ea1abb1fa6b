package dialog

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"portfolio-service/internal/core/domain"
	"portfolio-service/internal/core/portfolio"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_OpenGetClose(t *testing.T) {
	r, err := NewRegistry(&fakeWriter{}, nil, portfolio.NewListState())
	require.NoError(t, err)

	add, err := r.OpenAdd()
	require.NoError(t, err)
	edit, err := r.OpenEdit(json.RawMessage(`{"id":3}`))
	require.NoError(t, err)
	assert.NotEqual(t, add.ID(), edit.ID())
	assert.Equal(t, 2, r.Len())

	got, err := r.Get(edit.ID())
	require.NoError(t, err)
	assert.Equal(t, KindEdit, got.Kind())

	require.NoError(t, r.Close(add.ID()))
	_, err = r.Get(add.ID())
	assert.ErrorIs(t, err, domain.ErrDialogNotFound)
	assert.Equal(t, StateClosed, add.Snapshot().State)
}

func TestRegistry_CloseUnknown(t *testing.T) {
	r, err := NewRegistry(&fakeWriter{}, nil, portfolio.NewListState())
	require.NoError(t, err)

	assert.ErrorIs(t, r.Close("missing"), domain.ErrDialogNotFound)
}

func TestRegistry_EvictsOldestIdle(t *testing.T) {
	r, err := NewRegistry(&fakeWriter{}, nil, portfolio.NewListState())
	require.NoError(t, err)
	r.maxOpen = 2
	n := 0
	r.newID = func() string { n++; return fmt.Sprintf("d%d", n) }

	_, _ = r.OpenAdd()
	_, _ = r.OpenDelete(domain.Property{ID: 1})
	_, _ = r.OpenAdd()

	assert.Equal(t, 2, r.Len())
	_, err = r.Get("d1")
	assert.ErrorIs(t, err, domain.ErrDialogNotFound)
}

func TestRegistry_DoesNotEvictSubmitting(t *testing.T) {
	writer := &fakeWriter{gate: make(chan struct{}), started: make(chan struct{})}
	r, err := NewRegistry(writer, nil, portfolio.NewListState())
	require.NoError(t, err)
	r.maxOpen = 1

	busy, err := r.OpenAdd()
	require.NoError(t, err)
	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = busy.Submit(context.Background(), sampleForm())
	}()
	<-writer.started

	fresh, err := r.OpenAdd()
	require.NoError(t, err)
	_, err = r.Get(busy.ID())
	assert.NoError(t, err)
	_, err = r.Get(fresh.ID())
	assert.NoError(t, err, "newly opened dialog must stay reachable")
	assert.Equal(t, 2, r.Len())

	close(writer.gate)
	<-done
}
