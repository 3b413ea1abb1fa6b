package portfolio

import (
	"sync"
	"testing"

	"portfolio-service/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListState_ResetMarksLoaded(t *testing.T) {
	s := NewListState()
	assert.False(t, s.Loaded())

	s.Reset([]domain.Property{property(1, "a")})

	assert.True(t, s.Loaded())
	assert.Equal(t, 1, s.Len())
}

func TestListState_AddAppendsWithoutDedup(t *testing.T) {
	s := NewListState()
	s.Add(property(1, "a"))
	s.Add(property(1, "a again"))

	assert.Equal(t, 2, s.Len())
}

func TestListState_ReplaceIsIdempotent(t *testing.T) {
	s := NewListState()
	s.Reset([]domain.Property{property(1, "a"), property(2, "b")})
	updated := property(2, "b updated")

	s.Replace(updated)
	once := s.Snapshot()
	s.Replace(updated)

	assert.Equal(t, once, s.Snapshot())
	got, ok := s.Find(2)
	require.True(t, ok)
	assert.Equal(t, "b updated", got.Address)
}

func TestListState_ReplaceUnknownIDIsNoop(t *testing.T) {
	s := NewListState()
	s.Reset([]domain.Property{property(1, "a")})

	s.Replace(property(42, "ghost"))

	assert.Equal(t, []int64{1}, ids(s.Snapshot()))
}

func TestListState_Remove(t *testing.T) {
	s := NewListState()
	s.Reset([]domain.Property{property(1, "a"), property(2, "b"), property(3, "c")})

	s.Remove(2)
	s.Remove(99)

	assert.Equal(t, []int64{1, 3}, ids(s.Snapshot()))
	_, ok := s.Find(2)
	assert.False(t, ok)
}

func TestListState_SnapshotIsCopy(t *testing.T) {
	s := NewListState()
	s.Reset([]domain.Property{property(1, "a")})

	snap := s.Snapshot()
	snap[0].Address = "changed"

	got, _ := s.Find(1)
	assert.Equal(t, "a", got.Address)
}

func TestListState_ConcurrentAccess(t *testing.T) {
	s := NewListState()
	var wg sync.WaitGroup
	for i := 1; i <= 50; i++ {
		wg.Add(2)
		go func(id int64) {
			defer wg.Done()
			s.Add(property(id, "x"))
		}(int64(i))
		go func() {
			defer wg.Done()
			_ = Filter(s.Snapshot(), "x")
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, s.Len())
}
