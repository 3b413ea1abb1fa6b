package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"portfolio-service/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// spyStore записывает вызовы и возвращает заранее заданные ответы.
type spyStore struct {
	mu        sync.Mutex
	calls     []string
	rows      []domain.Property
	err       error
	lastInput domain.PropertyInput
	lastID    int64
}

func (s *spyStore) record(call string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, call)
}

func (s *spyStore) SelectAll(context.Context) ([]domain.Property, error) {
	s.record("select")
	return s.rows, s.err
}

func (s *spyStore) Insert(_ context.Context, in domain.PropertyInput) ([]domain.Property, error) {
	s.record("insert")
	s.lastInput = in
	return s.rows, s.err
}

func (s *spyStore) Update(_ context.Context, id int64, in domain.PropertyInput) ([]domain.Property, error) {
	s.record("update")
	s.lastID, s.lastInput = id, in
	return s.rows, s.err
}

func (s *spyStore) Delete(_ context.Context, id int64) error {
	s.record("delete")
	s.lastID = id
	return s.err
}

type recordingEvents struct {
	events []domain.PropertyChangedEvent
	err    error
}

func (r *recordingEvents) PublishPropertyChanged(_ context.Context, e domain.PropertyChangedEvent) error {
	r.events = append(r.events, e)
	return r.err
}

func validForm() domain.PropertyForm {
	return domain.PropertyForm{
		Address:   "1 Oak Lane",
		Type:      "House",
		Bedrooms:  "3",
		Bathrooms: "1.5",
		Valuation: "£250,000",
		Occupied:  "No",
	}
}

func newRepo(t *testing.T, store *spyStore, events *recordingEvents) *PropertyRepository {
	t.Helper()
	var repo *PropertyRepository
	var err error
	if events == nil {
		repo, err = NewPropertyRepository(store, nil)
	} else {
		repo, err = NewPropertyRepository(store, events)
	}
	require.NoError(t, err)
	return repo
}

func TestPropertyRepository_CreateReturnsServerRecord(t *testing.T) {
	created := domain.Property{ID: 11, Address: "1 Oak Lane"}
	store := &spyStore{rows: []domain.Property{created}}
	events := &recordingEvents{}
	repo := newRepo(t, store, events)

	got, err := repo.Create(context.Background(), validForm())

	require.NoError(t, err)
	assert.Equal(t, created, got)
	require.NotNil(t, store.lastInput.Bedrooms)
	assert.Equal(t, 3, *store.lastInput.Bedrooms)
	require.Len(t, events.events, 1)
	assert.Equal(t, domain.ChangeCreated, events.events[0].Type)
	assert.Equal(t, int64(11), events.events[0].PropertyID)
}

func TestPropertyRepository_CreateSendsNullForEmptyBedrooms(t *testing.T) {
	store := &spyStore{rows: []domain.Property{{ID: 1}}}
	repo := newRepo(t, store, nil)
	form := validForm()
	form.Bedrooms = ""

	_, err := repo.Create(context.Background(), form)

	require.NoError(t, err)
	assert.Nil(t, store.lastInput.Bedrooms)
}

func TestPropertyRepository_CreateWithNoRowsIsWriteError(t *testing.T) {
	repo := newRepo(t, &spyStore{}, nil)

	_, err := repo.Create(context.Background(), validForm())

	assert.ErrorIs(t, err, domain.ErrRemoteWrite)
	assert.ErrorIs(t, err, domain.ErrNoRowsReturned)
	assert.Equal(t, "No data returned from the server", domain.UserMessage(err, ""))
}

func TestPropertyRepository_CreateRejected(t *testing.T) {
	repo := newRepo(t, &spyStore{err: errors.New("duplicate key")}, nil)

	_, err := repo.Create(context.Background(), validForm())

	assert.ErrorIs(t, err, domain.ErrRemoteWrite)
	assert.Equal(t, "Failed to add property. Please try again.", domain.UserMessage(err, ""))
	assert.Contains(t, domain.Diagnostics(err)["error"], "duplicate key")
}

func TestPropertyRepository_UpdateResolvesBothShapes(t *testing.T) {
	for _, raw := range []string{`{"propertyData":{"id":7}}`, `{"id":7}`} {
		t.Run(raw, func(t *testing.T) {
			store := &spyStore{rows: []domain.Property{{ID: 7, Address: "1 Oak Lane"}}}
			repo := newRepo(t, store, nil)
			ref, err := domain.ParsePropertyRef(json.RawMessage(raw))
			require.NoError(t, err)

			got, err := repo.Update(context.Background(), ref, validForm())

			require.NoError(t, err)
			assert.Equal(t, int64(7), store.lastID)
			assert.Equal(t, int64(7), got.ID)
		})
	}
}

func TestPropertyRepository_UpdateWithoutIDSkipsStore(t *testing.T) {
	store := &spyStore{}
	repo := newRepo(t, store, nil)

	_, err := repo.Update(context.Background(), domain.BareRef{Property: domain.Property{Address: "x"}}, validForm())

	assert.ErrorIs(t, err, domain.ErrIdentityResolution)
	assert.Equal(t, "Could not determine property ID for update", domain.UserMessage(err, ""))
	assert.Empty(t, store.calls)
}

func TestPropertyRepository_UpdateNoRows(t *testing.T) {
	repo := newRepo(t, &spyStore{}, nil)

	_, err := repo.Update(context.Background(), domain.BareRef{Property: domain.Property{ID: 3}}, validForm())

	assert.ErrorIs(t, err, domain.ErrRemoteWrite)
	assert.ErrorIs(t, err, domain.ErrNoRowsReturned)
}

func TestPropertyRepository_Remove(t *testing.T) {
	store := &spyStore{}
	events := &recordingEvents{}
	repo := newRepo(t, store, events)

	require.NoError(t, repo.Remove(context.Background(), 5))

	assert.Equal(t, int64(5), store.lastID)
	require.Len(t, events.events, 1)
	assert.Equal(t, domain.ChangeDeleted, events.events[0].Type)
	assert.Nil(t, events.events[0].Property)
}

func TestPropertyRepository_RemoveRejected(t *testing.T) {
	events := &recordingEvents{}
	repo := newRepo(t, &spyStore{err: errors.New("permission denied")}, events)

	err := repo.Remove(context.Background(), 5)

	assert.ErrorIs(t, err, domain.ErrRemoteWrite)
	assert.Equal(t, "Failed to delete property", domain.UserMessage(err, ""))
	assert.Empty(t, events.events)
}

func TestPropertyRepository_PublishFailureDoesNotFailWrite(t *testing.T) {
	store := &spyStore{rows: []domain.Property{{ID: 1}}}
	repo := newRepo(t, store, &recordingEvents{err: errors.New("broker down")})

	_, err := repo.Create(context.Background(), validForm())

	assert.NoError(t, err)
}

func TestPropertyRepository_ListReadError(t *testing.T) {
	repo := newRepo(t, &spyStore{err: errors.New("timeout")}, nil)

	_, err := repo.List(context.Background())

	assert.ErrorIs(t, err, domain.ErrRemoteRead)
	assert.Equal(t, "Failed to load properties", domain.UserMessage(err, ""))
}
