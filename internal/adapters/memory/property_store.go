package memory

import (
	"context"
	"slices"
	"sync"

	"portfolio-service/internal/core/domain"
)

// PropertyStore - хранилище в памяти процесса. Идентификаторы выдаются по возрастанию.
type PropertyStore struct {
	mu     sync.Mutex
	rows   []domain.Property
	nextID int64
}

func NewPropertyStore(seed ...domain.Property) *PropertyStore {
	s := &PropertyStore{nextID: 1}
	for _, p := range seed {
		if p.ID >= s.nextID {
			s.nextID = p.ID + 1
		}
		s.rows = append(s.rows, p)
	}
	return s
}

func (s *PropertyStore) SelectAll(ctx context.Context) ([]domain.Property, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	rows := slices.Clone(s.rows)
	slices.SortStableFunc(rows, func(a, b domain.Property) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	})
	return rows, nil
}

func (s *PropertyStore) Insert(ctx context.Context, in domain.PropertyInput) ([]domain.Property, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p := in.ToProperty(s.nextID)
	s.nextID++
	s.rows = append(s.rows, p)
	return []domain.Property{p}, nil
}

func (s *PropertyStore) Update(ctx context.Context, id int64, in domain.PropertyInput) ([]domain.Property, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := slices.IndexFunc(s.rows, func(p domain.Property) bool { return p.ID == id })
	if i < 0 {
		return nil, nil
	}
	s.rows[i] = in.ToProperty(id)
	return []domain.Property{s.rows[i]}, nil
}

func (s *PropertyStore) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = slices.DeleteFunc(s.rows, func(p domain.Property) bool { return p.ID == id })
	return nil
}
