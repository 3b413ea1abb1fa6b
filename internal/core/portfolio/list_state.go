package portfolio

import (
	"slices"
	"sync"

	"portfolio-service/internal/core/domain"
)

// ListState хранит список объектов текущей сессии в порядке добавления.
// Изменяется только после завершенного обращения к хранилищу.
//
// Add не проверяет уникальность id: повторный id даст дубликат в списке.
type ListState struct {
	mu     sync.RWMutex
	items  []domain.Property
	loaded bool
}

func NewListState() *ListState {
	return &ListState{}
}

// Reset заменяет список целиком (полная загрузка при старте или перезагрузка).
func (s *ListState) Reset(records []domain.Property) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = slices.Clone(records)
	s.loaded = true
}

func (s *ListState) Add(record domain.Property) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, record)
}

// Replace подставляет запись вместо всех записей с тем же id.
// Неизвестный id ничего не меняет.
func (s *ListState) Replace(record domain.Property) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == record.ID {
			s.items[i] = record
		}
	}
}

func (s *ListState) Remove(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = slices.DeleteFunc(s.items, func(p domain.Property) bool {
		return p.ID == id
	})
}

// Snapshot возвращает копию списка.
func (s *ListState) Snapshot() []domain.Property {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.items)
}

func (s *ListState) Find(id int64) (domain.Property, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.items {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Property{}, false
}

func (s *ListState) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Loaded сообщает, была ли хотя бы одна успешная полная загрузка.
func (s *ListState) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}
