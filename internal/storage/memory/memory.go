package memory

import (
	"context"
	"sync"

	"github.com/MikhailRaia/shorturls/internal/model"
	"github.com/MikhailRaia/shorturls/internal/storage"
)

// Storage implements storage.MappingStore in memory for testing and development.
type Storage struct {
	byID    map[int64]model.URLMapping
	byShort map[string]int64
	byLong  map[string]int64
	order   []int64
	nextID  int64
	mutex   sync.RWMutex
}

// NewStorage creates a new in-memory storage instance.
func NewStorage() *Storage {
	return &Storage{
		byID:    make(map[int64]model.URLMapping),
		byShort: make(map[string]int64),
		byLong:  make(map[string]int64),
	}
}

// Create stores a new mapping, enforcing uniqueness of both columns.
func (s *Storage) Create(_ context.Context, shortURL, longURL string) (int64, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, exists := s.byShort[shortURL]; exists {
		return 0, storage.ErrShortURLExists
	}
	if _, exists := s.byLong[longURL]; exists {
		return 0, storage.ErrLongURLExists
	}

	s.nextID++
	id := s.nextID

	s.byID[id] = model.URLMapping{ID: id, ShortURL: shortURL, LongURL: longURL}
	s.byShort[shortURL] = id
	s.byLong[longURL] = id
	s.order = append(s.order, id)

	return id, nil
}

// GetByShortURL retrieves the mapping for a given short code.
func (s *Storage) GetByShortURL(_ context.Context, shortURL string) (model.URLMapping, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	id, found := s.byShort[shortURL]
	if !found {
		return model.URLMapping{}, storage.ErrNotFound
	}
	return s.byID[id], nil
}

// GetByLongURL retrieves the mapping for a given long URL.
func (s *Storage) GetByLongURL(_ context.Context, longURL string) (model.URLMapping, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	id, found := s.byLong[longURL]
	if !found {
		return model.URLMapping{}, storage.ErrNotFound
	}
	return s.byID[id], nil
}

// DeleteByID removes a mapping.
func (s *Storage) DeleteByID(_ context.Context, id int64) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	m, found := s.byID[id]
	if !found {
		return storage.ErrNotFound
	}

	delete(s.byID, id)
	delete(s.byShort, m.ShortURL)
	delete(s.byLong, m.LongURL)

	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}

	return nil
}

// List returns all mappings in insertion order.
func (s *Storage) List(_ context.Context) ([]model.URLMapping, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	result := make([]model.URLMapping, 0, len(s.order))
	for _, id := range s.order {
		result = append(result, s.byID[id])
	}
	return result, nil
}

// Ping checks that the store is reachable.
func (s *Storage) Ping(_ context.Context) error {
	return nil
}

// Close releases the underlying resources.
func (s *Storage) Close() error {
	return nil
}
