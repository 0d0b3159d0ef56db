package file

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/MikhailRaia/shorturls/internal/model"
	"github.com/MikhailRaia/shorturls/internal/storage"
)

// Storage implements storage.MappingStore backed by an append-only JSONL file.
// Deletions are written as tombstone records and replayed on start-up.
type Storage struct {
	filePath    string
	byID        map[int64]model.URLMapping
	byShort     map[string]int64
	byLong      map[string]int64
	lastID      int64
	mu          sync.RWMutex
	fileWriteMu sync.Mutex
}

// NewStorage creates a file-backed storage at the provided path.
func NewStorage(filePath string) (*Storage, error) {
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	s := &Storage{
		filePath: filePath,
		byID:     make(map[int64]model.URLMapping),
		byShort:  make(map[string]int64),
		byLong:   make(map[string]int64),
	}

	if err := s.loadFromFile(); err != nil {
		return nil, err
	}

	return s, nil
}

// Create stores a new mapping and returns its id.
func (s *Storage) Create(_ context.Context, shortURL, longURL string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byShort[shortURL]; exists {
		return 0, storage.ErrShortURLExists
	}
	if _, exists := s.byLong[longURL]; exists {
		return 0, storage.ErrLongURLExists
	}

	record := model.URLRecord{
		ID:       s.lastID + 1,
		ShortURL: shortURL,
		LongURL:  longURL,
	}

	if err := s.saveRecordToFile(record); err != nil {
		return 0, err
	}

	s.apply(record)
	return record.ID, nil
}

// GetByShortURL retrieves the mapping for a given short code.
func (s *Storage) GetByShortURL(_ context.Context, shortURL string) (model.URLMapping, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, found := s.byShort[shortURL]
	if !found {
		return model.URLMapping{}, storage.ErrNotFound
	}
	return s.byID[id], nil
}

// GetByLongURL retrieves the mapping for a given long URL.
func (s *Storage) GetByLongURL(_ context.Context, longURL string) (model.URLMapping, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, found := s.byLong[longURL]
	if !found {
		return model.URLMapping{}, storage.ErrNotFound
	}
	return s.byID[id], nil
}

// DeleteByID removes a mapping.
func (s *Storage) DeleteByID(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, found := s.byID[id]; !found {
		return storage.ErrNotFound
	}

	record := model.URLRecord{ID: id, IsDeleted: true}
	if err := s.saveRecordToFile(record); err != nil {
		return fmt.Errorf("failed to save deletion record: %w", err)
	}

	s.apply(record)
	return nil
}

// List returns all mappings ordered by id.
func (s *Storage) List(_ context.Context) ([]model.URLMapping, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]model.URLMapping, 0, len(s.byID))
	for _, m := range s.byID {
		result = append(result, m)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })

	return result, nil
}

// Ping checks that the store is reachable.
func (s *Storage) Ping(_ context.Context) error {
	_, err := os.Stat(s.filePath)
	return err
}

// Close releases the underlying resources.
func (s *Storage) Close() error {
	return nil
}

// apply updates the in-memory indexes. Callers hold s.mu.
func (s *Storage) apply(record model.URLRecord) {
	if record.ID > s.lastID {
		s.lastID = record.ID
	}

	if record.IsDeleted {
		if m, found := s.byID[record.ID]; found {
			delete(s.byShort, m.ShortURL)
			delete(s.byLong, m.LongURL)
			delete(s.byID, record.ID)
		}
		return
	}

	s.byID[record.ID] = model.URLMapping{
		ID:       record.ID,
		ShortURL: record.ShortURL,
		LongURL:  record.LongURL,
	}
	s.byShort[record.ShortURL] = record.ID
	s.byLong[record.LongURL] = record.ID
}

func (s *Storage) loadFromFile() error {
	file, err := os.OpenFile(s.filePath, os.O_RDONLY|os.O_CREATE, 0644)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var record model.URLRecord
		if err := json.Unmarshal(line, &record); err != nil {
			return fmt.Errorf("failed to unmarshal record: %w", err)
		}

		s.apply(record)
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading file: %w", err)
	}

	return nil
}

func (s *Storage) saveRecordToFile(record model.URLRecord) error {
	s.fileWriteMu.Lock()
	defer s.fileWriteMu.Unlock()

	file, err := os.OpenFile(s.filePath, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open file for writing: %w", err)
	}
	defer file.Close()

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	if _, err := file.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write to file: %w", err)
	}

	return nil
}
