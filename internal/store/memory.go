package store

import (
	"context"
	"errors"
	"sync"

	"github.com/i474232898/weather-forecast-recorder/internal/weather"
)

var (
	// ErrNotFound is returned when no record exists for a given id.
	ErrNotFound = errors.New("no weather record for id")
)

// MemoryStore is a concurrency-safe in-memory implementation of a record store.
type MemoryStore struct {
	mu sync.RWMutex

	// key: record id
	data map[string]weather.StoredRecord
}

// NewMemoryStore creates a new empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: make(map[string]weather.StoredRecord),
	}
}

// PutRecord stores rec, replacing any record with the same id.
func (s *MemoryStore) PutRecord(ctx context.Context, rec weather.StoredRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[rec.ID] = rec
	return nil
}

// GetRecord returns the record stored under id.
func (s *MemoryStore) GetRecord(ctx context.Context, id string) (weather.StoredRecord, error) {
	if err := ctx.Err(); err != nil {
		return weather.StoredRecord{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.data[id]
	if !ok {
		return weather.StoredRecord{}, ErrNotFound
	}
	return rec, nil
}

// Len returns the number of stored records.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

var _ weather.RecordStore = (*MemoryStore)(nil)
