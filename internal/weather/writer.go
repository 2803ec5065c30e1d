package weather

import (
	"context"

	"github.com/google/uuid"
)

// StoreWriter assigns a fresh identifier to each forecast and persists it.
type StoreWriter struct {
	store RecordStore
	newID func() string
}

// StoreWriterOption customizes a StoreWriter.
type StoreWriterOption func(*StoreWriter)

// WithIDGenerator replaces the default UUIDv4 generator.
func WithIDGenerator(gen func() string) StoreWriterOption {
	return func(w *StoreWriter) {
		if gen != nil {
			w.newID = gen
		}
	}
}

// NewStoreWriter creates a StoreWriter backed by store.
func NewStoreWriter(store RecordStore, opts ...StoreWriterOption) *StoreWriter {
	w := &StoreWriter{
		store: store,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Store projects forecast into a new StoredRecord and writes it exactly once.
func (w *StoreWriter) Store(ctx context.Context, forecast *ForecastResponse) (StoredRecord, error) {
	rec, err := NewRecord(w.newID(), forecast)
	if err != nil {
		return StoredRecord{}, NewError(KindParse, "project forecast", err)
	}

	if err := w.store.PutRecord(ctx, rec); err != nil {
		return StoredRecord{}, NewError(KindStorage, "put record", err)
	}
	return rec, nil
}

var _ Writer = (*StoreWriter)(nil)
