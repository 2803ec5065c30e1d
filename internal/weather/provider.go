package weather

import (
	"context"
)

// Fetcher retrieves one forecast payload from the upstream API.
type Fetcher interface {
	FetchForecast(ctx context.Context) (*ForecastResponse, error)
}

// RecordStore is the contract every persistence backend must satisfy.
// PutRecord is an unconditional create-or-overwrite keyed by record ID.
type RecordStore interface {
	PutRecord(ctx context.Context, rec StoredRecord) error
}

// Writer turns a fetched forecast into a persisted StoredRecord.
type Writer interface {
	Store(ctx context.Context, forecast *ForecastResponse) (StoredRecord, error)
}
