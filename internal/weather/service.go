package weather

import (
	"context"
	"log/slog"
)

// Service runs the fetch-then-store sequence for one invocation.
type Service struct {
	fetcher Fetcher
	writer  Writer
	log     *slog.Logger
}

// NewService creates a new Service. A nil logger discards output.
func NewService(fetcher Fetcher, writer Writer, log *slog.Logger) *Service {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Service{
		fetcher: fetcher,
		writer:  writer,
		log:     log,
	}
}

// FetchAndStore fetches the forecast and, only if that succeeds, stores it.
// The first failing step aborts the sequence; nothing is retried.
func (s *Service) FetchAndStore(ctx context.Context) (StoredRecord, error) {
	forecast, err := s.fetcher.FetchForecast(ctx)
	if err != nil {
		return StoredRecord{}, err
	}
	s.log.DebugContext(ctx, "forecast fetched")

	rec, err := s.writer.Store(ctx, forecast)
	if err != nil {
		return StoredRecord{}, err
	}

	s.log.InfoContext(ctx, "Weather data stored successfully", "id", rec.ID)
	return rec, nil
}
