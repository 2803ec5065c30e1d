package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"github.com/i474232898/weather-forecast-recorder/internal/weather"

	_ "modernc.org/sqlite"
)

var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// SQLiteStore implements weather.RecordStore on a local sqlite file
// (pure Go driver modernc.org/sqlite). Each record is one row whose
// forecast column holds the JSON-encoded snapshot.
type SQLiteStore struct {
	db    *sql.DB
	table string
}

// NewSQLite opens (or creates) the database at path and ensures table exists.
// A nil log discards warnings.
func NewSQLite(path, table string, log *slog.Logger) (*SQLiteStore, error) {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	if !tableNamePattern.MatchString(table) {
		return nil, fmt.Errorf("invalid sqlite table name %q", table)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	var mode string
	if err := db.QueryRow("PRAGMA journal_mode=WAL;").Scan(&mode); err != nil {
		log.Warn("could not set sqlite WAL mode", "path", path, "error", err)
	} else if mode != "wal" {
		log.Warn("sqlite WAL mode unavailable", "path", path, "mode", mode)
	}

	schema := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %q (
        id TEXT PRIMARY KEY,
        forecast TEXT NOT NULL,
        stored_at TEXT NOT NULL
    );`, table)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteStore{db: db, table: table}, nil
}

// PutRecord inserts rec, replacing any row with the same id.
func (s *SQLiteStore) PutRecord(ctx context.Context, rec weather.StoredRecord) error {
	forecast, err := json.Marshal(rec.Forecast)
	if err != nil {
		return fmt.Errorf("encode forecast for %s: %w", rec.ID, err)
	}

	query := fmt.Sprintf(`INSERT OR REPLACE INTO %q(id, forecast, stored_at) VALUES(?,?,?)`, s.table)
	_, err = s.db.ExecContext(ctx, query, rec.ID, string(forecast), time.Now().UTC().Format(time.RFC3339))
	return err
}

// GetRecord reads back the record stored under id.
func (s *SQLiteStore) GetRecord(ctx context.Context, id string) (weather.StoredRecord, error) {
	query := fmt.Sprintf(`SELECT id, forecast FROM %q WHERE id = ?`, s.table)

	var (
		rec      weather.StoredRecord
		forecast string
	)
	err := s.db.QueryRowContext(ctx, query, id).Scan(&rec.ID, &forecast)
	if errors.Is(err, sql.ErrNoRows) {
		return weather.StoredRecord{}, ErrNotFound
	}
	if err != nil {
		return weather.StoredRecord{}, err
	}

	if err := json.Unmarshal([]byte(forecast), &rec.Forecast); err != nil {
		return weather.StoredRecord{}, fmt.Errorf("decode forecast for %s: %w", id, err)
	}
	return rec, nil
}

// Count returns the number of rows in the table.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, fmt.Sprintf(`SELECT COUNT(*) FROM %q`, s.table)).Scan(&n)
	return n, err
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

var _ weather.RecordStore = (*SQLiteStore)(nil)
