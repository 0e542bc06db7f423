// Package sqlite persists ledger snapshots and telemetry events in a
// SQLite database. Snapshot writes carry an optimistic version check so
// concurrent read-compute-apply cycles cannot silently overwrite each
// other.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/RobinsonDionte40hz/world-history-sim-engine-sub004/internal/platform/storage/sqlitemigrate"
	"github.com/RobinsonDionte40hz/world-history-sim-engine-sub004/internal/storage"
)

// Store implements storage.LedgerStore and storage.TelemetryStore on a
// single SQLite database file.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path and applies any
// pending migrations.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := sqlitemigrate.ApplyMigrations(db, MigrationsFS()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply migrations: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle. Safe on a nil receiver.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func initPragmas(db *sql.DB) error {
	// WAL suits the append-heavy snapshot workload; NORMAL is a fair
	// durability tradeoff for derived state that can be replayed.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA foreign_keys=ON;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("set pragma: %w", err)
		}
	}
	return nil
}

// PutLedger writes record if record.Version is exactly one greater than
// the stored version (or 1 when no snapshot exists yet). Any other
// version returns storage.ErrVersionConflict.
func (s *Store) PutLedger(ctx context.Context, record storage.LedgerRecord) error {
	if record.CharacterID == "" {
		return fmt.Errorf("character id is required")
	}
	if record.Category == "" {
		return fmt.Errorf("category is required")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin put transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var current uint64
	row := tx.QueryRowContext(ctx,
		`SELECT version FROM ledgers WHERE character_id = ? AND category = ?`,
		record.CharacterID, record.Category,
	)
	switch err := row.Scan(&current); {
	case errors.Is(err, sql.ErrNoRows):
		current = 0
	case err != nil:
		return fmt.Errorf("read stored version: %w", err)
	}

	if record.Version != current+1 {
		return fmt.Errorf("put %s/%s version %d over stored %d: %w",
			record.CharacterID, record.Category, record.Version, current,
			storage.ErrVersionConflict)
	}

	updatedAt := record.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now().UTC()
	}
	if _, err := tx.ExecContext(ctx, `
INSERT INTO ledgers (character_id, category, document, version, updated_at)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT (character_id, category) DO UPDATE SET
    document = excluded.document,
    version = excluded.version,
    updated_at = excluded.updated_at`,
		record.CharacterID, record.Category, record.Document,
		record.Version, toMillis(updatedAt),
	); err != nil {
		return fmt.Errorf("write ledger snapshot: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit put transaction: %w", err)
	}
	return nil
}

// GetLedger returns the stored snapshot for one character and category,
// or storage.ErrNotFound when none exists.
func (s *Store) GetLedger(ctx context.Context, characterID, category string) (storage.LedgerRecord, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT character_id, category, document, version, updated_at
FROM ledgers
WHERE character_id = ? AND category = ?`,
		characterID, category,
	)
	record, err := scanLedger(row)
	if errors.Is(err, sql.ErrNoRows) {
		return storage.LedgerRecord{}, fmt.Errorf("ledger %s/%s: %w",
			characterID, category, storage.ErrNotFound)
	}
	if err != nil {
		return storage.LedgerRecord{}, fmt.Errorf("read ledger snapshot: %w", err)
	}
	return record, nil
}

// ListLedgers returns every stored snapshot for one character, ordered
// by category.
func (s *Store) ListLedgers(ctx context.Context, characterID string) ([]storage.LedgerRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT character_id, category, document, version, updated_at
FROM ledgers
WHERE character_id = ?
ORDER BY category`,
		characterID,
	)
	if err != nil {
		return nil, fmt.Errorf("list ledger snapshots: %w", err)
	}
	defer rows.Close()

	var records []storage.LedgerRecord
	for rows.Next() {
		record, err := scanLedger(rows)
		if err != nil {
			return nil, fmt.Errorf("scan ledger snapshot: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ledger snapshots: %w", err)
	}
	return records, nil
}

// AppendTelemetryEvent records one operational event.
func (s *Store) AppendTelemetryEvent(ctx context.Context, event storage.TelemetryEvent) error {
	timestamp := event.Timestamp
	if timestamp.IsZero() {
		timestamp = time.Now().UTC()
	}
	if _, err := s.db.ExecContext(ctx, `
INSERT INTO telemetry_events (timestamp, severity, operation, character_id, category, message)
VALUES (?, ?, ?, ?, ?, ?)`,
		toMillis(timestamp), event.Severity, event.Operation,
		event.CharacterID, event.Category, event.Message,
	); err != nil {
		return fmt.Errorf("append telemetry event: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLedger(row rowScanner) (storage.LedgerRecord, error) {
	var record storage.LedgerRecord
	var updatedAt int64
	if err := row.Scan(
		&record.CharacterID, &record.Category, &record.Document,
		&record.Version, &updatedAt,
	); err != nil {
		return storage.LedgerRecord{}, err
	}
	record.UpdatedAt = fromMillis(updatedAt)
	return record, nil
}

func toMillis(t time.Time) int64 {
	return t.UTC().UnixMilli()
}

func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}
