// Package storage defines the persistence interfaces the ledger core's
// collaborators implement. The core itself never touches storage; services
// read a snapshot, compute, and put back the successor.
//
// The package defines common error types used across implementations:
//   - ErrNotFound: a requested record is missing.
//   - ErrVersionConflict: a concurrent update won the read-compute-apply race.
package storage

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound indicates a requested record is missing.
var ErrNotFound = errors.New("record not found")

// ErrVersionConflict indicates a put lost the optimistic version check:
// another update replaced the snapshot after this caller read it.
var ErrVersionConflict = errors.New("ledger version conflict")

// LedgerRecord is one stored ledger snapshot for one character and category.
type LedgerRecord struct {
	// CharacterID owns the ledger.
	CharacterID string
	// Category names the tracked ledger category (alignment, influence,
	// prestige).
	Category string
	// Document is the serialized ledger.
	Document []byte
	// Version counts successive snapshots, starting at 1. Puts must supply
	// the stored version + 1; anything else is a version conflict.
	Version uint64
	// UpdatedAt is when this version was written.
	UpdatedAt time.Time
}

// LedgerStore persists ledger snapshots with optimistic version checks.
type LedgerStore interface {
	PutLedger(ctx context.Context, record LedgerRecord) error
	GetLedger(ctx context.Context, characterID, category string) (LedgerRecord, error)
	ListLedgers(ctx context.Context, characterID string) ([]LedgerRecord, error)
}

// TelemetryEvent records one operational occurrence for later analysis.
type TelemetryEvent struct {
	Timestamp   time.Time
	Severity    string
	Operation   string
	CharacterID string
	Category    string
	Message     string
}

// TelemetryStore appends operational telemetry events.
type TelemetryStore interface {
	AppendTelemetryEvent(ctx context.Context, event TelemetryEvent) error
}
