package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/RobinsonDionte40hz/world-history-sim-engine-sub004/internal/storage"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "ledgers.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("Close: %v", err)
		}
	})
	return store
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open(""); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestPutGetRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	written := storage.LedgerRecord{
		CharacterID: "char-1",
		Category:    "influence",
		Document:    []byte(`{"values":{"political":12}}`),
		Version:     1,
		UpdatedAt:   time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}
	if err := store.PutLedger(ctx, written); err != nil {
		t.Fatalf("PutLedger: %v", err)
	}

	got, err := store.GetLedger(ctx, "char-1", "influence")
	if err != nil {
		t.Fatalf("GetLedger: %v", err)
	}
	if got.Version != 1 {
		t.Errorf("Version = %d, want 1", got.Version)
	}
	if string(got.Document) != string(written.Document) {
		t.Errorf("Document = %s, want %s", got.Document, written.Document)
	}
	if !got.UpdatedAt.Equal(written.UpdatedAt) {
		t.Errorf("UpdatedAt = %v, want %v", got.UpdatedAt, written.UpdatedAt)
	}
}

func TestGetLedgerNotFound(t *testing.T) {
	store := openTestStore(t)

	_, err := store.GetLedger(context.Background(), "missing", "alignment")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("GetLedger error = %v, want ErrNotFound", err)
	}
}

func TestPutLedgerVersionConflict(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	record := storage.LedgerRecord{
		CharacterID: "char-1",
		Category:    "prestige",
		Document:    []byte(`{}`),
		Version:     1,
	}
	if err := store.PutLedger(ctx, record); err != nil {
		t.Fatalf("PutLedger v1: %v", err)
	}

	// Re-putting version 1 must fail: the successor of a stored v1 is v2.
	if err := store.PutLedger(ctx, record); !errors.Is(err, storage.ErrVersionConflict) {
		t.Fatalf("PutLedger duplicate v1 error = %v, want ErrVersionConflict", err)
	}

	// Skipping a version must fail too.
	record.Version = 3
	if err := store.PutLedger(ctx, record); !errors.Is(err, storage.ErrVersionConflict) {
		t.Fatalf("PutLedger v3 over v1 error = %v, want ErrVersionConflict", err)
	}

	record.Version = 2
	record.Document = []byte(`{"values":{"military":5}}`)
	if err := store.PutLedger(ctx, record); err != nil {
		t.Fatalf("PutLedger v2: %v", err)
	}

	got, err := store.GetLedger(ctx, "char-1", "prestige")
	if err != nil {
		t.Fatalf("GetLedger: %v", err)
	}
	if got.Version != 2 {
		t.Errorf("Version = %d, want 2", got.Version)
	}
	if string(got.Document) != string(record.Document) {
		t.Errorf("Document = %s, want %s", got.Document, record.Document)
	}
}

func TestPutLedgerFirstVersionMustBeOne(t *testing.T) {
	store := openTestStore(t)

	record := storage.LedgerRecord{
		CharacterID: "char-1",
		Category:    "alignment",
		Document:    []byte(`{}`),
		Version:     2,
	}
	err := store.PutLedger(context.Background(), record)
	if !errors.Is(err, storage.ErrVersionConflict) {
		t.Fatalf("PutLedger error = %v, want ErrVersionConflict", err)
	}
}

func TestListLedgers(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for _, category := range []string{"prestige", "alignment", "influence"} {
		record := storage.LedgerRecord{
			CharacterID: "char-1",
			Category:    category,
			Document:    []byte(`{}`),
			Version:     1,
		}
		if err := store.PutLedger(ctx, record); err != nil {
			t.Fatalf("PutLedger %s: %v", category, err)
		}
	}
	other := storage.LedgerRecord{
		CharacterID: "char-2",
		Category:    "alignment",
		Document:    []byte(`{}`),
		Version:     1,
	}
	if err := store.PutLedger(ctx, other); err != nil {
		t.Fatalf("PutLedger other character: %v", err)
	}

	records, err := store.ListLedgers(ctx, "char-1")
	if err != nil {
		t.Fatalf("ListLedgers: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("ListLedgers returned %d records, want 3", len(records))
	}
	wantOrder := []string{"alignment", "influence", "prestige"}
	for i, want := range wantOrder {
		if records[i].Category != want {
			t.Errorf("records[%d].Category = %s, want %s", i, records[i].Category, want)
		}
	}
}

func TestAppendTelemetryEvent(t *testing.T) {
	store := openTestStore(t)

	event := storage.TelemetryEvent{
		Timestamp:   time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		Severity:    "info",
		Operation:   "apply_event",
		CharacterID: "char-1",
		Category:    "influence",
		Message:     "applied 2 deltas",
	}
	if err := store.AppendTelemetryEvent(context.Background(), event); err != nil {
		t.Fatalf("AppendTelemetryEvent: %v", err)
	}

	var count int
	row := store.db.QueryRow(`SELECT COUNT(*) FROM telemetry_events`)
	if err := row.Scan(&count); err != nil {
		t.Fatalf("count telemetry events: %v", err)
	}
	if count != 1 {
		t.Errorf("telemetry event count = %d, want 1", count)
	}
}
