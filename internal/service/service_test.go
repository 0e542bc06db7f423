package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/RobinsonDionte40hz/world-history-sim-engine-sub004/internal/decay"
	apperrors "github.com/RobinsonDionte40hz/world-history-sim-engine-sub004/internal/errors"
	"github.com/RobinsonDionte40hz/world-history-sim-engine-sub004/internal/storage"
	"github.com/RobinsonDionte40hz/world-history-sim-engine-sub004/internal/telemetry"
	"github.com/RobinsonDionte40hz/world-history-sim-engine-sub004/internal/worldevent"
)

// memoryStore mirrors the optimistic version semantics of the SQLite
// store for tests.
type memoryStore struct {
	records map[string]storage.LedgerRecord
	events  []storage.TelemetryEvent
}

func newMemoryStore() *memoryStore {
	return &memoryStore{records: map[string]storage.LedgerRecord{}}
}

func (m *memoryStore) key(characterID, category string) string {
	return characterID + "/" + category
}

func (m *memoryStore) PutLedger(ctx context.Context, record storage.LedgerRecord) error {
	key := m.key(record.CharacterID, record.Category)
	var current uint64
	if stored, ok := m.records[key]; ok {
		current = stored.Version
	}
	if record.Version != current+1 {
		return storage.ErrVersionConflict
	}
	m.records[key] = record
	return nil
}

func (m *memoryStore) GetLedger(ctx context.Context, characterID, category string) (storage.LedgerRecord, error) {
	record, ok := m.records[m.key(characterID, category)]
	if !ok {
		return storage.LedgerRecord{}, storage.ErrNotFound
	}
	return record, nil
}

func (m *memoryStore) ListLedgers(ctx context.Context, characterID string) ([]storage.LedgerRecord, error) {
	var records []storage.LedgerRecord
	for _, record := range m.records {
		if record.CharacterID == characterID {
			records = append(records, record)
		}
	}
	return records, nil
}

func (m *memoryStore) AppendTelemetryEvent(ctx context.Context, event storage.TelemetryEvent) error {
	m.events = append(m.events, event)
	return nil
}

func newTestService(t *testing.T) (*LedgerService, *memoryStore) {
	t.Helper()
	store := newMemoryStore()
	svc, err := NewLedgerService(store, telemetry.NewEmitter(store), DefaultProfiles())
	if err != nil {
		t.Fatalf("NewLedgerService: %v", err)
	}
	return svc, store
}

func politicalSuccess(at time.Time) worldevent.Occurrence {
	return worldevent.Occurrence{
		Event: worldevent.Event{
			ID:        "evt-1",
			Category:  worldevent.CategoryPolitical,
			Timestamp: at,
			Intensity: 1,
			Outcome:   worldevent.OutcomeSuccess,
		},
		Actor: worldevent.Actor{ID: "char-1", Role: worldevent.RoleCitizen},
	}
}

func TestNewLedgerServiceRequiresStore(t *testing.T) {
	if _, err := NewLedgerService(nil, nil, DefaultProfiles()); err == nil {
		t.Fatal("expected error for nil store")
	}
	if _, err := NewLedgerService(newMemoryStore(), nil, nil); err == nil {
		t.Fatal("expected error for empty profiles")
	}
}

func TestApplyOccurrenceValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		characterID string
		category    string
		occ         worldevent.Occurrence
		wantCode    apperrors.Code
	}{
		{
			name:     "empty character id",
			category: CategoryInfluence,
			occ:      politicalSuccess(now),
			wantCode: apperrors.CodeCharacterEmptyID,
		},
		{
			name:        "unknown category",
			characterID: "char-1",
			category:    "renown",
			occ:         politicalSuccess(now),
			wantCode:    apperrors.CodeCategoryInvalid,
		},
		{
			name:        "event missing category",
			characterID: "char-1",
			category:    CategoryInfluence,
			occ: worldevent.Occurrence{
				Event: worldevent.Event{Timestamp: now},
			},
			wantCode: apperrors.CodeEventEmptyCategory,
		},
		{
			name:        "event missing timestamp",
			characterID: "char-1",
			category:    CategoryInfluence,
			occ: worldevent.Occurrence{
				Event: worldevent.Event{Category: worldevent.CategoryPolitical},
			},
			wantCode: apperrors.CodeEventMissingTimestamp,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ApplyOccurrence(ctx, tt.characterID, tt.category, tt.occ)
			if !apperrors.IsCode(err, tt.wantCode) {
				t.Fatalf("error = %v, want code %s", err, tt.wantCode)
			}
		})
	}
}

func TestApplyOccurrencePersistsSuccessor(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	next, err := svc.ApplyOccurrence(ctx, "char-1", CategoryInfluence, politicalSuccess(now))
	if err != nil {
		t.Fatalf("ApplyOccurrence: %v", err)
	}

	value, err := next.Value("political")
	if err != nil {
		t.Fatalf("Value: %v", err)
	}
	if value <= 10 {
		t.Errorf("political = %g, want above the starting 10", value)
	}

	record, err := store.GetLedger(ctx, "char-1", CategoryInfluence)
	if err != nil {
		t.Fatalf("GetLedger: %v", err)
	}
	if record.Version != 1 {
		t.Errorf("stored version = %d, want 1", record.Version)
	}

	// A second apply becomes version 2.
	if _, err := svc.ApplyOccurrence(ctx, "char-1", CategoryInfluence, politicalSuccess(now.Add(time.Hour))); err != nil {
		t.Fatalf("second ApplyOccurrence: %v", err)
	}
	record, err = store.GetLedger(ctx, "char-1", CategoryInfluence)
	if err != nil {
		t.Fatalf("GetLedger: %v", err)
	}
	if record.Version != 2 {
		t.Errorf("stored version = %d, want 2", record.Version)
	}
}

func TestApplyOccurrencesFoldsChronologically(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	early := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	late := early.Add(4 * time.Hour)

	// Deliver out of order; history must come back oldest first.
	batch := []worldevent.Occurrence{politicalSuccess(late), politicalSuccess(early)}
	batch[0].Event.ID = "evt-late"
	batch[1].Event.ID = "evt-early"

	next, err := svc.ApplyOccurrences(ctx, "char-1", CategoryInfluence, batch)
	if err != nil {
		t.Fatalf("ApplyOccurrences: %v", err)
	}

	history, err := next.History("political")
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("history length = %d, want 2", len(history))
	}
	if !history[0].Timestamp.Equal(early) || !history[1].Timestamp.Equal(late) {
		t.Errorf("history not chronologically ordered: %v then %v",
			history[0].Timestamp, history[1].Timestamp)
	}
}

func TestApplyDecayReducesValues(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	if _, err := svc.ApplyOccurrence(ctx, "char-1", CategoryInfluence, politicalSuccess(now)); err != nil {
		t.Fatalf("ApplyOccurrence: %v", err)
	}
	before, err := svc.Value(ctx, "char-1", CategoryInfluence, "political")
	if err != nil {
		t.Fatalf("Value before: %v", err)
	}

	if _, err := svc.ApplyDecay(ctx, "char-1", CategoryInfluence, 30, now.Add(24*time.Hour), decay.Modifiers{}); err != nil {
		t.Fatalf("ApplyDecay: %v", err)
	}
	after, err := svc.Value(ctx, "char-1", CategoryInfluence, "political")
	if err != nil {
		t.Fatalf("Value after: %v", err)
	}
	if after >= before {
		t.Errorf("political after decay = %g, want below %g", after, before)
	}
}

func TestSnapshotMissingCharacterUsesDefaults(t *testing.T) {
	svc, _ := newTestService(t)

	snapshot, err := svc.Snapshot(context.Background(), "unseen", CategoryPrestige)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	value, err := snapshot.Value("military")
	if err != nil {
		t.Fatalf("Value: %v", err)
	}
	if value != 5 {
		t.Errorf("military = %g, want default 5", value)
	}
}

func TestBandReadThrough(t *testing.T) {
	svc, _ := newTestService(t)

	band, ok, err := svc.Band(context.Background(), "char-1", CategoryInfluence, "political")
	if err != nil {
		t.Fatalf("Band: %v", err)
	}
	if !ok {
		t.Fatal("expected a band for the default value")
	}
	if band.Name != "Marginal" {
		t.Errorf("band = %s, want Marginal", band.Name)
	}
}

func TestApplyEmitsTelemetry(t *testing.T) {
	svc, store := newTestService(t)
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	if _, err := svc.ApplyOccurrence(context.Background(), "char-1", CategoryInfluence, politicalSuccess(now)); err != nil {
		t.Fatalf("ApplyOccurrence: %v", err)
	}
	if len(store.events) != 1 {
		t.Fatalf("telemetry events = %d, want 1", len(store.events))
	}
	event := store.events[0]
	if event.Operation != telemetry.OperationApplyEvent {
		t.Errorf("operation = %s, want %s", event.Operation, telemetry.OperationApplyEvent)
	}
	if event.Severity != telemetry.SeverityInfo {
		t.Errorf("severity = %s, want %s", event.Severity, telemetry.SeverityInfo)
	}
}

func TestImportLedgerStoresFirstVersion(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	snapshot, err := svc.Snapshot(ctx, "char-1", CategoryAlignment)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if err := svc.ImportLedger(ctx, "char-1", CategoryAlignment, snapshot); err != nil {
		t.Fatalf("ImportLedger: %v", err)
	}
	record, err := store.GetLedger(ctx, "char-1", CategoryAlignment)
	if err != nil {
		t.Fatalf("GetLedger: %v", err)
	}
	if record.Version != 1 {
		t.Errorf("version = %d, want 1", record.Version)
	}

	// Importing over an existing snapshot is a version conflict.
	if err := svc.ImportLedger(ctx, "char-1", CategoryAlignment, snapshot); !errors.Is(err, storage.ErrVersionConflict) {
		t.Fatalf("second import error = %v, want ErrVersionConflict", err)
	}
}
