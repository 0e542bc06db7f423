package ledger

import (
	"testing"
	"time"

	apperrors "github.com/RobinsonDionte40hz/world-history-sim-engine-sub004/internal/errors"
)

func testAxes() []AxisDefinition {
	return []AxisDefinition{
		{
			ID: "political", Name: "Political", Min: 0, Max: 100, Default: 10,
			Bands: []Band{
				{Name: "Marginal", Min: 0, Max: 24},
				{Name: "Established", Min: 25, Max: 74},
				{Name: "Dominant", Min: 75, Max: 100},
			},
		},
		{
			ID: "military", Name: "Military", Min: 0, Max: 100, Default: 5,
			Bands: []Band{
				{Name: "Untested", Min: 0, Max: 49},
				{Name: "Proven", Min: 50, Max: 100},
			},
		},
	}
}

func mustLedger(t *testing.T) Ledger {
	t.Helper()
	l, err := New(testAxes()...)
	if err != nil {
		t.Fatalf("new ledger: %v", err)
	}
	return l
}

func TestNewSeedsDefaults(t *testing.T) {
	l := mustLedger(t)

	v, err := l.Value("political")
	if err != nil {
		t.Fatalf("value: %v", err)
	}
	if v != 10 {
		t.Fatalf("expected default 10, got %v", v)
	}
	history, err := l.History("political")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 0 {
		t.Fatalf("expected empty history, got %d entries", len(history))
	}
}

func TestNewRejectsEmptyAxisSet(t *testing.T) {
	_, err := New()
	if !apperrors.IsCode(err, apperrors.CodeLedgerNoAxes) {
		t.Fatalf("expected LEDGER_NO_AXES, got %v", err)
	}
}

func TestNewRejectsDuplicateAxisIDs(t *testing.T) {
	axes := testAxes()
	axes[1].ID = "political"
	_, err := New(axes...)
	if !apperrors.IsCode(err, apperrors.CodeLedgerDuplicateAxis) {
		t.Fatalf("expected LEDGER_DUPLICATE_AXIS, got %v", err)
	}
}

func TestValueUnknownAxis(t *testing.T) {
	l := mustLedger(t)
	_, err := l.Value("naval")
	if !apperrors.IsCode(err, apperrors.CodeLedgerUnknownAxis) {
		t.Fatalf("expected LEDGER_UNKNOWN_AXIS, got %v", err)
	}
}

func TestWithChangeClampsToBounds(t *testing.T) {
	l := mustLedger(t)

	raised, err := l.WithChange("political", 500, "landslide election", nil)
	if err != nil {
		t.Fatalf("with change: %v", err)
	}
	v, _ := raised.Value("political")
	if v != 100 {
		t.Fatalf("expected clamp to 100, got %v", v)
	}
	last, ok, _ := raised.LastChange("political")
	if !ok {
		t.Fatal("expected a change record")
	}
	if last.Resulting != 100 {
		t.Fatalf("expected recorded resulting value 100, got %v", last.Resulting)
	}
	if last.Delta != 500 {
		t.Fatalf("expected recorded delta 500, got %v", last.Delta)
	}

	lowered, err := raised.WithChange("political", -1000, "coup", nil)
	if err != nil {
		t.Fatalf("with change: %v", err)
	}
	v, _ = lowered.Value("political")
	if v != 0 {
		t.Fatalf("expected clamp to 0, got %v", v)
	}
}

func TestWithChangeDoesNotMutateReceiver(t *testing.T) {
	l := mustLedger(t)

	next, err := l.WithChange("political", 25, "appointment", nil)
	if err != nil {
		t.Fatalf("with change: %v", err)
	}

	original, _ := l.Value("political")
	if original != 10 {
		t.Fatalf("receiver mutated: expected 10, got %v", original)
	}
	history, _ := l.History("political")
	if len(history) != 0 {
		t.Fatalf("receiver history mutated: %d entries", len(history))
	}
	updated, _ := next.Value("political")
	if updated != 35 {
		t.Fatalf("expected 35 on successor, got %v", updated)
	}
	other, _ := next.Value("military")
	if other != 5 {
		t.Fatalf("expected untouched axis to carry over, got %v", other)
	}
}

func TestWithChangeUnknownAxis(t *testing.T) {
	l := mustLedger(t)
	_, err := l.WithChange("naval", 1, "reason", nil)
	if !apperrors.IsCode(err, apperrors.CodeLedgerUnknownAxis) {
		t.Fatalf("expected LEDGER_UNKNOWN_AXIS, got %v", err)
	}
}

func TestWithChangeCopiesProvenance(t *testing.T) {
	l := mustLedger(t)

	provenance := Context{
		KV("settlement", "Highgarden"),
		Nested("witnesses", KV("total", "12"), KV("nobles", "3")),
	}
	next, err := l.WithChange("political", 5, "public speech", provenance)
	if err != nil {
		t.Fatalf("with change: %v", err)
	}

	// Mutating the caller's context after acceptance must not leak in.
	provenance[0] = KV("settlement", "Tampered")
	provenance[1].Group[0] = KV("total", "9999")

	last, ok, _ := next.LastChange("political")
	if !ok {
		t.Fatal("expected a change record")
	}
	if got := last.Context.Get("settlement"); got != "Highgarden" {
		t.Fatalf("expected defensive copy, got settlement %q", got)
	}
	nested := last.Context[1].Group
	if got := nested.Get("total"); got != "12" {
		t.Fatalf("expected nested defensive copy, got total %q", got)
	}

	// Mutating records returned from History must not affect the ledger.
	history, _ := next.History("political")
	history[0].Context[0] = KV("settlement", "Tampered")
	last, _, _ = next.LastChange("political")
	if got := last.Context.Get("settlement"); got != "Highgarden" {
		t.Fatalf("history copy leaked mutation, got settlement %q", got)
	}
}

func TestReplayHistoryReproducesCurrentValue(t *testing.T) {
	l := mustLedger(t)

	deltas := []float64{30, 45, 80, -200, 12.5, 7.25, 300}
	var err error
	for _, d := range deltas {
		l, err = l.WithChange("political", d, "replay step", nil)
		if err != nil {
			t.Fatalf("with change: %v", err)
		}
	}

	axis, err := l.Axis("political")
	if err != nil {
		t.Fatalf("axis: %v", err)
	}
	history, err := l.History("political")
	if err != nil {
		t.Fatalf("history: %v", err)
	}

	replayed := axis.Default
	for _, record := range history {
		replayed = axis.Clamp(replayed + record.Delta)
		if replayed != record.Resulting {
			t.Fatalf("replay diverged: computed %v, recorded %v", replayed, record.Resulting)
		}
	}
	current, _ := l.Value("political")
	if replayed != current {
		t.Fatalf("replay produced %v, current value %v", replayed, current)
	}
}

func TestLastChangeEmptyHistory(t *testing.T) {
	l := mustLedger(t)
	_, ok, err := l.LastChange("military")
	if err != nil {
		t.Fatalf("last change: %v", err)
	}
	if ok {
		t.Fatal("expected no change record on a fresh ledger")
	}
}

func TestWithChangeAtRecordsTimestamp(t *testing.T) {
	l := mustLedger(t)
	at := time.Date(1347, time.March, 9, 12, 0, 0, 0, time.UTC)

	next, err := l.WithChangeAt("military", 10, "border skirmish", at, nil)
	if err != nil {
		t.Fatalf("with change at: %v", err)
	}
	last, ok, _ := next.LastChange("military")
	if !ok {
		t.Fatal("expected a change record")
	}
	if !last.Timestamp.Equal(at) {
		t.Fatalf("expected timestamp %v, got %v", at, last.Timestamp)
	}
}

func TestEqualDistinguishesValueAndHistory(t *testing.T) {
	a := mustLedger(t)
	b := mustLedger(t)
	if !a.Equal(b) {
		t.Fatal("expected fresh ledgers to be equal")
	}

	at := time.Date(1347, time.March, 9, 12, 0, 0, 0, time.UTC)
	changed, err := a.WithChangeAt("political", 5, "edict", at, nil)
	if err != nil {
		t.Fatalf("with change: %v", err)
	}
	if changed.Equal(b) {
		t.Fatal("expected ledgers to differ after a change")
	}

	same, err := b.WithChangeAt("political", 5, "edict", at, nil)
	if err != nil {
		t.Fatalf("with change: %v", err)
	}
	if !changed.Equal(same) {
		t.Fatal("expected identical transitions to produce equal ledgers")
	}
}
