package policy

import (
	"testing"
	"time"

	"github.com/RobinsonDionte40hz/world-history-sim-engine-sub004/internal/ledger"
	"github.com/RobinsonDionte40hz/world-history-sim-engine-sub004/internal/worldevent"
)

func mustInfluenceLedger(t *testing.T) ledger.Ledger {
	t.Helper()
	l, err := ledger.New(DefaultInfluenceAxes()...)
	if err != nil {
		t.Fatalf("build influence ledger: %v", err)
	}
	return l
}

func TestComputeDeltasGenericFallback(t *testing.T) {
	p := New("test", Config{DefaultClamp: ClampRange{Min: -5, Max: 5}})
	l := mustInfluenceLedger(t)

	evt := worldevent.Event{
		ID:        "evt-1",
		Category:  "comet_sighting",
		Timestamp: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		Intensity: 2,
		Impacts: map[string]float64{
			"political": 3,  // becomes 6, clamped to 5
			"social":    -1, // becomes -2
			"weather":   4,  // not an axis, dropped
		},
	}
	deltas := p.ComputeDeltas(l, evt, worldevent.Actor{}, worldevent.Environment{})
	if len(deltas) != 2 {
		t.Fatalf("deltas = %d, want 2: %+v", len(deltas), deltas)
	}
	if deltas[0].AxisID != "political" || deltas[0].Amount != 5 {
		t.Errorf("deltas[0] = %+v, want political clamped to 5", deltas[0])
	}
	if deltas[1].AxisID != "social" || deltas[1].Amount != -2 {
		t.Errorf("deltas[1] = %+v, want social -2", deltas[1])
	}
}

func TestComputeDeltasDropsZeroAfterClamp(t *testing.T) {
	p := New("test", Config{DefaultClamp: ClampRange{Min: 0, Max: 5}})
	l := mustInfluenceLedger(t)

	evt := worldevent.Event{
		Category:  "comet_sighting",
		Timestamp: time.Now(),
		Impacts:   map[string]float64{"political": -3},
	}
	deltas := p.ComputeDeltas(l, evt, worldevent.Actor{}, worldevent.Environment{})
	if len(deltas) != 0 {
		t.Fatalf("deltas = %+v, want none after one-sided clamp", deltas)
	}
}

func TestRegisterReplacesHandler(t *testing.T) {
	p := New("test", Config{DefaultClamp: ClampRange{Min: -10, Max: 10}})
	l := mustInfluenceLedger(t)

	p.Register(worldevent.CategoryPolitical, func(in Inputs) []Delta {
		return []Delta{{AxisID: "political", Amount: 1, Reason: "first"}}
	})
	p.Register(worldevent.CategoryPolitical, func(in Inputs) []Delta {
		return []Delta{{AxisID: "political", Amount: 2, Reason: "second"}}
	})

	evt := worldevent.Event{Category: worldevent.CategoryPolitical, Timestamp: time.Now()}
	deltas := p.ComputeDeltas(l, evt, worldevent.Actor{}, worldevent.Environment{})
	if len(deltas) != 1 || deltas[0].Amount != 2 {
		t.Fatalf("deltas = %+v, want the replacement handler's output", deltas)
	}
}

func TestApplyStampsTimestampAndProvenance(t *testing.T) {
	p := NewInfluencePolicy(DefaultInfluenceConfig())
	l := mustInfluenceLedger(t)
	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	evt := worldevent.Event{
		ID:        "evt-coronation",
		Category:  worldevent.CategoryPolitical,
		Timestamp: at,
		Intensity: 1,
		Outcome:   worldevent.OutcomeSuccess,
	}
	actor := worldevent.Actor{ID: "char-1", Role: worldevent.RoleLeader}
	env := worldevent.Environment{
		Settlement: worldevent.Settlement{Name: "Highcourt", Kind: worldevent.SettlementCapital},
		Witnesses:  worldevent.Witnesses{Total: 40, Nobles: 5},
	}

	next, err := p.Apply(l, evt, actor, env)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	record, ok, err := next.LastChange("political")
	if err != nil || !ok {
		t.Fatalf("LastChange: ok=%v err=%v", ok, err)
	}
	if !record.Timestamp.Equal(at) {
		t.Errorf("timestamp = %v, want event time %v", record.Timestamp, at)
	}
	if got := record.Context.Get("event"); got != "evt-coronation" {
		t.Errorf("context event = %q", got)
	}
	if got := record.Context.Get("actor"); got != "char-1" {
		t.Errorf("context actor = %q", got)
	}
	if got := record.Context.Get("settlement"); got != "Highcourt" {
		t.Errorf("context settlement = %q", got)
	}
}

func TestApplyAllFoldsChronologicallyAndPreservesInput(t *testing.T) {
	p := NewInfluencePolicy(DefaultInfluenceConfig())
	l := mustInfluenceLedger(t)
	early := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	late := early.Add(6 * time.Hour)

	occurrences := []worldevent.Occurrence{
		{Event: worldevent.Event{ID: "evt-late", Category: worldevent.CategoryPolitical, Timestamp: late, Outcome: worldevent.OutcomeSuccess}},
		{Event: worldevent.Event{ID: "evt-early", Category: worldevent.CategoryPolitical, Timestamp: early, Outcome: worldevent.OutcomeSuccess}},
	}

	next, err := p.ApplyAll(l, occurrences)
	if err != nil {
		t.Fatalf("ApplyAll: %v", err)
	}

	history, err := next.History("political")
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("history = %d entries, want 2", len(history))
	}
	if !history[0].Timestamp.Equal(early) {
		t.Errorf("first entry at %v, want the earlier event", history[0].Timestamp)
	}

	// The caller's slice keeps its original order.
	if occurrences[0].Event.ID != "evt-late" {
		t.Errorf("input slice reordered: first is %s", occurrences[0].Event.ID)
	}
}

func TestApplyAllIsOrderIndependent(t *testing.T) {
	p := NewInfluencePolicy(DefaultInfluenceConfig())
	l := mustInfluenceLedger(t)
	base := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

	first := worldevent.Occurrence{Event: worldevent.Event{ID: "evt-1", Category: worldevent.CategoryPolitical, Timestamp: base, Intensity: 1, Outcome: worldevent.OutcomeSuccess}}
	second := worldevent.Occurrence{Event: worldevent.Event{ID: "evt-2", Category: worldevent.CategoryPolitical, Timestamp: base.Add(time.Hour), Intensity: 2, Outcome: worldevent.OutcomeFailure}}
	third := worldevent.Occurrence{Event: worldevent.Event{ID: "evt-3", Category: worldevent.CategoryPolitical, Timestamp: base.Add(2 * time.Hour), Intensity: 3, Outcome: worldevent.OutcomeSuccess}}

	sorted, err := p.ApplyAll(l, []worldevent.Occurrence{first, second, third})
	if err != nil {
		t.Fatalf("ApplyAll sorted: %v", err)
	}
	shuffled, err := p.ApplyAll(l, []worldevent.Occurrence{third, first, second})
	if err != nil {
		t.Fatalf("ApplyAll shuffled: %v", err)
	}
	if !sorted.Equal(shuffled) {
		t.Error("ApplyAll produced different ledgers for reordered inputs")
	}

	// A fold that skips the chronological sort lays history down in arrival
	// order and is not equivalent.
	unsorted := l
	for _, occ := range []worldevent.Occurrence{third, second, first} {
		unsorted, err = p.Apply(unsorted, occ.Event, occ.Actor, occ.Env)
		if err != nil {
			t.Fatalf("Apply: %v", err)
		}
	}
	if sorted.Equal(unsorted) {
		t.Error("expected an unsorted fold to differ from the chronological fold")
	}
}

func TestApplyUnknownCategoryWithoutImpactsIsNoop(t *testing.T) {
	p := NewInfluencePolicy(DefaultInfluenceConfig())
	l := mustInfluenceLedger(t)

	evt := worldevent.Event{Category: "eclipse", Timestamp: time.Now()}
	next, err := p.Apply(l, evt, worldevent.Actor{}, worldevent.Environment{})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if !next.Equal(l) {
		t.Error("expected no state change for an unknown category with no impacts")
	}
}
