package policy

import (
	"fmt"
	"strconv"

	"github.com/RobinsonDionte40hz/world-history-sim-engine-sub004/internal/ledger"
	"github.com/RobinsonDionte40hz/world-history-sim-engine-sub004/internal/worldevent"
)

// Delta is one computed, clamped change for a single axis.
type Delta struct {
	AxisID string
	Amount float64
	Reason string
}

// Inputs carries everything a category handler may consult. Handlers are
// pure functions of these inputs plus the policy config.
type Inputs struct {
	Ledger ledger.Ledger
	Event  worldevent.Event
	Actor  worldevent.Actor
	Env    worldevent.Environment
	Config Config
}

// Handler computes raw deltas for one event category. Returned amounts are
// clamped afterwards by the per-category-per-axis clamp table; handlers do
// not clamp themselves.
type Handler func(in Inputs) []Delta

// Policy maps domain events to ordered clamped axis deltas. New categories
// are additive registrations, not edits to a conditional chain. A policy
// holds no hidden state: computation is a pure function of its inputs and
// the axis definitions carried by the ledger.
type Policy struct {
	name     string
	config   Config
	handlers map[worldevent.Category]Handler
}

// New creates an empty policy with the given tuning config.
func New(name string, config Config) *Policy {
	return &Policy{
		name:     name,
		config:   config,
		handlers: make(map[worldevent.Category]Handler),
	}
}

// Name returns the policy's name.
func (p *Policy) Name() string {
	return p.name
}

// Config returns the policy's tuning config.
func (p *Policy) Config() Config {
	return p.config
}

// Register installs the handler for a category. Registering again replaces
// the previous handler.
func (p *Policy) Register(category worldevent.Category, handler Handler) {
	p.handlers[category] = handler
}

// ComputeDeltas maps (ledger, event, actor, environment) to an ordered list
// of clamped deltas. Events of unregistered categories take the generic
// impact-map path. Deltas for axes the ledger does not define are dropped,
// as are deltas clamped to zero; an empty list is a valid result.
func (p *Policy) ComputeDeltas(l ledger.Ledger, evt worldevent.Event, actor worldevent.Actor, env worldevent.Environment) []Delta {
	in := Inputs{Ledger: l, Event: evt, Actor: actor, Env: env, Config: p.config}

	var raw []Delta
	if handler, ok := p.handlers[evt.Category]; ok {
		raw = handler(in)
	} else {
		raw = genericImpacts(in)
	}

	out := make([]Delta, 0, len(raw))
	for _, d := range raw {
		if !l.HasAxis(d.AxisID) {
			continue
		}
		clamp := p.config.clampFor(evt.Category, d.AxisID)
		amount := clamp.Apply(d.Amount)
		if amount == 0 {
			continue
		}
		out = append(out, Delta{AxisID: d.AxisID, Amount: amount, Reason: d.Reason})
	}
	return out
}

// Apply computes deltas for one occurrence and folds them into the ledger,
// stamping each change with the event's timestamp and provenance.
func (p *Policy) Apply(l ledger.Ledger, evt worldevent.Event, actor worldevent.Actor, env worldevent.Environment) (ledger.Ledger, error) {
	deltas := p.ComputeDeltas(l, evt, actor, env)
	provenance := buildProvenance(evt, actor, env)
	var err error
	for _, d := range deltas {
		l, err = l.WithChangeAt(d.AxisID, d.Amount, d.Reason, evt.Timestamp, provenance)
		if err != nil {
			return ledger.Ledger{}, fmt.Errorf("apply %s delta to %s: %w", p.name, d.AxisID, err)
		}
	}
	return l, nil
}

// ApplyAll sorts occurrences chronologically and folds them through the
// ledger one at a time, strictly left to right. Order matters: later clamps
// see the already-updated value, not the original.
func (p *Policy) ApplyAll(l ledger.Ledger, occurrences []worldevent.Occurrence) (ledger.Ledger, error) {
	ordered := make([]worldevent.Occurrence, len(occurrences))
	copy(ordered, occurrences)
	worldevent.SortChronologically(ordered)

	var err error
	for _, occ := range ordered {
		l, err = p.Apply(l, occ.Event, occ.Actor, occ.Env)
		if err != nil {
			return ledger.Ledger{}, err
		}
	}
	return l, nil
}

// genericImpacts is the fallback path for unknown categories: it reads the
// event's free-form impact map so heterogeneous event streams never halt.
// Each entry is bounded later by the policy's default clamp range.
func genericImpacts(in Inputs) []Delta {
	if len(in.Event.Impacts) == 0 {
		return nil
	}
	ids := in.Ledger.AxisIDs()
	out := make([]Delta, 0, len(in.Event.Impacts))
	for _, axisID := range ids {
		amount, ok := in.Event.Impacts[axisID]
		if !ok || amount == 0 {
			continue
		}
		reason := fmt.Sprintf("%s event", in.Event.Category)
		if in.Event.ID != "" {
			reason = fmt.Sprintf("%s event %s", in.Event.Category, in.Event.ID)
		}
		out = append(out, Delta{AxisID: axisID, Amount: amount * in.Event.Magnitude(), Reason: reason})
	}
	return out
}

// buildProvenance captures structured audit context for one occurrence.
func buildProvenance(evt worldevent.Event, actor worldevent.Actor, env worldevent.Environment) ledger.Context {
	fields := ledger.Context{
		ledger.KV("event", evt.ID),
		ledger.KV("category", string(evt.Category)),
	}
	if actor.ID != "" {
		fields = append(fields, ledger.KV("actor", actor.ID))
	}
	if env.Settlement.Name != "" {
		fields = append(fields, ledger.KV("settlement", env.Settlement.Name))
	}
	if env.Witnesses.Total > 0 {
		fields = append(fields, ledger.Nested("witnesses",
			ledger.KV("total", strconv.Itoa(env.Witnesses.Total)),
			ledger.KV("nobles", strconv.Itoa(env.Witnesses.Nobles)),
			ledger.KV("foreigners", strconv.Itoa(env.Witnesses.Foreigners)),
		))
	}
	return fields
}
