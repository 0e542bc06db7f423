package ledger

import (
	"time"

	apperrors "github.com/RobinsonDionte40hz/world-history-sim-engine-sub004/internal/errors"
)

// ChangeRecord is one immutable audit entry describing a single applied delta.
// Resulting holds the clamped post-change value, not the raw sum.
type ChangeRecord struct {
	Timestamp time.Time
	Delta     float64
	Resulting float64
	Reason    string
	Context   Context
}

// clone returns a copy safe to hand to callers.
func (r ChangeRecord) clone() ChangeRecord {
	out := r
	out.Context = r.Context.Clone()
	return out
}

// Ledger is an immutable snapshot of current values plus per-axis audit
// history for a fixed set of axes. Every mutation is a value-returning
// transition; the receiver is never modified in place.
type Ledger struct {
	axes    []AxisDefinition
	index   map[string]int
	values  map[string]float64
	history map[string][]ChangeRecord
}

// New creates a ledger seeded with per-axis default values and empty
// histories. Axis ids must be unique and every definition must validate.
func New(axes ...AxisDefinition) (Ledger, error) {
	if len(axes) == 0 {
		return Ledger{}, apperrors.New(apperrors.CodeLedgerNoAxes, "ledger requires at least one axis")
	}

	l := Ledger{
		axes:    make([]AxisDefinition, len(axes)),
		index:   make(map[string]int, len(axes)),
		values:  make(map[string]float64, len(axes)),
		history: make(map[string][]ChangeRecord, len(axes)),
	}
	for i, axis := range axes {
		if err := axis.Validate(); err != nil {
			return Ledger{}, err
		}
		if _, exists := l.index[axis.ID]; exists {
			return Ledger{}, apperrors.WithMetadata(apperrors.CodeLedgerDuplicateAxis,
				"duplicate axis id", map[string]string{"AxisID": axis.ID})
		}
		l.axes[i] = axis.clone()
		l.index[axis.ID] = i
		l.values[axis.ID] = axis.Default
		l.history[axis.ID] = nil
	}
	return l, nil
}

// Restore builds a ledger from externally supplied state: axis definitions,
// current values, and full histories. Values are clamped to their axis
// bounds, history contexts are deep-copied, and any reference to an
// undeclared axis fails loudly. Migration utilities and the codec build on
// this single validating factory.
func Restore(axes []AxisDefinition, values map[string]float64, history map[string][]ChangeRecord) (Ledger, error) {
	l, err := New(axes...)
	if err != nil {
		return Ledger{}, err
	}
	for id, v := range values {
		i, ok := l.index[id]
		if !ok {
			return Ledger{}, unknownAxis(id)
		}
		l.values[id] = l.axes[i].Clamp(v)
	}
	for id, records := range history {
		if _, ok := l.index[id]; !ok {
			return Ledger{}, unknownAxis(id)
		}
		copied := make([]ChangeRecord, len(records))
		for i, record := range records {
			copied[i] = record
			copied[i].Timestamp = record.Timestamp.UTC()
			copied[i].Context = record.Context.Clone()
		}
		l.history[id] = copied
	}
	return l, nil
}

// unknownAxis builds the fail-fast error for ids outside this ledger's set.
func unknownAxis(axisID string) error {
	return apperrors.WithMetadata(apperrors.CodeLedgerUnknownAxis,
		"unknown axis", map[string]string{"AxisID": axisID})
}

// Value returns the current clamped value for an axis.
func (l Ledger) Value(axisID string) (float64, error) {
	if _, ok := l.index[axisID]; !ok {
		return 0, unknownAxis(axisID)
	}
	return l.values[axisID], nil
}

// Band returns the classification band for the axis's current value.
// ok=false means the value falls in an uncovered gap, a valid state.
func (l Ledger) Band(axisID string) (Band, bool, error) {
	i, ok := l.index[axisID]
	if !ok {
		return Band{}, false, unknownAxis(axisID)
	}
	band, found := l.axes[i].BandFor(l.values[axisID])
	return band, found, nil
}

// Axis returns the definition for one axis.
func (l Ledger) Axis(axisID string) (AxisDefinition, error) {
	i, ok := l.index[axisID]
	if !ok {
		return AxisDefinition{}, unknownAxis(axisID)
	}
	return l.axes[i].clone(), nil
}

// Axes returns the axis definitions in declaration order.
func (l Ledger) Axes() []AxisDefinition {
	out := make([]AxisDefinition, len(l.axes))
	for i, axis := range l.axes {
		out[i] = axis.clone()
	}
	return out
}

// AxisIDs returns the axis ids in declaration order.
func (l Ledger) AxisIDs() []string {
	ids := make([]string, len(l.axes))
	for i, axis := range l.axes {
		ids[i] = axis.ID
	}
	return ids
}

// HasAxis reports whether the ledger tracks the axis.
func (l Ledger) HasAxis(axisID string) bool {
	_, ok := l.index[axisID]
	return ok
}

// WithChange applies a delta at the current time. See WithChangeAt.
func (l Ledger) WithChange(axisID string, amount float64, reason string, provenance Context) (Ledger, error) {
	return l.WithChangeAt(axisID, amount, reason, time.Now().UTC(), provenance)
}

// WithChangeAt returns a new ledger with amount applied to one axis at the
// given time. The raw sum is clamped to the axis bounds and the appended
// change record carries the clamped resulting value and a deep copy of the
// provenance. The receiver is untouched; all other axes carry over unchanged.
func (l Ledger) WithChangeAt(axisID string, amount float64, reason string, at time.Time, provenance Context) (Ledger, error) {
	i, ok := l.index[axisID]
	if !ok {
		return Ledger{}, unknownAxis(axisID)
	}
	axis := l.axes[i]
	resulting := axis.Clamp(l.values[axisID] + amount)

	record := ChangeRecord{
		Timestamp: at.UTC(),
		Delta:     amount,
		Resulting: resulting,
		Reason:    reason,
		Context:   provenance.Clone(),
	}

	next := Ledger{
		axes:    l.axes,
		index:   l.index,
		values:  make(map[string]float64, len(l.values)),
		history: make(map[string][]ChangeRecord, len(l.history)),
	}
	for id, v := range l.values {
		next.values[id] = v
	}
	next.values[axisID] = resulting
	for id, records := range l.history {
		next.history[id] = records
	}
	prior := l.history[axisID]
	appended := make([]ChangeRecord, len(prior), len(prior)+1)
	copy(appended, prior)
	next.history[axisID] = append(appended, record)

	return next, nil
}

// History returns the ordered change records for an axis, oldest first.
// The returned records are copies; mutating them does not affect the ledger.
func (l Ledger) History(axisID string) ([]ChangeRecord, error) {
	if _, ok := l.index[axisID]; !ok {
		return nil, unknownAxis(axisID)
	}
	records := l.history[axisID]
	out := make([]ChangeRecord, len(records))
	for i, r := range records {
		out[i] = r.clone()
	}
	return out, nil
}

// LastChange returns the most recent change record for an axis, if any.
func (l Ledger) LastChange(axisID string) (ChangeRecord, bool, error) {
	if _, ok := l.index[axisID]; !ok {
		return ChangeRecord{}, false, unknownAxis(axisID)
	}
	records := l.history[axisID]
	if len(records) == 0 {
		return ChangeRecord{}, false, nil
	}
	return records[len(records)-1].clone(), true, nil
}

// Equal reports value equality: two ledgers are equal iff their serialized
// forms are identical.
func (l Ledger) Equal(other Ledger) bool {
	a, err := l.Serialize()
	if err != nil {
		return false
	}
	b, err := other.Serialize()
	if err != nil {
		return false
	}
	return string(a) == string(b)
}
