// Package telemetry records operational events emitted by the ledger
// services. Events land in a storage.TelemetryStore so operators can
// reconstruct how a character's attribute state evolved.
package telemetry

import (
	"context"
	"fmt"
	"time"

	"github.com/RobinsonDionte40hz/world-history-sim-engine-sub004/internal/storage"
)

// Severity levels used by emitted events.
const (
	SeverityInfo  = "INFO"
	SeverityWarn  = "WARN"
	SeverityError = "ERROR"
)

// Operation names recorded on emitted events.
const (
	OperationApplyEvent = "apply_event"
	OperationApplyDecay = "apply_decay"
	OperationMigrate    = "migrate"
)

// Emitter records operational telemetry events.
type Emitter struct {
	store storage.TelemetryStore
	clock func() time.Time
}

// NewEmitter creates a new telemetry emitter.
func NewEmitter(store storage.TelemetryStore) *Emitter {
	return &Emitter{store: store, clock: time.Now}
}

// Emit records a telemetry event. It is a no-op when the store is nil.
func (e *Emitter) Emit(ctx context.Context, evt storage.TelemetryEvent) error {
	if e == nil || e.store == nil {
		return nil
	}
	if evt.Timestamp.IsZero() {
		if e.clock == nil {
			evt.Timestamp = time.Now().UTC()
		} else {
			evt.Timestamp = e.clock().UTC()
		}
	}
	return e.store.AppendTelemetryEvent(ctx, evt)
}

// EmitApplied records a successful state change for one character ledger.
func (e *Emitter) EmitApplied(ctx context.Context, operation, characterID, category string, changes int) error {
	return e.Emit(ctx, storage.TelemetryEvent{
		Severity:    SeverityInfo,
		Operation:   operation,
		CharacterID: characterID,
		Category:    category,
		Message:     fmt.Sprintf("applied %d changes", changes),
	})
}

// EmitFailure records a failed operation for one character ledger.
func (e *Emitter) EmitFailure(ctx context.Context, operation, characterID, category string, cause error) error {
	message := ""
	if cause != nil {
		message = cause.Error()
	}
	return e.Emit(ctx, storage.TelemetryEvent{
		Severity:    SeverityError,
		Operation:   operation,
		CharacterID: characterID,
		Category:    category,
		Message:     message,
	})
}
