// Package service coordinates the read-compute-apply cycle over stored
// ledger snapshots. Writes for the same character and category are
// serialized in-process; the storage layer's version check catches
// anything that slips past that.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/RobinsonDionte40hz/world-history-sim-engine-sub004/internal/decay"
	apperrors "github.com/RobinsonDionte40hz/world-history-sim-engine-sub004/internal/errors"
	"github.com/RobinsonDionte40hz/world-history-sim-engine-sub004/internal/ledger"
	"github.com/RobinsonDionte40hz/world-history-sim-engine-sub004/internal/policy"
	"github.com/RobinsonDionte40hz/world-history-sim-engine-sub004/internal/storage"
	"github.com/RobinsonDionte40hz/world-history-sim-engine-sub004/internal/telemetry"
	"github.com/RobinsonDionte40hz/world-history-sim-engine-sub004/internal/worldevent"
)

// Ledger categories the service tracks per character.
const (
	CategoryAlignment = "alignment"
	CategoryInfluence = "influence"
	CategoryPrestige  = "prestige"
)

// CategoryProfile bundles everything needed to run one ledger category:
// the axes a fresh ledger starts with, the policy that turns world
// events into deltas, and the decay tuning.
type CategoryProfile struct {
	Axes   []ledger.AxisDefinition
	Policy *policy.Policy
	Decay  decay.Config
}

// DefaultProfiles returns the built-in alignment, influence, and
// prestige category profiles.
func DefaultProfiles() map[string]CategoryProfile {
	return map[string]CategoryProfile{
		CategoryAlignment: {
			Axes:   policy.DefaultAlignmentAxes(),
			Policy: policy.NewAlignmentPolicy(policy.DefaultAlignmentConfig()),
			Decay:  decay.DefaultAlignmentConfig(),
		},
		CategoryInfluence: {
			Axes:   policy.DefaultInfluenceAxes(),
			Policy: policy.NewInfluencePolicy(policy.DefaultInfluenceConfig()),
			Decay:  decay.DefaultInfluenceConfig(),
		},
		CategoryPrestige: {
			Axes:   policy.DefaultPrestigeAxes(),
			Policy: policy.NewPrestigePolicy(policy.DefaultPrestigeConfig()),
			Decay:  decay.DefaultPrestigeConfig(),
		},
	}
}

// LedgerService applies world events and decay to stored ledgers and
// serves reads from the latest snapshot.
type LedgerService struct {
	store    storage.LedgerStore
	emitter  *telemetry.Emitter
	profiles map[string]CategoryProfile
	tracer   trace.Tracer

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewLedgerService creates a service over store with the given category
// profiles. A nil emitter disables telemetry.
func NewLedgerService(store storage.LedgerStore, emitter *telemetry.Emitter, profiles map[string]CategoryProfile) (*LedgerService, error) {
	if store == nil {
		return nil, errors.New("ledger store is required")
	}
	if len(profiles) == 0 {
		return nil, errors.New("at least one category profile is required")
	}
	return &LedgerService{
		store:    store,
		emitter:  emitter,
		profiles: profiles,
		tracer:   otel.Tracer("worldsim/service"),
		locks:    map[string]*sync.Mutex{},
	}, nil
}

// Categories returns the category names the service is configured with.
func (s *LedgerService) Categories() []string {
	names := make([]string, 0, len(s.profiles))
	for name := range s.profiles {
		names = append(names, name)
	}
	return names
}

func (s *LedgerService) validateKey(characterID, category string) (CategoryProfile, error) {
	if characterID == "" {
		return CategoryProfile{}, apperrors.New(apperrors.CodeCharacterEmptyID, "character id is required")
	}
	profile, ok := s.profiles[category]
	if !ok {
		return CategoryProfile{}, apperrors.WithMetadata(apperrors.CodeCategoryInvalid,
			fmt.Sprintf("unknown ledger category %q", category),
			map[string]string{"category": category})
	}
	return profile, nil
}

func validateEvent(evt worldevent.Event) error {
	if evt.Category == "" {
		return apperrors.New(apperrors.CodeEventEmptyCategory, "event category is required")
	}
	if evt.Timestamp.IsZero() {
		return apperrors.New(apperrors.CodeEventMissingTimestamp, "event timestamp is required")
	}
	return nil
}

// lockFor returns the mutex serializing writes to one character ledger.
func (s *LedgerService) lockFor(characterID, category string) *sync.Mutex {
	key := characterID + "/" + category
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[key] = lock
	}
	return lock
}

// load returns the current ledger and its stored version. A missing
// snapshot yields a fresh ledger at version 0.
func (s *LedgerService) load(ctx context.Context, characterID, category string, profile CategoryProfile) (ledger.Ledger, uint64, error) {
	record, err := s.store.GetLedger(ctx, characterID, category)
	if errors.Is(err, storage.ErrNotFound) {
		fresh, err := ledger.New(profile.Axes...)
		if err != nil {
			return ledger.Ledger{}, 0, err
		}
		return fresh, 0, nil
	}
	if err != nil {
		return ledger.Ledger{}, 0, err
	}
	current, err := ledger.Deserialize(record.Document)
	if err != nil {
		return ledger.Ledger{}, 0, err
	}
	return current, record.Version, nil
}

func (s *LedgerService) persist(ctx context.Context, characterID, category string, l ledger.Ledger, version uint64) error {
	document, err := l.Serialize()
	if err != nil {
		return err
	}
	return s.store.PutLedger(ctx, storage.LedgerRecord{
		CharacterID: characterID,
		Category:    category,
		Document:    document,
		Version:     version,
		UpdatedAt:   time.Now().UTC(),
	})
}

// ApplyOccurrence routes one world event through the category's policy
// and persists the successor snapshot.
func (s *LedgerService) ApplyOccurrence(ctx context.Context, characterID, category string, occ worldevent.Occurrence) (ledger.Ledger, error) {
	return s.ApplyOccurrences(ctx, characterID, category, []worldevent.Occurrence{occ})
}

// ApplyOccurrences folds a batch of world events, oldest first, through
// the category's policy and persists the successor snapshot. The input
// slice is not modified.
func (s *LedgerService) ApplyOccurrences(ctx context.Context, characterID, category string, occurrences []worldevent.Occurrence) (ledger.Ledger, error) {
	profile, err := s.validateKey(characterID, category)
	if err != nil {
		return ledger.Ledger{}, err
	}
	for _, occ := range occurrences {
		if err := validateEvent(occ.Event); err != nil {
			return ledger.Ledger{}, err
		}
	}

	ctx, span := s.tracer.Start(ctx, "ledger.apply_occurrences",
		trace.WithAttributes(
			attribute.String("character_id", characterID),
			attribute.String("category", category),
			attribute.Int("occurrences", len(occurrences)),
		))
	defer span.End()

	lock := s.lockFor(characterID, category)
	lock.Lock()
	defer lock.Unlock()

	current, version, err := s.load(ctx, characterID, category, profile)
	if err != nil {
		s.emitFailure(ctx, telemetry.OperationApplyEvent, characterID, category, err)
		return ledger.Ledger{}, err
	}

	next, err := profile.Policy.ApplyAll(current, occurrences)
	if err != nil {
		s.emitFailure(ctx, telemetry.OperationApplyEvent, characterID, category, err)
		return ledger.Ledger{}, err
	}

	if err := s.persist(ctx, characterID, category, next, version+1); err != nil {
		s.emitFailure(ctx, telemetry.OperationApplyEvent, characterID, category, err)
		return ledger.Ledger{}, err
	}
	s.emitApplied(ctx, telemetry.OperationApplyEvent, characterID, category, len(occurrences))
	return next, nil
}

// ApplyDecay attenuates the stored ledger for elapsed time units and
// persists the successor snapshot.
func (s *LedgerService) ApplyDecay(ctx context.Context, characterID, category string, elapsed float64, at time.Time, mods decay.Modifiers) (ledger.Ledger, error) {
	profile, err := s.validateKey(characterID, category)
	if err != nil {
		return ledger.Ledger{}, err
	}

	ctx, span := s.tracer.Start(ctx, "ledger.apply_decay",
		trace.WithAttributes(
			attribute.String("character_id", characterID),
			attribute.String("category", category),
			attribute.Float64("elapsed", elapsed),
		))
	defer span.End()

	lock := s.lockFor(characterID, category)
	lock.Lock()
	defer lock.Unlock()

	current, version, err := s.load(ctx, characterID, category, profile)
	if err != nil {
		s.emitFailure(ctx, telemetry.OperationApplyDecay, characterID, category, err)
		return ledger.Ledger{}, err
	}

	next, err := decay.Apply(current, elapsed, at, mods, profile.Decay)
	if err != nil {
		s.emitFailure(ctx, telemetry.OperationApplyDecay, characterID, category, err)
		return ledger.Ledger{}, err
	}
	if next.Equal(current) && version > 0 {
		// Nothing moved; skip the write.
		return current, nil
	}

	if err := s.persist(ctx, characterID, category, next, version+1); err != nil {
		s.emitFailure(ctx, telemetry.OperationApplyDecay, characterID, category, err)
		return ledger.Ledger{}, err
	}
	s.emitApplied(ctx, telemetry.OperationApplyDecay, characterID, category, 1)
	return next, nil
}

// ImportLedger stores an already-built ledger as the first snapshot for
// a character and category. Used by migration tooling.
func (s *LedgerService) ImportLedger(ctx context.Context, characterID, category string, l ledger.Ledger) error {
	if _, err := s.validateKey(characterID, category); err != nil {
		return err
	}

	lock := s.lockFor(characterID, category)
	lock.Lock()
	defer lock.Unlock()

	if err := s.persist(ctx, characterID, category, l, 1); err != nil {
		s.emitFailure(ctx, telemetry.OperationMigrate, characterID, category, err)
		return err
	}
	s.emitApplied(ctx, telemetry.OperationMigrate, characterID, category, 1)
	return nil
}

// Snapshot returns the current ledger for a character and category. A
// character with no stored snapshot gets a fresh ledger at the
// category's defaults.
func (s *LedgerService) Snapshot(ctx context.Context, characterID, category string) (ledger.Ledger, error) {
	profile, err := s.validateKey(characterID, category)
	if err != nil {
		return ledger.Ledger{}, err
	}
	current, _, err := s.load(ctx, characterID, category, profile)
	return current, err
}

// Value returns the current value of one axis.
func (s *LedgerService) Value(ctx context.Context, characterID, category, axisID string) (float64, error) {
	current, err := s.Snapshot(ctx, characterID, category)
	if err != nil {
		return 0, err
	}
	return current.Value(axisID)
}

// Band returns the classification band the axis value falls in, with
// ok=false when the value sits in a gap between bands.
func (s *LedgerService) Band(ctx context.Context, characterID, category, axisID string) (ledger.Band, bool, error) {
	current, err := s.Snapshot(ctx, characterID, category)
	if err != nil {
		return ledger.Band{}, false, err
	}
	return current.Band(axisID)
}

// AxisIDs returns the axis identifiers of a category's ledger in
// declaration order.
func (s *LedgerService) AxisIDs(ctx context.Context, characterID, category string) ([]string, error) {
	current, err := s.Snapshot(ctx, characterID, category)
	if err != nil {
		return nil, err
	}
	return current.AxisIDs(), nil
}

// History returns the audit trail for one axis, oldest first.
func (s *LedgerService) History(ctx context.Context, characterID, category, axisID string) ([]ledger.ChangeRecord, error) {
	current, err := s.Snapshot(ctx, characterID, category)
	if err != nil {
		return nil, err
	}
	return current.History(axisID)
}

func (s *LedgerService) emitApplied(ctx context.Context, operation, characterID, category string, changes int) {
	if err := s.emitter.EmitApplied(ctx, operation, characterID, category, changes); err != nil {
		trace.SpanFromContext(ctx).RecordError(err)
	}
}

func (s *LedgerService) emitFailure(ctx context.Context, operation, characterID, category string, cause error) {
	if err := s.emitter.EmitFailure(ctx, operation, characterID, category, cause); err != nil {
		trace.SpanFromContext(ctx).RecordError(err)
	}
}
