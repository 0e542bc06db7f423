// Package migrate converts documents produced by the old mutable attribute
// manager into immutable ledgers. The document format is decided exactly
// once, at this boundary; the core never branches on "which shape is this".
package migrate

import (
	"encoding/json"
	"sort"
	"time"

	apperrors "github.com/RobinsonDionte40hz/world-history-sim-engine-sub004/internal/errors"
	"github.com/RobinsonDionte40hz/world-history-sim-engine-sub004/internal/ledger"
)

// Kind tags the detected document format.
type Kind string

const (
	// KindLegacy is the old mutable manager's {axes, playerValues, history}
	// shape.
	KindLegacy Kind = "legacy"
	// KindCurrent is the ledger codec's {axes, values, history} shape.
	KindCurrent Kind = "current"
)

// Source is a tagged document variant, decided once by Detect.
type Source struct {
	Kind    Kind
	Legacy  *LegacyDocument
	Current []byte
}

// LegacyZone is the old band shape with free-form metadata.
type LegacyZone struct {
	Name     string            `json:"name"`
	Min      float64           `json:"min"`
	Max      float64           `json:"max"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// LegacyAxis is the old axis shape.
type LegacyAxis struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Min          float64      `json:"min"`
	Max          float64      `json:"max"`
	DefaultValue float64      `json:"defaultValue"`
	Zones        []LegacyZone `json:"zones"`
}

// LegacyChange is one old history entry. Timestamps were written in several
// formats over the manager's lifetime.
type LegacyChange struct {
	Timestamp      string            `json:"timestamp"`
	Delta          float64           `json:"delta"`
	ResultingValue float64           `json:"resultingValue"`
	Reason         string            `json:"reason"`
	Context        map[string]string `json:"context,omitempty"`
}

// LegacyDocument is the old mutable manager's full serialized state.
type LegacyDocument struct {
	Axes         []LegacyAxis              `json:"axes"`
	PlayerValues map[string]float64        `json:"playerValues"`
	History      map[string][]LegacyChange `json:"history"`
}

// legacyTimeFormats lists accepted legacy timestamp layouts, tried in order.
var legacyTimeFormats = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Detect decides the format of a raw document. Presence of "playerValues"
// marks the legacy shape; presence of "values" marks the current shape.
func Detect(data []byte) (Source, error) {
	var probe struct {
		PlayerValues json.RawMessage `json:"playerValues"`
		Values       json.RawMessage `json:"values"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return Source{}, apperrors.Wrap(apperrors.CodeMigrationFailed, "detect document format", err)
	}
	if probe.PlayerValues != nil {
		var doc LegacyDocument
		if err := json.Unmarshal(data, &doc); err != nil {
			return Source{}, apperrors.Wrap(apperrors.CodeMigrationFailed, "decode legacy document", err)
		}
		return Source{Kind: KindLegacy, Legacy: &doc}, nil
	}
	if probe.Values != nil {
		return Source{Kind: KindCurrent, Current: data}, nil
	}
	return Source{}, apperrors.New(apperrors.CodeMigrationFailed, "document matches neither legacy nor current shape")
}

// Import converts a detected source into a ledger.
func Import(src Source) (ledger.Ledger, error) {
	switch src.Kind {
	case KindLegacy:
		if src.Legacy == nil {
			return ledger.Ledger{}, apperrors.New(apperrors.CodeMigrationFailed, "legacy source has no document")
		}
		return FromLegacy(*src.Legacy)
	case KindCurrent:
		l, err := ledger.Deserialize(src.Current)
		if err != nil {
			return ledger.Ledger{}, apperrors.Wrap(apperrors.CodeMigrationFailed, "import current document", err)
		}
		return l, nil
	default:
		return ledger.Ledger{}, apperrors.New(apperrors.CodeMigrationFailed, "unrecognized source kind")
	}
}

// FromLegacy validates and wraps a legacy document into an immutable
// ledger, preserving every historical entry. It fails loudly rather than
// producing a partial or truncated result.
func FromLegacy(doc LegacyDocument) (ledger.Ledger, error) {
	if len(doc.Axes) == 0 {
		return ledger.Ledger{}, apperrors.New(apperrors.CodeMigrationMissingAxes,
			"legacy document has no axes")
	}
	if doc.PlayerValues == nil {
		return ledger.Ledger{}, apperrors.New(apperrors.CodeMigrationMissingValues,
			"legacy document has no playerValues")
	}

	axes := make([]ledger.AxisDefinition, len(doc.Axes))
	for i, legacy := range doc.Axes {
		bands := make([]ledger.Band, len(legacy.Zones))
		for j, zone := range legacy.Zones {
			bands[j] = ledger.Band{
				Name: zone.Name,
				Min:  zone.Min,
				Max:  zone.Max,
				Meta: contextFromMap(zone.Metadata),
			}
		}
		axes[i] = ledger.AxisDefinition{
			ID:      legacy.ID,
			Name:    legacy.Name,
			Min:     legacy.Min,
			Max:     legacy.Max,
			Default: legacy.DefaultValue,
			Bands:   bands,
		}
	}

	history := make(map[string][]ledger.ChangeRecord, len(doc.History))
	for axisID, changes := range doc.History {
		records := make([]ledger.ChangeRecord, len(changes))
		for i, change := range changes {
			ts, err := parseLegacyTime(change.Timestamp)
			if err != nil {
				return ledger.Ledger{}, apperrors.WrapWithMetadata(apperrors.CodeMigrationInvalidHistory,
					"parse legacy history timestamp", map[string]string{"AxisID": axisID}, err)
			}
			records[i] = ledger.ChangeRecord{
				Timestamp: ts,
				Delta:     change.Delta,
				Resulting: change.ResultingValue,
				Reason:    change.Reason,
				Context:   contextFromMap(change.Context),
			}
		}
		history[axisID] = records
	}

	l, err := ledger.Restore(axes, doc.PlayerValues, history)
	if err != nil {
		return ledger.Ledger{}, apperrors.Wrap(apperrors.CodeMigrationFailed,
			"wrap legacy document", err)
	}
	return l, nil
}

// contextFromMap converts a legacy free-form map to ordered provenance.
// Keys sort lexicographically so conversion is deterministic.
func contextFromMap(m map[string]string) ledger.Context {
	if len(m) == 0 {
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make(ledger.Context, len(keys))
	for i, k := range keys {
		out[i] = ledger.KV(k, m[k])
	}
	return out
}

func parseLegacyTime(value string) (time.Time, error) {
	var lastErr error
	for _, layout := range legacyTimeFormats {
		ts, err := time.Parse(layout, value)
		if err == nil {
			return ts.UTC(), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
