package ledger

import (
	"encoding/json"
	"time"

	apperrors "github.com/RobinsonDionte40hz/world-history-sim-engine-sub004/internal/errors"
)

// TimestampFormat is the textual format for serialized change timestamps.
const TimestampFormat = time.RFC3339Nano

type bandDoc struct {
	Name string  `json:"name"`
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Meta Context `json:"meta,omitempty"`
}

type axisDoc struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	Min     float64   `json:"min"`
	Max     float64   `json:"max"`
	Default float64   `json:"default"`
	Bands   []bandDoc `json:"bands"`
}

type recordDoc struct {
	Timestamp string  `json:"timestamp"`
	Delta     float64 `json:"delta"`
	Resulting float64 `json:"resulting"`
	Reason    string  `json:"reason"`
	Context   Context `json:"context,omitempty"`
}

type document struct {
	Axes    []axisDoc              `json:"axes"`
	Values  map[string]float64     `json:"values"`
	History map[string][]recordDoc `json:"history"`
}

// Serialize encodes the ledger as a {axes, values, history} JSON document.
// Map keys sort deterministically, so re-serializing a deserialized ledger
// yields byte-identical output.
func (l Ledger) Serialize() ([]byte, error) {
	doc := document{
		Axes:    make([]axisDoc, len(l.axes)),
		Values:  make(map[string]float64, len(l.values)),
		History: make(map[string][]recordDoc, len(l.history)),
	}
	for i, axis := range l.axes {
		bands := make([]bandDoc, len(axis.Bands))
		for j, band := range axis.Bands {
			bands[j] = bandDoc{Name: band.Name, Min: band.Min, Max: band.Max, Meta: band.Meta}
		}
		doc.Axes[i] = axisDoc{
			ID:      axis.ID,
			Name:    axis.Name,
			Min:     axis.Min,
			Max:     axis.Max,
			Default: axis.Default,
			Bands:   bands,
		}
	}
	for id, value := range l.values {
		doc.Values[id] = value
	}
	for id, records := range l.history {
		encoded := make([]recordDoc, len(records))
		for i, record := range records {
			encoded[i] = recordDoc{
				Timestamp: record.Timestamp.UTC().Format(TimestampFormat),
				Delta:     record.Delta,
				Resulting: record.Resulting,
				Reason:    record.Reason,
				Context:   record.Context,
			}
		}
		doc.History[id] = encoded
	}
	return json.Marshal(doc)
}

// Deserialize reconstructs a ledger from its serialized document.
func Deserialize(data []byte) (Ledger, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Ledger{}, apperrors.Wrap(apperrors.CodeLedgerDecode, "decode ledger document", err)
	}

	axes := make([]AxisDefinition, len(doc.Axes))
	for i, encoded := range doc.Axes {
		bands := make([]Band, len(encoded.Bands))
		for j, band := range encoded.Bands {
			bands[j] = Band{Name: band.Name, Min: band.Min, Max: band.Max, Meta: band.Meta}
		}
		axes[i] = AxisDefinition{
			ID:      encoded.ID,
			Name:    encoded.Name,
			Min:     encoded.Min,
			Max:     encoded.Max,
			Default: encoded.Default,
			Bands:   bands,
		}
	}

	l, err := New(axes...)
	if err != nil {
		return Ledger{}, err
	}

	for id, value := range doc.Values {
		i, ok := l.index[id]
		if !ok {
			return Ledger{}, apperrors.WithMetadata(apperrors.CodeLedgerDecode,
				"value references undeclared axis", map[string]string{"AxisID": id})
		}
		l.values[id] = l.axes[i].Clamp(value)
	}
	for id, encoded := range doc.History {
		if _, ok := l.index[id]; !ok {
			return Ledger{}, apperrors.WithMetadata(apperrors.CodeLedgerDecode,
				"history references undeclared axis", map[string]string{"AxisID": id})
		}
		records := make([]ChangeRecord, len(encoded))
		for i, record := range encoded {
			ts, err := time.Parse(TimestampFormat, record.Timestamp)
			if err != nil {
				return Ledger{}, apperrors.WrapWithMetadata(apperrors.CodeLedgerDecode,
					"parse change timestamp", map[string]string{"AxisID": id}, err)
			}
			records[i] = ChangeRecord{
				Timestamp: ts.UTC(),
				Delta:     record.Delta,
				Resulting: record.Resulting,
				Reason:    record.Reason,
				Context:   record.Context,
			}
		}
		l.history[id] = records
	}
	return l, nil
}
