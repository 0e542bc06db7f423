// Package schema validates authored axis-definition documents before the
// core constructor sees them, so authoring tools get structural errors with
// JSON pointers instead of opaque decode failures. The core still
// re-validates semantics (bounds ordering, defaults, duplicates).
package schema

import (
	_ "embed"
	"encoding/json"

	"github.com/santhosh-tekuri/jsonschema/v5"

	apperrors "github.com/RobinsonDionte40hz/world-history-sim-engine-sub004/internal/errors"
	"github.com/RobinsonDionte40hz/world-history-sim-engine-sub004/internal/ledger"
)

//go:embed axes.schema.json
var axesSchemaJSON string

var axesSchema = jsonschema.MustCompileString("axes.schema.json", axesSchemaJSON)

type bandDoc struct {
	Name string         `json:"name"`
	Min  float64        `json:"min"`
	Max  float64        `json:"max"`
	Meta ledger.Context `json:"meta,omitempty"`
}

type axisDoc struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	Min     float64   `json:"min"`
	Max     float64   `json:"max"`
	Default float64   `json:"default"`
	Bands   []bandDoc `json:"bands"`
}

type axesDoc struct {
	Axes []axisDoc `json:"axes"`
}

// ValidateAxesDocument checks a raw axis document against the embedded JSON
// Schema.
func ValidateAxesDocument(data []byte) error {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return apperrors.Wrap(apperrors.CodeSchemaInvalid, "axis document is not valid JSON", err)
	}
	if err := axesSchema.Validate(doc); err != nil {
		return apperrors.Wrap(apperrors.CodeSchemaInvalid, "axis document failed schema validation", err)
	}
	return nil
}

// ParseAxes validates and decodes an authored axis document into axis
// definitions ready for ledger construction. Semantic errors (inverted
// bounds, out-of-range defaults) surface from the definitions' own
// validation when the ledger is built.
func ParseAxes(data []byte) ([]ledger.AxisDefinition, error) {
	if err := ValidateAxesDocument(data); err != nil {
		return nil, err
	}
	var doc axesDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeSchemaInvalid, "decode axis document", err)
	}
	axes := make([]ledger.AxisDefinition, len(doc.Axes))
	for i, a := range doc.Axes {
		bands := make([]ledger.Band, len(a.Bands))
		for j, b := range a.Bands {
			bands[j] = ledger.Band{Name: b.Name, Min: b.Min, Max: b.Max, Meta: b.Meta}
		}
		axes[i] = ledger.AxisDefinition{
			ID:      a.ID,
			Name:    a.Name,
			Min:     a.Min,
			Max:     a.Max,
			Default: a.Default,
			Bands:   bands,
		}
	}
	return axes, nil
}
