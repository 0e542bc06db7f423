package ledger

import (
	apperrors "github.com/RobinsonDionte40hz/world-history-sim-engine-sub004/internal/errors"
)

// AxisDefinition is the static schema for one tracked axis: its bounds,
// default value, and ordered classification bands.
type AxisDefinition struct {
	ID      string
	Name    string
	Min     float64
	Max     float64
	Default float64
	Bands   []Band
}

// Band is a named sub-range of an axis used for classification and for
// decay/multiplier tuning. Meta carries free-form authored metadata.
type Band struct {
	Name string
	Min  float64
	Max  float64
	Meta Context
}

// Contains reports whether value falls inside the band's inclusive range.
func (b Band) Contains(value float64) bool {
	return value >= b.Min && value <= b.Max
}

// Validate checks the axis schema invariants. Band overlap is intentionally
// not rejected; authoring tooling warns, lookup resolves by declaration order.
func (a AxisDefinition) Validate() error {
	if a.ID == "" {
		return apperrors.New(apperrors.CodeAxisEmptyID, "axis id is required")
	}
	if a.Name == "" {
		return apperrors.WithMetadata(apperrors.CodeAxisEmptyName, "axis name is required",
			map[string]string{"AxisID": a.ID})
	}
	if a.Min >= a.Max {
		return apperrors.WithMetadata(apperrors.CodeAxisInvalidBounds, "axis min must be below max",
			map[string]string{"AxisID": a.ID})
	}
	if a.Default < a.Min || a.Default > a.Max {
		return apperrors.WithMetadata(apperrors.CodeAxisDefaultOutOfRange, "axis default outside bounds",
			map[string]string{"AxisID": a.ID})
	}
	if len(a.Bands) == 0 {
		return apperrors.WithMetadata(apperrors.CodeAxisNoBands, "axis requires at least one band",
			map[string]string{"AxisID": a.ID})
	}
	for _, band := range a.Bands {
		if band.Min >= band.Max {
			return apperrors.WithMetadata(apperrors.CodeAxisInvalidBand, "band min must be below max",
				map[string]string{"AxisID": a.ID, "Band": band.Name})
		}
	}
	return nil
}

// BandFor returns the first band in declaration order containing value.
// A value falling in an uncovered gap yields ok=false; callers must treat
// "no band" as a valid state, not an error.
func (a AxisDefinition) BandFor(value float64) (Band, bool) {
	for _, band := range a.Bands {
		if band.Contains(value) {
			return band, true
		}
	}
	return Band{}, false
}

// Range returns the width of the axis bounds.
func (a AxisDefinition) Range() float64 {
	return a.Max - a.Min
}

// Clamp bounds value to the axis range.
func (a AxisDefinition) Clamp(value float64) float64 {
	if value < a.Min {
		return a.Min
	}
	if value > a.Max {
		return a.Max
	}
	return value
}

// clone returns a deep copy of the axis definition.
func (a AxisDefinition) clone() AxisDefinition {
	out := a
	if a.Bands != nil {
		out.Bands = make([]Band, len(a.Bands))
		for i, band := range a.Bands {
			out.Bands[i] = band
			out.Bands[i].Meta = band.Meta.Clone()
		}
	}
	return out
}
