package analysis

import (
	"math"

	"github.com/RobinsonDionte40hz/world-history-sim-engine-sub004/internal/ledger"
)

// CompareOptions configures cross-ledger compatibility thresholds.
type CompareOptions struct {
	// LowThreshold marks conflict areas (similarity below). Zero means 0.3.
	LowThreshold float64
	// HighThreshold marks harmonious areas (similarity above). Zero means 0.8.
	HighThreshold float64
}

// Compatibility summarizes how closely two characters' ledgers align.
type Compatibility struct {
	// Overall is the mean per-axis similarity across shared axes, in [0,1].
	Overall float64
	// PerAxis maps each shared axis to its similarity score.
	PerAxis map[string]float64
	// Conflicts lists shared axes below the low threshold.
	Conflicts []string
	// Harmonies lists shared axes above the high threshold.
	Harmonies []string
}

// Compare scores two ledgers across their shared axes: per axis,
// 1 - |v1-v2|/range, aggregated as a mean. Axes only one ledger defines are
// skipped, not errors.
func Compare(a, b ledger.Ledger, opts CompareOptions) Compatibility {
	low := opts.LowThreshold
	if low == 0 {
		low = 0.3
	}
	high := opts.HighThreshold
	if high == 0 {
		high = 0.8
	}

	result := Compatibility{PerAxis: make(map[string]float64)}
	var sum float64
	shared := 0
	for _, id := range a.AxisIDs() {
		if !b.HasAxis(id) {
			continue
		}
		axis, err := a.Axis(id)
		if err != nil || axis.Range() == 0 {
			continue
		}
		va, err := a.Value(id)
		if err != nil {
			continue
		}
		vb, err := b.Value(id)
		if err != nil {
			continue
		}

		// The two ledgers may define the same axis id over different
		// bounds, so the raw score can leave [0,1]; clamp to keep the
		// documented contract.
		score := math.Max(0, math.Min(1, 1-math.Abs(va-vb)/axis.Range()))
		result.PerAxis[id] = score
		sum += score
		shared++

		if score < low {
			result.Conflicts = append(result.Conflicts, id)
		}
		if score > high {
			result.Harmonies = append(result.Harmonies, id)
		}
	}
	if shared > 0 {
		result.Overall = sum / float64(shared)
	}
	return result
}
