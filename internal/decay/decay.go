// Package decay erodes ledger values as in-world time passes. High standing
// is costlier to maintain, activity shields what a character keeps working
// at, and everything drifts toward zero magnitude, never past it.
package decay

import (
	"fmt"
	"math"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/RobinsonDionte40hz/world-history-sim-engine-sub004/internal/ledger"
)

// Config gathers every decay tuning constant for one ledger category.
type Config struct {
	// BaseRate is the fraction of an axis value lost per reference period.
	BaseRate float64 `yaml:"base_rate"`
	// AxisRates overrides BaseRate for specific axes.
	AxisRates map[string]float64 `yaml:"axis_rates"`
	// ReferencePeriod is the elapsed-time quantity one BaseRate application
	// corresponds to (e.g. 30 for a per-30-day rate).
	ReferencePeriod float64 `yaml:"reference_period"`
	// LocationDiscount is the multiplicative rate reduction per relevant
	// active location. The reduction never increases the rate.
	LocationDiscount float64 `yaml:"location_discount"`
	// MaxDiscount caps the combined activity discount (0.8 = at most 80%).
	MaxDiscount float64 `yaml:"max_discount"`
	// BandMultipliers raises the rate for extreme classification bands,
	// keyed by band name (e.g. 1.4, 1.8, 2.0 toward the extremes).
	BandMultipliers map[string]float64 `yaml:"band_multipliers"`
	// Threshold suppresses deltas below this magnitude: no micro-noise
	// entries in the audit trail.
	Threshold float64 `yaml:"threshold"`
	// AxisLocations maps axis id to the locations whose activity shields
	// that axis. An axis absent here is shielded by nothing.
	AxisLocations map[string][]string `yaml:"axis_locations"`
}

// Modifiers carries the per-character context for one decay application.
type Modifiers struct {
	// TraitRates scales the decay rate per axis from character traits
	// (values below 1 slow decay, above 1 hasten it).
	TraitRates map[string]float64
	// ActiveLocations lists where the character is currently engaged.
	ActiveLocations []string
}

// Load reads a YAML tuning file over a base config.
func Load(path string, base Config) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return base, err
	}
	cfg := base
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return base, fmt.Errorf("decay tuning %s: %w", path, err)
	}
	return cfg, nil
}

// rateFor returns the base decay rate for an axis.
func (c Config) rateFor(axisID string) float64 {
	if r, ok := c.AxisRates[axisID]; ok && r > 0 {
		return r
	}
	return c.BaseRate
}

// referencePeriod defaults to 30 elapsed units when unconfigured.
func (c Config) referencePeriod() float64 {
	if c.ReferencePeriod > 0 {
		return c.ReferencePeriod
	}
	return 30
}

// activityFactor computes the multiplicative rate reduction from relevant
// active locations: each one discounts the rate, diminishing as they stack,
// with the combined discount hard-capped.
func (c Config) activityFactor(axisID string, mods Modifiers) float64 {
	relevant := 0
	shielding := c.AxisLocations[axisID]
	for _, active := range mods.ActiveLocations {
		for _, loc := range shielding {
			if active == loc {
				relevant++
				break
			}
		}
	}
	if relevant == 0 || c.LocationDiscount <= 0 {
		return 1
	}
	combined := 1 - math.Pow(1-c.LocationDiscount, float64(relevant))
	if c.MaxDiscount > 0 && combined > c.MaxDiscount {
		combined = c.MaxDiscount
	}
	return 1 - combined
}

// Apply produces one decayed successor of the ledger: a delta per axis with
// a non-trivial value, each recorded through the ledger's transition
// operation at the given time. Elapsed quantities of zero or less return
// the input ledger unchanged. Apply is pure; the receiver ledger survives.
func Apply(l ledger.Ledger, elapsed float64, at time.Time, mods Modifiers, cfg Config) (ledger.Ledger, error) {
	if elapsed <= 0 {
		return l, nil
	}

	var err error
	for _, axisID := range l.AxisIDs() {
		value, verr := l.Value(axisID)
		if verr != nil {
			return ledger.Ledger{}, verr
		}
		if value == 0 {
			continue
		}

		rate := cfg.rateFor(axisID)
		if rate <= 0 {
			continue
		}
		rate *= cfg.activityFactor(axisID, mods)
		if trait, ok := mods.TraitRates[axisID]; ok && trait > 0 {
			rate *= trait
		}
		if band, ok, berr := l.Band(axisID); berr == nil && ok {
			if mult, found := cfg.BandMultipliers[band.Name]; found && mult > 0 {
				rate *= mult
			}
		}

		delta := -value * rate * elapsed / cfg.referencePeriod()
		// Toward zero magnitude, never past it.
		if math.Abs(delta) > math.Abs(value) {
			delta = -value
		}
		if math.Abs(delta) < cfg.Threshold {
			continue
		}

		reason := fmt.Sprintf("decay: %g time units elapsed", elapsed)
		l, err = l.WithChangeAt(axisID, delta, reason, at, nil)
		if err != nil {
			return ledger.Ledger{}, err
		}
	}
	return l, nil
}
