package policy

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/RobinsonDionte40hz/world-history-sim-engine-sub004/internal/worldevent"
)

// ClampRange bounds a final delta for one axis under one event category.
// Asymmetric bounds are deliberate: achievement-style deltas are one-sided
// (Min 0), conflict-style deltas are two-sided.
type ClampRange struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Apply bounds amount to the range.
func (r ClampRange) Apply(amount float64) float64 {
	if amount < r.Min {
		return r.Min
	}
	if amount > r.Max {
		return r.Max
	}
	return amount
}

// Config gathers every tuning constant a policy uses: clamp tables,
// multiplier divisors and caps, role and settlement weights. Constants live
// here rather than scattered across handlers so authored tuning files can
// override them wholesale.
type Config struct {
	// DefaultClamp bounds generic-fallback entries and any category/axis
	// pair without an explicit clamp. Kept narrow on purpose.
	DefaultClamp ClampRange `yaml:"default_clamp"`
	// Clamps maps event category to axis id to clamp range. Exactly one
	// range governs each category/axis pair.
	Clamps map[string]map[string]ClampRange `yaml:"clamps"`

	// BasePoints maps event category to the policy's base magnitude before
	// intensity and multipliers. Missing categories default to 1.
	BasePoints map[string]float64 `yaml:"base_points"`

	// Witness scaling: multiplier = 1 + min(total/divisor, cap).
	WitnessDivisor float64 `yaml:"witness_divisor"`
	WitnessCap     float64 `yaml:"witness_cap"`

	// Noble witness scaling: high-born observers carry extra weight.
	NobleWitnessDivisor float64 `yaml:"noble_witness_divisor"`
	NobleWitnessCap     float64 `yaml:"noble_witness_cap"`

	// Actor attribute scaling, same shape as witness scaling.
	RankDivisor     float64 `yaml:"rank_divisor"`
	RankCap         float64 `yaml:"rank_cap"`
	WealthDivisor   float64 `yaml:"wealth_divisor"`
	WealthCap       float64 `yaml:"wealth_cap"`
	CharismaDivisor float64 `yaml:"charisma_divisor"`
	CharismaCap     float64 `yaml:"charisma_cap"`

	// RoleWeights scales magnitude by the actor's station. Missing roles
	// weigh 1.
	RoleWeights map[string]float64 `yaml:"role_weights"`
	// SettlementWeights scales magnitude by where the event happened.
	SettlementWeights map[string]float64 `yaml:"settlement_weights"`
	// CulturalAffinityBonus multiplies when the actor shares the local
	// culture. 1 disables the bonus.
	CulturalAffinityBonus float64 `yaml:"cultural_affinity_bonus"`
}

// basePoint returns the category's base magnitude, defaulting to 1.
func (c Config) basePoint(category worldevent.Category) float64 {
	if v, ok := c.BasePoints[string(category)]; ok && v > 0 {
		return v
	}
	return 1
}

// clampFor returns the single clamp range governing a category/axis pair.
func (c Config) clampFor(category worldevent.Category, axisID string) ClampRange {
	if byAxis, ok := c.Clamps[string(category)]; ok {
		if r, ok := byAxis[axisID]; ok {
			return r
		}
	}
	return c.DefaultClamp
}

// Load reads a YAML tuning file over a base config. Fields absent from the
// file keep their base values, so shipped defaults stay authoritative.
func Load(path string, base Config) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return base, err
	}
	cfg := base
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return base, fmt.Errorf("policy tuning %s: %w", path, err)
	}
	return cfg, nil
}
