package policy

import (
	"fmt"

	"github.com/RobinsonDionte40hz/world-history-sim-engine-sub004/internal/ledger"
	"github.com/RobinsonDionte40hz/world-history-sim-engine-sub004/internal/worldevent"
)

// Influence axis ids.
const (
	AxisInfluencePolitical = "political"
	AxisInfluenceEconomic  = "economic"
	AxisInfluenceSocial    = "social"
	AxisInfluenceMilitary  = "military"
)

// Influence tier names, shared with decay tuning.
const (
	TierMarginal    = "Marginal"
	TierRecognized  = "Recognized"
	TierEstablished = "Established"
	TierDominant    = "Dominant"
)

func influenceTiers() []ledger.Band {
	return []ledger.Band{
		{Name: TierMarginal, Min: 0, Max: 24},
		{Name: TierRecognized, Min: 25, Max: 49},
		{Name: TierEstablished, Min: 50, Max: 74},
		{Name: TierDominant, Min: 75, Max: 100},
	}
}

// DefaultInfluenceAxes returns the axis definitions for an influence ledger.
func DefaultInfluenceAxes() []ledger.AxisDefinition {
	axes := []struct {
		id   string
		name string
	}{
		{AxisInfluencePolitical, "Political Influence"},
		{AxisInfluenceEconomic, "Economic Influence"},
		{AxisInfluenceSocial, "Social Influence"},
		{AxisInfluenceMilitary, "Military Influence"},
	}
	out := make([]ledger.AxisDefinition, len(axes))
	for i, a := range axes {
		out[i] = ledger.AxisDefinition{
			ID:      a.id,
			Name:    a.name,
			Min:     0,
			Max:     100,
			Default: 10,
			Bands:   influenceTiers(),
		}
	}
	return out
}

// DefaultInfluenceConfig returns the shipped influence-evolution tuning.
func DefaultInfluenceConfig() Config {
	return Config{
		DefaultClamp: ClampRange{Min: -5, Max: 5},
		Clamps: map[string]map[string]ClampRange{
			string(worldevent.CategoryPolitical): {
				AxisInfluencePolitical: {Min: -30, Max: 30},
				AxisInfluenceSocial:    {Min: -10, Max: 10},
			},
			string(worldevent.CategoryEconomic): {
				AxisInfluenceEconomic:  {Min: -25, Max: 25},
				AxisInfluencePolitical: {Min: -8, Max: 8},
			},
			string(worldevent.CategorySocial): {
				AxisInfluenceSocial:    {Min: -20, Max: 20},
				AxisInfluencePolitical: {Min: -6, Max: 6},
			},
			string(worldevent.CategoryMilitary): {
				AxisInfluenceMilitary:  {Min: -30, Max: 30},
				AxisInfluencePolitical: {Min: -10, Max: 10},
			},
			string(worldevent.CategoryCultural): {
				AxisInfluenceSocial: {Min: -15, Max: 15},
			},
		},
		BasePoints: map[string]float64{
			string(worldevent.CategoryPolitical): 8,
			string(worldevent.CategoryEconomic):  6,
			string(worldevent.CategorySocial):    5,
			string(worldevent.CategoryMilitary):  7,
			string(worldevent.CategoryCultural):  4,
		},
		WitnessDivisor:        20,
		WitnessCap:            1.5,
		NobleWitnessDivisor:   5,
		NobleWitnessCap:       0.6,
		RankDivisor:           4,
		RankCap:               1.0,
		WealthDivisor:         5000,
		WealthCap:             1.2,
		CharismaDivisor:       10,
		CharismaCap:           0.8,
		RoleWeights:           map[string]float64{"citizen": 1, "soldier": 1.1, "merchant": 1.2, "noble": 1.5, "leader": 2},
		SettlementWeights:     map[string]float64{"hamlet": 0.8, "village": 1, "town": 1.2, "city": 1.5, "capital": 1.8},
		CulturalAffinityBonus: 1.25,
	}
}

// NewInfluencePolicy builds the influence-evolution policy: how political,
// economic, social, and military standing respond to domain events.
func NewInfluencePolicy(cfg Config) *Policy {
	p := New("influence-evolution", cfg)
	p.Register(worldevent.CategoryPolitical, influencePolitical)
	p.Register(worldevent.CategoryEconomic, influenceEconomic)
	p.Register(worldevent.CategorySocial, influenceSocial)
	p.Register(worldevent.CategoryMilitary, influenceMilitary)
	p.Register(worldevent.CategoryCultural, influenceCultural)
	return p
}

func influenceReason(in Inputs, outcome string) string {
	if in.Event.ID == "" {
		return fmt.Sprintf("%s: %s", in.Event.Category, outcome)
	}
	return fmt.Sprintf("%s %s: %s", in.Event.Category, in.Event.ID, outcome)
}

func influencePolitical(in Inputs) []Delta {
	amount := in.Config.basePoint(in.Event.Category) * in.Event.Magnitude() * in.Event.Sign() *
		roleWeight(in.Config, in.Actor) *
		rankMultiplier(in.Config, in.Actor) *
		witnessMultiplier(in.Config, in.Env.Witnesses) *
		settlementWeight(in.Config, in.Env)

	deltas := []Delta{{
		AxisID: AxisInfluencePolitical,
		Amount: amount,
		Reason: influenceReason(in, "political standing shifted"),
	}}
	// Visible political moves ripple into social standing for public figures.
	if in.Actor.IsLeadership() && in.Env.Witnesses.Total > 0 {
		deltas = append(deltas, Delta{
			AxisID: AxisInfluenceSocial,
			Amount: amount * 0.4,
			Reason: influenceReason(in, "public political presence"),
		})
	}
	return deltas
}

func influenceEconomic(in Inputs) []Delta {
	amount := in.Config.basePoint(in.Event.Category) * in.Event.Magnitude() * in.Event.Sign() *
		wealthMultiplier(in.Config, in.Actor) *
		settlementWeight(in.Config, in.Env)

	deltas := []Delta{{
		AxisID: AxisInfluenceEconomic,
		Amount: amount,
		Reason: influenceReason(in, "economic position shifted"),
	}}
	// Wealth translates into political leverage only for the well-placed.
	if in.Actor.IsLeadership() || in.Actor.EffectiveRole() == worldevent.RoleMerchant {
		deltas = append(deltas, Delta{
			AxisID: AxisInfluencePolitical,
			Amount: amount * 0.3,
			Reason: influenceReason(in, "economic leverage"),
		})
	}
	return deltas
}

func influenceSocial(in Inputs) []Delta {
	amount := in.Config.basePoint(in.Event.Category) * in.Event.Magnitude() * in.Event.Sign() *
		charismaMultiplier(in.Config, in.Actor) *
		witnessMultiplier(in.Config, in.Env.Witnesses) *
		culturalAffinity(in.Config, in.Actor, in.Env)

	deltas := []Delta{{
		AxisID: AxisInfluenceSocial,
		Amount: amount,
		Reason: influenceReason(in, "social standing shifted"),
	}}
	if in.Actor.IsLeadership() {
		deltas = append(deltas, Delta{
			AxisID: AxisInfluencePolitical,
			Amount: amount * 0.25,
			Reason: influenceReason(in, "social capital spent politically"),
		})
	}
	return deltas
}

func influenceMilitary(in Inputs) []Delta {
	amount := in.Config.basePoint(in.Event.Category) * in.Event.Magnitude() * in.Event.Sign() *
		roleWeight(in.Config, in.Actor) *
		rankMultiplier(in.Config, in.Actor)

	deltas := []Delta{{
		AxisID: AxisInfluenceMilitary,
		Amount: amount,
		Reason: influenceReason(in, "military standing shifted"),
	}}
	// Command outcomes reach the political sphere for high-rank actors.
	if in.Actor.IsLeadership() || in.Actor.Rank >= 3 {
		deltas = append(deltas, Delta{
			AxisID: AxisInfluencePolitical,
			Amount: amount * 0.35,
			Reason: influenceReason(in, "military reputation in court"),
		})
	}
	return deltas
}

func influenceCultural(in Inputs) []Delta {
	amount := in.Config.basePoint(in.Event.Category) * in.Event.Magnitude() * in.Event.Sign() *
		charismaMultiplier(in.Config, in.Actor) *
		culturalAffinity(in.Config, in.Actor, in.Env) *
		settlementWeight(in.Config, in.Env)

	return []Delta{{
		AxisID: AxisInfluenceSocial,
		Amount: amount,
		Reason: influenceReason(in, "cultural resonance"),
	}}
}
