package policy

import (
	"fmt"

	"github.com/RobinsonDionte40hz/world-history-sim-engine-sub004/internal/ledger"
	"github.com/RobinsonDionte40hz/world-history-sim-engine-sub004/internal/worldevent"
)

// Prestige axis ids.
const (
	AxisPrestigeMilitary  = "military"
	AxisPrestigePolitical = "political"
	AxisPrestigeEconomic  = "economic"
	AxisPrestigeCultural  = "cultural"
	AxisPrestigeSocial    = "social"
	AxisPrestigeHonor     = "honor"
)

// Prestige level names, shared with decay tuning.
const (
	LevelUnknown   = "Unknown"
	LevelNoted     = "Noted"
	LevelRespected = "Respected"
	LevelRenowned  = "Renowned"
	LevelLegendary = "Legendary"
)

func prestigeLevels() []ledger.Band {
	return []ledger.Band{
		{Name: LevelUnknown, Min: 0, Max: 19},
		{Name: LevelNoted, Min: 20, Max: 39},
		{Name: LevelRespected, Min: 40, Max: 59},
		{Name: LevelRenowned, Min: 60, Max: 79},
		{Name: LevelLegendary, Min: 80, Max: 100},
	}
}

// DefaultPrestigeAxes returns the axis definitions for a prestige ledger.
func DefaultPrestigeAxes() []ledger.AxisDefinition {
	axes := []struct {
		id   string
		name string
	}{
		{AxisPrestigeMilitary, "Military Prestige"},
		{AxisPrestigePolitical, "Political Prestige"},
		{AxisPrestigeEconomic, "Economic Prestige"},
		{AxisPrestigeCultural, "Cultural Prestige"},
		{AxisPrestigeSocial, "Social Prestige"},
		{AxisPrestigeHonor, "Honor"},
	}
	out := make([]ledger.AxisDefinition, len(axes))
	for i, a := range axes {
		out[i] = ledger.AxisDefinition{
			ID:      a.id,
			Name:    a.name,
			Min:     0,
			Max:     100,
			Default: 5,
			Bands:   prestigeLevels(),
		}
	}
	return out
}

// DefaultPrestigeConfig returns the shipped prestige-evolution tuning.
// Achievement deltas are one-sided: renown is earned, not revoked, by these
// events; erosion happens through decay.
func DefaultPrestigeConfig() Config {
	return Config{
		DefaultClamp: ClampRange{Min: 0, Max: 5},
		Clamps: map[string]map[string]ClampRange{
			string(worldevent.CategoryMilitaryVictory): {
				AxisPrestigeMilitary:  {Min: 0, Max: 50},
				AxisPrestigePolitical: {Min: 0, Max: 15},
			},
			string(worldevent.CategoryPoliticalSuccess): {
				AxisPrestigePolitical: {Min: 0, Max: 40},
				AxisPrestigeSocial:    {Min: 0, Max: 12},
			},
			string(worldevent.CategoryEconomicAchievement): {
				AxisPrestigeEconomic: {Min: 0, Max: 35},
				AxisPrestigeSocial:   {Min: 0, Max: 10},
			},
			string(worldevent.CategoryCulturalContribution): {
				AxisPrestigeCultural: {Min: 0, Max: 35},
				AxisPrestigeSocial:   {Min: 0, Max: 12},
			},
			string(worldevent.CategorySocialDeed): {
				AxisPrestigeSocial: {Min: 0, Max: 30},
				AxisPrestigeHonor:  {Min: 0, Max: 10},
			},
			string(worldevent.CategoryHeroicAct): {
				AxisPrestigeHonor:    {Min: 0, Max: 40},
				AxisPrestigeSocial:   {Min: 0, Max: 15},
				AxisPrestigeMilitary: {Min: 0, Max: 15},
			},
		},
		BasePoints: map[string]float64{
			string(worldevent.CategoryMilitaryVictory):      10,
			string(worldevent.CategoryPoliticalSuccess):     8,
			string(worldevent.CategoryEconomicAchievement):  7,
			string(worldevent.CategoryCulturalContribution): 6,
			string(worldevent.CategorySocialDeed):           5,
			string(worldevent.CategoryHeroicAct):            9,
		},
		WitnessDivisor:        15,
		WitnessCap:            2.0,
		NobleWitnessDivisor:   4,
		NobleWitnessCap:       0.75,
		RankDivisor:           3,
		RankCap:               1.2,
		WealthDivisor:         4000,
		WealthCap:             1.0,
		CharismaDivisor:       8,
		CharismaCap:           1.0,
		RoleWeights:           map[string]float64{"citizen": 1, "soldier": 1.15, "merchant": 1.1, "noble": 1.4, "leader": 1.75},
		SettlementWeights:     map[string]float64{"hamlet": 0.7, "village": 0.9, "town": 1.1, "city": 1.4, "capital": 1.7},
		CulturalAffinityBonus: 1.3,
	}
}

// NewPrestigePolicy builds the prestige-evolution policy: how achievements
// convert into lasting renown across six axes.
func NewPrestigePolicy(cfg Config) *Policy {
	p := New("prestige-evolution", cfg)
	p.Register(worldevent.CategoryMilitaryVictory, prestigeMilitaryVictory)
	p.Register(worldevent.CategoryPoliticalSuccess, prestigePoliticalSuccess)
	p.Register(worldevent.CategoryEconomicAchievement, prestigeEconomicAchievement)
	p.Register(worldevent.CategoryCulturalContribution, prestigeCulturalContribution)
	p.Register(worldevent.CategorySocialDeed, prestigeSocialDeed)
	p.Register(worldevent.CategoryHeroicAct, prestigeHeroicAct)
	return p
}

func prestigeReason(in Inputs, outcome string) string {
	if in.Event.ID == "" {
		return fmt.Sprintf("%s: %s", in.Event.Category, outcome)
	}
	return fmt.Sprintf("%s %s: %s", in.Event.Category, in.Event.ID, outcome)
}

func prestigeMilitaryVictory(in Inputs) []Delta {
	amount := in.Config.basePoint(in.Event.Category) * in.Event.Magnitude() * in.Event.Sign() *
		rankMultiplier(in.Config, in.Actor) *
		witnessMultiplier(in.Config, in.Env.Witnesses)

	deltas := []Delta{{
		AxisID: AxisPrestigeMilitary,
		Amount: amount,
		Reason: prestigeReason(in, "victory on the field"),
	}}
	// A commander's victory is a political statement.
	if in.Actor.IsLeadership() || in.Actor.Rank >= 3 {
		deltas = append(deltas, Delta{
			AxisID: AxisPrestigePolitical,
			Amount: amount * 0.3,
			Reason: prestigeReason(in, "victory strengthened their position"),
		})
	}
	return deltas
}

func prestigePoliticalSuccess(in Inputs) []Delta {
	amount := in.Config.basePoint(in.Event.Category) * in.Event.Magnitude() * in.Event.Sign() *
		roleWeight(in.Config, in.Actor) *
		settlementWeight(in.Config, in.Env) *
		nobleWitnessMultiplier(in.Config, in.Env.Witnesses)

	deltas := []Delta{{
		AxisID: AxisPrestigePolitical,
		Amount: amount,
		Reason: prestigeReason(in, "a political triumph"),
	}}
	if in.Env.Witnesses.Total > 0 {
		deltas = append(deltas, Delta{
			AxisID: AxisPrestigeSocial,
			Amount: amount * 0.25,
			Reason: prestigeReason(in, "the triumph was witnessed"),
		})
	}
	return deltas
}

func prestigeEconomicAchievement(in Inputs) []Delta {
	amount := in.Config.basePoint(in.Event.Category) * in.Event.Magnitude() * in.Event.Sign() *
		wealthMultiplier(in.Config, in.Actor) *
		settlementWeight(in.Config, in.Env)

	deltas := []Delta{{
		AxisID: AxisPrestigeEconomic,
		Amount: amount,
		Reason: prestigeReason(in, "a venture paid off"),
	}}
	if in.Actor.EffectiveRole() == worldevent.RoleMerchant {
		deltas = append(deltas, Delta{
			AxisID: AxisPrestigeSocial,
			Amount: amount * 0.2,
			Reason: prestigeReason(in, "a merchant's name travels"),
		})
	}
	return deltas
}

func prestigeCulturalContribution(in Inputs) []Delta {
	amount := in.Config.basePoint(in.Event.Category) * in.Event.Magnitude() * in.Event.Sign() *
		charismaMultiplier(in.Config, in.Actor) *
		culturalAffinity(in.Config, in.Actor, in.Env)

	return []Delta{
		{
			AxisID: AxisPrestigeCultural,
			Amount: amount,
			Reason: prestigeReason(in, "a celebrated work"),
		},
		{
			AxisID: AxisPrestigeSocial,
			Amount: amount * 0.3,
			Reason: prestigeReason(in, "admirers spread the word"),
		},
	}
}

func prestigeSocialDeed(in Inputs) []Delta {
	amount := in.Config.basePoint(in.Event.Category) * in.Event.Magnitude() * in.Event.Sign() *
		charismaMultiplier(in.Config, in.Actor) *
		witnessMultiplier(in.Config, in.Env.Witnesses)

	return []Delta{
		{
			AxisID: AxisPrestigeSocial,
			Amount: amount,
			Reason: prestigeReason(in, "a public good deed"),
		},
		{
			AxisID: AxisPrestigeHonor,
			Amount: amount * 0.25,
			Reason: prestigeReason(in, "the deed spoke to their character"),
		},
	}
}

func prestigeHeroicAct(in Inputs) []Delta {
	amount := in.Config.basePoint(in.Event.Category) * in.Event.Magnitude() * in.Event.Sign() *
		witnessMultiplier(in.Config, in.Env.Witnesses) *
		nobleWitnessMultiplier(in.Config, in.Env.Witnesses)

	deltas := []Delta{
		{
			AxisID: AxisPrestigeHonor,
			Amount: amount,
			Reason: prestigeReason(in, "an act of courage"),
		},
		{
			AxisID: AxisPrestigeSocial,
			Amount: amount * 0.5,
			Reason: prestigeReason(in, "the tale retold"),
		},
	}
	// Courage in battle reads as martial prowess.
	if in.Env.InBattle {
		deltas = append(deltas, Delta{
			AxisID: AxisPrestigeMilitary,
			Amount: amount * 0.4,
			Reason: prestigeReason(in, "courage under arms"),
		})
	}
	return deltas
}
