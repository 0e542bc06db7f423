package policy

import (
	"fmt"

	"github.com/RobinsonDionte40hz/world-history-sim-engine-sub004/internal/ledger"
	"github.com/RobinsonDionte40hz/world-history-sim-engine-sub004/internal/worldevent"
)

// Alignment axis ids.
const (
	AxisAlignmentMoral   = "moral"
	AxisAlignmentEthical = "ethical"
)

// Alignment zone names, shared with decay tuning.
const (
	ZoneAbhorrent  = "Abhorrent"
	ZoneCruel      = "Cruel"
	ZoneNeutral    = "Neutral"
	ZonePrincipled = "Principled"
	ZoneVirtuous   = "Virtuous"

	ZoneAnarchic  = "Anarchic"
	ZoneUnruly    = "Unruly"
	ZonePragmatic = "Pragmatic"
	ZoneOrderly   = "Orderly"
	ZoneLawful    = "Lawful"
)

// DefaultAlignmentAxes returns the axis definitions for an alignment ledger:
// signed moral and ethical scales centered on zero.
func DefaultAlignmentAxes() []ledger.AxisDefinition {
	return []ledger.AxisDefinition{
		{
			ID: AxisAlignmentMoral, Name: "Moral Alignment", Min: -100, Max: 100, Default: 0,
			Bands: []ledger.Band{
				{Name: ZoneAbhorrent, Min: -100, Max: -61},
				{Name: ZoneCruel, Min: -60, Max: -21},
				{Name: ZoneNeutral, Min: -20, Max: 20},
				{Name: ZonePrincipled, Min: 21, Max: 60},
				{Name: ZoneVirtuous, Min: 61, Max: 100},
			},
		},
		{
			ID: AxisAlignmentEthical, Name: "Ethical Alignment", Min: -100, Max: 100, Default: 0,
			Bands: []ledger.Band{
				{Name: ZoneAnarchic, Min: -100, Max: -61},
				{Name: ZoneUnruly, Min: -60, Max: -21},
				{Name: ZonePragmatic, Min: -20, Max: 20},
				{Name: ZoneOrderly, Min: 21, Max: 60},
				{Name: ZoneLawful, Min: 61, Max: 100},
			},
		},
	}
}

// DefaultAlignmentConfig returns the shipped alignment-evolution tuning.
func DefaultAlignmentConfig() Config {
	return Config{
		DefaultClamp: ClampRange{Min: -4, Max: 4},
		Clamps: map[string]map[string]ClampRange{
			string(worldevent.CategoryWar): {
				AxisAlignmentMoral:   {Min: -25, Max: 15},
				AxisAlignmentEthical: {Min: -15, Max: 10},
			},
			string(worldevent.CategoryPlague): {
				AxisAlignmentMoral:   {Min: -15, Max: 20},
				AxisAlignmentEthical: {Min: -10, Max: 5},
			},
			string(worldevent.CategoryPoliticalShift): {
				AxisAlignmentEthical: {Min: -20, Max: 20},
				AxisAlignmentMoral:   {Min: -8, Max: 8},
			},
			string(worldevent.CategoryCulturalShift): {
				AxisAlignmentEthical: {Min: -12, Max: 12},
				AxisAlignmentMoral:   {Min: -12, Max: 12},
			},
		},
		BasePoints: map[string]float64{
			string(worldevent.CategoryWar):            7,
			string(worldevent.CategoryPlague):         5,
			string(worldevent.CategoryPoliticalShift): 6,
			string(worldevent.CategoryCulturalShift):  4,
		},
		WitnessDivisor:        30,
		WitnessCap:            1.0,
		RankDivisor:           5,
		RankCap:               0.8,
		CharismaDivisor:       12,
		CharismaCap:           0.5,
		RoleWeights:           map[string]float64{"citizen": 1, "soldier": 1.2, "merchant": 1, "noble": 1.3, "leader": 1.6},
		SettlementWeights:     map[string]float64{"hamlet": 1, "village": 1, "town": 1.1, "city": 1.2, "capital": 1.3},
		CulturalAffinityBonus: 1.2,
	}
}

// NewAlignmentPolicy builds the alignment-evolution policy: how moral and
// ethical standing drift under wars, plagues, and societal shifts.
func NewAlignmentPolicy(cfg Config) *Policy {
	p := New("alignment-evolution", cfg)
	p.Register(worldevent.CategoryWar, alignmentWar)
	p.Register(worldevent.CategoryPlague, alignmentPlague)
	p.Register(worldevent.CategoryPoliticalShift, alignmentPoliticalShift)
	p.Register(worldevent.CategoryCulturalShift, alignmentCulturalShift)
	return p
}

func alignmentReason(in Inputs, outcome string) string {
	if in.Event.ID == "" {
		return fmt.Sprintf("%s: %s", in.Event.Category, outcome)
	}
	return fmt.Sprintf("%s %s: %s", in.Event.Category, in.Event.ID, outcome)
}

// alignmentWar erodes moral standing by default; sparing conduct recorded as
// a "mercy" tag reverses the moral direction, while atrocities deepen it.
func alignmentWar(in Inputs) []Delta {
	base := in.Config.basePoint(in.Event.Category) * in.Event.Magnitude() *
		roleWeight(in.Config, in.Actor)

	moral := -base
	switch {
	case in.Event.HasTag("mercy"):
		moral = base * 0.8
	case in.Event.HasTag("atrocity"):
		moral = -base * 1.5
	}

	deltas := []Delta{{
		AxisID: AxisAlignmentMoral,
		Amount: moral,
		Reason: alignmentReason(in, "the weight of war"),
	}}
	// Command responsibility bends ethics toward expedience.
	if in.Actor.IsLeadership() {
		deltas = append(deltas, Delta{
			AxisID: AxisAlignmentEthical,
			Amount: -base * 0.4,
			Reason: alignmentReason(in, "wartime expedience"),
		})
	}
	return deltas
}

// alignmentPlague strains morals through fear unless the actor aided the
// sick, which is a recorded act of compassion.
func alignmentPlague(in Inputs) []Delta {
	base := in.Config.basePoint(in.Event.Category) * in.Event.Magnitude()

	moral := -base
	if in.Event.HasTag("aided_sick") {
		moral = base * charismaMultiplier(in.Config, in.Actor)
	}

	deltas := []Delta{{
		AxisID: AxisAlignmentMoral,
		Amount: moral,
		Reason: alignmentReason(in, "conduct amid the sickness"),
	}}
	if in.Event.HasTag("quarantine_broken") {
		deltas = append(deltas, Delta{
			AxisID: AxisAlignmentEthical,
			Amount: -base * 0.5,
			Reason: alignmentReason(in, "defied the quarantine"),
		})
	}
	return deltas
}

// alignmentPoliticalShift moves ethics toward or away from order depending
// on the outcome; participants in power feel it strongest.
func alignmentPoliticalShift(in Inputs) []Delta {
	base := in.Config.basePoint(in.Event.Category) * in.Event.Magnitude() * in.Event.Sign() *
		roleWeight(in.Config, in.Actor) *
		rankMultiplier(in.Config, in.Actor)

	deltas := []Delta{{
		AxisID: AxisAlignmentEthical,
		Amount: base,
		Reason: alignmentReason(in, "the order of things changed"),
	}}
	if in.Actor.IsLeadership() {
		deltas = append(deltas, Delta{
			AxisID: AxisAlignmentMoral,
			Amount: base * 0.3,
			Reason: alignmentReason(in, "choices made in the transition"),
		})
	}
	return deltas
}

// alignmentCulturalShift drifts both axes toward the surrounding culture's
// pull; sharing the local culture amplifies the drift.
func alignmentCulturalShift(in Inputs) []Delta {
	base := in.Config.basePoint(in.Event.Category) * in.Event.Magnitude() * in.Event.Sign() *
		culturalAffinity(in.Config, in.Actor, in.Env) *
		settlementWeight(in.Config, in.Env)

	return []Delta{
		{
			AxisID: AxisAlignmentEthical,
			Amount: base,
			Reason: alignmentReason(in, "prevailing values shifted"),
		},
		{
			AxisID: AxisAlignmentMoral,
			Amount: base * 0.5,
			Reason: alignmentReason(in, "prevailing values shifted"),
		},
	}
}
