package decay

import "github.com/RobinsonDionte40hz/world-history-sim-engine-sub004/internal/policy"

// Default tunings for the three concrete ledger categories. Band names must
// match the default axis definitions shipped with each policy.

// DefaultAlignmentConfig returns the shipped alignment decay tuning.
// Alignment drifts back toward neutral; conviction at the extremes erodes
// fastest when nothing reinforces it.
func DefaultAlignmentConfig() Config {
	return Config{
		BaseRate:         0.04,
		ReferencePeriod:  30,
		LocationDiscount: 0.25,
		MaxDiscount:      0.8,
		BandMultipliers: map[string]float64{
			policy.ZoneCruel:      1.4,
			policy.ZonePrincipled: 1.4,
			policy.ZoneAbhorrent:  2.0,
			policy.ZoneVirtuous:   2.0,
			policy.ZoneUnruly:     1.4,
			policy.ZoneOrderly:    1.4,
			policy.ZoneAnarchic:   2.0,
			policy.ZoneLawful:     2.0,
		},
		Threshold: 0.25,
		AxisLocations: map[string][]string{
			policy.AxisAlignmentMoral:   {"temple", "shrine"},
			policy.AxisAlignmentEthical: {"court", "guild_hall"},
		},
	}
}

// DefaultInfluenceConfig returns the shipped influence decay tuning.
func DefaultInfluenceConfig() Config {
	return Config{
		BaseRate:         0.06,
		ReferencePeriod:  30,
		LocationDiscount: 0.3,
		MaxDiscount:      0.8,
		BandMultipliers: map[string]float64{
			policy.TierEstablished: 1.4,
			policy.TierDominant:    1.8,
		},
		Threshold: 0.25,
		AxisLocations: map[string][]string{
			policy.AxisInfluencePolitical: {"court", "council_hall"},
			policy.AxisInfluenceEconomic:  {"market", "trade_post", "guild_hall"},
			policy.AxisInfluenceSocial:    {"tavern", "plaza", "festival_ground"},
			policy.AxisInfluenceMilitary:  {"barracks", "war_camp"},
		},
	}
}

// DefaultPrestigeConfig returns the shipped prestige decay tuning. Renown
// fades slower than influence but legendary standing demands upkeep.
func DefaultPrestigeConfig() Config {
	return Config{
		BaseRate:         0.03,
		ReferencePeriod:  30,
		LocationDiscount: 0.25,
		MaxDiscount:      0.8,
		BandMultipliers: map[string]float64{
			policy.LevelRespected: 1.4,
			policy.LevelRenowned:  1.8,
			policy.LevelLegendary: 2.0,
		},
		Threshold: 0.2,
		AxisLocations: map[string][]string{
			policy.AxisPrestigeMilitary:  {"barracks", "war_camp"},
			policy.AxisPrestigePolitical: {"court", "council_hall"},
			policy.AxisPrestigeEconomic:  {"market", "trade_post"},
			policy.AxisPrestigeCultural:  {"theater", "academy"},
			policy.AxisPrestigeSocial:    {"tavern", "plaza"},
			policy.AxisPrestigeHonor:     {"temple", "tourney_ground"},
		},
	}
}
