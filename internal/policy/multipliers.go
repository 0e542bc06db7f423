package policy

import "github.com/RobinsonDionte40hz/world-history-sim-engine-sub004/internal/worldevent"

// scaled computes the shared 1 + min(quantity/divisor, cap) shape used by
// every attribute multiplier. Monotonic in quantity, bounded by cap, and 1
// when the quantity is absent or the divisor unconfigured.
func scaled(quantity, divisor, cap float64) float64 {
	if quantity <= 0 || divisor <= 0 {
		return 1
	}
	bonus := quantity / divisor
	if cap > 0 && bonus > cap {
		bonus = cap
	}
	return 1 + bonus
}

// witnessMultiplier grows with witness count, bounded by the configured cap.
func witnessMultiplier(cfg Config, w worldevent.Witnesses) float64 {
	return scaled(float64(w.Total), cfg.WitnessDivisor, cfg.WitnessCap)
}

// nobleWitnessMultiplier grows with the count of high-born observers.
func nobleWitnessMultiplier(cfg Config, w worldevent.Witnesses) float64 {
	return scaled(float64(w.Nobles), cfg.NobleWitnessDivisor, cfg.NobleWitnessCap)
}

// rankMultiplier grows with the actor's rank.
func rankMultiplier(cfg Config, actor worldevent.Actor) float64 {
	return scaled(float64(actor.Rank), cfg.RankDivisor, cfg.RankCap)
}

// wealthMultiplier grows with the actor's wealth.
func wealthMultiplier(cfg Config, actor worldevent.Actor) float64 {
	return scaled(actor.Wealth, cfg.WealthDivisor, cfg.WealthCap)
}

// charismaMultiplier grows with the actor's charisma.
func charismaMultiplier(cfg Config, actor worldevent.Actor) float64 {
	return scaled(actor.Charisma, cfg.CharismaDivisor, cfg.CharismaCap)
}

// roleWeight looks up the actor's station weight, defaulting to 1.
func roleWeight(cfg Config, actor worldevent.Actor) float64 {
	if w, ok := cfg.RoleWeights[string(actor.EffectiveRole())]; ok && w > 0 {
		return w
	}
	return 1
}

// settlementWeight looks up the settlement kind weight, defaulting to 1.
func settlementWeight(cfg Config, env worldevent.Environment) float64 {
	if w, ok := cfg.SettlementWeights[string(env.Settlement.EffectiveKind())]; ok && w > 0 {
		return w
	}
	return 1
}

// culturalAffinity applies the configured bonus when the actor shares the
// settlement's culture.
func culturalAffinity(cfg Config, actor worldevent.Actor, env worldevent.Environment) float64 {
	if actor.Culture == "" || env.Settlement.Culture == "" {
		return 1
	}
	if actor.Culture != env.Settlement.Culture {
		return 1
	}
	if cfg.CulturalAffinityBonus <= 0 {
		return 1
	}
	return cfg.CulturalAffinityBonus
}
