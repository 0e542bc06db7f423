package worldevent

import (
	"sort"
	"time"
)

// Category identifies the kind of a world event. The set is closed but
// extensible: policies dispatch on it through registered handlers, and
// unknown categories fall through to a bounded generic path.
type Category string

// Broad influence-domain events.
const (
	// CategoryPolitical records elections, appointments, edicts.
	CategoryPolitical Category = "political"
	// CategoryEconomic records trade deals, market events, bankruptcies.
	CategoryEconomic Category = "economic"
	// CategorySocial records festivals, scandals, public gatherings.
	CategorySocial Category = "social"
	// CategoryMilitary records battles, sieges, campaigns.
	CategoryMilitary Category = "military"
	// CategoryCultural records artistic works, religious ceremonies.
	CategoryCultural Category = "cultural"
)

// World-shaping events that strain a character's alignment.
const (
	// CategoryWar records a declared or ongoing war touching the character.
	CategoryWar Category = "war"
	// CategoryPlague records an epidemic in the character's surroundings.
	CategoryPlague Category = "plague"
	// CategoryPoliticalShift records a regime or power-structure change.
	CategoryPoliticalShift Category = "political_shift"
	// CategoryCulturalShift records a shift in prevailing values.
	CategoryCulturalShift Category = "cultural_shift"
)

// Achievement events that build prestige.
const (
	// CategoryMilitaryVictory records a won battle or duel.
	CategoryMilitaryVictory Category = "military_victory"
	// CategoryPoliticalSuccess records a negotiation or appointment won.
	CategoryPoliticalSuccess Category = "political_success"
	// CategoryEconomicAchievement records a completed venture or monopoly.
	CategoryEconomicAchievement Category = "economic_achievement"
	// CategoryCulturalContribution records a celebrated work or patronage.
	CategoryCulturalContribution Category = "cultural_contribution"
	// CategorySocialDeed records public charity or civic service.
	CategorySocialDeed Category = "social_deed"
	// CategoryHeroicAct records a feat of personal bravery.
	CategoryHeroicAct Category = "heroic_act"
)

// Outcome describes how an event resolved for the actor.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeFailure Outcome = "failure"
	OutcomeNeutral Outcome = "neutral"
)

// Event is one in-world occurrence. Every field except Category and
// Timestamp is optional; policies substitute explicit defaults for anything
// absent and never fail on a sparse event.
type Event struct {
	// ID identifies the event for provenance trails.
	ID string
	// Category drives policy dispatch.
	Category Category
	// Timestamp orders events for chronological folding.
	Timestamp time.Time
	// Intensity scales the base magnitude. Zero means unspecified.
	Intensity float64
	// Outcome flips the sign of two-sided effects. Empty means neutral.
	Outcome Outcome
	// Impacts is a free-form axis-id to raw-delta map read by the generic
	// fallback handler for unknown categories.
	Impacts map[string]float64
	// Tags carries free-form markers (e.g. "betrayal", "mercy").
	Tags []string
}

// Magnitude returns the event's intensity. Zero and negative intensities
// are treated as unspecified and default to 1: direction is the outcome's
// job, and a negative magnitude would flip every handler's sign.
func (e Event) Magnitude() float64 {
	if e.Intensity <= 0 {
		return 1
	}
	return e.Intensity
}

// Sign maps the outcome to a delta direction: failure negates, anything
// else keeps the handler's natural sign.
func (e Event) Sign() float64 {
	if e.Outcome == OutcomeFailure {
		return -1
	}
	return 1
}

// HasTag reports whether the event carries a tag.
func (e Event) HasTag(tag string) bool {
	for _, t := range e.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// SortChronologically orders occurrences by event timestamp, oldest first.
// The sort is stable so same-instant events keep their input order.
func SortChronologically(occurrences []Occurrence) {
	sort.SliceStable(occurrences, func(i, j int) bool {
		return occurrences[i].Event.Timestamp.Before(occurrences[j].Event.Timestamp)
	})
}

// Occurrence bundles an event with the actor it happened to and the
// environment it happened in: the full input to one policy computation.
type Occurrence struct {
	Event Event
	Actor Actor
	Env   Environment
}
