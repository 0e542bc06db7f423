package worldevent

// Role is the actor's social station. Policies treat an empty role as
// RoleCitizen rather than failing.
type Role string

const (
	RoleCitizen  Role = "citizen"
	RoleSoldier  Role = "soldier"
	RoleMerchant Role = "merchant"
	RoleNoble    Role = "noble"
	RoleLeader   Role = "leader"
)

// Actor is the character an event happened to. All fields are optional at
// computation time; accessors substitute defaults.
type Actor struct {
	ID       string
	Name     string
	Role     Role
	Rank     int
	Wealth   float64
	Charisma float64
	Culture  string
	// Traits maps trait names to decay multipliers (e.g. "steadfast" slowing
	// alignment drift). Missing traits simply contribute nothing.
	Traits map[string]float64
}

// EffectiveRole returns the actor's role, defaulting to citizen.
func (a Actor) EffectiveRole() Role {
	if a.Role == "" {
		return RoleCitizen
	}
	return a.Role
}

// IsLeadership reports whether the actor holds a position of command.
func (a Actor) IsLeadership() bool {
	role := a.EffectiveRole()
	return role == RoleLeader || role == RoleNoble
}

// Trait returns the named trait multiplier, or 1 when absent.
func (a Actor) Trait(name string) float64 {
	if v, ok := a.Traits[name]; ok && v > 0 {
		return v
	}
	return 1
}

// SettlementKind classifies the size/importance of a settlement.
type SettlementKind string

const (
	SettlementHamlet  SettlementKind = "hamlet"
	SettlementVillage SettlementKind = "village"
	SettlementTown    SettlementKind = "town"
	SettlementCity    SettlementKind = "city"
	SettlementCapital SettlementKind = "capital"
)

// Settlement describes where an event took place.
type Settlement struct {
	Name       string
	Kind       SettlementKind
	Population int
	Culture    string
}

// EffectiveKind returns the settlement kind, defaulting to village.
func (s Settlement) EffectiveKind() SettlementKind {
	if s.Kind == "" {
		return SettlementVillage
	}
	return s.Kind
}

// Witnesses breaks down who saw an event happen.
type Witnesses struct {
	Total      int
	Nobles     int
	Foreigners int
}

// Environment is the surrounding context for an event.
type Environment struct {
	Settlement Settlement
	Witnesses  Witnesses
	// ActiveLocations lists places the character is currently engaged with;
	// engagement shields the matching axes from decay.
	ActiveLocations []string
	// InBattle marks battlefield context for conditional secondary effects.
	InBattle bool
}

// HasActiveLocation reports whether a location is currently active.
func (e Environment) HasActiveLocation(name string) bool {
	for _, loc := range e.ActiveLocations {
		if loc == name {
			return true
		}
	}
	return false
}
