// Package ledger implements the bounded multi-axis attribute ledger shared
// by the alignment, influence, and prestige subsystems.
//
// # Ledger Model
//
// A Ledger is an immutable snapshot: per-axis clamped current values plus an
// append-only history of change records. Every mutation is a value-returning
// transition via WithChange; the caller retains the pointer to the latest
// version, and the previous snapshot survives only through history entries.
//
// Replaying an axis's full history from its default value with the same
// clamp rule reproduces the current value exactly. There is no hidden
// mutation anywhere in the lineage.
//
// # Classification Bands
//
// Each axis carries ordered named bands (zones, tiers, or levels in the
// three concrete categories). Lookup returns the first band containing the
// value in declaration order; a value falling in an uncovered gap yields "no
// band", which callers must treat as a valid state. Overlap is an authoring
// concern and is deliberately not rejected at construction time.
package ledger
