// Package analysis provides read-only queries over ledger snapshots:
// distribution and balance, trends over a time window, and cross-character
// compatibility. Nothing here mutates a ledger.
package analysis

import (
	"math"
	"sort"

	"github.com/RobinsonDionte40hz/world-history-sim-engine-sub004/internal/ledger"
)

// BandUnknown labels axes whose value falls in an uncovered band gap.
const BandUnknown = "Unknown"

// Distribution summarizes how a ledger's value mass is spread across axes.
type Distribution struct {
	Total   float64
	Average float64
	// BalanceScore is the population standard deviation across axis values:
	// 0 for perfectly equal axes, larger for skewed distributions.
	BalanceScore float64
	// Dominant holds the top third of axes by value, strongest first.
	Dominant []string
	// Weak holds the bottom third of axes by value, weakest last.
	Weak []string
	// BandCounts counts axes per classification band name.
	BandCounts map[string]int
}

// Distribute computes the distribution summary for one ledger snapshot.
func Distribute(l ledger.Ledger) Distribution {
	ids := l.AxisIDs()
	n := len(ids)
	dist := Distribution{BandCounts: make(map[string]int, n)}
	if n == 0 {
		return dist
	}

	values := make(map[string]float64, n)
	for _, id := range ids {
		v, err := l.Value(id)
		if err != nil {
			continue
		}
		values[id] = v
		dist.Total += v

		band, ok, err := l.Band(id)
		if err != nil {
			continue
		}
		if ok {
			dist.BandCounts[band.Name]++
		} else {
			dist.BandCounts[BandUnknown]++
		}
	}
	dist.Average = dist.Total / float64(n)

	var variance float64
	for _, id := range ids {
		d := values[id] - dist.Average
		variance += d * d
	}
	dist.BalanceScore = math.Sqrt(variance / float64(n))

	ranked := make([]string, n)
	copy(ranked, ids)
	sort.SliceStable(ranked, func(i, j int) bool {
		if values[ranked[i]] != values[ranked[j]] {
			return values[ranked[i]] > values[ranked[j]]
		}
		return ranked[i] < ranked[j]
	})

	third := (n + 2) / 3
	dist.Dominant = append([]string(nil), ranked[:third]...)
	dist.Weak = append([]string(nil), ranked[n-third:]...)
	return dist
}
