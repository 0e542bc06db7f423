package analysis

import (
	"math"
	"sort"
	"time"

	"github.com/RobinsonDionte40hz/world-history-sim-engine-sub004/internal/ledger"
)

// Direction classifies an axis's recent movement.
type Direction string

const (
	DirectionRising    Direction = "rising"
	DirectionDeclining Direction = "declining"
	DirectionStable    Direction = "stable"
)

// TrendOptions configures trend analysis.
type TrendOptions struct {
	// Window bounds how far back "recent" reaches from Now.
	Window time.Duration
	// Now anchors the window; zero means time.Now().
	Now time.Time
	// Threshold is the symmetric net-delta cutoff between stable and
	// rising/declining. Zero means any net movement classifies.
	Threshold float64
	// TopN caps the significant-event list per axis. Zero means 3.
	TopN int
}

// AxisTrend is the trend summary for one axis.
type AxisTrend struct {
	AxisID    string
	Direction Direction
	// Net is the sum of recent deltas.
	Net float64
	// Significant holds the highest-magnitude recent entries, largest first.
	Significant []ledger.ChangeRecord
}

// Trends partitions each axis's history into recent entries and classifies
// the axis as rising, declining, or stable. Axes are returned in ledger
// declaration order.
func Trends(l ledger.Ledger, opts TrendOptions) []AxisTrend {
	now := opts.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}
	topN := opts.TopN
	if topN <= 0 {
		topN = 3
	}
	cutoff := now.Add(-opts.Window)

	ids := l.AxisIDs()
	out := make([]AxisTrend, 0, len(ids))
	for _, id := range ids {
		history, err := l.History(id)
		if err != nil {
			continue
		}
		var recent []ledger.ChangeRecord
		for _, record := range history {
			if !record.Timestamp.Before(cutoff) && !record.Timestamp.After(now) {
				recent = append(recent, record)
			}
		}

		trend := AxisTrend{AxisID: id, Direction: DirectionStable}
		for _, record := range recent {
			trend.Net += record.Delta
		}
		switch {
		case trend.Net > opts.Threshold:
			trend.Direction = DirectionRising
		case trend.Net < -opts.Threshold:
			trend.Direction = DirectionDeclining
		}

		sort.SliceStable(recent, func(i, j int) bool {
			return math.Abs(recent[i].Delta) > math.Abs(recent[j].Delta)
		})
		if len(recent) > topN {
			recent = recent[:topN]
		}
		trend.Significant = recent
		out = append(out, trend)
	}
	return out
}
