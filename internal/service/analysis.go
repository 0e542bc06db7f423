package service

import (
	"context"

	"github.com/RobinsonDionte40hz/world-history-sim-engine-sub004/internal/analysis"
)

// Distribution summarizes how a character's attribute values spread
// across the category's axes.
func (s *LedgerService) Distribution(ctx context.Context, characterID, category string) (analysis.Distribution, error) {
	current, err := s.Snapshot(ctx, characterID, category)
	if err != nil {
		return analysis.Distribution{}, err
	}
	return analysis.Distribute(current), nil
}

// Trends reports which axes moved most recently for a character.
func (s *LedgerService) Trends(ctx context.Context, characterID, category string, opts analysis.TrendOptions) ([]analysis.AxisTrend, error) {
	current, err := s.Snapshot(ctx, characterID, category)
	if err != nil {
		return nil, err
	}
	return analysis.Trends(current, opts), nil
}

// Compare scores how compatible two characters are on one category's
// shared axes.
func (s *LedgerService) Compare(ctx context.Context, characterA, characterB, category string, opts analysis.CompareOptions) (analysis.Compatibility, error) {
	a, err := s.Snapshot(ctx, characterA, category)
	if err != nil {
		return analysis.Compatibility{}, err
	}
	b, err := s.Snapshot(ctx, characterB, category)
	if err != nil {
		return analysis.Compatibility{}, err
	}
	return analysis.Compare(a, b, opts), nil
}
