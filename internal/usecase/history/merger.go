// Package history reconstructs a daily net-worth series from sparse
// per-asset valuation points, carrying the last known value of each asset
// forward across dates it did not record.
package history

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/simaogato/networth-backend/internal/domain"
)

// Point is one entry of the merged net-worth series
type Point struct {
	Date  domain.Date
	Total decimal.Decimal // sum of all known asset values, rounded to 2 decimals
}

// Breakdown maps asset ID to that asset's last known value as of a date
type Breakdown map[uuid.UUID]decimal.Decimal

// Series is the merged net-worth history: one point per distinct date that
// appears in any asset's valuation history, plus a per-date breakdown
// lookup keyed by the date's ISO string. Both are value snapshots computed
// once per data refresh; callers must not mutate them incrementally.
type Series struct {
	Points     []Point
	Breakdowns map[string]Breakdown
}

// Merge builds the net-worth series for a set of assets.
//
// The walk is a two-pass algorithm over sorted immutable copies:
//  1. Per asset, stably sort its valuation history ascending by date, so a
//     same-date duplicate keeps insertion order and the later-inserted
//     point wins when applied.
//  2. Walk the ascending set of distinct dates once, maintaining a
//     last-known-value map. An asset with an entry on the exact date
//     overwrites its slot; an asset with no entry keeps its carried-forward
//     value; an asset with no entry on or before the date is absent from
//     the map entirely (excluded from the total, never treated as zero).
//
// The result is a step function: totals are piecewise constant between
// record dates, not interpolated. Inputs are never mutated; calling Merge
// twice with the same input yields identical output.
func Merge(assets []*domain.Asset) Series {
	sorted := make(map[uuid.UUID][]domain.ValuationPoint, len(assets))
	dateSet := make(map[domain.Date]struct{})

	for _, asset := range assets {
		if asset == nil || len(asset.ValueHistory) == 0 {
			continue
		}
		points := make([]domain.ValuationPoint, len(asset.ValueHistory))
		copy(points, asset.ValueHistory)
		sort.SliceStable(points, func(i, j int) bool {
			return points[i].Date.Before(points[j].Date)
		})
		sorted[asset.ID] = points
		for _, p := range points {
			dateSet[p.Date] = struct{}{}
		}
	}

	dates := make([]domain.Date, 0, len(dateSet))
	for d := range dateSet {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	series := Series{
		Points:     make([]Point, 0, len(dates)),
		Breakdowns: make(map[string]Breakdown, len(dates)),
	}

	lastKnown := make(map[uuid.UUID]decimal.Decimal)
	cursor := make(map[uuid.UUID]int, len(sorted))

	for _, date := range dates {
		for assetID, points := range sorted {
			i := cursor[assetID]
			// Apply every point on this exact date in insertion order,
			// so the later-inserted duplicate ends up winning.
			for i < len(points) && !points[i].Date.After(date) {
				lastKnown[assetID] = points[i].Value
				i++
			}
			cursor[assetID] = i
		}

		total := decimal.Zero
		snapshot := make(Breakdown, len(lastKnown))
		for assetID, value := range lastKnown {
			total = total.Add(value)
			snapshot[assetID] = value
		}

		series.Points = append(series.Points, Point{Date: date, Total: total.Round(2)})
		series.Breakdowns[date.String()] = snapshot
	}

	return series
}

// Service derives net-worth history from the persisted asset collection
type Service struct {
	AssetRepo domain.AssetRepository
}

// NewService creates a new history Service instance
func NewService(assetRepo domain.AssetRepository) *Service {
	return &Service{AssetRepo: assetRepo}
}

// GetNetWorthHistory loads the current asset snapshot and merges it
func (s *Service) GetNetWorthHistory(ctx context.Context) (Series, error) {
	assets, err := s.AssetRepo.List(ctx)
	if err != nil {
		return Series{}, fmt.Errorf("failed to list assets: %w", err)
	}
	return Merge(assets), nil
}
