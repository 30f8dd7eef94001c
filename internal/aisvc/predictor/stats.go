package predictor

import (
	"math/rand/v2"
)

// Trend values.
const (
	TrendUp     = "up"
	TrendStable = "stable"
	TrendDown   = "down"
)

var trendChoices = []string{TrendUp, TrendUp, TrendStable, TrendDown}

type PlayerStats struct {
	PlayerID          int
	RecentPerformance float64 // 0-100
	MarketValue       float64
	Consistency       float64 // 0-1
	InjuryRisk        float64 // 0-1
	Trending          string
}

// StatsFor returns mock statistics seeded by player id so the same id
// always yields the same numbers.
func StatsFor(id int) PlayerStats {
	r := rand.New(rand.NewPCG(uint64(id), 0x9e3779b97f4a7c15))
	uniform := func(lo, hi float64) float64 { return lo + r.Float64()*(hi-lo) }

	return PlayerStats{
		PlayerID:          id,
		RecentPerformance: uniform(40, 95),
		MarketValue:       uniform(50, 2000),
		Consistency:       uniform(0.3, 0.95),
		InjuryRisk:        uniform(0, 0.4),
		Trending:          trendChoices[r.IntN(len(trendChoices))],
	}
}

func StatsForAll(ids []int) map[int]PlayerStats {
	stats := make(map[int]PlayerStats, len(ids))
	for _, id := range ids {
		stats[id] = StatsFor(id)
	}
	return stats
}
