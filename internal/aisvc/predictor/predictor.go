// Package predictor scores players and builds lineups with a weighted,
// rule-based model.
package predictor

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Strategies accepted as optimization goals.
const (
	Balanced     = "balanced"
	HighRisk     = "high-risk"
	Conservative = "conservative"
)

const unknownPlayerScore = 50.0

type Weights struct {
	Performance float64
	Value       float64
	Consistency float64
	Trend       float64
}

var DefaultWeights = Weights{Performance: 0.45, Value: 0.30, Consistency: 0.15, Trend: 0.10}

type Predictor struct {
	w Weights
}

func New() *Predictor {
	return &Predictor{w: DefaultWeights}
}

// Score = wP*performance + wV*min(value/100, 100) + wC*consistency*100
// + wT*trend - 15*injuryRisk, floored at zero.
func (p *Predictor) Score(s PlayerStats) float64 {
	value := math.Min(s.MarketValue/100, 100)

	var trend float64
	switch s.Trending {
	case TrendUp:
		trend = 20
	case TrendDown:
		trend = 0
	default:
		trend = 10
	}

	score := p.w.Performance*s.RecentPerformance +
		p.w.Value*value +
		p.w.Consistency*s.Consistency*100 +
		p.w.Trend*trend -
		s.InjuryRisk*15

	return math.Max(0, score)
}

type Result struct {
	Positions     map[string][]int
	ExpectedScore float64
	Rationale     string
}

type scored struct {
	id    int
	score float64
}

// Optimize assigns the best remaining player to each position in order.
// Positions left over once players run out are omitted.
func (p *Predictor) Optimize(available []int, positions []string, stats map[int]PlayerStats, strategy string) Result {
	seen := make(map[int]bool, len(available))
	ranked := make([]scored, 0, len(available))
	for _, id := range available {
		if seen[id] {
			continue
		}
		seen[id] = true

		st, ok := stats[id]
		if !ok {
			ranked = append(ranked, scored{id: id, score: unknownPlayerScore})
			continue
		}
		ranked = append(ranked, scored{id: id, score: p.Score(st) * strategyBoost(st, strategy)})
	}

	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })

	lineup := make(map[string][]int, len(positions))
	var total float64
	next := 0
	for _, pos := range positions {
		if next >= len(ranked) {
			break
		}
		lineup[pos] = append(lineup[pos], ranked[next].id)
		total += ranked[next].score
		next++
	}

	return Result{
		Positions:     lineup,
		ExpectedScore: total,
		Rationale:     rationale(lineup, stats, strategy, total),
	}
}

func strategyBoost(s PlayerStats, strategy string) float64 {
	switch strategy {
	case HighRisk:
		if s.MarketValue > 500 {
			return 1.25
		}
	case Conservative:
		if s.Consistency > 0.7 && s.InjuryRisk < 0.3 {
			return 1.15
		}
	}
	return 1
}

func rationale(lineup map[string][]int, stats map[int]PlayerStats, strategy string, total float64) string {
	var value float64
	trendingUp := 0
	for _, ids := range lineup {
		for _, id := range ids {
			st, ok := stats[id]
			if !ok {
				continue
			}
			value += st.MarketValue
			if st.Trending == TrendUp {
				trendingUp++
			}
		}
	}

	parts := []string{
		fmt.Sprintf("Optimized for %s strategy.", strategy),
		fmt.Sprintf("Expected score: %.1f.", total),
	}
	if trendingUp > 2 {
		parts = append(parts, fmt.Sprintf("%d players trending upward.", trendingUp))
	}
	if value > 3000 {
		parts = append(parts, "High-value player concentration.")
	}
	return strings.Join(parts, " ")
}

// Confidence grows with the expected score and is capped at 0.95.
func Confidence(expectedScore float64) float64 {
	return math.Min(0.95, 0.65+expectedScore/1000)
}

// Round2 rounds to two decimals for presentation.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
