package models

type LineupRequest struct {
	LeagueID         uint64   `json:"leagueId"`
	PlayerAddress    string   `json:"playerAddress"`
	AvailablePlayers []int    `json:"availablePlayers"`
	Positions        []string `json:"positions"`
	OptimizationGoal string   `json:"optimizationGoal"` // balanced, high-risk, conservative
}

type Lineup struct {
	Positions     map[string][]int `json:"positions"`
	ExpectedScore float64          `json:"expectedScore"`
	Confidence    float64          `json:"confidence"`
	Rationale     string           `json:"rationale"`
	AIMethod      string           `json:"aiMethod,omitempty"`
}

type LineupMetadata struct {
	LeagueID      uint64 `json:"leagueId"`
	PlayerAddress string `json:"playerAddress"`
	Strategy      string `json:"strategy"`
	Timestamp     int64  `json:"timestamp"`
}

type LineupResponse struct {
	Success  bool            `json:"success"`
	Lineup   Lineup          `json:"lineup"`
	Fallback bool            `json:"fallback,omitempty"`
	Metadata *LineupMetadata `json:"metadata,omitempty"`
}

type PlayerAnalysisRequest struct {
	PlayerID int `json:"playerId"`
}

type PlayerStatsView struct {
	RecentPerformance float64 `json:"recentPerformance"`
	MarketValue       float64 `json:"marketValue"`
	Consistency       float64 `json:"consistency"`
	InjuryRisk        float64 `json:"injuryRisk"`
	Trending          string  `json:"trending"`
}

type PlayerAnalysis struct {
	Success  bool            `json:"success"`
	PlayerID int             `json:"playerId"`
	Score    float64         `json:"score"`
	Stats    PlayerStatsView `json:"stats"`
}
