package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avvvet/fantasy-services/internal/aisvc/predictor"
	"github.com/avvvet/fantasy-services/internal/aisvc/store"
	"github.com/avvvet/fantasy-services/internal/apisvc/models"
	log "github.com/sirupsen/logrus"
)

const (
	MethodRuleBased = "rule-based"
	MethodGemini    = "gemini-ai"
)

var ErrInvalidInput = errors.New("invalid input")

type History interface {
	Save(ctx context.Context, p *store.Prediction) error
	ByPlayer(ctx context.Context, address string, limit int64) ([]*store.Prediction, error)
}

type LineupService struct {
	predictor *predictor.Predictor
	gen       predictor.Generator
	history   History
	genTTL    time.Duration
}

// NewLineupService accepts a nil generator (rule-based only) and a nil
// history (predictions are not kept).
func NewLineupService(gen predictor.Generator, history History) *LineupService {
	return &LineupService{
		predictor: predictor.New(),
		gen:       gen,
		history:   history,
		genTTL:    20 * time.Second,
	}
}

func (s *LineupService) Predict(ctx context.Context, req *models.LineupRequest) (*models.LineupResponse, error) {
	if req.LeagueID == 0 || req.PlayerAddress == "" || req.AvailablePlayers == nil || req.Positions == nil {
		return nil, fmt.Errorf("%w: missing required field", ErrInvalidInput)
	}
	strategy := req.OptimizationGoal
	if strategy == "" {
		strategy = predictor.Balanced
	}
	log.Infof("Predicting lineup for league %d, player %s", req.LeagueID, req.PlayerAddress)

	stats := predictor.StatsForAll(req.AvailablePlayers)

	method := MethodRuleBased
	var result predictor.Result
	if r, ok := s.withGenerator(ctx, req, stats, strategy); ok {
		result, method = r, MethodGemini
	} else {
		result = s.predictor.Optimize(req.AvailablePlayers, req.Positions, stats, strategy)
	}

	confidence := predictor.Confidence(result.ExpectedScore)
	rsp := &models.LineupResponse{
		Success: true,
		Lineup: models.Lineup{
			Positions:     result.Positions,
			ExpectedScore: predictor.Round2(result.ExpectedScore),
			Confidence:    predictor.Round2(confidence),
			Rationale:     result.Rationale,
			AIMethod:      method,
		},
		Metadata: &models.LineupMetadata{
			LeagueID:      req.LeagueID,
			PlayerAddress: req.PlayerAddress,
			Strategy:      strategy,
			Timestamp:     time.Now().UnixMilli(),
		},
	}
	log.Infof("Lineup prediction successful: method=%s, score=%.1f, confidence=%.2f", method, result.ExpectedScore, confidence)

	s.remember(ctx, rsp)
	return rsp, nil
}

// withGenerator asks the language model first. Any failure or an empty
// lineup falls back to the rule-based predictor.
func (s *LineupService) withGenerator(ctx context.Context, req *models.LineupRequest, stats map[int]predictor.PlayerStats, strategy string) (predictor.Result, bool) {
	if s.gen == nil {
		return predictor.Result{}, false
	}

	ctx, cancel := context.WithTimeout(ctx, s.genTTL)
	defer cancel()

	text, err := s.gen.Generate(ctx, predictor.LineupPrompt(req.AvailablePlayers, req.Positions, stats, strategy))
	if err != nil {
		log.Errorf("Gemini prediction failed: %v, falling back to rule-based", err)
		return predictor.Result{}, false
	}

	res := predictor.ParseLineup(text, req.Positions)
	if len(res.Positions) == 0 {
		log.Warn("Gemini answer had no lineup, falling back to rule-based")
		return predictor.Result{}, false
	}
	return res, true
}

func (s *LineupService) remember(ctx context.Context, rsp *models.LineupResponse) {
	if s.history == nil {
		return
	}
	p := &store.Prediction{
		LeagueID:      rsp.Metadata.LeagueID,
		PlayerAddress: rsp.Metadata.PlayerAddress,
		Strategy:      rsp.Metadata.Strategy,
		Positions:     rsp.Lineup.Positions,
		ExpectedScore: rsp.Lineup.ExpectedScore,
		Confidence:    rsp.Lineup.Confidence,
		AIMethod:      rsp.Lineup.AIMethod,
	}
	if err := s.history.Save(ctx, p); err != nil {
		log.Errorf("Error saving prediction: %v", err)
	}
}

func (s *LineupService) Analyze(playerId int) (*models.PlayerAnalysis, error) {
	if playerId == 0 {
		return nil, fmt.Errorf("%w: missing playerId", ErrInvalidInput)
	}

	st := predictor.StatsFor(playerId)
	return &models.PlayerAnalysis{
		Success:  true,
		PlayerID: playerId,
		Score:    predictor.Round2(s.predictor.Score(st)),
		Stats: models.PlayerStatsView{
			RecentPerformance: predictor.Round2(st.RecentPerformance),
			MarketValue:       predictor.Round2(st.MarketValue),
			Consistency:       predictor.Round2(st.Consistency),
			InjuryRisk:        predictor.Round2(st.InjuryRisk),
			Trending:          st.Trending,
		},
	}, nil
}

// History returns stored predictions of an address; empty when no store is configured.
func (s *LineupService) History(ctx context.Context, address string, limit int64) ([]*store.Prediction, error) {
	if s.history == nil {
		return []*store.Prediction{}, nil
	}
	return s.history.ByPlayer(ctx, address, limit)
}
