package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"syscall"

	"github.com/avvvet/fantasy-services/internal/apisvc/models"
	log "github.com/sirupsen/logrus"
)

const fallbackRationale = "AI service unavailable. Using fallback lineup."

type AIService struct {
	client AIClient
}

func NewAIService(client AIClient) *AIService {
	return &AIService{client: client}
}

// PredictLineup forwards the request to the AI service. When the service
// cannot be reached (refused, timed out or throttled) a placeholder lineup
// is returned instead; any other failure is an error.
func (s *AIService) PredictLineup(ctx context.Context, req *models.LineupRequest) (json.RawMessage, error) {
	if req.LeagueID == 0 || req.PlayerAddress == "" || req.AvailablePlayers == nil || req.Positions == nil {
		return nil, fmt.Errorf("%w: missing required fields", ErrInvalidInput)
	}
	if req.OptimizationGoal == "" {
		req.OptimizationGoal = "balanced"
	}

	raw, err := s.client.PredictLineup(ctx, req)
	if err == nil {
		return raw, nil
	}

	log.Errorf("Error calling AI service: %v", err)
	if !Unavailable(err) {
		return nil, err
	}
	return json.Marshal(FallbackLineup(req))
}

func (s *AIService) PlayerAnalysis(ctx context.Context, playerId int) (json.RawMessage, error) {
	if playerId == 0 {
		return nil, fmt.Errorf("%w: missing playerId", ErrInvalidInput)
	}
	raw, err := s.client.PlayerAnalysis(ctx, playerId)
	if err != nil {
		log.Errorf("Error analyzing player: %v", err)
		return nil, err
	}
	return raw, nil
}

// FallbackLineup maps position i to availablePlayers[i], or player 1 when
// there are fewer players than positions.
func FallbackLineup(req *models.LineupRequest) *models.LineupResponse {
	positions := make(map[string][]int, len(req.Positions))
	for i, pos := range req.Positions {
		id := 1
		if i < len(req.AvailablePlayers) && req.AvailablePlayers[i] != 0 {
			id = req.AvailablePlayers[i]
		}
		positions[pos] = []int{id}
	}

	return &models.LineupResponse{
		Success: true,
		Lineup: models.Lineup{
			Positions:     positions,
			ExpectedScore: 250.0,
			Confidence:    0.5,
			Rationale:     fallbackRationale,
		},
		Fallback: true,
	}
}

// Unavailable reports connection refused, timeouts and throttling.
func Unavailable(err error) bool {
	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, context.DeadlineExceeded) || Throttled(err) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// Throttled reports an upstream that answered 429.
func Throttled(err error) bool {
	var t interface{ Throttled() bool }
	return errors.As(err, &t) && t.Throttled()
}
