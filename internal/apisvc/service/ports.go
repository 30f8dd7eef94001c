package service

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/avvvet/fantasy-services/internal/apisvc/models"
	"github.com/avvvet/fantasy-services/internal/comm"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrLeagueNotFound = errors.New("league not found")
	ErrRateLimited    = errors.New("too many blockchain requests")
)

// Chain is the subset of the flow contracts facade the gateway reads.
type Chain interface {
	GetLeagues(ctx context.Context) ([]map[string]any, error)
	GetLeagueDetails(ctx context.Context, leagueId uint64) (map[string]any, error)
	GetLeagueParticipants(ctx context.Context, leagueId uint64) ([]string, error)
	GetUserStakes(ctx context.Context, address string) ([]any, error)
	GetLeagueTotalStake(ctx context.Context, leagueId uint64) decimal.Decimal
	GetAccountBalance(ctx context.Context, address string) decimal.Decimal
	IsLeagueActive(ctx context.Context, leagueId uint64) bool
	GetSettlementStatus(ctx context.Context, leagueId uint64) string
}

type LeagueRepository interface {
	CreateLeagueRequest(ctx context.Context, req *models.LeagueRequest) error
	GetLeagueRequest(ctx context.Context, id int64) (*models.LeagueRequest, error)
}

type StakeRepository interface {
	CreateStake(ctx context.Context, stake *models.Stake) error
	GetStakes(ctx context.Context, leagueID uint64, address string) ([]*models.Stake, error)
}

type SettlementRepository interface {
	CreateSchedule(ctx context.Context, sc *models.SettlementSchedule) error
	RecentRuns(ctx context.Context, limit int) ([]*models.SettlementRun, error)
}

// Publisher emits league events on the message bus.
type Publisher interface {
	Publish(msgType string, data any) error
}

// SettlementTrigger asks the settlement poller to run a check now.
type SettlementTrigger interface {
	TriggerSettlement(ctx context.Context) (*comm.SettlementReport, error)
}

// AIClient talks to the external lineup service. Responses are passed
// through untouched.
type AIClient interface {
	PredictLineup(ctx context.Context, req *models.LineupRequest) (json.RawMessage, error)
	PlayerAnalysis(ctx context.Context, playerId int) (json.RawMessage, error)
}

func publish(p Publisher, msgType string, data any) {
	if p == nil {
		return
	}
	if err := p.Publish(msgType, data); err != nil {
		log.Errorf("Error publishing %s event: %v", msgType, err)
	}
}
