package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/avvvet/fantasy-services/internal/apisvc/cache"
	"github.com/avvvet/fantasy-services/internal/apisvc/models"
	"github.com/avvvet/fantasy-services/internal/comm"
	"github.com/avvvet/fantasy-services/internal/flow"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

type LeagueService struct {
	chain Chain
	cache *cache.Cache
	repo  LeagueRepository
	pub   Publisher
}

func NewLeagueService(chain Chain, c *cache.Cache, repo LeagueRepository, pub Publisher) *LeagueService {
	return &LeagueService{chain: chain, cache: c, repo: repo, pub: pub}
}

// ListLeagues serves from cache when possible. allow is consulted only on a
// cache miss, before the chain is queried.
func (s *LeagueService) ListLeagues(ctx context.Context, allow func() bool) (leagues []models.League, cached bool, err error) {
	if v, ok := s.cache.Get(cache.AllLeaguesKey); ok {
		log.Debug("Returning leagues from cache")
		return v.([]models.League), true, nil
	}

	if allow != nil && !allow() {
		return nil, false, ErrRateLimited
	}

	log.Info("Fetching leagues from blockchain")
	raw, err := s.chain.GetLeagues(ctx)
	if err != nil {
		return nil, false, err
	}

	leagues = make([]models.League, 0, len(raw))
	for _, r := range raw {
		leagues = append(leagues, FormatLeague(r))
	}
	s.cache.Set(cache.AllLeaguesKey, leagues)

	return leagues, false, nil
}

func (s *LeagueService) GetLeague(ctx context.Context, id uint64) (*models.League, bool, error) {
	key := cache.LeagueKey(id)
	if v, ok := s.cache.Get(key); ok {
		league := v.(models.League)
		return &league, true, nil
	}

	raw, err := s.chain.GetLeagueDetails(ctx, id)
	if err != nil {
		return nil, false, err
	}
	if raw == nil {
		return nil, false, ErrLeagueNotFound
	}

	league := FormatLeague(raw)
	s.cache.Set(key, league)
	return &league, false, nil
}

func (s *LeagueService) Participants(ctx context.Context, id uint64) ([]string, error) {
	return s.chain.GetLeagueParticipants(ctx, id)
}

// Status fetches the three status reads concurrently. Each read already
// degrades to a default on failure.
func (s *LeagueService) Status(ctx context.Context, id uint64) (*models.LeagueStatus, error) {
	var (
		active bool
		total  decimal.Decimal
		status string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		active = s.chain.IsLeagueActive(gctx, id)
		return nil
	})
	g.Go(func() error {
		total = s.chain.GetLeagueTotalStake(gctx, id)
		return nil
	})
	g.Go(func() error {
		status = s.chain.GetSettlementStatus(gctx, id)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &models.LeagueStatus{
		LeagueID:         id,
		IsActive:         active,
		TotalStake:       total.InexactFloat64(),
		SettlementStatus: status,
		Timestamp:        time.Now().UnixMilli(),
	}, nil
}

func (s *LeagueService) FlushCache() {
	s.cache.Flush()
	log.Info("League cache cleared")
}

// CreateLeague records a creation request. The league itself is created on
// chain by the creator's wallet.
func (s *LeagueService) CreateLeague(ctx context.Context, req *models.LeagueRequest) error {
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Description) == "" ||
		req.StartTime <= 0 || req.EndTime <= 0 {
		return fmt.Errorf("%w: missing required fields: name, description, startTime, endTime", ErrInvalidInput)
	}
	if req.EndTime <= req.StartTime {
		return fmt.Errorf("%w: endTime must be after startTime", ErrInvalidInput)
	}
	applyLeagueDefaults(req)

	if err := s.repo.CreateLeagueRequest(ctx, req); err != nil {
		return err
	}

	publish(s.pub, comm.LeagueCreated, comm.LeagueCreatedEvent{
		LeagueId:  req.ID,
		Name:      req.Name,
		CreatedAt: req.CreatedAt,
	})
	return nil
}

// LeagueRequest returns a recorded creation request by id.
func (s *LeagueService) LeagueRequest(ctx context.Context, id int64) (*models.LeagueRequest, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: invalid request id", ErrInvalidInput)
	}
	return s.repo.GetLeagueRequest(ctx, id)
}

func applyLeagueDefaults(req *models.LeagueRequest) {
	if req.MinPlayers <= 0 {
		req.MinPlayers = 2
	}
	if req.MaxPlayers <= 0 {
		req.MaxPlayers = 20
	}
	if len(req.AllowedTokens) == 0 {
		req.AllowedTokens = []string{"FLOW"}
	}
	if req.MaxStakePerUser.IsZero() {
		req.MaxStakePerUser = decimal.NewFromInt(1000)
	}
}

// FormatLeague turns a decoded LeagueDetails struct into the API view,
// filling the defaults the UI expects for missing fields.
func FormatLeague(raw map[string]any) models.League {
	tokens := flow.AsStrings(raw["allowedTokens"])
	if len(tokens) == 0 {
		tokens = []string{"FLOW"}
	}
	status := flow.AsString(raw["status"])
	if status == "" {
		status = "Active"
	}
	participants := flow.AsInt(raw["participantCount"], 0)
	if participants == 0 {
		participants = len(flow.AsStrings(raw["participants"]))
	}

	return models.League{
		ID:               uint64(flow.AsInt(raw["id"], 0)),
		Name:             flow.AsString(raw["name"]),
		Description:      flow.AsString(raw["description"]),
		StartTime:        flow.AsFloat(raw["startTime"], 0),
		EndTime:          flow.AsFloat(raw["endTime"], 0),
		MinPlayers:       flow.AsInt(raw["minPlayers"], 2),
		MaxPlayers:       flow.AsInt(raw["maxPlayers"], 20),
		EntryFee:         flow.AsFloat(raw["entryFee"], 0),
		AllowedTokens:    tokens,
		AllowNFTs:        flow.AsBool(raw["allowNFTs"], false),
		MaxStakePerUser:  flow.AsFloat(raw["maxStakePerUser"], 1000),
		Status:           status,
		ParticipantCount: participants,
		PrizePool:        flow.AsFloat(raw["prizePool"], 0),
		Creator:          flow.AsString(raw["creator"]),
	}
}
