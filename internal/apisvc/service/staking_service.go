package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/avvvet/fantasy-services/internal/apisvc/models"
	"github.com/avvvet/fantasy-services/internal/comm"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

var maxStakeAmount = decimal.NewFromInt(10000)

type StakeRequest struct {
	LeagueID      uint64          `json:"leagueId"`
	PlayerAddress string          `json:"playerAddress"`
	Amount        decimal.Decimal `json:"amount"`
	TokenType     string          `json:"tokenType"`
}

type ScheduleRequest struct {
	LeagueID      uint64  `json:"leagueId"`
	ScheduledTime float64 `json:"scheduledTime"` // unix seconds
}

type StakingService struct {
	stakes      StakeRepository
	settlements SettlementRepository
	chain       Chain
	pub         Publisher
}

func NewStakingService(stakes StakeRepository, settlements SettlementRepository, chain Chain, pub Publisher) *StakingService {
	return &StakingService{stakes: stakes, settlements: settlements, chain: chain, pub: pub}
}

func (s *StakingService) Stake(ctx context.Context, req *StakeRequest) (*models.Stake, error) {
	if req.LeagueID == 0 || strings.TrimSpace(req.PlayerAddress) == "" || req.Amount.IsZero() || req.TokenType == "" {
		return nil, fmt.Errorf("%w: missing required fields", ErrInvalidInput)
	}
	if !req.Amount.IsPositive() || req.Amount.GreaterThan(maxStakeAmount) {
		return nil, fmt.Errorf("%w: invalid stake amount", ErrInvalidInput)
	}

	txId, err := newTxId()
	if err != nil {
		return nil, err
	}

	stake := &models.Stake{
		LeagueID:      req.LeagueID,
		PlayerAddress: req.PlayerAddress,
		Amount:        req.Amount,
		TokenType:     req.TokenType,
		TxID:          txId,
	}
	if err := s.stakes.CreateStake(ctx, stake); err != nil {
		return nil, err
	}
	log.Infof("Stake of %s %s recorded for %s in league %d", stake.Amount, stake.TokenType, stake.PlayerAddress, stake.LeagueID)

	publish(s.pub, comm.StakePlaced, comm.StakePlacedEvent{
		LeagueId:      stake.LeagueID,
		PlayerAddress: stake.PlayerAddress,
		Amount:        stake.Amount.String(),
		TokenType:     stake.TokenType,
		TxId:          stake.TxID,
		Timestamp:     stake.CreatedAt,
	})
	return stake, nil
}

func (s *StakingService) StakeInfo(ctx context.Context, leagueId uint64, address string) (*models.StakeInfo, error) {
	stakes, err := s.stakes.GetStakes(ctx, leagueId, address)
	if err != nil {
		return nil, err
	}

	info := &models.StakeInfo{
		LeagueID:      leagueId,
		PlayerAddress: address,
		Stakes:        make([]models.StakeEntry, 0, len(stakes)),
		NftStakes:     []any{},
	}
	total := decimal.Zero
	for _, st := range stakes {
		info.Stakes = append(info.Stakes, models.StakeEntry{
			Amount:    st.Amount.InexactFloat64(),
			TokenType: st.TokenType,
			Timestamp: st.CreatedAt.UnixMilli(),
			Released:  st.Released,
			TxID:      st.TxID,
		})
		if !st.Released {
			total = total.Add(st.Amount)
		}
	}
	info.TotalStaked = total.InexactFloat64()

	return info, nil
}

func (s *StakingService) ScheduleSettlement(ctx context.Context, req *ScheduleRequest) (*models.SettlementSchedule, error) {
	if req.LeagueID == 0 || req.ScheduledTime <= 0 {
		return nil, fmt.Errorf("%w: missing required fields", ErrInvalidInput)
	}

	txId, err := newTxId()
	if err != nil {
		return nil, err
	}

	sec := int64(req.ScheduledTime)
	nsec := int64((req.ScheduledTime - float64(sec)) * float64(time.Second))
	sc := &models.SettlementSchedule{
		LeagueID:      req.LeagueID,
		ScheduledTime: time.Unix(sec, nsec).UTC(),
		TxID:          txId,
	}
	if err := s.settlements.CreateSchedule(ctx, sc); err != nil {
		return nil, err
	}
	log.Infof("Settlement of league %d scheduled for %s", sc.LeagueID, sc.ScheduledTime.Format(time.RFC3339))

	return sc, nil
}

func (s *StakingService) AccountBalance(ctx context.Context, address string) decimal.Decimal {
	return s.chain.GetAccountBalance(ctx, address)
}

func (s *StakingService) OnchainStakes(ctx context.Context, address string) ([]any, error) {
	return s.chain.GetUserStakes(ctx, address)
}

// newTxId returns a 0x-prefixed 64 hex digit reference id.
func newTxId() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate tx id: %w", err)
	}
	return "0x" + hex.EncodeToString(b), nil
}
