package service

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/avvvet/fantasy-services/internal/apisvc/models"
	"github.com/avvvet/fantasy-services/internal/comm"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var txIdPattern = regexp.MustCompile(`^0x[0-9a-f]{64}$`)

func TestStakingService_Stake(t *testing.T) {
	stakes := new(mockStakeRepo)
	pub := new(mockPublisher)
	stakes.On("CreateStake", mock.Anything, mock.AnythingOfType("*models.Stake")).Return(nil)
	pub.On("Publish", comm.StakePlaced, mock.AnythingOfType("comm.StakePlacedEvent")).Return(nil)

	svc := NewStakingService(stakes, nil, nil, pub)
	stake, err := svc.Stake(context.Background(), &StakeRequest{
		LeagueID:      1,
		PlayerAddress: "0xf8d6e0586b0a20c7",
		Amount:        decimal.RequireFromString("25.5"),
		TokenType:     "flow",
	})
	require.NoError(t, err)
	assert.Regexp(t, txIdPattern, stake.TxID)
	// token type is stored as sent
	assert.Equal(t, "flow", stake.TokenType)
	pub.AssertExpectations(t)
}

func TestStakingService_Stake_Validation(t *testing.T) {
	stakes := new(mockStakeRepo)
	svc := NewStakingService(stakes, nil, nil, nil)

	tests := []struct {
		name string
		req  StakeRequest
	}{
		{"missing league", StakeRequest{PlayerAddress: "0x1", Amount: decimal.NewFromInt(1), TokenType: "FLOW"}},
		{"missing address", StakeRequest{LeagueID: 1, Amount: decimal.NewFromInt(1), TokenType: "FLOW"}},
		{"zero amount", StakeRequest{LeagueID: 1, PlayerAddress: "0x1", TokenType: "FLOW"}},
		{"negative amount", StakeRequest{LeagueID: 1, PlayerAddress: "0x1", Amount: decimal.NewFromInt(-3), TokenType: "FLOW"}},
		{"over max", StakeRequest{LeagueID: 1, PlayerAddress: "0x1", Amount: decimal.RequireFromString("10000.01"), TokenType: "FLOW"}},
		{"missing token", StakeRequest{LeagueID: 1, PlayerAddress: "0x1", Amount: decimal.NewFromInt(1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Stake(context.Background(), &tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
	stakes.AssertNotCalled(t, "CreateStake", mock.Anything, mock.Anything)
}

func TestStakingService_Stake_MaxAllowed(t *testing.T) {
	stakes := new(mockStakeRepo)
	stakes.On("CreateStake", mock.Anything, mock.Anything).Return(nil)
	svc := NewStakingService(stakes, nil, nil, nil)

	_, err := svc.Stake(context.Background(), &StakeRequest{
		LeagueID: 1, PlayerAddress: "0x1", Amount: decimal.NewFromInt(10000), TokenType: "FLOW",
	})
	assert.NoError(t, err)
}

func TestStakingService_StakeInfo(t *testing.T) {
	now := time.Now()
	stakes := new(mockStakeRepo)
	stakes.On("GetStakes", mock.Anything, uint64(1), "0x1").Return([]*models.Stake{
		{Amount: decimal.RequireFromString("25.5"), TokenType: "FLOW", CreatedAt: now},
		{Amount: decimal.NewFromInt(10), TokenType: "FLOW", Released: true, CreatedAt: now},
	}, nil)

	info, err := NewStakingService(stakes, nil, nil, nil).StakeInfo(context.Background(), 1, "0x1")
	require.NoError(t, err)
	assert.Len(t, info.Stakes, 2)
	assert.Equal(t, 25.5, info.TotalStaked)
	assert.NotNil(t, info.NftStakes)
	assert.Equal(t, now.UnixMilli(), info.Stakes[0].Timestamp)
}

func TestStakingService_ScheduleSettlement(t *testing.T) {
	repo := new(mockSettlementRepo)
	repo.On("CreateSchedule", mock.Anything, mock.MatchedBy(func(sc *models.SettlementSchedule) bool {
		return sc.LeagueID == 5 && sc.ScheduledTime.Unix() == 1700000000
	})).Return(nil)

	svc := NewStakingService(nil, repo, nil, nil)
	sc, err := svc.ScheduleSettlement(context.Background(), &ScheduleRequest{LeagueID: 5, ScheduledTime: 1700000000})
	require.NoError(t, err)
	assert.Regexp(t, txIdPattern, sc.TxID)

	_, err = svc.ScheduleSettlement(context.Background(), &ScheduleRequest{LeagueID: 5})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
