package service

import (
	"context"
	"encoding/json"

	"github.com/avvvet/fantasy-services/internal/apisvc/models"
	"github.com/avvvet/fantasy-services/internal/comm"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type mockChain struct {
	mock.Mock
}

func (m *mockChain) GetLeagues(ctx context.Context) ([]map[string]any, error) {
	args := m.Called(ctx)
	leagues, _ := args.Get(0).([]map[string]any)
	return leagues, args.Error(1)
}

func (m *mockChain) GetLeagueDetails(ctx context.Context, id uint64) (map[string]any, error) {
	args := m.Called(ctx, id)
	league, _ := args.Get(0).(map[string]any)
	return league, args.Error(1)
}

func (m *mockChain) GetLeagueParticipants(ctx context.Context, id uint64) ([]string, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).([]string)
	return p, args.Error(1)
}

func (m *mockChain) GetUserStakes(ctx context.Context, address string) ([]any, error) {
	args := m.Called(ctx, address)
	s, _ := args.Get(0).([]any)
	return s, args.Error(1)
}

func (m *mockChain) GetLeagueTotalStake(ctx context.Context, id uint64) decimal.Decimal {
	return m.Called(ctx, id).Get(0).(decimal.Decimal)
}

func (m *mockChain) GetAccountBalance(ctx context.Context, address string) decimal.Decimal {
	return m.Called(ctx, address).Get(0).(decimal.Decimal)
}

func (m *mockChain) IsLeagueActive(ctx context.Context, id uint64) bool {
	return m.Called(ctx, id).Bool(0)
}

func (m *mockChain) GetSettlementStatus(ctx context.Context, id uint64) string {
	return m.Called(ctx, id).String(0)
}

type mockLeagueRepo struct {
	mock.Mock
}

func (m *mockLeagueRepo) CreateLeagueRequest(ctx context.Context, req *models.LeagueRequest) error {
	return m.Called(ctx, req).Error(0)
}

func (m *mockLeagueRepo) GetLeagueRequest(ctx context.Context, id int64) (*models.LeagueRequest, error) {
	args := m.Called(ctx, id)
	req, _ := args.Get(0).(*models.LeagueRequest)
	return req, args.Error(1)
}

type mockStakeRepo struct {
	mock.Mock
}

func (m *mockStakeRepo) CreateStake(ctx context.Context, stake *models.Stake) error {
	return m.Called(ctx, stake).Error(0)
}

func (m *mockStakeRepo) GetStakes(ctx context.Context, leagueID uint64, address string) ([]*models.Stake, error) {
	args := m.Called(ctx, leagueID, address)
	s, _ := args.Get(0).([]*models.Stake)
	return s, args.Error(1)
}

type mockSettlementRepo struct {
	mock.Mock
}

func (m *mockSettlementRepo) CreateSchedule(ctx context.Context, sc *models.SettlementSchedule) error {
	return m.Called(ctx, sc).Error(0)
}

func (m *mockSettlementRepo) RecentRuns(ctx context.Context, limit int) ([]*models.SettlementRun, error) {
	args := m.Called(ctx, limit)
	r, _ := args.Get(0).([]*models.SettlementRun)
	return r, args.Error(1)
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(msgType string, data any) error {
	return m.Called(msgType, data).Error(0)
}

type mockTrigger struct {
	mock.Mock
}

func (m *mockTrigger) TriggerSettlement(ctx context.Context) (*comm.SettlementReport, error) {
	args := m.Called(ctx)
	r, _ := args.Get(0).(*comm.SettlementReport)
	return r, args.Error(1)
}

type mockAI struct {
	mock.Mock
}

func (m *mockAI) PredictLineup(ctx context.Context, req *models.LineupRequest) (json.RawMessage, error) {
	args := m.Called(ctx, req)
	raw, _ := args.Get(0).(json.RawMessage)
	return raw, args.Error(1)
}

func (m *mockAI) PlayerAnalysis(ctx context.Context, playerId int) (json.RawMessage, error) {
	args := m.Called(ctx, playerId)
	raw, _ := args.Get(0).(json.RawMessage)
	return raw, args.Error(1)
}
