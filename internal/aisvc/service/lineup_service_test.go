package service

import (
	"context"
	"errors"
	"testing"

	"github.com/avvvet/fantasy-services/internal/aisvc/store"
	"github.com/avvvet/fantasy-services/internal/apisvc/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockGenerator struct {
	mock.Mock
}

func (m *mockGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

type memHistory struct {
	saved []*store.Prediction
}

func (h *memHistory) Save(ctx context.Context, p *store.Prediction) error {
	h.saved = append(h.saved, p)
	return nil
}

func (h *memHistory) ByPlayer(ctx context.Context, address string, limit int64) ([]*store.Prediction, error) {
	var out []*store.Prediction
	for _, p := range h.saved {
		if p.PlayerAddress == address {
			out = append(out, p)
		}
	}
	return out, nil
}

func request() *models.LineupRequest {
	return &models.LineupRequest{
		LeagueID:         1,
		PlayerAddress:    "0xabc",
		AvailablePlayers: []int{1, 2, 3, 4, 5},
		Positions:        []string{"PG", "SG", "SF"},
	}
}

func TestPredict_RuleBased(t *testing.T) {
	h := &memHistory{}
	svc := NewLineupService(nil, h)

	rsp, err := svc.Predict(context.Background(), request())
	require.NoError(t, err)

	assert.True(t, rsp.Success)
	assert.Equal(t, MethodRuleBased, rsp.Lineup.AIMethod)
	assert.Len(t, rsp.Lineup.Positions, 3)
	assert.Equal(t, "balanced", rsp.Metadata.Strategy)
	assert.LessOrEqual(t, rsp.Lineup.Confidence, 0.95)
	assert.GreaterOrEqual(t, rsp.Lineup.Confidence, 0.65)

	history, err := svc.History(context.Background(), "0xabc", 10)
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestPredict_Deterministic(t *testing.T) {
	svc := NewLineupService(nil, nil)

	a, err := svc.Predict(context.Background(), request())
	require.NoError(t, err)
	b, err := svc.Predict(context.Background(), request())
	require.NoError(t, err)

	assert.Equal(t, a.Lineup.Positions, b.Lineup.Positions)
	assert.Equal(t, a.Lineup.ExpectedScore, b.Lineup.ExpectedScore)
}

func TestPredict_Gemini(t *testing.T) {
	gen := new(mockGenerator)
	gen.On("Generate", mock.Anything, mock.AnythingOfType("string")).
		Return("LINEUP: [5, 4, 3]\nSCORE: 88\nRATIONALE: Strong guards.", nil)

	rsp, err := NewLineupService(gen, nil).Predict(context.Background(), request())
	require.NoError(t, err)

	assert.Equal(t, MethodGemini, rsp.Lineup.AIMethod)
	assert.Equal(t, map[string][]int{"PG": {5}, "SG": {4}, "SF": {3}}, rsp.Lineup.Positions)
	assert.Equal(t, 88.0, rsp.Lineup.ExpectedScore)
	assert.Equal(t, 0.74, rsp.Lineup.Confidence)
	assert.Equal(t, "Strong guards.", rsp.Lineup.Rationale)
}

func TestPredict_GeminiFallsBack(t *testing.T) {
	for name, answer := range map[string]struct {
		text string
		err  error
	}{
		"error":     {"", errors.New("quota exceeded")},
		"no lineup": {"I am not sure.", nil},
	} {
		t.Run(name, func(t *testing.T) {
			gen := new(mockGenerator)
			gen.On("Generate", mock.Anything, mock.Anything).Return(answer.text, answer.err)

			rsp, err := NewLineupService(gen, nil).Predict(context.Background(), request())
			require.NoError(t, err)
			assert.Equal(t, MethodRuleBased, rsp.Lineup.AIMethod)
			assert.Len(t, rsp.Lineup.Positions, 3)
		})
	}
}

func TestPredict_Invalid(t *testing.T) {
	req := request()
	req.AvailablePlayers = nil

	_, err := NewLineupService(nil, nil).Predict(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestAnalyze(t *testing.T) {
	svc := NewLineupService(nil, nil)

	a, err := svc.Analyze(42)
	require.NoError(t, err)
	assert.Equal(t, 42, a.PlayerID)
	assert.GreaterOrEqual(t, a.Score, 0.0)
	assert.Contains(t, []string{"up", "stable", "down"}, a.Stats.Trending)

	b, err := svc.Analyze(42)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	_, err = svc.Analyze(0)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
