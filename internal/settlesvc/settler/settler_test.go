package settler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/avvvet/fantasy-services/internal/apisvc/models"
	"github.com/avvvet/fantasy-services/internal/comm"
	"github.com/avvvet/fantasy-services/internal/flow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

type fakeChain struct {
	mu      sync.Mutex
	due     []uint64
	fail    map[uint64]error
	settled []uint64
	checks  int
}

func (f *fakeChain) LeaguesNeedingSettlement(ctx context.Context) []uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.checks++
	return f.due
}

func (f *fakeChain) SettleLeague(ctx context.Context, id uint64) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.settled = append(f.settled, id)
	if err := f.fail[id]; err != nil {
		return "tx-failed", err
	}
	return "tx-ok", nil
}

func (f *fakeChain) checkCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.checks
}

type fakeSchedules struct {
	due    []*models.SettlementSchedule
	dueErr error
	runs   []*models.SettlementRun
	marked map[uint64]string
}

func (f *fakeSchedules) DueSchedules(ctx context.Context, now time.Time) ([]*models.SettlementSchedule, error) {
	return f.due, f.dueErr
}

func (f *fakeSchedules) MarkLeagueSchedules(ctx context.Context, id uint64, status string) error {
	if f.marked == nil {
		f.marked = map[uint64]string{}
	}
	f.marked[id] = status
	return nil
}

func (f *fakeSchedules) RecordRun(ctx context.Context, run *models.SettlementRun) error {
	f.runs = append(f.runs, run)
	return nil
}

type fakePublisher struct {
	events []comm.LeagueSettledEvent
}

func (f *fakePublisher) Publish(msgType string, data any) error {
	if msgType == comm.LeagueSettled {
		f.events = append(f.events, data.(comm.LeagueSettledEvent))
	}
	return nil
}

func TestCheck_NothingDue(t *testing.T) {
	s := New(&fakeChain{}, WithPause(0))
	report := s.Check(context.Background())

	assert.Equal(t, 0, report.Settled)
	assert.Empty(t, report.Results)
	assert.Empty(t, report.Error)
}

func TestCheck_MergesChainAndSchedules(t *testing.T) {
	chain := &fakeChain{
		due:  []uint64{3, 5},
		fail: map[uint64]error{5: &flow.TxError{TxId: "tx-failed", Message: "league not ended"}},
	}
	schedules := &fakeSchedules{due: []*models.SettlementSchedule{{LeagueID: 5}, {LeagueID: 8}}}
	pub := &fakePublisher{}

	s := New(chain, WithPause(time.Millisecond), WithSchedules(schedules), WithPublisher(pub))
	report := s.Check(context.Background())

	assert.Equal(t, []uint64{3, 5, 8}, chain.settled)
	assert.Equal(t, 2, report.Settled)
	require.Len(t, report.Results, 3)
	assert.False(t, report.Results[1].Success)
	assert.Equal(t, "league not ended", report.Results[1].Error)
	assert.Equal(t, "tx-failed", report.Results[1].TxId)

	assert.Len(t, schedules.runs, 3)
	assert.Equal(t, map[uint64]string{3: "settled", 5: "failed", 8: "settled"}, schedules.marked)
	assert.Len(t, pub.events, 3)
}

func TestCheck_ScheduleReadErrorStillSettlesChain(t *testing.T) {
	chain := &fakeChain{due: []uint64{1}}
	s := New(chain, WithPause(0), WithSchedules(&fakeSchedules{dueErr: errors.New("db down")}))

	report := s.Check(context.Background())
	assert.Equal(t, 1, report.Settled)
}

func TestCheck_PauseHonoursContext(t *testing.T) {
	chain := &fakeChain{due: []uint64{1, 2, 3}}
	s := New(chain, WithPause(time.Hour))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	report := s.Check(ctx)
	assert.Equal(t, []uint64{1}, chain.settled)
	assert.Equal(t, 1, report.Settled)
	assert.NotEmpty(t, report.Error)
}

func TestRun_ImmediateThenTicks(t *testing.T) {
	defer goleak.VerifyNone(t)

	chain := &fakeChain{}
	s := New(chain, WithPause(0))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx, 10*time.Millisecond)
		close(done)
	}()

	assert.Eventually(t, func() bool { return chain.checkCount() >= 3 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}
