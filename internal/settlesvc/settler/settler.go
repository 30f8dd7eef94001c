// Package settler finds leagues that are due for settlement and settles
// them one at a time.
package settler

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/avvvet/fantasy-services/internal/apisvc/models"
	"github.com/avvvet/fantasy-services/internal/comm"
	"github.com/avvvet/fantasy-services/internal/flow"
	log "github.com/sirupsen/logrus"
)

const (
	DefaultInterval = 5 * time.Minute
	DefaultPause    = 2 * time.Second
)

type Chain interface {
	LeaguesNeedingSettlement(ctx context.Context) []uint64
	SettleLeague(ctx context.Context, leagueId uint64) (string, error)
}

// Schedules holds settlements requested through the API.
type Schedules interface {
	DueSchedules(ctx context.Context, now time.Time) ([]*models.SettlementSchedule, error)
	MarkLeagueSchedules(ctx context.Context, leagueID uint64, status string) error
	RecordRun(ctx context.Context, run *models.SettlementRun) error
}

type Publisher interface {
	Publish(msgType string, data any) error
}

type Settler struct {
	chain     Chain
	schedules Schedules
	pub       Publisher
	pause     time.Duration
	now       func() time.Time

	mu sync.Mutex // one check at a time
}

type Option func(*Settler)

func WithSchedules(s Schedules) Option {
	return func(st *Settler) { st.schedules = s }
}

func WithPublisher(p Publisher) Option {
	return func(st *Settler) { st.pub = p }
}

// WithPause sets the delay between two settlements of the same check.
func WithPause(d time.Duration) Option {
	return func(st *Settler) { st.pause = d }
}

func WithClock(now func() time.Time) Option {
	return func(st *Settler) { st.now = now }
}

func New(chain Chain, opts ...Option) *Settler {
	s := &Settler{
		chain: chain,
		pause: DefaultPause,
		now:   time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Check settles every league the chain reports as ended plus every league
// with a due schedule. Leagues are settled sequentially.
func (s *Settler) Check(ctx context.Context) *comm.SettlementReport {
	s.mu.Lock()
	defer s.mu.Unlock()

	log.Info("[Settlement] Checking for leagues to settle...")
	report := &comm.SettlementReport{Results: []comm.LeagueSettledEvent{}}

	ids := s.dueLeagues(ctx)
	if len(ids) == 0 {
		log.Info("[Settlement] No leagues need settlement")
		return report
	}
	log.Infof("[Settlement] Found %d league(s) to settle: %v", len(ids), ids)

	for i, id := range ids {
		if i > 0 && !s.wait(ctx) {
			report.Error = ctx.Err().Error()
			break
		}

		res := s.settle(ctx, id)
		report.Results = append(report.Results, res)
		if res.Success {
			report.Settled++
		}
	}

	return report
}

// dueLeagues merges chain and scheduled ids, keeping first-seen order.
func (s *Settler) dueLeagues(ctx context.Context) []uint64 {
	seen := map[uint64]bool{}
	var ids []uint64
	add := func(id uint64) {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}

	for _, id := range s.chain.LeaguesNeedingSettlement(ctx) {
		add(id)
	}

	if s.schedules != nil {
		due, err := s.schedules.DueSchedules(ctx, s.now())
		if err != nil {
			log.Errorf("[Settlement] Error reading scheduled settlements: %v", err)
		}
		for _, sc := range due {
			add(sc.LeagueID)
		}
	}

	return ids
}

func (s *Settler) wait(ctx context.Context) bool {
	if s.pause <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(s.pause)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

func (s *Settler) settle(ctx context.Context, id uint64) comm.LeagueSettledEvent {
	log.Infof("Settling league %d...", id)

	txId, err := s.chain.SettleLeague(ctx, id)
	res := comm.LeagueSettledEvent{
		LeagueId:  id,
		TxId:      txId,
		Success:   err == nil,
		SettledAt: s.now(),
	}
	status := "settled"
	if err != nil {
		log.Errorf("Error settling league %d: %v", id, err)
		res.Error = err.Error()
		status = "failed"

		var txErr *flow.TxError
		if errors.As(err, &txErr) {
			res.Error = txErr.Message
		}
	}

	if s.schedules != nil {
		run := &models.SettlementRun{
			LeagueID:   id,
			TxID:       txId,
			Success:    res.Success,
			Error:      res.Error,
			ExecutedAt: res.SettledAt,
		}
		if err := s.schedules.RecordRun(ctx, run); err != nil {
			log.Errorf("Error recording settlement run for league %d: %v", id, err)
		}
		if err := s.schedules.MarkLeagueSchedules(ctx, id, status); err != nil {
			log.Errorf("Error updating schedules of league %d: %v", id, err)
		}
	}

	if s.pub != nil {
		if err := s.pub.Publish(comm.LeagueSettled, res); err != nil {
			log.Errorf("Error publishing settlement of league %d: %v", id, err)
		}
	}

	return res
}

// Run checks immediately and then on every tick until ctx is done.
func (s *Settler) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultInterval
	}
	log.Infof("[Settlement] Starting with %s interval", interval)

	s.Check(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("[Settlement] stopped")
			return
		case <-ticker.C:
			s.Check(ctx)
		}
	}
}
