package store

import (
	"context"
	"fmt"
	"time"

	"github.com/avvvet/fantasy-services/internal/apisvc/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SettlementStore struct {
	db *pgxpool.Pool
}

func NewSettlementStore(db *pgxpool.Pool) *SettlementStore {
	return &SettlementStore{db: db}
}

func (s *SettlementStore) CreateSchedule(ctx context.Context, sc *models.SettlementSchedule) error {
	query := `
		INSERT INTO settlement_schedules (league_id, scheduled_time, tx_id)
		VALUES ($1, $2, $3)
		RETURNING id, status, created_at, updated_at
	`

	err := s.db.QueryRow(ctx, query, int64(sc.LeagueID), sc.ScheduledTime, sc.TxID).
		Scan(&sc.ID, &sc.Status, &sc.CreatedAt, &sc.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create settlement schedule: %w", translate(err))
	}

	return nil
}

// DueSchedules returns schedules still 'scheduled' whose time has passed.
func (s *SettlementStore) DueSchedules(ctx context.Context, now time.Time) ([]*models.SettlementSchedule, error) {
	query := `
		SELECT id, league_id, scheduled_time, tx_id, status, created_at, updated_at
		FROM settlement_schedules
		WHERE status = 'scheduled' AND scheduled_time <= $1
		ORDER BY scheduled_time ASC
	`

	rows, err := s.db.Query(ctx, query, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var schedules []*models.SettlementSchedule
	for rows.Next() {
		var sc models.SettlementSchedule
		var league int64
		if err := rows.Scan(&sc.ID, &league, &sc.ScheduledTime, &sc.TxID, &sc.Status, &sc.CreatedAt, &sc.UpdatedAt); err != nil {
			return nil, err
		}
		sc.LeagueID = uint64(league)
		schedules = append(schedules, &sc)
	}

	return schedules, rows.Err()
}

// MarkLeagueSchedules closes every open schedule of a league.
func (s *SettlementStore) MarkLeagueSchedules(ctx context.Context, leagueID uint64, status string) error {
	_, err := s.db.Exec(ctx, `
		UPDATE settlement_schedules
		SET status = $2, updated_at = NOW()
		WHERE league_id = $1 AND status = 'scheduled'
	`, int64(leagueID), status)
	return err
}

func (s *SettlementStore) RecordRun(ctx context.Context, run *models.SettlementRun) error {
	query := `
		INSERT INTO settlement_runs (league_id, tx_id, success, error, executed_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	if run.ExecutedAt.IsZero() {
		run.ExecutedAt = time.Now()
	}
	err := s.db.QueryRow(ctx, query, int64(run.LeagueID), run.TxID, run.Success, run.Error, run.ExecutedAt).Scan(&run.ID)
	if err != nil {
		return fmt.Errorf("failed to record settlement run: %w", err)
	}
	return nil
}

func (s *SettlementStore) RecentRuns(ctx context.Context, limit int) ([]*models.SettlementRun, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.Query(ctx, `
		SELECT id, league_id, tx_id, success, error, executed_at
		FROM settlement_runs
		ORDER BY executed_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	runs := []*models.SettlementRun{}
	for rows.Next() {
		var run models.SettlementRun
		var league int64
		if err := rows.Scan(&run.ID, &league, &run.TxID, &run.Success, &run.Error, &run.ExecutedAt); err != nil {
			return nil, err
		}
		run.LeagueID = uint64(league)
		runs = append(runs, &run)
	}

	return runs, rows.Err()
}
