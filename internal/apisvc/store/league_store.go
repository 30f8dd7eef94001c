package store

import (
	"context"
	"fmt"

	"github.com/avvvet/fantasy-services/internal/apisvc/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

type LeagueStore struct {
	db *pgxpool.Pool
}

func NewLeagueStore(db *pgxpool.Pool) *LeagueStore {
	return &LeagueStore{db: db}
}

// CreateLeagueRequest inserts the request and fills in id, status and timestamps.
func (s *LeagueStore) CreateLeagueRequest(ctx context.Context, req *models.LeagueRequest) error {
	query := `
		INSERT INTO league_requests (
			name, description, start_time, end_time, min_players, max_players,
			entry_fee, allowed_tokens, allow_nfts, max_stake_per_user
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, status, created_at, updated_at
	`

	err := s.db.QueryRow(ctx, query,
		req.Name,
		req.Description,
		req.StartTime,
		req.EndTime,
		req.MinPlayers,
		req.MaxPlayers,
		req.EntryFee,
		req.AllowedTokens,
		req.AllowNFTs,
		req.MaxStakePerUser,
	).Scan(&req.ID, &req.Status, &req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create league request: %w", translate(err))
	}

	return nil
}

func (s *LeagueStore) GetLeagueRequest(ctx context.Context, id int64) (*models.LeagueRequest, error) {
	query := `
		SELECT id, name, description, start_time, end_time, min_players, max_players,
		       entry_fee, allowed_tokens, allow_nfts, max_stake_per_user, status,
		       created_at, updated_at
		FROM league_requests
		WHERE id = $1
	`

	var req models.LeagueRequest
	err := s.db.QueryRow(ctx, query, id).Scan(
		&req.ID,
		&req.Name,
		&req.Description,
		&req.StartTime,
		&req.EndTime,
		&req.MinPlayers,
		&req.MaxPlayers,
		&req.EntryFee,
		&req.AllowedTokens,
		&req.AllowNFTs,
		&req.MaxStakePerUser,
		&req.Status,
		&req.CreatedAt,
		&req.UpdatedAt,
	)
	if err != nil {
		return nil, translate(err)
	}

	return &req, nil
}
