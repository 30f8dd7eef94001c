package store

import (
	"context"
	"fmt"

	"github.com/avvvet/fantasy-services/internal/apisvc/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

type StakeStore struct {
	db *pgxpool.Pool
}

func NewStakeStore(db *pgxpool.Pool) *StakeStore {
	return &StakeStore{db: db}
}

// CreateStake fails with ErrDuplicate when the tx id was already recorded.
func (s *StakeStore) CreateStake(ctx context.Context, stake *models.Stake) error {
	query := `
		INSERT INTO stakes (league_id, player_address, amount, token_type, tx_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, released, created_at
	`

	err := s.db.QueryRow(ctx, query,
		int64(stake.LeagueID),
		stake.PlayerAddress,
		stake.Amount,
		stake.TokenType,
		stake.TxID,
	).Scan(&stake.ID, &stake.Released, &stake.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create stake: %w", translate(err))
	}

	return nil
}

func (s *StakeStore) GetStakes(ctx context.Context, leagueID uint64, address string) ([]*models.Stake, error) {
	query := `
		SELECT id, league_id, player_address, amount, token_type, tx_id, released, created_at
		FROM stakes
		WHERE league_id = $1 AND player_address = $2
		ORDER BY created_at ASC
	`

	rows, err := s.db.Query(ctx, query, int64(leagueID), address)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stakes []*models.Stake
	for rows.Next() {
		var st models.Stake
		var league int64
		err := rows.Scan(
			&st.ID,
			&league,
			&st.PlayerAddress,
			&st.Amount,
			&st.TokenType,
			&st.TxID,
			&st.Released,
			&st.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		st.LeagueID = uint64(league)
		stakes = append(stakes, &st)
	}

	return stakes, rows.Err()
}
