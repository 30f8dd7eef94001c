package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Stake struct {
	ID            int64           `json:"id"`
	LeagueID      uint64          `json:"league_id"`
	PlayerAddress string          `json:"player_address"`
	Amount        decimal.Decimal `json:"amount"`
	TokenType     string          `json:"token_type"` // FLOW, FUSD, USDC
	TxID          string          `json:"tx_id"`
	Released      bool            `json:"released"`
	CreatedAt     time.Time       `json:"created_at"`
}

type StakeEntry struct {
	Amount    float64 `json:"amount"`
	TokenType string  `json:"tokenType"`
	Timestamp int64   `json:"timestamp"` // unix millis
	Released  bool    `json:"released"`
	TxID      string  `json:"txId"`
}

type StakeInfo struct {
	LeagueID      uint64       `json:"leagueId"`
	PlayerAddress string       `json:"playerAddress"`
	Stakes        []StakeEntry `json:"stakes"`
	TotalStaked   float64      `json:"totalStaked"`
	NftStakes     []any        `json:"nftStakes"`
}

type Participant struct {
	Address      string  `json:"address"`
	StakedAmount float64 `json:"stakedAmount"`
	HasLineup    bool    `json:"hasLineup"`
}
