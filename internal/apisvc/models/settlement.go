package models

import "time"

type SettlementSchedule struct {
	ID            int64     `json:"id"`
	LeagueID      uint64    `json:"league_id"`
	ScheduledTime time.Time `json:"scheduled_time"`
	TxID          string    `json:"tx_id"`
	Status        string    `json:"status"` // 'scheduled', 'settled', 'failed'
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type SettlementRun struct {
	ID         int64     `json:"id"`
	LeagueID   uint64    `json:"league_id"`
	TxID       string    `json:"tx_id"`
	Success    bool      `json:"success"`
	Error      string    `json:"error,omitempty"`
	ExecutedAt time.Time `json:"executed_at"`
}
