package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// League is the API view of an on-chain league.
type League struct {
	ID               uint64   `json:"id"`
	Name             string   `json:"name"`
	Description      string   `json:"description"`
	StartTime        float64  `json:"startTime"` // unix seconds
	EndTime          float64  `json:"endTime"`
	MinPlayers       int      `json:"minPlayers"`
	MaxPlayers       int      `json:"maxPlayers"`
	EntryFee         float64  `json:"entryFee"`
	AllowedTokens    []string `json:"allowedTokens"`
	AllowNFTs        bool     `json:"allowNFTs"`
	MaxStakePerUser  float64  `json:"maxStakePerUser"`
	Status           string   `json:"status"`
	ParticipantCount int      `json:"participantCount"`
	PrizePool        float64  `json:"prizePool"`
	Creator          string   `json:"creator"`
}

type LeagueStatus struct {
	LeagueID         uint64  `json:"leagueId"`
	IsActive         bool    `json:"isActive"`
	TotalStake       float64 `json:"totalStake"`
	SettlementStatus string  `json:"settlementStatus"`
	Timestamp        int64   `json:"timestamp"` // unix millis
}

// LeagueRequest is a league creation request persisted until the creator
// signs the on-chain transaction from the wallet.
type LeagueRequest struct {
	ID              int64           `json:"id"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	StartTime       float64         `json:"startTime"`
	EndTime         float64         `json:"endTime"`
	MinPlayers      int             `json:"minPlayers"`
	MaxPlayers      int             `json:"maxPlayers"`
	EntryFee        decimal.Decimal `json:"entryFee"`
	AllowedTokens   []string        `json:"allowedTokens"`
	AllowNFTs       bool            `json:"allowNFTs"`
	MaxStakePerUser decimal.Decimal `json:"maxStakePerUser"`
	Status          string          `json:"status"` // 'requested'
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}
