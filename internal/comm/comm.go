package comm

import (
	"encoding/json"
	"time"
)

// NATS subjects shared by the services.
const (
	LeagueTopic       = "league.service"
	SettlementTrigger = "settlement.trigger"
)

// Event types carried on LeagueTopic.
const (
	LeagueCreated = "league-created"
	StakePlaced   = "stake-placed"
	LeagueSettled = "league-settled"
)

type WSMessage struct {
	Type     string          `json:"type"` // e.g. "watch-league", "league-settled"
	Data     json.RawMessage `json:"data"`
	SocketId string          `json:"socketid,omitempty"`
}

type LeagueWatch struct {
	LeagueId uint64 `json:"league_id"`
}

type LeagueCreatedEvent struct {
	LeagueId  int64     `json:"league_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type StakePlacedEvent struct {
	LeagueId      uint64    `json:"league_id"`
	PlayerAddress string    `json:"player_address"`
	Amount        string    `json:"amount"`
	TokenType     string    `json:"token_type"`
	TxId          string    `json:"tx_id"`
	Timestamp     time.Time `json:"timestamp"`
}

type LeagueSettledEvent struct {
	LeagueId  uint64    `json:"league_id"`
	TxId      string    `json:"tx_id"`
	Success   bool      `json:"success"`
	Error     string    `json:"error,omitempty"`
	SettledAt time.Time `json:"settled_at"`
}

// SettlementReport is the reply to a SettlementTrigger request.
type SettlementReport struct {
	Settled int                  `json:"settled"`
	Results []LeagueSettledEvent `json:"results"`
	Error   string               `json:"error,omitempty"`
}

// Envelope marshals data and wraps it into a WSMessage payload.
func Envelope(msgType string, data any, socketId string) ([]byte, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return json.Marshal(&WSMessage{
		Type:     msgType,
		Data:     raw,
		SocketId: socketId,
	})
}

// LeagueOf extracts the league id an event refers to, if any.
func LeagueOf(m *WSMessage) (uint64, bool) {
	var ref struct {
		LeagueId *uint64 `json:"league_id"`
	}
	if err := json.Unmarshal(m.Data, &ref); err != nil || ref.LeagueId == nil {
		return 0, false
	}
	return *ref.LeagueId, true
}
