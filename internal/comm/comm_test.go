package comm

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvelope_LeagueOf(t *testing.T) {
	payload, err := Envelope(LeagueSettled, LeagueSettledEvent{LeagueId: 7, TxId: "abc", Success: true}, "")
	require.NoError(t, err)

	var msg WSMessage
	require.NoError(t, json.Unmarshal(payload, &msg))
	assert.Equal(t, LeagueSettled, msg.Type)

	id, ok := LeagueOf(&msg)
	assert.True(t, ok)
	assert.Equal(t, uint64(7), id)
}

func TestLeagueOf_Missing(t *testing.T) {
	msg := &WSMessage{Type: "x", Data: json.RawMessage(`{"name":"n"}`)}
	_, ok := LeagueOf(msg)
	assert.False(t, ok)

	msg.Data = json.RawMessage(`not json`)
	_, ok = LeagueOf(msg)
	assert.False(t, ok)
}
