package flow

import (
	"testing"

	jsoncdc "github.com/onflow/cadence/encoding/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const leagueArrayJSON = `{"type":"Array","value":[
 {"type":"Struct","value":{"id":"A.01cf0e2f2f715450.LeagueFactory.LeagueDetails","fields":[
   {"name":"id","value":{"type":"UInt64","value":"1"}},
   {"name":"name","value":{"type":"String","value":"Hoops"}},
   {"name":"startTime","value":{"type":"UFix64","value":"1700000000.00000000"}},
   {"name":"allowNFTs","value":{"type":"Bool","value":true}},
   {"name":"allowedTokens","value":{"type":"Array","value":[{"type":"String","value":"FLOW"},{"type":"String","value":"USDC"}]}},
   {"name":"creator","value":{"type":"Address","value":"0x01cf0e2f2f715450"}},
   {"name":"winner","value":{"type":"Optional","value":null}}
 ]}}
]}`

func TestDecodeValue_LeagueStructs(t *testing.T) {
	v, err := DecodeValue([]byte(leagueArrayJSON))
	require.NoError(t, err)

	items, ok := v.([]any)
	require.True(t, ok)
	require.Len(t, items, 1)

	league := items[0].(map[string]any)
	assert.Equal(t, "1", league["id"])
	assert.Equal(t, "Hoops", league["name"])
	assert.Equal(t, true, league["allowNFTs"])
	assert.Equal(t, []string{"FLOW", "USDC"}, AsStrings(league["allowedTokens"]))
	assert.Equal(t, "0x01cf0e2f2f715450", league["creator"])
	assert.Nil(t, league["winner"])
	assert.Equal(t, 1700000000.0, AsFloat(league["startTime"], 0))
}

func TestDecodeValue_Scalars(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want any
	}{
		{"void", `{"type":"Void"}`, nil},
		{"optional some", `{"type":"Optional","value":{"type":"String","value":"Completed"}}`, "Completed"},
		{"ufix64", `{"type":"UFix64","value":"12.50000000"}`, "12.50000000"},
		{"path", `{"type":"Path","value":{"domain":"public","identifier":"flowTokenBalance"}}`, "/public/flowTokenBalance"},
		{"dictionary", `{"type":"Dictionary","value":[{"key":{"type":"UInt64","value":"3"},"value":{"type":"Bool","value":false}}]}`, map[string]any{"3": false}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeValue([]byte(tt.in))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeValue_Unsupported(t *testing.T) {
	_, err := DecodeValue([]byte(`{"type":"Spaceship","value":{}}`))
	assert.Error(t, err)

	_, err = DecodeValue([]byte(`not json`))
	assert.Error(t, err)
}

func TestArguments_Encode(t *testing.T) {
	raw, err := jsoncdc.Encode(UInt64(42))
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"UInt64","value":"42"}`, string(raw))

	raw, err = jsoncdc.Encode(Address("01CF0E2F2F715450"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"Address","value":"0x01cf0e2f2f715450"}`, string(raw))
}

func TestAccessors_Defaults(t *testing.T) {
	assert.Equal(t, 20, AsInt(nil, 20))
	assert.Equal(t, 20, AsInt("20.00000000", 0))
	assert.Equal(t, 7, AsInt("7", 0))
	assert.Equal(t, 1000.0, AsFloat("bad", 1000))
	assert.True(t, AsBool(nil, true))
	assert.True(t, AsDecimal("oops").IsZero())
	assert.Equal(t, []uint64{1, 5}, AsUint64s([]any{"1", "x", "5"}))
	assert.Equal(t, []uint64{}, AsUint64s(nil))
}
