package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCache_SetGetFlush(t *testing.T) {
	c := New(time.Minute)

	_, ok := c.Get(AllLeaguesKey)
	assert.False(t, ok)

	c.Set(AllLeaguesKey, []int{1, 2})
	c.Set(LeagueKey(7), "seven")
	assert.Equal(t, 2, c.Len())

	v, ok := c.Get(AllLeaguesKey)
	assert.True(t, ok)
	assert.Equal(t, []int{1, 2}, v)

	c.Flush()
	assert.Equal(t, 0, c.Len())
	_, ok = c.Get(LeagueKey(7))
	assert.False(t, ok)
}

func TestCache_Expiry(t *testing.T) {
	c := New(20 * time.Millisecond)
	c.Set("k", 1)
	time.Sleep(40 * time.Millisecond)

	_, ok := c.Get("k")
	assert.False(t, ok)
}

func TestLeagueKey(t *testing.T) {
	assert.Equal(t, "league_12", LeagueKey(12))
}
