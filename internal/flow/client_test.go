package flow

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_RetriesAreBounded(t *testing.T) {
	f := &fakeAccess{t: t, scriptErr: errors.New("429 Too Many Requests")}
	c := New(f, WithRetry(3, time.Millisecond))

	_, err := c.ExecuteScript(context.Background(), "access(all) fun main() {}")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
	assert.Equal(t, 3, f.scriptCalls)
}

func TestClient_RetryStopsOnCancel(t *testing.T) {
	f := &fakeAccess{t: t, scriptErr: errors.New("unavailable")}
	c := New(f, WithRetry(5, time.Hour))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.ExecuteScript(ctx, "access(all) fun main() {}")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, f.scriptCalls)
}

func TestClient_GetAccountKey(t *testing.T) {
	c := New(&fakeAccess{t: t})
	signer, err := NewSigner("0x01cf0e2f2f715450", 0, testPrivateKey, "")
	require.NoError(t, err)

	key, err := c.GetAccountKey(context.Background(), signer.Address, 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(41), key.SequenceNumber)

	_, err = c.GetAccountKey(context.Background(), signer.Address, 7)
	assert.Error(t, err)
}
