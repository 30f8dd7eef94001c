package flow

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/onflow/cadence"
	sdk "github.com/onflow/flow-go-sdk"
	flowhttp "github.com/onflow/flow-go-sdk/access/http"
	log "github.com/sirupsen/logrus"
)

// Access is the part of the flow-go-sdk access API the contracts need.
// *flowhttp.Client satisfies it.
type Access interface {
	ExecuteScriptAtLatestBlock(ctx context.Context, script []byte, arguments []cadence.Value) (cadence.Value, error)
	GetLatestBlockHeader(ctx context.Context, isSealed bool) (*sdk.BlockHeader, error)
	GetAccount(ctx context.Context, address sdk.Address) (*sdk.Account, error)
	SendTransaction(ctx context.Context, tx sdk.Transaction) error
	GetTransactionResult(ctx context.Context, txID sdk.Identifier) (*sdk.TransactionResult, error)
}

var _ Access = (*flowhttp.Client)(nil)

// Client wraps an access node with bounded retries on reads.
type Client struct {
	access   Access
	attempts int
	backoff  time.Duration
}

func New(access Access, opts ...Option) *Client {
	c := &Client{
		access:   access,
		attempts: 2,
		backoff:  time.Second,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Dial connects to the REST API of an access node, e.g.
// https://rest-testnet.onflow.org.
func Dial(host string, opts ...Option) (*Client, error) {
	host = strings.TrimRight(host, "/")
	if host == "" {
		host = flowhttp.TestnetHost
	} else if !strings.HasSuffix(host, "/v1") {
		host += "/v1"
	}

	access, err := flowhttp.NewClient(host)
	if err != nil {
		return nil, fmt.Errorf("flow access client %s: %w", host, err)
	}
	return New(access, opts...), nil
}

func (c *Client) retry(ctx context.Context, op string, fn func() error) error {
	var err error
	for attempt := 1; attempt <= c.attempts; attempt++ {
		if err = fn(); err == nil {
			return nil
		}
		if attempt == c.attempts {
			break
		}
		log.Warnf("flow %s failed (attempt %d/%d): %v", op, attempt, c.attempts, err)

		t := time.NewTimer(c.backoff * time.Duration(attempt))
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
	}
	return fmt.Errorf("flow %s: %w", op, err)
}

// ExecuteScript runs a read-only Cadence script against the latest sealed
// block and returns the result as plain Go values.
func (c *Client) ExecuteScript(ctx context.Context, script string, args ...cadence.Value) (any, error) {
	var v cadence.Value
	err := c.retry(ctx, "script", func() error {
		var err error
		v, err = c.access.ExecuteScriptAtLatestBlock(ctx, []byte(script), args)
		return err
	})
	if err != nil {
		return nil, err
	}
	return Decode(v), nil
}

func (c *Client) LatestSealedBlock(ctx context.Context) (*sdk.BlockHeader, error) {
	var h *sdk.BlockHeader
	err := c.retry(ctx, "latest block", func() error {
		var err error
		h, err = c.access.GetLatestBlockHeader(ctx, true)
		return err
	})
	return h, err
}

func (c *Client) GetAccountKey(ctx context.Context, address sdk.Address, index uint32) (*sdk.AccountKey, error) {
	var account *sdk.Account
	err := c.retry(ctx, "account", func() error {
		var err error
		account, err = c.access.GetAccount(ctx, address)
		return err
	})
	if err != nil {
		return nil, err
	}

	for _, k := range account.Keys {
		if uint32(k.Index) == index {
			return k, nil
		}
	}
	return nil, fmt.Errorf("account %s has no key %d", address.Hex(), index)
}

// SendTransaction is not retried, a resubmission could execute twice.
func (c *Client) SendTransaction(ctx context.Context, tx *sdk.Transaction) (string, error) {
	if err := c.access.SendTransaction(ctx, *tx); err != nil {
		return "", err
	}
	return tx.ID().String(), nil
}

func (c *Client) GetTransactionResult(ctx context.Context, txId string) (*sdk.TransactionResult, error) {
	var res *sdk.TransactionResult
	err := c.retry(ctx, "transaction result", func() error {
		var err error
		res, err = c.access.GetTransactionResult(ctx, sdk.HexToID(txId))
		return err
	})
	return res, err
}

// WaitSealed polls until the transaction is sealed. An execution error or
// an expired transaction is returned as *TxError.
func (c *Client) WaitSealed(ctx context.Context, txId string, poll time.Duration) (*sdk.TransactionResult, error) {
	ticker := time.NewTicker(poll)
	defer ticker.Stop()

	for {
		res, err := c.GetTransactionResult(ctx, txId)
		if err != nil {
			return nil, err
		}
		if res.Error != nil {
			return res, &TxError{TxId: txId, Message: res.Error.Error()}
		}
		switch res.Status {
		case sdk.TransactionStatusSealed:
			return res, nil
		case sdk.TransactionStatusExpired:
			return res, &TxError{TxId: txId, Message: "transaction expired"}
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}
