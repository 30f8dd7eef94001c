package flow

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/onflow/cadence"
	jsoncdc "github.com/onflow/cadence/encoding/json"
	sdk "github.com/onflow/flow-go-sdk"
)

// fakeAccess answers scripts by matching a fragment of the Cadence source
// and records submitted transactions.
type fakeAccess struct {
	t *testing.T

	mu          sync.Mutex
	scripts     map[string]string // script fragment -> JSON-Cadence result
	scriptErr   error
	scriptCalls int
	submitted   []sdk.Transaction
	results     []sdk.TransactionStatus // statuses returned by successive polls
	txError     error
}

func (f *fakeAccess) ExecuteScriptAtLatestBlock(ctx context.Context, script []byte, args []cadence.Value) (cadence.Value, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scriptCalls++

	if f.scriptErr != nil {
		return nil, f.scriptErr
	}
	for frag, result := range f.scripts {
		if strings.Contains(string(script), frag) {
			v, err := jsoncdc.Decode(nil, []byte(result))
			if err != nil {
				f.t.Fatalf("bad fixture for %s: %v", frag, err)
			}
			return v, nil
		}
	}
	return nil, errors.New("unknown script")
}

func (f *fakeAccess) GetLatestBlockHeader(ctx context.Context, isSealed bool) (*sdk.BlockHeader, error) {
	return &sdk.BlockHeader{ID: sdk.HexToID(strings.Repeat("cd", 32)), Height: 99}, nil
}

func (f *fakeAccess) GetAccount(ctx context.Context, address sdk.Address) (*sdk.Account, error) {
	return &sdk.Account{
		Address: address,
		Keys:    []*sdk.AccountKey{{Index: 0, SequenceNumber: 41}},
	}, nil
}

func (f *fakeAccess) SendTransaction(ctx context.Context, tx sdk.Transaction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.submitted = append(f.submitted, tx)
	return nil
}

func (f *fakeAccess) GetTransactionResult(ctx context.Context, id sdk.Identifier) (*sdk.TransactionResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	status := sdk.TransactionStatusSealed
	if len(f.results) > 0 {
		status, f.results = f.results[0], f.results[1:]
	}
	return &sdk.TransactionResult{Status: status, Error: f.txError}, nil
}
