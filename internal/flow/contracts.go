package flow

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/onflow/cadence"
	sdk "github.com/onflow/flow-go-sdk"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

const settleComputeLimit = 9999

// Contracts wraps the fantasy league contracts behind string-templated
// Cadence scripts. Reads that the UI treats as best-effort (stake totals,
// balances, settlement status) swallow errors and return a default.
type Contracts struct {
	client    *Client
	addresses Addresses
	signer    *Signer
	settleTx  string
	sealPoll  time.Duration
	now       func() time.Time
}

type ContractsOption func(*Contracts)

func WithSigner(s *Signer) ContractsOption {
	return func(c *Contracts) { c.signer = s }
}

// WithSettleTransactionFile replaces the embedded SettleLeague.cdc.
func WithSettleTransactionFile(path string) ContractsOption {
	return func(c *Contracts) {
		if path == "" {
			return
		}
		b, err := os.ReadFile(path)
		if err != nil {
			log.Warnf("unable to read settle transaction %s, using embedded: %v", path, err)
			return
		}
		c.settleTx = string(b)
	}
}

func WithSealPoll(d time.Duration) ContractsOption {
	return func(c *Contracts) { c.sealPoll = d }
}

func WithClock(now func() time.Time) ContractsOption {
	return func(c *Contracts) { c.now = now }
}

func NewContracts(client *Client, addresses Addresses, opts ...ContractsOption) *Contracts {
	c := &Contracts{
		client:    client,
		addresses: addresses,
		settleTx:  defaultSettleTransaction(),
		sealPoll:  2 * time.Second,
		now:       time.Now,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Contracts) run(ctx context.Context, source string, args ...cadence.Value) (any, error) {
	return c.client.ExecuteScript(ctx, c.addresses.render(source), args...)
}

// GetLeagues returns the raw league detail structs of every league.
func (c *Contracts) GetLeagues(ctx context.Context) ([]map[string]any, error) {
	v, err := c.run(ctx, scriptGetLeagues)
	if err != nil {
		log.Errorf("Error fetching leagues from blockchain: %v", err)
		return nil, fmt.Errorf("failed to fetch leagues: %w", err)
	}

	items, _ := v.([]any)
	leagues := make([]map[string]any, 0, len(items))
	for _, it := range items {
		if m, ok := it.(map[string]any); ok {
			leagues = append(leagues, m)
		}
	}
	return leagues, nil
}

// GetLeagueDetails returns nil, nil when the league does not exist.
func (c *Contracts) GetLeagueDetails(ctx context.Context, leagueId uint64) (map[string]any, error) {
	v, err := c.run(ctx, scriptGetLeagueDetails, UInt64(leagueId))
	if err != nil {
		log.Errorf("Error fetching league %d: %v", leagueId, err)
		return nil, fmt.Errorf("failed to fetch league details: %w", err)
	}
	m, _ := v.(map[string]any)
	return m, nil
}

func (c *Contracts) GetLeagueParticipants(ctx context.Context, leagueId uint64) ([]string, error) {
	v, err := c.run(ctx, scriptGetLeagueParticipants, UInt64(leagueId))
	if err != nil {
		log.Errorf("Error fetching participants for league %d: %v", leagueId, err)
		return nil, fmt.Errorf("failed to fetch participants: %w", err)
	}
	participants := AsStrings(v)
	if participants == nil {
		participants = []string{}
	}
	return participants, nil
}

func (c *Contracts) GetUserStakes(ctx context.Context, address string) ([]any, error) {
	v, err := c.run(ctx, scriptGetUserStakes, Address(address))
	if err != nil {
		log.Errorf("Error fetching stakes for %s: %v", address, err)
		return nil, fmt.Errorf("failed to fetch user stakes: %w", err)
	}
	stakes, _ := v.([]any)
	if stakes == nil {
		stakes = []any{}
	}
	return stakes, nil
}

func (c *Contracts) GetLeagueTotalStake(ctx context.Context, leagueId uint64) decimal.Decimal {
	v, err := c.run(ctx, scriptGetLeagueTotalStake, UInt64(leagueId))
	if err != nil {
		log.Errorf("Error fetching total stake for league %d: %v", leagueId, err)
		return decimal.Zero
	}
	return AsDecimal(v)
}

func (c *Contracts) HasUserStaked(ctx context.Context, leagueId uint64, address string) bool {
	v, err := c.run(ctx, scriptHasStake, UInt64(leagueId), Address(address))
	if err != nil {
		log.Errorf("Error checking stake for %s in league %d: %v", address, leagueId, err)
		return false
	}
	return AsBool(v, false)
}

func (c *Contracts) GetAccountBalance(ctx context.Context, address string) decimal.Decimal {
	v, err := c.run(ctx, scriptAccountBalance, Address(address))
	if err != nil {
		log.Errorf("Error fetching balance for %s: %v", address, err)
		return decimal.Zero
	}
	return AsDecimal(v)
}

// IsLeagueActive reports start <= now <= end in unix seconds.
func (c *Contracts) IsLeagueActive(ctx context.Context, leagueId uint64) bool {
	league, err := c.GetLeagueDetails(ctx, leagueId)
	if err != nil || league == nil {
		return false
	}

	now := float64(c.now().UnixNano()) / float64(time.Second)
	start := AsFloat(league["startTime"], 0)
	end := AsFloat(league["endTime"], 0)
	return now >= start && now <= end
}

func (c *Contracts) GetSettlementStatus(ctx context.Context, leagueId uint64) string {
	v, err := c.run(ctx, scriptSettlementStatus, UInt64(leagueId))
	if err != nil {
		log.Errorf("Error fetching settlement status for league %d: %v", leagueId, err)
		return "unknown"
	}
	if s := AsString(v); s != "" {
		return s
	}
	return "pending"
}

// LeaguesNeedingSettlement lists ended leagues whose status is not
// "Completed". Errors are logged and yield an empty list.
func (c *Contracts) LeaguesNeedingSettlement(ctx context.Context) []uint64 {
	v, err := c.run(ctx, scriptLeaguesNeedingSettlement)
	if err != nil {
		log.Errorf("Error getting leagues needing settlement: %v", err)
		return []uint64{}
	}
	return AsUint64s(v)
}

// SettleLeague signs and submits the settlement transaction and waits for
// it to seal. The tx id is returned whenever the transaction was submitted.
func (c *Contracts) SettleLeague(ctx context.Context, leagueId uint64) (string, error) {
	if c.signer == nil {
		return "", ErrNoSigner
	}

	block, err := c.client.LatestSealedBlock(ctx)
	if err != nil {
		return "", fmt.Errorf("reference block: %w", err)
	}
	key, err := c.client.GetAccountKey(ctx, c.signer.Address, c.signer.KeyIndex)
	if err != nil {
		return "", fmt.Errorf("proposal key: %w", err)
	}
	if key.Revoked {
		return "", fmt.Errorf("proposal key %d of %s is revoked", key.Index, c.signer.Address.Hex())
	}

	tx := sdk.NewTransaction().
		SetScript([]byte(c.addresses.render(c.settleTx))).
		SetComputeLimit(settleComputeLimit).
		SetReferenceBlockID(block.ID).
		SetProposalKey(c.signer.Address, key.Index, key.SequenceNumber).
		SetPayer(c.signer.Address).
		AddAuthorizer(c.signer.Address)
	if err := tx.AddArgument(UInt64(leagueId)); err != nil {
		return "", fmt.Errorf("settlement argument: %w", err)
	}
	if err := tx.SignEnvelope(c.signer.Address, key.Index, c.signer.signer); err != nil {
		return "", fmt.Errorf("sign settlement: %w", err)
	}

	txId, err := c.client.SendTransaction(ctx, tx)
	if err != nil {
		return "", fmt.Errorf("send settlement: %w", err)
	}
	log.Infof("Settlement transaction submitted: %s", txId)

	if _, err := c.client.WaitSealed(ctx, txId, c.sealPoll); err != nil {
		return txId, err
	}
	log.Infof("League %d settled successfully!", leagueId)
	return txId, nil
}
