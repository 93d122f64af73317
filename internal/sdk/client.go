package sdk

import (
	"context"
	"fmt"

	"github.com/daoterm/daoterm/internal/ledger"
)

// Client is the governance SDK surface. Query operations read chain state;
// mutation operations append one or more calls to a pending transaction
// without performing any I/O. One client instance is scoped to a single
// (sender, DAO) pair.
type Client interface {
	// Queries.
	ListDAOs(ctx context.Context) ([]DAO, error)
	GetDAO(ctx context.Context) (*DAO, error)
	ListIntents(ctx context.Context) ([]Intent, error)
	GetIntent(ctx context.Context, key string) (*Intent, error)
	ListDeps(ctx context.Context) (*DepList, error)
	ListVaults(ctx context.Context) ([]Vault, error)
	VaultBalances(ctx context.Context, vault string) ([]Balance, error)
	OwnedBalances(ctx context.Context) ([]Balance, error)
	VotingPower(ctx context.Context) (*VotingPower, error)
	// LockedAmounts returns base units per coin type reserved by other
	// pending intents. Best-effort hint; the authoritative check happens
	// on-chain at execution time.
	LockedAmounts(ctx context.Context, vault string) (map[string]uint64, error)

	// Mutations. Each appends calls to tx.
	RequestConfig(tx *Transaction, p IntentParams, cfg ConfigParams) error
	RequestDeps(tx *Transaction, p IntentParams, deps []Dep) error
	RequestToggleUnverified(tx *Transaction, p IntentParams, allowed bool) error
	RequestSpend(tx *Transaction, p IntentParams, vault string, coin CoinSelection, recipients []Recipient) error
	RequestVesting(tx *Transaction, p IntentParams, vault string, coin CoinSelection, recipient Recipient, startMS, endMS int64) error
	Vote(tx *Transaction, intentKey string, approve bool) error
	DeleteIntent(tx *Transaction, intentKey string) error
	ExecuteIntent(tx *Transaction, intentKey string) error
	Follow(tx *Transaction) error
	Unfollow(tx *Transaction) error
}

// IntentParams carries the fields common to every intent request.
type IntentParams struct {
	Key         string
	Title       string
	Description string
	VotingStart int64 // chain ms
	VotingEnd   int64
	Execution   int64
	Expiration  int64
}

// ConfigParams are the governance settings a config intent can change.
type ConfigParams struct {
	Name      string
	Quadratic bool
}

// govPackage is the on-chain governance package all calls target.
const govPackage = "0xda0"

// client is the RPC-backed Client implementation.
type client struct {
	rpc    *ledger.Client
	sender string
	daoID  string
}

// NewClient creates a client scoped to one (sender, DAO) pair.
func NewClient(rpc *ledger.Client, sender, daoID string) Client {
	return &client{rpc: rpc, sender: sender, daoID: daoID}
}

func target(module, fn string) string {
	return fmt.Sprintf("%s::%s::%s", govPackage, module, fn)
}

func (c *client) ListDAOs(ctx context.Context) ([]DAO, error) {
	var daos []DAO
	if err := c.rpc.Call(ctx, "dao_listDAOs", nil, &daos); err != nil {
		return nil, err
	}
	return daos, nil
}

func (c *client) GetDAO(ctx context.Context) (*DAO, error) {
	var dao DAO
	if err := c.rpc.Call(ctx, "dao_getDAO", []any{c.daoID}, &dao); err != nil {
		return nil, err
	}
	return &dao, nil
}

func (c *client) ListIntents(ctx context.Context) ([]Intent, error) {
	var intents []Intent
	if err := c.rpc.Call(ctx, "dao_listIntents", []any{c.daoID}, &intents); err != nil {
		return nil, err
	}
	return intents, nil
}

func (c *client) GetIntent(ctx context.Context, key string) (*Intent, error) {
	var intent Intent
	if err := c.rpc.Call(ctx, "dao_getIntent", []any{c.daoID, key}, &intent); err != nil {
		return nil, err
	}
	return &intent, nil
}

func (c *client) ListDeps(ctx context.Context) (*DepList, error) {
	var deps DepList
	if err := c.rpc.Call(ctx, "dao_listDeps", []any{c.daoID}, &deps); err != nil {
		return nil, err
	}
	return &deps, nil
}

func (c *client) ListVaults(ctx context.Context) ([]Vault, error) {
	var vaults []Vault
	if err := c.rpc.Call(ctx, "dao_listVaults", []any{c.daoID}, &vaults); err != nil {
		return nil, err
	}
	return vaults, nil
}

func (c *client) VaultBalances(ctx context.Context, vault string) ([]Balance, error) {
	var balances []Balance
	if err := c.rpc.Call(ctx, "dao_getVaultBalances", []any{c.daoID, vault}, &balances); err != nil {
		return nil, err
	}
	return balances, nil
}

func (c *client) OwnedBalances(ctx context.Context) ([]Balance, error) {
	raw, err := c.rpc.Balances(ctx, c.sender)
	if err != nil {
		return nil, err
	}
	balances := make([]Balance, len(raw))
	for i, b := range raw {
		balances[i] = Balance{CoinType: b.CoinType, Amount: b.Total}
	}
	return balances, nil
}

func (c *client) VotingPower(ctx context.Context) (*VotingPower, error) {
	var vp VotingPower
	if err := c.rpc.Call(ctx, "dao_getVotingPower", []any{c.daoID, c.sender}, &vp); err != nil {
		return nil, err
	}
	return &vp, nil
}

func (c *client) LockedAmounts(ctx context.Context, vault string) (map[string]uint64, error) {
	var locked map[string]uint64
	if err := c.rpc.Call(ctx, "dao_getLockedAmounts", []any{c.daoID, vault}, &locked); err != nil {
		return nil, err
	}
	return locked, nil
}

func (c *client) intentArgs(p IntentParams) []any {
	return []any{c.daoID, p.Key, p.Title, p.Description, p.VotingStart, p.VotingEnd, p.Execution, p.Expiration}
}

func (c *client) RequestConfig(tx *Transaction, p IntentParams, cfg ConfigParams) error {
	tx.Append(Call{
		Target: target("config", "request_config"),
		Args:   append(c.intentArgs(p), cfg.Name, cfg.Quadratic),
	})
	return nil
}

func (c *client) RequestDeps(tx *Transaction, p IntentParams, deps []Dep) error {
	if len(deps) == 0 {
		return fmt.Errorf("dependency intent requires at least one dependency")
	}
	names := make([]string, len(deps))
	addrs := make([]string, len(deps))
	versions := make([]uint64, len(deps))
	for i, d := range deps {
		names[i] = d.Name
		addrs[i] = d.Address
		versions[i] = d.Version
	}
	tx.Append(Call{
		Target: target("config", "request_deps_update"),
		Args:   append(c.intentArgs(p), names, addrs, versions),
	})
	return nil
}

func (c *client) RequestToggleUnverified(tx *Transaction, p IntentParams, allowed bool) error {
	tx.Append(Call{
		Target: target("config", "request_toggle_unverified_deps"),
		Args:   append(c.intentArgs(p), allowed),
	})
	return nil
}

func (c *client) RequestSpend(tx *Transaction, p IntentParams, vault string, coin CoinSelection, recipients []Recipient) error {
	if len(recipients) == 0 {
		return fmt.Errorf("spend intent requires at least one recipient")
	}
	addrs := make([]string, len(recipients))
	amounts := make([]uint64, len(recipients))
	for i, r := range recipients {
		addrs[i] = r.Address
		amounts[i] = r.BaseAmount
	}
	tx.Append(Call{
		Target: target("vault", "request_spend"),
		Args:   append(c.intentArgs(p), vault, coin.CoinType, addrs, amounts),
	})
	return nil
}

func (c *client) RequestVesting(tx *Transaction, p IntentParams, vault string, coin CoinSelection, recipient Recipient, startMS, endMS int64) error {
	tx.Append(Call{
		Target: target("vault", "request_vesting"),
		Args: append(c.intentArgs(p),
			vault, coin.CoinType, recipient.Address, recipient.BaseAmount, startMS, endMS),
	})
	return nil
}

func (c *client) Vote(tx *Transaction, intentKey string, approve bool) error {
	tx.Append(Call{
		Target: target("voting", "vote"),
		Args:   []any{c.daoID, intentKey, approve},
	})
	return nil
}

func (c *client) DeleteIntent(tx *Transaction, intentKey string) error {
	tx.Append(Call{
		Target: target("intents", "delete_intent"),
		Args:   []any{c.daoID, intentKey},
	})
	return nil
}

func (c *client) ExecuteIntent(tx *Transaction, intentKey string) error {
	tx.Append(Call{
		Target: target("intents", "execute_intent"),
		Args:   []any{c.daoID, intentKey},
	})
	return nil
}

func (c *client) Follow(tx *Transaction) error {
	tx.Append(Call{Target: target("membership", "follow"), Args: []any{c.daoID}})
	return nil
}

func (c *client) Unfollow(tx *Transaction) error {
	tx.Append(Call{Target: target("membership", "unfollow"), Args: []any{c.daoID}})
	return nil
}
