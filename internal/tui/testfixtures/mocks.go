package testfixtures

import (
	"context"
	"fmt"
	"sync"

	"github.com/daoterm/daoterm/internal/sdk"
)

// MockSDK is a mock implementation of sdk.Client for testing.
// Queries return configurable canned data; mutations append the same calls
// the real client would, so transaction assertions stay meaningful.
// All methods are thread-safe and call counts are recorded for verification.
type MockSDK struct {
	mu sync.RWMutex

	// Canned query data
	DAOs    []sdk.DAO
	Intents []sdk.Intent
	Deps    *sdk.DepList
	Vaults  []sdk.Vault
	Owned   []sdk.Balance
	Power   *sdk.VotingPower
	Locked  map[string]uint64

	// Error returned by every query when set
	QueryError error

	// Call counters
	ListDAOsCalls    int
	ListIntentsCalls int
	GetIntentCalls   int
	ListDepsCalls    int
	ListVaultsCalls  int
	VoteCalls        int
	ExecuteCalls     int
	DeleteCalls      int
	FollowCalls      int
	UnfollowCalls    int
	RequestCalls     int

	// Last mutation arguments
	LastIntentKey string
	LastApprove   bool
	LastParams    sdk.IntentParams
}

// NewMockSDK creates a MockSDK preloaded with the standard fixtures.
func NewMockSDK() *MockSDK {
	return &MockSDK{
		DAOs:    SampleDAOs(),
		Intents: SampleIntents(),
		Deps:    SampleDeps(),
		Vaults:  SampleVaults(),
		Owned:   SampleBalances(),
		Power:   SamplePower(),
		Locked:  map[string]uint64{},
	}
}

func (m *MockSDK) ListDAOs(ctx context.Context) ([]sdk.DAO, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ListDAOsCalls++
	if m.QueryError != nil {
		return nil, m.QueryError
	}
	return m.DAOs, nil
}

func (m *MockSDK) GetDAO(ctx context.Context) (*sdk.DAO, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.QueryError != nil {
		return nil, m.QueryError
	}
	if len(m.DAOs) == 0 {
		return nil, fmt.Errorf("no DAO configured")
	}
	return &m.DAOs[0], nil
}

func (m *MockSDK) ListIntents(ctx context.Context) ([]sdk.Intent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ListIntentsCalls++
	if m.QueryError != nil {
		return nil, m.QueryError
	}
	return m.Intents, nil
}

func (m *MockSDK) GetIntent(ctx context.Context, key string) (*sdk.Intent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetIntentCalls++
	if m.QueryError != nil {
		return nil, m.QueryError
	}
	for i := range m.Intents {
		if m.Intents[i].Key == key {
			return &m.Intents[i], nil
		}
	}
	return nil, fmt.Errorf("intent not found: %s", key)
}

func (m *MockSDK) ListDeps(ctx context.Context) (*sdk.DepList, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ListDepsCalls++
	if m.QueryError != nil {
		return nil, m.QueryError
	}
	return m.Deps, nil
}

func (m *MockSDK) ListVaults(ctx context.Context) ([]sdk.Vault, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ListVaultsCalls++
	if m.QueryError != nil {
		return nil, m.QueryError
	}
	return m.Vaults, nil
}

func (m *MockSDK) VaultBalances(ctx context.Context, vault string) ([]sdk.Balance, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.QueryError != nil {
		return nil, m.QueryError
	}
	for _, v := range m.Vaults {
		if v.Name == vault {
			return v.Balances, nil
		}
	}
	return nil, nil
}

func (m *MockSDK) OwnedBalances(ctx context.Context) ([]sdk.Balance, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.QueryError != nil {
		return nil, m.QueryError
	}
	return m.Owned, nil
}

func (m *MockSDK) VotingPower(ctx context.Context) (*sdk.VotingPower, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.QueryError != nil {
		return nil, m.QueryError
	}
	return m.Power, nil
}

func (m *MockSDK) LockedAmounts(ctx context.Context, vault string) (map[string]uint64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.QueryError != nil {
		return nil, m.QueryError
	}
	return m.Locked, nil
}

func (m *MockSDK) RequestConfig(tx *sdk.Transaction, p sdk.IntentParams, cfg sdk.ConfigParams) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RequestCalls++
	m.LastParams = p
	tx.Append(sdk.Call{Target: "0xda0::config::request_config", Args: []any{p.Key, cfg.Name, cfg.Quadratic}})
	return nil
}

func (m *MockSDK) RequestDeps(tx *sdk.Transaction, p sdk.IntentParams, deps []sdk.Dep) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RequestCalls++
	m.LastParams = p
	if len(deps) == 0 {
		return fmt.Errorf("dependency intent requires at least one dependency")
	}
	tx.Append(sdk.Call{Target: "0xda0::config::request_deps_update", Args: []any{p.Key, sdk.DepKeys(deps)}})
	return nil
}

func (m *MockSDK) RequestToggleUnverified(tx *sdk.Transaction, p sdk.IntentParams, allowed bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RequestCalls++
	m.LastParams = p
	tx.Append(sdk.Call{Target: "0xda0::config::request_toggle_unverified_deps", Args: []any{p.Key, allowed}})
	return nil
}

func (m *MockSDK) RequestSpend(tx *sdk.Transaction, p sdk.IntentParams, vault string, coin sdk.CoinSelection, recipients []sdk.Recipient) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RequestCalls++
	m.LastParams = p
	if len(recipients) == 0 {
		return fmt.Errorf("spend intent requires at least one recipient")
	}
	tx.Append(sdk.Call{Target: "0xda0::vault::request_spend", Args: []any{p.Key, vault, coin.CoinType}})
	return nil
}

func (m *MockSDK) RequestVesting(tx *sdk.Transaction, p sdk.IntentParams, vault string, coin sdk.CoinSelection, recipient sdk.Recipient, startMS, endMS int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RequestCalls++
	m.LastParams = p
	tx.Append(sdk.Call{Target: "0xda0::vault::request_vesting", Args: []any{p.Key, vault, coin.CoinType, recipient.Address}})
	return nil
}

func (m *MockSDK) Vote(tx *sdk.Transaction, intentKey string, approve bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.VoteCalls++
	m.LastIntentKey = intentKey
	m.LastApprove = approve
	tx.Append(sdk.Call{Target: "0xda0::voting::vote", Args: []any{intentKey, approve}})
	return nil
}

func (m *MockSDK) DeleteIntent(tx *sdk.Transaction, intentKey string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DeleteCalls++
	m.LastIntentKey = intentKey
	tx.Append(sdk.Call{Target: "0xda0::intents::delete_intent", Args: []any{intentKey}})
	return nil
}

func (m *MockSDK) ExecuteIntent(tx *sdk.Transaction, intentKey string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ExecuteCalls++
	m.LastIntentKey = intentKey
	tx.Append(sdk.Call{Target: "0xda0::intents::execute_intent", Args: []any{intentKey}})
	return nil
}

func (m *MockSDK) Follow(tx *sdk.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FollowCalls++
	tx.Append(sdk.Call{Target: "0xda0::membership::follow", Args: nil})
	return nil
}

func (m *MockSDK) Unfollow(tx *sdk.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UnfollowCalls++
	tx.Append(sdk.Call{Target: "0xda0::membership::unfollow", Args: nil})
	return nil
}

// Compile-time interface check
var _ sdk.Client = (*MockSDK)(nil)
