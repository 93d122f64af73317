// Package appctx carries the process-wide application state: the memoized
// DAO client handle and the global refresh signal. It is constructed once at
// startup and threaded explicitly to every component that needs it.
package appctx

import (
	"sync"
	"sync/atomic"

	"github.com/daoterm/daoterm/internal/config"
	"github.com/daoterm/daoterm/internal/ledger"
	"github.com/daoterm/daoterm/internal/logger"
	"github.com/daoterm/daoterm/internal/sdk"
	"github.com/daoterm/daoterm/internal/wallet"
)

// clientKey identifies one memoized client instance.
type clientKey struct {
	sender string
	daoID  string
}

// AppContext holds shared handles. Many components read the client handle
// concurrently; all changes to its identity go through the single reinit
// path in Client, so there is no concurrent-writer hazard.
type AppContext struct {
	Config *config.Config
	Wallet *wallet.Wallet
	Ledger *ledger.Client

	mu     sync.Mutex
	client sdk.Client
	key    clientKey

	// newClient builds a client for a (sender, dao) pair. Overridable in
	// tests via NewWithClientFactory.
	newClient func(sender, daoID string) sdk.Client

	// refresh is the global "data is stale, refetch" signal. Incremented
	// once per successful mutating action; fetch effects key off it.
	refresh atomic.Int64

	hookMu     sync.Mutex
	dryRunHook func(res *ledger.DryRunResult)
}

// New creates the application context.
func New(cfg *config.Config, w *wallet.Wallet, rpc *ledger.Client) *AppContext {
	ctx := &AppContext{
		Config: cfg,
		Wallet: w,
		Ledger: rpc,
	}
	ctx.newClient = func(sender, daoID string) sdk.Client {
		return sdk.NewClient(rpc, sender, daoID)
	}
	return ctx
}

// NewWithClientFactory creates a context with an injected client factory.
func NewWithClientFactory(cfg *config.Config, w *wallet.Wallet, rpc *ledger.Client, factory func(sender, daoID string) sdk.Client) *AppContext {
	ctx := New(cfg, w, rpc)
	ctx.newClient = factory
	return ctx
}

// Client returns the DAO client for the given DAO, memoized per
// (wallet address, DAO id). Switching either key value reinitializes the
// handle.
func (a *AppContext) Client(daoID string) sdk.Client {
	sender := ""
	if acct := a.Wallet.Account(); acct != nil {
		sender = acct.Address
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	key := clientKey{sender: sender, daoID: daoID}
	if a.client == nil || a.key != key {
		logger.Debug("initializing DAO client: sender=%s dao=%s", sender, daoID)
		a.client = a.newClient(sender, daoID)
		a.key = key
	}
	return a.client
}

// Refresh returns the current value of the global refresh counter.
func (a *AppContext) Refresh() int64 {
	return a.refresh.Load()
}

// SignalRefresh increments the refresh counter, telling data-fetching
// components their state is stale.
func (a *AppContext) SignalRefresh() {
	n := a.refresh.Add(1)
	logger.Debug("refresh signaled: %d", n)
}

// SetDryRunHook registers the observer for informational dry-run results.
// Pass nil to unregister. Only one observer at a time; the active surface
// (wizard or dashboard) owns the hook for the duration of its run.
func (a *AppContext) SetDryRunHook(fn func(res *ledger.DryRunResult)) {
	a.hookMu.Lock()
	defer a.hookMu.Unlock()
	a.dryRunHook = fn
}

// DryRunPassed forwards a successful dry-run result to the registered
// observer. Called by the submission pipeline after simulation, before
// execution.
func (a *AppContext) DryRunPassed(res *ledger.DryRunResult) {
	logger.Info("dry run passed: gas=%d", res.GasUsed)

	a.hookMu.Lock()
	fn := a.dryRunHook
	a.hookMu.Unlock()
	if fn != nil {
		fn(res)
	}
}
