// Package submit runs the shared transaction pipeline every mutating action
// goes through: precondition checks, signing, a mandatory dry run, on-chain
// execution, and the single refresh signal on success.
package submit

import (
	"context"
	"fmt"

	"github.com/daoterm/daoterm/internal/appctx"
	"github.com/daoterm/daoterm/internal/ledger"
	"github.com/daoterm/daoterm/internal/logger"
	"github.com/daoterm/daoterm/internal/sdk"
	"github.com/daoterm/daoterm/internal/wallet"
)

// Signer signs transaction payloads. *wallet.Wallet satisfies it.
type Signer interface {
	Connected() bool
	Sign(payload []byte) (*wallet.Signature, error)
}

// Executor simulates and submits signed transactions. *ledger.Client
// satisfies it.
type Executor interface {
	DryRun(ctx context.Context, txBytes []byte) (*ledger.DryRunResult, error)
	Execute(ctx context.Context, txBytes, signature []byte) (*ledger.ExecuteResult, error)
}

// Notifier receives pipeline notifications: the informational dry-run result
// before execution, and the stale-data signal after a successful mutation.
// *appctx.AppContext satisfies it.
type Notifier interface {
	DryRunPassed(res *ledger.DryRunResult)
	SignalRefresh()
}

// Run drives a built transaction through the pipeline and returns the
// transaction digest. The wallet check happens before signing: a
// disconnected wallet aborts with no chain interaction at all. The dry run
// always runs before execution and its result is reported to the Notifier
// exactly once; the refresh signal fires exactly once, only after the
// transaction landed.
func Run(ctx context.Context, s Signer, x Executor, n Notifier, tx *sdk.Transaction) (string, error) {
	if tx == nil || tx.Empty() {
		return "", fmt.Errorf("transaction has no calls")
	}
	if !s.Connected() {
		return "", fmt.Errorf("wallet not connected")
	}

	payload, err := tx.Bytes()
	if err != nil {
		return "", fmt.Errorf("encoding transaction: %w", err)
	}

	sig, err := s.Sign(payload)
	if err != nil {
		return "", fmt.Errorf("signing transaction: %w", err)
	}

	dry, err := x.DryRun(ctx, payload)
	if err != nil {
		return "", fmt.Errorf("dry run: %w", err)
	}
	if !dry.OK() {
		return "", fmt.Errorf("dry run failed: %s", dry.Error)
	}
	n.DryRunPassed(dry)

	res, err := x.Execute(ctx, payload, sig.Bytes)
	if err != nil {
		return "", fmt.Errorf("executing transaction: %w", err)
	}
	if !res.OK() {
		return "", fmt.Errorf("execution failed: %s", res.Error)
	}

	logger.Info("transaction landed: digest=%s", res.Digest)
	n.SignalRefresh()
	return res.Digest, nil
}

// RunWith is Run wired to the application context's wallet and ledger.
func RunWith(ctx context.Context, app *appctx.AppContext, tx *sdk.Transaction) (string, error) {
	return Run(ctx, app.Wallet, app.Ledger, app, tx)
}
