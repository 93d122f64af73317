package submit

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/daoterm/daoterm/internal/ledger"
	"github.com/daoterm/daoterm/internal/sdk"
	"github.com/daoterm/daoterm/internal/wallet"
)

type fakeSigner struct {
	connected bool
	signErr   error
	signCalls int
}

func (f *fakeSigner) Connected() bool { return f.connected }

func (f *fakeSigner) Sign(payload []byte) (*wallet.Signature, error) {
	f.signCalls++
	if f.signErr != nil {
		return nil, f.signErr
	}
	return &wallet.Signature{Bytes: []byte("sig"), PubKey: []byte("pub")}, nil
}

type fakeExecutor struct {
	dryResult  *ledger.DryRunResult
	dryErr     error
	execResult *ledger.ExecuteResult
	execErr    error

	dryCalls  int
	execCalls int
}

func (f *fakeExecutor) DryRun(ctx context.Context, txBytes []byte) (*ledger.DryRunResult, error) {
	f.dryCalls++
	return f.dryResult, f.dryErr
}

func (f *fakeExecutor) Execute(ctx context.Context, txBytes, signature []byte) (*ledger.ExecuteResult, error) {
	f.execCalls++
	return f.execResult, f.execErr
}

type fakeNotifier struct {
	refreshes int

	// x, when set, lets DryRunPassed record where in the pipeline the
	// informational notification arrived.
	x               *fakeExecutor
	dryRunInfos     int
	dryCallsAtInfo  int
	execCallsAtInfo int
}

func (f *fakeNotifier) SignalRefresh() { f.refreshes++ }

func (f *fakeNotifier) DryRunPassed(res *ledger.DryRunResult) {
	f.dryRunInfos++
	if f.x != nil {
		f.dryCallsAtInfo = f.x.dryCalls
		f.execCallsAtInfo = f.x.execCalls
	}
}

func buildTx(t *testing.T) *sdk.Transaction {
	t.Helper()
	tx := sdk.NewTransaction("0xsender")
	tx.Append(sdk.Call{Target: "0xda0::gov::vote", Args: []any{"key", true}})
	return tx
}

func TestRun_Success(t *testing.T) {
	s := &fakeSigner{connected: true}
	x := &fakeExecutor{
		dryResult:  &ledger.DryRunResult{Status: "success"},
		execResult: &ledger.ExecuteResult{Digest: "0xabc", Status: "success"},
	}
	n := &fakeNotifier{}

	digest, err := Run(context.Background(), s, x, n, buildTx(t))
	require.NoError(t, err)
	require.Equal(t, "0xabc", digest)
	require.Equal(t, 1, x.dryCalls, "dry run always precedes execution")
	require.Equal(t, 1, x.execCalls)
	require.Equal(t, 1, n.refreshes, "exactly one refresh per successful mutation")
}

func TestRun_DryRunResultSurfacedOnceBeforeExecution(t *testing.T) {
	s := &fakeSigner{connected: true}
	x := &fakeExecutor{
		dryResult:  &ledger.DryRunResult{Status: "success", GasUsed: 1000},
		execResult: &ledger.ExecuteResult{Digest: "0xabc", Status: "success"},
	}
	n := &fakeNotifier{x: x}

	_, err := Run(context.Background(), s, x, n, buildTx(t))
	require.NoError(t, err)
	require.Equal(t, 1, n.dryRunInfos, "dry-run result surfaces exactly once")
	require.Equal(t, 1, n.dryCallsAtInfo, "notification comes after the dry run")
	require.Zero(t, n.execCallsAtInfo, "notification comes before execution")
}

func TestRun_DisconnectedWalletAbortsBeforeSigning(t *testing.T) {
	s := &fakeSigner{connected: false}
	x := &fakeExecutor{}
	n := &fakeNotifier{}

	_, err := Run(context.Background(), s, x, n, buildTx(t))
	require.EqualError(t, err, "wallet not connected")
	require.Zero(t, s.signCalls)
	require.Zero(t, x.dryCalls)
	require.Zero(t, x.execCalls)
	require.Zero(t, n.refreshes)
}

func TestRun_DryRunFailureBlocksExecution(t *testing.T) {
	s := &fakeSigner{connected: true}
	x := &fakeExecutor{
		dryResult: &ledger.DryRunResult{Status: "failure", Error: "insufficient gas"},
	}
	n := &fakeNotifier{}

	_, err := Run(context.Background(), s, x, n, buildTx(t))
	require.EqualError(t, err, "dry run failed: insufficient gas")
	require.Zero(t, x.execCalls)
	require.Zero(t, n.refreshes)
	require.Zero(t, n.dryRunInfos, "a failed dry run surfaces as the error, not as info")
}

func TestRun_ExecutionFailureDoesNotRefresh(t *testing.T) {
	s := &fakeSigner{connected: true}
	x := &fakeExecutor{
		dryResult:  &ledger.DryRunResult{Status: "success"},
		execResult: &ledger.ExecuteResult{Status: "failure", Error: "object version conflict"},
	}
	n := &fakeNotifier{}

	_, err := Run(context.Background(), s, x, n, buildTx(t))
	require.EqualError(t, err, "execution failed: object version conflict")
	require.Zero(t, n.refreshes)
}

func TestRun_SignError(t *testing.T) {
	s := &fakeSigner{connected: true, signErr: errors.New("keystore locked")}
	x := &fakeExecutor{}
	n := &fakeNotifier{}

	_, err := Run(context.Background(), s, x, n, buildTx(t))
	require.ErrorContains(t, err, "keystore locked")
	require.Zero(t, x.dryCalls)
}

func TestRun_EmptyTransaction(t *testing.T) {
	s := &fakeSigner{connected: true}

	_, err := Run(context.Background(), s, &fakeExecutor{}, &fakeNotifier{}, sdk.NewTransaction("0xs"))
	require.EqualError(t, err, "transaction has no calls")
	require.Zero(t, s.signCalls)
}
