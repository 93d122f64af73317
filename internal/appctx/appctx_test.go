package appctx

import (
	"path/filepath"
	"testing"

	"github.com/daoterm/daoterm/internal/config"
	"github.com/daoterm/daoterm/internal/ledger"
	"github.com/daoterm/daoterm/internal/sdk"
	"github.com/daoterm/daoterm/internal/wallet"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	sdk.Client
	sender string
	daoID  string
}

func newTestContext(t *testing.T) (*AppContext, *int) {
	t.Helper()
	w, err := wallet.Generate(filepath.Join(t.TempDir(), "keystore.json"))
	require.NoError(t, err)

	inits := 0
	ctx := NewWithClientFactory(&config.Config{}, w, nil, func(sender, daoID string) sdk.Client {
		inits++
		return &fakeClient{sender: sender, daoID: daoID}
	})
	return ctx, &inits
}

func TestClient_MemoizedPerKey(t *testing.T) {
	ctx, inits := newTestContext(t)

	c1 := ctx.Client("0xd40")
	c2 := ctx.Client("0xd40")
	require.Same(t, c1, c2)
	require.Equal(t, 1, *inits)
}

func TestClient_ReinitOnDAOChange(t *testing.T) {
	ctx, inits := newTestContext(t)

	c1 := ctx.Client("0xd40")
	c2 := ctx.Client("0xd41")
	require.NotSame(t, c1, c2)
	require.Equal(t, 2, *inits)
	require.Equal(t, "0xd41", c2.(*fakeClient).daoID)
}

func TestClient_ReinitOnAccountChange(t *testing.T) {
	ctx, inits := newTestContext(t)

	first := ctx.Client("0xd40").(*fakeClient)
	require.NotEmpty(t, first.sender)

	ctx.Wallet.Disconnect()
	second := ctx.Client("0xd40").(*fakeClient)

	require.Equal(t, 2, *inits)
	require.Empty(t, second.sender)
}

func TestRefreshCounter(t *testing.T) {
	ctx, _ := newTestContext(t)

	require.Equal(t, int64(0), ctx.Refresh())
	ctx.SignalRefresh()
	ctx.SignalRefresh()
	require.Equal(t, int64(2), ctx.Refresh())
}

func TestDryRunHook(t *testing.T) {
	ctx, _ := newTestContext(t)

	// No hook registered: the notification is log-only, never a panic.
	ctx.DryRunPassed(&ledger.DryRunResult{Status: "success", GasUsed: 500})

	var got []uint64
	ctx.SetDryRunHook(func(res *ledger.DryRunResult) { got = append(got, res.GasUsed) })
	ctx.DryRunPassed(&ledger.DryRunResult{Status: "success", GasUsed: 1000})
	require.Equal(t, []uint64{1000}, got)

	ctx.SetDryRunHook(nil)
	ctx.DryRunPassed(&ledger.DryRunResult{Status: "success", GasUsed: 2000})
	require.Equal(t, []uint64{1000}, got, "unregistered hook no longer fires")
}
