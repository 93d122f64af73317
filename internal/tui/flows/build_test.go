package flows

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/daoterm/daoterm/internal/sdk"
	"github.com/daoterm/daoterm/internal/tui/testfixtures"
	"github.com/daoterm/daoterm/internal/tui/wizard"
)

func TestIntentParams_DerivedFields(t *testing.T) {
	m := validMeta()
	m.ProposalName = "Grants: Q3 2026!"
	m.Description = "Fund the Q3 grant batch."

	p, err := intentParams(&m)
	require.NoError(t, err)
	require.Equal(t, "grants-q3-2026", p.Key)
	require.Equal(t, "Grants: Q3 2026!", p.Title)
	require.Equal(t, sdk.TimeToMS(*m.VotingStart), p.VotingStart)
	require.Equal(t, sdk.TimeToMS(*m.VotingEnd), p.VotingEnd)
	require.Equal(t, sdk.TimeToMS(m.VotingEnd.Add(wizard.DefaultExpirationOffset)), p.Expiration,
		"no override falls back to voting end plus the default offset")
}

func TestIntentParams_ExpirationOverride(t *testing.T) {
	m := validMeta()
	exp := m.VotingEnd.Add(48 * time.Hour)
	m.Expiration = &exp

	p, err := intentParams(&m)
	require.NoError(t, err)
	require.Equal(t, sdk.TimeToMS(exp), p.Expiration)
}

func TestIntentParams_IncompleteTimeline(t *testing.T) {
	m := validMeta()
	m.Execution = nil
	_, err := intentParams(&m)
	require.ErrorContains(t, err, "timeline incomplete")
}

func TestIntentParams_BlankNameRejected(t *testing.T) {
	m := validMeta()
	m.ProposalName = "   "
	_, err := intentParams(&m)
	require.ErrorContains(t, err, "proposal name required")
}

func TestBuildTransferTx(t *testing.T) {
	mock := testfixtures.NewMockSDK()
	f := validTransferForm()

	tx, err := BuildTransferTx(mock, testfixtures.Addr("5e1f"), f)
	require.NoError(t, err)
	require.False(t, tx.Empty())
	require.Equal(t, 1, mock.RequestCalls)
	require.Equal(t, "grants-q3", mock.LastParams.Key)
	require.Equal(t, testfixtures.Addr("5e1f"), tx.Sender)
}

func TestBuildConfigTx_KeepsCurrentNameWhenBlank(t *testing.T) {
	mock := testfixtures.NewMockSDK()
	f := &ConfigForm{
		Base:             validMeta(),
		Quadratic:        false,
		CurrentName:      "Meadow Collective",
		CurrentQuadratic: true,
	}

	tx, err := BuildConfigTx(mock, testfixtures.Addr("5e1f"), f)
	require.NoError(t, err)
	require.Len(t, tx.Calls, 1)
	require.Contains(t, tx.Calls[0].Args, "Meadow Collective")
}

func TestBuildDepsTx_ListAndToggle(t *testing.T) {
	installed := testfixtures.SampleDeps().Unverified

	t.Run("set change only", func(t *testing.T) {
		mock := testfixtures.NewMockSDK()
		f := &DepsForm{
			Base:      validMeta(),
			Installed: installed,
			Selected: append(append([]sdk.Dep(nil), installed...),
				sdk.Dep{Name: "oracle", Address: testfixtures.Addr("feed"), Version: 1}),
		}
		tx, err := BuildDepsTx(mock, testfixtures.Addr("5e1f"), f)
		require.NoError(t, err)
		require.Len(t, tx.Calls, 1)
		require.Equal(t, "0xda0::config::request_deps_update", tx.Calls[0].Target)
	})

	t.Run("toggle change only", func(t *testing.T) {
		mock := testfixtures.NewMockSDK()
		f := &DepsForm{
			Base:            validMeta(),
			Installed:       installed,
			Selected:        append([]sdk.Dep(nil), installed...),
			AllowUnverified: true,
		}
		tx, err := BuildDepsTx(mock, testfixtures.Addr("5e1f"), f)
		require.NoError(t, err)
		require.Len(t, tx.Calls, 1)
		require.Equal(t, "0xda0::config::request_toggle_unverified_deps", tx.Calls[0].Target)
	})

	t.Run("both", func(t *testing.T) {
		mock := testfixtures.NewMockSDK()
		f := &DepsForm{
			Base:            validMeta(),
			Installed:       installed,
			AllowUnverified: true,
		}
		tx, err := BuildDepsTx(mock, testfixtures.Addr("5e1f"), f)
		require.NoError(t, err)
		require.Len(t, tx.Calls, 2)
	})

	t.Run("no changes", func(t *testing.T) {
		mock := testfixtures.NewMockSDK()
		f := &DepsForm{
			Base:      validMeta(),
			Installed: installed,
			Selected:  append([]sdk.Dep(nil), installed...),
		}
		_, err := BuildDepsTx(mock, testfixtures.Addr("5e1f"), f)
		require.ErrorContains(t, err, "no changes")
	})
}

func TestBuildDepsTx_RemovingAllDeps(t *testing.T) {
	// Emptying the unverified set cannot go through RequestDeps, which
	// rejects empty lists. The tx still carries the toggle when it flips.
	mock := testfixtures.NewMockSDK()
	f := &DepsForm{
		Base:      validMeta(),
		Installed: testfixtures.SampleDeps().Unverified,
	}
	_, err := BuildDepsTx(mock, testfixtures.Addr("5e1f"), f)
	require.Error(t, err)
}

func TestBuildVestingTx(t *testing.T) {
	mock := testfixtures.NewMockSDK()
	start := testfixtures.FixedTime.Add(30 * 24 * time.Hour)
	end := start.Add(365 * 24 * time.Hour)
	f := &VestingForm{
		Base:  validMeta(),
		Vault: "treasury",
		Coin:  validCoin(),
		Recipient: sdk.Recipient{
			Address:    testfixtures.Addr("a11ce"),
			Amount:     10,
			BaseAmount: 10_000_000_000,
		},
		VestStart: &start,
		VestEnd:   &end,
	}

	tx, err := BuildVestingTx(mock, testfixtures.Addr("5e1f"), f)
	require.NoError(t, err)
	require.Len(t, tx.Calls, 1)
	require.Equal(t, "0xda0::vault::request_vesting", tx.Calls[0].Target)
	require.Contains(t, tx.Calls[0].Args, testfixtures.Addr("a11ce"))
}

func TestBuildVestingTx_MissingSchedule(t *testing.T) {
	mock := testfixtures.NewMockSDK()
	f := &VestingForm{Base: validMeta(), Vault: "treasury", Coin: validCoin()}
	_, err := BuildVestingTx(mock, testfixtures.Addr("5e1f"), f)
	require.ErrorContains(t, err, "schedule incomplete")
}
