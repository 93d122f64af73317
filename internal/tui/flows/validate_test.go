package flows

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/daoterm/daoterm/internal/sdk"
	"github.com/daoterm/daoterm/internal/tui/testfixtures"
	"github.com/daoterm/daoterm/internal/tui/wizard"
)

func validMeta() wizard.Meta {
	start := testfixtures.FixedTime
	end := start.Add(72 * time.Hour)
	exec := end.Add(time.Hour)
	return wizard.Meta{
		ProposalName: "Grants Q3",
		VotingStart:  &start,
		VotingEnd:    &end,
		Execution:    &exec,
	}
}

func validCoin() sdk.CoinSelection {
	return sdk.CoinSelection{
		CoinType:   testfixtures.FixedGovCoin,
		Amount:     10,
		BaseAmount: 10_000_000_000,
		Balance:    500,
		Decimals:   9,
	}
}

func validTransferForm() *TransferForm {
	return &TransferForm{
		Base:  validMeta(),
		Vault: "treasury",
		Coin:  validCoin(),
		Recipients: []sdk.Recipient{
			{Address: testfixtures.Addr("a11ce"), Amount: 6, BaseAmount: 6_000_000_000},
			{Address: testfixtures.Addr("b0b"), Amount: 4, BaseAmount: 4_000_000_000},
		},
	}
}

func TestTransferValidator_NameStep(t *testing.T) {
	f := validTransferForm()
	require.True(t, TransferValidator(transferStepName, f))

	f.Base.ProposalName = "   "
	require.False(t, TransferValidator(transferStepName, f))
}

func TestTransferValidator_DatesStep(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*wizard.Meta)
		want   bool
	}{
		{"complete timeline", func(m *wizard.Meta) {}, true},
		{"missing start", func(m *wizard.Meta) { m.VotingStart = nil }, false},
		{"missing end", func(m *wizard.Meta) { m.VotingEnd = nil }, false},
		{"missing execution", func(m *wizard.Meta) { m.Execution = nil }, false},
		{"start equals end", func(m *wizard.Meta) { m.VotingStart = m.VotingEnd }, false},
		{"start after end", func(m *wizard.Meta) {
			late := m.VotingEnd.Add(time.Hour)
			m.VotingStart = &late
		}, false},
		{"execution before end", func(m *wizard.Meta) {
			early := m.VotingEnd.Add(-time.Hour)
			m.Execution = &early
		}, false},
		{"execution at end", func(m *wizard.Meta) { m.Execution = m.VotingEnd }, true},
		{"expiration override after end", func(m *wizard.Meta) {
			exp := m.VotingEnd.Add(48 * time.Hour)
			m.Expiration = &exp
		}, true},
		{"expiration override before end", func(m *wizard.Meta) {
			exp := m.VotingEnd.Add(-time.Hour)
			m.Expiration = &exp
		}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validTransferForm()
			tt.mutate(&f.Base)
			require.Equal(t, tt.want, TransferValidator(transferStepDates, f))
		})
	}
}

func TestTransferValidator_CoinStep(t *testing.T) {
	f := validTransferForm()
	require.True(t, TransferValidator(transferStepCoin, f))

	f.Vault = ""
	require.False(t, TransferValidator(transferStepCoin, f))
	f.Vault = "treasury"

	f.Coin.CoinType = ""
	require.False(t, TransferValidator(transferStepCoin, f))
	f.Coin = validCoin()

	f.Coin.Amount = 0
	require.False(t, TransferValidator(transferStepCoin, f))
	f.Coin = validCoin()

	f.Coin.Amount = f.Coin.Balance + 1
	require.False(t, TransferValidator(transferStepCoin, f))
}

func TestTransferValidator_RecipientsStep(t *testing.T) {
	f := validTransferForm()
	require.True(t, TransferValidator(transferStepRecipients, f))

	t.Run("no recipients", func(t *testing.T) {
		f := validTransferForm()
		f.Recipients = nil
		require.False(t, TransferValidator(transferStepRecipients, f))
	})

	t.Run("bad address", func(t *testing.T) {
		f := validTransferForm()
		f.Recipients[0].Address = "0x123"
		require.False(t, TransferValidator(transferStepRecipients, f))
	})

	t.Run("zero amount row", func(t *testing.T) {
		f := validTransferForm()
		f.Recipients[1].BaseAmount = 0
		require.False(t, TransferValidator(transferStepRecipients, f))
	})

	t.Run("sum one base unit short", func(t *testing.T) {
		f := validTransferForm()
		f.Recipients[1].BaseAmount--
		require.False(t, TransferValidator(transferStepRecipients, f))
	})

	t.Run("sum one base unit over", func(t *testing.T) {
		f := validTransferForm()
		f.Recipients[1].BaseAmount++
		require.False(t, TransferValidator(transferStepRecipients, f))
	})
}

func TestTransferValidator_RecapAndNil(t *testing.T) {
	require.True(t, TransferValidator(transferStepRecap, validTransferForm()))
	require.False(t, TransferValidator(transferStepName, nil))
}

func TestConfigValidator_RequiresChange(t *testing.T) {
	f := &ConfigForm{
		Base:             validMeta(),
		CurrentName:      "Meadow Collective",
		CurrentQuadratic: true,
	}
	require.False(t, ConfigValidator(configStepSettings, f), "unchanged settings are not a proposal")

	f.DAOName = "Meadow DAO"
	require.True(t, ConfigValidator(configStepSettings, f))

	f.DAOName = "Meadow Collective"
	require.False(t, ConfigValidator(configStepSettings, f), "retyping the current name is no change")

	f.Quadratic = false
	require.True(t, ConfigValidator(configStepSettings, f))
}

func TestDepsValidator_RequiresNetChange(t *testing.T) {
	installed := testfixtures.SampleDeps().Unverified
	f := &DepsForm{
		Base:      validMeta(),
		Installed: installed,
		Selected:  append([]sdk.Dep(nil), installed...),
	}
	require.False(t, DepsValidator(depsStepSelect, f), "reselecting the installed set is no change")

	t.Run("added dep", func(t *testing.T) {
		f := &DepsForm{
			Base:      validMeta(),
			Installed: installed,
			Selected: append(append([]sdk.Dep(nil), installed...),
				sdk.Dep{Name: "oracle", Address: testfixtures.Addr("feed"), Version: 1}),
		}
		require.True(t, DepsValidator(depsStepSelect, f))
	})

	t.Run("removed dep", func(t *testing.T) {
		f := &DepsForm{Base: validMeta(), Installed: installed}
		require.True(t, DepsValidator(depsStepSelect, f))
	})

	t.Run("version bump counts as change", func(t *testing.T) {
		bumped := append([]sdk.Dep(nil), installed...)
		bumped[0].Version++
		f := &DepsForm{Base: validMeta(), Installed: installed, Selected: bumped}
		added, removed := f.NetChanges()
		require.Len(t, added, 1)
		require.Len(t, removed, 1)
		require.True(t, DepsValidator(depsStepSelect, f))
	})

	t.Run("toggle alone suffices", func(t *testing.T) {
		f := &DepsForm{
			Base:            validMeta(),
			Installed:       installed,
			Selected:        append([]sdk.Dep(nil), installed...),
			AllowUnverified: true,
		}
		require.True(t, DepsValidator(depsStepSelect, f))
	})
}

func TestVestingValidator_ScheduleStep(t *testing.T) {
	start := testfixtures.FixedTime.Add(30 * 24 * time.Hour)
	end := start.Add(365 * 24 * time.Hour)
	base := func() *VestingForm {
		return &VestingForm{
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
	}

	require.True(t, VestingValidator(vestingStepSchedule, base()))

	t.Run("amount must match selection", func(t *testing.T) {
		f := base()
		f.Recipient.BaseAmount--
		require.False(t, VestingValidator(vestingStepSchedule, f))
	})

	t.Run("missing window", func(t *testing.T) {
		f := base()
		f.VestEnd = nil
		require.False(t, VestingValidator(vestingStepSchedule, f))
	})

	t.Run("inverted window", func(t *testing.T) {
		f := base()
		f.VestStart, f.VestEnd = f.VestEnd, f.VestStart
		require.False(t, VestingValidator(vestingStepSchedule, f))
	})

	t.Run("bad recipient", func(t *testing.T) {
		f := base()
		f.Recipient.Address = "not-an-address"
		require.False(t, VestingValidator(vestingStepSchedule, f))
	})
}
