package flows

import (
	"os"
	"path/filepath"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/require"

	"github.com/daoterm/daoterm/internal/sdk"
	"github.com/daoterm/daoterm/internal/tui/testfixtures"
	"github.com/daoterm/daoterm/internal/tui/wizard"
)

// metaHarness gives a step direct access to a Meta value the way the
// container closures do in the real flows.
func metaHarness() (*wizard.Meta, func() wizard.Meta, func(func(*wizard.Meta))) {
	m := &wizard.Meta{}
	read := func() wizard.Meta { return *m }
	write := func(patch func(*wizard.Meta)) { patch(m) }
	return m, read, write
}

func TestNameStep_WritesNameOnInput(t *testing.T) {
	m, read, write := metaHarness()
	s := NewNameStep(read, write)
	s.Focus()

	s.group.inputs[0].SetValue("Raise Quorum")
	_ = s.Update(tea.KeyPressMsg{Text: "m"})

	require.Contains(t, m.ProposalName, "Raise Quorum")
}

func TestNameStep_EditorResultSetsDescription(t *testing.T) {
	m, read, write := metaHarness()
	s := NewNameStep(read, write)

	tmp := filepath.Join(t.TempDir(), "desc.md")
	require.NoError(t, os.WriteFile(tmp, []byte("# Motivation\n"), 0o644))
	s.tmpFile = tmp

	_ = s.Update(descriptionEditedMsg{content: "# Motivation\n"})

	require.Equal(t, "# Motivation", m.Description)
	_, err := os.Stat(tmp)
	require.True(t, os.IsNotExist(err), "temp file is cleaned up")
}

func TestNameStep_EditorSeedsEmptyDescription(t *testing.T) {
	_, read, write := metaHarness()
	s := NewNameStep(read, write).WithSeed(func() string { return "# Skeleton\n" })

	cmd := s.openEditor()
	require.NotNil(t, cmd)
	require.NotEmpty(t, s.tmpFile)
	defer os.Remove(s.tmpFile)

	data, err := os.ReadFile(s.tmpFile)
	require.NoError(t, err)
	require.Equal(t, "# Skeleton\n", string(data))
}

func TestNameStep_EnterAdvances(t *testing.T) {
	_, read, write := metaHarness()
	s := NewNameStep(read, write)

	cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	require.IsType(t, wizard.AdvanceMsg{}, cmd())
}

func TestDatesStep_SyncParsesAndClears(t *testing.T) {
	m, read, write := metaHarness()
	s := NewDatesStep(read, write)

	s.group.inputs[dateFieldVotingStart].SetValue("2026-09-01 10:00")
	s.syncField(dateFieldVotingStart)
	require.NotNil(t, m.VotingStart)
	require.Equal(t, 2026, m.VotingStart.Year())
	require.Empty(t, s.errs[dateFieldVotingStart])

	// A half-typed date clears the form value and surfaces the error.
	s.group.inputs[dateFieldVotingStart].SetValue("2026-09-0")
	s.syncField(dateFieldVotingStart)
	require.Nil(t, m.VotingStart)
	require.NotEmpty(t, s.errs[dateFieldVotingStart])

	// Blank is a cleared field, not an error.
	s.group.inputs[dateFieldVotingStart].SetValue("")
	s.syncField(dateFieldVotingStart)
	require.Nil(t, m.VotingStart)
	require.Empty(t, s.errs[dateFieldVotingStart])
}

func newCoinHarness(locked map[string]map[string]uint64) (*CoinStep, *string, *sdk.CoinSelection) {
	vault := new(string)
	sel := new(sdk.CoinSelection)
	s := NewCoinStep(
		testfixtures.SampleVaults(),
		locked,
		func(string) uint8 { return 9 },
		"", sdk.CoinSelection{},
		func(v string, c sdk.CoinSelection) {
			*vault = v
			*sel = c
		},
	)
	return s, vault, sel
}

func TestCoinStep_SubtractsLockedAmounts(t *testing.T) {
	vaults := testfixtures.SampleVaults()
	coinType := vaults[0].Balances[0].CoinType
	total := vaults[0].Balances[0].Amount

	s, _, _ := newCoinHarness(map[string]map[string]uint64{
		vaults[0].Name: {coinType: total / 2},
	})

	opts := s.options()
	require.Equal(t, total-total/2, opts[0].spendable)
}

func TestCoinStep_LockedBeyondBalanceClampsToZero(t *testing.T) {
	vaults := testfixtures.SampleVaults()
	coinType := vaults[0].Balances[0].CoinType

	s, _, _ := newCoinHarness(map[string]map[string]uint64{
		vaults[0].Name: {coinType: vaults[0].Balances[0].Amount * 2},
	})

	require.Zero(t, s.options()[0].spendable)
}

func TestCoinStep_SyncWritesSelection(t *testing.T) {
	s, vault, sel := newCoinHarness(nil)
	s.Focus()

	s.amount.SetValue("10")
	s.sync()

	require.Equal(t, testfixtures.SampleVaults()[0].Name, *vault)
	require.Equal(t, 10.0, sel.Amount)
	require.Equal(t, uint64(10_000_000_000), sel.BaseAmount)
	require.Empty(t, s.amountErr)
}

func TestCoinStep_AmountBeyondBalanceFlagsError(t *testing.T) {
	s, _, sel := newCoinHarness(nil)
	s.Focus()

	s.amount.SetValue("999999999")
	s.sync()

	require.NotEmpty(t, s.amountErr)
	require.Greater(t, sel.Amount, sel.Balance)
}

func TestRecipientsStep_SyncBuildsRecipientList(t *testing.T) {
	coin := sdk.CoinSelection{CoinType: testfixtures.FixedGovCoin, Decimals: 9, Amount: 10, BaseAmount: 10_000_000_000}
	var got []sdk.Recipient
	s := NewRecipientsStep(
		func() sdk.CoinSelection { return coin },
		nil,
		func(r []sdk.Recipient) { got = r },
	)
	s.Focus()

	s.rows[0].address.SetValue(testfixtures.Addr("a11ce"))
	s.rows[0].amount.SetValue("10")
	s.sync()

	require.Len(t, got, 1)
	require.Equal(t, testfixtures.Addr("a11ce"), got[0].Address)
	require.Equal(t, uint64(10_000_000_000), got[0].BaseAmount)
}

func TestRecipientsStep_AddAndRemoveRows(t *testing.T) {
	coin := sdk.CoinSelection{Decimals: 9}
	s := NewRecipientsStep(func() sdk.CoinSelection { return coin }, nil, func([]sdk.Recipient) {})
	s.Focus()

	_ = s.Update(tea.KeyPressMsg(tea.Key{Text: "ctrl+n"}))
	require.Len(t, s.rows, 2)

	_ = s.Update(tea.KeyPressMsg(tea.Key{Text: "ctrl+d"}))
	require.Len(t, s.rows, 1)

	// The last row never deletes.
	_ = s.Update(tea.KeyPressMsg(tea.Key{Text: "ctrl+d"}))
	require.Len(t, s.rows, 1)
}

func TestSettingsStep_ToggleQuadratic(t *testing.T) {
	form := ConfigForm{CurrentName: "Meadow Collective", Quadratic: true, CurrentQuadratic: true}
	container := wizard.NewContainer(form)

	s := NewSettingsStep(container.Get, container.Update)
	s.Focus()

	// Move to the toggle zone and flip it.
	_ = s.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	_ = s.Update(tea.KeyPressMsg{Text: " ", Code: tea.KeySpace})

	require.False(t, container.Get().Quadratic)
	updated := container.Get()
	require.True(t, updated.Changed())
}

func TestDepsStep_ToggleAndPolicy(t *testing.T) {
	deps := testfixtures.SampleDeps()
	form := DepsForm{
		Selected:  append([]sdk.Dep(nil), deps.Unverified...),
		Installed: deps.Unverified,
	}
	container := wizard.NewContainer(form)

	s := NewDepsStep(deps.Verified, container.Get, container.Update)
	s.Focus()

	// Drop the first unverified dep.
	_ = s.Update(tea.KeyPressMsg{Text: " ", Code: tea.KeySpace})
	afterDrop := container.Get()
	_, removed := afterDrop.NetChanges()
	require.Len(t, removed, 1)

	// Re-adding it restores "no change".
	_ = s.Update(tea.KeyPressMsg{Text: " ", Code: tea.KeySpace})
	afterReadd := container.Get()
	added, removed := afterReadd.NetChanges()
	require.Empty(t, added)
	require.Empty(t, removed)

	// The policy row sits after the candidates.
	for range s.candidates(container.Get()) {
		_ = s.Update(tea.KeyPressMsg{Text: "j", Code: 'j'})
	}
	_ = s.Update(tea.KeyPressMsg{Text: " ", Code: tea.KeySpace})
	require.True(t, container.Get().AllowUnverified)
	afterToggle := container.Get()
	require.True(t, afterToggle.ToggleChanged())
}

func TestDepsStep_AddFormValidates(t *testing.T) {
	deps := testfixtures.SampleDeps()
	container := wizard.NewContainer(DepsForm{Installed: deps.Unverified, Selected: deps.Unverified})

	s := NewDepsStep(deps.Verified, container.Get, container.Update)
	s.setZone(1)

	before := len(container.Get().Selected)

	// Bad address never adds.
	s.addForm.inputs[0].SetValue("oracle")
	s.addForm.inputs[1].SetValue("0xnope")
	s.addForm.inputs[2].SetValue("1")
	s.submitAddForm()
	require.Len(t, container.Get().Selected, before)

	s.addForm.inputs[1].SetValue(testfixtures.Addr("feed"))
	s.submitAddForm()
	require.Len(t, container.Get().Selected, before+1)
	require.Equal(t, 0, s.zone, "add form closes after a successful add")
}

func TestScheduleStep_SyncRecipientAndWindow(t *testing.T) {
	form := VestingForm{
		Coin: sdk.CoinSelection{CoinType: testfixtures.FixedGovCoin, Decimals: 9, Amount: 10, BaseAmount: 10_000_000_000},
	}
	container := wizard.NewContainer(form)

	s := NewScheduleStep(container.Get, container.Update)
	s.Focus()

	s.group.inputs[0].SetValue(testfixtures.Addr("a11ce"))
	s.syncField(0)
	got := container.Get()
	require.Equal(t, testfixtures.Addr("a11ce"), got.Recipient.Address)
	require.Equal(t, uint64(10_000_000_000), got.Recipient.BaseAmount, "amount pinned to the coin selection")

	s.group.inputs[1].SetValue("2026-10-01 00:00")
	s.syncField(1)
	s.group.inputs[2].SetValue("2027-10-01 00:00")
	s.syncField(2)
	got = container.Get()
	require.NotNil(t, got.VestStart)
	require.NotNil(t, got.VestEnd)
	require.True(t, got.VestStart.Before(*got.VestEnd))
}

func TestRecapStep_RendersOnEntry(t *testing.T) {
	calls := 0
	s := NewRecapStep(func(width int) string {
		calls++
		require.Positive(t, width)
		return "recap content"
	})

	s.SetSize(70, 20)
	s.Focus()
	require.GreaterOrEqual(t, calls, 2)
	require.Contains(t, s.View(), "recap content")
}
