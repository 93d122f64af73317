package flows

import (
	"fmt"
	"strings"
	"time"

	"github.com/gosimple/slug"

	"github.com/daoterm/daoterm/internal/sdk"
	"github.com/daoterm/daoterm/internal/tui/wizard"
)

// intentKey derives the on-chain intent key from the proposal name.
func intentKey(m *wizard.Meta) string {
	s := slug.Make(m.ProposalName)
	if s == "" {
		s = "untitled"
	}
	return s
}

// intentParams maps the shared form fields to chain parameters. The
// expiration submitted is always the effective one: the explicit override,
// or voting end plus the default offset.
func intentParams(m *wizard.Meta) (sdk.IntentParams, error) {
	if strings.TrimSpace(m.ProposalName) == "" {
		return sdk.IntentParams{}, fmt.Errorf("proposal name required")
	}
	if m.VotingStart == nil || m.VotingEnd == nil || m.Execution == nil {
		return sdk.IntentParams{}, fmt.Errorf("proposal timeline incomplete")
	}
	exp, ok := m.EffectiveExpiration()
	if !ok {
		return sdk.IntentParams{}, fmt.Errorf("proposal timeline incomplete")
	}
	return sdk.IntentParams{
		Key:         intentKey(m),
		Title:       m.ProposalName,
		Description: m.Description,
		VotingStart: sdk.TimeToMS(*m.VotingStart),
		VotingEnd:   sdk.TimeToMS(*m.VotingEnd),
		Execution:   sdk.TimeToMS(*m.Execution),
		Expiration:  sdk.TimeToMS(exp),
	}, nil
}

// BuildTransferTx assembles the spend request for a completed transfer form.
func BuildTransferTx(client sdk.Client, sender string, f *TransferForm) (*sdk.Transaction, error) {
	p, err := intentParams(&f.Base)
	if err != nil {
		return nil, err
	}
	tx := sdk.NewTransaction(sender)
	if err := client.RequestSpend(tx, p, f.Vault, f.Coin, f.Recipients); err != nil {
		return nil, err
	}
	return tx, nil
}

// BuildConfigTx assembles the settings request for a completed config form.
func BuildConfigTx(client sdk.Client, sender string, f *ConfigForm) (*sdk.Transaction, error) {
	p, err := intentParams(&f.Base)
	if err != nil {
		return nil, err
	}
	name := f.DAOName
	if name == "" {
		name = f.CurrentName
	}
	tx := sdk.NewTransaction(sender)
	if err := client.RequestConfig(tx, p, sdk.ConfigParams{Name: name, Quadratic: f.Quadratic}); err != nil {
		return nil, err
	}
	return tx, nil
}

// BuildDepsTx assembles the dependency update request. The dep list call is
// only appended when the set actually changes; a pure policy flip produces
// just the toggle call.
func BuildDepsTx(client sdk.Client, sender string, f *DepsForm) (*sdk.Transaction, error) {
	p, err := intentParams(&f.Base)
	if err != nil {
		return nil, err
	}

	added, removed := f.NetChanges()
	tx := sdk.NewTransaction(sender)
	if len(added)+len(removed) > 0 {
		if err := client.RequestDeps(tx, p, f.Selected); err != nil {
			return nil, err
		}
	}
	if f.ToggleChanged() {
		if err := client.RequestToggleUnverified(tx, p, f.AllowUnverified); err != nil {
			return nil, err
		}
	}
	if tx.Empty() {
		return nil, fmt.Errorf("dependency proposal contains no changes")
	}
	return tx, nil
}

// BuildVestingTx assembles the vesting request for a completed vesting form.
func BuildVestingTx(client sdk.Client, sender string, f *VestingForm) (*sdk.Transaction, error) {
	p, err := intentParams(&f.Base)
	if err != nil {
		return nil, err
	}
	if f.VestStart == nil || f.VestEnd == nil {
		return nil, fmt.Errorf("vesting schedule incomplete")
	}
	tx := sdk.NewTransaction(sender)
	err = client.RequestVesting(tx, p, f.Vault, f.Coin, f.Recipient,
		sdk.TimeToMS(*f.VestStart), sdk.TimeToMS(*f.VestEnd))
	if err != nil {
		return nil, err
	}
	return tx, nil
}

// parseStepTime parses the date format the wizard's date inputs use.
func parseStepTime(s string) (*time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02 15:04", s, time.Local)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
