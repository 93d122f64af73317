package flows

import (
	"strings"

	"github.com/daoterm/daoterm/internal/sdk"
	"github.com/daoterm/daoterm/internal/tui/wizard"
)

// Step indices per flow. The recap is always last.
const (
	transferStepName = iota
	transferStepDates
	transferStepCoin
	transferStepRecipients
	transferStepRecap
	transferStepCount
)

const (
	configStepName = iota
	configStepDates
	configStepSettings
	configStepRecap
	configStepCount
)

const (
	depsStepName = iota
	depsStepDates
	depsStepSelect
	depsStepRecap
	depsStepCount
)

const (
	vestingStepName = iota
	vestingStepDates
	vestingStepCoin
	vestingStepSchedule
	vestingStepRecap
	vestingStepCount
)

// nameValid requires a non-blank proposal name.
func nameValid(m *wizard.Meta) bool {
	return strings.TrimSpace(m.ProposalName) != ""
}

// datesValid requires a coherent timeline: voting start before voting end,
// execution no earlier than voting end, and the effective expiration after
// voting end. Nil fields make the step incomplete, never a panic.
func datesValid(m *wizard.Meta) bool {
	if m.VotingStart == nil || m.VotingEnd == nil || m.Execution == nil {
		return false
	}
	if !m.VotingStart.Before(*m.VotingEnd) {
		return false
	}
	if m.Execution.Before(*m.VotingEnd) {
		return false
	}
	exp, ok := m.EffectiveExpiration()
	if !ok || !exp.After(*m.VotingEnd) {
		return false
	}
	return true
}

// coinValid requires a chosen coin with a positive amount within the
// spendable balance.
func coinValid(c sdk.CoinSelection) bool {
	if c.CoinType == "" {
		return false
	}
	if c.Amount <= 0 || c.BaseAmount == 0 {
		return false
	}
	return c.Amount <= c.Balance
}

// recipientsValid requires at least one recipient, every entry well-formed,
// and the base-unit sum exactly equal to the selected amount. Equality is
// checked in base units so float display rounding cannot sneak value in or
// out.
func recipientsValid(coin sdk.CoinSelection, recipients []sdk.Recipient) bool {
	if len(recipients) == 0 {
		return false
	}
	var sum uint64
	for _, r := range recipients {
		if !sdk.ValidAddress(r.Address) || r.BaseAmount == 0 {
			return false
		}
		sum += r.BaseAmount
	}
	return sum == coin.BaseAmount
}

// TransferValidator validates the transfer flow per step.
func TransferValidator(step int, f *TransferForm) bool {
	if f == nil {
		return false
	}
	switch step {
	case transferStepName:
		return nameValid(&f.Base)
	case transferStepDates:
		return datesValid(&f.Base)
	case transferStepCoin:
		return f.Vault != "" && coinValid(f.Coin)
	case transferStepRecipients:
		return recipientsValid(f.Coin, f.Recipients)
	default:
		return true
	}
}

// ConfigValidator validates the config flow per step.
func ConfigValidator(step int, f *ConfigForm) bool {
	if f == nil {
		return false
	}
	switch step {
	case configStepName:
		return nameValid(&f.Base)
	case configStepDates:
		return datesValid(&f.Base)
	case configStepSettings:
		return f.Changed()
	default:
		return true
	}
}

// DepsValidator validates the deps flow per step. The selection step needs
// at least one net change: reordering or reselecting the installed set is
// not a proposal.
func DepsValidator(step int, f *DepsForm) bool {
	if f == nil {
		return false
	}
	switch step {
	case depsStepName:
		return nameValid(&f.Base)
	case depsStepDates:
		return datesValid(&f.Base)
	case depsStepSelect:
		added, removed := f.NetChanges()
		return len(added)+len(removed) > 0 || f.ToggleChanged()
	default:
		return true
	}
}

// VestingValidator validates the vesting flow per step.
func VestingValidator(step int, f *VestingForm) bool {
	if f == nil {
		return false
	}
	switch step {
	case vestingStepName:
		return nameValid(&f.Base)
	case vestingStepDates:
		return datesValid(&f.Base)
	case vestingStepCoin:
		return f.Vault != "" && coinValid(f.Coin)
	case vestingStepSchedule:
		if !sdk.ValidAddress(f.Recipient.Address) || f.Recipient.BaseAmount == 0 {
			return false
		}
		if f.Recipient.BaseAmount != f.Coin.BaseAmount {
			return false
		}
		if f.VestStart == nil || f.VestEnd == nil {
			return false
		}
		return f.VestStart.Before(*f.VestEnd)
	default:
		return true
	}
}
