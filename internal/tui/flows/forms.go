// Package flows implements the proposal wizards: transfer, config,
// dependency and vesting intents. Each flow owns a form struct, a pure
// per-step validator, the step bodies, and the transaction build rule; the
// generic engine driving them lives in the wizard package.
package flows

import (
	"time"

	"github.com/daoterm/daoterm/internal/sdk"
	"github.com/daoterm/daoterm/internal/tui/wizard"
)

// Flow names, used for draft scoping and the propose subcommand.
const (
	FlowTransfer = "transfer"
	FlowConfig   = "config"
	FlowDeps     = "deps"
	FlowVesting  = "vesting"
)

// TransferForm is the state of a treasury spend proposal.
type TransferForm struct {
	Base       wizard.Meta     `json:"base"`
	Vault      string          `json:"vault"`
	Coin       sdk.CoinSelection `json:"coin"`
	Recipients []sdk.Recipient `json:"recipients"`
}

func (f *TransferForm) Meta() *wizard.Meta { return &f.Base }

// ConfigForm is the state of a governance settings proposal. The Current*
// fields hold the DAO's live settings so validation can require an actual
// change.
type ConfigForm struct {
	Base wizard.Meta `json:"base"`

	DAOName   string `json:"daoName"`
	Quadratic bool   `json:"quadratic"`

	CurrentName      string `json:"currentName"`
	CurrentQuadratic bool   `json:"currentQuadratic"`
}

func (f *ConfigForm) Meta() *wizard.Meta { return &f.Base }

// Changed reports whether the proposal differs from the live settings.
func (f *ConfigForm) Changed() bool {
	return (f.DAOName != "" && f.DAOName != f.CurrentName) ||
		f.Quadratic != f.CurrentQuadratic
}

// DepsForm is the state of a dependency update proposal. Selected is the
// desired unverified set; Installed is what is on chain now. Verified deps
// are never part of either: they cannot change through governance.
type DepsForm struct {
	Base wizard.Meta `json:"base"`

	Selected  []sdk.Dep `json:"selected"`
	Installed []sdk.Dep `json:"installed"`

	AllowUnverified        bool `json:"allowUnverified"`
	CurrentAllowUnverified bool `json:"currentAllowUnverified"`
}

func (f *DepsForm) Meta() *wizard.Meta { return &f.Base }

// NetChanges returns the dep keys added and removed relative to the
// installed set.
func (f *DepsForm) NetChanges() (added, removed []string) {
	installed := make(map[string]bool, len(f.Installed))
	for _, k := range sdk.DepKeys(f.Installed) {
		installed[k] = true
	}
	selected := make(map[string]bool, len(f.Selected))
	for _, k := range sdk.DepKeys(f.Selected) {
		selected[k] = true
		if !installed[k] {
			added = append(added, k)
		}
	}
	for k := range installed {
		if !selected[k] {
			removed = append(removed, k)
		}
	}
	return added, removed
}

// ToggleChanged reports whether the unverified-deps policy flips.
func (f *DepsForm) ToggleChanged() bool {
	return f.AllowUnverified != f.CurrentAllowUnverified
}

// VestingForm is the state of a vesting stream proposal.
type VestingForm struct {
	Base      wizard.Meta       `json:"base"`
	Vault     string            `json:"vault"`
	Coin      sdk.CoinSelection `json:"coin"`
	Recipient sdk.Recipient     `json:"recipient"`

	VestStart *time.Time `json:"vestStart,omitempty"`
	VestEnd   *time.Time `json:"vestEnd,omitempty"`
}

func (f *VestingForm) Meta() *wizard.Meta { return &f.Base }
