package flows

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/daoterm/daoterm/internal/coins"
	"github.com/daoterm/daoterm/internal/sdk"
	"github.com/daoterm/daoterm/internal/tui/theme"
	"github.com/daoterm/daoterm/internal/tui/wizard"
)

// coinOption is one spendable balance in the currently selected vault.
type coinOption struct {
	coinType  string
	spendable uint64 // base units, locked amounts already subtracted
	decimals  uint8
}

// CoinStep selects a vault, a coin in it, and the amount to spend. Amounts
// reserved by other pending intents are subtracted from what is offered.
type CoinStep struct {
	vaults   []sdk.Vault
	locked   map[string]map[string]uint64 // vault -> coin type -> base units
	decimals func(coinType string) uint8

	vaultIdx  int
	coinIdx   int
	zone      int // 0=vault list, 1=coin list, 2=amount input
	amount    textinput.Model
	amountErr string

	width  int
	height int

	write func(vault string, coin sdk.CoinSelection)
}

// NewCoinStep creates the coin step. The decimals func resolves coin
// metadata; it must never fail (default to the chain-wide 9).
func NewCoinStep(
	vaults []sdk.Vault,
	locked map[string]map[string]uint64,
	decimals func(coinType string) uint8,
	current string,
	selection sdk.CoinSelection,
	write func(vault string, coin sdk.CoinSelection),
) *CoinStep {
	amount := newInput("0.00")
	amount.CharLimit = 32

	s := &CoinStep{
		vaults:   vaults,
		locked:   locked,
		decimals: decimals,
		amount:   amount,
		write:    write,
	}

	// Restore a previous selection when stepping back in.
	for i, v := range vaults {
		if v.Name == current {
			s.vaultIdx = i
		}
	}
	if selection.CoinType != "" {
		for i, opt := range s.options() {
			if opt.coinType == selection.CoinType {
				s.coinIdx = i
			}
		}
		if selection.Amount > 0 {
			s.amount.SetValue(fmt.Sprintf("%g", selection.Amount))
		}
	}
	return s
}

// options returns the spendable coins of the selected vault.
func (s *CoinStep) options() []coinOption {
	if len(s.vaults) == 0 {
		return nil
	}
	v := s.vaults[s.vaultIdx]
	lockedHere := s.locked[v.Name]

	opts := make([]coinOption, 0, len(v.Balances))
	for _, b := range v.Balances {
		spendable := b.Amount
		if l := lockedHere[b.CoinType]; l >= spendable {
			spendable = 0
		} else {
			spendable -= l
		}
		opts = append(opts, coinOption{
			coinType:  b.CoinType,
			spendable: spendable,
			decimals:  s.decimals(b.CoinType),
		})
	}
	return opts
}

func (s *CoinStep) Init() tea.Cmd {
	return nil
}

func (s *CoinStep) Update(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyPressMsg)
	if !ok {
		if s.zone == 2 {
			var cmd tea.Cmd
			s.amount, cmd = s.amount.Update(msg)
			return cmd
		}
		return nil
	}

	switch key.String() {
	case "tab":
		if s.zone == 2 {
			return func() tea.Msg { return wizard.TabExitForwardMsg{} }
		}
		s.setZone(s.zone + 1)
		return nil
	case "shift+tab":
		if s.zone == 0 {
			return func() tea.Msg { return wizard.TabExitBackwardMsg{} }
		}
		s.setZone(s.zone - 1)
		return nil
	case "enter":
		if s.zone < 2 {
			s.setZone(s.zone + 1)
			return nil
		}
		return func() tea.Msg { return wizard.AdvanceMsg{} }
	}

	switch s.zone {
	case 0:
		switch key.String() {
		case "up", "k":
			if s.vaultIdx > 0 {
				s.vaultIdx--
				s.coinIdx = 0
				s.sync()
			}
		case "down", "j":
			if s.vaultIdx < len(s.vaults)-1 {
				s.vaultIdx++
				s.coinIdx = 0
				s.sync()
			}
		}
	case 1:
		opts := s.options()
		switch key.String() {
		case "up", "k":
			if s.coinIdx > 0 {
				s.coinIdx--
				s.sync()
			}
		case "down", "j":
			if s.coinIdx < len(opts)-1 {
				s.coinIdx++
				s.sync()
			}
		}
	case 2:
		var cmd tea.Cmd
		s.amount, cmd = s.amount.Update(msg)
		s.sync()
		return cmd
	}
	return nil
}

func (s *CoinStep) setZone(zone int) {
	s.zone = zone
	if zone == 2 {
		s.amount.Focus()
	} else {
		s.amount.Blur()
	}
}

// sync writes the current selection to the form.
func (s *CoinStep) sync() {
	opts := s.options()
	if len(s.vaults) == 0 || s.coinIdx >= len(opts) {
		s.write("", sdk.CoinSelection{})
		return
	}
	opt := opts[s.coinIdx]

	sel := sdk.CoinSelection{
		CoinType: opt.coinType,
		Balance:  coins.ToHuman(opt.spendable, opt.decimals),
		Decimals: opt.decimals,
	}

	s.amountErr = ""
	raw := strings.TrimSpace(s.amount.Value())
	if raw != "" {
		v, err := coins.ParseAmount(raw)
		if err != nil {
			s.amountErr = err.Error()
		} else {
			sel.Amount = v
			sel.BaseAmount = coins.ToBase(v, opt.decimals)
			if v > sel.Balance {
				s.amountErr = fmt.Sprintf("exceeds spendable balance of %s", coins.Format(opt.spendable, opt.decimals))
			}
		}
	}

	s.write(s.vaults[s.vaultIdx].Name, sel)
}

func (s *CoinStep) View() string {
	var b strings.Builder

	if len(s.vaults) == 0 {
		b.WriteString(dimStyle().Render("This DAO has no vaults."))
		return b.String()
	}

	b.WriteString(s.renderList("Vault", s.zone == 0, s.vaultIdx, vaultLabels(s.vaults)))
	b.WriteString("\n")

	opts := s.options()
	labels := make([]string, len(opts))
	for i, o := range opts {
		labels[i] = fmt.Sprintf("%s  %s spendable", coins.Symbol(o.coinType), coins.Format(o.spendable, o.decimals))
	}
	b.WriteString(s.renderList("Coin", s.zone == 1, s.coinIdx, labels))
	b.WriteString("\n")

	b.WriteString(labelStyle().Render("Amount"))
	b.WriteString("\n")
	b.WriteString(s.amount.View())
	b.WriteString("\n")
	if s.amountErr != "" {
		b.WriteString(errorStyle().Render("✗ " + s.amountErr))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(renderHintBar("↑↓", "choose", "tab", "next section", "enter", "next", "esc", "back"))
	return b.String()
}

func vaultLabels(vaults []sdk.Vault) []string {
	labels := make([]string, len(vaults))
	for i, v := range vaults {
		labels[i] = fmt.Sprintf("%s  (%d coin types)", v.Name, len(v.Balances))
	}
	return labels
}

func (s *CoinStep) renderList(label string, active bool, idx int, items []string) string {
	th := theme.Current()

	header := labelStyle().Render(label)
	if active {
		header = lipgloss.NewStyle().Foreground(lipgloss.Color(th.Secondary)).Bold(true).Render(label)
	}

	selStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(th.Primary)).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(th.FgBase))

	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n")
	for i, item := range items {
		if i == idx {
			b.WriteString(selStyle.Render("▸ " + item))
		} else {
			b.WriteString(rowStyle.Render("  " + item))
		}
		b.WriteString("\n")
	}
	if len(items) == 0 {
		b.WriteString(dimStyle().Render("  (none)"))
		b.WriteString("\n")
	}
	return b.String()
}

func (s *CoinStep) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.amount.SetWidth(width - 10)
}

func (s *CoinStep) Focus() { s.setZone(0); s.sync() }
func (s *CoinStep) Blur()  { s.amount.Blur() }
