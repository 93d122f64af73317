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

// recipientRow is one address/amount input pair.
type recipientRow struct {
	address textinput.Model
	amount  textinput.Model
}

// RecipientsStep collects the recipients of a transfer. The allocated total
// must match the selected amount exactly; the running sum is shown in base
// units so the user can see the mismatch before the recap flags it.
type RecipientsStep struct {
	rows  []recipientRow
	focus int // flat index: row*2 for address, row*2+1 for amount

	width  int
	height int

	readCoin func() sdk.CoinSelection
	write    func(recipients []sdk.Recipient)
}

// NewRecipientsStep creates the recipients step, restoring previous rows.
func NewRecipientsStep(
	readCoin func() sdk.CoinSelection,
	existing []sdk.Recipient,
	write func(recipients []sdk.Recipient),
) *RecipientsStep {
	s := &RecipientsStep{readCoin: readCoin, write: write}

	for _, r := range existing {
		row := s.newRow()
		row.address.SetValue(r.Address)
		if r.Amount > 0 {
			row.amount.SetValue(fmt.Sprintf("%g", r.Amount))
		}
		s.rows = append(s.rows, row)
	}
	if len(s.rows) == 0 {
		s.rows = append(s.rows, s.newRow())
	}
	return s
}

func (s *RecipientsStep) newRow() recipientRow {
	address := newInput("0x…")
	address.CharLimit = 66
	amount := newInput("0.00")
	amount.CharLimit = 32
	return recipientRow{address: address, amount: amount}
}

func (s *RecipientsStep) Init() tea.Cmd {
	return nil
}

func (s *RecipientsStep) Update(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s.forward(msg)
	}

	switch key.String() {
	case "tab":
		if s.focus == len(s.rows)*2-1 {
			return func() tea.Msg { return wizard.TabExitForwardMsg{} }
		}
		s.setFocus(s.focus + 1)
		return nil
	case "shift+tab":
		if s.focus == 0 {
			return func() tea.Msg { return wizard.TabExitBackwardMsg{} }
		}
		s.setFocus(s.focus - 1)
		return nil
	case "enter":
		return func() tea.Msg { return wizard.AdvanceMsg{} }
	case "ctrl+n":
		row := s.newRow()
		if s.width > 0 {
			row.address.SetWidth(s.width - 10)
			row.amount.SetWidth(s.width - 10)
		}
		s.rows = append(s.rows, row)
		s.setFocus((len(s.rows) - 1) * 2)
		s.sync()
		return nil
	case "ctrl+d":
		if len(s.rows) > 1 {
			row := s.focus / 2
			s.rows = append(s.rows[:row], s.rows[row+1:]...)
			if s.focus >= len(s.rows)*2 {
				s.focus = len(s.rows)*2 - 2
			}
			s.setFocus(s.focus)
			s.sync()
		}
		return nil
	}

	cmd := s.forward(msg)
	s.sync()
	return cmd
}

func (s *RecipientsStep) forward(msg tea.Msg) tea.Cmd {
	row, col := s.focus/2, s.focus%2
	if row >= len(s.rows) {
		return nil
	}
	var cmd tea.Cmd
	if col == 0 {
		s.rows[row].address, cmd = s.rows[row].address.Update(msg)
	} else {
		s.rows[row].amount, cmd = s.rows[row].amount.Update(msg)
	}
	return cmd
}

func (s *RecipientsStep) setFocus(focus int) {
	s.focus = focus
	for i := range s.rows {
		s.rows[i].address.Blur()
		s.rows[i].amount.Blur()
	}
	row, col := focus/2, focus%2
	if row < len(s.rows) {
		if col == 0 {
			s.rows[row].address.Focus()
		} else {
			s.rows[row].amount.Focus()
		}
	}
}

// sync writes the parsed recipient list to the form. Unparseable rows become
// zero-amount entries, which validation rejects.
func (s *RecipientsStep) sync() {
	coin := s.readCoin()

	recipients := make([]sdk.Recipient, 0, len(s.rows))
	for _, row := range s.rows {
		r := sdk.Recipient{Address: strings.TrimSpace(row.address.Value())}
		if raw := strings.TrimSpace(row.amount.Value()); raw != "" {
			if v, err := coins.ParseAmount(raw); err == nil {
				r.Amount = v
				r.BaseAmount = coins.ToBase(v, coin.Decimals)
			}
		}
		if r.Address == "" && r.BaseAmount == 0 {
			continue
		}
		recipients = append(recipients, r)
	}
	s.write(recipients)
}

func (s *RecipientsStep) View() string {
	th := theme.Current()
	coin := s.readCoin()

	var b strings.Builder
	for i, row := range s.rows {
		b.WriteString(labelStyle().Render(fmt.Sprintf("Recipient %d", i+1)))
		b.WriteString("\n")
		b.WriteString(row.address.View())
		b.WriteString("\n")
		b.WriteString(row.amount.View())
		b.WriteString("\n")

		if addr := strings.TrimSpace(row.address.Value()); addr != "" && !sdk.ValidAddress(addr) {
			b.WriteString(errorStyle().Render("✗ not a valid address"))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	var allocated uint64
	for _, row := range s.rows {
		if raw := strings.TrimSpace(row.amount.Value()); raw != "" {
			if v, err := coins.ParseAmount(raw); err == nil {
				allocated += coins.ToBase(v, coin.Decimals)
			}
		}
	}

	sum := fmt.Sprintf("Allocated %s of %s %s",
		coins.Format(allocated, coin.Decimals),
		coins.Format(coin.BaseAmount, coin.Decimals),
		coins.Symbol(coin.CoinType))
	if allocated == coin.BaseAmount && allocated > 0 {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(th.Success)).Render("✓ " + sum))
	} else {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(th.Warning)).Render("⚠ " + sum))
	}
	b.WriteString("\n\n")

	b.WriteString(renderHintBar("ctrl+n", "add recipient", "ctrl+d", "remove", "tab", "next field", "enter", "next"))
	return b.String()
}

func (s *RecipientsStep) SetSize(width, height int) {
	s.width = width
	s.height = height
	for i := range s.rows {
		s.rows[i].address.SetWidth(width - 10)
		s.rows[i].amount.SetWidth(width - 10)
	}
}

func (s *RecipientsStep) Focus() { s.setFocus(0) }

func (s *RecipientsStep) Blur() {
	for i := range s.rows {
		s.rows[i].address.Blur()
		s.rows[i].amount.Blur()
	}
}
