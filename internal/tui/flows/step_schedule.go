package flows

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/daoterm/daoterm/internal/coins"
	"github.com/daoterm/daoterm/internal/sdk"
	"github.com/daoterm/daoterm/internal/tui/theme"
	"github.com/daoterm/daoterm/internal/tui/wizard"
)

// ScheduleStep collects the vesting recipient and the linear vesting window.
// The vested amount is fixed to the coin selection from the previous step;
// vesting streams are single-recipient.
type ScheduleStep struct {
	group *inputGroup // recipient, vest start, vest end
	errs  [3]string

	width  int
	height int

	read  func() VestingForm
	write func(patch func(*VestingForm))
}

// NewScheduleStep creates the schedule step over a vesting form container.
func NewScheduleStep(read func() VestingForm, write func(patch func(*VestingForm))) *ScheduleStep {
	f := read()

	recipient := newInput("0x…")
	recipient.CharLimit = 66
	recipient.SetValue(f.Recipient.Address)

	start := newInput(time.Now().AddDate(0, 1, 0).Format(timeLayout))
	end := newInput(time.Now().AddDate(1, 1, 0).Format(timeLayout))
	if f.VestStart != nil {
		start.SetValue(f.VestStart.Format(timeLayout))
	}
	if f.VestEnd != nil {
		end.SetValue(f.VestEnd.Format(timeLayout))
	}

	return &ScheduleStep{
		group: newInputGroup(recipient, start, end),
		read:  read,
		write: write,
	}
}

func (s *ScheduleStep) Init() tea.Cmd {
	return nil
}

func (s *ScheduleStep) Update(msg tea.Msg) tea.Cmd {
	if key, ok := msg.(tea.KeyPressMsg); ok && key.String() == "enter" {
		return func() tea.Msg { return wizard.AdvanceMsg{} }
	}

	cmd, changed := s.group.Update(msg)
	if changed {
		s.syncField(s.group.focus)
	}
	return cmd
}

func (s *ScheduleStep) syncField(i int) {
	raw := s.group.Value(i)
	s.errs[i] = ""

	switch i {
	case 0:
		if raw != "" && !sdk.ValidAddress(raw) {
			s.errs[i] = "not a valid address"
		}
		s.write(func(f *VestingForm) {
			f.Recipient = sdk.Recipient{
				Address:    raw,
				Amount:     f.Coin.Amount,
				BaseAmount: f.Coin.BaseAmount,
			}
		})
	case 1, 2:
		var parsed *time.Time
		if raw != "" {
			t, err := parseStepTime(raw)
			if err != nil {
				s.errs[i] = "expected format: " + timeLayout
			} else {
				parsed = t
			}
		}
		s.write(func(f *VestingForm) {
			if i == 1 {
				f.VestStart = parsed
			} else {
				f.VestEnd = parsed
			}
		})
	}
}

func (s *ScheduleStep) View() string {
	th := theme.Current()
	f := s.read()

	labels := [3]string{"Recipient", "Vest Start", "Vest End"}

	var b strings.Builder
	b.WriteString(dimStyle().Render(fmt.Sprintf("Vesting %s %s linearly over the window",
		coins.Format(f.Coin.BaseAmount, f.Coin.Decimals), coins.Symbol(f.Coin.CoinType))))
	b.WriteString("\n\n")

	for i := range s.group.inputs {
		b.WriteString(labelStyle().Render(labels[i]))
		b.WriteString("\n")
		b.WriteString(s.group.View(i))
		b.WriteString("\n")
		if s.errs[i] != "" {
			b.WriteString(errorStyle().Render("✗ " + s.errs[i]))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if f.VestStart != nil && f.VestEnd != nil && !f.VestStart.Before(*f.VestEnd) {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(th.Error)).Render("✗ vest start must be before vest end"))
		b.WriteString("\n\n")
	}

	b.WriteString(renderHintBar("tab", "next field", "enter", "next", "esc", "back"))
	return b.String()
}

func (s *ScheduleStep) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.group.SetWidth(width - 10)
}

func (s *ScheduleStep) Focus() { s.group.Focus() }
func (s *ScheduleStep) Blur()  { s.group.Blur() }
