package flows

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/daoterm/daoterm/internal/tui/theme"
	"github.com/daoterm/daoterm/internal/tui/wizard"
)

// SettingsStep edits the DAO's governance settings: its display name and the
// quadratic voting flag. The current on-chain values are shown so the change
// is visible before the recap.
type SettingsStep struct {
	name textinput.Model
	zone int // 0=name input, 1=quadratic toggle

	width  int
	height int

	read  func() ConfigForm
	write func(patch func(*ConfigForm))
}

// NewSettingsStep creates the settings step over a config form container.
func NewSettingsStep(read func() ConfigForm, write func(patch func(*ConfigForm))) *SettingsStep {
	f := read()

	name := newInput(f.CurrentName)
	name.CharLimit = 64
	if f.DAOName != "" {
		name.SetValue(f.DAOName)
	}

	return &SettingsStep{name: name, read: read, write: write}
}

func (s *SettingsStep) Init() tea.Cmd {
	return nil
}

func (s *SettingsStep) Update(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyPressMsg)
	if !ok {
		if s.zone == 0 {
			var cmd tea.Cmd
			s.name, cmd = s.name.Update(msg)
			return cmd
		}
		return nil
	}

	switch key.String() {
	case "tab":
		if s.zone == 1 {
			return func() tea.Msg { return wizard.TabExitForwardMsg{} }
		}
		s.setZone(1)
		return nil
	case "shift+tab":
		if s.zone == 0 {
			return func() tea.Msg { return wizard.TabExitBackwardMsg{} }
		}
		s.setZone(0)
		return nil
	case "enter":
		return func() tea.Msg { return wizard.AdvanceMsg{} }
	}

	switch s.zone {
	case 0:
		var cmd tea.Cmd
		s.name, cmd = s.name.Update(msg)
		value := strings.TrimSpace(s.name.Value())
		s.write(func(f *ConfigForm) { f.DAOName = value })
		return cmd
	case 1:
		if key.String() == " " || key.String() == "space" {
			s.write(func(f *ConfigForm) { f.Quadratic = !f.Quadratic })
		}
	}
	return nil
}

func (s *SettingsStep) setZone(zone int) {
	s.zone = zone
	if zone == 0 {
		s.name.Focus()
	} else {
		s.name.Blur()
	}
}

func (s *SettingsStep) View() string {
	th := theme.Current()
	f := s.read()

	var b strings.Builder
	b.WriteString(labelStyle().Render("DAO Name"))
	b.WriteString("\n")
	b.WriteString(s.name.View())
	b.WriteString("\n")
	b.WriteString(dimStyle().Render("currently: " + f.CurrentName))
	b.WriteString("\n\n")

	toggleLabel := "Quadratic Voting"
	if s.zone == 1 {
		toggleLabel = lipgloss.NewStyle().Foreground(lipgloss.Color(th.Secondary)).Bold(true).Render(toggleLabel)
	} else {
		toggleLabel = labelStyle().Render(toggleLabel)
	}
	b.WriteString(toggleLabel)
	b.WriteString("\n")

	box := "[ ]"
	if f.Quadratic {
		box = "[x]"
	}
	state := lipgloss.NewStyle().Foreground(lipgloss.Color(th.FgBase)).Render(box + " voting power is √stake")
	b.WriteString(state)
	b.WriteString("\n")
	if f.Quadratic != f.CurrentQuadratic {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(th.Warning)).Render("changes current setting"))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(renderHintBar("tab", "next field", "space", "toggle", "enter", "next", "esc", "back"))
	return b.String()
}

func (s *SettingsStep) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.name.SetWidth(width - 10)
}

func (s *SettingsStep) Focus() { s.setZone(0) }
func (s *SettingsStep) Blur()  { s.name.Blur() }
