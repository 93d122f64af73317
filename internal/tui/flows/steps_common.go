package flows

import (
	"strings"
	"time"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/daoterm/daoterm/internal/tui/theme"
	"github.com/daoterm/daoterm/internal/tui/wizard"
)

// timeLayout is the format every date input in the wizards accepts.
const timeLayout = "2006-01-02 15:04"

func formatTimePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(timeLayout)
}

// newInput creates a themed text input the way every flow step builds them.
func newInput(placeholder string) textinput.Model {
	th := theme.Current()

	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = ""
	ti.SetStyles(textinput.Styles{
		Focused: textinput.StyleState{
			Text:        lipgloss.NewStyle().Foreground(lipgloss.Color(th.FgBright)),
			Placeholder: lipgloss.NewStyle().Foreground(lipgloss.Color(th.FgMuted)),
			Prompt:      lipgloss.NewStyle().Foreground(lipgloss.Color(th.Secondary)),
		},
		Blurred: textinput.StyleState{
			Text:        lipgloss.NewStyle().Foreground(lipgloss.Color(th.FgSubtle)),
			Placeholder: lipgloss.NewStyle().Foreground(lipgloss.Color(th.FgMuted)),
			Prompt:      lipgloss.NewStyle().Foreground(lipgloss.Color(th.FgMuted)),
		},
		Cursor: textinput.CursorStyle{
			Color: lipgloss.Color(th.Primary),
			Shape: tea.CursorBar,
			Blink: true,
		},
	})
	ti.SetWidth(50)
	return ti
}

func labelStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Current().FgSubtle))
}

func errorStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Current().Error))
}

func dimStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Current().FgMuted))
}

// renderHintBar renders key/description pairs as a single dim hint line.
func renderHintBar(pairs ...string) string {
	th := theme.Current()
	keyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(th.Secondary))
	descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(th.FgMuted))

	var parts []string
	for i := 0; i+1 < len(pairs); i += 2 {
		parts = append(parts, keyStyle.Render(pairs[i])+" "+descStyle.Render(pairs[i+1]))
	}
	return strings.Join(parts, descStyle.Render("  •  "))
}

// inputGroup manages focus cycling across a step's text inputs. Tab past the
// last input (or Shift+Tab before the first) hands focus to the wizard's
// buttons via the exit messages.
type inputGroup struct {
	inputs []textinput.Model
	focus  int
}

func newInputGroup(inputs ...textinput.Model) *inputGroup {
	return &inputGroup{inputs: inputs}
}

func (g *inputGroup) Focus() {
	g.focus = 0
	g.applyFocus()
}

func (g *inputGroup) FocusLast() {
	g.focus = len(g.inputs) - 1
	g.applyFocus()
}

func (g *inputGroup) Blur() {
	for i := range g.inputs {
		g.inputs[i].Blur()
	}
}

func (g *inputGroup) applyFocus() {
	for i := range g.inputs {
		if i == g.focus {
			g.inputs[i].Focus()
		} else {
			g.inputs[i].Blur()
		}
	}
}

func (g *inputGroup) SetWidth(width int) {
	for i := range g.inputs {
		g.inputs[i].SetWidth(width)
	}
}

func (g *inputGroup) Value(i int) string {
	return strings.TrimSpace(g.inputs[i].Value())
}

func (g *inputGroup) View(i int) string {
	return g.inputs[i].View()
}

// Update handles tab cycling and forwards everything else to the focused
// input. Returns the produced command and whether the focused input may have
// changed value.
func (g *inputGroup) Update(msg tea.Msg) (tea.Cmd, bool) {
	if key, ok := msg.(tea.KeyPressMsg); ok {
		switch key.String() {
		case "tab":
			if g.focus == len(g.inputs)-1 {
				return func() tea.Msg { return wizard.TabExitForwardMsg{} }, false
			}
			g.focus++
			g.applyFocus()
			return nil, false
		case "shift+tab":
			if g.focus == 0 {
				return func() tea.Msg { return wizard.TabExitBackwardMsg{} }, false
			}
			g.focus--
			g.applyFocus()
			return nil, false
		}
	}

	var cmd tea.Cmd
	g.inputs[g.focus], cmd = g.inputs[g.focus].Update(msg)
	_, keyed := msg.(tea.KeyPressMsg)
	return cmd, keyed
}
