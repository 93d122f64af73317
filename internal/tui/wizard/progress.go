package wizard

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/daoterm/daoterm/internal/tui/theme"
)

// RenderProgress renders one marker per step: done steps filled, the current
// step highlighted, future steps dimmed. Titles are shown under the markers
// for the current step only.
func RenderProgress[F any](seq *Sequencer[F], titles []string, width int) string {
	th := theme.Current()

	doneStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(th.Success))
	currentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(th.Primary)).Bold(true)
	pendingStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(th.FgMuted))

	done := seq.CompletedSteps()

	var markers []string
	for i := 0; i < seq.Steps(); i++ {
		switch {
		case i < done:
			markers = append(markers, doneStyle.Render("●"))
		case i == seq.Step() && seq.Phase() == PhaseEditing:
			markers = append(markers, currentStyle.Render("◉"))
		default:
			markers = append(markers, pendingStyle.Render("○"))
		}
	}

	line := strings.Join(markers, pendingStyle.Render("─"))

	label := ""
	if seq.Step() < len(titles) {
		label = currentStyle.Render(titles[seq.Step()])
	}

	block := lipgloss.JoinVertical(lipgloss.Center, line, label)
	return lipgloss.Place(width, lipgloss.Height(block), lipgloss.Center, lipgloss.Top, block)
}
