package flows

import (
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
)

// RecapStep shows the full proposal before submission: the shared fields,
// the flow-specific payload, and the exact transaction calls that will be
// signed. Content comes from a per-flow renderer so the step itself stays
// flow-agnostic.
type RecapStep struct {
	viewport viewport.Model
	render   func(width int) string

	width  int
	height int
}

// NewRecapStep creates a recap step around a content renderer. The renderer
// runs on every entry into the step so it always reflects the latest form.
func NewRecapStep(render func(width int) string) *RecapStep {
	vp := viewport.New(
		viewport.WithWidth(60),
		viewport.WithHeight(12),
	)
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3

	return &RecapStep{viewport: vp, render: render}
}

func (s *RecapStep) Init() tea.Cmd {
	s.refresh()
	return nil
}

func (s *RecapStep) refresh() {
	width := s.width
	if width <= 0 {
		width = 60
	}
	s.viewport.SetContent(s.render(width))
	s.viewport.GotoTop()
}

func (s *RecapStep) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	s.viewport, cmd = s.viewport.Update(msg)
	return cmd
}

func (s *RecapStep) View() string {
	return s.viewport.View() + "\n" + renderHintBar("↑↓", "scroll", "tab", "buttons", "esc", "back")
}

func (s *RecapStep) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.viewport.SetWidth(width)
	if height-2 > 4 {
		s.viewport.SetHeight(height - 2)
	}
	s.refresh()
}

func (s *RecapStep) Focus() { s.refresh() }
func (s *RecapStep) Blur()  {}
