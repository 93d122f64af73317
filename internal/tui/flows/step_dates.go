package flows

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/daoterm/daoterm/internal/tui/wizard"
)

// DatesStep collects the proposal timeline: voting window, execution time,
// and an optional expiration override.
type DatesStep struct {
	group  *inputGroup
	errs   [4]string
	width  int
	height int

	read  func() wizard.Meta
	write func(patch func(*wizard.Meta))
}

const (
	dateFieldVotingStart = iota
	dateFieldVotingEnd
	dateFieldExecution
	dateFieldExpiration
)

var dateFieldLabels = [4]string{
	"Voting Start",
	"Voting End",
	"Execution",
	"Expiration (optional, defaults to voting end + 7 days)",
}

// NewDatesStep creates the dates step over the flow's shared proposal fields.
func NewDatesStep(read func() wizard.Meta, write func(patch func(*wizard.Meta))) *DatesStep {
	m := read()
	values := [4]*time.Time{m.VotingStart, m.VotingEnd, m.Execution, m.Expiration}

	g := newInputGroup(
		newInput(time.Now().Add(24*time.Hour).Format(timeLayout)),
		newInput(time.Now().Add(4*24*time.Hour).Format(timeLayout)),
		newInput(time.Now().Add(4*24*time.Hour).Format(timeLayout)),
		newInput("leave empty for default"),
	)
	for i, v := range values {
		if v != nil {
			g.inputs[i].SetValue(v.Format(timeLayout))
		}
	}

	return &DatesStep{group: g, read: read, write: write}
}

func (s *DatesStep) Init() tea.Cmd {
	return nil
}

func (s *DatesStep) Update(msg tea.Msg) tea.Cmd {
	if key, ok := msg.(tea.KeyPressMsg); ok && key.String() == "enter" {
		return func() tea.Msg { return wizard.AdvanceMsg{} }
	}

	cmd, changed := s.group.Update(msg)
	if changed {
		s.syncField(s.group.focus)
	}
	return cmd
}

// syncField parses one input and writes the result to the form. Blank is a
// cleared field; a parse failure clears the form value and shows the error so
// validation cannot pass on a half-typed date.
func (s *DatesStep) syncField(i int) {
	raw := s.group.Value(i)

	var parsed *time.Time
	s.errs[i] = ""
	if raw != "" {
		t, err := parseStepTime(raw)
		if err != nil {
			s.errs[i] = "expected format: " + timeLayout
		} else {
			parsed = t
		}
	}

	s.write(func(m *wizard.Meta) {
		switch i {
		case dateFieldVotingStart:
			m.VotingStart = parsed
		case dateFieldVotingEnd:
			m.VotingEnd = parsed
		case dateFieldExecution:
			m.Execution = parsed
		case dateFieldExpiration:
			m.Expiration = parsed
		}
	})
}

func (s *DatesStep) View() string {
	var b strings.Builder

	for i := range s.group.inputs {
		b.WriteString(labelStyle().Render(dateFieldLabels[i]))
		b.WriteString("\n")
		b.WriteString(s.group.View(i))
		b.WriteString("\n")
		if s.errs[i] != "" {
			b.WriteString(errorStyle().Render("✗ " + s.errs[i]))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	m := s.read()
	if exp, ok := m.EffectiveExpiration(); ok && m.Expiration == nil {
		b.WriteString(dimStyle().Render("Will expire " + exp.Format(timeLayout)))
		b.WriteString("\n\n")
	}

	b.WriteString(renderHintBar("tab", "next field", "enter", "next", "esc", "back"))
	return b.String()
}

func (s *DatesStep) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.group.SetWidth(width - 10)
}

func (s *DatesStep) Focus() { s.group.Focus() }
func (s *DatesStep) Blur()  { s.group.Blur() }
