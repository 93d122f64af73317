package flows

import (
	"os"
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/editor"

	"github.com/daoterm/daoterm/internal/tui"
	"github.com/daoterm/daoterm/internal/tui/wizard"
)

// descriptionEditedMsg is sent when the external editor returns with a new
// proposal description.
type descriptionEditedMsg struct {
	content string
}

// NameStep collects the proposal name and the markdown description. The
// description is edited in $EDITOR since a single-line input is no place for
// markdown.
type NameStep struct {
	group  *inputGroup
	width  int
	height int

	tmpFile string

	read  func() wizard.Meta
	write func(patch func(*wizard.Meta))
	seed  func() string
}

// NewNameStep creates the name step over the flow's shared proposal fields.
func NewNameStep(read func() wizard.Meta, write func(patch func(*wizard.Meta))) *NameStep {
	input := newInput("e.g. 'Q3 Grants Batch' or 'Raise Quorum to 60%'")
	input.CharLimit = 100
	input.SetValue(read().ProposalName)

	return &NameStep{
		group: newInputGroup(input),
		read:  read,
		write: write,
	}
}

// WithSeed sets the skeleton written into the editor when the description is
// still empty.
func (s *NameStep) WithSeed(seed func() string) *NameStep {
	s.seed = seed
	return s
}

func (s *NameStep) Init() tea.Cmd {
	return nil
}

func (s *NameStep) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch msg.String() {
		case "enter":
			return func() tea.Msg { return wizard.AdvanceMsg{} }
		case "ctrl+e":
			return s.openEditor()
		}

	case descriptionEditedMsg:
		content := strings.TrimRight(msg.content, "\n")
		s.write(func(m *wizard.Meta) { m.Description = content })
		if s.tmpFile != "" {
			_ = os.Remove(s.tmpFile)
			s.tmpFile = ""
		}
		return nil
	}

	cmd, changed := s.group.Update(msg)
	if changed {
		name := s.group.Value(0)
		s.write(func(m *wizard.Meta) { m.ProposalName = name })
	}
	return cmd
}

// openEditor launches $EDITOR with the current description.
func (s *NameStep) openEditor() tea.Cmd {
	tmpfile, err := os.CreateTemp("", "daoterm_proposal_*.md")
	if err != nil {
		return nil
	}
	content := s.read().Description
	if content == "" && s.seed != nil {
		content = s.seed()
	}
	if _, err := tmpfile.WriteString(content); err != nil {
		_ = tmpfile.Close()
		_ = os.Remove(tmpfile.Name())
		return nil
	}
	_ = tmpfile.Close()
	s.tmpFile = tmpfile.Name()

	cmd, err := editor.Command("daoterm", tmpfile.Name())
	if err != nil {
		_ = os.Remove(tmpfile.Name())
		return nil
	}

	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		if err != nil {
			return nil
		}
		content, err := os.ReadFile(tmpfile.Name())
		if err != nil {
			return nil
		}
		return descriptionEditedMsg{content: string(content)}
	})
}

func (s *NameStep) View() string {
	var b strings.Builder

	b.WriteString(labelStyle().Render("Proposal Name"))
	b.WriteString("\n")
	b.WriteString(s.group.View(0))
	b.WriteString("\n\n")

	b.WriteString(labelStyle().Render("Description (markdown)"))
	b.WriteString("\n")
	desc := s.read().Description
	if desc == "" {
		b.WriteString(dimStyle().Render("(empty)"))
	} else {
		b.WriteString(tui.RenderMarkdown(truncateLines(desc, 8), s.width))
	}
	b.WriteString("\n\n")

	if os.Getenv("EDITOR") != "" {
		b.WriteString(renderHintBar("ctrl+e", "edit description", "enter", "next", "esc", "back"))
	} else {
		b.WriteString(renderHintBar("enter", "next", "esc", "back"))
	}
	return b.String()
}

// truncateLines keeps the preview from swallowing the modal.
func truncateLines(s string, max int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= max {
		return s
	}
	return strings.Join(lines[:max], "\n") + "\n…"
}

func (s *NameStep) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.group.SetWidth(width - 10)
}

func (s *NameStep) Focus() { s.group.Focus() }
func (s *NameStep) Blur()  { s.group.Blur() }
