package flows

import (
	"fmt"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/daoterm/daoterm/internal/sdk"
	"github.com/daoterm/daoterm/internal/tui/theme"
	"github.com/daoterm/daoterm/internal/tui/wizard"
)

// DepsStep edits the DAO's unverified dependency set. Verified deps are shown
// read-only; unverified ones can be kept or dropped, and new ones added by
// name, address and version. The allow-unverified policy toggle lives here
// too.
type DepsStep struct {
	verified []sdk.Dep

	cursor int
	zone   int // 0=dep list (incl. policy row), 1=add form

	addForm *inputGroup // name, address, version

	width  int
	height int

	read  func() DepsForm
	write func(patch func(*DepsForm))
}

// NewDepsStep creates the deps step. The selected set starts as the
// installed set, so the proposal begins from "no change".
func NewDepsStep(verified []sdk.Dep, read func() DepsForm, write func(patch func(*DepsForm))) *DepsStep {
	name := newInput("package name")
	name.CharLimit = 64
	address := newInput("0x…")
	address.CharLimit = 66
	version := newInput("1")
	version.CharLimit = 10

	return &DepsStep{
		verified: verified,
		addForm:  newInputGroup(name, address, version),
		read:     read,
		write:    write,
	}
}

// candidates returns the union of installed and selected deps, installed
// first, so dropped deps stay visible and can be re-added.
func (s *DepsStep) candidates(f DepsForm) []sdk.Dep {
	seen := make(map[string]bool)
	var out []sdk.Dep
	for _, d := range f.Installed {
		seen[d.Key()] = true
		out = append(out, d)
	}
	for _, d := range f.Selected {
		if !seen[d.Key()] {
			seen[d.Key()] = true
			out = append(out, d)
		}
	}
	return out
}

func (s *DepsStep) Init() tea.Cmd {
	return nil
}

func (s *DepsStep) Update(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyPressMsg)
	if !ok {
		if s.zone == 1 {
			cmd, _ := s.addForm.Update(msg)
			return cmd
		}
		return nil
	}

	if s.zone == 1 {
		switch key.String() {
		case "enter":
			s.submitAddForm()
			return nil
		case "ctrl+x":
			s.setZone(0)
			return nil
		}
		cmd, _ := s.addForm.Update(msg)
		return cmd
	}

	f := s.read()
	cands := s.candidates(f)
	// The policy toggle is the row after the last candidate.
	rows := len(cands) + 1

	switch key.String() {
	case "tab":
		return func() tea.Msg { return wizard.TabExitForwardMsg{} }
	case "shift+tab":
		return func() tea.Msg { return wizard.TabExitBackwardMsg{} }
	case "enter":
		return func() tea.Msg { return wizard.AdvanceMsg{} }
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < rows-1 {
			s.cursor++
		}
	case " ", "space":
		if s.cursor < len(cands) {
			s.toggle(cands[s.cursor])
		} else {
			s.write(func(f *DepsForm) { f.AllowUnverified = !f.AllowUnverified })
		}
	case "a":
		s.setZone(1)
	}
	return nil
}

func (s *DepsStep) setZone(zone int) {
	s.zone = zone
	if zone == 1 {
		s.addForm.Focus()
	} else {
		s.addForm.Blur()
	}
}

// toggle flips a dep's membership in the selected set.
func (s *DepsStep) toggle(dep sdk.Dep) {
	s.write(func(f *DepsForm) {
		for i, d := range f.Selected {
			if d.Key() == dep.Key() {
				f.Selected = append(f.Selected[:i], f.Selected[i+1:]...)
				return
			}
		}
		f.Selected = append(f.Selected, dep)
	})
}

// submitAddForm validates the add form and appends the new dep.
func (s *DepsStep) submitAddForm() {
	name := s.addForm.Value(0)
	address := s.addForm.Value(1)
	versionRaw := s.addForm.Value(2)

	if name == "" || !sdk.ValidAddress(address) {
		return
	}
	version, err := strconv.ParseUint(versionRaw, 10, 64)
	if err != nil || version == 0 {
		return
	}

	dep := sdk.Dep{Name: name, Address: address, Version: version}
	s.write(func(f *DepsForm) {
		for _, d := range f.Selected {
			if d.Key() == dep.Key() {
				return
			}
		}
		f.Selected = append(f.Selected, dep)
	})

	for i := range s.addForm.inputs {
		s.addForm.inputs[i].SetValue("")
	}
	s.setZone(0)
}

func (s *DepsStep) View() string {
	th := theme.Current()
	f := s.read()

	selected := make(map[string]bool)
	for _, d := range f.Selected {
		selected[d.Key()] = true
	}

	var b strings.Builder

	if len(s.verified) > 0 {
		b.WriteString(labelStyle().Render("Verified (immutable)"))
		b.WriteString("\n")
		for _, d := range s.verified {
			b.WriteString(dimStyle().Render(fmt.Sprintf("  ✓ %s v%d", d.Name, d.Version)))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(labelStyle().Render("Unverified"))
	b.WriteString("\n")

	cands := s.candidates(f)
	rowStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(th.FgBase))
	curStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(th.Primary)).Bold(true)
	for i, d := range cands {
		box := "[ ]"
		if selected[d.Key()] {
			box = "[x]"
		}
		line := fmt.Sprintf("%s %s v%d  %s", box, d.Name, d.Version, shortDepAddr(d.Address))
		if s.zone == 0 && i == s.cursor {
			b.WriteString(curStyle.Render("▸ " + line))
		} else {
			b.WriteString(rowStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}
	if len(cands) == 0 {
		b.WriteString(dimStyle().Render("  (none installed)"))
		b.WriteString("\n")
	}

	policyBox := "[ ]"
	if f.AllowUnverified {
		policyBox = "[x]"
	}
	policy := policyBox + " allow unverified dependencies"
	if s.zone == 0 && s.cursor == len(cands) {
		b.WriteString(curStyle.Render("▸ " + policy))
	} else {
		b.WriteString(rowStyle.Render("  " + policy))
	}
	b.WriteString("\n")
	if f.ToggleChanged() {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(th.Warning)).Render("  changes current policy"))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if s.zone == 1 {
		b.WriteString(labelStyle().Render("Add Dependency"))
		b.WriteString("\n")
		for i := range s.addForm.inputs {
			b.WriteString(s.addForm.View(i))
			b.WriteString("\n")
		}
		b.WriteString(renderHintBar("enter", "add", "ctrl+x", "cancel"))
	} else {
		added, removed := f.NetChanges()
		if n := len(added) + len(removed); n > 0 {
			b.WriteString(dimStyle().Render(fmt.Sprintf("%d change(s): +%d −%d", n, len(added), len(removed))))
			b.WriteString("\n\n")
		}
		b.WriteString(renderHintBar("↑↓", "move", "space", "toggle", "a", "add dep", "enter", "next"))
	}
	return b.String()
}

func shortDepAddr(addr string) string {
	if len(addr) <= 12 {
		return addr
	}
	return addr[:8] + "…" + addr[len(addr)-4:]
}

func (s *DepsStep) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.addForm.SetWidth(width - 10)
}

func (s *DepsStep) Focus() { s.setZone(0) }
func (s *DepsStep) Blur()  { s.addForm.Blur() }
