package wizard

import (
	tea "charm.land/bubbletea/v2"
)

// StepBody is one step's interactive content. Bodies read and write form
// state through the flow's Container; they keep no authoritative form data
// of their own.
type StepBody interface {
	Init() tea.Cmd
	Update(msg tea.Msg) tea.Cmd
	View() string
	SetSize(width, height int)
	Focus()
	Blur()
}

// Step pairs a title with its body.
type Step struct {
	Title string
	Body  StepBody
}

// TabExitForwardMsg is sent by a step body when Tab moves focus past its
// last input, handing focus to the wizard's buttons.
type TabExitForwardMsg struct{}

// TabExitBackwardMsg is sent by a step body when Shift+Tab moves focus
// before its first input.
type TabExitBackwardMsg struct{}

// AdvanceMsg asks the wizard to advance to the next step (same as the Next
// button). Steps whose only input is a single field send this on Enter.
type AdvanceMsg struct{}

// StatusMsg carries an informational line from the submission pipeline,
// e.g. the dry-run result.
type StatusMsg struct {
	Text string
}

// SubmitResultMsg carries the outcome of the submission pipeline.
type SubmitResultMsg struct {
	Digest string
	Err    error
}

// SubmitDoneMsg fires after the post-success delay; the wizard exits.
type SubmitDoneMsg struct{}
