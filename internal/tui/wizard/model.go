package wizard

import (
	"context"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"

	"github.com/daoterm/daoterm/internal/logger"
	"github.com/daoterm/daoterm/internal/tui/theme"
)

// Modal layout constants
const (
	modalWidth        = 74
	modalPadding      = 2
	modalBorderWidth  = 1
	modalContentWidth = modalWidth - (modalPadding * 2) - (modalBorderWidth * 2)
)

// postSuccessDelay is how long the success state stays on screen before the
// wizard exits. The delay is fixed; it does not depend on chain latency.
const postSuccessDelay = 2 * time.Second

// Options configures a wizard run.
type Options[F any] struct {
	// Title is shown above every step, e.g. "New Transfer Proposal".
	Title string
	// Steps in order; the last one is the recap.
	Steps []Step
	// Container owns the flow's form state.
	Container *Container[F]
	// Validate reports per-step completeness. Must be pure.
	Validate Validator[F]
	// Submit runs the transaction pipeline and returns the digest.
	Submit func(ctx context.Context) (string, error)
	// OnAdvance is called after each successful step advance, e.g. to
	// autosave a draft. Failures are the callee's problem; they never
	// block navigation.
	OnAdvance func(form F)
	// Status delivers informational lines from the submission pipeline
	// (the dry-run result); shown while submitting. Close it when the
	// pipeline can no longer send.
	Status <-chan string
	// ExplorerURL, when set, is shown with the digest after success.
	ExplorerURL string
}

// Model is the BubbleTea model driving a stepped proposal wizard.
type Model[F any] struct {
	opts      Options[F]
	seq       *Sequencer[F]
	titles    []string
	cancelled bool
	digest    string
	status    string
	width     int
	height    int
	ctx       context.Context

	buttonBar     *ButtonBar
	buttonFocused bool
}

// New creates a wizard model from options.
func New[F any](ctx context.Context, opts Options[F]) *Model[F] {
	titles := make([]string, len(opts.Steps))
	for i, s := range opts.Steps {
		titles[i] = s.Title
	}
	return &Model[F]{
		opts:   opts,
		seq:    NewSequencer(len(opts.Steps), opts.Validate),
		titles: titles,
		ctx:    ctx,
	}
}

// Run runs the wizard in its own BubbleTea program and returns the final
// model. A cancelled wizard is not an error.
func Run[F any](ctx context.Context, opts Options[F]) (*Model[F], error) {
	m := New(ctx, opts)

	p := tea.NewProgram(m)
	finalModel, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("wizard failed: %w", err)
	}

	final, ok := finalModel.(*Model[F])
	if !ok {
		return nil, fmt.Errorf("unexpected model type")
	}
	return final, nil
}

// Cancelled reports whether the user backed out before submitting.
func (m *Model[F]) Cancelled() bool { return m.cancelled }

// Digest returns the transaction digest after a successful submission.
func (m *Model[F]) Digest() string { return m.digest }

// Phase returns the wizard's current phase.
func (m *Model[F]) Phase() Phase { return m.seq.Phase() }

// Step returns the current step index.
func (m *Model[F]) Step() int { return m.seq.Step() }

// Init initializes the first step.
func (m *Model[F]) Init() tea.Cmd {
	if len(m.opts.Steps) == 0 {
		return tea.Quit
	}
	return tea.Batch(m.opts.Steps[0].Body.Init(), m.listenStatus())
}

// listenStatus waits for the next informational line from the pipeline.
func (m *Model[F]) listenStatus() tea.Cmd {
	if m.opts.Status == nil {
		return nil
	}
	ch := m.opts.Status
	return func() tea.Msg {
		text, ok := <-ch
		if !ok {
			return nil
		}
		return StatusMsg{Text: text}
	}
}

// Update handles messages for the wizard.
func (m *Model[F]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		// While submitting or completed only Ctrl+C gets through.
		if m.seq.Phase() != PhaseEditing {
			if msg.String() == "ctrl+c" {
				m.cancelled = m.seq.Phase() != PhaseCompleted
				return m, tea.Quit
			}
			return m, nil
		}

		if m.buttonFocused && m.buttonBar != nil {
			switch msg.String() {
			case "tab", "right":
				if !m.buttonBar.FocusNext() {
					m.buttonFocused = false
					m.buttonBar.Blur()
					m.currentBody().Focus()
				}
				return m, nil
			case "shift+tab", "left":
				if !m.buttonBar.FocusPrev() {
					m.buttonFocused = false
					m.buttonBar.Blur()
					m.currentBody().Focus()
				}
				return m, nil
			case "enter", " ":
				return m.activateButton(m.buttonBar.FocusedButton())
			}
		}

		switch msg.String() {
		case "ctrl+c":
			m.cancelled = true
			return m, tea.Quit
		case "esc":
			return m.goBack()
		case "tab":
			if !m.buttonFocused {
				m.buttonFocused = true
				m.currentBody().Blur()
				m.ensureButtonBar()
				m.buttonBar.FocusFirst()
				return m, nil
			}
		case "shift+tab":
			if !m.buttonFocused {
				m.buttonFocused = true
				m.currentBody().Blur()
				m.ensureButtonBar()
				m.buttonBar.FocusLast()
				return m, nil
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		contentWidth, contentHeight := m.contentSize()
		for _, s := range m.opts.Steps {
			s.Body.SetSize(contentWidth, contentHeight)
		}
		return m, nil

	case TabExitForwardMsg:
		m.buttonFocused = true
		m.currentBody().Blur()
		m.ensureButtonBar()
		m.buttonBar.FocusFirst()
		return m, nil

	case TabExitBackwardMsg:
		m.buttonFocused = true
		m.currentBody().Blur()
		m.ensureButtonBar()
		m.buttonBar.FocusLast()
		return m, nil

	case AdvanceMsg:
		return m.goNext()

	case StatusMsg:
		m.status = msg.Text
		return m, m.listenStatus()

	case SubmitResultMsg:
		if msg.Err != nil {
			logger.Error("Proposal submission failed: %v", msg.Err)
			m.seq.Fail(msg.Err)
			m.seq.Resume()
			m.buttonFocused = false
			m.buttonBar = nil
			return m, nil
		}
		logger.Info("Proposal submitted: digest=%s", msg.Digest)
		m.digest = msg.Digest
		m.seq.CompleteOK()
		return m, tea.Tick(postSuccessDelay, func(time.Time) tea.Msg {
			return SubmitDoneMsg{}
		})

	case SubmitDoneMsg:
		return m, tea.Quit
	}

	// Forward messages to the current step body.
	return m, m.currentBody().Update(msg)
}

func (m *Model[F]) currentBody() StepBody {
	return m.opts.Steps[m.seq.Step()].Body
}

func (m *Model[F]) activateButton(id ButtonID) (tea.Model, tea.Cmd) {
	switch id {
	case ButtonBack:
		return m.goBack()
	case ButtonNext:
		return m.goNext()
	}
	return m, nil
}

// goBack retreats one step, or cancels the wizard on the first step.
func (m *Model[F]) goBack() (tea.Model, tea.Cmd) {
	if !m.seq.Retreat() {
		m.cancelled = true
		return m, tea.Quit
	}
	return m.enterStep()
}

// goNext advances if the current step validates. On the recap step it
// starts the submission pipeline instead.
func (m *Model[F]) goNext() (tea.Model, tea.Cmd) {
	form := m.opts.Container.Get()

	switch m.seq.Advance(form) {
	case OutcomeNone:
		return m, nil
	case OutcomeAdvanced:
		if m.opts.OnAdvance != nil {
			m.opts.OnAdvance(form)
		}
		return m.enterStep()
	case OutcomeSubmit:
		m.seq.BeginSubmit()
		m.status = ""
		m.buttonFocused = false
		m.buttonBar = nil
		submit := m.opts.Submit
		ctx := m.ctx
		return m, func() tea.Msg {
			digest, err := submit(ctx)
			return SubmitResultMsg{Digest: digest, Err: err}
		}
	}
	return m, nil
}

// enterStep resets focus state and initializes the new current step.
func (m *Model[F]) enterStep() (tea.Model, tea.Cmd) {
	m.buttonFocused = false
	m.buttonBar = nil

	body := m.currentBody()
	contentWidth, contentHeight := m.contentSize()
	body.SetSize(contentWidth, contentHeight)
	body.Focus()
	return m, body.Init()
}

// contentSize returns the internal content dimensions for the modal.
func (m *Model[F]) contentSize() (width, height int) {
	width = modalContentWidth

	height = m.height - 4
	if height < 20 {
		height = 20
	}
	if height > 40 {
		height = 40
	}
	height = height - 12
	if height < 8 {
		height = 8
	}
	return width, height
}

// ensureButtonBar creates or refreshes the button bar for the current step.
func (m *Model[F]) ensureButtonBar() {
	nextLabel := "Next →"
	if m.seq.Step() == m.seq.Steps()-1 {
		nextLabel = "Submit"
	}

	nextEnabled := m.seq.Valid(m.opts.Container.Get())

	if m.buttonBar == nil {
		backEnabled := m.seq.Step() > 0
		m.buttonBar = NewButtonBar(CreateBackNextButtons(backEnabled, nextEnabled, nextLabel))
		m.buttonBar.SetWidth(modalContentWidth)
		return
	}
	m.buttonBar.SetEnabled(ButtonNext, nextEnabled)
}

// View renders the wizard.
func (m *Model[F]) View() tea.View {
	var view tea.View
	view.AltScreen = true

	if m.width == 0 || m.height == 0 {
		view.Content = lipgloss.NewLayer("")
		return view
	}

	content := m.renderModal()

	centered := lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		content,
	)

	canvas := uv.NewScreenBuffer(m.width, m.height)
	uv.NewStyledString(centered).Draw(canvas, uv.Rectangle{
		Min: uv.Position{X: 0, Y: 0},
		Max: uv.Position{X: m.width, Y: m.height},
	})

	view.Content = lipgloss.NewLayer(canvas.Render())
	return view
}

func (m *Model[F]) renderModal() string {
	th := theme.Current()

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(th.Primary)).
		MarginBottom(1)
	title := titleStyle.Render(m.opts.Title)

	progress := RenderProgress(m.seq, m.titles, modalContentWidth)

	var body string
	switch m.seq.Phase() {
	case PhaseSubmitting:
		body = lipgloss.NewStyle().
			Foreground(lipgloss.Color(th.FgBase)).
			Render("Submitting proposal…")
	case PhaseCompleted:
		body = m.renderSuccess()
	default:
		body = m.currentBody().View()
	}

	// Informational pipeline status (dry-run result) under the body.
	if m.status != "" && m.seq.Phase() != PhaseEditing {
		statusLine := lipgloss.NewStyle().
			Foreground(lipgloss.Color(th.FgMuted)).
			Render("ℹ " + m.status)
		body = lipgloss.JoinVertical(lipgloss.Left, body, statusLine)
	}

	// Inline failure banner above the recap after a failed attempt.
	var banner string
	if err := m.seq.Err(); err != nil && m.seq.Phase() == PhaseEditing {
		banner = lipgloss.NewStyle().
			Foreground(lipgloss.Color(th.Error)).
			Bold(true).
			Render("✗ " + err.Error())
	}

	hint := lipgloss.NewStyle().
		Foreground(lipgloss.Color(th.FgMuted)).
		Render("tab to navigate • esc to go back")

	var buttonBarContent string
	if m.seq.Phase() == PhaseEditing {
		m.ensureButtonBar()
		buttonBarContent = m.buttonBar.Render()
	}

	parts := []string{title, progress, ""}
	if banner != "" {
		parts = append(parts, banner, "")
	}
	parts = append(parts, body)
	if buttonBarContent != "" {
		parts = append(parts, "", buttonBarContent, "", hint)
	}

	content := lipgloss.JoinVertical(lipgloss.Left, parts...)

	modalStyle := lipgloss.NewStyle().
		Width(modalWidth).
		Padding(1, modalPadding).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(th.BorderDefault))

	return modalStyle.Render(content)
}

func (m *Model[F]) renderSuccess() string {
	th := theme.Current()

	okStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(th.Success)).
		Bold(true)
	lines := []string{okStyle.Render("✓ Proposal submitted")}

	digestStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(th.FgBase))
	lines = append(lines, digestStyle.Render("Digest: "+m.digest))

	if m.opts.ExplorerURL != "" {
		linkStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(th.Secondary))
		lines = append(lines, linkStyle.Render(m.opts.ExplorerURL+"/tx/"+m.digest))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
