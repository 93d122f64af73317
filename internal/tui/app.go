// Package tui is the daoterm dashboard: DAO browsing, intent lists, intent
// detail, and the voting/execution actions on them. The proposal wizards
// live in their own packages and run as standalone programs.
package tui

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"

	"github.com/daoterm/daoterm/internal/appctx"
	"github.com/daoterm/daoterm/internal/logger"
	"github.com/daoterm/daoterm/internal/sdk"
	"github.com/daoterm/daoterm/internal/state"
	"github.com/daoterm/daoterm/internal/submit"
	"github.com/daoterm/daoterm/internal/tui/theme"
)

// Pane identifies which dashboard pane has keyboard focus.
type Pane int

const (
	PaneDAOs Pane = iota
	PaneIntents
	PaneDetail
)

// DAOSidebarWidth is the fixed width of the DAO list sidebar.
const DAOSidebarWidth = 34

// refreshPollInterval is how often the app checks the global refresh counter.
const refreshPollInterval = 500 * time.Millisecond

// Messages

type daosLoadedMsg struct {
	daos []sdk.DAO
	err  error
}

type intentsLoadedMsg struct {
	dao     string
	intents []sdk.Intent
	err     error
}

type detailLoadedMsg struct {
	intent *sdk.Intent
	power  *sdk.VotingPower
	err    error
}

type actionDoneMsg struct {
	verb   string
	digest string
	err    error
}

type refreshTickMsg struct{}

// App is the dashboard's BubbleTea model.
type App struct {
	app     *appctx.AppContext
	prefs   *state.Prefs
	dataDir string
	ctx     context.Context

	width  int
	height int
	pane   Pane

	daos   []sdk.DAO
	daoIdx int

	intents   []sdk.Intent
	intentIdx int

	detail *sdk.Intent
	power  *sdk.VotingPower

	followedOnly bool
	loading      bool
	lastRefresh  int64
	quitting     bool

	toast *Toast
}

// NewApp creates the dashboard model.
func NewApp(ctx context.Context, app *appctx.AppContext, prefs *state.Prefs, dataDir string) *App {
	return &App{
		app:     app,
		prefs:   prefs,
		dataDir: dataDir,
		ctx:     ctx,
		toast:   NewToast(),
	}
}

// Run runs the dashboard until the user quits.
func Run(ctx context.Context, app *appctx.AppContext, prefs *state.Prefs, dataDir string) error {
	m := NewApp(ctx, app, prefs, dataDir)
	if _, err := tea.NewProgram(m).Run(); err != nil {
		return fmt.Errorf("dashboard failed: %w", err)
	}
	if err := state.Save(dataDir, prefs); err != nil {
		logger.Warn("Failed to save prefs: %v", err)
	}
	return nil
}

// Init starts the initial data load and the refresh poll.
func (a *App) Init() tea.Cmd {
	a.lastRefresh = a.app.Refresh()
	return tea.Batch(a.fetchDAOs(), a.refreshTick())
}

func (a *App) refreshTick() tea.Cmd {
	return tea.Tick(refreshPollInterval, func(time.Time) tea.Msg {
		return refreshTickMsg{}
	})
}

// selectedDAO returns the highlighted DAO, or nil when the list is empty.
func (a *App) selectedDAO() *sdk.DAO {
	visible := a.visibleDAOs()
	if a.daoIdx < 0 || a.daoIdx >= len(visible) {
		return nil
	}
	return &visible[a.daoIdx]
}

// selectedIntent returns the intent current actions apply to: the detail
// intent when open, otherwise the highlighted list entry.
func (a *App) selectedIntent() *sdk.Intent {
	if a.pane == PaneDetail && a.detail != nil {
		return a.detail
	}
	if a.intentIdx < 0 || a.intentIdx >= len(a.intents) {
		return nil
	}
	return &a.intents[a.intentIdx]
}

// visibleDAOs applies the followed-only filter.
func (a *App) visibleDAOs() []sdk.DAO {
	if !a.followedOnly {
		return a.daos
	}
	var out []sdk.DAO
	for _, d := range a.daos {
		if a.prefs.IsFollowed(d.ID) {
			out = append(out, d)
		}
	}
	return out
}

// Update handles messages.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.KeyPressMsg:
		return a.handleKey(msg)

	case refreshTickMsg:
		if cur := a.app.Refresh(); cur != a.lastRefresh {
			a.lastRefresh = cur
			return a, tea.Batch(a.refetch(), a.refreshTick())
		}
		return a, a.refreshTick()

	case daosLoadedMsg:
		a.loading = false
		if msg.err != nil {
			// Fetch failures degrade to an empty list; the dashboard
			// stays usable.
			logger.Warn("Failed to load DAOs: %v", msg.err)
			a.daos = nil
			return a, a.toast.Show(ToastError, "Failed to load DAOs: "+msg.err.Error())
		}
		a.daos = msg.daos
		a.clampSelections()
		// Preselect the last used DAO.
		if a.prefs.LastDAO != "" {
			for i, d := range a.visibleDAOs() {
				if d.ID == a.prefs.LastDAO {
					a.daoIdx = i
					break
				}
			}
		}
		if dao := a.selectedDAO(); dao != nil {
			return a, a.fetchIntents(dao.ID)
		}
		return a, nil

	case intentsLoadedMsg:
		a.loading = false
		if dao := a.selectedDAO(); dao == nil || dao.ID != msg.dao {
			// Stale response for a DAO no longer selected.
			return a, nil
		}
		if msg.err != nil {
			logger.Warn("Failed to load intents: %v", msg.err)
			a.intents = nil
			return a, a.toast.Show(ToastError, "Failed to load intents: "+msg.err.Error())
		}
		a.intents = msg.intents
		a.clampSelections()
		return a, nil

	case detailLoadedMsg:
		a.loading = false
		if msg.err != nil {
			logger.Warn("Failed to load intent detail: %v", msg.err)
			return a, a.toast.Show(ToastError, "Failed to load intent: "+msg.err.Error())
		}
		a.detail = msg.intent
		a.power = msg.power
		a.pane = PaneDetail
		return a, nil

	case actionDoneMsg:
		if msg.err != nil {
			return a, a.toast.Show(ToastError, msg.verb+" failed: "+msg.err.Error())
		}
		link := ""
		if a.app.Config.ExplorerURL != "" {
			link = a.app.Config.ExplorerURL + "/tx/" + msg.digest
		}
		return a, a.toast.ShowLink(ToastSuccess, msg.verb+" submitted", link)
	}

	return a, a.toast.Update(msg)
}

func (a *App) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		a.quitting = true
		return a, tea.Quit

	case "esc":
		switch a.pane {
		case PaneDetail:
			a.pane = PaneIntents
			a.detail = nil
			a.power = nil
		case PaneIntents:
			a.pane = PaneDAOs
		default:
			a.quitting = true
			return a, tea.Quit
		}
		return a, nil

	case "tab":
		if a.pane == PaneDAOs {
			a.pane = PaneIntents
		} else if a.pane == PaneIntents {
			a.pane = PaneDAOs
		}
		return a, nil

	case "up", "k":
		return a, a.moveSelection(-1)

	case "down", "j":
		return a, a.moveSelection(1)

	case "enter":
		switch a.pane {
		case PaneDAOs:
			if dao := a.selectedDAO(); dao != nil {
				a.prefs.LastDAO = dao.ID
				a.pane = PaneIntents
				a.intentIdx = 0
				return a, a.fetchIntents(dao.ID)
			}
		case PaneIntents:
			if it := a.selectedIntent(); it != nil {
				a.loading = true
				return a, a.fetchDetail(it.DAO, it.Key)
			}
		}
		return a, nil

	case "f":
		return a.toggleFollow()

	case "F":
		a.followedOnly = !a.followedOnly
		a.clampSelections()
		return a, nil

	case "y":
		return a.vote(true)

	case "n":
		return a.vote(false)

	case "x":
		return a.executeIntent()

	case "D":
		return a.deleteIntent()

	case "r":
		return a, a.refetch()
	}

	return a, nil
}

func (a *App) moveSelection(delta int) tea.Cmd {
	switch a.pane {
	case PaneDAOs:
		n := len(a.visibleDAOs())
		if n == 0 {
			return nil
		}
		a.daoIdx = clamp(a.daoIdx+delta, 0, n-1)
		if dao := a.selectedDAO(); dao != nil {
			return a.fetchIntents(dao.ID)
		}
	case PaneIntents:
		if len(a.intents) == 0 {
			return nil
		}
		a.intentIdx = clamp(a.intentIdx+delta, 0, len(a.intents)-1)
	}
	return nil
}

func (a *App) clampSelections() {
	if n := len(a.visibleDAOs()); n == 0 {
		a.daoIdx = 0
	} else {
		a.daoIdx = clamp(a.daoIdx, 0, n-1)
	}
	if n := len(a.intents); n == 0 {
		a.intentIdx = 0
	} else {
		a.intentIdx = clamp(a.intentIdx, 0, n-1)
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Data fetching

func (a *App) refetch() tea.Cmd {
	cmds := []tea.Cmd{a.fetchDAOs()}
	if dao := a.selectedDAO(); dao != nil {
		cmds = append(cmds, a.fetchIntents(dao.ID))
		if a.pane == PaneDetail && a.detail != nil {
			cmds = append(cmds, a.fetchDetail(a.detail.DAO, a.detail.Key))
		}
	}
	return tea.Batch(cmds...)
}

func (a *App) fetchDAOs() tea.Cmd {
	client := a.app.Client("")
	ctx := a.ctx
	return func() tea.Msg {
		daos, err := client.ListDAOs(ctx)
		return daosLoadedMsg{daos: daos, err: err}
	}
}

func (a *App) fetchIntents(daoID string) tea.Cmd {
	client := a.app.Client(daoID)
	ctx := a.ctx
	return func() tea.Msg {
		intents, err := client.ListIntents(ctx)
		return intentsLoadedMsg{dao: daoID, intents: intents, err: err}
	}
}

// fetchDetail loads the intent and the caller's voting power concurrently.
// The voting power read is best-effort: the detail view renders without it.
func (a *App) fetchDetail(daoID, key string) tea.Cmd {
	client := a.app.Client(daoID)
	ctx := a.ctx
	return func() tea.Msg {
		var (
			wg     sync.WaitGroup
			intent *sdk.Intent
			power  *sdk.VotingPower
			err    error
		)
		wg.Add(2)
		go func() {
			defer wg.Done()
			intent, err = client.GetIntent(ctx, key)
		}()
		go func() {
			defer wg.Done()
			p, perr := client.VotingPower(ctx)
			if perr != nil {
				logger.Debug("voting power unavailable: %v", perr)
				return
			}
			power = p
		}()
		wg.Wait()
		return detailLoadedMsg{intent: intent, power: power, err: err}
	}
}

// Mutating actions

func (a *App) runAction(verb string, build func(client sdk.Client, tx *sdk.Transaction) error) (tea.Model, tea.Cmd) {
	dao := a.selectedDAO()
	if a.pane == PaneDetail && a.detail != nil {
		dao = &sdk.DAO{ID: a.detail.DAO}
	}
	if dao == nil {
		return a, nil
	}
	if !a.app.Wallet.Connected() {
		return a, a.toast.Show(ToastError, "Wallet not connected")
	}

	client := a.app.Client(dao.ID)
	sender := a.app.Wallet.Account().Address
	tx := sdk.NewTransaction(sender)
	if err := build(client, tx); err != nil {
		return a, a.toast.Show(ToastError, verb+" failed: "+err.Error())
	}

	app := a.app
	ctx := a.ctx
	return a, func() tea.Msg {
		digest, err := submit.RunWith(ctx, app, tx)
		return actionDoneMsg{verb: verb, digest: digest, err: err}
	}
}

func (a *App) vote(approve bool) (tea.Model, tea.Cmd) {
	it := a.selectedIntent()
	if it == nil {
		return a, nil
	}
	if it.Stage != sdk.StageOpen {
		return a, a.toast.Show(ToastError, "Voting is closed for this intent")
	}
	verb := "Vote no"
	if approve {
		verb = "Vote yes"
	}
	return a.runAction(verb, func(client sdk.Client, tx *sdk.Transaction) error {
		return client.Vote(tx, it.Key, approve)
	})
}

func (a *App) executeIntent() (tea.Model, tea.Cmd) {
	it := a.selectedIntent()
	if it == nil {
		return a, nil
	}
	if it.Stage != sdk.StageExecutable {
		return a, a.toast.Show(ToastError, "Intent is not executable")
	}
	return a.runAction("Execute", func(client sdk.Client, tx *sdk.Transaction) error {
		return client.ExecuteIntent(tx, it.Key)
	})
}

func (a *App) deleteIntent() (tea.Model, tea.Cmd) {
	it := a.selectedIntent()
	if it == nil {
		return a, nil
	}
	return a.runAction("Delete", func(client sdk.Client, tx *sdk.Transaction) error {
		return client.DeleteIntent(tx, it.Key)
	})
}

func (a *App) toggleFollow() (tea.Model, tea.Cmd) {
	dao := a.selectedDAO()
	if dao == nil {
		return a, nil
	}

	following := a.prefs.ToggleFollow(dao.ID)
	if err := state.Save(a.dataDir, a.prefs); err != nil {
		logger.Warn("Failed to save prefs: %v", err)
	}

	verb := "Unfollow"
	if following {
		verb = "Follow"
	}
	return a.runAction(verb, func(client sdk.Client, tx *sdk.Transaction) error {
		if following {
			return client.Follow(tx)
		}
		return client.Unfollow(tx)
	})
}

// Rendering

// View renders the dashboard.
func (a *App) View() tea.View {
	var view tea.View
	view.AltScreen = true

	if a.quitting {
		view.AltScreen = false
		view.Content = lipgloss.NewLayer("")
		return view
	}
	if a.width == 0 || a.height == 0 {
		view.Content = lipgloss.NewLayer("")
		return view
	}

	canvas := uv.NewScreenBuffer(a.width, a.height)
	a.draw(canvas)
	view.Content = lipgloss.NewLayer(canvas.Render())
	return view
}

func (a *App) draw(scr uv.Screen) {
	body := a.renderBody()
	content := lipgloss.JoinVertical(lipgloss.Left,
		a.renderHeader(),
		body,
		a.renderFooter(),
	)
	uv.NewStyledString(content).Draw(scr, uv.Rectangle{
		Min: uv.Position{X: 0, Y: 0},
		Max: uv.Position{X: a.width, Y: a.height},
	})

	// Toast draws last so it sits on top of everything.
	if a.toast.IsVisible() {
		toastContent := a.toast.View(a.width, a.height)
		if toastContent != "" {
			uv.NewStyledString(toastContent).Draw(scr, uv.Rectangle{
				Min: uv.Position{X: 0, Y: 0},
				Max: uv.Position{X: a.width, Y: a.height},
			})
		}
	}
}

func (a *App) renderHeader() string {
	title := theme.ApplyGradient("daoterm", theme.Current().Primary, theme.Current().Secondary)

	wallet := "wallet: disconnected"
	if acct := a.app.Wallet.Account(); acct != nil {
		wallet = "wallet: " + shortAddr(acct.Address)
	}

	left := styleHeaderTitle.Render(title)
	right := styleDim.Render(wallet)

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	return styleHeader.Width(a.width).Render(left + strings.Repeat(" ", gap) + right)
}

func (a *App) renderFooter() string {
	var hints []string
	switch a.pane {
	case PaneDAOs:
		hints = []string{"enter open", "f follow", "F followed only", "tab intents", "q quit"}
	case PaneIntents:
		hints = []string{"enter detail", "y/n vote", "x execute", "D delete", "r refresh", "esc back"}
	case PaneDetail:
		hints = []string{"y/n vote", "x execute", "D delete", "esc back"}
	}

	var parts []string
	for _, h := range hints {
		key, label, _ := strings.Cut(h, " ")
		parts = append(parts, styleFooterKey.Render(key)+" "+label)
	}
	return styleFooter.Width(a.width).Render(strings.Join(parts, "  •  "))
}

func (a *App) renderBody() string {
	bodyHeight := a.height - 2
	if bodyHeight < 3 {
		bodyHeight = 3
	}

	if a.pane == PaneDetail {
		return a.renderDetail(a.width, bodyHeight)
	}

	sidebar := a.renderDAOList(DAOSidebarWidth, bodyHeight)
	main := a.renderIntentList(a.width-DAOSidebarWidth, bodyHeight)
	return lipgloss.JoinHorizontal(lipgloss.Top, sidebar, main)
}

func (a *App) renderDAOList(width, height int) string {
	panel := stylePanel
	if a.pane == PaneDAOs {
		panel = stylePanelFocused
	}

	title := styleTitle.Render("DAOs")
	if a.followedOnly {
		title += styleDim.Render(" (followed)")
	}

	lines := []string{title}
	for i, dao := range a.visibleDAOs() {
		marker := "  "
		if a.prefs.IsFollowed(dao.ID) {
			marker = "★ "
		}
		line := marker + dao.Name
		if i == a.daoIdx {
			line = styleSelected.Render(line)
		}
		lines = append(lines, line)
	}
	if len(lines) == 1 {
		lines = append(lines, styleDim.Render("no DAOs"))
	}

	return panel.Width(width - 2).Height(height - 2).Render(strings.Join(lines, "\n"))
}

func (a *App) renderIntentList(width, height int) string {
	panel := stylePanel
	if a.pane == PaneIntents {
		panel = stylePanelFocused
	}

	header := styleTitle.Render("Intents")
	if dao := a.selectedDAO(); dao != nil {
		header += styleDim.Render(" — " + dao.Name)
	}

	lines := []string{header}
	for i, it := range a.intents {
		line := fmt.Sprintf("%s %s  %s", StageBadge(it.Stage), it.Title,
			styleDim.Render(fmt.Sprintf("✓%d ✗%d", it.YesVotes, it.NoVotes)))
		if i == a.intentIdx {
			line = styleSelected.Render(fmt.Sprintf("[%s] %s  ✓%d ✗%d", it.Stage, it.Title, it.YesVotes, it.NoVotes))
		}
		lines = append(lines, line)
	}
	if len(lines) == 1 {
		lines = append(lines, styleDim.Render("no intents"))
	}
	if a.loading {
		lines = append(lines, "", styleDim.Render("loading…"))
	}

	return panel.Width(width - 2).Height(height - 2).Render(strings.Join(lines, "\n"))
}

func (a *App) renderDetail(width, height int) string {
	it := a.detail
	if it == nil {
		return stylePanel.Width(width - 2).Height(height - 2).Render(styleDim.Render("loading…"))
	}

	innerWidth := width - 6

	lines := []string{
		styleTitle.Render(it.Title) + "  " + StageBadge(it.Stage),
		styleDim.Render("key: " + it.Key + "  creator: " + shortAddr(it.Creator)),
		"",
		fmt.Sprintf("votes: %s %d  %s %d",
			stageStyles[sdk.StageSuccess].Render("✓"), it.YesVotes,
			styleErrorText.Render("✗"), it.NoVotes),
		styleDim.Render("voting: " + formatWindow(it.VotingStartMS, it.VotingEndMS)),
		styleDim.Render("expires: " + formatMS(it.ExpirationMS)),
	}

	if a.power != nil {
		power := fmt.Sprintf("your power: %d (staked %d)", a.power.Power, a.power.Staked)
		if a.power.Quadratic {
			power += " quadratic"
		}
		lines = append(lines, styleDim.Render(power))
	}

	if it.Description != "" {
		lines = append(lines, "", RenderMarkdown(it.Description, innerWidth))
	}

	return stylePanelFocused.Width(width - 2).Height(height - 2).Render(strings.Join(lines, "\n"))
}

func shortAddr(addr string) string {
	if len(addr) <= 12 {
		return addr
	}
	return addr[:8] + "…" + addr[len(addr)-4:]
}

func formatMS(ms int64) string {
	t := sdk.MSToTime(ms)
	if t.IsZero() {
		return "—"
	}
	return t.Format("2006-01-02 15:04")
}

func formatWindow(startMS, endMS int64) string {
	return formatMS(startMS) + " → " + formatMS(endMS)
}
