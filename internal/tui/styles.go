package tui

import (
	"charm.land/lipgloss/v2"

	"github.com/daoterm/daoterm/internal/sdk"
)

// Color palette, Catppuccin Mocha. Mirrors the theme package for the
// package-level styles below.
var (
	colorBase     = lipgloss.Color("#1e1e2e") // Main application background
	colorMantle   = lipgloss.Color("#181825") // Header/footer backgrounds
	colorSurface0 = lipgloss.Color("#313244") // Layered panels, cards
	colorSurface1 = lipgloss.Color("#45475a")
	colorOverlay0 = lipgloss.Color("#6c7086") // Muted elements

	colorSubtext0   = lipgloss.Color("#a6adc8") // Muted text
	colorText       = lipgloss.Color("#cdd6f4") // Primary text
	colorTextBright = lipgloss.Color("#f5e0dc") // Emphasized text, titles

	colorPrimary   = lipgloss.Color("#cba6f7") // Mauve (brand, focused)
	colorSecondary = lipgloss.Color("#89b4fa") // Blue (links, actions)

	colorSuccess = lipgloss.Color("#a6e3a1")
	colorWarning = lipgloss.Color("#f9e2af")
	colorError   = lipgloss.Color("#f38ba8")
	colorInfo    = lipgloss.Color("#89dceb")
)

// Style definitions
var (
	styleHeader = lipgloss.NewStyle().
			Foreground(colorTextBright).
			Background(colorMantle).
			Bold(true).
			Padding(0, 1)

	styleHeaderTitle = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true)

	styleFooter = lipgloss.NewStyle().
			Foreground(colorText).
			Background(colorMantle).
			Padding(0, 1)

	styleFooterKey = lipgloss.NewStyle().
			Foreground(colorSecondary).
			Bold(true)

	styleTitle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	styleDim = lipgloss.NewStyle().
			Foreground(colorSubtext0)

	styleSelected = lipgloss.NewStyle().
			Foreground(colorBase).
			Background(colorPrimary).
			Bold(true)

	stylePanel = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorOverlay0).
			Padding(0, 1)

	stylePanelFocused = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorPrimary).
				Padding(0, 1)

	styleErrorText = lipgloss.NewStyle().
			Foreground(colorError).
			Bold(true)
)

// Stage badge styles keyed by lifecycle stage.
var stageStyles = map[sdk.Stage]lipgloss.Style{
	sdk.StagePending:    lipgloss.NewStyle().Foreground(colorSubtext0),
	sdk.StageOpen:       lipgloss.NewStyle().Foreground(colorInfo),
	sdk.StageClosed:     lipgloss.NewStyle().Foreground(colorOverlay0),
	sdk.StageFailed:     lipgloss.NewStyle().Foreground(colorError),
	sdk.StageSuccess:    lipgloss.NewStyle().Foreground(colorSuccess),
	sdk.StageExecutable: lipgloss.NewStyle().Foreground(colorWarning).Bold(true),
}

// StageBadge renders an intent stage as a colored badge.
func StageBadge(stage sdk.Stage) string {
	style, ok := stageStyles[stage]
	if !ok {
		style = styleDim
	}
	return style.Render("[" + string(stage) + "]")
}
