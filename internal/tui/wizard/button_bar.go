package wizard

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/daoterm/daoterm/internal/tui/theme"
)

// ButtonID identifies a button's action.
type ButtonID int

const (
	ButtonBack ButtonID = iota
	ButtonNext
	ButtonCancel
)

// ButtonState represents the visual state of a button.
type ButtonState int

const (
	ButtonNormal   ButtonState = iota // Normal state (enabled)
	ButtonDisabled                    // Disabled state (grayed out)
	ButtonFocused                     // Focused/highlighted state
)

// Button represents a single button in the button bar.
type Button struct {
	ID    ButtonID
	Label string
	State ButtonState
}

// ButtonBar manages a set of buttons with focus tracking.
type ButtonBar struct {
	buttons []Button
	focused int // Index of focused button, -1 when unfocused
	width   int
}

// NewButtonBar creates a new button bar with the given buttons.
func NewButtonBar(buttons []Button) *ButtonBar {
	return &ButtonBar{
		buttons: buttons,
		focused: -1,
		width:   60,
	}
}

// SetWidth updates the width for the button bar.
func (b *ButtonBar) SetWidth(width int) {
	b.width = width
}

// SetEnabled updates whether the button with the given ID is enabled.
// A focused button that becomes disabled loses focus.
func (b *ButtonBar) SetEnabled(id ButtonID, enabled bool) {
	for i := range b.buttons {
		if b.buttons[i].ID != id {
			continue
		}
		if enabled {
			if b.buttons[i].State == ButtonDisabled {
				b.buttons[i].State = ButtonNormal
			}
		} else {
			b.buttons[i].State = ButtonDisabled
			if b.focused == i {
				b.focused = -1
			}
		}
	}
}

// Enabled reports whether the button with the given ID is enabled.
func (b *ButtonBar) Enabled(id ButtonID) bool {
	for _, btn := range b.buttons {
		if btn.ID == id {
			return btn.State != ButtonDisabled
		}
	}
	return false
}

// FocusFirst focuses the first enabled button.
func (b *ButtonBar) FocusFirst() {
	for i, btn := range b.buttons {
		if btn.State != ButtonDisabled {
			b.setFocus(i)
			return
		}
	}
}

// FocusLast focuses the last enabled button.
func (b *ButtonBar) FocusLast() {
	for i := len(b.buttons) - 1; i >= 0; i-- {
		if b.buttons[i].State != ButtonDisabled {
			b.setFocus(i)
			return
		}
	}
}

// FocusNext moves focus to the next enabled button.
// Returns false when focus moved past the last button.
func (b *ButtonBar) FocusNext() bool {
	for i := b.focused + 1; i < len(b.buttons); i++ {
		if b.buttons[i].State != ButtonDisabled {
			b.setFocus(i)
			return true
		}
	}
	return false
}

// FocusPrev moves focus to the previous enabled button.
// Returns false when focus moved before the first button.
func (b *ButtonBar) FocusPrev() bool {
	for i := b.focused - 1; i >= 0; i-- {
		if b.buttons[i].State != ButtonDisabled {
			b.setFocus(i)
			return true
		}
	}
	return false
}

// FocusedButton returns the ID of the focused button, or -1 if none.
func (b *ButtonBar) FocusedButton() ButtonID {
	if b.focused < 0 || b.focused >= len(b.buttons) {
		return -1
	}
	return b.buttons[b.focused].ID
}

// Blur removes focus from all buttons.
func (b *ButtonBar) Blur() {
	b.focused = -1
	for i := range b.buttons {
		if b.buttons[i].State == ButtonFocused {
			b.buttons[i].State = ButtonNormal
		}
	}
}

func (b *ButtonBar) setFocus(idx int) {
	for i := range b.buttons {
		if b.buttons[i].State == ButtonFocused {
			b.buttons[i].State = ButtonNormal
		}
	}
	b.buttons[idx].State = ButtonFocused
	b.focused = idx
}

// Render renders the button bar with proper spacing and styling.
func (b *ButtonBar) Render() string {
	if len(b.buttons) == 0 {
		return ""
	}

	th := theme.Current()

	normalStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(th.FgBase)).
		Background(lipgloss.Color(th.BgSurface0)).
		Padding(0, 2).
		MarginLeft(1).
		MarginRight(1)

	disabledStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(th.FgMuted)).
		Background(lipgloss.Color(th.BgMantle)).
		Padding(0, 2).
		MarginLeft(1).
		MarginRight(1)

	focusedStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(th.BgBase)).
		Background(lipgloss.Color(th.FgBright)).
		Bold(true).
		Padding(0, 2).
		MarginLeft(1).
		MarginRight(1)

	var renderedButtons []string
	for _, btn := range b.buttons {
		var rendered string
		switch btn.State {
		case ButtonDisabled:
			rendered = disabledStyle.Render(btn.Label)
		case ButtonFocused:
			rendered = focusedStyle.Render(btn.Label)
		default: // ButtonNormal
			rendered = normalStyle.Render(btn.Label)
		}
		renderedButtons = append(renderedButtons, rendered)
	}

	result := strings.Join(renderedButtons, "")

	// Center the button bar
	return lipgloss.Place(b.width, 1, lipgloss.Center, lipgloss.Center, result)
}

// CreateBackNextButtons creates the standard Back/Next button set.
// backEnabled: whether Back button is enabled
// nextEnabled: whether Next button is enabled (false if step invalid)
// nextLabel: custom label for next button (e.g., "Next →", "Submit")
func CreateBackNextButtons(backEnabled, nextEnabled bool, nextLabel string) []Button {
	buttons := make([]Button, 0, 2)

	backState := ButtonNormal
	if !backEnabled {
		backState = ButtonDisabled
	}
	buttons = append(buttons, Button{
		ID:    ButtonBack,
		Label: "← Back",
		State: backState,
	})

	nextState := ButtonNormal
	if !nextEnabled {
		nextState = ButtonDisabled
	}
	buttons = append(buttons, Button{
		ID:    ButtonNext,
		Label: nextLabel,
		State: nextState,
	})

	return buttons
}
