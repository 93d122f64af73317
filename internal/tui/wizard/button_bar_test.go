package wizard

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestButtonBar_FocusSkipsDisabled(t *testing.T) {
	bar := NewButtonBar(CreateBackNextButtons(false, true, "Next →"))

	bar.FocusFirst()
	require.Equal(t, ButtonNext, bar.FocusedButton(), "disabled Back is skipped")

	require.False(t, bar.FocusNext(), "no button after Next")
	require.False(t, bar.FocusPrev(), "no enabled button before Next")
}

func TestButtonBar_DisablingFocusedButtonDropsFocus(t *testing.T) {
	bar := NewButtonBar(CreateBackNextButtons(true, true, "Next →"))
	bar.FocusLast()
	require.Equal(t, ButtonNext, bar.FocusedButton())

	bar.SetEnabled(ButtonNext, false)
	require.Equal(t, ButtonID(-1), bar.FocusedButton())
	require.False(t, bar.Enabled(ButtonNext))
}

func TestButtonBar_ReenableRestoresNormalState(t *testing.T) {
	bar := NewButtonBar(CreateBackNextButtons(true, false, "Submit"))
	require.False(t, bar.Enabled(ButtonNext))

	bar.SetEnabled(ButtonNext, true)
	require.True(t, bar.Enabled(ButtonNext))

	bar.FocusFirst()
	require.True(t, bar.FocusNext())
	require.Equal(t, ButtonNext, bar.FocusedButton())
}
