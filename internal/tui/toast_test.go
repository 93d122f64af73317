package tui

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestToast_ShowAndDismiss(t *testing.T) {
	toast := NewToast()
	require.False(t, toast.IsVisible())

	cmd := toast.Show(ToastSuccess, "Vote submitted")
	require.NotNil(t, cmd)
	require.True(t, toast.IsVisible())
	require.Equal(t, "Vote submitted", toast.GetMessage())

	toast.Update(ToastDismissMsg{})
	require.False(t, toast.IsVisible())
	require.Empty(t, toast.GetMessage())
}

func TestToast_ViewIncludesLink(t *testing.T) {
	toast := NewToast()
	toast.ShowLink(ToastSuccess, "Execute submitted", "https://explorer.test/tx/0xabc")

	view := toast.View(120, 40)
	require.Contains(t, view, "Execute submitted")
	require.Contains(t, view, "https://explorer.test/tx/0xabc")
}

func TestToast_HiddenViewIsEmpty(t *testing.T) {
	toast := NewToast()
	require.Empty(t, toast.View(120, 40))
}
