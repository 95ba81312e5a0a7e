package tui_test

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"stacky.dev/stacky/internal/tui"
)

func press(m tea.Model, msg tea.KeyMsg) (tui.PickerModel, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(tui.PickerModel), cmd
}

func TestPickerModel(t *testing.T) {
	options := []tui.PickerOption{
		{Label: "c", Value: "c"},
		{Label: "b", Value: "b"},
		{Label: "a", Value: "a"},
	}

	t.Run("moves and wraps", func(t *testing.T) {
		m := tui.NewPickerModel("Checkout a branch", options, 1)
		require.Equal(t, 1, m.Cursor())

		m, _ = press(m, tea.KeyMsg{Type: tea.KeyDown})
		require.Equal(t, 2, m.Cursor())
		m, _ = press(m, tea.KeyMsg{Type: tea.KeyDown})
		require.Equal(t, 0, m.Cursor())
		m, _ = press(m, tea.KeyMsg{Type: tea.KeyUp})
		require.Equal(t, 2, m.Cursor())
		m, _ = press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("k")})
		require.Equal(t, 1, m.Cursor())
	})

	t.Run("enter selects", func(t *testing.T) {
		m := tui.NewPickerModel("Checkout a branch", options, 2)
		require.Contains(t, m.View(), "a")

		m, cmd := press(m, tea.KeyMsg{Type: tea.KeyEnter})
		require.NotNil(t, cmd)
		require.Equal(t, "a", m.Selected())
		require.False(t, m.Canceled())
		require.Empty(t, m.View())
	})

	t.Run("escape cancels", func(t *testing.T) {
		m := tui.NewPickerModel("Checkout a branch", options, 0)
		m, cmd := press(m, tea.KeyMsg{Type: tea.KeyEsc})
		require.NotNil(t, cmd)
		require.True(t, m.Canceled())
		require.Empty(t, m.Selected())
	})

	t.Run("out of range cursor starts at the top", func(t *testing.T) {
		require.Equal(t, 0, tui.NewPickerModel("x", options, 9).Cursor())
	})
}
