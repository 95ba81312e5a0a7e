package tui

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEditText(t *testing.T) {
	t.Run("returns what the editor saved", func(t *testing.T) {
		t.Setenv("GIT_EDITOR", "")
		t.Setenv("EDITOR", `sed -i -e "s/old/new/"`)

		edited, err := EditText("old body\n", "pr-*.md")
		require.NoError(t, err)
		require.Equal(t, "new body\n", edited)
	})

	t.Run("prefers GIT_EDITOR", func(t *testing.T) {
		t.Setenv("GIT_EDITOR", "true")
		t.Setenv("EDITOR", "false")

		require.Equal(t, "true", EditorCommand())
		edited, err := EditText("unchanged", "pr-*.md")
		require.NoError(t, err)
		require.Equal(t, "unchanged", edited)
	})

	t.Run("fails when the editor fails", func(t *testing.T) {
		t.Setenv("GIT_EDITOR", "false")

		_, err := EditText("body", "pr-*.md")
		require.ErrorContains(t, err, "editor exited with error")
	})
}
