package tui_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"stacky.dev/stacky/internal/tui"
)

func TestSplog(t *testing.T) {
	t.Run("writes prefixed messages to the console", func(t *testing.T) {
		var buf bytes.Buffer
		splog := tui.NewSplogWithWriter(&buf)

		splog.Info("Syncing %s", "feature")
		splog.Warn("Broken stack: %s", "a -> b")
		splog.Error("boom")
		splog.Newline()

		require.Equal(t, "Syncing feature\n⚠️  Broken stack: a -> b\n❌ boom\n\n", buf.String())
	})

	t.Run("quiet mode suppresses output", func(t *testing.T) {
		var buf bytes.Buffer
		splog := tui.NewSplogWithWriter(&buf)
		splog.SetQuiet(true)
		splog.Info("hidden")
		splog.Print("hidden")
		require.Empty(t, buf.String())
	})

	t.Run("debug only with DEBUG set", func(t *testing.T) {
		t.Setenv("DEBUG", "")
		var buf bytes.Buffer
		tui.NewSplogWithWriter(&buf).Debug("hidden")
		require.Empty(t, buf.String())

		t.Setenv("DEBUG", "1")
		tui.NewSplogWithWriter(&buf).Debug("shown")
		require.Equal(t, "shown\n", buf.String())
	})

	t.Run("file logging", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "logs", "stacky.log")
		splog, err := tui.NewSplogWithConfig(path)
		require.NoError(t, err)
		splog.SetQuiet(true)
		splog.Debug("written to file")
		require.NoError(t, splog.Close())

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		require.Contains(t, string(data), "written to file")
	})

	t.Run("log file path honours STACKY_LOG_FILE", func(t *testing.T) {
		t.Setenv("STACKY_LOG_FILE", "/tmp/custom.log")
		require.Equal(t, "/tmp/custom.log", tui.GetLogFilePath())
	})
}
