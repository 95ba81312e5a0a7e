package tui_test

import (
	"context"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"

	"stacky.dev/stacky/internal/engine"
	"stacky.dev/stacky/internal/tui"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

type staticLister map[string][]engine.PRInfo

func (s staticLister) ListPullRequests(_ context.Context, branch string) ([]engine.PRInfo, error) {
	return s[branch], nil
}

func renderGraph(t *testing.T) *engine.Graph {
	t.Helper()
	g := engine.NewGraph()
	add := func(name, parent, parentCommit, tip, remoteTip string) {
		n := engine.NewBranchNode(name, parent, parentCommit)
		n.Tip = tip
		n.RemoteTip = remoteTip
		_, err := g.Add(n)
		require.NoError(t, err)
	}
	add("main", "", "", "m1", "m1")
	add("a", "main", "m1", "a1", "a1")
	add("b", "a", "a1", "b1", "b1")
	add("c", "b", "b0", "c1", "c1")
	add("d", "a", "a1", "d1", "")
	return g
}

func TestTreeRenderer(t *testing.T) {
	t.Run("renders upside down with status markers", func(t *testing.T) {
		g := renderGraph(t)
		r := tui.NewTreeRenderer(g, "b")

		expected := strings.Join([]string{
			"    ┌── ~ d",
			"    │   ┌── ! c",
			"    ├── * b",
			"┌── a",
			"main",
		}, "\n")
		require.Equal(t, expected, r.Render(g.AllStacks()))
	})

	t.Run("separates trees with a blank line", func(t *testing.T) {
		g := renderGraph(t)
		require.NoError(t, g.Reparent("d", ""))
		r := tui.NewTreeRenderer(g, "")

		out := r.Render(g.AllStacks())
		require.True(t, strings.HasPrefix(out, "~ d\n\n"), out)
		require.True(t, strings.HasSuffix(out, "\nmain"), out)
	})

	t.Run("shows the open PR", func(t *testing.T) {
		g := renderGraph(t)
		a, _ := g.Get("a")
		lister := staticLister{"a": {{Number: 7, State: engine.PROpen, Title: "Add a"}}}
		require.NoError(t, engine.LoadPRInfo(context.Background(), a, lister))

		r := tui.NewTreeRenderer(g, "")
		require.Equal(t, "a (#7 Add a)", r.FormatName(a))

		r.CompactPR = true
		require.Equal(t, "a (#7)", r.FormatName(a))
	})
}
