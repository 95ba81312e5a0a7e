package actions_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"stacky.dev/stacky/internal/actions"
	"stacky.dev/stacky/internal/config"
	"stacky.dev/stacky/internal/engine"
	stackyerrors "stacky.dev/stacky/internal/errors"
	"stacky.dev/stacky/internal/github"
	"stacky.dev/stacky/testhelpers"
	"stacky.dev/stacky/testhelpers/scenario"
)

func testPR(number int, head, base, title string) testhelpers.SamplePRData {
	return testhelpers.SamplePRData{Number: number, Head: head, Base: base, Title: title}
}

// newRemoteScenario has an origin remote holding main and a mock GitHub
func newRemoteScenario(t *testing.T) *scenario.Scenario {
	t.Helper()
	s := scenario.NewScenario(t).WithGitHub()
	_, err := s.Repo.CreateBareRemote("origin")
	require.NoError(t, err)
	return s.RunGit("push", "-q", "origin", "main")
}

func TestPushAction(t *testing.T) {
	t.Run("pushes and opens PRs against the parents", func(t *testing.T) {
		s := newRemoteScenario(t).WithStack("a", "b")

		s.MustRun(actions.Push{Scope: engine.ScopeStack, Force: true})

		require.Equal(t, []string{"Push origin a true", "Push origin b true"}, s.Recorder.CallsTo("Push"))
		require.Equal(t, s.Rev("a"), s.Rev("origin/a"))
		require.Len(t, s.GitHub.CreatedPRs, 2)
		require.Equal(t, "a", s.GitHub.CreatedPRs[0].GetHead().GetRef())
		require.Equal(t, "main", s.GitHub.CreatedPRs[0].GetBase().GetRef())
		require.Equal(t, "a", s.GitHub.CreatedPRs[0].GetTitle())
		require.Equal(t, "b", s.GitHub.CreatedPRs[1].GetHead().GetRef())
		require.Equal(t, "a", s.GitHub.CreatedPRs[1].GetBase().GetRef())

		body := s.GitHub.PR(1).GetBody()
		require.Contains(t, body, github.StackSectionStart)
		require.Contains(t, body, "- #1 👈\n  - #2\n")
		require.Contains(t, s.GitHub.PR(2).GetBody(), "- #1\n  - #2 👈\n")

		s.MustRun(actions.Push{Scope: engine.ScopeStack, Force: true})
		require.Empty(t, s.Recorder.CallsTo("Push"))
		require.Len(t, s.GitHub.CreatedPRs, 2)
		require.Equal(t, body, s.GitHub.PR(1).GetBody())
	})

	t.Run("fixes the base of an open PR", func(t *testing.T) {
		s := newRemoteScenario(t).WithStack("a", "b")
		s.GitHub.AddPR(testPR(5, "b", "main", "B"))

		s.MustRun(actions.Push{Scope: engine.ScopeStack, Force: true})

		require.Equal(t, "a", s.GitHub.PR(5).GetBase().GetRef())
		require.Len(t, s.GitHub.CreatedPRs, 1)
	})

	t.Run("leaves bodies alone without stack comments", func(t *testing.T) {
		s := newRemoteScenario(t).
			WithSettings(func(st *config.Settings) { st.UI.EnableStackComment = false }).
			WithStack("a")

		s.MustRun(actions.Push{Scope: engine.ScopeStack, Force: true})

		require.Len(t, s.GitHub.CreatedPRs, 1)
		require.Empty(t, s.GitHub.PR(1).GetBody())
	})

	t.Run("refuses a branch behind its parent", func(t *testing.T) {
		s := newRemoteScenario(t).
			WithStack("a").
			CommitOn("main", "main.txt", "c2\n", "advance main").
			Checkout("a")

		err := s.Run(actions.Push{Scope: engine.ScopeStack, Force: true})
		require.ErrorIs(t, err, stackyerrors.ErrUser)
		require.Contains(t, err.Error(), "sync first")
		require.Empty(t, s.Recorder.Calls())
	})

	t.Run("pushes without touching PRs", func(t *testing.T) {
		s := newRemoteScenario(t).WithStack("a", "b")
		s.GitHub.AddPR(testPR(5, "b", "main", "B"))

		s.MustRun(actions.Push{Scope: engine.ScopeStack, Force: true, NoPR: true})

		require.Equal(t, []string{"Push origin a true", "Push origin b true"}, s.Recorder.CallsTo("Push"))
		require.Empty(t, s.GitHub.CreatedPRs)
		require.Empty(t, s.GitHub.UpdatedPRs)
		require.Zero(t, s.GitHub.ListCalls)
	})

	t.Run("asks before pushing", func(t *testing.T) {
		s := newRemoteScenario(t).WithStack("a")

		err := s.Run(actions.Push{Scope: engine.ScopeStack})
		require.ErrorIs(t, err, stackyerrors.ErrUser)
		require.Empty(t, s.Recorder.CallsTo("Push"))

		s.WithSettings(func(st *config.Settings) { st.UI.SkipConfirm = true }).
			MustRun(actions.Push{Scope: engine.ScopeStack})
		require.Len(t, s.Recorder.CallsTo("Push"), 1)
	})
}

func TestStackSection(t *testing.T) {
	g := engine.NewGraph()
	for _, n := range []*engine.BranchNode{
		engine.NewBranchNode("a", "", ""),
		engine.NewBranchNode("b", "a", "a1"),
		engine.NewBranchNode("c", "b", "b1"),
		engine.NewBranchNode("d", "a", "a1"),
	} {
		_, err := g.Add(n)
		require.NoError(t, err)
	}
	forest := engine.Forest{g.SubTree(mustNode(t, g, "a"))}

	expected := "**Stack**:\n- `a`\n  - `b`\n    - `c` 👈\n  - `d`\n"
	require.Equal(t, expected, actions.StackSection(forest, "c"))
}

func mustNode(t *testing.T, g *engine.Graph, name string) *engine.BranchNode {
	t.Helper()
	n, err := g.Node(name)
	require.NoError(t, err)
	return n
}
