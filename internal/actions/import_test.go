package actions_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"stacky.dev/stacky/internal/actions"
	stackyerrors "stacky.dev/stacky/internal/errors"
	"stacky.dev/stacky/testhelpers"
	"stacky.dev/stacky/testhelpers/scenario"
)

// newUnstackedScenario has x on main and y on x, with no stack markers
func newUnstackedScenario(t *testing.T) *scenario.Scenario {
	t.Helper()
	return scenario.NewScenario(t).WithGitHub().
		RunGit("checkout", "-q", "-b", "x").
		CommitOn("x", "x.txt", "x\n", "change on x").
		RunGit("checkout", "-q", "-b", "y").
		CommitOn("y", "y.txt", "y\n", "change on y").
		CommitOn("y", "y2.txt", "y2\n", "more y")
}

func TestImportAction(t *testing.T) {
	t.Run("stacks branches along their PR bases", func(t *testing.T) {
		s := newUnstackedScenario(t)
		s.GitHub.AddPR(testhelpers.SamplePRData{Number: 1, Head: "x", Base: "main", Commits: []string{s.Rev("x")}})
		s.GitHub.AddPR(testhelpers.SamplePRData{Number: 2, Head: "y", Base: "x", Commits: []string{s.Rev("y^"), s.Rev("y")}})

		s.MustRun(actions.Import{Name: "y", Force: true})

		s.ExpectSynced("x", "main").ExpectSynced("y", "x")
		s.ExpectOutputContains("Will set parent of x to main", "Will set parent of y to x")
		require.True(t, s.Context.Graph.Contains("y"))
		require.Equal(t, []string{
			"SetParentBranch x main",
			"SetParentCommit x " + s.Rev("main"),
			"SetParentBranch y x",
			"SetParentCommit y " + s.Rev("x"),
		}, s.Recorder.Calls())
	})

	t.Run("refuses a branch without an open PR", func(t *testing.T) {
		s := newUnstackedScenario(t)
		s.GitHub.AddPR(testhelpers.SamplePRData{Number: 1, Head: "x", Base: "main", Commits: []string{s.Rev("x")}})

		err := s.Run(actions.Import{Name: "y", Force: true})
		require.ErrorIs(t, err, stackyerrors.ErrUser)
		require.EqualError(t, err, "Branch y has no open PR")
		require.Empty(t, s.Recorder.Calls())
	})

	t.Run("refuses a PR without commits", func(t *testing.T) {
		s := newUnstackedScenario(t)
		s.GitHub.AddPR(testhelpers.SamplePRData{Number: 4, Head: "y", Base: "main"})

		err := s.Run(actions.Import{Name: "y", Force: true})
		require.ErrorIs(t, err, stackyerrors.ErrUser)
		require.EqualError(t, err, "PR #4 has no commits")
	})

	t.Run("refuses bases that form a cycle", func(t *testing.T) {
		s := newUnstackedScenario(t)
		s.GitHub.AddPR(testhelpers.SamplePRData{Number: 1, Head: "x", Base: "y", Commits: []string{s.Rev("x")}})
		s.GitHub.AddPR(testhelpers.SamplePRData{Number: 2, Head: "y", Base: "x", Commits: []string{s.Rev("y")}})

		err := s.Run(actions.Import{Name: "y", Force: true})
		require.ErrorIs(t, err, stackyerrors.ErrUser)
		require.Contains(t, err.Error(), "cycle")
		require.Empty(t, s.Recorder.Calls())
	})

	t.Run("asks before writing markers", func(t *testing.T) {
		s := newUnstackedScenario(t)
		s.GitHub.AddPR(testhelpers.SamplePRData{Number: 1, Head: "x", Base: "main", Commits: []string{s.Rev("x")}})

		err := s.Run(actions.Import{Name: "x"})
		require.ErrorIs(t, err, stackyerrors.ErrUser)
		require.Empty(t, s.Recorder.Calls())
	})
}
