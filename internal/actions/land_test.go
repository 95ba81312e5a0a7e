package actions_test

import (
	"testing"

	gogithub "github.com/google/go-github/v62/github"
	"github.com/stretchr/testify/require"

	"stacky.dev/stacky/internal/actions"
	stackyerrors "stacky.dev/stacky/internal/errors"
	"stacky.dev/stacky/testhelpers"
	"stacky.dev/stacky/testhelpers/scenario"
)

// newLandScenario has the stack a <- b with a pushed and an open PR #3 for a
func newLandScenario(t *testing.T, mergeable bool) *scenario.Scenario {
	t.Helper()
	s := newRemoteScenario(t).WithStack("a", "b").RunGit("push", "-q", "origin", "a")
	s.GitHub.AddPR(testhelpers.SamplePRData{
		Number:    3,
		Head:      "a",
		Base:      "main",
		Title:     "Add a",
		HeadSHA:   s.Rev("a"),
		Mergeable: gogithub.Bool(mergeable),
	})
	return s
}

func TestLandAction(t *testing.T) {
	t.Run("merges the PR of the bottom-most branch", func(t *testing.T) {
		s := newLandScenario(t, true)

		s.MustRun(actions.Land{Force: true})

		require.Equal(t, []int{3}, s.GitHub.MergedPRs)
		require.Empty(t, s.Recorder.Calls())
		s.ExpectBranch("b").ExpectOutputContains(
			"only lands the bottom-most branch a",
			"Will land PR #3 (https://github.com/owner/repo/pull/3) for branch a into branch main",
			"Run `stacky update`",
		)
	})

	t.Run("refuses a bottom", func(t *testing.T) {
		s := newLandScenario(t, true).Checkout("main")

		err := s.Run(actions.Land{Force: true})
		require.ErrorIs(t, err, stackyerrors.ErrUser)
		require.EqualError(t, err, "May not land main")
		require.Empty(t, s.GitHub.MergedPRs)
	})

	t.Run("refuses a PR that is not mergeable", func(t *testing.T) {
		s := newLandScenario(t, false)

		err := s.Run(actions.Land{Force: true})
		require.ErrorIs(t, err, stackyerrors.ErrUser)
		require.Contains(t, err.Error(), "PR #3 for branch a is not mergeable: CONFLICTING")
		require.Empty(t, s.GitHub.MergedPRs)
	})

	t.Run("refuses local changes that were not pushed", func(t *testing.T) {
		s := newLandScenario(t, true).CommitOn("a", "a2.txt", "a2\n", "more a")

		err := s.Run(actions.Land{Force: true})
		require.ErrorIs(t, err, stackyerrors.ErrUser)
		require.Contains(t, err.Error(), "push local changes before landing")
	})

	t.Run("refuses a branch behind its parent", func(t *testing.T) {
		s := newLandScenario(t, true).
			CommitOn("main", "main.txt", "c2\n", "advance main").
			Checkout("a")

		err := s.Run(actions.Land{Force: true})
		require.ErrorIs(t, err, stackyerrors.ErrUser)
		require.Contains(t, err.Error(), "sync before landing")
	})

	t.Run("refuses a branch without an open PR", func(t *testing.T) {
		s := newRemoteScenario(t).WithStack("a").RunGit("push", "-q", "origin", "a")

		err := s.Run(actions.Land{Force: true})
		require.ErrorIs(t, err, stackyerrors.ErrUser)
		require.EqualError(t, err, "Branch a does not have an open PR")
	})

	t.Run("asks before merging", func(t *testing.T) {
		s := newLandScenario(t, true)

		err := s.Run(actions.Land{})
		require.ErrorIs(t, err, stackyerrors.ErrUser)
		require.Empty(t, s.GitHub.MergedPRs)
	})
}
