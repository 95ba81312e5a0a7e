package actions_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"stacky.dev/stacky/internal/actions"
	"stacky.dev/stacky/internal/engine"
	stackyerrors "stacky.dev/stacky/internal/errors"
	"stacky.dev/stacky/internal/git"
	"stacky.dev/stacky/testhelpers/scenario"
)

func TestBranchNewAction(t *testing.T) {
	t.Run("creates a branch on top of the current one", func(t *testing.T) {
		s := scenario.NewScenario(t).WithStack("a")

		s.MustRun(actions.BranchNew{Name: "b"})

		s.ExpectBranch("b").ExpectSynced("b", "a")
		require.Equal(t, s.Rev("a"), s.Rev("b"))
		n, err := s.Context.Graph.Node("b")
		require.NoError(t, err)
		require.Equal(t, "a", n.Parent)
	})

	t.Run("creates a branch on a bottom", func(t *testing.T) {
		s := scenario.NewScenario(t)

		s.MustRun(actions.BranchNew{Name: "a"})

		s.ExpectBranch("a").ExpectSynced("a", "main")
	})

	t.Run("refuses an existing branch", func(t *testing.T) {
		s := scenario.NewScenario(t).WithStack("a").Checkout("main")

		err := s.Run(actions.BranchNew{Name: "a"})
		require.ErrorIs(t, err, stackyerrors.ErrUser)
		require.Empty(t, s.Recorder.Calls())
	})

	t.Run("refuses an invalid name", func(t *testing.T) {
		s := scenario.NewScenario(t)

		err := s.Run(actions.BranchNew{Name: "my branch"})
		require.ErrorIs(t, err, stackyerrors.ErrUser)
		require.Contains(t, err.Error(), `try "my-branch"`)
		require.Empty(t, s.Recorder.Calls())
	})
}

func TestBranchCheckoutAction(t *testing.T) {
	t.Run("checks out a named branch", func(t *testing.T) {
		s := scenario.NewScenario(t).WithStack("a", "b")

		s.MustRun(actions.BranchCheckout{Name: "a"})

		s.ExpectBranch("a")
		require.Equal(t, "a", s.Context.Session.CurrentBranch())
	})

	t.Run("needs a terminal for the picker", func(t *testing.T) {
		s := scenario.NewScenario(t).WithStack("a")

		err := s.Run(actions.BranchCheckout{})
		require.ErrorIs(t, err, stackyerrors.ErrUser)
		s.ExpectBranch("a")
	})
}

func TestBranchCommitAction(t *testing.T) {
	t.Run("commits on a new branch", func(t *testing.T) {
		s := scenario.NewScenario(t).WithStack("a")
		require.NoError(t, s.Repo.WriteFile("b.txt", "b\n"))

		s.MustRun(actions.BranchCommit{Name: "b", Message: "add b"})

		s.ExpectBranch("b").ExpectSynced("b", "a")
		require.Equal(t, []string{"add b"}, s.Subjects("a", "b"))
	})

	t.Run("adds tracked changes", func(t *testing.T) {
		s := scenario.NewScenario(t).WithStack("a")
		require.NoError(t, os.WriteFile(filepath.Join(s.Scene.Dir, "a.txt"), []byte("edited\n"), 0o644))

		s.MustRun(actions.BranchCommit{Name: "b", Message: "edit a", All: true, NoVerify: true})

		require.Equal(t, []string{"edit a"}, s.Subjects("a", "b"))
	})

	t.Run("refuses an invalid name before committing", func(t *testing.T) {
		s := scenario.NewScenario(t).WithStack("a")

		err := s.Run(actions.BranchCommit{Name: "my branch", Message: "nope"})
		require.ErrorIs(t, err, stackyerrors.ErrUser)
		require.Empty(t, s.Recorder.Calls())
	})
}

func TestStackCheckoutAction(t *testing.T) {
	t.Run("needs a terminal for the picker", func(t *testing.T) {
		s := scenario.NewScenario(t).WithStack("a", "b")

		err := s.Run(actions.StackCheckout{})
		require.ErrorIs(t, err, stackyerrors.ErrUser)
		require.Contains(t, err.Error(), "branch picker")
		s.ExpectBranch("b")
	})

	t.Run("refuses a branch outside the stacks", func(t *testing.T) {
		s := scenario.NewScenario(t).RunGit("checkout", "-q", "-b", "loose")

		err := s.Run(actions.StackCheckout{})
		require.ErrorIs(t, err, stackyerrors.ErrUser)
		require.Contains(t, err.Error(), "not in a stack")
	})
}

func TestSwitchBranchAction(t *testing.T) {
	s := scenario.NewScenario(t).WithStack("a", "b").Checkout("a")

	s.MustRun(actions.Up{})
	s.ExpectBranch("b")

	err := s.Run(actions.Up{})
	require.ErrorIs(t, err, stackyerrors.ErrUser)
	require.Contains(t, err.Error(), "top of the stack")

	s.MustRun(actions.Down{}).MustRun(actions.Down{})
	s.ExpectBranch("main")

	err = s.Run(actions.Down{})
	require.ErrorIs(t, err, stackyerrors.ErrUser)
	require.Contains(t, err.Error(), "bottom of the stack")
}

func TestInfoAction(t *testing.T) {
	t.Run("renders the stack upside down", func(t *testing.T) {
		s := scenario.NewScenario(t).
			WithStack("a", "b").
			CommitOn("a", "a2.txt", "a2\n", "more a").
			Checkout("a")

		s.MustRun(actions.Info{Scope: engine.ScopeStack})

		s.ExpectOutputContains("    ┌── !~ b\n┌── ~* a\n~ main\n")
		require.Empty(t, s.Recorder.Calls())
	})

	t.Run("shows PRs when asked", func(t *testing.T) {
		s := scenario.NewScenario(t).WithGitHub().WithStack("a")
		s.GitHub.AddPR(testPR(7, "a", "main", "Add a"))

		s.MustRun(actions.Info{Scope: engine.ScopeStack, PR: true})

		s.ExpectOutputContains("a (#7 Add a)")
	})

	t.Run("lists every stack off a stack", func(t *testing.T) {
		s := scenario.NewScenario(t).WithStack("a").RunGit("checkout", "-q", "-b", "loose")

		s.MustRun(actions.Info{Scope: engine.ScopeStack})

		s.ExpectOutputContains("a\n", "main", "Current branch loose is not in a stack")
	})
}

func TestBottomAction(t *testing.T) {
	s := scenario.NewScenario(t).RunGit("branch", "develop")

	s.MustRun(actions.Bottom{Name: "develop"})
	require.True(t, s.Repo.RefExists(git.BottomRefPrefix+"develop"))
	require.True(t, s.Context.Graph.Contains("develop"))

	s.Checkout("develop").MustRun(actions.BranchNew{Name: "feature"})
	s.ExpectSynced("feature", "develop")

	err := s.Run(actions.Bottom{Name: "main", Remove: true})
	require.ErrorIs(t, err, stackyerrors.ErrUser)

	s.MustRun(actions.Bottom{Name: "develop", Remove: true})
	require.False(t, s.Repo.RefExists(git.BottomRefPrefix+"develop"))
	require.False(t, s.Context.Graph.Contains("feature"))

	err = s.Run(actions.Bottom{Name: "develop", Remove: true})
	require.ErrorIs(t, err, stackyerrors.ErrNotFound)
}
