package actions_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"stacky.dev/stacky/internal/actions"
	"stacky.dev/stacky/internal/config"
	"stacky.dev/stacky/internal/engine"
	stackyerrors "stacky.dev/stacky/internal/errors"
	"stacky.dev/stacky/internal/git"
	"stacky.dev/stacky/testhelpers/scenario"
)

// newAdoptScenario has a plain feature branch forked from main before main advanced
func newAdoptScenario(t *testing.T) (*scenario.Scenario, string) {
	s := scenario.NewScenario(t)
	fork := s.Rev("main")
	s.RunGit("checkout", "-q", "-b", "feature").
		CommitOn("feature", "feature.txt", "feature\n", "feature work").
		CommitOn("main", "main.txt", "c2\n", "advance main")
	return s, fork
}

func TestAdoptAction(t *testing.T) {
	t.Run("stacks a branch on the bottom at its merge base", func(t *testing.T) {
		s, fork := newAdoptScenario(t)

		s.MustRun(actions.Adopt{Branch: "feature"})

		s.ExpectParent("feature", "main").ExpectBranch("main")
		require.Equal(t, fork, s.Rev(git.ParentCommitRefPrefix+"feature"))

		s.Checkout("feature").MustRun(actions.Sync{Scope: engine.ScopeStack})
		s.ExpectSynced("feature", "main")
		require.Equal(t, []string{"feature work"}, s.Subjects("main", "feature"))
	})

	t.Run("checks out the adopted branch with change_to_adopted", func(t *testing.T) {
		s, _ := newAdoptScenario(t)
		s.WithSettings(func(st *config.Settings) { st.UI.ChangeToAdopted = true })

		s.MustRun(actions.Adopt{Branch: "feature"})

		s.ExpectBranch("feature")
	})

	t.Run("switches to main with change_to_main", func(t *testing.T) {
		s, _ := newAdoptScenario(t)
		s.WithStack("a").WithSettings(func(st *config.Settings) { st.UI.ChangeToMain = true })

		s.MustRun(actions.Adopt{Branch: "feature"})

		s.ExpectParent("feature", "main")
	})

	t.Run("must run on a bottom", func(t *testing.T) {
		s, _ := newAdoptScenario(t)
		s.WithStack("a")

		err := s.Run(actions.Adopt{Branch: "feature"})
		require.ErrorIs(t, err, stackyerrors.ErrUser)
		require.Empty(t, s.Recorder.Calls())
	})

	t.Run("refuses to adopt itself", func(t *testing.T) {
		s, _ := newAdoptScenario(t)

		err := s.Run(actions.Adopt{Branch: "main"})
		require.ErrorIs(t, err, stackyerrors.ErrUser)
		require.Contains(t, err.Error(), "cannot adopt itself")
	})

	t.Run("refuses a branch that already has a parent", func(t *testing.T) {
		s := scenario.NewScenario(t).WithStack("a", "b").Checkout("main")

		err := s.Run(actions.Adopt{Branch: "b"})
		require.ErrorIs(t, err, stackyerrors.ErrUser)
	})

	t.Run("turns a custom bottom into a stacked branch", func(t *testing.T) {
		s := scenario.NewScenario(t).RunGit("branch", "develop")
		s.MustRun(actions.Bottom{Name: "develop"})

		s.MustRun(actions.Adopt{Branch: "develop"})

		s.ExpectParent("develop", "main")
		require.False(t, s.Repo.RefExists(git.BottomRefPrefix+"develop"))
		n, err := s.Context.Graph.Node("develop")
		require.NoError(t, err)
		require.Equal(t, "main", n.Parent)
	})
}

func TestUpstackOntoAction(t *testing.T) {
	t.Run("moves a branch and its children", func(t *testing.T) {
		s := scenario.NewScenario(t).
			WithStack("a").
			WithBranch("b", "main").
			WithBranch("c", "b").
			Checkout("b")

		s.MustRun(actions.UpstackOnto{Target: "a"})

		s.ExpectSynced("b", "a").ExpectSynced("c", "b").ExpectBranch("b")
		require.Equal(t, []string{"change on c", "change on b", "change on a"}, s.Subjects("main", "c"))
	})

	t.Run("refuses a descendant", func(t *testing.T) {
		s := scenario.NewScenario(t).WithStack("a", "b").Checkout("a")

		err := s.Run(actions.UpstackOnto{Target: "b"})
		require.ErrorIs(t, err, stackyerrors.ErrUser)
		require.Empty(t, s.Recorder.Calls())
	})

	t.Run("refuses a target outside the stacks", func(t *testing.T) {
		s := scenario.NewScenario(t).WithStack("a")

		err := s.Run(actions.UpstackOnto{Target: "nope"})
		require.ErrorIs(t, err, stackyerrors.ErrUser)
		require.EqualError(t, err, "Branch is not in a stack: nope")
	})

	t.Run("refuses a target whose stack is broken", func(t *testing.T) {
		s := scenario.NewScenario(t).WithStack("a").Checkout("main")
		s.RunGit("branch", "orphan").
			RunGit("config", "branch.orphan.remote", ".").
			RunGit("config", "branch.orphan.merge", "refs/heads/gone").
			RunGit("update-ref", git.ParentCommitRefPrefix+"orphan", "main").
			Checkout("a")

		err := s.Run(actions.UpstackOnto{Target: "orphan"})
		require.ErrorIs(t, err, stackyerrors.ErrUser)
		require.Contains(t, err.Error(), "not in a stack: orphan")
		require.Empty(t, s.Recorder.Calls())
	})
}

func TestUpstackAsBottomAction(t *testing.T) {
	s := scenario.NewScenario(t).WithStack("a", "b").Checkout("a")

	s.MustRun(actions.UpstackAsBottom{})

	require.True(t, s.Repo.RefExists(git.BottomRefPrefix+"a"))
	require.False(t, s.Repo.RefExists(git.ParentCommitRefPrefix+"a"))
	a, err := s.Context.Graph.Node("a")
	require.NoError(t, err)
	require.True(t, a.IsRoot())
	b, err := s.Context.Graph.Node("b")
	require.NoError(t, err)
	require.Equal(t, "a", b.Parent)
}

func TestCommitAction(t *testing.T) {
	t.Run("syncs the branches above", func(t *testing.T) {
		s := scenario.NewScenario(t).WithStack("a", "b", "c").Checkout("a")
		require.NoError(t, s.Repo.WriteFile("a2.txt", "a2\n"))

		s.MustRun(actions.Commit{Args: []string{"-q", "-m", "more a"}})

		s.ExpectBranch("a").ExpectSynced("b", "a").ExpectSynced("c", "b")
		require.Equal(t, []string{"change on c", "change on b", "more a", "change on a"}, s.Subjects("main", "c"))
	})

	t.Run("amends", func(t *testing.T) {
		s := scenario.NewScenario(t).WithStack("a", "b").Checkout("a")
		require.NoError(t, s.Repo.WriteFile("a2.txt", "a2\n"))

		s.MustRun(actions.Commit{Args: []string{"-q", "--no-edit"}, Amend: true})

		s.ExpectSynced("b", "a")
		require.Equal(t, []string{"change on b", "change on a"}, s.Subjects("main", "b"))
	})

	t.Run("refuses a bottom", func(t *testing.T) {
		s := scenario.NewScenario(t).WithStack("a").Checkout("main")

		err := s.Run(actions.Commit{Args: []string{"-m", "x"}})
		require.ErrorIs(t, err, stackyerrors.ErrUser)
		require.Empty(t, s.Recorder.Calls())
	})
}
