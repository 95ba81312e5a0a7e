package cli_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"

	"stacky.dev/stacky/internal/cli"
	"stacky.dev/stacky/internal/cli/helpers"
	stackyerrors "stacky.dev/stacky/internal/errors"
	"stacky.dev/stacky/internal/tui"
	"stacky.dev/stacky/testhelpers"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

// run executes the stacky command tree in the working directory
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	root := cli.NewRootCmd("dev", "none", "unknown")
	root.SetArgs(args)
	ctx := helpers.WithSplog(context.Background(), tui.NewSplogWithWriter(&out))
	err := root.ExecuteContext(ctx)
	return out.String(), err
}

func TestStackWorkflow(t *testing.T) {
	scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)

	_, err := run(t, "branch", "new", "a")
	require.NoError(t, err)
	branch, err := scene.Repo.CurrentBranch()
	require.NoError(t, err)
	require.Equal(t, "a", branch)

	require.NoError(t, scene.Repo.WriteFile("a.txt", "a\n"))
	_, err = run(t, "commit", "-m", "add a")
	require.NoError(t, err)

	testhelpers.ExpectCommits(t, scene.Repo, "main", "a", "add a")
	testhelpers.ExpectStacked(t, scene.Repo, "a", "main")

	out, err := run(t, "info")
	require.NoError(t, err)
	require.Contains(t, out, "* a")
	require.Contains(t, out, "main")

	_, err = run(t, "down")
	require.NoError(t, err)
	branch, err = scene.Repo.CurrentBranch()
	require.NoError(t, err)
	require.Equal(t, "main", branch)
}

func TestSyncAfterBottomMoves(t *testing.T) {
	scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)

	_, err := run(t, "branch", "new", "a")
	require.NoError(t, err)
	require.NoError(t, scene.Repo.CommitFile("a.txt", "a\n", "add a"))

	require.NoError(t, scene.Repo.Checkout("main"))
	require.NoError(t, scene.Repo.CommitFile("main.txt", "main\n", "advance main"))
	require.NoError(t, scene.Repo.Checkout("a"))

	_, err = run(t, "sync")
	require.NoError(t, err)

	require.True(t, scene.Repo.IsAncestor("main", "a"))
	testhelpers.ExpectStacked(t, scene.Repo, "a", "main")
	testhelpers.ExpectCommits(t, scene.Repo, "main", "a", "add a")
}

func TestErrorsAreTyped(t *testing.T) {
	testhelpers.NewScene(t, testhelpers.BasicSceneSetup)

	_, err := run(t, "continue")
	require.ErrorIs(t, err, stackyerrors.ErrNotFound)
	require.Equal(t, 1, stackyerrors.ExitCode(err))

	_, err = run(t, "branch", "new", "main")
	require.ErrorIs(t, err, stackyerrors.ErrUser)
}
