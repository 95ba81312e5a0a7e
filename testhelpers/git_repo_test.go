package testhelpers_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"stacky.dev/stacky/testhelpers"
)

func TestGitRepo(t *testing.T) {
	scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
	repo := scene.Repo

	testhelpers.ExpectBranches(t, repo, "main")

	require.NoError(t, repo.CreateAndCheckoutBranch("a"))
	require.NoError(t, repo.CommitFile("a.txt", "a\n", "add a"))
	require.NoError(t, repo.CommitEmpty("empty"))
	mainTip := testhelpers.Must(repo.Rev("main"))
	require.NoError(t, repo.SetParent("a", "main", mainTip))

	testhelpers.ExpectBranches(t, repo, "a", "main")
	testhelpers.ExpectCommits(t, repo, "main", "a", "empty", "add a")
	testhelpers.ExpectCommits(t, repo, "a", "main")
	testhelpers.ExpectStacked(t, repo, "a", "main")

	require.Equal(t, "a", testhelpers.Must(repo.CurrentBranch()))
	require.True(t, repo.IsAncestor("main", "a"))
	require.False(t, repo.IsAncestor("a", "main"))
	require.True(t, repo.RefExists("refs/stack-parent/a"))
	require.False(t, repo.RefExists("refs/stack-parent/main"))
}

func TestCreateBareRemote(t *testing.T) {
	scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)

	_, err := scene.Repo.CreateBareRemote("origin")
	require.NoError(t, err)
	require.NoError(t, scene.Repo.Git("push", "origin", "main"))
	require.True(t, scene.Repo.RefExists("refs/remotes/origin/main"))
}
