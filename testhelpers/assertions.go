// Package testhelpers provides temporary git repositories, a recording
// gateway and assertions for stacky tests.
package testhelpers

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

// Must panics if err is not nil, otherwise returns val. Used in test setup.
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// ExpectBranches asserts the local branches of repo, in any order
func ExpectBranches(t *testing.T, repo *GitRepo, expected ...string) {
	t.Helper()

	branches, err := repo.LocalBranches()
	require.NoError(t, err, "Failed to list branches")

	sort.Strings(branches)
	want := append([]string{}, expected...)
	sort.Strings(want)
	require.Equal(t, want, branches, "Branches do not match")
}

// ExpectCommits asserts the subjects of the commits on branch that are not
// on base, newest first
func ExpectCommits(t *testing.T, repo *GitRepo, base, branch string, expected ...string) {
	t.Helper()

	subjects, err := repo.Subjects(base, branch)
	require.NoError(t, err, "Failed to list commits")
	if expected == nil {
		expected = []string{}
	}
	require.Equal(t, expected, subjects, "Commits of %s do not match", branch)
}

// ExpectStacked asserts that branch records parent as its parent and that
// its parent commit is the parent's tip
func ExpectStacked(t *testing.T, repo *GitRepo, branch, parent string) {
	t.Helper()

	merge, err := repo.Output("config", "branch."+branch+".merge")
	require.NoError(t, err, "Branch %s has no parent", branch)
	require.Equal(t, "refs/heads/"+parent, merge)

	parentCommit, err := repo.Rev("refs/stack-parent/" + branch)
	require.NoError(t, err, "Branch %s has no parent commit", branch)
	tip, err := repo.Rev(parent)
	require.NoError(t, err)
	require.Equal(t, tip, parentCommit, "Branch %s is not synced with %s", branch, parent)
}
