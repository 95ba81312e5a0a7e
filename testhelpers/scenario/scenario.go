// Package scenario combines a Scene with a runtime Context to give
// integration tests a terse, chainable API.
package scenario

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"stacky.dev/stacky/internal/actions"
	"stacky.dev/stacky/internal/config"
	"stacky.dev/stacky/internal/git"
	"stacky.dev/stacky/internal/github"
	"stacky.dev/stacky/internal/runtime"
	"stacky.dev/stacky/internal/tui"
	"stacky.dev/stacky/testhelpers"
)

// Scenario is a repository plus the context commands run against.
// Every Run starts from a freshly loaded context, like a new process would.
// NOTE: not safe for parallel tests, the scene changes directory and environment.
type Scenario struct {
	T        *testing.T
	Scene    *testhelpers.Scene
	Repo     *testhelpers.GitRepo
	Settings config.Settings
	// GitHub is the mock server state once WithGitHub was called
	GitHub *testhelpers.MockGitHubServerConfig
	// Recorder sees the mutating gateway calls of the last Reload or Run
	Recorder *testhelpers.RecordingGateway
	Context  *runtime.Context

	output bytes.Buffer
	client github.Client
}

// NewScenario creates a repository with one commit on main
func NewScenario(t *testing.T) *Scenario {
	t.Helper()
	scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
	return &Scenario{
		T:        t,
		Scene:    scene,
		Repo:     scene.Repo,
		Settings: config.DefaultSettings(),
	}
}

// WithSettings edits the settings used by the next context
func (s *Scenario) WithSettings(edit func(*config.Settings)) *Scenario {
	edit(&s.Settings)
	return s
}

// WithGitHub serves the pulls API from an in-memory mock
func (s *Scenario) WithGitHub() *Scenario {
	s.T.Helper()
	s.GitHub = testhelpers.NewMockGitHubServerConfig()
	s.client = testhelpers.NewMockGitHubClient(s.T, s.GitHub)
	return s
}

// WithBranch creates name on top of parent with one commit touching
// <name>.txt, records the stack markers and leaves name checked out
func (s *Scenario) WithBranch(name, parent string) *Scenario {
	s.T.Helper()
	require.NoError(s.T, s.Repo.Checkout(parent))
	parentTip := s.Rev(parent)
	require.NoError(s.T, s.Repo.CreateAndCheckoutBranch(name))
	require.NoError(s.T, s.Repo.CommitFile(name+".txt", name+"\n", "change on "+name))
	require.NoError(s.T, s.Repo.SetParent(name, parent, parentTip))
	return s
}

// WithStack creates a linear stack on main, first name at the bottom
func (s *Scenario) WithStack(names ...string) *Scenario {
	s.T.Helper()
	parent := "main"
	for _, name := range names {
		s.WithBranch(name, parent)
		parent = name
	}
	return s
}

// CommitOn checks out branch and commits content to file
func (s *Scenario) CommitOn(branch, file, content, message string) *Scenario {
	s.T.Helper()
	require.NoError(s.T, s.Repo.Checkout(branch))
	require.NoError(s.T, s.Repo.CommitFile(file, content, message))
	return s
}

// Checkout switches the working copy outside of stacky
func (s *Scenario) Checkout(branch string) *Scenario {
	s.T.Helper()
	require.NoError(s.T, s.Repo.Checkout(branch))
	return s
}

// RunGit runs a git command in the repository
func (s *Scenario) RunGit(args ...string) *Scenario {
	s.T.Helper()
	require.NoError(s.T, s.Repo.Git(args...))
	return s
}

// Reload builds a new context from the repository
func (s *Scenario) Reload() *Scenario {
	s.T.Helper()
	ctx := context.Background()
	repo, err := git.NewRepo(ctx, s.Scene.Dir)
	require.NoError(s.T, err)

	s.Recorder = testhelpers.NewRecordingGateway(repo)
	s.Context, err = runtime.NewContext(ctx, s.Recorder, runtime.Options{
		RepoRoot:     repo.Root(),
		GitDir:       repo.GitDir(),
		Settings:     s.Settings,
		Splog:        tui.NewSplogWithWriter(&s.output),
		GitHubClient: s.client,
	})
	require.NoError(s.T, err)
	return s
}

// Run executes cmd against a fresh context and returns its error
func (s *Scenario) Run(cmd actions.Command) error {
	s.T.Helper()
	s.Reload()
	return actions.Execute(s.Context, cmd)
}

// MustRun executes cmd and fails the test on error
func (s *Scenario) MustRun(cmd actions.Command) *Scenario {
	s.T.Helper()
	require.NoError(s.T, s.Run(cmd), "output:\n%s", s.Output())
	return s
}

// Output returns everything commands printed so far
func (s *Scenario) Output() string {
	return s.output.String()
}

// ResetOutput forgets the captured output
func (s *Scenario) ResetOutput() *Scenario {
	s.output.Reset()
	return s
}

// Rev resolves rev to a commit hash
func (s *Scenario) Rev(rev string) string {
	s.T.Helper()
	sha, err := s.Repo.Rev(rev)
	require.NoError(s.T, err, "cannot resolve %s", rev)
	return sha
}

// Subjects returns the commit subjects of from..to, newest first
func (s *Scenario) Subjects(from, to string) []string {
	s.T.Helper()
	subjects, err := s.Repo.Subjects(from, to)
	require.NoError(s.T, err)
	return subjects
}

// ExpectBranch asserts the checked out branch
func (s *Scenario) ExpectBranch(expected string) *Scenario {
	s.T.Helper()
	actual, err := s.Repo.CurrentBranch()
	require.NoError(s.T, err)
	require.Equal(s.T, expected, actual)
	return s
}

// ExpectParent asserts the parent branch marker of branch
func (s *Scenario) ExpectParent(branch, parent string) *Scenario {
	s.T.Helper()
	merge, err := s.Repo.Output("config", "branch."+branch+".merge")
	require.NoError(s.T, err)
	require.Equal(s.T, "refs/heads/"+parent, merge, "parent of %s", branch)
	return s
}

// ExpectSynced asserts that branch sits on its parent's tip and its parent
// commit marker records that tip
func (s *Scenario) ExpectSynced(branch, parent string) *Scenario {
	s.T.Helper()
	s.ExpectParent(branch, parent)
	parentTip := s.Rev(parent)
	require.Equal(s.T, parentTip, s.Rev(git.ParentCommitRefPrefix+branch), "parent commit of %s", branch)
	require.True(s.T, s.Repo.IsAncestor(parentTip, branch), "%s should contain %s", branch, parent)
	return s
}

// ExpectBranchGone asserts that branch and its parent commit marker are deleted
func (s *Scenario) ExpectBranchGone(branch string) *Scenario {
	s.T.Helper()
	require.False(s.T, s.Repo.RefExists("refs/heads/"+branch), "branch %s should be deleted", branch)
	require.False(s.T, s.Repo.RefExists(git.ParentCommitRefPrefix+branch), "parent commit of %s should be deleted", branch)
	return s
}

// ExpectOutputContains asserts that the captured output contains every part
func (s *Scenario) ExpectOutputContains(parts ...string) *Scenario {
	s.T.Helper()
	out := s.Output()
	for _, p := range parts {
		require.True(s.T, strings.Contains(out, p), "output should contain %q:\n%s", p, out)
	}
	return s
}
