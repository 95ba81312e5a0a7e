package testhelpers

import (
	"os"
	"path/filepath"
	"testing"
)

// Scene is a temporary git repository that the test runs inside
type Scene struct {
	Dir  string
	Repo *GitRepo
}

// SceneSetup prepares a scene before the test uses it
type SceneSetup func(*Scene) error

// NewScene creates a repository in a temporary directory and changes into it.
// Git and stacky configuration from the user's home is ignored.
// Not safe for parallel tests.
func NewScene(t *testing.T, setup SceneSetup) *Scene {
	t.Helper()

	root := t.TempDir()
	dir := filepath.Join(root, "repo")
	if err := os.Mkdir(dir, 0o750); err != nil {
		t.Fatalf("Failed to create repo dir: %v", err)
	}

	home := filepath.Join(root, "home")
	if err := os.Mkdir(home, 0o750); err != nil {
		t.Fatalf("Failed to create home dir: %v", err)
	}
	t.Setenv("HOME", home)
	t.Setenv("GIT_CONFIG_GLOBAL", "/dev/null")
	t.Setenv("GIT_CONFIG_NOSYSTEM", "1")
	t.Setenv("GIT_EDITOR", "true")
	t.Setenv("STACKY_NO_INTERACTIVE", "1")
	t.Setenv("STACKY_CONFIG", "")
	t.Setenv("STACKY_STATE_FILE", "")
	t.Setenv("STACKY_LOG_FILE", filepath.Join(root, "stacky.log"))

	repo, err := NewGitRepo(dir)
	if err != nil {
		t.Fatalf("Failed to create Git repo: %v", err)
	}
	t.Chdir(dir)

	scene := &Scene{Dir: dir, Repo: repo}
	if setup != nil {
		if err := setup(scene); err != nil {
			t.Fatalf("Setup failed: %v", err)
		}
	}
	return scene
}

// BasicSceneSetup creates one commit on main
func BasicSceneSetup(scene *Scene) error {
	return scene.Repo.CommitFile("init.txt", "initial\n", "initial")
}
