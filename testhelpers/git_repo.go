package testhelpers

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// GitRepo is a scratch repository driven through the git binary
type GitRepo struct {
	Dir string
}

// gitEnv keeps tests independent of the user's git configuration
var gitEnv = []string{
	"GIT_CONFIG_GLOBAL=/dev/null",
	"GIT_CONFIG_NOSYSTEM=1",
	"GIT_EDITOR=true",
}

// NewGitRepo runs git init in dir with main as the initial branch
func NewGitRepo(dir string) (*GitRepo, error) {
	cmd := exec.Command("git", "-c", "core.autocrlf=false", "init", "-q", "-b", "main", dir)
	cmd.Env = append(os.Environ(), gitEnv...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("failed to init repo: %w: %s", err, out)
	}

	repo := &GitRepo{Dir: dir}
	for _, kv := range [][2]string{
		{"user.name", "Test User"},
		{"user.email", "test@example.com"},
		{"commit.gpgsign", "false"},
	} {
		if err := repo.Git("config", kv[0], kv[1]); err != nil {
			return nil, err
		}
	}
	return repo, nil
}

// Git runs a git command in the repository
func (r *GitRepo) Git(args ...string) error {
	_, err := r.Output(args...)
	return err
}

// Output runs a git command and returns its trimmed stdout
func (r *GitRepo) Output(args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = r.Dir
	cmd.Env = append(os.Environ(), gitEnv...)
	var stderr strings.Builder
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("git %s failed: %w: %s", strings.Join(args, " "), err, stderr.String())
	}
	return strings.TrimSpace(string(out)), nil
}

// WriteFile writes content to name inside the worktree and stages it
func (r *GitRepo) WriteFile(name, content string) error {
	path := filepath.Join(r.Dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return r.Git("add", name)
}

// CommitFile writes name and commits it with message
func (r *GitRepo) CommitFile(name, content, message string) error {
	if err := r.WriteFile(name, content); err != nil {
		return err
	}
	return r.Git("commit", "-q", "-m", message)
}

// CommitEmpty records a commit without changes
func (r *GitRepo) CommitEmpty(message string) error {
	return r.Git("commit", "-q", "--allow-empty", "-m", message)
}

// Checkout switches to branch
func (r *GitRepo) Checkout(branch string) error {
	return r.Git("checkout", "-q", branch)
}

// CreateAndCheckoutBranch creates branch at HEAD and switches to it
func (r *GitRepo) CreateAndCheckoutBranch(branch string) error {
	return r.Git("checkout", "-q", "-b", branch)
}

// CurrentBranch returns the checked out branch
func (r *GitRepo) CurrentBranch() (string, error) {
	return r.Output("branch", "--show-current")
}

// Rev resolves a revision to a commit hash
func (r *GitRepo) Rev(rev string) (string, error) {
	return r.Output("rev-parse", "--verify", "-q", rev)
}

// RefExists reports whether a ref resolves
func (r *GitRepo) RefExists(ref string) bool {
	_, err := r.Rev(ref)
	return err == nil
}

// LocalBranches returns the local branch names
func (r *GitRepo) LocalBranches() ([]string, error) {
	out, err := r.Output("for-each-ref", "refs/heads/", "--format=%(refname:short)")
	if err != nil {
		return nil, err
	}
	return splitLines(out), nil
}

// Subjects returns the commit subjects of from..to, newest first
func (r *GitRepo) Subjects(from, to string) ([]string, error) {
	out, err := r.Output("log", "--format=%s", from+".."+to)
	if err != nil {
		return nil, err
	}
	return splitLines(out), nil
}

// SetParent writes the stack markers of branch the way stacky does: the
// parent branch in git config and the parent commit ref at commit
func (r *GitRepo) SetParent(branch, parent, commit string) error {
	if err := r.Git("config", "branch."+branch+".remote", "."); err != nil {
		return err
	}
	if err := r.Git("config", "branch."+branch+".merge", "refs/heads/"+parent); err != nil {
		return err
	}
	return r.Git("update-ref", "refs/stack-parent/"+branch, commit)
}

// IsAncestor reports whether ancestor is reachable from descendant
func (r *GitRepo) IsAncestor(ancestor, descendant string) bool {
	return r.Git("merge-base", "--is-ancestor", ancestor, descendant) == nil
}

// CreateBareRemote creates a bare repository next to the worktree and adds it as a remote
func (r *GitRepo) CreateBareRemote(name string) (string, error) {
	bareDir := r.Dir + "-" + name + ".git"
	cmd := exec.Command("git", "init", "-q", "--bare", "-b", "main", bareDir)
	cmd.Env = append(os.Environ(), gitEnv...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("failed to create bare repo: %w: %s", err, out)
	}
	if err := r.Git("remote", "add", name, bareDir); err != nil {
		return "", fmt.Errorf("failed to add remote: %w", err)
	}
	return bareDir, nil
}

func splitLines(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return []string{}
	}
	return strings.Split(s, "\n")
}
