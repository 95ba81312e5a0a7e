package git

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"sort"
	"strings"

	stackyerrors "stacky.dev/stacky/internal/errors"
)

// CurrentBranch returns the checked out branch, or "" when HEAD is detached
func (g *Repo) CurrentBranch(_ context.Context) (string, error) {
	return g.repo.HeadBranch()
}

// ListBranches returns all local branches
func (g *Repo) ListBranches(_ context.Context) ([]string, error) {
	return g.repo.BranchNames()
}

// BranchExists reports whether refs/heads/<branch> exists
func (g *Repo) BranchExists(_ context.Context, branch string) (bool, error) {
	_, ok, err := g.repo.ReadRef(headsPrefix + branch)
	return ok, err
}

// BranchTip returns the commit a branch points at
func (g *Repo) BranchTip(_ context.Context, branch string) (string, error) {
	sha, ok, err := g.repo.ReadRef(headsPrefix + branch)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", stackyerrors.NewNotFoundError("Branch %s does not exist", branch)
	}
	return sha, nil
}

// RemoteTip returns refs/remotes/<remote>/<branch> if it exists
func (g *Repo) RemoteTip(_ context.Context, remote, branch string) (string, bool, error) {
	return g.repo.ReadRef(fmt.Sprintf("refs/remotes/%s/%s", remote, branch))
}

// ParentBranch reads the parent branch marker: branch.<b>.merge pointing at a
// local branch (branch.<b>.remote = "."). A branch whose marker names itself
// has no parent.
func (g *Repo) ParentBranch(_ context.Context, branch string) (string, bool, error) {
	remote, merge, err := g.repo.BranchMerge(branch)
	if err != nil {
		return "", false, err
	}
	if remote != "." || !strings.HasPrefix(merge, headsPrefix) {
		return "", false, nil
	}
	parent := strings.TrimPrefix(merge, headsPrefix)
	if parent == branch {
		return "", false, nil
	}
	return parent, true, nil
}

// ParentCommit reads refs/stack-parent/<branch>
func (g *Repo) ParentCommit(_ context.Context, branch string) (string, bool, error) {
	return g.repo.ReadRef(ParentCommitRefPrefix + branch)
}

// ParentCommitRefs returns every parent commit marker keyed by branch name
func (g *Repo) ParentCommitRefs(_ context.Context) (map[string]string, error) {
	return g.repo.ListRefs(ParentCommitRefPrefix)
}

// CustomBottoms returns branches marked with refs/stacky-bottom-branch/<b>
func (g *Repo) CustomBottoms(_ context.Context) ([]string, error) {
	refs, err := g.repo.ListRefs(BottomRefPrefix)
	if err != nil {
		return nil, err
	}
	bottoms := make([]string, 0, len(refs))
	for name := range refs {
		bottoms = append(bottoms, name)
	}
	sort.Strings(bottoms)
	return bottoms, nil
}

// CommitsBetween lists the commits reachable from to but not from, newest first
func (g *Repo) CommitsBetween(ctx context.Context, from, to string) ([]string, error) {
	return g.runner.RunLines(ctx, "rev-list", fmt.Sprintf("%s..%s", from, to))
}

// IsAncestor reports whether ancestor is reachable from descendant
func (g *Repo) IsAncestor(ctx context.Context, ancestor, descendant string) (bool, error) {
	_, err := g.runner.Run(ctx, "merge-base", "--is-ancestor", ancestor, descendant)
	if err == nil {
		return true, nil
	}
	if exitCode(err) == 1 {
		return false, nil
	}
	return false, err
}

// MergeBase returns the best common ancestor of two revisions
func (g *Repo) MergeBase(ctx context.Context, a, b string) (string, error) {
	return g.runner.Run(ctx, "merge-base", a, b)
}

// HasStagedChanges reports whether the index differs from HEAD
func (g *Repo) HasStagedChanges(ctx context.Context) (bool, error) {
	_, err := g.runner.Run(ctx, "diff", "--cached", "--quiet")
	if err == nil {
		return false, nil
	}
	if exitCode(err) == 1 {
		return true, nil
	}
	return false, err
}

// CommitIdentity returns the author, author date and message of rev.
// Cherry-picks keep all three, whatever the resolved content is.
func (g *Repo) CommitIdentity(ctx context.Context, rev string) (string, error) {
	return g.runner.Run(ctx, "show", "-s", "--format=%an%x00%ae%x00%at%x00%B", rev)
}

// RevParse resolves rev to a commit hash
func (g *Repo) RevParse(ctx context.Context, rev string) (string, error) {
	return g.runner.Run(ctx, "rev-parse", "--verify", "--quiet", rev+"^{commit}")
}

// RemoteURL returns the URL of a remote
func (g *Repo) RemoteURL(_ context.Context, remote string) (string, error) {
	return g.repo.RemoteURL(remote)
}

// exitCode extracts the process exit code from a runner error, or -1
func exitCode(err error) int {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}
