package git

import (
	"context"
)

// Checkout switches the working copy to branch
func (g *Repo) Checkout(ctx context.Context, branch string) error {
	_, err := g.runner.Run(ctx, "checkout", "-q", branch)
	return err
}

// CreateBranch creates branch at start without checking it out
func (g *Repo) CreateBranch(ctx context.Context, branch, start string) error {
	_, err := g.runner.Run(ctx, "branch", branch, start)
	return err
}

// DeleteBranch force-deletes a local branch
func (g *Repo) DeleteBranch(ctx context.Context, branch string) error {
	_, err := g.runner.Run(ctx, "branch", "-D", branch)
	return err
}

// Rebase replays upstream..branch onto onto
func (g *Repo) Rebase(ctx context.Context, onto, upstream, branch string) error {
	_, err := g.runner.Run(ctx, "rebase", "--onto", onto, upstream, branch)
	return err
}

// Merge merges branch into the checked out branch
func (g *Repo) Merge(ctx context.Context, branch string) error {
	_, err := g.runner.Run(ctx, "merge", "--no-edit", branch)
	return err
}

// CherryPick applies commit onto the checked out branch. With allowEmpty
// the commit is recorded even when it is or becomes empty.
func (g *Repo) CherryPick(ctx context.Context, commit string, allowEmpty bool) error {
	args := []string{"cherry-pick"}
	if allowEmpty {
		args = append(args, "--allow-empty", "--keep-redundant-commits")
	}
	args = append(args, commit)
	_, err := g.runner.Run(ctx, args...)
	return err
}

// CherryPickNoCommit applies commit to the index and working tree without committing
func (g *Repo) CherryPickNoCommit(ctx context.Context, commit string) error {
	_, err := g.runner.Run(ctx, "cherry-pick", "--no-commit", commit)
	return err
}

// ResetHard resets the index and working tree to revision
func (g *Repo) ResetHard(ctx context.Context, revision string) error {
	_, err := g.runner.Run(ctx, "reset", "-q", "--hard", revision)
	return err
}

// Commit runs git commit attached to the terminal so editors work
func (g *Repo) Commit(ctx context.Context, args []string) error {
	return g.runner.RunInteractive(ctx, append([]string{"commit"}, args...)...)
}

// Log shows git log attached to the terminal
func (g *Repo) Log(ctx context.Context, args []string) error {
	return g.runner.RunInteractive(ctx, append([]string{"log"}, args...)...)
}
