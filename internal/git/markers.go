package git

import (
	"context"
	"fmt"
)

// SetParentBranch records parent as the stack parent of branch
func (g *Repo) SetParentBranch(ctx context.Context, branch, parent string) error {
	if _, err := g.runner.Run(ctx, "config", fmt.Sprintf("branch.%s.remote", branch), "."); err != nil {
		return err
	}
	_, err := g.runner.Run(ctx, "config", fmt.Sprintf("branch.%s.merge", branch), headsPrefix+parent)
	return err
}

// UnsetParentBranch points the marker of branch at itself, which makes it a root
func (g *Repo) UnsetParentBranch(ctx context.Context, branch string) error {
	_, err := g.runner.Run(ctx, "config", fmt.Sprintf("branch.%s.merge", branch), headsPrefix+branch)
	return err
}

// SetParentCommit moves refs/stack-parent/<branch> to commit. When previous is
// non-empty git refuses the update unless the ref still holds previous.
func (g *Repo) SetParentCommit(ctx context.Context, branch, commit, previous string) error {
	args := []string{"update-ref", ParentCommitRefPrefix + branch, commit}
	if previous != "" {
		args = append(args, previous)
	}
	_, err := g.runner.Run(ctx, args...)
	return err
}

// DeleteParentCommit removes refs/stack-parent/<branch>
func (g *Repo) DeleteParentCommit(ctx context.Context, branch string) error {
	_, err := g.runner.Run(ctx, "update-ref", "-d", ParentCommitRefPrefix+branch)
	return err
}

// SetBottom marks branch as a custom stack bottom
func (g *Repo) SetBottom(ctx context.Context, branch string) error {
	_, err := g.runner.Run(ctx, "update-ref", BottomRefPrefix+branch, headsPrefix+branch)
	return err
}

// UnsetBottom removes the custom bottom marker of branch
func (g *Repo) UnsetBottom(ctx context.Context, branch string) error {
	_, err := g.runner.Run(ctx, "update-ref", "-d", BottomRefPrefix+branch)
	return err
}
