package actions

import (
	"stacky.dev/stacky/internal/actions/sync"
	"stacky.dev/stacky/internal/engine"
	stackyerrors "stacky.dev/stacky/internal/errors"
	"stacky.dev/stacky/internal/runtime"
	"stacky.dev/stacky/internal/tui/style"
)

// UpstackOntoAction moves the current branch, with everything above it, onto
// target. The parent commit marker is kept so the sync that follows replays
// only the branch's own commits.
func UpstackOntoAction(ctx *runtime.Context, target string) error {
	gctx := ctx.Context
	g := ctx.Graph

	current, err := ctx.CurrentNode()
	if err != nil {
		return err
	}
	if current.IsRoot() {
		return stackyerrors.NewUserError("Cannot move stack bottom %s", current.Name)
	}
	if _, err := ctx.StackNode(target); err != nil {
		return err
	}
	if g.IsDescendant(target, current.Name) {
		return stackyerrors.NewUserError("Cannot move %s onto itself or its descendant %s", current.Name, target)
	}
	if current.Parent == target {
		ctx.Splog.Info("%s is already stacked on %s", current.Name, target)
		return nil
	}

	ctx.Splog.Info("Moving %s from %s onto %s", style.ColorBranchName(current.Name, true, false), current.Parent, target)
	if err := ctx.Git.SetParentBranch(gctx, current.Name, target); err != nil {
		return err
	}
	if err := g.Reparent(current.Name, target); err != nil {
		return err
	}

	return sync.Run(ctx, engine.Forest{g.SubTree(current)})
}

// UpstackAsBottomAction turns the current branch into a custom bottom. The
// branches above it stay stacked on it.
func UpstackAsBottomAction(ctx *runtime.Context) error {
	gctx := ctx.Context

	current, err := ctx.CurrentNode()
	if err != nil {
		return err
	}
	if current.IsRoot() {
		return stackyerrors.NewUserError("Branch %s is already a stack bottom", current.Name)
	}

	if err := ctx.Git.UnsetParentBranch(gctx, current.Name); err != nil {
		return err
	}
	if err := ctx.Git.DeleteParentCommit(gctx, current.Name); err != nil {
		return err
	}
	if err := ctx.Git.SetBottom(gctx, current.Name); err != nil {
		return err
	}
	ctx.Splog.Info("%s is now a stack bottom", style.ColorBranchName(current.Name, true, false))
	return ctx.Reload()
}
