package actions

import (
	"fmt"
	"slices"

	"stacky.dev/stacky/internal/engine"
	stackyerrors "stacky.dev/stacky/internal/errors"
	"stacky.dev/stacky/internal/git"
	"stacky.dev/stacky/internal/runtime"
	"stacky.dev/stacky/internal/tui/style"
)

// AdoptAction stacks branch directly on the checked out bottom. Its parent
// commit is the merge base, so the next sync replays only its own commits.
func AdoptAction(ctx *runtime.Context, branch string) error {
	gctx := ctx.Context
	g := ctx.Graph

	bottom, err := adoptingBottom(ctx)
	if err != nil {
		return err
	}
	if branch == bottom.Name {
		return stackyerrors.NewUserError("A branch cannot adopt itself")
	}
	if slices.Contains(git.DefaultBottoms, branch) {
		return stackyerrors.NewUserError("Branch %s is a stack bottom and cannot be adopted", branch)
	}

	exists, err := ctx.Git.BranchExists(gctx, branch)
	if err != nil {
		return err
	}
	if !exists {
		return stackyerrors.NewNotFoundError("Branch %s does not exist", branch)
	}
	if n, ok := g.Get(branch); ok && !n.IsRoot() {
		return stackyerrors.NewUserError("Branch %s already has a parent: %s", branch, n.Parent)
	}
	if _, hasParent, err := ctx.Git.ParentBranch(gctx, branch); err != nil {
		return err
	} else if hasParent && !ctx.Builder.IsBottom(branch) {
		return stackyerrors.NewUserError("Branch %s already has a parent marker", branch)
	}

	if ctx.Builder.IsBottom(branch) {
		ctx.Splog.Info("Removing %s from the stack bottoms", branch)
		if err := ctx.Git.UnsetBottom(gctx, branch); err != nil {
			return err
		}
	}

	mergeBase, err := ctx.Git.MergeBase(gctx, bottom.Name, branch)
	if err != nil {
		return fmt.Errorf("failed to find merge base of %s and %s: %w", bottom.Name, branch, err)
	}
	if err := ctx.Git.SetParentBranch(gctx, branch, bottom.Name); err != nil {
		return err
	}
	if err := ctx.Git.SetParentCommit(gctx, branch, mergeBase, ""); err != nil {
		return err
	}
	ctx.Splog.Info("%s now stacked on %s", style.ColorBranchName(branch, false, true), bottom.Name)

	// the adopted branch may carry a stack of its own
	if err := ctx.Reload(); err != nil {
		return err
	}

	if ctx.Settings.UI.ChangeToAdopted {
		return ctx.Session.Checkout(gctx, branch)
	}
	return nil
}

// adoptingBottom returns the checked out bottom. With change_to_main a
// non-bottom working copy is switched to the first existing default bottom.
func adoptingBottom(ctx *runtime.Context) (*engine.BranchNode, error) {
	current, ok := ctx.Graph.Get(ctx.Session.CurrentBranch())
	if ok && current.IsRoot() {
		return current, nil
	}
	if !ctx.Settings.UI.ChangeToMain {
		return nil, stackyerrors.NewUserError("The current branch %s must be a stack bottom", ctx.Session.CurrentBranch())
	}
	for _, name := range git.DefaultBottoms {
		if n, ok := ctx.Graph.Get(name); ok && n.IsRoot() {
			if err := ctx.Session.Checkout(ctx.Context, name); err != nil {
				return nil, err
			}
			return n, nil
		}
	}
	return nil, stackyerrors.NewUserError("No stack bottom to adopt onto")
}
