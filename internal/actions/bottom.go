package actions

import (
	"slices"

	stackyerrors "stacky.dev/stacky/internal/errors"
	"stacky.dev/stacky/internal/git"
	"stacky.dev/stacky/internal/runtime"
)

// BottomOptions contains options for the bottom command
type BottomOptions struct {
	// Name defaults to the current branch
	Name   string
	Remove bool
}

// BottomAction adds or removes a custom stack bottom
func BottomAction(ctx *runtime.Context, opts BottomOptions) error {
	gctx := ctx.Context

	name := opts.Name
	if name == "" {
		name = ctx.Session.CurrentBranch()
	}
	if name == "" {
		return stackyerrors.NewUserError("Not on a branch")
	}
	if slices.Contains(git.DefaultBottoms, name) {
		return stackyerrors.NewUserError("Branch %s is always a stack bottom", name)
	}

	custom, err := ctx.Git.CustomBottoms(gctx)
	if err != nil {
		return err
	}
	isBottom := slices.Contains(custom, name)

	if opts.Remove {
		if !isBottom {
			return stackyerrors.NewNotFoundError("Branch %s is not a custom stack bottom", name)
		}
		if err := ctx.Git.UnsetBottom(gctx, name); err != nil {
			return err
		}
		ctx.Splog.Info("Removed stack bottom %s", name)
		return ctx.Reload()
	}

	if isBottom {
		ctx.Splog.Info("%s is already a stack bottom", name)
		return nil
	}
	exists, err := ctx.Git.BranchExists(gctx, name)
	if err != nil {
		return err
	}
	if !exists {
		return stackyerrors.NewNotFoundError("Branch %s does not exist", name)
	}
	if n, ok := ctx.Graph.Get(name); ok && n.HasChildren() && !n.IsRoot() {
		ctx.Splog.Warn("%s has branches stacked on it; they now belong to the new bottom", name)
	}
	if err := ctx.Git.SetBottom(gctx, name); err != nil {
		return err
	}
	ctx.Splog.Info("Added stack bottom %s", name)
	return ctx.Reload()
}
