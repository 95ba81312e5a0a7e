package actions

import (
	"fmt"

	"stacky.dev/stacky/internal/engine"
	stackyerrors "stacky.dev/stacky/internal/errors"
	"stacky.dev/stacky/internal/runtime"
	"stacky.dev/stacky/internal/tui/style"
	"stacky.dev/stacky/internal/utils"
)

// BranchNewAction creates name on top of the current branch and checks it out
func BranchNewAction(ctx *runtime.Context, name string) error {
	gctx := ctx.Context

	if err := utils.ValidateBranchName(name); err != nil {
		return stackyerrors.NewUserError("%s", err)
	}
	parent, err := ctx.CurrentNode()
	if err != nil {
		return err
	}
	exists, err := ctx.Git.BranchExists(gctx, name)
	if err != nil {
		return err
	}
	if exists {
		return stackyerrors.NewUserError("Branch %s already exists", name)
	}

	if err := ctx.Git.CreateBranch(gctx, name, parent.Tip); err != nil {
		return fmt.Errorf("failed to create branch %s: %w", name, err)
	}
	if err := ctx.Git.SetParentBranch(gctx, name, parent.Name); err != nil {
		return err
	}
	if err := ctx.Git.SetParentCommit(gctx, name, parent.Tip, ""); err != nil {
		return err
	}

	node := engine.NewBranchNode(name, parent.Name, parent.Tip)
	node.Tip = parent.Tip
	if _, err := ctx.Graph.Add(node); err != nil {
		return err
	}
	if err := ctx.Session.Checkout(gctx, name); err != nil {
		return err
	}

	ctx.Splog.Info("Created %s on top of %s", style.ColorBranchName(name, true, false), parent.Name)
	return nil
}

// BranchCheckoutAction checks out name, or asks with the picker when name is empty
func BranchCheckoutAction(ctx *runtime.Context, name string) error {
	if name == "" {
		names := ctx.Graph.Names()
		if len(names) == 0 {
			return stackyerrors.NewUserError("No branches in a stack")
		}
		choice, err := pickBranch("Checkout a branch", names, ctx.Session.CurrentBranch())
		if err != nil {
			return err
		}
		name = choice
	}

	if err := ctx.Session.Checkout(ctx.Context, name); err != nil {
		return err
	}
	ctx.Splog.Info("Checked out %s", style.ColorBranchName(name, true, false))
	if !ctx.Graph.Contains(name) {
		ctx.Splog.Warn("Branch %s is not in a stack", name)
	}
	return nil
}

// BranchCommitOptions contains options for branch commit
type BranchCommitOptions struct {
	Name     string
	Message  string
	All      bool
	NoVerify bool
}

// BranchCommitAction creates a branch on top of the current one and commits on it
func BranchCommitAction(ctx *runtime.Context, opts BranchCommitOptions) error {
	if err := BranchNewAction(ctx, opts.Name); err != nil {
		return err
	}

	var args []string
	if opts.Message != "" {
		args = append(args, "-m", opts.Message)
	}
	if opts.All {
		args = append(args, "-a")
	}
	if opts.NoVerify {
		args = append(args, "--no-verify")
	}
	return CommitAction(ctx, CommitOptions{Args: args})
}

// StackCheckoutAction picks a branch of the current stack and checks it out
func StackCheckoutAction(ctx *runtime.Context) error {
	current, err := ctx.CurrentNode()
	if err != nil {
		return err
	}
	forest, err := ctx.Graph.Select(engine.ScopeStack, current.Name)
	if err != nil {
		return err
	}
	choice, err := pickBranch("Checkout a branch in the stack", forest.Names(), current.Name)
	if err != nil {
		return err
	}
	return BranchCheckoutAction(ctx, choice)
}
