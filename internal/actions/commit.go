package actions

import (
	"stacky.dev/stacky/internal/actions/sync"
	"stacky.dev/stacky/internal/engine"
	stackyerrors "stacky.dev/stacky/internal/errors"
	"stacky.dev/stacky/internal/runtime"
)

// CommitOptions contains options for the commit command
type CommitOptions struct {
	// Args are passed to git commit
	Args  []string
	Amend bool
}

// CommitAction commits on the current branch and syncs the branches above it
func CommitAction(ctx *runtime.Context, opts CommitOptions) error {
	gctx := ctx.Context

	current, err := ctx.CurrentNode()
	if err != nil {
		return err
	}
	if current.IsRoot() {
		return stackyerrors.NewUserError("Will not commit directly on stack bottom %s", current.Name)
	}

	args := append([]string{}, opts.Args...)
	if opts.Amend {
		args = append(args, "--amend")
	}
	if err := ctx.Git.Commit(gctx, args); err != nil {
		return err
	}

	tip, err := ctx.Git.BranchTip(gctx, current.Name)
	if err != nil {
		return err
	}
	current.Tip = tip

	var forest engine.Forest
	for _, child := range ctx.Graph.ChildrenOf(current) {
		forest = append(forest, ctx.Graph.SubTree(child))
	}
	return sync.Run(ctx, forest)
}
