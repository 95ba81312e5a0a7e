package actions

import (
	"stacky.dev/stacky/internal/engine"
	"stacky.dev/stacky/internal/runtime"
)

// LogOptions contains options for the log command
type LogOptions struct {
	// Args are passed to git log after the defaults
	Args []string
}

// LogAction shows git log --graph over every branch of the current stack
func LogAction(ctx *runtime.Context, opts LogOptions) error {
	current, err := ctx.CurrentNode()
	if err != nil {
		return err
	}
	forest, err := ctx.Graph.Select(engine.ScopeStack, current.Name)
	if err != nil {
		return err
	}

	args := []string{"--graph", "--oneline", "--decorate"}
	args = append(args, opts.Args...)
	var roots []string
	for _, n := range forest.DepthFirst() {
		if n.IsRoot() {
			roots = append(roots, n.Name)
			continue
		}
		args = append(args, n.Name)
	}
	// stop at the bottoms so only the stack's own commits show
	for _, r := range roots {
		args = append(args, "^"+r)
	}
	if len(roots) == len(forest.DepthFirst()) {
		ctx.Splog.Info("No branches on top of %s", current.Name)
		return nil
	}
	return ctx.Git.Log(ctx.Context, args)
}
