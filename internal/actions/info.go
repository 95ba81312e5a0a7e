package actions

import (
	"stacky.dev/stacky/internal/engine"
	"stacky.dev/stacky/internal/runtime"
	"stacky.dev/stacky/internal/tui"
)

// InfoOptions contains options for the info command
type InfoOptions struct {
	Scope engine.Scope
	// PR loads and shows the pull request of every branch
	PR bool
}

// InfoAction renders the selected part of the stack as a tree
func InfoAction(ctx *runtime.Context, opts InfoOptions) error {
	current := ctx.Session.CurrentBranch()

	var forest engine.Forest
	if opts.Scope == engine.ScopeAll || !ctx.Graph.Contains(current) {
		forest = ctx.Graph.AllStacks()
	} else {
		var err error
		if forest, err = ctx.Graph.Select(opts.Scope, current); err != nil {
			return err
		}
	}

	if opts.PR {
		client, err := ctx.GitHub()
		if err != nil {
			return err
		}
		if err := engine.LoadPRInfoForForest(ctx.Context, forest, client); err != nil {
			return err
		}
	}

	renderer := tui.NewTreeRenderer(ctx.Graph, current)
	renderer.CompactPR = ctx.Settings.UI.CompactPRDisplay
	ctx.Splog.Print(renderer.Render(forest))
	ctx.Splog.Newline()

	if !ctx.Graph.Contains(current) && current != "" {
		ctx.Splog.Newline()
		ctx.Splog.Warn("Current branch %s is not in a stack", current)
	}
	return nil
}
