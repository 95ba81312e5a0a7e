package actions

import (
	"slices"

	"stacky.dev/stacky/internal/engine"
	stackyerrors "stacky.dev/stacky/internal/errors"
	"stacky.dev/stacky/internal/runtime"
	"stacky.dev/stacky/internal/tui/style"
)

// LandOptions contains options for the land command
type LandOptions struct {
	// Force skips the confirmation prompt
	Force bool
}

// LandAction squash-merges the PR of the bottom-most branch of the current
// stack. Local state is left alone; update picks up the merge.
func LandAction(ctx *runtime.Context, opts LandOptions) error {
	gctx := ctx.Context
	g := ctx.Graph
	splog := ctx.Splog

	current, err := ctx.CurrentNode()
	if err != nil {
		return err
	}
	path := downstackPath(g, current)
	if len(path) == 1 {
		return stackyerrors.NewUserError("May not land %s", path[0].Name)
	}

	b := path[1]
	if !g.IsSyncedWithParent(b) {
		return stackyerrors.NewUserError("Branch %s is not synced with parent %s, sync before landing", b.Name, b.Parent)
	}
	if !b.IsSyncedWithRemote() {
		return stackyerrors.NewUserError("Branch %s is not synced with remote branch, push local changes before landing", b.Name)
	}

	client, err := ctx.GitHub()
	if err != nil {
		return err
	}
	if err := engine.LoadPRInfo(gctx, b, client); err != nil {
		return err
	}
	open := b.PR.Open()
	if open == nil {
		return stackyerrors.NewUserError("Branch %s does not have an open PR", b.Name)
	}
	// mergeability is only computed when a single PR is fetched
	pr, err := client.GetPullRequest(gctx, open.Number)
	if err != nil {
		return err
	}
	if pr.Mergeable != engine.MergeClean {
		return stackyerrors.NewUserError("PR #%d for branch %s is not mergeable: %s", pr.Number, b.Name, pr.Mergeable)
	}

	if len(path) > 2 {
		splog.Warn("Land only lands the bottom-most branch %s; the current stack has %d branches, ending with %s",
			b.Name, len(path)-1, current.Name)
	}
	splog.Info("- Will land PR #%d (%s) for branch %s into branch %s",
		pr.Number, style.ColorCyan(pr.URL), style.ColorBranchName(b.Name, false, false), b.Parent)

	ok, err := confirm(ctx, opts.Force, "Proceed?")
	if err != nil {
		return err
	}
	if !ok {
		return stackyerrors.NewUserError("Land canceled")
	}

	if err := client.MergePullRequest(gctx, pr.Number, b.Tip); err != nil {
		return err
	}
	splog.Newline()
	splog.Info("✓ Success! Run `stacky update` to update local state.")
	return nil
}

// downstackPath returns n and its ancestors, bottom first
func downstackPath(g *engine.Graph, n *engine.BranchNode) []*engine.BranchNode {
	var path []*engine.BranchNode
	for p := n; p != nil; p = g.ParentOf(p) {
		path = append(path, p)
	}
	slices.Reverse(path)
	return path
}
