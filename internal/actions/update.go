package actions

import (
	"fmt"
	"sort"
	"strings"

	"stacky.dev/stacky/internal/engine"
	"stacky.dev/stacky/internal/git"
	"stacky.dev/stacky/internal/runtime"
	"stacky.dev/stacky/internal/tui/style"
)

// UpdateOptions contains options for the update command
type UpdateOptions struct {
	// Force deletes merged branches without asking
	Force bool
}

// UpdateAction fetches the remote, fast-forwards the bottoms and deletes
// branches whose PR was merged
func UpdateAction(ctx *runtime.Context, opts UpdateOptions) error {
	gctx := ctx.Context
	splog := ctx.Splog
	remote := ctx.Settings.Git.Remote

	splog.Info("Fetching %s", remote)
	if err := ctx.Git.Fetch(gctx, remote); err != nil {
		return fmt.Errorf("failed to fetch %s: %w", remote, err)
	}

	for _, bottom := range ctx.Graph.Bottoms() {
		if err := updateBottom(ctx, bottom); err != nil {
			return err
		}
	}

	client, err := ctx.GitHub()
	if err != nil {
		return err
	}
	forest := ctx.Graph.BottomLevel()
	if err := engine.LoadPRInfoForForest(gctx, forest, client); err != nil {
		return err
	}

	var merged []*engine.BranchNode
	for _, n := range forest.DepthFirst() {
		if n.IsRoot() || n.PR.Open() != nil {
			continue
		}
		for _, pr := range n.PR.All() {
			if pr.State == engine.PRMerged {
				merged = append(merged, n)
				break
			}
		}
	}

	if len(merged) > 0 {
		names := make([]string, len(merged))
		for i, n := range merged {
			names[i] = n.Name
		}
		splog.Info("Merged branches: %s", strings.Join(names, ", "))
		ok, err := confirm(ctx, opts.Force, "Delete merged branches?")
		if err != nil {
			return err
		}
		if ok {
			for _, n := range merged {
				if err := deleteMergedBranch(ctx, n); err != nil {
					return err
				}
			}
		}
	}

	return cleanupRefs(ctx)
}

// updateBottom moves bottom to its remote tip
func updateBottom(ctx *runtime.Context, bottom *engine.BranchNode) error {
	gctx := ctx.Context

	remoteTip, ok, err := ctx.Git.RemoteTip(gctx, ctx.Settings.Git.Remote, bottom.Name)
	if err != nil {
		return err
	}
	if !ok || remoteTip == bottom.Tip {
		return nil
	}

	ctx.Splog.Info("Updating %s to %s", style.ColorBranchName(bottom.Name, false, false), remoteTip[:min(8, len(remoteTip))])
	if err := ctx.Git.UpdateBranchRef(gctx, bottom.Name, remoteTip, bottom.Tip); err != nil {
		return fmt.Errorf("failed to update %s: %w", bottom.Name, err)
	}
	if ctx.Session.CurrentBranch() == bottom.Name {
		if err := ctx.Git.ResetHard(gctx, "HEAD"); err != nil {
			return err
		}
	}
	bottom.Tip = remoteTip
	bottom.RemoteTip = remoteTip
	return nil
}

// deleteMergedBranch removes n and stacks its children on its parent. The
// children keep their parent commit, so the next sync replays only their own commits.
func deleteMergedBranch(ctx *runtime.Context, n *engine.BranchNode) error {
	gctx := ctx.Context
	g := ctx.Graph

	if ctx.Session.CurrentBranch() == n.Name {
		bottoms := g.Bottoms()
		if len(bottoms) == 0 {
			return fmt.Errorf("no bottom to check out before deleting %s", n.Name)
		}
		if err := ctx.Session.Checkout(gctx, bottoms[0].Name); err != nil {
			return err
		}
	}

	for _, child := range g.ChildrenOf(n) {
		ctx.Splog.Info("Reparenting %s from %s to %s", child.Name, n.Name, n.Parent)
		if err := ctx.Git.SetParentBranch(gctx, child.Name, n.Parent); err != nil {
			return err
		}
		if err := g.Reparent(child.Name, n.Parent); err != nil {
			return err
		}
	}

	ctx.Splog.Info("Deleting merged branch %s", style.ColorBranchName(n.Name, false, false))
	if err := ctx.Git.DeleteBranch(gctx, n.Name); err != nil {
		return err
	}
	if err := ctx.Git.DeleteParentCommit(gctx, n.Name); err != nil {
		return err
	}
	return g.Remove(n.Name)
}

// cleanupRefs removes stack markers whose branch is gone or no longer stacked
func cleanupRefs(ctx *runtime.Context) error {
	gctx := ctx.Context

	refs, err := ctx.Git.ParentCommitRefs(gctx)
	if err != nil {
		return err
	}
	names := make([]string, 0, len(refs))
	for name := range refs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if n, ok := ctx.Graph.Get(name); ok && !n.IsRoot() {
			continue
		}
		ctx.Splog.Info("Removing stale %s%s", git.ParentCommitRefPrefix, name)
		if err := ctx.Git.DeleteParentCommit(gctx, name); err != nil {
			return err
		}
	}

	bottoms, err := ctx.Git.CustomBottoms(gctx)
	if err != nil {
		return err
	}
	for _, name := range bottoms {
		exists, err := ctx.Git.BranchExists(gctx, name)
		if err != nil {
			return err
		}
		if exists {
			continue
		}
		ctx.Splog.Info("Removing stale %s%s", git.BottomRefPrefix, name)
		if err := ctx.Git.UnsetBottom(gctx, name); err != nil {
			return err
		}
	}
	return nil
}
