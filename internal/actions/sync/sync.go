// Package sync brings branches in line with their parents by rebasing or merging.
package sync

import (
	"fmt"
	"slices"

	"stacky.dev/stacky/internal/config"
	"stacky.dev/stacky/internal/engine"
	stackyerrors "stacky.dev/stacky/internal/errors"
	"stacky.dev/stacky/internal/runtime"
	"stacky.dev/stacky/internal/tui"
	"stacky.dev/stacky/internal/tui/style"
)

// Options contains options for the sync command
type Options struct {
	Scope engine.Scope
}

// Action syncs the part of the current stack selected by opts.Scope
func Action(ctx *runtime.Context, opts Options) error {
	current, err := ctx.CurrentNode()
	if err != nil {
		return err
	}
	forest, err := ctx.Graph.Select(opts.Scope, current.Name)
	if err != nil {
		return err
	}

	ctx.Splog.Info(tui.NewTreeRenderer(ctx.Graph, current.Name).Render(forest))
	ctx.Splog.Newline()
	return Run(ctx, forest)
}

// Select returns the branches of forest that need syncing, parent first. A
// branch is selected when it is behind its parent or its parent is selected.
func Select(ctx *runtime.Context, forest engine.Forest) []*engine.BranchNode {
	g := ctx.Graph
	splog := ctx.Splog

	var selected []*engine.BranchNode
	inWork := make(map[string]bool)
	for _, n := range forest.DepthFirst() {
		if n.IsRoot() {
			splog.Info("✓ Not syncing base branch %s", style.ColorBranchName(n.Name, false, false))
			continue
		}
		if g.IsSyncedWithParent(n) && !inWork[n.Parent] {
			splog.Debug("✓ Not syncing branch %s, already synced with parent %s", n.Name, n.Parent)
			continue
		}
		selected = append(selected, n)
		inWork[n.Name] = true
		splog.Info("- Will sync branch %s on top of %s", style.ColorBranchName(n.Name, false, false), n.Parent)
	}
	return selected
}

// Run syncs every branch of forest that is behind its parent, then returns
// to the branch that was checked out
func Run(ctx *runtime.Context, forest engine.Forest) error {
	work := Select(ctx, forest)
	if len(work) == 0 {
		return nil
	}

	// the pending list is popped from the end
	slices.Reverse(work)
	return process(ctx, ctx.Session.CurrentBranch(), work)
}

// Resume continues an interrupted sync from its journal record
func Resume(ctx *runtime.Context, record config.Record) error {
	pending := make([]*engine.BranchNode, 0, len(record.Sync))
	for _, name := range record.Sync {
		n, err := ctx.Graph.Node(name)
		if err != nil {
			return err
		}
		pending = append(pending, n)
	}
	return process(ctx, record.Branch, pending)
}

func process(ctx *runtime.Context, originalBranch string, pending []*engine.BranchNode) error {
	gctx := ctx.Context
	g := ctx.Graph
	splog := ctx.Splog

	op := "rebase"
	if ctx.Settings.Git.UseMerge {
		op = "merge"
	}

	for len(pending) > 0 {
		names := make([]string, len(pending))
		for i, n := range pending {
			names[i] = n.Name
		}
		if err := ctx.Journal.Save(config.NewSyncRecord(originalBranch, names)); err != nil {
			return fmt.Errorf("failed to save sync state: %w", err)
		}

		n := pending[len(pending)-1]
		pending = pending[:len(pending)-1]
		parent := g.ParentOf(n)
		if parent == nil {
			continue
		}
		if g.IsSyncedWithParent(n) {
			splog.Info("%s is already synced on top of %s", n.Name, parent.Name)
			continue
		}

		commits, err := ctx.Git.CommitsBetween(gctx, n.ParentCommit, n.Tip)
		if err != nil {
			return err
		}
		if slices.Contains(commits, parent.Tip) {
			splog.Info("Recording complete %s of %s on top of %s", op, n.Name, parent.Name)
		} else {
			if err := syncBranch(ctx, op, n, parent); err != nil {
				return err
			}
		}

		if err := ctx.Git.SetParentCommit(gctx, n.Name, parent.Tip, n.ParentCommit); err != nil {
			return fmt.Errorf("failed to record parent commit of %s: %w", n.Name, err)
		}
		n.ParentCommit = parent.Tip
	}

	return ctx.Session.Checkout(gctx, originalBranch)
}

// syncBranch rebases or merges n onto its parent's tip and refreshes n's tip
func syncBranch(ctx *runtime.Context, op string, n, parent *engine.BranchNode) error {
	gctx := ctx.Context

	if err := ctx.Session.Checkout(gctx, n.Name); err != nil {
		return err
	}

	var err error
	if op == "merge" {
		ctx.Splog.Info("Merging %s into %s", parent.Name, n.Name)
		err = ctx.Git.Merge(gctx, parent.Name)
	} else {
		ctx.Splog.Info("Rebasing %s on top of %s", n.Name, parent.Name)
		err = ctx.Git.Rebase(gctx, parent.Name, n.ParentCommit, n.Name)
	}
	if err != nil {
		return stackyerrors.NewConflictError(n.Name, op, fmt.Sprintf(
			"Automatic %[1]s failed. Please complete the %[1]s (fix conflicts; `git %[1]s --continue`), then run `stacky continue`",
			op), err)
	}

	tip, err := ctx.Git.BranchTip(gctx, n.Name)
	if err != nil {
		return err
	}
	n.Tip = tip
	return nil
}
