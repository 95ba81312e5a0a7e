// Package fold merges a branch into its parent and removes it from the stack.
package fold

import (
	"fmt"

	"stacky.dev/stacky/internal/config"
	"stacky.dev/stacky/internal/engine"
	stackyerrors "stacky.dev/stacky/internal/errors"
	"stacky.dev/stacky/internal/runtime"
	"stacky.dev/stacky/internal/tui/style"
)

// Options contains options for the fold command
type Options struct {
	// AllowEmpty records commits that end up empty instead of skipping them
	AllowEmpty bool
}

// Action folds the current branch into its parent
func Action(ctx *runtime.Context, opts Options) error {
	gctx := ctx.Context
	g := ctx.Graph
	splog := ctx.Splog

	branch, err := ctx.CurrentNode()
	if err != nil {
		return err
	}
	parent := g.ParentOf(branch)
	if parent == nil {
		return stackyerrors.NewUserError("Cannot fold stack bottom branch %s", branch.Name)
	}
	if parent.IsRoot() {
		return stackyerrors.NewUserError("Cannot fold into stack bottom branch %s", parent.Name)
	}
	if !g.IsSyncedWithParent(branch) {
		return stackyerrors.NewUserError("Branch %s is not synced with parent %s, sync before folding", branch.Name, parent.Name)
	}

	// newest first, which is the pop order the journal wants
	commits, err := ctx.Git.CommitsBetween(gctx, branch.ParentCommit, branch.Tip)
	if err != nil {
		return err
	}
	if len(commits) == 0 {
		splog.Info("No commits to fold from %s into %s", branch.Name, parent.Name)
	} else {
		splog.Info("Folding %d commits from %s into %s",
			len(commits), style.ColorBranchName(branch.Name, false, false), style.ColorBranchName(parent.Name, false, false))
	}

	children := branch.Children()
	if len(children) > 0 {
		splog.Info("Reparenting %d children to %s", len(children), parent.Name)
		for _, c := range children {
			splog.Info("  %s -> %s", c, parent.Name)
		}
	}

	if err := ctx.Session.Checkout(gctx, parent.Name); err != nil {
		return err
	}

	if ctx.Settings.Git.UseMerge {
		return mergeFold(ctx, config.MergeFoldPayload{
			FoldBranch:   branch.Name,
			ParentBranch: parent.Name,
			Children:     children,
		})
	}
	return cherryPickFold(ctx, ctx.Session.CurrentBranch(), config.FoldPayload{
		FoldBranch:   branch.Name,
		ParentBranch: parent.Name,
		Commits:      commits,
		Children:     children,
		AllowEmpty:   opts.AllowEmpty,
	})
}

// Resume continues an interrupted cherry-pick fold with the commits still
// pending. The last pending commit is the one that stopped; when HEAD already
// carries it the user finished the pick and it is dropped from the queue.
func Resume(ctx *runtime.Context, record config.Record) error {
	payload := *record.Fold
	if n := len(payload.Commits); n > 0 {
		last := payload.Commits[n-1]
		picked, err := alreadyPicked(ctx, last)
		if err != nil {
			return err
		}
		if picked {
			ctx.Splog.Info("Commit %s was already applied", shortSHA(last))
			payload.Commits = append([]string{}, payload.Commits[:n-1]...)
		}
	}
	return cherryPickFold(ctx, record.Branch, payload)
}

func alreadyPicked(ctx *runtime.Context, commit string) (bool, error) {
	head, err := ctx.Git.CommitIdentity(ctx.Context, "HEAD")
	if err != nil {
		return false, err
	}
	picked, err := ctx.Git.CommitIdentity(ctx.Context, commit)
	if err != nil {
		return false, err
	}
	return head == picked, nil
}

// ResumeMerge finishes an interrupted merge fold
func ResumeMerge(ctx *runtime.Context, record config.Record) error {
	p := record.MergeFold
	return finish(ctx, p.FoldBranch, p.ParentBranch, p.Children)
}

func mergeFold(ctx *runtime.Context, payload config.MergeFoldPayload) error {
	record := config.NewMergeFoldRecord(ctx.Session.CurrentBranch(), payload)
	if err := ctx.Journal.Save(record); err != nil {
		return fmt.Errorf("failed to save fold state: %w", err)
	}

	ctx.Splog.Info("Merging %s into %s", payload.FoldBranch, payload.ParentBranch)
	if err := ctx.Git.Merge(ctx.Context, payload.FoldBranch); err != nil {
		return stackyerrors.NewConflictError(payload.FoldBranch, "merge", fmt.Sprintf(
			"Merge failed for branch %s. Please resolve conflicts and run `stacky continue`", payload.FoldBranch), err)
	}
	return finish(ctx, payload.FoldBranch, payload.ParentBranch, payload.Children)
}

// cherryPickFold applies the pending commits one by one. The journal is
// written before each pop, so a conflict leaves the conflicting commit and
// everything after it pending.
func cherryPickFold(ctx *runtime.Context, branch string, payload config.FoldPayload) error {
	gctx := ctx.Context
	splog := ctx.Splog

	pending := append([]string{}, payload.Commits...)
	for len(pending) > 0 {
		payload.Commits = pending
		if err := ctx.Journal.Save(config.NewFoldRecord(branch, payload)); err != nil {
			return fmt.Errorf("failed to save fold state: %w", err)
		}

		commit := pending[len(pending)-1]
		pending = pending[:len(pending)-1]

		empty, err := wouldBeEmpty(ctx, commit)
		if err != nil {
			return err
		}
		if empty && !payload.AllowEmpty {
			splog.Info("Skipping empty commit %s", shortSHA(commit))
			continue
		}

		splog.Info("Cherry-picking commit %s", shortSHA(commit))
		if err := ctx.Git.CherryPick(gctx, commit, payload.AllowEmpty); err != nil {
			return stackyerrors.NewConflictError(payload.FoldBranch, "cherry-pick", fmt.Sprintf(
				"Cherry-pick failed for commit %s. Please resolve conflicts and run `stacky continue`", commit), err)
		}
	}

	return finish(ctx, payload.FoldBranch, payload.ParentBranch, payload.Children)
}

// wouldBeEmpty applies commit without committing and checks the index. A
// failed dry run is not empty: the real cherry-pick reports the conflict.
func wouldBeEmpty(ctx *runtime.Context, commit string) (bool, error) {
	gctx := ctx.Context

	if err := ctx.Git.CherryPickNoCommit(gctx, commit); err != nil {
		if resetErr := ctx.Git.ResetHard(gctx, "HEAD"); resetErr != nil {
			ctx.Splog.Debug("Failed to reset after dry run of %s: %v", commit, resetErr)
		}
		return false, nil
	}

	staged, err := ctx.Git.HasStagedChanges(gctx)
	if err != nil {
		return false, err
	}
	if err := ctx.Git.ResetHard(gctx, "HEAD"); err != nil {
		return false, err
	}
	return !staged, nil
}

// finish reparents the children of the folded branch onto its parent and
// deletes it. The children are recorded as synced with the parent's new tip.
func finish(ctx *runtime.Context, foldName, parentName string, children []string) error {
	gctx := ctx.Context
	g := ctx.Graph
	splog := ctx.Splog

	if !g.Contains(foldName) {
		splog.Info("✓ Fold operation completed")
		return nil
	}
	parent, err := g.Node(parentName)
	if err != nil {
		return err
	}
	tip, err := ctx.Git.BranchTip(gctx, parentName)
	if err != nil {
		return err
	}
	parent.Tip = tip

	for _, name := range children {
		child, ok := g.Get(name)
		if !ok {
			continue
		}
		if err := reparentChild(ctx, child, foldName, parent); err != nil {
			return err
		}
	}

	splog.Info("Deleting branch %s", foldName)
	if err := ctx.Git.DeleteBranch(gctx, foldName); err != nil {
		return err
	}
	if err := ctx.Git.DeleteParentCommit(gctx, foldName); err != nil {
		return err
	}
	if err := g.Remove(foldName); err != nil {
		return err
	}

	splog.Info("✓ Successfully folded %s into %s", foldName, parentName)
	return nil
}

func reparentChild(ctx *runtime.Context, child *engine.BranchNode, from string, parent *engine.BranchNode) error {
	gctx := ctx.Context

	ctx.Splog.Info("Reparenting %s from %s to %s", child.Name, from, parent.Name)
	if err := ctx.Graph.Reparent(child.Name, parent.Name); err != nil {
		return err
	}
	if err := ctx.Git.SetParentBranch(gctx, child.Name, parent.Name); err != nil {
		return err
	}
	if err := ctx.Git.SetParentCommit(gctx, child.Name, parent.Tip, child.ParentCommit); err != nil {
		return err
	}
	child.ParentCommit = parent.Tip
	return nil
}

func shortSHA(sha string) string {
	if len(sha) > 8 {
		return sha[:8]
	}
	return sha
}
