package actions

import (
	"fmt"
	"slices"

	"stacky.dev/stacky/internal/engine"
	stackyerrors "stacky.dev/stacky/internal/errors"
	"stacky.dev/stacky/internal/runtime"
	"stacky.dev/stacky/internal/tui/style"
)

// ImportOptions contains options for the import command
type ImportOptions struct {
	// Name is the top branch of the stack to import
	Name  string
	Force bool
}

type importStep struct {
	branch       string
	parent       string
	parentCommit string
}

// ImportAction stacks branches created by another tool. It follows the base
// of each branch's open PR down to a bottom and records the parent of each
// branch at the commit before its PR's first commit.
func ImportAction(ctx *runtime.Context, opts ImportOptions) error {
	gctx := ctx.Context
	splog := ctx.Splog

	client, err := ctx.GitHub()
	if err != nil {
		return err
	}

	var steps []importStep
	seen := map[string]bool{}
	for branch := opts.Name; !ctx.Builder.IsBottom(branch); {
		if seen[branch] {
			return stackyerrors.NewUserError("PR bases form a cycle through %s", branch)
		}
		seen[branch] = true

		splog.Info("Getting PR information for %s", branch)
		n := engine.NewBranchNode(branch, "", "")
		if err := engine.LoadPRInfo(gctx, n, client); err != nil {
			return err
		}
		pr := n.PR.Open()
		if pr == nil {
			return stackyerrors.NewUserError("Branch %s has no open PR", branch)
		}
		if pr.HeadRef != branch {
			return stackyerrors.NewUserError("Branch %s is misconfigured: PR #%d head is %s", branch, pr.Number, pr.HeadRef)
		}
		commits, err := client.PullRequestCommits(gctx, pr.Number)
		if err != nil {
			return err
		}
		if len(commits) == 0 {
			return stackyerrors.NewUserError("PR #%d has no commits", pr.Number)
		}
		parentCommit, err := ctx.Git.RevParse(gctx, commits[0]+"^")
		if err != nil {
			return fmt.Errorf("failed to find the parent of %s, fetch first: %w", commits[0], err)
		}

		splog.Info("Branch %s: PR #%d, parent is %s at commit %s", branch, pr.Number, pr.BaseRef, parentCommit)
		steps = append(steps, importStep{branch: branch, parent: pr.BaseRef, parentCommit: parentCommit})
		branch = pr.BaseRef
	}
	if len(steps) == 0 {
		return nil
	}

	slices.Reverse(steps)
	for _, s := range steps {
		splog.Info("- Will set parent of %s to %s at commit %s", style.ColorBranchName(s.branch, false, false), s.parent, s.parentCommit)
	}
	ok, err := confirm(ctx, opts.Force, "Proceed?")
	if err != nil {
		return err
	}
	if !ok {
		return stackyerrors.NewUserError("Import canceled")
	}

	for _, s := range steps {
		if err := ctx.Git.SetParentBranch(gctx, s.branch, s.parent); err != nil {
			return err
		}
		if err := ctx.Git.SetParentCommit(gctx, s.branch, s.parentCommit, ""); err != nil {
			return err
		}
	}
	return ctx.Reload()
}
