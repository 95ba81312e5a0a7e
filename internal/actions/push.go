package actions

import (
	"errors"
	"fmt"
	"strings"

	"stacky.dev/stacky/internal/engine"
	stackyerrors "stacky.dev/stacky/internal/errors"
	"stacky.dev/stacky/internal/github"
	"stacky.dev/stacky/internal/runtime"
	"stacky.dev/stacky/internal/tui"
	"stacky.dev/stacky/internal/tui/style"
)

// PushOptions contains options for the push command
type PushOptions struct {
	Scope engine.Scope
	// Force skips the confirmation prompt
	Force bool
	// NoPR only pushes; GitHub is not contacted
	NoPR bool
}

type pushPlan struct {
	node   *engine.BranchNode
	push   bool
	create bool
	// rebase is set when the open PR targets the wrong base
	rebase bool
}

// PushAction pushes every branch in scope that differs from its remote and
// makes sure each has an open PR against its parent
func PushAction(ctx *runtime.Context, opts PushOptions) error {
	gctx := ctx.Context
	g := ctx.Graph
	splog := ctx.Splog

	current, err := ctx.CurrentNode()
	if err != nil {
		return err
	}
	forest, err := g.Select(opts.Scope, current.Name)
	if err != nil {
		return err
	}

	var nodes []*engine.BranchNode
	for _, n := range forest.DepthFirst() {
		if n.IsRoot() {
			splog.Info("✓ Not pushing base branch %s", style.ColorBranchName(n.Name, false, false))
			continue
		}
		if !g.IsSyncedWithParent(n) {
			return stackyerrors.NewUserError("Branch %s is not synced with parent %s, sync first", n.Name, n.Parent)
		}
		nodes = append(nodes, n)
	}
	if len(nodes) == 0 {
		return nil
	}

	var client github.Client
	if !opts.NoPR {
		if client, err = ctx.GitHub(); err != nil {
			return err
		}
	}

	var plans []pushPlan
	for _, n := range nodes {
		p := pushPlan{node: n, push: !n.IsSyncedWithRemote()}
		if client != nil {
			if err := engine.LoadPRInfo(gctx, n, client); err != nil {
				return err
			}
			if pr := n.PR.Open(); pr == nil {
				p.create = true
			} else if pr.BaseRef != n.Parent {
				p.rebase = true
			}
		}

		switch {
		case p.push:
			splog.Info("- Will push %s", style.ColorBranchName(n.Name, false, true))
		default:
			splog.Info("✓ Not pushing %s, synced with remote", style.ColorBranchName(n.Name, false, false))
		}
		if p.create {
			splog.Info("- Will create PR for %s against %s", n.Name, n.Parent)
		}
		if p.rebase {
			splog.Info("- Will change base of PR #%d from %s to %s", n.PR.Open().Number, n.PR.Open().BaseRef, n.Parent)
		}
		if p.push || p.create || p.rebase {
			plans = append(plans, p)
		}
	}

	if len(plans) > 0 {
		ok, err := confirm(ctx, opts.Force, "Proceed?")
		if err != nil {
			return err
		}
		if !ok {
			return stackyerrors.NewUserError("Push canceled")
		}
		for _, p := range plans {
			if err := executePush(ctx, client, p); err != nil {
				return err
			}
		}
	}

	if client == nil || !ctx.Settings.UI.EnableStackComment {
		return nil
	}
	return updateStackComments(ctx, client, current.Name)
}

func executePush(ctx *runtime.Context, client github.Client, p pushPlan) error {
	gctx := ctx.Context
	n := p.node

	if p.push {
		ctx.Splog.Info("Pushing %s", n.Name)
		if err := ctx.Git.Push(gctx, ctx.Settings.Git.Remote, n.Name, ctx.Settings.Git.UseForcePush); err != nil {
			return fmt.Errorf("failed to push %s: %w", n.Name, err)
		}
		n.RemoteTip = n.Tip
	}

	switch {
	case p.create:
		title, err := tui.PromptInput(fmt.Sprintf("Title for the PR of %s", n.Name), n.Name)
		if errors.Is(err, tui.ErrInteractiveDisabled) {
			title = n.Name
		} else if err != nil {
			return err
		}
		pr, err := client.CreatePullRequest(gctx, github.CreatePROptions{
			Title: title,
			Head:  n.Name,
			Base:  n.Parent,
		})
		if err != nil {
			return fmt.Errorf("failed to create PR for %s: %w", n.Name, err)
		}
		ctx.Splog.Info("✓ Created PR #%d: %s", pr.Number, style.ColorPR(pr.URL))
		n.PR.Invalidate()
	case p.rebase:
		base := n.Parent
		pr := n.PR.Open()
		if _, err := client.UpdatePullRequest(gctx, pr.Number, github.UpdatePROptions{Base: &base}); err != nil {
			return fmt.Errorf("failed to change base of PR #%d: %w", pr.Number, err)
		}
		ctx.Splog.Info("✓ Changed base of PR #%d to %s", pr.Number, base)
		n.PR.Invalidate()
	}
	return nil
}

// updateStackComments rewrites the stack section in the body of every open
// PR of the stack containing branch
func updateStackComments(ctx *runtime.Context, client github.Client, branch string) error {
	gctx := ctx.Context

	forest, err := ctx.Graph.CompleteStack(branch)
	if err != nil {
		return err
	}
	for _, n := range forest.DepthFirst() {
		n.PR.Invalidate()
	}
	if err := engine.LoadPRInfoForForest(gctx, forest, client); err != nil {
		return err
	}

	for _, n := range forest.DepthFirst() {
		pr := n.PR.Open()
		if pr == nil {
			continue
		}
		body := github.ReplaceStackSection(pr.Body, StackSection(forest, n.Name))
		if body == pr.Body {
			continue
		}
		if _, err := client.UpdatePullRequest(gctx, pr.Number, github.UpdatePROptions{Body: &body}); err != nil {
			return fmt.Errorf("failed to update stack section of PR #%d: %w", pr.Number, err)
		}
		ctx.Splog.Debug("Updated stack section of PR #%d", pr.Number)
	}
	return nil
}

// StackSection renders the markdown list of the stack, marking highlight.
// PR caches of the forest must be loaded.
func StackSection(forest engine.Forest, highlight string) string {
	var b strings.Builder
	b.WriteString("**Stack**:\n")
	var walk func(t *engine.Tree, depth int)
	walk = func(t *engine.Tree, depth int) {
		n := t.Node
		label := fmt.Sprintf("`%s`", n.Name)
		if pr := n.PR.Open(); pr != nil {
			label = fmt.Sprintf("#%d", pr.Number)
		}
		b.WriteString(strings.Repeat("  ", depth))
		b.WriteString("- ")
		b.WriteString(label)
		if n.Name == highlight {
			b.WriteString(" 👈")
		}
		b.WriteString("\n")
		for _, c := range t.Children {
			walk(c, depth+1)
		}
	}
	for _, t := range forest {
		walk(t, 0)
	}
	return b.String()
}
