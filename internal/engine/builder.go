package engine

import (
	"context"
	"fmt"
	"sort"
	"strings"

	stackyerrors "stacky.dev/stacky/internal/errors"
)

// MarkerReader is the read side of the repository the builder walks
type MarkerReader interface {
	ListBranches(ctx context.Context) ([]string, error)
	BranchExists(ctx context.Context, branch string) (bool, error)
	BranchTip(ctx context.Context, branch string) (string, error)
	RemoteTip(ctx context.Context, remote, branch string) (string, bool, error)
	ParentBranch(ctx context.Context, branch string) (string, bool, error)
	ParentCommit(ctx context.Context, branch string) (string, bool, error)
}

// Builder reconstructs the stack graph by walking parent markers
type Builder struct {
	reader  MarkerReader
	remote  string
	bottoms map[string]bool
}

// NewBuilder creates a builder. bottoms are the branches treated as roots.
func NewBuilder(reader MarkerReader, remote string, bottoms []string) *Builder {
	set := make(map[string]bool, len(bottoms))
	for _, b := range bottoms {
		set[b] = true
	}
	return &Builder{reader: reader, remote: remote, bottoms: set}
}

// IsBottom reports whether branch is a configured stack bottom
func (b *Builder) IsBottom(branch string) bool {
	return b.bottoms[branch]
}

// Bottoms returns the configured bottoms, sorted
func (b *Builder) Bottoms() []string {
	names := make([]string, 0, len(b.bottoms))
	for name := range b.bottoms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type walkStep struct {
	branch       string
	parentCommit string
}

// LoadBranch walks the parent markers of branch down to a bottom and adds
// every branch on the way to g. It returns the node for branch and the names
// visited, starting with branch. When the chain breaks, top is nil; with
// check set a broken chain is a UserError instead.
func (b *Builder) LoadBranch(ctx context.Context, g *Graph, branch string, check bool) (*BranchNode, []string, error) {
	var steps []walkStep
	seen := make(map[string]bool)
	broken := func() (*BranchNode, []string, error) {
		visited := names(steps)
		if check {
			return nil, visited, stackyerrors.NewUserError("Branch is not in a stack: %s", branch)
		}
		return nil, visited, nil
	}

	current := branch
	for !b.bottoms[current] {
		if seen[current] {
			return broken()
		}
		seen[current] = true

		parent, hasParent, err := b.reader.ParentBranch(ctx, current)
		if err != nil {
			return nil, names(steps), err
		}
		parentCommit, hasCommit, err := b.reader.ParentCommit(ctx, current)
		if err != nil {
			return nil, names(steps), err
		}
		steps = append(steps, walkStep{branch: current, parentCommit: parentCommit})
		if !hasParent || !hasCommit {
			return broken()
		}
		current = parent
	}
	exists, err := b.reader.BranchExists(ctx, current)
	if err != nil {
		return nil, names(steps), err
	}
	if !exists {
		return broken()
	}
	steps = append(steps, walkStep{branch: current})

	var top *BranchNode
	for i := len(steps) - 1; i >= 0; i-- {
		parent := ""
		if top != nil {
			parent = top.Name
		}
		n, err := b.addNode(ctx, g, steps[i].branch, parent, steps[i].parentCommit)
		if err != nil {
			return nil, names(steps), err
		}
		top = n
	}
	return top, names(steps), nil
}

func (b *Builder) addNode(ctx context.Context, g *Graph, name, parent, parentCommit string) (*BranchNode, error) {
	if g.Contains(name) {
		return g.Add(NewBranchNode(name, parent, parentCommit))
	}

	node := NewBranchNode(name, parent, parentCommit)
	tip, err := b.reader.BranchTip(ctx, name)
	if err != nil {
		return nil, err
	}
	node.Tip = tip
	remoteTip, ok, err := b.reader.RemoteTip(ctx, b.remote, name)
	if err != nil {
		return nil, err
	}
	if ok {
		node.RemoteTip = remoteTip
	}
	return g.Add(node)
}

// LoadAll walks every local branch not visited yet. Broken chains are
// skipped and reported as warnings. The returned node is the one for the
// current branch, or nil when the current branch is not in a stack.
func (b *Builder) LoadAll(ctx context.Context, g *Graph, current string) (*BranchNode, []string, error) {
	branches, err := b.reader.ListBranches(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list branches: %w", err)
	}

	pending := make(map[string]bool, len(branches))
	for _, name := range branches {
		pending[name] = true
	}

	var currentTop *BranchNode
	var warnings []string
	for _, name := range branches {
		if !pending[name] {
			continue
		}
		top, visited, err := b.LoadBranch(ctx, g, name, false)
		if err != nil {
			return nil, warnings, err
		}
		for _, v := range visited {
			delete(pending, v)
		}
		if top == nil {
			if len(visited) > 1 {
				warnings = append(warnings, fmt.Sprintf("Broken stack: %s", strings.Join(visited, " -> ")))
			}
			continue
		}
		if name == current {
			currentTop = top
		}
	}
	if currentTop == nil && current != "" {
		currentTop, _ = g.Get(current)
	}
	return currentTop, warnings, nil
}

func names(steps []walkStep) []string {
	out := make([]string, len(steps))
	for i, s := range steps {
		out[i] = s.branch
	}
	return out
}
