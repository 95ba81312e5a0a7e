package tui

import (
	"fmt"
	"strings"

	"stacky.dev/stacky/internal/engine"
	"stacky.dev/stacky/internal/tui/style"
)

// TreeRenderer renders a forest upside down: the bottom is printed last,
// so "up" the stack is up on screen
type TreeRenderer struct {
	graph         *engine.Graph
	currentBranch string
	// CompactPR shows only the PR number
	CompactPR bool
}

// NewTreeRenderer creates a renderer highlighting currentBranch
func NewTreeRenderer(g *engine.Graph, currentBranch string) *TreeRenderer {
	return &TreeRenderer{graph: g, currentBranch: currentBranch}
}

// Render returns the trees of f separated by blank lines
func (r *TreeRenderer) Render(f engine.Forest) string {
	blocks := make([]string, 0, len(f))
	for _, t := range f {
		blocks = append(blocks, r.RenderTree(t))
	}
	return strings.Join(blocks, "\n\n")
}

// RenderTree renders a single tree
func (r *TreeRenderer) RenderTree(t *engine.Tree) string {
	lines := []string{r.FormatName(t.Node)}
	lines = r.appendChildren(lines, t, "")

	for i, j := 0, len(lines)-1; i < j; i, j = i+1, j-1 {
		lines[i], lines[j] = lines[j], lines[i]
	}
	return strings.Join(lines, "\n")
}

// appendChildren lays out the subtree top-down; the connectors are drawn for
// the reversed order, hence the opening corner on the last child
func (r *TreeRenderer) appendChildren(lines []string, t *engine.Tree, indent string) []string {
	for i, child := range t.Children {
		last := i == len(t.Children)-1
		connector, next := "├── ", "│   "
		if last {
			connector, next = "┌── ", "    "
		}
		lines = append(lines, indent+connector+r.FormatName(child.Node))
		lines = r.appendChildren(lines, child, indent+next)
	}
	return lines
}

// FormatName renders a branch with its status markers and PR suffix
func (r *TreeRenderer) FormatName(n *engine.BranchNode) string {
	var prefix strings.Builder
	needsSync := !r.graph.IsSyncedWithParent(n)
	if needsSync {
		prefix.WriteString(style.ColorMarker("!"))
	}
	if !n.IsSyncedWithRemote() {
		prefix.WriteString(style.ColorMarker("~"))
	}
	isCurrent := n.Name == r.currentBranch
	if isCurrent {
		prefix.WriteString(style.ColorCurrent("*"))
	}
	if prefix.Len() > 0 {
		prefix.WriteString(" ")
	}

	return prefix.String() + style.ColorBranchName(n.Name, isCurrent, needsSync) + r.prSuffix(n)
}

func (r *TreeRenderer) prSuffix(n *engine.BranchNode) string {
	pr := n.PR.Open()
	if pr == nil {
		return ""
	}
	label := fmt.Sprintf("#%d", pr.Number)
	if pr.Draft {
		label += " 🚧"
	}
	if !r.CompactPR {
		label += " " + pr.Title
	}
	return " " + style.ColorPR("("+label+")")
}
