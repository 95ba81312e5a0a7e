package engine

import (
	"fmt"
	"sort"

	stackyerrors "stacky.dev/stacky/internal/errors"
)

// Graph owns every BranchNode. Parent and children links are names resolved
// through the graph, so removing a node only erases its entry and inbound links.
type Graph struct {
	nodes map[string]*BranchNode
}

// NewGraph creates an empty graph
func NewGraph() *Graph {
	return &Graph{nodes: make(map[string]*BranchNode)}
}

// Len returns the number of nodes
func (g *Graph) Len() int {
	return len(g.nodes)
}

// Get returns the node for name
func (g *Graph) Get(name string) (*BranchNode, bool) {
	n, ok := g.nodes[name]
	return n, ok
}

// Node returns the node for name or a NotFoundError
func (g *Graph) Node(name string) (*BranchNode, error) {
	n, ok := g.nodes[name]
	if !ok {
		return nil, stackyerrors.NewNotFoundError("Branch %s is not in a stack", name)
	}
	return n, nil
}

// Contains reports whether name is in the graph
func (g *Graph) Contains(name string) bool {
	_, ok := g.nodes[name]
	return ok
}

// Names returns every branch in the graph, sorted
func (g *Graph) Names() []string {
	names := make([]string, 0, len(g.nodes))
	for name := range g.nodes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Add inserts node. If a node with the same name exists, its parent and
// parent commit must match node's and the existing node is returned.
func (g *Graph) Add(node *BranchNode) (*BranchNode, error) {
	if existing, ok := g.nodes[node.Name]; ok {
		if existing.Parent != node.Parent {
			return nil, stackyerrors.NewConsistencyError(node.Name, "parent", existing.Parent, node.Parent)
		}
		if existing.ParentCommit != node.ParentCommit {
			return nil, stackyerrors.NewConsistencyError(node.Name, "parent_commit", existing.ParentCommit, node.ParentCommit)
		}
		return existing, nil
	}

	if node.children == nil {
		node.children = make(map[string]struct{})
	}
	if node.Parent != "" {
		parent, ok := g.nodes[node.Parent]
		if !ok {
			return nil, fmt.Errorf("cannot add %s: parent %s is not in the graph", node.Name, node.Parent)
		}
		parent.children[node.Name] = struct{}{}
	}
	g.nodes[node.Name] = node
	return node, nil
}

// ParentOf returns the parent node, or nil for roots
func (g *Graph) ParentOf(n *BranchNode) *BranchNode {
	if n.Parent == "" {
		return nil
	}
	return g.nodes[n.Parent]
}

// ChildrenOf returns the child nodes sorted by name
func (g *Graph) ChildrenOf(n *BranchNode) []*BranchNode {
	names := n.Children()
	children := make([]*BranchNode, 0, len(names))
	for _, name := range names {
		if c, ok := g.nodes[name]; ok {
			children = append(children, c)
		}
	}
	return children
}

// IsSyncedWithParent reports whether the node's recorded parent commit is the
// parent's current tip. Roots are always synced.
func (g *Graph) IsSyncedWithParent(n *BranchNode) bool {
	parent := g.ParentOf(n)
	return parent == nil || n.ParentCommit == parent.Tip
}

// Reparent moves child under newParent. An empty newParent makes child a root.
func (g *Graph) Reparent(child, newParent string) error {
	c, err := g.Node(child)
	if err != nil {
		return err
	}
	var p *BranchNode
	if newParent != "" {
		if p, err = g.Node(newParent); err != nil {
			return err
		}
		if g.IsDescendant(newParent, child) {
			return stackyerrors.NewUserError("Cannot move %s onto its own descendant %s", child, newParent)
		}
	}

	if old := g.ParentOf(c); old != nil {
		delete(old.children, child)
	}
	c.Parent = newParent
	if p != nil {
		p.children[child] = struct{}{}
	} else {
		c.ParentCommit = ""
	}
	return nil
}

// IsDescendant reports whether name is ancestor or one of its descendants
func (g *Graph) IsDescendant(name, ancestor string) bool {
	for n, ok := g.nodes[name]; ok; n, ok = g.nodes[n.Parent] {
		if n.Name == ancestor {
			return true
		}
		if n.Parent == "" {
			break
		}
	}
	return false
}

// Remove erases name from the graph and from its parent's children.
// Children must be reparented first.
func (g *Graph) Remove(name string) error {
	n, err := g.Node(name)
	if err != nil {
		return err
	}
	if n.HasChildren() {
		return fmt.Errorf("cannot remove %s: it still has children %v", name, n.Children())
	}
	if parent := g.ParentOf(n); parent != nil {
		delete(parent.children, name)
	}
	delete(g.nodes, name)
	return nil
}

// Bottoms returns the roots of the graph, sorted by name
func (g *Graph) Bottoms() []*BranchNode {
	var roots []*BranchNode
	for _, name := range g.Names() {
		if n := g.nodes[name]; n.IsRoot() {
			roots = append(roots, n)
		}
	}
	return roots
}

// Tops returns the nodes without children, sorted by name
func (g *Graph) Tops() []*BranchNode {
	var tops []*BranchNode
	for _, name := range g.Names() {
		if n := g.nodes[name]; !n.HasChildren() {
			tops = append(tops, n)
		}
	}
	return tops
}

// StackRoot returns the first branch above the bottom on the way down from name
func (g *Graph) StackRoot(name string) (*BranchNode, error) {
	n, err := g.Node(name)
	if err != nil {
		return nil, err
	}
	for {
		parent := g.ParentOf(n)
		if parent == nil || parent.IsRoot() {
			return n, nil
		}
		n = parent
	}
}
