package engine

import "sort"

// BranchNode is one branch of the stack graph
type BranchNode struct {
	Name string
	// Parent is "" for roots
	Parent string
	// Tip is the commit the branch points at
	Tip string
	// ParentCommit is the parent tip recorded at the last successful sync, "" for roots
	ParentCommit string
	// RemoteTip is the last known remote commit, "" when the branch was never pushed
	RemoteTip string
	// PR is the pull request cache; it starts unloaded
	PR PRCache

	children map[string]struct{}
}

// NewBranchNode creates a node with no children
func NewBranchNode(name, parent, parentCommit string) *BranchNode {
	return &BranchNode{
		Name:         name,
		Parent:       parent,
		ParentCommit: parentCommit,
		children:     make(map[string]struct{}),
	}
}

// IsRoot reports whether the node has no parent
func (n *BranchNode) IsRoot() bool {
	return n.Parent == ""
}

// IsSyncedWithRemote reports whether the remote holds the current tip
func (n *BranchNode) IsSyncedWithRemote() bool {
	return n.Tip == n.RemoteTip
}

// Children returns the names of the node's children, sorted
func (n *BranchNode) Children() []string {
	names := make([]string, 0, len(n.children))
	for name := range n.children {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// HasChildren reports whether any branch is stacked on this one
func (n *BranchNode) HasChildren() bool {
	return len(n.children) > 0
}

// HasChild reports whether name is a child of the node
func (n *BranchNode) HasChild(name string) bool {
	_, ok := n.children[name]
	return ok
}
