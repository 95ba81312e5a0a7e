package engine

// Tree is a node of a sub-forest selected from the graph. A tree may hold a
// subset of a node's children (a downstack path holds one child per level).
type Tree struct {
	Node     *BranchNode
	Children []*Tree
}

// Forest is an ordered set of trees
type Forest []*Tree

// Scope selects which part of the current stack a command works on
type Scope int

const (
	// ScopeStack is the path down to the bottom plus everything above the branch
	ScopeStack Scope = iota
	// ScopeUpstack is the branch and its descendants
	ScopeUpstack
	// ScopeDownstack is the branch and its ancestors
	ScopeDownstack
	// ScopeAll is every stack in the repository
	ScopeAll
)

func (s Scope) String() string {
	switch s {
	case ScopeStack:
		return "stack"
	case ScopeUpstack:
		return "upstack"
	case ScopeDownstack:
		return "downstack"
	case ScopeAll:
		return "all"
	default:
		return "unknown"
	}
}

// DepthFirst yields nodes parent before child, trees in order
func (f Forest) DepthFirst() []*BranchNode {
	var out []*BranchNode
	var walk func(t *Tree)
	walk = func(t *Tree) {
		out = append(out, t.Node)
		for _, c := range t.Children {
			walk(c)
		}
	}
	for _, t := range f {
		walk(t)
	}
	return out
}

// Names returns the branch names of DepthFirst
func (f Forest) Names() []string {
	nodes := f.DepthFirst()
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.Name
	}
	return out
}

// SubTree returns n with all of its descendants
func (g *Graph) SubTree(n *BranchNode) *Tree {
	t := &Tree{Node: n}
	for _, c := range g.ChildrenOf(n) {
		t.Children = append(t.Children, g.SubTree(c))
	}
	return t
}

// wrapAncestors nests t under every ancestor of its node
func (g *Graph) wrapAncestors(t *Tree) *Tree {
	for p := g.ParentOf(t.Node); p != nil; p = g.ParentOf(p) {
		t = &Tree{Node: p, Children: []*Tree{t}}
	}
	return t
}

// Select returns the sub-forest of scope around branch
func (g *Graph) Select(scope Scope, branch string) (Forest, error) {
	if scope == ScopeAll {
		return g.AllStacks(), nil
	}
	n, err := g.Node(branch)
	if err != nil {
		return nil, err
	}
	switch scope {
	case ScopeUpstack:
		return Forest{g.SubTree(n)}, nil
	case ScopeDownstack:
		return Forest{g.wrapAncestors(&Tree{Node: n})}, nil
	default:
		return Forest{g.wrapAncestors(g.SubTree(n))}, nil
	}
}

// AllStacks returns one full tree per bottom
func (g *Graph) AllStacks() Forest {
	var f Forest
	for _, b := range g.Bottoms() {
		f = append(f, g.SubTree(b))
	}
	return f
}

// BottomLevel returns each bottom with only its direct children
func (g *Graph) BottomLevel() Forest {
	var f Forest
	for _, b := range g.Bottoms() {
		t := &Tree{Node: b}
		for _, c := range g.ChildrenOf(b) {
			t.Children = append(t.Children, &Tree{Node: c})
		}
		f = append(f, t)
	}
	return f
}

// CompleteStack returns the whole stack containing branch, starting at the
// first branch above the bottom
func (g *Graph) CompleteStack(branch string) (Forest, error) {
	root, err := g.StackRoot(branch)
	if err != nil {
		return nil, err
	}
	return Forest{g.SubTree(root)}, nil
}
