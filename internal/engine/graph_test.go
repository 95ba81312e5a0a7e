package engine_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"stacky.dev/stacky/internal/engine"
	stackyerrors "stacky.dev/stacky/internal/errors"
)

// buildGraph creates main <- a <- b <- c and main <- d, all synced
func buildGraph(t *testing.T) *engine.Graph {
	t.Helper()
	g := engine.NewGraph()
	add := func(name, parent, parentCommit, tip string) {
		n := engine.NewBranchNode(name, parent, parentCommit)
		n.Tip = tip
		_, err := g.Add(n)
		require.NoError(t, err)
	}
	add("main", "", "", "m1")
	add("a", "main", "m1", "a1")
	add("b", "a", "a1", "b1")
	add("c", "b", "b1", "c1")
	add("d", "main", "m1", "d1")
	return g
}

func TestGraph(t *testing.T) {
	t.Run("synced predicate follows the parent tip", func(t *testing.T) {
		g := buildGraph(t)
		a, _ := g.Get("a")
		main, _ := g.Get("main")

		require.True(t, g.IsSyncedWithParent(a))
		require.True(t, g.IsSyncedWithParent(main))

		main.Tip = "m2"
		require.False(t, g.IsSyncedWithParent(a))
		require.True(t, g.IsSyncedWithParent(main))
	})

	t.Run("remote predicate compares tips", func(t *testing.T) {
		n := engine.NewBranchNode("x", "main", "m1")
		n.Tip = "x1"
		require.False(t, n.IsSyncedWithRemote())
		n.RemoteTip = "x1"
		require.True(t, n.IsSyncedWithRemote())
	})

	t.Run("adding under an unknown parent fails", func(t *testing.T) {
		g := engine.NewGraph()
		_, err := g.Add(engine.NewBranchNode("a", "main", "m1"))
		require.Error(t, err)
	})

	t.Run("re-adding with a different parent is a consistency error", func(t *testing.T) {
		g := buildGraph(t)
		_, err := g.Add(engine.NewBranchNode("b", "d", "a1"))
		require.ErrorIs(t, err, stackyerrors.ErrConsistency)

		existing, err := g.Add(engine.NewBranchNode("b", "a", "a1"))
		require.NoError(t, err)
		require.Equal(t, "b1", existing.Tip)
	})

	t.Run("every non-root node is in exactly one children set", func(t *testing.T) {
		g := buildGraph(t)
		require.NoError(t, g.Reparent("c", "d"))

		counts := map[string]int{}
		for _, name := range g.Names() {
			n, _ := g.Get(name)
			for _, c := range n.Children() {
				counts[c]++
			}
		}
		for _, name := range g.Names() {
			n, _ := g.Get(name)
			if n.IsRoot() {
				require.Zero(t, counts[name])
				continue
			}
			require.Equal(t, 1, counts[name], name)
			parent := g.ParentOf(n)
			require.True(t, parent.HasChild(name))
		}
	})

	t.Run("reparent refuses a descendant target", func(t *testing.T) {
		g := buildGraph(t)
		err := g.Reparent("a", "c")
		require.ErrorIs(t, err, stackyerrors.ErrUser)

		a, _ := g.Get("a")
		require.Equal(t, "main", a.Parent)
	})

	t.Run("reparent to nothing makes a root", func(t *testing.T) {
		g := buildGraph(t)
		require.NoError(t, g.Reparent("b", ""))

		b, _ := g.Get("b")
		require.True(t, b.IsRoot())
		require.Empty(t, b.ParentCommit)
		a, _ := g.Get("a")
		require.False(t, a.HasChildren())
		require.Len(t, g.Bottoms(), 2)
	})

	t.Run("remove requires children to be moved first", func(t *testing.T) {
		g := buildGraph(t)
		require.Error(t, g.Remove("b"))

		require.NoError(t, g.Reparent("c", "a"))
		require.NoError(t, g.Remove("b"))
		require.False(t, g.Contains("b"))

		a, _ := g.Get("a")
		require.Equal(t, []string{"c"}, a.Children())

		_, err := g.Node("b")
		require.ErrorIs(t, err, stackyerrors.ErrNotFound)
	})

	t.Run("stack root is the first branch above the bottom", func(t *testing.T) {
		g := buildGraph(t)
		root, err := g.StackRoot("c")
		require.NoError(t, err)
		require.Equal(t, "a", root.Name)

		root, err = g.StackRoot("main")
		require.NoError(t, err)
		require.Equal(t, "main", root.Name)
	})
}

func TestSelect(t *testing.T) {
	g := buildGraph(t)
	require.NoError(t, g.Reparent("d", "a"))
	// main <- a <- {b <- c, d}

	cases := []struct {
		scope    engine.Scope
		branch   string
		expected []string
	}{
		{engine.ScopeUpstack, "a", []string{"a", "b", "c", "d"}},
		{engine.ScopeUpstack, "c", []string{"c"}},
		{engine.ScopeDownstack, "c", []string{"main", "a", "b", "c"}},
		{engine.ScopeDownstack, "main", []string{"main"}},
		{engine.ScopeStack, "b", []string{"main", "a", "b", "c"}},
		{engine.ScopeStack, "a", []string{"main", "a", "b", "c", "d"}},
		{engine.ScopeAll, "", []string{"main", "a", "b", "c", "d"}},
	}
	for _, c := range cases {
		t.Run(c.scope.String()+" "+c.branch, func(t *testing.T) {
			f, err := g.Select(c.scope, c.branch)
			require.NoError(t, err)
			require.Equal(t, c.expected, f.Names())
		})
	}

	t.Run("unknown branch", func(t *testing.T) {
		_, err := g.Select(engine.ScopeStack, "nope")
		require.ErrorIs(t, err, stackyerrors.ErrNotFound)
	})

	t.Run("bottom level holds only direct children", func(t *testing.T) {
		require.Equal(t, []string{"main", "a"}, g.BottomLevel().Names())
	})

	t.Run("complete stack starts above the bottom", func(t *testing.T) {
		f, err := g.CompleteStack("c")
		require.NoError(t, err)
		require.Equal(t, []string{"a", "b", "c", "d"}, f.Names())
	})
}

type fakeLister struct {
	prs   map[string][]engine.PRInfo
	calls int
	err   error
}

func (f *fakeLister) ListPullRequests(_ context.Context, branch string) ([]engine.PRInfo, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.prs[branch], nil
}

func TestPRCache(t *testing.T) {
	ctx := context.Background()

	t.Run("starts unloaded and loads once", func(t *testing.T) {
		lister := &fakeLister{prs: map[string][]engine.PRInfo{
			"a": {
				{Number: 1, State: engine.PRClosed},
				{Number: 3, State: engine.PROpen, BaseRef: "main"},
			},
		}}
		n := engine.NewBranchNode("a", "main", "m1")
		require.False(t, n.PR.Loaded())
		require.Nil(t, n.PR.Open())

		require.NoError(t, engine.LoadPRInfo(ctx, n, lister))
		require.NoError(t, engine.LoadPRInfo(ctx, n, lister))
		require.Equal(t, 1, lister.calls)
		require.True(t, n.PR.Loaded())
		require.Equal(t, 3, n.PR.Open().Number)
		require.Len(t, n.PR.All(), 2)
		require.Equal(t, 1, n.PR.All()[0].Number)

		n.PR.Invalidate()
		require.False(t, n.PR.Loaded())
	})

	t.Run("no PRs loads an empty cache", func(t *testing.T) {
		n := engine.NewBranchNode("a", "main", "m1")
		require.NoError(t, engine.LoadPRInfo(ctx, n, &fakeLister{}))
		require.True(t, n.PR.Loaded())
		require.Nil(t, n.PR.Open())
		require.Empty(t, n.PR.All())
	})

	t.Run("two open PRs is a user error", func(t *testing.T) {
		lister := &fakeLister{prs: map[string][]engine.PRInfo{
			"a": {{Number: 1, State: engine.PROpen}, {Number: 2, State: engine.PROpen}},
		}}
		n := engine.NewBranchNode("a", "main", "m1")
		err := engine.LoadPRInfo(ctx, n, lister)
		require.ErrorIs(t, err, stackyerrors.ErrUser)
		require.False(t, n.PR.Loaded())
	})

	t.Run("lister failures stay unloaded", func(t *testing.T) {
		n := engine.NewBranchNode("a", "main", "m1")
		err := engine.LoadPRInfo(ctx, n, &fakeLister{err: errors.New("boom")})
		require.Error(t, err)
		require.False(t, n.PR.Loaded())
	})

	t.Run("forest loading covers every node", func(t *testing.T) {
		g := buildGraph(t)
		lister := &fakeLister{}
		require.NoError(t, engine.LoadPRInfoForForest(ctx, g.AllStacks(), lister))
		require.Equal(t, g.Len(), lister.calls)
	})
}
