package engine

import (
	"context"
	"fmt"
	"sort"

	stackyerrors "stacky.dev/stacky/internal/errors"
)

// PRState is the state of a pull request
type PRState string

const (
	PROpen   PRState = "OPEN"
	PRMerged PRState = "MERGED"
	PRClosed PRState = "CLOSED"
)

// Mergeability is GitHub's verdict on merging a pull request. It is only
// computed when a single pull request is fetched.
type Mergeability string

const (
	MergeUnknown     Mergeability = "UNKNOWN"
	MergeClean       Mergeability = "MERGEABLE"
	MergeConflicting Mergeability = "CONFLICTING"
)

// PRInfo describes one pull request whose head is a branch
type PRInfo struct {
	ID        int64
	Number    int
	State     PRState
	URL       string
	Title     string
	Body      string
	BaseRef   string
	HeadRef   string
	HeadSHA   string
	Draft     bool
	Mergeable Mergeability
}

// PRCache is either unloaded or loaded with the open PR (if any) and every PR of the branch
type PRCache struct {
	loaded bool
	open   *PRInfo
	all    map[int]PRInfo
}

// Loaded reports whether the cache was populated
func (c *PRCache) Loaded() bool {
	return c.loaded
}

// Open returns the open PR, or nil
func (c *PRCache) Open() *PRInfo {
	return c.open
}

// All returns every PR sorted by number
func (c *PRCache) All() []PRInfo {
	out := make([]PRInfo, 0, len(c.all))
	for _, pr := range c.all {
		out = append(out, pr)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out
}

// Invalidate returns the cache to the unloaded state
func (c *PRCache) Invalidate() {
	*c = PRCache{}
}

func (c *PRCache) set(prs []PRInfo) error {
	all := make(map[int]PRInfo, len(prs))
	var open *PRInfo
	for _, pr := range prs {
		all[pr.Number] = pr
		if pr.State != PROpen {
			continue
		}
		if open != nil {
			return fmt.Errorf("multiple open PRs: #%d and #%d", open.Number, pr.Number)
		}
		p := pr
		open = &p
	}
	c.loaded = true
	c.open = open
	c.all = all
	return nil
}

// PRLister lists every pull request (any state) whose head is branch
type PRLister interface {
	ListPullRequests(ctx context.Context, branch string) ([]PRInfo, error)
}

// LoadPRInfo populates the PR cache of n unless it is already loaded
func LoadPRInfo(ctx context.Context, n *BranchNode, lister PRLister) error {
	if n.PR.Loaded() {
		return nil
	}
	prs, err := lister.ListPullRequests(ctx, n.Name)
	if err != nil {
		return fmt.Errorf("failed to get PR info for %s: %w", n.Name, err)
	}
	if err := n.PR.set(prs); err != nil {
		return stackyerrors.NewUserError("Branch %s has more than one open PR: %v", n.Name, err)
	}
	return nil
}

// LoadPRInfoForForest loads the PR cache of every node in f
func LoadPRInfoForForest(ctx context.Context, f Forest, lister PRLister) error {
	for _, n := range f.DepthFirst() {
		if err := LoadPRInfo(ctx, n, lister); err != nil {
			return err
		}
	}
	return nil
}
