package git

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/storer"
)

// Repository wraps a go-git repository for ref and config reads
type Repository struct {
	repo *gogit.Repository
	root string
}

// OpenRepository opens the git repository containing path
func OpenRepository(path string) (*Repository, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}

	repo, err := gogit.PlainOpenWithOptions(absPath, &gogit.PlainOpenOptions{
		DetectDotGit:          true,
		EnableDotGitCommonDir: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open repository: %w", err)
	}

	root := absPath
	if wt, err := repo.Worktree(); err == nil {
		root = wt.Filesystem.Root()
	}

	return &Repository{repo: repo, root: root}, nil
}

// Root returns the worktree root directory
func (r *Repository) Root() string {
	return r.root
}

// ReadRef resolves a reference to a commit hash. ok is false when the ref does not exist.
func (r *Repository) ReadRef(name string) (string, bool, error) {
	ref, err := r.repo.Reference(plumbing.ReferenceName(name), true)
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to read ref %s: %w", name, err)
	}
	return ref.Hash().String(), true, nil
}

// ListRefs returns every hash reference under prefix keyed by the name with the prefix removed
func (r *Repository) ListRefs(prefix string) (map[string]string, error) {
	iter, err := r.repo.References()
	if err != nil {
		return nil, fmt.Errorf("failed to list refs: %w", err)
	}
	defer iter.Close()

	refs := make(map[string]string)
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		name := ref.Name().String()
		if ref.Type() != plumbing.HashReference || !strings.HasPrefix(name, prefix) {
			return nil
		}
		refs[strings.TrimPrefix(name, prefix)] = ref.Hash().String()
		return nil
	})
	if err != nil && !errors.Is(err, storer.ErrStop) {
		return nil, fmt.Errorf("failed to iterate refs: %w", err)
	}
	return refs, nil
}

// BranchNames returns all local branch names, sorted
func (r *Repository) BranchNames() ([]string, error) {
	branches, err := r.ListRefs("refs/heads/")
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(branches))
	for name := range branches {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// HeadBranch returns the branch HEAD points at, or "" when HEAD is detached
func (r *Repository) HeadBranch() (string, error) {
	head, err := r.repo.Storer.Reference(plumbing.HEAD)
	if err != nil {
		return "", fmt.Errorf("failed to read HEAD: %w", err)
	}
	if head.Type() != plumbing.SymbolicReference || !head.Target().IsBranch() {
		return "", nil
	}
	return head.Target().Short(), nil
}

// BranchMerge reads branch.<name>.remote and branch.<name>.merge from the repository config
func (r *Repository) BranchMerge(branch string) (remote string, merge string, err error) {
	cfg, err := r.repo.Config()
	if err != nil {
		return "", "", fmt.Errorf("failed to read config: %w", err)
	}
	b, ok := cfg.Branches[branch]
	if !ok {
		return "", "", nil
	}
	return b.Remote, b.Merge.String(), nil
}

// RemoteURL returns the first URL of the named remote
func (r *Repository) RemoteURL(remote string) (string, error) {
	rem, err := r.repo.Remote(remote)
	if err != nil {
		return "", fmt.Errorf("failed to read remote %s: %w", remote, err)
	}
	urls := rem.Config().URLs
	if len(urls) == 0 {
		return "", fmt.Errorf("remote %s has no URL", remote)
	}
	return urls[0], nil
}
