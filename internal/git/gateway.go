package git

import (
	"context"
	"fmt"
	"path/filepath"
)

// Ref namespaces used for stack markers
const (
	ParentCommitRefPrefix = "refs/stack-parent/"
	BottomRefPrefix       = "refs/stacky-bottom-branch/"
	headsPrefix           = "refs/heads/"
)

// DefaultBottoms are treated as stack bottoms whenever they exist
var DefaultBottoms = []string{"main", "master"}

// Gateway is everything the stack engines need from the repository.
// Merge, rebase and cherry-pick failures are returned as *errors.GitCommandError.
type Gateway interface {
	// Reads
	CurrentBranch(ctx context.Context) (string, error)
	ListBranches(ctx context.Context) ([]string, error)
	BranchExists(ctx context.Context, branch string) (bool, error)
	BranchTip(ctx context.Context, branch string) (string, error)
	RemoteTip(ctx context.Context, remote, branch string) (string, bool, error)
	ParentBranch(ctx context.Context, branch string) (string, bool, error)
	ParentCommit(ctx context.Context, branch string) (string, bool, error)
	ParentCommitRefs(ctx context.Context) (map[string]string, error)
	CustomBottoms(ctx context.Context) ([]string, error)
	CommitsBetween(ctx context.Context, from, to string) ([]string, error)
	IsAncestor(ctx context.Context, ancestor, descendant string) (bool, error)
	MergeBase(ctx context.Context, a, b string) (string, error)
	HasStagedChanges(ctx context.Context) (bool, error)
	CommitIdentity(ctx context.Context, rev string) (string, error)
	RevParse(ctx context.Context, rev string) (string, error)
	RemoteURL(ctx context.Context, remote string) (string, error)

	// Markers
	SetParentBranch(ctx context.Context, branch, parent string) error
	UnsetParentBranch(ctx context.Context, branch string) error
	SetParentCommit(ctx context.Context, branch, commit, previous string) error
	DeleteParentCommit(ctx context.Context, branch string) error
	SetBottom(ctx context.Context, branch string) error
	UnsetBottom(ctx context.Context, branch string) error

	// Working copy operations
	Checkout(ctx context.Context, branch string) error
	CreateBranch(ctx context.Context, branch, start string) error
	DeleteBranch(ctx context.Context, branch string) error
	Rebase(ctx context.Context, onto, upstream, branch string) error
	Merge(ctx context.Context, branch string) error
	CherryPick(ctx context.Context, commit string, allowEmpty bool) error
	CherryPickNoCommit(ctx context.Context, commit string) error
	ResetHard(ctx context.Context, revision string) error
	Commit(ctx context.Context, args []string) error
	Log(ctx context.Context, args []string) error

	// Remote operations
	Fetch(ctx context.Context, remote string) error
	Push(ctx context.Context, remote, branch string, force bool) error
	UpdateBranchRef(ctx context.Context, branch, commit, previous string) error
}

// Repo implements Gateway with go-git reads and git command execution
type Repo struct {
	repo   *Repository
	runner *CommandRunner
	gitDir string
}

var _ Gateway = (*Repo)(nil)

// NewRepo opens the repository that contains dir
func NewRepo(ctx context.Context, dir string) (*Repo, error) {
	repository, err := OpenRepository(dir)
	if err != nil {
		return nil, err
	}
	runner := NewCommandRunner(repository.Root())
	gitDir, err := runner.Run(ctx, "rev-parse", "--absolute-git-dir")
	if err != nil {
		return nil, fmt.Errorf("failed to locate git dir: %w", err)
	}
	return &Repo{
		repo:   repository,
		runner: runner,
		gitDir: filepath.Clean(gitDir),
	}, nil
}

// Root returns the worktree root
func (g *Repo) Root() string {
	return g.repo.Root()
}

// GitDir returns the absolute git directory
func (g *Repo) GitDir() string {
	return g.gitDir
}

// Runner exposes the underlying command runner
func (g *Repo) Runner() *CommandRunner {
	return g.runner
}
