package runtime

import (
	"context"
	"fmt"
	"os"

	"stacky.dev/stacky/internal/config"
	"stacky.dev/stacky/internal/engine"
	"stacky.dev/stacky/internal/git"
	"stacky.dev/stacky/internal/github"
	stackyerrors "stacky.dev/stacky/internal/errors"
	"stacky.dev/stacky/internal/tui"
)

// Context provides access to the repository, the stack graph and output for commands
type Context struct {
	Context  context.Context
	Git      git.Gateway
	Graph    *engine.Graph
	Builder  *engine.Builder
	Session  *Session
	Journal  *config.Journal
	Settings config.Settings
	Splog    *tui.Splog
	RepoRoot string

	gitHubClient  github.Client
	gitHubFactory func(ctx context.Context) (github.Client, error)
}

// Options configures NewContext
type Options struct {
	RepoRoot string
	GitDir   string
	Settings config.Settings
	Splog    *tui.Splog
	// GitHubClient is used as is when set
	GitHubClient github.Client
	// GitHubFactory creates the client on first use when GitHubClient is nil
	GitHubFactory func(ctx context.Context) (github.Client, error)
}

// NewContext reads the current branch and builds the stack graph of every
// branch in the repository. Broken stacks are reported as warnings.
func NewContext(gctx context.Context, gw git.Gateway, opts Options) (*Context, error) {
	splog := opts.Splog
	if splog == nil {
		splog = tui.NewSplog()
	}

	session, err := NewSession(gctx, gw)
	if err != nil {
		return nil, fmt.Errorf("failed to read current branch: %w", err)
	}

	ctx := &Context{
		Context:       gctx,
		Git:           gw,
		Session:       session,
		Journal:       config.NewJournal(config.JournalPath(opts.GitDir)),
		Settings:      opts.Settings,
		Splog:         splog,
		RepoRoot:      opts.RepoRoot,
		gitHubClient:  opts.GitHubClient,
		gitHubFactory: opts.GitHubFactory,
	}
	if err := ctx.Reload(); err != nil {
		return nil, err
	}
	return ctx, nil
}

// Reload rebuilds the graph from the markers in the repository
func (c *Context) Reload() error {
	bottoms, err := LoadBottoms(c.Context, c.Git)
	if err != nil {
		return err
	}
	c.Builder = engine.NewBuilder(c.Git, c.Settings.Git.Remote, bottoms)
	c.Graph = engine.NewGraph()

	_, warnings, err := c.Builder.LoadAll(c.Context, c.Graph, c.Session.CurrentBranch())
	if err != nil {
		return err
	}
	for _, w := range warnings {
		c.Splog.Warn(w)
	}
	return nil
}

// LoadBottoms returns the default bottoms that exist plus the custom bottoms
func LoadBottoms(ctx context.Context, gw git.Gateway) ([]string, error) {
	var bottoms []string
	for _, name := range git.DefaultBottoms {
		exists, err := gw.BranchExists(ctx, name)
		if err != nil {
			return nil, err
		}
		if exists {
			bottoms = append(bottoms, name)
		}
	}
	custom, err := gw.CustomBottoms(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read custom bottoms: %w", err)
	}
	return append(bottoms, custom...), nil
}

// CurrentNode returns the node of the checked out branch
func (c *Context) CurrentNode() (*engine.BranchNode, error) {
	current := c.Session.CurrentBranch()
	if current == "" {
		return nil, stackyerrors.NewUserError("Not on a branch")
	}
	n, ok := c.Graph.Get(current)
	if !ok {
		return nil, stackyerrors.NewUserError("Current branch %s is not in a stack", current)
	}
	return n, nil
}

// StackNode returns the node of name after walking its parent markers down to
// a bottom. A branch whose chain breaks is a UserError.
func (c *Context) StackNode(name string) (*engine.BranchNode, error) {
	n, _, err := c.Builder.LoadBranch(c.Context, c.Graph, name, true)
	return n, err
}

// GitHub returns the GitHub client, creating it on first use
func (c *Context) GitHub() (github.Client, error) {
	if c.gitHubClient != nil {
		return c.gitHubClient, nil
	}
	if c.gitHubFactory == nil {
		return nil, fmt.Errorf("GitHub is not configured")
	}
	client, err := c.gitHubFactory(c.Context)
	if err != nil {
		return nil, err
	}
	c.gitHubClient = client
	return client, nil
}

// GetContext opens the repository containing the working directory
func GetContext(gctx context.Context, splog *tui.Splog) (*Context, error) {
	dir, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	repo, err := git.NewRepo(gctx, dir)
	if err != nil {
		return nil, fmt.Errorf("not a git repository: %w", err)
	}

	settings, err := config.LoadSettings(repo.Root())
	if err != nil {
		return nil, err
	}

	return NewContext(gctx, repo, Options{
		RepoRoot: repo.Root(),
		GitDir:   repo.GitDir(),
		Settings: settings,
		Splog:    splog,
		GitHubFactory: func(ctx context.Context) (github.Client, error) {
			return newGitHubClient(ctx, repo, settings.Git.Remote)
		},
	})
}

func newGitHubClient(ctx context.Context, repo *git.Repo, remote string) (github.Client, error) {
	url, err := repo.RemoteURL(ctx, remote)
	if err != nil {
		return nil, fmt.Errorf("failed to read URL of remote %s: %w", remote, err)
	}
	host, owner, name, err := git.ParseOwnerRepo(url)
	if err != nil {
		return nil, err
	}
	token, err := github.GetToken(ctx, repo.Runner().RunGH)
	if err != nil {
		return nil, err
	}
	return github.NewRESTClient(ctx, host, owner, name, token)
}
