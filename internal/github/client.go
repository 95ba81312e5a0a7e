// Package github talks to the GitHub API on behalf of push, update, land,
// import, inbox and info.
package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/google/go-github/v62/github"
	"golang.org/x/oauth2"

	"stacky.dev/stacky/internal/engine"
)

// CreatePROptions contains options for creating a pull request
type CreatePROptions struct {
	Title string
	Body  string
	Head  string
	Base  string
	Draft bool
}

// UpdatePROptions contains the fields to change on a pull request; nil means unchanged
type UpdatePROptions struct {
	Title *string
	Body  *string
	Base  *string
}

// Client is the subset of GitHub stacky needs
type Client interface {
	engine.PRLister
	CreatePullRequest(ctx context.Context, opts CreatePROptions) (*engine.PRInfo, error)
	UpdatePullRequest(ctx context.Context, number int, opts UpdatePROptions) (*engine.PRInfo, error)
	GetPullRequest(ctx context.Context, number int) (*engine.PRInfo, error)
	MergePullRequest(ctx context.Context, number int, headSHA string) error
	PullRequestCommits(ctx context.Context, number int) ([]string, error)
	ListInbox(ctx context.Context) (*Inbox, error)
	OwnerRepo() (owner, repo string)
}

// RESTClient implements Client with go-github
type RESTClient struct {
	client *github.Client
	owner  string
	repo   string
}

var _ Client = (*RESTClient)(nil)

// NewRESTClient creates a client for owner/repo on host. Hosts other than
// github.com are treated as GitHub Enterprise.
func NewRESTClient(ctx context.Context, host, owner, repo, token string) (*RESTClient, error) {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	client := github.NewClient(oauth2.NewClient(ctx, ts))

	if host != "" && host != "github.com" {
		base := fmt.Sprintf("https://%s/api/v3/", host)
		upload := fmt.Sprintf("https://%s/api/uploads/", host)
		var err error
		client, err = client.WithEnterpriseURLs(base, upload)
		if err != nil {
			return nil, fmt.Errorf("failed to configure GitHub Enterprise host %s: %w", host, err)
		}
	}

	return &RESTClient{client: client, owner: owner, repo: repo}, nil
}

// NewRESTClientWithBaseURL creates a client against an arbitrary API root (tests)
func NewRESTClientWithBaseURL(httpClient *http.Client, baseURL, owner, repo string) (*RESTClient, error) {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid GitHub API URL %s: %w", baseURL, err)
	}
	client := github.NewClient(httpClient)
	client.BaseURL = u
	return &RESTClient{client: client, owner: owner, repo: repo}, nil
}

// OwnerRepo returns the repository the client works on
func (c *RESTClient) OwnerRepo() (string, string) {
	return c.owner, c.repo
}

// GetToken reads GITHUB_TOKEN, falling back to `gh auth token`
func GetToken(ctx context.Context, gh func(ctx context.Context, args ...string) (string, error)) (string, error) {
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		return token, nil
	}
	if gh == nil {
		return "", fmt.Errorf("GITHUB_TOKEN is not set")
	}

	output, err := gh(ctx, "auth", "token")
	if err != nil {
		return "", fmt.Errorf("failed to get GitHub token: %w", err)
	}
	token := strings.TrimSpace(output)
	if token == "" {
		return "", fmt.Errorf("empty GitHub token")
	}
	return token, nil
}
