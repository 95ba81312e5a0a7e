package git

import (
	"context"
	"fmt"
	"strings"
)

// Fetch fetches and prunes a remote
func (g *Repo) Fetch(ctx context.Context, remote string) error {
	_, err := g.runner.Run(ctx, "fetch", "--prune", remote)
	return err
}

// Push pushes branch to the same name on remote
func (g *Repo) Push(ctx context.Context, remote, branch string, force bool) error {
	args := []string{"push"}
	if force {
		args = append(args, "--force")
	}
	args = append(args, remote, fmt.Sprintf("%s:%s", branch, branch))
	_, err := g.runner.Run(ctx, args...)
	return err
}

// UpdateBranchRef moves a branch that is not checked out, guarded by its previous value
func (g *Repo) UpdateBranchRef(ctx context.Context, branch, commit, previous string) error {
	args := []string{"update-ref", headsPrefix + branch, commit}
	if previous != "" {
		args = append(args, previous)
	}
	_, err := g.runner.Run(ctx, args...)
	return err
}

// ParseOwnerRepo extracts owner and repository name from a GitHub remote URL.
// Both https://host/owner/repo(.git) and git@host:owner/repo(.git) forms are accepted.
func ParseOwnerRepo(url string) (host, owner, repo string, err error) {
	url = strings.TrimSuffix(strings.TrimSpace(url), ".git")

	var path string
	switch {
	case strings.Contains(url, "://"):
		rest := url[strings.Index(url, "://")+3:]
		if at := strings.Index(rest, "@"); at >= 0 {
			rest = rest[at+1:]
		}
		slash := strings.Index(rest, "/")
		if slash < 0 {
			return "", "", "", fmt.Errorf("invalid remote URL: %s", url)
		}
		host, path = rest[:slash], rest[slash+1:]
	case strings.Contains(url, ":"):
		rest := url
		if at := strings.Index(rest, "@"); at >= 0 {
			rest = rest[at+1:]
		}
		colon := strings.Index(rest, ":")
		host, path = rest[:colon], rest[colon+1:]
	default:
		return "", "", "", fmt.Errorf("invalid remote URL: %s", url)
	}

	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) < 2 || parts[len(parts)-2] == "" || parts[len(parts)-1] == "" {
		return "", "", "", fmt.Errorf("invalid remote URL: %s", url)
	}
	return host, parts[len(parts)-2], parts[len(parts)-1], nil
}
