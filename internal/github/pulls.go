package github

import (
	"context"
	"fmt"

	"github.com/google/go-github/v62/github"

	"stacky.dev/stacky/internal/engine"
)

// ListPullRequests returns every pull request, in any state, whose head is branch
func (c *RESTClient) ListPullRequests(ctx context.Context, branch string) ([]engine.PRInfo, error) {
	opts := &github.PullRequestListOptions{
		Head:        fmt.Sprintf("%s:%s", c.owner, branch),
		State:       "all",
		ListOptions: github.ListOptions{PerPage: 100},
	}

	var out []engine.PRInfo
	for {
		prs, resp, err := c.client.PullRequests.List(ctx, c.owner, c.repo, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list pull requests for %s: %w", branch, err)
		}
		for _, pr := range prs {
			out = append(out, toPRInfo(pr))
		}
		if resp == nil || resp.NextPage == 0 {
			return out, nil
		}
		opts.Page = resp.NextPage
	}
}

// CreatePullRequest opens a new pull request
func (c *RESTClient) CreatePullRequest(ctx context.Context, opts CreatePROptions) (*engine.PRInfo, error) {
	pr := &github.NewPullRequest{
		Title: github.String(opts.Title),
		Head:  github.String(opts.Head),
		Base:  github.String(opts.Base),
		Draft: github.Bool(opts.Draft),
	}
	if opts.Body != "" {
		pr.Body = github.String(opts.Body)
	}

	created, _, err := c.client.PullRequests.Create(ctx, c.owner, c.repo, pr)
	if err != nil {
		return nil, fmt.Errorf("failed to create pull request: %w", err)
	}
	info := toPRInfo(created)
	return &info, nil
}

// UpdatePullRequest changes the title, body or base of a pull request
func (c *RESTClient) UpdatePullRequest(ctx context.Context, number int, opts UpdatePROptions) (*engine.PRInfo, error) {
	update := &github.PullRequest{
		Title: opts.Title,
		Body:  opts.Body,
	}
	if opts.Base != nil {
		update.Base = &github.PullRequestBranch{Ref: opts.Base}
	}

	updated, _, err := c.client.PullRequests.Edit(ctx, c.owner, c.repo, number, update)
	if err != nil {
		return nil, fmt.Errorf("failed to update pull request #%d: %w", number, err)
	}
	info := toPRInfo(updated)
	return &info, nil
}

// GetPullRequest fetches one pull request, including its mergeability
func (c *RESTClient) GetPullRequest(ctx context.Context, number int) (*engine.PRInfo, error) {
	pr, _, err := c.client.PullRequests.Get(ctx, c.owner, c.repo, number)
	if err != nil {
		return nil, fmt.Errorf("failed to get pull request #%d: %w", number, err)
	}
	info := toPRInfo(pr)
	return &info, nil
}

// MergePullRequest squash-merges a pull request. GitHub refuses when the head
// moved away from headSHA.
func (c *RESTClient) MergePullRequest(ctx context.Context, number int, headSHA string) error {
	opts := &github.PullRequestOptions{MergeMethod: "squash", SHA: headSHA}
	result, _, err := c.client.PullRequests.Merge(ctx, c.owner, c.repo, number, "", opts)
	if err != nil {
		return fmt.Errorf("failed to merge pull request #%d: %w", number, err)
	}
	if !result.GetMerged() {
		return fmt.Errorf("pull request #%d was not merged: %s", number, result.GetMessage())
	}
	return nil
}

// PullRequestCommits returns the commits of a pull request, oldest first
func (c *RESTClient) PullRequestCommits(ctx context.Context, number int) ([]string, error) {
	opts := &github.ListOptions{PerPage: 100}

	var out []string
	for {
		commits, resp, err := c.client.PullRequests.ListCommits(ctx, c.owner, c.repo, number, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list commits of pull request #%d: %w", number, err)
		}
		for _, commit := range commits {
			out = append(out, commit.GetSHA())
		}
		if resp == nil || resp.NextPage == 0 {
			return out, nil
		}
		opts.Page = resp.NextPage
	}
}

func toPRInfo(pr *github.PullRequest) engine.PRInfo {
	info := engine.PRInfo{
		ID:        pr.GetID(),
		Number:    pr.GetNumber(),
		URL:       pr.GetHTMLURL(),
		Title:     pr.GetTitle(),
		Body:      pr.GetBody(),
		Draft:     pr.GetDraft(),
		Mergeable: engine.MergeUnknown,
	}
	if pr.Base != nil {
		info.BaseRef = pr.Base.GetRef()
	}
	if pr.Head != nil {
		info.HeadRef = pr.Head.GetRef()
		info.HeadSHA = pr.Head.GetSHA()
	}
	if pr.Mergeable != nil {
		info.Mergeable = engine.MergeConflicting
		if *pr.Mergeable {
			info.Mergeable = engine.MergeClean
		}
	}

	switch {
	case pr.MergedAt != nil || pr.GetMerged():
		info.State = engine.PRMerged
	case pr.GetState() == "open":
		info.State = engine.PROpen
	default:
		info.State = engine.PRClosed
	}
	return info
}
