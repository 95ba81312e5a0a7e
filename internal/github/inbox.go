package github

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"time"

	"github.com/google/go-github/v62/github"

	"stacky.dev/stacky/internal/engine"
)

// CheckState summarizes the commit statuses of a pull request head
type CheckState string

const (
	ChecksNone    CheckState = ""
	ChecksPassed  CheckState = "passed"
	ChecksFailed  CheckState = "failed"
	ChecksRunning CheckState = "running"
)

// InboxPR is an open pull request listed by inbox and prs
type InboxPR struct {
	engine.PRInfo
	Author          string
	CreatedAt       time.Time
	UpdatedAt       time.Time
	Approved        bool
	ReviewRequested bool
	Checks          CheckState
}

// Inbox groups the open pull requests that involve the authenticated user.
// Every group is sorted by last update, newest first.
type Inbox struct {
	WaitingOnYou    []InboxPR
	WaitingOnReview []InboxPR
	Approved        []InboxPR
	// ToReview are pull requests of others that request the user's review
	ToReview []InboxPR
}

// Authored returns the user's own pull requests
func (i *Inbox) Authored() []InboxPR {
	out := append([]InboxPR{}, i.WaitingOnYou...)
	out = append(out, i.WaitingOnReview...)
	return append(out, i.Approved...)
}

// All returns the user's pull requests followed by the ones to review
func (i *Inbox) All() []InboxPR {
	return append(i.Authored(), i.ToReview...)
}

// ListInbox lists the open pull requests authored by the user or waiting on
// the user's review
func (c *RESTClient) ListInbox(ctx context.Context) (*Inbox, error) {
	user, _, err := c.client.Users.Get(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("failed to get the authenticated user: %w", err)
	}
	login := user.GetLogin()

	prs, err := c.listOpen(ctx)
	if err != nil {
		return nil, err
	}

	inbox := &Inbox{}
	for _, pr := range prs {
		mine := pr.GetUser().GetLogin() == login
		requested := slices.ContainsFunc(pr.RequestedReviewers, func(u *github.User) bool {
			return u.GetLogin() == login
		})
		if !mine && !requested {
			continue
		}

		item := InboxPR{
			PRInfo:          toPRInfo(pr),
			Author:          pr.GetUser().GetLogin(),
			CreatedAt:       pr.GetCreatedAt().Time,
			UpdatedAt:       pr.GetUpdatedAt().Time,
			ReviewRequested: len(pr.RequestedReviewers) > 0,
		}
		if item.Checks, err = c.checkState(ctx, item.HeadSHA); err != nil {
			return nil, err
		}

		if !mine {
			inbox.ToReview = append(inbox.ToReview, item)
			continue
		}
		if item.Approved, err = c.approved(ctx, item.Number); err != nil {
			return nil, err
		}
		switch {
		case item.Draft:
			inbox.WaitingOnYou = append(inbox.WaitingOnYou, item)
		case item.Approved:
			inbox.Approved = append(inbox.Approved, item)
		case item.ReviewRequested:
			inbox.WaitingOnReview = append(inbox.WaitingOnReview, item)
		default:
			inbox.WaitingOnYou = append(inbox.WaitingOnYou, item)
		}
	}

	for _, group := range [][]InboxPR{inbox.WaitingOnYou, inbox.WaitingOnReview, inbox.Approved, inbox.ToReview} {
		sort.SliceStable(group, func(i, j int) bool { return group[i].UpdatedAt.After(group[j].UpdatedAt) })
	}
	return inbox, nil
}

func (c *RESTClient) listOpen(ctx context.Context) ([]*github.PullRequest, error) {
	opts := &github.PullRequestListOptions{
		State:       "open",
		ListOptions: github.ListOptions{PerPage: 100},
	}

	var out []*github.PullRequest
	for {
		prs, resp, err := c.client.PullRequests.List(ctx, c.owner, c.repo, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list open pull requests: %w", err)
		}
		out = append(out, prs...)
		if resp == nil || resp.NextPage == 0 {
			return out, nil
		}
		opts.Page = resp.NextPage
	}
}

// approved reports whether the latest review of some reviewer approves and no
// reviewer's latest review requests changes
func (c *RESTClient) approved(ctx context.Context, number int) (bool, error) {
	reviews, _, err := c.client.PullRequests.ListReviews(ctx, c.owner, c.repo, number, &github.ListOptions{PerPage: 100})
	if err != nil {
		return false, fmt.Errorf("failed to list reviews of pull request #%d: %w", number, err)
	}

	latest := make(map[string]string)
	for _, r := range reviews {
		switch r.GetState() {
		case "APPROVED", "CHANGES_REQUESTED", "DISMISSED":
			latest[r.GetUser().GetLogin()] = r.GetState()
		}
	}
	approved := false
	for _, state := range latest {
		if state == "CHANGES_REQUESTED" {
			return false, nil
		}
		if state == "APPROVED" {
			approved = true
		}
	}
	return approved, nil
}

func (c *RESTClient) checkState(ctx context.Context, sha string) (CheckState, error) {
	if sha == "" {
		return ChecksNone, nil
	}
	status, _, err := c.client.Repositories.GetCombinedStatus(ctx, c.owner, c.repo, sha, nil)
	if err != nil {
		return ChecksNone, fmt.Errorf("failed to get status of %s: %w", sha, err)
	}
	if status.GetTotalCount() == 0 {
		return ChecksNone, nil
	}
	switch status.GetState() {
	case "success":
		return ChecksPassed, nil
	case "failure", "error":
		return ChecksFailed, nil
	default:
		return ChecksRunning, nil
	}
}
