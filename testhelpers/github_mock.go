package testhelpers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	gogithub "github.com/google/go-github/v62/github"
	"github.com/stretchr/testify/require"

	"stacky.dev/stacky/internal/github"
)

// SamplePRData describes a PR seeded into the mock server
type SamplePRData struct {
	Number int
	Title  string
	Body   string
	Head   string
	Base   string
	Draft  bool
	// State is "open", "closed" or "merged"
	State string

	Author    string
	Reviewers []string
	HeadSHA   string
	// Mergeable is left unknown when nil
	Mergeable *bool
	// Commits are the PR's commit shas, oldest first
	Commits   []string
	UpdatedAt time.Time
}

// MockGitHubServerConfig holds the state of a mock GitHub server
type MockGitHubServerConfig struct {
	Owner string
	Repo  string
	// Login is the authenticated user
	Login string

	mu         sync.Mutex
	prs        map[int]*gogithub.PullRequest
	commits    map[int][]string
	reviews    map[int][]*gogithub.PullRequestReview
	statuses   map[string]string
	nextNumber int
	// CreatedPRs are the PRs opened through the API, in order
	CreatedPRs []*gogithub.PullRequest
	// UpdatedPRs holds the last edit of each PR number
	UpdatedPRs map[int]*gogithub.PullRequest
	// ListCalls counts list requests
	ListCalls int
	// MergedPRs are the PR numbers merged through the API, in order
	MergedPRs []int
}

// NewMockGitHubServerConfig creates an empty config for owner/repo
func NewMockGitHubServerConfig() *MockGitHubServerConfig {
	return &MockGitHubServerConfig{
		Owner:      "owner",
		Repo:       "repo",
		Login:      "me",
		prs:        make(map[int]*gogithub.PullRequest),
		commits:    make(map[int][]string),
		reviews:    make(map[int][]*gogithub.PullRequestReview),
		statuses:   make(map[string]string),
		nextNumber: 1,
		UpdatedPRs: make(map[int]*gogithub.PullRequest),
	}
}

// AddPR seeds a PR
func (c *MockGitHubServerConfig) AddPR(data SamplePRData) *gogithub.PullRequest {
	c.mu.Lock()
	defer c.mu.Unlock()

	if data.Number == 0 {
		data.Number = c.nextNumber
	}
	if data.Number >= c.nextNumber {
		c.nextNumber = data.Number + 1
	}
	state := data.State
	if state == "" {
		state = "open"
	}

	pr := &gogithub.PullRequest{
		ID:      gogithub.Int64(int64(1000 + data.Number)),
		Number:  gogithub.Int(data.Number),
		Title:   gogithub.String(data.Title),
		Body:    gogithub.String(data.Body),
		Head:      &gogithub.PullRequestBranch{Ref: gogithub.String(data.Head), SHA: gogithub.String(data.HeadSHA)},
		Base:      &gogithub.PullRequestBranch{Ref: gogithub.String(data.Base)},
		Draft:     gogithub.Bool(data.Draft),
		HTMLURL:   gogithub.String(c.prURL(data.Number)),
		State:     gogithub.String("open"),
		Mergeable: data.Mergeable,
		UpdatedAt: &gogithub.Timestamp{Time: data.UpdatedAt},
	}
	if data.Author != "" {
		pr.User = &gogithub.User{Login: gogithub.String(data.Author)}
	}
	for _, reviewer := range data.Reviewers {
		pr.RequestedReviewers = append(pr.RequestedReviewers, &gogithub.User{Login: gogithub.String(reviewer)})
	}
	c.commits[data.Number] = data.Commits
	if state != "open" {
		pr.State = gogithub.String("closed")
	}
	if state == "merged" {
		pr.MergedAt = &gogithub.Timestamp{Time: time.Now()}
	}
	c.prs[data.Number] = pr
	return pr
}

// AddReview records a review of state ("APPROVED", "CHANGES_REQUESTED") by user
func (c *MockGitHubServerConfig) AddReview(number int, user, state string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reviews[number] = append(c.reviews[number], &gogithub.PullRequestReview{
		User:  &gogithub.User{Login: gogithub.String(user)},
		State: gogithub.String(state),
	})
}

// SetStatus sets the combined status ("success", "pending", "failure") of sha
func (c *MockGitHubServerConfig) SetStatus(sha, state string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.statuses[sha] = state
}

// PR returns the current state of a PR, or nil
func (c *MockGitHubServerConfig) PR(number int) *gogithub.PullRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.prs[number]
}

// OpenPRFor returns the open PR whose head is branch, or nil
func (c *MockGitHubServerConfig) OpenPRFor(branch string) *gogithub.PullRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, pr := range c.prs {
		if pr.Head.GetRef() == branch && pr.GetState() == "open" {
			return pr
		}
	}
	return nil
}

func (c *MockGitHubServerConfig) prURL(number int) string {
	return fmt.Sprintf("https://github.com/%s/%s/pull/%d", c.Owner, c.Repo, number)
}

func (c *MockGitHubServerConfig) list(head, state string) []*gogithub.PullRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ListCalls++

	branch := strings.TrimPrefix(head, c.Owner+":")
	out := []*gogithub.PullRequest{}
	for _, pr := range c.prs {
		if head != "" && pr.Head.GetRef() != branch {
			continue
		}
		if state != "all" && pr.GetState() != state {
			continue
		}
		out = append(out, pr)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].GetNumber() < out[j].GetNumber() })
	return out
}

func (c *MockGitHubServerConfig) create(newPR gogithub.NewPullRequest) *gogithub.PullRequest {
	pr := c.AddPR(SamplePRData{
		Title: newPR.GetTitle(),
		Body:  newPR.GetBody(),
		Head:  newPR.GetHead(),
		Base:  newPR.GetBase(),
		Draft: newPR.GetDraft(),
	})

	c.mu.Lock()
	defer c.mu.Unlock()
	c.CreatedPRs = append(c.CreatedPRs, pr)
	return pr
}

type pullRequestUpdate struct {
	Title *string `json:"title,omitempty"`
	Body  *string `json:"body,omitempty"`
	Base  *string `json:"base,omitempty"`
	State *string `json:"state,omitempty"`
}

func (c *MockGitHubServerConfig) edit(number int, update pullRequestUpdate) *gogithub.PullRequest {
	c.mu.Lock()
	defer c.mu.Unlock()

	pr, ok := c.prs[number]
	if !ok {
		return nil
	}
	if update.Title != nil {
		pr.Title = update.Title
	}
	if update.Body != nil {
		pr.Body = update.Body
	}
	if update.Base != nil {
		pr.Base = &gogithub.PullRequestBranch{Ref: update.Base}
	}
	if update.State != nil {
		pr.State = update.State
	}
	c.UpdatedPRs[number] = pr
	return pr
}

func (c *MockGitHubServerConfig) merge(number int, sha string) (*gogithub.PullRequestMergeResult, int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	pr, ok := c.prs[number]
	switch {
	case !ok:
		return nil, http.StatusNotFound
	case pr.GetState() != "open":
		return nil, http.StatusMethodNotAllowed
	case sha != "" && pr.Head.GetSHA() != "" && sha != pr.Head.GetSHA():
		return nil, http.StatusConflict
	}
	pr.State = gogithub.String("closed")
	pr.Merged = gogithub.Bool(true)
	pr.MergedAt = &gogithub.Timestamp{Time: time.Now()}
	c.MergedPRs = append(c.MergedPRs, number)
	return &gogithub.PullRequestMergeResult{
		SHA:     gogithub.String(pr.Head.GetSHA()),
		Merged:  gogithub.Bool(true),
		Message: gogithub.String("Pull Request successfully merged"),
	}, http.StatusOK
}

func (c *MockGitHubServerConfig) combinedStatus(sha string) *gogithub.CombinedStatus {
	c.mu.Lock()
	defer c.mu.Unlock()

	state, ok := c.statuses[sha]
	if !ok {
		return &gogithub.CombinedStatus{State: gogithub.String("pending"), TotalCount: gogithub.Int(0)}
	}
	return &gogithub.CombinedStatus{State: gogithub.String(state), TotalCount: gogithub.Int(1)}
}

// NewMockGitHubServer creates an httptest server speaking the pulls API
func NewMockGitHubServer(t *testing.T, config *MockGitHubServerConfig) *httptest.Server {
	t.Helper()
	if config == nil {
		config = NewMockGitHubServerConfig()
	}

	writeJSON := func(w http.ResponseWriter, status int, v any) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(v)
	}

	basePath := "/repos/" + config.Owner + "/" + config.Repo + "/pulls"
	mux := http.NewServeMux()

	mux.HandleFunc("GET "+basePath, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		state := q.Get("state")
		if state == "" {
			state = "open"
		}
		writeJSON(w, http.StatusOK, config.list(q.Get("head"), state))
	})

	mux.HandleFunc("POST "+basePath, func(w http.ResponseWriter, r *http.Request) {
		var newPR gogithub.NewPullRequest
		if err := json.NewDecoder(r.Body).Decode(&newPR); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		writeJSON(w, http.StatusCreated, config.create(newPR))
	})

	prNumber := func(w http.ResponseWriter, r *http.Request) (int, bool) {
		number, err := strconv.Atoi(r.PathValue("number"))
		if err != nil {
			http.Error(w, "invalid PR number", http.StatusBadRequest)
			return 0, false
		}
		return number, true
	}

	mux.HandleFunc("GET /user", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, &gogithub.User{Login: gogithub.String(config.Login)})
	})

	mux.HandleFunc("GET "+basePath+"/{number}", func(w http.ResponseWriter, r *http.Request) {
		number, ok := prNumber(w, r)
		if !ok {
			return
		}
		pr := config.PR(number)
		if pr == nil {
			http.Error(w, "PR not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, pr)
	})

	mux.HandleFunc("GET "+basePath+"/{number}/commits", func(w http.ResponseWriter, r *http.Request) {
		number, ok := prNumber(w, r)
		if !ok {
			return
		}
		config.mu.Lock()
		commits := []*gogithub.RepositoryCommit{}
		for _, sha := range config.commits[number] {
			commits = append(commits, &gogithub.RepositoryCommit{SHA: gogithub.String(sha)})
		}
		config.mu.Unlock()
		writeJSON(w, http.StatusOK, commits)
	})

	mux.HandleFunc("GET "+basePath+"/{number}/reviews", func(w http.ResponseWriter, r *http.Request) {
		number, ok := prNumber(w, r)
		if !ok {
			return
		}
		config.mu.Lock()
		reviews := append([]*gogithub.PullRequestReview{}, config.reviews[number]...)
		config.mu.Unlock()
		writeJSON(w, http.StatusOK, reviews)
	})

	mux.HandleFunc("PUT "+basePath+"/{number}/merge", func(w http.ResponseWriter, r *http.Request) {
		number, ok := prNumber(w, r)
		if !ok {
			return
		}
		var req struct {
			SHA string `json:"sha"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		result, status := config.merge(number, req.SHA)
		if result == nil {
			http.Error(w, "PR cannot be merged", status)
			return
		}
		writeJSON(w, status, result)
	})

	mux.HandleFunc("GET /repos/"+config.Owner+"/"+config.Repo+"/commits/{ref}/status", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, config.combinedStatus(r.PathValue("ref")))
	})

	mux.HandleFunc("PATCH "+basePath+"/{number}", func(w http.ResponseWriter, r *http.Request) {
		number, ok := prNumber(w, r)
		if !ok {
			return
		}
		var update pullRequestUpdate
		if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		pr := config.edit(number, update)
		if pr == nil {
			http.Error(w, "PR not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, pr)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

// NewMockGitHubClient creates a stacky GitHub client backed by a mock server
func NewMockGitHubClient(t *testing.T, config *MockGitHubServerConfig) *github.RESTClient {
	t.Helper()
	server := NewMockGitHubServer(t, config)
	client, err := github.NewRESTClientWithBaseURL(server.Client(), server.URL, config.Owner, config.Repo)
	require.NoError(t, err)
	return client
}
