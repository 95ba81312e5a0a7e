package testhelpers

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"stacky.dev/stacky/internal/git"
)

// RecordingGateway wraps a Gateway and records every call that changes the
// repository, the working copy or a remote. Reads pass through unrecorded.
type RecordingGateway struct {
	git.Gateway

	mu    sync.Mutex
	calls []string
}

// NewRecordingGateway wraps gw
func NewRecordingGateway(gw git.Gateway) *RecordingGateway {
	return &RecordingGateway{Gateway: gw}
}

// Calls returns the recorded calls as "Method arg1 arg2"
func (r *RecordingGateway) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string{}, r.calls...)
}

// CallsTo returns the recorded calls of one method
func (r *RecordingGateway) CallsTo(method string) []string {
	var out []string
	for _, c := range r.Calls() {
		if c == method || strings.HasPrefix(c, method+" ") {
			out = append(out, c)
		}
	}
	return out
}

// Reset forgets the recorded calls
func (r *RecordingGateway) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = nil
}

func (r *RecordingGateway) record(method string, args ...any) {
	parts := []string{method}
	for _, a := range args {
		parts = append(parts, fmt.Sprint(a))
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, strings.Join(parts, " "))
}

func (r *RecordingGateway) SetParentBranch(ctx context.Context, branch, parent string) error {
	r.record("SetParentBranch", branch, parent)
	return r.Gateway.SetParentBranch(ctx, branch, parent)
}

func (r *RecordingGateway) UnsetParentBranch(ctx context.Context, branch string) error {
	r.record("UnsetParentBranch", branch)
	return r.Gateway.UnsetParentBranch(ctx, branch)
}

func (r *RecordingGateway) SetParentCommit(ctx context.Context, branch, commit, previous string) error {
	r.record("SetParentCommit", branch, commit)
	return r.Gateway.SetParentCommit(ctx, branch, commit, previous)
}

func (r *RecordingGateway) DeleteParentCommit(ctx context.Context, branch string) error {
	r.record("DeleteParentCommit", branch)
	return r.Gateway.DeleteParentCommit(ctx, branch)
}

func (r *RecordingGateway) SetBottom(ctx context.Context, branch string) error {
	r.record("SetBottom", branch)
	return r.Gateway.SetBottom(ctx, branch)
}

func (r *RecordingGateway) UnsetBottom(ctx context.Context, branch string) error {
	r.record("UnsetBottom", branch)
	return r.Gateway.UnsetBottom(ctx, branch)
}

func (r *RecordingGateway) Checkout(ctx context.Context, branch string) error {
	r.record("Checkout", branch)
	return r.Gateway.Checkout(ctx, branch)
}

func (r *RecordingGateway) CreateBranch(ctx context.Context, branch, start string) error {
	r.record("CreateBranch", branch, start)
	return r.Gateway.CreateBranch(ctx, branch, start)
}

func (r *RecordingGateway) DeleteBranch(ctx context.Context, branch string) error {
	r.record("DeleteBranch", branch)
	return r.Gateway.DeleteBranch(ctx, branch)
}

func (r *RecordingGateway) Rebase(ctx context.Context, onto, upstream, branch string) error {
	r.record("Rebase", onto, upstream, branch)
	return r.Gateway.Rebase(ctx, onto, upstream, branch)
}

func (r *RecordingGateway) Merge(ctx context.Context, branch string) error {
	r.record("Merge", branch)
	return r.Gateway.Merge(ctx, branch)
}

func (r *RecordingGateway) CherryPick(ctx context.Context, commit string, allowEmpty bool) error {
	r.record("CherryPick", commit, allowEmpty)
	return r.Gateway.CherryPick(ctx, commit, allowEmpty)
}

func (r *RecordingGateway) CherryPickNoCommit(ctx context.Context, commit string) error {
	r.record("CherryPickNoCommit", commit)
	return r.Gateway.CherryPickNoCommit(ctx, commit)
}

func (r *RecordingGateway) ResetHard(ctx context.Context, revision string) error {
	r.record("ResetHard", revision)
	return r.Gateway.ResetHard(ctx, revision)
}

func (r *RecordingGateway) Commit(ctx context.Context, args []string) error {
	r.record("Commit", strings.Join(args, " "))
	return r.Gateway.Commit(ctx, args)
}

func (r *RecordingGateway) Fetch(ctx context.Context, remote string) error {
	r.record("Fetch", remote)
	return r.Gateway.Fetch(ctx, remote)
}

func (r *RecordingGateway) Push(ctx context.Context, remote, branch string, force bool) error {
	r.record("Push", remote, branch, force)
	return r.Gateway.Push(ctx, remote, branch, force)
}

func (r *RecordingGateway) UpdateBranchRef(ctx context.Context, branch, commit, previous string) error {
	r.record("UpdateBranchRef", branch, commit)
	return r.Gateway.UpdateBranchRef(ctx, branch, commit, previous)
}
