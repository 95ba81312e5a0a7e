package runtime

import (
	"context"

	"stacky.dev/stacky/internal/git"
)

// Session tracks the checked out branch for the duration of a command.
// Checkout is the only way commands change it.
type Session struct {
	git     git.Gateway
	current string
}

// NewSession reads the current branch from the gateway
func NewSession(ctx context.Context, gw git.Gateway) (*Session, error) {
	current, err := gw.CurrentBranch(ctx)
	if err != nil {
		return nil, err
	}
	return &Session{git: gw, current: current}, nil
}

// CurrentBranch returns the checked out branch, empty when HEAD is detached
func (s *Session) CurrentBranch() string {
	return s.current
}

// Checkout switches to branch; checking out the current branch does nothing
func (s *Session) Checkout(ctx context.Context, branch string) error {
	if branch == s.current {
		return nil
	}
	if err := s.git.Checkout(ctx, branch); err != nil {
		return err
	}
	s.current = branch
	return nil
}
