// Package errors provides sentinel errors and custom error types for stacky.
// Use errors.Is() and errors.As() to check for specific error types.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for the four failure categories
var (
	// ErrUser indicates invalid input or an invalid target
	ErrUser = errors.New("invalid operation")

	// ErrConflict indicates that a merge, rebase or cherry-pick stopped on a conflict
	ErrConflict = errors.New("conflict")

	// ErrConsistency indicates an internal invariant violation in the stack graph
	ErrConsistency = errors.New("inconsistent stack")

	// ErrNotFound indicates a missing journal or a branch that is not in the stack
	ErrNotFound = errors.New("not found")
)

// UserError is reported before any destructive call is made
type UserError struct {
	Message string
}

func (e *UserError) Error() string {
	return e.Message
}

// Is returns true if the target error is ErrUser
func (e *UserError) Is(target error) bool {
	return target == ErrUser
}

// NewUserError creates a new UserError with a formatted message
func NewUserError(format string, args ...any) *UserError {
	return &UserError{Message: fmt.Sprintf(format, args...)}
}

// ConflictError represents a stopped merge, rebase or cherry-pick.
// The journal already holds the resume point when this is returned.
type ConflictError struct {
	BranchName string
	Operation  string
	Message    string
	Err        error
}

func (e *ConflictError) Error() string {
	return e.Message
}

// Is returns true if the target error is ErrConflict
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

func (e *ConflictError) Unwrap() error {
	return e.Err
}

// NewConflictError creates a new ConflictError
func NewConflictError(branchName, operation, message string, err error) *ConflictError {
	return &ConflictError{
		BranchName: branchName,
		Operation:  operation,
		Message:    message,
		Err:        err,
	}
}

// ConsistencyError is returned when a known node is re-added with different attributes
type ConsistencyError struct {
	BranchName string
	Field      string
	Got        string
	Expected   string
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("Mismatched stack: %s: %s=%s, expected %s", e.BranchName, e.Field, e.Got, e.Expected)
}

// Is returns true if the target error is ErrConsistency
func (e *ConsistencyError) Is(target error) bool {
	return target == ErrConsistency
}

// NewConsistencyError creates a new ConsistencyError
func NewConsistencyError(branchName, field, got, expected string) *ConsistencyError {
	return &ConsistencyError{
		BranchName: branchName,
		Field:      field,
		Got:        got,
		Expected:   expected,
	}
}

// NotFoundError represents a missing journal or a branch missing from the stack
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

// Is returns true if the target error is ErrNotFound
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError creates a new NotFoundError with a formatted message
func NewNotFoundError(format string, args ...any) *NotFoundError {
	return &NotFoundError{Message: fmt.Sprintf(format, args...)}
}

// GitCommandError represents an error from a git command execution
type GitCommandError struct {
	Command string
	Args    []string
	Stdout  string
	Stderr  string
	Err     error
}

func (e *GitCommandError) Error() string {
	msg := fmt.Sprintf("%s command failed", e.Command)
	if len(e.Args) > 0 {
		msg += fmt.Sprintf(": %v", e.Args)
	}
	if e.Stderr != "" {
		msg += fmt.Sprintf("\nstderr: %s", e.Stderr)
	}
	if e.Err != nil {
		msg += fmt.Sprintf("\n%v", e.Err)
	}
	return msg
}

func (e *GitCommandError) Unwrap() error {
	return e.Err
}

// NewGitCommandError creates a new GitCommandError
func NewGitCommandError(command string, args []string, stdout, stderr string, err error) *GitCommandError {
	return &GitCommandError{
		Command: command,
		Args:    args,
		Stdout:  stdout,
		Stderr:  stderr,
		Err:     err,
	}
}

// ExitCode maps an error to a process exit status
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	return 1
}
