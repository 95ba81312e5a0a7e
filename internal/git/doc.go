// Package git provides the branch repository gateway.
//
// It wraps git command execution and go-git reads behind the Gateway interface:
//   - Branch tips, remote tips and branch listing (go-git)
//   - Parent branch and parent commit markers
//   - Rebase, merge and cherry-pick
//   - Push and fetch
//
// This package should be the only place where git commands are executed.
package git
