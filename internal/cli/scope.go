package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"stacky.dev/stacky/internal/actions"
	"stacky.dev/stacky/internal/engine"
)

// newScopeCmd groups info, sync and push over one scope
func newScopeCmd(exec Executor, name, description string, scope engine.Scope) *cobra.Command {
	cmd := &cobra.Command{
		Use:   name,
		Short: fmt.Sprintf("Commands that work on %s", description),
	}
	cmd.AddCommand(
		newScopedInfoCmd(exec, "info", scope),
		newScopedSyncCmd(exec, "sync", scope),
		newScopedPushCmd(exec, "push", scope),
	)
	return cmd
}

func newScopedInfoCmd(exec Executor, use string, scope engine.Scope) *cobra.Command {
	var (
		pr  bool
		all bool
	)

	cmd := &cobra.Command{
		Use:   use,
		Short: fmt.Sprintf("Show the %s as a tree", scope),
		Long: fmt.Sprintf(`Show the %s as a tree, bottom last.

Markers before a branch name:
  !  the branch is not synced with its parent
  ~  the branch differs from the remote
  *  the branch is checked out`, scope),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := scope
			if all {
				s = engine.ScopeAll
			}
			return exec(cmd, actions.Info{Scope: s, PR: pr})
		},
	}

	cmd.Flags().BoolVar(&pr, "pr", false, "Show the open pull request of every branch")
	cmd.Flags().BoolVarP(&all, "all", "a", false, "Show every stack in the repository")

	return cmd
}

func newScopedSyncCmd(exec Executor, use string, scope engine.Scope) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: fmt.Sprintf("Rebase (or merge) the %s onto the parents", scope),
		Long: fmt.Sprintf(`Rebase (or merge, with git.use_merge) every branch of the %s that is behind
its parent. When a conflict stops the sync, resolve it, finish the git
operation and run 'stacky continue'.`, scope),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return exec(cmd, actions.Sync{Scope: scope})
		},
	}
}

func newScopedPushCmd(exec Executor, use string, scope engine.Scope) *cobra.Command {
	var (
		force bool
		noPR  bool
	)

	cmd := &cobra.Command{
		Use:   use,
		Short: fmt.Sprintf("Push the %s and open pull requests", scope),
		Long: fmt.Sprintf(`Push every branch of the %s that differs from the remote, open a pull
request against the parent branch when there is none and fix the base of
pull requests that target the wrong branch. All branches must be synced first.`, scope),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return exec(cmd, actions.Push{Scope: scope, Force: force, NoPR: noPR})
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Do not ask for confirmation")
	cmd.Flags().BoolVar(&noPR, "no-pr", false, "Push without creating or fixing pull requests")

	return cmd
}

// newInfoCmd, newSyncCmd and newPushCmd work on the whole stack

func newInfoCmd(exec Executor) *cobra.Command {
	return newScopedInfoCmd(exec, "info", engine.ScopeStack)
}

func newSyncCmd(exec Executor) *cobra.Command {
	return newScopedSyncCmd(exec, "sync", engine.ScopeStack)
}

func newPushCmd(exec Executor) *cobra.Command {
	return newScopedPushCmd(exec, "push", engine.ScopeStack)
}
