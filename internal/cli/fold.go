package cli

import (
	"github.com/spf13/cobra"

	"stacky.dev/stacky/internal/actions"
)

// newFoldCmd creates the fold command
func newFoldCmd(exec Executor) *cobra.Command {
	var allowEmpty bool

	cmd := &cobra.Command{
		Use:   "fold",
		Short: "Fold the current branch into its parent",
		Long: `Apply the commits of the current branch to its parent, move its children onto
the parent and delete the branch. Commits that become empty are skipped
unless --allow-empty is given. With git.use_merge the branch is merged instead.

The branch must be synced with its parent, and the parent must not be a
stack bottom.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return exec(cmd, actions.Fold{AllowEmpty: allowEmpty})
		},
	}

	cmd.Flags().BoolVar(&allowEmpty, "allow-empty", false, "Keep commits that become empty")

	return cmd
}

// newContinueCmd creates the continue command
func newContinueCmd(exec Executor) *cobra.Command {
	return &cobra.Command{
		Use:   "continue",
		Short: "Resume a sync or fold stopped by a conflict",
		Long: `Resume the sync or fold recorded when a conflict stopped it. Finish the git
operation first (git rebase --continue, git cherry-pick --continue or git commit).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return exec(cmd, actions.Continue{})
		},
	}
}
