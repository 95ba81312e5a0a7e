package cli

import (
	"github.com/spf13/cobra"

	"stacky.dev/stacky/internal/actions"
	"stacky.dev/stacky/internal/cli/helpers"
)

// newAdoptCmd creates the adopt command
func newAdoptCmd(exec Executor) *cobra.Command {
	return &cobra.Command{
		Use:   "adopt <branch>",
		Short: "Stack an existing branch on top of the current bottom",
		Long: `Stack an existing branch on top of the current bottom branch. The branch is
recorded as synced at its merge base with the bottom.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: helpers.CompleteBranches,
		RunE: func(cmd *cobra.Command, args []string) error {
			return exec(cmd, actions.Adopt{Branch: args[0]})
		},
	}
}

// newUpdateCmd creates the update command
func newUpdateCmd(exec Executor) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Fetch, update bottoms and delete branches whose pull requests merged",
		Long: `Fetch the remote and move every stack bottom to its remote tip. Branches
stacked directly on a bottom whose pull request was merged are deleted, and
their children are moved onto the bottom. Markers of deleted branches are
cleaned up.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return exec(cmd, actions.Update{Force: force})
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Delete merged branches without asking")

	return cmd
}
