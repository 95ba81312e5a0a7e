package cli

import (
	"github.com/spf13/cobra"

	"stacky.dev/stacky/internal/actions"
	"stacky.dev/stacky/internal/cli/helpers"
)

// newLandCmd creates the land command
func newLandCmd(exec Executor) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "land",
		Short: "Squash-merge the pull request of the bottom-most branch of the stack",
		Long: `Squash-merge the pull request of the bottom-most branch of the current stack.
The branch must be synced with its parent and its remote, and GitHub must
report the pull request as mergeable. Run 'stacky update' afterwards.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return exec(cmd, actions.Land{Force: force})
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Merge without asking")

	return cmd
}

// newImportCmd creates the import command
func newImportCmd(exec Executor) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "import <branch>",
		Short: "Stack branches whose pull requests are based on each other",
		Long: `Stack a chain of branches created by another tool. Starting at the given
branch, the base of each open pull request becomes the branch's parent, at the
commit before the pull request's first commit, until a bottom is reached.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: helpers.CompleteBranches,
		RunE: func(cmd *cobra.Command, args []string) error {
			return exec(cmd, actions.Import{Name: args[0], Force: force})
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Write the markers without asking")

	return cmd
}
