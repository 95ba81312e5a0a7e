package cli

import (
	"github.com/spf13/cobra"

	"stacky.dev/stacky/internal/actions"
	"stacky.dev/stacky/internal/cli/helpers"
	"stacky.dev/stacky/internal/engine"
)

// newUpstackCmd creates the upstack command group
func newUpstackCmd(exec Executor) *cobra.Command {
	cmd := newScopeCmd(exec, "upstack", "the current branch and the branches above it", engine.ScopeUpstack)

	onto := &cobra.Command{
		Use:   "onto <branch>",
		Short: "Move the current branch and its descendants onto another branch",
		Long: `Move the current branch and its descendants onto another branch, then sync
them. Only the commits of the moved branches are replayed.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: helpers.CompleteBranches,
		RunE: func(cmd *cobra.Command, args []string) error {
			return exec(cmd, actions.UpstackOnto{Target: args[0]})
		},
	}

	asBottom := &cobra.Command{
		Use:   "as-bottom",
		Short: "Make the current branch a stack bottom",
		Long: `Make the current branch a custom stack bottom. The branch loses its parent,
the branches above it stay stacked on it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return exec(cmd, actions.UpstackAsBottom{})
		},
	}

	cmd.AddCommand(onto, asBottom)
	return cmd
}

// newBottomCmd creates the bottom command group
func newBottomCmd(exec Executor) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bottom",
		Short: "Manage custom stack bottoms",
		Long: `Manage custom stack bottoms. main and master are always bottoms when they
exist; other long-lived branches can be added.`,
	}

	add := &cobra.Command{
		Use:               "add [branch]",
		Short:             "Make a branch a stack bottom (default: the current branch)",
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: helpers.CompleteBranches,
		RunE: func(cmd *cobra.Command, args []string) error {
			return exec(cmd, actions.Bottom{Name: firstArg(args)})
		},
	}

	remove := &cobra.Command{
		Use:               "remove [branch]",
		Aliases:           []string{"rm"},
		Short:             "Stop treating a branch as a stack bottom (default: the current branch)",
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: helpers.CompleteBranches,
		RunE: func(cmd *cobra.Command, args []string) error {
			return exec(cmd, actions.Bottom{Name: firstArg(args), Remove: true})
		},
	}

	cmd.AddCommand(add, remove)
	return cmd
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
