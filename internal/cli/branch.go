package cli

import (
	"github.com/spf13/cobra"

	"stacky.dev/stacky/internal/actions"
	"stacky.dev/stacky/internal/cli/helpers"
)

// newBranchCmd creates the branch command group
func newBranchCmd(exec Executor) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "branch",
		Aliases: []string{"b"},
		Short:   "Create and move between stacked branches",
	}

	newCmd := &cobra.Command{
		Use:   "new <name>",
		Short: "Create a branch on top of the current branch and check it out",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return exec(cmd, actions.BranchNew{Name: args[0]})
		},
	}

	cmd.AddCommand(newCmd, newBranchCheckoutCmd(exec), newBranchCommitCmd(exec), newUpCmd(exec), newDownCmd(exec))
	return cmd
}

func newBranchCheckoutCmd(exec Executor) *cobra.Command {
	return &cobra.Command{
		Use:               "checkout [name]",
		Aliases:           []string{"co"},
		Short:             "Check out a branch (interactive picker without a name)",
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: helpers.CompleteBranches,
		RunE: func(cmd *cobra.Command, args []string) error {
			return exec(cmd, actions.BranchCheckout{Name: firstArg(args)})
		},
	}
}

func newBranchCommitCmd(exec Executor) *cobra.Command {
	var opts actions.BranchCommit

	cmd := &cobra.Command{
		Use:   "commit <name>",
		Short: "Create a branch on top of the current branch and commit on it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Name = args[0]
			return exec(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Message, "message", "m", "", "Commit message")
	cmd.Flags().BoolVarP(&opts.All, "all", "a", false, "Commit all tracked changes")
	cmd.Flags().BoolVar(&opts.NoVerify, "no-verify", false, "Skip the pre-commit and commit-msg hooks")

	return cmd
}

// newStackCheckoutCmd picks a branch of the current stack
func newStackCheckoutCmd(exec Executor, use string, aliases ...string) *cobra.Command {
	return &cobra.Command{
		Use:     use,
		Aliases: aliases,
		Short:   "Check out a branch of the current stack with a picker",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return exec(cmd, actions.StackCheckout{})
		},
	}
}

func newUpCmd(exec Executor) *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Check out the child of the current branch",
		Long:  "Check out the child of the current branch. A picker is shown when there are several.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return exec(cmd, actions.Up{})
		},
	}
}

func newDownCmd(exec Executor) *cobra.Command {
	return &cobra.Command{
		Use:   "down",
		Short: "Check out the parent of the current branch",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return exec(cmd, actions.Down{})
		},
	}
}
