package cli

import (
	"github.com/spf13/cobra"

	"stacky.dev/stacky/internal/actions"
)

// newCommitCmd creates the commit command, or amend when amend is set. Every
// argument is handed to git commit.
func newCommitCmd(exec Executor, amend bool) *cobra.Command {
	use, short := "commit", "Run git commit, then sync the branches above"
	if amend {
		use, short = "amend", "Run git commit --amend, then sync the branches above"
	}

	return &cobra.Command{
		Use:                use + " [git commit args]",
		Short:              short,
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if helpRequested(args) {
				return cmd.Help()
			}
			return exec(cmd, actions.Commit{Args: args, Amend: amend})
		},
	}
}

func newLogCmd(exec Executor) *cobra.Command {
	return &cobra.Command{
		Use:                "log [git log args]",
		Short:              "Run git log --graph over the current stack",
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if helpRequested(args) {
				return cmd.Help()
			}
			return exec(cmd, actions.Log{Args: args})
		},
	}
}

// helpRequested reports whether a passthrough command was asked for its own help
func helpRequested(args []string) bool {
	return len(args) == 1 && (args[0] == "-h" || args[0] == "--help")
}
