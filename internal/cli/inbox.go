package cli

import (
	"github.com/spf13/cobra"

	"stacky.dev/stacky/internal/actions"
)

// newInboxCmd creates the inbox command
func newInboxCmd(exec Executor) *cobra.Command {
	var compact bool

	cmd := &cobra.Command{
		Use:   "inbox",
		Short: "List your open pull requests and the ones awaiting your review",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return exec(cmd, actions.Inbox{Compact: compact})
		},
	}

	cmd.Flags().BoolVarP(&compact, "compact", "c", false, "One line per pull request")

	return cmd
}

// newPRsCmd creates the prs command
func newPRsCmd(exec Executor) *cobra.Command {
	return &cobra.Command{
		Use:   "prs",
		Short: "Pick open pull requests and edit their descriptions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return exec(cmd, actions.PRs{})
		},
	}
}
