// Package cli defines the stacky command tree. Every command parses its
// arguments into an actions.Command and hands it to an Executor.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"stacky.dev/stacky/internal/actions"
	"stacky.dev/stacky/internal/cli/helpers"
	"stacky.dev/stacky/internal/engine"
)

// Executor runs a parsed command
type Executor func(cmd *cobra.Command, command actions.Command) error

// NewRootCmd creates the root cobra command
func NewRootCmd(version, commit, date string) *cobra.Command {
	root := newRootCmd(helpers.Execute)
	root.Version = fmt.Sprintf("%s (commit %s, built %s)", version, commit, date)
	return root
}

func newRootCmd(exec Executor) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "stacky",
		Short: "Stacky manages stacks of dependent git branches",
		Long: `Stacky manages stacks of dependent git branches.

Each branch records its parent and the parent commit it was last synced
onto, so a stack can be rebased, folded and pushed as a unit. Operations
that stop on a conflict are resumed with 'stacky continue'.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	stackCmd := newScopeCmd(exec, "stack", "the whole stack around the current branch", engine.ScopeStack)
	stackCmd.AddCommand(newStackCheckoutCmd(exec, "checkout", "co"))

	rootCmd.AddCommand(
		newInfoCmd(exec),
		newLogCmd(exec),
		newSyncCmd(exec),
		newPushCmd(exec),
		newFoldCmd(exec),
		newContinueCmd(exec),
		newBranchCmd(exec),
		newUpCmd(exec),
		newDownCmd(exec),
		newCommitCmd(exec, false),
		newCommitCmd(exec, true),
		newAdoptCmd(exec),
		newUpstackCmd(exec),
		newScopeCmd(exec, "downstack", "the current branch and the branches below it", engine.ScopeDownstack),
		stackCmd,
		newStackCheckoutCmd(exec, "sco"),
		newBranchCheckoutCmd(exec),
		newUpdateCmd(exec),
		newBottomCmd(exec),
		newLandCmd(exec),
		newImportCmd(exec),
		newInboxCmd(exec),
		newPRsCmd(exec),
	)

	return rootCmd
}
