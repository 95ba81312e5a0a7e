// Package helpers provides shared helper functions for CLI commands.
package helpers

import (
	"context"

	"github.com/spf13/cobra"

	"stacky.dev/stacky/internal/actions"
	"stacky.dev/stacky/internal/runtime"
	"stacky.dev/stacky/internal/tui"
)

type splogKey struct{}

// WithSplog attaches the splog commands write to
func WithSplog(ctx context.Context, splog *tui.Splog) context.Context {
	return context.WithValue(ctx, splogKey{}, splog)
}

// SplogFrom returns the splog attached to ctx, or a console splog
func SplogFrom(ctx context.Context) *tui.Splog {
	if splog, ok := ctx.Value(splogKey{}).(*tui.Splog); ok && splog != nil {
		return splog
	}
	return tui.NewSplog()
}

// Run is a helper that provides a runtime context to a command's execution function
func Run(cmd *cobra.Command, fn func(ctx *runtime.Context) error) error {
	ctx, err := runtime.GetContext(cmd.Context(), SplogFrom(cmd.Context()))
	if err != nil {
		return err
	}
	return fn(ctx)
}

// Execute runs a parsed command against the repository of the working directory
func Execute(cmd *cobra.Command, command actions.Command) error {
	return Run(cmd, func(ctx *runtime.Context) error {
		return actions.Execute(ctx, command)
	})
}
