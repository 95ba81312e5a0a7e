package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"stacky.dev/stacky/internal/cli"
	"stacky.dev/stacky/internal/cli/helpers"
	stackyerrors "stacky.dev/stacky/internal/errors"
	"stacky.dev/stacky/internal/tui"
	"stacky.dev/stacky/internal/tui/style"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	style.InitColorProfile()

	splog, err := tui.NewSplogWithConfig(tui.GetLogFilePath())
	if err != nil {
		splog = tui.NewSplog()
		splog.Debug("Failed to open log file: %v", err)
	}
	defer func() { _ = splog.Close() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := cli.NewRootCmd(version, commit, date)
	if err := rootCmd.ExecuteContext(helpers.WithSplog(ctx, splog)); err != nil {
		splog.Error("%s", err)
		return stackyerrors.ExitCode(err)
	}
	return 0
}
