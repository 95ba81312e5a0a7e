package actions

import (
	"stacky.dev/stacky/internal/actions/fold"
	"stacky.dev/stacky/internal/actions/sync"
	"stacky.dev/stacky/internal/config"
	stackyerrors "stacky.dev/stacky/internal/errors"
	"stacky.dev/stacky/internal/runtime"
)

// ContinueAction resumes the sync or fold recorded in the journal, after the
// user finished the interrupted git operation
func ContinueAction(ctx *runtime.Context) error {
	record, err := ctx.Journal.Load()
	if err != nil {
		return err
	}

	if err := ctx.Session.Checkout(ctx.Context, record.Branch); err != nil {
		return err
	}
	if !ctx.Graph.Contains(record.Branch) {
		return stackyerrors.NewNotFoundError("Current branch %s is not in a stack", record.Branch)
	}

	switch record.Kind {
	case config.KindSync:
		return sync.Resume(ctx, *record)
	case config.KindFold:
		return fold.Resume(ctx, *record)
	case config.KindMergeFold:
		return fold.ResumeMerge(ctx, *record)
	default:
		return stackyerrors.NewUserError("Unknown operation in progress")
	}
}
