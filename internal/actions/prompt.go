package actions

import (
	"errors"

	stackyerrors "stacky.dev/stacky/internal/errors"
	"stacky.dev/stacky/internal/runtime"
	"stacky.dev/stacky/internal/tui"
)

// confirm asks before a destructive step. skip_confirm and force answer yes.
func confirm(ctx *runtime.Context, force bool, message string) (bool, error) {
	if force || ctx.Settings.UI.SkipConfirm {
		return true, nil
	}
	ok, err := tui.PromptConfirm(message, false)
	if errors.Is(err, tui.ErrInteractiveDisabled) {
		return false, stackyerrors.NewUserError("Cannot ask for confirmation: %v. Use --force or set ui.skip_confirm", err)
	}
	return ok, err
}

// pickBranch shows the picker over names
func pickBranch(title string, names []string, current string) (string, error) {
	options := make([]tui.PickerOption, len(names))
	cursor := 0
	for i, name := range names {
		options[i] = tui.PickerOption{Label: name, Value: name}
		if name == current {
			cursor = i
		}
	}
	choice, err := tui.PromptPicker(title, options, cursor)
	switch {
	case errors.Is(err, tui.ErrInteractiveDisabled):
		return "", stackyerrors.NewUserError("Cannot show the branch picker: %v", err)
	case errors.Is(err, tui.ErrCanceled):
		return "", stackyerrors.NewUserError("Canceled")
	}
	return choice, err
}
