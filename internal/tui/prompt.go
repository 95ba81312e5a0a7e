package tui

import (
	"errors"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/mattn/go-isatty"
)

// ErrInteractiveDisabled is returned by prompts when there is no terminal to ask on
var ErrInteractiveDisabled = errors.New("interactive prompts are disabled (not a terminal or STACKY_NO_INTERACTIVE is set)")

// IsTTY reports whether both stdin and stdout are terminals
func IsTTY() bool {
	in, out := os.Stdin.Fd(), os.Stdout.Fd()
	return (isatty.IsTerminal(in) || isatty.IsCygwinTerminal(in)) &&
		(isatty.IsTerminal(out) || isatty.IsCygwinTerminal(out))
}

// InteractiveAllowed reports whether prompts may be shown
func InteractiveAllowed() bool {
	return os.Getenv("STACKY_NO_INTERACTIVE") == "" && IsTTY()
}

// PromptConfirm asks a yes/no question
func PromptConfirm(message string, defaultValue bool) (bool, error) {
	if !InteractiveAllowed() {
		return false, ErrInteractiveDisabled
	}
	answer := defaultValue
	prompt := &survey.Confirm{
		Message: message,
		Default: defaultValue,
	}
	if err := survey.AskOne(prompt, &answer); err != nil {
		return false, err
	}
	return answer, nil
}

// PromptInput asks for a line of text
func PromptInput(message, defaultValue string) (string, error) {
	if !InteractiveAllowed() {
		return "", ErrInteractiveDisabled
	}
	var answer string
	prompt := &survey.Input{
		Message: message,
		Default: defaultValue,
	}
	if err := survey.AskOne(prompt, &answer); err != nil {
		return "", err
	}
	return answer, nil
}
