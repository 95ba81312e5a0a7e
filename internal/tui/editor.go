package tui

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// EditorCommand returns the editor git would use: GIT_EDITOR, then EDITOR,
// then core.editor, then vi
func EditorCommand() string {
	for _, env := range []string{"GIT_EDITOR", "EDITOR"} {
		if editor := os.Getenv(env); editor != "" {
			return editor
		}
	}
	if out, err := exec.Command("git", "config", "--get", "core.editor").Output(); err == nil {
		if editor := strings.TrimSpace(string(out)); editor != "" {
			return editor
		}
	}
	return "vi"
}

// EditText opens content in the user's editor and returns what was saved.
// pattern names the temporary file, as in os.CreateTemp.
func EditText(content, pattern string) (string, error) {
	f, err := os.CreateTemp("", pattern)
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer func() { _ = os.Remove(f.Name()) }()

	if _, err := f.WriteString(content); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close temp file: %w", err)
	}

	// the editor may carry its own arguments, so it goes through the shell
	cmd := exec.Command("sh", "-c", EditorCommand()+` "$1"`, "editor", f.Name())
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("editor exited with error: %w", err)
	}

	edited, err := os.ReadFile(f.Name())
	if err != nil {
		return "", fmt.Errorf("failed to read edited file: %w", err)
	}
	return string(edited), nil
}
