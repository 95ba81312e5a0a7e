// Package tui provides the terminal user interface for stacky.
//
// It handles:
//   - Structured logging and status reporting (Splog)
//   - Rendering stacks as trees
//   - Interactive prompts (survey) and the branch picker (bubbletea)
package tui
