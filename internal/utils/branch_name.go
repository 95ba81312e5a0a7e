// Package utils holds small helpers shared by commands.
package utils

import (
	"fmt"
	"regexp"
	"strings"
)

// MaxBranchNameByteLength keeps refs/stack-parent/<name> within git's 256 byte ref limit
const MaxBranchNameByteLength = 256 - len("refs/stack-parent/")

var (
	// characters outside letters, digits, - _ / .
	branchNameReplaceRegex = regexp.MustCompile(`[^-_/.a-zA-Z0-9]+`)
	// trailing slashes and dots
	branchNameIgnoreRegex = regexp.MustCompile(`[/.]*$`)
	hyphenRunRegex        = regexp.MustCompile(`-+`)
)

// SanitizeBranchName turns name into a branch name git accepts
func SanitizeBranchName(name string) string {
	name = branchNameIgnoreRegex.ReplaceAllString(name, "")
	name = branchNameReplaceRegex.ReplaceAllString(name, "-")
	name = hyphenRunRegex.ReplaceAllString(name, "-")
	name = strings.Trim(name, "-")
	for strings.Contains(name, "..") {
		name = strings.ReplaceAll(name, "..", ".")
	}

	if len(name) > MaxBranchNameByteLength {
		name = strings.TrimSuffix(name[:MaxBranchNameByteLength], "-")
	}
	return name
}

// ValidateBranchName returns an error naming a sanitized alternative when name
// cannot be used as a stacked branch
func ValidateBranchName(name string) error {
	if name == "" {
		return fmt.Errorf("branch name is empty")
	}
	sanitized := SanitizeBranchName(name)
	if sanitized == name {
		return nil
	}
	if sanitized == "" {
		return fmt.Errorf("invalid branch name %q", name)
	}
	return fmt.Errorf("invalid branch name %q, try %q", name, sanitized)
}
