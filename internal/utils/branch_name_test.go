package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSanitizeBranchName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple name passes through", "feature", "feature"},
		{"spaces replaced with hyphens", "my feature branch", "my-feature-branch"},
		{"special characters replaced", "feature!@#$%^&*()", "feature"},
		{"slashes preserved", "feature/my-branch", "feature/my-branch"},
		{"trailing dots and slashes removed", "feature/./", "feature"},
		{"hyphen runs collapsed", "a -- b", "a-b"},
		{"double dots collapsed", "a..b", "a.b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.expected, SanitizeBranchName(tt.input))
		})
	}

	t.Run("long names are truncated", func(t *testing.T) {
		t.Parallel()
		require.Len(t, SanitizeBranchName(strings.Repeat("a", 300)), MaxBranchNameByteLength)
	})
}

func TestValidateBranchName(t *testing.T) {
	t.Parallel()

	require.NoError(t, ValidateBranchName("feature/a"))
	require.EqualError(t, ValidateBranchName(""), "branch name is empty")
	require.EqualError(t, ValidateBranchName("my branch"), `invalid branch name "my branch", try "my-branch"`)
	require.EqualError(t, ValidateBranchName("!!"), `invalid branch name "!!"`)
}
