// Package style holds the colors used by stacky's console output.
package style

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// InitColorProfile disables colors when stdout is not a terminal or NO_COLOR is set
func InitColorProfile() {
	fd := os.Stdout.Fd()
	if os.Getenv("NO_COLOR") != "" || !(isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)) {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

func render(color, text string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(text)
}

// ColorBranchName colors a branch name by severity: cyan when current,
// green when fine, yellow when it needs attention
func ColorBranchName(branchName string, isCurrent, needsSync bool) string {
	switch {
	case needsSync:
		return render("3", branchName)
	case isCurrent:
		return render("6", branchName)
	default:
		return render("2", branchName)
	}
}

// ColorMarker colors the status markers in front of a branch name
func ColorMarker(marker string) string {
	return render("3", marker)
}

// ColorCurrent colors the current branch marker
func ColorCurrent(marker string) string {
	return render("6", marker)
}

// ColorPR colors a PR suffix
func ColorPR(text string) string {
	return render("4", text)
}

// ColorPRNumber renders "#N"
func ColorPRNumber(prNumber int) string {
	return ColorPR(fmt.Sprintf("#%d", prNumber))
}

// ColorDim makes text dim/gray
func ColorDim(text string) string {
	return render("8", text)
}

// ColorRed colors text red
func ColorRed(text string) string {
	return render("1", text)
}

// ColorYellow colors text yellow
func ColorYellow(text string) string {
	return render("3", text)
}

// ColorCyan colors text cyan
func ColorCyan(text string) string {
	return render("6", text)
}

// ColorGreen colors text green
func ColorGreen(text string) string {
	return render("2", text)
}
