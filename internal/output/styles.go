package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/shinji-kodama/new-project/internal/model"
)

// Color palette used by the CLI.
var (
	// ColorCyan is used for identifiable nouns: paths, package names, URLs.
	ColorCyan = lipgloss.Color("14")

	// ColorGreen is used for the ok status.
	ColorGreen = lipgloss.Color("82")

	// ColorYellow is used for dry-run markers.
	ColorYellow = lipgloss.Color("220")

	// ColorBoldRed is used for failure statuses (matches ERROR level).
	ColorBoldRed = lipgloss.Color("204")
)

// Semantic styles.
var (
	// StyleNoun styles identifiable nouns.
	StyleNoun = lipgloss.NewStyle().Foreground(ColorCyan)

	// StyleDry styles the "[Dry]" prefix of commands that were not run.
	StyleDry = lipgloss.NewStyle().Foreground(ColorYellow).Bold(true)

	// StyleDim styles structural chrome.
	StyleDim = lipgloss.NewStyle().Faint(true)
)

// StatusStyle returns the style for a pipeline status.
func StatusStyle(status model.Status) lipgloss.Style {
	if status == model.StatusOK {
		return lipgloss.NewStyle().Foreground(ColorGreen).Bold(true)
	}
	return lipgloss.NewStyle().Foreground(ColorBoldRed).Bold(true)
}

// FormatStatus renders a status with its style.
func FormatStatus(status model.Status) string {
	return StatusStyle(status).Render(status.String())
}

// FormatCommand joins a command line for display, quoting arguments that
// contain whitespace so the line can be pasted into a shell.
func FormatCommand(name string, args ...string) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, name)
	for _, a := range args {
		if a == "" || strings.ContainsAny(a, " \t\n\"'") {
			a = fmt.Sprintf("%q", a)
		}
		parts = append(parts, a)
	}
	return strings.Join(parts, " ")
}

// PrintDry writes a "[Dry] <line>" record for an action that was skipped.
func PrintDry(w io.Writer, line string) {
	fmt.Fprintf(w, "%s %s\n", StyleDry.Render("[Dry]"), line)
}
