package display

import (
	"fmt"
	"io"
	"strings"
)

// Warning represents a user-facing warning message
type Warning struct {
	Title      string   // Main warning title
	Message    string   // Detailed explanation (optional)
	Paths      []string // Related paths (optional)
	Suggestion string   // Action to take (optional)
}

// Display shows a formatted warning, in yellow when out is a terminal
func (w Warning) Display(out io.Writer) {
	colorOutput := IsTerminal(out)
	var b strings.Builder

	if colorOutput {
		b.WriteString("\x1b[33m")
	}
	b.WriteString("Warning: ")
	b.WriteString(w.Title)
	b.WriteString("\n")

	if w.Message != "" {
		b.WriteString("    ")
		b.WriteString(w.Message)
		b.WriteString("\n")
	}

	if len(w.Paths) > 0 {
		b.WriteString("    ")
		if len(w.Paths) == 1 {
			b.WriteString("Affected path:\n")
		} else {
			b.WriteString("Affected paths:\n")
		}

		for i, path := range w.Paths {
			b.WriteString("      ")
			b.WriteString(fmt.Sprintf("%d. %s", i+1, path))
			b.WriteString("\n")
		}
	}

	if w.Suggestion != "" {
		b.WriteString("    Suggestion:\n")
		b.WriteString("    ")
		b.WriteString(w.Suggestion)
		b.WriteString("\n")
	}

	if colorOutput {
		b.WriteString("\x1b[0m")
	}

	fmt.Fprint(out, b.String())
}

// WarnDryRun creates the notice shown when nothing was deleted although
// removable units were found.
func WarnDryRun(repository string, s Removable) Warning {
	return Warning{
		Title:      "Dry run, nothing was deleted",
		Message:    fmt.Sprintf("%d builds and %d versions could be removed", s.Builds, s.Versions),
		Paths:      []string{repository},
		Suggestion: "Set delete_builds / delete_versions in the configuration or pass --delete-builds / --delete-versions",
	}
}

// Removable counts the units a dry run left in place.
type Removable struct {
	Builds   int
	Versions int
}
