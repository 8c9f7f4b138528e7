package display

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/olekukonko/tablewriter"

	"github.com/harrison/repocleaner/internal/models"
)

// SummaryLines returns the human-readable outcome of a run, one line per
// figure, in the order they are logged.
func SummaryLines(s models.Stats) []string {
	return []string{
		fmt.Sprintf("Repository before:  %d files, %s", s.AllFiles, FormatSize(s.AllSize)),
		categoryLine("Removed builds:     ", s.Builds.DeletedCount, s.Builds.DeletedFiles, s.Builds.DeletedSize),
		categoryLine("Removed versions:   ", s.Versions.DeletedCount, s.Versions.DeletedFiles, s.Versions.DeletedSize),
		fmt.Sprintf("Repository now:     %d files, %s", s.RemainingFiles(), FormatSize(s.RemainingSize())),
		categoryLine("Removable builds:   ", s.Builds.PotentialCount, s.Builds.PotentialFiles, s.Builds.PotentialSize),
		categoryLine("Removable versions: ", s.Versions.PotentialCount, s.Versions.PotentialFiles, s.Versions.PotentialSize),
	}
}

func categoryLine(label string, count, files int, size int64) string {
	return fmt.Sprintf("%s%d (%d files, %s)", label, count, files, FormatSize(size))
}

// IsTerminal reports whether w is a terminal that should receive color.
// NO_COLOR disables color everywhere.
func IsTerminal(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// painter returns a Sprint function that colors only when enabled.
func painter(enabled bool, attrs ...color.Attribute) func(a ...interface{}) string {
	if !enabled {
		return fmt.Sprint
	}
	c := color.New(attrs...)
	c.EnableColor()
	return c.Sprint
}

// WriteSummaryTable renders the statistics of one run as a table.
func WriteSummaryTable(w io.Writer, run *models.CleanRun) error {
	colorOutput := IsTerminal(w)
	deleted := painter(colorOutput, color.FgGreen, color.Bold)
	potential := painter(colorOutput, color.FgYellow)

	s := run.Stats
	table := tablewriter.NewWriter(w)
	table.Header("", "Count", "Files", "Size")

	rows := [][]interface{}{
		{"Repository before", "", strconv.Itoa(s.AllFiles), FormatSize(s.AllSize)},
		{"Removed builds", deleted(s.Builds.DeletedCount), strconv.Itoa(s.Builds.DeletedFiles), deleted(FormatSize(s.Builds.DeletedSize))},
		{"Removed versions", deleted(s.Versions.DeletedCount), strconv.Itoa(s.Versions.DeletedFiles), deleted(FormatSize(s.Versions.DeletedSize))},
		{"Removable builds", potential(s.Builds.PotentialCount), strconv.Itoa(s.Builds.PotentialFiles), potential(FormatSize(s.Builds.PotentialSize))},
		{"Removable versions", potential(s.Versions.PotentialCount), strconv.Itoa(s.Versions.PotentialFiles), potential(FormatSize(s.Versions.PotentialSize))},
	}
	for _, row := range rows {
		if err := table.Append(row...); err != nil {
			return fmt.Errorf("append summary row: %w", err)
		}
	}
	table.Footer("Repository now", "", strconv.Itoa(s.RemainingFiles()), FormatSize(s.RemainingSize()))

	if err := table.Render(); err != nil {
		return fmt.Errorf("render summary table: %w", err)
	}
	return nil
}

// WriteHistoryTable renders recorded runs, newest first.
func WriteHistoryTable(w io.Writer, runs []*models.CleanRun) error {
	if len(runs) == 0 {
		_, err := fmt.Fprintln(w, "No runs recorded")
		return err
	}

	colorOutput := IsTerminal(w)
	failed := painter(colorOutput, color.FgRed)

	table := tablewriter.NewWriter(w)
	table.Header("Run", "Started", "Repository", "Status", "Removed", "Freed", "Removable")

	var freed int64
	for _, run := range runs {
		status := run.Status()
		if status == "failed" {
			status = failed(status)
		}
		s := run.Stats
		removed := s.Builds.DeletedCount + s.Versions.DeletedCount
		removable := s.Builds.PotentialCount + s.Versions.PotentialCount
		runFreed := s.Builds.DeletedSize + s.Versions.DeletedSize
		freed += runFreed

		err := table.Append(
			shortID(run.ID),
			run.StartedAt.Local().Format(time.DateTime),
			run.Repository,
			status,
			strconv.Itoa(removed),
			FormatSize(runFreed),
			strconv.Itoa(removable),
		)
		if err != nil {
			return fmt.Errorf("append history row: %w", err)
		}
	}
	table.Footer("", "", "", fmt.Sprintf("%d runs", len(runs)), "", FormatSize(freed), "")

	if err := table.Render(); err != nil {
		return fmt.Errorf("render history table: %w", err)
	}
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
