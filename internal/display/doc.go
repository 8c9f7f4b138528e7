// Package display renders cleaning results for people.
//
// It centralizes all user-facing output of the repocleaner CLI: the plain
// summary lines logged after every run, the summary and history tables, the
// Markdown and HTML reports, and warnings.
//
// # Summary
//
// SummaryLines returns the log lines of a finished run:
//
//	for _, line := range display.SummaryLines(run.Stats) {
//	    log.LogInfo(line)
//	}
//
// WriteSummaryTable renders the same numbers as a table, highlighting the
// columns that changed the repository when writing to a terminal:
//
//	display.WriteSummaryTable(os.Stdout, run)
//
// # Reports
//
//	md := display.MarkdownReport(run)
//	html, err := display.HTMLReport(run)
//
// # Sizes
//
// FormatSize prints byte counts with two decimals and a binary prefix:
//
//	display.FormatSize(1536) // "1.50 kiB"
//
// All functions accept io.Writer interfaces for testability.
package display
