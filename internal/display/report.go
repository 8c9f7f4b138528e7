package display

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/harrison/repocleaner/internal/models"
)

// MarkdownReport renders one run as a Markdown document.
func MarkdownReport(run *models.CleanRun) string {
	var b strings.Builder
	s := run.Stats

	fmt.Fprintf(&b, "# Repository clean %s\n\n", run.ID)
	fmt.Fprintf(&b, "- **Repository:** `%s`\n", run.Repository)
	fmt.Fprintf(&b, "- **Started:** %s\n", run.StartedAt.UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, "- **Duration:** %s\n", run.Duration.Round(time.Millisecond))
	fmt.Fprintf(&b, "- **Status:** %s\n", run.Status())
	fmt.Fprintf(&b, "- **Delete builds:** %t\n", run.DeleteBuilds)
	fmt.Fprintf(&b, "- **Delete versions:** %t\n", run.DeleteVersions)
	if run.Error != "" {
		fmt.Fprintf(&b, "- **Error:** %s\n", run.Error)
	}

	if run.Skipped {
		b.WriteString("\nSkipped due to execution probability.\n")
		return b.String()
	}

	b.WriteString("\n## Summary\n\n")
	b.WriteString("| | Count | Files | Size |\n")
	b.WriteString("|---|---:|---:|---:|\n")
	fmt.Fprintf(&b, "| Repository before | | %d | %s |\n", s.AllFiles, FormatSize(s.AllSize))
	writeCategoryRow(&b, "Removed builds", s.Builds.DeletedCount, s.Builds.DeletedFiles, s.Builds.DeletedSize)
	writeCategoryRow(&b, "Removed versions", s.Versions.DeletedCount, s.Versions.DeletedFiles, s.Versions.DeletedSize)
	fmt.Fprintf(&b, "| Repository now | | %d | %s |\n", s.RemainingFiles(), FormatSize(s.RemainingSize()))
	writeCategoryRow(&b, "Removable builds", s.Builds.PotentialCount, s.Builds.PotentialFiles, s.Builds.PotentialSize)
	writeCategoryRow(&b, "Removable versions", s.Versions.PotentialCount, s.Versions.PotentialFiles, s.Versions.PotentialSize)

	if run.DryRun() && (s.Builds.PotentialCount > 0 || s.Versions.PotentialCount > 0) {
		b.WriteString("\n> Dry run: enable `delete_builds` or `delete_versions` to remove the units listed as removable.\n")
	}

	return b.String()
}

func writeCategoryRow(b *strings.Builder, label string, count, files int, size int64) {
	fmt.Fprintf(b, "| %s | %d | %d | %s |\n", label, count, files, FormatSize(size))
}

// HTMLReport renders MarkdownReport as a standalone HTML page.
func HTMLReport(run *models.CleanRun) (string, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))

	var body bytes.Buffer
	if err := md.Convert([]byte(MarkdownReport(run)), &body); err != nil {
		return "", fmt.Errorf("convert report to HTML: %w", err)
	}

	var page strings.Builder
	page.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&page, "<title>Repository clean %s</title>\n", run.ID)
	page.WriteString("</head>\n<body>\n")
	page.Write(body.Bytes())
	page.WriteString("</body>\n</html>\n")
	return page.String(), nil
}
