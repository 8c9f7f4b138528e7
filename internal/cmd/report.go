package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harrison/repocleaner/internal/display"
	"github.com/harrison/repocleaner/internal/filelock"
	"github.com/harrison/repocleaner/internal/models"
)

// NewReportCommand creates the report command
func NewReportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report [run-id]",
		Short: "Render a recorded run as Markdown or HTML",
		Long: `Render one recorded run. Without a run id the most recent run is used;
a unique prefix of the id is enough.

Examples:
  repocleaner report
  repocleaner report 3f2a --format html --output clean.html`,
		Args: cobra.MaximumNArgs(1),
		RunE: runReport,
	}

	cmd.Flags().String("format", "md", "Output format: md or html")
	cmd.Flags().StringP("output", "o", "", "Write the report to this file instead of stdout")
	cmd.Flags().String("db-path", "", "Path to the history database (default: ~/.repocleaner/history.db)")

	return cmd
}

func runReport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	format = strings.ToLower(format)
	if format != "md" && format != "markdown" && format != "html" {
		return fmt.Errorf("invalid format %q, must be one of: md, html", format)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	store, err := openStore(cmd, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	var run *models.CleanRun
	if len(args) == 1 {
		run, err = store.GetRun(cmd.Context(), args[0])
	} else {
		run, err = store.LatestRun(cmd.Context(), "")
	}
	if err != nil {
		return err
	}

	content := display.MarkdownReport(run)
	if format == "html" {
		content, err = display.HTMLReport(run)
		if err != nil {
			return err
		}
	}

	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		_, err := fmt.Fprint(cmd.OutOrStdout(), content)
		return err
	}

	if err := filelock.LockAndWrite(output, []byte(content)); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", output)
	return nil
}
