package cmd

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/harrison/repocleaner/internal/config"
	"github.com/harrison/repocleaner/internal/display"
)

// NewHistoryCommand creates the history command
func NewHistoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded clean runs",
		Long: `Show recorded clean runs, newest first.

With --clear the recorded runs are deleted instead, optionally only
those older than --older-than.`,
		Args: cobra.NoArgs,
		RunE: runHistory,
	}

	cmd.Flags().Int("limit", 20, "Maximum number of runs to show (0 = all)")
	cmd.Flags().String("repository", "", "Only show runs of this repository")
	cmd.Flags().Bool("clear", false, "Delete recorded runs")
	cmd.Flags().Duration("older-than", 0, "With --clear, only delete runs older than this (e.g. 720h)")
	cmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
	cmd.Flags().String("db-path", "", "Path to the history database (default: ~/.repocleaner/history.db)")

	return cmd
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	store, err := openStore(cmd, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	if clearRuns, _ := cmd.Flags().GetBool("clear"); clearRuns {
		olderThan, _ := cmd.Flags().GetDuration("older-than")
		yes, _ := cmd.Flags().GetBool("yes")

		var cutoff time.Time
		if olderThan > 0 {
			cutoff = time.Now().Add(-olderThan)
			fmt.Fprintf(cmd.OutOrStdout(), "This will delete runs started before %s.\n", cutoff.Format(time.DateTime))
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "This will delete all recorded runs.")
		}
		if !yes && !confirmAction(cmd.InOrStdin(), cmd.OutOrStdout()) {
			fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
			return nil
		}

		n, err := store.Clear(cmd.Context(), cutoff)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d runs\n", n)
		return nil
	}

	repository, _ := cmd.Flags().GetString("repository")
	if repository != "" {
		abs, err := filepath.Abs(config.ExpandHome(repository))
		if err != nil {
			return fmt.Errorf("resolve repository: %w", err)
		}
		repository = abs
	}
	limit, _ := cmd.Flags().GetInt("limit")

	runs, err := store.ListRuns(cmd.Context(), repository, limit)
	if err != nil {
		return err
	}
	return display.WriteHistoryTable(cmd.OutOrStdout(), runs)
}
