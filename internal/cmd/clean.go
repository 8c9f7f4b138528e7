package cmd

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/spf13/cobra"

	"github.com/harrison/repocleaner/internal/cleaner"
	"github.com/harrison/repocleaner/internal/config"
	"github.com/harrison/repocleaner/internal/display"
	"github.com/harrison/repocleaner/internal/filelock"
	"github.com/harrison/repocleaner/internal/history"
	"github.com/harrison/repocleaner/internal/logger"
	"github.com/harrison/repocleaner/internal/models"
)

// ErrCleanInProgress is returned when another process holds the repository lock.
var ErrCleanInProgress = errors.New("another clean is in progress")

// randFloat draws the value the execution probability is compared against.
var randFloat = rand.Float64

// NewCleanCommand creates the clean command
func NewCleanCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove superseded builds and versions from the repository",
		Long: `Walk the local repository and remove superseded snapshot builds
and version directories.

Without --delete-builds or --delete-versions (or the matching config
keys) the run only reports what could be removed.

Examples:
  repocleaner clean
  repocleaner clean --delete-versions --preserve-latest 'org.example:*:1.*'
  repocleaner clean -r /srv/m2 --delete-builds --force`,
		Args: cobra.NoArgs,
		RunE: runClean,
	}

	addRuleFlags(cmd)
	cmd.Flags().Float64("probability", 1.0, "Probability in [0, 1] that the run executes")
	cmd.Flags().Bool("force", false, "Run regardless of the execution probability")
	cmd.Flags().String("log-level", "", "Log level: trace, debug, info, warn, error")
	cmd.Flags().String("log-dir", "", "Directory for per-run log files")
	cmd.Flags().Duration("lock-timeout", 0, "How long to wait for a concurrent clean of the same repository")
	cmd.Flags().Bool("table", false, "Print the summary as a table on stdout")
	cmd.Flags().Bool("no-history", false, "Do not record this run in the history database")

	return cmd
}

func runClean(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	log, closeLog, err := newRunLogger(cmd, cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	repo, err := config.ResolveRepository(cfg.Repository)
	if err != nil {
		return err
	}

	run := &models.CleanRun{
		ID:             history.NewRunID(),
		Repository:     repo,
		StartedAt:      time.Now(),
		DeleteBuilds:   cfg.DeleteBuilds,
		DeleteVersions: cfg.DeleteVersions,
	}

	force, _ := cmd.Flags().GetBool("force")
	if !force && !shouldExecute(cfg.ExecutionProbability) {
		log.LogInfo("Skipped due to execution probability")
		run.Skipped = true
		recordRun(cmd, cfg, log, run)
		return nil
	}

	locksDir, err := config.GetLocksDir()
	if err != nil {
		return err
	}
	lock, err := filelock.ForRepository(locksDir, repo)
	if err != nil {
		return err
	}
	if err := lock.LockWithTimeout(cmd.Context(), cfg.LockTimeout); err != nil {
		if errors.Is(err, filelock.ErrLockTimeout) {
			return fmt.Errorf("%w: %s", ErrCleanInProgress, repo)
		}
		return err
	}
	defer lock.Unlock()

	opts, err := cfg.EngineOptions()
	if err != nil {
		return err
	}

	log.LogDebug(fmt.Sprintf("Cleaning %s (delete builds: %t, delete versions: %t)", repo, opts.DeleteBuilds, opts.DeleteVersions))
	result, err := cleaner.New(repo, opts, cleaner.WithLogger(log)).Run()
	run.Duration = time.Since(run.StartedAt)
	if err != nil {
		run.Error = err.Error()
		log.LogError(fmt.Sprintf("Clean failed: %v", err))
		recordRun(cmd, cfg, log, run)
		return err
	}
	run.Stats = result.Stats

	for _, line := range display.SummaryLines(run.Stats) {
		log.LogInfo(line)
	}

	if table, _ := cmd.Flags().GetBool("table"); table {
		if err := display.WriteSummaryTable(cmd.OutOrStdout(), run); err != nil {
			return err
		}
	}

	if run.DryRun() && (run.Stats.Builds.PotentialCount > 0 || run.Stats.Versions.PotentialCount > 0) {
		display.WarnDryRun(repo, display.Removable{
			Builds:   run.Stats.Builds.PotentialCount,
			Versions: run.Stats.Versions.PotentialCount,
		}).Display(cmd.ErrOrStderr())
	}

	recordRun(cmd, cfg, log, run)
	return nil
}

// shouldExecute rolls the execution probability. A probability of 1 always
// runs and 0 never does.
func shouldExecute(probability float64) bool {
	return probability > randFloat()
}

// newRunLogger builds the console logger plus, when log_dir is set, a
// per-run file logger. The returned func closes the file logger.
func newRunLogger(cmd *cobra.Command, cfg *config.Config) (logger.Logger, func(), error) {
	console := logger.NewConsoleLogger(cmd.ErrOrStderr(), cfg.LogLevel)
	if cfg.LogDir == "" {
		return console, func() {}, nil
	}

	fileLog, err := logger.NewFileLogger(config.ExpandHome(cfg.LogDir), cfg.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create file logger: %w", err)
	}
	return logger.NewMulti(console, fileLog), func() { fileLog.Close() }, nil
}

// recordRun stores run in the history database. Failures are logged and do
// not fail the clean.
func recordRun(cmd *cobra.Command, cfg *config.Config, log logger.Logger, run *models.CleanRun) {
	if noHistory, _ := cmd.Flags().GetBool("no-history"); noHistory || !cfg.History.Enabled {
		return
	}

	store, err := openStore(cmd, cfg)
	if err != nil {
		log.LogWarn(err.Error())
		return
	}
	defer store.Close()

	if err := store.RecordRun(cmd.Context(), run); err != nil {
		log.LogWarn(fmt.Sprintf("Failed to record run: %v", err))
		return
	}
	log.LogDebug(fmt.Sprintf("Recorded run %s", run.ID))
}
