package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harrison/repocleaner/internal/config"
	"github.com/harrison/repocleaner/internal/filter"
	"github.com/harrison/repocleaner/internal/logger"
)

// NewValidateCommand creates and returns the validate subcommand
func NewValidateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check the configuration and filters without touching the repository",
		Long: `Load the configuration, apply command-line overrides and compile
every whitelist, preserve_latest and blacklist filter.

Nothing in the repository is read or deleted.

Exit code: 0 if valid, 1 if errors found`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadRawConfig(cmd)
			if err != nil {
				return err
			}
			return validateConfigWithOutput(cfg, cmd.OutOrStdout())
		},
	}

	addRuleFlags(cmd)
	cmd.Flags().Float64("probability", 1.0, "Probability in [0, 1] that a clean executes")
	cmd.Flags().String("log-level", "", "Log level: trace, debug, info, warn, error")
	cmd.Flags().Duration("lock-timeout", 0, "How long clean waits for a concurrent run")

	return cmd
}

// validateConfigWithOutput reports every problem in cfg rather than the first.
func validateConfigWithOutput(cfg *config.Config, output io.Writer) error {
	var errs []string

	if cfg.ExecutionProbability < 0 || cfg.ExecutionProbability > 1 {
		errs = append(errs, fmt.Sprintf("execution_probability must be within [0, 1], got %v", cfg.ExecutionProbability))
	} else {
		fmt.Fprintf(output, "✓ Execution probability %v\n", cfg.ExecutionProbability)
	}

	if !logger.ValidLevel(cfg.LogLevel) {
		errs = append(errs, fmt.Sprintf("invalid log_level %q", cfg.LogLevel))
	}
	if cfg.LockTimeout < 0 {
		errs = append(errs, fmt.Sprintf("lock_timeout must be >= 0, got %v", cfg.LockTimeout))
	}

	lists := []struct {
		name    string
		entries []string
	}{
		{"whitelist", cfg.Whitelist},
		{"preserve_latest", cfg.PreserveLatest},
		{"blacklist", cfg.Blacklist},
	}
	for _, l := range lists {
		compiled, err := filter.CompileAll(l.entries)
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", l.name, err))
			continue
		}
		if len(compiled) == 0 {
			fmt.Fprintf(output, "✓ %s: none\n", l.name)
			continue
		}
		fmt.Fprintf(output, "✓ %s: %s\n", l.name, strings.Join(compiled.Strings(), ", "))
	}

	if len(errs) == 0 {
		mode := "dry run"
		switch {
		case cfg.DeleteBuilds && cfg.DeleteVersions:
			mode = "delete builds and versions"
		case cfg.DeleteBuilds:
			mode = "delete builds"
		case cfg.DeleteVersions:
			mode = "delete versions"
		}
		fmt.Fprintf(output, "✓ Mode: %s\n", mode)

		if repo, err := config.ResolveRepository(cfg.Repository); err == nil {
			fmt.Fprintf(output, "✓ Repository: %s\n", repo)
		}
		fmt.Fprintf(output, "\n✓ Configuration is valid!\n")
		return nil
	}

	fmt.Fprintf(output, "\n✗ Validation failed\n")
	for _, errMsg := range errs {
		fmt.Fprintf(output, "  ✗ %s\n", errMsg)
	}
	return fmt.Errorf("found %d validation error(s)", len(errs))
}
