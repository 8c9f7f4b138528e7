package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harrison/repocleaner/internal/config"
	"github.com/harrison/repocleaner/internal/history"
)

// loadConfig loads and validates the configuration for cmd.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := loadRawConfig(cmd)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// loadRawConfig loads the env file and configuration named by the persistent
// flags, then applies any rule flags the command registered.
func loadRawConfig(cmd *cobra.Command) (*config.Config, error) {
	envFile, _ := cmd.Flags().GetString("env-file")
	if envFile != "" {
		if err := config.LoadEnvFile(envFile); err != nil {
			return nil, err
		}
	}

	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		path, err := config.GetConfigPath()
		if err != nil {
			return nil, fmt.Errorf("failed to get config path: %w", err)
		}
		configPath = path
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	cfg.MergeWithFlags(overridesFromFlags(cmd))
	return cfg, nil
}

// addRuleFlags registers the filter and deletion flags shared by clean and validate.
func addRuleFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("repository", "r", "", "Maven local repository (default: settings.xml or ~/.m2/repository)")
	cmd.Flags().Bool("delete-builds", false, "Delete superseded snapshot builds")
	cmd.Flags().Bool("delete-versions", false, "Delete superseded version directories")
	cmd.Flags().StringSlice("whitelist", nil, "Versions never deleted ([[group:]artifact:]version, * and ? wildcards)")
	cmd.Flags().StringSlice("preserve-latest", nil, "Keep the newest version matching each filter")
	cmd.Flags().StringSlice("blacklist", nil, "Versions always deleted unless whitelisted or preserved")
}

// overridesFromFlags collects the flags the user actually set. Flags the
// command does not define are ignored.
func overridesFromFlags(cmd *cobra.Command) config.Overrides {
	flags := cmd.Flags()
	changed := func(name string) bool {
		return flags.Lookup(name) != nil && flags.Changed(name)
	}

	var o config.Overrides
	if changed("repository") {
		v, _ := flags.GetString("repository")
		o.Repository = &v
	}
	if changed("delete-builds") {
		v, _ := flags.GetBool("delete-builds")
		o.DeleteBuilds = &v
	}
	if changed("delete-versions") {
		v, _ := flags.GetBool("delete-versions")
		o.DeleteVersions = &v
	}
	if changed("probability") {
		v, _ := flags.GetFloat64("probability")
		o.ExecutionProbability = &v
	}
	if changed("whitelist") {
		o.Whitelist, _ = flags.GetStringSlice("whitelist")
	}
	if changed("preserve-latest") {
		o.PreserveLatest, _ = flags.GetStringSlice("preserve-latest")
	}
	if changed("blacklist") {
		o.Blacklist, _ = flags.GetStringSlice("blacklist")
	}
	if changed("log-level") {
		v, _ := flags.GetString("log-level")
		o.LogLevel = &v
	}
	if changed("log-dir") {
		v, _ := flags.GetString("log-dir")
		o.LogDir = &v
	}
	if changed("lock-timeout") {
		v, _ := flags.GetDuration("lock-timeout")
		o.LockTimeout = &v
	}
	return o
}

// openStore opens the history database, preferring --db-path when the
// command defines it.
func openStore(cmd *cobra.Command, cfg *config.Config) (*history.Store, error) {
	dbPath := ""
	if cmd.Flags().Lookup("db-path") != nil {
		dbPath, _ = cmd.Flags().GetString("db-path")
	}
	if dbPath == "" {
		path, err := cfg.GetHistoryDBPath()
		if err != nil {
			return nil, fmt.Errorf("failed to get history database path: %w", err)
		}
		dbPath = path
	}

	store, err := history.NewStore(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	return store, nil
}

// confirmAction prompts for confirmation and returns true if user confirms
func confirmAction(in io.Reader, out io.Writer) bool {
	scanner := bufio.NewScanner(in)

	fmt.Fprint(out, "Continue? [y/N]: ")

	if !scanner.Scan() {
		return false
	}

	response := strings.TrimSpace(strings.ToLower(scanner.Text()))
	return response == "y" || response == "yes"
}
