package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for repocleaner
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repocleaner",
		Short: "Prune superseded builds and versions from a Maven local repository",
		Long: `repocleaner walks a Maven local repository and removes what newer
content has superseded: older timestamped builds of a snapshot and
older version directories of an artifact.

Nothing is deleted unless delete_builds or delete_versions is enabled.
Whitelist, preserve_latest and blacklist filters decide which versions
survive.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
		// main reports the error
		SilenceErrors: true,
	}

	cmd.PersistentFlags().String("config", "", "Path to config file (default: ~/.repocleaner/config.yaml)")
	cmd.PersistentFlags().String("env-file", "", "Load REPOCLEANER_* variables from a dotenv file")

	cmd.AddCommand(NewCleanCommand())
	cmd.AddCommand(NewValidateCommand())
	cmd.AddCommand(NewHistoryCommand())
	cmd.AddCommand(NewReportCommand())

	return cmd
}
