package main

import (
	"github.com/spf13/cobra"

	"migraph/internal/version"
)

var (
	// projectRootFlag is the CLI --project-root flag value
	projectRootFlag string
	// logFormatFlag overrides the configured log format
	logFormatFlag string
	// logLevelFlag overrides the configured log level
	logLevelFlag string
)

var rootCmd = &cobra.Command{
	Use:   "migraph",
	Short: "migraph - Migration Graph Analyzer",
	Long: `migraph plans automated language migrations for large codebases. It builds
a file-level dependency graph from parsed structural facts, detects cycles,
scores every file for complexity, risk, and convertibility, and classifies
each one as safe, caution, or unsafe for unattended migration.`,
	Version: version.Version,
}

func init() {
	rootCmd.SetVersionTemplate("migraph version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&projectRootFlag, "project-root", ".",
		"Root of the project under migration")
	rootCmd.PersistentFlags().StringVar(&logFormatFlag, "log-format", "",
		"Log format: human or json (default from config)")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "",
		"Log level: debug, info, warn, or error (default from config)")
}
