package commands

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/fipe-dev/fipe/internal/buildinfo"
	"github.com/fipe-dev/fipe/internal/config"
	"github.com/fipe-dev/fipe/internal/logger"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	var repoDir string
	var logLevel string

	rootCmd := &cobra.Command{
		Use:     "fipe",
		Short:   "Personal finance ledger fed by bank statements",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := logLevel
			if level == "" {
				// A missing or broken config is reported by the command itself.
				if cfg, err := config.Load(filepath.Join(repoDir, config.FileName)); err == nil {
					level = cfg.Log.Level
				}
			}
			logger.Init(level, os.Stderr)
		},
	}

	rootCmd.PersistentFlags().StringVar(&repoDir, "repo", ".", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error); defaults to fipe.yaml")

	rootCmd.AddCommand(
		newInitCommand(),
		newImportCommand(&repoDir),
		newQuickCommand(&repoDir),
		newListCommand(&repoDir),
		newEditCommand(&repoDir),
		newImportsCommand(&repoDir),
		newSummaryCommand(&repoDir),
		newServeCommand(&repoDir),
	)

	return rootCmd
}
