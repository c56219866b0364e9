package commands

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/pocketledger-dev/pocketledger/internal/buildinfo"
	"github.com/pocketledger-dev/pocketledger/internal/config"
	"github.com/pocketledger-dev/pocketledger/internal/logger"
	"github.com/pocketledger-dev/pocketledger/internal/store"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	var (
		configPath string
		verbose    bool
	)

	rootCmd := &cobra.Command{
		Use:     "pocketledger",
		Short:   "Offline-first personal finance ledger",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			} else {
				zerolog.SetGlobalLevel(zerolog.InfoLevel)
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.FileName, "path to config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(newInitCommand(&configPath))
	rootCmd.AddCommand(newImportCommand(&configPath))
	rootCmd.AddCommand(newCategorizeCommand(&configPath))
	rootCmd.AddCommand(newListCommand(&configPath))
	rootCmd.AddCommand(newRulesCommand(&configPath))
	rootCmd.AddCommand(newSyncCommand(&configPath))
	rootCmd.AddCommand(newSummaryCommand(&configPath))

	return rootCmd
}

// openEnv loads the config and opens the store for commands that need both.
func openEnv(configPath string) (*config.Config, *store.Store, zerolog.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, zerolog.Logger{}, fmt.Errorf("loading config (run 'pocketledger init' first): %w", err)
	}
	st, err := store.Open(cfg.Store.Path)
	if err != nil {
		return nil, nil, zerolog.Logger{}, fmt.Errorf("opening store: %w", err)
	}
	return cfg, st, logger.New(), nil
}
