package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pocketledger-dev/pocketledger/internal/config"
	"github.com/pocketledger-dev/pocketledger/internal/store"
)

func newInitCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new pocketledger workspace",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}
			return runInit(absDir, *configPath)
		},
	}
}

func runInit(dir, configPath string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}

	if !filepath.IsAbs(configPath) {
		configPath = filepath.Join(dir, configPath)
	}
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("config already exists at %s", configPath)
	}

	cfg := config.Default()
	cfg.Store.Path = filepath.Join(dir, cfg.Store.Path)
	if err := config.Save(configPath, cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	st, err := store.Open(cfg.Store.Path)
	if err != nil {
		return fmt.Errorf("creating store: %w", err)
	}
	defer st.Close()

	if err := st.SeedDefaultCategories(); err != nil {
		return fmt.Errorf("seeding categories: %w", err)
	}

	fmt.Printf("Initialized pocketledger workspace at %s\n", dir)
	return nil
}
