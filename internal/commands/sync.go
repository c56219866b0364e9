package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pocketledger-dev/pocketledger/internal/sync"
)

func newSyncCommand(configPath *string) *cobra.Command {
	var pullCategories bool

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Push pending transactions to the remote",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSync(cmd, *configPath, pullCategories)
		},
	}

	cmd.Flags().BoolVar(&pullCategories, "pull-categories", false, "refresh local categories from the remote")
	return cmd
}

func runSync(cmd *cobra.Command, configPath string, pullCategories bool) error {
	cfg, st, log, err := openEnv(configPath)
	if err != nil {
		return err
	}
	defer st.Close()

	client := sync.NewClient(cfg.Remote.BaseURL, cfg.Remote.Token, cfg.Remote.Timeout())
	ctx := cmd.Context()

	if pullCategories {
		cats, err := client.ListCategories(ctx)
		if err != nil {
			return fmt.Errorf("fetching categories: %w", err)
		}
		if err := st.ReplaceCategories(cats); err != nil {
			return fmt.Errorf("replacing categories: %w", err)
		}
		fmt.Printf("Refreshed %d categories\n", len(cats))
	}

	coordinator := sync.NewCoordinator(st, client, cfg.Sync.BatchSize, log)
	result, err := coordinator.Push(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Pushed %d, skipped %d duplicates, %d errors\n", result.Pushed, result.Skipped, result.Errors)
	if len(result.SkippedRefs) > 0 {
		fmt.Printf("Duplicate references: %s\n", strings.Join(result.SkippedRefs, ", "))
	}
	if last, err := st.LastSyncTime(); err == nil && last != nil {
		fmt.Printf("Last sync: %s\n", last.Local().Format("2006-01-02 15:04:05"))
	}
	return nil
}
