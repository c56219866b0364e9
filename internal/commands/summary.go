package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pocketledger-dev/pocketledger/internal/config"
	"github.com/pocketledger-dev/pocketledger/internal/sync"
)

func newSummaryCommand(configPath *string) *cobra.Command {
	var (
		from string
		to   string
	)

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show per-category totals from the remote",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			now := time.Now()
			start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.Local)
			end := start.AddDate(0, 1, -1)

			var err error
			if from != "" {
				start, err = time.Parse("2006-01-02", from)
				if err != nil {
					return fmt.Errorf("parsing --from: %w", err)
				}
			}
			if to != "" {
				end, err = time.Parse("2006-01-02", to)
				if err != nil {
					return fmt.Errorf("parsing --to: %w", err)
				}
			}
			return runSummary(cmd, *configPath, start, end)
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "range start (YYYY-MM-DD, default: first of this month)")
	cmd.Flags().StringVar(&to, "to", "", "range end (YYYY-MM-DD, default: last of this month)")

	return cmd
}

func runSummary(cmd *cobra.Command, configPath string, start, end time.Time) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config (run 'pocketledger init' first): %w", err)
	}

	client := sync.NewClient(cfg.Remote.BaseURL, cfg.Remote.Token, cfg.Remote.Timeout())
	summary, err := client.GetSummary(cmd.Context(), start, end)
	if err != nil {
		return fmt.Errorf("fetching summary: %w", err)
	}

	fmt.Printf("Summary %s to %s\n", start.Format("2006-01-02"), end.Format("2006-01-02"))
	for _, c := range summary.ByCategory {
		total := c.TotalExpenses
		if total.IsZero() {
			total = c.TotalIncome
		}
		fmt.Printf("  %-20s  %12s  (%d transactions)\n", c.CategoryName, total.StringFixed(2), c.TransactionCount)
	}
	fmt.Printf("Income:   %12s\n", summary.Totals.TotalIncome.StringFixed(2))
	fmt.Printf("Expenses: %12s\n", summary.Totals.TotalExpenses.StringFixed(2))
	return nil
}
