package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pocketledger-dev/pocketledger/internal/model"
	"github.com/pocketledger-dev/pocketledger/internal/store"
)

func newListCommand(configPath *string) *cobra.Command {
	var (
		from          string
		to            string
		category      string
		query         string
		status        string
		uncategorized bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored transactions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := store.Filter{
				Query:      query,
				SyncStatus: model.SyncStatus(status),
			}
			if from != "" {
				t, err := time.Parse("2006-01-02", from)
				if err != nil {
					return fmt.Errorf("parsing --from: %w", err)
				}
				filter.Start = &t
			}
			if to != "" {
				t, err := time.Parse("2006-01-02", to)
				if err != nil {
					return fmt.Errorf("parsing --to: %w", err)
				}
				filter.End = &t
			}
			if uncategorized {
				categorized := false
				filter.Categorized = &categorized
			}
			return runList(*configPath, category, filter)
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "earliest transaction date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "latest transaction date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&category, "category", "", "filter by category name")
	cmd.Flags().StringVar(&query, "query", "", "substring match on description")
	cmd.Flags().StringVar(&status, "status", "", "filter by sync status (pending, synced)")
	cmd.Flags().BoolVar(&uncategorized, "uncategorized", false, "only uncategorized transactions")

	return cmd
}

func runList(configPath, categoryName string, filter store.Filter) error {
	_, st, _, err := openEnv(configPath)
	if err != nil {
		return err
	}
	defer st.Close()

	categoryNames := make(map[string]string)
	cats, err := st.ListCategories()
	if err != nil {
		return fmt.Errorf("listing categories: %w", err)
	}
	for _, c := range cats {
		categoryNames[c.ID] = c.Name
	}

	if categoryName != "" {
		cat, err := st.GetCategoryByName(categoryName)
		if err != nil {
			return fmt.Errorf("loading category %q: %w", categoryName, err)
		}
		filter.CategoryID = cat.ID
	}

	txns, err := st.FindTransactions(filter)
	if err != nil {
		return fmt.Errorf("listing transactions: %w", err)
	}

	for _, txn := range txns {
		category := categoryNames[txn.CategoryID]
		if category == "" {
			category = "-"
		}
		fmt.Printf("%s  %s  %10s  %-20s  %s  %s\n",
			txn.LocalID,
			txn.TransactionDate.Format("2006-01-02"),
			txn.Amount.StringFixed(2),
			category,
			txn.SyncStatus,
			txn.Description,
		)
	}
	fmt.Printf("%d transactions\n", len(txns))
	return nil
}
