package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pocketledger-dev/pocketledger/internal/categorize"
	"github.com/pocketledger-dev/pocketledger/internal/model"
	"github.com/pocketledger-dev/pocketledger/internal/store"
)

func newCategorizeCommand(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categorize",
		Short: "Auto-categorize uncategorized transactions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCategorize(*configPath)
		},
	}

	cmd.AddCommand(newCategorizeSetCommand(configPath))
	return cmd
}

func runCategorize(configPath string) error {
	_, st, log, err := openEnv(configPath)
	if err != nil {
		return err
	}
	defer st.Close()

	engine, err := buildEngine(st)
	if err != nil {
		return err
	}

	uncategorized := false
	txns, err := st.FindTransactions(store.Filter{Categorized: &uncategorized})
	if err != nil {
		return fmt.Errorf("listing transactions: %w", err)
	}
	if len(txns) == 0 {
		fmt.Println("Nothing to categorize")
		return nil
	}

	results := engine.CategorizeBatch(txns)
	for localID, r := range results {
		if !r.Matched() {
			continue
		}
		by := model.CategorizedAuto
		if r.RuleID != "" {
			by = model.CategorizedRule
		}
		if err := st.SetTransactionCategory(localID, r.CategoryID, by, r.Confidence.Score()); err != nil {
			return fmt.Errorf("categorizing transaction %s: %w", localID, err)
		}
		if r.RuleID != "" {
			if err := st.IncrementRuleHit(r.RuleID); err != nil {
				return fmt.Errorf("incrementing rule hits: %w", err)
			}
		}
		log.Debug().Str("local_id", localID).Str("category", r.CategoryName).
			Str("pattern", r.MatchedPattern).Msg("categorized")
	}

	stats := categorize.Stats(results)
	fmt.Printf("Categorized %d of %d (%d high confidence, %d medium, %d unmatched)\n",
		stats.Categorized, stats.Total, stats.HighConfidence, stats.MediumConfidence, stats.Uncategorized)
	return nil
}

func newCategorizeSetCommand(configPath *string) *cobra.Command {
	var createRule bool

	cmd := &cobra.Command{
		Use:   "set <local-id> <category-name>",
		Short: "Categorize one transaction and similar ones",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCategorizeSet(*configPath, args[0], args[1], createRule)
		},
	}

	cmd.Flags().BoolVar(&createRule, "rule", true, "create a reusable rule from the description")
	return cmd
}

func runCategorizeSet(configPath, localID, categoryName string, createRule bool) error {
	_, st, _, err := openEnv(configPath)
	if err != nil {
		return err
	}
	defer st.Close()

	txn, err := st.GetTransaction(localID)
	if err != nil {
		return fmt.Errorf("loading transaction: %w", err)
	}
	cat, err := st.GetCategoryByName(categoryName)
	if err != nil {
		return fmt.Errorf("loading category %q: %w", categoryName, err)
	}

	result, err := categorize.ApplyWithRule(st, txn, cat.ID, cat.Name, createRule)
	if err != nil {
		return err
	}

	fmt.Printf("Categorized %s as %s\n", localID, cat.Name)
	if result.RuleID != "" {
		fmt.Printf("Created rule %s (pattern %q)\n", result.RuleID, result.Pattern)
	}
	if result.Applied > 0 {
		fmt.Printf("Applied to %d similar transactions\n", result.Applied)
	}
	return nil
}
