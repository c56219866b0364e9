package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pocketledger-dev/pocketledger/internal/model"
)

func newRulesCommand(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List categorization rules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRulesList(*configPath)
		},
	}

	cmd.AddCommand(newRulesAddCommand(configPath))
	cmd.AddCommand(newRulesDeleteCommand(configPath))
	return cmd
}

func runRulesList(configPath string) error {
	_, st, _, err := openEnv(configPath)
	if err != nil {
		return err
	}
	defer st.Close()

	rules, err := st.ListRules()
	if err != nil {
		return fmt.Errorf("listing rules: %w", err)
	}

	for _, r := range rules {
		fmt.Printf("%s  %-12s  %-30q  %-20s  hits=%d\n",
			r.ID, r.MatchType, r.Pattern, r.CategoryName, r.HitCount)
	}
	fmt.Printf("%d rules\n", len(rules))
	return nil
}

func newRulesAddCommand(configPath *string) *cobra.Command {
	var matchType string

	cmd := &cobra.Command{
		Use:   "add <pattern> <category-name>",
		Short: "Add a categorization rule",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRulesAdd(*configPath, args[0], args[1], matchType)
		},
	}

	cmd.Flags().StringVar(&matchType, "match", string(model.MatchContains), "match type (contains, starts_with, exact)")
	return cmd
}

func runRulesAdd(configPath, pattern, categoryName, matchType string) error {
	_, st, _, err := openEnv(configPath)
	if err != nil {
		return err
	}
	defer st.Close()

	cat, err := st.GetCategoryByName(categoryName)
	if err != nil {
		return fmt.Errorf("loading category %q: %w", categoryName, err)
	}

	if existing, err := st.FindRuleByPattern(pattern); err == nil {
		return fmt.Errorf("pattern already covered by rule %s (%s)", existing.ID, existing.CategoryName)
	}

	rule, err := st.AddRule(model.CategoryRule{
		Pattern:       pattern,
		CategoryID:    cat.ID,
		CategoryName:  cat.Name,
		MatchType:     model.MatchType(matchType),
		IsUserDefined: true,
	})
	if err != nil {
		return fmt.Errorf("adding rule: %w", err)
	}

	fmt.Printf("Added rule %s: %q -> %s\n", rule.ID, rule.Pattern, rule.CategoryName)
	return nil
}

func newRulesDeleteCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <rule-id>",
		Short: "Delete a categorization rule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, st, _, err := openEnv(*configPath)
			if err != nil {
				return err
			}
			defer st.Close()

			if err := st.DeleteRule(args[0]); err != nil {
				return fmt.Errorf("deleting rule: %w", err)
			}
			fmt.Printf("Deleted rule %s\n", args[0])
			return nil
		},
	}
}
