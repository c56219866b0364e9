package categorize

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/pocketledger-dev/pocketledger/internal/model"
)

// Store is the persistence surface apply-with-rule needs.
type Store interface {
	AddRule(rule model.CategoryRule) (model.CategoryRule, error)
	IncrementRuleHit(ruleID string) error
	SetTransactionCategory(localID, categoryID string, by model.CategorizationMethod, confidence *decimal.Decimal) error
	ListTransactions() ([]model.Transaction, error)
}

// ApplyResult reports what an apply-with-rule run did.
type ApplyResult struct {
	RuleID  string
	Pattern string
	Applied int // similar transactions categorized, excluding the original
}

// ApplyWithRule categorizes one transaction manually, optionally persists a
// contains-type user rule derived from the description, then applies the
// same category to every currently uncategorized similar transaction. This
// is an explicit user-triggered batch, not a side effect of rule creation.
func ApplyWithRule(store Store, txn model.Transaction, categoryID, categoryName string, createRule bool) (ApplyResult, error) {
	if err := store.SetTransactionCategory(txn.LocalID, categoryID, model.CategorizedManual, nil); err != nil {
		return ApplyResult{}, fmt.Errorf("categorizing transaction: %w", err)
	}

	pattern := ExtractPattern(txn.Description)
	if pattern == "" {
		pattern = ExtractPattern(txn.RawDescription)
	}
	result := ApplyResult{Pattern: pattern}

	var ruleID string
	if createRule && pattern != "" {
		rule, err := store.AddRule(model.CategoryRule{
			Pattern:       pattern,
			CategoryID:    categoryID,
			CategoryName:  categoryName,
			MatchType:     model.MatchContains,
			IsUserDefined: true,
		})
		if err != nil {
			return result, fmt.Errorf("creating rule: %w", err)
		}
		ruleID = rule.ID
		result.RuleID = ruleID
	}

	if pattern == "" {
		return result, nil
	}

	all, err := store.ListTransactions()
	if err != nil {
		return result, fmt.Errorf("listing transactions: %w", err)
	}

	score := model.ConfidenceHigh.Score()
	for _, similar := range FindSimilar(all, pattern, txn.LocalID) {
		if similar.IsCategorized {
			continue
		}
		if err := store.SetTransactionCategory(similar.LocalID, categoryID, model.CategorizedRule, score); err != nil {
			return result, fmt.Errorf("categorizing similar transaction %s: %w", similar.LocalID, err)
		}
		if ruleID != "" {
			if err := store.IncrementRuleHit(ruleID); err != nil {
				return result, fmt.Errorf("incrementing rule hits: %w", err)
			}
		}
		result.Applied++
	}
	return result, nil
}
