package categorize

import (
	"strings"

	"github.com/pocketledger-dev/pocketledger/internal/model"
)

// Result is the outcome of categorizing one transaction. All fields are
// zero when nothing matched; that is a valid outcome, not an error.
type Result struct {
	CategoryID     string
	CategoryName   string
	Confidence     model.Confidence
	MatchedPattern string
	// RuleID is set when a user-defined rule fired, so the caller can
	// increment its hit count.
	RuleID string
}

// Matched reports whether a category was assigned.
func (r Result) Matched() bool { return r.CategoryID != "" }

// Engine assigns categories to transactions. User-defined rules always take
// precedence over the built-in keyword table. The engine holds an immutable
// snapshot of categories and rules; rebuild it after rule mutations.
type Engine struct {
	nameToID map[string]string // lower-cased category name -> id
	rules    []model.CategoryRule
}

// NewEngine creates an engine over the known categories and user rules.
// Rules are evaluated in the order given (insertion order, not specificity).
func NewEngine(categories []model.Category, rules []model.CategoryRule) *Engine {
	nameToID := make(map[string]string, len(categories))
	for _, c := range categories {
		nameToID[strings.ToLower(c.Name)] = c.ID
	}
	return &Engine{nameToID: nameToID, rules: rules}
}

// Categorize returns the best-match category for a transaction.
// User rules are checked first, in stored order; the first match wins and
// reports high confidence. Built-in keyword rules run next, gated on the
// amount sign; keyword length proxies specificity for the confidence tier.
func (e *Engine) Categorize(txn model.Transaction) Result {
	desc := strings.ToUpper(txn.Description)
	raw := strings.ToUpper(txn.RawDescription)
	searchText := desc + " " + raw

	for _, rule := range e.rules {
		pattern := strings.ToUpper(rule.Pattern)
		if pattern == "" {
			continue
		}

		var hit bool
		switch rule.MatchType {
		case model.MatchExact:
			hit = desc == pattern || raw == pattern
		case model.MatchStartsWith:
			hit = strings.HasPrefix(desc, pattern) || strings.HasPrefix(raw, pattern)
		default: // contains
			hit = strings.Contains(searchText, pattern)
		}
		if hit {
			return Result{
				CategoryID:     rule.CategoryID,
				CategoryName:   rule.CategoryName,
				Confidence:     model.ConfidenceHigh,
				MatchedPattern: rule.Pattern,
				RuleID:         rule.ID,
			}
		}
	}

	isIncome := txn.Amount.IsPositive()
	for _, rule := range keywordRules {
		if rule.incomeOnly && !isIncome {
			continue
		}
		if rule.expenseOnly && isIncome {
			continue
		}
		for _, keyword := range rule.keywords {
			if !strings.Contains(searchText, strings.ToUpper(keyword)) {
				continue
			}
			id, ok := e.nameToID[strings.ToLower(rule.category)]
			if !ok {
				continue
			}
			confidence := model.ConfidenceMedium
			if len(keyword) > 5 {
				confidence = model.ConfidenceHigh
			}
			return Result{
				CategoryID:     id,
				CategoryName:   rule.category,
				Confidence:     confidence,
				MatchedPattern: keyword,
			}
		}
	}

	return Result{}
}

// CategorizeBatch processes transactions independently and returns results
// keyed by local identifier. Transactions without a local identifier are
// skipped.
func (e *Engine) CategorizeBatch(txns []model.Transaction) map[string]Result {
	results := make(map[string]Result, len(txns))
	for _, txn := range txns {
		if txn.LocalID == "" {
			continue
		}
		results[txn.LocalID] = e.Categorize(txn)
	}
	return results
}

// BatchStats summarizes a batch categorization run.
type BatchStats struct {
	Total            int
	Categorized      int
	HighConfidence   int
	MediumConfidence int
	Uncategorized    int
}

// Stats tallies a batch result.
func Stats(results map[string]Result) BatchStats {
	s := BatchStats{Total: len(results)}
	for _, r := range results {
		if !r.Matched() {
			continue
		}
		s.Categorized++
		switch r.Confidence {
		case model.ConfidenceHigh:
			s.HighConfidence++
		case model.ConfidenceMedium:
			s.MediumConfidence++
		}
	}
	s.Uncategorized = s.Total - s.Categorized
	return s
}
