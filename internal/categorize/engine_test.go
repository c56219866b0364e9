package categorize

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pocketledger-dev/pocketledger/internal/model"
)

func testCategories() []model.Category {
	return []model.Category{
		{ID: "cat-groceries", Name: "Groceries"},
		{ID: "cat-transport", Name: "Transport"},
		{ID: "cat-fuel", Name: "Fuel"},
		{ID: "cat-salary", Name: "Salary", IsIncome: true},
		{ID: "cat-diy", Name: "Shopping"},
	}
}

func expense(desc string, amount float64) model.Transaction {
	return model.Transaction{
		ParsedTransaction: model.ParsedTransaction{
			Description: desc,
			Amount:      decimal.NewFromFloat(amount),
		},
		LocalID: "txn-" + desc,
	}
}

func TestEngine_KeywordMatch(t *testing.T) {
	e := NewEngine(testCategories(), nil)

	r := e.Categorize(expense("CHECKERS SANDTON CITY", -450.50))
	require.True(t, r.Matched())
	assert.Equal(t, "cat-groceries", r.CategoryID)
	assert.Equal(t, "Groceries", r.CategoryName)
	assert.Equal(t, model.ConfidenceHigh, r.Confidence)
	assert.Equal(t, "CHECKERS", r.MatchedPattern)
	assert.Empty(t, r.RuleID)
}

func TestEngine_ShortKeywordIsMediumConfidence(t *testing.T) {
	e := NewEngine(testCategories(), nil)

	// "PNP" is a 3-character keyword: too generic for high confidence.
	r := e.Categorize(expense("PNP FAMILY CLAREMONT", -120))
	require.True(t, r.Matched())
	assert.Equal(t, "cat-groceries", r.CategoryID)
	assert.Equal(t, model.ConfidenceMedium, r.Confidence)
}

func TestEngine_IncomeKeywordNeverFiresOnExpense(t *testing.T) {
	e := NewEngine(testCategories(), nil)

	// A debit order described as "SALARY ADVANCE REPAYMENT" must not land
	// in the Salary income category.
	r := e.Categorize(expense("SALARY ADVANCE REPAYMENT", -1000))
	assert.False(t, r.Matched())

	income := expense("SALARY ACME CORP", 25000)
	r = e.Categorize(income)
	require.True(t, r.Matched())
	assert.Equal(t, "cat-salary", r.CategoryID)
	assert.Equal(t, model.ConfidenceHigh, r.Confidence)
}

func TestEngine_UserRuleTakesPrecedence(t *testing.T) {
	rules := []model.CategoryRule{
		{ID: "rule-1", Pattern: "checkers", CategoryID: "cat-diy", CategoryName: "Shopping", MatchType: model.MatchContains},
	}
	e := NewEngine(testCategories(), rules)

	r := e.Categorize(expense("CHECKERS SANDTON CITY", -450.50))
	require.True(t, r.Matched())
	assert.Equal(t, "cat-diy", r.CategoryID)
	assert.Equal(t, model.ConfidenceHigh, r.Confidence)
	assert.Equal(t, "rule-1", r.RuleID)
	assert.Equal(t, "checkers", r.MatchedPattern)
}

func TestEngine_RuleMatchTypes(t *testing.T) {
	rules := []model.CategoryRule{
		{ID: "exact", Pattern: "SPAR", CategoryID: "cat-groceries", MatchType: model.MatchExact},
		{ID: "prefix", Pattern: "UBER", CategoryID: "cat-transport", MatchType: model.MatchStartsWith},
	}
	e := NewEngine(testCategories(), rules)

	assert.Equal(t, "exact", e.Categorize(expense("SPAR", -10)).RuleID)
	assert.NotEqual(t, "exact", e.Categorize(expense("SPAR TOPS", -10)).RuleID)
	assert.Equal(t, "prefix", e.Categorize(expense("UBER TRIP CAPE TOWN", -50)).RuleID)
}

func TestEngine_RuleOrderIsInsertionOrder(t *testing.T) {
	rules := []model.CategoryRule{
		{ID: "first", Pattern: "CHECKERS", CategoryID: "cat-groceries", MatchType: model.MatchContains},
		{ID: "second", Pattern: "CHECKERS SANDTON", CategoryID: "cat-diy", MatchType: model.MatchContains},
	}
	e := NewEngine(testCategories(), rules)

	// The earlier, less specific rule wins: order, not specificity.
	r := e.Categorize(expense("CHECKERS SANDTON CITY", -450.50))
	assert.Equal(t, "first", r.RuleID)
}

func TestEngine_NoMatchIsZeroResult(t *testing.T) {
	e := NewEngine(testCategories(), nil)

	r := e.Categorize(expense("UNKNOWN MERCHANT 42", -10))
	assert.False(t, r.Matched())
	assert.Equal(t, Result{}, r)
}

func TestEngine_KeywordWithoutCategoryIsSkipped(t *testing.T) {
	// No "Dining Out" category configured: the NANDOS keyword cannot
	// resolve and the transaction stays uncategorized.
	e := NewEngine([]model.Category{{ID: "cat-salary", Name: "Salary", IsIncome: true}}, nil)

	r := e.Categorize(expense("NANDOS GATEWAY", -150))
	assert.False(t, r.Matched())
}

func TestEngine_CategorizeBatch(t *testing.T) {
	e := NewEngine(testCategories(), nil)

	txns := []model.Transaction{
		expense("CHECKERS SANDTON", -450),
		expense("UBER TRIP CAPE TOWN", -500),
		expense("UNKNOWN MERCHANT", -10),
		{ParsedTransaction: model.ParsedTransaction{Description: "NO LOCAL ID"}},
	}

	results := e.CategorizeBatch(txns)
	assert.Len(t, results, 3)

	stats := Stats(results)
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 2, stats.Categorized)
	assert.Equal(t, 1, stats.Uncategorized)
	assert.Equal(t, 2, stats.HighConfidence)
}
