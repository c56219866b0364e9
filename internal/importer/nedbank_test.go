package importer

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseTestFile(t *testing.T, path string, hasHeader bool) File {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	file, err := Decode(f, hasHeader)
	require.NoError(t, err)
	return file
}

func TestNedbankParser_Parse(t *testing.T) {
	p := NewNedbankParser()
	file := parseTestFile(t, "../../testdata/nedbank.csv", true)

	result := p.Parse(file)
	require.True(t, result.Success)
	require.Len(t, result.Transactions, 4)

	// Opening balance row is skipped silently, not errored.
	assert.Empty(t, result.Errors)
	assert.Equal(t, 5, result.Stats.TotalRows)
	assert.Equal(t, 4, result.Stats.ParsedRows)
	assert.Equal(t, 1, result.Stats.SkippedRows)

	groceries := result.Transactions[0]
	assert.Equal(t, "CHECKERS SANDTON CITY", groceries.Description)
	assert.Equal(t, "-450.50", groceries.Amount.StringFixed(2))
	assert.Equal(t, "ABC123", groceries.BankReference)
	require.NotNil(t, groceries.BalanceAfter)
	assert.Equal(t, "4549.50", groceries.BalanceAfter.StringFixed(2))

	salary := result.Transactions[1]
	assert.True(t, salary.Amount.IsPositive())
	assert.Equal(t, "25000.00", salary.Amount.StringFixed(2))

	uber := result.Transactions[2]
	assert.Equal(t, "884422", uber.BankReference)

	require.NotNil(t, result.Stats.DateRange)
	assert.Equal(t, "2025-01-16", result.Stats.DateRange.Start.Format("2006-01-02"))
	assert.Equal(t, "2025-01-20", result.Stats.DateRange.End.Format("2006-01-02"))
}

func TestNedbankParser_SingleAmountColumn(t *testing.T) {
	csv := "Date,Description,Amount,Balance\n2025-02-01,WOOLWORTHS FOOD,-320.99,1000.00\n"
	p := NewNedbankParser()
	file, err := Decode(strings.NewReader(csv), true)
	require.NoError(t, err)

	result := p.Parse(file)
	require.True(t, result.Success)
	require.Len(t, result.Transactions, 1)
	assert.Equal(t, "-320.99", result.Transactions[0].Amount.StringFixed(2))
}

func TestNedbankParser_BadDateIsRowError(t *testing.T) {
	csv := "Date,Description,Amount\nNOTADATE,CHECKERS,-10.00\n2025-02-01,SPAR,-20.00\n"
	p := NewNedbankParser()
	file, err := Decode(strings.NewReader(csv), true)
	require.NoError(t, err)

	result := p.Parse(file)
	assert.False(t, result.Success)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, 1, result.Errors[0].Row)
	assert.Equal(t, "date", result.Errors[0].Field)

	// The good row still parses.
	require.Len(t, result.Transactions, 1)
	assert.Equal(t, "SPAR", result.Transactions[0].Description)
	assert.Equal(t, 0, result.Stats.SkippedRows)
}

func TestNedbankParser_MissingAmountColumn(t *testing.T) {
	csv := "Date,Description\n2025-02-01,CHECKERS\n"
	p := NewNedbankParser()
	file, err := Decode(strings.NewReader(csv), true)
	require.NoError(t, err)

	result := p.Parse(file)
	assert.False(t, result.Success)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "amount", result.Errors[0].Field)
	assert.Contains(t, result.Errors[0].Message, "no amount column")
}

func TestNedbankParser_HeaderEchoSkipped(t *testing.T) {
	csv := "Date,Description,Amount\n2025-02-01,Description,-1.00\n"
	p := NewNedbankParser()
	file, err := Decode(strings.NewReader(csv), true)
	require.NoError(t, err)

	result := p.Parse(file)
	assert.True(t, result.Success)
	assert.Empty(t, result.Transactions)
	assert.Equal(t, 1, result.Stats.SkippedRows)
}
