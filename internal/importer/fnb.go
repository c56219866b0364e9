package importer

import "github.com/pocketledger-dev/pocketledger/internal/model"

// FNBParser handles FNB CSV exports, which split amounts into separate
// money-in/money-out columns and format dates as "25 Jan 2025".
type FNBParser struct {
	cols columnSet
}

// NewFNBParser creates an FNB parser.
func NewFNBParser() *FNBParser {
	return &FNBParser{cols: columnSet{
		date:        []string{"date", "transaction date", "posting date"},
		description: []string{"description", "details", "narrative"},
		amount:      []string{"amount"},
		debit:       []string{"money out", "debit", "amount out"},
		credit:      []string{"money in", "credit", "amount in"},
		balance:     []string{"balance", "running balance"},
		reference:   []string{"reference", "ref"},
	}}
}

// Format returns the bank format tag.
func (p *FNBParser) Format() model.BankFormat { return model.FormatFNB }

// ExpectedColumns lists the logical columns the format must provide.
func (p *FNBParser) ExpectedColumns() []string {
	return []string{"date", "description", "money in", "money out"}
}

// MapRow converts one data row.
func (p *FNBParser) MapRow(row Row, index int) (*model.ParsedTransaction, *model.ParseError) {
	return mapHeaderRow(p.cols, row, index)
}

// Parse converts an entire file.
func (p *FNBParser) Parse(file File) model.ParseResult {
	return parseRows(p, file)
}
