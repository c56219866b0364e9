package importer

import "github.com/pocketledger-dev/pocketledger/internal/model"

// NedbankParser handles Nedbank CSV exports: standard CSV downloads and
// statement exports with varying column names. Amounts arrive either as one
// signed column or as separate debit/credit columns.
type NedbankParser struct {
	cols columnSet
}

// NewNedbankParser creates a Nedbank parser.
func NewNedbankParser() *NedbankParser {
	return &NedbankParser{cols: columnSet{
		date:        []string{"date", "transaction date", "trans date", "value date", "posting date"},
		description: []string{"description", "transaction description", "narrative", "details", "particulars"},
		amount:      []string{"amount", "transaction amount", "value", "money in/out"},
		debit:       []string{"debit", "debit amount", "dr", "money out", "withdrawal"},
		credit:      []string{"credit", "credit amount", "cr", "money in", "deposit"},
		balance:     []string{"balance", "running balance", "available balance", "closing balance"},
		reference:   []string{"reference", "ref", "transaction reference", "bank reference", "statement number"},
	}}
}

// Format returns the bank format tag.
func (p *NedbankParser) Format() model.BankFormat { return model.FormatNedbank }

// ExpectedColumns lists the logical columns the format must provide.
func (p *NedbankParser) ExpectedColumns() []string {
	return []string{"date", "description", "amount"}
}

// MapRow converts one data row.
func (p *NedbankParser) MapRow(row Row, index int) (*model.ParsedTransaction, *model.ParseError) {
	return mapHeaderRow(p.cols, row, index)
}

// Parse converts an entire file.
func (p *NedbankParser) Parse(file File) model.ParseResult {
	return parseRows(p, file)
}
