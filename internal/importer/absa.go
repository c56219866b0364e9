package importer

import "github.com/pocketledger-dev/pocketledger/internal/model"

// AbsaParser handles Absa CSV exports: a single signed amount column with
// slash-separated dates.
type AbsaParser struct {
	cols columnSet
}

// NewAbsaParser creates an Absa parser.
func NewAbsaParser() *AbsaParser {
	return &AbsaParser{cols: columnSet{
		date:        []string{"date", "transaction date"},
		description: []string{"description", "transaction description", "details"},
		amount:      []string{"amount", "transaction amount"},
		balance:     []string{"balance", "running balance"},
		reference:   []string{"reference", "ref"},
	}}
}

// Format returns the bank format tag.
func (p *AbsaParser) Format() model.BankFormat { return model.FormatAbsa }

// ExpectedColumns lists the logical columns the format must provide.
func (p *AbsaParser) ExpectedColumns() []string {
	return []string{"date", "description", "amount"}
}

// MapRow converts one data row.
func (p *AbsaParser) MapRow(row Row, index int) (*model.ParsedTransaction, *model.ParseError) {
	return mapHeaderRow(p.cols, row, index)
}

// Parse converts an entire file.
func (p *AbsaParser) Parse(file File) model.ParseResult {
	return parseRows(p, file)
}
