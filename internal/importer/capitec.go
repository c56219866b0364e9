package importer

import (
	"github.com/shopspring/decimal"

	"github.com/pocketledger-dev/pocketledger/internal/model"
)

// capitecFields is the fixed column order of the headerless export.
var capitecFields = []string{"date", "description", "amount", "balance"}

// CapitecParser handles headerless Capitec exports: fixed column order
// [date, description, amount, balance] with compact dates like 25Jan2025.
type CapitecParser struct{}

// Format returns the bank format tag.
func (p *CapitecParser) Format() model.BankFormat { return model.FormatCapitec }

// ExpectedColumns lists the fixed column order of the format.
func (p *CapitecParser) ExpectedColumns() []string { return capitecFields }

// Parse overrides the shared loop since the format has no header row to
// key on; fields are assigned positionally.
func (p *CapitecParser) Parse(file File) model.ParseResult {
	rows := make([]Row, len(file.Rows))
	for i, rec := range file.Rows {
		row := make(Row, len(capitecFields))
		for j, name := range capitecFields {
			if j < len(rec) {
				row[name] = rec[j]
			}
		}
		rows[i] = row
	}
	return runRows(p, rows)
}

// MapRow converts one positionally keyed row.
func (p *CapitecParser) MapRow(row Row, index int) (*model.ParsedTransaction, *model.ParseError) {
	dateVal := row.First("date")
	descVal := row.First("description")

	if dateVal == "" || descVal == "" {
		return nil, nil
	}
	if IsHeaderEcho(descVal) || IsSummaryRow(descVal) {
		return nil, nil
	}

	date, err := ParseDate(dateVal)
	if err != nil {
		return nil, &model.ParseError{Row: index, Field: "date", Message: err.Error(), RawValue: dateVal}
	}

	amountVal := row.First("amount")
	if amountVal == "" {
		return nil, nil
	}
	amount, err := ParseAmount(amountVal)
	if err != nil {
		return nil, &model.ParseError{Row: index, Field: "amount", Message: err.Error(), RawValue: amountVal}
	}

	var balanceAfter *decimal.Decimal
	if v := row.First("balance"); v != "" {
		b, err := ParseAmount(v)
		if err != nil {
			return nil, &model.ParseError{Row: index, Field: "balance", Message: err.Error(), RawValue: v}
		}
		balanceAfter = &b
	}

	return &model.ParsedTransaction{
		TransactionDate: date,
		Description:     CleanDescription(descVal),
		Amount:          amount,
		BalanceAfter:    balanceAfter,
		BankReference:   ExtractReference(descVal),
		RawDescription:  descVal,
		ImportSource:    model.SourceCSV,
	}, nil
}
