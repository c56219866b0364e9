package importer

import (
	"github.com/shopspring/decimal"

	"github.com/pocketledger-dev/pocketledger/internal/model"
)

// columnSet lists the header-name candidates for each logical field of a
// header-based export. Banks rename columns across export paths, so each
// field carries every variation seen in the wild.
type columnSet struct {
	date        []string
	description []string
	amount      []string
	debit       []string
	credit      []string
	balance     []string
	reference   []string
}

// mapHeaderRow converts one header-keyed row using the given column set.
//
// Skip conditions (nil, nil): missing date or description, summary banners,
// repeated headers. Malformed values are row-level errors and do not abort
// the file.
func mapHeaderRow(cols columnSet, row Row, index int) (*model.ParsedTransaction, *model.ParseError) {
	dateVal := row.First(cols.date...)
	descVal := row.First(cols.description...)

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

	amount, perr := mapAmount(cols, row, index)
	if perr != nil {
		return nil, perr
	}

	var balanceAfter *decimal.Decimal
	if v := row.First(cols.balance...); v != "" {
		b, err := ParseAmount(v)
		if err != nil {
			return nil, &model.ParseError{Row: index, Field: "balance", Message: err.Error(), RawValue: v}
		}
		balanceAfter = &b
	}

	ref := row.First(cols.reference...)
	if ref == "" {
		ref = ExtractReference(descVal)
	}

	return &model.ParsedTransaction{
		TransactionDate: date,
		Description:     CleanDescription(descVal),
		Amount:          amount,
		BalanceAfter:    balanceAfter,
		BankReference:   ref,
		RawDescription:  descVal,
		ImportSource:    model.SourceCSV,
	}, nil
}

// mapAmount reads a single signed amount column, or combines split
// debit/credit columns as amount = |credit| - |debit|.
func mapAmount(cols columnSet, row Row, index int) (decimal.Decimal, *model.ParseError) {
	if v := row.First(cols.amount...); v != "" {
		a, err := ParseAmount(v)
		if err != nil {
			return decimal.Decimal{}, &model.ParseError{Row: index, Field: "amount", Message: err.Error(), RawValue: v}
		}
		return a, nil
	}

	debitVal := row.First(cols.debit...)
	creditVal := row.First(cols.credit...)
	if debitVal == "" && creditVal == "" {
		return decimal.Decimal{}, &model.ParseError{Row: index, Field: "amount", Message: "no amount column found"}
	}

	var debit, credit decimal.Decimal
	if debitVal != "" {
		d, err := ParseAmount(debitVal)
		if err != nil {
			return decimal.Decimal{}, &model.ParseError{Row: index, Field: "amount", Message: err.Error(), RawValue: debitVal}
		}
		debit = d.Abs()
	}
	if creditVal != "" {
		c, err := ParseAmount(creditVal)
		if err != nil {
			return decimal.Decimal{}, &model.ParseError{Row: index, Field: "amount", Message: err.Error(), RawValue: creditVal}
		}
		credit = c.Abs()
	}
	return credit.Sub(debit), nil
}
