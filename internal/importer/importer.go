package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/pocketledger-dev/pocketledger/internal/model"
)

// Row is one decoded data row keyed by normalized (lower-cased, trimmed)
// column header. Headerless formats build rows with positional field names.
type Row map[string]string

// First returns the first non-empty value among the given column names.
func (r Row) First(names ...string) string {
	for _, n := range names {
		if v := strings.TrimSpace(r[n]); v != "" {
			return v
		}
	}
	return ""
}

// File is a decoded tabular statement export.
type File struct {
	Headers []string // empty for headerless exports
	Rows    [][]string
}

// Decode reads delimited text into a File. hasHeader controls whether the
// first line is treated as column headers.
func Decode(r io.Reader, hasHeader bool) (File, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return File{}, fmt.Errorf("reading statement: %w", err)
	}
	if len(records) == 0 {
		return File{}, nil
	}
	if hasHeader {
		return File{Headers: records[0], Rows: records[1:]}, nil
	}
	return File{Rows: records}, nil
}

// Parser converts decoded statement rows into parsed transactions.
type Parser interface {
	// Format returns the bank format tag this parser handles.
	Format() model.BankFormat
	// ExpectedColumns lists the logical columns the format must provide.
	ExpectedColumns() []string
	// MapRow converts one data row. A nil, nil return means the row was
	// skipped (missing fields, summary banner); a ParseError is a
	// row-level failure that does not abort the file.
	MapRow(row Row, index int) (*model.ParsedTransaction, *model.ParseError)
	// Parse converts an entire file. Formats with unusual structure
	// override the shared row loop.
	Parse(file File) model.ParseResult
}

// Registry holds parsers keyed by bank format.
type Registry struct {
	parsers map[model.BankFormat]Parser
}

// NewRegistry creates an empty parser registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[model.BankFormat]Parser)}
}

// Register adds a parser. Panics on duplicate format.
func (r *Registry) Register(p Parser) {
	if _, ok := r.parsers[p.Format()]; ok {
		panic("duplicate parser format: " + string(p.Format()))
	}
	r.parsers[p.Format()] = p
}

// Get returns the parser for a format, or nil.
func (r *Registry) Get(format model.BankFormat) Parser {
	return r.parsers[format]
}

// DefaultRegistry returns a registry with all built-in parsers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(NewNedbankParser())
	r.Register(NewFNBParser())
	r.Register(NewAbsaParser())
	r.Register(&CapitecParser{})
	return r
}

// parseRows runs the shared row loop over header-keyed rows.
func parseRows(p Parser, file File) model.ParseResult {
	headers := make([]string, len(file.Headers))
	for i, h := range file.Headers {
		headers[i] = strings.ToLower(strings.TrimSpace(h))
	}

	rows := make([]Row, len(file.Rows))
	for i, rec := range file.Rows {
		row := make(Row, len(headers))
		for j, h := range headers {
			if j < len(rec) {
				row[h] = rec[j]
			}
		}
		rows[i] = row
	}
	return runRows(p, rows)
}

func runRows(p Parser, rows []Row) model.ParseResult {
	var (
		txns    []model.ParsedTransaction
		errs    []model.ParseError
		skipped int
	)
	for i, row := range rows {
		txn, perr := p.MapRow(row, i+1)
		switch {
		case perr != nil:
			errs = append(errs, *perr)
		case txn != nil:
			txns = append(txns, *txn)
		default:
			skipped++
		}
	}
	return buildResult(len(rows), txns, errs, skipped)
}

func buildResult(totalRows int, txns []model.ParsedTransaction, errs []model.ParseError, skipped int) model.ParseResult {
	stats := model.ParseStats{
		TotalRows:   totalRows,
		ParsedRows:  len(txns),
		SkippedRows: skipped,
	}
	if len(txns) > 0 {
		r := model.DateRange{Start: txns[0].TransactionDate, End: txns[0].TransactionDate}
		for _, t := range txns[1:] {
			if t.TransactionDate.Before(r.Start) {
				r.Start = t.TransactionDate
			}
			if t.TransactionDate.After(r.End) {
				r.End = t.TransactionDate
			}
		}
		stats.DateRange = &r
	}
	return model.ParseResult{
		Success:      len(errs) == 0,
		Transactions: txns,
		Errors:       errs,
		Stats:        stats,
	}
}
