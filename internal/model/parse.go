package model

import "time"

// BankFormat identifies a supported bank export format.
type BankFormat string

const (
	FormatNedbank  BankFormat = "nedbank"
	FormatFNB      BankFormat = "fnb"
	FormatAbsa     BankFormat = "absa"
	FormatStandard BankFormat = "standard"
	FormatCapitec  BankFormat = "capitec"
	FormatUnknown  BankFormat = "unknown"
)

// ParseError is a row-level parsing failure. Errors are collected and never
// abort the rest of the file.
type ParseError struct {
	Row      int // 1-based row index within the data rows
	Field    string
	Message  string
	RawValue string
}

// DateRange is the min/max transaction date observed in a parse.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// ParseStats summarizes a parse run. Skipped rows are normal (summary rows,
// metadata banners) and are not errors.
type ParseStats struct {
	TotalRows   int
	ParsedRows  int
	SkippedRows int
	DateRange   *DateRange
}

// ParseResult is the complete output of parsing one statement file.
// Success is true iff there were zero row-level errors, independent of how
// many rows were skipped.
type ParseResult struct {
	Success      bool
	Transactions []ParsedTransaction
	Errors       []ParseError
	Warnings     []string
	Stats        ParseStats
}
