package importer

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// maxDescriptionLen is the longest description accepted by persistence.
const maxDescriptionLen = 500

var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"02/01/2006",
	"02-01-2006",
	"02 Jan 2006",
	"02Jan2006", // compact form used by headerless exports, e.g. 25Jan2025
}

// ParseDate accepts the date formats seen across bank exports.
func ParseDate(value string) (time.Time, error) {
	v := strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date format %q", value)
}

// ParseAmount parses a locale-formatted amount. Whitespace thousands
// separators, the rand symbol and comma separators are stripped before
// decimal parsing.
func ParseAmount(value string) (decimal.Decimal, error) {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == ',' || r == 'R' || r == 'r' {
			return -1
		}
		return r
	}, value)

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid amount %q", value)
	}
	return d, nil
}

// Reference patterns in priority order: explicit REF markers,
// asterisk-delimited tokens, hash-prefixed tokens, card last-4, long digit
// runs.
var referencePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)REF[:\s]*(\w+)`),
	regexp.MustCompile(`\*(\d+)\*`),
	regexp.MustCompile(`#(\d+)`),
	regexp.MustCompile(`(?i)CARD\s+(\d{4})`),
	regexp.MustCompile(`(\d{6,})`),
}

// ExtractReference pulls a best-effort bank reference out of a description.
// Returns empty if no pattern matches. The value seeds the dedup key.
func ExtractReference(description string) string {
	for _, re := range referencePatterns {
		if m := re.FindStringSubmatch(description); m != nil {
			return m[1]
		}
	}
	return ""
}

var collapseWS = regexp.MustCompile(`\s+`)

// CleanDescription collapses internal whitespace, trims, and truncates to
// the maximum length accepted by persistence. Truncation lands on a rune
// boundary so a multi-byte character is never split.
func CleanDescription(value string) string {
	s := strings.TrimSpace(collapseWS.ReplaceAllString(value, " "))
	if len(s) > maxDescriptionLen {
		cut := maxDescriptionLen
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		s = s[:cut]
	}
	return s
}

var summaryIndicators = []string{
	"opening balance",
	"closing balance",
	"total",
	"subtotal",
	"balance brought forward",
	"balance carried forward",
	"statement",
}

// IsSummaryRow reports whether a description marks a summary or account
// metadata row rather than a transaction.
func IsSummaryRow(description string) bool {
	lower := strings.ToLower(description)
	for _, s := range summaryIndicators {
		if strings.Contains(lower, s) {
			return true
		}
	}
	return false
}

var headerEchoes = []string{"description", "transaction", "details", "narrative", "particulars"}

// IsHeaderEcho reports whether a description is a repeated column header.
func IsHeaderEcho(description string) bool {
	lower := strings.ToLower(strings.TrimSpace(description))
	for _, h := range headerEchoes {
		if lower == h {
			return true
		}
	}
	return false
}
