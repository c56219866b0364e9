package categorize

import (
	"regexp"
	"strings"

	"github.com/pocketledger-dev/pocketledger/internal/model"
)

var patternNoise = []*regexp.Regexp{
	// Date-like substrings.
	regexp.MustCompile(`\d{4}[/-]\d{1,2}[/-]\d{1,2}`),
	regexp.MustCompile(`\d{1,2}[/-]\d{1,2}[/-]\d{2,4}`),
	regexp.MustCompile(`(?i)\d{1,2}\s?[a-z]{3}\s?\d{4}`),
	// Long digit runs (account/reference numbers), same threshold as
	// reference extraction.
	regexp.MustCompile(`\d{6,}`),
}

// ExtractPattern derives a reusable rule pattern from a transaction
// description: date-like substrings and long digit runs are stripped, and
// the result is reduced to its first three meaningful words, upper-cased.
// Used when a user generalizes a manual categorization into a rule.
func ExtractPattern(description string) string {
	s := description
	for _, re := range patternNoise {
		s = re.ReplaceAllString(s, " ")
	}

	var meaningful []string
	for _, w := range strings.Fields(s) {
		if len(w) > 2 {
			meaningful = append(meaningful, w)
		}
	}
	if len(meaningful) > 3 {
		meaningful = meaningful[:3]
	}
	return strings.ToUpper(strings.Join(meaningful, " "))
}

// FindSimilar returns every transaction whose description or raw
// description contains the pattern, case-insensitively. A transaction with
// the excluded local identifier is left out.
func FindSimilar(txns []model.Transaction, pattern, excludeLocalID string) []model.Transaction {
	if pattern == "" {
		return nil
	}
	upper := strings.ToUpper(pattern)

	var similar []model.Transaction
	for _, txn := range txns {
		if excludeLocalID != "" && txn.LocalID == excludeLocalID {
			continue
		}
		if strings.Contains(strings.ToUpper(txn.Description), upper) ||
			strings.Contains(strings.ToUpper(txn.RawDescription), upper) {
			similar = append(similar, txn)
		}
	}
	return similar
}
