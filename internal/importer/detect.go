package importer

import (
	"strings"

	"github.com/pocketledger-dev/pocketledger/internal/model"
)

type signature struct {
	format model.BankFormat
	tokens []string
}

// Detection signatures in priority order; first matching bank wins.
// Nedbank is handled first and also matches on its distinctive column
// combinations, since it is the most common export among target users.
var signatures = []signature{
	{model.FormatFNB, []string{"fnb", "first national"}},
	{model.FormatAbsa, []string{"absa"}},
	{model.FormatStandard, []string{"standard bank"}},
	{model.FormatCapitec, []string{"capitec"}},
}

// DetectFormat inspects column headers and returns a bank format tag.
// Matching is case-insensitive substring against per-bank signature tokens.
// When nothing matches, the configured fallback is returned rather than an
// error: most target users use a single bank.
func DetectFormat(headers []string, fallback model.BankFormat) model.BankFormat {
	normalized := make([]string, len(headers))
	for i, h := range headers {
		normalized[i] = strings.ToLower(strings.TrimSpace(h))
	}

	has := func(token string) bool {
		for _, h := range normalized {
			if strings.Contains(h, token) {
				return true
			}
		}
		return false
	}

	if has("nedbank") || (has("narrative") && has("balance")) || has("money in") || has("money out") {
		return model.FormatNedbank
	}
	for _, sig := range signatures {
		for _, token := range sig.tokens {
			if has(token) {
				return sig.format
			}
		}
	}
	return fallback
}

// DetectFile picks a format for a decoded file. Headerless exports are
// detected by shape: fixed four-column rows whose first cell parses as a
// compact date.
func DetectFile(file File, fallback model.BankFormat) model.BankFormat {
	if len(file.Headers) == 0 {
		if looksHeaderless(file.Rows) {
			return model.FormatCapitec
		}
		return fallback
	}
	return DetectFormat(file.Headers, fallback)
}

func looksHeaderless(rows [][]string) bool {
	for _, rec := range rows {
		if len(rec) != 4 {
			continue
		}
		if _, err := ParseDate(rec[0]); err == nil {
			return true
		}
	}
	return false
}
