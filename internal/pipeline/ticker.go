// internal/pipeline/ticker.go
package pipeline

import (
	"regexp"
	"strings"
)

var (
	dollarTicker = regexp.MustCompile(`\$([A-Za-z]{1,5})\b`)
	bareTicker   = regexp.MustCompile(`\b([A-Z]{2,5})\b`)
)

// Financial phrasing that makes a bare uppercase token plausible as a
// ticker symbol.
var financeHints = []string{"stock", "share", "ticker", "price", "earnings", "market cap"}

// DetectTicker inspects the raw query text for a stock ticker symbol. It
// runs independently of search results; no match is not an error.
func DetectTicker(query string) (string, bool) {
	if m := dollarTicker.FindStringSubmatch(query); m != nil {
		return strings.ToUpper(m[1]), true
	}

	lower := strings.ToLower(query)
	hinted := false
	for _, hint := range financeHints {
		if strings.Contains(lower, hint) {
			hinted = true
			break
		}
	}
	if !hinted {
		return "", false
	}

	if m := bareTicker.FindStringSubmatch(query); m != nil {
		return m[1], true
	}
	return "", false
}
