package form

import (
	"strings"
	"time"
)

// DateLayout is the canonical date rendering for extracted records.
const DateLayout = "02-Jan-2006"

// dateLayouts are the input shapes seen across ADT-1 filings.
var dateLayouts = []string{
	"02-Jan-2006",
	"02/01/2006",
	"02-01-2006",
	"02.01.2006",
	"2006-01-02",
	"2-Jan-2006",
	"2/1/2006",
	"2-1-2006",
}

// ParseDate parses a date string in any of the layouts seen in ADT-1
// filings. Timestamps carry the date in their first whitespace token.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	candidates := []string{s}
	if tok := strings.Fields(s); len(tok) > 1 {
		candidates = append(candidates, tok[0])
	}
	for _, c := range candidates {
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, c); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}

// NormalizeDate renders a date as DD-MMM-YYYY when it parses, and returns
// the trimmed input unchanged when it does not.
func NormalizeDate(s string) string {
	if t, ok := ParseDate(s); ok {
		return t.Format(DateLayout)
	}
	return strings.TrimSpace(s)
}
