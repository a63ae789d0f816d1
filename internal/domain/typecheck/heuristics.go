package typecheck

import (
	"regexp"
	"strings"
)

const (
	unixSecondsMin = 1_000_000_000
	unixSecondsMax = 2_500_000_000
	unixMillisMin  = 1_000_000_000_000
	unixMillisMax  = 2_500_000_000_000

	// Values above this are read as milliseconds.
	millisThreshold = 100_000_000_000
)

var (
	isoPatterns = []*regexp.Regexp{
		regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}`),
		regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`),
		regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}`),
	}
	digitsOnly = regexp.MustCompile(`^[0-9]+$`)

	moneyWords = []string{"amount", "price", "cost", "total", "fee", "charge"}
)

// LooksLikeUnixTimestamp reports whether n is a plausible Unix time between
// 2001 and 2049, in seconds or milliseconds.
func LooksLikeUnixTimestamp(n int64) bool {
	return (n >= unixSecondsMin && n <= unixSecondsMax) ||
		(n >= unixMillisMin && n <= unixMillisMax)
}

// LooksLikeISO8601 reports whether s starts like an ISO-8601 date or
// date-time. A date alone must be the whole string.
func LooksLikeISO8601(s string) bool {
	for _, re := range isoPatterns {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}

// LooksLikeCentsString reports whether s is an all-digit amount sent on a
// money-named field, which usually means a value in minor units.
func LooksLikeCentsString(s, field string) bool {
	if !digitsOnly.MatchString(s) {
		return false
	}
	name := strings.ToLower(field)
	for _, w := range moneyWords {
		if strings.Contains(name, w) {
			return true
		}
	}
	return false
}
