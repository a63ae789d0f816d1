// Package migration generates client-side conversion helpers for the type
// mismatches found during validation.
package migration

import (
	"fmt"
	"strings"

	"github.com/openkraft/typeguard/internal/domain"
)

// conversions is the set of (actual, expected) type pairs among results.
type conversions map[[2]string]bool

func collect(results []domain.ValidationResult) conversions {
	c := make(conversions)
	for _, r := range results {
		c[[2]string{r.ActualType, r.ExpectedType}] = true
	}
	return c
}

func (c conversions) has(actual, expected string) bool {
	return c[[2]string{actual, expected}]
}

// needsTimestamp reports whether any result concerns a timestamp.
func needsTimestamp(results []domain.ValidationResult) bool {
	for _, r := range results {
		if r.Pattern == domain.PatternTimestampMismatch ||
			strings.Contains(strings.ToLower(r.Suggestion), "timestamp") {
			return true
		}
	}
	return false
}

// Generate renders a migration script for results in language. Unknown
// languages produce a one-line comment.
func Generate(results []domain.ValidationResult, language string) string {
	switch language {
	case domain.LanguagePython:
		return python(results)
	case domain.LanguageJavaScript:
		return javascript(results)
	default:
		return fmt.Sprintf("# Unsupported language: %s", language)
	}
}
