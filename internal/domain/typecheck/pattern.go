package typecheck

import (
	"strings"

	"github.com/openkraft/typeguard/internal/domain"
)

type mismatch struct {
	field    string
	value    domain.Value
	expected domain.Tag
	actual   domain.Tag
}

type patternRule struct {
	pattern domain.Pattern
	matches func(m mismatch) bool
}

// patternRules are evaluated in priority order; the first match is reported.
var patternRules = []patternRule{
	{domain.PatternTimestampMismatch, func(m mismatch) bool {
		switch {
		case m.expected == domain.TagString && m.actual == domain.TagInteger:
			return LooksLikeUnixTimestamp(int64(m.value.(domain.Int)))
		case m.expected == domain.TagInteger && m.actual == domain.TagString:
			return LooksLikeISO8601(string(m.value.(domain.String)))
		}
		return false
	}},
	{domain.PatternIDTypeMismatch, func(m mismatch) bool {
		return strings.Contains(strings.ToLower(m.field), "id") &&
			m.expected == domain.TagInteger && m.actual == domain.TagString
	}},
	{domain.PatternAmountFormat, func(m mismatch) bool {
		s, ok := m.value.(domain.String)
		return ok && LooksLikeCentsString(string(s), m.field)
	}},
	{domain.PatternBooleanVariant, func(m mismatch) bool {
		return m.expected == domain.TagBoolean && oneOf(m.value, booleanVariants)
	}},
	{domain.PatternNullHandling, func(m mismatch) bool {
		return oneOf(m.value, nullish)
	}},
}

var (
	booleanVariants = []domain.Value{
		domain.String("true"), domain.String("false"),
		domain.String("True"), domain.String("False"),
		domain.String("1"), domain.String("0"),
		domain.Int(1), domain.Int(0),
	}
	nullish = []domain.Value{
		domain.Null{}, domain.String(""), domain.String("null"),
		domain.String("undefined"), domain.String("None"),
	}
)

// DetectPattern names the kind of mismatch between a field's value and the
// type it was expected to have. It returns PatternNone when no known
// pattern applies.
func DetectPattern(field string, v domain.Value, expected domain.Tag) domain.Pattern {
	if v == nil {
		v = domain.Null{}
	}
	m := mismatch{field: field, value: v, expected: expected, actual: domain.TagOf(v)}
	for _, rule := range patternRules {
		if rule.matches(m) {
			return rule.pattern
		}
	}
	return domain.PatternNone
}

func oneOf(v domain.Value, set []domain.Value) bool {
	for _, candidate := range set {
		if domain.Equal(v, candidate) {
			return true
		}
	}
	return false
}
