package typecheck

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/openkraft/typeguard/internal/domain"
)

// Coercion is the outcome of TryCoerce. On failure Value is the original
// value, unchanged.
type Coercion struct {
	OK      bool
	Value   domain.Value
	Message string
}

const isoLayout = "2006-01-02T15:04:05Z"

// isoParseLayouts are tried in order. Fractional seconds are accepted by
// time.Parse after the seconds field; layouts without a zone parse as UTC.
var isoParseLayouts = []string{
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05Z0700",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05Z0700",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// decimalNumber is the numeric text accepted for number targets. Hex floats
// are rejected.
var decimalNumber = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

type coercionRule struct {
	applies func(v domain.Value, actual, target domain.Tag) bool
	coerce  func(v domain.Value, actual, target domain.Tag) Coercion
}

// coercionRules are evaluated top-down. The first rule whose precondition
// holds decides the outcome, including when its own conversion fails.
var coercionRules = []coercionRule{
	{
		applies: func(_ domain.Value, actual, target domain.Tag) bool { return actual == target },
		coerce: func(v domain.Value, _, _ domain.Tag) Coercion {
			return Coercion{OK: true, Value: v, Message: "types match"}
		},
	},
	{
		// ISO-8601 strings never parse as integer literals, so they are
		// routed to timestamp conversion before the literal parse below.
		applies: func(v domain.Value, actual, target domain.Tag) bool {
			return target == domain.TagInteger && actual == domain.TagString &&
				LooksLikeISO8601(string(v.(domain.String)))
		},
		coerce: isoToUnix,
	},
	{
		applies: func(_ domain.Value, actual, target domain.Tag) bool {
			return target == domain.TagInteger && actual == domain.TagString
		},
		coerce: func(v domain.Value, _, _ domain.Tag) Coercion {
			s := string(v.(domain.String))
			n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
			if err != nil {
				return Coercion{Value: v, Message: fmt.Sprintf("cannot convert %q to integer", s)}
			}
			return Coercion{OK: true, Value: domain.Int(n), Message: fmt.Sprintf("convert string %q to integer %d", s, n)}
		},
	},
	{
		applies: func(_ domain.Value, actual, target domain.Tag) bool {
			return target == domain.TagNumber && actual == domain.TagString
		},
		coerce: func(v domain.Value, _, _ domain.Tag) Coercion {
			s := string(v.(domain.String))
			text := strings.TrimSpace(s)
			if !decimalNumber.MatchString(text) {
				return Coercion{Value: v, Message: fmt.Sprintf("cannot convert %q to number", s)}
			}
			f, err := strconv.ParseFloat(text, 64)
			if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
				return Coercion{Value: v, Message: fmt.Sprintf("cannot convert %q to number", s)}
			}
			return Coercion{OK: true, Value: domain.Float(f), Message: fmt.Sprintf("convert string %q to number %s", s, formatFloat(f))}
		},
	},
	{
		applies: func(_ domain.Value, actual, target domain.Tag) bool {
			return target == domain.TagNumber && actual == domain.TagInteger
		},
		coerce: func(v domain.Value, _, _ domain.Tag) Coercion {
			return Coercion{OK: true, Value: domain.Float(v.(domain.Int)), Message: "integer is valid as number"}
		},
	},
	{
		applies: func(_ domain.Value, _, target domain.Tag) bool { return target == domain.TagBoolean },
		coerce: func(v domain.Value, actual, target domain.Tag) Coercion {
			switch {
			case oneOf(v, truthy):
				return Coercion{OK: true, Value: domain.Bool(true), Message: fmt.Sprintf("convert %s to true", domain.Render(v))}
			case oneOf(v, falsy):
				return Coercion{OK: true, Value: domain.Bool(false), Message: fmt.Sprintf("convert %s to false", domain.Render(v))}
			}
			return cannotCoerce(v, actual, target)
		},
	},
	{
		applies: func(_ domain.Value, actual, target domain.Tag) bool {
			return target == domain.TagString && (actual == domain.TagInteger || actual == domain.TagNumber)
		},
		coerce: numberToString,
	},
}

var (
	truthy = []domain.Value{
		domain.Int(1), domain.String("1"),
		domain.String("true"), domain.String("True"),
		domain.String("yes"), domain.String("Yes"),
	}
	falsy = []domain.Value{
		domain.Int(0), domain.String("0"),
		domain.String("false"), domain.String("False"),
		domain.String("no"), domain.String("No"),
	}
)

// TryCoerce attempts a safe conversion of v to target. It never mutates v.
func TryCoerce(v domain.Value, target domain.Tag) Coercion {
	if v == nil {
		v = domain.Null{}
	}
	actual := domain.TagOf(v)
	for _, rule := range coercionRules {
		if rule.applies(v, actual, target) {
			return rule.coerce(v, actual, target)
		}
	}
	return cannotCoerce(v, actual, target)
}

func cannotCoerce(v domain.Value, actual, target domain.Tag) Coercion {
	return Coercion{Value: v, Message: fmt.Sprintf("cannot coerce %s to %s", actual, target)}
}

func numberToString(v domain.Value, _, _ domain.Tag) Coercion {
	if n, ok := v.(domain.Int); ok {
		if LooksLikeUnixTimestamp(int64(n)) {
			iso := UnixToISO8601(int64(n))
			return Coercion{OK: true, Value: domain.String(iso), Message: "convert Unix timestamp to ISO-8601: " + iso}
		}
		s := strconv.FormatInt(int64(n), 10)
		return Coercion{OK: true, Value: domain.String(s), Message: fmt.Sprintf("convert %s to string", s)}
	}
	s := formatFloat(float64(v.(domain.Float)))
	return Coercion{OK: true, Value: domain.String(s), Message: fmt.Sprintf("convert %s to string", s)}
}

func isoToUnix(v domain.Value, actual, target domain.Tag) Coercion {
	s := string(v.(domain.String))
	t, ok := ParseISO8601(s)
	if !ok {
		return cannotCoerce(v, actual, target)
	}
	unix := t.Unix()
	return Coercion{OK: true, Value: domain.Int(unix), Message: fmt.Sprintf("convert ISO-8601 to Unix timestamp: %d", unix)}
}

// UnixToISO8601 renders a Unix timestamp as a UTC ISO-8601 string with
// whole-second precision. Values above 1e11 are read as milliseconds.
func UnixToISO8601(n int64) string {
	secs := n
	if n > millisThreshold {
		secs = n / 1000
	}
	return time.Unix(secs, 0).UTC().Format(isoLayout)
}

// ParseISO8601 parses the date and date-time forms LooksLikeISO8601 accepts.
// Times without a zone are taken as UTC.
func ParseISO8601(s string) (time.Time, bool) {
	for _, layout := range isoParseLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// formatFloat renders f in plain decimal form, keeping a ".0" on integral
// values so the text still reads as a number.
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".NI") {
		s += ".0"
	}
	return s
}
