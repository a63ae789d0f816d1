package domain

import (
	"encoding/json"
	"fmt"
)

// Tag is the semantic JSON type of a value.
type Tag string

const (
	TagNull    Tag = "null"
	TagBoolean Tag = "boolean"
	TagInteger Tag = "integer"
	TagNumber  Tag = "number"
	TagString  Tag = "string"
	TagArray   Tag = "array"
	TagObject  Tag = "object"
	TagUnknown Tag = "unknown"

	// TagDatetime is only produced by field-name inference. No value
	// classifies as datetime; it is checked through string and integer.
	TagDatetime Tag = "datetime"

	// TagMissing is the actual type recorded for an absent required field.
	TagMissing Tag = "missing"
)

func (t Tag) String() string { return string(t) }

// CoercionTargets are the tags a value can be asked to coerce to.
var CoercionTargets = []Tag{TagNull, TagBoolean, TagInteger, TagNumber, TagString, TagArray, TagObject}

// ParseTag returns the coercion target with the given name.
func ParseTag(name string) (Tag, bool) {
	for _, t := range CoercionTargets {
		if string(t) == name {
			return t, true
		}
	}
	return "", false
}

// TagOf classifies a value. Bool is a separate variant from Int, so booleans
// never classify as integer.
func TagOf(v Value) Tag {
	switch v.(type) {
	case Null:
		return TagNull
	case Bool:
		return TagBoolean
	case Int:
		return TagInteger
	case Float:
		return TagNumber
	case String:
		return TagString
	case Array:
		return TagArray
	case *Object:
		return TagObject
	case nil:
		return TagNull
	default:
		return TagUnknown
	}
}

// Severity grades a single validation finding.
type Severity int

const (
	SeverityValid Severity = iota
	SeverityWarning
	SeverityError
	SeveritySuggestion
)

var severityNames = [...]string{
	SeverityValid:      "valid",
	SeverityWarning:    "warning",
	SeverityError:      "error",
	SeveritySuggestion: "suggestion",
}

func (s Severity) String() string {
	if s < 0 || int(s) >= len(severityNames) {
		return fmt.Sprintf("Severity(%d)", int(s))
	}
	return severityNames[s]
}

func (s Severity) MarshalJSON() ([]byte, error) { return json.Marshal(s.String()) }

func (s *Severity) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	for i, n := range severityNames {
		if n == name {
			*s = Severity(i)
			return nil
		}
	}
	return fmt.Errorf("unknown severity %q", name)
}

// Pattern names a recurring category of type mismatch.
type Pattern int

const (
	PatternNone Pattern = iota
	PatternTimestampMismatch
	PatternIDTypeMismatch
	PatternAmountFormat
	PatternBooleanVariant
	PatternNullHandling
)

// AllPatterns lists every named pattern in reporting order.
var AllPatterns = []Pattern{
	PatternTimestampMismatch,
	PatternIDTypeMismatch,
	PatternAmountFormat,
	PatternBooleanVariant,
	PatternNullHandling,
}

var patternNames = [...]string{
	PatternNone:              "",
	PatternTimestampMismatch: "timestamp_mismatch",
	PatternIDTypeMismatch:    "id_type_mismatch",
	PatternAmountFormat:      "amount_format",
	PatternBooleanVariant:    "boolean_variant",
	PatternNullHandling:      "null_handling",
}

func (p Pattern) String() string {
	if p < 0 || int(p) >= len(patternNames) {
		return fmt.Sprintf("Pattern(%d)", int(p))
	}
	return patternNames[p]
}

// ParsePattern returns the pattern with the given name.
func ParsePattern(name string) (Pattern, bool) {
	for _, p := range AllPatterns {
		if p.String() == name {
			return p, true
		}
	}
	return PatternNone, false
}

func (p Pattern) MarshalJSON() ([]byte, error) {
	if p == PatternNone {
		return []byte("null"), nil
	}
	return json.Marshal(p.String())
}

func (p *Pattern) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*p = PatternNone
		return nil
	}
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	parsed, ok := ParsePattern(name)
	if !ok {
		return fmt.Errorf("unknown pattern %q", name)
	}
	*p = parsed
	return nil
}
