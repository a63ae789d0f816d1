package typecheck

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/fatih/camelcase"

	"github.com/openkraft/typeguard/internal/domain"
)

// datetimeTargets are the wire encodings a datetime-named field may be
// coerced to, in preference order.
var datetimeTargets = []domain.Tag{domain.TagString, domain.TagInteger}

// ValidateToolArguments checks the arguments of a call to tool against
// schema. With no schema, expected types are inferred from field names and
// fields with no inferable type are skipped.
func ValidateToolArguments(tool string, args *domain.Object, schema *domain.Schema) domain.ValidationReport {
	if schema == nil {
		return inferArguments(args)
	}

	report := domain.NewReport()

	for _, name := range schema.Required {
		if args.Has(name) {
			continue
		}
		report.AddError(domain.ValidationResult{
			Field:        name,
			Message:      fmt.Sprintf("required field '%s' is missing", name),
			Value:        domain.Null{},
			ExpectedType: schema.ExpectedType(name),
			ActualType:   string(domain.TagMissing),
		})
	}

	for _, field := range args.Keys() {
		value, _ := args.Get(field)
		actual := domain.TagOf(value)

		prop, declared := schema.Property(field)
		if !declared {
			report.AddSuggestion(unknownField(field, value, schema))
			continue
		}
		if !prop.Typed {
			continue
		}

		if prop.Type.List {
			checkAllowedTypes(&report, field, value, actual, prop.Type)
			continue
		}

		expected := prop.Type.Single()
		if actual == expected {
			continue
		}
		pattern := DetectPattern(field, value, expected)
		suggestion := ""
		if pattern != domain.PatternNone {
			suggestion = "pattern detected: " + pattern.String()
		}
		checkCoercible(&report, field, value, actual, expected, pattern, suggestion)
	}

	return report
}

func inferArguments(args *domain.Object) domain.ValidationReport {
	report := domain.NewReport()

	for _, field := range args.Keys() {
		inferred, ok := Infer(field)
		if !ok {
			continue
		}
		value, _ := args.Get(field)
		actual := domain.TagOf(value)

		if inferred == domain.TagDatetime {
			checkDatetime(&report, field, value, actual)
			continue
		}
		if actual == inferred {
			continue
		}
		pattern := DetectPattern(field, value, inferred)
		checkCoercible(&report, field, value, actual, inferred, pattern,
			fmt.Sprintf("consider sending %s for %s", inferred, field))
	}

	return report
}

// checkCoercible records a warning with an auto-fix when value coerces to
// expected, and an error otherwise.
func checkCoercible(report *domain.ValidationReport, field string, value domain.Value, actual, expected domain.Tag, pattern domain.Pattern, suggestion string) {
	c := TryCoerce(value, expected)
	res := domain.ValidationResult{
		Field:        field,
		Message:      c.Message,
		Value:        value,
		ExpectedType: string(expected),
		ActualType:   string(actual),
		Pattern:      pattern,
	}
	if !c.OK {
		report.AddError(res)
		return
	}
	res.Suggestion = suggestion
	res.AutoFix = c.Value
	report.AddWarning(res)
}

// checkDatetime accepts strings and integers as timestamp encodings and
// tries to coerce anything else to one of them.
func checkDatetime(report *domain.ValidationReport, field string, value domain.Value, actual domain.Tag) {
	if actual == domain.TagString || actual == domain.TagInteger {
		return
	}
	for _, target := range datetimeTargets {
		c := TryCoerce(value, target)
		if !c.OK {
			continue
		}
		report.AddWarning(domain.ValidationResult{
			Field:        field,
			Message:      c.Message,
			Value:        value,
			ExpectedType: string(domain.TagDatetime),
			ActualType:   string(actual),
			Suggestion:   fmt.Sprintf("consider sending %s for %s", target, field),
			AutoFix:      c.Value,
			Pattern:      DetectPattern(field, value, target),
		})
		return
	}
	report.AddError(domain.ValidationResult{
		Field:        field,
		Message:      fmt.Sprintf("cannot coerce %s to %s", actual, domain.TagDatetime),
		Value:        value,
		ExpectedType: string(domain.TagDatetime),
		ActualType:   string(actual),
		Pattern:      DetectPattern(field, value, domain.TagString),
	})
}

// checkAllowedTypes handles a property whose type is a list. A value that
// coerces to any listed type passes, but which one is not recorded and no
// auto-fix is produced.
func checkAllowedTypes(report *domain.ValidationReport, field string, value domain.Value, actual domain.Tag, spec domain.TypeSpec) {
	if spec.Allows(actual) {
		return
	}
	for _, t := range spec.Tags {
		if TryCoerce(value, t).OK {
			return
		}
	}
	report.AddError(domain.ValidationResult{
		Field:        field,
		Message:      fmt.Sprintf("type '%s' not in allowed types %s", actual, spec),
		Value:        value,
		ExpectedType: spec.String(),
		ActualType:   string(actual),
	})
}

func unknownField(field string, value domain.Value, schema *domain.Schema) domain.ValidationResult {
	suggestion := "this field may be ignored by the server"
	if match, ok := closestProperty(field, schema); ok {
		suggestion = fmt.Sprintf("did you mean '%s'? %s", match, suggestion)
	}
	return domain.ValidationResult{
		Field:        field,
		Message:      fmt.Sprintf("field '%s' not in schema", field),
		Value:        value,
		ExpectedType: string(domain.TagUnknown),
		ActualType:   string(domain.TagOf(value)),
		Suggestion:   suggestion,
	}
}

// closestProperty finds a declared property spelled in a different case
// convention, e.g. userId for user_id.
func closestProperty(field string, schema *domain.Schema) (string, bool) {
	want := normalizeName(field)
	if want == "" {
		return "", false
	}
	for _, name := range schema.PropertyNames() {
		if name != field && normalizeName(name) == want {
			return name, true
		}
	}
	return "", false
}

// normalizeName maps userId, UserID, user-id and user_id to user_id.
func normalizeName(name string) string {
	var words []string
	for _, w := range camelcase.Split(name) {
		if strings.IndexFunc(w, func(r rune) bool { return unicode.IsLetter(r) || unicode.IsDigit(r) }) < 0 {
			continue
		}
		words = append(words, strings.ToLower(w))
	}
	return strings.Join(words, "_")
}

// CheckResponseTypes compares a tool response against its output schema.
// Responses are advisory: mismatches are warnings, the report always stays
// valid, and nothing is coerced.
func CheckResponseTypes(response domain.Value, schema *domain.Schema) domain.ValidationReport {
	report := domain.NewReport()

	obj, ok := response.(*domain.Object)
	if schema == nil || !ok {
		return report
	}

	for _, field := range obj.Keys() {
		prop, declared := schema.Property(field)
		if !declared || !prop.Typed {
			continue
		}
		value, _ := obj.Get(field)
		actual := domain.TagOf(value)

		if prop.Type.List {
			if !prop.Type.Allows(actual) {
				report.AddWarning(domain.ValidationResult{
					Field:        field,
					Message:      fmt.Sprintf("response field '%s' has unexpected type", field),
					Value:        value,
					ExpectedType: prop.Type.String(),
					ActualType:   string(actual),
				})
			}
			continue
		}

		expected := prop.Type.Single()
		if actual == expected {
			continue
		}
		pattern := DetectPattern(field, value, expected)
		res := domain.ValidationResult{
			Field:        field,
			Message:      fmt.Sprintf("response field '%s' has type '%s', expected '%s'", field, actual, expected),
			Value:        value,
			ExpectedType: string(expected),
			ActualType:   string(actual),
			Pattern:      pattern,
		}
		if pattern != domain.PatternNone {
			res.Suggestion = "pattern detected: " + pattern.String()
		}
		report.AddWarning(res)
	}

	return report
}
