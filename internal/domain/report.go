package domain

import "encoding/json"

// ValidationResult is one finding for one field.
type ValidationResult struct {
	Field        string   `json:"field"`
	Severity     Severity `json:"severity"`
	Message      string   `json:"message"`
	Value        Value    `json:"value"`
	ExpectedType string   `json:"expected_type"`
	ActualType   string   `json:"actual_type"`
	Suggestion   string   `json:"suggestion,omitempty"`
	// AutoFix is the coerced value. It is nil unless coercion succeeded.
	AutoFix Value   `json:"auto_fix,omitempty"`
	Pattern Pattern `json:"pattern"`
}

// HasAutoFix reports whether the finding carries a coerced value.
func (r ValidationResult) HasAutoFix() bool { return r.AutoFix != nil }

// Flatten returns the finding as a plain map with every attribute present.
func (r ValidationResult) Flatten() map[string]any {
	m := map[string]any{
		"field":         r.Field,
		"severity":      r.Severity.String(),
		"message":       r.Message,
		"value":         interfaceOf(r.Value),
		"expected_type": r.ExpectedType,
		"actual_type":   r.ActualType,
		"suggestion":    nil,
		"auto_fix":      nil,
		"pattern":       nil,
	}
	if r.Suggestion != "" {
		m["suggestion"] = r.Suggestion
	}
	if r.AutoFix != nil {
		m["auto_fix"] = r.AutoFix.Interface()
	}
	if r.Pattern != PatternNone {
		m["pattern"] = r.Pattern.String()
	}
	return m
}

func (r ValidationResult) MarshalJSON() ([]byte, error) {
	type wire struct {
		Field        string   `json:"field"`
		Severity     Severity `json:"severity"`
		Message      string   `json:"message"`
		Value        Value    `json:"value"`
		ExpectedType string   `json:"expected_type"`
		ActualType   string   `json:"actual_type"`
		Suggestion   *string  `json:"suggestion"`
		AutoFix      Value    `json:"auto_fix"`
		Pattern      Pattern  `json:"pattern"`
	}
	w := wire{
		Field:        r.Field,
		Severity:     r.Severity,
		Message:      r.Message,
		Value:        r.Value,
		ExpectedType: r.ExpectedType,
		ActualType:   r.ActualType,
		AutoFix:      r.AutoFix,
		Pattern:      r.Pattern,
	}
	if w.Value == nil {
		w.Value = Null{}
	}
	if w.AutoFix == nil {
		w.AutoFix = Null{}
	}
	if r.Suggestion != "" {
		w.Suggestion = &r.Suggestion
	}
	return json.Marshal(w)
}

// ValidationReport is the outcome of validating one call.
type ValidationReport struct {
	Valid       bool               `json:"valid"`
	Warnings    []ValidationResult `json:"warnings"`
	Errors      []ValidationResult `json:"errors"`
	Suggestions []ValidationResult `json:"suggestions"`
	// AutoFixes maps field name to accepted coerced value, in field order.
	AutoFixes *Object `json:"auto_fixes"`
}

// NewReport returns an empty, valid report.
func NewReport() ValidationReport {
	return ValidationReport{Valid: true, AutoFixes: NewObject()}
}

// AddWarning records a coercible mismatch. Its auto-fix, if any, is
// recorded under the field name.
func (r *ValidationReport) AddWarning(res ValidationResult) {
	res.Severity = SeverityWarning
	r.Warnings = append(r.Warnings, res)
	if res.AutoFix != nil {
		if r.AutoFixes == nil {
			r.AutoFixes = NewObject()
		}
		r.AutoFixes.Set(res.Field, res.AutoFix)
	}
}

// AddError records a blocking finding and marks the report invalid.
func (r *ValidationReport) AddError(res ValidationResult) {
	res.Severity = SeverityError
	res.AutoFix = nil
	r.Errors = append(r.Errors, res)
	r.Valid = false
}

// AddSuggestion records an advisory note.
func (r *ValidationReport) AddSuggestion(res ValidationResult) {
	res.Severity = SeveritySuggestion
	r.Suggestions = append(r.Suggestions, res)
}

// Clean reports whether the report has no findings at all.
func (r ValidationReport) Clean() bool {
	return len(r.Warnings) == 0 && len(r.Errors) == 0 && len(r.Suggestions) == 0
}

// Patterns returns the detected patterns of every warning and error.
func (r ValidationReport) Patterns() []Pattern {
	var out []Pattern
	for _, group := range [][]ValidationResult{r.Warnings, r.Errors} {
		for _, res := range group {
			if res.Pattern != PatternNone {
				out = append(out, res.Pattern)
			}
		}
	}
	return out
}

// Mismatches returns warnings followed by errors, the input of migration
// script generation.
func (r ValidationReport) Mismatches() []ValidationResult {
	out := make([]ValidationResult, 0, len(r.Warnings)+len(r.Errors))
	out = append(out, r.Warnings...)
	return append(out, r.Errors...)
}

// Flatten returns the report as a plain map suitable for JSON encoding.
func (r ValidationReport) Flatten() map[string]any {
	return map[string]any{
		"valid":       r.Valid,
		"warnings":    flattenAll(r.Warnings),
		"errors":      flattenAll(r.Errors),
		"suggestions": flattenAll(r.Suggestions),
		"auto_fixes":  r.autoFixes().Interface(),
	}
}

func (r ValidationReport) MarshalJSON() ([]byte, error) {
	type wire struct {
		Valid       bool               `json:"valid"`
		Warnings    []ValidationResult `json:"warnings"`
		Errors      []ValidationResult `json:"errors"`
		Suggestions []ValidationResult `json:"suggestions"`
		AutoFixes   *Object            `json:"auto_fixes"`
	}
	return json.Marshal(wire{
		Valid:       r.Valid,
		Warnings:    nonNil(r.Warnings),
		Errors:      nonNil(r.Errors),
		Suggestions: nonNil(r.Suggestions),
		AutoFixes:   r.autoFixes(),
	})
}

func (r ValidationReport) autoFixes() *Object {
	if r.AutoFixes == nil {
		return NewObject()
	}
	return r.AutoFixes
}

func flattenAll(results []ValidationResult) []map[string]any {
	out := make([]map[string]any, len(results))
	for i, res := range results {
		out[i] = res.Flatten()
	}
	return out
}

func nonNil(results []ValidationResult) []ValidationResult {
	if results == nil {
		return []ValidationResult{}
	}
	return results
}

func interfaceOf(v Value) any {
	if v == nil {
		return nil
	}
	return v.Interface()
}
