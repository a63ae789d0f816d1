package typecheck_test

import (
	"testing"

	"github.com/openkraft/typeguard/internal/domain"
	"github.com/openkraft/typeguard/internal/domain/typecheck"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func object(t *testing.T, src string) *domain.Object {
	t.Helper()
	obj, err := domain.ParseJSONObject([]byte(src))
	require.NoError(t, err)
	return obj
}

func schema(t *testing.T, src string) *domain.Schema {
	t.Helper()
	v, err := domain.ParseJSON([]byte(src))
	require.NoError(t, err)
	return domain.ParseSchema(v)
}

const countSchema = `{"type":"object","properties":{"count":{"type":"integer"}}}`

func TestValidate_CoercibleStringBecomesWarning(t *testing.T) {
	r := typecheck.ValidateToolArguments("t", object(t, `{"count":"5"}`), schema(t, countSchema))

	assert.True(t, r.Valid)
	require.Len(t, r.Warnings, 1)
	assert.Empty(t, r.Errors)
	assert.Equal(t, []string{"count"}, r.AutoFixes.Keys())
	fix, _ := r.AutoFixes.Get("count")
	assert.Equal(t, domain.Int(5), fix)
}

func TestValidate_UncoercibleStringIsError(t *testing.T) {
	r := typecheck.ValidateToolArguments("t", object(t, `{"count":"abc"}`), schema(t, countSchema))

	assert.False(t, r.Valid)
	require.Len(t, r.Errors, 1)
	assert.Empty(t, r.Warnings)
	assert.Equal(t, 0, r.AutoFixes.Len())
	assert.Equal(t, "integer", r.Errors[0].ExpectedType)
	assert.Equal(t, "string", r.Errors[0].ActualType)
}

func TestValidate_InfersFromFieldNames(t *testing.T) {
	r := typecheck.ValidateToolArguments("t", object(t, `{"user_id":"123"}`), nil)

	assert.True(t, r.Valid)
	require.Len(t, r.Warnings, 1)
	w := r.Warnings[0]
	assert.Equal(t, "integer", w.ExpectedType)
	assert.Equal(t, domain.PatternIDTypeMismatch, w.Pattern)
	assert.Equal(t, "consider sending integer for user_id", w.Suggestion)
	fix, _ := r.AutoFixes.Get("user_id")
	assert.Equal(t, domain.Int(123), fix)
}

func TestValidate_MissingRequiredField(t *testing.T) {
	s := schema(t, `{"properties":{"name":{"type":"string"}},"required":["name"]}`)
	r := typecheck.ValidateToolArguments("t", domain.NewObject(), s)

	assert.False(t, r.Valid)
	require.Len(t, r.Errors, 1)
	e := r.Errors[0]
	assert.Contains(t, e.Message, "missing")
	assert.Equal(t, "name", e.Field)
	assert.Equal(t, "string", e.ExpectedType)
	assert.Equal(t, "missing", e.ActualType)
	assert.Equal(t, domain.Null{}, e.Value)
}

func TestValidate_RequiredWithoutPropertyIsUnknownType(t *testing.T) {
	r := typecheck.ValidateToolArguments("t", domain.NewObject(), schema(t, `{"required":["id"]}`))
	require.Len(t, r.Errors, 1)
	assert.Equal(t, "unknown", r.Errors[0].ExpectedType)
}

func TestValidate_NoSchemaNoMatchingNamesIsClean(t *testing.T) {
	r := typecheck.ValidateToolArguments("t", object(t, `{"name":"x","note":5}`), nil)
	assert.True(t, r.Valid)
	assert.True(t, r.Clean())
}

func TestValidate_UndeclaredFieldIsSuggestion(t *testing.T) {
	r := typecheck.ValidateToolArguments("t", object(t, `{"extra":1}`), schema(t, countSchema))

	assert.True(t, r.Valid)
	require.Len(t, r.Suggestions, 1)
	s := r.Suggestions[0]
	assert.Equal(t, "extra", s.Field)
	assert.Equal(t, "unknown", s.ExpectedType)
	assert.Equal(t, "integer", s.ActualType)
	assert.Equal(t, "this field may be ignored by the server", s.Suggestion)
}

func TestValidate_UndeclaredFieldSuggestsCaseVariant(t *testing.T) {
	s := schema(t, `{"properties":{"user_id":{"type":"integer"}}}`)
	r := typecheck.ValidateToolArguments("t", object(t, `{"userId":5}`), s)

	require.Len(t, r.Suggestions, 1)
	assert.Equal(t, "did you mean 'user_id'? this field may be ignored by the server", r.Suggestions[0].Suggestion)
}

func TestValidate_UntypedPropertyIsSkipped(t *testing.T) {
	s := schema(t, `{"properties":{"anything":{"description":"free form"}}}`)
	r := typecheck.ValidateToolArguments("t", object(t, `{"anything":[1,2]}`), s)
	assert.True(t, r.Clean())
}

func TestValidate_PatternSuggestion(t *testing.T) {
	s := schema(t, `{"properties":{"created_at":{"type":"string"}}}`)
	r := typecheck.ValidateToolArguments("t", object(t, `{"created_at":1704067200}`), s)

	require.Len(t, r.Warnings, 1)
	w := r.Warnings[0]
	assert.Equal(t, domain.PatternTimestampMismatch, w.Pattern)
	assert.Equal(t, "pattern detected: timestamp_mismatch", w.Suggestion)
	assert.Equal(t, domain.String("2024-01-01T00:00:00Z"), w.AutoFix)
}

// A list-typed property only records pass or fail. A value that coerces to
// one of the listed types passes without a warning or an auto-fix.
func TestValidate_MultiTypeRecordsOnlyPassFail(t *testing.T) {
	s := schema(t, `{"properties":{"v":{"type":["string","boolean"]}}}`)

	r := typecheck.ValidateToolArguments("t", object(t, `{"v":2.5}`), s)
	assert.True(t, r.Valid)
	assert.True(t, r.Clean())
	assert.Equal(t, 0, r.AutoFixes.Len())

	r = typecheck.ValidateToolArguments("t", object(t, `{"v":[1]}`), s)
	assert.False(t, r.Valid)
	require.Len(t, r.Errors, 1)
	assert.Equal(t, "type 'array' not in allowed types [string, boolean]", r.Errors[0].Message)
	assert.Equal(t, "[string, boolean]", r.Errors[0].ExpectedType)
}

func TestValidate_DatetimeInference(t *testing.T) {
	r := typecheck.ValidateToolArguments("t", object(t, `{"created_at":1704067200,"updated_at":"2024-01-01"}`), nil)
	assert.True(t, r.Clean())

	r = typecheck.ValidateToolArguments("t", object(t, `{"created_at":3.5}`), nil)
	assert.True(t, r.Valid)
	require.Len(t, r.Warnings, 1)
	assert.Equal(t, "datetime", r.Warnings[0].ExpectedType)
	assert.Equal(t, domain.String("3.5"), r.Warnings[0].AutoFix)

	r = typecheck.ValidateToolArguments("t", object(t, `{"created_at":true}`), nil)
	assert.False(t, r.Valid)
	require.Len(t, r.Errors, 1)
	assert.Equal(t, "cannot coerce boolean to datetime", r.Errors[0].Message)
}

func TestValidate_FindingsFollowArgumentOrder(t *testing.T) {
	s := schema(t, `{
		"properties": {
			"a": {"type": "integer"},
			"b": {"type": "integer"},
			"c": {"type": "integer"},
			"req": {"type": "string"}
		},
		"required": ["req"]
	}`)
	r := typecheck.ValidateToolArguments("t", object(t, `{"c":"3","a":"1","b":"x"}`), s)

	require.Len(t, r.Errors, 2)
	assert.Equal(t, "req", r.Errors[0].Field)
	assert.Equal(t, "b", r.Errors[1].Field)
	require.Len(t, r.Warnings, 2)
	assert.Equal(t, "c", r.Warnings[0].Field)
	assert.Equal(t, "a", r.Warnings[1].Field)
	assert.Equal(t, []string{"c", "a"}, r.AutoFixes.Keys())
}

func TestValidate_AutoFixesOnlyFromWarnings(t *testing.T) {
	s := schema(t, `{"properties":{"n":{"type":"integer"},"flag":{"type":"boolean"}}}`)
	r := typecheck.ValidateToolArguments("t", object(t, `{"n":"7","flag":"maybe"}`), s)

	for _, e := range r.Errors {
		assert.False(t, r.AutoFixes.Has(e.Field))
	}
	for _, w := range r.Warnings {
		assert.True(t, r.AutoFixes.Has(w.Field))
	}
}

func TestCheckResponseTypes_WarnsButStaysValid(t *testing.T) {
	resp, err := domain.ParseJSON([]byte(`{"count":"5"}`))
	require.NoError(t, err)

	r := typecheck.CheckResponseTypes(resp, schema(t, `{"properties":{"count":{"type":"integer"}}}`))
	assert.True(t, r.Valid)
	require.Len(t, r.Warnings, 1)
	assert.Equal(t, "response field 'count' has type 'string', expected 'integer'", r.Warnings[0].Message)
	assert.Equal(t, 0, r.AutoFixes.Len())
}

func TestCheckResponseTypes_ListType(t *testing.T) {
	resp, _ := domain.ParseJSON([]byte(`{"v":true,"w":"ok"}`))
	s := schema(t, `{"properties":{"v":{"type":["string","integer"]},"w":{"type":["string"]}}}`)

	r := typecheck.CheckResponseTypes(resp, s)
	assert.True(t, r.Valid)
	require.Len(t, r.Warnings, 1)
	assert.Equal(t, "response field 'v' has unexpected type", r.Warnings[0].Message)
}

func TestCheckResponseTypes_NonObjectOrNoSchema(t *testing.T) {
	arr, _ := domain.ParseJSON([]byte(`[1,2]`))
	r := typecheck.CheckResponseTypes(arr, schema(t, countSchema))
	assert.True(t, r.Valid)
	assert.True(t, r.Clean())

	obj, _ := domain.ParseJSON([]byte(`{"count":"x"}`))
	r = typecheck.CheckResponseTypes(obj, nil)
	assert.True(t, r.Clean())
}
