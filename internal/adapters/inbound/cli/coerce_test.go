package cli_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoerceCommand(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{`"42"`, "integer"}, `✓ "42" → 42`},
		{[]string{"yes", "boolean"}, `✓ "yes" → true`},
		{[]string{"1704067200", "string"}, `"2024-01-01T00:00:00Z"`},
		{[]string{"abc", "integer"}, `✗ "abc" → integer: cannot convert "abc" to integer`},
	}
	for _, tt := range tests {
		out, err := run(t, "", append([]string{"coerce"}, tt.args...)...)
		require.NoError(t, err, tt.args)
		assert.Contains(t, out, tt.want)
	}
}

func TestCoerceCommand_JSON(t *testing.T) {
	out, err := run(t, "", "coerce", "2.5", "string", "--json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"value": 2.5, "target": "string", "ok": true, "result": "2.5", "message": "convert 2.5 to string"}`, out)
}

func TestCoerceCommand_UnknownType(t *testing.T) {
	_, err := run(t, "", "coerce", "1", "datetime")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown type "datetime"`)
}

func TestInferCommand(t *testing.T) {
	out, err := run(t, "", "infer", "user_id", "created_at", "name")
	require.NoError(t, err)
	assert.Equal(t, "user_id: integer\ncreated_at: datetime\nname: -\n", out)

	out, err = run(t, "", "infer", "is_active", "name", "--json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"is_active": "boolean", "name": null}`, out)
}

func TestSchemaCommand(t *testing.T) {
	out, err := run(t, "", "schema")
	require.NoError(t, err)
	assert.Contains(t, out, `"auto_fixes"`)
	assert.Contains(t, out, `"suggestions"`)
	assert.Contains(t, out, `"timestamp_mismatch"`)

	out, err = run(t, "", "schema", "scorecard")
	require.NoError(t, err)
	assert.Contains(t, out, `"safety_score"`)

	_, err = run(t, "", "schema", "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown schema "nope"`)
}
