package typecheck_test

import (
	"testing"

	"github.com/openkraft/typeguard/internal/domain"
	"github.com/openkraft/typeguard/internal/domain/typecheck"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTryCoerce(t *testing.T) {
	tests := []struct {
		name   string
		value  domain.Value
		target domain.Tag
		ok     bool
		want   domain.Value
	}{
		{"same type", domain.String("x"), domain.TagString, true, domain.String("x")},
		{"numeric string to integer", domain.String("5"), domain.TagInteger, true, domain.Int(5)},
		{"padded string to integer", domain.String(" 42 "), domain.TagInteger, true, domain.Int(42)},
		{"iso to integer", domain.String("2024-01-01T00:00:00Z"), domain.TagInteger, true, domain.Int(1704067200)},
		{"date to integer", domain.String("2024-01-01"), domain.TagInteger, true, domain.Int(1704067200)},
		{"garbage to integer", domain.String("abc"), domain.TagInteger, false, domain.String("abc")},
		{"decimal string to integer", domain.String("5.5"), domain.TagInteger, false, domain.String("5.5")},
		{"string to number", domain.String("3.14"), domain.TagNumber, true, domain.Float(3.14)},
		{"nan string to number", domain.String("NaN"), domain.TagNumber, false, domain.String("NaN")},
		{"hex string to number", domain.String("0x1p4"), domain.TagNumber, false, domain.String("0x1p4")},
		{"underscored string to number", domain.String("1_000"), domain.TagNumber, false, domain.String("1_000")},
		{"exponent string to number", domain.String(" 1.5e3 "), domain.TagNumber, true, domain.Float(1500)},
		{"leading dot string to number", domain.String(".5"), domain.TagNumber, true, domain.Float(0.5)},
		{"huge string to number", domain.String("1e400"), domain.TagNumber, false, domain.String("1e400")},
		{"offset without colon to integer", domain.String("2024-01-01T00:00:00+0000"), domain.TagInteger, true, domain.Int(1704067200)},
		{"beyond int64 to integer", domain.String("99999999999999999999"), domain.TagInteger, false, domain.String("99999999999999999999")},
		{"integer to number", domain.Int(5), domain.TagNumber, true, domain.Float(5)},
		{"yes to boolean", domain.String("yes"), domain.TagBoolean, true, domain.Bool(true)},
		{"False to boolean", domain.String("False"), domain.TagBoolean, true, domain.Bool(false)},
		{"one to boolean", domain.Int(1), domain.TagBoolean, true, domain.Bool(true)},
		{"two to boolean", domain.Int(2), domain.TagBoolean, false, domain.Int(2)},
		{"float one to boolean", domain.Float(1), domain.TagBoolean, false, domain.Float(1)},
		{"timestamp to string", domain.Int(1704067200), domain.TagString, true, domain.String("2024-01-01T00:00:00Z")},
		{"millis to string", domain.Int(1704067200000), domain.TagString, true, domain.String("2024-01-01T00:00:00Z")},
		{"small int to string", domain.Int(42), domain.TagString, true, domain.String("42")},
		{"float to string", domain.Float(2.5), domain.TagString, true, domain.String("2.5")},
		{"integral float to string", domain.Float(5), domain.TagString, true, domain.String("5.0")},
		{"null to string", domain.Null{}, domain.TagString, false, domain.Null{}},
		{"boolean to integer", domain.Bool(true), domain.TagInteger, false, domain.Bool(true)},
		{"number to integer", domain.Float(5), domain.TagInteger, false, domain.Float(5)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := typecheck.TryCoerce(tt.value, tt.target)
			assert.Equal(t, tt.ok, got.OK, got.Message)
			assert.True(t, domain.Equal(tt.want, got.Value), "got %#v", got.Value)
			assert.NotEmpty(t, got.Message)
		})
	}
}

func TestTryCoerce_Messages(t *testing.T) {
	assert.Equal(t, "types match", typecheck.TryCoerce(domain.Int(1), domain.TagInteger).Message)
	assert.Equal(t, `cannot convert "abc" to integer`, typecheck.TryCoerce(domain.String("abc"), domain.TagInteger).Message)
	assert.Equal(t, "cannot coerce null to string", typecheck.TryCoerce(domain.Null{}, domain.TagString).Message)
	assert.Equal(t, "convert Unix timestamp to ISO-8601: 2024-01-01T00:00:00Z",
		typecheck.TryCoerce(domain.Int(1704067200), domain.TagString).Message)
}

func TestTryCoerce_InvalidISODate(t *testing.T) {
	got := typecheck.TryCoerce(domain.String("2024-13-45"), domain.TagInteger)
	assert.False(t, got.OK)
	assert.Equal(t, "cannot coerce string to integer", got.Message)
}

func TestTryCoerce_TimestampRoundTrip(t *testing.T) {
	for _, n := range []int64{1_000_000_000, 1704067200, 2_500_000_000} {
		s := typecheck.TryCoerce(domain.Int(n), domain.TagString)
		require.True(t, s.OK)
		back := typecheck.TryCoerce(s.Value, domain.TagInteger)
		require.True(t, back.OK, back.Message)
		assert.Equal(t, domain.Int(n), back.Value)
	}
}

func TestTryCoerce_DoesNotMutateInput(t *testing.T) {
	arr := domain.Array{domain.Int(1)}
	got := typecheck.TryCoerce(arr, domain.TagString)
	assert.False(t, got.OK)
	assert.Equal(t, domain.Array{domain.Int(1)}, arr)
}

func TestUnixToISO8601(t *testing.T) {
	assert.Equal(t, "2024-01-01T00:00:00Z", typecheck.UnixToISO8601(1704067200))
	assert.Equal(t, "2024-01-01T00:00:00Z", typecheck.UnixToISO8601(1704067200999))
	assert.Equal(t, "1970-01-01T00:00:00Z", typecheck.UnixToISO8601(0))
}

func TestParseISO8601(t *testing.T) {
	ts, ok := typecheck.ParseISO8601("2024-01-01T02:00:00+02:00")
	require.True(t, ok)
	assert.Equal(t, int64(1704067200), ts.Unix())

	ts, ok = typecheck.ParseISO8601("2024-01-01 00:00:00")
	require.True(t, ok)
	assert.Equal(t, int64(1704067200), ts.Unix())

	ts, ok = typecheck.ParseISO8601("2024-01-01 01:00:00+0100")
	require.True(t, ok)
	assert.Equal(t, int64(1704067200), ts.Unix())

	_, ok = typecheck.ParseISO8601("not a date")
	assert.False(t, ok)
}
