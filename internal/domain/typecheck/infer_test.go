package typecheck_test

import (
	"testing"

	"github.com/openkraft/typeguard/internal/domain"
	"github.com/openkraft/typeguard/internal/domain/typecheck"
	"github.com/stretchr/testify/assert"
)

func TestInfer(t *testing.T) {
	tests := []struct {
		field string
		want  domain.Tag
	}{
		{"user_id", domain.TagInteger},
		{"userId", domain.TagInteger},
		{"USER_ID", domain.TagInteger},
		{"order_total", domain.TagInteger},
		{"count", domain.TagInteger},
		{"created_at", domain.TagDatetime},
		{"timestamp", domain.TagDatetime},
		{"updated", domain.TagDatetime},
		{"birth_date", domain.TagDatetime},
		{"total_amount", domain.TagNumber},
		{"discount_rate", domain.TagNumber},
		{"unit_price", domain.TagNumber},
		{"is_active", domain.TagBoolean},
		{"feature_enabled", domain.TagBoolean},
	}
	for _, tt := range tests {
		got, ok := typecheck.Infer(tt.field)
		assert.True(t, ok, tt.field)
		assert.Equal(t, tt.want, got, tt.field)
	}
}

func TestInfer_NoMatch(t *testing.T) {
	for _, field := range []string{"name", "description", "identity", "ids"} {
		_, ok := typecheck.Infer(field)
		assert.False(t, ok, field)
	}
}

func TestInfer_FirstGroupWins(t *testing.T) {
	// Matches both the integer and datetime groups.
	got, _ := typecheck.Infer("timestamp_id")
	assert.Equal(t, domain.TagInteger, got)
}
