package cli

import (
	"reflect"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/invopop/jsonschema"
	"github.com/spf13/cobra"

	"github.com/openkraft/typeguard/internal/application"
	"github.com/openkraft/typeguard/internal/domain"
)

// schemaTargets maps a schema command argument to the type it documents.
var schemaTargets = map[string]any{
	"report":      domain.ValidationReport{},
	"result":      domain.ValidationResult{},
	"call-result": application.CallResult{},
	"scorecard":   domain.ScorecardEntry{},
}

func newSchemaCmd() *cobra.Command {
	names := make([]string, 0, len(schemaTargets))
	for name := range schemaTargets {
		names = append(names, name)
	}
	slices.Sort(names)

	return &cobra.Command{
		Use:         "schema [" + strings.Join(names, "|") + "]",
		Short:       "Print the JSON Schema of typeguard's JSON output",
		Args:        cobra.MaximumNArgs(1),
		ValidArgs:   names,
		Annotations: map[string]string{skipConfig: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target := "report"
			if len(args) > 0 {
				target = args[0]
			}
			v, ok := schemaTargets[target]
			if !ok {
				return errors.WithHint(
					errors.Newf("unknown schema %q", target),
					"use one of "+strings.Join(names, ", "))
			}
			return renderJSON(cmd, reflectSchema(v))
		},
	}
}

func reflectSchema(v any) *jsonschema.Schema {
	r := &jsonschema.Reflector{
		DoNotReference: true,
		ExpandedStruct: true,
		Mapper:         mapDomainType,
	}
	return r.Reflect(v)
}

var (
	valueType    = reflect.TypeOf((*domain.Value)(nil)).Elem()
	objectType   = reflect.TypeOf(domain.Object{})
	severityType = reflect.TypeOf(domain.Severity(0))
	patternType  = reflect.TypeOf(domain.Pattern(0))
)

// mapDomainType describes the domain types whose JSON form differs from
// their Go shape.
func mapDomainType(t reflect.Type) *jsonschema.Schema {
	switch t {
	case valueType:
		return &jsonschema.Schema{Description: "any JSON value"}
	case objectType:
		return &jsonschema.Schema{Type: "object", Description: "field name to value, in argument order"}
	case severityType:
		return &jsonschema.Schema{
			Type: "string",
			Enum: []any{
				domain.SeverityValid.String(), domain.SeverityWarning.String(),
				domain.SeverityError.String(), domain.SeveritySuggestion.String(),
			},
		}
	case patternType:
		enum := make([]any, len(domain.AllPatterns))
		for i, p := range domain.AllPatterns {
			enum[i] = p.String()
		}
		return &jsonschema.Schema{
			OneOf: []*jsonschema.Schema{
				{Type: "null"},
				{Type: "string", Enum: enum},
			},
		}
	}
	return nil
}
