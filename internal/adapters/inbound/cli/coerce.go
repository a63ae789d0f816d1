package cli

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/openkraft/typeguard/internal/adapters/outbound/tui"
	"github.com/openkraft/typeguard/internal/domain"
	"github.com/openkraft/typeguard/internal/domain/typecheck"
)

type coercionOutput struct {
	Value   domain.Value `json:"value"`
	Target  domain.Tag   `json:"target"`
	OK      bool         `json:"ok"`
	Result  domain.Value `json:"result"`
	Message string       `json:"message"`
}

func newCoerceCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "coerce <value> <type>",
		Short: "Try a safe conversion of a JSON value to a type",
		Long: "Try the coercion typeguard would apply during validation. <value> is parsed as JSON; " +
			"text that is not valid JSON is taken as a string.",
		Example: `  typeguard coerce '"42"' integer
  typeguard coerce 1704067200 string
  typeguard coerce yes boolean --json`,
		Args:        cobra.ExactArgs(2),
		Annotations: map[string]string{skipConfig: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := domain.ParseJSON([]byte(args[0]))
			if err != nil {
				value = domain.String(args[0])
			}

			target, ok := domain.ParseTag(args[1])
			if !ok {
				names := make([]string, len(domain.CoercionTargets))
				for i, t := range domain.CoercionTargets {
					names[i] = t.String()
				}
				return errors.WithHint(
					errors.Newf("unknown type %q", args[1]),
					"use one of "+strings.Join(names, ", "))
			}

			c := typecheck.TryCoerce(value, target)
			if jsonOutput {
				return renderJSON(cmd, coercionOutput{
					Value:   value,
					Target:  target,
					OK:      c.OK,
					Result:  c.Value,
					Message: c.Message,
				})
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderCoercion(value, target, c.OK, c.Value, c.Message))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the outcome as JSON")

	return cmd
}
