package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openkraft/typeguard/internal/domain"
	"github.com/openkraft/typeguard/internal/domain/typecheck"
)

func newInferCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:         "infer <field>...",
		Short:       "Show the type inferred from field names",
		Args:        cobra.MinimumNArgs(1),
		Annotations: map[string]string{skipConfig: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			inferred := domain.NewObject()
			for _, field := range args {
				if tag, ok := typecheck.Infer(field); ok {
					inferred.Set(field, domain.String(tag))
				} else {
					inferred.Set(field, domain.Null{})
				}
			}

			if jsonOutput {
				return renderJSON(cmd, inferred)
			}
			for _, field := range inferred.Keys() {
				v, _ := inferred.Get(field)
				tag := "-"
				if s, ok := v.(domain.String); ok {
					tag = string(s)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", field, tag)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as a JSON object")

	return cmd
}
