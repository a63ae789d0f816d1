package cli

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/openkraft/typeguard/internal/adapters/outbound/schemastore"
	"github.com/openkraft/typeguard/internal/adapters/outbound/tui"
	"github.com/openkraft/typeguard/internal/application"
	"github.com/openkraft/typeguard/internal/domain"
)

func newCheckResponseCmd(opts *globalOptions) *cobra.Command {
	var (
		respJSON   string
		respFile   string
		schemaPath string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "check-response <tool>",
		Short: "Check a tool response against its output schema",
		Long:  "Compare a tool response with the tool's output schema. Mismatches are reported as warnings and never fail the command.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tool := args[0]

			raw, err := readPayload(cmd, respJSON, respFile, "response")
			if err != nil {
				return err
			}
			response, err := domain.ParseJSON(raw)
			if err != nil {
				return errors.Wrap(err, "parsing response")
			}
			schemas, err := readSchemaFile(schemaPath)
			if err != nil {
				return err
			}
			// A bare schema file reads as an input schema.
			schema := schemas.Output
			if schema == nil {
				schema = schemas.Input
			}

			svc := application.NewSessionService(opts.cfg, schemastore.New(opts.cfg))
			report, err := svc.CheckResponse(tool, response, schema)
			if err != nil {
				return err
			}

			if jsonOutput {
				return renderJSON(cmd, report)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderResponseReport(report, tool))
			return nil
		},
	}

	cmd.Flags().StringVar(&respJSON, "response", "", "Tool response as JSON")
	cmd.Flags().StringVar(&respFile, "response-file", "", "File holding the response JSON (- for stdin)")
	cmd.Flags().StringVar(&schemaPath, "schema", "", "Schema file (JSON or YAML) overriding the schema store")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the report as JSON")

	return cmd
}
