package cli

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/openkraft/typeguard/internal/adapters/outbound/migration"
	"github.com/openkraft/typeguard/internal/adapters/outbound/schemastore"
	"github.com/openkraft/typeguard/internal/adapters/outbound/tui"
	"github.com/openkraft/typeguard/internal/application"
	"github.com/openkraft/typeguard/internal/domain"
)

// migrateAuto selects the configured migration language.
const migrateAuto = "auto"

func newValidateCmd(opts *globalOptions) *cobra.Command {
	var (
		argsJSON   string
		argsFile   string
		schemaPath string
		migrate    string
		jsonOutput bool
		strict     bool
	)

	cmd := &cobra.Command{
		Use:   "validate <tool>",
		Short: "Validate the arguments of a tool call",
		Long: "Validate tool call arguments against the tool's input schema. The schema comes from --schema, " +
			"then the schemas directory, then inline config. Without a schema, types are inferred from field names.",
		Example: `  typeguard validate create_user --args '{"user_id": "42", "email": "a@b.c"}'
  typeguard validate create_user --args-file call.json --schema create_user.json --json
  typeguard validate create_user --args-file - --migrate=javascript < call.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tool := args[0]

			raw, err := readPayload(cmd, argsJSON, argsFile, "args")
			if err != nil {
				return err
			}
			callArgs, err := domain.ParseJSONObject(raw)
			if err != nil {
				return errors.Wrap(err, "parsing arguments")
			}
			schemas, err := readSchemaFile(schemaPath)
			if err != nil {
				return err
			}

			svc := application.NewSessionService(opts.cfg, schemastore.New(opts.cfg))
			report, err := svc.ValidateArguments(tool, callArgs, schemas.Input)
			if err != nil {
				return err
			}

			if migrate != "" {
				lang := migrate
				if lang == migrateAuto {
					lang = opts.cfg.MigrationLanguage
				}
				fmt.Fprint(cmd.OutOrStdout(), migration.Generate(report.Mismatches(), lang))
				return nil
			}

			if jsonOutput {
				if err := renderJSON(cmd, report); err != nil {
					return err
				}
			} else {
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderReport(report, tool))
			}

			switch {
			case !report.Valid:
				return errors.Newf("%s: %d type error(s)", tool, len(report.Errors))
			case strict && len(report.Warnings) > 0:
				return errors.Newf("%s: %d type warning(s) in strict mode", tool, len(report.Warnings))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&argsJSON, "args", "", "Tool arguments as a JSON object")
	cmd.Flags().StringVar(&argsFile, "args-file", "", "File holding the arguments JSON (- for stdin)")
	cmd.Flags().StringVar(&schemaPath, "schema", "", "Schema file (JSON or YAML) overriding the schema store")
	cmd.Flags().StringVar(&migrate, "migrate", "", "Print a migration script instead of the report (python, javascript)")
	cmd.Flags().Lookup("migrate").NoOptDefVal = migrateAuto
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the report as JSON")
	cmd.Flags().BoolVar(&strict, "strict", false, "Fail on warnings as well as errors")

	return cmd
}
