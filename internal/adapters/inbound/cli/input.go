package cli

import (
	"encoding/json"
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/openkraft/typeguard/internal/adapters/outbound/schemastore"
	"github.com/openkraft/typeguard/internal/domain"
)

// readPayload returns the inline flag value, or the contents of file ("-"
// reads stdin).
func readPayload(cmd *cobra.Command, inline, file, flag string) ([]byte, error) {
	switch {
	case inline != "" && file != "":
		return nil, errors.Newf("--%s and --%s-file are mutually exclusive", flag, flag)
	case inline != "":
		return []byte(inline), nil
	case file == "-":
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, errors.Wrap(err, "reading stdin")
		}
		return data, nil
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, errors.Wrapf(err, "reading %s", file)
		}
		return data, nil
	}
	return nil, errors.WithHint(
		errors.Newf("no %s given", flag),
		"pass --"+flag+" '<json>' or --"+flag+"-file <path> (- for stdin)")
}

// readSchemaFile loads an explicit --schema file. It returns empty schemas
// when path is empty.
func readSchemaFile(path string) (domain.ToolSchemas, error) {
	if path == "" {
		return domain.ToolSchemas{}, nil
	}
	return schemastore.ReadFile(path)
}

func renderJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
