package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/openkraft/typeguard/internal/adapters/inbound/cli"
)

const testConfig = `schemas_dir: %s
tools:
  create_user:
    input:
      properties:
        user_id: {type: integer}
        email: {type: string}
      required: [email]
`

// writeConfig creates a config with an inline create_user schema and an
// empty schemas directory, returning the config path.
func writeConfig(t *testing.T, extra string) string {
	t.Helper()
	dir := t.TempDir()
	schemas := filepath.Join(dir, "schemas")
	require.NoError(t, os.MkdirAll(schemas, 0755))
	path := filepath.Join(dir, ".typeguard.yaml")
	content := strings.Replace(testConfig, "%s", schemas, 1) + extra
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// run executes the root command and returns its stdout.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := cli.NewRootCmdForTest()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}
