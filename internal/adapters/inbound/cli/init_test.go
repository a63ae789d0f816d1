package cli_test

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openkraft/typeguard/internal/adapters/inbound/cli"
	"github.com/openkraft/typeguard/internal/adapters/outbound/config"
)

func TestInitCmd_CreatesConfigAndSchemasDir(t *testing.T) {
	tmpDir := t.TempDir()

	root := cli.NewRootCmdForTest()
	root.SetOut(io.Discard)
	root.SetArgs([]string{"init", tmpDir})
	require.NoError(t, root.Execute())

	data, err := os.ReadFile(filepath.Join(tmpDir, ".typeguard.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "schemas_dir: .typeguard/schemas")
	assert.Contains(t, string(data), "migration_language: python")

	info, err := os.Stat(filepath.Join(tmpDir, ".typeguard", "schemas"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	_, err = config.New().Load(filepath.Join(tmpDir, ".typeguard.yaml"))
	assert.NoError(t, err)
}

func TestInitCmd_FailsIfExists(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ".typeguard.yaml"), []byte("existing"), 0644))

	root := cli.NewRootCmdForTest()
	root.SetArgs([]string{"init", tmpDir})
	err := root.Execute()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestInitCmd_ForceOverwrites(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ".typeguard.yaml"), []byte("old"), 0644))

	root := cli.NewRootCmdForTest()
	root.SetOut(io.Discard)
	root.SetArgs([]string{"init", tmpDir, "--force"})
	require.NoError(t, root.Execute())

	data, err := os.ReadFile(filepath.Join(tmpDir, ".typeguard.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "check_responses: true")
	assert.NotEqual(t, "old", string(data))
}

func TestInitCmd_IgnoresBrokenConfig(t *testing.T) {
	tmpDir := t.TempDir()
	broken := filepath.Join(tmpDir, "broken.yaml")
	require.NoError(t, os.WriteFile(broken, []byte("migration_language: cobol\n"), 0644))

	root := cli.NewRootCmdForTest()
	root.SetOut(io.Discard)
	root.SetArgs([]string{"init", tmpDir, "--config", broken})
	assert.NoError(t, root.Execute())
}
