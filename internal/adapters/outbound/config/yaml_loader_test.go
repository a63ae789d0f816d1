package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	appconfig "github.com/openkraft/typeguard/internal/adapters/outbound/config"
	"github.com/openkraft/typeguard/internal/domain"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), appconfig.FileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"TYPEGUARD_SCHEMAS_DIR", "TYPEGUARD_MIGRATION_LANGUAGE", "TYPEGUARD_LOG_LEVEL"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestYAMLLoader_MissingFileReturnsDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := appconfig.New().Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultConfig(), cfg)
}

func TestYAMLLoader_ValidYAML(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
schemas_dir: schemas
skip_tools: [ping]
migration_language: javascript
check_responses: false
tools:
  get_order:
    input:
      properties:
        order_id: {type: integer}
`)
	cfg, err := appconfig.New().Load(path)
	require.NoError(t, err)
	assert.Equal(t, "schemas", cfg.SchemasDir)
	assert.True(t, cfg.IsSkipped("ping"))
	assert.Equal(t, "javascript", cfg.MigrationLanguage)
	assert.False(t, cfg.CheckResponses)
	assert.Equal(t, "integer", cfg.InlineSchemas("get_order").Input.ExpectedType("order_id"))
}

func TestYAMLLoader_PartialFileKeepsDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := appconfig.New().Load(writeConfig(t, `skip_tools: [ping]`))
	require.NoError(t, err)
	assert.Equal(t, domain.LanguagePython, cfg.MigrationLanguage)
	assert.True(t, cfg.CheckResponses)
}

func TestYAMLLoader_InvalidYAML(t *testing.T) {
	clearEnv(t)
	_, err := appconfig.New().Load(writeConfig(t, `{{{invalid yaml`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing")
}

func TestYAMLLoader_InvalidValues(t *testing.T) {
	clearEnv(t)
	_, err := appconfig.New().Load(writeConfig(t, `migration_language: cobol`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown migration_language")
}

func TestYAMLLoader_EnvOverrides(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `schemas_dir: from-file`)
	t.Setenv("TYPEGUARD_SCHEMAS_DIR", "from-env")
	t.Setenv("TYPEGUARD_MIGRATION_LANGUAGE", "javascript")

	cfg, err := appconfig.New().Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.SchemasDir)
	assert.Equal(t, "javascript", cfg.MigrationLanguage)
}

func TestYAMLLoader_EnvOverrideIsValidated(t *testing.T) {
	clearEnv(t)
	t.Setenv("TYPEGUARD_LOG_LEVEL", "chatty")

	_, err := appconfig.New().Load(writeConfig(t, ``))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown log_level")
}

func TestStarter_IsValidConfig(t *testing.T) {
	cfg := domain.DefaultConfig()
	require.NoError(t, yaml.Unmarshal([]byte(appconfig.Starter), &cfg))
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "boolean", cfg.InlineSchemas("create_user").Input.ExpectedType("is_active"))
}
