package config

import (
	"os"

	"github.com/cockroachdb/errors"
	"github.com/joeshaw/envdecode"
	"gopkg.in/yaml.v3"

	"github.com/openkraft/typeguard/internal/domain"
)

// FileName is the config file looked up in the working directory.
const FileName = ".typeguard.yaml"

// YAMLLoader implements domain.ConfigLoader by reading .typeguard.yaml and
// applying TYPEGUARD_* environment overrides.
type YAMLLoader struct {
	// decodeEnv is swapped in tests.
	decodeEnv func(any) error
}

// New creates a YAMLLoader.
func New() *YAMLLoader { return &YAMLLoader{decodeEnv: envdecode.Decode} }

// envOverrides are the settings that may come from the environment.
type envOverrides struct {
	SchemasDir        string `env:"TYPEGUARD_SCHEMAS_DIR"`
	MigrationLanguage string `env:"TYPEGUARD_MIGRATION_LANGUAGE"`
	LogLevel          string `env:"TYPEGUARD_LOG_LEVEL"`
}

// Load reads the config at path, or FileName when path is empty.
// Returns DefaultConfig if the file does not exist.
func (l *YAMLLoader) Load(path string) (domain.Config, error) {
	if path == "" {
		path = FileName
	}

	cfg := domain.DefaultConfig()
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return domain.Config{}, errors.Wrapf(err, "reading %s", path)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return domain.Config{}, errors.Wrapf(err, "parsing %s", path)
		}
	}

	if err := l.applyEnv(&cfg); err != nil {
		return domain.Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return domain.Config{}, errors.WithHint(
			errors.Wrapf(err, "invalid %s", path),
			"run `typeguard init` to see a commented example")
	}
	return cfg, nil
}

func (l *YAMLLoader) applyEnv(cfg *domain.Config) error {
	var env envOverrides
	if err := l.decodeEnv(&env); err != nil {
		if errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
			return nil
		}
		return errors.Wrap(err, "reading TYPEGUARD_* environment")
	}
	if env.SchemasDir != "" {
		cfg.SchemasDir = env.SchemasDir
	}
	if env.MigrationLanguage != "" {
		cfg.MigrationLanguage = env.MigrationLanguage
	}
	if env.LogLevel != "" {
		cfg.LogLevel = env.LogLevel
	}
	return nil
}

// Starter is the commented config written by `typeguard init`.
const Starter = `# typeguard configuration

# Directory holding <tool>.json / <tool>.yaml schema files.
schemas_dir: .typeguard/schemas

# Tools whose calls are counted but never validated.
skip_tools: []

# Language of generated migration scripts: python or javascript.
migration_language: python

# debug, info, warn or error. Logs go to stderr.
log_level: warn

# Check tool responses against output schemas.
check_responses: true

# Inline schemas, used when no schema file exists for a tool.
tools:
  create_user:
    input:
      type: object
      properties:
        user_id: {type: integer}
        email: {type: string}
        is_active: {type: boolean}
      required: [email]
`
