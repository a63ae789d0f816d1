package domain

import (
	"fmt"
	"slices"
	"strings"
)

// Migration script languages.
const (
	LanguagePython     = "python"
	LanguageJavaScript = "javascript"
)

// SupportedLanguages enumerates the migration script languages.
var SupportedLanguages = []string{LanguagePython, LanguageJavaScript}

var validLogLevels = []string{"", "debug", "info", "warn", "error"}

// DefaultSchemasDir is where per-tool schema files are looked up.
const DefaultSchemasDir = ".typeguard/schemas"

// Config holds settings loaded from .typeguard.yaml.
type Config struct {
	SchemasDir        string                      `yaml:"schemas_dir"        json:"schemas_dir,omitempty"`
	SkipTools         []string                    `yaml:"skip_tools"         json:"skip_tools,omitempty"`
	MigrationLanguage string                      `yaml:"migration_language" json:"migration_language,omitempty"`
	LogLevel          string                      `yaml:"log_level"          json:"log_level,omitempty"`
	CheckResponses    bool                        `yaml:"check_responses"    json:"check_responses"`
	Tools             map[string]ToolSchemaConfig `yaml:"tools"              json:"tools,omitempty"`
}

// ToolSchemaConfig is an inline schema pair for one tool.
type ToolSchemaConfig struct {
	Input  map[string]any `yaml:"input"  json:"input,omitempty"`
	Output map[string]any `yaml:"output" json:"output,omitempty"`
}

// DefaultConfig returns the settings used when no config file exists.
func DefaultConfig() Config {
	return Config{
		SchemasDir:        DefaultSchemasDir,
		MigrationLanguage: LanguagePython,
		CheckResponses:    true,
	}
}

// IsSkipped reports whether calls to tool bypass validation.
func (c Config) IsSkipped(tool string) bool {
	return slices.Contains(c.SkipTools, tool)
}

// InlineSchemas returns the schemas declared for tool in the config file.
func (c Config) InlineSchemas(tool string) ToolSchemas {
	tc, ok := c.Tools[tool]
	if !ok {
		return ToolSchemas{}
	}
	return ToolSchemas{
		Input:  SchemaFromMap(tc.Input),
		Output: SchemaFromMap(tc.Output),
	}
}

// Validate checks the config for invalid values and returns a descriptive error.
func (c Config) Validate() error {
	if c.MigrationLanguage != "" && !slices.Contains(SupportedLanguages, c.MigrationLanguage) {
		return fmt.Errorf("unknown migration_language %q (valid: %s)",
			c.MigrationLanguage, strings.Join(SupportedLanguages, ", "))
	}
	if !slices.Contains(validLogLevels, strings.ToLower(c.LogLevel)) {
		return fmt.Errorf("unknown log_level %q (valid: debug, info, warn, error)", c.LogLevel)
	}
	for i, tool := range c.SkipTools {
		if strings.TrimSpace(tool) == "" {
			return fmt.Errorf("skip_tools[%d] is empty", i)
		}
	}
	for name := range c.Tools {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("tools has an entry with an empty name")
		}
	}
	return nil
}
