// Package logger holds the process-wide structured logger.
//
// Logs always go to stderr: stdout belongs to command output and, under
// "mcp serve", to the stdio transport.
package logger

import (
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Logger is the global logger. It is a no-op until Initialize is called.
	Logger *zap.SugaredLogger
	// JSONOutput reports whether Initialize selected the JSON encoder.
	JSONOutput bool
)

func init() {
	Logger = zap.NewNop().Sugar()
}

// Standard field names.
const (
	FieldTool      = "tool"
	FieldSession   = "session_id"
	FieldValid     = "valid"
	FieldWarnings  = "warnings"
	FieldErrors    = "errors"
	FieldFixes     = "auto_fixes"
	FieldPath      = "path"
	FieldComponent = "component"
	FieldScore     = "safety_score"
	FieldError     = "error"
)

// Initialize replaces the global logger. level is one of debug, info, warn
// or error; an empty level means warn.
func Initialize(level string, jsonOutput bool) error {
	lvl, err := ParseLevel(level)
	if err != nil {
		return err
	}
	JSONOutput = jsonOutput
	Logger = zap.New(zapcore.NewCore(newEncoder(jsonOutput), zapcore.Lock(os.Stderr), lvl)).Sugar()
	return nil
}

// ParseLevel maps a config or flag value to a zap level.
func ParseLevel(level string) (zapcore.Level, error) {
	if strings.TrimSpace(level) == "" {
		return zapcore.WarnLevel, nil
	}
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(strings.ToLower(level))); err != nil {
		return lvl, errors.WithHint(
			errors.Newf("invalid log level %q", level),
			"use one of debug, info, warn, error")
	}
	return lvl, nil
}

func newEncoder(jsonOutput bool) zapcore.Encoder {
	if jsonOutput {
		cfg := zap.NewProductionEncoderConfig()
		cfg.EncodeTime = zapcore.ISO8601TimeEncoder
		return zapcore.NewJSONEncoder(cfg)
	}
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
	cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return zapcore.NewConsoleEncoder(cfg)
}

// Named returns a child logger tagged with a component name.
func Named(component string) *zap.SugaredLogger {
	return Logger.With(FieldComponent, component)
}

// Cleanup flushes any buffered log entries.
func Cleanup() {
	if Logger != nil {
		_ = Logger.Sync()
	}
}
