package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/openkraft/typeguard/internal/adapters/outbound/migration"
	"github.com/openkraft/typeguard/internal/adapters/outbound/tui"
	"github.com/openkraft/typeguard/internal/domain"
	"github.com/openkraft/typeguard/internal/domain/typecheck"
	"github.com/openkraft/typeguard/internal/logger"
)

// registerTools registers all typeguard MCP tools on the given server.
func registerTools(s *server.MCPServer, h *handlers) {
	s.AddTool(
		mcplib.NewTool("typeguard_validate_arguments",
			mcplib.WithDescription("Validate the arguments of a tool call against its input schema. "+
				"Safe mismatches come back as warnings with auto-fixes, unsafe ones as errors. The call counts toward the session scorecard."),
			mcplib.WithString("tool",
				mcplib.Required(),
				mcplib.Description("Name of the tool being called"),
			),
			mcplib.WithString("arguments",
				mcplib.Required(),
				mcplib.Description("Call arguments as a JSON object encoded in a string"),
			),
			mcplib.WithString("schema",
				mcplib.Description("Input JSON Schema as a string. Defaults to the configured schema for the tool"),
			),
			mcplib.WithString("migration_language",
				mcplib.Description("Also return a migration script in this language"),
				mcplib.Enum(domain.SupportedLanguages...),
			),
		),
		h.validateArguments,
	)

	s.AddTool(
		mcplib.NewTool("typeguard_check_response",
			mcplib.WithDescription("Check a tool response against its output schema. Mismatches are advisory warnings"),
			mcplib.WithString("tool",
				mcplib.Required(),
				mcplib.Description("Name of the tool that responded"),
			),
			mcplib.WithString("response",
				mcplib.Required(),
				mcplib.Description("Tool response as JSON encoded in a string"),
			),
			mcplib.WithString("schema",
				mcplib.Description("Output JSON Schema as a string. Defaults to the configured schema for the tool"),
			),
		),
		h.checkResponse,
	)

	s.AddTool(
		mcplib.NewTool("typeguard_coerce",
			mcplib.WithDescription("Try a safe conversion of a JSON value to a type"),
			mcplib.WithString("value",
				mcplib.Required(),
				mcplib.Description("Value as JSON text; text that is not JSON is taken as a string"),
			),
			mcplib.WithString("type",
				mcplib.Required(),
				mcplib.Description("Target type"),
				mcplib.Enum(targetNames()...),
			),
		),
		h.coerce,
	)

	s.AddTool(
		mcplib.NewTool("typeguard_infer_type",
			mcplib.WithDescription("Infer the expected type of a field from its name"),
			mcplib.WithString("field",
				mcplib.Required(),
				mcplib.Description("Field name, e.g. user_id or created_at"),
			),
		),
		h.inferType,
	)

	s.AddTool(
		mcplib.NewTool("typeguard_session_report",
			mcplib.WithDescription("Returns the type safety scorecard of this server session"),
			mcplib.WithString("format",
				mcplib.Description("Output format"),
				mcplib.Enum("json", "text"),
				mcplib.DefaultString("json"),
			),
			mcplib.WithBoolean("reset",
				mcplib.Description("Start a fresh session after reporting"),
			),
		),
		h.sessionReport,
	)

	s.AddTool(
		mcplib.NewTool("typeguard_migration_script",
			mcplib.WithDescription("Generate a script converting the mismatched arguments of a call on the client side. "+
				"Does not count toward the session scorecard"),
			mcplib.WithString("tool",
				mcplib.Required(),
				mcplib.Description("Name of the tool being called"),
			),
			mcplib.WithString("arguments",
				mcplib.Required(),
				mcplib.Description("Call arguments as a JSON object encoded in a string"),
			),
			mcplib.WithString("schema",
				mcplib.Description("Input JSON Schema as a string. Defaults to the configured schema for the tool"),
			),
			mcplib.WithString("language",
				mcplib.Description("Script language. Defaults to migration_language from the config"),
				mcplib.Enum(domain.SupportedLanguages...),
			),
		),
		h.migrationScript,
	)
}

func (h *handlers) validateArguments(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	tool, err := request.RequireString("tool")
	if err != nil {
		return errorResult(err.Error()), nil
	}
	args, err := objectParam(request, "arguments")
	if err != nil {
		return errorResult(err.Error()), nil
	}
	schema, err := schemaParam(request, "schema")
	if err != nil {
		return errorResult(err.Error()), nil
	}

	report, err := h.session.ValidateArguments(tool, args, schema)
	if err != nil {
		return errorResult(fmt.Sprintf("validation failed: %v", err)), nil
	}

	res, err := jsonResult(report)
	if err != nil {
		return nil, err
	}
	if lang := request.GetString("migration_language", ""); lang != "" {
		res.Content = append(res.Content, mcplib.NewTextContent(migration.Generate(report.Mismatches(), lang)))
	}
	return res, nil
}

func (h *handlers) checkResponse(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	tool, err := request.RequireString("tool")
	if err != nil {
		return errorResult(err.Error()), nil
	}
	response, ok, err := jsonParam(request, "response")
	if err != nil {
		return errorResult(err.Error()), nil
	}
	if !ok {
		return errorResult(`required argument "response" not found`), nil
	}
	schema, err := schemaParam(request, "schema")
	if err != nil {
		return errorResult(err.Error()), nil
	}

	report, err := h.session.CheckResponse(tool, response, schema)
	if err != nil {
		return errorResult(fmt.Sprintf("response check failed: %v", err)), nil
	}
	return jsonResult(report)
}

type coercionResult struct {
	OK      bool         `json:"ok"`
	Value   domain.Value `json:"value"`
	Message string       `json:"message"`
}

func (h *handlers) coerce(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	typeName, err := request.RequireString("type")
	if err != nil {
		return errorResult(err.Error()), nil
	}
	target, ok := domain.ParseTag(typeName)
	if !ok {
		return errorResult(fmt.Sprintf("unknown type %q (valid: %s)", typeName, strings.Join(targetNames(), ", "))), nil
	}

	var value domain.Value
	if raw, isString := request.GetArguments()["value"].(string); isString {
		value, err = domain.ParseJSON([]byte(raw))
		if err != nil {
			value = domain.String(raw)
		}
	} else {
		value, ok, err = jsonParam(request, "value")
		if err != nil {
			return errorResult(err.Error()), nil
		}
		if !ok {
			return errorResult(`required argument "value" not found`), nil
		}
	}

	c := typecheck.TryCoerce(value, target)
	return jsonResult(coercionResult{OK: c.OK, Value: c.Value, Message: c.Message})
}

func (h *handlers) inferType(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	field, err := request.RequireString("field")
	if err != nil {
		return errorResult(err.Error()), nil
	}
	out := map[string]any{"field": field, "type": nil}
	if tag, ok := typecheck.Infer(field); ok {
		out["type"] = tag
	}
	return jsonResult(out)
}

func (h *handlers) sessionReport(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	stats := h.session.Snapshot()
	if request.GetBool("reset", false) {
		h.session.Reset()
		logger.Named("mcp").Infow("session reset", logger.FieldSession, stats.SessionID, logger.FieldScore, stats.SafetyScore())
	}

	switch format := request.GetString("format", "json"); format {
	case "json":
		return jsonResult(stats)
	case "text":
		return textResult(tui.RenderSession(stats)), nil
	default:
		return errorResult(fmt.Sprintf("unknown format %q (valid: json, text)", format)), nil
	}
}

func (h *handlers) migrationScript(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	tool, err := request.RequireString("tool")
	if err != nil {
		return errorResult(err.Error()), nil
	}
	args, err := objectParam(request, "arguments")
	if err != nil {
		return errorResult(err.Error()), nil
	}
	schema, err := schemaParam(request, "schema")
	if err != nil {
		return errorResult(err.Error()), nil
	}
	if schema == nil {
		stored, err := h.session.Schemas(tool)
		if err != nil {
			return errorResult(err.Error()), nil
		}
		schema = stored.Input
	}

	lang := request.GetString("language", h.cfg.MigrationLanguage)
	report := typecheck.ValidateToolArguments(tool, args, schema)
	return textResult(migration.Generate(report.Mismatches(), lang)), nil
}

func targetNames() []string {
	names := make([]string, len(domain.CoercionTargets))
	for i, t := range domain.CoercionTargets {
		names[i] = t.String()
	}
	return names
}

// jsonParam decodes a JSON payload parameter. Payloads are expected as JSON
// text so integers and key order survive transport; structured values are
// accepted too and re-encoded.
func jsonParam(request mcplib.CallToolRequest, name string) (domain.Value, bool, error) {
	raw, ok := request.GetArguments()[name]
	if !ok || raw == nil {
		return nil, false, nil
	}
	data, isString := raw.(string)
	if !isString {
		encoded, err := json.Marshal(raw)
		if err != nil {
			return nil, true, errors.Wrapf(err, "encoding %s", name)
		}
		data = string(encoded)
	}
	v, err := domain.ParseJSON([]byte(data))
	if err != nil {
		return nil, true, errors.Wrapf(err, "%s is not valid JSON", name)
	}
	return v, true, nil
}

func objectParam(request mcplib.CallToolRequest, name string) (*domain.Object, error) {
	v, ok, err := jsonParam(request, name)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.Newf("required argument %q not found", name)
	}
	obj, isObj := v.(*domain.Object)
	if !isObj {
		return nil, errors.Newf("%s must be a JSON object, got %s", name, domain.TagOf(v))
	}
	return obj, nil
}

// schemaParam returns nil when the parameter is absent or empty, leaving
// the schema store to decide.
func schemaParam(request mcplib.CallToolRequest, name string) (*domain.Schema, error) {
	if s, isString := request.GetArguments()[name].(string); isString && strings.TrimSpace(s) == "" {
		return nil, nil
	}
	v, ok, err := jsonParam(request, name)
	if err != nil || !ok {
		return nil, err
	}
	return domain.ParseSchema(v), nil
}

// jsonResult marshals v to JSON and returns it as a text content result.
func jsonResult(v any) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "marshaling result")
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// textResult returns a plain text content result.
func textResult(text string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(text)},
	}
}

// errorResult returns a tool result that indicates an error occurred.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
