package mcp

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/cockroachdb/errors"
	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/openkraft/typeguard/internal/domain"
)

const (
	sessionURI       = "typeguard://session"
	schemasURI       = "typeguard://schemas"
	schemaURIPrefix  = schemasURI + "/"
	jsonMIMEType     = "application/json"
	schemaTemplateID = schemaURIPrefix + "{tool}"
)

// registerResources registers all typeguard MCP resources on the given server.
func registerResources(s *server.MCPServer, h *handlers) {
	s.AddResource(
		mcplib.NewResource(
			sessionURI,
			"Session Scorecard",
			mcplib.WithResourceDescription("Type safety counters and score of this server session"),
			mcplib.WithMIMEType(jsonMIMEType),
		),
		h.sessionResource,
	)

	s.AddResource(
		mcplib.NewResource(
			schemasURI,
			"Schema Catalog",
			mcplib.WithResourceDescription("Names of the tools with a known schema"),
			mcplib.WithMIMEType(jsonMIMEType),
		),
		h.catalogResource,
	)

	s.AddResourceTemplate(
		mcplib.NewResourceTemplate(
			schemaTemplateID,
			"Tool Schema",
			mcplib.WithTemplateDescription("Input and output schema of a tool, as the validator reads them"),
			mcplib.WithTemplateMIMEType(jsonMIMEType),
		),
		h.schemaResource,
	)
}

func (h *handlers) sessionResource(_ context.Context, request mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
	return jsonContents(request.Params.URI, h.session.Snapshot())
}

func (h *handlers) catalogResource(_ context.Context, request mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
	tools, err := h.schemas.Tools()
	if err != nil {
		return nil, err
	}
	if tools == nil {
		tools = []string{}
	}
	return jsonContents(request.Params.URI, tools)
}

func (h *handlers) schemaResource(_ context.Context, request mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
	tool := templateArg(request, "tool")
	if tool == "" {
		return nil, errors.New("tool name is required")
	}

	schemas, err := h.schemas.Lookup(tool)
	if err != nil {
		return nil, err
	}
	if schemas.Input == nil && schemas.Output == nil {
		return nil, errors.Newf("no schema for tool %q", tool)
	}

	out := domain.NewObject()
	out.Set("tool", domain.String(tool))
	out.Set("input", schemas.Input.Normalized())
	out.Set("output", schemas.Output.Normalized())
	return jsonContents(request.Params.URI, out)
}

// templateArg reads a URI template variable, falling back to the path after
// the schemas prefix.
func templateArg(request mcplib.ReadResourceRequest, name string) string {
	switch v := request.Params.Arguments[name].(type) {
	case string:
		return v
	case []string:
		if len(v) > 0 {
			return v[0]
		}
	}
	return strings.TrimPrefix(request.Params.URI, schemaURIPrefix)
}

func jsonContents(uri string, v any) ([]mcplib.ResourceContents, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "marshaling resource")
	}
	return []mcplib.ResourceContents{
		mcplib.TextResourceContents{
			URI:      uri,
			MIMEType: jsonMIMEType,
			Text:     string(data),
		},
	}, nil
}

// NotifySchemaChanged tells connected clients that the schema resource of
// tool has changed.
func NotifySchemaChanged(s *server.MCPServer, tool string) {
	s.SendNotificationToAllClients("notifications/resources/updated", map[string]any{
		"uri": schemaURIPrefix + tool,
	})
}
