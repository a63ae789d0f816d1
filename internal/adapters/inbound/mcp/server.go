// Package mcp exposes the type validator as MCP tools and resources.
package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/openkraft/typeguard/internal/application"
	"github.com/openkraft/typeguard/internal/domain"
)

// SchemaCatalog resolves and lists tool schemas.
type SchemaCatalog interface {
	domain.SchemaStore
	Tools() ([]string, error)
}

// handlers carries what every tool and resource handler needs.
type handlers struct {
	cfg     domain.Config
	session *application.SessionService
	schemas SchemaCatalog
}

// NewServer creates the typeguard MCP server. Calls validated through it are
// folded into session, which lives as long as the server.
func NewServer(cfg domain.Config, session *application.SessionService, schemas SchemaCatalog, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"typeguard",
		version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	h := &handlers{cfg: cfg, session: session, schemas: schemas}
	registerTools(s, h)
	registerResources(s, h)

	return s
}
