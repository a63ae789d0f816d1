package cli

import (
	"context"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	mcpadapter "github.com/openkraft/typeguard/internal/adapters/inbound/mcp"
	"github.com/openkraft/typeguard/internal/adapters/outbound/schemastore"
	"github.com/openkraft/typeguard/internal/application"
	"github.com/openkraft/typeguard/internal/logger"
)

func newMCPCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "MCP server commands",
		Long:  "Commands for running the typeguard MCP (Model Context Protocol) server.",
	}
	cmd.AddCommand(newMCPServeCmd(opts))
	return cmd
}

func newMCPServeCmd(opts *globalOptions) *cobra.Command {
	var noWatch bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the typeguard MCP server (stdio)",
		Long: "Start the typeguard MCP server using stdio transport. Assistants can validate tool arguments, " +
			"coerce values and read the session scorecard. Session stats live as long as the server.",
		RunE: func(cmd *cobra.Command, args []string) error {
			store := schemastore.New(opts.cfg)
			svc := application.NewSessionService(opts.cfg, store)
			s := mcpadapter.NewServer(opts.cfg, svc, store, version)
			log := logger.Named("mcp")

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()
			if !noWatch {
				go func() {
					err := store.Watch(ctx, func(tool string) { mcpadapter.NotifySchemaChanged(s, tool) })
					if err != nil {
						log.Debugw("schema directory not watched", logger.FieldPath, opts.cfg.SchemasDir, logger.FieldError, err)
					}
				}()
			}

			log.Infow("serving on stdio", logger.FieldSession, svc.Snapshot().SessionID)
			return server.ServeStdio(s)
		},
	}

	cmd.Flags().BoolVar(&noWatch, "no-watch", false, "Do not watch the schemas directory for changes")

	return cmd
}
