// ABOUTME: MCP server setup for the keto tracker.
// ABOUTME: Wraps MCP server with storage Repository and lookup clients.
package mcp

import (
	"context"

	"github.com/itstoasti/ketomate/internal/ai"
	"github.com/itstoasti/ketomate/internal/provider/openfoodfacts"
	"github.com/itstoasti/ketomate/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps the MCP server with storage and lookup access.
type Server struct {
	mcpServer *mcp.Server
	repo      storage.Repository
	foods     *openfoodfacts.Client
	analyzer  *ai.Client
}

// NewServer creates a new MCP server with the given storage and
// lookup clients. The lookup clients may be nil; the corresponding
// tools then report that lookup is unavailable.
func NewServer(repo storage.Repository, foods *openfoodfacts.Client, analyzer *ai.Client) (*Server, error) {
	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "ketomate",
			Version: "1.0.0",
		},
		nil,
	)

	s := &Server{
		mcpServer: mcpServer,
		repo:      repo,
		foods:     foods,
		analyzer:  analyzer,
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}
