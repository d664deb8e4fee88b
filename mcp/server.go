package mcp

import (
	"context"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/hollis/fabula/types"
)

// Server wraps an MCP server bound to one game definition.
type Server struct {
	server   *sdk.Server
	sessions *SessionManager
}

// NewServer builds an MCP server for the definition with all game tools
// registered.
func NewServer(def *types.GameDefinition, cfg Config) (*Server, error) {
	sessions, err := NewSessionManager(def, cfg.SessionTTL)
	if err != nil {
		return nil, err
	}

	server := sdk.NewServer(&sdk.Implementation{
		Name:    cfg.Name,
		Version: cfg.Version,
	}, nil)
	RegisterTools(server, sessions)

	return &Server{server: server, sessions: sessions}, nil
}

// Sessions exposes the session manager.
func (s *Server) Sessions() *SessionManager { return s.sessions }

// Run serves MCP over stdio until the context is canceled or the client
// disconnects.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &sdk.StdioTransport{})
}
