package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/covidstats/internal/logger"
)

const (
	// Name identifies the server to MCP clients.
	Name = "covidstats"

	// Version is the MCP server version.
	Version = "0.1.0"
)

// instructions tells the client what the tools answer and how dates and
// datasets are named.
const instructions = `Daily COVID-19 statistics for Slovenia.
Two datasets: "stats" (national, raw CSV values) and "hospitals" (per-hospital
counts coerced to numbers). Dates are YYYY-MM-DD. get_last_value returns the
newest present value; zero hospital counts are treated as missing. Resolve
hospital codes with hospital_name. Datasets are downloaded on first use.`

// Server exposes the dataset queries and locale formatting as MCP tools.
type Server struct {
	ports  *Ports
	server *mcp.Server
}

// NewServer validates ports and registers the tools.
func NewServer(ports *Ports) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}

	s := &Server{
		ports: ports,
		server: mcp.NewServer(
			&mcp.Implementation{Name: Name, Version: Version},
			&mcp.ServerOptions{Instructions: instructions},
		),
	}
	s.registerTools()
	return s, nil
}

// Run serves over stdio until ctx is done or the client disconnects.
func (s *Server) Run(ctx context.Context) error {
	return s.Serve(ctx, &mcp.StdioTransport{})
}

// Serve serves a single session over t.
func (s *Server) Serve(ctx context.Context, t mcp.Transport) error {
	logger.Debug("mcp: serving %s %s (stats loaded: %t, hospitals loaded: %t)",
		Name, Version, s.ports.Stats.Loaded(), s.ports.Hospitals.Loaded())
	return s.server.Run(ctx, t)
}
