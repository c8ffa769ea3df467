// Package mcpserver exposes flight status and analytics as MCP tools so
// AI agents can call them directly over stdio.
package mcpserver

import (
	"sync"

	"github.com/mark3labs/mcp-go/server"

	"github.com/skyrouteai/skyroute/internal/flightstatus"
	"github.com/skyrouteai/skyroute/internal/router"
	"github.com/skyrouteai/skyroute/internal/warehouse"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server exposing travel-question tools. The ask tool
// shares one conversation; the direct tools bypass memory entirely.
type Server struct {
	status    flightstatus.Lookup
	warehouse warehouse.Warehouse

	mu     sync.Mutex
	router *router.Router

	mcp *server.MCPServer
}

// NewServer creates an MCP server. rtr carries the conversation used by
// the ask tool; status and wh back the direct lookup tools and may be nil
// when unconfigured.
func NewServer(rtr *router.Router, status flightstatus.Lookup, wh warehouse.Warehouse) *Server {
	s := &Server{
		status:    status,
		warehouse: wh,
		router:    rtr,
	}

	s.mcp = server.NewMCPServer(
		"skyroute",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(askTool, s.handleAsk)
	s.mcp.AddTool(flightStatusTool, s.handleFlightStatus)
	s.mcp.AddTool(rankAirlinesTool, s.handleRankAirlines)
	s.mcp.AddTool(delaysByDayTool, s.handleDelaysByDay)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
