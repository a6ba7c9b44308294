package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/ziadkadry99/packdocs/internal/catalog"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server that exposes catalog search tools.
type Server struct {
	cat   *catalog.Catalog
	index *catalog.Index
	mcp   *server.MCPServer
}

// NewServer creates a new MCP server answering from cat.
func NewServer(cat *catalog.Catalog) *Server {
	s := &Server{
		cat:   cat,
		index: catalog.NewIndex(cat),
	}

	s.mcp = server.NewMCPServer(
		"packdocs",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(searchCatalogTool, s.handleSearchCatalog)
	s.mcp.AddTool(getPackTool, s.handleGetPack)
	s.mcp.AddTool(getMCPServerTool, s.handleGetMCPServer)
	s.mcp.AddTool(catalogStatsTool, s.handleCatalogStats)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
