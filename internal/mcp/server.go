package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/ziadkadry99/instructgen/internal/pipeline"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server that exposes the pipelines as tools.
type Server struct {
	runner   *pipeline.Runner
	registry *pipeline.Registry
	mcp      *server.MCPServer
}

// NewServer creates a new MCP server invoking pipelines from registry on runner.
func NewServer(runner *pipeline.Runner, registry *pipeline.Registry) *Server {
	s := &Server{
		runner:   runner,
		registry: registry,
	}

	s.mcp = server.NewMCPServer(
		"instructgen",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(listPipelinesTool, s.handleListPipelines)
	s.mcp.AddTool(generateRecordTool(s.registry.Names()), s.handleGenerateRecord)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
