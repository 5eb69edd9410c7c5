// Package mcp provides an MCP (Model Context Protocol) server for the
// engram system, exposing the five memory verbs as tools.
package mcp

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/papercomputeco/engram/pkg/utils"
)

// Registry is the locked registry view the tools operate on. It is shared
// with the HTTP API so both surfaces go through the same mutual-exclusion
// boundary.
type Registry interface {
	Learn(number, value int) error
	Rollback(number int) error
	Relearn(number int) error
	Check(number int) (string, error)
	Clone(number int) (int, error)
	Count() int
}

type Config struct {
	// Registry is the locked memory registry the tools drive.
	Registry Registry

	// Logger is the configured slog logger
	Logger *slog.Logger
}

type Server struct {
	config    Config
	mcpServer *mcp.Server
	handler   *mcp.StreamableHTTPHandler
}

// NewServer creates a new MCP server with the memory verb tools.
func NewServer(c Config) (*Server, error) {
	if c.Registry == nil {
		return nil, errors.New("registry is required")
	}
	if c.Logger == nil {
		return nil, errors.New("logger is required")
	}

	s := &Server{
		config: c,
	}

	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "engram",
			Version: utils.Version,
		},
		&mcp.ServerOptions{},
	)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        learnToolName,
		Description: learnDescription,
	}, s.handleLearn)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        rollbackToolName,
		Description: rollbackDescription,
	}, s.handleRollback)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        relearnToolName,
		Description: relearnDescription,
	}, s.handleRelearn)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        cloneToolName,
		Description: cloneDescription,
	}, s.handleClone)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        checkToolName,
		Description: checkDescription,
	}, s.handleCheck)

	s.mcpServer = mcpServer

	// Create a streamable HTTP net/http handler for stateless operations
	s.handler = mcp.NewStreamableHTTPHandler(
		func(_ *http.Request) *mcp.Server {
			return mcpServer
		},
		&mcp.StreamableHTTPOptions{
			Stateless: true,
		},
	)

	return s, nil
}

// Handler returns the HTTP handler for the MCP server.
func (s *Server) Handler() http.Handler {
	return s.handler
}
