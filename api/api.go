package api

import (
	"log/slog"
	"net/http"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"

	"github.com/papercomputeco/engram/pkg/eventstream"
	"github.com/papercomputeco/engram/pkg/memory"
)

// Server is the API server for driving and querying a memory registry.
type Server struct {
	config    Config
	registry  *lockedRegistry
	publisher eventstream.Publisher
	logger    *slog.Logger
	app       *fiber.App
}

// NewServer creates a new API server around the given registry.
// The publisher receives an operation event after every successful mutation;
// pass a nop publisher to disable event streaming.
func NewServer(config Config, registry *memory.Registry[int], publisher eventstream.Publisher, logger *slog.Logger) *Server {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	s := &Server{
		config:    config,
		registry:  newLockedRegistry(registry),
		publisher: publisher,
		logger:    logger,
		app:       app,
	}

	app.Get("/ping", s.handlePing)
	app.Get("/clones", s.handleCount)
	app.Get("/clones/:number/check", s.handleCheck)
	app.Post("/clones/:number/learn", s.handleLearn)
	app.Post("/clones/:number/rollback", s.handleRollback)
	app.Post("/clones/:number/relearn", s.handleRelearn)
	app.Post("/clones/:number/clone", s.handleClone)

	return s
}

// Registry returns the locked registry view shared with other surfaces
// (e.g. the MCP server), so every caller goes through the same
// mutual-exclusion boundary.
func (s *Server) Registry() Registry {
	return s.registry
}

// MountMCP mounts an MCP streamable HTTP handler under /mcp.
func (s *Server) MountMCP(handler http.Handler) {
	s.app.All("/mcp", adaptor.HTTPHandler(handler))
}

// Run starts the API server on the configured address.
func (s *Server) Run() error {
	s.logger.Info("starting API server",
		slog.String("listen", s.config.ListenAddr),
	)
	return s.app.Listen(s.config.ListenAddr)
}

// Shutdown gracefully shuts down the API server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
