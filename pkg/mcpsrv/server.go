package mcpsrv

import (
	"context"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/shapegen/internal/cache"
	"github.com/usestring/shapegen/internal/config"
	"github.com/usestring/shapegen/internal/logging"
	"github.com/usestring/shapegen/internal/mcp"
	"github.com/usestring/shapegen/internal/mcp/tools"
)

// Server is the shapegen MCP server.
// It wraps the internal implementation and provides extension points.
type Server struct {
	internal   *mcp.Server
	deps       *Deps
	logCleanup func() error
}

// NewServer creates a new MCP server with builtin shapegen tools.
//
// Configuration is read from the environment and then overridden by opts.
func NewServer(opts ...Option) (*Server, error) {
	envCfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	cfg := &serverConfig{config: envCfg}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.cacheSize > 0 {
		cfg.config.ShapeCacheMaxItems = cfg.cacheSize
	}
	if cfg.outputMode != "" {
		cfg.config.DefaultOutputMode = cfg.outputMode
	}
	if err := cfg.config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	logCfg := cfg.config.Logging()
	if cfg.logLevel != "" {
		logCfg.Level = cfg.logLevel
	}
	if cfg.logFile != "" {
		logCfg.FilePath = cfg.logFile
	}
	logCleanup, err := logging.Setup(logCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to setup logging: %w", err)
	}

	shapeCache, err := cache.NewShapeCache(cfg.config.ShapeCacheMaxItems)
	if err != nil {
		return nil, fmt.Errorf("failed to create shape cache: %w", err)
	}

	toolDeps := &tools.Deps{
		Config: cfg.config,
		Cache:  shapeCache,
	}
	deps := &Deps{
		Config: cfg.config,
		Cache:  shapeCache,
		tools:  toolDeps,
	}

	var internalOpts []mcp.ServerOption
	if !cfg.disableBuiltinTools {
		internalOpts = append(internalOpts, mcp.WithBuiltinTools())
	}
	if !cfg.disableBuiltinPrompts {
		internalOpts = append(internalOpts, mcp.WithBuiltinPrompts())
	}
	for _, fn := range cfg.toolRegistrations {
		internalOpts = append(internalOpts, mcp.WithCustomRegistration(fn))
	}
	for _, fn := range cfg.promptRegistrations {
		internalOpts = append(internalOpts, mcp.WithCustomRegistration(fn))
	}
	for _, fn := range cfg.resourceRegistrations {
		internalOpts = append(internalOpts, mcp.WithCustomRegistration(fn))
	}
	for _, fn := range cfg.deferredToolRegistrations {
		internalOpts = append(internalOpts, mcp.WithCustomRegistration(func(srv *sdkmcp.Server) {
			fn(srv, deps)
		}))
	}

	internal, err := mcp.NewServer(toolDeps, internalOpts...)
	if err != nil {
		_ = logCleanup()
		return nil, fmt.Errorf("failed to create server: %w", err)
	}

	return &Server{
		internal:   internal,
		deps:       deps,
		logCleanup: logCleanup,
	}, nil
}

// Run starts the MCP server with stdio transport.
// The server runs until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.internal.Run(ctx)
}

// Close cleans up server resources.
func (s *Server) Close() error {
	if s.logCleanup != nil {
		return s.logCleanup()
	}
	return nil
}

// Deps returns the dependencies for building custom tools.
func (s *Server) Deps() *Deps {
	return s.deps
}
