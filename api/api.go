// Package api serves the built rulesets and build reports over HTTP.
package api

import (
	"context"
	"errors"
	"net"

	"github.com/MoeYc/Surge/build"
	"github.com/gofiber/contrib/fiberzap"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"go.uber.org/zap"
)

// Config stores the configuration for the API server.
type Config struct {
	// Enabled controls whether the API server is enabled.
	Enabled bool `json:"enabled"`

	// Listen is the address to listen on.
	Listen string `json:"listen"`

	// DebugPprof enables pprof endpoints for debugging and profiling.
	DebugPprof bool `json:"debugPprof"`
}

// NewServer returns a new API server from the config, serving the ruleset
// files under rulesetDir and the builder's reports.
func (c *Config) NewServer(logger *zap.Logger, builder *build.Builder, rulesetDir string) (*Server, error) {
	if c.Listen == "" {
		return nil, errors.New("no listen address specified")
	}

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	app.Use(fiberzap.New(fiberzap.Config{
		Logger: logger,
	}))

	if c.DebugPprof {
		app.Use(pprof.New())
	}

	app.Get("/report", func(fc *fiber.Ctx) error {
		report := builder.LastReport()
		if report == nil {
			return fc.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"error": "no build has completed yet",
			})
		}
		return fc.JSON(report)
	})

	app.Static("/rulesets", rulesetDir, fiber.Static{
		Browse: true,
	})

	return &Server{
		logger:  logger,
		app:     app,
		address: c.Listen,
	}, nil
}

// Server is the API server.
//
// Server implements [surge.Service].
type Server struct {
	logger  *zap.Logger
	app     *fiber.App
	address string
}

// ZapField implements [surge.Service.ZapField].
func (s *Server) ZapField() zap.Field {
	return zap.String("service", "API server")
}

// Start implements [surge.Service.Start].
func (s *Server) Start(ctx context.Context) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", s.address)
	if err != nil {
		return err
	}

	go func() {
		if err := s.app.Listener(ln); err != nil {
			s.logger.Error("Failed to serve API", zap.Error(err))
		}
	}()

	s.logger.Info("Started API server", zap.Stringer("listenAddress", ln.Addr()))
	return nil
}

// Stop implements [surge.Service.Stop].
func (s *Server) Stop() error {
	return s.app.Shutdown()
}
