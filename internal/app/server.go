package app

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/tutorhub/tutorhub/internal/controller/handlers"
)

// Server wraps the fiber app.
type Server struct {
	app    *fiber.App
	addr   string
	logger *zap.Logger
}

// NewServer builds the app, mounts the routes and a health probe.
func NewServer(addr string, h *handlers.Handlers, logger *zap.Logger) *Server {
	app := fiber.New(fiber.Config{
		AppName:               "tutorhub",
		DisableStartupMessage: true,
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	h.Register(app)

	return &Server{app: app, addr: addr, logger: logger}
}

// Start blocks serving requests until Shutdown.
func (s *Server) Start() error {
	s.logger.Info("HTTP server listening", zap.String("addr", s.addr))
	return s.app.Listen(s.addr)
}

// Shutdown drains in-flight requests and stops the listener.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
