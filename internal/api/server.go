package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"visaslots/internal/config"
	"visaslots/internal/metrics"
	"visaslots/web"
)

// Server represents the HTTP server with all configured routes and middleware.
type Server struct {
	app    *fiber.App
	config *config.ServerConfig
	logger *slog.Logger

	alertHandler *AlertHandler
}

// ServerDeps contains all dependencies required to create a new Server.
type ServerDeps struct {
	Config       *config.ServerConfig
	Development  bool
	Logger       *slog.Logger
	AlertHandler *AlertHandler
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(deps ServerDeps) *Server {
	app := fiber.New(fiber.Config{
		// Disable startup message for cleaner logs
		DisableStartupMessage: true,
		// Read timeout from config
		ReadTimeout: deps.Config.ReadTimeout,
		// Write timeout from config
		WriteTimeout: deps.Config.WriteTimeout,
		// Idle timeout from config
		IdleTimeout: deps.Config.IdleTimeout,
		// Custom error handler
		ErrorHandler: newErrorHandler(deps.Development),
	})

	s := &Server{
		app:          app,
		config:       deps.Config,
		logger:       deps.Logger,
		alertHandler: deps.AlertHandler,
	}

	s.registerMiddleware()
	s.registerRoutes()

	return s
}

// registerMiddleware sets up all middleware for the server.
func (s *Server) registerMiddleware() {
	// Recovery middleware to handle panics
	s.app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
	}))

	// Request ID middleware for tracing
	s.app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))

	// The browser UI may be served from another origin in development.
	s.app.Use(cors.New())

	// Logger middleware for request logging
	s.app.Use(logger.New(logger.Config{
		Format:     "${time} | ${status} | ${latency} | ${method} | ${path} | ${error}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	// Prometheus request metrics
	s.app.Use(requestMetrics)
}

// registerRoutes sets up all API routes.
func (s *Server) registerRoutes() {
	// Health check endpoint
	s.app.Get("/health", s.healthCheck)

	// Prometheus metrics endpoint
	s.app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Alert CRUD
	s.app.Get("/alerts", s.alertHandler.List)
	s.app.Post("/alerts", s.alertHandler.Create)
	s.app.Put("/alerts/:id", s.alertHandler.Update)
	s.app.Delete("/alerts/:id", s.alertHandler.Delete)

	// Embedded browser UI
	s.app.Use("/", filesystem.New(filesystem.Config{
		Root:  http.FS(web.Static()),
		Index: "index.html",
	}))

	// Any unmatched route
	s.app.Use(func(c *fiber.Ctx) error {
		return Fail(c, fiber.StatusNotFound, "Route not found")
	})
}

// healthCheck returns the liveness status of the service.
func (s *Server) healthCheck(c *fiber.Ctx) error {
	return c.JSON(HealthResponse{
		Status:    "OK",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// App exposes the underlying Fiber app for in-process testing.
func (s *Server) App() *fiber.App {
	return s.app
}

// Start begins listening for HTTP requests.
func (s *Server) Start() error {
	addr := s.config.Address()
	s.logger.Info("starting HTTP server", "address", addr)
	return s.app.Listen(addr)
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// requestMetrics records Prometheus counters and latency per request.
func requestMetrics(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()

	path := c.Route().Path
	metrics.RequestsTotal.WithLabelValues(
		c.Method(), path, strconv.Itoa(c.Response().StatusCode()),
	).Inc()
	metrics.RequestDuration.WithLabelValues(c.Method(), path).
		Observe(time.Since(start).Seconds())

	return err
}

// newErrorHandler builds the handler for errors that escape the routes.
// Internal detail is only exposed in development mode.
func newErrorHandler(development bool) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var e *fiber.Error
		if errors.As(err, &e) && e.Code != fiber.StatusInternalServerError {
			return Fail(c, e.Code, e.Message)
		}

		resp := ErrorResponse{Error: "Internal server error"}
		if development {
			resp.Message = err.Error()
		}
		return c.Status(fiber.StatusInternalServerError).JSON(resp)
	}
}
