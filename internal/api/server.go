package api

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/saarthak-dev/medtimer/internal/config"
	"github.com/saarthak-dev/medtimer/internal/medicine"
)

// Server handles the HTTP API consumed by the dashboard UI.
type Server struct {
	app     *fiber.App
	config  *config.Config
	store   *medicine.Store
	logger  *zap.Logger
	limiter *rate.Limiter
}

// New creates a new API server around the given store.
func New(cfg *config.Config, store *medicine.Store, logger *zap.Logger) *Server {
	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  120 * time.Second,
	})

	s := &Server{
		app:    app,
		config: cfg,
		store:  store,
		logger: logger,
		// Mutations come from one human clicking buttons; anything faster
		// than this is a runaway client.
		limiter: rate.NewLimiter(rate.Limit(10), 20),
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.app.Use(recover.New())
	s.app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	s.app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(s.config.Security.AllowOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))
	s.app.Use(s.metricsMiddleware())

	s.app.Get("/api/health", s.handleHealth)
	s.app.Get("/api/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := s.app.Group("/api")

	// Public routes
	api.Post("/auth/login", s.handleLogin)

	// Protected routes
	protected := api.Use(s.authMiddleware())

	protected.Get("/medicines", s.handleListMedicines)
	protected.Post("/medicines", s.rateLimit, s.handleAddMedicine)
	protected.Put("/medicines/:id", s.rateLimit, s.handleEditMedicine)
	protected.Delete("/medicines/:id", s.rateLimit, s.handleDeleteMedicine)
	protected.Post("/medicines/:id/take", s.rateLimit, s.handleMarkTaken)

	protected.Get("/stats", s.handleStats)

	protected.Get("/export/csv", s.handleExportCSV)
	protected.Get("/export/pdf", s.handleExportPDF)
}

// App exposes the fiber app, for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Start starts the server
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.Address, s.config.Server.Port)
	s.logger.Info("API server listening", zap.String("addr", addr))
	return s.app.Listen(addr)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.app.ShutdownWithContext(ctx)
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "healthy",
		"version":   "0.1.0",
		"timestamp": time.Now().Unix(),
	})
}
