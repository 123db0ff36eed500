package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"

	"github.com/planinfo-service/internal/config"
	"github.com/planinfo-service/internal/delivery/http/handler"
	"github.com/planinfo-service/internal/delivery/http/middleware"
	"github.com/planinfo-service/internal/pkg/errors"
	"github.com/planinfo-service/internal/pkg/metrics"
	"github.com/planinfo-service/internal/pkg/utils"
)

// Handlers groups the HTTP handlers mounted by the server
type Handlers struct {
	Plan  *handler.PlanHandler
	User  *handler.UserHandler
	Stats *handler.StatsHandler
	Map   *handler.MapHandler
}

// Server - fiber based HTTP server
type Server struct {
	app      *fiber.App
	config   *config.Config
	logger   *zap.Logger
	handlers Handlers
}

func NewServer(cfg *config.Config, logger *zap.Logger, handlers Handlers) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "Planinfo Service",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:      app,
		config:   cfg,
		logger:   logger,
		handlers: handlers,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery(s.logger))
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(metrics.Middleware())
	s.app.Use(middleware.CORS(s.config.CORS.AllowOrigins))
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

func (s *Server) setupRoutes() {
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)
	s.app.Get("/metrics", metrics.Handler())

	api := s.app.Group("/api/v1")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// Plans
	api.Get("/plans/lookup", s.handlers.Plan.Lookup)
	api.Post("/plans/lookup", s.handlers.Plan.LookupPOST)
	api.Post("/batch/plans/lookup", s.handlers.Plan.BatchLookup)
	api.Get("/plans/search", s.handlers.Plan.Search)
	api.Get("/plans/regions", s.handlers.Plan.Regions)

	api.Get("/map/config", s.handlers.Map.GetConfig)
	api.Get("/stats", s.handlers.Stats.GetStatistics)

	// Users keep their unversioned paths
	users := s.app.Group("/api/users")
	users.Get("/", s.handlers.User.List)
	users.Post("/", s.handlers.User.Create)
	users.Get("/:id", s.handlers.User.Get)
	users.Put("/:id", s.handlers.User.Update)
	users.Delete("/:id", s.handlers.User.Delete)
}

// App exposes the fiber app for tests
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// customErrorHandler renders errors that escaped the handlers (routing, body limits)
func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		if e, ok := err.(*fiber.Error); ok {
			appErr := errors.New(errorCodeForStatus(e.Code), e.Message, e.Code)
			return c.Status(e.Code).JSON(utils.ErrorResponse{Error: appErr})
		}

		logger.Error("Unhandled HTTP error",
			zap.String("path", c.Path()),
			zap.Error(err),
		)

		return utils.SendError(c, err)
	}
}

func errorCodeForStatus(status int) string {
	switch status {
	case fiber.StatusNotFound:
		return "NOT_FOUND"
	case fiber.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case fiber.StatusRequestEntityTooLarge:
		return "REQUEST_TOO_LARGE"
	case fiber.StatusBadRequest:
		return errors.ErrInvalidRequest.Code
	default:
		return errors.ErrInternalServer.Code
	}
}
