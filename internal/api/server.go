// Package api serves the SteelBuild REST and GraphQL endpoints over fiber.
package api

import (
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/steelbuild/internal/api/graph"
	"github.com/alexanderramin/steelbuild/internal/app"
	"github.com/alexanderramin/steelbuild/internal/domain"
	"github.com/alexanderramin/steelbuild/internal/metrics"
	"github.com/alexanderramin/steelbuild/internal/report"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	fiberrecover "github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

type Options struct {
	Logger  *zap.Logger
	Metrics *metrics.Metrics
	// AccessLog enables the fiber request logger.
	AccessLog bool
}

// NewApp creates the fiber app with every route mounted.
func NewApp(svc *app.Services, opts Options) (*fiber.App, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	schema, err := graph.CreateSchema(graph.Resolvers{
		Utilization: svc.Utilization,
		Reports:     svc.Reports,
	})
	if err != nil {
		return nil, fmt.Errorf("creating GraphQL schema: %w", err)
	}

	a := fiber.New(fiber.Config{
		AppName:               "steelbuild API",
		BodyLimit:             10 * 1024 * 1024,
		ReadTimeout:           60 * time.Second,
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler(log),
	})

	a.Use(fiberrecover.New())
	a.Use(compress.New(compress.Config{Level: compress.LevelBestSpeed}))
	a.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))
	if opts.AccessLog {
		a.Use(logger.New())
	}
	if opts.Metrics != nil {
		a.Use(metricsMiddleware(opts.Metrics))
		a.Get("/metrics", adaptor.HTTPHandler(opts.Metrics.Handler()))
	}

	a.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "healthy"})
	})

	setupRoutes(a, svc)
	a.Post("/graphql", GraphQLHandler(schema, log))

	return a, nil
}

func setupRoutes(a *fiber.App, svc *app.Services) {
	api := a.Group("/api")

	api.Get("/auth/me", me(svc))

	projects := api.Group("/projects")
	projects.Get("/", listProjects(svc))
	projects.Post("/", createProject(svc))
	projects.Get("/:id", getProject(svc))
	projects.Put("/:id", updateProject(svc))
	projects.Delete("/:id", deleteProject(svc))

	tasks := api.Group("/tasks")
	tasks.Get("/", listTasks(svc))
	tasks.Post("/", createTask(svc))
	tasks.Put("/:id", updateTask(svc))
	tasks.Delete("/:id", deleteTask(svc))

	resources := api.Group("/resources")
	resources.Get("/utilization", utilization(svc))
	resources.Get("/", listResources(svc))
	resources.Post("/", createResource(svc))
	resources.Delete("/:id", deleteResource(svc))

	allocations := api.Group("/allocations")
	allocations.Get("/", listAllocations(svc))
	allocations.Post("/", createAllocation(svc))

	api.Get("/notifications", listNotifications(svc))

	reports := api.Group("/reports")
	reports.Get("/metrics", listMetrics(svc))
	reports.Get("/run", runReport(svc))
	reports.Get("/export", exportReport(svc))

	api.Get("/preferences/dashboard", getDashboard(svc))
	api.Put("/preferences/dashboard", setDashboard(svc))

	api.Post("/functions/:name", invokeFunction(svc))
}

// errorHandler maps service errors onto status codes with an {error} body.
func errorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := statusFor(err)
		if code >= fiber.StatusInternalServerError {
			log.Error("request failed",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.Error(err))
		}
		return c.Status(code).JSON(fiber.Map{"error": err.Error()})
	}
}

func statusFor(err error) int {
	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		return fe.Code
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrValidation), errors.Is(err, report.ErrUnknownMetric):
		return fiber.StatusBadRequest
	}
	return fiber.StatusInternalServerError
}

func metricsMiddleware(m *metrics.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		if err != nil {
			status = statusFor(err)
		}
		m.ObserveHTTP(c.Method(), c.Route().Path, status, time.Since(start))
		return err
	}
}
