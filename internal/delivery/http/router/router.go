package router

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.uber.org/zap"

	"saraban-stamp/internal/config"
	"saraban-stamp/internal/delivery/http/handler"
	"saraban-stamp/internal/delivery/http/middleware"
	"saraban-stamp/internal/domain/entity"
)

// bodyLimit leaves room for base64 source documents and signature images.
const bodyLimit = 64 * 1024 * 1024

type Router struct {
	app           *fiber.App
	config        *config.Config
	logger        *zap.Logger
	renderHandler *handler.RenderHandler
	healthHandler *handler.HealthHandler
	logHandler    *handler.LogHandler
}

func NewRouter(
	cfg *config.Config,
	logger *zap.Logger,
	renderHandler *handler.RenderHandler,
	healthHandler *handler.HealthHandler,
	logHandler *handler.LogHandler,
) *Router {
	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    bodyLimit,
		ErrorHandler: customErrorHandler,
	})

	return &Router{
		app:           app,
		config:        cfg,
		logger:        logger,
		renderHandler: renderHandler,
		healthHandler: healthHandler,
		logHandler:    logHandler,
	}
}

func (r *Router) Setup() *fiber.App {
	// Middleware
	r.app.Use(recover.New())
	r.app.Use(requestid.New())
	r.app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))

	if r.config.IsDevelopment() {
		r.app.Use(logger.New(logger.Config{
			Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
		}))
	}

	// Health check route
	r.app.Get("/health", r.healthHandler.Health)

	// Log viewer route (HTML page)
	r.app.Get("/logs", r.logHandler.LogViewer)

	// API v1 routes
	api := r.app.Group("/api/v1", middleware.JWTAuth(r.config, r.logger))
	{
		documents := api.Group("/documents")
		{
			documents.Post("/receive-number", r.renderHandler.StampReceiveNumber)
			documents.Post("/command", r.renderHandler.StampCommand)
			documents.Post("/leave-form", r.renderHandler.ComposeLeaveForm)
			documents.Post("/leave-summary", r.renderHandler.ComposeLeaveSummary)
		}

		api.Get("/logs", r.logHandler.GetLogs)
	}

	return r.app
}

func (r *Router) GetApp() *fiber.App {
	return r.app
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}

	errorCode := entity.CodeInternalError
	switch code {
	case fiber.StatusBadRequest, fiber.StatusRequestEntityTooLarge, fiber.StatusNotFound, fiber.StatusMethodNotAllowed:
		errorCode = entity.CodeBadRequest
	case fiber.StatusUnauthorized:
		errorCode = entity.CodeUnauthorized
	}

	return c.Status(code).JSON(entity.NewErrorResponse(errorCode, err.Error()))
}
