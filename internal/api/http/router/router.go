package router

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dtroode/ipo-auth/internal/api/http/handler"
	"github.com/dtroode/ipo-auth/internal/api/http/middleware"
	"github.com/dtroode/ipo-auth/internal/logger"
	"github.com/dtroode/ipo-auth/internal/model"
	"github.com/dtroode/ipo-auth/internal/service"
)

// maxBodySize caps request bodies; credential payloads are tiny.
const maxBodySize = "64K"

// Router wires the HTTP handlers and middleware into an echo instance.
type Router struct {
	authService    *service.Auth
	contextManager model.ContextManager
	validator      echo.Validator
	gatherer       prometheus.Gatherer
	pinger         handler.Pinger
	logger         *logger.Logger
}

// New creates an HTTP Router. gatherer and pinger may be nil; /metrics is
// then not served and /health checks nothing.
func New(
	authService *service.Auth,
	contextManager model.ContextManager,
	validator echo.Validator,
	gatherer prometheus.Gatherer,
	pinger handler.Pinger,
	logger *logger.Logger,
) *Router {
	return &Router{
		authService:    authService,
		contextManager: contextManager,
		validator:      validator,
		gatherer:       gatherer,
		pinger:         pinger,
		logger:         logger,
	}
}

// Register builds the echo instance with all routes.
func (r *Router) Register() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = r.validator
	e.HTTPErrorHandler = handler.ErrorHandler(r.logger)

	// Logging wraps Recover so panicked requests are logged with their 500.
	e.Use(
		middleware.NewLogging(r.logger).Handle,
		echomw.Recover(),
		echomw.RequestIDWithConfig(echomw.RequestIDConfig{Generator: uuid.NewString}),
		echomw.BodyLimit(maxBodySize),
	)

	auth := handler.NewAuth(r.authService, r.contextManager, r.logger)
	authenticate := middleware.NewAuthenticate(r.authService.Tokens(), r.contextManager, r.logger)

	e.POST("/signup", auth.Signup)
	e.POST("/login", auth.Login)
	e.GET("/me", auth.Me, authenticate.Handle)

	e.GET("/health", handler.NewHealth(r.pinger, r.logger).Check)
	if r.gatherer != nil {
		e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(r.gatherer, promhttp.HandlerOpts{})))
	}

	return e
}
