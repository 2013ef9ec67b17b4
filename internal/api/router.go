package api

import (
	"strings"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/communiteq/time-registration/docs"
	"github.com/communiteq/time-registration/internal/api/handler"
	"github.com/communiteq/time-registration/internal/api/middleware"
	"github.com/communiteq/time-registration/internal/core/ports"
	"github.com/communiteq/time-registration/internal/infrastructure/http/handlers"
)

// RouterDeps bundles everything the HTTP layer needs.
type RouterDeps struct {
	Timers    ports.TimerService
	Reports   ports.ReportService
	Directory ports.PlatformDirectory
	Authz     ports.Authorizer

	// Readiness lists the backing services checked by /health/ready.
	Readiness []handlers.Dependency

	JWTSecret string
	Logger    zerolog.Logger
	Reporter  ErrorReporter

	// Registerer receives the HTTP metrics; nil means the default registry.
	Registerer prometheus.Registerer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps RouterDeps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger, deps.Reporter)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "time_registration",
		Subsystem:  "http",
		Skipper:    skipOperational,
		Registerer: deps.Registerer,
	}))

	// --- Health probes, metrics and docs (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(deps.Readiness...)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Time registration ---
	timerHandler := handler.NewTimerHandler(deps.Timers)
	reportHandler := handler.NewReportHandler(deps.Reports)

	tr := e.Group("/time-registration", middleware.Auth(deps.JWTSecret))
	tr.POST("/toggle", timerHandler.Toggle)
	tr.POST("/stop", timerHandler.Stop)
	tr.GET("/active", timerHandler.Active)
	tr.PUT("/entries/:id", timerHandler.EditEntry)
	tr.GET("/report", reportHandler.Report, middleware.RequireTimeTracking(deps.Directory, deps.Authz))

	return e
}

func skipOperational(c echo.Context) bool {
	p := c.Path()
	return p == "/metrics" || strings.HasPrefix(p, "/health") || strings.HasPrefix(p, "/swagger")
}

// requestLogger writes one zerolog line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		Skipper:      skipOperational,
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("request_id", v.RequestID).
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Msg("request")
			return nil
		},
	})
}
