package router // package router defines how HTTP routes are registered for the service

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/iliyamo/greeting-service/internal/handler"
	"github.com/iliyamo/greeting-service/internal/logging"
	"github.com/iliyamo/greeting-service/internal/metrics"
)

// Options carries everything New needs to assemble the server.  Nil fields
// are replaced with no-op defaults.
type Options struct {
	Logger    *zap.Logger
	Metrics   *metrics.Metrics
	Ready     *handler.ReadyHandler
	RateLimit echo.MiddlewareFunc
}

// New builds a fully wired Echo instance: request logging, metrics and
// panic recovery on every route, the public routes and the operational
// routes.  Recovery is innermost so panics still reach the logger and the
// request counter.
func New(opts Options) *echo.Echo {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Metrics == nil {
		opts.Metrics = metrics.New()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(echomw.RequestID())
	e.Use(logging.RequestLogger(opts.Logger))
	e.Use(opts.Metrics.Middleware())
	e.Use(logging.Recover(opts.Logger))

	var greetingMW []echo.MiddlewareFunc
	if opts.RateLimit != nil {
		greetingMW = append(greetingMW, opts.RateLimit)
	}
	RegisterRoutes(e, greetingMW...)
	RegisterOps(e, opts.Ready, opts.Metrics)
	return e
}

// RegisterRoutes registers the public routes.  Middleware passed in wraps
// only the greeting; the liveness probe must answer even when a limiter
// would refuse.
func RegisterRoutes(e *echo.Echo, greetingMW ...echo.MiddlewareFunc) {
	e.GET("/", handler.Home, greetingMW...)
	// Liveness for load balancers and orchestrators.
	e.GET("/health", handler.Health)
}

// RegisterOps registers readiness and metrics.  A nil ReadyHandler skips
// /ready.
func RegisterOps(e *echo.Echo, r *handler.ReadyHandler, m *metrics.Metrics) {
	if r != nil {
		e.GET("/ready", r.Ready)
	}
	e.GET("/metrics", m.Handler())
}
