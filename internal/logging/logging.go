// Package logging builds the process logger and the echo request logger
// that writes through it.
package logging

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

// New returns a JSON production logger for env "prod" and a console
// development logger for everything else.  The result is also installed as
// the zap global so packages can use zap.S().
func New(env string) (*zap.Logger, error) {
	var (
		logger *zap.Logger
		err    error
	)
	if env == "prod" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(logger)
	return logger, nil
}

// RequestLogger emits one line per request.  Server errors log at error
// level, client errors at warn, everything else at info.
func RequestLogger(logger *zap.Logger) echo.MiddlewareFunc {
	log := logger.With(zap.String("module", "http"))
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency.Round(time.Microsecond)),
				zap.String("remote_ip", v.RemoteIP),
			}
			if v.RequestID != "" {
				fields = append(fields, zap.String("request_id", v.RequestID))
			}
			switch {
			case v.Status >= 500:
				log.Error("request", append(fields, zap.Error(v.Error))...)
			case v.Status >= 400:
				log.Warn("request", fields...)
			default:
				log.Info("request", fields...)
			}
			return nil
		},
	})
}

// Recover turns handler panics into errors.  It sits inside the request
// logger and metrics middleware and leaves the error unhandled, so the 500
// is logged and counted once upstream.  The stack goes to zap at debug.
func Recover(logger *zap.Logger) echo.MiddlewareFunc {
	log := logger.With(zap.String("module", "recover"))
	return middleware.RecoverWithConfig(middleware.RecoverConfig{
		DisableErrorHandler: true,
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			log.Debug("panic recovered", zap.Error(err), zap.ByteString("stack", stack))
			return err
		},
	})
}
