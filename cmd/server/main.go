package main // Entry point package

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/iliyamo/greeting-service/internal/config"
	"github.com/iliyamo/greeting-service/internal/database"
	"github.com/iliyamo/greeting-service/internal/handler"
	"github.com/iliyamo/greeting-service/internal/logging"
	"github.com/iliyamo/greeting-service/internal/middleware"
	"github.com/iliyamo/greeting-service/internal/readiness"
	"github.com/iliyamo/greeting-service/internal/router"
)

func main() {
	cfg := config.Load()
	logger, err := logging.New(cfg.Env)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger setup failed: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()
	log := logger.Sugar().With("module", "main")

	// Optional backends; each one only feeds /ready (and Redis the limiter).
	var checks []readiness.Checker
	rdb := config.NewRedisClient()
	if rdb != nil {
		defer rdb.Close()
		checks = append(checks, readiness.Redis(rdb))
		log.Infow("redis configured", "addr", config.RedisAddr())
	}
	if cfg.DB.Enabled() {
		db, err := database.Open(cfg.DB)
		if err != nil {
			log.Fatalw("database setup failed", "error", err)
		}
		defer db.Close()
		checks = append(checks, readiness.SQL("mysql", db))
		log.Infow("mysql configured", "host", cfg.DB.Host, "port", cfg.DB.Port)
	}

	e := router.New(router.Options{
		Logger:    logger,
		Ready:     handler.NewReadyHandler(readiness.NewProbe(cfg.ReadyTimeout, checks...)),
		RateLimit: middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb),
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Infow("listening", "addr", cfg.Addr(), "env", cfg.Env)
		errCh <- e.Start(cfg.Addr())
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("server failed", "error", err)
		}
	case <-ctx.Done():
		log.Infow("shutting down", "timeout", cfg.ShutdownTimeout)
		sctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := e.Shutdown(sctx); err != nil {
			log.Errorw("forced shutdown", "error", err)
		}
	}
}
