// cmd/movielinks-server/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"movielinks/internal/adapters/httpapi"
	"movielinks/internal/app"
	"movielinks/internal/platform/config"
	"movielinks/internal/platform/logx"
	"movielinks/internal/platform/rate"
)

var (
	// Set with -ldflags at build time
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg, err := config.Load(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: configuration load failed: %v\n", err)
		return 2
	}
	if cfg.ShowHelp {
		config.PrintHelp()
		return 0
	}
	if cfg.PrintVersion {
		config.PrintVersion("movielinks-server", version, commit, date)
		return 0
	}

	logger := logx.NewWithLevel(logx.ParseLevel(cfg.Log.Level))
	logger.Info("movielinks-server starting",
		"version", version,
		"commit", commit,
		"addr", cfg.Server.Addr,
		"workers", cfg.Probe.Workers,
		"identity_reload", string(cfg.Identity.Reload),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// A missing template file serves empty results; a malformed one is fatal.
	a, err := app.Build(cfg, logger, app.Options{AllowMissingTemplates: true})
	if err != nil {
		logger.Err(err, "phase", "build")
		return 1
	}
	defer a.Close()
	a.StartBackground(ctx)

	var limiter *rate.KeyedLimiter
	if cfg.Server.RateLimit > 0 {
		limiter = rate.NewKeyed(cfg.Server.RateLimit, cfg.Server.RateBurst, rate.DefaultIdle)
		limiter.StartSweeper(ctx, time.Minute)
	}

	handler := httpapi.SetupRoutes(httpapi.NewHandler(a.Search, logger), httpapi.RouterOptions{
		CORSOrigins: cfg.Server.CORSOrigins,
		Limiter:     limiter,
		Logger:      logger,
	})

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           handler,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       2 * cfg.Server.WriteTimeout,
	}

	return serve(ctx, srv, cfg.Server.ShutdownTimeout, logger)
}

// serve runs srv until ctx is cancelled, then drains in-flight requests.
func serve(ctx context.Context, srv *http.Server, shutdownTimeout time.Duration, logger logx.Logger) int {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Err(err, "phase", "listen")
			return 1
		}
		return 0
	case <-ctx.Done():
	}

	logger.Info("shutting down", "timeout", shutdownTimeout.String())
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Err(err, "phase", "shutdown")
		return 1
	}
	logger.Info("server stopped")
	return 0
}
