package main

import (
	"context"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"

	"github.com/Sternrassler/academy-cache/internal/catalog"
	"github.com/Sternrassler/academy-cache/internal/config"
	"github.com/Sternrassler/academy-cache/internal/server"
	"github.com/Sternrassler/academy-cache/pkg/cache"
	"github.com/Sternrassler/academy-cache/pkg/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fallback := logging.Setup(logging.DefaultConfig())
		fallback.Fatal().Err(err).Msg("Invalid configuration")
	}
	logger := logging.Setup(cfg.Logging())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal().Err(err).Msg("Server failed")
	}
}

func run(ctx context.Context, cfg *config.Config, logger zerolog.Logger) error {
	store := newStore(ctx, cfg, logger)
	defer func() {
		if err := store.Close(); err != nil {
			logger.Warn().Err(err).Msg("Failed to close cache store")
		}
	}()

	cat := catalog.New(nil)
	catalog.Seed(cat)

	srv, err := server.New(server.Options{
		Catalog: cat,
		Store:   store,
		Logger:  logger,
	})
	if err != nil {
		return errors.Wrap(err, "build server")
	}

	ln, err := net.Listen("tcp", ":"+strconv.Itoa(cfg.Port))
	if err != nil {
		return errors.Wrap(err, "listen")
	}
	logger.Info().Str("addr", ln.Addr().String()).Msg("Starting academy API")

	return serve(ctx, ln, srv, cfg.ShutdownTimeout, logger)
}

// newStore returns the secondary store. Missing or invalid settings and an
// unreachable backend never stop startup; the store stays fail-open.
func newStore(ctx context.Context, cfg *config.Config, logger zerolog.Logger) *cache.Store {
	if !cfg.CacheActive() {
		logger.Info().Msg("Cache store disabled")
		return cache.Disabled()
	}

	backend, err := cache.NewRedisBackend(cfg.Cache.URL, cfg.Cache.Token)
	if err != nil {
		logger.Warn().Err(err).Msg("Invalid cache store URL, cache store disabled")
		return cache.Disabled()
	}

	store := cache.New(backend, cfg.StoreOptions(), logger)
	if err := store.Init(ctx); err != nil {
		logger.Warn().Err(err).Msg("Cache store unreachable at startup, continuing fail-open")
	} else {
		logger.Info().Str("prefix", cfg.Cache.Prefix).Msg("Cache store connected")
	}
	return store
}

// serve runs the HTTP server until ctx is cancelled, then drains in-flight
// requests for up to shutdownTimeout.
func serve(ctx context.Context, ln net.Listener, h http.Handler, shutdownTimeout time.Duration, logger zerolog.Logger) error {
	httpServer := &http.Server{
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Wrap(err, "serve")
	case <-ctx.Done():
	}

	logger.Info().Msg("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "shutdown")
	}
	logger.Info().Msg("Server stopped")
	return nil
}
