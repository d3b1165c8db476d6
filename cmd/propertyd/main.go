// Command propertyd serves the measurement correctness API: unit
// conversion, localized formatting and water property lookups over
// HTTP, with health, readiness and Prometheus metrics endpoints.
//
// Configuration is read from the environment; see internal/config.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/spardeck/marine-measure/internal/adapter/http"
	"github.com/spardeck/marine-measure/internal/anchorstore"
	"github.com/spardeck/marine-measure/internal/config"
	"github.com/spardeck/marine-measure/internal/observability"
	"github.com/spardeck/marine-measure/internal/units"
	"github.com/spardeck/marine-measure/internal/water"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Pick the anchor point store (ANCHOR_STORE: memory or postgres).
	var source water.AnchorSource
	switch cfg.AnchorStore {
	case config.StorePostgres:
		store, err := anchorstore.NewPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Error("failed to connect to anchor store", "error", err)
			os.Exit(1)
		}
		defer store.Close()
		if err := store.EnsureSchema(ctx); err != nil {
			logger.Error("failed to ensure anchor store schema", "error", err)
			os.Exit(1)
		}
		source = anchorstore.NewCached(store, cfg.AnchorCacheTTL)
		logger.Info("postgres anchor store enabled", "cache_ttl", cfg.AnchorCacheTTL)
	default:
		source = anchorstore.NewMemoryDefault()
		logger.Info("in-memory anchor store enabled")
	}

	converter := units.NewConverter(units.Default(), func(e units.FallbackEvent) {
		metrics.ConversionFallbacks.Inc()
		logger.Warn("conversion fallback", "from", e.From, "to", e.To, "category", e.Category)
	})
	interpolator := water.NewInterpolator(source)

	points, err := interpolator.AllAnchorPoints(ctx)
	if err != nil {
		logger.Warn("anchor point preflight failed", "error", err)
	} else {
		metrics.AnchorPoints.Set(float64(len(points)))
		logger.Info("anchor points loaded", "count", len(points))
	}

	srv := httpadapter.NewServer(cfg.HTTPAddr, converter, interpolator, metrics, cfg.DefaultLocale, logger)

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}
