package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/shopsense/shopsense/internal/logger"
	"github.com/shopsense/shopsense/internal/metrics"
	chiTransport "github.com/shopsense/shopsense/internal/transport/chi"
	"github.com/shopsense/shopsense/internal/watcher"
)

// NewServeCmd creates the serve command.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the recommendation HTTP API",
		Long: `Start the HTTP server. The data directory is watched: edits to the
catalog files trigger a reload and an index refresh.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, cleanup, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()
			return runServer(cmd.Context(), a)
		},
	}
	return cmd
}

func runServer(ctx context.Context, a *app) error {
	log := a.logger
	cfg := a.cfg

	// Warm the index before accepting traffic.
	tables, err := a.catalog.Tables()
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	snap, err := a.index.BuildOrLoad(ctx, &tables.Products, false)
	if err != nil {
		return fmt.Errorf("prepare index: %w", err)
	}
	log.Info("index ready",
		zap.Int("entries", snap.Len()),
		zap.Int("dimensions", snap.Dimensions()),
	)

	// Rebuild when the catalog files change on disk.
	debounce := time.Duration(cfg.Data.WatchDebounceMS) * time.Millisecond
	w := watcher.New(
		cfg.Data.Dir,
		[]string{cfg.Data.ProductsFile, cfg.Data.SpecsFile, cfg.Data.ReviewsFile},
		debounce,
		func() { refreshIndex(a) },
		log,
	)
	if err := w.Start(); err != nil {
		log.Warn("data watcher disabled", zap.Error(err))
	} else {
		defer w.Stop()
	}

	server := chiTransport.NewServer(a.recommend, a.catalog, a.sentiment, log)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(log))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(log))
	r.Use(metrics.Middleware())
	server.Routes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	select {
	case <-quit:
		log.Info("Received shutdown signal")
	case <-ctx.Done():
		log.Info("Context cancelled")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Error during shutdown", zap.Error(err))
	}

	log.Info("Server stopped gracefully")
	return nil
}

// refreshIndex reloads the tables and rebuilds the index after a data file
// change. Failures leave the previous snapshot in place.
func refreshIndex(a *app) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	tables, err := a.catalog.Reload()
	if err != nil {
		a.logger.Error("catalog reload failed", zap.Error(err))
		return
	}
	snap, err := a.index.BuildOrLoad(ctx, &tables.Products, false)
	if err != nil {
		a.logger.Error("index refresh failed", zap.Error(err))
		return
	}
	a.logger.Info("index refreshed",
		zap.Int("entries", snap.Len()),
		zap.Int("dimensions", snap.Dimensions()),
	)
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(log *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					log.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(log *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			requestID := chiMiddleware.GetReqID(r.Context())
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			reqLogger := log.With(zap.String("request_id", requestID))
			ctx := logger.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
