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

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/sinko/hello-service/internal/config"
	"github.com/sinko/hello-service/internal/http/actuator"
	"github.com/sinko/hello-service/internal/http/v1/routes"
	applog "github.com/sinko/hello-service/internal/platform/logging"
	"github.com/sinko/hello-service/internal/platform/metrics"
	appmiddleware "github.com/sinko/hello-service/internal/platform/middleware"
	"github.com/sinko/hello-service/internal/platform/respond"
	healthsvc "github.com/sinko/hello-service/internal/service/health"
)

// Version can be overridden at build time: -ldflags "-X main.Version=1.2.3"
var Version = "dev"

const docsPath = "/api-docs"

func main() {
	ctx := context.Background()
	defer func() {
		if err := applog.Sync(); err != nil && !errors.Is(err, syscall.EINVAL) {
			applog.LogError(ctx, "logger sync error", err)
		}
	}()
	if err := applog.Err(); err != nil {
		applog.LogError(ctx, "logger init error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		applog.LogFatal(ctx, "invalid configuration", err)
	}
	if err := applog.SetLevel(cfg.App.LogLevel); err != nil {
		applog.LogFatal(ctx, "invalid log level", err)
	}
	applog.SetTraceProject(cfg.App.TraceProject)
	respond.Install()

	m := metrics.New(cfg.App.ServiceName)
	health := healthsvc.NewService(
		healthsvc.Ping{},
		healthsvc.NewDiskSpace(cfg.Actuator.DiskPath, cfg.Actuator.DiskThreshold),
	)

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr(),
		Handler:           newRouter(cfg, m, health),
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
		MaxHeaderBytes:    64 << 10, // 64 KB
	}

	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	applog.LogInfo(ctx, "server starting",
		zap.String("addr", srv.Addr),
		zap.String("service", cfg.App.ServiceName),
		zap.String("env", cfg.App.Environment),
		zap.String("version", Version),
	)
	if err := serve(sigCtx, srv, cfg.HTTP.ShutdownTimeout); err != nil {
		applog.LogError(ctx, "server stopped with error", err, zap.String("addr", srv.Addr))
		stop()
		_ = applog.Sync()
		os.Exit(1)
	}
	applog.LogInfo(ctx, "server exited")
}

// newRouter assembles the middleware stack and every route of the service.
func newRouter(cfg *config.Config, m *metrics.Metrics, health healthsvc.Service) http.Handler {
	router := chi.NewRouter()
	router.NotFound(respond.NotFoundHandler())
	router.MethodNotAllowed(respond.MethodNotAllowedHandler())

	router.Use(
		appmiddleware.Security(docsPath),
		appmiddleware.Vary("Accept"),
		appmiddleware.CORS(cfg.HTTP.AllowedOrigins...),
		appmiddleware.RequestID(),
		// RealIP trusts X-Real-IP / X-Forwarded-For; only run behind a trusted proxy.
		chimiddleware.RealIP,
		chimiddleware.RequestSize(cfg.HTTP.MaxBodyBytes),
		applog.RequestLogger(),
		applog.AccessLogger(),
		m.Middleware(),
		respond.Recoverer(),
	)

	api := humachi.New(router, apiConfig())
	api.OpenAPI().OnAddOperation = append(api.OpenAPI().OnAddOperation, documentCBOR)
	routes.Register(api, cfg.App.ServiceName)
	if cfg.Actuator.Enabled {
		actuator.Register(api, health, m)
		router.Handle("/metrics", m.Handler())
	}
	return router
}

// apiConfig is huma's default config without the $schema link field, so
// response bodies carry exactly the documented fields.
func apiConfig() huma.Config {
	cfg := huma.DefaultConfig("Hello Service API", Version)
	cfg.DocsPath = docsPath
	cfg.CreateHooks = nil
	return cfg
}

// documentCBOR advertises application/cbor next to every JSON response body.
// Unsupported Accept values still get JSON rather than 406.
func documentCBOR(_ *huma.OpenAPI, op *huma.Operation) {
	for _, resp := range op.Responses {
		if resp.Content == nil {
			continue
		}
		if jsonContent, ok := resp.Content["application/json"]; ok {
			resp.Content["application/cbor"] = jsonContent
		}
	}
}

// serve runs srv until ctx is cancelled, then drains in-flight requests for
// at most shutdownTimeout.
func serve(ctx context.Context, srv *http.Server, shutdownTimeout time.Duration) error {
	listenErr := make(chan error, 1)
	go func() {
		applog.LogInfo(ctx, "server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			listenErr <- err
		}
		close(listenErr)
	}()

	select {
	case err := <-listenErr:
		if err != nil {
			return fmt.Errorf("listen on %s: %w", srv.Addr, err)
		}
		return nil
	case <-ctx.Done():
		applog.LogInfo(context.Background(), "shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
