package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"hubgate/server/internal/config"
	"hubgate/server/internal/logger"
	"hubgate/server/internal/mcp"
	"hubgate/server/internal/middleware"
	"hubgate/server/internal/oauth"
	"hubgate/server/internal/observability"
	"hubgate/server/internal/store"
	"hubgate/server/internal/tools"
	"hubgate/server/pkg/githubapi"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.Env)
	defer log.Sync()

	observability.Init(log)

	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		log.Fatal("GITHUB_CLIENT_ID and GITHUB_CLIENT_SECRET must be set")
	}

	ctx := context.Background()
	st, err := store.NewRedisStore(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatalw("redis connection failed", "url", cfg.RedisURL, "error", err)
	}
	log.Infow("redis connected", "url", cfg.RedisURL)

	registry := tools.New(githubapi.NewClient())
	log.Infow("tool registry assembled", "tools", len(registry.Schemas()))

	flow := oauth.NewFlow(cfg, st, log)
	authHandler := oauth.NewHandler(flow, log)
	mcpHandler := mcp.NewHandler(registry, st, log)

	r := chi.NewRouter()
	r.Use(middleware.Recover(log))
	r.Use(middleware.RequestID())
	r.Use(middleware.Tracing(log))
	r.Use(middleware.CORS(cfg.TrustedOrigin))

	r.Get("/health", healthHandler(st))
	authHandler.Routes(r)
	mcpHandler.Routes(r)

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	go func() {
		log.Infow("starting server", "addr", cfg.HTTPAddr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Infow("shutting down", "signal", sig.String())

	// Give in-flight requests up to 30 seconds to complete.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warnw("forced shutdown", "error", err)
	}
	log.Info("server stopped")
}

func healthHandler(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := st.Ping(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status":"degraded","redis":"unavailable"}`))
			return
		}
		w.Write([]byte(`{"status":"ok","redis":"ok"}`))
	}
}
