package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/lockreap/lockreapd/internal/core"
	"github.com/lockreap/lockreapd/internal/metrics"
	"github.com/lockreap/lockreapd/internal/reaper"
	redisstore "github.com/lockreap/lockreapd/internal/redis"
	"github.com/lockreap/lockreapd/internal/server"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	cfg := server.LoadConfig()

	switch reaper.Strategy(cfg.Strategy) {
	case reaper.StrategyAtomic, reaper.StrategyPaginated:
	default:
		// Passes will report the configuration error instead of reaping;
		// the process stays up so the misconfiguration is observable.
		slog.Error("unknown reaper strategy configured, passes will reap nothing",
			"strategy", cfg.Strategy)
	}

	// Connect to Redis
	client, err := redisstore.New(context.Background(), cfg.RedisURL)
	if err != nil {
		slog.Error("failed to connect to Redis", "error", err)
		os.Exit(1)
	}
	defer client.Close()

	slog.Info("connected to Redis", "url", cfg.RedisURL)

	// Initialize Prometheus build info metric
	metrics.Init(core.Version)

	keys := core.KeysForPrefix(cfg.KeyPrefix)
	orch := reaper.New(client, reaper.Config{
		Strategy:  reaper.Strategy(cfg.Strategy),
		BatchSize: cfg.BatchSize,
		Keys:      keys,
	})

	// Start background reap manager
	mgr := reaper.NewManager(orch, cfg.Schedule)
	if err := mgr.Start(); err != nil {
		slog.Error("failed to start reaper manager", "error", err)
		os.Exit(1)
	}
	defer mgr.Stop()

	// Create admin HTTP server
	router := server.NewRouter(client.Store(), orch, keys)
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	// Start server
	go func() {
		slog.Info("lockreapd admin server listening", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	mgr.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	slog.Info("server stopped")
}
