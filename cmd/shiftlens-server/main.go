// Command shiftlens-server serves downtime/OEE reports over a read-only
// HTTP API and exposes them as Prometheus metrics on /metrics.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/shiftlens/shiftlens/internal/alerts"
	"github.com/shiftlens/shiftlens/internal/api"
	"github.com/shiftlens/shiftlens/internal/auth"
	"github.com/shiftlens/shiftlens/internal/config"
	"github.com/shiftlens/shiftlens/internal/metrics"
	"github.com/shiftlens/shiftlens/internal/service"
	"github.com/shiftlens/shiftlens/internal/store"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	recordsPath := flag.String("records", "", "record snapshot file; overrides server.records_path")
	envFile := flag.String("env-file", ".env", "optional dotenv file holding API keys and webhook URLs")
	flag.Parse()

	// Secrets referenced by *_env config keys may live in a dotenv file.
	envLoadErr := godotenv.Load(*envFile)

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	slog.Info("shiftlens-server starting", "config", *configPath)
	if envLoadErr != nil && !errors.Is(envLoadErr, fs.ErrNotExist) {
		slog.Warn("env file not loaded", "path", *envFile, "err", envLoadErr)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}
	if *recordsPath != "" {
		cfg.Server.RecordsPath = *recordsPath
	}
	if cfg.Server.RecordsPath == "" {
		slog.Error("no records file: set server.records_path or -records")
		os.Exit(1)
	}

	slog.Info("config loaded",
		"http_port", cfg.Server.HTTPPort,
		"records_path", cfg.Server.RecordsPath,
		"cache_ttl", cfg.Server.CacheTTL,
		"auth_mode", cfg.Server.Auth.Mode,
		"alert_rules", len(cfg.Alerts.Rules),
	)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Report cache with background TTL eviction.
	st := store.New(cfg.Server.CacheTTL)
	go st.Run(ctx)

	reg := metrics.NewRegistry()
	alertEngine := alerts.New(cfg.Alerts)
	svc := service.New(cfg.Server.RecordsPath, cfg.Policy.Report(), st,
		service.WithMetrics(reg),
		service.WithAlerts(alertEngine),
	)

	// A missing or broken records file is not fatal: the API answers 503
	// until a valid file appears.
	if err := svc.Load(); err != nil {
		slog.Error("initial records load failed", "err", err)
	} else if err := svc.Refresh(); err != nil {
		slog.Error("initial report failed", "err", err)
	}

	go func() {
		if err := config.Watch(ctx, *configPath, func(updated *config.Config) {
			st.SetTTL(updated.Server.CacheTTL)
			alertEngine.Configure(updated.Alerts)
			svc.SetPolicy(updated.Policy.Report())
			if err := svc.Refresh(); err != nil {
				slog.Error("refresh after config reload failed", "err", err)
			}
		}); err != nil {
			slog.Error("config watcher stopped", "err", err)
		}
	}()

	go func() {
		if err := config.WatchFile(ctx, cfg.Server.RecordsPath, func() {
			if err := svc.Load(); err != nil {
				slog.Error("records reload failed, keeping previous snapshot", "err", err)
				return
			}
			if err := svc.Refresh(); err != nil {
				slog.Error("refresh after records reload failed", "err", err)
			}
		}); err != nil {
			slog.Error("records watcher stopped", "err", err)
		}
	}()

	httpMux := http.NewServeMux()
	httpMux.Handle("/api/", auth.APIKey(
		cfg.Server.Auth.Mode,
		cfg.Server.Auth.EffectiveHeader(),
		cfg.Server.Auth.Key(),
		api.New(svc),
	))
	httpMux.Handle("/metrics", reg.Handler())

	httpSrv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.HTTPPort),
		Handler:           httpMux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		slog.Info("HTTP server listening", "port", cfg.Server.HTTPPort)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server stopped", "err", err)
		}
	}()

	<-ctx.Done()
	slog.Info("shiftlens-server shutting down")
	shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
	defer stop()
	httpSrv.Shutdown(shutdownCtx) //nolint:errcheck
	alertEngine.Wait()
}
