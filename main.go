package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"playstore-insights/api"
	"playstore-insights/config"
	"playstore-insights/services"
	"playstore-insights/storage"
	"playstore-insights/utils"
)

func main() {
	cfg := config.Load()
	logger := utils.NewLoggerWithLevel(cfg.LogLevel)
	defer logger.Sync()

	logger.Info("=== Play Store Insights starting ===")
	logger.Info("Config: source=%s | retries=%d | listen=%q", cfg.SourceKind, cfg.MaxRetries, cfg.ListenAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	retry := &utils.RetryConfig{MaxAttempts: cfg.MaxRetries, BaseDelay: 2 * time.Second, Logger: logger}

	source, err := openSource(ctx, cfg, retry)
	if err != nil {
		logger.Error("Failed to open %s source: %v", cfg.SourceKind, err)
		os.Exit(1)
	}
	defer source.Close()

	session := services.NewSession(services.NewFilterEngine(), logger)

	if !cfg.Serving() {
		if err := session.Load(ctx, services.NewLoader(source, logger)); err != nil {
			logger.Error("Load failed: %v", err)
			os.Exit(1)
		}
		snap, _ := session.Snapshot()
		insightSvc := services.NewInsightService(logger)
		insightSvc.Print(insightSvc.Generate(snap, session.Dataset().Dropped))
		return
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := api.NewMetrics(reg)
	session.OnUpdate(metrics.Observe)

	// Views answer 503 until the load completes.
	go func() {
		if err := session.Load(ctx, services.NewLoader(source, logger)); err != nil {
			logger.Error("Load failed: %v", err)
		}
	}()

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           api.NewRouter(api.NewHandler(session, metrics, logger), reg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Listening on %s", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server failed: %v", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed: %v", err)
	}
	logger.Info("=== Done ===")
}

func openSource(ctx context.Context, cfg *config.Config, retry *utils.RetryConfig) (storage.DatasetSource, error) {
	switch cfg.SourceKind {
	case config.SourceCSV:
		client := &http.Client{Timeout: time.Duration(cfg.HTTPTimeoutSec) * time.Second}
		return storage.NewCSVSource(cfg.AppsCSV, cfg.ReviewsCSV, client, retry), nil
	case config.SourcePostgres:
		return storage.NewSQLSource(ctx, storage.DriverPostgres, cfg.DSN(), cfg.AppsTable, cfg.ReviewsTable, retry)
	case config.SourceSQLite:
		return storage.NewSQLSource(ctx, storage.DriverSQLite, cfg.SQLitePath, cfg.AppsTable, cfg.ReviewsTable, retry)
	default:
		return nil, errors.New("unknown source kind " + cfg.SourceKind)
	}
}
