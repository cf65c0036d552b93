package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"go-viewer-dashboard/internal/api"
	"go-viewer-dashboard/internal/api/handler"
	"go-viewer-dashboard/internal/cache"
	"go-viewer-dashboard/internal/config"
	"go-viewer-dashboard/internal/pipeline"
	"go-viewer-dashboard/internal/render"
	"go-viewer-dashboard/internal/store"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	logger := config.NewLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config) error {
	// Init DB
	if err := store.InitDB(cfg.DBPath); err != nil {
		return fmt.Errorf("init report store: %w", err)
	}
	defer store.Close()

	ds, err := pipeline.LoadCSV(ctx, cfg.DataPath)
	if err != nil {
		return err
	}

	reportCache, closeCache := newCache(ctx, cfg)
	defer closeCache()

	h := handler.New(ds, reportCache, cfg.DefaultTopN, render.Options{Width: cfg.ChartWidth, Height: cfg.ChartHeight})
	r := api.NewRouter(h)
	slog.Info("routes registered", "count", len(r.Routes()), "rows", ds.Profile.RowCount)
	return r.Start(ctx, fmt.Sprintf(":%d", cfg.HTTPPort))
}

// newCache uses Redis when configured and reachable, else an in-process cache.
func newCache(ctx context.Context, cfg config.Config) (cache.ReportCache, func()) {
	if cfg.RedisURL == "" {
		return cache.NewMemoryCache(cfg.CacheTTL), func() {}
	}
	client, err := cache.Connect(ctx, cfg.RedisURL)
	if err != nil {
		slog.Warn("redis unavailable, using in-process report cache", "error", err)
		return cache.NewMemoryCache(cfg.CacheTTL), func() {}
	}
	slog.Info("report cache on redis", "ttl", cfg.CacheTTL)
	return cache.NewRedisCache(client, cfg.CacheTTL), func() { _ = client.Close() }
}
