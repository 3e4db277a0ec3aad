// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package main is the entry point for the gigfin content API server.
// It loads configuration, connects to services, sets up routing, and starts
// the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"gigfin/internal/cache"
	"gigfin/internal/catalog"
	"gigfin/internal/config"
	"gigfin/internal/database"
	"gigfin/internal/handlers"
	"gigfin/internal/middleware"
	"gigfin/internal/router"
	"gigfin/internal/store"
)

func main() {
	// Load configuration from the environment and the optional config file.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Structured logger: text in development, JSON everywhere else.
	opts := &slog.HandlerOptions{Level: logLevel(cfg.LogLevel)}
	var handler slog.Handler = slog.NewJSONHandler(os.Stdout, opts)
	if cfg.IsDev() {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"locales", cfg.SiteLocales,
		"default_locale", cfg.DefaultLocale,
	)

	// Connect to PostgreSQL.
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Run pending migrations.
	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed development data (no-op if data already exists).
	if cfg.IsDev() {
		if err := database.Seed(db); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	// Valkey is optional; without it sitemap.xml and robots.txt are rebuilt
	// on every request.
	var responses *cache.ResponseCache
	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyAddr(), cfg.ValkeyPassword)
	if err != nil {
		slog.Warn("valkey unavailable, response cache disabled", "error", err)
	} else {
		defer valkeyClient.Close()
		responses = cache.NewResponseCache(valkeyClient, cfg.SitemapCacheTTL)
	}

	// Content snapshots with TTL caches in front of the stores.
	svc := catalog.New(store.NewContent(db), catalog.Options{
		CategoryTTL: cfg.CategoryCacheTTL,
		ArticleTTL:  cfg.ArticleCacheTTL,
		MaxEntries:  cfg.CacheMaxEntries,
		Locales:     cfg.Locales(),
	})
	// The sitemap is the only cached body built from content; robots.txt
	// depends on SITE_URL alone, so it is cleared once per boot.
	responses.InvalidateAll(context.Background())
	svc.OnRefresh(func(ctx context.Context) {
		responses.Invalidate(ctx, cache.SitemapKey)
	})

	// Warm the caches. A failure here is not fatal: requests load lazily.
	warmCtx, warmCancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := svc.Refresh(warmCtx); err != nil {
		slog.Warn("initial snapshot load failed", "error", err)
	}
	warmCancel()

	scheduler, err := catalog.NewScheduler(svc, cfg.SnapshotRefresh)
	if err != nil {
		slog.Error("failed to schedule snapshot refresh", "error", err)
		os.Exit(1)
	}
	scheduler.Start()

	limiter := middleware.NewRateLimiter(cfg.RateLimit, time.Minute)

	// Create handler groups with their dependencies.
	api := handlers.NewAPI(svc, cfg.DefaultLocale)
	seo := handlers.NewSEO(svc, responses, cfg.SiteURL)

	r := router.New(api, seo, limiter)

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	scheduler.Stop(ctx)
	limiter.Stop()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}

// logLevel maps LOG_LEVEL to a slog level, defaulting to info.
func logLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
