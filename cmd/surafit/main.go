// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package main is the entry point for the Sura Fitness web server.
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
	"syscall"
	"time"

	"surafit/internal/cache"
	"surafit/internal/config"
	"surafit/internal/crud"
	"surafit/internal/database"
	"surafit/internal/gateway"
	"surafit/internal/handlers"
	"surafit/internal/handoff"
	"surafit/internal/middleware"
	"surafit/internal/render"
	"surafit/internal/router"
	"surafit/internal/session"
	"surafit/internal/stats"
	"surafit/internal/storage"
	"surafit/internal/store"
	"surafit/internal/validation"
	"surafit/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(newLogger(cfg.IsDev()))
	slog.Info("configuration loaded", "env", cfg.Env, "addr", cfg.Addr())

	ctx := context.Background()

	db, err := database.Connect(ctx, cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(ctx, db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Sample content and the first admin only appear in development.
	if cfg.IsDev() {
		if err := database.Seed(ctx, db, database.Account{Email: cfg.AdminEmail, Password: cfg.AdminPassword}); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword, 0)
	if err != nil {
		slog.Error("failed to connect to valkey", "error", err)
		os.Exit(1)
	}
	defer valkeyClient.Close()

	// Cookies are Secure everywhere but local development.
	secureCookies := !cfg.IsDev()
	sessionStore := session.NewStore(valkeyClient, secureCookies, cfg.SessionTTL)
	pageCache := cache.NewPageCache(valkeyClient, cache.DefaultPageTTL)

	renderer, err := render.New(cfg.IsDev(), render.Site{
		Name:     cfg.SiteName,
		WhatsApp: handoff.New(cfg.WhatsAppNumber),
	})
	if err != nil {
		slog.Error("failed to initialize template renderer", "error", err)
		os.Exit(1)
	}

	// Object storage is optional; without it the upload buttons are hidden.
	var uploads handlers.Uploader
	if cfg.StorageEnabled() {
		storageClient, err := storage.New(cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3Bucket, cfg.S3PublicURL)
		if err != nil {
			slog.Error("failed to initialize S3 storage", "error", err)
			os.Exit(1)
		}
		uploads = storageClient
		slog.Info("s3 storage connected", "endpoint", cfg.S3Endpoint, "bucket", cfg.S3Bucket)
	} else {
		slog.Warn("s3 storage not configured, image uploads disabled")
	}

	gw := gateway.NewPostgres(db)
	v := validation.New()
	userStore := store.NewUserStore(db)
	leadStore := store.NewLeadStore(gw)

	loginLimit := middleware.NewRateLimiter(10, time.Minute)
	defer loginLimit.Stop()
	leadLimit := middleware.NewRateLimiter(cfg.LeadRateLimit, time.Minute)
	defer leadLimit.Stop()

	r := router.New(router.Deps{
		Sessions:       sessionStore,
		Secure:         secureCookies,
		LoginLimit:     loginLimit,
		LeadLimit:      leadLimit,
		TrustedProxies: cfg.TrustedProxies,
		Static:         web.Static(),
		Admin:          handlers.NewAdmin(renderer, crud.NewController(gw, v), stats.NewService(gw), leadStore, userStore, pageCache, uploads),
		Auth:           handlers.NewAuth(renderer, sessionStore, userStore, cfg.Require2FA, cfg.SiteName),
		Public:         handlers.NewPublic(renderer, store.NewSiteStore(gw), leadStore, pageCache, v),
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}

// newLogger writes text in development and JSON everywhere else.
func newLogger(dev bool) *slog.Logger {
	if dev {
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
}
