// Package main is the entry point for the Habari blog server.
// It loads configuration, connects to services, sets up routing, and
// starts the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"habari/internal/cache"
	"habari/internal/config"
	"habari/internal/database"
	"habari/internal/handlers"
	"habari/internal/render"
	"habari/internal/router"
	"habari/internal/session"
	"habari/internal/store"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
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

	// Connect to Redis (sessions + sidebar cache).
	redisClient, err := cache.Connect(cfg.RedisAddr(), cfg.RedisPassword)
	if err != nil {
		slog.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}
	defer redisClient.Close()

	// In non-development environments, mark session cookies as
	// Secure (HTTPS-only).
	secureCookies := !cfg.IsDev()
	sessionStore := session.NewStore(redisClient, secureCookies)

	renderer, err := render.New()
	if err != nil {
		slog.Error("failed to initialize template renderer", "error", err)
		os.Exit(1)
	}

	// Initialize data stores.
	postStore := store.NewPostStore(db)
	categoryStore := store.NewCategoryStore(db)
	commentStore := store.NewCommentStore(db)
	userStore := store.NewUserStore(db)
	subscriberStore := store.NewSubscriberStore(db)

	sidebarCache := cache.NewSidebarCache(redisClient, cache.DefaultSidebarTTL)
	// Seeding can add categories and posts; a sidebar cached by a
	// previous run would hide them until the TTL expires.
	if cfg.IsDev() {
		sidebarCache.Invalidate(context.Background())
	}
	sidebarLoader := handlers.NewSidebarLoader(categoryStore, postStore, sidebarCache)

	// Create handler groups with their dependencies.
	publicHandlers := handlers.NewPublic(renderer, postStore, categoryStore, commentStore, sidebarLoader)
	commentHandlers := handlers.NewComments(postStore, commentStore, userStore)
	authHandlers := handlers.NewAuth(renderer, sessionStore, userStore)
	subscriptionHandlers := handlers.NewSubscriptions(subscriberStore)

	// Set up the Chi router with all middleware and routes.
	r, limiter := router.New(router.Deps{
		Sessions:      sessionStore,
		Public:        publicHandlers,
		Comments:      commentHandlers,
		Auth:          authHandlers,
		Subscriptions: subscriptionHandlers,
	})
	defer limiter.Stop()

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
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	// Give active requests up to 30 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
