package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/joho/godotenv"

	"github.com/stefifm/dashboard/internal/auth"
	"github.com/stefifm/dashboard/internal/auth/credentials"
	authStore "github.com/stefifm/dashboard/internal/auth/store"
	"github.com/stefifm/dashboard/internal/config"
	"github.com/stefifm/dashboard/internal/database"
	dashboardHttp "github.com/stefifm/dashboard/internal/http"
	authHandler "github.com/stefifm/dashboard/internal/http/auth"
	invoiceHandler "github.com/stefifm/dashboard/internal/http/invoice"
	"github.com/stefifm/dashboard/internal/invoice"
	invoiceStore "github.com/stefifm/dashboard/internal/invoice/store"
	"github.com/stefifm/dashboard/internal/pagecache"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load .env", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.New(ctx, cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if cfg.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.Sentry.DSN,
			Environment: cfg.Sentry.Environment,
		}); err != nil {
			slog.Error("failed to init sentry", "error", err)
		}
		defer sentry.Flush(2 * time.Second)
	}

	cache := pagecache.New(pagecache.Config{
		Enabled:         cfg.Cache.Enabled,
		TTL:             cfg.Cache.TTL,
		CleanupInterval: cfg.Cache.CleanupInterval,
	})

	tokens := auth.NewTokenIssuer(cfg.Auth.Secret, cfg.Auth.TokenTTL)

	var (
		invoiceService = invoice.NewService(invoiceStore.New(db), cache)
		authService    = auth.NewService(auth.Providers{
			auth.ProviderCredentials: credentials.New(authStore.New(db), tokens),
		})
	)

	var (
		authH    = authHandler.NewHandler(authService, tokens)
		invoiceH = invoiceHandler.NewHandler(invoiceService, cache)
	)

	router := dashboardHttp.New(dashboardHttp.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Sentry:         cfg.Sentry.DSN != "",
	}, authH, invoiceH)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.Timeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("failed to shut down server", "error", err)
		}
	}()

	slog.Info("starting server", "app", cfg.App.Name, "addr", srv.Addr)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
