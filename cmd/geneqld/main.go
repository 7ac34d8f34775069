// cmd/geneqld/main.go
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

	"github.com/dangerclosesec/geneql"
	"github.com/dangerclosesec/geneql/internal/audit"
	"github.com/dangerclosesec/geneql/internal/auth"
	"github.com/dangerclosesec/geneql/internal/config"
	"github.com/dangerclosesec/geneql/internal/handler"
	"github.com/dangerclosesec/geneql/internal/middleware"
	"github.com/dangerclosesec/geneql/internal/repository"
	"github.com/dangerclosesec/geneql/internal/service"
	"github.com/dangerclosesec/geneql/store"
	"github.com/dangerclosesec/geneql/store/memory"
	"github.com/dangerclosesec/geneql/store/permify"
	"github.com/dangerclosesec/geneql/store/postgres"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "startup error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Initialize structured logger
	logger := newLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	checks := map[string]handler.HealthCheck{}

	var pg *postgres.Store
	if cfg.NeedsDatabase() {
		if pg, err = postgres.New(ctx, cfg.DatabaseDSN()); err != nil {
			return fmt.Errorf("setting up database: %w", err)
		}
		defer pg.Close()
		checks["database"] = pg.Pool.Ping
	}

	graph, err := openStore(ctx, cfg, pg, logger)
	if err != nil {
		return err
	}

	options := []geneql.Option{
		geneql.WithLogger(logger),
		geneql.WithTimeout(cfg.Store.Timeout),
	}

	var auditLogs handler.AuditLogReader
	if cfg.Audit.Enabled {
		db, err := repository.Open(cfg.DatabaseDSN())
		if err != nil {
			return err
		}
		repo := repository.NewQueryAuditLogRepository(db)
		if err := repo.Migrate(ctx); err != nil {
			return err
		}
		auditService := service.NewQueryAuditLogService(repo)
		options = append(options, geneql.WithAuditHook(audit.Hook(auditService, logger)))
		auditLogs = auditService
	}

	client := geneql.New(graph, options...)

	tokenManager := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.ExpiryPeriod)
	router := handler.NewRouter(handler.RouterConfig{
		Logger:         logger,
		Executor:       client,
		Authenticator:  middleware.NewAuthenticator(tokenManager, cfg.Auth.APIKey, logger),
		AuditLogs:      auditLogs,
		HealthChecks:   checks,
		AllowedOrigins: cfg.Server.AllowedOrigins,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("server starting", "port", cfg.Server.Port, "store", cfg.Store.Backend, "audit", cfg.Audit.Enabled)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)

	case <-ctx.Done():
		logger.Info("shutdown started")

		// Give outstanding requests a deadline for completion
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			srv.Close()
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}

	return nil
}

// openStore builds the GraphStore selected by cfg.Store.Backend
func openStore(ctx context.Context, cfg *config.Config, pg *postgres.Store, logger *slog.Logger) (store.GraphStore, error) {
	switch cfg.Store.Backend {
	case "memory":
		if cfg.Store.SeedFile == "" {
			return memory.New(), nil
		}
		s, err := memory.LoadFile(cfg.Store.SeedFile)
		if err != nil {
			return nil, err
		}
		logger.Info("seed loaded", "file", cfg.Store.SeedFile)
		return s, nil

	case "postgres":
		if err := migrate(ctx, cfg, logger); err != nil {
			return nil, err
		}
		return pg, nil

	case "permify":
		if err := migrate(ctx, cfg, logger); err != nil {
			return nil, err
		}
		perms, err := permify.New(cfg.Store.PermifyHost, permify.WithTenant(cfg.Store.PermifyTenant))
		if err != nil {
			return nil, err
		}
		return store.Compose(pg, perms), nil
	}

	return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
}

func migrate(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	db, err := postgres.Open(cfg.DatabaseDSN())
	if err != nil {
		return err
	}
	defer db.Close()

	_, err = postgres.NewMigrator(db, logger).InitializeSchema(ctx)
	return err
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}

	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:     lvl,
		AddSource: true,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{
					Key:   a.Key,
					Value: slog.StringValue(a.Value.Time().Format(time.RFC3339)),
				}
			}
			return a
		},
	}))
}
