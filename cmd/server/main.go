// Package main implements the entry point for the guidance engine server,
// which schedules credit-education practice sessions and drives the adaptive
// guidance overlay for the front end.
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/creditclimb/engine/internal/api"
	"github.com/creditclimb/engine/internal/config"
	"github.com/creditclimb/engine/internal/domain/schedule"
	"github.com/creditclimb/engine/internal/events"
	"github.com/creditclimb/engine/internal/generation"
	"github.com/creditclimb/engine/internal/platform/logger"
	"github.com/creditclimb/engine/internal/platform/postgres"
	"github.com/creditclimb/engine/internal/service"
	"github.com/creditclimb/engine/internal/service/session"
	"github.com/creditclimb/engine/internal/store"
	"github.com/creditclimb/engine/internal/task"
	"github.com/creditclimb/engine/migrations"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("server exited with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log := logger.Setup(cfg.Server.LogLevel)
	log.Info("configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel))

	db, err := openDatabase(cfg.Database.URL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			log.Warn("failed to close database", slog.String("error", cerr.Error()))
		}
	}()

	if err := runMigrations(db); err != nil {
		return err
	}
	log.Info("database migrations applied")

	catalog, err := loadCatalog(cfg.Catalog.Path)
	if err != nil {
		return err
	}
	log.Info("scenario catalog loaded",
		slog.String("version", catalog.Version),
		slog.Int("templates", catalog.Len()))

	registry := buildRegistry(cfg, db, catalog, log)

	guidanceHandler := api.NewGuidanceHandler(registry, nil, log)
	preferenceHandler := api.NewPreferenceHandler(registry, log)
	sessionHandler := api.NewSessionHandler(registry, log)
	router := api.NewRouter(guidanceHandler, preferenceHandler, sessionHandler)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return serve(server, log)
}

// openDatabase opens and verifies the PostgreSQL connection pool.
func openDatabase(url string) (*sql.DB, error) {
	db, err := sql.Open("pgx", url)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// runMigrations applies the embedded schema migrations.
func runMigrations(db *sql.DB) error {
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}
	if err := goose.Up(db, "."); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

// loadCatalog loads the scenario catalog from the configured path, or the
// catalog embedded in the binary when no path is configured.
func loadCatalog(path string) (*generation.Catalog, error) {
	if path == "" {
		return generation.LoadDefaultCatalog()
	}
	return generation.LoadCatalogFile(path)
}

// buildRegistry wires the stores, generator, and engine parameters into the
// per-learner component registry.
func buildRegistry(
	cfg *config.Config,
	db *sql.DB,
	catalog *generation.Catalog,
	log *slog.Logger,
) *service.Registry {
	var mastery store.MasteryStore = postgres.NewPostgresMasteryStore(db, log)
	var prefs store.PreferenceStore = postgres.NewPostgresPreferenceStore(db, log)

	scheduleParams := schedule.NewParams(schedule.ParamsConfig{
		FailedScore:   cfg.Scheduler.FailedScore,
		UnseenScore:   cfg.Scheduler.UnseenScore,
		MasteredScore: cfg.Scheduler.MasteredScore,
		DefaultTake:   cfg.Session.Size,
	})
	sessionParams := &session.Params{
		SessionSize:     cfg.Session.Size,
		CompletionBonus: cfg.Session.CompletionBonus,
		StartingScore:   cfg.Session.StartingScore,
	}

	return service.NewRegistry(
		mastery,
		prefs,
		generation.NewGenerator(catalog, log),
		scheduleParams,
		sessionParams,
		task.NewTimerScheduler(),
		events.NewInMemoryEventEmitter(log),
		log,
	)
}

// serve runs the HTTP server until SIGINT or SIGTERM, then shuts down
// gracefully with a bounded drain window.
func serve(server *http.Server, log *slog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-stop:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	log.Info("server stopped")
	return nil
}
