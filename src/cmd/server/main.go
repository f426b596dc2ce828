package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/ce-fello/standup-agent/src/internal/api"
	"github.com/ce-fello/standup-agent/src/internal/config"
	"github.com/ce-fello/standup-agent/src/internal/llm"
	"github.com/ce-fello/standup-agent/src/internal/service"
	"github.com/ce-fello/standup-agent/src/internal/store"
)

func main() {
	cfg := config.MustLoad()

	logger, _ := zap.NewProduction()
	defer func(logger *zap.Logger) {
		_ = logger.Sync()
	}(logger)
	sugar := logger.Sugar()

	storage, cleanup, err := buildStorage(cfg, logger, sugar)
	if err != nil {
		sugar.Fatalf("storage init failed: %v", err)
	}
	defer cleanup()

	generator := llm.NewClient(cfg.LLM.BaseURL, cfg.LLM.APIKey, cfg.LLM.Model, cfg.LLM.MaxTokens, logger)
	svc := service.NewService(storage, generator, logger, service.Options{
		LookbackDays: cfg.Agent.LookbackDays,
		MaxQuestions: cfg.Agent.MaxQuestions,
	})
	h := api.NewHandler(svc, logger)

	r := chi.NewRouter()
	r.Use(api.RequestIDMiddleware, api.LoggerMiddleware(logger), api.Recoverer(logger))
	api.RegisterRoutes(r, h)

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		sugar.Infof("listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			sugar.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit
	sugar.Infof("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		sugar.Fatalf("server forced to shutdown: %v", err)
	}
	sugar.Info("server stopped")
}

func buildStorage(cfg *config.Config, logger *zap.Logger, sugar *zap.SugaredLogger) (store.Storage, func(), error) {
	switch cfg.Storage.Type {
	case "postgres":
		db, err := connectDBWithRetry(cfg.Storage.DatabaseURL, 15, 2*time.Second, sugar)
		if err != nil {
			return nil, nil, fmt.Errorf("connect db: %w", err)
		}
		if err := runMigrations(cfg.Storage.DatabaseURL, cfg.Storage.MigrationsDir, sugar); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("migrations: %w", err)
		}
		sugar.Info("migrations applied")
		cleanup := func() {
			if err := db.Close(); err != nil {
				sugar.Errorf("failed to close db: %v", err)
			}
		}
		return store.NewRepositories(db, logger), cleanup, nil
	case "file":
		fs, err := store.NewFileStore(cfg.Storage.FilePath, cfg.Storage.BackupDir, logger)
		if err != nil {
			return nil, nil, err
		}
		return fs, func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage type %q", cfg.Storage.Type)
	}
}

func connectDBWithRetry(dsn string, attempts int, delay time.Duration, sugar *zap.SugaredLogger) (*sql.DB, error) {
	var db *sql.DB
	var err error

	for i := 0; i < attempts; i++ {
		db, err = sql.Open("postgres", dsn)
		if err == nil {
			if err = db.Ping(); err == nil {
				return db, nil
			}
		}
		sugar.Warnf("db ping error: %v (attempt %d/%d)", err, i+1, attempts)
		time.Sleep(delay)
	}
	return nil, fmt.Errorf("db connect failed: %w", err)
}

func runMigrations(dsn, migrationsDir string, sugar *zap.SugaredLogger) error {
	sugar.Infof("running migrations from %s", migrationsDir)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return fmt.Errorf("migration open db: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://"+migrationsDir,
		"postgres",
		driver,
	)
	if err != nil {
		return fmt.Errorf("migration init: %w", err)
	}

	err = m.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration up: %w", err)
	}

	if errors.Is(err, migrate.ErrNoChange) {
		sugar.Info("no new migrations — already up to date")
	}

	return nil
}
