package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"uploadtest/internal/config"
	"uploadtest/internal/database"
	"uploadtest/internal/database/migration"
	handlers "uploadtest/internal/http/handler"
	"uploadtest/internal/http/middleware"
	"uploadtest/internal/logger"
	"uploadtest/internal/otel"
	"uploadtest/internal/repository"
	"uploadtest/internal/repository/memory"
	"uploadtest/internal/repository/postgres"
	"uploadtest/internal/service"
	"uploadtest/internal/storage"
)

// bodyLimit leaves room for the multipart envelope around a maximum-size document.
const bodyLimit = 8 * 1024 * 1024

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, "uploadtest-stub", log)
	if err != nil {
		log.Fatal("failed to initialize tracing", zap.Error(err))
	}

	store, err := newStorage(ctx, cfg.Stub)
	if err != nil {
		log.Fatal("failed to initialize object storage", zap.Error(err))
	}

	repo, db, err := newRepository(ctx, cfg.Stub.Database, log)
	if err != nil {
		log.Fatal("failed to initialize repository", zap.Error(err))
	}
	if db != nil {
		defer db.Close()
	}

	svc := service.NewApplicationService(store, repo)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	promMiddleware, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		log.Fatal("failed to register metrics", zap.Error(err))
	}

	app := fiber.New(fiber.Config{
		ErrorHandler:          handlers.ErrorHandler(),
		BodyLimit:             bodyLimit,
		DisableStartupMessage: true,
	})
	app.Use(otelfiber.Middleware())
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(log))
	app.Use(promMiddleware.Handler())

	handlers.RegisterRoutes(app, svc, cfg.Stub.AuthToken, reg)

	addr := ":" + cfg.Stub.Port
	go func() {
		log.Info("stub server listening",
			zap.String("addr", addr),
			zap.String("storage", cfg.Stub.Storage),
			zap.Bool("postgres", db != nil),
		)
		if err := app.Listen(addr); err != nil {
			log.Error("server failed", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down gracefully")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}

	flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := shutdownTracing(flushCtx); err != nil {
		log.Warn("tracing shutdown", zap.Error(err))
	}
	log.Info("server exited")
}

func newStorage(ctx context.Context, cfg config.StubConfig) (storage.Storage, error) {
	switch cfg.Storage {
	case "memory", "":
		return storage.NewMemory(), nil
	case "minio":
		return storage.NewMinIO(ctx, cfg.MinIO)
	default:
		return nil, fmt.Errorf("unknown STUB_STORAGE %q", cfg.Storage)
	}
}

// newRepository uses PostgreSQL when DB_HOST is set, memory otherwise. db is nil
// for the memory repository.
func newRepository(ctx context.Context, cfg config.DatabaseConfig, log *zap.Logger) (repository.ApplicationRepository, *sql.DB, error) {
	if !database.Enabled(cfg) {
		return memory.NewApplicationMemory(), nil, nil
	}

	db, err := database.NewPostgres(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	if err := migration.EnsureMigrated(ctx, db, log); err != nil {
		db.Close()
		return nil, nil, err
	}
	return postgres.NewApplicationPostgres(db), db, nil
}
