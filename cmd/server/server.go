package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	gormlogger "gorm.io/gorm/logger"

	"minecrox-server/services/pack-api/internal/config"
	filedomain "minecrox-server/services/pack-api/internal/domain/file"
	reportdomain "minecrox-server/services/pack-api/internal/domain/report"
	"minecrox-server/services/pack-api/internal/infrastructure/database"
	"minecrox-server/services/pack-api/internal/infrastructure/logger"
	"minecrox-server/services/pack-api/internal/infrastructure/observability"
	filerepo "minecrox-server/services/pack-api/internal/infrastructure/repository/file"
	reportrepo "minecrox-server/services/pack-api/internal/infrastructure/repository/report"
	"minecrox-server/services/pack-api/internal/infrastructure/scheduler"
	"minecrox-server/services/pack-api/internal/infrastructure/storage"
	"minecrox-server/services/pack-api/internal/infrastructure/turnstile"
	"minecrox-server/services/pack-api/internal/interfaces/httpserver"
)

type Application struct {
	httpServer *httpserver.HttpServer
	log        zerolog.Logger
}

func NewApplication(httpServer *httpserver.HttpServer, log zerolog.Logger) *Application {
	return &Application{
		httpServer: httpServer,
		log:        log,
	}
}

func (a *Application) Start(ctx context.Context) error {
	return a.httpServer.Run(ctx)
}

func main() {
	loadEnvFiles()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := observability.Setup(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize observability")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := shutdownTelemetry(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown telemetry")
		}
	}()

	db, err := database.Connect(database.Config{
		DSN:             cfg.DatabaseDSN,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		ConnMaxLifetime: cfg.DBConnLifetime,
		LogLevel:        gormlogger.Warn,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("connect database")
	}

	if err := database.AutoMigrate(ctx, db, log); err != nil {
		log.Fatal().Err(err).Msg("migrate database")
	}

	storageClient, err := storage.NewS3Storage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize storage")
	}
	if err := storageClient.EnsureBucket(ctx); err != nil {
		// Bucket provisioning is usually external; missing permissions here
		// must not keep the service from starting.
		log.Warn().Err(err).Msg("ensure bucket")
	}

	fileRepository := filerepo.NewRepository(db)
	fileService := filedomain.NewService(cfg, fileRepository, storageClient, log)
	reportRepository := reportrepo.NewRepository(db)
	reportService := reportdomain.NewService(reportRepository, log)
	verifier := turnstile.NewVerifier(cfg, log)

	var maintenance *scheduler.Scheduler
	if cfg.EnableScheduler {
		maintenance = scheduler.New(fileService, cfg.MaintenanceInterval, cfg.SweepBatchSize, log)
		maintenance.Start(ctx)
	}

	httpServer := httpserver.New(cfg, log, fileService, reportService, verifier)
	app := NewApplication(httpServer, log)

	if err := app.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("application stopped with error")
	}

	if maintenance != nil {
		maintenance.Wait()
	}

	log.Info().Msg("application exited cleanly")
}

func loadEnvFiles() {
	paths := []string{".env", "../.env"}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Overload(path); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to load %s: %v\n", path, err)
			}
		}
	}
}
