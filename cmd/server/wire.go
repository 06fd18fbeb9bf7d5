//go:build wireinject

package main

import (
	"context"

	"github.com/google/wire"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"minecrox-server/services/pack-api/internal/config"
	filedomain "minecrox-server/services/pack-api/internal/domain/file"
	reportdomain "minecrox-server/services/pack-api/internal/domain/report"
	"minecrox-server/services/pack-api/internal/infrastructure/database"
	"minecrox-server/services/pack-api/internal/infrastructure/logger"
	filerepo "minecrox-server/services/pack-api/internal/infrastructure/repository/file"
	reportrepo "minecrox-server/services/pack-api/internal/infrastructure/repository/report"
	"minecrox-server/services/pack-api/internal/infrastructure/storage"
	"minecrox-server/services/pack-api/internal/infrastructure/turnstile"
	"minecrox-server/services/pack-api/internal/interfaces/httpserver"
)

var fileSet = wire.NewSet(
	filerepo.NewRepository,
	wire.Bind(new(filedomain.Repository), new(*filerepo.Repository)),
	provideStorage,
	filedomain.NewService,
)

var reportSet = wire.NewSet(
	reportrepo.NewRepository,
	wire.Bind(new(reportdomain.Repository), new(*reportrepo.Repository)),
	reportdomain.NewService,
)

// BuildApplication assembles the pack API with Wire.
func BuildApplication(ctx context.Context) (*Application, error) {
	wire.Build(
		config.Load,
		logger.New,
		turnstile.NewVerifier,
		newDatabaseConfig,
		newGormDB,
		fileSet,
		reportSet,
		httpserver.New,
		NewApplication,
	)
	return nil, nil
}

func newDatabaseConfig(cfg *config.Config) database.Config {
	return database.Config{
		DSN:             cfg.DatabaseDSN,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		ConnMaxLifetime: cfg.DBConnLifetime,
		LogLevel:        gormlogger.Warn,
	}
}

func newGormDB(ctx context.Context, cfg database.Config, log zerolog.Logger) (*gorm.DB, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, err
	}
	if err := database.AutoMigrate(ctx, db, log); err != nil {
		return nil, err
	}
	return db, nil
}

func provideStorage(ctx context.Context, cfg *config.Config, log zerolog.Logger) (filedomain.Storage, error) {
	return storage.NewS3Storage(ctx, cfg, log)
}
