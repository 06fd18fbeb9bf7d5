package database

import (
	"context"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"minecrox-server/services/pack-api/internal/infrastructure/database/entities"
)

// AutoMigrate applies database schema changes.
func AutoMigrate(ctx context.Context, db *gorm.DB, log zerolog.Logger) error {
	if err := db.WithContext(ctx).AutoMigrate(
		&entities.StoredFile{},
		&entities.DownloadEvent{},
		&entities.Report{},
	); err != nil {
		return err
	}
	log.Info().Msg("applied pack-api migrations")
	return nil
}
