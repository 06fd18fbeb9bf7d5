package report

import (
	"context"

	"gorm.io/gorm"

	domain "minecrox-server/services/pack-api/internal/domain/report"
	"minecrox-server/services/pack-api/internal/infrastructure/database/entities"
	"minecrox-server/services/pack-api/utils/apperrors"
)

// Repository handles abuse report persistence.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, rep *domain.Report) error {
	entity := entities.Report{
		Slug:         rep.Slug,
		Reason:       rep.Reason,
		Email:        rep.Email,
		ReporterHash: rep.ReporterHash,
		CreatedAt:    rep.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&entity).Error; err != nil {
		return apperrors.New(apperrors.LayerRepository, apperrors.TypeDatabase,
			"failed to create report", err)
	}
	rep.ID = entity.ID
	return nil
}
