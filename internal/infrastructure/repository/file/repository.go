package file

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	domain "minecrox-server/services/pack-api/internal/domain/file"
	"minecrox-server/services/pack-api/internal/infrastructure/database/entities"
	"minecrox-server/services/pack-api/utils/apperrors"
)

// Repository handles stored file and download event persistence.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetBySlug(ctx context.Context, slug string) (*domain.StoredFile, error) {
	var entity entities.StoredFile
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, dbError("failed to find file by slug", err)
	}
	f := mapEntity(entity)
	return &f, nil
}

func (r *Repository) CountByUploader(ctx context.Context, uploaderHash string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.StoredFile{}).
		Where("uploader_hash = ?", uploaderHash).
		Count(&count).Error
	if err != nil {
		return 0, dbError("failed to count files by uploader", err)
	}
	return count, nil
}

func (r *Repository) Create(ctx context.Context, f *domain.StoredFile) error {
	entity := mapDomain(f)
	if err := r.db.WithContext(ctx).Create(&entity).Error; err != nil {
		return dbError("failed to create file record", err)
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Delete(&entities.StoredFile{}, "id = ?", id).Error; err != nil {
		return dbError("failed to delete file record", err)
	}
	return nil
}

// RecordDownload commits the counter increment, timestamp refresh, sliding
// expiration and the event row in a single transaction. The increment runs
// in the database so concurrent downloads never lose updates.
func (r *Repository) RecordDownload(ctx context.Context, fileID string, ev domain.DownloadEvent, expireAt time.Time) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&entities.StoredFile{}).
			Where("id = ?", fileID).
			Updates(map[string]any{
				"download_count": gorm.Expr("download_count + 1"),
				"last_download":  ev.Timestamp,
				"expire_at":      expireAt,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Create(&entities.DownloadEvent{
			FileID:      ev.FileID,
			Fingerprint: ev.Fingerprint,
			Timestamp:   ev.Timestamp,
		}).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.New(apperrors.LayerRepository, apperrors.TypeNotFound, "file not found", err)
		}
		return dbError("failed to record download", err)
	}
	return nil
}

func (r *Repository) FindExpired(ctx context.Context, now time.Time, limit int) ([]domain.StoredFile, error) {
	var rows []entities.StoredFile
	err := r.db.WithContext(ctx).
		Where("expire_at < ?", now).
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, dbError("failed to query expired files", err)
	}
	out := make([]domain.StoredFile, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapEntity(row))
	}
	return out, nil
}

func (r *Repository) CountDownloadsSince(ctx context.Context, fileID string, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.DownloadEvent{}).
		Where("file_id = ? AND timestamp >= ?", fileID, since).
		Count(&count).Error
	if err != nil {
		return 0, dbError("failed to count recent downloads", err)
	}
	return count, nil
}

func (r *Repository) DeleteDownloadsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("timestamp < ?", cutoff).
		Delete(&entities.DownloadEvent{})
	if res.Error != nil {
		return 0, dbError("failed to prune download events", res.Error)
	}
	return res.RowsAffected, nil
}

func dbError(message string, err error) error {
	return apperrors.New(apperrors.LayerRepository, apperrors.TypeDatabase, message, err)
}

func mapEntity(entity entities.StoredFile) domain.StoredFile {
	return domain.StoredFile{
		ID:               entity.ID,
		Filename:         entity.Filename,
		Slug:             entity.Slug,
		Kind:             domain.Kind(entity.FileType),
		MinecraftVersion: entity.MinecraftVersion,
		Loader:           entity.Loader,
		Description:      entity.Description,
		Tags:             entity.Tags,
		Size:             entity.FileSize,
		StorageKey:       entity.StorageKey,
		SHA1:             entity.SHA1Hash,
		DownloadCount:    entity.DownloadCount,
		CreatedAt:        entity.CreatedAt,
		LastDownload:     entity.LastDownload,
		ExpireAt:         entity.ExpireAt,
		UploaderHash:     entity.UploaderHash,
		DeleteTokenHash:  entity.DeleteTokenHash,
	}
}

func mapDomain(f *domain.StoredFile) entities.StoredFile {
	return entities.StoredFile{
		ID:               f.ID,
		Filename:         f.Filename,
		Slug:             f.Slug,
		FileType:         string(f.Kind),
		MinecraftVersion: f.MinecraftVersion,
		Loader:           f.Loader,
		Description:      f.Description,
		Tags:             f.Tags,
		FileSize:         f.Size,
		StorageKey:       f.StorageKey,
		SHA1Hash:         f.SHA1,
		DownloadCount:    f.DownloadCount,
		CreatedAt:        f.CreatedAt,
		LastDownload:     f.LastDownload,
		ExpireAt:         f.ExpireAt,
		UploaderHash:     f.UploaderHash,
		DeleteTokenHash:  f.DeleteTokenHash,
	}
}
