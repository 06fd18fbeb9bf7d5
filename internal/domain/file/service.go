package file

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"minecrox-server/services/pack-api/internal/config"
	"minecrox-server/services/pack-api/utils/apperrors"
	"minecrox-server/services/pack-api/utils/fileid"
	"minecrox-server/services/pack-api/utils/fingerprint"
	"minecrox-server/services/pack-api/utils/slug"
)

// copyChunkSize bounds memory usage while streaming an upload to scratch.
const copyChunkSize = 1 << 20

const slugAttempts = 10

// Service orchestrates upload ingestion, metadata reads, deletion, download
// lifecycle and expiry maintenance for stored archives.
type Service struct {
	cfg     *config.Config
	repo    Repository
	storage Storage
	log     zerolog.Logger
}

func NewService(cfg *config.Config, repo Repository, storage Storage, log zerolog.Logger) *Service {
	return &Service{
		cfg:     cfg,
		repo:    repo,
		storage: storage,
		log:     log.With().Str("component", "file-service").Logger(),
	}
}

// UploadMeta carries the optional descriptive fields submitted alongside the
// archive. Values are trimmed and truncated to their column widths.
type UploadMeta struct {
	MinecraftVersion string
	Loader           string
	Description      string
	Tags             string
}

func (m UploadMeta) normalized() UploadMeta {
	return UploadMeta{
		MinecraftVersion: truncate(strings.TrimSpace(m.MinecraftVersion), 64),
		Loader:           truncate(strings.TrimSpace(m.Loader), 64),
		Description:      truncate(strings.TrimSpace(m.Description), 2000),
		Tags:             truncate(strings.TrimSpace(m.Tags), 512),
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

// Upload streams src to scratch storage while hashing and size-checking,
// classifies the archive, allocates a slug, persists the object and then the
// metadata record. The scratch file is removed on every exit path.
func (s *Service) Upload(ctx context.Context, src io.Reader, filename, uploaderHash string, meta UploadMeta) (*UploadResult, error) {
	filename = filepath.Base(strings.TrimSpace(filename))
	if filename == "" || filename == "." || filename == string(filepath.Separator) {
		return nil, apperrors.New(apperrors.LayerDomain, apperrors.TypeValidation, "missing filename", nil)
	}
	if !strings.EqualFold(filepath.Ext(filename), ".zip") {
		return nil, apperrors.New(apperrors.LayerDomain, apperrors.TypeValidation, "only .zip files are supported", nil)
	}

	// Anti-abuse: cap the number of stored files per uploader.
	existing, err := s.repo.CountByUploader(ctx, uploaderHash)
	if err != nil {
		return nil, err
	}
	if existing >= s.cfg.MaxFilesPerUploader {
		return nil, apperrors.New(apperrors.LayerDomain, apperrors.TypeTooManyRequests,
			"upload limit reached for this address", nil)
	}

	scratch, err := os.CreateTemp("", "pack-upload-*")
	if err != nil {
		return nil, apperrors.New(apperrors.LayerDomain, apperrors.TypeInternal, "create scratch file", err)
	}
	scratchPath := scratch.Name()
	defer func() {
		scratch.Close()
		if err := os.Remove(scratchPath); err != nil && !os.IsNotExist(err) {
			s.log.Warn().Err(err).Str("path", scratchPath).Msg("failed to remove scratch file")
		}
	}()

	size, digest, err := s.streamToScratch(ctx, src, scratch)
	if err != nil {
		return nil, err
	}

	kind, err := ClassifyArchive(scratchPath)
	if err != nil {
		return nil, err
	}

	publicSlug, err := s.allocateSlug(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	id := fileid.New()
	deleteToken := strings.ReplaceAll(uuid.NewString(), "-", "")

	key := s.storage.BuildKey(id, filename, now)
	if err := s.storage.Upload(ctx, scratchPath, key); err != nil {
		return nil, err
	}

	meta = meta.normalized()
	stored := &StoredFile{
		ID:               id,
		Filename:         filename,
		Slug:             publicSlug,
		Kind:             kind,
		MinecraftVersion: meta.MinecraftVersion,
		Loader:           meta.Loader,
		Description:      meta.Description,
		Tags:             meta.Tags,
		Size:             size,
		StorageKey:       key,
		SHA1:             digest,
		DownloadCount:    0,
		CreatedAt:        now,
		ExpireAt:         now.Add(s.cfg.FileTTL()),
		UploaderHash:     uploaderHash,
		DeleteTokenHash:  fingerprint.Hash(s.cfg.FingerprintSecret, deleteToken),
	}
	if err := s.repo.Create(ctx, stored); err != nil {
		// The object was written but the record will never exist; remove it
		// so the bucket does not accumulate unreachable blobs.
		if delErr := s.storage.Delete(ctx, key); delErr != nil {
			s.log.Error().Err(delErr).Str("key", key).Msg("failed to remove orphaned object after metadata failure")
		}
		return nil, err
	}

	result := &UploadResult{
		ID:             id,
		Slug:           publicSlug,
		LandingPageURL: s.cfg.LandingPageURL(publicSlug),
		DeleteToken:    deleteToken,
	}
	if kind == KindResourcePack {
		downloadURL := s.cfg.DownloadURL(publicSlug)
		result.ResourcePack = &ResourcePackInfo{
			DownloadURL: downloadURL,
			SHA1:        digest,
			ServerPropertiesSnippet: fmt.Sprintf(
				"resource-pack=%s\nresource-pack-sha1=%s\n", downloadURL, digest),
		}
	}

	s.log.Info().
		Str("file_id", id).
		Str("kind", string(kind)).
		Int64("bytes", size).
		Msg("stored uploaded archive")
	return result, nil
}

// streamToScratch copies src to out in fixed-size chunks, updating the SHA-1
// digest per chunk and aborting the moment the size ceiling is crossed.
func (s *Service) streamToScratch(ctx context.Context, src io.Reader, out *os.File) (int64, string, error) {
	hasher := sha1.New()
	buf := make([]byte, copyChunkSize)
	var size int64
	for {
		if err := ctx.Err(); err != nil {
			return 0, "", apperrors.New(apperrors.LayerDomain, apperrors.TypeValidation, "upload cancelled", err)
		}
		n, readErr := src.Read(buf)
		if n > 0 {
			size += int64(n)
			if size > s.cfg.MaxUploadBytes {
				return 0, "", apperrors.New(apperrors.LayerDomain, apperrors.TypePayloadTooLarge,
					fmt.Sprintf("file too large (max %d bytes)", s.cfg.MaxUploadBytes), nil)
			}
			hasher.Write(buf[:n])
			if _, err := out.Write(buf[:n]); err != nil {
				return 0, "", apperrors.New(apperrors.LayerDomain, apperrors.TypeInternal, "write scratch file", err)
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return 0, "", apperrors.New(apperrors.LayerDomain, apperrors.TypeValidation, "read upload stream", readErr)
		}
	}
	if err := out.Close(); err != nil {
		return 0, "", apperrors.New(apperrors.LayerDomain, apperrors.TypeInternal, "flush scratch file", err)
	}
	return size, hex.EncodeToString(hasher.Sum(nil)), nil
}

// allocateSlug draws random slugs until one is unused. Exhausting the retry
// bound at this entropy signals a persistence problem, not collisions.
func (s *Service) allocateSlug(ctx context.Context) (string, error) {
	for i := 0; i < slugAttempts; i++ {
		candidate, err := slug.Generate(s.cfg.SlugLength)
		if err != nil {
			return "", apperrors.New(apperrors.LayerDomain, apperrors.TypeInternal, "generate slug", err)
		}
		existing, err := s.repo.GetBySlug(ctx, candidate)
		if err != nil {
			return "", err
		}
		if existing == nil {
			return candidate, nil
		}
	}
	return "", apperrors.New(apperrors.LayerDomain, apperrors.TypeInternal,
		"failed to allocate a unique slug", nil)
}

// GetBySlug returns the stored file's metadata.
func (s *Service) GetBySlug(ctx context.Context, publicSlug string) (*StoredFile, error) {
	stored, err := s.repo.GetBySlug(ctx, publicSlug)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, errFileNotFound()
	}
	return stored, nil
}

// Delete removes the storage object and the metadata record once the
// presented delete token matches the stored salted hash.
func (s *Service) Delete(ctx context.Context, publicSlug, deleteToken string) error {
	stored, err := s.repo.GetBySlug(ctx, publicSlug)
	if err != nil {
		return err
	}
	if stored == nil {
		return errFileNotFound()
	}

	presented := fingerprint.Hash(s.cfg.FingerprintSecret, deleteToken)
	if !fingerprint.Equal(presented, stored.DeleteTokenHash) {
		return apperrors.New(apperrors.LayerDomain, apperrors.TypeForbidden, "invalid delete token", nil)
	}

	if err := s.storage.Delete(ctx, stored.StorageKey); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, stored.ID); err != nil {
		return err
	}
	s.log.Info().Str("file_id", stored.ID).Msg("deleted file by token request")
	return nil
}

// Analytics returns lifetime and same-day (UTC) download counts.
func (s *Service) Analytics(ctx context.Context, publicSlug string) (*Analytics, error) {
	stored, err := s.repo.GetBySlug(ctx, publicSlug)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, errFileNotFound()
	}

	now := time.Now().UTC()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	today, err := s.repo.CountDownloadsSince(ctx, stored.ID, startOfDay)
	if err != nil {
		return nil, err
	}

	return &Analytics{
		Slug:           stored.Slug,
		DownloadCount:  stored.DownloadCount,
		LastDownload:   stored.LastDownload,
		TodayDownloads: today,
		Today:          now.Format("2006-01-02"),
	}, nil
}

func errFileNotFound() error {
	return apperrors.New(apperrors.LayerDomain, apperrors.TypeNotFound, "file not found", nil)
}
