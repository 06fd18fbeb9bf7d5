package file

import (
	"context"
	"time"
)

// RecordDownload resolves a slug into a freshly presigned URL. The counter
// increment, timestamp refresh, expiration extension and DownloadEvent insert
// commit together; no URL is returned unless they persist.
func (s *Service) RecordDownload(ctx context.Context, publicSlug, requesterHash string) (string, error) {
	stored, err := s.repo.GetBySlug(ctx, publicSlug)
	if err != nil {
		return "", err
	}
	if stored == nil {
		return "", errFileNotFound()
	}

	now := time.Now().UTC()
	event := DownloadEvent{
		FileID:      stored.ID,
		Fingerprint: requesterHash,
		Timestamp:   now,
	}
	// Sliding expiration: any download keeps the file alive for another
	// full retention window.
	if err := s.repo.RecordDownload(ctx, stored.ID, event, now.Add(s.cfg.FileTTL())); err != nil {
		return "", err
	}

	return s.storage.PresignGet(ctx, stored.StorageKey)
}
