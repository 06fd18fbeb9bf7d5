package file

import (
	"context"
	"time"
)

// SweepExpired purges files whose expiration has passed, up to batchSize per
// call. The storage object is deleted before the record; a failure on either
// step skips that file (it stays for the next cycle) rather than aborting
// the batch. Returns the number of files fully purged.
func (s *Service) SweepExpired(ctx context.Context, batchSize int) (int, error) {
	expired, err := s.repo.FindExpired(ctx, time.Now().UTC(), batchSize)
	if err != nil {
		return 0, err
	}

	purged := 0
	for i := range expired {
		f := &expired[i]
		if err := s.storage.Delete(ctx, f.StorageKey); err != nil {
			s.log.Error().Err(err).Str("file_id", f.ID).Str("key", f.StorageKey).
				Msg("sweep: storage delete failed, will retry next cycle")
			continue
		}
		if err := s.repo.Delete(ctx, f.ID); err != nil {
			s.log.Error().Err(err).Str("file_id", f.ID).
				Msg("sweep: record delete failed, will retry next cycle")
			continue
		}
		purged++
	}
	if purged > 0 {
		s.log.Info().Int("purged", purged).Int("expired", len(expired)).Msg("swept expired files")
	}
	return purged, nil
}

// PruneDownloadLogs bulk-deletes download events older than the configured
// retention window and returns the number of rows removed.
func (s *Service) PruneDownloadLogs(ctx context.Context) (int64, error) {
	cutoff := time.Now().UTC().Add(-s.cfg.DownloadLogRetention())
	pruned, err := s.repo.DeleteDownloadsBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	if pruned > 0 {
		s.log.Info().Int64("pruned", pruned).Time("cutoff", cutoff).Msg("pruned download logs")
	}
	return pruned, nil
}
