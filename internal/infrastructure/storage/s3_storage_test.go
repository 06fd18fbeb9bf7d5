package storage

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minecrox-server/services/pack-api/internal/config"
	"minecrox-server/services/pack-api/utils/apperrors"
)

func TestBuildKey(t *testing.T) {
	s := &S3Storage{}
	at := time.Date(2026, time.March, 7, 12, 0, 0, 0, time.UTC)

	key := s.BuildKey("mcx_01hqxyz", "my-pack.zip", at)
	assert.Equal(t, "files/2026/03/mcx_01hqxyz/my-pack.zip", key)
}

func TestBuildKeyStripsDirectories(t *testing.T) {
	s := &S3Storage{}
	at := time.Date(2026, time.December, 1, 0, 0, 0, 0, time.UTC)

	key := s.BuildKey("mcx_01hqxyz", "../nested/dir/pack.zip", at)
	assert.Equal(t, "files/2026/12/mcx_01hqxyz/pack.zip", key)
}

func TestNewS3StorageDisabledWithoutCredentials(t *testing.T) {
	cfg := &config.Config{S3Bucket: "", S3PresignTTL: 10 * time.Minute}

	s, err := NewS3Storage(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	require.True(t, s.disabled)

	err = s.Upload(context.Background(), "/tmp/nothing.zip", "files/key")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.TypeExternal))

	_, err = s.PresignGet(context.Background(), "files/key")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.TypeExternal))

	// EnsureBucket and Health are no-ops while disabled.
	assert.NoError(t, s.EnsureBucket(context.Background()))
	assert.NoError(t, s.Health(context.Background()))
}
