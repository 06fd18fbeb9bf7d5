package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_DSN", "postgres://test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "pack-api", cfg.ServiceName)
	assert.Equal(t, int64(100*1024*1024), cfg.MaxUploadBytes)
	assert.Equal(t, int64(10), cfg.MaxFilesPerUploader)
	assert.Equal(t, 16, cfg.SlugLength)
	assert.Equal(t, 72*time.Hour, cfg.FileTTL())
	assert.Equal(t, 90*24*time.Hour, cfg.DownloadLogRetention())
	assert.Equal(t, ":8280", cfg.Addr())
}

func TestLoadRejectsShortSlugLength(t *testing.T) {
	t.Setenv("DATABASE_DSN", "postgres://test")
	t.Setenv("SLUG_LENGTH", "4")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SLUG_LENGTH")
}

func TestLoadRequiresTurnstileSecretWhenEnabled(t *testing.T) {
	t.Setenv("DATABASE_DSN", "postgres://test")
	t.Setenv("TURNSTILE_ENABLED", "true")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TURNSTILE_SECRET_KEY")
}

func TestURLBuilders(t *testing.T) {
	cfg := &Config{Domain: "packs.example.com"}

	assert.Equal(t, "https://packs.example.com/files/abc123", cfg.LandingPageURL("abc123"))
	assert.Equal(t, "https://packs.example.com/download/abc123", cfg.DownloadURL("abc123"))
}

func TestCORSOriginList(t *testing.T) {
	cfg := &Config{CORSOrigins: "http://localhost:3000, https://staging.example.com"}
	assert.Equal(t,
		[]string{"http://localhost:3000", "https://staging.example.com"},
		cfg.CORSOriginList())

	cfg = &Config{CORSOrigins: " ,"}
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSOriginList())
}

func TestCORSOriginListIncludesProductionDomain(t *testing.T) {
	cfg := &Config{
		Environment: "production",
		Domain:      "packs.example.com",
		CORSOrigins: "https://app.example.com",
	}
	assert.Equal(t,
		[]string{"https://app.example.com", "https://packs.example.com"},
		cfg.CORSOriginList())

	// Already listed: no duplicate.
	cfg.CORSOrigins = "https://packs.example.com"
	assert.Equal(t, []string{"https://packs.example.com"}, cfg.CORSOriginList())
}
