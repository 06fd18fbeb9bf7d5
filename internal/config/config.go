package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds the environment driven configuration for the pack service.
type Config struct {
	// Service Configuration
	ServiceName     string        `env:"SERVICE_NAME" envDefault:"pack-api"`
	Environment     string        `env:"ENVIRONMENT" envDefault:"development"`
	HTTPPort        int           `env:"PACK_API_PORT" envDefault:"8280"`
	LogLevel        string        `env:"PACK_LOG_LEVEL" envDefault:"info"`
	EnableTracing   bool          `env:"ENABLE_TRACING" envDefault:"false"`
	OTLPEndpoint    string        `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:""`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// Public domain used to build landing-page and download URLs.
	Domain string `env:"DOMAIN" envDefault:"localhost:3000"`

	// Database
	DatabaseDSN    string        `env:"DATABASE_DSN,notEmpty"`
	DBMaxIdleConns int           `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`
	DBMaxOpenConns int           `env:"DB_MAX_OPEN_CONNS" envDefault:"15"`
	DBConnLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"30m"`

	// Upload limits
	MaxUploadBytes      int64 `env:"MAX_UPLOAD_BYTES" envDefault:"104857600"`
	MaxFilesPerUploader int64 `env:"MAX_FILES_PER_UPLOADER" envDefault:"10"`
	SlugLength          int   `env:"SLUG_LENGTH" envDefault:"16"`

	// Retention
	FileExpireDays           int `env:"FILE_EXPIRE_DAYS" envDefault:"3"`
	DownloadLogRetentionDays int `env:"DOWNLOAD_LOG_RETENTION_DAYS" envDefault:"90"`

	// Secret for HMAC hashing of client fingerprints and delete tokens.
	FingerprintSecret string `env:"FINGERPRINT_SECRET" envDefault:"dev-secret-change-me"`

	// S3 Storage Configuration
	S3Endpoint string `env:"PACK_S3_ENDPOINT"`
	// Endpoint used only to generate presigned URLs (publicly reachable
	// hostname). The host of a presigned URL must not change after signing.
	S3PresignEndpoint string        `env:"PACK_S3_PRESIGN_ENDPOINT"`
	S3Region          string        `env:"PACK_S3_REGION" envDefault:"us-east-1"`
	S3Bucket          string        `env:"PACK_S3_BUCKET" envDefault:"minecrox-dev"`
	S3AccessKeyID     string        `env:"PACK_S3_ACCESS_KEY_ID"`
	S3SecretKey       string        `env:"PACK_S3_SECRET_ACCESS_KEY"`
	S3UsePathStyle    bool          `env:"PACK_S3_USE_PATH_STYLE" envDefault:"true"`
	S3PresignTTL      time.Duration `env:"PACK_S3_PRESIGN_TTL" envDefault:"10m"`

	// Maintenance
	EnableScheduler     bool          `env:"ENABLE_SCHEDULER" envDefault:"false"`
	MaintenanceInterval time.Duration `env:"MAINTENANCE_INTERVAL" envDefault:"1h"`
	SweepBatchSize      int           `env:"SWEEP_BATCH_SIZE" envDefault:"200"`

	// Rate limits (token bucket refill interval + burst)
	UploadRateEvery   time.Duration `env:"RATE_LIMIT_UPLOAD_EVERY" envDefault:"20m"`
	UploadBurst       int           `env:"RATE_LIMIT_UPLOAD_BURST" envDefault:"3"`
	DownloadRateEvery time.Duration `env:"RATE_LIMIT_DOWNLOAD_EVERY" envDefault:"2s"`
	DownloadBurst     int           `env:"RATE_LIMIT_DOWNLOAD_BURST" envDefault:"30"`

	// Cloudflare Turnstile
	TurnstileEnabled   bool   `env:"TURNSTILE_ENABLED" envDefault:"false"`
	TurnstileSecretKey string `env:"TURNSTILE_SECRET_KEY"`
	TurnstileHostname  string `env:"TURNSTILE_EXPECTED_HOSTNAME"`

	// CORS
	CORSOrigins string `env:"CORS_ORIGINS" envDefault:"http://localhost:3000"`
}

// Load parses environment variables into Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env config: %w", err)
	}

	cfg.S3Bucket = strings.TrimSpace(cfg.S3Bucket)
	cfg.S3AccessKeyID = strings.TrimSpace(cfg.S3AccessKeyID)
	cfg.S3SecretKey = strings.TrimSpace(cfg.S3SecretKey)
	cfg.S3Endpoint = strings.TrimSpace(cfg.S3Endpoint)
	cfg.S3PresignEndpoint = strings.TrimSpace(cfg.S3PresignEndpoint)
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 100 * 1024 * 1024
	}
	if cfg.SlugLength < 8 {
		return nil, fmt.Errorf("SLUG_LENGTH must be at least 8, got %d", cfg.SlugLength)
	}
	if cfg.TurnstileEnabled && strings.TrimSpace(cfg.TurnstileSecretKey) == "" {
		return nil, fmt.Errorf("TURNSTILE_SECRET_KEY is required when TURNSTILE_ENABLED is true")
	}
	return cfg, nil
}

// Addr returns the HTTP listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

// FileTTL returns the sliding expiration window for stored files.
func (c *Config) FileTTL() time.Duration {
	return time.Duration(c.FileExpireDays) * 24 * time.Hour
}

// DownloadLogRetention returns the retention window for download events.
func (c *Config) DownloadLogRetention() time.Duration {
	return time.Duration(c.DownloadLogRetentionDays) * 24 * time.Hour
}

// LandingPageURL builds the permanent landing page URL for a slug.
func (c *Config) LandingPageURL(slug string) string {
	return fmt.Sprintf("https://%s/files/%s", c.Domain, slug)
}

// DownloadURL builds the stable download redirect URL for a slug.
func (c *Config) DownloadURL(slug string) string {
	return fmt.Sprintf("https://%s/download/%s", c.Domain, slug)
}

// CORSOriginList splits the configured origins and, in production, always
// includes the public domain origin so misloaded env vars cannot break CORS.
func (c *Config) CORSOriginList() []string {
	var origins []string
	for _, part := range strings.Split(c.CORSOrigins, ",") {
		if v := strings.TrimSpace(part); v != "" {
			origins = append(origins, v)
		}
	}
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}
	if c.Environment == "production" {
		domain := strings.TrimSpace(c.Domain)
		if domain != "" {
			prodOrigin := domain
			if !strings.HasPrefix(domain, "http://") && !strings.HasPrefix(domain, "https://") {
				prodOrigin = "https://" + domain
			}
			found := false
			for _, o := range origins {
				if o == prodOrigin {
					found = true
					break
				}
			}
			if !found {
				origins = append(origins, prodOrigin)
			}
		}
	}
	return origins
}
