package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"

	"minecrox-server/services/pack-api/internal/config"
	"minecrox-server/services/pack-api/internal/infrastructure/metrics"
	"minecrox-server/services/pack-api/utils/apperrors"
)

var errStorageDisabled = errors.New("object storage is not configured; set PACK_S3_* to enable uploads")

// S3Storage handles object uploads, deletes and presigned download URLs
// against S3-compatible storage. Presigned URLs are minted by a dedicated
// client bound to the public presign endpoint so the signed host never
// differs from what clients can reach.
type S3Storage struct {
	bucket   string
	client   *s3.Client
	presign  *s3.PresignClient
	ttl      time.Duration
	log      zerolog.Logger
	disabled bool
}

func NewS3Storage(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*S3Storage, error) {
	logger := log.With().Str("component", "s3-storage").Logger()
	storage := &S3Storage{
		bucket: strings.TrimSpace(cfg.S3Bucket),
		ttl:    cfg.S3PresignTTL,
		log:    logger,
	}

	accessKey := strings.TrimSpace(cfg.S3AccessKeyID)
	secretKey := strings.TrimSpace(cfg.S3SecretKey)
	if storage.bucket == "" || accessKey == "" || secretKey == "" {
		logger.Warn().Msg("PACK_S3_BUCKET or credentials are not set; uploads will be disabled until configured")
		storage.disabled = true
		return storage, nil
	}

	client, err := newClient(ctx, cfg, cfg.S3Endpoint)
	if err != nil {
		return nil, err
	}
	storage.client = client

	// Presigning uses the publicly reachable endpoint when one is
	// configured; otherwise the internal endpoint serves both roles.
	presignBase := client
	if cfg.S3PresignEndpoint != "" && cfg.S3PresignEndpoint != cfg.S3Endpoint {
		presignBase, err = newClient(ctx, cfg, cfg.S3PresignEndpoint)
		if err != nil {
			return nil, err
		}
	}
	storage.presign = s3.NewPresignClient(presignBase)

	return storage, nil
}

func newClient(ctx context.Context, cfg *config.Config, endpoint string) (*s3.Client, error) {
	resolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
		if endpoint != "" {
			return aws.Endpoint{
				URL:           endpoint,
				PartitionID:   "aws",
				SigningRegion: cfg.S3Region,
			}, nil
		}
		return aws.Endpoint{}, &aws.EndpointNotFoundError{}
	})

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.S3AccessKeyID, cfg.S3SecretKey, "")),
		awsconfig.WithEndpointResolverWithOptions(resolver),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.S3UsePathStyle
	}), nil
}

func (s *S3Storage) ensureEnabled() error {
	if s.disabled {
		return apperrors.New(apperrors.LayerInfrastructure, apperrors.TypeExternal,
			"object storage unavailable", errStorageDisabled)
	}
	return nil
}

// BuildKey returns the deterministic object key for a file, partitioned by
// upload month: files/<year>/<month>/<fileID>/<basename>.
func (s *S3Storage) BuildKey(fileID, filename string, now time.Time) string {
	return fmt.Sprintf("files/%04d/%02d/%s/%s",
		now.UTC().Year(), int(now.UTC().Month()), fileID, path.Base(filename))
}

// Upload transfers the local file to the bucket as a single PutObject, so a
// failure never leaves a partially-visible object.
func (s *S3Storage) Upload(ctx context.Context, localPath, key string) error {
	if err := s.ensureEnabled(); err != nil {
		return err
	}

	f, err := os.Open(localPath)
	if err != nil {
		return apperrors.New(apperrors.LayerInfrastructure, apperrors.TypeInternal, "open local object", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return apperrors.New(apperrors.LayerInfrastructure, apperrors.TypeInternal, "stat local object", err)
	}

	start := time.Now()
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          f,
		ContentLength: aws.Int64(info.Size()),
		ContentType:   aws.String("application/zip"),
	})
	metrics.RecordS3Operation("put_object", statusLabel(err), time.Since(start).Seconds())
	if err != nil {
		return apperrors.New(apperrors.LayerInfrastructure, apperrors.TypeExternal, "upload object", err)
	}
	return nil
}

// Delete removes the object. A missing key is not an error.
func (s *S3Storage) Delete(ctx context.Context, key string) error {
	if err := s.ensureEnabled(); err != nil {
		return err
	}

	start := time.Now()
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	metrics.RecordS3Operation("delete_object", statusLabel(err), time.Since(start).Seconds())
	if err != nil {
		return apperrors.New(apperrors.LayerInfrastructure, apperrors.TypeExternal, "delete object", err)
	}
	return nil
}

// PresignGet mints a time-boxed URL granting read access to one object.
func (s *S3Storage) PresignGet(ctx context.Context, key string) (string, error) {
	if err := s.ensureEnabled(); err != nil {
		return "", err
	}

	start := time.Now()
	req, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(s.ttl))
	metrics.RecordPresign(time.Since(start).Seconds())
	if err != nil {
		return "", apperrors.New(apperrors.LayerInfrastructure, apperrors.TypeExternal, "presign download url", err)
	}
	return req.URL, nil
}

// EnsureBucket creates the bucket if it does not exist. Callers treat
// failure as non-fatal; production buckets are pre-provisioned.
func (s *S3Storage) EnsureBucket(ctx context.Context) error {
	if s.disabled {
		return nil
	}
	if _, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(s.bucket)}); err == nil {
		return nil
	}
	if _, err := s.client.CreateBucket(ctx, &s3.CreateBucketInput{Bucket: aws.String(s.bucket)}); err != nil {
		return apperrors.New(apperrors.LayerInfrastructure, apperrors.TypeExternal, "create bucket", err)
	}
	s.log.Info().Str("bucket", s.bucket).Msg("created storage bucket")
	return nil
}

// Health performs a HeadBucket request.
func (s *S3Storage) Health(ctx context.Context) error {
	if s.disabled {
		return nil
	}
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(s.bucket)})
	return err
}

func statusLabel(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
