// Package storage keeps payment proof files in S3-compatible object storage.
package storage

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	appbilling "github.com/m3shovon/Event-SaaS-Platform/internal/application/billing"
	infraconfig "github.com/m3shovon/Event-SaaS-Platform/internal/infrastructure/config"
	"go.uber.org/zap"
)

// Ensure S3ProofStorage implements ProofStorage
var _ appbilling.ProofStorage = (*S3ProofStorage)(nil)

// S3ProofStorage issues presigned upload URLs against AWS S3 or any
// S3-compatible service (MinIO, R2).
type S3ProofStorage struct {
	client        *s3.Client
	presignClient *s3.PresignClient
	bucket        string
	region        string
	endpoint      string
	publicBaseURL string
	usePathStyle  bool
	defaultExpiry time.Duration
	logger        *zap.Logger
}

// S3ProofStorageOption is a functional option for configuring S3ProofStorage
type S3ProofStorageOption func(*S3ProofStorage)

// WithLogger sets a custom logger for S3ProofStorage
func WithLogger(logger *zap.Logger) S3ProofStorageOption {
	return func(s *S3ProofStorage) {
		s.logger = logger
	}
}

// NewS3ProofStorage creates the storage from configuration. Without static
// keys the default AWS credential chain is used.
func NewS3ProofStorage(ctx context.Context, cfg *infraconfig.StorageConfig, opts ...S3ProofStorageOption) (*S3ProofStorage, error) {
	if cfg == nil {
		return nil, errors.New("storage configuration is required")
	}
	if cfg.Bucket == "" {
		return nil, errors.New("storage bucket is required")
	}
	if (cfg.AccessKeyID == "") != (cfg.SecretAccessKey == "") {
		return nil, errors.New("storage access key id and secret access key must be set together")
	}

	endpoint := strings.TrimRight(cfg.Endpoint, "/")
	if endpoint != "" {
		if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
			endpoint = "https://" + endpoint
		}
		if _, err := url.Parse(endpoint); err != nil {
			return nil, fmt.Errorf("invalid storage endpoint: %w", err)
		}
	}

	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if cfg.AccessKeyID != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.UsePathStyle
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})

	storage := &S3ProofStorage{
		client:        client,
		presignClient: s3.NewPresignClient(client),
		bucket:        cfg.Bucket,
		region:        region,
		endpoint:      endpoint,
		publicBaseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
		usePathStyle:  cfg.UsePathStyle,
		defaultExpiry: cfg.UploadURLExpiry,
		logger:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(storage)
	}
	if storage.defaultExpiry <= 0 {
		storage.defaultExpiry = 15 * time.Minute
	}
	return storage, nil
}

// EnsureBucket creates the bucket if it doesn't exist. Called at startup.
func (s *S3ProofStorage) EnsureBucket(ctx context.Context) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(s.bucket)})
	if err == nil {
		return nil
	}

	var notFound *types.NotFound
	var noSuchBucket *types.NoSuchBucket
	if !errors.As(err, &notFound) && !errors.As(err, &noSuchBucket) {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}

	s.logger.Info("Creating proof storage bucket", zap.String("bucket", s.bucket))
	_, err = s.client.CreateBucket(ctx, &s3.CreateBucketInput{Bucket: aws.String(s.bucket)})
	if err != nil {
		var alreadyOwned *types.BucketAlreadyOwnedByYou
		if errors.As(err, &alreadyOwned) {
			return nil
		}
		return fmt.Errorf("failed to create bucket: %w", err)
	}
	return nil
}

// GenerateUploadURL presigns a PUT for storageKey with the given content type
func (s *S3ProofStorage) GenerateUploadURL(
	ctx context.Context,
	storageKey, contentType string,
	expiresIn time.Duration,
) (string, time.Time, error) {
	if storageKey == "" {
		return "", time.Time{}, errors.New("storage key is required")
	}
	if expiresIn <= 0 {
		expiresIn = s.defaultExpiry
	}

	req, err := s.presignClient.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(storageKey),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(expiresIn))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to generate upload URL: %w", err)
	}

	s.logger.Debug("Presigned proof upload",
		zap.String("key", storageKey),
		zap.Duration("expires_in", expiresIn))
	return req.URL, time.Now().Add(expiresIn), nil
}

// ObjectURL is the unsigned URL of an object: the public base when one is
// configured, otherwise the bucket URL in the configured addressing style
func (s *S3ProofStorage) ObjectURL(storageKey string) string {
	key := strings.TrimLeft(storageKey, "/")
	switch {
	case s.publicBaseURL != "":
		return s.publicBaseURL + "/" + key
	case s.endpoint != "" && s.usePathStyle:
		return s.endpoint + "/" + s.bucket + "/" + key
	case s.endpoint != "":
		u, _ := url.Parse(s.endpoint)
		return u.Scheme + "://" + s.bucket + "." + u.Host + "/" + key
	case s.usePathStyle:
		return fmt.Sprintf("https://s3.%s.amazonaws.com/%s/%s", s.region, s.bucket, key)
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
	}
}

// Bucket returns the bucket name
func (s *S3ProofStorage) Bucket() string {
	return s.bucket
}
