package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"regexp"
	"strings"
	"time"

	"wedding-gateway/config"
	"wedding-gateway/pkg/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"
)

type ObjectStore interface {
	Upload(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	// PublicURL is derived locally; no network call.
	PublicURL(key string) string
	Delete(ctx context.Context, key string) error
}

// S3API is the slice of the S3 client the store uses.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

type S3ObjectStoreImpl struct {
	client     S3API
	bucket     string
	publicBase string
}

// NewS3ObjectStore builds a store against the backend's S3-compatible storage endpoint.
// backendURL is used for public links: <backendURL>/storage/v1/object/public/<bucket>/<key>.
func NewS3ObjectStore(ctx context.Context, cfg config.StorageConfig, backendURL string) (ObjectStore, error) {
	endpoint := cfg.S3Endpoint
	if endpoint == "" && backendURL != "" {
		endpoint = backendURL + "/storage/v1/s3"
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
		o.UsePathStyle = true
	})

	return NewS3ObjectStoreWithClient(client, cfg.Bucket, backendURL), nil
}

func NewS3ObjectStoreWithClient(client S3API, bucket, backendURL string) ObjectStore {
	return &S3ObjectStoreImpl{
		client:     client,
		bucket:     bucket,
		publicBase: strings.TrimRight(backendURL, "/") + "/storage/v1/object/public/" + bucket,
	}
}

func (s *S3ObjectStoreImpl) Upload(ctx context.Context, key string, body io.Reader, size int64, contentType string) error {
	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   body,
	}
	if size > 0 {
		input.ContentLength = aws.Int64(size)
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	start := time.Now()
	if _, err := s.client.PutObject(ctx, input); err != nil {
		return fmt.Errorf("put object %s: %w", key, err)
	}

	logger.WithComponent("storage").Info("object stored",
		zap.String("bucket", s.bucket),
		zap.String("key", key),
		zap.Int64("size", size),
		zap.Duration("elapsed", time.Since(start)),
	)
	return nil
}

func (s *S3ObjectStoreImpl) PublicURL(key string) string {
	segments := strings.Split(key, "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return s.publicBase + "/" + strings.Join(segments, "/")
}

func (s *S3ObjectStoreImpl) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("delete object %s: %w", key, err)
	}
	return nil
}

var whitespace = regexp.MustCompile(`\s`)

// ObjectKey derives a collision-resistant key: <prefix>/<unix millis>_<name with each whitespace character as "_">.
func ObjectKey(prefix, fileName string, now time.Time) string {
	name := whitespace.ReplaceAllString(fileName, "_")
	name = strings.ReplaceAll(name, "/", "_")
	key := fmt.Sprintf("%d_%s", now.UnixMilli(), name)
	if prefix == "" {
		return key
	}
	return prefix + "/" + key
}
