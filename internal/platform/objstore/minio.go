package objstore

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Store is the narrow object-store interface the modules consume: upload a
// blob under a generated key, delete by keys best-effort.
type Store interface {
	Upload(ctx context.Context, prefix, originalFileName, contentType string, data []byte) (url, key string, err error)
	Delete(ctx context.Context, keys ...string) error
}

// MinioStore implements Store on a MinIO / S3-compatible bucket.
type MinioStore struct {
	client *minio.Client
	bucket string
	logger *slog.Logger
}

// NewMinioStore creates the client and ensures the bucket exists.
func NewMinioStore(endpoint, accessKey, secretKey, bucket string, useSSL bool, logger *slog.Logger) (*MinioStore, error) {
	if logger == nil {
		logger = slog.Default()
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client for endpoint %s: %w", endpoint, err)
	}

	if err := client.MakeBucket(context.Background(), bucket, minio.MakeBucketOptions{}); err != nil {
		exists, existsErr := client.BucketExists(context.Background(), bucket)
		if existsErr != nil || !exists {
			return nil, fmt.Errorf("make/verify bucket %s: %w", bucket, err)
		}
	}

	logger.Info("object store ready",
		slog.String("endpoint", endpoint),
		slog.String("bucket", bucket),
	)

	return &MinioStore{client: client, bucket: bucket, logger: logger}, nil
}

// Upload stores data under a fresh key derived from prefix and the original
// file's extension, and returns the public URL alongside the key.
func (s *MinioStore) Upload(ctx context.Context, prefix, originalFileName, contentType string, data []byte) (string, string, error) {
	ext := filepath.Ext(originalFileName)
	key := fmt.Sprintf("%s/%s%s", prefix, uuid.New().String(), ext)

	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", "", fmt.Errorf("upload object %s to bucket %s: %w", key, s.bucket, err)
	}

	url := fmt.Sprintf("%s/%s/%s", s.client.EndpointURL().String(), s.bucket, key)
	return url, key, nil
}

// Delete removes the given keys. Missing keys are not an error; individual
// failures are logged and do not abort the remaining deletions.
func (s *MinioStore) Delete(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		if key == "" {
			continue
		}
		if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
			s.logger.Warn("object delete failed",
				slog.String("bucket", s.bucket),
				slog.String("key", key),
				slog.Any("error", err),
			)
		}
	}
	return nil
}
