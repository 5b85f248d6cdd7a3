/*
Package storage stores user avatar images in S3-compatible object storage.

Clients upload directly to the bucket through presigned URLs; the server only
signs URLs, verifies that an uploaded object exists, and deletes replaced avatars.
*/
package storage

import (
	"context"
	"time"
)

// ServiceConfig holds the configuration required to connect to the storage service.
type ServiceConfig struct {
	S3BucketName      string
	S3Endpoint        string
	S3AccessKeyID     string
	S3SecretAccessKey string
}

// Enabled reports whether enough settings are present to reach a bucket.
func (c ServiceConfig) Enabled() bool {
	return c.S3BucketName != "" && c.S3Endpoint != "" && c.S3AccessKeyID != "" && c.S3SecretAccessKey != ""
}

// StorageService defines the public interface for the file storage service.
type StorageService interface {
	// PresignUpload generates a pre-signed URL for uploading a file.
	PresignUpload(ctx context.Context, key string, mimeType string, fileSize int64, duration time.Duration) (string, error)

	// PresignDownload generates a pre-signed URL for downloading a file.
	PresignDownload(ctx context.Context, key string, duration time.Duration) (string, error)

	// Exists reports whether key has been uploaded.
	Exists(ctx context.Context, key string) (bool, error)

	// Delete removes the file specified by the given key.
	Delete(ctx context.Context, key string) error
}

// NewStorageService is the factory function for StorageService.
// It returns nil, nil when cfg is not Enabled so callers can run without uploads.
func NewStorageService(cfg ServiceConfig) (StorageService, error) {
	if !cfg.Enabled() {
		return nil, nil
	}

	client, err := newS3Client(cfg)
	if err != nil {
		return nil, err
	}
	return client, nil
}
