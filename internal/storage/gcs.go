package storage

import (
	"context"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// GCSStorage implements the Storage interface for Google Cloud Storage
type GCSStorage struct {
	client       *storage.Client
	bucket       string
	objectPrefix string
	ctx          context.Context
}

// NewGCSStorage creates a new GCSStorage instance
func NewGCSStorage(ctx context.Context, bucketName, objectPrefix, credentialsFile string) (*GCSStorage, error) {
	var client *storage.Client
	var err error

	if credentialsFile != "" {
		client, err = storage.NewClient(ctx, option.WithCredentialsFile(credentialsFile))
	} else {
		// Use application default credentials
		client, err = storage.NewClient(ctx)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client: %w", err)
	}

	return &GCSStorage{
		client:       client,
		bucket:       bucketName,
		objectPrefix: objectPrefix,
		ctx:          ctx,
	}, nil
}

func (s *GCSStorage) objectName(name string) string {
	if s.objectPrefix != "" {
		return s.objectPrefix + "/" + name
	}
	return name
}

// GetWriter returns a writer for the named artifact. The object becomes
// visible only once the writer is closed without error.
func (s *GCSStorage) GetWriter(name string) (io.WriteCloser, error) {
	return s.client.Bucket(s.bucket).Object(s.objectName(name)).NewWriter(s.ctx), nil
}

// GetReader returns a reader for the named artifact
func (s *GCSStorage) GetReader(name string) (io.ReadCloser, error) {
	return s.client.Bucket(s.bucket).Object(s.objectName(name)).NewReader(s.ctx)
}

// FileExists checks if the named artifact exists in the bucket
func (s *GCSStorage) FileExists(name string) bool {
	_, err := s.client.Bucket(s.bucket).Object(s.objectName(name)).Attrs(s.ctx)
	return err == nil
}
