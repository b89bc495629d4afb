package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/jaki95/song-graph/config"
)

// Storage defines the interface for persisting exported graph artifacts.
type Storage interface {
	GetWriter(name string) (io.WriteCloser, error)

	GetReader(name string) (io.ReadCloser, error)

	FileExists(name string) bool
}

// New returns the storage backend selected by the configuration.
func New(ctx context.Context, cfg *config.Config) (Storage, error) {
	switch cfg.Storage.Type {
	case "local":
		return NewLocalStorage(cfg.Storage.OutputDir)
	case "gcs":
		return NewGCSStorage(ctx, cfg.Storage.Bucket, cfg.Storage.ObjectPrefix, cfg.Storage.CredentialsFile)
	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.Storage.Type)
	}
}
