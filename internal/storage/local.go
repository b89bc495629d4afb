package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LocalStorage implements the Storage interface for the local filesystem
type LocalStorage struct {
	outputDir string
}

// NewLocalStorage creates a new local storage instance
func NewLocalStorage(outputDir string) (*LocalStorage, error) {
	if err := os.MkdirAll(outputDir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
	}

	return &LocalStorage{outputDir: outputDir}, nil
}

// GetWriter returns a writer for the named artifact
func (s *LocalStorage) GetWriter(name string) (io.WriteCloser, error) {
	return os.Create(filepath.Join(s.outputDir, name))
}

// GetReader returns a reader for the named artifact
func (s *LocalStorage) GetReader(name string) (io.ReadCloser, error) {
	return os.Open(filepath.Join(s.outputDir, name))
}

// FileExists checks if the named artifact exists
func (s *LocalStorage) FileExists(name string) bool {
	_, err := os.Stat(filepath.Join(s.outputDir, name))
	return err == nil
}
