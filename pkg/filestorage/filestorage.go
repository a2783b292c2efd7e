package filestorage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// FileStorageInterface is the blob store contract: put bytes, get an opaque
// reference back; no identity or size semantics beyond that. Callers are
// expected to validate payloads before Put.
type FileStorageInterface interface {
	Put(data []byte, originalFileName string) (string, error)
	Get(id string) (io.ReadCloser, error)
	Delete(id string) error
}

type LocalFileStorage struct {
	basePath string
}

func NewLocalFileStorage(basePath string) (FileStorageInterface, error) {
	if _, err := os.Stat(basePath); os.IsNotExist(err) {
		if err := os.MkdirAll(basePath, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create storage directory: %w", err)
		}
	}
	return &LocalFileStorage{basePath: basePath}, nil
}

func (s *LocalFileStorage) Put(data []byte, originalFileName string) (string, error) {
	ext := filepath.Ext(originalFileName)
	uniqueFileName := uuid.New().String() + ext

	datePath := time.Now().Format("2006/01/02")
	fullDirPath := filepath.Join(s.basePath, datePath)
	if err := os.MkdirAll(fullDirPath, 0o755); err != nil {
		return "", err
	}

	if err := os.WriteFile(filepath.Join(fullDirPath, uniqueFileName), data, 0o644); err != nil {
		return "", err
	}

	// The returned reference is opaque to callers; here it happens to be the
	// path relative to basePath.
	return filepath.ToSlash(filepath.Join(datePath, uniqueFileName)), nil
}

func (s *LocalFileStorage) Get(id string) (io.ReadCloser, error) {
	fullPath, err := s.resolve(id)
	if err != nil {
		return nil, err
	}
	return os.Open(fullPath)
}

func (s *LocalFileStorage) Delete(id string) error {
	fullPath, err := s.resolve(id)
	if err != nil {
		return err
	}
	if _, err := os.Stat(fullPath); os.IsNotExist(err) {
		return nil
	}
	return os.Remove(fullPath)
}

func (s *LocalFileStorage) resolve(id string) (string, error) {
	cleaned := filepath.Clean(filepath.FromSlash(id))
	if strings.HasPrefix(cleaned, "..") || filepath.IsAbs(cleaned) {
		return "", fmt.Errorf("invalid blob reference %q", id)
	}
	return filepath.Join(s.basePath, cleaned), nil
}
