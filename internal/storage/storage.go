// Package storage persists maintenance attachment files.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// StorageService stores and retrieves attachment files by opaque key.
type StorageService interface {
	// Save writes the file and returns the generated storage key.
	Save(fileName string, reader io.Reader) (key string, size int64, err error)
	Open(key string) (io.ReadCloser, error)
	Delete(key string) error
	Exists(key string) (bool, int64, error)
}

// LocalStorageService implements attachment storage on the local
// filesystem. Keys are uuid-prefixed to avoid collisions between
// identically named uploads.
type LocalStorageService struct {
	uploadDir string
}

func NewLocalStorageService(uploadDir string) (*LocalStorageService, error) {
	dir := filepath.Join(uploadDir, "attachments")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create attachments directory: %w", err)
	}
	return &LocalStorageService{uploadDir: dir}, nil
}

func (s *LocalStorageService) Save(fileName string, reader io.Reader) (string, int64, error) {
	key := uuid.New().String() + "_" + sanitizeFileName(fileName)
	fullPath := filepath.Join(s.uploadDir, key)

	file, err := os.Create(fullPath)
	if err != nil {
		return "", 0, fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	size, err := io.Copy(file, reader)
	if err != nil {
		os.Remove(fullPath)
		return "", 0, fmt.Errorf("failed to write file: %w", err)
	}
	return key, size, nil
}

func (s *LocalStorageService) Open(key string) (io.ReadCloser, error) {
	return os.Open(filepath.Join(s.uploadDir, filepath.Base(key)))
}

func (s *LocalStorageService) Delete(key string) error {
	err := os.Remove(filepath.Join(s.uploadDir, filepath.Base(key)))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

func (s *LocalStorageService) Exists(key string) (bool, int64, error) {
	info, err := os.Stat(filepath.Join(s.uploadDir, filepath.Base(key)))
	if err != nil {
		if os.IsNotExist(err) {
			return false, 0, nil
		}
		return false, 0, err
	}
	return true, info.Size(), nil
}

func sanitizeFileName(name string) string {
	name = filepath.Base(name)
	replacer := strings.NewReplacer(" ", "_", "/", "_", "\\", "_")
	return replacer.Replace(name)
}
