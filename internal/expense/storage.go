package expense

import (
	"fmt"
	"os"
	"path/filepath"
)

// Storage defines the interface for receipt file storage
type Storage interface {
	// Save saves a file and returns the path/filename
	Save(filename string, data []byte) (string, error)

	// Get retrieves a file by path
	Get(path string) ([]byte, error)

	// Delete removes a file
	Delete(path string) error
}

// LocalStorage implements the Storage interface over a flat directory of
// receipt uploads
type LocalStorage struct {
	basePath string
}

// NewLocalStorage creates a LocalStorage rooted at basePath, creating the
// directory if needed
func NewLocalStorage(basePath string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("creating storage directory: %w", err)
	}

	return &LocalStorage{
		basePath: basePath,
	}, nil
}

// receiptPath resolves a stored receipt name inside the storage root.
// Receipts are stored flat, so anything with a path separator would
// escape the root and is rejected.
func (l *LocalStorage) receiptPath(name string) (string, error) {
	if name == "" || name != filepath.Base(name) {
		return "", fmt.Errorf("invalid receipt filename: %q", name)
	}
	return filepath.Join(l.basePath, name), nil
}

// Save writes a receipt upload and returns the name it is stored under
func (l *LocalStorage) Save(filename string, data []byte) (string, error) {
	path, err := l.receiptPath(filename)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing file: %w", err)
	}
	return filename, nil
}

// Get reads a stored receipt upload
func (l *LocalStorage) Get(path string) ([]byte, error) {
	fullPath, err := l.receiptPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(fullPath)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}
	return data, nil
}

// Delete removes a stored receipt upload
func (l *LocalStorage) Delete(path string) error {
	fullPath, err := l.receiptPath(path)
	if err != nil {
		return err
	}
	if err := os.Remove(fullPath); err != nil {
		return fmt.Errorf("deleting file: %w", err)
	}
	return nil
}
