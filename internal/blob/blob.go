// Package blob provides transient local storage for submitted asset bytes.
//
// Assets land here at submission time and are deleted as soon as the
// migration engine has pushed them to the media host; the store is staging
// space, not durable storage. Deleting an absent blob succeeds so the delete
// step stays idempotent under task retries.
package blob

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Store is the boundary the migration engine uses to read and release
// staged asset bytes.
type Store interface {
	// Open returns a reader over the blob's bytes.
	Open(key string) (io.ReadCloser, error)

	// Delete releases the blob. Deleting a missing blob is not an error.
	Delete(key string) error
}

// FileStore keeps blobs as flat files under a base directory, keyed by the
// asset's blob key.
type FileStore struct {
	dir string
}

// NewFileStore creates a FileStore rooted at dir, creating it if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create blob directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Open returns a reader over the blob's bytes.
func (s *FileStore) Open(key string) (io.ReadCloser, error) {
	path, err := s.path(key)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open blob '%s': %w", key, err)
	}
	return f, nil
}

// Delete removes the blob file. A missing file is a successful no-op.
func (s *FileStore) Delete(key string) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete blob '%s': %w", key, err)
	}
	return nil
}

// Put stores bytes under the given key. Used by the submission intake
// surface and by tests.
func (s *FileStore) Put(key string, r io.Reader) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create blob '%s': %w", key, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return fmt.Errorf("failed to write blob '%s': %w", key, err)
	}
	return nil
}

// path resolves a key inside the store, rejecting traversal outside it.
func (s *FileStore) path(key string) (string, error) {
	if key == "" || strings.Contains(key, "..") || strings.ContainsRune(key, os.PathSeparator) {
		return "", fmt.Errorf("invalid blob key '%s'", key)
	}
	return filepath.Join(s.dir, key), nil
}
