package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileStore keeps each key in its own file under a directory. Writes go
// through a temp file and rename so a crash mid-save never truncates the
// stored diagram.
type FileStore struct {
	dir string
}

// NewFileStore creates the backing directory if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (fs *FileStore) path(key string) string {
	// Keys are dotted identifiers; keep them filesystem-safe.
	return filepath.Join(fs.dir, strings.ReplaceAll(key, string(filepath.Separator), "_")+".json")
}

// Get reads a key's value, reporting absence without error.
func (fs *FileStore) Get(key string) (string, bool, error) {
	data, err := os.ReadFile(fs.path(key))
	if os.IsNotExist(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return string(data), true, nil
}

// Put writes a key's value atomically.
func (fs *FileStore) Put(key, value string) error {
	target := fs.path(key)
	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, []byte(value), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, target)
}

// Close is a no-op for the file backend.
func (fs *FileStore) Close() error {
	return nil
}
