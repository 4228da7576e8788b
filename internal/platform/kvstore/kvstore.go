// Package kvstore provides the durable key-value persistence adapter the
// record stores write through. Each key maps to a single file in the data
// directory; values are opaque byte payloads.
package kvstore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

var (
	// ErrKeyNotFound is returned by Get when no value has been stored
	// under the key. Absence is not a failure.
	ErrKeyNotFound = errors.New("key not found")
)

// Store is the persistence contract consumed by the record stores.
type Store interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Remove(key string) error
}

// FileStore persists each key as a file under a base directory. The
// filesystem is injected so tests run against an in-memory fs.
type FileStore struct {
	fs  afero.Fs
	dir string
}

// NewFileStore creates the base directory if needed and returns a store
// rooted there.
func NewFileStore(fs afero.Fs, dir string) (*FileStore, error) {
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir %s: %w", dir, err)
	}
	return &FileStore{fs: fs, dir: dir}, nil
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

func (s *FileStore) Get(key string) ([]byte, error) {
	data, err := afero.ReadFile(s.fs, s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrKeyNotFound
		}
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	return data, nil
}

// Set writes the value through a temp file and rename so a crash mid-write
// never leaves a half-written payload under the key.
func (s *FileStore) Set(key string, value []byte) error {
	tmp := s.path(key) + ".tmp"
	if err := afero.WriteFile(s.fs, tmp, value, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := s.fs.Rename(tmp, s.path(key)); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

func (s *FileStore) Remove(key string) error {
	if err := s.fs.Remove(s.path(key)); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("remove %s: %w", key, err)
	}
	return nil
}
