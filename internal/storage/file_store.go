package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/spf13/afero"
)

const lockFileName = ".lock"

// FileStore keeps one JSON file per key under dir:
//
//	<dir>/<key>.json
//
// Writes go to a temp file that is renamed over the target, so readers never
// observe a half-written value. On the OS filesystem an flock on <dir>/.lock
// serializes access between processes (the server and the CLI may share a
// data directory).
type FileStore struct {
	fs   afero.Fs
	dir  string
	lock *flock.Flock
}

// NewFileStore creates dir if needed and returns a store rooted there.
func NewFileStore(fsys afero.Fs, dir string) (*FileStore, error) {
	if err := fsys.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	store := &FileStore{fs: fsys, dir: dir}
	if _, ok := fsys.(*afero.OsFs); ok {
		store.lock = flock.New(filepath.Join(dir, lockFileName))
	}
	return store, nil
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

func (s *FileStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	if err := validateKey(key); err != nil {
		return nil, false, err
	}

	if s.lock != nil {
		if err := s.lock.RLock(); err != nil {
			return nil, false, fmt.Errorf("acquire read lock: %w", err)
		}
		defer s.lock.Unlock()
	}

	data, err := afero.ReadFile(s.fs, s.path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read %s: %w", key, err)
	}
	return data, true, nil
}

func (s *FileStore) Set(_ context.Context, key string, value []byte) error {
	if err := validateKey(key); err != nil {
		return err
	}

	if s.lock != nil {
		if err := s.lock.Lock(); err != nil {
			return fmt.Errorf("acquire write lock: %w", err)
		}
		defer s.lock.Unlock()
	}

	target := s.path(key)
	tmp := target + ".tmp"
	if err := afero.WriteFile(s.fs, tmp, value, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}

	if err := s.fs.Rename(tmp, target); err != nil {
		_ = s.fs.Remove(tmp)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
