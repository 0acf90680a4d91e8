package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"github.com/nibzard/tasklist/internal/datadir"
)

// lockRetryDelay is how often a blocked writer retries the lock.
const lockRetryDelay = 50 * time.Millisecond

// FileBackend stores each key in its own JSON file inside the data dir.
// Writes go to a temp file that is renamed over the target, so readers
// never see a partial value. A lock file serializes writers across
// processes.
type FileBackend struct {
	dir string
	flk *flock.Flock
}

// NewFileBackend creates the data dir if needed and returns a backend rooted there.
func NewFileBackend(dir string) (*FileBackend, error) {
	if dir == "" {
		return nil, fmt.Errorf("data dir is empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &FileBackend{
		dir: dir,
		flk: flock.New(datadir.LockPath(dir)),
	}, nil
}

// Path returns the file holding key.
func (f *FileBackend) Path(key string) string {
	return datadir.KeyPath(f.dir, key)
}

func (f *FileBackend) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	data, err := os.ReadFile(f.Path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("read %s: %w", key, err)
	}
	return string(data), true, nil
}

func (f *FileBackend) Set(ctx context.Context, key, value string) error {
	locked, err := f.flk.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return fmt.Errorf("lock data dir: %w", err)
	}
	if !locked {
		return fmt.Errorf("lock data dir: not acquired")
	}
	defer func() { _ = f.flk.Unlock() }()

	target := f.Path(key)
	tmp, err := os.CreateTemp(f.dir, filepath.Base(target)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file for %s: %w", key, err)
	}
	tmpPath := tmp.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	if _, err := tmp.WriteString(value); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file for %s: %w", key, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp file for %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file for %s: %w", key, err)
	}
	if err := os.Rename(tmpPath, target); err != nil {
		return fmt.Errorf("replace %s: %w", target, err)
	}
	return nil
}

// UpdatedAt returns the modification time of the file holding key.
func (f *FileBackend) UpdatedAt(ctx context.Context, key string) (time.Time, bool, error) {
	if err := ctx.Err(); err != nil {
		return time.Time{}, false, err
	}
	info, err := os.Stat(f.Path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, fmt.Errorf("stat %s: %w", key, err)
	}
	return info.ModTime(), true, nil
}

// Close releases the writer lock if this process still holds it.
func (f *FileBackend) Close() error {
	if f.flk != nil {
		return f.flk.Unlock()
	}
	return nil
}

func (f *FileBackend) Name() string { return BackendFile }
