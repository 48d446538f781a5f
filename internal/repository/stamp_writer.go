package repository

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/spf13/afero"
)

const (
	// StampFilePermissions defines the permissions for generated files
	StampFilePermissions = 0644
	// StampDirPermissions defines the permissions for created directories
	StampDirPermissions = 0755
	// LockTimeout defines the maximum time to wait for a lock
	LockTimeout = 10 * time.Second
	// LockRetryInterval defines the interval between lock retry attempts
	LockRetryInterval = 50 * time.Millisecond
)

// StampWriter writes generated version files so that concurrent
// `go generate` runs targeting the same file never interleave.
type StampWriter struct {
	fs FileSystemRepository
	// lockDir holds the lock files. Empty means DefaultLockDir.
	lockDir string
}

// NewStampWriter creates a StampWriter on top of fs.
func NewStampWriter(fs FileSystemRepository, lockDir string) *StampWriter {
	return &StampWriter{fs: fs, lockDir: lockDir}
}

// Write replaces path with data while holding an exclusive lock.
func (w *StampWriter) Write(ctx context.Context, path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := w.fs.MkdirAll(dir, StampDirPermissions); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	lockFile := w.lockFilename(path)
	if err := os.MkdirAll(filepath.Dir(lockFile), StampDirPermissions); err != nil {
		return fmt.Errorf("failed to create lock directory: %w", err)
	}
	lock := flock.New(lockFile)
	lockCtx, cancel := context.WithTimeout(ctx, LockTimeout)
	defer cancel()
	locked, err := acquireLockWithContext(lockCtx, lock)
	if err != nil {
		return fmt.Errorf("failed to acquire lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("could not acquire lock within timeout")
	}
	defer func() {
		if unlockErr := lock.Unlock(); unlockErr != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to unlock file: %v\n", unlockErr)
		}
	}()
	// Write atomically using temp file
	tempFile := path + ".tmp"
	if err := afero.WriteFile(w.fs, tempFile, data, StampFilePermissions); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := w.fs.Rename(tempFile, path); err != nil {
		//nolint:errcheck // best effort cleanup of the temp file
		_ = w.fs.Remove(tempFile)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}

// DefaultLockDir keeps lock files out of the package directory being stamped.
func DefaultLockDir() string {
	return filepath.Join(os.TempDir(), "verstamp-locks")
}

// lockFilename derives the lock from the absolute target path, so two
// targets sharing a base name never contend.
func (w *StampWriter) lockFilename(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	sum := sha256.Sum256([]byte(path))
	name := filepath.Base(path) + "-" + hex.EncodeToString(sum[:8]) + ".lock"
	dir := w.lockDir
	if dir == "" {
		dir = DefaultLockDir()
	}
	return filepath.Join(dir, name)
}

// acquireLockWithContext attempts to acquire an exclusive lock with context support
func acquireLockWithContext(ctx context.Context, lock *flock.Flock) (bool, error) {
	locked, err := lock.TryLock()
	if err != nil || locked {
		return locked, err
	}
	ticker := time.NewTicker(LockRetryInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case <-ticker.C:
			locked, err := lock.TryLock()
			if err != nil {
				return false, err
			}
			if locked {
				return true, nil
			}
		}
	}
}
