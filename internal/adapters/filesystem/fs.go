// Package filesystem holds the OS-backed adapters: target file access and
// the flat-file artifact store.
package filesystem

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"ruleweaver/internal/ports"
)

// OS implements ports.FileSystem on the local disk
type OS struct{}

var _ ports.FileSystem = OS{}

// ReadFile reads path
func (OS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// Stat returns file info for path
func (OS) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

// WriteFile atomically replaces path, creating parent directories
func (OS) WriteFile(path string, data []byte) error {
	return writeAtomic(path, data, 0644)
}

// Remove deletes path
func (OS) Remove(path string) error {
	return os.Remove(path)
}

// writeAtomic writes to a temp file in the same directory and renames it over path.
// An existing file keeps its permissions.
func writeAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if info, err := os.Stat(path); err == nil {
		if info.IsDir() {
			return fmt.Errorf("%s is a directory", path)
		}
		perm = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to replace file: %w", err)
	}
	return nil
}
