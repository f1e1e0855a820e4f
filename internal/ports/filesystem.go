package ports

import "io/fs"

// FileSystem is the engine's view of target files
type FileSystem interface {
	// ReadFile returns fs.ErrNotExist (wrapped) for missing files
	ReadFile(path string) ([]byte, error)
	Stat(path string) (fs.FileInfo, error)
	// WriteFile replaces path atomically, creating parent directories
	WriteFile(path string, data []byte) error
	Remove(path string) error
}
