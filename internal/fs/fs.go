// Package fs defines the filesystem abstraction used by world-archiver.
// It provides the FS interface and the FileInfo type shared across the system.
package fs

import (
	"context"
	"os"
	"time"
)

type FileInfo struct {
	Path  string
	Size  int64
	MTime time.Time
	Mode  os.FileMode
	Inode uint64
}

// IsDir reports whether the entry is a directory.
func (fi FileInfo) IsDir() bool {
	return fi.Mode.IsDir()
}

type FS interface {
	Stat(path string) (FileInfo, error)
	Exists(path string) (bool, error)
	CopyFile(ctx context.Context, src, dst string) error
	Rename(ctx context.Context, oldPath, newPath string) error
	// Mkdir creates a single directory and fails with os.ErrExist when
	// anything is already present at path.
	Mkdir(path string) error
	MkdirAll(path string) error
	RemoveAll(path string) error
}
