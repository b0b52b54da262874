package snapshot

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// Artifact describes a single entry of a live world directory.
type Artifact struct {
	Name    string // path relative to the world directory
	Size    int64
	ModTime time.Time
	Mode    os.FileMode
}

// IsDir reports whether the artifact is a directory.
func (a Artifact) IsDir() bool {
	return a.Mode.IsDir()
}

// IsRegular reports whether the artifact is a plain file.
func (a Artifact) IsRegular() bool {
	return a.Mode.IsRegular()
}

// FromFileInfo constructs an Artifact from a relative path and os.FileInfo.
func FromFileInfo(rel string, info os.FileInfo) Artifact {
	return Artifact{
		Name:    rel,
		ModTime: info.ModTime(),
		Size:    info.Size(),
		Mode:    info.Mode(),
	}
}

// Collect walks dir and returns every entry below it, parents before
// children. The root itself is not included.
func Collect(dir string) ([]Artifact, error) {
	var out []Artifact

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == dir {
			return nil
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}

		info, err := d.Info()
		if err != nil {
			return err
		}

		out = append(out, FromFileInfo(rel, info))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", dir, err)
	}

	return out, nil
}

// TotalSize sums the size of all regular files.
func TotalSize(artifacts []Artifact) int64 {
	var n int64
	for _, a := range artifacts {
		if a.IsRegular() {
			n += a.Size
		}
	}
	return n
}
