//go:build unix

package fs

import (
	"os"
	"syscall"
)

// inode values let copy detect a source file replaced by a rename.

func inodeOf(info os.FileInfo) uint64 {
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return 0
	}
	return uint64(st.Ino)
}
