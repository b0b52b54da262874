package fs

import (
	"context"
	"errors"
	"io"
	"os"
)

// copies one file, retrying while the source is being rewritten.
// A live world is written to by the server, so a copy is only accepted
// when the source looked the same before and after it.

var errSourceChanged = errors.New("source changed during copy")

func copyWithRetry(ctx context.Context, f FS, src, dst string) error {
	return retry(ctx, "copy "+src, func() error {
		before, err := f.Stat(src)
		if err != nil {
			return err
		}

		if err := copyOnce(src, dst, before); err != nil {
			return err
		}

		after, err := f.Stat(src)
		if err != nil {
			return err
		}

		if sourceChanged(before, after) {
			return errSourceChanged
		}
		return nil
	})
}

func sourceChanged(orig, now FileInfo) bool {
	if now.Inode != 0 && orig.Inode != 0 && now.Inode != orig.Inode {
		return true
	}
	if now.MTime.After(orig.MTime) {
		return true
	}
	if now.Size != orig.Size {
		return true
	}
	return false
}

func copyOnce(src, dst string, info FileInfo) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	// an earlier pass may have left a read-only copy behind
	if err := os.Remove(dst); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return err
	}
	defer func() {
		_ = out.Close()
	}()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}

	if err := out.Sync(); err != nil {
		return err
	}

	// keep the source mtime so the copy reflects when the world last changed
	if err := os.Chtimes(dst, info.MTime, info.MTime); err != nil {
		return err
	}

	return out.Chmod(info.Mode.Perm())
}
