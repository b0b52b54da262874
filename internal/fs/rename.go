package fs

import (
	"context"
	"os"
)

// wraps os.Rename with retry logic; used to finalize a snapshot directory.

func renameWithRetry(ctx context.Context, oldPath, newPath string) error {
	return retry(ctx, "rename", func() error {
		return os.Rename(oldPath, newPath)
	})
}
