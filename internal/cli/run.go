package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/raoulx24/world-archiver/internal/config"
	"github.com/raoulx24/world-archiver/internal/logging"
	"github.com/raoulx24/world-archiver/internal/retention"
	"github.com/raoulx24/world-archiver/internal/server"
	"github.com/raoulx24/world-archiver/internal/snapshot"
	"github.com/raoulx24/world-archiver/internal/worker"
)

var ErrServerDirMissing = errors.New("the passed directory does not exist")

// normalizeDir accepts both separators, as server paths are often pasted
// from Windows.
func normalizeDir(dir string) string {
	return filepath.Clean(filepath.FromSlash(strings.ReplaceAll(dir, `\`, "/")))
}

func run(ctx context.Context, stdout io.Writer, dir string, files Files) error {
	dir = normalizeDir(dir)
	if st, err := os.Stat(dir); err != nil || !st.IsDir() {
		return fmt.Errorf("%w: %s", ErrServerDirMissing, dir)
	}

	log, closeLog := logging.New(logging.Config{
		File:    files.Log,
		Console: stdout,
		Server:  dir,
	})
	defer func() {
		_ = closeLog()
	}()

	log.Info("beginning server backup")

	name, err := server.WorldName(dir)
	if err != nil {
		log.Error("failed to determine world name", "error", err)
		log.Error("is world-archiver in the server's directory, or was the server's correct directory passed?")
		log.Error("has the server been properly set up?")
		log.Error("aborting backup")
		return err
	}
	log.Info("world name detected", "world", name)

	cfg, created, err := config.Load(files.Config)
	if err != nil {
		log.Error("unable to load config", "file", files.Config, "error", err)
		log.Error("aborting backup")
		return err
	}
	if created {
		log.Info("config file not found, created one", "file", files.Config)
	} else {
		log.Info("config loaded", "file", files.Config)
	}
	log.Debug("retention", "backups_per_world", cfg.BackupsPerWorld)

	world := snapshot.NewWorld(dir, name)
	w := worker.New(log, retention.New(cfg, log, nil), nil)

	if _, err := w.Handle(ctx, worker.Job{World: world, Time: time.Now()}); err != nil {
		log.Error("backup failed", "world", name, "error", err)
		log.Error("aborting backup")
		return err
	}

	log.Info("done")
	return nil
}
