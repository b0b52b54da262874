// Package worker copies a world into a new snapshot directory and then
// applies retention to the world's backups.
package worker

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"

	"github.com/raoulx24/world-archiver/internal/fs"
	"github.com/raoulx24/world-archiver/internal/logging"
	"github.com/raoulx24/world-archiver/internal/retention"
	"github.com/raoulx24/world-archiver/internal/snapshot"
)

var (
	ErrAlreadyExists = errors.New("backup with this exact name already exists")
	ErrSourceMissing = errors.New("world directory does not exist")
)

// Report summarizes a finished job.
type Report struct {
	Snapshot  string // final snapshot directory
	Files     int
	Bytes     int64
	Retention retention.Result
}

// Worker writes snapshots into the backup root and applies retention.
type Worker struct {
	fs        fs.FS
	log       logging.Logger
	retention *retention.Engine
}

// New creates a worker. A nil filesystem uses the OS.
func New(log logging.Logger, r *retention.Engine, filesystem fs.FS) *Worker {
	if filesystem == nil {
		filesystem = fs.New()
	}
	return &Worker{
		fs:        filesystem,
		log:       log,
		retention: r,
	}
}

// Handle writes a snapshot directory and, when that succeeded, applies
// retention. Retention problems are logged and do not fail the job.
func (w *Worker) Handle(ctx context.Context, job Job) (Report, error) {
	w.log.Info("starting backup", "world", job.World.Name)

	rep, err := w.writeSnapshot(ctx, job)
	if err != nil {
		return rep, err
	}
	w.log.Info("success, backup created",
		"snapshot", filepath.Base(rep.Snapshot),
		"files", rep.Files,
		"size", humanize.Bytes(uint64(rep.Bytes)))

	res, err := w.retention.Apply(ctx, job.World)
	rep.Retention = res
	switch {
	case errors.Is(err, retention.ErrAmbiguous):
		w.log.Warn("aborting old backup deletion", "world", job.World.Name, "error", err)
	case err != nil:
		w.log.Error("worker: retention failed", "world", job.World.Name, "error", err)
	case res.Outcome == retention.Unlimited:
		w.log.Info("no backup limit set, so no need to delete any")
	case res.Outcome == retention.WithinLimit:
		w.log.Info("number of backups is within the limit, so no need to delete any", "count", res.Count)
	case res.Outcome == retention.Deleted:
		w.log.Info("deleted oldest backup", "snapshot", res.Removed.Name, "count", res.Count)
	}

	return rep, nil
}

// writeSnapshot copies the live world into a temporary directory and
// renames it into place. Nothing under the backup root is touched when
// the snapshot name is taken or the world is missing.
func (w *Worker) writeSnapshot(ctx context.Context, job Job) (Report, error) {
	world := job.World
	name := snapshot.FormatName(job.Time)
	finalDir := world.SnapshotPath(name)
	tmpDir := world.SnapshotPath(snapshot.TmpPrefix + name)
	w.log.Debug("new destinations", "tmpDir", tmpDir, "finalDir", finalDir)

	exists, err := w.fs.Exists(finalDir)
	if err != nil {
		return Report{}, fmt.Errorf("checking %s: %w", finalDir, err)
	}
	if exists {
		return Report{}, fmt.Errorf("%w: %s", ErrAlreadyExists, finalDir)
	}

	src, err := w.fs.Stat(world.Dir)
	if err != nil || !src.IsDir() {
		return Report{}, fmt.Errorf("%w: %s", ErrSourceMissing, world.Dir)
	}

	artifacts, err := snapshot.Collect(world.Dir)
	if err != nil {
		return Report{}, err
	}

	if err := w.fs.MkdirAll(world.BackupRoot); err != nil {
		return Report{}, fmt.Errorf("creating backup root: %w", err)
	}
	// the tmp dir is the claim on this name while the copy runs
	if err := w.fs.Mkdir(tmpDir); err != nil {
		if errors.Is(err, os.ErrExist) {
			return Report{}, fmt.Errorf("%w: %s is still being written", ErrAlreadyExists, finalDir)
		}
		return Report{}, fmt.Errorf("creating tmp dir: %w", err)
	}

	rep := Report{Snapshot: finalDir, Bytes: snapshot.TotalSize(artifacts)}
	for _, a := range artifacts {
		copied, err := w.copyArtifact(ctx, a, world.Dir, tmpDir)
		if err != nil {
			_ = w.fs.RemoveAll(tmpDir)
			return Report{}, err
		}
		if copied {
			rep.Files++
		}
	}

	// Finalize atomically
	if err := w.fs.Rename(ctx, tmpDir, finalDir); err != nil {
		_ = w.fs.RemoveAll(tmpDir)
		return Report{}, fmt.Errorf("finalizing snapshot: %w", err)
	}

	return rep, nil
}

// copyArtifact recreates one entry of the world inside the snapshot
// directory. copied is false for directories and skipped entries.
func (w *Worker) copyArtifact(ctx context.Context, a snapshot.Artifact, srcDir, dstDir string) (copied bool, err error) {
	src := filepath.Join(srcDir, a.Name)
	dst := filepath.Join(dstDir, a.Name)

	switch {
	case a.IsDir():
		if err := w.fs.MkdirAll(dst); err != nil {
			return false, fmt.Errorf("creating %s: %w", a.Name, err)
		}
		return false, nil
	case a.IsRegular():
		w.log.Debug("copying artifact", "artifact", a.Name)
		if err := w.fs.CopyFile(ctx, src, dst); err != nil {
			return false, fmt.Errorf("copying %s: %w", a.Name, err)
		}
		return true, nil
	default:
		w.log.Warn("skipping special file", "artifact", a.Name, "mode", a.Mode.String())
		return false, nil
	}
}
