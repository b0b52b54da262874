// Package retention keeps the number of snapshots per world under the
// configured limit.
package retention

import (
	"context"
	"errors"
	"fmt"

	"github.com/raoulx24/world-archiver/internal/config"
	"github.com/raoulx24/world-archiver/internal/fs"
	"github.com/raoulx24/world-archiver/internal/logging"
	"github.com/raoulx24/world-archiver/internal/snapshot"
)

// Outcome describes what a retention pass did.
type Outcome int

const (
	// Unlimited: retention is disabled.
	Unlimited Outcome = iota
	// WithinLimit: nothing to delete.
	WithinLimit
	// Deleted: the oldest snapshot was removed.
	Deleted
	// Skipped: the oldest snapshot could not be determined.
	Skipped
)

func (o Outcome) String() string {
	switch o {
	case Unlimited:
		return "unlimited"
	case WithinLimit:
		return "within-limit"
	case Deleted:
		return "deleted"
	case Skipped:
		return "skipped"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Result reports a retention pass.
type Result struct {
	Outcome Outcome
	Count   int               // valid snapshots found
	Removed snapshot.Snapshot // set when Outcome is Deleted
}

type Engine struct {
	cfg config.Config
	fs  fs.FS
	log logging.Logger

	scan func(root string) (snapshot.Population, error)
}

// New creates an engine enforcing cfg. A nil filesystem uses the OS.
func New(cfg config.Config, log logging.Logger, filesystem fs.FS) *Engine {
	if filesystem == nil {
		filesystem = fs.New()
	}
	return &Engine{
		cfg:  cfg,
		fs:   filesystem,
		log:  log,
		scan: snapshot.Scan,
	}
}

// Apply removes at most one snapshot, the oldest, from the world's backup
// root when it holds more than the configured number. The backup root is
// scanned exactly once and the chosen snapshot is deleted by the path
// found in that scan. An ambiguous oldest is reported as ErrAmbiguous with
// Outcome Skipped; nothing is deleted.
func (e *Engine) Apply(ctx context.Context, world snapshot.World) (Result, error) {
	if e.cfg.Unlimited() {
		return Result{Outcome: Unlimited}, nil
	}
	keep := int(e.cfg.BackupsPerWorld)

	pop, err := e.scan(world.BackupRoot)
	if err != nil {
		return Result{}, err
	}

	for _, name := range pop.Malformed {
		e.log.Warn("retention: ignoring folder that is not a backup", "world", world.Name, "folder", name)
	}
	for _, name := range pop.Unfinished {
		e.log.Warn("retention: unfinished backup left by an interrupted run, remove it by hand", "world", world.Name, "folder", name)
	}

	res := Result{Outcome: WithinLimit, Count: pop.Len()}
	if pop.Len() <= keep {
		return res, nil
	}

	e.log.Info("retention: number of backups exceeds the limit", "world", world.Name, "count", pop.Len(), "limit", keep)

	oldest, err := Oldest(pop.Snapshots)
	if err != nil {
		if errors.Is(err, ErrAmbiguous) {
			res.Outcome = Skipped
		}
		return res, err
	}

	if err := ctx.Err(); err != nil {
		return res, err
	}

	if err := e.fs.RemoveAll(oldest.Path); err != nil {
		return res, fmt.Errorf("deleting backup %s: %w", oldest.Name, err)
	}

	res.Outcome = Deleted
	res.Removed = oldest
	res.Count--
	return res, nil
}
