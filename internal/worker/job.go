package worker

import (
	"time"

	"github.com/raoulx24/world-archiver/internal/snapshot"
)

// Job represents one backup of a world.
type Job struct {
	World snapshot.World

	// Time names the snapshot; it is truncated to the second.
	Time time.Time
}
