// Package snapshot names, parses and lists the timestamped backup
// directories kept for each world.
package snapshot

// Snapshot represents a single archived copy of a world found on disk.
type Snapshot struct {
	Name  string
	Path  string
	Stamp Timestamp

	// Index is the rank of the directory within one Scan. It is only
	// meaningful inside the Population that produced it.
	Index int
}
