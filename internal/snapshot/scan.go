package snapshot

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// TmpPrefix marks a snapshot directory that is still being written.
const TmpPrefix = ".tmp-"

// Population is the result of one Scan of a world's backup root.
type Population struct {
	Snapshots []Snapshot

	// Malformed lists directory names that are not snapshot names.
	// They are not part of Snapshots and are never selected for removal.
	Malformed []string

	// Unfinished lists TmpPrefix directories, left behind by a run that
	// was killed before it could clean up.
	Unfinished []string
}

// Len returns the number of valid snapshots.
func (p Population) Len() int {
	return len(p.Snapshots)
}

// Scan lists the immediate subdirectories of root and parses each name.
// Files and hidden directories are ignored; unfinished snapshots are
// reported separately. A missing root yields an
// empty population.
func Scan(root string) (Population, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return Population{}, nil
		}
		return Population{}, fmt.Errorf("reading backup root: %w", err)
	}

	var pop Population
	for _, ent := range entries {
		name := ent.Name()
		if !ent.IsDir() {
			continue
		}
		if strings.HasPrefix(name, TmpPrefix) {
			pop.Unfinished = append(pop.Unfinished, name)
			continue
		}
		if strings.HasPrefix(name, ".") {
			continue
		}

		ts, err := ParseName(name)
		if err != nil {
			pop.Malformed = append(pop.Malformed, name)
			continue
		}

		pop.Snapshots = append(pop.Snapshots, Snapshot{
			Name:  name,
			Path:  filepath.Join(root, name),
			Stamp: ts,
			Index: len(pop.Snapshots),
		})
	}

	return pop, nil
}
