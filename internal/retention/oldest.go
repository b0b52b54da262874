package retention

import (
	"errors"
	"fmt"

	"github.com/raoulx24/world-archiver/internal/snapshot"
)

var (
	ErrEmptyPopulation = errors.New("retention: no snapshots to choose from")
	ErrAmbiguous       = errors.New("retention: more than one backup folder with the same date/time")
)

// Oldest picks the single oldest snapshot. Candidates are narrowed one
// field at a time, year first, keeping only those holding the minimum of
// that field; the first field that leaves one candidate decides. When
// several candidates share the minimum on every field there is no oldest
// and ErrAmbiguous is returned.
func Oldest(snaps []snapshot.Snapshot) (snapshot.Snapshot, error) {
	if len(snaps) == 0 {
		return snapshot.Snapshot{}, ErrEmptyPopulation
	}

	candidates := snaps
	for field := 0; field < snapshot.FieldCount; field++ {
		if len(candidates) == 1 {
			break
		}
		candidates = narrow(candidates, field)
	}

	if len(candidates) > 1 {
		return snapshot.Snapshot{}, fmt.Errorf("%w: %d folders at %s", ErrAmbiguous, len(candidates), candidates[0].Stamp)
	}
	return candidates[0], nil
}

// narrow keeps the candidates whose field equals the minimum of that field.
func narrow(candidates []snapshot.Snapshot, field int) []snapshot.Snapshot {
	low := candidates[0].Stamp.Fields()[field]
	for _, c := range candidates[1:] {
		low = min(low, c.Stamp.Fields()[field])
	}

	kept := make([]snapshot.Snapshot, 0, len(candidates))
	for _, c := range candidates {
		if c.Stamp.Fields()[field] == low {
			kept = append(kept, c)
		}
	}
	return kept
}
