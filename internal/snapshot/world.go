package snapshot

import "path/filepath"

// BackupsDir is the directory, relative to the server root, holding one
// backup root per world.
const BackupsDir = "backups"

// World locates the live data and the backup root of one world.
type World struct {
	Name       string
	Dir        string // live world directory
	BackupRoot string // backups/<world name>
}

// NewWorld resolves the layout of the named world under serverDir.
func NewWorld(serverDir, name string) World {
	return World{
		Name:       name,
		Dir:        filepath.Join(serverDir, name),
		BackupRoot: filepath.Join(serverDir, BackupsDir, name),
	}
}

// SnapshotPath returns the directory a snapshot with the given name
// lives in.
func (w World) SnapshotPath(name string) string {
	return filepath.Join(w.BackupRoot, name)
}
