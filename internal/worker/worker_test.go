package worker

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/raoulx24/world-archiver/internal/config"
	"github.com/raoulx24/world-archiver/internal/fs"
	"github.com/raoulx24/world-archiver/internal/logging"
	"github.com/raoulx24/world-archiver/internal/retention"
	"github.com/raoulx24/world-archiver/internal/snapshot"
)

var jobTime = time.Date(2024, time.May, 5, 10, 0, 0, 0, time.Local)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

// newWorld creates a server directory holding a small live world.
func newWorld(t *testing.T) snapshot.World {
	t.Helper()
	w := snapshot.NewWorld(t.TempDir(), "world")
	writeFile(t, filepath.Join(w.Dir, "level.dat"), "level")
	writeFile(t, filepath.Join(w.Dir, "region", "r.0.0.mca"), "chunks")
	writeFile(t, filepath.Join(w.Dir, "playerdata", "steve.dat"), "inventory")
	if err := os.MkdirAll(filepath.Join(w.Dir, "empty"), 0o755); err != nil {
		t.Fatal(err)
	}
	return w
}

func newWorker(keep uint, filesystem fs.FS) *Worker {
	r := retention.New(config.Config{BackupsPerWorld: keep}, logging.Nop(), filesystem)
	return New(logging.Nop(), r, filesystem)
}

func listNames(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		t.Fatal(err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestHandle_CopiesWorld(t *testing.T) {
	w := newWorld(t)

	rep, err := newWorker(7, nil).Handle(context.Background(), Job{World: w, Time: jobTime})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}

	want := w.SnapshotPath("2024-05-05_10.00.00")
	if rep.Snapshot != want {
		t.Fatalf("snapshot = %s, want %s", rep.Snapshot, want)
	}
	if rep.Files != 3 || rep.Bytes != int64(len("level")+len("chunks")+len("inventory")) {
		t.Fatalf("unexpected report %+v", rep)
	}

	for rel, content := range map[string]string{
		"level.dat":                              "level",
		filepath.Join("region", "r.0.0.mca"):     "chunks",
		filepath.Join("playerdata", "steve.dat"): "inventory",
	} {
		got, err := os.ReadFile(filepath.Join(want, rel))
		if err != nil {
			t.Fatalf("reading %s from snapshot: %v", rel, err)
		}
		if string(got) != content {
			t.Fatalf("%s = %q, want %q", rel, got, content)
		}
	}
	if st, err := os.Stat(filepath.Join(want, "empty")); err != nil || !st.IsDir() {
		t.Fatalf("empty directory not recreated: %v", err)
	}

	if names := listNames(t, w.BackupRoot); len(names) != 1 || names[0] != "2024-05-05_10.00.00" {
		t.Fatalf("unexpected backup root contents %v", names)
	}
	if rep.Retention.Outcome != retention.WithinLimit {
		t.Fatalf("unexpected retention outcome %s", rep.Retention.Outcome)
	}
}

func TestHandle_AlreadyExists(t *testing.T) {
	w := newWorld(t)
	existing := w.SnapshotPath("2024-05-05_10.00.00")
	writeFile(t, filepath.Join(existing, "marker"), "first run")

	_, err := newWorker(7, nil).Handle(context.Background(), Job{World: w, Time: jobTime})
	if !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}

	if names := listNames(t, w.BackupRoot); len(names) != 1 {
		t.Fatalf("backup root was modified: %v", names)
	}
	if names := listNames(t, existing); len(names) != 1 || names[0] != "marker" {
		t.Fatalf("existing snapshot was modified: %v", names)
	}
}

func TestHandle_SnapshotInProgress(t *testing.T) {
	w := newWorld(t)
	inProgress := w.SnapshotPath(snapshot.TmpPrefix + "2024-05-05_10.00.00")
	marker := filepath.Join(inProgress, "marker")
	writeFile(t, marker, "first run")

	_, err := newWorker(7, nil).Handle(context.Background(), Job{World: w, Time: jobTime})
	if !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}

	if _, err := os.Stat(marker); err != nil {
		t.Fatalf("copy in progress was disturbed: %v", err)
	}
	if _, err := os.Stat(w.SnapshotPath("2024-05-05_10.00.00")); !os.IsNotExist(err) {
		t.Fatalf("second run must not produce a snapshot: %v", err)
	}
}

func TestHandle_SourceMissing(t *testing.T) {
	w := snapshot.NewWorld(t.TempDir(), "world")

	_, err := newWorker(7, nil).Handle(context.Background(), Job{World: w, Time: jobTime})
	if !errors.Is(err, ErrSourceMissing) {
		t.Fatalf("expected ErrSourceMissing, got %v", err)
	}
	if _, err := os.Stat(w.BackupRoot); !os.IsNotExist(err) {
		t.Fatalf("backup root must not be created: %v", err)
	}
}

func TestHandle_SourceIsAFile(t *testing.T) {
	w := snapshot.NewWorld(t.TempDir(), "world")
	writeFile(t, w.Dir, "not a directory")

	_, err := newWorker(7, nil).Handle(context.Background(), Job{World: w, Time: jobTime})
	if !errors.Is(err, ErrSourceMissing) {
		t.Fatalf("expected ErrSourceMissing, got %v", err)
	}
}

func TestHandle_AppliesRetention(t *testing.T) {
	w := newWorld(t)
	for i := 0; i < 7; i++ {
		name := snapshot.FormatName(jobTime.Add(-time.Duration(7-i) * time.Hour))
		if err := os.MkdirAll(w.SnapshotPath(name), 0o755); err != nil {
			t.Fatal(err)
		}
	}

	rep, err := newWorker(7, nil).Handle(context.Background(), Job{World: w, Time: jobTime})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if rep.Retention.Outcome != retention.Deleted {
		t.Fatalf("unexpected retention outcome %s", rep.Retention.Outcome)
	}
	if rep.Retention.Removed.Name != snapshot.FormatName(jobTime.Add(-7*time.Hour)) {
		t.Fatalf("removed %s, want the oldest", rep.Retention.Removed.Name)
	}
	if names := listNames(t, w.BackupRoot); len(names) != 7 {
		t.Fatalf("expected 7 snapshots after retention, got %v", names)
	}
}

func TestHandle_UnlimitedRetention(t *testing.T) {
	w := newWorld(t)

	rep, err := newWorker(0, nil).Handle(context.Background(), Job{World: w, Time: jobTime})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if rep.Retention.Outcome != retention.Unlimited {
		t.Fatalf("unexpected retention outcome %s", rep.Retention.Outcome)
	}
}

type failingCopyFS struct {
	*fs.OSFS
}

func (failingCopyFS) CopyFile(context.Context, string, string) error {
	return errors.New("disk full")
}

func TestHandle_CopyFailureLeavesNoSnapshot(t *testing.T) {
	w := newWorld(t)

	_, err := newWorker(7, failingCopyFS{fs.New()}).Handle(context.Background(), Job{World: w, Time: jobTime})
	if err == nil {
		t.Fatalf("expected copy failure")
	}
	if names := listNames(t, w.BackupRoot); len(names) != 0 {
		t.Fatalf("failed copy left %v behind", names)
	}
}
