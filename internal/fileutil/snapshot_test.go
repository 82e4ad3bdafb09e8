package fileutil

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofrs/flock"
)

func TestSaveSnapshotAddsSuffixes(t *testing.T) {
	SnapshotLockPath = filepath.Join(t.TempDir(), "snapshot.lock")
	dir := t.TempDir()
	src := filepath.Join(dir, "tmp.txt")
	if err := os.WriteFile(src, []byte("0.0 1 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	dest := SnapshotPath(filepath.Join(dir, "capture.log"), "")

	want := []string{"capture.raw", "capture_1.raw", "capture_2.raw"}
	for _, name := range want {
		got, err := SaveSnapshot(context.Background(), src, dest)
		if err != nil {
			t.Fatalf("SaveSnapshot returned error: %v", err)
		}
		if got != filepath.Join(dir, name) {
			t.Fatalf("SaveSnapshot() = %q, want %q", got, filepath.Join(dir, name))
		}
		content, err := os.ReadFile(got)
		if err != nil {
			t.Fatalf("read snapshot: %v", err)
		}
		if string(content) != "0.0 1 2\n" {
			t.Fatalf("unexpected snapshot content: %q", content)
		}
	}
}

func TestSaveSnapshotExplicitNameWithoutExtension(t *testing.T) {
	SnapshotLockPath = filepath.Join(t.TempDir(), "snapshot.lock")
	dir := t.TempDir()
	src := filepath.Join(dir, "tmp.txt")
	if err := os.WriteFile(src, []byte("x\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	explicit := filepath.Join(dir, "keep")
	if err := os.WriteFile(explicit, []byte("existing"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := SaveSnapshot(context.Background(), src, SnapshotPath("ignored.log", explicit))
	if err != nil {
		t.Fatalf("SaveSnapshot returned error: %v", err)
	}
	if got != explicit+"_1" {
		t.Fatalf("SaveSnapshot() = %q, want %q", got, explicit+"_1")
	}
	if content, _ := os.ReadFile(explicit); string(content) != "existing" {
		t.Fatalf("expected existing file untouched, got %q", content)
	}
}

func TestSaveSnapshotErrors(t *testing.T) {
	SnapshotLockPath = filepath.Join(t.TempDir(), "snapshot.lock")
	if _, err := SaveSnapshot(context.Background(), "src", " "); err == nil {
		t.Fatal("expected error for empty destination")
	}
	dir := t.TempDir()
	if _, err := SaveSnapshot(context.Background(), filepath.Join(dir, "missing"), filepath.Join(dir, "out.raw")); err == nil {
		t.Fatal("expected error for missing source")
	}
}

func TestSnapshotPath(t *testing.T) {
	if got := SnapshotPath("/logs/capture.log", ""); got != "/logs/capture.raw" {
		t.Fatalf("SnapshotPath() = %q", got)
	}
	if got := SnapshotPath("/logs/capture", ""); got != "/logs/capture.raw" {
		t.Fatalf("SnapshotPath() = %q", got)
	}
	if got := SnapshotPath("/logs/capture.log", "keep.dat"); got != "keep.dat" {
		t.Fatalf("SnapshotPath() = %q", got)
	}
}

func TestSaveSnapshotGivesUpWhenLockHeld(t *testing.T) {
	SnapshotLockPath = filepath.Join(t.TempDir(), "snapshot.lock")
	holder := flock.New(SnapshotLockPath)
	if ok, err := holder.TryLock(); err != nil || !ok {
		t.Fatalf("hold lock: ok=%v err=%v", ok, err)
	}
	t.Cleanup(func() { _ = holder.Unlock() })

	dir := t.TempDir()
	src := filepath.Join(dir, "tmp.txt")
	if err := os.WriteFile(src, []byte("x\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 150*time.Millisecond)
	defer cancel()

	_, err := SaveSnapshot(ctx, src, filepath.Join(dir, "capture.raw"))
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline error while lock is held, got %v", err)
	}
	if Exists(filepath.Join(dir, "capture.raw")) {
		t.Fatal("snapshot must not be written without the lock")
	}
}
