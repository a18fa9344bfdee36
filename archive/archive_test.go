package archive

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestSnapshotKey(t *testing.T) {
	at := time.Date(2026, time.March, 7, 12, 0, 0, 0, time.UTC)
	got := snapshotKey("abc123", at)
	if got != "pages/2026/03/abc123.html" {
		t.Errorf("key = %q", got)
	}
}

func TestFSArchiveRoundTrip(t *testing.T) {
	a, err := NewFS(FSConfig{BasePath: t.TempDir()})
	if err != nil {
		t.Fatalf("NewFS: %v", err)
	}

	at := time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC)
	html := []byte("<html><body>snapshot</body></html>")

	if err := a.Save(context.Background(), "deadbeef", at, html); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := a.Read(context.Background(), "deadbeef", at)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !bytes.Equal(got, html) {
		t.Errorf("read back %q", got)
	}
}

func TestFSArchiveOverwritesSameMonth(t *testing.T) {
	base := t.TempDir()
	a, err := NewFS(FSConfig{BasePath: base})
	if err != nil {
		t.Fatalf("NewFS: %v", err)
	}

	at := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)
	if err := a.Save(context.Background(), "cafe01", at, []byte("first")); err != nil {
		t.Fatal(err)
	}
	if err := a.Save(context.Background(), "cafe01", at.AddDate(0, 0, 20), []byte("second")); err != nil {
		t.Fatal(err)
	}

	got, err := a.Read(context.Background(), "cafe01", at)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "second" {
		t.Errorf("snapshot = %q, want latest write", got)
	}

	entries, err := os.ReadDir(filepath.Join(base, "pages", "2026", "06"))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("files in month dir = %d, want 1", len(entries))
	}
}
