package rekordbox

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatchReportsChanges(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "collection.xml")
	if err := os.WriteFile(path, []byte(fixtureXML), 0o644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}

	changed := make(chan struct{}, 4)
	w, err := Watch(path, 20*time.Millisecond, func() { changed <- struct{}{} })
	if err != nil {
		t.Fatalf("Watch failed: %v", err)
	}
	defer w.Close()

	// Unrelated files in the same directory are ignored.
	if err := os.WriteFile(filepath.Join(dir, "other.xml"), []byte("x"), 0o644); err != nil {
		t.Fatalf("Failed to write sibling: %v", err)
	}
	select {
	case <-changed:
		t.Fatal("Sibling write should not trigger a change")
	case <-time.After(150 * time.Millisecond):
	}

	if err := os.WriteFile(path, []byte(fixtureXML+"\n"), 0o644); err != nil {
		t.Fatalf("Failed to rewrite fixture: %v", err)
	}
	select {
	case <-changed:
	case <-time.After(2 * time.Second):
		t.Fatal("Expected a change notification")
	}
}

func TestWatchCloseIsIdempotent(t *testing.T) {
	w, err := Watch(filepath.Join(t.TempDir(), "x.xml"), time.Millisecond, func() {})
	if err != nil {
		t.Fatalf("Watch failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("Second Close should return the same result, got %v", err)
	}
}
