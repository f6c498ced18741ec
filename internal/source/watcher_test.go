package source

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestWatcherCoalescesWriteBursts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "def.yaml")
	if err := os.WriteFile(path, []byte("id: x\n"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	w, err := Watch(path, zap.NewNop().Sugar())
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	defer w.Close()

	// an editor-style save burst: several writes inside one debounce
	// window must collapse into a single notification
	for i := 0; i < 5; i++ {
		if err := os.WriteFile(path, []byte(fmt.Sprintf("id: x%d\n", i)), 0o644); err != nil {
			t.Fatalf("write %d: %v", i, err)
		}
		time.Sleep(10 * time.Millisecond)
	}

	select {
	case <-w.Changes():
	case <-time.After(2 * time.Second):
		t.Fatal("no change notification for the burst")
	}
	select {
	case <-w.Changes():
		t.Fatal("burst delivered a duplicate notification")
	case <-time.After(3 * debounce):
	}
}

func TestWatcherReportsLaterChanges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "def.yaml")
	if err := os.WriteFile(path, []byte("id: x\n"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	w, err := Watch(path, zap.NewNop().Sugar())
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	defer w.Close()

	for round := 0; round < 2; round++ {
		if err := os.WriteFile(path, []byte(fmt.Sprintf("id: round%d\n", round)), 0o644); err != nil {
			t.Fatalf("write round %d: %v", round, err)
		}
		select {
		case <-w.Changes():
		case <-time.After(2 * time.Second):
			t.Fatalf("round %d: no change notification", round)
		}
	}
}

func TestWatcherIgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "def.yaml")
	if err := os.WriteFile(path, []byte("id: x\n"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	w, err := Watch(path, zap.NewNop().Sugar())
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("id: y\n"), 0o644); err != nil {
		t.Fatalf("write sibling: %v", err)
	}

	select {
	case <-w.Changes():
		t.Fatal("sibling write must not notify")
	case <-time.After(3 * debounce):
	}
}
