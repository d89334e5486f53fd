package logbook

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestTailReturnsRecentLines(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "onlyfoods.log")
	book, err := New(path)
	if err != nil {
		t.Fatalf("new logbook: %v", err)
	}
	for i := 0; i < 5; i++ {
		book.Info("entry-%d", i)
	}
	lines := book.Tail(3)
	if len(lines) != 3 {
		t.Fatalf("len(lines) = %d, want 3", len(lines))
	}
	for idx, want := range []string{"entry-2", "entry-3", "entry-4"} {
		if !strings.Contains(lines[idx], want) {
			t.Fatalf("line %d = %q, missing %s", idx, lines[idx], want)
		}
	}
}

func TestLevelsAreTagged(t *testing.T) {
	path := filepath.Join(t.TempDir(), "onlyfoods.log")
	book, err := New(path)
	if err != nil {
		t.Fatalf("new logbook: %v", err)
	}
	book.Info("hello")
	book.Warn("careful")
	book.Error("broken")

	lines := book.Tail(10)
	if len(lines) != 3 {
		t.Fatalf("len(lines) = %d, want 3", len(lines))
	}
	for idx, want := range []string{"INFO", "WARN", "ERROR"} {
		if !strings.Contains(lines[idx], want) {
			t.Fatalf("line %d = %q, missing level %s", idx, lines[idx], want)
		}
	}
}

func TestTraceCarriesShortID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "onlyfoods.log")
	book, err := New(path)
	if err != nil {
		t.Fatalf("new logbook: %v", err)
	}
	book.Trace("0b1f2a3c-9999-4444-8888-123456789abc", "search submitted")

	lines := book.Tail(1)
	if len(lines) != 1 {
		t.Fatalf("len(lines) = %d, want 1", len(lines))
	}
	if !strings.Contains(lines[0], "[0b1f2a3c]") {
		t.Fatalf("line %q missing short trace id", lines[0])
	}
}

func TestNilLogbookIsSafe(t *testing.T) {
	var book *Logbook
	book.Info("ignored")
	if lines := book.Tail(3); lines != nil {
		t.Fatalf("nil logbook Tail = %v, want nil", lines)
	}
	if book.Path() != "" {
		t.Fatal("nil logbook Path must be empty")
	}
}
