package cache

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRoundtrip(t *testing.T) {
	c, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if err := c.Put("Tema 36 Test", 3, "raw ocr text"); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	got, ok, err := c.Get("Tema 36 Test", 3)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !ok {
		t.Fatal("entry missing after Put")
	}
	if got != "raw ocr text" {
		t.Fatalf("Get() = %q, want %q", got, "raw ocr text")
	}
}

func TestMissingEntry(t *testing.T) {
	c, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	_, ok, err := c.Get("Tema 1 Test", 1)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if ok {
		t.Fatal("expected miss for unwritten page")
	}
}

func TestLayout(t *testing.T) {
	root := t.TempDir()
	c, err := New(root)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := c.Put("Tema 7 Test", 12, "x"); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	want := filepath.Join(root, "Tema 7 Test", "page_012.txt")
	if _, err := os.Stat(want); err != nil {
		t.Fatalf("expected cache file at %s: %v", want, err)
	}
}

func TestPutIdempotent(t *testing.T) {
	c, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	for i := 0; i < 2; i++ {
		if err := c.Put("doc", 1, "same text"); err != nil {
			t.Fatalf("Put() #%d error = %v", i+1, err)
		}
	}
	got, ok, err := c.Get("doc", 1)
	if err != nil || !ok {
		t.Fatalf("Get() = %v, %v", ok, err)
	}
	if got != "same text" {
		t.Fatalf("Get() = %q after repeated Put", got)
	}
}

func TestNoPartialEntriesLeft(t *testing.T) {
	root := t.TempDir()
	c, err := New(root)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := c.Put("doc", 1, "text"); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	entries, err := os.ReadDir(filepath.Join(root, "doc"))
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "page_001.txt" {
		t.Fatalf("unexpected directory contents: %v", entries)
	}
}

func TestEmptyRootRejected(t *testing.T) {
	if _, err := New(""); err == nil {
		t.Fatal("expected error for empty root")
	}
}
