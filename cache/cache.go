// Package cache persists OCR output per page so re-runs skip the expensive
// recognition step. The layout is operator-visible and stable: one
// directory per document under the cache root, one UTF-8 text file per page
// named with a 3-digit zero-padded 1-based page index. Entries are never
// invalidated automatically; clearing stale pages is the operator's job.
package cache

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// PageCache stores raw OCR text keyed by (document, page-index).
type PageCache struct {
	root string
}

// New creates a page cache rooted at dir, creating it if missing.
func New(dir string) (*PageCache, error) {
	if dir == "" {
		return nil, errors.New("cache: empty root directory")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cache: create root: %w", err)
	}
	return &PageCache{root: dir}, nil
}

// Root returns the cache's base directory.
func (c *PageCache) Root() string { return c.root }

func (c *PageCache) pagePath(docID string, page int) string {
	return filepath.Join(c.root, docID, fmt.Sprintf("page_%03d.txt", page))
}

// Get returns the cached text for a page, reporting whether an entry
// exists. A missing entry is not an error.
func (c *PageCache) Get(docID string, page int) (string, bool, error) {
	data, err := os.ReadFile(c.pagePath(docID, page))
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("cache: read %s page %d: %w", docID, page, err)
	}
	return string(data), true, nil
}

// Put durably stores the text for a page. The write goes through a
// temporary file and a rename so concurrent readers never observe a
// partial entry; writing identical content again is a no-op in effect.
func (c *PageCache) Put(docID string, page int, text string) error {
	path := c.pagePath(docID, page)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("cache: create document dir: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "page_*.tmp")
	if err != nil {
		return fmt.Errorf("cache: write %s page %d: %w", docID, page, err)
	}
	if _, err := tmp.WriteString(text); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("cache: write %s page %d: %w", docID, page, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("cache: write %s page %d: %w", docID, page, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("cache: write %s page %d: %w", docID, page, err)
	}
	return nil
}
