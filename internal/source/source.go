// Package source serves file lines to the comment scanner, caching the most
// recently used files.
package source

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/pthm/docgrade/internal/adapter"
)

// DefaultSize is the number of files kept in memory.
const DefaultSize = 256

// Cache reads files relative to a root directory and keeps their lines in an
// LRU cache. It is safe for concurrent use.
type Cache struct {
	root  string
	lines *lru.Cache[string, []string]
}

// NewCache returns a cache rooted at root holding up to size files. A
// non-positive size means DefaultSize.
func NewCache(root string, size int) (*Cache, error) {
	if size <= 0 {
		size = DefaultSize
	}
	lines, err := lru.New[string, []string](size)
	if err != nil {
		return nil, fmt.Errorf("creating source cache: %w", err)
	}
	return &Cache{root: root, lines: lines}, nil
}

// Prime stores already-read files so Lines does not touch the disk for them.
func (c *Cache) Prime(files []adapter.SourceFile) {
	for _, f := range files {
		c.lines.Add(f.Path, split(f.Content))
	}
}

// Lines returns the lines of file without trailing newlines.
func (c *Cache) Lines(file string) ([]string, error) {
	if lines, ok := c.lines.Get(file); ok {
		return lines, nil
	}

	path := file
	if !filepath.IsAbs(path) {
		path = filepath.Join(c.root, filepath.FromSlash(file))
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading source: %w", err)
	}
	lines := split(content)
	c.lines.Add(file, lines)
	return lines, nil
}

// Forget drops file from the cache, e.g. after it changed on disk.
func (c *Cache) Forget(file string) {
	c.lines.Remove(file)
}

// Len returns the number of cached files.
func (c *Cache) Len() int {
	return c.lines.Len()
}

func split(content []byte) []string {
	s := strings.ReplaceAll(string(content), "\r\n", "\n")
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
