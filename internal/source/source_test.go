package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm/docgrade/internal/adapter"
)

func TestLinesReadsAndCaches(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "lib"), 0o755))
	path := filepath.Join(dir, "lib", "a.rb")
	require.NoError(t, os.WriteFile(path, []byte("# doc\r\ndef a\nend\n"), 0o644))

	c, err := NewCache(dir, 0)
	require.NoError(t, err)

	lines, err := c.Lines("lib/a.rb")
	require.NoError(t, err)
	assert.Equal(t, []string{"# doc", "def a", "end"}, lines)
	assert.Equal(t, 1, c.Len())

	// Served from the cache after the file is gone.
	require.NoError(t, os.Remove(path))
	lines, err = c.Lines("lib/a.rb")
	require.NoError(t, err)
	assert.Len(t, lines, 3)

	c.Forget("lib/a.rb")
	_, err = c.Lines("lib/a.rb")
	require.Error(t, err)
}

func TestPrime(t *testing.T) {
	c, err := NewCache(t.TempDir(), 4)
	require.NoError(t, err)

	c.Prime([]adapter.SourceFile{
		{Path: "x.py", Content: []byte("a\nb")},
		{Path: "empty.py", Content: nil},
	})

	lines, err := c.Lines("x.py")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, lines)

	lines, err = c.Lines("empty.py")
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestEviction(t *testing.T) {
	c, err := NewCache(t.TempDir(), 2)
	require.NoError(t, err)

	c.Prime([]adapter.SourceFile{
		{Path: "1", Content: []byte("one")},
		{Path: "2", Content: []byte("two")},
		{Path: "3", Content: []byte("three")},
	})
	assert.Equal(t, 2, c.Len())

	_, err = c.Lines("1")
	assert.Error(t, err, "evicted entry falls back to disk")
}
