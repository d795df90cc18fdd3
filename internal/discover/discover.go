// Package discover finds the source files a front-end should read.
package discover

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"time"

	ignore "github.com/sabhiram/go-gitignore"

	"github.com/pthm/docgrade/internal/adapter"
)

// FileEntry is a discovered file.
type FileEntry struct {
	Path     string // relative to the root
	Language string
}

var skipDirs = map[string]struct{}{
	"node_modules":  {},
	"vendor":        {},
	"__pycache__":   {},
	"venv":          {},
	".venv":         {},
	"build":         {},
	"dist":          {},
	".tox":          {},
	".mypy_cache":   {},
	".pytest_cache": {},
	".bundle":       {},
}

// Options narrows discovery.
type Options struct {
	// Adapter restricts results to its extensions. Nil accepts any file
	// whose extension has a registered front-end.
	Adapter adapter.Adapter

	// Exclude holds gitignore-style patterns applied on top of .gitignore.
	Exclude []string
}

// Files returns the files under root, sorted by path. When root is a file it
// is returned alone. Inside a git checkout the tracked and untracked
// non-ignored files are used; otherwise root's .gitignore is honored.
func Files(root string, opts Options) ([]FileEntry, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("discovering files: %w", err)
	}
	if !info.IsDir() {
		lang := languageOf(root, opts.Adapter)
		if lang == "" {
			return nil, fmt.Errorf("%s: no front-end for %q files", root, filepath.Ext(root))
		}
		return []FileEntry{{Path: filepath.Base(root), Language: lang}}, nil
	}

	var excluded *ignore.GitIgnore
	if len(opts.Exclude) > 0 {
		excluded = ignore.CompileIgnoreLines(opts.Exclude...)
	}
	gitFiles := gitLsFiles(root)
	var gi *ignore.GitIgnore
	if gitFiles == nil {
		gi = loadGitignore(root)
	}

	var results []FileEntry
	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		name := d.Name()

		if d.IsDir() {
			if path == root {
				return nil
			}
			if _, skip := skipDirs[name]; skip || strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			if rel, err := filepath.Rel(root, path); err == nil && excluded != nil && excluded.MatchesPath(rel+"/") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(name, ".") || d.Type()&os.ModeSymlink != 0 {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		if gitFiles != nil {
			if _, ok := gitFiles[filepath.ToSlash(rel)]; !ok {
				return nil
			}
		} else if gi != nil && gi.MatchesPath(rel) {
			return nil
		}
		if excluded != nil && excluded.MatchesPath(rel) {
			return nil
		}

		lang := languageOf(name, opts.Adapter)
		if lang == "" {
			return nil
		}
		results = append(results, FileEntry{Path: rel, Language: lang})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Path < results[j].Path
	})
	return results, nil
}

// Read loads the content of entries under root.
func Read(root string, entries []FileEntry) ([]adapter.SourceFile, error) {
	base := root
	if info, err := os.Stat(root); err == nil && !info.IsDir() {
		base = filepath.Dir(root)
	}

	files := make([]adapter.SourceFile, 0, len(entries))
	for _, e := range entries {
		content, err := os.ReadFile(filepath.Join(base, e.Path))
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", e.Path, err)
		}
		files = append(files, adapter.SourceFile{Path: filepath.ToSlash(e.Path), Content: content})
	}
	return files, nil
}

func languageOf(name string, only adapter.Adapter) string {
	ext := filepath.Ext(name)
	if only != nil {
		for _, e := range only.Extensions() {
			if e == ext {
				return only.Name()
			}
		}
		return ""
	}
	if a := adapter.ForExtension(ext); a != nil {
		return a.Name()
	}
	return ""
}

func gitLsFiles(root string) map[string]struct{} {
	info, err := os.Stat(filepath.Join(root, ".git"))
	if err != nil || !info.IsDir() {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cmd := exec.CommandContext(ctx, "git", "ls-files", "--cached", "--others", "--exclude-standard")
	cmd.Dir = root
	out, err := cmd.Output()
	if err != nil {
		return nil
	}

	files := make(map[string]struct{})
	for _, line := range strings.Split(strings.TrimRight(string(out), "\n"), "\n") {
		if line != "" {
			files[line] = struct{}{}
		}
	}
	return files
}

func loadGitignore(root string) *ignore.GitIgnore {
	gi, err := ignore.CompileIgnoreFile(filepath.Join(root, ".gitignore"))
	if err != nil {
		return nil
	}
	return gi
}
