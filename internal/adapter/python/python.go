// Package python is the Python front-end. Modules become namespaces, as do
// classes; functions and methods become methods, and module or class level
// assignments become attributes. Docstrings are read as Sphinx field lists.
package python

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"

	"github.com/pthm/docgrade/internal/adapter"
)

// Separator joins namespace path segments.
const Separator = "."

var language = adapter.Language{
	Name:           "python",
	Initializer:    "__init__",
	CommentPattern: regexp.MustCompile(`^\s*#`),
}

func init() {
	adapter.Register(&Adapter{})
}

// Adapter parses Python sources.
type Adapter struct {
	// Logger receives per-file parse failures. Nil means slog.Default().
	Logger *slog.Logger
}

func (a *Adapter) Name() string               { return "python" }
func (a *Adapter) Language() adapter.Language { return language }
func (a *Adapter) Extensions() []string       { return []string{".py", ".pyi"} }

func (a *Adapter) logger() *slog.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return slog.Default()
}

// Parse extracts declarations from every file. A file tree-sitter cannot
// parse is logged and skipped.
func (a *Adapter) Parse(ctx context.Context, files []adapter.SourceFile) ([]adapter.Declaration, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(python.GetLanguage())

	var decls []adapter.Declaration
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("parse canceled: %w", err)
		}

		found, err := parseFile(ctx, parser, f)
		if err != nil {
			a.logger().Warn("skipping file", "file", f.Path, "error", err)
			continue
		}
		decls = append(decls, found...)
	}

	adapter.LinkOverrides(decls, Separator)
	return decls, nil
}

// ModulePath converts a file path to a dotted module path:
// "pkg/sub/mod.py" becomes "pkg.sub.mod" and "pkg/__init__.py" becomes "pkg".
func ModulePath(file string) string {
	p := strings.TrimPrefix(filepath.ToSlash(file), "./")
	p = strings.TrimSuffix(p, path.Ext(p))
	if dir, base := path.Split(p); base == "__init__" && dir != "" {
		p = strings.TrimSuffix(dir, "/")
	}
	return strings.ReplaceAll(p, "/", Separator)
}

func parseFile(ctx context.Context, parser *sitter.Parser, f adapter.SourceFile) ([]adapter.Declaration, error) {
	tree, err := parser.ParseCtx(ctx, nil, f.Content)
	if err != nil {
		return nil, fmt.Errorf("tree-sitter parse failed: %w", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil {
		return nil, fmt.Errorf("tree-sitter returned no root node")
	}

	w := &walker{file: f.Path, src: f.Content}
	w.module(root, ModulePath(f.Path))
	return w.decls, nil
}
