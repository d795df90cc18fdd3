// Package ruby is the Ruby front-end. It reads classes, modules, methods,
// attribute macros and constants with tree-sitter and parses YARD tags out
// of the comment block above each declaration.
package ruby

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/ruby"

	"github.com/pthm/docgrade/internal/adapter"
)

// Separator joins namespace path segments.
const Separator = "::"

var language = adapter.Language{
	Name:           "ruby",
	Initializer:    "initialize",
	CommentPattern: regexp.MustCompile(`^\s*#`),
}

func init() {
	adapter.Register(&Adapter{})
}

// Adapter parses Ruby sources.
type Adapter struct {
	// Logger receives per-file parse failures. Nil means slog.Default().
	Logger *slog.Logger
}

func (a *Adapter) Name() string               { return "ruby" }
func (a *Adapter) Language() adapter.Language { return language }
func (a *Adapter) Extensions() []string       { return []string{".rb", ".rake", ".gemspec"} }

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
	parser.SetLanguage(ruby.GetLanguage())

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

func parseFile(ctx context.Context, parser *sitter.Parser, f adapter.SourceFile) ([]adapter.Declaration, error) {
	if len(f.Content) == 0 {
		return nil, nil
	}
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
	w.walkBody(root, scope{})
	return w.decls, nil
}
