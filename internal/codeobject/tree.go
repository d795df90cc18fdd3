package codeobject

import (
	"fmt"
	"log/slog"

	"github.com/pthm/docgrade/internal/adapter"
)

// SourceReader gives access to the lines of source files, used to scan for
// comments preceding a declaration. Lines carry no trailing newline.
type SourceReader interface {
	Lines(file string) ([]string, error)
}

// Tree is the immutable object tree of one run. Objects live in an arena in
// pre-order; parents are referenced by arena index.
type Tree struct {
	lang    adapter.Language
	source  SourceReader
	logger  *slog.Logger
	objects []CodeObject
	byPath  map[string]int
	roots   []int
	skipped []*AdapterError
}

// Option configures Build.
type Option func(*Tree)

// WithSourceReader sets where leading comments are read from. Without it,
// comment scanning yields nothing.
func WithSourceReader(r SourceReader) Option {
	return func(t *Tree) {
		t.source = r
	}
}

// WithLogger sets the logger used for skipped declarations.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Tree) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// entry is a declaration after merging reopened paths.
type entry struct {
	decl     adapter.Declaration
	children []string
	excluded bool
	resolved bool
}

// Build constructs the object tree from a declaration stream.
//
// Declarations sharing a path are merged: namespaces union their children
// and concatenate locations, other kinds take the later declaration's data.
// Malformed or orphaned declarations are skipped and reported by Skipped.
// Two declarations with the same path and different kinds abort the build.
func Build(decls []adapter.Declaration, lang adapter.Language, opts ...Option) (*Tree, error) {
	t := &Tree{
		lang:   lang,
		logger: slog.Default(),
		byPath: make(map[string]int),
	}
	for _, opt := range opts {
		opt(t)
	}

	entries := make(map[string]*entry)
	var order []string

	for _, d := range decls {
		if err := validate(d); err != nil {
			t.skip(err)
			continue
		}

		existing, ok := entries[d.Path]
		if !ok {
			entries[d.Path] = &entry{decl: d}
			order = append(order, d.Path)
			continue
		}
		if existing.decl.Kind != d.Kind {
			return nil, fmt.Errorf("%s declared as %s and %s: %w",
				d.Path, existing.decl.Kind, d.Kind, ErrConflictingKinds)
		}
		merge(&existing.decl, d)
	}

	// Resolve parents; an entry is excluded when its parent chain is broken.
	var resolve func(path string, visiting map[string]bool) bool
	resolve = func(path string, visiting map[string]bool) bool {
		e := entries[path]
		if e.resolved {
			return !e.excluded
		}
		parentPath := e.decl.ParentPath
		if parentPath == "" {
			e.resolved = true
			return true
		}

		reason := ""
		parent, ok := entries[parentPath]
		switch {
		case !ok:
			reason = fmt.Sprintf("parent %q not found", parentPath)
		case parent.decl.Kind != adapter.KindNamespace:
			reason = fmt.Sprintf("parent %q is a %s", parentPath, parent.decl.Kind)
		case visiting[parentPath]:
			reason = fmt.Sprintf("parent chain through %q is cyclic", parentPath)
		default:
			visiting[path] = true
			if !resolve(parentPath, visiting) {
				reason = fmt.Sprintf("parent %q was skipped", parentPath)
			}
			delete(visiting, path)
		}

		e.resolved = true
		if reason != "" {
			e.excluded = true
			t.skip(&AdapterError{
				Path:     path,
				Location: firstLocation(e.decl),
				Reason:   reason,
				Err:      ErrOrphanDeclaration,
			})
			return false
		}
		return true
	}

	var rootPaths []string
	for _, path := range order {
		if !resolve(path, map[string]bool{}) {
			continue
		}
		e := entries[path]
		if e.decl.ParentPath == "" {
			rootPaths = append(rootPaths, path)
		} else {
			parent := entries[e.decl.ParentPath]
			parent.children = append(parent.children, path)
		}
	}

	// Lay the arena out in pre-order so iteration is deterministic.
	var add func(path string, parent int) int
	add = func(path string, parent int) int {
		e := entries[path]
		idx := len(t.objects)
		b := func() base {
			return base{
				tree:   t,
				index:  idx,
				parent: parent,
				decl:   e.decl,
				doc:    newDocstring(e.decl.Docstring),
			}
		}

		switch kindOf(e.decl.Kind) {
		case KindNamespace:
			ns := &Namespace{base: b()}
			t.objects = append(t.objects, ns)
			t.byPath[path] = idx
			for _, child := range e.children {
				ns.children = append(ns.children, add(child, idx))
			}
		case KindMethod:
			t.objects = append(t.objects, &Method{base: b()})
			t.byPath[path] = idx
		default:
			t.objects = append(t.objects, &Attribute{base: b()})
			t.byPath[path] = idx
		}
		return idx
	}
	for _, path := range rootPaths {
		t.roots = append(t.roots, add(path, -1))
	}

	return t, nil
}

func validate(d adapter.Declaration) *AdapterError {
	id := d.Path
	if id == "" {
		id = d.Name
	}
	fail := func(reason string) *AdapterError {
		return &AdapterError{
			Path:     id,
			Location: firstLocation(d),
			Reason:   reason,
			Err:      ErrMalformedDeclaration,
		}
	}

	switch {
	case !d.Kind.Valid():
		return fail(fmt.Sprintf("unknown kind %q", d.Kind))
	case d.Name == "":
		return fail("missing name")
	case d.Path == "":
		return fail("missing path")
	case d.ParentPath == d.Path:
		return fail("declared as its own parent")
	}
	return nil
}

func merge(dst *adapter.Declaration, src adapter.Declaration) {
	locations := append(append([]adapter.Location(nil), dst.Locations...), src.Locations...)

	if dst.Kind == adapter.KindNamespace {
		if dst.Docstring.Text == "" && len(dst.Docstring.Tags) == 0 {
			dst.Docstring = src.Docstring
		}
		for _, s := range src.Superclasses {
			if !contains(dst.Superclasses, s) {
				dst.Superclasses = append(dst.Superclasses, s)
			}
		}
		dst.Locations = locations
		return
	}

	parent := dst.ParentPath
	*dst = src
	dst.ParentPath = parent
	dst.Locations = locations
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func firstLocation(d adapter.Declaration) Location {
	if len(d.Locations) > 0 {
		return d.Locations[0]
	}
	return Location{}
}

func (t *Tree) skip(err *AdapterError) {
	t.logger.Warn("skipping declaration",
		"path", err.Path, "reason", err.Reason, "error", err.Err)
	t.skipped = append(t.skipped, err)
}

// Language returns the language conventions the tree was built with.
func (t *Tree) Language() adapter.Language {
	return t.lang
}

// Objects returns every object in pre-order.
func (t *Tree) Objects() []CodeObject {
	return t.objects
}

// Roots returns the top-level objects in declaration order.
func (t *Tree) Roots() []CodeObject {
	roots := make([]CodeObject, 0, len(t.roots))
	for _, idx := range t.roots {
		roots = append(roots, t.objects[idx])
	}
	return roots
}

// Lookup returns the object with the given path, or nil.
func (t *Tree) Lookup(path string) CodeObject {
	if idx, ok := t.byPath[path]; ok {
		return t.objects[idx]
	}
	return nil
}

// Len returns the number of objects in the tree.
func (t *Tree) Len() int {
	return len(t.objects)
}

// Skipped returns the declarations that were excluded from the tree.
func (t *Tree) Skipped() []*AdapterError {
	return t.skipped
}
