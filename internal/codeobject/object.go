// Package codeobject is the uniform object model the evaluator works on.
//
// Declarations from any front-end are normalized into a tree of CodeObjects:
// namespaces own methods, attributes and nested namespaces; methods own their
// parameters. The tree is built once per run by Build and is immutable
// afterward. Derived values (parameters, leading comments, height) are
// computed on first use and cached; they depend only on the object's own
// data, so concurrent readers are safe.
package codeobject

import (
	"sync"

	"github.com/pthm/docgrade/internal/adapter"
)

// CodeObject is the capability surface shared by every declaration kind.
type CodeObject interface {
	// Path uniquely identifies the object within one run.
	Path() string
	Name() string
	Kind() Kind
	Docstring() Docstring
	Locations() []Location

	// Parent returns the enclosing namespace, or nil for roots.
	Parent() *Namespace

	// Depth is the number of namespaces enclosing the object.
	Depth() int

	// HasDoc reports whether the object carries real documentation.
	HasDoc() bool

	// IsNodoc reports whether the object is tagged as exempt from
	// documentation.
	IsNodoc() bool

	// CodeExamples counts the code examples in the documentation.
	CodeExamples() int
}

// base holds the data common to tree-owned objects.
type base struct {
	tree   *Tree
	index  int
	parent int // arena index, -1 for roots
	decl   adapter.Declaration
	doc    Docstring

	examplesOnce sync.Once
	examples     int
}

func (b *base) Path() string          { return b.decl.Path }
func (b *base) Name() string          { return b.decl.Name }
func (b *base) Docstring() Docstring  { return b.doc }
func (b *base) Locations() []Location { return b.decl.Locations }
func (b *base) IsNodoc() bool         { return b.doc.IsNodoc() }

// Parent returns the enclosing namespace, or nil for a root object.
func (b *base) Parent() *Namespace {
	if b.parent < 0 {
		return nil
	}
	ns, _ := b.tree.objects[b.parent].(*Namespace)
	return ns
}

func (b *base) Depth() int {
	depth := 0
	for p := b.Parent(); p != nil; p = p.Parent() {
		depth++
	}
	return depth
}

func (b *base) HasDoc() bool {
	return !b.doc.IsEmpty()
}

func (b *base) CodeExamples() int {
	b.examplesOnce.Do(func() {
		b.examples = b.doc.codeExamples()
	})
	return b.examples
}

// Source returns the declaration's source text as reported by the
// front-end, or "" if unavailable.
func (b *base) Source() string {
	return b.decl.Source
}

// Attribute is a data member: a constant, class variable or field.
type Attribute struct {
	base
}

func (a *Attribute) Kind() Kind { return KindAttribute }
