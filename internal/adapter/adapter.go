// Package adapter defines the boundary between language front-ends and the
// documentation evaluator. A front-end turns source files into a flat stream
// of raw Declarations; the codeobject package turns that stream into a tree.
package adapter

import (
	"context"
	"fmt"
	"regexp"
)

// Kind is the declaration kind reported by a front-end.
type Kind string

const (
	KindNamespace Kind = "namespace"
	KindMethod    Kind = "method"
	KindAttribute Kind = "attribute"
)

// Valid reports whether k is one of the known declaration kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindNamespace, KindMethod, KindAttribute:
		return true
	default:
		return false
	}
}

// ParameterKind describes how a parameter appears in a signature.
type ParameterKind string

const (
	ParamPositional ParameterKind = "positional"
	ParamOptional   ParameterKind = "optional"
	ParamSplat      ParameterKind = "splat"
	ParamKeyword    ParameterKind = "keyword"
	ParamKeyRest    ParameterKind = "keyrest"
	ParamBlock      ParameterKind = "block"
)

// Location is a position in a source file. Line is 1-indexed.
type Location struct {
	File string `yaml:"file" json:"file"`
	Line int    `yaml:"line" json:"line"`
}

func (l Location) String() string {
	return fmt.Sprintf("%s:%d", l.File, l.Line)
}

// Parameter is a parameter as declared in an executable signature.
type Parameter struct {
	Name string        `yaml:"name" json:"name"`
	Kind ParameterKind `yaml:"kind,omitempty" json:"kind,omitempty"`
}

// Tag is one structured annotation parsed out of a docstring, e.g.
// "@param name [String] the name" or ":returns: the result".
type Tag struct {
	Kind  string   `yaml:"kind" json:"kind"`
	Name  string   `yaml:"name,omitempty" json:"name,omitempty"`
	Types []string `yaml:"types,omitempty" json:"types,omitempty"`
	Text  string   `yaml:"text,omitempty" json:"text,omitempty"`
}

// Docstring is the documentation attached to a declaration: free text with
// the tag lines removed, plus the tags themselves.
type Docstring struct {
	Text string `yaml:"text,omitempty" json:"text,omitempty"`
	Tags []Tag  `yaml:"tags,omitempty" json:"tags,omitempty"`
}

// Accessor marks a method as the generated reader and/or writer of an
// attribute.
type Accessor struct {
	Attribute string `yaml:"attribute" json:"attribute"`
	Read      bool   `yaml:"read,omitempty" json:"read,omitempty"`
	Write     bool   `yaml:"write,omitempty" json:"write,omitempty"`
}

// Declaration is a single raw declaration produced by a front-end.
//
// Only Kind, Name and Path are required. Minimal front-ends may leave every
// method-specific field empty. DocLines counts documentation lines inside
// the body that Source leaves out, such as a Python docstring.
type Declaration struct {
	Kind         Kind        `yaml:"kind" json:"kind"`
	Name         string      `yaml:"name" json:"name"`
	Path         string      `yaml:"path" json:"path"`
	ParentPath   string      `yaml:"parent,omitempty" json:"parent,omitempty"`
	Locations    []Location  `yaml:"locations,omitempty" json:"locations,omitempty"`
	Parameters   []Parameter `yaml:"parameters,omitempty" json:"parameters,omitempty"`
	Docstring    Docstring   `yaml:"docstring,omitempty" json:"docstring,omitempty"`
	Source       string      `yaml:"source,omitempty" json:"source,omitempty"`
	DocLines     int         `yaml:"doc_lines,omitempty" json:"doc_lines,omitempty"`
	Accessor     *Accessor   `yaml:"accessor,omitempty" json:"accessor,omitempty"`
	Overrides    string      `yaml:"overrides,omitempty" json:"overrides,omitempty"`
	Superclasses []string    `yaml:"superclasses,omitempty" json:"superclasses,omitempty"`
}

// Language describes the source-language conventions the object model needs.
type Language struct {
	// Name identifies the language ("ruby", "python").
	Name string

	// Initializer is the name of the constructor method, if the language
	// has one.
	Initializer string

	// CommentPattern matches a full comment line. It is used when
	// scanning upward from a declaration for its leading comment block.
	CommentPattern *regexp.Regexp
}

// IsComment reports whether line is a comment line in this language.
func (l Language) IsComment(line string) bool {
	if l.CommentPattern == nil {
		return false
	}
	return l.CommentPattern.MatchString(line)
}

// SourceFile is a file handed to a front-end.
type SourceFile struct {
	// Path is the repo-relative path recorded in declaration locations.
	Path string
	// Content is the raw file content.
	Content []byte
}

// Adapter is a language front-end.
type Adapter interface {
	// Name returns the unique identifier for this front-end.
	Name() string

	// Language returns the conventions of the language this front-end reads.
	Language() Language

	// Extensions returns the file extensions handled, including the dot.
	Extensions() []string

	// Parse extracts declarations from files. Files that fail to parse are
	// skipped; an error is returned only when no result can be produced.
	Parse(ctx context.Context, files []SourceFile) ([]Declaration, error)
}
