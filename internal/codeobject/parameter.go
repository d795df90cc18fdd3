package codeobject

import (
	"strings"

	"github.com/pthm/docgrade/internal/adapter"
)

// Parameter is a method parameter, either declared in the signature or only
// mentioned by a documentation tag.
type Parameter struct {
	method *Method
	name   string
	kind   adapter.ParameterKind
	tag    *Tag

	inSignature bool
}

func (p *Parameter) Path() string          { return p.method.Path() + "(" + p.name + ")" }
func (p *Parameter) Name() string          { return p.name }
func (p *Parameter) Kind() Kind            { return KindParameter }
func (p *Parameter) Locations() []Location { return p.method.Locations() }
func (p *Parameter) Parent() *Namespace    { return p.method.Parent() }
func (p *Parameter) Depth() int            { return p.method.Depth() + 1 }
func (p *Parameter) IsNodoc() bool         { return false }
func (p *Parameter) CodeExamples() int     { return 0 }

// Method returns the method the parameter belongs to.
func (p *Parameter) Method() *Method { return p.method }

// Docstring returns the tag text as a docstring.
func (p *Parameter) Docstring() Docstring {
	if p.tag == nil {
		return Docstring{}
	}
	return Docstring{Text: strings.TrimSpace(p.tag.Text), Tags: []Tag{*p.tag}}
}

// HasDoc is true when the parameter is described by a tag.
func (p *Parameter) HasDoc() bool { return p.IsDescribed() }

// SignatureKind reports how the parameter is declared; empty for
// parameters that only appear in documentation.
func (p *Parameter) SignatureKind() adapter.ParameterKind { return p.kind }

// InSignature reports whether the parameter is declared in the signature.
func (p *Parameter) InSignature() bool { return p.inSignature }

// IsMentioned reports whether a documentation tag names the parameter.
func (p *Parameter) IsMentioned() bool { return p.tag != nil }

// IsTyped reports whether the documentation tag gives a type.
func (p *Parameter) IsTyped() bool { return p.tag != nil && len(p.tag.Types) > 0 }

// IsDescribed reports whether the documentation tag has descriptive text.
func (p *Parameter) IsDescribed() bool {
	return p.tag != nil && strings.TrimSpace(p.tag.Text) != ""
}

// IsSpecial reports whether the parameter collects extra arguments or a
// block rather than a single value.
func (p *Parameter) IsSpecial() bool {
	switch p.kind {
	case adapter.ParamSplat, adapter.ParamKeyRest, adapter.ParamBlock:
		return true
	default:
		return false
	}
}
