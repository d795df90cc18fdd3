package python

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/pthm/docgrade/internal/adapter"
)

type walker struct {
	file  string
	src   []byte
	decls []adapter.Declaration
}

func (w *walker) text(n *sitter.Node) string {
	return n.Content(w.src)
}

func (w *walker) location(n *sitter.Node) []adapter.Location {
	return []adapter.Location{{File: w.file, Line: int(n.StartPoint().Row) + 1}}
}

func (w *walker) module(root *sitter.Node, modPath string) {
	doc, _ := w.docstring(root)
	name := modPath
	if i := strings.LastIndex(modPath, Separator); i >= 0 {
		name = modPath[i+1:]
	}
	w.decls = append(w.decls, adapter.Declaration{
		Kind:      adapter.KindNamespace,
		Name:      name,
		Path:      modPath,
		Locations: []adapter.Location{{File: w.file, Line: 1}},
		Docstring: withPrivacy(name, doc),
	})
	w.body(root, modPath, false)
}

// docstring returns the parsed docstring of a module or block and the
// statement holding it.
func (w *walker) docstring(block *sitter.Node) (adapter.Docstring, *sitter.Node) {
	for i := 0; i < int(block.NamedChildCount()); i++ {
		stmt := block.NamedChild(i)
		if stmt.Type() == "comment" {
			continue
		}
		if lit := stringLiteral(stmt); lit != nil {
			return parseDocstring(cleandoc(w.text(lit))), stmt
		}
		break
	}
	return adapter.Docstring{}, nil
}

// stringLiteral returns the string of an expression statement consisting
// of a lone string literal.
func stringLiteral(stmt *sitter.Node) *sitter.Node {
	if stmt == nil || stmt.Type() != "expression_statement" || stmt.NamedChildCount() != 1 {
		return nil
	}
	if lit := stmt.NamedChild(0); lit.Type() == "string" {
		return lit
	}
	return nil
}

// body visits the statements of a module or class block.
func (w *walker) body(block *sitter.Node, scope string, inClass bool) {
	var comments []string
	n := int(block.NamedChildCount())

	for i := 0; i < n; i++ {
		stmt := block.NamedChild(i)
		if stmt.Type() == "comment" {
			text := w.text(stmt)
			if strings.HasPrefix(text, "#:") {
				comments = append(comments, strings.TrimSpace(strings.TrimPrefix(text, "#:")))
			} else {
				comments = nil
			}
			continue
		}

		var decorators []string
		def := stmt
		if stmt.Type() == "decorated_definition" {
			decorators = w.decorators(stmt)
			def = stmt.ChildByFieldName("definition")
			if def == nil {
				comments = nil
				continue
			}
		}

		switch def.Type() {
		case "class_definition":
			w.class(def, scope, stmt)
		case "function_definition":
			w.function(def, scope, stmt, decorators, inClass)
		case "expression_statement":
			var next *sitter.Node
			if i+1 < n {
				next = block.NamedChild(i + 1)
			}
			w.assignment(def, scope, comments, next)
		}
		comments = nil
	}
}

func (w *walker) decorators(n *sitter.Node) []string {
	var out []string
	for i := 0; i < int(n.NamedChildCount()); i++ {
		dec := n.NamedChild(i)
		if dec.Type() != "decorator" || dec.NamedChildCount() == 0 {
			continue
		}
		expr := dec.NamedChild(0)
		if expr.Type() == "call" {
			if fn := expr.ChildByFieldName("function"); fn != nil {
				expr = fn
			}
		}
		out = append(out, w.text(expr))
	}
	return out
}

func (w *walker) class(n *sitter.Node, scope string, outer *sitter.Node) {
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		return
	}
	name := w.text(nameNode)
	p := scope + Separator + name

	d := adapter.Declaration{
		Kind:       adapter.KindNamespace,
		Name:       name,
		Path:       p,
		ParentPath: scope,
		Locations:  w.location(outer),
	}
	if supers := n.ChildByFieldName("superclasses"); supers != nil {
		for i := 0; i < int(supers.NamedChildCount()); i++ {
			switch arg := supers.NamedChild(i); arg.Type() {
			case "identifier", "attribute":
				d.Superclasses = append(d.Superclasses, w.text(arg))
			}
		}
	}

	body := n.ChildByFieldName("body")
	if body != nil {
		d.Docstring, _ = w.docstring(body)
	}
	d.Docstring = withPrivacy(name, d.Docstring)
	w.decls = append(w.decls, d)

	if body != nil {
		w.body(body, p, true)
	}
}

func (w *walker) function(n *sitter.Node, scope string, outer *sitter.Node, decorators []string, inClass bool) {
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		return
	}
	name := w.text(nameNode)

	d := adapter.Declaration{
		Kind:       adapter.KindMethod,
		Name:       name,
		ParentPath: scope,
		Locations:  w.location(outer),
	}

	static := false
	for _, dec := range decorators {
		switch {
		case dec == "staticmethod":
			static = true
		case dec == "property" || dec == "cached_property" || dec == "functools.cached_property":
			d.Accessor = &adapter.Accessor{Attribute: scope + Separator + name, Read: true}
		case dec == name+".setter":
			d.Name = name + "="
			d.Accessor = &adapter.Accessor{Attribute: scope + Separator + name, Write: true}
		case dec == name+".deleter":
			return
		}
	}
	d.Path = scope + Separator + d.Name

	params, annotations := w.parameters(n.ChildByFieldName("parameters"))
	if inClass && !static && len(params) > 0 {
		params = params[1:]
	}
	d.Parameters = params

	var docStmt *sitter.Node
	if body := n.ChildByFieldName("body"); body != nil {
		d.Docstring, docStmt = w.docstring(body)
	}
	applyAnnotations(&d.Docstring, annotations, w.returnAnnotation(n))
	d.Docstring = withPrivacy(name, d.Docstring)
	d.Source = w.source(n, docStmt)
	if docStmt != nil {
		d.DocLines = int(docStmt.EndPoint().Row-docStmt.StartPoint().Row) + 1
	}

	w.decls = append(w.decls, d)
}

// parameters reads a parameter list. annotations maps parameter names to
// their type hints.
func (w *walker) parameters(n *sitter.Node) ([]adapter.Parameter, map[string]string) {
	if n == nil {
		return nil, nil
	}
	var params []adapter.Parameter
	annotations := make(map[string]string)
	keywordOnly := false

	add := func(name string, kind adapter.ParameterKind) {
		if name == "" {
			return
		}
		if keywordOnly && (kind == adapter.ParamPositional || kind == adapter.ParamOptional) {
			kind = adapter.ParamKeyword
		}
		params = append(params, adapter.Parameter{Name: name, Kind: kind})
	}

	for i := 0; i < int(n.NamedChildCount()); i++ {
		p := n.NamedChild(i)
		switch p.Type() {
		case "identifier":
			add(w.text(p), adapter.ParamPositional)
		case "default_parameter", "typed_default_parameter":
			name := w.fieldText(p, "name")
			if t := p.ChildByFieldName("type"); t != nil {
				annotations[name] = w.text(t)
			}
			add(name, adapter.ParamOptional)
		case "typed_parameter":
			if p.NamedChildCount() == 0 {
				continue
			}
			inner := p.NamedChild(0)
			name, kind := w.text(inner), adapter.ParamPositional
			switch inner.Type() {
			case "list_splat_pattern":
				name, kind = w.splatName(inner), adapter.ParamSplat
				keywordOnly = true
			case "dictionary_splat_pattern":
				name, kind = w.splatName(inner), adapter.ParamKeyRest
			}
			if t := p.ChildByFieldName("type"); t != nil {
				annotations[name] = w.text(t)
			}
			add(name, kind)
		case "list_splat_pattern":
			add(w.splatName(p), adapter.ParamSplat)
			keywordOnly = true
		case "dictionary_splat_pattern":
			add(w.splatName(p), adapter.ParamKeyRest)
		case "keyword_separator":
			keywordOnly = true
		}
	}
	return params, annotations
}

func (w *walker) fieldText(n *sitter.Node, field string) string {
	if c := n.ChildByFieldName(field); c != nil {
		return w.text(c)
	}
	return ""
}

func (w *walker) splatName(n *sitter.Node) string {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if c := n.NamedChild(i); c.Type() == "identifier" {
			return w.text(c)
		}
	}
	return ""
}

func (w *walker) returnAnnotation(fn *sitter.Node) string {
	return w.fieldText(fn, "return_type")
}

// applyAnnotations fills in types for documented parameters and return
// values from the signature's type hints when the docstring gives none.
func applyAnnotations(doc *adapter.Docstring, annotations map[string]string, ret string) {
	for i := range doc.Tags {
		t := &doc.Tags[i]
		if len(t.Types) > 0 {
			continue
		}
		switch t.Kind {
		case "param":
			if hint, ok := annotations[t.Name]; ok {
				t.Types = []string{hint}
			}
		case "return":
			if ret != "" {
				t.Types = []string{ret}
			}
		}
	}
}

// withPrivacy marks underscore-prefixed names, other than dunders, as
// private API.
func withPrivacy(name string, doc adapter.Docstring) adapter.Docstring {
	if !strings.HasPrefix(name, "_") || (strings.HasPrefix(name, "__") && strings.HasSuffix(name, "__")) {
		return doc
	}
	for _, t := range doc.Tags {
		if t.Kind == "api" {
			return doc
		}
	}
	doc.Tags = append(doc.Tags, adapter.Tag{Kind: "api", Text: "private"})
	return doc
}

// source returns the text of def without its docstring statement, so that
// body heuristics only see code.
func (w *walker) source(def, docStmt *sitter.Node) string {
	start, end := def.StartByte(), def.EndByte()
	if docStmt == nil {
		return string(w.src[start:end])
	}

	before := strings.TrimRight(string(w.src[start:docStmt.StartByte()]), " \t")
	after := string(w.src[docStmt.EndByte():end])
	if i := strings.IndexByte(after, '\n'); i >= 0 && strings.TrimSpace(after[:i]) == "" {
		after = after[i+1:]
	} else {
		after = strings.TrimLeft(after, " \t")
	}
	return strings.TrimRight(before+after, "\n")
}

// assignment records a module or class level variable. Its documentation
// is either "#:" comments directly above or a string literal directly
// below.
func (w *walker) assignment(stmt *sitter.Node, scope string, comments []string, next *sitter.Node) {
	if stmt.NamedChildCount() == 0 {
		return
	}
	assign := stmt.NamedChild(0)
	if assign.Type() != "assignment" {
		return
	}
	left := assign.ChildByFieldName("left")
	if left == nil || left.Type() != "identifier" {
		return
	}
	name := w.text(left)

	var doc adapter.Docstring
	switch {
	case len(comments) > 0:
		doc = parseDocstring(strings.Join(comments, "\n"))
	case stringLiteral(next) != nil:
		doc = parseDocstring(cleandoc(w.text(stringLiteral(next))))
	}

	w.decls = append(w.decls, adapter.Declaration{
		Kind:       adapter.KindAttribute,
		Name:       name,
		Path:       scope + Separator + name,
		ParentPath: scope,
		Locations:  w.location(stmt),
		Docstring:  withPrivacy(name, doc),
		Source:     w.text(stmt),
	})
}
