package ruby

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/pthm/docgrade/internal/adapter"
)

// scope is the lexical namespace a statement appears in.
type scope struct {
	path      string
	singleton bool
}

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

// statements lists the statements of a program, class, module or
// singleton class body, flattening body_statement wrappers.
func statements(n *sitter.Node) []*sitter.Node {
	var out []*sitter.Node
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if child.Type() == "body_statement" {
			out = append(out, statements(child)...)
			continue
		}
		out = append(out, child)
	}
	return out
}

// walkBody visits the statements of n, attaching each contiguous comment
// block to the declaration directly below it.
func (w *walker) walkBody(n *sitter.Node, sc scope) {
	var comments []*sitter.Node

	for _, stmt := range statements(n) {
		if stmt.Type() == "comment" {
			if !w.ownLine(stmt) {
				comments = nil
				continue
			}
			if len(comments) > 0 && comments[len(comments)-1].EndPoint().Row+1 != stmt.StartPoint().Row {
				comments = nil
			}
			comments = append(comments, stmt)
			continue
		}

		doc := w.docFor(comments, stmt)
		comments = nil

		switch stmt.Type() {
		case "class", "module":
			w.namespace(stmt, sc, doc)
		case "method":
			w.method(stmt, sc, doc, sc.singleton)
		case "singleton_method":
			w.method(stmt, sc, doc, true)
		case "singleton_class":
			w.walkBody(stmt, scope{path: sc.path, singleton: true})
		case "call", "command", "method_call":
			w.call(stmt, sc, doc)
		case "assignment":
			w.assignment(stmt, sc, doc)
		}
	}
}

// ownLine reports whether a comment starts its line, as opposed to trailing
// code.
func (w *walker) ownLine(n *sitter.Node) bool {
	start := int(n.StartByte())
	for i := start - 1; i >= 0; i-- {
		switch w.src[i] {
		case '\n':
			return true
		case ' ', '\t':
			continue
		default:
			return false
		}
	}
	return true
}

func (w *walker) docFor(comments []*sitter.Node, stmt *sitter.Node) adapter.Docstring {
	if len(comments) == 0 || comments[len(comments)-1].EndPoint().Row+1 != stmt.StartPoint().Row {
		return adapter.Docstring{}
	}
	var lines []string
	for _, c := range comments {
		for _, line := range strings.Split(w.text(c), "\n") {
			lines = append(lines, stripComment(line))
		}
	}
	return parseDocstring(lines)
}

func join(parent, name string) string {
	name = strings.TrimPrefix(name, Separator)
	if parent == "" {
		return name
	}
	return parent + Separator + name
}

func lastSegment(path string) string {
	if i := strings.LastIndex(path, Separator); i >= 0 {
		return path[i+len(Separator):]
	}
	return path
}

func (w *walker) namespace(n *sitter.Node, sc scope, doc adapter.Docstring) {
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		return
	}
	path := join(sc.path, w.text(nameNode))

	d := adapter.Declaration{
		Kind:       adapter.KindNamespace,
		Name:       lastSegment(path),
		Path:       path,
		ParentPath: sc.path,
		Locations:  w.location(n),
		Docstring:  doc,
	}
	if super := n.ChildByFieldName("superclass"); super != nil {
		for i := 0; i < int(super.NamedChildCount()); i++ {
			d.Superclasses = append(d.Superclasses, strings.TrimPrefix(w.text(super.NamedChild(i)), Separator))
		}
	}
	w.decls = append(w.decls, d)

	w.walkBody(n, scope{path: path})
}

func (w *walker) method(n *sitter.Node, sc scope, doc adapter.Docstring, singleton bool) {
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		return
	}
	name := w.text(nameNode)
	sep := "#"
	if singleton {
		sep = "."
	}

	w.decls = append(w.decls, adapter.Declaration{
		Kind:       adapter.KindMethod,
		Name:       name,
		Path:       sc.path + sep + name,
		ParentPath: sc.path,
		Locations:  w.location(n),
		Parameters: w.parameters(n.ChildByFieldName("parameters")),
		Docstring:  doc,
		Source:     w.text(n),
	})
}

var parameterKinds = map[string]adapter.ParameterKind{
	"identifier":           adapter.ParamPositional,
	"optional_parameter":   adapter.ParamOptional,
	"splat_parameter":      adapter.ParamSplat,
	"hash_splat_parameter": adapter.ParamKeyRest,
	"block_parameter":      adapter.ParamBlock,
	"keyword_parameter":    adapter.ParamKeyword,
}

func (w *walker) parameters(n *sitter.Node) []adapter.Parameter {
	if n == nil {
		return nil
	}
	var params []adapter.Parameter
	for i := 0; i < int(n.NamedChildCount()); i++ {
		p := n.NamedChild(i)
		kind, ok := parameterKinds[p.Type()]
		if !ok {
			continue
		}
		name := w.parameterName(p)
		if name == "" {
			continue
		}
		params = append(params, adapter.Parameter{Name: name, Kind: kind})
	}
	return params
}

func (w *walker) parameterName(p *sitter.Node) string {
	if p.Type() == "identifier" {
		return w.text(p)
	}
	if name := p.ChildByFieldName("name"); name != nil {
		return w.text(name)
	}
	for i := 0; i < int(p.NamedChildCount()); i++ {
		if c := p.NamedChild(i); c.Type() == "identifier" {
			return w.text(c)
		}
	}
	return ""
}

// call handles attr_reader, attr_writer, attr_accessor and attr, which
// define accessor methods.
func (w *walker) call(n *sitter.Node, sc scope, doc adapter.Docstring) {
	if n.ChildByFieldName("receiver") != nil {
		return
	}
	method := n.ChildByFieldName("method")
	if method == nil {
		for i := 0; i < int(n.NamedChildCount()); i++ {
			if c := n.NamedChild(i); c.Type() == "identifier" {
				method = c
				break
			}
		}
	}
	if method == nil {
		return
	}

	var read, write bool
	switch w.text(method) {
	case "attr_reader", "attr":
		read = true
	case "attr_writer":
		write = true
	case "attr_accessor":
		read, write = true, true
	default:
		return
	}

	args := n.ChildByFieldName("arguments")
	if args == nil {
		for i := 0; i < int(n.NamedChildCount()); i++ {
			if c := n.NamedChild(i); c.Type() == "argument_list" {
				args = c
				break
			}
		}
	}
	if args == nil {
		return
	}

	for i := 0; i < int(args.NamedChildCount()); i++ {
		arg := args.NamedChild(i)
		switch arg.Type() {
		case "simple_symbol", "symbol", "string":
		default:
			continue
		}
		attr := strings.Trim(w.text(arg), `:"'`)
		if attr == "" {
			continue
		}
		if read {
			w.accessor(n, sc, attr, doc, false)
		}
		if write {
			w.accessor(n, sc, attr, doc, true)
		}
	}
}

// accessor emits the method an attribute macro defines. Undocumented
// accessors get the docstrings YARD generates for them.
func (w *walker) accessor(n *sitter.Node, sc scope, attr string, doc adapter.Docstring, writer bool) {
	d := adapter.Declaration{
		Kind:       adapter.KindMethod,
		Name:       attr,
		ParentPath: sc.path,
		Locations:  w.location(n),
		Docstring:  doc,
		Source:     w.text(n),
		Accessor:   &adapter.Accessor{Attribute: sc.path + "#" + attr, Read: !writer, Write: writer},
	}
	if writer {
		d.Name = attr + "="
		d.Parameters = []adapter.Parameter{{Name: "value", Kind: adapter.ParamPositional}}
	}
	d.Path = sc.path + "#" + d.Name

	if doc.Text == "" && len(doc.Tags) == 0 {
		if writer {
			d.Docstring = adapter.Docstring{
				Text: "Sets the attribute " + attr,
				Tags: []adapter.Tag{{
					Kind: "param",
					Name: "value",
					Text: "the value to set the attribute " + attr + " to.",
				}},
			}
		} else {
			d.Docstring = adapter.Docstring{Text: "Returns the value of attribute " + attr}
		}
	}
	w.decls = append(w.decls, d)
}

// assignment records constants and class variables as attributes.
func (w *walker) assignment(n *sitter.Node, sc scope, doc adapter.Docstring) {
	left := n.ChildByFieldName("left")
	if left == nil {
		return
	}
	switch left.Type() {
	case "constant", "class_variable":
	default:
		return
	}

	name := w.text(left)
	w.decls = append(w.decls, adapter.Declaration{
		Kind:       adapter.KindAttribute,
		Name:       name,
		Path:       join(sc.path, name),
		ParentPath: sc.path,
		Locations:  w.location(n),
		Docstring:  doc,
		Source:     w.text(n),
	})
}
