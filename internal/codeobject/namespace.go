package codeobject

import "sync"

// Namespace is a container declaration: a module, class or package.
type Namespace struct {
	base
	children []int

	heightOnce sync.Once
	height     int
}

func (n *Namespace) Kind() Kind { return KindNamespace }

// IsNamespace is always true; it mirrors the predicate other kinds lack.
func (n *Namespace) IsNamespace() bool { return true }

// Superclasses returns the superclass names the front-end reported.
func (n *Namespace) Superclasses() []string {
	return n.decl.Superclasses
}

// Children returns the immediate members in declaration order.
func (n *Namespace) Children() []CodeObject {
	children := make([]CodeObject, 0, len(n.children))
	for _, idx := range n.children {
		children = append(children, n.tree.objects[idx])
	}
	return children
}

// Child returns the first immediate member named name.
func (n *Namespace) Child(name string) CodeObject {
	for _, idx := range n.children {
		if obj := n.tree.objects[idx]; obj.Name() == name {
			return obj
		}
	}
	return nil
}

// Namespaces returns the nested namespaces in declaration order.
func (n *Namespace) Namespaces() []*Namespace {
	var out []*Namespace
	for _, idx := range n.children {
		if ns, ok := n.tree.objects[idx].(*Namespace); ok {
			out = append(out, ns)
		}
	}
	return out
}

// Methods returns the methods in declaration order.
func (n *Namespace) Methods() []*Method {
	var out []*Method
	for _, idx := range n.children {
		if m, ok := n.tree.objects[idx].(*Method); ok {
			out = append(out, m)
		}
	}
	return out
}

// Attributes returns the attributes in declaration order.
func (n *Namespace) Attributes() []*Attribute {
	var out []*Attribute
	for _, idx := range n.children {
		if a, ok := n.tree.objects[idx].(*Attribute); ok {
			out = append(out, a)
		}
	}
	return out
}

// Height is the length of the longest chain of nested namespaces below n:
// 0 when n has no namespace children.
func (n *Namespace) Height() int {
	n.heightOnce.Do(func() {
		for _, child := range n.Namespaces() {
			if h := child.Height() + 1; h > n.height {
				n.height = h
			}
		}
	})
	return n.height
}
