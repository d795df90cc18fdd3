package roles

import "github.com/pthm/docgrade/internal/codeobject"

var namespaceOnly = RoleConfig{Kinds: []codeobject.Kind{codeobject.KindNamespace}}

// NamespaceWithDocRole rewards a documented namespace
type NamespaceWithDocRole struct{}

func (r *NamespaceWithDocRole) Name() string        { return "namespace_with_doc" }
func (r *NamespaceWithDocRole) Description() string { return "Namespace has a docstring" }
func (r *NamespaceWithDocRole) Config() RoleConfig  { return namespaceOnly }

func (r *NamespaceWithDocRole) Applies(ctx *Context, o codeobject.CodeObject) bool {
	return o.HasDoc()
}

func (r *NamespaceWithDocRole) Outcome(ctx *Context, o codeobject.CodeObject) Outcome {
	return Outcome{Score: 70}
}

// NamespaceWithoutDocRole raises the priority of an undocumented namespace
type NamespaceWithoutDocRole struct{}

func (r *NamespaceWithoutDocRole) Name() string        { return "namespace_without_doc" }
func (r *NamespaceWithoutDocRole) Description() string { return "Namespace has no docstring" }
func (r *NamespaceWithoutDocRole) Config() RoleConfig  { return namespaceOnly }

func (r *NamespaceWithoutDocRole) Applies(ctx *Context, o codeobject.CodeObject) bool {
	return !o.HasDoc()
}

func (r *NamespaceWithoutDocRole) Outcome(ctx *Context, o codeobject.CodeObject) Outcome {
	return Outcome{Priority: 2}
}

// NamespaceWithCodeExampleRole rewards usage examples in namespace docs
type NamespaceWithCodeExampleRole struct{}

func (r *NamespaceWithCodeExampleRole) Name() string { return "namespace_with_code_example" }
func (r *NamespaceWithCodeExampleRole) Description() string {
	return "Namespace docstring contains at least one code example"
}
func (r *NamespaceWithCodeExampleRole) Config() RoleConfig { return namespaceOnly }

func (r *NamespaceWithCodeExampleRole) Applies(ctx *Context, o codeobject.CodeObject) bool {
	return o.CodeExamples() > 0
}

func (r *NamespaceWithCodeExampleRole) Outcome(ctx *Context, o codeobject.CodeObject) Outcome {
	return Outcome{Score: 30}
}

// NamespaceWithoutChildrenRole lowers the priority of empty namespaces
type NamespaceWithoutChildrenRole struct{}

func (r *NamespaceWithoutChildrenRole) Name() string        { return "namespace_without_children" }
func (r *NamespaceWithoutChildrenRole) Description() string { return "Namespace has no members" }
func (r *NamespaceWithoutChildrenRole) Config() RoleConfig  { return namespaceOnly }

func (r *NamespaceWithoutChildrenRole) Applies(ctx *Context, o codeobject.CodeObject) bool {
	ns, ok := o.(*codeobject.Namespace)
	return ok && len(ns.Children()) == 0
}

func (r *NamespaceWithoutChildrenRole) Outcome(ctx *Context, o codeobject.CodeObject) Outcome {
	return Outcome{Priority: -1}
}

// NamespaceWithManyChildrenRole raises the priority of large namespaces
type NamespaceWithManyChildrenRole struct{}

func (r *NamespaceWithManyChildrenRole) Name() string { return "namespace_with_many_children" }
func (r *NamespaceWithManyChildrenRole) Description() string {
	return "Namespace has more members than many_children_threshold"
}
func (r *NamespaceWithManyChildrenRole) Config() RoleConfig { return namespaceOnly }

func (r *NamespaceWithManyChildrenRole) Applies(ctx *Context, o codeobject.CodeObject) bool {
	ns, ok := o.(*codeobject.Namespace)
	return ok && len(ns.Children()) > ctx.Config.ManyChildrenThreshold
}

func (r *NamespaceWithManyChildrenRole) Outcome(ctx *Context, o codeobject.CodeObject) Outcome {
	return Outcome{Priority: 1}
}
