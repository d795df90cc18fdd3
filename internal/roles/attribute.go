package roles

import "github.com/pthm/docgrade/internal/codeobject"

var attributeOnly = RoleConfig{Kinds: []codeobject.Kind{codeobject.KindAttribute}}

// AttributeWithDocRole gives full marks to a documented attribute
type AttributeWithDocRole struct{}

func (r *AttributeWithDocRole) Name() string        { return "attribute_with_doc" }
func (r *AttributeWithDocRole) Description() string { return "Attribute has a docstring" }
func (r *AttributeWithDocRole) Config() RoleConfig  { return attributeOnly }

func (r *AttributeWithDocRole) Applies(ctx *Context, o codeobject.CodeObject) bool {
	return o.HasDoc()
}

func (r *AttributeWithDocRole) Outcome(ctx *Context, o codeobject.CodeObject) Outcome {
	return Outcome{Score: 100}
}

// AttributeWithoutDocRole raises the priority of an undocumented attribute
type AttributeWithoutDocRole struct{}

func (r *AttributeWithoutDocRole) Name() string        { return "attribute_without_doc" }
func (r *AttributeWithoutDocRole) Description() string { return "Attribute has no docstring" }
func (r *AttributeWithoutDocRole) Config() RoleConfig  { return attributeOnly }

func (r *AttributeWithoutDocRole) Applies(ctx *Context, o codeobject.CodeObject) bool {
	return !o.HasDoc()
}

func (r *AttributeWithoutDocRole) Outcome(ctx *Context, o codeobject.CodeObject) Outcome {
	return Outcome{Priority: 1}
}
