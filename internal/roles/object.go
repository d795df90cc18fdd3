package roles

import "github.com/pthm/docgrade/internal/codeobject"

// NodocRole marks objects explicitly exempted from documentation. They are
// pinned to the maximum score and pushed to the bottom of suggestions.
type NodocRole struct{}

func (r *NodocRole) Name() string {
	return "nodoc"
}

func (r *NodocRole) Description() string {
	return "Object is tagged @private, @api private or :nodoc:"
}

func (r *NodocRole) Config() RoleConfig {
	return RoleConfig{
		Kinds: []codeobject.Kind{
			codeobject.KindNamespace,
			codeobject.KindMethod,
			codeobject.KindAttribute,
		},
	}
}

func (r *NodocRole) Applies(ctx *Context, o codeobject.CodeObject) bool {
	return o.IsNodoc()
}

func (r *NodocRole) Outcome(ctx *Context, o codeobject.CodeObject) Outcome {
	return Outcome{Priority: -7, MinScore: Bound(ctx.Config.MaxScore)}
}

// midpoint is halfway between the configured score bounds.
func midpoint(ctx *Context) float64 {
	return ctx.Config.MinScore + (ctx.Config.MaxScore-ctx.Config.MinScore)/2
}
