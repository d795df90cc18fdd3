package roles

import "github.com/pthm/docgrade/internal/codeobject"

// Weights of the three parameter documentation facets. The parameter roles
// award them on the 0..100 scale and method_with_parameters averages them.
const (
	mentionedWeight = 0.5
	typedWeight     = 0.25
	describedWeight = 0.25
)

var parameterOnly = RoleConfig{Kinds: []codeobject.Kind{codeobject.KindParameter}}

// ParameterQuality is the weighted share of documentation facets present
// for p, between 0 and 1.
func ParameterQuality(p *codeobject.Parameter) float64 {
	q := 0.0
	if p.IsMentioned() {
		q += mentionedWeight
	}
	if p.IsTyped() {
		q += typedWeight
	}
	if p.IsDescribed() {
		q += describedWeight
	}
	return q
}

func asParameter(o codeobject.CodeObject) (*codeobject.Parameter, bool) {
	p, ok := o.(*codeobject.Parameter)
	return p, ok
}

// ParameterMentionedRole rewards a parameter named by a documentation tag
type ParameterMentionedRole struct{}

func (r *ParameterMentionedRole) Name() string        { return "parameter_mentioned" }
func (r *ParameterMentionedRole) Description() string { return "Parameter is mentioned in the docstring" }
func (r *ParameterMentionedRole) Config() RoleConfig  { return parameterOnly }

func (r *ParameterMentionedRole) Applies(ctx *Context, o codeobject.CodeObject) bool {
	p, ok := asParameter(o)
	return ok && p.IsMentioned()
}

func (r *ParameterMentionedRole) Outcome(ctx *Context, o codeobject.CodeObject) Outcome {
	return Outcome{Score: 100 * mentionedWeight}
}

// ParameterTypedRole rewards a documented parameter type
type ParameterTypedRole struct{}

func (r *ParameterTypedRole) Name() string        { return "parameter_typed" }
func (r *ParameterTypedRole) Description() string { return "Parameter type is documented" }
func (r *ParameterTypedRole) Config() RoleConfig  { return parameterOnly }

func (r *ParameterTypedRole) Applies(ctx *Context, o codeobject.CodeObject) bool {
	p, ok := asParameter(o)
	return ok && p.IsTyped()
}

func (r *ParameterTypedRole) Outcome(ctx *Context, o codeobject.CodeObject) Outcome {
	return Outcome{Score: 100 * typedWeight}
}

// ParameterDescribedRole rewards a parameter with descriptive text
type ParameterDescribedRole struct{}

func (r *ParameterDescribedRole) Name() string        { return "parameter_described" }
func (r *ParameterDescribedRole) Description() string { return "Parameter has a description" }
func (r *ParameterDescribedRole) Config() RoleConfig  { return parameterOnly }

func (r *ParameterDescribedRole) Applies(ctx *Context, o codeobject.CodeObject) bool {
	p, ok := asParameter(o)
	return ok && p.IsDescribed()
}

func (r *ParameterDescribedRole) Outcome(ctx *Context, o codeobject.CodeObject) Outcome {
	return Outcome{Score: 100 * describedWeight}
}

// ParameterNotInSignatureRole penalizes documentation for a parameter the
// method does not take. The score is capped at the minimum bound.
type ParameterNotInSignatureRole struct{}

func (r *ParameterNotInSignatureRole) Name() string { return "parameter_not_in_signature" }
func (r *ParameterNotInSignatureRole) Description() string {
	return "Documented parameter does not exist in the signature"
}
func (r *ParameterNotInSignatureRole) Config() RoleConfig { return parameterOnly }

func (r *ParameterNotInSignatureRole) Applies(ctx *Context, o codeobject.CodeObject) bool {
	p, ok := asParameter(o)
	return ok && !p.InSignature()
}

func (r *ParameterNotInSignatureRole) Outcome(ctx *Context, o codeobject.CodeObject) Outcome {
	return Outcome{Score: -25, Priority: 1, MaxScore: Bound(ctx.Config.MinScore)}
}

// ParameterSpecialRole lowers the priority of splat, keyword-rest and block
// parameters
type ParameterSpecialRole struct{}

func (r *ParameterSpecialRole) Name() string { return "parameter_special" }
func (r *ParameterSpecialRole) Description() string {
	return "Parameter collects extra arguments or a block"
}
func (r *ParameterSpecialRole) Config() RoleConfig { return parameterOnly }

func (r *ParameterSpecialRole) Applies(ctx *Context, o codeobject.CodeObject) bool {
	p, ok := asParameter(o)
	return ok && p.IsSpecial()
}

func (r *ParameterSpecialRole) Outcome(ctx *Context, o codeobject.CodeObject) Outcome {
	return Outcome{Priority: -1}
}
