package roles

import "github.com/pthm/docgrade/internal/codeobject"

var methodOnly = RoleConfig{Kinds: []codeobject.Kind{codeobject.KindMethod}}

func asMethod(o codeobject.CodeObject) (*codeobject.Method, bool) {
	m, ok := o.(*codeobject.Method)
	return m, ok
}

// returnIrrelevant reports whether return documentation does not apply.
func returnIrrelevant(m *codeobject.Method) bool {
	return m.IsConstructor() || m.IsSetter()
}

// MethodWithDocRole rewards a documented method
type MethodWithDocRole struct{}

func (r *MethodWithDocRole) Name() string        { return "method_with_doc" }
func (r *MethodWithDocRole) Description() string { return "Method has a docstring" }
func (r *MethodWithDocRole) Config() RoleConfig  { return methodOnly }

func (r *MethodWithDocRole) Applies(ctx *Context, o codeobject.CodeObject) bool {
	return o.HasDoc()
}

func (r *MethodWithDocRole) Outcome(ctx *Context, o codeobject.CodeObject) Outcome {
	return Outcome{Score: 50}
}

// MethodWithoutDocRole raises the priority of an undocumented method
type MethodWithoutDocRole struct{}

func (r *MethodWithoutDocRole) Name() string        { return "method_without_doc" }
func (r *MethodWithoutDocRole) Description() string { return "Method has no docstring" }
func (r *MethodWithoutDocRole) Config() RoleConfig  { return methodOnly }

func (r *MethodWithoutDocRole) Applies(ctx *Context, o codeobject.CodeObject) bool {
	return !o.HasDoc()
}

func (r *MethodWithoutDocRole) Outcome(ctx *Context, o codeobject.CodeObject) Outcome {
	return Outcome{Priority: 1}
}

// MethodWithCodeExampleRole rewards a single usage example
type MethodWithCodeExampleRole struct{}

func (r *MethodWithCodeExampleRole) Name() string { return "method_with_code_example" }
func (r *MethodWithCodeExampleRole) Description() string {
	return "Method docstring contains exactly one code example"
}
func (r *MethodWithCodeExampleRole) Config() RoleConfig { return methodOnly }

func (r *MethodWithCodeExampleRole) Applies(ctx *Context, o codeobject.CodeObject) bool {
	return o.CodeExamples() == 1
}

func (r *MethodWithCodeExampleRole) Outcome(ctx *Context, o codeobject.CodeObject) Outcome {
	return Outcome{Score: 10}
}

// MethodWithMultipleCodeExamplesRole rewards several usage examples
type MethodWithMultipleCodeExamplesRole struct{}

func (r *MethodWithMultipleCodeExamplesRole) Name() string {
	return "method_with_multiple_code_examples"
}
func (r *MethodWithMultipleCodeExamplesRole) Description() string {
	return "Method docstring contains two or more code examples"
}
func (r *MethodWithMultipleCodeExamplesRole) Config() RoleConfig { return methodOnly }

func (r *MethodWithMultipleCodeExamplesRole) Applies(ctx *Context, o codeobject.CodeObject) bool {
	return o.CodeExamples() >= 2
}

func (r *MethodWithMultipleCodeExamplesRole) Outcome(ctx *Context, o codeobject.CodeObject) Outcome {
	return Outcome{Score: 20}
}

// MethodWithoutParametersRole gives a documented parameterless method the
// points it would otherwise earn for its parameters
type MethodWithoutParametersRole struct{}

func (r *MethodWithoutParametersRole) Name() string { return "method_without_parameters" }
func (r *MethodWithoutParametersRole) Description() string {
	return "Documented method takes no parameters"
}
func (r *MethodWithoutParametersRole) Config() RoleConfig { return methodOnly }

func (r *MethodWithoutParametersRole) Applies(ctx *Context, o codeobject.CodeObject) bool {
	m, ok := asMethod(o)
	return ok && !m.HasParameters() && m.HasDoc()
}

func (r *MethodWithoutParametersRole) Outcome(ctx *Context, o codeobject.CodeObject) Outcome {
	return Outcome{Score: 30}
}

// MethodWithParametersRole scores the documentation of signature parameters
type MethodWithParametersRole struct{}

func (r *MethodWithParametersRole) Name() string { return "method_with_parameters" }
func (r *MethodWithParametersRole) Description() string {
	return "Method takes parameters; scored by how well they are documented"
}
func (r *MethodWithParametersRole) Config() RoleConfig { return methodOnly }

func (r *MethodWithParametersRole) Applies(ctx *Context, o codeobject.CodeObject) bool {
	m, ok := asMethod(o)
	if !ok {
		return false
	}
	for _, p := range m.Parameters() {
		if p.InSignature() {
			return true
		}
	}
	return false
}

func (r *MethodWithParametersRole) Outcome(ctx *Context, o codeobject.CodeObject) Outcome {
	m, _ := asMethod(o)
	var total float64
	var n int
	for _, p := range m.Parameters() {
		if !p.InSignature() {
			continue
		}
		total += ParameterQuality(p)
		n++
	}
	if n == 0 {
		return Outcome{}
	}
	return Outcome{Score: 30 * total / float64(n)}
}

// MethodWithPhantomParametersRole penalizes documented parameters the
// method does not take
type MethodWithPhantomParametersRole struct{}

func (r *MethodWithPhantomParametersRole) Name() string { return "method_with_phantom_parameters" }
func (r *MethodWithPhantomParametersRole) Description() string {
	return "Docstring documents parameters missing from the signature"
}
func (r *MethodWithPhantomParametersRole) Config() RoleConfig { return methodOnly }

func (r *MethodWithPhantomParametersRole) Applies(ctx *Context, o codeobject.CodeObject) bool {
	return phantomCount(o) > 0
}

func (r *MethodWithPhantomParametersRole) Outcome(ctx *Context, o codeobject.CodeObject) Outcome {
	return Outcome{Score: -10 * float64(phantomCount(o)), Priority: 1}
}

func phantomCount(o codeobject.CodeObject) int {
	m, ok := asMethod(o)
	if !ok {
		return 0
	}
	n := 0
	for _, p := range m.Parameters() {
		if !p.InSignature() {
			n++
		}
	}
	return n
}

// MethodWithReturnDocRole rewards documenting the return value
type MethodWithReturnDocRole struct{}

func (r *MethodWithReturnDocRole) Name() string        { return "method_with_return_doc" }
func (r *MethodWithReturnDocRole) Description() string { return "Return value is documented" }
func (r *MethodWithReturnDocRole) Config() RoleConfig  { return methodOnly }

func (r *MethodWithReturnDocRole) Applies(ctx *Context, o codeobject.CodeObject) bool {
	m, ok := asMethod(o)
	if !ok || returnIrrelevant(m) {
		return false
	}
	return m.ReturnMentioned() || m.IsQuestioningName()
}

func (r *MethodWithReturnDocRole) Outcome(ctx *Context, o codeobject.CodeObject) Outcome {
	return Outcome{Score: 10}
}

// MethodWithoutReturnDocRole raises the priority when the return value is
// undocumented
type MethodWithoutReturnDocRole struct{}

func (r *MethodWithoutReturnDocRole) Name() string        { return "method_without_return_doc" }
func (r *MethodWithoutReturnDocRole) Description() string { return "Return value is not documented" }
func (r *MethodWithoutReturnDocRole) Config() RoleConfig  { return methodOnly }

func (r *MethodWithoutReturnDocRole) Applies(ctx *Context, o codeobject.CodeObject) bool {
	m, ok := asMethod(o)
	if !ok || returnIrrelevant(m) {
		return false
	}
	return !m.ReturnMentioned() && !m.IsQuestioningName()
}

func (r *MethodWithoutReturnDocRole) Outcome(ctx *Context, o codeobject.CodeObject) Outcome {
	return Outcome{Priority: 1}
}

// MethodWithManyParametersRole raises the priority of long signatures
type MethodWithManyParametersRole struct{}

func (r *MethodWithManyParametersRole) Name() string { return "method_with_many_parameters" }
func (r *MethodWithManyParametersRole) Description() string {
	return "Method has more parameters than many_parameters_threshold"
}
func (r *MethodWithManyParametersRole) Config() RoleConfig { return methodOnly }

func (r *MethodWithManyParametersRole) Applies(ctx *Context, o codeobject.CodeObject) bool {
	m, ok := asMethod(o)
	return ok && m.HasManyParameters(ctx.Config.ManyParametersThreshold)
}

func (r *MethodWithManyParametersRole) Outcome(ctx *Context, o codeobject.CodeObject) Outcome {
	return Outcome{Priority: 2}
}

// MethodWithManyLinesRole raises the priority of long methods
type MethodWithManyLinesRole struct{}

func (r *MethodWithManyLinesRole) Name() string { return "method_with_many_lines" }
func (r *MethodWithManyLinesRole) Description() string {
	return "Method body is longer than many_lines_threshold"
}
func (r *MethodWithManyLinesRole) Config() RoleConfig { return methodOnly }

func (r *MethodWithManyLinesRole) Applies(ctx *Context, o codeobject.CodeObject) bool {
	m, ok := asMethod(o)
	return ok && m.HasManyLines(ctx.Config.ManyLinesThreshold)
}

func (r *MethodWithManyLinesRole) Outcome(ctx *Context, o codeobject.CodeObject) Outcome {
	return Outcome{Priority: 2}
}

// MethodWithBangNameRole raises the priority of methods named "x!"
type MethodWithBangNameRole struct{}

func (r *MethodWithBangNameRole) Name() string        { return "method_with_bang_name" }
func (r *MethodWithBangNameRole) Description() string { return "Method name ends in !" }
func (r *MethodWithBangNameRole) Config() RoleConfig  { return methodOnly }

func (r *MethodWithBangNameRole) Applies(ctx *Context, o codeobject.CodeObject) bool {
	m, ok := asMethod(o)
	return ok && m.IsBangName()
}

func (r *MethodWithBangNameRole) Outcome(ctx *Context, o codeobject.CodeObject) Outcome {
	return Outcome{Priority: 1}
}

// MethodWithQuestioningNameRole labels predicates named "x?"
type MethodWithQuestioningNameRole struct{}

func (r *MethodWithQuestioningNameRole) Name() string        { return "method_with_questioning_name" }
func (r *MethodWithQuestioningNameRole) Description() string { return "Method name ends in ?" }
func (r *MethodWithQuestioningNameRole) Config() RoleConfig  { return methodOnly }

func (r *MethodWithQuestioningNameRole) Applies(ctx *Context, o codeobject.CodeObject) bool {
	m, ok := asMethod(o)
	return ok && m.IsQuestioningName()
}

func (r *MethodWithQuestioningNameRole) Outcome(ctx *Context, o codeobject.CodeObject) Outcome {
	return Outcome{}
}

// MethodConstructorRole lowers the priority of initializers
type MethodConstructorRole struct{}

func (r *MethodConstructorRole) Name() string        { return "method_constructor" }
func (r *MethodConstructorRole) Description() string { return "Method is the constructor" }
func (r *MethodConstructorRole) Config() RoleConfig  { return methodOnly }

func (r *MethodConstructorRole) Applies(ctx *Context, o codeobject.CodeObject) bool {
	m, ok := asMethod(o)
	return ok && m.IsConstructor()
}

func (r *MethodConstructorRole) Outcome(ctx *Context, o codeobject.CodeObject) Outcome {
	return Outcome{Priority: -1}
}

// MethodAccessorRole lowers the priority of attribute readers and writers
type MethodAccessorRole struct{}

func (r *MethodAccessorRole) Name() string        { return "method_accessor" }
func (r *MethodAccessorRole) Description() string { return "Method is an attribute getter or setter" }
func (r *MethodAccessorRole) Config() RoleConfig  { return methodOnly }

func (r *MethodAccessorRole) Applies(ctx *Context, o codeobject.CodeObject) bool {
	m, ok := asMethod(o)
	return ok && (m.IsGetter() || m.IsSetter())
}

func (r *MethodAccessorRole) Outcome(ctx *Context, o codeobject.CodeObject) Outcome {
	return Outcome{Priority: -2}
}

// MethodOverriddenRole lowers the priority of overrides. When the
// overridden method is documented the override inherits a passing floor.
type MethodOverriddenRole struct{}

func (r *MethodOverriddenRole) Name() string { return "method_overridden" }
func (r *MethodOverriddenRole) Description() string {
	return "Method overrides a method of a superclass"
}
func (r *MethodOverriddenRole) Config() RoleConfig { return methodOnly }

func (r *MethodOverriddenRole) Applies(ctx *Context, o codeobject.CodeObject) bool {
	m, ok := asMethod(o)
	return ok && m.IsOverridden()
}

func (r *MethodOverriddenRole) Outcome(ctx *Context, o codeobject.CodeObject) Outcome {
	out := Outcome{Priority: -2}
	if m, ok := asMethod(o); ok && m.OverriddenMethod().HasDoc() {
		out.MinScore = Bound(midpoint(ctx))
	}
	return out
}

// MethodDelegatesToSuperRole exempts overrides that only call the
// overridden implementation
type MethodDelegatesToSuperRole struct{}

func (r *MethodDelegatesToSuperRole) Name() string { return "method_delegates_to_super" }
func (r *MethodDelegatesToSuperRole) Description() string {
	return "Override does nothing but call super"
}
func (r *MethodDelegatesToSuperRole) Config() RoleConfig { return methodOnly }

func (r *MethodDelegatesToSuperRole) Applies(ctx *Context, o codeobject.CodeObject) bool {
	m, ok := asMethod(o)
	return ok && m.DelegatesToSuper()
}

func (r *MethodDelegatesToSuperRole) Outcome(ctx *Context, o codeobject.CodeObject) Outcome {
	return Outcome{Priority: -3, MinScore: Bound(ctx.Config.MaxScore)}
}
