package roles

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm/docgrade/internal/adapter"
	"github.com/pthm/docgrade/internal/codeobject"
	"github.com/pthm/docgrade/internal/config"
)

var rubyLang = adapter.Language{
	Name:           "ruby",
	Initializer:    "initialize",
	CommentPattern: regexp.MustCompile(`^\s*#`),
}

func buildTree(t *testing.T, decls ...adapter.Declaration) *codeobject.Tree {
	t.Helper()
	tree, err := codeobject.Build(decls, rubyLang)
	require.NoError(t, err)
	return tree
}

func namespace(path, doc string) adapter.Declaration {
	parent := ""
	name := path
	if i := strings.LastIndex(path, "::"); i >= 0 {
		parent, name = path[:i], path[i+2:]
	}
	return adapter.Declaration{
		Kind:       adapter.KindNamespace,
		Name:       name,
		Path:       path,
		ParentPath: parent,
		Docstring:  adapter.Docstring{Text: doc},
	}
}

func methodDecl(parent, name, doc string, params ...string) adapter.Declaration {
	d := adapter.Declaration{
		Kind:       adapter.KindMethod,
		Name:       name,
		Path:       parent + "#" + name,
		ParentPath: parent,
		Docstring:  adapter.Docstring{Text: doc},
	}
	for _, p := range params {
		d.Parameters = append(d.Parameters, adapter.Parameter{Name: p, Kind: adapter.ParamPositional})
	}
	return d
}

// applied returns the names of the roles from reg that apply to o, sorted.
func applied(ctx *Context, reg *Registry, o codeobject.CodeObject) []string {
	var names []string
	for _, r := range reg.For(o.Kind()) {
		if r.Applies(ctx, o) {
			names = append(names, r.Name())
		}
	}
	sort.Strings(names)
	return names
}

func TestNamespaceRoles(t *testing.T) {
	ctx := NewContext(config.Default())
	reg := DefaultRegistry()

	decls := []adapter.Declaration{
		namespace("Documented", "Top level.\n\n```ruby\nDocumented.new\n```"),
		methodDecl("Documented", "run", "Runs."),
		namespace("Empty", ""),
		namespace("Big", ""),
	}
	for i := 0; i < 21; i++ {
		decls = append(decls, methodDecl("Big", fmt.Sprintf("m%d", i), ""))
	}
	tree := buildTree(t, decls...)

	assert.Equal(t,
		[]string{"namespace_with_code_example", "namespace_with_doc"},
		applied(ctx, reg, tree.Lookup("Documented")))
	assert.Equal(t,
		[]string{"namespace_without_children", "namespace_without_doc"},
		applied(ctx, reg, tree.Lookup("Empty")))
	assert.Equal(t,
		[]string{"namespace_with_many_children", "namespace_without_doc"},
		applied(ctx, reg, tree.Lookup("Big")))
}

func TestMethodWithParametersScore(t *testing.T) {
	ctx := NewContext(config.Default())

	m := methodDecl("Foo", "call", "Calls.", "a", "b")
	m.Docstring.Tags = []adapter.Tag{
		{Kind: codeobject.TagParam, Name: "a", Types: []string{"String"}, Text: "the a"},
		{Kind: codeobject.TagParam, Name: "ghost", Text: "not there"},
	}
	tree := buildTree(t, namespace("Foo", ""), m)
	obj := tree.Lookup("Foo#call")

	role := &MethodWithParametersRole{}
	require.True(t, role.Applies(ctx, obj))
	// a is fully documented (1.0), b is not mentioned (0.0); ghost is ignored.
	assert.InDelta(t, 15.0, role.Outcome(ctx, obj).Score, 1e-9)

	phantom := &MethodWithPhantomParametersRole{}
	require.True(t, phantom.Applies(ctx, obj))
	out := phantom.Outcome(ctx, obj)
	assert.Equal(t, -10.0, out.Score)
	assert.Equal(t, 1, out.Priority)

	assert.False(t, (&MethodWithoutParametersRole{}).Applies(ctx, obj))
}

func TestMethodWithoutParametersNeedsDoc(t *testing.T) {
	ctx := NewContext(config.Default())
	tree := buildTree(t,
		namespace("Foo", ""),
		methodDecl("Foo", "documented", "Does a thing."),
		methodDecl("Foo", "bare", ""),
	)
	role := &MethodWithoutParametersRole{}
	assert.True(t, role.Applies(ctx, tree.Lookup("Foo#documented")))
	assert.False(t, role.Applies(ctx, tree.Lookup("Foo#bare")))
	assert.False(t, (&MethodWithParametersRole{}).Applies(ctx, tree.Lookup("Foo#bare")))
}

func TestReturnRoles(t *testing.T) {
	ctx := NewContext(config.Default())
	tree := buildTree(t,
		namespace("Foo", ""),
		methodDecl("Foo", "value", "Returns the value."),
		methodDecl("Foo", "empty?", "Checks emptiness."),
		methodDecl("Foo", "silent", "Does something."),
		methodDecl("Foo", "initialize", "Builds it.", "a"),
		methodDecl("Foo", "name=", "Assigns.", "v"),
	)
	with := &MethodWithReturnDocRole{}
	without := &MethodWithoutReturnDocRole{}

	tests := []struct {
		path          string
		with, without bool
	}{
		{"Foo#value", true, false},
		{"Foo#empty?", true, false},
		{"Foo#silent", false, true},
		{"Foo#initialize", false, false},
		{"Foo#name=", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			o := tree.Lookup(tt.path)
			assert.Equal(t, tt.with, with.Applies(ctx, o))
			assert.Equal(t, tt.without, without.Applies(ctx, o))
		})
	}
}

func TestThresholdRolesFollowConfig(t *testing.T) {
	m := methodDecl("Foo", "wide", "Wide.", "a", "b", "c", "d")
	m.Source = strings.Repeat("line\n", 25)
	tree := buildTree(t, namespace("Foo", ""), m)
	obj := tree.Lookup("Foo#wide")

	ctx := NewContext(config.Default())
	assert.True(t, (&MethodWithManyParametersRole{}).Applies(ctx, obj))
	assert.True(t, (&MethodWithManyLinesRole{}).Applies(ctx, obj))

	cfg := config.Default()
	cfg.ManyParametersThreshold = 4
	cfg.ManyLinesThreshold = 30
	ctx = NewContext(cfg)
	assert.False(t, (&MethodWithManyParametersRole{}).Applies(ctx, obj))
	assert.False(t, (&MethodWithManyLinesRole{}).Applies(ctx, obj))
}

func TestNodocPinsToMaximum(t *testing.T) {
	cfg := config.Default()
	ctx := NewContext(cfg)

	m := methodDecl("Foo", "internal", "")
	m.Docstring.Tags = []adapter.Tag{{Kind: codeobject.TagPrivate}}
	tree := buildTree(t, namespace("Foo", ""), m)

	role := &NodocRole{}
	obj := tree.Lookup("Foo#internal")
	require.True(t, role.Applies(ctx, obj))
	out := role.Outcome(ctx, obj)
	require.NotNil(t, out.MinScore)
	assert.Equal(t, cfg.MaxScore, *out.MinScore)
	assert.Equal(t, -7, out.Priority)
}

func TestOverrideRoles(t *testing.T) {
	ctx := NewContext(config.Default())

	child := namespace("Child", "")
	child.Superclasses = []string{"Base"}
	documented := methodDecl("Child", "run", "")
	documented.Overrides = "Base#run"
	documented.Source = "def run\n  super\nend"
	undocumented := methodDecl("Child", "stop", "")
	undocumented.Overrides = "Base#stop"
	undocumented.Source = "def stop\n  cleanup\n  super\nend"

	tree := buildTree(t,
		namespace("Base", ""),
		methodDecl("Base", "run", "Runs the job."),
		methodDecl("Base", "stop", ""),
		child, documented, undocumented,
	)

	overridden := &MethodOverriddenRole{}
	delegates := &MethodDelegatesToSuperRole{}

	run := tree.Lookup("Child#run")
	require.True(t, overridden.Applies(ctx, run))
	out := overridden.Outcome(ctx, run)
	require.NotNil(t, out.MinScore)
	assert.Equal(t, 50.0, *out.MinScore)
	assert.True(t, delegates.Applies(ctx, run))

	stop := tree.Lookup("Child#stop")
	require.True(t, overridden.Applies(ctx, stop))
	assert.Nil(t, overridden.Outcome(ctx, stop).MinScore)
	assert.False(t, delegates.Applies(ctx, stop))
}

func TestParameterRoles(t *testing.T) {
	ctx := NewContext(config.Default())

	m := methodDecl("Foo", "call", "Calls.")
	m.Parameters = []adapter.Parameter{
		{Name: "a", Kind: adapter.ParamPositional},
		{Name: "rest", Kind: adapter.ParamSplat},
	}
	m.Docstring.Tags = []adapter.Tag{
		{Kind: codeobject.TagParam, Name: "a", Types: []string{"Integer"}, Text: "count"},
		{Kind: codeobject.TagParam, Name: "ghost"},
	}
	tree := buildTree(t, namespace("Foo", ""), m)
	method := tree.Lookup("Foo#call").(*codeobject.Method)
	reg := DefaultRegistry()

	a := method.Parameter("a")
	assert.Equal(t,
		[]string{"parameter_described", "parameter_mentioned", "parameter_typed"},
		applied(ctx, reg, a))
	assert.Equal(t, 1.0, ParameterQuality(a))

	rest := method.Parameter("rest")
	assert.Equal(t, []string{"parameter_special"}, applied(ctx, reg, rest))
	assert.Equal(t, 0.0, ParameterQuality(rest))

	ghost := method.Parameter("ghost")
	assert.Equal(t,
		[]string{"parameter_mentioned", "parameter_not_in_signature"},
		applied(ctx, reg, ghost))
	out := (&ParameterNotInSignatureRole{}).Outcome(ctx, ghost)
	require.NotNil(t, out.MaxScore)
	assert.Equal(t, 0.0, *out.MaxScore)
}

func TestAccessorAndNamingRoles(t *testing.T) {
	ctx := NewContext(config.Default())
	tree := buildTree(t,
		namespace("Foo", ""),
		methodDecl("Foo", "size", ""),
		methodDecl("Foo", "size=", "", "v"),
		methodDecl("Foo", "reset!", ""),
		methodDecl("Foo", "initialize", ""),
	)
	reg := DefaultRegistry()

	assert.Contains(t, applied(ctx, reg, tree.Lookup("Foo#size")), "method_accessor")
	assert.Contains(t, applied(ctx, reg, tree.Lookup("Foo#size=")), "method_accessor")
	assert.Contains(t, applied(ctx, reg, tree.Lookup("Foo#reset!")), "method_with_bang_name")
	assert.Contains(t, applied(ctx, reg, tree.Lookup("Foo#initialize")), "method_constructor")
	assert.NotContains(t, applied(ctx, reg, tree.Lookup("Foo#reset!")), "method_accessor")
}

func TestAttributeRoles(t *testing.T) {
	ctx := NewContext(config.Default())
	tree := buildTree(t,
		namespace("Foo", ""),
		adapter.Declaration{Kind: adapter.KindAttribute, Name: "MAX", Path: "Foo::MAX", ParentPath: "Foo",
			Docstring: adapter.Docstring{Text: "Upper limit."}},
		adapter.Declaration{Kind: adapter.KindAttribute, Name: "MIN", Path: "Foo::MIN", ParentPath: "Foo"},
	)
	reg := DefaultRegistry()
	assert.Equal(t, []string{"attribute_with_doc"}, applied(ctx, reg, tree.Lookup("Foo::MAX")))
	assert.Equal(t, []string{"attribute_without_doc"}, applied(ctx, reg, tree.Lookup("Foo::MIN")))
}
