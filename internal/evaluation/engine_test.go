package evaluation

import (
	"context"
	"fmt"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm/docgrade/internal/adapter"
	"github.com/pthm/docgrade/internal/codeobject"
	"github.com/pthm/docgrade/internal/config"
	"github.com/pthm/docgrade/internal/roles"
)

var rubyLang = adapter.Language{
	Name:           "ruby",
	Initializer:    "initialize",
	CommentPattern: regexp.MustCompile(`^\s*#`),
}

// stubRole is a configurable role for engine tests.
type stubRole struct {
	name    string
	kinds   []codeobject.Kind
	outcome roles.Outcome
	panics  bool
}

func (r *stubRole) Name() string        { return r.name }
func (r *stubRole) Description() string { return "stub " + r.name }
func (r *stubRole) Config() roles.RoleConfig {
	return roles.RoleConfig{Kinds: r.kinds}
}

func (r *stubRole) Applies(ctx *roles.Context, o codeobject.CodeObject) bool {
	if r.panics {
		panic("boom")
	}
	return true
}

func (r *stubRole) Outcome(ctx *roles.Context, o codeobject.CodeObject) roles.Outcome {
	return r.outcome
}

func endToEndTree(t *testing.T) *codeobject.Tree {
	t.Helper()
	decls := []adapter.Declaration{
		{Kind: adapter.KindNamespace, Name: "Calc", Path: "Calc"},
		{
			Kind: adapter.KindMethod, Name: "add", Path: "Calc#add", ParentPath: "Calc",
			Parameters: []adapter.Parameter{
				{Name: "a", Kind: adapter.ParamPositional},
				{Name: "b", Kind: adapter.ParamPositional},
			},
			Docstring: adapter.Docstring{
				Text: "Adds two numbers.",
				Tags: []adapter.Tag{
					{Kind: codeobject.TagParam, Name: "a", Types: []string{"Integer"}, Text: "the first"},
					{Kind: codeobject.TagParam, Name: "b", Types: []string{"Integer"}, Text: "the second"},
					{Kind: codeobject.TagReturn, Types: []string{"Integer"}, Text: "the sum"},
				},
			},
			Source: "def add(a, b)\n  a + b\nend",
		},
		{
			Kind: adapter.KindMethod, Name: "noop", Path: "Calc#noop", ParentPath: "Calc",
			Source: "def noop\nend",
		},
	}
	tree, err := codeobject.Build(decls, rubyLang)
	require.NoError(t, err)
	return tree
}

func newEngine(t *testing.T, reg *roles.Registry) *Engine {
	t.Helper()
	e, err := NewEngine(config.Default(), reg)
	require.NoError(t, err)
	return e
}

func TestEndToEndNamespace(t *testing.T) {
	e := newEngine(t, nil)
	records, err := e.Run(context.Background(), endToEndTree(t))
	require.NoError(t, err)
	require.Len(t, records, 3)

	ns := records[0]
	assert.Equal(t, "Calc", ns.Path())
	assert.Equal(t, []string{"Calc#add", "Calc#noop"}, ns.Children)
	assert.Equal(t, 0, ns.Height)
	assert.Equal(t, 2, ns.Priority)
	assert.Equal(t, GradeU, ns.Grade)

	add := records[1]
	assert.Equal(t, "Calc#add", add.Path())
	assert.InDelta(t, 90.0, add.Score, 1e-9)
	assert.Equal(t, GradeA, add.Grade)
	assert.True(t, add.HasRole("method_with_doc"))
	assert.True(t, add.HasRole("method_with_parameters"))
	assert.True(t, add.HasRole("method_with_return_doc"))
	require.Len(t, add.Parameters, 2)
	for _, p := range add.Parameters {
		assert.Equal(t, 100.0, p.Score)
	}

	noop := records[2]
	assert.Equal(t, "Calc#noop", noop.Path())
	assert.False(t, noop.Object.HasDoc())
	assert.Equal(t, 0.0, noop.Score)
	assert.Equal(t, GradeU, noop.Grade)
	assert.Equal(t, 2, noop.Priority)
	assert.Empty(t, noop.Parameters)
}

func TestScoreWithinBounds(t *testing.T) {
	e := newEngine(t, nil)
	records, err := e.Run(context.Background(), endToEndTree(t))
	require.NoError(t, err)

	for _, r := range records {
		assert.LessOrEqual(t, r.MinScore, r.Score, r.Path())
		assert.LessOrEqual(t, r.Score, r.MaxScore, r.Path())
		for _, p := range r.Parameters {
			assert.LessOrEqual(t, p.MinScore, p.Score)
			assert.LessOrEqual(t, p.Score, p.MaxScore)
		}
	}
}

func TestClamping(t *testing.T) {
	floor := 80.0
	ceiling := 20.0

	tests := []struct {
		name  string
		roles []*stubRole
		score float64
		min   float64
		max   float64
	}{
		{
			name:  "raw above config max",
			roles: []*stubRole{{name: "big", outcome: roles.Outcome{Score: 500}}},
			score: 100, min: 0, max: 100,
		},
		{
			name:  "raw below config min",
			roles: []*stubRole{{name: "neg", outcome: roles.Outcome{Score: -40}}},
			score: 0, min: 0, max: 100,
		},
		{
			name: "role floor",
			roles: []*stubRole{
				{name: "small", outcome: roles.Outcome{Score: 10}},
				{name: "floor", outcome: roles.Outcome{MinScore: &floor}},
			},
			score: 80, min: 80, max: 100,
		},
		{
			name: "role ceiling",
			roles: []*stubRole{
				{name: "big", outcome: roles.Outcome{Score: 60}},
				{name: "ceiling", outcome: roles.Outcome{MaxScore: &ceiling}},
			},
			score: 20, min: 0, max: 20,
		},
		{
			name: "floor wins over crossing ceiling",
			roles: []*stubRole{
				{name: "floor", outcome: roles.Outcome{MinScore: &floor}},
				{name: "ceiling", outcome: roles.Outcome{MaxScore: &ceiling}},
			},
			score: 80, min: 80, max: 80,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := roles.NewRegistry()
			for _, r := range tt.roles {
				reg.Register(r)
			}
			e := newEngine(t, reg)
			tree := endToEndTree(t)

			ev := e.Evaluate(tree.Lookup("Calc"))
			assert.Equal(t, tt.score, ev.Score)
			assert.Equal(t, tt.min, ev.MinScore)
			assert.Equal(t, tt.max, ev.MaxScore)
			assert.Len(t, ev.Roles, len(tt.roles))
		})
	}
}

func TestPanickingRoleIsNotApplicable(t *testing.T) {
	reg := roles.NewRegistry()
	reg.Register(&stubRole{name: "ok", outcome: roles.Outcome{Score: 30, Priority: 1}})
	reg.Register(&stubRole{name: "bad", panics: true})

	e := newEngine(t, reg)
	ev := e.Evaluate(endToEndTree(t).Lookup("Calc#add"))

	assert.Equal(t, 30.0, ev.Score)
	assert.Equal(t, 1, ev.Priority)
	require.Len(t, ev.Roles, 1)
	assert.Equal(t, "ok", ev.Roles[0].Label)
}

func TestRolesFilteredByKind(t *testing.T) {
	reg := roles.NewRegistry()
	reg.Register(&stubRole{name: "methods", kinds: []codeobject.Kind{codeobject.KindMethod}, outcome: roles.Outcome{Score: 5}})

	e := newEngine(t, reg)
	tree := endToEndTree(t)
	assert.Empty(t, e.Evaluate(tree.Lookup("Calc")).Roles)
	assert.Len(t, e.Evaluate(tree.Lookup("Calc#noop")).Roles, 1)
}

func TestDeterminism(t *testing.T) {
	decls := []adapter.Declaration{{Kind: adapter.KindNamespace, Name: "Big", Path: "Big"}}
	for i := 0; i < 50; i++ {
		name := fmt.Sprintf("m%d", i)
		d := adapter.Declaration{Kind: adapter.KindMethod, Name: name, Path: "Big#" + name, ParentPath: "Big"}
		if i%3 == 0 {
			d.Docstring.Text = "Returns something."
		}
		if i%4 == 0 {
			d.Parameters = []adapter.Parameter{{Name: "x"}}
		}
		decls = append(decls, d)
	}
	tree, err := codeobject.Build(decls, rubyLang)
	require.NoError(t, err)

	e, err := NewEngine(config.Default(), nil, WithWorkers(8))
	require.NoError(t, err)

	first, err := e.Run(context.Background(), tree)
	require.NoError(t, err)
	second, err := e.Run(context.Background(), tree)
	require.NoError(t, err)

	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i].Path(), second[i].Path())
		assert.Equal(t, first[i].Score, second[i].Score)
		assert.Equal(t, labels(first[i].Roles), labels(second[i].Roles))
	}
}

func labels(results []RoleResult) []string {
	var out []string
	for _, r := range results {
		out = append(out, r.Label)
	}
	return out
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e := newEngine(t, nil)
	_, err := e.Run(ctx, endToEndTree(t))
	require.ErrorIs(t, err, context.Canceled)
}

func TestNewEngineRejectsInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.MinScore = 200
	_, err := NewEngine(cfg, nil)
	require.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestGrades(t *testing.T) {
	reg := roles.NewRegistry()
	e := newEngine(t, reg)

	tests := []struct {
		score float64
		doc   bool
		want  Grade
	}{
		{95, true, GradeA},
		{80, true, GradeA},
		{79.9, true, GradeB},
		{50, true, GradeB},
		{10, true, GradeC},
		{0, true, GradeC},
		{0, false, GradeU},
		{30, false, GradeC},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%v/%v", tt.score, tt.doc), func(t *testing.T) {
			d := adapter.Declaration{Kind: adapter.KindNamespace, Name: "N", Path: "N"}
			if tt.doc {
				d.Docstring.Text = "Documented."
			}
			tree, err := codeobject.Build([]adapter.Declaration{d}, rubyLang)
			require.NoError(t, err)
			obj := tree.Lookup("N")
			ev := Evaluation{Object: obj, Score: tt.score, MinScore: 0, MaxScore: 100}
			assert.Equal(t, tt.want, e.grade(obj, ev))
		})
	}
}

func TestNodocIsNotUndocumented(t *testing.T) {
	e := newEngine(t, nil)
	tree, err := codeobject.Build([]adapter.Declaration{{
		Kind: adapter.KindNamespace, Name: "Hidden", Path: "Hidden",
		Docstring: adapter.Docstring{Tags: []adapter.Tag{{Kind: codeobject.TagPrivate}}},
	}}, rubyLang)
	require.NoError(t, err)

	ev := e.Evaluate(tree.Lookup("Hidden"))
	assert.Equal(t, 100.0, ev.Score)
	assert.Equal(t, GradeA, ev.Grade)
	assert.True(t, ev.HasRole("nodoc"))
}

func TestRunReportsProgress(t *testing.T) {
	var calls []int
	total := 0
	e, err := NewEngine(config.Default(), nil, WithWorkers(2), WithProgress(func(done, n int) {
		calls = append(calls, done)
		total = n
	}))
	require.NoError(t, err)

	_, err = e.Run(context.Background(), endToEndTree(t))
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, calls)
	assert.Equal(t, 3, total)
}
