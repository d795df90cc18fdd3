package reporter

import (
	"bytes"
	"context"
	"encoding/json"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm/docgrade/internal/adapter"
	"github.com/pthm/docgrade/internal/codeobject"
	"github.com/pthm/docgrade/internal/config"
	"github.com/pthm/docgrade/internal/evaluation"
	"github.com/pthm/docgrade/internal/ui"
)

func calcResult(t *testing.T) Result {
	t.Helper()
	decls := []adapter.Declaration{
		{
			Kind: adapter.KindNamespace, Name: "Calc", Path: "Calc",
			Locations: []adapter.Location{{File: "calc.rb", Line: 1}},
		},
		{
			Kind: adapter.KindMethod, Name: "add", Path: "Calc#add", ParentPath: "Calc",
			Locations: []adapter.Location{{File: "calc.rb", Line: 6}},
			Parameters: []adapter.Parameter{
				{Name: "a", Kind: adapter.ParamPositional},
				{Name: "b", Kind: adapter.ParamPositional},
			},
			Docstring: adapter.Docstring{
				Text: "Adds two numbers.",
				Tags: []adapter.Tag{
					{Kind: "param", Name: "a", Types: []string{"Integer"}, Text: "the first"},
					{Kind: "param", Name: "b", Types: []string{"Integer"}, Text: "the second"},
					{Kind: "return", Types: []string{"Integer"}, Text: "the sum"},
				},
			},
			Source: "def add(a, b)\n  a + b\nend",
		},
		{Kind: adapter.KindMethod, Name: "noop", Path: "Calc#noop", ParentPath: "Calc"},
		{Kind: adapter.KindMethod, Name: "lost", Path: "Gone#lost", ParentPath: "Gone"},
	}
	lang := adapter.Language{Name: "ruby", Initializer: "initialize", CommentPattern: regexp.MustCompile(`^\s*#`)}
	tree, err := codeobject.Build(decls, lang)
	require.NoError(t, err)

	engine, err := evaluation.NewEngine(config.Default(), nil)
	require.NoError(t, err)
	records, err := engine.Run(context.Background(), tree)
	require.NoError(t, err)
	return NewResult(records, tree.Skipped())
}

func TestJSONReporter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONReporter(&buf).Report(calcResult(t)))

	var out JSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	require.Len(t, out.Objects, 3)

	ns := out.Objects[0]
	assert.Equal(t, "Calc", ns.Path)
	assert.Equal(t, "namespace", ns.Kind)
	assert.Equal(t, []string{"Calc#add", "Calc#noop"}, ns.Children)
	require.NotNil(t, ns.Height)
	assert.Equal(t, 0, *ns.Height)

	add := out.Objects[1]
	assert.Equal(t, "method", add.Kind)
	assert.Equal(t, evaluation.GradeA, add.Grade)
	assert.True(t, add.HasDoc)
	assert.Nil(t, add.Height)
	assert.Equal(t, []codeobject.Location{{File: "calc.rb", Line: 6}}, add.Locations)
	require.Len(t, add.Parameters, 2)
	assert.Equal(t, JSONParameter{Name: "a", InSignature: true, Mentioned: true, Typed: true, Described: true, Score: 100},
		add.Parameters[0])
	assert.NotEmpty(t, add.Roles)

	noop := out.Objects[2]
	assert.Equal(t, []codeobject.Location{}, noop.Locations)
	assert.Equal(t, evaluation.GradeU, noop.Grade)

	assert.Equal(t, 3, out.Summary.Total)
	require.Len(t, out.Skipped, 1)
	assert.Equal(t, "Gone#lost", out.Skipped[0].Path)

	// Optional bounds are omitted rather than null.
	assert.NotContains(t, buf.String(), `"max_score": null`)
}

func TestJSONReporterAlwaysEmitsArrays(t *testing.T) {
	decls := []adapter.Declaration{
		{Kind: adapter.KindNamespace, Name: "Empty", Path: "Empty"},
	}
	tree, err := codeobject.Build(decls, adapter.Language{Name: "ruby"})
	require.NoError(t, err)
	engine, err := evaluation.NewEngine(config.Default(), nil)
	require.NoError(t, err)
	records, err := engine.Run(context.Background(), tree)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, NewJSONReporter(&buf).Report(NewResult(records, nil)))

	var out struct {
		Objects []map[string]any `json:"objects"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	require.Len(t, out.Objects, 1)
	for _, key := range []string{"children", "parameters", "locations"} {
		assert.Equal(t, []any{}, out.Objects[0][key], key)
	}
}

func TestTerminalReporterGroupsByGrade(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTerminalReporter(&buf, ui.NewStyles(false)).Report(calcResult(t)))
	out := buf.String()

	assert.Contains(t, out, "A Seems really good")
	assert.Contains(t, out, "U Undocumented")
	assert.Regexp(t, `  \[A\] \S  90  Calc#add\n`, out)
	assert.Less(t, strings.Index(out, "Calc#add"), strings.Index(out, "Calc#noop"))
	assert.Contains(t, out, "3 objects, 1 documented (33%), mean score 30: A 1  B 0  C 0  U 2")
	assert.Contains(t, out, "1 declarations skipped")
}

func TestTerminalReporterTitleKeepsOrder(t *testing.T) {
	res := calcResult(t)
	res.Records = evaluation.Suggest(res.Records, 0)

	var buf bytes.Buffer
	r := NewTerminalReporter(&buf, ui.NewStyles(false))
	r.Title = "Suggestions"
	require.NoError(t, r.Report(res))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "Suggestions\n"))
	assert.NotContains(t, out, "Seems really good")
	assert.Less(t, strings.Index(out, "Calc\n"), strings.Index(out, "Calc#noop"))
}

func TestTerminalReporterEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTerminalReporter(&buf, ui.NewStyles(false)).Report(NewResult(nil, nil)))
	assert.Contains(t, buf.String(), "Nothing to report.")
}

func TestShowReporter(t *testing.T) {
	res := calcResult(t)

	var buf bytes.Buffer
	require.NoError(t, NewShowReporter(&buf, ui.NewStyles(false), 40).Report(res))
	out := buf.String()

	assert.Contains(t, out, "# Calc#add")
	assert.Contains(t, out, "┃ -> calc.rb:6")
	assert.Contains(t, out, "┃ Docstring           Yes")
	assert.Contains(t, out, "┃   a                 Mentioned / Typed / Described")
	assert.Contains(t, out, "┃ Return type:        Defined")
	assert.Contains(t, out, "┃ Children (height: 0):")
	assert.Contains(t, out, "┃ + Calc#add")
	assert.Contains(t, out, "┃ Score (min: 0, max: 100)                   90")
	assert.Contains(t, out, "method_with_doc")
	assert.Regexp(t, `┃ Grade\s+A\n`, out)
	assert.Regexp(t, `┃ Grade\s+U\n`, out)
}

func TestTreeReporter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTreeReporter(&buf, ui.NewStyles(false)).Report(calcResult(t)))
	assert.Equal(t, "[U] Calc 0\n├── [A] add 90\n└── [U] noop 0\n", buf.String())

	buf.Reset()
	r := NewTreeReporter(&buf, ui.NewStyles(false))
	r.NamespacesOnly = true
	require.NoError(t, r.Report(calcResult(t)))
	assert.Equal(t, "[U] Calc 0\n", buf.String())
}
