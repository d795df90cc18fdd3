package python

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm/docgrade/internal/adapter"
)

const geo = `"""Geometry helpers.

>>> helper(2)
4
"""

#: Default scale.
SCALE = 1.0

LIMIT = 10
"""Upper bound on sides."""


class Shape(Base, metaclass=Meta):
    """A shape.

    :param name: the shape's name
    """

    sides = 0

    def __init__(self, name):
        self.name = name

    @property
    def size(self):
        """Returns the size."""
        return self._size

    @size.setter
    def size(self, value):
        self._size = value

    def area(self, scale: float, rounded=False, *rest, mode, **opts) -> float:
        """Compute the area.

        :param float scale: multiplier
        :param rounded: whether to round
        :type rounded: bool
        :param ghost: not real
        :returns: the area
        """
        return 0.0

    @staticmethod
    def build(kind):
        return Shape(kind)

    def _hidden(self):
        pass


class Square(Shape):
    def area(self, scale, rounded=False, *rest, mode, **opts):
        return super().area(scale, rounded, *rest, mode=mode, **opts)


def helper(x: int) -> int:
    """Doubles x.

    :param x: the input
    :rtype: int
    """
    return x * 2
`

func parse(t *testing.T) map[string]adapter.Declaration {
	t.Helper()
	decls, err := (&Adapter{}).Parse(context.Background(), []adapter.SourceFile{
		{Path: "geo.py", Content: []byte(geo)},
	})
	require.NoError(t, err)

	byPath := make(map[string]adapter.Declaration)
	for _, d := range decls {
		byPath[d.Path] = d
	}
	return byPath
}

func TestModulePath(t *testing.T) {
	tests := []struct {
		file string
		want string
	}{
		{"geo.py", "geo"},
		{"pkg/sub/mod.py", "pkg.sub.mod"},
		{"./pkg/mod.py", "pkg.mod"},
		{"pkg/__init__.py", "pkg"},
		{"stubs/types.pyi", "stubs.types"},
	}
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			assert.Equal(t, tt.want, ModulePath(tt.file))
		})
	}
}

func TestParseModule(t *testing.T) {
	decls := parse(t)

	mod, ok := decls["geo"]
	require.True(t, ok)
	assert.Equal(t, adapter.KindNamespace, mod.Kind)
	assert.Equal(t, "Geometry helpers.", mod.Docstring.Text)
	require.Len(t, mod.Docstring.Tags, 1)
	assert.Equal(t, adapter.Tag{Kind: "example", Text: ">>> helper(2)\n4"}, mod.Docstring.Tags[0])

	assert.Equal(t, "Default scale.", decls["geo.SCALE"].Docstring.Text)
	assert.Equal(t, "Upper bound on sides.", decls["geo.LIMIT"].Docstring.Text)
	assert.Equal(t, adapter.KindAttribute, decls["geo.LIMIT"].Kind)
}

func TestParseClass(t *testing.T) {
	decls := parse(t)

	shape, ok := decls["geo.Shape"]
	require.True(t, ok)
	assert.Equal(t, "geo", shape.ParentPath)
	assert.Equal(t, []string{"Base"}, shape.Superclasses)
	assert.Equal(t, "A shape.", shape.Docstring.Text)
	assert.Equal(t, []adapter.Location{{File: "geo.py", Line: 14}}, shape.Locations)

	sides := decls["geo.Shape.sides"]
	assert.Equal(t, adapter.KindAttribute, sides.Kind)
	assert.Equal(t, "geo.Shape", sides.ParentPath)
}

func TestParseMethods(t *testing.T) {
	decls := parse(t)

	init := decls["geo.Shape.__init__"]
	assert.Equal(t, []adapter.Parameter{{Name: "name", Kind: adapter.ParamPositional}}, init.Parameters)

	area := decls["geo.Shape.area"]
	assert.Equal(t, []adapter.Parameter{
		{Name: "scale", Kind: adapter.ParamPositional},
		{Name: "rounded", Kind: adapter.ParamOptional},
		{Name: "rest", Kind: adapter.ParamSplat},
		{Name: "mode", Kind: adapter.ParamKeyword},
		{Name: "opts", Kind: adapter.ParamKeyRest},
	}, area.Parameters)
	assert.Equal(t, "Compute the area.", area.Docstring.Text)
	assert.Equal(t, []adapter.Tag{
		{Kind: "param", Name: "scale", Types: []string{"float"}, Text: "multiplier"},
		{Kind: "param", Name: "rounded", Types: []string{"bool"}, Text: "whether to round"},
		{Kind: "param", Name: "ghost", Text: "not real"},
		{Kind: "return", Types: []string{"float"}, Text: "the area"},
	}, area.Docstring.Tags)
	assert.Equal(t,
		"def area(self, scale: float, rounded=False, *rest, mode, **opts) -> float:\n        return 0.0",
		area.Source)
	assert.Equal(t, 8, area.DocLines)

	build := decls["geo.Shape.build"]
	assert.Equal(t, []adapter.Parameter{{Name: "kind", Kind: adapter.ParamPositional}}, build.Parameters)
	assert.Zero(t, build.DocLines)

	hidden := decls["geo.Shape._hidden"]
	assert.Contains(t, hidden.Docstring.Tags, adapter.Tag{Kind: "api", Text: "private"})

	helper := decls["geo.helper"]
	assert.Equal(t, "geo", helper.ParentPath)
	assert.Equal(t, []adapter.Parameter{{Name: "x", Kind: adapter.ParamPositional}}, helper.Parameters)
	assert.Equal(t, []adapter.Tag{
		{Kind: "param", Name: "x", Types: []string{"int"}, Text: "the input"},
		{Kind: "return", Types: []string{"int"}},
	}, helper.Docstring.Tags)
}

func TestParseProperties(t *testing.T) {
	decls := parse(t)

	getter := decls["geo.Shape.size"]
	require.NotNil(t, getter.Accessor)
	assert.True(t, getter.Accessor.Read)
	assert.Equal(t, "Returns the size.", getter.Docstring.Text)
	assert.Equal(t, []adapter.Location{{File: "geo.py", Line: 25}}, getter.Locations)

	setter, ok := decls["geo.Shape.size="]
	require.True(t, ok)
	require.NotNil(t, setter.Accessor)
	assert.True(t, setter.Accessor.Write)
	assert.Equal(t, []adapter.Parameter{{Name: "value", Kind: adapter.ParamPositional}}, setter.Parameters)
	assert.Equal(t, []adapter.Location{{File: "geo.py", Line: 30}}, setter.Locations)
}

func TestParseLinksOverrides(t *testing.T) {
	decls := parse(t)
	assert.Equal(t, "geo.Shape.area", decls["geo.Square.area"].Overrides)
	assert.Contains(t, decls["geo.Square.area"].Source, "return super().area(")
}

func TestRegistered(t *testing.T) {
	a, err := adapter.Get("python")
	require.NoError(t, err)
	assert.Equal(t, "__init__", a.Language().Initializer)
	assert.Equal(t, a, adapter.ForExtension(".py"))
}
