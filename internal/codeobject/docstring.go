package codeobject

import (
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/pthm/docgrade/internal/adapter"
)

// Well-known tag kinds. Front-ends normalize their own tag syntax to these.
const (
	TagParam   = "param"
	TagReturn  = "return"
	TagExample = "example"
	TagPrivate = "private"
	TagAPI     = "api"
	TagNodoc   = "nodoc"
)

// Tag is a parsed docstring annotation.
type Tag = adapter.Tag

var (
	mentionsReturnRe  = regexp.MustCompile(`(?i)\breturns?\b`)
	describesReturnRe = regexp.MustCompile(`^\s*Returns\s+\S+`)
	nodocRe           = regexp.MustCompile(`(?m)^\s*:nodoc:\s*$`)
)

// Docstring is the documentation text of an object and its tags.
type Docstring struct {
	Text string
	Tags []Tag
}

func newDocstring(d adapter.Docstring) Docstring {
	return Docstring{
		Text: strings.TrimSpace(d.Text),
		Tags: d.Tags,
	}
}

// IsEmpty reports whether there is no free text. Tags alone do not count.
func (d Docstring) IsEmpty() bool {
	return strings.TrimSpace(d.Text) == ""
}

// TagsOf returns every tag of the given kind, in docstring order.
func (d Docstring) TagsOf(kind string) []Tag {
	var tags []Tag
	for _, t := range d.Tags {
		if t.Kind == kind {
			tags = append(tags, t)
		}
	}
	return tags
}

// Tag returns the first tag of the given kind.
func (d Docstring) Tag(kind string) (Tag, bool) {
	for _, t := range d.Tags {
		if t.Kind == kind {
			return t, true
		}
	}
	return Tag{}, false
}

// ParamTag returns the parameter tag naming name.
func (d Docstring) ParamTag(name string) (Tag, bool) {
	for _, t := range d.Tags {
		if t.Kind == TagParam && t.Name == name {
			return t, true
		}
	}
	return Tag{}, false
}

// MentionsReturn reports whether the text refers to a return value.
func (d Docstring) MentionsReturn() bool {
	return mentionsReturnRe.MatchString(d.Text)
}

// DescribesReturn reports whether a line of the text reads "Returns ...".
func (d Docstring) DescribesReturn() bool {
	for _, line := range strings.Split(d.Text, "\n") {
		if describesReturnRe.MatchString(line) {
			return true
		}
	}
	return false
}

// IsNodoc reports whether the docstring opts the object out of
// documentation requirements.
func (d Docstring) IsNodoc() bool {
	for _, t := range d.Tags {
		switch t.Kind {
		case TagPrivate, TagNodoc:
			return true
		case TagAPI:
			if strings.TrimSpace(t.Text) == "private" || t.Name == "private" {
				return true
			}
		}
	}
	return nodocRe.MatchString(d.Text)
}

// codeExamples counts example tags plus code blocks in the markdown text.
func (d Docstring) codeExamples() int {
	count := len(d.TagsOf(TagExample))
	if d.IsEmpty() {
		return count
	}

	source := []byte(d.Text)
	doc := goldmark.New().Parser().Parse(text.NewReader(source))
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n.(type) {
		case *ast.FencedCodeBlock, *ast.CodeBlock:
			count++
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return count
}
