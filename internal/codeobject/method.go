package codeobject

import (
	"regexp"
	"strings"
	"sync"

	"github.com/pthm/docgrade/internal/adapter"
)

const snipMarker = "... snip ..."

var (
	leadingSpaceRe = regexp.MustCompile(`^\s+`)
	superCallRe    = regexp.MustCompile(`^\s*(return\s+)?super\b`)
)

// Method is a callable member of a namespace.
type Method struct {
	base

	paramsOnce sync.Once
	params     []*Parameter

	overriddenOnce sync.Once
	overridden     *Method

	commentOnce sync.Once
	comment     string
}

func (m *Method) Kind() Kind { return KindMethod }

// IsConstructor reports whether the method is the language's initializer.
func (m *Method) IsConstructor() bool {
	init := m.tree.lang.Initializer
	return init != "" && m.Name() == init
}

// IsGetter reports whether the method reads an attribute. A read hint from
// the front-end settles it; otherwise a sibling "<name>=" taking exactly one
// parameter makes the method a getter.
func (m *Method) IsGetter() bool {
	if acc := m.decl.Accessor; acc != nil && acc.Read {
		return true
	}
	parent := m.Parent()
	if parent == nil {
		return false
	}
	sibling, ok := parent.Child(m.Name() + "=").(*Method)
	return ok && len(sibling.Parameters()) == 1
}

// IsSetter reports whether the method is named "<x>=" and takes exactly one
// parameter.
func (m *Method) IsSetter() bool {
	return strings.HasSuffix(m.Name(), "=") && len(m.Parameters()) == 1
}

// IsBangName reports whether the name ends in "!".
func (m *Method) IsBangName() bool {
	return strings.HasSuffix(m.Name(), "!")
}

// IsQuestioningName reports whether the name ends in "?".
func (m *Method) IsQuestioningName() bool {
	return strings.HasSuffix(m.Name(), "?")
}

// HasParameters reports whether the method has any parameter.
func (m *Method) HasParameters() bool {
	return len(m.Parameters()) > 0
}

// HasManyParameters reports whether the method has more than threshold
// parameters.
func (m *Method) HasManyParameters(threshold int) bool {
	return len(m.Parameters()) > threshold
}

// LineCount is the number of source lines plus its documentation: the
// comment block above the first location and any docstring lines the
// front-end cut from the body. It is 0 when the front-end did not supply
// source.
func (m *Method) LineCount() int {
	src := strings.TrimRight(m.decl.Source, "\n")
	if src == "" {
		return 0
	}
	n := strings.Count(src, "\n") + 1 + max(m.decl.DocLines, 0)
	if locs := m.Locations(); len(locs) > 0 {
		n += len(m.leadingComments(locs[0]))
	}
	return n
}

// HasManyLines reports whether the source is longer than threshold lines.
func (m *Method) HasManyLines(threshold int) bool {
	return m.LineCount() > threshold
}

// Parameters returns the signature parameters followed by parameters only
// mentioned in documentation tags, deduplicated by name.
func (m *Method) Parameters() []*Parameter {
	m.paramsOnce.Do(func() {
		seen := make(map[string]bool)
		for _, raw := range m.decl.Parameters {
			if raw.Name == "" || seen[raw.Name] {
				continue
			}
			seen[raw.Name] = true
			m.params = append(m.params, m.newParameter(raw.Name, true, raw.Kind))
		}
		for _, tag := range m.doc.TagsOf(TagParam) {
			if tag.Name == "" || seen[tag.Name] {
				continue
			}
			seen[tag.Name] = true
			m.params = append(m.params, m.newParameter(tag.Name, false, ""))
		}
	})
	return m.params
}

func (m *Method) newParameter(name string, inSignature bool, kind adapter.ParameterKind) *Parameter {
	p := &Parameter{method: m, name: name, kind: kind, inSignature: inSignature}
	if tag, ok := m.doc.ParamTag(name); ok {
		p.tag = &tag
	}
	return p
}

// Parameter returns the parameter named name, or nil.
func (m *Method) Parameter(name string) *Parameter {
	for _, p := range m.Parameters() {
		if p.name == name {
			return p
		}
	}
	return nil
}

// IsOverridden reports whether the method shadows a method of an ancestor.
func (m *Method) IsOverridden() bool {
	return m.OverriddenMethod() != nil
}

// OverriddenMethod returns the shadowed ancestor method, or nil.
func (m *Method) OverriddenMethod() *Method {
	m.overriddenOnce.Do(func() {
		target := m.decl.Overrides
		if target == "" || target == m.Path() {
			return
		}
		m.overridden, _ = m.tree.Lookup(target).(*Method)
	})
	return m.overridden
}

// ReturnMentioned reports whether a return tag exists or the text mentions
// a return value.
func (m *Method) ReturnMentioned() bool {
	if _, ok := m.doc.Tag(TagReturn); ok {
		return true
	}
	return m.doc.MentionsReturn()
}

// ReturnDescribed reports whether a return tag carries text or the text
// describes the return value.
func (m *Method) ReturnDescribed() bool {
	if tag, ok := m.doc.Tag(TagReturn); ok && strings.TrimSpace(tag.Text) != "" {
		return true
	}
	return m.doc.DescribesReturn()
}

// ReturnTyped is currently the same as ReturnMentioned.
func (m *Method) ReturnTyped() bool {
	return m.ReturnMentioned()
}

// HasDoc reports whether the method has documentation that was written by
// a person rather than generated for an accessor.
func (m *Method) HasDoc() bool {
	return m.base.HasDoc() && !m.hasImplicitDocstring()
}

func (m *Method) hasImplicitDocstring() bool {
	switch {
	case m.IsGetter():
		return m.doc.Text == "Returns the value of attribute "+m.Name()
	case m.IsSetter():
		return m.doc.Text == "Sets the attribute "+strings.TrimSuffix(m.Name(), "=")
	default:
		return false
	}
}

// CommentAndAbbrevSource returns the comment block preceding each location
// followed by the abbreviated source of the method.
func (m *Method) CommentAndAbbrevSource() string {
	m.commentOnce.Do(func() {
		var sb strings.Builder
		for _, loc := range m.Locations() {
			for _, line := range m.leadingComments(loc) {
				sb.WriteString(line)
				sb.WriteString("\n")
			}
		}
		sb.WriteString(m.AbbrevSource())
		m.comment = sb.String()
	})
	return m.comment
}

// leadingComments scans upward from the line above loc while lines are
// comments, stopping at the start of the file. Lines are dedented and
// returned top to bottom.
func (m *Method) leadingComments(loc Location) []string {
	if m.tree.source == nil || loc.File == "" || loc.Line < 2 {
		return nil
	}
	lines, err := m.tree.source.Lines(loc.File)
	if err != nil {
		m.tree.logger.Debug("source unavailable for comment scan",
			"path", m.Path(), "file", loc.File, "error", err)
		return nil
	}

	end := loc.Line - 1 // exclusive, 0-indexed
	if end > len(lines) {
		return nil
	}
	start := end
	for start > 0 && m.tree.lang.IsComment(lines[start-1]) {
		start--
	}

	out := make([]string, 0, end-start)
	for _, line := range lines[start:end] {
		out = append(out, leadingSpaceRe.ReplaceAllString(line, ""))
	}
	return out
}

// AbbrevSource returns the method source, shortened to its first and last
// two lines around an indented snip marker when it has five or more lines.
func (m *Method) AbbrevSource() string {
	return abbreviate(m.decl.Source)
}

func abbreviate(source string) string {
	lines := strings.SplitAfter(source, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	if len(lines) < 5 {
		return source
	}

	indent := leadingSpaceRe.FindString(strings.TrimRight(lines[1], "\n"))
	n := len(lines)
	out := []string{
		lines[0],
		ensureNewline(lines[1]),
		indent + snipMarker + "\n",
		ensureNewline(lines[n-2]),
		lines[n-1],
	}
	return strings.Join(out, "")
}

func ensureNewline(s string) string {
	if strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}

// DelegatesToSuper reports whether the method is overridden and its body
// does nothing but call the overridden implementation.
func (m *Method) DelegatesToSuper() bool {
	if !m.IsOverridden() {
		return false
	}
	lines := strings.Split(strings.TrimRight(m.decl.Source, "\n"), "\n")
	if len(lines) < 2 {
		return false
	}

	var body []string
	for _, line := range lines[1:] {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || trimmed == "end" || m.tree.lang.IsComment(line) {
			continue
		}
		body = append(body, line)
	}
	return len(body) == 1 && superCallRe.MatchString(body[0])
}
