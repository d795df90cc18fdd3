package ruby

import (
	"regexp"
	"strings"

	"github.com/pthm/docgrade/internal/adapter"
)

var (
	typesRe   = regexp.MustCompile(`^\[([^\]]*)\]\s*`)
	commentRe = regexp.MustCompile(`^\s*# ?`)
)

// stripComment removes the comment marker and a single following space.
func stripComment(line string) string {
	return commentRe.ReplaceAllString(strings.TrimRight(line, " \t\r"), "")
}

// rawTag is a tag header line plus its indented continuation lines.
type rawTag struct {
	kind string
	rest string
	body []string
}

// parseDocstring splits YARD-style comment text into free text and tags.
// Tag lines start at column zero with "@"; indented lines that follow
// continue the tag. @example tags keep their body verbatim.
func parseDocstring(lines []string) adapter.Docstring {
	var text []string
	var tags []adapter.Tag
	var cur *rawTag

	flush := func() {
		if cur != nil {
			tags = append(tags, cur.build())
			cur = nil
		}
	}

	for _, line := range lines {
		switch {
		case strings.HasPrefix(line, "@") && !strings.HasPrefix(line, "@!"):
			flush()
			kind, rest, _ := strings.Cut(line[1:], " ")
			cur = &rawTag{kind: kind, rest: strings.TrimSpace(rest)}
		case cur != nil && (strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t")):
			cur.body = append(cur.body, line)
		case cur != nil && strings.TrimSpace(line) == "" && cur.kind == "example":
			cur.body = append(cur.body, "")
		default:
			flush()
			if !strings.HasPrefix(line, "@!") {
				text = append(text, line)
			}
		}
	}
	flush()

	return adapter.Docstring{
		Text: strings.TrimSpace(strings.Join(text, "\n")),
		Tags: tags,
	}
}

func (t *rawTag) build() adapter.Tag {
	tag := adapter.Tag{Kind: t.kind}

	switch t.kind {
	case "param", "option":
		rest := t.rest
		types, rest := splitTypes(rest)
		name, rest, _ := strings.Cut(rest, " ")
		if types == nil {
			types, rest = splitTypes(strings.TrimSpace(rest))
		}
		tag.Name = normalizeName(name)
		tag.Types = types
		tag.Text = joinText(rest, t.body)
	case "return", "raise", "yieldreturn":
		tag.Types, tag.Text = splitTypes(t.rest)
		tag.Text = joinText(tag.Text, t.body)
	case "example":
		tag.Name = t.rest
		tag.Text = dedent(t.body)
	default:
		tag.Text = joinText(t.rest, t.body)
	}
	return tag
}

// splitTypes peels a leading "[A, B]" type list off s.
func splitTypes(s string) ([]string, string) {
	m := typesRe.FindStringSubmatch(s)
	if m == nil {
		return nil, s
	}
	var types []string
	for _, t := range strings.Split(m[1], ",") {
		if t = strings.TrimSpace(t); t != "" {
			types = append(types, t)
		}
	}
	return types, s[len(m[0]):]
}

// normalizeName strips splat, block and keyword markers from a parameter
// name so tags line up with signature names.
func normalizeName(name string) string {
	name = strings.TrimLeft(name, "*&")
	return strings.TrimSuffix(name, ":")
}

func joinText(first string, body []string) string {
	parts := []string{strings.TrimSpace(first)}
	for _, line := range body {
		parts = append(parts, strings.TrimSpace(line))
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}

// dedent removes the common leading whitespace of non-blank lines.
func dedent(lines []string) string {
	indent := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		n := len(line) - len(strings.TrimLeft(line, " \t"))
		if indent < 0 || n < indent {
			indent = n
		}
	}
	out := make([]string, len(lines))
	for i, line := range lines {
		if len(line) >= indent && indent > 0 {
			line = line[indent:]
		}
		out[i] = strings.TrimRight(line, " \t")
	}
	return strings.Trim(strings.Join(out, "\n"), "\n")
}
