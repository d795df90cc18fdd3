package python

import (
	"regexp"
	"strings"

	"github.com/pthm/docgrade/internal/adapter"
)

// fieldRe matches a reStructuredText field list item such as
// ":param int count: how many".
var fieldRe = regexp.MustCompile(`^:([A-Za-z]+)((?:\s+[^:]+)?):\s*(.*)$`)

// cleandoc strips the quotes and string prefix of a docstring literal and
// removes its indentation the way inspect.cleandoc does.
func cleandoc(literal string) string {
	s := strings.TrimLeft(literal, "rRuUbBfF")
	for _, q := range []string{`"""`, `'''`, `"`, `'`} {
		if strings.HasPrefix(s, q) && strings.HasSuffix(s, q) && len(s) >= 2*len(q) {
			s = s[len(q) : len(s)-len(q)]
			break
		}
	}

	lines := strings.Split(strings.ReplaceAll(s, "\t", "    "), "\n")
	indent := -1
	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		n := len(line) - len(strings.TrimLeft(line, " "))
		if indent < 0 || n < indent {
			indent = n
		}
	}

	lines[0] = strings.TrimSpace(lines[0])
	for i := 1; i < len(lines); i++ {
		if indent > 0 && len(lines[i]) >= indent {
			lines[i] = lines[i][indent:]
		}
		lines[i] = strings.TrimRight(lines[i], " ")
	}
	return strings.Trim(strings.Join(lines, "\n"), "\n ")
}

// field is one parsed field list item.
type field struct {
	name string
	arg  string
	text []string
}

// parseDocstring splits a cleaned docstring into free text and tags.
// Sphinx field lists become param, return, raise and api tags, ":type:"
// and ":rtype:" fill in types, and doctest blocks become example tags.
func parseDocstring(doc string) adapter.Docstring {
	var text []string
	var fields []*field
	var examples [][]string
	var cur *field
	inExample := false

	for _, line := range strings.Split(doc, "\n") {
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, ">>>") {
			if !inExample {
				examples = append(examples, nil)
				inExample = true
			}
			cur = nil
			examples[len(examples)-1] = append(examples[len(examples)-1], trimmed)
			continue
		}
		if inExample && trimmed != "" {
			// doctest output lines belong to the example
			examples[len(examples)-1] = append(examples[len(examples)-1], trimmed)
			continue
		}
		inExample = false

		if m := fieldRe.FindStringSubmatch(trimmed); m != nil {
			cur = &field{name: m[1], arg: strings.TrimSpace(m[2])}
			if m[3] != "" {
				cur.text = append(cur.text, m[3])
			}
			fields = append(fields, cur)
			continue
		}
		if cur != nil && trimmed != "" && (strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t")) {
			cur.text = append(cur.text, trimmed)
			continue
		}
		cur = nil
		text = append(text, line)
	}

	return adapter.Docstring{
		Text: strings.TrimSpace(strings.Join(text, "\n")),
		Tags: buildTags(fields, examples),
	}
}

func buildTags(fields []*field, examples [][]string) []adapter.Tag {
	var tags []adapter.Tag
	paramIndex := make(map[string]int)
	returnIndex := -1

	param := func(name string) *adapter.Tag {
		if i, ok := paramIndex[name]; ok {
			return &tags[i]
		}
		tags = append(tags, adapter.Tag{Kind: "param", Name: name})
		paramIndex[name] = len(tags) - 1
		return &tags[len(tags)-1]
	}
	ret := func() *adapter.Tag {
		if returnIndex < 0 {
			tags = append(tags, adapter.Tag{Kind: "return"})
			returnIndex = len(tags) - 1
		}
		return &tags[returnIndex]
	}

	for _, f := range fields {
		body := strings.Join(f.text, " ")
		switch f.name {
		case "param", "parameter", "arg", "argument", "key", "keyword":
			words := strings.Fields(f.arg)
			if len(words) == 0 {
				continue
			}
			name := normalizeName(words[len(words)-1])
			t := param(name)
			if len(words) > 1 {
				t.Types = splitTypes(strings.Join(words[:len(words)-1], " "))
			}
			t.Text = body
		case "type":
			if f.arg != "" {
				param(normalizeName(f.arg)).Types = splitTypes(body)
			}
		case "return", "returns":
			ret().Text = body
		case "rtype":
			ret().Types = splitTypes(body)
		case "raises", "raise", "except", "exception":
			tags = append(tags, adapter.Tag{Kind: "raise", Types: splitTypes(f.arg), Text: body})
		case "meta":
			if f.arg == "private" {
				tags = append(tags, adapter.Tag{Kind: "api", Text: "private"})
			}
		default:
			tags = append(tags, adapter.Tag{Kind: f.name, Name: f.arg, Text: body})
		}
	}

	for _, ex := range examples {
		tags = append(tags, adapter.Tag{Kind: "example", Text: strings.Join(ex, "\n")})
	}
	return tags
}

func normalizeName(name string) string {
	return strings.TrimLeft(name, "*")
}

func splitTypes(s string) []string {
	var types []string
	s = strings.ReplaceAll(s, " or ", ",")
	for _, part := range strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == '|' }) {
		if part = strings.TrimSpace(part); part != "" {
			types = append(types, part)
		}
	}
	return types
}
