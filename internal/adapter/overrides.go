package adapter

import "strings"

// LinkOverrides fills in the Overrides hint of methods whose enclosing
// namespace names superclasses that are part of the same declaration
// stream. Superclass names are resolved by exact path first and then by
// their last path segment. Hints already set by the front-end are kept.
//
// sep is the path separator of the language ("::" for Ruby, "." for Python)
// and is used to split superclass names into segments.
func LinkOverrides(decls []Declaration, sep string) {
	namespaces := make(map[string]*Declaration)
	byShortName := make(map[string][]string)
	methods := make(map[string]map[string]string) // namespace path -> method name -> method path

	for i := range decls {
		d := &decls[i]
		switch d.Kind {
		case KindNamespace:
			if _, seen := namespaces[d.Path]; !seen {
				namespaces[d.Path] = d
				byShortName[d.Name] = append(byShortName[d.Name], d.Path)
			} else if len(d.Superclasses) > 0 && len(namespaces[d.Path].Superclasses) == 0 {
				namespaces[d.Path] = d
			}
		case KindMethod:
			m, ok := methods[d.ParentPath]
			if !ok {
				m = make(map[string]string)
				methods[d.ParentPath] = m
			}
			m[d.Name] = d.Path
		}
	}

	resolve := func(name string) string {
		if _, ok := namespaces[name]; ok {
			return name
		}
		short := name
		if idx := strings.LastIndex(name, sep); idx >= 0 {
			short = name[idx+len(sep):]
		}
		if paths := byShortName[short]; len(paths) == 1 {
			return paths[0]
		}
		return ""
	}

	for i := range decls {
		d := &decls[i]
		if d.Kind != KindMethod || d.Overrides != "" {
			continue
		}
		owner, ok := namespaces[d.ParentPath]
		if !ok {
			continue
		}

		visited := map[string]bool{owner.Path: true}
		queue := append([]string(nil), owner.Superclasses...)
		for len(queue) > 0 && d.Overrides == "" {
			super := resolve(queue[0])
			queue = queue[1:]
			if super == "" || visited[super] {
				continue
			}
			visited[super] = true

			if target, ok := methods[super][d.Name]; ok {
				d.Overrides = target
				break
			}
			queue = append(queue, namespaces[super].Superclasses...)
		}
	}
}
