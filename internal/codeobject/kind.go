package codeobject

import "github.com/pthm/docgrade/internal/adapter"

// Kind is the variant of a CodeObject.
type Kind int

const (
	KindNamespace Kind = iota
	KindMethod
	KindAttribute
	KindParameter
)

func (k Kind) String() string {
	switch k {
	case KindNamespace:
		return "namespace"
	case KindMethod:
		return "method"
	case KindAttribute:
		return "attribute"
	case KindParameter:
		return "parameter"
	default:
		return "unknown"
	}
}

// ParseKind converts a kind name to a Kind. ok is false for unknown names.
func ParseKind(s string) (Kind, bool) {
	switch s {
	case "namespace":
		return KindNamespace, true
	case "method":
		return KindMethod, true
	case "attribute":
		return KindAttribute, true
	case "parameter":
		return KindParameter, true
	default:
		return 0, false
	}
}

func kindOf(k adapter.Kind) Kind {
	switch k {
	case adapter.KindMethod:
		return KindMethod
	case adapter.KindAttribute:
		return KindAttribute
	default:
		return KindNamespace
	}
}

// Location is a (file, line) position of a declaration.
type Location = adapter.Location
