package roles

import (
	"fmt"

	"github.com/pthm/docgrade/internal/codeobject"
)

// Registry holds registered roles in registration order
type Registry struct {
	roles []Role
	index map[string]int
}

// NewRegistry creates an empty role registry
func NewRegistry() *Registry {
	return &Registry{
		roles: make([]Role, 0),
		index: make(map[string]int),
	}
}

// Register adds a role to the registry. Registering a second role with the
// same name panics.
func (r *Registry) Register(role Role) {
	if _, dup := r.index[role.Name()]; dup {
		panic(fmt.Sprintf("roles: duplicate role %q", role.Name()))
	}
	r.index[role.Name()] = len(r.roles)
	r.roles = append(r.roles, role)
}

// Roles returns all registered roles in registration order
func (r *Registry) Roles() []Role {
	return r.roles
}

// For returns the roles targeting kind, in registration order
func (r *Registry) For(kind codeobject.Kind) []Role {
	var result []Role
	for _, role := range r.roles {
		if role.Config().Targets(kind) {
			result = append(result, role)
		}
	}
	return result
}

// Get returns a role by name
func (r *Registry) Get(name string) Role {
	if i, ok := r.index[name]; ok {
		return r.roles[i]
	}
	return nil
}

// Len returns the number of registered roles
func (r *Registry) Len() int {
	return len(r.roles)
}

// DefaultRegistry returns a registry with all default roles
func DefaultRegistry() *Registry {
	r := NewRegistry()

	r.Register(&NodocRole{})

	// Namespaces
	r.Register(&NamespaceWithDocRole{})
	r.Register(&NamespaceWithoutDocRole{})
	r.Register(&NamespaceWithCodeExampleRole{})
	r.Register(&NamespaceWithoutChildrenRole{})
	r.Register(&NamespaceWithManyChildrenRole{})

	// Methods
	r.Register(&MethodWithDocRole{})
	r.Register(&MethodWithoutDocRole{})
	r.Register(&MethodWithCodeExampleRole{})
	r.Register(&MethodWithMultipleCodeExamplesRole{})
	r.Register(&MethodWithoutParametersRole{})
	r.Register(&MethodWithParametersRole{})
	r.Register(&MethodWithPhantomParametersRole{})
	r.Register(&MethodWithReturnDocRole{})
	r.Register(&MethodWithoutReturnDocRole{})
	r.Register(&MethodWithManyParametersRole{})
	r.Register(&MethodWithManyLinesRole{})
	r.Register(&MethodWithBangNameRole{})
	r.Register(&MethodWithQuestioningNameRole{})
	r.Register(&MethodConstructorRole{})
	r.Register(&MethodAccessorRole{})
	r.Register(&MethodOverriddenRole{})
	r.Register(&MethodDelegatesToSuperRole{})

	// Attributes
	r.Register(&AttributeWithDocRole{})
	r.Register(&AttributeWithoutDocRole{})

	// Parameters
	r.Register(&ParameterMentionedRole{})
	r.Register(&ParameterTypedRole{})
	r.Register(&ParameterDescribedRole{})
	r.Register(&ParameterNotInSignatureRole{})
	r.Register(&ParameterSpecialRole{})

	return r
}
