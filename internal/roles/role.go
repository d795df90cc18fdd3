// Package roles defines the pluggable documentation roles an object can
// play and the ordered registry the engine draws them from.
package roles

import (
	"github.com/pthm/docgrade/internal/codeobject"
	"github.com/pthm/docgrade/internal/config"
)

// Context carries the run configuration into role predicates.
type Context struct {
	Config config.Config
}

// NewContext returns a Context for cfg.
func NewContext(cfg config.Config) *Context {
	return &Context{Config: cfg}
}

// Outcome is what a role contributes to an object's evaluation.
type Outcome struct {
	// Score is added to the raw score.
	Score float64

	// Priority is added to the object's priority.
	Priority int

	// MinScore and MaxScore, when set, bound the final score.
	MinScore *float64
	MaxScore *float64
}

// Bound returns a pointer to v, for use in Outcome bounds.
func Bound(v float64) *float64 {
	return &v
}

// RoleConfig defines which objects a role is tried on.
type RoleConfig struct {
	// Kinds the role applies to. Empty means every kind.
	Kinds []codeobject.Kind
}

// Targets reports whether the config includes kind.
func (c RoleConfig) Targets(kind codeobject.Kind) bool {
	if len(c.Kinds) == 0 {
		return true
	}
	for _, k := range c.Kinds {
		if k == kind {
			return true
		}
	}
	return false
}

// Role is a named, stateless classification of a code object that adjusts
// its score.
type Role interface {
	// Name returns the unique label, e.g. "method_with_doc"
	Name() string

	// Description returns a human-readable description
	Description() string

	// Config returns the kinds the role targets
	Config() RoleConfig

	// Applies reports whether the object plays this role.
	Applies(ctx *Context, o codeobject.CodeObject) bool

	// Outcome returns the role's contribution. Only called when Applies
	// returned true.
	Outcome(ctx *Context, o codeobject.CodeObject) Outcome
}
