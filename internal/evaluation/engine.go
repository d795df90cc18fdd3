// Package evaluation scores code objects against the role registry.
package evaluation

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/pthm/docgrade/internal/codeobject"
	"github.com/pthm/docgrade/internal/config"
	"github.com/pthm/docgrade/internal/roles"
)

// RoleResult is the contribution of one applicable role.
type RoleResult struct {
	Label    string
	Score    float64
	Priority int
	MinScore *float64
	MaxScore *float64
}

// Evaluation is the score of one object.
type Evaluation struct {
	Object codeobject.CodeObject

	// Score always lies in [MinScore, MaxScore].
	Score    float64
	MinScore float64
	MaxScore float64

	// Priority is the sum of role priorities; higher means more worth
	// documenting.
	Priority int

	Roles []RoleResult
	Grade Grade
}

// HasRole reports whether the role labeled label applied.
func (e Evaluation) HasRole(label string) bool {
	for _, r := range e.Roles {
		if r.Label == label {
			return true
		}
	}
	return false
}

// Engine evaluates objects. It is safe for concurrent use.
type Engine struct {
	cfg      config.Config
	registry *roles.Registry
	ctx      *roles.Context
	logger   *slog.Logger
	workers  int
	progress func(done, total int)
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithWorkers caps the number of objects evaluated concurrently by Run.
// Values below 1 are ignored.
func WithWorkers(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.workers = n
		}
	}
}

// WithProgress registers fn to be called by Run after each object is
// evaluated. Calls may come from several goroutines but never concurrently.
func WithProgress(fn func(done, total int)) Option {
	return func(e *Engine) {
		e.progress = fn
	}
}

// NewEngine validates cfg and returns an engine using reg. A nil registry
// means the default role set.
func NewEngine(cfg config.Config, reg *roles.Registry, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("creating engine: %w", err)
	}
	if reg == nil {
		reg = roles.DefaultRegistry()
	}
	e := &Engine{
		cfg:      cfg,
		registry: reg,
		ctx:      roles.NewContext(cfg),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Config returns the engine's configuration.
func (e *Engine) Config() config.Config {
	return e.cfg
}

// Evaluate scores o. The raw score is the sum of applicable role scores,
// clamped to the tightest bounds among the configuration and the roles.
// When the bounds cross, the floor wins and MaxScore is raised to it.
func (e *Engine) Evaluate(o codeobject.CodeObject) Evaluation {
	ev := Evaluation{
		Object:   o,
		MinScore: e.cfg.MinScore,
		MaxScore: e.cfg.MaxScore,
	}

	raw := 0.0
	for _, role := range e.registry.For(o.Kind()) {
		out, ok := e.apply(role, o)
		if !ok {
			continue
		}
		raw += out.Score
		ev.Priority += out.Priority
		if out.MinScore != nil {
			ev.MinScore = math.Max(ev.MinScore, *out.MinScore)
		}
		if out.MaxScore != nil {
			ev.MaxScore = math.Min(ev.MaxScore, *out.MaxScore)
		}
		ev.Roles = append(ev.Roles, RoleResult{
			Label:    role.Name(),
			Score:    out.Score,
			Priority: out.Priority,
			MinScore: out.MinScore,
			MaxScore: out.MaxScore,
		})
	}

	if ev.MinScore > ev.MaxScore {
		ev.MaxScore = ev.MinScore
	}
	ev.Score = clamp(raw, ev.MinScore, ev.MaxScore)
	ev.Grade = e.grade(o, ev)
	return ev
}

// apply runs one role. A panicking role is treated as not applicable.
func (e *Engine) apply(role roles.Role, o codeobject.CodeObject) (out roles.Outcome, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Debug("role panicked, treating as not applicable",
				"role", role.Name(), "path", o.Path(), "panic", r)
			out, ok = roles.Outcome{}, false
		}
	}()

	if !role.Applies(e.ctx, o) {
		return roles.Outcome{}, false
	}
	return role.Outcome(e.ctx, o), true
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(v, hi))
}
