package evaluation

import "github.com/pthm/docgrade/internal/codeobject"

// Grade is a letter summarizing an evaluation.
type Grade string

const (
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"

	// GradeU marks undocumented objects stuck at their minimum score, and
	// anything scoring below the C cut-off.
	GradeU Grade = "U"
)

// Grades lists every grade from best to worst.
var Grades = []Grade{GradeA, GradeB, GradeC, GradeU}

func (e *Engine) grade(o codeobject.CodeObject, ev Evaluation) Grade {
	g := e.cfg.Grades
	switch {
	case !o.HasDoc() && !o.IsNodoc() && ev.Score == ev.MinScore:
		return GradeU
	case ev.Score >= g.A:
		return GradeA
	case ev.Score >= g.B:
		return GradeB
	case ev.Score >= g.C:
		return GradeC
	default:
		return GradeU
	}
}
