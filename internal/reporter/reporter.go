// Package reporter renders evaluation results.
package reporter

import (
	"github.com/pthm/docgrade/internal/codeobject"
	"github.com/pthm/docgrade/internal/evaluation"
)

// Result is everything a reporter may render about one run.
type Result struct {
	// Records in tree pre-order, or in suggestion order for suggest.
	Records []evaluation.Record

	// Summary covers the whole run, which may be more than Records.
	Summary evaluation.Summary

	// Skipped holds declarations excluded from the tree.
	Skipped []*codeobject.AdapterError
}

// NewResult summarizes records.
func NewResult(records []evaluation.Record, skipped []*codeobject.AdapterError) Result {
	return Result{
		Records: records,
		Summary: evaluation.Summarize(records),
		Skipped: skipped,
	}
}

// Reporter outputs the results of a run.
type Reporter interface {
	Report(r Result) error
}

// gradeDescriptions are shown as section headers in list output.
var gradeDescriptions = map[evaluation.Grade]string{
	evaluation.GradeA: "Seems really good",
	evaluation.GradeB: "Proper documentation present",
	evaluation.GradeC: "Needs work",
	evaluation.GradeU: "Undocumented",
}
