package reporter

import (
	"fmt"
	"io"
	"strings"

	"github.com/pthm/docgrade/internal/evaluation"
	"github.com/pthm/docgrade/internal/ui"
)

// TerminalReporter lists objects grouped by grade.
type TerminalReporter struct {
	w      io.Writer
	styles *ui.Styles

	// Title replaces the grade grouping with a single heading and keeps
	// the record order, as used for suggestions.
	Title string
}

// NewTerminalReporter creates a terminal reporter.
func NewTerminalReporter(w io.Writer, styles *ui.Styles) *TerminalReporter {
	return &TerminalReporter{w: w, styles: styles}
}

// Report prints the records and the run summary.
func (r *TerminalReporter) Report(res Result) error {
	if len(res.Records) == 0 {
		fmt.Fprintln(r.w, r.styles.Positive.Render("Nothing to report."))
	} else if r.Title != "" {
		fmt.Fprintln(r.w, r.styles.Header.Render(r.Title))
		for _, rec := range res.Records {
			r.printRecord(rec)
		}
	} else {
		byGrade := make(map[evaluation.Grade][]evaluation.Record)
		for _, rec := range res.Records {
			byGrade[rec.Grade] = append(byGrade[rec.Grade], rec)
		}
		for _, g := range evaluation.Grades {
			recs := byGrade[g]
			if len(recs) == 0 {
				continue
			}
			fmt.Fprintln(r.w)
			fmt.Fprintf(r.w, "%s %s\n", r.styles.Grade(string(g)), r.styles.Header.Render(gradeDescriptions[g]))
			for _, rec := range recs {
				r.printRecord(rec)
			}
		}
	}

	r.printSummary(res)
	return nil
}

func (r *TerminalReporter) printRecord(rec evaluation.Record) {
	fmt.Fprintf(r.w, "  [%s] %s %3d  %s\n",
		r.styles.Grade(string(rec.Grade)),
		r.styles.Arrow(rec.Priority),
		int(rec.Score),
		rec.Path(),
	)
}

func (r *TerminalReporter) printSummary(res Result) {
	s := res.Summary

	fmt.Fprintln(r.w)
	fmt.Fprintln(r.w, r.styles.Separator.Render(strings.Repeat("─", 40)))

	parts := make([]string, 0, len(evaluation.Grades))
	for _, g := range evaluation.Grades {
		parts = append(parts, fmt.Sprintf("%s %d", r.styles.Grade(string(g)), s.ByGrade[g]))
	}
	fmt.Fprintf(r.w, "%d objects, %d documented (%.0f%%), mean score %.0f: %s\n",
		s.Total, s.Documented, s.Coverage()*100, s.MeanScore, strings.Join(parts, "  "))

	if n := len(res.Skipped); n > 0 {
		fmt.Fprintln(r.w, r.styles.Dim.Render(
			fmt.Sprintf("%d declarations skipped (use --verbose for details)", n)))
	}
}
