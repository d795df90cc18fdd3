package reporter

import (
	"fmt"
	"io"
	"strings"

	"github.com/pthm/docgrade/internal/codeobject"
	"github.com/pthm/docgrade/internal/evaluation"
	"github.com/pthm/docgrade/internal/ui"
)

const (
	labelWidth = 20
	roleWidth  = 40
)

// ShowReporter prints the full evaluation of individual objects.
type ShowReporter struct {
	w      io.Writer
	styles *ui.Styles
	width  int
}

// NewShowReporter creates a show reporter drawing separators width
// columns wide.
func NewShowReporter(w io.Writer, styles *ui.Styles, width int) *ShowReporter {
	return &ShowReporter{w: w, styles: styles, width: width}
}

// Report prints every record in res.
func (r *ShowReporter) Report(res Result) error {
	for _, rec := range res.Records {
		r.printRecord(rec)
	}
	return nil
}

func (r *ShowReporter) printRecord(rec evaluation.Record) {
	o := rec.Object

	fmt.Fprintln(r.w)
	fmt.Fprintln(r.w, r.styles.Accent.Render("# "+o.Path()))

	for _, loc := range o.Locations() {
		r.echo(r.styles.Accent.Render("-> " + loc.String()))
	}
	r.separator()

	r.printDoc(rec)
	r.printNamespace(rec)
	r.printRoles(rec)

	r.echo(fmt.Sprintf("%-40s%5d",
		fmt.Sprintf("Score (min: %g, max: %g)", rec.MinScore, rec.MaxScore), int(rec.Score)))
	r.echo(fmt.Sprintf("%-40s%5s", "Grade", r.styles.Grade(string(rec.Grade))))
}

func (r *ShowReporter) printDoc(rec evaluation.Record) {
	o := rec.Object
	if o.IsNodoc() {
		r.echo(r.styles.GradeB.Render("The object was tagged not to be documented."))
		r.separator()
		return
	}

	docState := "No text"
	if o.HasDoc() {
		docState = "Yes"
	}
	r.echo(pad("Docstring") + docState)

	if m, ok := o.(*codeobject.Method); ok {
		paramState := ""
		if !m.HasParameters() {
			paramState = "No parameters"
		}
		r.echo(pad("Parameters:") + paramState)
		for _, p := range m.Parameters() {
			r.echo("  " + fmt.Sprintf("%-*s", labelWidth-2, p.Name()) + strings.Join([]string{
				choose(p.IsMentioned(), "Mentioned", "No text"),
				choose(p.IsTyped(), "Typed", "Not typed"),
				choose(p.IsDescribed(), "Described", "Not described"),
			}, " / "))
		}
		r.echo(pad("Return type:") + choose(m.ReturnTyped(), "Defined", "Not defined"))
	}
	r.separator()
}

func (r *ShowReporter) printNamespace(rec evaluation.Record) {
	if rec.Object.Kind() != codeobject.KindNamespace {
		return
	}
	r.echo(fmt.Sprintf("Children (height: %d):", rec.Height))
	for _, child := range rec.Children {
		r.echo("+ " + r.styles.Accent.Render(child))
	}
	r.separator()
}

func (r *ShowReporter) printRoles(rec evaluation.Record) {
	if len(rec.Roles) == 0 {
		r.echo(r.styles.Dim.Render("No roles assigned."))
		r.separator()
		return
	}

	for _, role := range rec.Roles {
		value := int(role.Score)
		score := fmt.Sprintf("%4d", abs(value))
		switch {
		case value < 0:
			score = r.styles.Negative.Render("-" + score)
		case value > 0:
			score = r.styles.Positive.Render("+" + score)
		default:
			score = " " + score
		}
		priority := fmt.Sprintf("%4d", role.Priority)
		if role.Priority == 0 {
			priority = r.styles.Dim.Render(priority)
		}
		r.echo(fmt.Sprintf("%-*s", roleWidth, role.Label) + score + priority)

		if role.MaxScore != nil {
			r.echo(fmt.Sprintf("  (set max score to %g)", *role.MaxScore))
		}
		if role.MinScore != nil {
			r.echo(fmt.Sprintf("  (set min score to %g)", *role.MinScore))
		}
	}
	r.separator()
}

func (r *ShowReporter) echo(msg string) {
	fmt.Fprintf(r.w, "%s %s\n", r.styles.Accent.Render("┃"), msg)
}

func (r *ShowReporter) separator() {
	r.echo(r.styles.Separator.Render(strings.Repeat("-", max(r.width-2, 10))))
}

func pad(label string) string {
	return fmt.Sprintf("%-*s", labelWidth, label)
}

func choose(ok bool, yes, no string) string {
	if ok {
		return yes
	}
	return no
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
