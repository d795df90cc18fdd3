package reporter

import (
	"fmt"
	"io"

	"github.com/pthm/docgrade/internal/codeobject"
	"github.com/pthm/docgrade/internal/evaluation"
	"github.com/pthm/docgrade/internal/ui"
)

// TreeReporter prints the namespace tree with a grade per object.
type TreeReporter struct {
	w      io.Writer
	styles *ui.Styles

	// NamespacesOnly hides methods and attributes.
	NamespacesOnly bool
}

// NewTreeReporter creates a text tree reporter.
func NewTreeReporter(w io.Writer, styles *ui.Styles) *TreeReporter {
	return &TreeReporter{w: w, styles: styles}
}

// Report prints each root and its descendants.
func (r *TreeReporter) Report(res Result) error {
	for _, root := range ui.BuildTreeNodes(res.Records) {
		r.printNode(root, "", true, true)
	}
	return nil
}

func (r *TreeReporter) printNode(node *ui.TreeNode, prefix string, last, root bool) {
	rec := node.Record
	isNamespace := rec.Object.Kind() == codeobject.KindNamespace
	if r.NamespacesOnly && !isNamespace {
		return
	}

	connector, childPrefix := "├── ", prefix+"│   "
	if last {
		connector, childPrefix = "└── ", prefix+"    "
	}
	if root {
		connector, childPrefix = "", ""
	}

	label := rec.Object.Name()
	if isNamespace {
		label = r.styles.Header.Render(label)
		if root {
			label = r.styles.Header.Render(rec.Path())
		}
	}
	fmt.Fprintf(r.w, "%s%s[%s] %s%s\n", r.styles.Dim.Render(prefix), r.styles.Dim.Render(connector),
		r.styles.Grade(string(rec.Grade)), label, r.suffix(rec))

	children := node.Children
	if r.NamespacesOnly {
		children = nil
		for _, c := range node.Children {
			if c.Record.Object.Kind() == codeobject.KindNamespace {
				children = append(children, c)
			}
		}
	}
	for i, child := range children {
		r.printNode(child, childPrefix, i == len(children)-1, false)
	}
}

func (r *TreeReporter) suffix(rec *evaluation.Record) string {
	return r.styles.Dim.Render(fmt.Sprintf(" %d", int(rec.Score)))
}
