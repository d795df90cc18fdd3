package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pthm/docgrade/internal/reporter"
	"github.com/pthm/docgrade/internal/ui"
	"github.com/pthm/docgrade/internal/watch"
)

var listWatch bool

var listCmd = &cobra.Command{
	Use:     "list [path]",
	Aliases: []string{"eval"},
	Short:   "Evaluate and list every object by grade",
	Long: `Evaluate the documentation of every namespace, method and attribute
under path and list them grouped by grade.

Examples:
  docgrade list .
  docgrade list --lang python src/
  docgrade list --format json . > grades.json
  docgrade list --watch lib/`,
	Args: cobra.MaximumNArgs(1),
	RunE: runList,
}

func init() {
	listCmd.Flags().BoolVarP(&listWatch, "watch", "w", false, "Re-evaluate when source files change")
	RootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	path := pathArg(args)
	u := GetUI()

	p, err := runWithProgress(cmd.Context(), u, path)
	if err != nil {
		return err
	}
	if err := listReporter(u).Report(p.result()); err != nil {
		return err
	}
	if !listWatch {
		return nil
	}
	return watchAndReport(cmd.Context(), u, p)
}

// runWithProgress evaluates path behind the progress display.
func runWithProgress(ctx context.Context, u *ui.UI, path string) (*pipeline, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	progress := u.StartProgress()
	p, err := evaluate(ctx, path, opts, logger, progress)
	progress.Done(err)
	return p, err
}

func listReporter(u *ui.UI) reporter.Reporter {
	if u.IsJSON() {
		return reporter.NewJSONReporter(u.Writer)
	}
	return reporter.NewTerminalReporter(u.Writer, u.Styles)
}

func watchAndReport(ctx context.Context, u *ui.UI, p *pipeline) error {
	if ctx == nil {
		ctx = context.Background()
	}
	root := sourceBase(p.root)

	w, err := watch.New(root, func(files []string) {
		logger.Debug("sources changed", "files", len(files))
		fmt.Fprintf(u.ErrWriter, "\n%s\n", u.Styles.Dim.Render(
			fmt.Sprintf("%d file(s) changed, re-evaluating...", len(files))))

		next, err := evaluate(ctx, p.root, opts, logger, nil)
		if err != nil {
			logger.Error("re-evaluation failed", "error", err)
			return
		}
		if err := listReporter(u).Report(next.result()); err != nil {
			logger.Error("report failed", "error", err)
		}
	}, watch.WithExtensions(p.adapter.Extensions()...), watch.WithLogger(logger))
	if err != nil {
		return err
	}

	fmt.Fprintf(u.ErrWriter, "\n%s\n", u.Styles.Dim.Render(
		fmt.Sprintf("Watching %s for changes (Ctrl-C to stop)", filepath.Clean(root))))
	return w.Run(ctx)
}

func pathArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "."
}
