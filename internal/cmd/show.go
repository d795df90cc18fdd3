package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pthm/docgrade/internal/evaluation"
	"github.com/pthm/docgrade/internal/reporter"
)

// ErrObjectNotFound is returned by show for a path not in the tree.
var ErrObjectNotFound = errors.New("object not found")

var showCmd = &cobra.Command{
	Use:   "show [path] OBJECT...",
	Short: "Show an object with its evaluation",
	Long: `Show the full evaluation of one or more objects: where they are
declared, what documentation they have, which roles applied and how the
final score was bounded.

Objects are named by their path, e.g. "Shop::Cart#total" for Ruby or
"shop.cart.Cart.total" for Python.

Examples:
  docgrade show Shop::Cart
  docgrade show lib/ 'Shop::Cart#total' 'Shop::Cart#add'`,
	Args: cobra.MinimumNArgs(1),
	RunE: runShow,
}

func init() {
	RootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	path, names := splitShowArgs(args)
	if len(names) == 0 {
		return errors.New("provide the path of an object to show")
	}

	u := GetUI()
	p, err := runWithProgress(cmd.Context(), u, path)
	if err != nil {
		return err
	}

	selected, err := selectRecords(p.records, names)
	if err != nil {
		return err
	}
	res := p.result()
	res.Records = selected

	if u.IsJSON() {
		return reporter.NewJSONReporter(u.Writer).Report(res)
	}
	return reporter.NewShowReporter(u.Writer, u.Styles, min(u.Width(80), 100)).Report(res)
}

// splitShowArgs treats the first argument as the path when it exists on
// disk and more arguments follow.
func splitShowArgs(args []string) (string, []string) {
	if len(args) > 1 {
		if _, err := os.Stat(args[0]); err == nil {
			return args[0], args[1:]
		}
	}
	return ".", args
}

func selectRecords(records []evaluation.Record, names []string) ([]evaluation.Record, error) {
	byPath := make(map[string]evaluation.Record, len(records))
	for _, r := range records {
		byPath[r.Path()] = r
	}

	out := make([]evaluation.Record, 0, len(names))
	for _, name := range names {
		r, ok := byPath[name]
		if !ok {
			return nil, fmt.Errorf("%q: %w", name, ErrObjectNotFound)
		}
		out = append(out, r)
	}
	return out, nil
}
