package cmd

import (
	"github.com/spf13/cobra"

	"github.com/pthm/docgrade/internal/evaluation"
	"github.com/pthm/docgrade/internal/reporter"
)

var suggestLimit int

var suggestCmd = &cobra.Command{
	Use:   "suggest [path]",
	Short: "List the objects most worth documenting",
	Long: `List objects below grade A, highest priority first. Priority grows
with the size and visibility of an object, so the top of the list is where
documentation pays off most.

Examples:
  docgrade suggest .
  docgrade suggest --limit 5 lib/`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSuggest,
}

func init() {
	suggestCmd.Flags().IntVarP(&suggestLimit, "limit", "n", 20, "Maximum number of suggestions (0 for all)")
	RootCmd.AddCommand(suggestCmd)
}

func runSuggest(cmd *cobra.Command, args []string) error {
	u := GetUI()
	p, err := runWithProgress(cmd.Context(), u, pathArg(args))
	if err != nil {
		return err
	}

	res := p.result()
	res.Records = evaluation.Suggest(p.records, suggestLimit)

	if u.IsJSON() {
		return reporter.NewJSONReporter(u.Writer).Report(res)
	}
	r := reporter.NewTerminalReporter(u.Writer, u.Styles)
	r.Title = "Objects most worth documenting"
	return r.Report(res)
}
