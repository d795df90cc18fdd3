package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/pthm/docgrade/internal/reporter"
	"github.com/pthm/docgrade/internal/ui"
)

var (
	treePrint      bool
	treeNamespaces bool
)

var treeCmd = &cobra.Command{
	Use:   "tree [path]",
	Short: "Browse the namespace tree with grades",
	Long: `Displays an interactive tree of namespaces and their members, each
with its grade.

Controls:
  ↑/k, ↓/j    Navigate up/down
  ←/h, →/l    Collapse/expand nodes
  Enter/Space Toggle expand/collapse
  m           Toggle methods and attributes
  u           Hide grade A members
  q           Quit

Examples:
  docgrade tree .
  docgrade tree --print --namespaces lib/`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTree,
}

func init() {
	treeCmd.Flags().BoolVarP(&treePrint, "print", "p", false, "Print the tree instead of browsing it")
	treeCmd.Flags().BoolVar(&treeNamespaces, "namespaces", false, "Only print namespaces (with --print)")
	RootCmd.AddCommand(treeCmd)
}

func runTree(cmd *cobra.Command, args []string) error {
	u := GetUI()
	if !treePrint && !u.IsInteractive() {
		return fmt.Errorf("tree requires an interactive terminal (TTY); use --print for text output")
	}

	p, err := runWithProgress(cmd.Context(), u, pathArg(args))
	if err != nil {
		return err
	}

	if treePrint {
		if u.IsJSON() {
			return reporter.NewJSONReporter(u.Writer).Report(p.result())
		}
		r := reporter.NewTreeReporter(u.Writer, u.Styles)
		r.NamespacesOnly = treeNamespaces
		return r.Report(p.result())
	}

	program := tea.NewProgram(ui.NewTreeModel(p.records), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("running tree browser: %w", err)
	}
	return nil
}
