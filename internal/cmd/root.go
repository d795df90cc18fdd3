// Package cmd wires the docgrade command line.
package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/pthm/docgrade/internal/ui"
)

var (
	// Global flags
	verbose bool
	format  string
	opts    options

	globalUI *ui.UI
	logger   = slog.Default()
)

// RootCmd is the docgrade command.
var RootCmd = &cobra.Command{
	Use:   "docgrade",
	Short: "Grade the documentation of a codebase",
	Long: `docgrade reads the classes, modules, methods and attributes of a
codebase, scores how well each one is documented, and suggests what to
document next.

Scores come from roles: small, independent checks such as "has a
docstring", "describes its parameters" or "is an undocumented method with
many lines". Each object gets a score between the configured bounds and a
grade from A to U.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
		slog.SetDefault(logger)

		globalUI = ui.New(cmd.OutOrStdout(), cmd.ErrOrStderr(), format)
		return nil
	},
}

// GetUI returns the UI of the running command.
func GetUI() *ui.UI {
	if globalUI == nil {
		globalUI = ui.New(RootCmd.OutOrStdout(), RootCmd.ErrOrStderr(), format)
	}
	return globalUI
}

func init() {
	flags := RootCmd.PersistentFlags()
	flags.BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	flags.StringVarP(&format, "format", "f", "", "Output format (terminal, plain, json)")
	flags.StringVarP(&opts.lang, "lang", "l", "", "Only read sources of this language (ruby, python)")
	flags.StringVar(&opts.manifest, "manifest", "", "Read declarations from a YAML/JSON manifest instead of sources")
	flags.StringVarP(&opts.config, "config", "c", "", "Config file (default: .docgrade.yml in the target directory)")
	flags.IntVar(&opts.manyParameters, "many-parameters", -1, "Override many_parameters_threshold")
	flags.IntVar(&opts.manyLines, "many-lines", -1, "Override many_lines_threshold")
}
