package ui

import (
	"io"
	"os"

	"golang.org/x/term"
)

// OutputMode determines how output is formatted.
type OutputMode int

const (
	// OutputModeInteractive enables colors, spinners and the tree browser
	OutputModeInteractive OutputMode = iota
	// OutputModePlain disables colors and progress (for piped output)
	OutputModePlain
	// OutputModeJSON writes raw JSON only
	OutputModeJSON
)

// UI bundles the writers, mode and styles of one command invocation.
type UI struct {
	Mode      OutputMode
	Writer    io.Writer
	ErrWriter io.Writer
	Styles    *Styles
}

// New creates a UI, detecting whether w is a terminal. format is the
// --format flag value: "json", "plain" or "" for automatic.
func New(w, errW io.Writer, format string) *UI {
	mode := detectMode(w, format)
	return &UI{
		Mode:      mode,
		Writer:    w,
		ErrWriter: errW,
		Styles:    NewStyles(mode == OutputModeInteractive),
	}
}

func detectMode(w io.Writer, format string) OutputMode {
	switch format {
	case "json":
		return OutputModeJSON
	case "plain":
		return OutputModePlain
	}
	if os.Getenv("NO_COLOR") != "" {
		return OutputModePlain
	}
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return OutputModeInteractive
	}
	return OutputModePlain
}

// IsInteractive reports whether output goes to a terminal.
func (ui *UI) IsInteractive() bool {
	return ui.Mode == OutputModeInteractive
}

// IsJSON reports whether JSON output was requested.
func (ui *UI) IsJSON() bool {
	return ui.Mode == OutputModeJSON
}

// Width returns the terminal width of the output, or fallback.
func (ui *UI) Width(fallback int) int {
	if f, ok := ui.Writer.(*os.File); ok {
		if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 0 {
			return w
		}
	}
	return fallback
}
