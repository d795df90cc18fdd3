package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// ProgressController drives the progress display. A nil controller is a
// valid no-op, which is what StartProgress returns outside a terminal.
type ProgressController struct {
	program *tea.Program
	done    chan struct{}
}

// StartProgress starts the progress display on the error writer if the UI
// is interactive.
func (ui *UI) StartProgress() *ProgressController {
	if ui.Mode != OutputModeInteractive {
		return nil
	}

	p := tea.NewProgram(NewModel(), tea.WithOutput(ui.ErrWriter), tea.WithoutSignalHandler())
	pc := &ProgressController{program: p, done: make(chan struct{})}

	go func() {
		defer close(pc.done)
		_, _ = p.Run()
	}()
	return pc
}

// SetStage moves the display to stage.
func (pc *ProgressController) SetStage(stage Stage) {
	pc.send(StageMsg(stage))
}

// SetOperation shows a detail next to the current stage.
func (pc *ProgressController) SetOperation(op string) {
	pc.send(OperationMsg(op))
}

// SetTotal sets the number of objects to evaluate.
func (pc *ProgressController) SetTotal(n int) {
	pc.send(TotalMsg(n))
}

// Evaluated reports how many objects have been evaluated so far.
func (pc *ProgressController) Evaluated(done int) {
	pc.send(EvaluatedMsg(done))
}

// Done stops the display and waits for it to clear.
func (pc *ProgressController) Done(err error) {
	if pc == nil || pc.program == nil {
		return
	}
	pc.program.Send(DoneMsg{Err: err})
	<-pc.done
}

func (pc *ProgressController) send(msg tea.Msg) {
	if pc != nil && pc.program != nil {
		pc.program.Send(msg)
	}
}
