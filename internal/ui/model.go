package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Stage is a step of an evaluation run.
type Stage int

const (
	StageLoadConfig Stage = iota
	StageDiscover
	StageParse
	StageBuildTree
	StageEvaluate
	StageDone
)

func (s Stage) String() string {
	switch s {
	case StageLoadConfig:
		return "Loading configuration"
	case StageDiscover:
		return "Discovering source files"
	case StageParse:
		return "Parsing declarations"
	case StageBuildTree:
		return "Building object tree"
	case StageEvaluate:
		return "Evaluating objects"
	default:
		return "Done"
	}
}

// Message types for updating the model
type (
	StageMsg     Stage
	OperationMsg string
	TotalMsg     int
	EvaluatedMsg int
	DoneMsg      struct{ Err error }
)

// Model is the bubbletea model of the progress display.
type Model struct {
	stage     Stage
	spinner   spinner.Model
	progress  progress.Model
	currentOp string
	total     int
	evaluated int
	width     int
	quitting  bool
	err       error
}

// NewModel creates a progress model at the first stage.
func NewModel() Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return Model{
		stage:    StageLoadConfig,
		spinner:  s,
		progress: progress.New(progress.WithDefaultGradient()),
	}
}

func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.progress.Width = min(msg.Width-4, 60)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case StageMsg:
		m.stage = Stage(msg)
		m.currentOp = ""
		return m, nil

	case OperationMsg:
		m.currentOp = string(msg)
		return m, nil

	case TotalMsg:
		m.total = int(msg)
		return m, nil

	case EvaluatedMsg:
		m.evaluated = int(msg)
		return m, nil

	case DoneMsg:
		m.err = msg.Err
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

func (m Model) View() string {
	if m.quitting || m.stage == StageDone {
		return ""
	}

	var sb strings.Builder
	if m.stage == StageEvaluate && m.total > 0 {
		sb.WriteString(m.progress.ViewAs(float64(m.evaluated) / float64(m.total)))
		sb.WriteString("\n")
	}
	sb.WriteString(m.spinner.View())
	sb.WriteString(" ")
	sb.WriteString(m.stage.String())
	switch {
	case m.stage == StageEvaluate && m.total > 0:
		sb.WriteString(fmt.Sprintf(" (%d/%d)", m.evaluated, m.total))
	case m.currentOp != "":
		sb.WriteString(fmt.Sprintf(" (%s)", m.currentOp))
	default:
		sb.WriteString("...")
	}
	return sb.String()
}
