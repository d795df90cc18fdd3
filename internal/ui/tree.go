package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pthm/docgrade/internal/codeobject"
	"github.com/pthm/docgrade/internal/evaluation"
)

// TreeNode is one row of the namespace browser.
type TreeNode struct {
	Record   *evaluation.Record
	Depth    int
	Expanded bool
	Children []*TreeNode
	Parent   *TreeNode
}

// TreeModel is the bubbletea model of the interactive namespace browser.
type TreeModel struct {
	roots       []*TreeNode
	nodes       []*TreeNode // visible rows
	cursor      int
	ready       bool
	width       int
	height      int
	showMembers bool
	onlyPending bool
	keys        treeKeyMap
	styles      treeStyles
	grades      *Styles
}

type treeKeyMap struct {
	Up          key.Binding
	Down        key.Binding
	Left        key.Binding
	Right       key.Binding
	Toggle      key.Binding
	Members     key.Binding
	OnlyPending key.Binding
	Quit        key.Binding
}

type treeStyles struct {
	selected  lipgloss.Style
	namespace lipgloss.Style
	member    lipgloss.Style
	tree      lipgloss.Style
	dim       lipgloss.Style
	statusBar lipgloss.Style
	helpBar   lipgloss.Style
}

func defaultTreeKeyMap() treeKeyMap {
	return treeKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "collapse"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "expand"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter/space", "toggle"),
		),
		Members: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "toggle members"),
		),
		OnlyPending: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "hide grade A"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func defaultTreeStyles() treeStyles {
	return treeStyles{
		selected:  lipgloss.NewStyle().Background(lipgloss.Color("237")).Bold(true),
		namespace: lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true),
		member:    lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		tree:      lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		dim:       lipgloss.NewStyle().Foreground(lipgloss.Color("242")),
		statusBar: lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("236")).Padding(0, 1),
		helpBar:   lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Background(lipgloss.Color("235")),
	}
}

// NewTreeModel creates a browser over records, which must be in tree
// pre-order as returned by evaluation.Engine.Run.
func NewTreeModel(records []evaluation.Record) TreeModel {
	m := TreeModel{
		showMembers: true,
		keys:        defaultTreeKeyMap(),
		styles:      defaultTreeStyles(),
		grades:      NewStyles(true),
	}
	m.roots = BuildTreeNodes(records)
	m.updateVisibleNodes()
	return m
}

// BuildTreeNodes links records into a forest following namespace children.
// The first two levels start expanded.
func BuildTreeNodes(records []evaluation.Record) []*TreeNode {
	byPath := make(map[string]*evaluation.Record, len(records))
	for i := range records {
		byPath[records[i].Path()] = &records[i]
	}

	var build func(rec *evaluation.Record, parent *TreeNode, depth int) *TreeNode
	build = func(rec *evaluation.Record, parent *TreeNode, depth int) *TreeNode {
		node := &TreeNode{Record: rec, Depth: depth, Expanded: depth < 2, Parent: parent}
		for _, path := range rec.Children {
			if child, ok := byPath[path]; ok {
				node.Children = append(node.Children, build(child, node, depth+1))
			}
		}
		return node
	}

	var roots []*TreeNode
	for i := range records {
		if records[i].Object.Parent() == nil {
			roots = append(roots, build(&records[i], nil, 0))
		}
	}
	return roots
}

func (m *TreeModel) updateVisibleNodes() {
	m.nodes = nil
	for _, root := range m.roots {
		m.collectVisible(root)
	}
	m.cursor = max(0, min(m.cursor, len(m.nodes)-1))
}

func (m *TreeModel) collectVisible(node *TreeNode) {
	if !m.visible(node) {
		return
	}
	m.nodes = append(m.nodes, node)
	if node.Expanded {
		for _, child := range node.Children {
			m.collectVisible(child)
		}
	}
}

func (m *TreeModel) visible(node *TreeNode) bool {
	isNamespace := node.Record.Object.Kind() == codeobject.KindNamespace
	if !m.showMembers && !isNamespace {
		return false
	}
	if m.onlyPending && node.Record.Grade == evaluation.GradeA && !isNamespace {
		return false
	}
	return true
}

func (m TreeModel) Init() tea.Cmd {
	return nil
}

func (m TreeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}

		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.nodes)-1 {
				m.cursor++
			}

		case key.Matches(msg, m.keys.Left):
			if len(m.nodes) > 0 {
				m.nodes[m.cursor].Expanded = false
				m.updateVisibleNodes()
			}

		case key.Matches(msg, m.keys.Right), key.Matches(msg, m.keys.Toggle):
			if len(m.nodes) > 0 {
				m.nodes[m.cursor].Expanded = !m.nodes[m.cursor].Expanded
				m.updateVisibleNodes()
			}

		case key.Matches(msg, m.keys.Members):
			m.showMembers = !m.showMembers
			m.updateVisibleNodes()

		case key.Matches(msg, m.keys.OnlyPending):
			m.onlyPending = !m.onlyPending
			m.updateVisibleNodes()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
	}

	return m, nil
}

func (m TreeModel) View() string {
	if !m.ready {
		return "Initializing..."
	}

	treeHeight := max(m.height-3, 5)

	start := 0
	if m.cursor >= treeHeight {
		start = m.cursor - treeHeight + 1
	}
	end := min(start+treeHeight, len(m.nodes))

	var sb strings.Builder
	for i := start; i < end; i++ {
		sb.WriteString(m.renderNode(m.nodes[i], i == m.cursor))
		sb.WriteString("\n")
	}
	for i := end - start; i < treeHeight; i++ {
		sb.WriteString("\n")
	}

	detail := ""
	if len(m.nodes) > 0 {
		detail = m.renderDetailLine(m.nodes[m.cursor])
	}
	sb.WriteString(m.styles.statusBar.Width(m.width).Render(detail))
	sb.WriteString("\n")

	help := fmt.Sprintf(" ↑↓ navigate  ←→ collapse/expand  m members(%s)  u hide A(%s)  q quit",
		onOff(m.showMembers), onOff(m.onlyPending))
	sb.WriteString(m.styles.helpBar.Width(m.width).Render(help))

	return sb.String()
}

func (m *TreeModel) renderNode(node *TreeNode, selected bool) string {
	var sb strings.Builder
	sb.WriteString(m.styles.tree.Render(strings.Repeat("  ", node.Depth)))

	if node.Parent != nil {
		connector := "└─ "
		siblings := node.Parent.Children
		if len(siblings) > 0 && siblings[len(siblings)-1] != node {
			connector = "├─ "
		}
		sb.WriteString(m.styles.tree.Render(connector))
	}

	switch {
	case len(node.Children) == 0:
		sb.WriteString("  ")
	case node.Expanded:
		sb.WriteString(m.styles.dim.Render("▼ "))
	default:
		sb.WriteString(m.styles.dim.Render("▶ "))
	}

	rec := node.Record
	grade := m.grades.Grade(string(rec.Grade))
	name := rec.Object.Name()
	style := m.styles.member
	if rec.Object.Kind() == codeobject.KindNamespace {
		style = m.styles.namespace
	}
	content := fmt.Sprintf("[%s] %s", grade, style.Render(name))
	if selected {
		content = m.styles.selected.Render(content)
	}
	sb.WriteString(content)
	return sb.String()
}

func (m *TreeModel) renderDetailLine(node *TreeNode) string {
	rec := node.Record
	line := fmt.Sprintf("%s  %s  score %.0f (%.0f..%.0f)  priority %d  roles %d",
		rec.Path(), rec.Object.Kind(), rec.Score, rec.MinScore, rec.MaxScore, rec.Priority, len(rec.Roles))
	if rec.Object.Kind() == codeobject.KindNamespace {
		line += fmt.Sprintf("  height %d", rec.Height)
	}
	return line
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
