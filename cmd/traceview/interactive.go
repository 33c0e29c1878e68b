package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/howsoai/amalgam-go/trace"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	commandStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	noteStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#C0C0C0"))

	timeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0E68C"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type viewerModel struct {
	filename     string
	entries      []trace.Entry
	visible      []trace.Entry
	filter       textinput.Model
	selected     int
	offset       int
	height       int
	commandsOnly bool
	filtering    bool
}

func newViewerModel(filename string, entries []trace.Entry) *viewerModel {
	ti := textinput.New()
	ti.Placeholder = "filter"
	ti.Prompt = "/ "
	ti.Width = 40

	m := &viewerModel{
		filename: filename,
		entries:  entries,
		filter:   ti,
		height:   24,
	}
	m.refilter()
	return m
}

func (m *viewerModel) Init() tea.Cmd {
	return nil
}

func (m *viewerModel) refilter() {
	needle := strings.ToLower(m.filter.Value())
	m.visible = m.visible[:0]
	for _, e := range m.entries {
		if m.commandsOnly && e.Kind != trace.KindCommand {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(e.Text), needle) &&
			!strings.Contains(strings.ToLower(e.Label), needle) {
			continue
		}
		m.visible = append(m.visible, e)
	}
	if m.selected >= len(m.visible) {
		m.selected = len(m.visible) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
	m.clamp()
}

// clamp keeps the selection inside the visible window.
func (m *viewerModel) clamp() {
	rows := m.listHeight()
	if m.selected < m.offset {
		m.offset = m.selected
	}
	if m.selected >= m.offset+rows {
		m.offset = m.selected - rows + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

func (m *viewerModel) listHeight() int {
	// title + blank + help + filter lines
	h := m.height - 4
	if h < 1 {
		h = 1
	}
	return h
}

func (m *viewerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height
		m.clamp()

	case tea.KeyMsg:
		if m.filtering {
			switch msg.String() {
			case "enter", "esc":
				m.filtering = false
				m.filter.Blur()
				if msg.String() == "esc" {
					m.filter.SetValue("")
					m.refilter()
				}
				return m, nil
			default:
				var cmd tea.Cmd
				m.filter, cmd = m.filter.Update(msg)
				m.refilter()
				return m, cmd
			}
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "up", "k":
			if m.selected > 0 {
				m.selected--
				m.clamp()
			}

		case "down", "j":
			if m.selected < len(m.visible)-1 {
				m.selected++
				m.clamp()
			}

		case "g":
			m.selected = 0
			m.clamp()

		case "G":
			if len(m.visible) > 0 {
				m.selected = len(m.visible) - 1
				m.clamp()
			}

		case "c":
			m.commandsOnly = !m.commandsOnly
			m.refilter()

		case "/":
			m.filtering = true
			m.filter.Focus()
			return m, textinput.Blink
		}
	}

	return m, nil
}

func (m *viewerModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Trace Viewer"))
	b.WriteString(" ")
	b.WriteString(m.filename)
	mode := ""
	if m.commandsOnly {
		mode = " [commands]"
	}
	b.WriteString(fmt.Sprintf("  %d/%d%s\n", len(m.visible), len(m.entries), mode))

	rows := m.listHeight()
	end := m.offset + rows
	if end > len(m.visible) {
		end = len(m.visible)
	}
	for i := m.offset; i < end; i++ {
		line := renderEntry(m.visible[i])
		if i == m.selected {
			line = selectedStyle.Render(truncate(m.visible[i].Text, 120))
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	for i := end - m.offset; i < rows; i++ {
		b.WriteString("\n")
	}

	if m.filtering {
		b.WriteString(m.filter.View())
	} else if m.filter.Value() != "" {
		b.WriteString(noteStyle.Render("filter: " + m.filter.Value()))
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("↑/↓ move • g/G top/bottom • c commands only • / filter • q quit"))

	return b.String()
}

func renderEntry(e trace.Entry) string {
	switch e.Kind {
	case trace.KindResult:
		return resultStyle.Render("  result:" + truncate(e.Text, 110))
	case trace.KindNote:
		return noteStyle.Render("  note:" + truncate(e.Text, 110))
	case trace.KindTime:
		return timeStyle.Render("  time: " + e.Label + " " + e.Text)
	default:
		return commandStyle.Render(truncate(e.Text, 120))
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}

func runInteractive(filename string, entries []trace.Entry) error {
	p := tea.NewProgram(newViewerModel(filename, entries), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
