package generator

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

var (
	promptTitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("yellow")).Bold(true)
	pathStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("white")).Bold(true)
	cursorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan")).Bold(true)
	hintStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	statAddedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("green"))
	statRemovedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("red"))
	frameStyle       = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
)

type promptChoice struct {
	key        string
	label      string
	resolution ConflictResolution
}

// promptChoices is the menu shown for a stale generated file. The first
// entry is preselected.
var promptChoices = []promptChoice{
	{"d", "Show diff", ShowDiff},
	{"o", "Overwrite with the generated tests", Overwrite},
	{"s", "Keep the file on disk", Skip},
	{"c", "Cancel generation", Cancel},
}

// promptModel asks what to do with one file.
type promptModel struct {
	path           string
	info           os.FileInfo
	added, removed int

	cursor int
	done   bool
	choice ConflictResolution
}

func newPromptModel(path string, info os.FileInfo, added, removed int) promptModel {
	return promptModel{path: path, info: info, added: added, removed: removed}
}

func (m promptModel) Init() tea.Cmd {
	return nil
}

func (m promptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch k := key.String(); k {
	case "ctrl+c", "esc", "q":
		m.done, m.choice = true, Cancel
		return m, tea.Quit
	case "up", "k", "shift+tab":
		m.cursor = (m.cursor + len(promptChoices) - 1) % len(promptChoices)
	case "down", "j", "tab":
		m.cursor = (m.cursor + 1) % len(promptChoices)
	case "enter", " ":
		return m.pick(m.cursor)
	default:
		for i, c := range promptChoices {
			if c.key == k {
				return m.pick(i)
			}
		}
	}
	return m, nil
}

func (m promptModel) pick(i int) (tea.Model, tea.Cmd) {
	m.cursor = i
	m.done = true
	m.choice = promptChoices[i].resolution
	return m, tea.Quit
}

func (m promptModel) View() string {
	var b strings.Builder

	b.WriteString(promptTitleStyle.Render("⚠️  Out of date: ") + pathStyle.Render(m.path) + "\n")
	b.WriteString("    " + statAddedStyle.Render(fmt.Sprintf("+%d", m.added)) + " " +
		statRemovedStyle.Render(fmt.Sprintf("-%d", m.removed)) + hintStyle.Render(" lines") + "\n")
	if m.info != nil {
		b.WriteString(hintStyle.Render(fmt.Sprintf("    on disk: %s, changed %s",
			humanize.Bytes(uint64(m.info.Size())), humanize.Time(m.info.ModTime()))) + "\n")
	}
	b.WriteString("\n")

	for i, c := range promptChoices {
		line := fmt.Sprintf("[%s] %s", c.key, c.label)
		if i == m.cursor {
			b.WriteString("  " + cursorStyle.Render("› "+line) + "\n")
			continue
		}
		b.WriteString("    " + line + "\n")
	}

	b.WriteString("\n" + hintStyle.Render("    ↑/↓ move · enter select · q cancel") + "\n")
	return b.String()
}

// pagerModel scrolls through a diff too long to print inline.
type pagerModel struct {
	path string
	view viewport.Model
}

func newPagerModel(path, diff string) pagerModel {
	v := viewport.New(80, 20)
	v.SetContent(diff)
	return pagerModel{path: path, view: v}
}

func (m pagerModel) Init() tea.Cmd {
	return nil
}

func (m pagerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc", "q":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		// frame border plus title and status lines
		m.view.Width = max(msg.Width-4, 10)
		m.view.Height = max(msg.Height-6, 3)
	}

	var cmd tea.Cmd
	m.view, cmd = m.view.Update(msg)
	return m, cmd
}

func (m pagerModel) View() string {
	last := min(m.view.YOffset+m.view.Height, m.view.TotalLineCount())
	status := fmt.Sprintf("lines %d-%d of %d · q back", m.view.YOffset+1, last, m.view.TotalLineCount())

	return pathStyle.Render(m.path) + "\n" +
		frameStyle.Render(m.view.View()) + "\n" +
		hintStyle.Render(status)
}
