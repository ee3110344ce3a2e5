package generator

import (
	"os"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func press(m tea.Model, keys ...string) (promptModel, tea.Cmd) {
	var cmd tea.Cmd
	for _, k := range keys {
		m, cmd = m.Update(key(k))
	}
	return m.(promptModel), cmd
}

func TestPromptModel_Defaults(t *testing.T) {
	m := newPromptModel("Core/TableTrigConstTest.cs", nil, 3, 1)

	assert.Nil(t, m.Init())
	assert.Equal(t, 0, m.cursor)
	assert.False(t, m.done)
	assert.Equal(t, ShowDiff, promptChoices[0].resolution)
}

func TestPromptModel_CursorWraps(t *testing.T) {
	m, _ := press(newPromptModel("a.cs", nil, 0, 0), "up")
	assert.Equal(t, len(promptChoices)-1, m.cursor)

	m, _ = press(m, "down")
	assert.Equal(t, 0, m.cursor)

	m, _ = press(m, "j", "j", "k")
	assert.Equal(t, 1, m.cursor)
}

func TestPromptModel_EnterPicksCursor(t *testing.T) {
	m, cmd := press(newPromptModel("a.cs", nil, 0, 0), "down", "enter")

	require.True(t, m.done)
	assert.Equal(t, Overwrite, m.choice)
	assert.NotNil(t, cmd, "selection ends the program")
}

func TestPromptModel_Hotkeys(t *testing.T) {
	tests := []struct {
		key  string
		want ConflictResolution
	}{
		{"d", ShowDiff},
		{"o", Overwrite},
		{"s", Skip},
		{"c", Cancel},
		{"q", Cancel},
		{"esc", Cancel},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			m, cmd := press(newPromptModel("a.cs", nil, 0, 0), tt.key)
			require.True(t, m.done)
			assert.Equal(t, tt.want, m.choice)
			assert.NotNil(t, cmd)
		})
	}
}

func TestPromptModel_IgnoresUnboundKeys(t *testing.T) {
	m, cmd := press(newPromptModel("a.cs", nil, 0, 0), "x")
	assert.False(t, m.done)
	assert.Nil(t, cmd)

	next, _ := newPromptModel("a.cs", nil, 0, 0).Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	assert.False(t, next.(promptModel).done)
}

func TestPromptModel_View(t *testing.T) {
	info := &mockFileInfo{size: 1234, modTime: time.Now().Add(-2 * time.Hour)}

	view := newPromptModel("Core/TableTrigConstTest.cs", info, 12, 3).View()

	assert.Contains(t, view, "Out of date")
	assert.Contains(t, view, "Core/TableTrigConstTest.cs")
	assert.Contains(t, view, "+12")
	assert.Contains(t, view, "-3")
	assert.Contains(t, view, "1.2 kB")
	assert.Contains(t, view, "2 hours ago")
	assert.Contains(t, view, "[o] Overwrite with the generated tests")
	assert.Contains(t, view, "› [d] Show diff")
}

func TestPagerModel(t *testing.T) {
	diff := ""
	for i := 0; i < 50; i++ {
		diff += "+line\n"
	}

	var m tea.Model = newPagerModel("a.cs", diff)
	assert.Nil(t, m.Init())

	m, _ = m.Update(tea.WindowSizeMsg{Width: 100, Height: 16})
	pager := m.(pagerModel)
	assert.Equal(t, 96, pager.view.Width)
	assert.Equal(t, 10, pager.view.Height)

	view := pager.View()
	assert.Contains(t, view, "a.cs")
	assert.Contains(t, view, "+line")
	assert.Contains(t, view, "lines 1-10 of")

	_, cmd := m.Update(key("q"))
	assert.NotNil(t, cmd)
}

type mockFileInfo struct {
	size    int64
	modTime time.Time
}

func (m *mockFileInfo) Name() string       { return "TableTrigConstTest.cs" }
func (m *mockFileInfo) Size() int64        { return m.size }
func (m *mockFileInfo) Mode() os.FileMode  { return 0644 }
func (m *mockFileInfo) ModTime() time.Time { return m.modTime }
func (m *mockFileInfo) IsDir() bool        { return false }
func (m *mockFileInfo) Sys() any           { return nil }
