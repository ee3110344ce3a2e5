package generator

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/pmezard/go-difflib/difflib"
	"golang.org/x/term"
)

// DiffOptions configures how diffs are generated and displayed.
// All fields are optional.
type DiffOptions struct {
	// ContextLines is the number of unchanged lines around each change.
	// Default: 3
	ContextLines int

	// Color styles the diff with lipgloss. Default: false
	Color bool

	// Width truncates long lines. 0 uses the terminal width, or no
	// truncation when stdout is not a terminal.
	Width int
}

// maxDiffLines bounds the inputs we are willing to diff.
const maxDiffLines = 10000

var (
	headerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	hunkStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan")).Bold(true)
	addedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("22"))
	removedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("52"))
)

// GenerateDiff returns a unified diff between old and newer, or "" when they
// are identical.
func GenerateDiff(path string, old, newer []byte, opts *DiffOptions) (string, error) {
	if opts == nil {
		opts = &DiffOptions{}
	}
	if opts.ContextLines == 0 {
		opts.ContextLines = 3
	}

	if bytes.Equal(old, newer) {
		return "", nil
	}
	if isBinary(old) || isBinary(newer) {
		return "Binary files differ\n", nil
	}

	a := splitLines(string(old))
	b := splitLines(string(newer))
	if len(a) > maxDiffLines || len(b) > maxDiffLines {
		return fmt.Sprintf("Files too large for diff (%d and %d lines)\n", len(a), len(b)), nil
	}

	text, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        a,
		B:        b,
		FromFile: path,
		ToFile:   path + " (generated)",
		Context:  opts.ContextLines,
	})
	if err != nil {
		return "", fmt.Errorf("failed to diff %s: %w", path, err)
	}

	if !opts.Color && opts.Width == 0 {
		return text, nil
	}
	return decorate(text, opts), nil
}

// decorate colours and truncates each line of a unified diff.
func decorate(text string, opts *DiffOptions) string {
	width := opts.Width
	if width == 0 {
		width = terminalWidth()
	}

	var buf strings.Builder
	inHunk := false
	for _, line := range strings.SplitAfter(text, "\n") {
		if line == "" {
			continue
		}
		content := strings.TrimSuffix(line, "\n")
		hunk := strings.HasPrefix(content, "@@")
		if hunk {
			inHunk = true
		}
		if width > 1 && utf8.RuneCountInString(content) > width {
			content = string([]rune(content)[:width-1]) + "…"
		}

		if opts.Color {
			switch {
			case !inHunk:
				content = headerStyle.Render(content)
			case hunk:
				content = hunkStyle.Render(content)
			case strings.HasPrefix(content, "+"):
				content = addedStyle.Render(content)
			case strings.HasPrefix(content, "-"):
				content = removedStyle.Render(content)
			}
		}
		buf.WriteString(content)
		buf.WriteString("\n")
	}
	return buf.String()
}

// CountChanges returns the number of added and removed lines in a unified
// diff produced by GenerateDiff without colour. Lines before the first hunk
// are file headers.
func CountChanges(diff string) (added, removed int) {
	inHunk := false
	for _, line := range strings.Split(diff, "\n") {
		switch {
		case strings.HasPrefix(line, "@@"):
			inHunk = true
		case !inHunk:
		case strings.HasPrefix(line, "+"):
			added++
		case strings.HasPrefix(line, "-"):
			removed++
		}
	}
	return added, removed
}

// splitLines splits s into lines that keep their "\n" terminator. Unlike
// difflib.SplitLines it adds no empty line after a trailing newline, and only
// a final unterminated line gains one.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.SplitAfter(s, "\n")
	last := len(lines) - 1
	if lines[last] == "" {
		return lines[:last]
	}
	lines[last] += "\n"
	return lines
}

// isBinary reports whether data looks binary (contains a NUL byte in the
// first 8KB).
func isBinary(data []byte) bool {
	n := len(data)
	if n > 8000 {
		n = 8000
	}
	return bytes.IndexByte(data[:n], 0) >= 0
}

// terminalWidth returns the stdout terminal width, or 0 when stdout is not a
// terminal.
func terminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return 0
	}
	width, _, err := term.GetSize(fd)
	if err != nil {
		return 0
	}
	return width
}
