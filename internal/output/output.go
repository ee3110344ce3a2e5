// Package output prints styled status lines for the testgen CLI.
//
// Functions use lipgloss for styling but keep the details away from callers.
// Output goes to stdout unless redirected with SetWriter.
package output

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("green")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("red")).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("yellow"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan"))
	stepStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	mu          sync.Mutex
	out         io.Writer = os.Stdout
	verboseMode bool
)

// SetVerbose enables or disables verbose output.
// The CLI calls this when the --verbose flag is set.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verboseMode = v
}

// SetWriter redirects all output. A nil writer restores stdout.
// It returns the previous writer so tests can restore it.
func SetWriter(w io.Writer) io.Writer {
	mu.Lock()
	defer mu.Unlock()
	prev := out
	if w == nil {
		w = os.Stdout
	}
	out = w
	return prev
}

func emit(style lipgloss.Style, msg string) {
	mu.Lock()
	defer mu.Unlock()
	fmt.Fprintln(out, style.Render(msg))
}

// Success prints a completed operation in green.
//
// Example:
//
//	output.Success("Generated 2 files")
func Success(msg string) {
	emit(successStyle, "🔥 "+msg)
}

// Error prints a failure that needs user attention in red.
func Error(msg string) {
	emit(errorStyle, "❌ "+msg)
}

// Warn prints a non-fatal problem in yellow.
func Warn(msg string) {
	emit(warnStyle, "⚠️  "+msg)
}

// Info prints a status update in cyan.
func Info(msg string) {
	emit(infoStyle, "ℹ️  "+msg)
}

// Step prints an indented sub-item in gray.
//
// Example:
//
//	output.Step("Core/TableTrigConstTest.cs")
func Step(msg string) {
	emit(stepStyle, "   "+msg)
}

// Verbose prints a debug line only when verbose mode is enabled.
func Verbose(msg string) {
	mu.Lock()
	enabled := verboseMode
	mu.Unlock()
	if enabled {
		emit(stepStyle, "🔍 "+msg)
	}
}
