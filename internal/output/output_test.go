package output

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

// capture redirects output into a buffer for the duration of f.
func capture(t *testing.T, f func()) string {
	t.Helper()
	var buf bytes.Buffer
	prev := SetWriter(&buf)
	defer SetWriter(prev)

	f()
	return buf.String()
}

func TestSuccess(t *testing.T) {
	got := capture(t, func() { Success("Generated 2 files") })

	if !strings.Contains(got, "🔥") {
		t.Error("Success output should contain fire emoji")
	}
	if !strings.Contains(got, "Generated 2 files") {
		t.Error("Success output should contain the message")
	}
}

func TestError(t *testing.T) {
	got := capture(t, func() { Error("write failed") })

	if !strings.Contains(got, "❌") {
		t.Error("Error output should contain X emoji")
	}
	if !strings.Contains(got, "write failed") {
		t.Error("Error output should contain the message")
	}
}

func TestWarnInfoStep(t *testing.T) {
	got := capture(t, func() {
		Warn("stale")
		Info("next")
		Step("Core/TableTrigConstTest.cs")
	})

	for _, want := range []string{"stale", "next", "   Core/TableTrigConstTest.cs"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q, got: %s", want, got)
		}
	}
}

func TestVerbose(t *testing.T) {
	defer SetVerbose(false)

	SetVerbose(false)
	if got := capture(t, func() { Verbose("hidden") }); got != "" {
		t.Errorf("verbose output should be empty when disabled, got %q", got)
	}

	SetVerbose(true)
	got := capture(t, func() { Verbose("shown") })
	if !strings.Contains(got, "🔍") || !strings.Contains(got, "shown") {
		t.Errorf("verbose output missing when enabled, got %q", got)
	}
}

func TestSetWriter_NilRestoresStdout(t *testing.T) {
	var buf bytes.Buffer
	prev := SetWriter(&buf)
	defer SetWriter(prev)

	SetWriter(nil)
	if got := SetWriter(&buf); got != os.Stdout {
		t.Errorf("nil writer should restore stdout, got %v", got)
	}
}
