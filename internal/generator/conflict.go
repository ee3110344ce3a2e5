package generator

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// ConflictResolution represents what to do with an existing file whose
// content differs from the generated content.
type ConflictResolution int

const (
	Skip ConflictResolution = iota
	Overwrite
	ShowDiff
	Cancel
)

// ErrCancelled is returned when the user cancels an interactive resolution.
var ErrCancelled = errors.New("generation cancelled")

// Mode selects a conflict strategy.
type Mode string

const (
	ModeOverwrite   Mode = "overwrite"
	ModeSkip        Mode = "skip"
	ModeDiff        Mode = "diff"
	ModeInteractive Mode = "interactive"
)

// Modes lists the accepted conflict modes.
func Modes() []Mode {
	return []Mode{ModeOverwrite, ModeSkip, ModeDiff, ModeInteractive}
}

// ParseMode validates a mode name. The empty string selects ModeOverwrite.
func ParseMode(s string) (Mode, error) {
	if s == "" {
		return ModeOverwrite, nil
	}
	for _, m := range Modes() {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown conflict mode %q (supported: overwrite, skip, diff, interactive)", s)
}

// ConflictStrategy decides how to resolve a single conflict.
type ConflictStrategy interface {
	Resolve(path string, existing, newer []byte) (ConflictResolution, error)
}

// Resolver handles file conflict resolution.
type Resolver struct {
	strategy ConflictStrategy
	out      io.Writer
}

// NewResolver creates a resolver for mode. Diffs are written to out
// (stdout when nil).
func NewResolver(mode Mode, out io.Writer) (*Resolver, error) {
	if out == nil {
		out = os.Stdout
	}
	strategy, err := selectStrategy(mode, out)
	if err != nil {
		return nil, err
	}
	return &Resolver{strategy: strategy, out: out}, nil
}

// ResolveConflict determines what to do with a file that already exists.
// A ShowDiff answer prints the diff and asks again.
func (r *Resolver) ResolveConflict(path string, existing, newer []byte) (ConflictResolution, error) {
	for {
		res, err := r.strategy.Resolve(path, existing, newer)
		if err != nil {
			return Cancel, err
		}
		if res != ShowDiff {
			return res, nil
		}
		if err := showDiff(r.out, path, existing, newer); err != nil {
			return Cancel, err
		}
	}
}

func selectStrategy(mode Mode, out io.Writer) (ConflictStrategy, error) {
	switch mode {
	case ModeOverwrite, "":
		return &OverwriteStrategy{}, nil
	case ModeSkip:
		return &SkipStrategy{}, nil
	case ModeDiff:
		return &DiffStrategy{out: out}, nil
	case ModeInteractive:
		return &InteractiveStrategy{}, nil
	default:
		return nil, fmt.Errorf("unknown conflict mode %q", mode)
	}
}

// OverwriteStrategy always replaces the existing file.
type OverwriteStrategy struct{}

func (s *OverwriteStrategy) Resolve(path string, existing, newer []byte) (ConflictResolution, error) {
	return Overwrite, nil
}

// SkipStrategy always keeps the existing file.
type SkipStrategy struct{}

func (s *SkipStrategy) Resolve(path string, existing, newer []byte) (ConflictResolution, error) {
	return Skip, nil
}

// DiffStrategy prints the diff then overwrites. It never prompts, so it is
// safe in CI logs.
type DiffStrategy struct {
	out io.Writer
}

func (s *DiffStrategy) Resolve(path string, existing, newer []byte) (ConflictResolution, error) {
	diff, err := GenerateDiff(path, existing, newer, nil)
	if err != nil {
		return Cancel, err
	}
	fmt.Fprint(s.out, diff)
	return Overwrite, nil
}

// InteractiveStrategy asks on the terminal, one file at a time.
type InteractiveStrategy struct{}

func (s *InteractiveStrategy) Resolve(path string, existing, newer []byte) (ConflictResolution, error) {
	info, err := os.Stat(path)
	if err != nil && !os.IsNotExist(err) {
		return Cancel, fmt.Errorf("failed to stat file: %w", err)
	}
	diff, err := GenerateDiff(path, existing, newer, nil)
	if err != nil {
		return Cancel, err
	}
	added, removed := CountChanges(diff)

	final, err := tea.NewProgram(newPromptModel(path, info, added, removed)).Run()
	if err != nil {
		return Cancel, fmt.Errorf("failed to show menu: %w", err)
	}

	m := final.(promptModel)
	if !m.done || m.choice == Cancel {
		return Cancel, ErrCancelled
	}
	return m.choice, nil
}

// showDiff prints short diffs inline and pages long ones in a viewport.
func showDiff(out io.Writer, path string, existing, newer []byte) error {
	diff, err := GenerateDiff(path, existing, newer, &DiffOptions{Color: true})
	if err != nil {
		return err
	}

	if strings.Count(diff, "\n") <= 20 {
		fmt.Fprintln(out, diff)
		return nil
	}

	if _, err := tea.NewProgram(newPagerModel(path, diff), tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("failed to show diff: %w", err)
	}
	return nil
}
