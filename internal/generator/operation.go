package generator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
)

// Operation represents a file system operation that can be validated and
// executed.
//
// Validate checks whether the operation would succeed without touching the
// target. force=true skips conflict resolution and always overwrites.
//
// Execute performs the operation. It should only be called after Validate
// succeeds.
//
// Description returns a human-readable line for output, e.g.
// "Create Core/TableTrigConstTest.cs (21 kB)".
type Operation interface {
	Validate(ctx context.Context, force bool) error
	Execute(ctx context.Context) error
	Description() string
}

// Action is what a WriteFileOp decided to do during validation.
type Action int

const (
	ActionCreate Action = iota
	ActionOverwrite
	ActionUnchanged
	ActionSkip
)

func (a Action) String() string {
	switch a {
	case ActionCreate:
		return "create"
	case ActionOverwrite:
		return "overwrite"
	case ActionUnchanged:
		return "unchanged"
	case ActionSkip:
		return "skip"
	default:
		return "unknown"
	}
}

// WriteFileOp writes generated content to a file, replacing it wholesale.
//
// Validation behavior:
//   - Rejects nil content (empty is OK)
//   - Compares against the existing file; identical content is left alone
//   - Differing content is resolved through Resolver (overwrite when nil)
//
// Execution behavior:
//   - Creates parent directories if needed
//   - Opens the file once, writes, and closes it, returning the first error
type WriteFileOp struct {
	Path     string      // File path to write
	Content  []byte      // File content (can be empty, must not be nil)
	Mode     fs.FileMode // File permissions (e.g., 0644)
	Resolver *Resolver   // Conflict resolution for existing files; nil overwrites

	action    Action
	validated bool
}

func (op *WriteFileOp) Validate(ctx context.Context, force bool) error {
	if op.Content == nil {
		return fmt.Errorf("content is nil for file: %s", op.Path)
	}

	existing, err := os.ReadFile(op.Path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		op.action = ActionCreate
	case err != nil:
		return fmt.Errorf("cannot read existing file %s: %w", op.Path, err)
	case bytes.Equal(existing, op.Content):
		op.action = ActionUnchanged
	case force || op.Resolver == nil:
		op.action = ActionOverwrite
	default:
		res, err := op.Resolver.ResolveConflict(op.Path, existing, op.Content)
		if err != nil {
			return fmt.Errorf("resolving %s: %w", op.Path, err)
		}
		switch res {
		case Skip:
			op.action = ActionSkip
		case Overwrite:
			op.action = ActionOverwrite
		default:
			return fmt.Errorf("resolving %s: %w", op.Path, ErrCancelled)
		}
	}

	op.validated = true
	return nil
}

func (op *WriteFileOp) Execute(ctx context.Context) error {
	if !op.validated {
		return fmt.Errorf("operation not validated: %s", op.Path)
	}
	if op.action == ActionUnchanged || op.action == ActionSkip {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Dir(op.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("cannot create directory %s: %w", dir, err)
	}
	return writeFile(op.Path, op.Content, op.Mode)
}

// Action returns the decision taken by the last Validate call.
func (op *WriteFileOp) Action() Action {
	return op.action
}

// Changed reports whether executing the op would modify the file on disk.
func (op *WriteFileOp) Changed() bool {
	return op.action == ActionCreate || op.action == ActionOverwrite
}

func (op *WriteFileOp) Description() string {
	size := humanize.Bytes(uint64(len(op.Content)))
	switch op.action {
	case ActionOverwrite:
		return fmt.Sprintf("Overwrite %s (%s)", op.Path, size)
	case ActionUnchanged:
		return fmt.Sprintf("Unchanged %s", op.Path)
	case ActionSkip:
		return fmt.Sprintf("Skip %s (kept existing)", op.Path)
	default:
		return fmt.Sprintf("Create %s (%s)", op.Path, size)
	}
}

// writeFile truncates path and writes content through a single handle.
func writeFile(path string, content []byte, mode fs.FileMode) (err error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", path, cerr)
		}
	}()

	if _, err := f.Write(content); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
