package generator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/simonhull/firebird-suite/testgen/internal/logging"
)

// ErrStale is returned in check mode when generated content differs from the
// files on disk.
var ErrStale = errors.New("generated files are out of date")

// ExecuteOptions configures execution behavior.
type ExecuteOptions struct {
	DryRun bool
	Force  bool
	Check  bool        // Report stale files instead of writing; implies no prompts
	Writer io.Writer   // Where to write output (defaults to os.Stdout)
	Logger *zap.Logger // Diagnostic log (defaults to a no-op logger)
}

// changer is implemented by operations that can tell whether they would
// modify the filesystem.
type changer interface {
	Changed() bool
}

// Execute validates every operation, then runs them in order.
// The first execution failure aborts the run. Nothing is retried and files
// written before the failure are left in place.
func Execute(ctx context.Context, ops []Operation, opts ExecuteOptions) error {
	if opts.Writer == nil {
		opts.Writer = os.Stdout
	}
	log := logging.OrNop(opts.Logger)

	force := opts.Force || opts.Check

	// Phase 1: validate all operations
	for _, op := range ops {
		if err := op.Validate(ctx, force); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
	}

	if opts.Check {
		return check(ops, opts.Writer, log)
	}

	// Phase 2: execute or report
	for _, op := range ops {
		desc := op.Description()
		if opts.DryRun {
			fmt.Fprintf(opts.Writer, "✓ [DRY RUN] %s\n", desc)
			log.Debug("dry run", zap.String("op", desc))
			continue
		}

		if err := op.Execute(ctx); err != nil {
			log.Error("operation failed", zap.String("op", desc), zap.Error(err))
			return fmt.Errorf("execution failed: %w", err)
		}
		fmt.Fprintf(opts.Writer, "✓ %s\n", desc)
		log.Debug("executed", zap.String("op", desc))
	}

	return nil
}

func check(ops []Operation, w io.Writer, log *zap.Logger) error {
	var stale []string
	for _, op := range ops {
		c, ok := op.(changer)
		if !ok || !c.Changed() {
			fmt.Fprintf(w, "✓ [CHECK] %s\n", op.Description())
			continue
		}
		fmt.Fprintf(w, "✗ [CHECK] %s\n", op.Description())
		stale = append(stale, opPath(op))
	}

	if len(stale) > 0 {
		log.Warn("stale generated files", zap.Strings("paths", stale))
		return fmt.Errorf("%w: %s", ErrStale, strings.Join(stale, ", "))
	}
	return nil
}

func opPath(op Operation) string {
	if w, ok := op.(*WriteFileOp); ok {
		return w.Path
	}
	return op.Description()
}
