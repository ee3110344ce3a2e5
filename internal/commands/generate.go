package commands

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/simonhull/firebird-suite/testgen/internal/config"
	"github.com/simonhull/firebird-suite/testgen/internal/generator"
	"github.com/simonhull/firebird-suite/testgen/internal/generators/polynomial"
	"github.com/simonhull/firebird-suite/testgen/internal/generators/shared"
	"github.com/simonhull/firebird-suite/testgen/internal/generators/trigtable"
	"github.com/simonhull/firebird-suite/testgen/internal/output"
)

// isTerminal is swapped in tests.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// GenerateCmd creates and returns the 'generate' command
func GenerateCmd() *cobra.Command {
	var configPath, conflict string
	var dryRun, check bool

	cmd := &cobra.Command{
		Use:   "generate [target...]",
		Short: "Generate test sources",
		Long: `Generate the C# test files configured in testgen.yml.

Available targets:
  polynomial - Root tests for products of random linear factors
  trig       - Trigonometric table tests
  all        - Every target

Without a target, the targets enabled in testgen.yml run. The polynomial
suite is disabled by default; pass it explicitly to regenerate it.

Existing files are overwritten. Use --conflict to skip them, print a diff
first, or decide per file. --check writes nothing and fails when a generated
file is out of date.

Examples:
  testgen generate
  testgen generate polynomial
  testgen generate all --dry-run
  testgen generate --check`,
		ValidArgs: append(shared.Targets(), shared.TargetAll),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := loggerFrom(cmd.Context())

			cfg, err := config.Load(".", configPath)
			if err != nil {
				return err
			}
			if cfg.File != "" {
				output.Verbose(fmt.Sprintf("Using config %s", cfg.File))
				log.Debug("config loaded", zap.String("file", cfg.File))
			}

			targets, err := selectTargets(cfg, args)
			if err != nil {
				return err
			}
			if len(targets) == 0 {
				output.Warn("No targets enabled; pass a target or enable one in testgen.yml")
				return nil
			}

			if !cmd.Flags().Changed("conflict") {
				conflict = cfg.Conflict
			}
			mode, err := generator.ParseMode(conflict)
			if err != nil {
				return err
			}
			if mode == generator.ModeInteractive && !check && !dryRun && !isTerminal() {
				return errors.New("interactive conflict mode requires a terminal")
			}

			resolver, err := generator.NewResolver(mode, cmd.OutOrStdout())
			if err != nil {
				return err
			}

			output.Verbose(fmt.Sprintf("Generating %s (dry-run=%v, check=%v, conflict=%s)",
				strings.Join(targets, ", "), dryRun, check, mode))

			ops, err := buildOperations(cfg, targets, resolver)
			if err != nil {
				return err
			}

			err = generator.Execute(cmd.Context(), ops, generator.ExecuteOptions{
				DryRun: dryRun,
				Check:  check,
				Writer: cmd.OutOrStdout(),
				Logger: log,
			})
			if errors.Is(err, generator.ErrStale) {
				output.Info("Run `testgen generate` and commit the result")
			}
			if err != nil {
				return err
			}

			switch {
			case check:
				output.Success("Generated tests are up to date")
			case dryRun:
				output.Info(fmt.Sprintf("Dry run: %d file(s) would be generated", len(ops)))
			default:
				output.Success(fmt.Sprintf("Generated %s", strings.Join(targets, " and ")))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Path to config file (default: ./testgen.yml)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Preview without writing files")
	cmd.Flags().BoolVar(&check, "check", false, "Fail if generated files are out of date; write nothing")
	cmd.Flags().StringVar(&conflict, "conflict", string(generator.ModeOverwrite),
		"What to do with existing files: "+joinModes())
	cmd.MarkFlagsMutuallyExclusive("dry-run", "check")

	return cmd
}

func joinModes() string {
	modes := generator.Modes()
	names := make([]string, len(modes))
	for i, m := range modes {
		names[i] = string(m)
	}
	return strings.Join(names, "|")
}

// selectTargets expands args into concrete targets in generation order.
// No args means every target enabled in cfg.
func selectTargets(cfg *config.Config, args []string) ([]string, error) {
	wanted := map[string]bool{}
	for _, arg := range args {
		if err := shared.ValidTarget(arg); err != nil {
			return nil, err
		}
		if arg == shared.TargetAll {
			for _, t := range shared.Targets() {
				wanted[t] = true
			}
			continue
		}
		wanted[arg] = true
	}

	var targets []string
	for _, t := range shared.Targets() {
		if wanted[t] || (len(args) == 0 && cfg.Enabled(t)) {
			targets = append(targets, t)
		}
	}
	return targets, nil
}

func buildOperations(cfg *config.Config, targets []string, resolver *generator.Resolver) ([]generator.Operation, error) {
	var ops []generator.Operation
	for _, target := range targets {
		var targetOps []generator.Operation
		var err error

		switch target {
		case shared.TargetPolynomial:
			gen := polynomial.NewGenerator(cfg.TemplatesDir())
			targetOps, err = gen.Operations(cfg.PolynomialPath(), cfg.Polynomial.Classes, cfg.Polynomial.Seed, resolver)
		case shared.TargetTrig:
			gen := trigtable.NewGenerator(cfg.TemplatesDir())
			targetOps, err = gen.Operations(cfg.TrigPath(), cfg.Trig.Tables, resolver)
		}
		if err != nil {
			return nil, err
		}
		ops = append(ops, targetOps...)
	}
	return ops, nil
}
