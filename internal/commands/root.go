package commands

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/simonhull/firebird-suite/testgen"
	"github.com/simonhull/firebird-suite/testgen/internal/logging"
	"github.com/simonhull/firebird-suite/testgen/internal/output"
)

type loggerKey struct{}

// RootCmd creates and returns the root command for the testgen CLI
func RootCmd() *cobra.Command {
	var verbose bool
	var logger *zap.Logger

	cmd := &cobra.Command{
		Use:   "testgen",
		Short: "Generate the numeric regression tests for the AngouriMath suite",
		Long: `testgen writes C# xUnit test sources that are too repetitive to keep by hand:

• Polynomial root tests built from seeded random linear factors
• Trigonometric table tests checking f(2π/i) before and after simplification

Output is deterministic. Running testgen twice with the same configuration
produces byte-identical files.`,
		Version:       testgen.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			output.SetVerbose(verbose)

			l, err := logging.New(verbose)
			if err != nil {
				return err
			}
			logger = l
			cmd.SetContext(context.WithValue(cmd.Context(), loggerKey{}, logger))
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				// stderr sync fails on some terminals; nothing to recover
				_ = logger.Sync()
			}
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output for debugging")

	return cmd
}

// NewApp returns the root command with every subcommand registered.
func NewApp() *cobra.Command {
	root := RootCmd()
	root.AddCommand(GenerateCmd())
	root.AddCommand(InitCmd())
	root.AddCommand(VersionCmd())
	return root
}

func loggerFrom(ctx context.Context) *zap.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(loggerKey{}).(*zap.Logger); ok {
			return l
		}
	}
	return zap.NewNop()
}
