package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/simonhull/firebird-suite/testgen/internal/config"
	"github.com/simonhull/firebird-suite/testgen/internal/generator"
	"github.com/simonhull/firebird-suite/testgen/internal/output"
)

// InitCmd creates and returns the 'init' command, which writes the default
// configuration so it can be edited.
func InitCmd() *cobra.Command {
	var path string
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default testgen.yml",
		Long: `Writes testgen.yml with every setting at its default value.

An existing file is kept unless --force is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := config.Default().Marshal()
			if err != nil {
				return err
			}

			resolver, err := generator.NewResolver(generator.ModeSkip, cmd.OutOrStdout())
			if err != nil {
				return err
			}

			op := &generator.WriteFileOp{
				Path:     path,
				Content:  data,
				Mode:     0644,
				Resolver: resolver,
			}
			if err := generator.Execute(cmd.Context(), []generator.Operation{op}, generator.ExecuteOptions{
				Force:  force,
				Writer: cmd.OutOrStdout(),
				Logger: loggerFrom(cmd.Context()),
			}); err != nil {
				return err
			}

			switch op.Action() {
			case generator.ActionSkip:
				output.Warn(fmt.Sprintf("%s already exists; use --force to replace it", path))
			case generator.ActionUnchanged:
				output.Info(fmt.Sprintf("%s already holds the defaults", path))
			default:
				output.Success(fmt.Sprintf("Wrote %s", path))
				output.Info("Next steps:")
				output.Step("edit " + path)
				output.Step("testgen generate")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "config", config.FileName, "Path of the config file to write")
	cmd.Flags().BoolVar(&force, "force", false, "Replace an existing config file")

	return cmd
}
