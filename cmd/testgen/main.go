package main

import (
	"os"

	"github.com/simonhull/firebird-suite/testgen/internal/commands"
	"github.com/simonhull/firebird-suite/testgen/internal/output"
)

func main() {
	if err := commands.NewApp().Execute(); err != nil {
		output.Error(err.Error())
		os.Exit(1)
	}
}
