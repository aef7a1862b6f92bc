package main

import (
	"fmt"
	"os"

	"github.com/pterm/pterm"

	"github.com/archmaint/archmaint/cmd/archmaint/commands"
	"github.com/archmaint/archmaint/cmd/archmaint/commands/cmdutil"
	"github.com/archmaint/archmaint/pkg/report"
)

func main() {
	rootCmd := commands.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		pterm.Error.Println(fmt.Sprintf("Error: %v", err))
		os.Exit(report.ExitFailure)
	}
	os.Exit(cmdutil.ExitCode())
}
