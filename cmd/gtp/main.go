package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"gtp/examples"
	"gtp/internal/cli"
	"gtp/internal/cli/commands"
	"gtp/internal/config"
)

var version = "dev"

func main() {
	// Create root command
	rootCmd := &cobra.Command{
		Use:           "gtp",
		Short:         "Go test suite processor",
		Long:          `A test suite processor built on the tester harness. Runs the registered suites sequentially, saves a JSON report plus a run history, and lets you browse failures interactively.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Create config from defaults and environment
	cfg := config.FromEnv()

	// Create flags struct (will be populated by command flags)
	var flags cli.Flags

	// Create commands with dependencies
	cmds := commands.NewCommands(cfg, examples.Entries())

	// Register all commands
	cmds.Register(rootCmd, &flags, cfg)

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(cli.GetExitCode(err))
	}
}
