package commands

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"gtp/internal/config"
	"gtp/internal/storage"
	"gtp/internal/ui"
	"gtp/runner"
)

// ListCommand handles the list command
type ListCommand struct {
	config  *config.Config
	entries []runner.Entry
	filter  *runner.Filter
	storage storage.Storage
}

// NewListCommand creates a new ListCommand
func NewListCommand(
	cfg *config.Config,
	entries []runner.Entry,
	filter *runner.Filter,
	st storage.Storage,
) *ListCommand {
	return &ListCommand{
		config:  cfg,
		entries: entries,
		filter:  filter,
		storage: st,
	}
}

// Execute runs the command
func (lc *ListCommand) Execute(cmd *cobra.Command, args []string) error {
	// Filter suites
	entries := lc.filter.FilterByName(lc.entries, lc.config.Flags.Suite)

	if len(entries) == 0 {
		color.Yellow("No suites found")
		return nil
	}

	formatter := ui.NewFormatter(lc.config, os.Stdout)
	return formatter.PrintSuiteList(entries, lc.config.Flags.TestCases, lc.failedSuites())
}

// failedSuites returns the names of suites that failed in the last saved run.
// Missing or unreadable reports just mean no markers.
func (lc *ListCommand) failedSuites() map[string]struct{} {
	report, err := lc.storage.Load()
	if err != nil {
		return nil
	}
	failed := make(map[string]struct{}, len(report.Details))
	for _, failure := range report.Details {
		failed[failure.Suite] = struct{}{}
	}
	return failed
}
