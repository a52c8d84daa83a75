package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"gtp/internal/cli"
	"gtp/internal/config"
	"gtp/internal/domain"
	"gtp/internal/storage"
	"gtp/internal/ui"
	"gtp/runner"
)

// RunCommand handles the run command
type RunCommand struct {
	config  *config.Config
	entries []runner.Entry
	filter  *runner.Filter
	storage storage.Storage
	history *storage.History
	viewer  ui.Viewer
}

// NewRunCommand creates a new RunCommand
func NewRunCommand(
	cfg *config.Config,
	entries []runner.Entry,
	filter *runner.Filter,
	st storage.Storage,
	history *storage.History,
	viewer ui.Viewer,
) *RunCommand {
	return &RunCommand{
		config:  cfg,
		entries: entries,
		filter:  filter,
		storage: st,
		history: history,
		viewer:  viewer,
	}
}

// Execute runs the command
func (rc *RunCommand) Execute(cmd *cobra.Command, args []string) error {
	// Filter suites
	entries := rc.filter.FilterByName(rc.entries, rc.config.Flags.Suite)

	if len(entries) == 0 {
		color.Yellow("No suites to execute")
		return nil
	}

	executor := runner.NewSequentialExecutor(rc.config.HarnessArgs())

	// Create and wire progress bar
	var bar *ui.ProgressBar
	if !rc.config.Flags.NoProgress {
		bar = ui.NewProgressBar(len(entries))
		var done, passed, failed int
		executor.SetOnDone(func(result runner.Result) {
			done++
			if result.Failed() {
				failed++
			} else {
				passed++
			}
			bar.Update(done, passed, failed)
		})
	}

	// Execute suites
	results, duration, err := executor.Execute(entries)
	if bar != nil {
		bar.Finish()
	}
	if err != nil {
		return err
	}

	if rc.config.Flags.Verbose {
		printSuiteReports(results)
	}

	failures := storage.CollectFailures(results)

	// Save results
	var report *domain.RunReport
	if rc.config.Flags.NoSave {
		report = storage.BuildReport(results, failures, duration)
	} else {
		report, err = rc.storage.Save(results, failures, duration)
		if err != nil {
			return cli.WrapExitError(cli.ExitCommandError, "failed to save test results", err)
		}
		if err := rc.history.Append(historyRecord(report.Meta)); err != nil {
			return cli.WrapExitError(cli.ExitCommandError, "failed to record run history", err)
		}
	}

	// Print stats
	formatter := ui.NewFormatter(rc.config, os.Stdout)
	formatter.PrintReportStats(report)

	code := runExitCode(results)
	if code == cli.ExitSuccess {
		return nil
	}

	if rc.config.Flags.OpenFails && len(report.Details) > 0 {
		if err := rc.viewer.View(report); err != nil {
			return err
		}
	}

	if code == cli.ExitCommandError {
		if msg := firstUsageError(results); msg != "" {
			return cli.NewExitError(cli.ExitCommandError, msg)
		}
		return cli.NewExitError(cli.ExitCommandError, "a suite rejected its arguments")
	}
	return cli.NewExitError(cli.ExitFailure, fmt.Sprintf("%d of %d suite(s) failed", report.Meta.FailedSuites, report.Meta.TotalSuites))
}

// printSuiteReports dumps every suite's captured report, separated by blank
// lines, for verbose mode.
func printSuiteReports(results []runner.Result) {
	for i, result := range results {
		if i > 0 {
			fmt.Println()
		}
		fmt.Print(result.Output)
	}
	fmt.Println()
}

// runExitCode is the highest suite exit code; argument errors win over
// check failures.
func runExitCode(results []runner.Result) int {
	code := cli.ExitSuccess
	for _, result := range results {
		if result.ExitCode > code {
			code = result.ExitCode
		}
	}
	return code
}

// firstUsageError returns the error output of the first suite that rejected
// its arguments or had nothing to run.
func firstUsageError(results []runner.Result) string {
	for _, result := range results {
		if result.ExitCode == cli.ExitCommandError && result.Errors != "" {
			return strings.TrimSpace(result.Errors)
		}
	}
	return ""
}

func historyRecord(meta domain.RunMeta) domain.HistoryRecord {
	return domain.HistoryRecord{
		Timestamp:       meta.Timestamp,
		TotalSuites:     meta.TotalSuites,
		FailedSuites:    meta.FailedSuites,
		Checks:          meta.Checks,
		Errors:          meta.Errors,
		DurationSeconds: meta.DurationSeconds,
	}
}
