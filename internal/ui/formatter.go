package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"gtp/internal/config"
	"gtp/internal/domain"
	"gtp/runner"
)

// Formatter formats and displays output
type Formatter struct {
	config  *config.Config
	out     io.Writer
	colored bool

	cyan   *color.Color
	green  *color.Color
	red    *color.Color
	yellow *color.Color
	white  *color.Color
}

// NewFormatter creates a new Formatter writing to out. Colors follow the
// configured color mode; auto enables them only when out is a terminal.
func NewFormatter(cfg *config.Config, out io.Writer) *Formatter {
	f := &Formatter{
		config: cfg,
		out:    out,
		cyan:   color.New(color.FgCyan),
		green:  color.New(color.FgGreen),
		red:    color.New(color.FgRed),
		yellow: color.New(color.FgYellow),
		white:  color.New(color.FgWhite),
	}
	f.colored = colorEnabled(cfg.Color, out)
	for _, c := range []*color.Color{f.cyan, f.green, f.red, f.yellow, f.white} {
		if f.colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return f
}

// PrintMetaStats reads the saved report and displays its meta statistics
func (f *Formatter) PrintMetaStats() error {
	reportPath := f.config.GetReportPath()

	data, err := os.ReadFile(reportPath)
	if err != nil {
		return fmt.Errorf("read report file: %w", err)
	}

	var report domain.RunReport
	if err := json.Unmarshal(data, &report); err != nil {
		return fmt.Errorf("parse report: %w", err)
	}

	f.PrintReportStats(&report)
	return nil
}

// PrintReportStats displays the meta statistics of an already loaded report
func (f *Formatter) PrintReportStats(report *domain.RunReport) {
	meta := report.Meta

	if f.colored {
		// Clear terminal screen
		fmt.Fprint(f.out, "\033[2J\033[H")
	}

	// Print header
	fmt.Fprint(f.out, "\n")
	f.cyan.Fprintln(f.out, "╔═══════════════════════════════════════════════════════════════╗")
	f.cyan.Fprintln(f.out, "║                   Suite Execution Statistics                  ║")
	f.cyan.Fprintln(f.out, "╚═══════════════════════════════════════════════════════════════╝")
	fmt.Fprint(f.out, "\n")

	// Print table
	fmt.Fprintln(f.out, "┌─────────────────────────────────┬─────────────────────────────┐")
	f.statRow("Total Suites", f.white, fmt.Sprintf("%d", meta.TotalSuites))
	f.statSeparator()
	f.statRow("Passed Suites", f.green, fmt.Sprintf("%d", meta.PassedSuites))
	f.statSeparator()
	f.statRow("Failed Suites", f.red, fmt.Sprintf("%d", meta.FailedSuites))
	f.statSeparator()
	f.statRow("Total Test Cases", f.white, fmt.Sprintf("%d", meta.TotalCases))
	f.statSeparator()
	f.statRow("Failed Test Cases", f.red, fmt.Sprintf("%d", meta.FailedCases))
	f.statSeparator()
	f.statRow("Skipped Test Cases", f.yellow, fmt.Sprintf("%d", meta.SkippedCases))
	f.statSeparator()
	f.statRow("Empty Test Cases", f.yellow, fmt.Sprintf("%d", meta.EmptyCases))
	f.statSeparator()
	f.statRow("Checks", f.white, fmt.Sprintf("%d", meta.Checks))
	f.statSeparator()
	f.statRow("Check Errors", f.red, fmt.Sprintf("%d", meta.Errors))
	f.statSeparator()
	f.statRow("Duration", f.white, fmt.Sprintf("%.2fs", meta.DurationSeconds))
	f.statSeparator()
	f.statRow("Timestamp", f.white, meta.Timestamp)
	fmt.Fprintln(f.out, "└─────────────────────────────────┴─────────────────────────────┘")

	// Print summary line
	fmt.Fprint(f.out, "\n")
	if meta.FailedSuites == 0 {
		f.green.Fprintln(f.out, "✓ All suites passed!")
	} else {
		f.red.Fprintf(f.out, "✗ %d suite(s) failed with %d failing test case(s)\n", meta.FailedSuites, meta.FailedCases)
		fmt.Fprint(f.out, "\n")
		f.printFailedSuitesTree(report.Details)
	}
}

func (f *Formatter) statRow(label string, c *color.Color, value string) {
	fmt.Fprintf(f.out, "│ %-31s │ ", label)
	c.Fprintf(f.out, "%-27s │\n", value)
}

func (f *Formatter) statSeparator() {
	fmt.Fprintln(f.out, "├─────────────────────────────────┼─────────────────────────────┤")
}

// printFailedSuitesTree prints failing test cases grouped by suite, in run order
func (f *Formatter) printFailedSuitesTree(failures []domain.CaseFailure) {
	if len(failures) == 0 {
		return
	}

	grouped := make(map[string][]domain.CaseFailure)
	var order []string
	for _, failure := range failures {
		if _, seen := grouped[failure.Suite]; !seen {
			order = append(order, failure.Suite)
		}
		grouped[failure.Suite] = append(grouped[failure.Suite], failure)
	}

	for _, suite := range order {
		f.yellow.Fprintf(f.out, "  %s\n", suite)
		for _, failure := range grouped[suite] {
			if failure.Line > 0 {
				f.red.Fprintf(f.out, "   |_%s() on line %d\n", failure.CaseName, failure.Line)
			} else {
				f.red.Fprintf(f.out, "   |_%s()\n", failure.CaseName)
			}
		}
	}
}

// PrintSuiteList prints the registered suites, optionally with their test cases.
// failedSuites is optional; if set, suites in this set are marked with [F] in
// red (from the last saved run).
func (f *Formatter) PrintSuiteList(entries []runner.Entry, showTestCases bool, failedSuites map[string]struct{}) error {
	if !showTestCases {
		f.green.Fprintf(f.out, "Found %d registered suite(s):\n", len(entries))
		for i, entry := range entries {
			f.cyan.Fprintf(f.out, "%s %s%s\n", listConnector(i == len(entries)-1), f.entryName(entry), f.failMarker(entry, failedSuites))
		}
		return nil
	}

	f.green.Fprintf(f.out, "Found %d registered suite(s) with %d test case(s):\n", len(entries), f.CountTestCases(entries))

	for i, entry := range entries {
		isLastSuite := i == len(entries)-1
		f.cyan.Fprintf(f.out, "%s %s%s\n", listConnector(isLastSuite), f.entryName(entry), f.failMarker(entry, failedSuites))

		names := suiteCaseNames(entry)
		if len(names) == 0 {
			fmt.Fprintf(f.out, "%s%s\n", casePrefix(isLastSuite, true), f.red.Sprint("(no test cases registered)"))
		} else {
			for j, name := range names {
				fmt.Fprintf(f.out, "%s%s\n", casePrefix(isLastSuite, j == len(names)-1), f.yellow.Sprintf("%s()", name))
			}
		}

		if !isLastSuite {
			fmt.Fprintln(f.out)
		}
	}

	return nil
}

// PrintHistory prints recorded runs as a table, newest first
func (f *Formatter) PrintHistory(records []domain.HistoryRecord) error {
	if len(records) == 0 {
		f.yellow.Fprintln(f.out, "No recorded runs yet.")
		return nil
	}

	f.green.Fprintf(f.out, "Showing %d recorded run(s):\n\n", len(records))

	w := tabwriter.NewWriter(f.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIMESTAMP\tSUITES\tFAILED\tCHECKS\tERRORS\tDURATION")
	for _, record := range records {
		fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%d\t%d\t%.2fs\n",
			record.ID, record.Timestamp, record.TotalSuites, record.FailedSuites,
			record.Checks, record.Errors, record.DurationSeconds)
	}
	return w.Flush()
}

// CountTestCases returns the total number of registered test cases across entries
func (f *Formatter) CountTestCases(entries []runner.Entry) int {
	var total int
	for _, entry := range entries {
		total += len(suiteCaseNames(entry))
	}
	return total
}

func (f *Formatter) entryName(entry runner.Entry) string {
	if entry.Name != "" {
		return entry.Name
	}
	if name := entry.New().Name(); name != "" {
		return name
	}
	return "(unnamed suite)"
}

func (f *Formatter) failMarker(entry runner.Entry, failedSuites map[string]struct{}) string {
	if len(failedSuites) == 0 {
		return ""
	}
	if _, ok := failedSuites[f.entryName(entry)]; !ok {
		return ""
	}
	return " " + f.red.Sprint("[F]")
}

// suiteCaseNames instantiates the suite and lists its registered case names
func suiteCaseNames(entry runner.Entry) []string {
	namer, ok := entry.New().(interface{ TestNames() []string })
	if !ok {
		return nil
	}
	return namer.TestNames()
}

func listConnector(last bool) string {
	if last {
		return "└──"
	}
	return "├──"
}

func casePrefix(lastSuite, lastCase bool) string {
	switch {
	case lastSuite && lastCase:
		return "    └── "
	case lastSuite:
		return "    ├── "
	case lastCase:
		return "│   └── "
	default:
		return "│   ├── "
	}
}

func colorEnabled(mode string, out io.Writer) bool {
	switch mode {
	case "on":
		return true
	case "off":
		return false
	}
	file, ok := out.(*os.File)
	return ok && isatty.IsTerminal(file.Fd())
}
