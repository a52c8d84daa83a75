// Package tester is a unit-test execution harness: suites embed a Tester,
// register bound check methods, and run them with Exec or Main. The harness
// runs cases strictly sequentially in registration order, supports per-group
// setup/teardown, expected-failure scoping, comparator-based checks,
// selective execution via --only/--skip and a stable, byte-exact report
// format suitable for CI log scraping.
package tester

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"strings"
)

// Outcome classifies one executed case.
type Outcome int

const (
	Ok Outcome = iota
	Failed
	Skipped
	Empty
)

func (o Outcome) String() string {
	switch o {
	case Ok:
		return "ok"
	case Failed:
		return "failed"
	case Skipped:
		return "skipped"
	case Empty:
		return "empty"
	}
	return "unknown"
}

// CaseResult is the structured outcome of one executed case, for programs
// embedding the harness. The printed report stays the authoritative,
// byte-stable surface.
type CaseResult struct {
	ID      int
	Name    string
	Outcome Outcome
	// Line is the source line of the decisive check, 0 when no check was
	// involved (skips before any check, empty cases).
	Line int
	// Detail carries the rendered diagnostic for failed cases and the skip
	// message for skipped ones.
	Detail string
}

// RunSummary aggregates one Exec call.
type RunSummary struct {
	Selected int
	Checks   int
	Errors   int
	Empty    int
}

// Configuration tweaks harness behavior for special embeddings.
type Configuration struct {
	// SkippedArgumentPrefixes lists flag prefixes Exec drops before parsing
	// (an argument --foo-bar with prefix "foo" is ignored together with its
	// detached value), so wrapper CLIs can share one argument vector with
	// the harness.
	SkippedArgumentPrefixes []string
}

// TestSuite is what Main and suite drivers accept; any struct embedding a
// *Tester satisfies it.
type TestSuite interface {
	Exec(args []string, logOutput, errorOutput io.Writer) int
	Results() []CaseResult
	Summary() RunSummary
	Name() string
	RegisterTest(filename, name string)
}

// testCase is one registry entry. setup/teardown are shared by the
// registration group and may be nil.
type testCase struct {
	fn       func()
	name     string
	setup    func()
	teardown func()
}

// Tester is the execution engine. It is not safe for concurrent use; a run
// is strictly single-threaded.
type Tester struct {
	conf  Configuration
	cases []testCase

	testFilename string
	testName     string

	logOutput   io.Writer
	errorOutput io.Writer
	pal         palette
	padWidth    int

	// per-run state
	selectedCount int
	checkCount    int
	errorCount    int
	noCheckCount  int
	results       []CaseResult

	// per-case state
	testCaseID      int
	testCaseLine    int
	caseDetail      string
	caseDetailLine  int
	expectedFailure *expectedFailure
}

// New creates a Tester with the default configuration.
func New() *Tester {
	return NewWithConfiguration(Configuration{})
}

// NewWithConfiguration creates a Tester with an explicit configuration.
func NewWithConfiguration(conf Configuration) *Tester {
	return &Tester{conf: conf}
}

// RegisterTest sets the display filename and suite name used in the report.
// Empty arguments keep the current values, so callers can override just one
// of them; when never called, the filename defaults to the source file that
// registered the first tests and the name is left for Main or the driver to
// fill in from the suite's type.
func (t *Tester) RegisterTest(filename, name string) {
	if filename != "" {
		t.testFilename = filename
	}
	if name != "" {
		t.testName = name
	}
}

// Name returns the registered suite name, if any.
func (t *Tester) Name() string { return t.testName }

// AddTests appends test cases to the registry, in order. Case ordinals are
// 1-based and assigned by registration order across all AddTests calls.
func (t *Tester) AddTests(tests ...func()) {
	t.addCases(nil, nil, tests)
}

// AddTestsWithSetup appends test cases that share a setup/teardown pair,
// run before/after every case of the group. Either may be nil.
func (t *Tester) AddTestsWithSetup(setup, teardown func(), tests ...func()) {
	t.addCases(setup, teardown, tests)
}

func (t *Tester) addCases(setup, teardown func(), tests []func()) {
	if len(tests) == 0 {
		panic(usageError("tester: registering zero test cases"))
	}
	if t.testFilename == "" {
		if _, file, _, ok := runtime.Caller(2); ok {
			t.testFilename = filepath.Base(file)
		}
	}
	for _, fn := range tests {
		if fn == nil {
			panic(usageError("tester: registering a nil test case"))
		}
		t.cases = append(t.cases, testCase{fn: fn, name: funcName(fn), setup: setup, teardown: teardown})
	}
}

// TestCaseID returns the 1-based ordinal of the running case; 0 outside a
// run. Setup and teardown see the ordinal of the case they wrap.
func (t *Tester) TestCaseID() int { return t.testCaseID }

// TestCaseName returns the registered name of the running case.
func (t *Tester) TestCaseName() string {
	if t.testCaseID == 0 {
		return ""
	}
	return t.cases[t.testCaseID-1].name
}

// TestNames returns the registered case names in registration order.
func (t *Tester) TestNames() []string {
	names := make([]string, len(t.cases))
	for i, tc := range t.cases {
		names[i] = tc.name
	}
	return names
}

// Results returns the per-case outcomes of the last Exec, in execution
// order.
func (t *Tester) Results() []CaseResult { return t.results }

// Summary returns the counters of the last Exec.
func (t *Tester) Summary() RunSummary {
	return RunSummary{
		Selected: t.selectedCount,
		Checks:   t.checkCount,
		Errors:   t.errorCount,
		Empty:    t.noCheckCount,
	}
}

// Exec parses args (--only, --skip, --color), runs the selected cases and
// returns the process exit code: 0 on success, 1 when at least one case
// failed, 2 when the registry is empty or the invocation was invalid.
// Passing, expected-failure, empty-case and summary lines go to logOutput;
// failures and unexpected passes go to errorOutput.
func (t *Tester) Exec(args []string, logOutput, errorOutput io.Writer) int {
	sel, code, stop := t.parseArgs(args, errorOutput)
	if stop {
		return code
	}

	t.logOutput = logOutput
	t.errorOutput = errorOutput
	enabled := sel.colorMode == "on" || (sel.colorMode == "auto" && writerIsTerminal(logOutput))
	t.pal = newPalette(enabled)

	if len(t.cases) == 0 {
		t.printNoTests()
		return 2
	}

	selected := sel.apply(len(t.cases))
	t.padWidth = padWidthFor(selected)
	t.selectedCount = len(selected)
	t.checkCount = 0
	t.errorCount = 0
	t.noCheckCount = 0
	t.results = t.results[:0]

	t.printStarting(len(selected))
	for _, id := range selected {
		t.runCase(id)
	}
	t.printFinished()

	if t.errorCount > 0 {
		return 1
	}
	return 0
}

// signal is what runIsolated recovered at a phase boundary.
type signal int

const (
	sigNone signal = iota
	sigFail
	sigSkip
)

type failSignal struct{}
type skipSignal struct{}

// usageError marks a defect in how the harness is used (nested scopes,
// empty registrations, impossible conversions). It is re-raised through the
// case isolation so misuse fails loudly instead of becoming a test result.
type usageError string

func (e usageError) Error() string { return string(e) }

// runCase drives one case through setup, body and teardown. Teardown runs
// whenever setup ran or was absent, regardless of the case outcome, and the
// OK or no-checks line is only emitted after it. Failure and skip lines
// were already printed at the signal site.
func (t *Tester) runCase(id int) {
	tc := t.cases[id-1]
	t.testCaseID = id
	t.testCaseLine = 0
	t.caseDetail = ""
	t.caseDetailLine = 0
	checksBefore := t.checkCount

	outcome := Ok
	if tc.setup != nil {
		if sig := t.runIsolated(tc.setup); sig != sigNone {
			outcome = outcomeFor(sig)
		}
	}
	if outcome == Ok {
		if sig := t.runIsolated(tc.fn); sig != sigNone {
			outcome = outcomeFor(sig)
		}
	}
	if tc.teardown != nil {
		switch t.runIsolated(tc.teardown) {
		case sigFail:
			outcome = Failed
		case sigSkip:
			if outcome == Ok {
				outcome = Skipped
			}
		}
	}

	if outcome == Ok && t.checkCount == checksBefore {
		outcome = Empty
	}

	switch outcome {
	case Ok:
		t.printOK()
	case Empty:
		t.noCheckCount++
		t.printNoChecks()
	case Failed:
		t.errorCount++
	}

	name := tc.name
	if outcome == Empty {
		name = "<unknown>"
	}
	t.results = append(t.results, CaseResult{
		ID:      id,
		Name:    name,
		Outcome: outcome,
		Line:    t.caseDetailLine,
		Detail:  t.caseDetail,
	})
	t.testCaseID = 0
}

func outcomeFor(sig signal) Outcome {
	if sig == sigSkip {
		return Skipped
	}
	return Failed
}

// runIsolated runs one phase of a case and converts harness signals into
// the phase result. A panic that is not a harness signal is reported as a
// case failure; usage defects keep unwinding.
func (t *Tester) runIsolated(fn func()) (sig signal) {
	defer func() {
		switch r := recover().(type) {
		case nil:
		case failSignal:
			sig = sigFail
		case skipSignal:
			sig = sigSkip
		case usageError:
			panic(r)
		default:
			t.printCheckFailed(fmt.Sprintf("Test case panicked: %v", r))
			sig = sigFail
		}
	}()
	fn()
	return sigNone
}

// funcName derives the display name of a registered case from the method
// value backing it: the last identifier segment, without the -fm suffix the
// runtime appends to method values.
func funcName(fn func()) string {
	name := runtime.FuncForPC(reflect.ValueOf(fn).Pointer()).Name()
	name = strings.TrimSuffix(name, "-fm")
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	return name
}

// Main runs a suite with the process arguments and standard streams and
// exits with the harness exit code. Suites that never called RegisterTest
// get their concrete type name as the suite name.
func Main(suite TestSuite) {
	if suite.Name() == "" {
		suite.RegisterTest("", suiteTypeName(suite))
	}
	os.Exit(suite.Exec(os.Args[1:], os.Stdout, os.Stderr))
}

func suiteTypeName(suite any) string {
	rt := reflect.TypeOf(suite)
	for rt.Kind() == reflect.Pointer {
		rt = rt.Elem()
	}
	return rt.Name()
}
