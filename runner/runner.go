// Package runner executes registered test suites sequentially and collects
// their reports for storage and the failure viewer.
package runner

import (
	"bytes"
	"io"
	"time"

	"gtp/tester"
)

// Entry is one runnable suite: a display name and a factory producing a
// fresh suite instance for the run.
type Entry struct {
	Name string
	New  func() tester.TestSuite
}

// Result is the outcome of running a single suite.
type Result struct {
	Name     string
	ExitCode int
	// Output is the full interleaved report, Errors only the failure lines.
	Output   string
	Errors   string
	Cases    []tester.CaseResult
	Summary  tester.RunSummary
	Duration time.Duration
}

// Failed reports whether the suite run should fail the processor run.
func (r Result) Failed() bool { return r.ExitCode != 0 }

// Executor executes suites and returns results
type Executor interface {
	Execute(entries []Entry) ([]Result, time.Duration, error)
}

// SequentialExecutor runs suites one after another, in the order given.
// Harness arguments (--only, --skip) are forwarded to every suite; color is
// forced off because the reports are captured, not shown on a terminal.
type SequentialExecutor struct {
	args   []string
	onDone func(Result)
}

// NewSequentialExecutor creates a SequentialExecutor forwarding the given
// harness arguments to each suite.
func NewSequentialExecutor(args []string) *SequentialExecutor {
	return &SequentialExecutor{args: args}
}

// SetOnDone sets a callback invoked after each suite finishes.
func (e *SequentialExecutor) SetOnDone(fn func(Result)) {
	e.onDone = fn
}

// Execute runs all entries and collects per-suite results.
func (e *SequentialExecutor) Execute(entries []Entry) ([]Result, time.Duration, error) {
	if len(entries) == 0 {
		return nil, 0, nil
	}

	startTime := time.Now()
	results := make([]Result, 0, len(entries))
	for _, entry := range entries {
		results = append(results, e.runSuite(entry))
	}
	return results, time.Since(startTime), nil
}

func (e *SequentialExecutor) runSuite(entry Entry) Result {
	suite := entry.New()
	if suite.Name() == "" {
		suite.RegisterTest("", entry.Name)
	}

	args := append(append([]string{}, e.args...), "--color", "off")

	var combined, errs bytes.Buffer
	startTime := time.Now()
	code := suite.Exec(args, &combined, io.MultiWriter(&combined, &errs))

	result := Result{
		Name:     entry.Name,
		ExitCode: code,
		Output:   combined.String(),
		Errors:   errs.String(),
		Cases:    append([]tester.CaseResult{}, suite.Results()...),
		Summary:  suite.Summary(),
		Duration: time.Since(startTime),
	}
	if e.onDone != nil {
		e.onDone(result)
	}
	return result
}
