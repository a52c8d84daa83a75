package runner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gtp/tester"
)

type passingSuite struct {
	*tester.Tester
}

func (s *passingSuite) one() { s.Verify("true", true) }
func (s *passingSuite) two() { s.Compare("a", 2, "b", 2) }

type failingSuite struct {
	*tester.Tester
}

func (s *failingSuite) good() { s.Verify("true", true) }
func (s *failingSuite) bad()  { s.Verify("false", false) }

func passingEntry() Entry {
	return Entry{Name: "PassingSuite", New: func() tester.TestSuite {
		s := &passingSuite{Tester: tester.New()}
		s.RegisterTest("runner_test.go", "PassingSuite")
		s.AddTests(s.one, s.two)
		return s
	}}
}

func failingEntry() Entry {
	return Entry{Name: "FailingSuite", New: func() tester.TestSuite {
		s := &failingSuite{Tester: tester.New()}
		s.RegisterTest("runner_test.go", "FailingSuite")
		s.AddTests(s.good, s.bad)
		return s
	}}
}

func TestSequentialExecutorRunsSuitesInOrder(t *testing.T) {
	executor := NewSequentialExecutor(nil)

	results, duration, err := executor.Execute([]Entry{passingEntry(), failingEntry()})

	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.GreaterOrEqual(t, duration, results[0].Duration)

	assert.Equal(t, "PassingSuite", results[0].Name)
	assert.Equal(t, 0, results[0].ExitCode)
	assert.False(t, results[0].Failed())
	assert.Contains(t, results[0].Output, "Starting PassingSuite with 2 test cases...")
	assert.Contains(t, results[0].Output, "Finished PassingSuite with 0 errors out of 2 checks.")
	assert.Empty(t, results[0].Errors)
	assert.Equal(t, tester.RunSummary{Selected: 2, Checks: 2, Errors: 0, Empty: 0}, results[0].Summary)

	assert.Equal(t, "FailingSuite", results[1].Name)
	assert.Equal(t, 1, results[1].ExitCode)
	assert.True(t, results[1].Failed())
	assert.Contains(t, results[1].Errors, "  FAIL [2] bad()")
	assert.Contains(t, results[1].Output, "  FAIL [2] bad()")
	require.Len(t, results[1].Cases, 2)
	assert.Equal(t, tester.Failed, results[1].Cases[1].Outcome)
}

func TestSequentialExecutorForwardsSelection(t *testing.T) {
	executor := NewSequentialExecutor([]string{"--only", "1"})

	results, _, err := executor.Execute([]Entry{failingEntry()})

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 0, results[0].ExitCode)
	assert.Equal(t, 1, results[0].Summary.Selected)
}

func TestSequentialExecutorReportsProgress(t *testing.T) {
	executor := NewSequentialExecutor(nil)
	var seen []string
	executor.SetOnDone(func(r Result) { seen = append(seen, r.Name) })

	_, _, err := executor.Execute([]Entry{passingEntry(), failingEntry()})

	require.NoError(t, err)
	assert.Equal(t, []string{"PassingSuite", "FailingSuite"}, seen)
}

func TestSequentialExecutorNamesUnnamedSuites(t *testing.T) {
	entry := Entry{Name: "AdHoc", New: func() tester.TestSuite {
		s := &passingSuite{Tester: tester.New()}
		s.AddTests(s.one)
		return s
	}}
	executor := NewSequentialExecutor(nil)

	results, _, err := executor.Execute([]Entry{entry})

	require.NoError(t, err)
	assert.Contains(t, results[0].Output, "Starting AdHoc with 1 test cases...")
}

func TestSequentialExecutorEmptyEntries(t *testing.T) {
	executor := NewSequentialExecutor(nil)

	results, duration, err := executor.Execute(nil)

	require.NoError(t, err)
	assert.Nil(t, results)
	assert.Zero(t, duration)
}
