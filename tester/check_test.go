package tester

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// checkSuite runs one injected body as its single case, for exercising
// check primitives without a full fixture.
type checkSuite struct {
	*Tester
	body func(s *checkSuite)
}

func (s *checkSuite) run() { s.body(s) }

func execCheck(t *testing.T, body func(s *checkSuite)) (int, string) {
	t.Helper()
	var out bytes.Buffer
	s := &checkSuite{Tester: New(), body: body}
	s.RegisterTest("check_test.go", "CheckSuite")
	s.AddTests(s.run)
	return s.Exec([]string{"--color", "off"}, &out, &out), out.String()
}

// lifecycleSuite records the order of setup, body and teardown together
// with the case ordinal each phase observed.
type lifecycleSuite struct {
	*Tester
	events       []string
	failSetup    bool
	skipSetup    bool
	failTeardown bool
	lines        map[string]int
}

func newLifecycleSuite() *lifecycleSuite {
	s := &lifecycleSuite{Tester: New(), lines: make(map[string]int)}
	s.RegisterTest("check_test.go", "LifecycleSuite")
	s.AddTestsWithSetup(s.setup, s.teardown, s.body)
	return s
}

func (s *lifecycleSuite) setup() {
	s.events = append(s.events, fmt.Sprintf("setup:%d", s.TestCaseID()))
	if s.failSetup {
		s.lines["setup"] = curLine() + 1
		s.Verify("setup precondition", false)
	}
	if s.skipSetup {
		s.Skip("environment missing")
	}
}

func (s *lifecycleSuite) teardown() {
	s.events = append(s.events, fmt.Sprintf("teardown:%d", s.TestCaseID()))
	if s.failTeardown {
		s.lines["teardown"] = curLine() + 1
		s.Verify("teardown cleanup", false)
	}
}

func (s *lifecycleSuite) body() {
	s.events = append(s.events, fmt.Sprintf("body:%d", s.TestCaseID()))
	s.Verify("true", true)
}

func TestLifecycleHappyPath(t *testing.T) {
	var out bytes.Buffer
	s := newLifecycleSuite()

	code := s.Exec([]string{"--color", "off"}, &out, &out)

	require.Equal(t, 0, code)
	assert.Equal(t, []string{"setup:1", "body:1", "teardown:1"}, s.events)
	expected := "Starting LifecycleSuite with 1 test cases...\n" +
		"    OK [1] body()\n" +
		"Finished LifecycleSuite with 0 errors out of 1 checks.\n"
	require.Equal(t, expected, out.String())
}

func TestSetupFailureSkipsBodyButRunsTeardown(t *testing.T) {
	var out bytes.Buffer
	s := newLifecycleSuite()
	s.failSetup = true

	code := s.Exec([]string{"--color", "off"}, &out, &out)

	require.Equal(t, 1, code)
	assert.Equal(t, []string{"setup:1", "teardown:1"}, s.events)
	expected := "Starting LifecycleSuite with 1 test cases...\n" +
		fmt.Sprintf("  FAIL [1] body() at check_test.go on line %d \n", s.lines["setup"]) +
		"        Expression setup precondition failed.\n" +
		"Finished LifecycleSuite with 1 errors out of 1 checks.\n"
	require.Equal(t, expected, out.String())
	assert.Equal(t, Failed, s.Results()[0].Outcome)
}

func TestSetupSkipSkipsBodyButRunsTeardown(t *testing.T) {
	var out bytes.Buffer
	s := newLifecycleSuite()
	s.skipSetup = true

	code := s.Exec([]string{"--color", "off"}, &out, &out)

	require.Equal(t, 0, code)
	assert.Equal(t, []string{"setup:1", "teardown:1"}, s.events)
	expected := "Starting LifecycleSuite with 1 test cases...\n" +
		"  SKIP [1] body() \n" +
		"        environment missing\n" +
		"Finished LifecycleSuite with 0 errors out of 0 checks.\n"
	require.Equal(t, expected, out.String())
	assert.Equal(t, Skipped, s.Results()[0].Outcome)
}

func TestTeardownFailureFailsTheCase(t *testing.T) {
	var out bytes.Buffer
	s := newLifecycleSuite()
	s.failTeardown = true

	code := s.Exec([]string{"--color", "off"}, &out, &out)

	require.Equal(t, 1, code)
	assert.Equal(t, []string{"setup:1", "body:1", "teardown:1"}, s.events)
	expected := "Starting LifecycleSuite with 1 test cases...\n" +
		fmt.Sprintf("  FAIL [1] body() at check_test.go on line %d \n", s.lines["teardown"]) +
		"        Expression teardown cleanup failed.\n" +
		"Finished LifecycleSuite with 1 errors out of 2 checks.\n"
	require.Equal(t, expected, out.String())
	assert.Equal(t, RunSummary{Selected: 1, Checks: 2, Errors: 1, Empty: 0}, s.Summary())
}

func TestCasePanicBecomesFailure(t *testing.T) {
	code, out := execCheck(t, func(s *checkSuite) {
		panic("kaboom")
	})

	require.Equal(t, 1, code)
	assert.Contains(t, out, "  FAIL [1] run() at check_test.go on line 0 \n        Test case panicked: kaboom\n")
	assert.Contains(t, out, "Finished CheckSuite with 1 errors out of 0 checks.")
}

func TestPanicAfterChecksKeepsCheckCount(t *testing.T) {
	code, out := execCheck(t, func(s *checkSuite) {
		s.Verify("true", true)
		panic(42)
	})

	require.Equal(t, 1, code)
	assert.Contains(t, out, "Test case panicked: 42")
	assert.Contains(t, out, "Finished CheckSuite with 1 errors out of 1 checks.")
}

func TestExpectFailNestingPanics(t *testing.T) {
	require.PanicsWithError(t, "tester: expected-failure scopes must not nest", func() {
		execCheck(t, func(s *checkSuite) {
			s.ExpectFail("outer", func() {
				s.ExpectFail("inner", func() {
					s.Verify("x", false)
				})
			})
		})
	})
}

func TestDisabledScopesCoexistAndRestore(t *testing.T) {
	code, out := execCheck(t, func(s *checkSuite) {
		s.ExpectFailIf(false, "", func() {
			s.ExpectFailIf(false, "", func() {
				s.Verify("true", true)
			})
		})
		s.ExpectFailIf(false, "never shown", func() {
			s.ExpectFail("The roof is on fire.", func() {
				s.Verify("water == fire", false)
			})
			s.Verify("true", true)
		})
	})

	require.Equal(t, 0, code)
	assert.Contains(t, out, " XFAIL [1] run() at check_test.go")
	assert.Contains(t, out, "        The roof is on fire. Expression water == fire failed.\n")
	assert.Contains(t, out, "    OK [1] run()")
	assert.Contains(t, out, "Finished CheckSuite with 0 errors out of 3 checks.")
}

// scopeSuite proves an aborted scope does not leak into the next case.
type scopeSuite struct {
	*Tester
}

func (s *scopeSuite) unexpectedPass() {
	s.ExpectFail("should fail", func() {
		s.Verify("true", true)
	})
}

func (s *scopeSuite) plain() {
	s.Verify("true", true)
}

func TestScopeEndsWhenCaseAborts(t *testing.T) {
	var out bytes.Buffer
	s := &scopeSuite{Tester: New()}
	s.RegisterTest("check_test.go", "ScopeSuite")
	s.AddTests(s.unexpectedPass, s.plain)

	code := s.Exec([]string{"--color", "off"}, &out, &out)

	require.Equal(t, 1, code)
	assert.Contains(t, out.String(), " XPASS [1] unexpectedPass()")
	assert.Contains(t, out.String(), "    OK [2] plain()\n")
	assert.Contains(t, out.String(), "Finished ScopeSuite with 1 errors out of 2 checks.")
}

func TestSkipInsideExpectedFailureScope(t *testing.T) {
	code, out := execCheck(t, func(s *checkSuite) {
		s.ExpectFail("irrelevant", func() {
			s.Skip("bailing out")
		})
	})

	require.Equal(t, 0, code)
	assert.Contains(t, out, "  SKIP [1] run() \n        bailing out\n")
	assert.Contains(t, out, "Finished CheckSuite with 0 errors out of 0 checks.")
}

func TestCaseIdentityDuringRun(t *testing.T) {
	var gotID int
	var gotName string

	code, _ := execCheck(t, func(s *checkSuite) {
		gotID = s.TestCaseID()
		gotName = s.TestCaseName()
		s.Verify("true", true)
	})

	require.Equal(t, 0, code)
	assert.Equal(t, 1, gotID)
	assert.Equal(t, "run", gotName)
}

func TestCaseIdentityOutsideRun(t *testing.T) {
	s := New()

	assert.Equal(t, 0, s.TestCaseID())
	assert.Equal(t, "", s.TestCaseName())
}

func TestCompareAsRejectsImpossibleConversion(t *testing.T) {
	require.PanicsWithError(t, "tester: value of type string is not convertible to int", func() {
		execCheck(t, func(s *checkSuite) {
			CompareAs[int](s.Tester, "a", "oops", "b", 3)
		})
	})
}
