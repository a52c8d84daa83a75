package tester

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// palette holds one color per report segment. The instances always carry an
// explicit enabled/disabled state so the surrounding environment (NO_COLOR,
// pipes) never changes the emitted bytes behind the harness's back.
type palette struct {
	ok      *color.Color
	fail    *color.Color
	xfail   *color.Color
	skip    *color.Color
	unknown *color.Color
	bracket *color.Color
	id      *color.Color
	name    *color.Color
	head    *color.Color
}

func newPalette(enabled bool) palette {
	mk := func(attrs ...color.Attribute) *color.Color {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c
	}
	return palette{
		ok:      mk(color.FgGreen, color.Bold),
		fail:    mk(color.FgRed, color.Bold),
		xfail:   mk(color.FgYellow, color.Bold),
		skip:    mk(color.FgYellow, color.Bold),
		unknown: mk(color.FgWhite, color.Bold),
		bracket: mk(color.FgBlue),
		id:      mk(color.FgCyan, color.Bold),
		name:    mk(color.Bold),
		head:    mk(color.Bold),
	}
}

func writerIsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

// caseLabel renders the `MARKER [id] name()` prefix shared by every
// per-case line. The marker is 6 columns, the ordinal is space-padded to
// the width of the highest selected ordinal.
func (t *Tester) caseLabel(marker *color.Color, markerText, caseName string) string {
	return marker.Sprint(markerText) + " " +
		t.pal.bracket.Sprint("[") +
		t.pal.id.Sprintf("%*d", t.padWidth, t.testCaseID) +
		t.pal.bracket.Sprint("]") + " " +
		t.pal.name.Sprint(caseName+"()")
}

func (t *Tester) printStarting(selected int) {
	fmt.Fprintln(t.logOutput, t.pal.head.Sprintf("Starting %s with %d test cases...", t.testName, selected))
}

func (t *Tester) printFinished() {
	summary := fmt.Sprintf("Finished %s with %d errors out of %d checks.", t.testName, t.errorCount, t.checkCount)
	if t.noCheckCount > 0 {
		summary += fmt.Sprintf(" %d test cases didn't contain any checks!", t.noCheckCount)
	}
	fmt.Fprintln(t.logOutput, t.pal.head.Sprint(summary))
}

func (t *Tester) printNoTests() {
	fmt.Fprintln(t.errorOutput, t.pal.fail.Sprintf("No tests to run in %s!", t.testName))
}

func (t *Tester) printOK() {
	fmt.Fprintln(t.logOutput, t.caseLabel(t.pal.ok, "    OK", t.TestCaseName()))
}

func (t *Tester) printNoChecks() {
	fmt.Fprintln(t.logOutput, t.caseLabel(t.pal.unknown, "     ?", "<unknown>"))
}

// printCheckFailed emits the FAIL block for the current check site and
// records the detail for Results.
func (t *Tester) printCheckFailed(detail string) {
	t.recordFailureDetail(detail)
	fmt.Fprintf(t.errorOutput, "%s at %s on line %d \n        %s\n",
		t.caseLabel(t.pal.fail, "  FAIL", t.TestCaseName()), t.testFilename, t.testCaseLine, detail)
}

// printUnexpectedPass emits the XPASS block; an expected failure that
// passes is an error like any other.
func (t *Tester) printUnexpectedPass(detail string) {
	t.recordFailureDetail(detail)
	fmt.Fprintf(t.errorOutput, "%s at %s on line %d \n        %s\n",
		t.caseLabel(t.pal.fail, " XPASS", t.TestCaseName()), t.testFilename, t.testCaseLine, detail)
}

// printExpectedFailure emits the XFAIL block. XFAIL is not an error, so it
// goes to the log output and the case continues.
func (t *Tester) printExpectedFailure(detail string) {
	fmt.Fprintf(t.logOutput, "%s at %s on line %d \n        %s\n",
		t.caseLabel(t.pal.xfail, " XFAIL", t.TestCaseName()), t.testFilename, t.testCaseLine, detail)
}

func (t *Tester) printSkip(message string) {
	t.caseDetail = message
	fmt.Fprintf(t.logOutput, "%s \n        %s\n",
		t.caseLabel(t.pal.skip, "  SKIP", t.TestCaseName()), message)
}

func (t *Tester) recordFailureDetail(detail string) {
	t.caseDetail = detail
	t.caseDetailLine = t.testCaseLine
}
