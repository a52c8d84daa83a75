package tester

import (
	"fmt"
	"reflect"
	"runtime"
	"strings"
)

// Verify checks a boolean expression. expression is the caller-side text
// reproduced in the report when the check fails.
func (t *Tester) Verify(expression string, value bool) {
	t.captureCheckSite()
	t.checkCount++
	ef := t.activeScope()
	if ef == nil {
		if value {
			return
		}
		t.printCheckFailed(fmt.Sprintf("Expression %s failed.", expression))
		panic(failSignal{})
	}
	if !value {
		t.printExpectedFailure(fmt.Sprintf("%s Expression %s failed.", ef.message, expression))
		return
	}
	t.printUnexpectedPass(fmt.Sprintf("Expression %s was expected to fail.", expression))
	panic(failSignal{})
}

// Compare checks two values for equality, resolving a common comparison
// type when their types differ (the actual value converts to the expected
// value's type when possible, the reverse conversion is the fallback).
// actual and expected are the caller-side labels for the two values.
func (t *Tester) Compare(actual string, actualValue any, expected string, expectedValue any) {
	t.captureCheckSite()
	t.checkCount++
	av, ev := resolveOperands(actualValue, expectedValue)
	t.compareInternal(&defaultComparator{}, actual, av, expected, ev)
}

// CompareWith checks two values using an explicitly supplied comparator,
// bypassing automatic type resolution.
func (t *Tester) CompareWith(comparator Comparator, actual string, actualValue any, expected string, expectedValue any) {
	t.captureCheckSite()
	t.checkCount++
	t.compareInternal(comparator, actual, actualValue, expected, expectedValue)
}

// CompareAs checks two values after converting both to an explicitly named
// comparison type, overriding automatic resolution.
func CompareAs[T any](t *Tester, actual string, actualValue any, expected string, expectedValue any) {
	t.captureCheckSite()
	t.checkCount++
	target := reflect.TypeOf((*T)(nil)).Elem()
	av := convertAs(actualValue, target)
	ev := convertAs(expectedValue, target)
	t.compareInternal(&defaultComparator{}, actual, av, expected, ev)
}

// Skip terminates the current case early and reports it as SKIP. Skipping
// never counts as a failure and never counts as a check.
func (t *Tester) Skip(message string) {
	t.printSkip(message)
	panic(skipSignal{})
}

func (t *Tester) compareInternal(comparator Comparator, actual string, actualValue any, expected string, expectedValue any) {
	equal := comparator.Compare(actualValue, expectedValue)
	ef := t.activeScope()
	if ef == nil {
		if equal {
			return
		}
		var detail strings.Builder
		comparator.PrintErrorMessage(&detail, actual, expected)
		t.printCheckFailed(detail.String())
		panic(failSignal{})
	}
	if !equal {
		t.printExpectedFailure(fmt.Sprintf("%s %s and %s are not equal.", ef.message, actual, expected))
		return
	}
	t.printUnexpectedPass(fmt.Sprintf("%s and %s are not expected to be equal.", actual, expected))
	panic(failSignal{})
}

// captureCheckSite records the source line of the check primitive's caller.
// It must be invoked directly from the exported primitive so the skip depth
// lands on the case body.
func (t *Tester) captureCheckSite() {
	if _, _, line, ok := runtime.Caller(2); ok {
		t.testCaseLine = line
	}
}
