// Package compare provides comparators for checks that plain deep equality
// cannot express: tolerance-based float comparison, element-wise container
// comparison with mismatch location, and file content comparison with
// unified diffs. All types satisfy the harness Comparator interface and are
// meant to be passed to CompareWith.
package compare

import (
	"fmt"
	"io"
	"math"
	"reflect"
)

// Float compares two numeric values with an absolute tolerance. Two NaN
// values compare equal so NaN-producing code paths can be pinned down.
type Float struct {
	Epsilon float64

	actual, expected float64
	nonNumeric       bool
}

func (c *Float) Compare(actual, expected any) bool {
	var aok, eok bool
	c.actual, aok = toFloat(actual)
	c.expected, eok = toFloat(expected)
	if !aok || !eok {
		c.nonNumeric = true
		return false
	}
	if math.IsNaN(c.actual) && math.IsNaN(c.expected) {
		return true
	}
	return math.Abs(c.actual-c.expected) <= c.Epsilon
}

func (c *Float) PrintErrorMessage(w io.Writer, actual, expected string) {
	if c.nonNumeric {
		fmt.Fprintf(w, "Values %s and %s are not both numeric", actual, expected)
		return
	}
	fmt.Fprintf(w, "Values %s and %s are not within epsilon %g, actual is\n        %g \n        but expected\n        %g",
		actual, expected, c.Epsilon, c.actual, c.expected)
}

func toFloat(v any) (float64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	}
	return 0, false
}
