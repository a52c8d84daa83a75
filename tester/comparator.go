package tester

import (
	"fmt"
	"io"
	"reflect"
)

// Comparator decides whether two values match and renders the diagnostic
// when they do not. Implementations may keep state between the two calls;
// the harness invokes Compare first and PrintErrorMessage only on a
// mismatch, always on the same instance. Operands handed over as pointers
// are never copied by the harness, so large or pointer-identified values
// can be compared by reference end to end.
type Comparator interface {
	// Compare reports whether actual matches expected.
	Compare(actual, expected any) bool
	// PrintErrorMessage writes the diagnostic for the preceding Compare
	// call. actual and expected are the caller-side labels, not the values.
	PrintErrorMessage(w io.Writer, actual, expected string)
}

// defaultComparator is used by Compare and CompareAs when no explicit
// comparator is supplied. Equality is reflect.DeepEqual, which follows
// pointers, so by-reference operands compare their referents.
type defaultComparator struct {
	actualValue   any
	expectedValue any
}

func (c *defaultComparator) Compare(actual, expected any) bool {
	c.actualValue = actual
	c.expectedValue = expected
	return reflect.DeepEqual(actual, expected)
}

func (c *defaultComparator) PrintErrorMessage(w io.Writer, actual, expected string) {
	fmt.Fprintf(w, "Values %s and %s are not the same, actual is\n        %v \n        but expected\n        %v",
		actual, expected, c.actualValue, c.expectedValue)
}

// resolveOperands brings two possibly differently-typed values onto one
// comparison type: identical types are kept as-is, otherwise the actual
// value is converted to the expected value's type when possible, with the
// reverse conversion as fallback. Values with no conversion either way are
// returned unchanged and will simply compare as unequal.
func resolveOperands(actualValue, expectedValue any) (any, any) {
	at := reflect.TypeOf(actualValue)
	et := reflect.TypeOf(expectedValue)
	if at == nil || et == nil || at == et {
		return actualValue, expectedValue
	}
	if at.ConvertibleTo(et) {
		return reflect.ValueOf(actualValue).Convert(et).Interface(), expectedValue
	}
	if et.ConvertibleTo(at) {
		return actualValue, reflect.ValueOf(expectedValue).Convert(at).Interface()
	}
	return actualValue, expectedValue
}

// convertAs converts v to the explicitly requested comparison type.
// Requesting an impossible conversion is a programming error in the test
// itself, not a test failure.
func convertAs(v any, target reflect.Type) any {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || !rv.Type().ConvertibleTo(target) {
		panic(usageError(fmt.Sprintf("tester: value of type %T is not convertible to %s", v, target)))
	}
	return rv.Convert(target).Interface()
}
