package compare

import (
	"fmt"
	"io"
	"reflect"
)

// Container compares two slices or arrays element-wise and reports the
// first differing position. Element equality is reflect.DeepEqual.
type Container struct {
	actual, expected reflect.Value
	notContainers    bool
	sizeMismatch     bool
	firstDiff        int
}

func (c *Container) Compare(actual, expected any) bool {
	c.actual = reflect.ValueOf(actual)
	c.expected = reflect.ValueOf(expected)
	if !isContainer(c.actual) || !isContainer(c.expected) {
		c.notContainers = true
		return false
	}
	if c.actual.Len() != c.expected.Len() {
		c.sizeMismatch = true
		return false
	}
	for i := 0; i < c.actual.Len(); i++ {
		if !reflect.DeepEqual(c.actual.Index(i).Interface(), c.expected.Index(i).Interface()) {
			c.firstDiff = i
			return false
		}
	}
	return true
}

func (c *Container) PrintErrorMessage(w io.Writer, actual, expected string) {
	switch {
	case c.notContainers:
		fmt.Fprintf(w, "Values %s and %s are not both containers", actual, expected)
	case c.sizeMismatch:
		fmt.Fprintf(w, "Containers %s and %s have different size, actual %d but %d expected, actual is\n        %v \n        but expected\n        %v",
			actual, expected, c.actual.Len(), c.expected.Len(), c.actual.Interface(), c.expected.Interface())
	default:
		fmt.Fprintf(w, "Containers %s and %s differ at index %d, actual is\n        %v \n        but expected\n        %v",
			actual, expected, c.firstDiff, c.actual.Interface(), c.expected.Interface())
	}
}

func isContainer(v reflect.Value) bool {
	return v.IsValid() && (v.Kind() == reflect.Slice || v.Kind() == reflect.Array)
}
