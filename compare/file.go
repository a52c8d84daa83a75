package compare

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// File compares the contents of two files named by the operands. On a
// mismatch the diagnostic carries a unified diff, expected to actual.
type File struct {
	actualPath, expectedPath string
	actualErr, expectedErr   error
	actual, expected         string
}

func (c *File) Compare(actual, expected any) bool {
	c.actualPath, _ = actual.(string)
	c.expectedPath, _ = expected.(string)
	c.actual, c.actualErr = readAll(c.actualPath)
	c.expected, c.expectedErr = readAll(c.expectedPath)
	if c.actualErr != nil || c.expectedErr != nil {
		return false
	}
	return c.actual == c.expected
}

func (c *File) PrintErrorMessage(w io.Writer, actual, expected string) {
	if printReadError(w, actual, c.actualPath, c.actualErr) {
		return
	}
	if printReadError(w, expected, c.expectedPath, c.expectedErr) {
		return
	}
	fmt.Fprintf(w, "Files %s and %s are not the same, diff is\n        %s",
		actual, expected, diffBlock(c.expected, c.actual))
}

// FileToString compares the contents of the file named by the actual
// operand against the expected operand string.
type FileToString struct {
	actualPath       string
	actualErr        error
	actual, expected string
}

func (c *FileToString) Compare(actual, expected any) bool {
	c.actualPath, _ = actual.(string)
	c.expected, _ = expected.(string)
	c.actual, c.actualErr = readAll(c.actualPath)
	if c.actualErr != nil {
		return false
	}
	return c.actual == c.expected
}

func (c *FileToString) PrintErrorMessage(w io.Writer, actual, expected string) {
	if printReadError(w, actual, c.actualPath, c.actualErr) {
		return
	}
	fmt.Fprintf(w, "File %s is not the same as %s, diff is\n        %s",
		actual, expected, diffBlock(c.expected, c.actual))
}

func readAll(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("operand is not a file path")
	}
	b, err := os.ReadFile(path)
	return string(b), err
}

func printReadError(w io.Writer, label, path string, err error) bool {
	if err == nil {
		return false
	}
	fmt.Fprintf(w, "File %s (%s) cannot be read: %v", label, path, err)
	return true
}

// diffBlock renders a unified diff indented to sit inside the report's
// detail block.
func diffBlock(expected, actual string) string {
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(expected),
		B:        difflib.SplitLines(actual),
		FromFile: "expected",
		ToFile:   "actual",
		Context:  3,
	})
	if err != nil {
		return fmt.Sprintf("(diff unavailable: %v)", err)
	}
	diff = strings.TrimSuffix(diff, "\n")
	return strings.ReplaceAll(diff, "\n", "\n        ")
}
