package tester

// expectedFailure marks a lexical region whose checks are expected to fail.
// A disabled one behaves exactly as if it did not exist.
type expectedFailure struct {
	message string
	enabled bool
}

// ExpectFail runs fn with an expected-failure scope active: checks inside fn
// that fail are reported as XFAIL and do not abort the case, while a check
// that unexpectedly passes aborts the case and counts as an error. The scope
// ends when fn returns, even if fn aborts the case. Entering a scope while
// another enabled one is active is a programming error and panics.
func (t *Tester) ExpectFail(message string, fn func()) {
	t.expectFailIf(true, message, fn)
}

// ExpectFailIf is ExpectFail with a condition: when condition is false the
// scope is disabled and checks inside fn behave as if no scope existed.
func (t *Tester) ExpectFailIf(condition bool, message string, fn func()) {
	t.expectFailIf(condition, message, fn)
}

func (t *Tester) expectFailIf(condition bool, message string, fn func()) {
	if condition && t.activeScope() != nil {
		panic(usageError("tester: expected-failure scopes must not nest"))
	}
	prev := t.expectedFailure
	t.expectedFailure = &expectedFailure{message: message, enabled: condition}
	defer func() { t.expectedFailure = prev }()
	fn()
}

// activeScope returns the live, enabled scope, or nil.
func (t *Tester) activeScope() *expectedFailure {
	if ef := t.expectedFailure; ef != nil && ef.enabled {
		return ef
	}
	return nil
}
