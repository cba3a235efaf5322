package harness

import "fmt"

// RunState is the three-counter summary of a test session.
//
// Invariant: Run == Passed + Failed after every completed Run call.
type RunState struct {
	Run    int
	Passed int
	Failed int
}

// ExitCode returns 0 if no test failed, 1 otherwise.
func (s RunState) ExitCode() int {
	if s.Failed > 0 {
		return 1
	}
	return 0
}

// String formats the counters the way Report prints them.
func (s RunState) String() string {
	return fmt.Sprintf("%d tests, %d passed, %d failed", s.Run, s.Passed, s.Failed)
}

// Test is a named, zero-argument test body.
type Test struct {
	Name string
	Body func()
}

// Declare binds a name to a test body for later execution.
func Declare(name string, body func()) Test {
	return Test{Name: name, Body: body}
}

// Location identifies the call site of an assertion.
type Location struct {
	File string
	Line int
}

func (l Location) String() string {
	return fmt.Sprintf("%s:%d", l.File, l.Line)
}
