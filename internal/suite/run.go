package suite

import (
	"path/filepath"

	"github.com/roach88/clings/internal/harness"
)

// Compile turns every case of the suite into a harness test bound to h.
// Declaring has no side effects; nothing runs until the tests are executed.
func (s *Suite) Compile(h *harness.Harness) []harness.Test {
	file := s.sourceName()
	tests := make([]harness.Test, 0, len(s.Tests))
	for _, c := range s.Tests {
		steps := c.Steps
		tests = append(tests, harness.Declare(c.Name, func() {
			for _, step := range steps {
				runStep(h, harness.Location{File: file, Line: step.Line}, step)
			}
		}))
	}
	return tests
}

// Run executes the tests of every suite, in order, on h. It does not call
// Report.
func Run(h *harness.Harness, suites ...*Suite) {
	for _, s := range suites {
		for _, t := range s.Compile(h) {
			h.Execute(t)
		}
	}
}

// sourceName is the file name failure locations are reported against.
func (s *Suite) sourceName() string {
	if s.Path != "" {
		return filepath.Base(s.Path)
	}
	return s.Name + ".yaml"
}

// runStep evaluates one step. A failing step aborts the enclosing test body.
func runStep(h *harness.Harness, loc harness.Location, step Step) {
	switch {
	case step.Assert != nil:
		h.AssertAt(loc, *step.Assert.Value, step.Assert.Expr)
	case step.Eq != nil:
		a, e := step.Eq.operands()
		harness.AssertEqualAt(h, loc, step.Eq.Actual.Key(), step.Eq.Expected.Key(), a, e)
	case step.Ne != nil:
		a, e := step.Ne.operands()
		harness.AssertNotEqualAt(h, loc, step.Ne.Actual.Key(), step.Ne.Expected.Key(), a, e)
	case step.StrEq != nil:
		h.AssertStringEqualAt(loc, step.StrEq.Actual, step.StrEq.Expected)
	}
}

// operands returns the source text of both operands, falling back to the
// scalars themselves.
func (c *Comparison) operands() (actual, expected string) {
	actual, expected = c.ActualExpr, c.ExpectedExpr
	if actual == "" {
		actual = c.Actual.String()
	}
	if expected == "" {
		expected = c.Expected.String()
	}
	return actual, expected
}
