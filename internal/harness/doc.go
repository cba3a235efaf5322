// Package harness is the micro test harness that exercise drivers link against.
//
// A driver declares named test bodies, executes them one at a time in the
// order it chooses, and finishes with a single call to Report. Each executed
// test prints one transcript line; the first failed assertion inside a body
// prints a failure block and abandons the rest of that body. Later tests are
// unaffected.
//
// # Transcript
//
// The console format is fixed:
//
//	  test test_addition                            ok
//	  test test_subtraction                         FAILED
//	    expected: sub(5, 3) == 3
//	    at math_test.go:27
//
//	  2 tests, 1 passed, 1 failed
//
// # Usage
//
// Go has no stringification of expressions, so callers pass the asserted
// expression's source text alongside the value:
//
//	h := harness.New()
//	h.Run("test_addition", func() {
//	    harness.AssertEqual(h, add(2, 3), 5, "add(2, 3)", "5")
//	    h.Assert(add(0, 0) == 0, "add(0, 0) == 0")
//	})
//	os.Exit(h.Report())
//
// Or, for a driver that only lists its tests:
//
//	func main() {
//	    harness.Main(
//	        harness.Declare("test_addition", testAddition),
//	        harness.Declare("test_overflow", testOverflow),
//	    )
//	}
//
// # Failure propagation
//
// A failed assertion unwinds only the current test body. Any other panic
// raised by a body is not handled: it terminates the process and no summary
// is printed.
//
// A Harness is single-threaded. Test bodies must not run concurrently and must
// not call assertions from other goroutines.
package harness
