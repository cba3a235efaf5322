package harness

import (
	"fmt"
	"path/filepath"
	"runtime"
)

// abort is the panic value a failed assertion uses to leave its test body.
// Only the harness that raised it recovers it.
type abort struct {
	h *Harness
}

// Caller returns the location skip frames above the caller of Caller.
// Caller(0) is the line that called Caller.
func Caller(skip int) Location {
	_, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return Location{File: "???"}
	}
	return Location{File: filepath.Base(file), Line: line}
}

// Assert fails the current test if cond is false. expr is the source text of
// the asserted expression.
func (h *Harness) Assert(cond bool, expr string) {
	if cond {
		return
	}
	h.fail(Caller(1), "assertion failed: "+expr)
}

// AssertAt is Assert with an explicit location.
func (h *Harness) AssertAt(loc Location, cond bool, expr string) {
	if cond {
		return
	}
	h.fail(loc, "assertion failed: "+expr)
}

// AssertEqual fails the current test if actual != expected. The failure
// message names both operands by their source text.
func AssertEqual[V comparable](h *Harness, actual, expected V, actualExpr, expectedExpr string) {
	if actual == expected {
		return
	}
	h.fail(Caller(1), fmt.Sprintf("expected: %s == %s", actualExpr, expectedExpr))
}

// AssertEqualAt is AssertEqual with an explicit location.
func AssertEqualAt[V comparable](h *Harness, loc Location, actual, expected V, actualExpr, expectedExpr string) {
	if actual == expected {
		return
	}
	h.fail(loc, fmt.Sprintf("expected: %s == %s", actualExpr, expectedExpr))
}

// AssertNotEqual fails the current test if actual == expected.
func AssertNotEqual[V comparable](h *Harness, actual, expected V, actualExpr, expectedExpr string) {
	if actual != expected {
		return
	}
	h.fail(Caller(1), fmt.Sprintf("expected: %s != %s", actualExpr, expectedExpr))
}

// AssertNotEqualAt is AssertNotEqual with an explicit location.
func AssertNotEqualAt[V comparable](h *Harness, loc Location, actual, expected V, actualExpr, expectedExpr string) {
	if actual != expected {
		return
	}
	h.fail(loc, fmt.Sprintf("expected: %s != %s", actualExpr, expectedExpr))
}

// AssertStringEqual fails the current test unless actual and expected are
// byte-for-byte equal. The failure message shows both values verbatim.
func (h *Harness) AssertStringEqual(actual, expected string) {
	if actual == expected {
		return
	}
	h.fail(Caller(1), fmt.Sprintf("expected: \"%s\" == \"%s\"", actual, expected))
}

// AssertStringEqualAt is AssertStringEqual with an explicit location.
func (h *Harness) AssertStringEqualAt(loc Location, actual, expected string) {
	if actual == expected {
		return
	}
	h.fail(loc, fmt.Sprintf("expected: \"%s\" == \"%s\"", actual, expected))
}

// fail prints the failure block, counts the failure, and abandons the current
// test body. Outside a test body there is nothing to abandon, so it returns.
func (h *Harness) fail(loc Location, msg string) {
	fmt.Fprint(h.out, "FAILED\n")
	fmt.Fprintf(h.out, "    %s\n", msg)
	fmt.Fprintf(h.out, "    at %s\n", loc)
	h.state.Failed++
	h.logger.Debug("assertion failed", "at", loc.String(), "message", msg)

	if n := len(h.frames); n > 0 {
		h.frames[n-1] = true
		panic(abort{h: h})
	}
}
