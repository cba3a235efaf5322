package harness

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// nameWidth is the column width test names are padded to.
const nameWidth = 40

// Harness executes tests and accumulates their outcomes.
//
// The zero value is not usable; construct with New.
type Harness struct {
	state  RunState
	out    io.Writer
	logger *slog.Logger

	// frames holds one entry per test body on the stack, innermost last,
	// set once an assertion in that body fails. Assertions only abort when
	// it is non-empty.
	frames []bool
}

// Option configures a Harness.
type Option func(*Harness)

// WithOutput sets the transcript writer. Defaults to os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(h *Harness) {
		h.out = w
	}
}

// WithLogger sets the diagnostic logger. Defaults to a logger that discards
// everything. Log records never go to the transcript writer.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Harness) {
		h.logger = logger
	}
}

// New creates a harness with all counters at zero.
func New(opts ...Option) *Harness {
	h := &Harness{
		out:    os.Stdout,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// State returns a copy of the current counters.
func (h *Harness) State() RunState {
	return h.state
}

// Run executes body as the test called name and reports whether it passed.
//
// Run always increments the run counter by one, and exactly one of passed or
// failed. A failed assertion inside body has already printed its failure
// block, so Run prints "ok" only for passing tests.
//
// A body may call Run on the same harness. The nested test is counted on its
// own and its failure does not fail the enclosing test, although its
// transcript line is interleaved with the enclosing one.
func (h *Harness) Run(name string, body func()) bool {
	h.state.Run++
	fmt.Fprintf(h.out, "  test %-*s ", nameWidth, name)
	h.logger.Debug("test started", "test", name, "seq", h.state.Run)

	// The frame flag survives a body that recovers the abort itself.
	if h.invoke(body) {
		h.logger.Debug("test failed", "test", name)
		return false
	}

	h.state.Passed++
	fmt.Fprint(h.out, "ok\n")
	h.logger.Debug("test passed", "test", name)
	return true
}

// Execute runs a declared test. See Run.
func (h *Harness) Execute(t Test) bool {
	return h.Run(t.Name, t.Body)
}

// invoke calls body and reports whether an assertion in it failed. It absorbs
// the abort raised by this harness's own failed assertions; every other panic
// is re-raised.
func (h *Harness) invoke(body func()) (failed bool) {
	h.frames = append(h.frames, false)
	defer func() {
		top := len(h.frames) - 1
		failed = h.frames[top]
		h.frames = h.frames[:top]
		if r := recover(); r != nil {
			if a, ok := r.(abort); ok && a.h == h {
				return
			}
			panic(r)
		}
	}()
	body()
	return false
}

// Report prints the session summary and returns the process exit code:
// 0 if no test failed, 1 otherwise.
//
// Report is meant to be called once, after the last Run. It does not guard
// against being called early or repeatedly.
func (h *Harness) Report() int {
	fmt.Fprintf(h.out, "\n  %s\n", h.state)
	h.logger.Info("test run finished",
		"run", h.state.Run,
		"passed", h.state.Passed,
		"failed", h.state.Failed,
	)
	return h.state.ExitCode()
}

// Main executes tests in order on a fresh harness writing to stdout, then
// exits the process with the report's exit code.
func Main(tests ...Test) {
	h := New()
	for _, t := range tests {
		h.Execute(t)
	}
	os.Exit(h.Report())
}
