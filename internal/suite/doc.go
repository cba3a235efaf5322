// Package suite loads YAML-declared test suites and runs them through the
// harness.
//
// A suite lets a driver that is not Go code (a recorder, a grader, a shell
// script) get the harness transcript and exit code for values it has already
// computed:
//
//	name: strings1
//	tests:
//	  - name: test_normal_concat
//	    steps:
//	      - eq:     { actual: 0, expected: 0, actual_expr: rc, expected_expr: "0" }
//	      - str_eq: { actual: "Hello, world!", expected: "Hello, world!" }
//	  - name: test_overflow
//	    steps:
//	      - assert: { expr: "rc == -1", value: false }
//
// Each step holds exactly one of assert, eq, ne or str_eq. A failing step
// reports the suite file and the step's line as its location, and the
// remaining steps of that test are skipped.
package suite
