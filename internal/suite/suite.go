package suite

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Suite is a YAML-declared list of test cases.
type Suite struct {
	// Name identifies the suite in validate output and logs.
	Name string `yaml:"name"`

	// Description is free text; optional.
	Description string `yaml:"description,omitempty"`

	// Tests run in file order.
	Tests []Case `yaml:"tests"`

	// Path is the file the suite was loaded from. Empty for suites built in
	// code.
	Path string `yaml:"-"`
}

// Case is one named test: a sequence of assertion steps.
type Case struct {
	Name  string `yaml:"name"`
	Steps []Step `yaml:"steps"`
}

// Step holds exactly one assertion.
type Step struct {
	Assert *BoolCheck        `yaml:"assert,omitempty"`
	Eq     *Comparison       `yaml:"eq,omitempty"`
	Ne     *Comparison       `yaml:"ne,omitempty"`
	StrEq  *StringComparison `yaml:"str_eq,omitempty"`

	// Line is the step's line in the source file, used as its failure
	// location. Zero when unknown.
	Line int `yaml:"-"`
}

// BoolCheck asserts that a recorded boolean outcome is true.
type BoolCheck struct {
	Expr  string `yaml:"expr"`
	Value *bool  `yaml:"value"`
}

// Comparison compares two scalar operands for equality or inequality.
type Comparison struct {
	Actual       Scalar `yaml:"actual"`
	Expected     Scalar `yaml:"expected"`
	ActualExpr   string `yaml:"actual_expr,omitempty"`
	ExpectedExpr string `yaml:"expected_expr,omitempty"`
}

// StringComparison compares two strings byte for byte.
type StringComparison struct {
	Actual   string `yaml:"actual"`
	Expected string `yaml:"expected"`
}

// Scalar is a YAML scalar kept with its resolved tag so that 4 and "4"
// stay distinct.
type Scalar struct {
	Tag  string
	Text string
	set  bool
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *Scalar) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: operand must be a scalar", node.Line)
	}
	s.Tag = node.ShortTag()
	s.Text = node.Value
	s.set = true
	return nil
}

// Key returns the comparable value of the scalar. Integers become int64,
// booleans bool, floats float64 and null nil; everything else compares as
// its text.
func (s Scalar) Key() any {
	switch s.Tag {
	case "!!null":
		return nil
	case "!!int":
		if n, err := strconv.ParseInt(strings.ReplaceAll(s.Text, "_", ""), 0, 64); err == nil {
			return n
		}
	case "!!bool":
		if b, err := strconv.ParseBool(s.Text); err == nil {
			return b
		}
	case "!!float":
		if f, err := strconv.ParseFloat(s.Text, 64); err == nil {
			return f
		}
	}
	return s.Text
}

// String returns the scalar as written, quoted when it is a string that
// would otherwise read as another type.
func (s Scalar) String() string {
	switch {
	case s.Tag == "!!str":
		return strconv.Quote(s.Text)
	case s.Tag == "!!null" && s.Text == "":
		return "~"
	}
	return s.Text
}

// Kind returns the step's assertion kind: "assert", "eq", "ne" or "str_eq".
func (s Step) Kind() string {
	switch {
	case s.Assert != nil:
		return "assert"
	case s.Eq != nil:
		return "eq"
	case s.Ne != nil:
		return "ne"
	case s.StrEq != nil:
		return "str_eq"
	}
	return ""
}

// LoadSuite reads and parses a suite YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields, or fails validation.
func LoadSuite(path string) (*Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read suite file: %w", err)
	}

	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	s.Path = path
	return s, nil
}

// Parse decodes and validates a suite document.
func Parse(data []byte) (*Suite, error) {
	var s Suite
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&s); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	// Second pass over the node tree for what the strict decode above does
	// not expose: step line numbers and null operands.
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	annotate(&root, &s)

	if err := validateSuite(&s); err != nil {
		return nil, fmt.Errorf("invalid suite: %w", err)
	}
	return &s, nil
}

// annotate copies the line of every tests[i].steps[j] node into the
// matching Step and fills in null comparison operands.
func annotate(root *yaml.Node, s *Suite) {
	doc := root
	if doc.Kind == yaml.DocumentNode && len(doc.Content) > 0 {
		doc = doc.Content[0]
	}
	tests := mappingValue(doc, "tests")
	if tests == nil || tests.Kind != yaml.SequenceNode {
		return
	}
	for i, testNode := range tests.Content {
		if i >= len(s.Tests) {
			return
		}
		steps := mappingValue(testNode, "steps")
		if steps == nil || steps.Kind != yaml.SequenceNode {
			continue
		}
		for j, stepNode := range steps.Content {
			if j >= len(s.Tests[i].Steps) {
				break
			}
			step := &s.Tests[i].Steps[j]
			step.Line = stepNode.Line
			annotateNulls(mappingValue(stepNode, "eq"), step.Eq)
			annotateNulls(mappingValue(stepNode, "ne"), step.Ne)
		}
	}
}

// annotateNulls records null operands of a comparison. The decoder never
// hands null nodes to Scalar.UnmarshalYAML, so `actual: ~` would otherwise
// look the same as a missing operand.
func annotateNulls(node *yaml.Node, cmp *Comparison) {
	if node == nil || cmp == nil {
		return
	}
	for key, dst := range map[string]*Scalar{"actual": &cmp.Actual, "expected": &cmp.Expected} {
		v := mappingValue(node, key)
		if v != nil && v.Kind == yaml.ScalarNode && v.ShortTag() == "!!null" {
			*dst = Scalar{Tag: "!!null", Text: v.Value, set: true}
		}
	}
}

// mappingValue returns the value node for key in a mapping node, or nil.
func mappingValue(node *yaml.Node, key string) *yaml.Node {
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return node.Content[i+1]
		}
	}
	return nil
}

// validateSuite checks that required fields are present and valid.
func validateSuite(s *Suite) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	seen := make(map[string]int, len(s.Tests))
	for i, c := range s.Tests {
		if c.Name == "" {
			return fmt.Errorf("tests[%d]: name is required", i)
		}
		if prev, ok := seen[c.Name]; ok {
			return fmt.Errorf("tests[%d]: duplicate test name %q (first declared at tests[%d])", i, c.Name, prev)
		}
		seen[c.Name] = i

		for j, step := range c.Steps {
			if err := validateStep(step); err != nil {
				return fmt.Errorf("tests[%d].steps[%d]: %w", i, j, err)
			}
		}
	}

	return nil
}

// validateStep validates a single step based on its kind.
func validateStep(step Step) error {
	kinds := 0
	for _, set := range []bool{step.Assert != nil, step.Eq != nil, step.Ne != nil, step.StrEq != nil} {
		if set {
			kinds++
		}
	}
	if kinds != 1 {
		return fmt.Errorf("exactly one of assert, eq, ne, str_eq is required")
	}

	switch step.Kind() {
	case "assert":
		if step.Assert.Expr == "" {
			return fmt.Errorf("assert: expr is required")
		}
		if step.Assert.Value == nil {
			return fmt.Errorf("assert: value is required")
		}
	case "eq", "ne":
		cmp := step.Eq
		if cmp == nil {
			cmp = step.Ne
		}
		if !cmp.Actual.set {
			return fmt.Errorf("%s: actual is required", step.Kind())
		}
		if !cmp.Expected.set {
			return fmt.Errorf("%s: expected is required", step.Kind())
		}
	}

	return nil
}
