// Package scenario loads overload-resolution scenarios from YAML files.
//
// A scenario names type expressions and lists checks against them:
//
//	name: overloads
//	types:
//	  fn:
//	    intersection:
//	      - func: [a, b, {union: [c, d, e]}, f]
//	      - func: [g, h, i]
//	checks:
//	  - resolve: fn
//	    args: [a, h]
//	    expect: fail
//	  - assign: {value: any, target: z}
//	    expect: true
//
// Type expressions are structured YAML, not source text:
//   - a scalar is a reference when it names an entry of types, otherwise a
//     nominal type ("any" is the dynamic marker)
//   - {union: [...]}, {intersection: [...]} build algebraic types
//   - {func: [p1, ..., pn, result]} builds a curried function
//   - {nominal: name} forces a nominal type, {ref: name} forces a reference
//
// "any" and "fail" are reserved and cannot name an entry of types.
//
// The package handles:
//   - Parsing and validating scenario files
//   - Building typesystem values from type expressions, rejecting cycles
//   - Evaluating checks and comparing them with their expectations
package scenario

import (
	"fmt"
	"os"

	"github.com/funvibe/overload/internal/config"
	"github.com/funvibe/overload/internal/typesystem"

	"gopkg.in/yaml.v3"
)

// File is the raw decoded form of a scenario file.
type File struct {
	// Name identifies the scenario in reports and history. Defaults to the file path.
	Name string `yaml:"name,omitempty"`

	// Types maps names to type expressions. Kept as a node so that
	// declaration order is preserved for error messages.
	Types yaml.Node `yaml:"types,omitempty"`

	// Checks are evaluated in order.
	Checks []CheckSpec `yaml:"checks"`
}

// CheckSpec is a single check as written in the file.
// Exactly one of Resolve and Assign must be set.
type CheckSpec struct {
	Name string `yaml:"name,omitempty"`

	// Resolve is the callee type expression; Args are applied to it in order.
	Resolve yaml.Node   `yaml:"resolve,omitempty"`
	Args    []yaml.Node `yaml:"args,omitempty"`

	// Assign asks whether Value is assignable to Target.
	Assign *AssignSpec `yaml:"assign,omitempty"`

	// Expect is "fail" or a type expression for resolve checks,
	// and true or false for assign checks.
	Expect yaml.Node `yaml:"expect"`
}

// AssignSpec holds the operands of an assignability check.
type AssignSpec struct {
	Value  yaml.Node `yaml:"value"`
	Target yaml.Node `yaml:"target"`
}

// Kind distinguishes the two check forms.
type Kind int

const (
	KindResolve Kind = iota
	KindAssign
)

func (k Kind) String() string {
	if k == KindAssign {
		return "assign"
	}
	return "resolve"
}

// Case is a check with every type expression built.
type Case struct {
	Index int
	Name  string
	Kind  Kind
	Line  int

	// KindResolve
	Callee     typesystem.Type
	Args       []typesystem.Type
	ExpectFail bool
	Expect     typesystem.Type // nil when ExpectFail

	// KindAssign
	Value            typesystem.Type
	Target           typesystem.Type
	ExpectAssignable bool
}

// Scenario is a validated scenario ready to run.
type Scenario struct {
	Path  string
	Name  string
	Types map[string]typesystem.Type
	Order []string // names of Types in declaration order
	Cases []Case
}

// Load reads and parses a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse parses scenario content from bytes.
// The path argument is used for error messages and as the default name.
func Parse(data []byte, path string) (*Scenario, error) {
	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := file.validate(path); err != nil {
		return nil, err
	}
	return file.compile(path)
}

// validate checks the file for structural errors that do not need type building.
func (f *File) validate(path string) error {
	if len(f.Checks) == 0 {
		return fmt.Errorf("%s: no checks defined", path)
	}
	if f.Types.Kind != 0 && f.Types.Kind != yaml.MappingNode {
		return fmt.Errorf("%s:%d: types must be a mapping of names to type expressions", path, f.Types.Line)
	}

	for i, c := range f.Checks {
		if c.Resolve.Kind == 0 && c.Assign == nil {
			return fmt.Errorf("%s: checks[%d]: one of resolve or assign is required", path, i)
		}
		if c.Resolve.Kind != 0 && c.Assign != nil {
			return fmt.Errorf("%s: checks[%d]: resolve and assign are mutually exclusive", path, i)
		}
		if c.Assign != nil && len(c.Args) > 0 {
			return fmt.Errorf("%s: checks[%d]: args is only valid with resolve", path, i)
		}
		if c.Expect.Kind == 0 {
			return fmt.Errorf("%s: checks[%d]: expect is required", path, i)
		}
		if c.Assign != nil {
			if c.Assign.Value.Kind == 0 || c.Assign.Target.Kind == 0 {
				return fmt.Errorf("%s: checks[%d]: assign needs both value and target", path, i)
			}
			var want bool
			if err := c.Expect.Decode(&want); err != nil {
				return fmt.Errorf("%s: checks[%d]: assign expects %s or %s: %w",
					path, i, config.ExpectTrue, config.ExpectFalse, err)
			}
		}
	}
	return nil
}

// compile builds every type expression and produces the runnable scenario.
func (f *File) compile(path string) (*Scenario, error) {
	b, err := newBuilder(path, &f.Types)
	if err != nil {
		return nil, err
	}

	sc := &Scenario{
		Path:  path,
		Name:  f.Name,
		Types: make(map[string]typesystem.Type, len(b.order)),
		Order: b.order,
	}
	if sc.Name == "" {
		sc.Name = path
	}

	for _, name := range b.order {
		t, err := b.ref(name)
		if err != nil {
			return nil, fmt.Errorf("%s: types.%s: %w", path, name, err)
		}
		sc.Types[name] = t
	}

	for i := range f.Checks {
		c, err := b.compileCheck(i, &f.Checks[i])
		if err != nil {
			return nil, fmt.Errorf("%s: checks[%d]: %w", path, i, err)
		}
		sc.Cases = append(sc.Cases, c)
	}
	return sc, nil
}

// DisplayName returns the check name, or a generated one for unnamed checks.
func (c *Case) DisplayName() string {
	if c.Name != "" {
		return c.Name
	}
	return fmt.Sprintf("#%d %s", c.Index+1, c.Kind)
}
