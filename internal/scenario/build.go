package scenario

import (
	"fmt"
	"strings"

	"github.com/funvibe/overload/internal/config"
	"github.com/funvibe/overload/internal/typesystem"

	"gopkg.in/yaml.v3"
)

// builder turns type expression nodes into typesystem values.
// Each named type is built once and shared by every reference to it, so
// identity-based deduplication sees references to one name as one member.
type builder struct {
	path     string
	defs     map[string]*yaml.Node
	order    []string
	built    map[string]typesystem.Type
	building []string // reference stack, for cycle detection
}

func newBuilder(path string, types *yaml.Node) (*builder, error) {
	b := &builder{
		path:  path,
		defs:  make(map[string]*yaml.Node),
		built: make(map[string]typesystem.Type),
	}
	if types.Kind != yaml.MappingNode {
		return b, nil
	}
	for i := 0; i+1 < len(types.Content); i += 2 {
		key, value := types.Content[i], types.Content[i+1]
		name := key.Value
		if name == "" {
			return nil, b.errorf(key, "type name must not be empty")
		}
		switch name {
		case config.AnyTypeName:
			return nil, b.errorf(key, "%q is reserved for the dynamic marker", name)
		case config.ExpectFail:
			return nil, b.errorf(key, "%q is reserved for failure expectations", name)
		}
		if _, dup := b.defs[name]; dup {
			return nil, b.errorf(key, "type %q is defined more than once", name)
		}
		b.defs[name] = value
		b.order = append(b.order, name)
	}
	return b, nil
}

func (b *builder) errorf(n *yaml.Node, format string, args ...interface{}) error {
	return fmt.Errorf("%s:%d:%d: %s", b.path, n.Line, n.Column, fmt.Sprintf(format, args...))
}

// ref builds the named type, reusing an earlier build.
func (b *builder) ref(name string) (typesystem.Type, error) {
	if t, ok := b.built[name]; ok {
		return t, nil
	}
	def, ok := b.defs[name]
	if !ok {
		return nil, fmt.Errorf("undefined type %q", name)
	}
	for i, n := range b.building {
		if n == name {
			cycle := append(append([]string{}, b.building[i:]...), name)
			return nil, b.errorf(def, "cyclic type reference: %s", strings.Join(cycle, " -> "))
		}
	}

	b.building = append(b.building, name)
	t, err := b.build(def)
	b.building = b.building[:len(b.building)-1]
	if err != nil {
		return nil, err
	}
	b.built[name] = t
	return t, nil
}

func (b *builder) build(n *yaml.Node) (typesystem.Type, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) != 1 {
			return nil, b.errorf(n, "empty type expression")
		}
		return b.build(n.Content[0])

	case yaml.AliasNode:
		return b.build(n.Alias)

	case yaml.ScalarNode:
		if n.Tag == "!!null" || n.Value == "" {
			return nil, b.errorf(n, "empty type expression")
		}
		if _, ok := b.defs[n.Value]; ok {
			return b.ref(n.Value)
		}
		return typesystem.Nominal(n.Value), nil

	case yaml.MappingNode:
		if len(n.Content) != 2 {
			return nil, b.errorf(n, "type expression must have exactly one key (union, intersection, func, nominal or ref)")
		}
		return b.buildForm(n.Content[0], n.Content[1])

	case yaml.SequenceNode:
		return nil, b.errorf(n, "a list is not a type expression; wrap it in union, intersection or func")

	default:
		return nil, b.errorf(n, "unsupported YAML node")
	}
}

func (b *builder) buildForm(key, value *yaml.Node) (typesystem.Type, error) {
	switch key.Value {
	case "union", "intersection", "func":
		members, err := b.buildList(key.Value, value)
		if err != nil {
			return nil, err
		}
		switch key.Value {
		case "union":
			return typesystem.NewUnion(members...), nil
		case "intersection":
			return typesystem.NewIntersection(members...), nil
		default:
			if len(members) == 0 {
				return nil, b.errorf(value, "func needs at least a result type")
			}
			return typesystem.Curry(members...), nil
		}

	case "nominal":
		if value.Kind != yaml.ScalarNode || value.Value == "" {
			return nil, b.errorf(value, "nominal takes a type name")
		}
		return typesystem.Nominal(value.Value), nil

	case "ref":
		if value.Kind != yaml.ScalarNode || value.Value == "" {
			return nil, b.errorf(value, "ref takes a type name")
		}
		if _, ok := b.defs[value.Value]; !ok {
			return nil, b.errorf(value, "undefined type %q", value.Value)
		}
		return b.ref(value.Value)

	default:
		return nil, b.errorf(key, "unknown type form %q", key.Value)
	}
}

func (b *builder) buildList(form string, n *yaml.Node) ([]typesystem.Type, error) {
	if n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	if n.Kind != yaml.SequenceNode {
		return nil, b.errorf(n, "%s takes a list of type expressions", form)
	}
	types := make([]typesystem.Type, 0, len(n.Content))
	for _, item := range n.Content {
		t, err := b.build(item)
		if err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, nil
}

func (b *builder) compileCheck(i int, spec *CheckSpec) (Case, error) {
	c := Case{Index: i, Name: spec.Name, Line: spec.Expect.Line}

	if spec.Assign != nil {
		c.Kind = KindAssign
		var err error
		if c.Value, err = b.build(&spec.Assign.Value); err != nil {
			return c, fmt.Errorf("assign.value: %w", err)
		}
		if c.Target, err = b.build(&spec.Assign.Target); err != nil {
			return c, fmt.Errorf("assign.target: %w", err)
		}
		if err := spec.Expect.Decode(&c.ExpectAssignable); err != nil {
			return c, fmt.Errorf("expect: %w", err)
		}
		return c, nil
	}

	c.Kind = KindResolve
	c.Line = spec.Resolve.Line
	var err error
	if c.Callee, err = b.build(&spec.Resolve); err != nil {
		return c, fmt.Errorf("resolve: %w", err)
	}
	for j := range spec.Args {
		arg, err := b.build(&spec.Args[j])
		if err != nil {
			return c, fmt.Errorf("args[%d]: %w", j, err)
		}
		c.Args = append(c.Args, arg)
	}

	if spec.Expect.Kind == yaml.ScalarNode && spec.Expect.Value == config.ExpectFail {
		c.ExpectFail = true
		return c, nil
	}
	if c.Expect, err = b.build(&spec.Expect); err != nil {
		return c, fmt.Errorf("expect: %w", err)
	}
	return c, nil
}
